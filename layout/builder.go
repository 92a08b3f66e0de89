package layout

import (
	"fmt"
	"strings"

	"github.com/AukeB/pdf-chef/recipe"
)

// 各 section 间距系数，相对于该 section 的字号。
const (
	bulletPrefix        = "- "
	bulletGapFactor     = 0.2 // 列表项之间的额外间距
	groupTitleGapFactor = 0.5 // 步骤分组标题之后的间距
	stepGapFactor       = 0.4 // 步骤之间以及分组之间的间距
)

// sectionStyle 描述某类 section 对默认字体的覆盖；零值字段回落到 Params。
type sectionStyle struct {
	bold bool
	size float64
}

// 覆盖表在此单一位置解析，避免在每个绘制调用里重复“覆盖优先、否则默认”的判断。
var sectionStyles = map[recipe.Kind]sectionStyle{
	recipe.KindTitle:        {bold: true, size: 18},
	recipe.KindDescription:  {},
	recipe.KindIngredients:  {size: 14},
	recipe.KindInstructions: {size: 12},
}

// Flow 是文档的纵向排版游标：各 section 自页面顶部依次向下堆叠，
// cursorY 单调不增；已经产出的绘制元素不再回改。
type Flow struct {
	params Params
	ts     Typesetter

	cursorY float64
	counter int // 已排版的文字类 section 数，用于背景色轮换

	texts  []TextBox
	images []ImageBox
	lines  []Line
	rects  []Rect
}

// NewFlow 创建一个游标位于页面顶部的排版流。
func NewFlow(params Params, ts Typesetter) *Flow {
	return &Flow{params: params, ts: ts, cursorY: params.PageHeight}
}

// CursorY 返回下一个 section 的起始纵坐标。
func (f *Flow) CursorY() float64 { return f.cursorY }

// Result 产出渲染器可直接消费的布局结果。
func (f *Flow) Result() *Result {
	return &Result{Page: Page{
		Width:  f.params.PageWidth,
		Height: f.params.PageHeight,
		Texts:  f.texts,
		Images: f.images,
		Lines:  f.lines,
		Rects:  f.rects,
	}}
}

// Section 排版一个 section 并推进游标。内容为空的 section 不产生任何
// 绘制元素，也不推进游标与背景色轮换。未识别的类型是显式的空操作分支。
func (f *Flow) Section(sec recipe.Section) error {
	if f.ts == nil {
		return fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}

	var (
		y   float64
		err error
	)
	switch sec.Kind {
	case recipe.KindCoverImage:
		if strings.TrimSpace(sec.Text) == "" {
			return nil
		}
		y, err = f.coverImage(f.cursorY, sec.Text)
	case recipe.KindTitle, recipe.KindDescription:
		if strings.TrimSpace(sec.Text) == "" {
			return nil
		}
		y, err = f.textBlock(f.cursorY, sec.Text, f.styleFont(sec.Kind), f.nextPaletteColor())
	case recipe.KindIngredients:
		if len(sec.Items) == 0 {
			return nil
		}
		y, err = f.list(f.cursorY, sec.Items, f.styleFont(sec.Kind), f.nextPaletteColor())
	case recipe.KindInstructions:
		if len(sec.Groups) == 0 {
			return nil
		}
		// 计入背景色轮换，但本类型不绘制背景
		f.nextPaletteColor()
		y, err = f.instructions(f.cursorY, sec.Groups, f.styleFont(sec.Kind))
	case recipe.KindUnknown:
		// 配方中出现的未知 section 名称按约定跳过，游标不动
		return nil
	default:
		return nil
	}
	if err != nil {
		return err
	}
	f.cursorY = y
	return nil
}

// styleFont 把 section 类型的字体覆盖应用到默认字体上。
func (f *Flow) styleFont(kind recipe.Kind) FontSpec {
	spec := f.params.Font
	st := sectionStyles[kind]
	if st.size > 0 {
		spec.Size = st.size
	}
	if st.bold {
		spec.Name = boldVariant(spec.Name)
	}
	return spec
}

// boldVariant 返回 PostScript 风格的粗体名称，例如 Helvetica → Helvetica-Bold。
func boldVariant(name string) string {
	if strings.HasSuffix(name, "-Bold") {
		return name
	}
	return name + "-Bold"
}

// nextPaletteColor 返回当前文字 section 的背景色并推进轮换计数。
func (f *Flow) nextPaletteColor() *Color {
	if len(f.params.Palette) == 0 {
		return nil
	}
	c := f.params.Palette[f.counter%len(f.params.Palette)]
	f.counter++
	return &c
}

// textBlock 绘制一个带背景与分隔线的文本块，返回新的游标位置。
// 块高 = 文本高 + 上下 section 留白 + 基线修正（shiftFactor × 字号）。
func (f *Flow) textBlock(y float64, text string, font FontSpec, bg *Color) (float64, error) {
	p := f.params
	lines, err := Wrap(f.ts, text, font, p.MaxLineWidth())
	if err != nil {
		return y, err
	}

	lineHeight := font.Size * p.LineHeightFactor
	textHeight := MeasureLines(len(lines), font.Size, p.LineHeightFactor)
	shift := p.FontShiftFactor * font.Size
	blockHeight := textHeight + p.SectionTop + p.SectionBottom + shift

	// 背景先画，保证文字与分隔线在其上层
	if bg != nil {
		f.rects = append(f.rects, Rect{
			X:         0,
			Y:         y - blockHeight,
			Width:     p.PageWidth,
			Height:    blockHeight,
			FillColor: *bg,
		})
	}

	if err := f.appendLines(lines, p.MarginLeft, y-shift-p.SectionTop, font, lineHeight); err != nil {
		return y, err
	}

	f.divider(y - blockHeight)
	return y - blockHeight, nil
}

// list 把每个条目加上项目符号后独立折行，整块共用一张背景。
func (f *Flow) list(y float64, items []string, font FontSpec, bg *Color) (float64, error) {
	p := f.params
	lineHeight := font.Size * p.LineHeightFactor
	gap := bulletGapFactor * font.Size
	shift := p.FontShiftFactor * font.Size

	wrapped := make([][]string, 0, len(items))
	textHeight := 0.0
	for _, item := range items {
		lines, err := Wrap(f.ts, bulletPrefix+item, font, p.MaxLineWidth())
		if err != nil {
			return y, err
		}
		wrapped = append(wrapped, lines)
		textHeight += MeasureLines(len(lines), font.Size, p.LineHeightFactor) + gap
	}
	blockHeight := textHeight + p.SectionTop + p.SectionBottom + shift

	if bg != nil {
		f.rects = append(f.rects, Rect{
			X:         0,
			Y:         y - blockHeight,
			Width:     p.PageWidth,
			Height:    blockHeight,
			FillColor: *bg,
		})
	}

	cursor := y - shift - p.SectionTop
	for _, lines := range wrapped {
		if err := f.appendLines(lines, p.MarginLeft, cursor, font, lineHeight); err != nil {
			return y, err
		}
		cursor -= MeasureLines(len(lines), font.Size, p.LineHeightFactor) + gap
	}

	f.divider(y - blockHeight)
	return y - blockHeight, nil
}

// instructions 逐组绘制 "N. 标题" 与 "N.M 步骤" 行，组间与步骤间留固定间隙。
// 本类型不绘制背景。
func (f *Flow) instructions(y float64, groups []recipe.StepGroup, font FontSpec) (float64, error) {
	p := f.params
	lineHeight := font.Size * p.LineHeightFactor
	shift := p.FontShiftFactor * font.Size

	cursor := y - shift - p.SectionTop
	for _, group := range groups {
		title := fmt.Sprintf("%d. %s", group.Number, group.Title)
		lines, err := Wrap(f.ts, title, font, p.MaxLineWidth())
		if err != nil {
			return y, err
		}
		if err := f.appendLines(lines, p.MarginLeft, cursor, font, lineHeight); err != nil {
			return y, err
		}
		cursor -= MeasureLines(len(lines), font.Size, p.LineHeightFactor) + groupTitleGapFactor*font.Size

		for _, step := range group.Steps {
			text := fmt.Sprintf("%d.%d %s", group.Number, step.Number, step.Text)
			lines, err := Wrap(f.ts, text, font, p.MaxLineWidth())
			if err != nil {
				return y, err
			}
			if err := f.appendLines(lines, p.MarginLeft, cursor, font, lineHeight); err != nil {
				return y, err
			}
			cursor -= MeasureLines(len(lines), font.Size, p.LineHeightFactor) + stepGapFactor*font.Size
		}
		cursor -= stepGapFactor * font.Size
	}

	bottom := cursor - p.SectionBottom
	f.divider(bottom)
	return bottom, nil
}

// coverImage 将封面图等比缩放到配置高度并水平居中。封面不参与背景色轮换。
func (f *Flow) coverImage(y float64, path string) (float64, error) {
	p := f.params
	widthPx, heightPx, err := f.ts.ImageSize(path)
	if err != nil {
		return y, fmt.Errorf("读取封面图 %s 失败: %w", path, err)
	}
	if heightPx <= 0 {
		return y, fmt.Errorf("封面图 %s 高度无效", path)
	}

	scaledWidth := widthPx * (p.CoverHeight / heightPx)
	f.images = append(f.images, ImageBox{
		Path:   path,
		X:      (p.PageWidth - scaledWidth) / 2,
		Y:      y - p.CoverHeight,
		Width:  scaledWidth,
		Height: p.CoverHeight,
	})

	f.divider(y - p.CoverHeight)
	return y - p.CoverHeight, nil
}

// appendLines 以首行基线 baseline 追加一个文本块，逐行测量宽度。
func (f *Flow) appendLines(lines []string, x, baseline float64, font FontSpec, lineHeight float64) error {
	if len(lines) == 0 {
		return nil
	}
	tb := TextBox{X: x, Y: baseline, Font: font, LineHeight: lineHeight}
	for _, line := range lines {
		width, err := f.ts.TextWidth(line, font)
		if err != nil {
			return err
		}
		tb.Lines = append(tb.Lines, TextLine{Content: line, Width: width})
	}
	f.texts = append(f.texts, tb)
	return nil
}

// divider 在给定纵坐标画一条贯穿整页的分隔线。
func (f *Flow) divider(y float64) {
	f.lines = append(f.lines, Line{
		X1:    0,
		Y1:    y,
		X2:    f.params.PageWidth,
		Y2:    y,
		Color: f.params.LineColor,
	})
}
