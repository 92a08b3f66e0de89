package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/AukeB/pdf-chef/layout"
	"github.com/AukeB/pdf-chef/renderer"
)

// 分隔线宽度（mm）。
const dividerWidth = 0.2

// Renderer 基于 github.com/tdewolff/canvas 绘制布局结果，同时作为
// layout.Typesetter 提供文字与图片测量。
// 约定：布局侧所有坐标与字号均为 pt；canvas 的画布单位为 mm，
// 全部换算集中在本包边界完成。
type Renderer struct {
	baseDir string

	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// NewRenderer 创建渲染器，baseDir 用于解析相对资源路径（通常为配方文件所在目录）。
func NewRenderer(baseDir string) *Renderer {
	return &Renderer{
		baseDir:      baseDir,
		fontFamilies: map[string]*fontFamilyEntry{},
	}
}

// TextWidth 实现 layout.Typesetter。canvas 的 TextWidth 以 mm 返回，这里换算回 pt。
func (r *Renderer) TextWidth(content string, font layout.FontSpec) (float64, error) {
	face, err := r.fontFace(font, canvas.Black)
	if err != nil {
		return 0, err
	}
	return toPt(face.TextWidth(content)), nil
}

// ImageSize 实现 layout.Typesetter：只解码图片头部，返回像素尺寸。
func (r *Renderer) ImageSize(path string) (float64, float64, error) {
	f, err := os.Open(r.resolve(path))
	if err != nil {
		return 0, 0, fmt.Errorf("读取图片 %s 失败: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("解码图片 %s 失败: %w", path, err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

// Render 将布局结果渲染为单页 PDF 字节。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	page := result.Page
	if page.Width <= 0 || page.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸非法: %gx%g", page.Width, page.Height)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, toMm(page.Width), toMm(page.Height), nil)
	c := canvas.New(toMm(page.Width), toMm(page.Height))
	ctx := canvas.NewContext(c)

	if err := r.drawPage(ctx, page); err != nil {
		return nil, err
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPage 先画背景色块，再画文字与图片，最后画分隔线，保证层叠关系正确。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	r.drawRects(ctx, page.Rects)
	for _, tb := range page.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return err
		}
	}
	if err := r.drawImages(ctx, page.Images); err != nil {
		return err
	}
	r.drawLines(ctx, page.Lines)
	return nil
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	face, err := r.fontFace(tb.Font, colorFromLayout(tb.Color))
	if err != nil {
		return err
	}

	// TextBox.Y 为首行基线，后续各行向下偏移 LineHeight。
	baseline := tb.Y
	for _, line := range tb.Lines {
		textLine := canvas.NewTextLine(face, line.Content, canvas.Left)
		ctx.DrawText(toMm(tb.X), toMm(baseline), textLine)
		baseline -= tb.LineHeight
	}
	return nil
}

func (r *Renderer) drawImages(ctx *canvas.Context, images []layout.ImageBox) error {
	for _, img := range images {
		file, err := os.Open(r.resolve(img.Path))
		if err != nil {
			return fmt.Errorf("读取图片 %s 失败: %w", img.Path, err)
		}
		data, _, err := image.Decode(file)
		file.Close()
		if err != nil {
			return fmt.Errorf("解码图片 %s 失败: %w", img.Path, err)
		}

		width := toMm(img.Width)
		if width <= 0 {
			continue
		}
		dpmm := float64(data.Bounds().Dx()) / width
		if dpmm <= 0 {
			dpmm = 1
		}
		ctx.DrawImage(toMm(img.X), toMm(img.Y), data, canvas.DPMM(dpmm))
	}
	return nil
}

func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(dividerWidth)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(toMm(ln.X2-ln.X1), toMm(ln.Y2-ln.Y1))
		ctx.DrawPath(toMm(ln.X1), toMm(ln.Y1), p)
	}
}

func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		ctx.SetFillColor(colorFromLayout(rc.FillColor))
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		ctx.DrawPath(toMm(rc.X), toMm(rc.Y), canvas.Rectangle(toMm(rc.Width), toMm(rc.Height)))
	}
}

func (r *Renderer) fontFace(font layout.FontSpec, col color.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font.Name)
	if err != nil {
		return nil, err
	}
	return family.Face(font.Size, col, style, canvas.FontNormal), nil
}

// ensureFontFamily 按字体名缓存 FontFamily。名称中的 -Bold/-Oblique 等后缀
// 会被解析为字体风格，其余部分作为系统字体名加载。
func (r *Renderer) ensureFontFamily(name string) (*canvas.FontFamily, canvas.FontStyle, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[name]; ok {
		return entry.family, entry.style, nil
	}

	base, style := splitFontName(name)
	family := canvas.NewFontFamily(base)
	if err := family.LoadSystemFont(systemQuery(base), style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}

	r.fontFamilies[name] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

// splitFontName 把 "Helvetica-Bold" 这类 PostScript 风格名称拆成族名与风格。
func splitFontName(name string) (string, canvas.FontStyle) {
	if i := strings.IndexByte(name, '-'); i > 0 {
		return name[:i], parseFontStyle(name[i+1:])
	}
	return name, canvas.FontRegular
}

func parseFontStyle(style string) canvas.FontStyle {
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

// systemQuery 为常见字体族补充回退链；Helvetica 在多数 Linux 发行版上并不存在。
func systemQuery(base string) string {
	switch strings.ToLower(base) {
	case "helvetica", "arial":
		return base + ", Liberation Sans, DejaVu Sans, sans-serif"
	case "times", "times new roman":
		return base + ", Liberation Serif, DejaVu Serif, serif"
	case "courier":
		return base + ", Liberation Mono, DejaVu Sans Mono, monospace"
	default:
		return base
	}
}

func (r *Renderer) resolve(path string) string {
	if r.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.baseDir, path)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(c.R, c.G, c.B, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
