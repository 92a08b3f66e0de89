// Package config 负责加载并校验 YAML 配置；任何问题都在开始绘制前暴露。
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/AukeB/pdf-chef/layout"
)

var (
	// ErrMissingField 表示必填字段缺失。
	ErrMissingField = errors.New("config: 缺少必填字段")
	// ErrInvalidField 表示字段存在但取值非法。
	ErrInvalidField = errors.New("config: 字段取值非法")
)

// Config 映射 YAML 配置文件的完整结构。加载后不可变。
type Config struct {
	IO              IO              `yaml:"io"`
	Page            Page            `yaml:"page"`
	DocumentMargins DocumentMargins `yaml:"document_margins"`
	SectionMargins  SectionMargins  `yaml:"section_margins"`
	LayoutCover     LayoutCover     `yaml:"layout_cover"`
	Font            Font            `yaml:"font"`
	Colors          Colors          `yaml:"colors"`
}

// IO 指定输入输出路径。
type IO struct {
	OutputFilePath      string `yaml:"output_file_path"`
	InputRecipeFilePath string `yaml:"input_recipe_file_path"`
}

// Page 尺寸以 mm 给出，解析为 Params 时换算为 pt。
type Page struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DocumentMargins 是文档级左右边距（pt）。
type DocumentMargins struct {
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
}

// SectionMargins 是每个 section 的上下留白（pt）。
type SectionMargins struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// LayoutCover 控制封面图布局。
type LayoutCover struct {
	ImageHeight float64 `yaml:"image_height"`
}

// Font 是默认字体设置；字号单位为 pt。
type Font struct {
	FontName         string  `yaml:"font_name"`
	FontSize         float64 `yaml:"font_size"`
	FontShiftFactor  float64 `yaml:"font_shift_factor"`
	LineHeightFactor float64 `yaml:"line_height_factor"`
}

// Colors 定义背景色轮换与分隔线颜色，分量均为 0-1 的归一化 RGB。
type Colors struct {
	BackgroundColorMode    string      `yaml:"background_color_mode"`
	BackgroundColorPalette [][]float64 `yaml:"background_color_palette"`
	LineColor              []float64   `yaml:"line_color"`
}

// Load 读取、严格解析并校验配置文件。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("配置文件 %s: %w", path, err)
	}
	return cfg, nil
}

// Parse 解析并校验配置内容；未知字段同样视为错误。
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("解析 YAML 失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查必填字段与数值范围，错误信息指明具体字段。
func (c *Config) Validate() error {
	if c.IO.OutputFilePath == "" {
		return fmt.Errorf("%w: io.output_file_path", ErrMissingField)
	}
	if c.IO.InputRecipeFilePath == "" {
		return fmt.Errorf("%w: io.input_recipe_file_path", ErrMissingField)
	}
	if c.Page.Width <= 0 {
		return fmt.Errorf("%w: page.width 必须为正数", ErrInvalidField)
	}
	if c.Page.Height <= 0 {
		return fmt.Errorf("%w: page.height 必须为正数", ErrInvalidField)
	}
	if c.DocumentMargins.Left < 0 || c.DocumentMargins.Right < 0 {
		return fmt.Errorf("%w: document_margins 不能为负", ErrInvalidField)
	}
	if c.SectionMargins.Top < 0 || c.SectionMargins.Bottom < 0 {
		return fmt.Errorf("%w: section_margins 不能为负", ErrInvalidField)
	}
	if c.LayoutCover.ImageHeight <= 0 {
		return fmt.Errorf("%w: layout_cover.image_height 必须为正数", ErrInvalidField)
	}
	if c.Font.FontName == "" {
		return fmt.Errorf("%w: font.font_name", ErrMissingField)
	}
	if c.Font.FontSize <= 0 {
		return fmt.Errorf("%w: font.font_size 必须为正数", ErrInvalidField)
	}
	if c.Font.LineHeightFactor <= 0 {
		return fmt.Errorf("%w: font.line_height_factor 必须为正数", ErrInvalidField)
	}
	if c.Font.FontShiftFactor < 0 {
		return fmt.Errorf("%w: font.font_shift_factor 不能为负", ErrInvalidField)
	}
	if c.Colors.BackgroundColorMode != "repeating" {
		return fmt.Errorf("%w: colors.background_color_mode 仅支持 repeating，得到 %q",
			ErrInvalidField, c.Colors.BackgroundColorMode)
	}
	if len(c.Colors.BackgroundColorPalette) == 0 {
		return fmt.Errorf("%w: colors.background_color_palette", ErrMissingField)
	}
	for i, row := range c.Colors.BackgroundColorPalette {
		if err := validateColor(row); err != nil {
			return fmt.Errorf("%w: colors.background_color_palette[%d] %v", ErrInvalidField, i, err)
		}
	}
	if err := validateColor(c.Colors.LineColor); err != nil {
		return fmt.Errorf("%w: colors.line_color %v", ErrInvalidField, err)
	}
	return nil
}

func validateColor(row []float64) error {
	if len(row) != 3 {
		return fmt.Errorf("需要恰好 3 个分量，得到 %d 个", len(row))
	}
	for _, v := range row {
		if v < 0 || v > 1 {
			return fmt.Errorf("分量 %g 超出 [0,1]", v)
		}
	}
	return nil
}

// Params 把配置解析为布局参数：页面尺寸换算为 pt，其余字段按 pt 直接采用。
// 解析只发生一次，布局阶段不再接触原始配置。
func (c *Config) Params() layout.Params {
	return layout.Params{
		PageWidth:        layout.MmToPoints(c.Page.Width),
		PageHeight:       layout.MmToPoints(c.Page.Height),
		MarginLeft:       c.DocumentMargins.Left,
		MarginRight:      c.DocumentMargins.Right,
		SectionTop:       c.SectionMargins.Top,
		SectionBottom:    c.SectionMargins.Bottom,
		CoverHeight:      c.LayoutCover.ImageHeight,
		Font:             layout.FontSpec{Name: c.Font.FontName, Size: c.Font.FontSize},
		LineHeightFactor: c.Font.LineHeightFactor,
		FontShiftFactor:  c.Font.FontShiftFactor,
		Palette:          paletteColors(c.Colors.BackgroundColorPalette),
		LineColor:        rowColor(c.Colors.LineColor),
	}
}

func paletteColors(rows [][]float64) []layout.Color {
	out := make([]layout.Color, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowColor(row))
	}
	return out
}

func rowColor(row []float64) layout.Color {
	if len(row) != 3 {
		return layout.Color{}
	}
	return layout.Color{R: row[0], G: row[1], B: row[2]}
}
