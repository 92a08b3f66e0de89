package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/AukeB/pdf-chef/layout"
)

const validConfig = `
io:
  output_file_path: output/recipes.pdf
  input_recipe_file_path: recipes/pumpkin_risotto.json
page:
  width: 105
  height: 600
document_margins:
  left: 20
  right: 20
section_margins:
  top: 10
  bottom: 10
layout_cover:
  image_height: 150
font:
  font_name: Helvetica
  font_size: 12
  font_shift_factor: 0.35
  line_height_factor: 1.2
colors:
  background_color_mode: repeating
  background_color_palette:
    - [0.87, 0.72, 0.53]
    - [0.87, 0.85, 0.55]
  line_color: [0.25, 0.25, 0.25]
`

func mustParse(t *testing.T, yml string) *Config {
	t.Helper()
	cfg, err := Parse([]byte(yml))
	if err != nil {
		t.Fatalf("解析配置失败: %v", err)
	}
	return cfg
}

func TestParseValid(t *testing.T) {
	cfg := mustParse(t, validConfig)
	if cfg.IO.OutputFilePath != "output/recipes.pdf" {
		t.Fatalf("输出路径不符: %q", cfg.IO.OutputFilePath)
	}
	if len(cfg.Colors.BackgroundColorPalette) != 2 {
		t.Fatalf("调色板长度不符: %d", len(cfg.Colors.BackgroundColorPalette))
	}
}

// TestParams 验证页面尺寸 mm→pt 换算与其余字段的直传。
func TestParams(t *testing.T) {
	cfg := mustParse(t, validConfig)
	p := cfg.Params()

	if got, want := p.PageWidth, layout.MmToPoints(105); got != want {
		t.Fatalf("页宽换算不符: got=%g want=%g", got, want)
	}
	if got, want := p.PageHeight, layout.MmToPoints(600); got != want {
		t.Fatalf("页高换算不符: got=%g want=%g", got, want)
	}
	if p.Font.Name != "Helvetica" || p.Font.Size != 12 {
		t.Fatalf("字体直传不符: %+v", p.Font)
	}
	if p.LineHeightFactor != 1.2 || p.FontShiftFactor != 0.35 {
		t.Fatalf("系数直传不符: %+v", p)
	}
	want := layout.Color{R: 0.87, G: 0.72, B: 0.53}
	if len(p.Palette) != 2 || p.Palette[0] != want {
		t.Fatalf("调色板转换不符: %+v", p.Palette)
	}
	if p.MaxLineWidth() != p.PageWidth-40 {
		t.Fatalf("最大行宽不符: %g", p.MaxLineWidth())
	}
}

func TestValidateMissingFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(string) string
	}{
		{"io.output_file_path", func(s string) string {
			return strings.Replace(s, "output_file_path: output/recipes.pdf", "output_file_path: \"\"", 1)
		}},
		{"io.input_recipe_file_path", func(s string) string {
			return strings.Replace(s, "input_recipe_file_path: recipes/pumpkin_risotto.json", "input_recipe_file_path: \"\"", 1)
		}},
		{"font.font_name", func(s string) string {
			return strings.Replace(s, "font_name: Helvetica", "font_name: \"\"", 1)
		}},
	}
	for _, tc := range cases {
		_, err := Parse([]byte(tc.mutate(validConfig)))
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("%s: 期望 ErrMissingField, got %v", tc.field, err)
		}
		if !strings.Contains(err.Error(), tc.field) {
			t.Fatalf("%s: 错误信息未指明字段: %v", tc.field, err)
		}
	}
}

func TestValidateInvalidFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(string) string
	}{
		{"负的页宽", func(s string) string { return strings.Replace(s, "width: 105", "width: -1", 1) }},
		{"零字号", func(s string) string { return strings.Replace(s, "font_size: 12", "font_size: 0", 1) }},
		{"未知的配色模式", func(s string) string {
			return strings.Replace(s, "background_color_mode: repeating", "background_color_mode: rainbow", 1)
		}},
		{"分量个数不是 3", func(s string) string {
			return strings.Replace(s, "- [0.87, 0.72, 0.53]", "- [0.87, 0.72]", 1)
		}},
		{"分量超出范围", func(s string) string {
			return strings.Replace(s, "- [0.87, 0.72, 0.53]", "- [0.87, 0.72, 1.53]", 1)
		}},
		{"分隔线颜色非法", func(s string) string {
			return strings.Replace(s, "line_color: [0.25, 0.25, 0.25]", "line_color: [2, 0, 0]", 1)
		}},
	}
	for _, tc := range cases {
		if _, err := Parse([]byte(tc.mutate(validConfig))); !errors.Is(err, ErrInvalidField) {
			t.Fatalf("%s: 期望 ErrInvalidField, got %v", tc.name, err)
		}
	}
}

func TestValidateEmptyPalette(t *testing.T) {
	yml := strings.Replace(validConfig,
		"  background_color_palette:\n    - [0.87, 0.72, 0.53]\n    - [0.87, 0.85, 0.55]\n",
		"  background_color_palette: []\n", 1)
	_, err := Parse([]byte(yml))
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("空调色板应报缺少字段, got %v", err)
	}
}

// TestParseRejectsUnknownKeys 验证严格模式会拒绝未知配置键。
func TestParseRejectsUnknownKeys(t *testing.T) {
	yml := validConfig + "\nextra_section:\n  foo: 1\n"
	if _, err := Parse([]byte(yml)); err == nil {
		t.Fatalf("未知配置键应报错")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does/not/exist.yaml"); err == nil {
		t.Fatalf("缺失的配置文件应报错")
	}
}
