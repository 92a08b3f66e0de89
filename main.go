package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/AukeB/pdf-chef/config"
	"github.com/AukeB/pdf-chef/document"
	"github.com/AukeB/pdf-chef/layout"
	"github.com/AukeB/pdf-chef/recipe"
	canvasrenderer "github.com/AukeB/pdf-chef/renderer/canvas"
)

// 配置路径固定，本工具不接受命令行参数。
const configPath = "config.yaml"

// 设置该环境变量可将布局结果另存为调试 JSON。
const debugLayoutEnv = "PDFCHEF_DEBUG_LAYOUT"

func main() {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if err := run(cfg, os.Getenv(debugLayoutEnv)); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", cfg.IO.OutputFilePath)
}

// run 串联配方加载、布局与渲染。
func run(cfg *config.Config, debugPath string) error {
	rec, err := recipe.Load(cfg.IO.InputRecipeFilePath)
	if err != nil {
		return err
	}

	r := canvasrenderer.NewRenderer(filepath.Dir(cfg.IO.InputRecipeFilePath))
	doc := document.New(cfg.Params(), r, r, cfg.IO.OutputFilePath)
	if err := doc.Render(rec); err != nil {
		return err
	}

	if debugPath != "" {
		if err := layout.WriteDebugJSON(doc.Layout(), debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	return doc.Save()
}
