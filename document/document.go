// Package document 实现文档流控制器：Open 状态下逐个接收 section，
// Save 之后进入 Closed，任何继续绘制的调用立即失败。
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AukeB/pdf-chef/layout"
	"github.com/AukeB/pdf-chef/recipe"
	"github.com/AukeB/pdf-chef/renderer"
)

// ErrDocumentClosed 表示文档已定稿，继续绘制属于调用方的编程错误。
var ErrDocumentClosed = errors.New("document: 文档已定稿，不能继续绘制")

// sectionOrder 是 section 的固定渲染顺序；配方文件自身的 key 顺序不参与排序。
var sectionOrder = []recipe.Kind{
	recipe.KindCoverImage,
	recipe.KindTitle,
	recipe.KindDescription,
	recipe.KindIngredients,
	recipe.KindInstructions,
}

// Document 拥有排版游标与输出路径，状态只有 Open 与 Closed 两种。
type Document struct {
	flow    *layout.Flow
	r       renderer.Renderer
	outPath string
	closed  bool
}

// New 创建一个处于 Open 状态的文档。
func New(params layout.Params, ts layout.Typesetter, r renderer.Renderer, outPath string) *Document {
	return &Document{
		flow:    layout.NewFlow(params, ts),
		r:       r,
		outPath: outPath,
	}
}

// AddSection 排版一个 section（Open → Open）。Closed 状态下立即失败。
func (d *Document) AddSection(sec recipe.Section) error {
	if d.closed {
		return ErrDocumentClosed
	}
	return d.flow.Section(sec)
}

// Render 按固定顺序渲染配方中识别出的全部 section。
func (d *Document) Render(rec *recipe.Recipe) error {
	for _, kind := range sectionOrder {
		for _, sec := range rec.Sections {
			if sec.Kind != kind {
				continue
			}
			if err := d.AddSection(sec); err != nil {
				return fmt.Errorf("渲染 section %q 失败: %w", sec.Name, err)
			}
		}
	}
	return nil
}

// CursorY 暴露当前游标位置，便于调用方与测试观察排版进度。
func (d *Document) CursorY() float64 { return d.flow.CursorY() }

// Layout 返回当前布局结果（调试 JSON 等用途）。
func (d *Document) Layout() *layout.Result { return d.flow.Result() }

// Save 渲染并写出 PDF（Open → Closed）。父目录不存在时自动创建。
// 出错时不保证已写出的内容可用，调用方应视任何错误为输出无效。
func (d *Document) Save() error {
	if d.closed {
		return ErrDocumentClosed
	}

	pdfBytes, err := d.r.Render(d.flow.Result())
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if dir := filepath.Dir(d.outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(d.outPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}

	d.closed = true
	return nil
}
