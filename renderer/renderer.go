package renderer

import "github.com/AukeB/pdf-chef/layout"

// Renderer 将布局结果输出为最终文件字节，例如 PDF。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
