package layout

// Typesetter 提供文字与图片的测量能力，由渲染后端实现。
type Typesetter interface {
	// TextWidth 返回文本按给定字体渲染后的宽度（pt）。
	TextWidth(content string, font FontSpec) (float64, error)
	// ImageSize 返回图片的原始像素尺寸。
	ImageSize(path string) (width, height float64, err error)
}
