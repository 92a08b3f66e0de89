package layout

// 该文件定义布局结果与绘制元素，供布局计算、渲染与调试 JSON 共用。
// 所有坐标单位均为 pt，原点在页面左下角（与 PDF 坐标系一致）。

// Result 保存单页布局后的全部绘制元素。
type Result struct {
	Page Page `json:"page"`
}

// Page 记录页面尺寸与可以直接渲染的元素。
type Page struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Texts  []TextBox  `json:"texts"`
	Images []ImageBox `json:"images"`
	Lines  []Line     `json:"lines,omitempty"`
	Rects  []Rect     `json:"rects,omitempty"`
}

// Color 采用 0-1 的归一化 RGB 数值，与配置文件中的调色板一致。
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// FontSpec 描述排版使用的字体：名称允许带 -Bold 之类的风格后缀，字号单位为 pt。
type FontSpec struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

// TextBox 表示一个已经排好坐标的文本块，Y 为首行基线位置。
// 后续各行依次向下偏移 LineHeight。
type TextBox struct {
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Font       FontSpec   `json:"font"`
	LineHeight float64    `json:"lineHeight"`
	Color      Color      `json:"color"`
	Lines      []TextLine `json:"lines"`
}

// TextLine 表示排版后的一行文本及其测量宽度。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// ImageBox 描述图片位置与尺寸，Y 为图片底边。
type ImageBox struct {
	Path   string  `json:"path"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Line 表示一条分隔线。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
}

// Rect 表示一个填充矩形（背景色块，无描边）。
type Rect struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	FillColor Color   `json:"fillColor"`
}
