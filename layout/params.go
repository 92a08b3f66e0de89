package layout

// Params 是布局阶段使用的全部参数，单位统一为 pt。
// 由 config.Config.Params() 解析一次生成，布局期间不可变。
type Params struct {
	PageWidth  float64
	PageHeight float64

	// 文档左右边距
	MarginLeft  float64
	MarginRight float64

	// 每个 section 的上下留白
	SectionTop    float64
	SectionBottom float64

	// 封面图的固定高度
	CoverHeight float64

	Font             FontSpec
	LineHeightFactor float64
	// FontShiftFactor 是基线修正系数：背景矩形顶边与字体视觉高度之间的经验补偿。
	FontShiftFactor float64

	// Palette 为各文字 section 轮换使用的背景色
	Palette   []Color
	LineColor Color
}

// MaxLineWidth 返回正文可用的最大行宽。
func (p Params) MaxLineWidth() float64 {
	return p.PageWidth - p.MarginLeft - p.MarginRight
}
