package layout

// 布局阶段统一使用 pt；配置中的页面尺寸以 mm 给出，在解析 Params 时换算一次。
// 渲染后端（canvas）以 mm 为画布单位，换算同样依赖这里的常量。

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// MmToPoints converts a millimeter value to points.
func MmToPoints(mm float64) float64 { return mm * MmToPt }

// PointsToMm converts a point value to millimeters.
func PointsToMm(pt float64) float64 { return pt * PtToMm }
