package layout

import "strings"

// Wrap 按贪心策略把文本折成若干行：逐词累积候选行，候选行超宽时提交当前行、
// 以该词开启下一行。单个超宽的词仍独占一行，不做词内截断。空白输入返回空切片。
// 折行只看局部，不做 Knuth 式的全局平衡。
func Wrap(ts Typesetter, text string, font FontSpec, maxWidth float64) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		width, err := ts.TextWidth(candidate, font)
		if err != nil {
			return nil, err
		}
		if width <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines, nil
}

// MeasureLines 返回折行后的文本总高度：行数 × 字号 × 行高系数。
// 宽度测量已在折行阶段完成，这里只是行数的纯函数。
func MeasureLines(lineCount int, fontSize, lineHeightFactor float64) float64 {
	return float64(lineCount) * fontSize * lineHeightFactor
}
