// Package recipe 负责加载配方 JSON 并把各 section 解析为带类型标签的结构。
package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Kind 标识配方 section 的类型；未识别的名称映射为 KindUnknown。
type Kind int

const (
	KindUnknown Kind = iota
	KindCoverImage
	KindTitle
	KindDescription
	KindIngredients
	KindInstructions
)

func (k Kind) String() string {
	switch k {
	case KindCoverImage:
		return "cover_image"
	case KindTitle:
		return "title"
	case KindDescription:
		return "description"
	case KindIngredients:
		return "ingredients"
	case KindInstructions:
		return "instructions"
	default:
		return "unknown"
	}
}

var (
	// ErrSectionShape 表示 section 内容与其类型要求的形状不符。
	ErrSectionShape = errors.New("recipe: section 内容形状不符")
	// ErrNotObject 表示配方顶层不是 JSON 对象。
	ErrNotObject = errors.New("recipe: 顶层必须是 JSON 对象")
)

// Section 是带类型标签的配方段落，payload 按 Kind 取用：
// Text 用于 cover_image（图片路径）、title 与 description；
// Items 用于 ingredients；Groups 用于 instructions。
type Section struct {
	Name   string
	Kind   Kind
	Text   string
	Items  []string
	Groups []StepGroup
}

// StepGroup 与 Step 沿用配方 JSON 的原始字段名。
type StepGroup struct {
	Number int    `json:"section_number"`
	Title  string `json:"section"`
	Steps  []Step `json:"steps"`
}

// Step 是一条编号步骤。
type Step struct {
	Number int    `json:"step_number"`
	Text   string `json:"text"`
}

// Recipe 按文档中出现的顺序保存全部 section。加载后不再修改。
type Recipe struct {
	Sections []Section
}

// Load 读取并解析配方文件。
func Load(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开配方文件 %s: %w", path, err)
	}
	defer f.Close()

	rec, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("解析配方文件 %s 失败: %w", path, err)
	}
	return rec, nil
}

// Parse 以 token 流方式解码顶层对象，保留 key 在文档中的出现顺序。
func Parse(r io.Reader) (*Recipe, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	rec := &Recipe{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, ErrNotObject
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		sec, err := decodeSection(name, raw)
		if err != nil {
			return nil, err
		}
		rec.Sections = append(rec.Sections, sec)
	}
	// 消费结尾的 '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

// KindOf 把 section 名称映射为类型标签。
func KindOf(name string) Kind {
	switch name {
	case "cover_image":
		return KindCoverImage
	case "title":
		return KindTitle
	case "description":
		return KindDescription
	case "ingredients":
		return KindIngredients
	case "instructions":
		return KindInstructions
	default:
		return KindUnknown
	}
}

func decodeSection(name string, raw json.RawMessage) (Section, error) {
	sec := Section{Name: name, Kind: KindOf(name)}
	switch sec.Kind {
	case KindCoverImage, KindTitle, KindDescription:
		if err := json.Unmarshal(raw, &sec.Text); err != nil {
			return sec, shapeError(name, "字符串", err)
		}
	case KindIngredients:
		if err := json.Unmarshal(raw, &sec.Items); err != nil {
			return sec, shapeError(name, "字符串数组", err)
		}
	case KindInstructions:
		if err := json.Unmarshal(raw, &sec.Groups); err != nil {
			return sec, shapeError(name, "步骤分组数组", err)
		}
	default:
		// 未识别的 section 只保留名称，内容不做约束
	}
	return sec, nil
}

func shapeError(name, want string, err error) error {
	return fmt.Errorf("%w: section %q 需要%s: %v", ErrSectionShape, name, want, err)
}
