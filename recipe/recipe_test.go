package recipe

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleRecipe = `{
  "cover_image": "images/pumpkin_risotto.jpg",
  "title": "Pumpkin Risotto",
  "description": "A creamy autumn classic.",
  "ingredients": ["300 g risotto rice", "1 small pumpkin", "1 l vegetable stock"],
  "instructions": [
    {
      "section_number": 1,
      "section": "Preparation",
      "steps": [
        {"step_number": 1, "text": "Chop the pumpkin."},
        {"step_number": 2, "text": "Heat the stock."}
      ]
    }
  ]
}`

func TestParsePreservesOrder(t *testing.T) {
	// key 顺序刻意打乱，解析结果必须按文档顺序排列
	input := `{"instructions": [], "title": "Pumpkin Risotto", "cover_image": "a.jpg"}`
	rec, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}

	var names []string
	for _, sec := range rec.Sections {
		names = append(names, sec.Name)
	}
	want := []string{"instructions", "title", "cover_image"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("顺序未保留 (-want +got):\n%s", diff)
	}
}

func TestParseSample(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecipe))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(rec.Sections) != 5 {
		t.Fatalf("应解析出 5 个 section, got %d", len(rec.Sections))
	}

	byKind := map[Kind]Section{}
	for _, sec := range rec.Sections {
		byKind[sec.Kind] = sec
	}
	if byKind[KindTitle].Text != "Pumpkin Risotto" {
		t.Fatalf("标题内容不符: %q", byKind[KindTitle].Text)
	}
	if len(byKind[KindIngredients].Items) != 3 {
		t.Fatalf("食材数量不符: %v", byKind[KindIngredients].Items)
	}
	groups := byKind[KindInstructions].Groups
	if len(groups) != 1 || groups[0].Number != 1 || groups[0].Title != "Preparation" {
		t.Fatalf("步骤分组不符: %+v", groups)
	}
	if len(groups[0].Steps) != 2 || groups[0].Steps[1].Number != 2 {
		t.Fatalf("步骤编号不符: %+v", groups[0].Steps)
	}
}

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"cover_image":     KindCoverImage,
		"title":           KindTitle,
		"description":     KindDescription,
		"ingredients":     KindIngredients,
		"instructions":    KindInstructions,
		"nutrition_facts": KindUnknown,
		"":                KindUnknown,
	}
	for name, want := range cases {
		if got := KindOf(name); got != want {
			t.Fatalf("KindOf(%q) = %v, want %v", name, got, want)
		}
	}
}

// TestUnknownSectionKept 验证未知 section 被保留为 KindUnknown，内容不做约束。
func TestUnknownSectionKept(t *testing.T) {
	input := `{"nutrition_facts": {"calories": 420}, "title": "x"}`
	rec, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("未知 section 不应导致解析失败: %v", err)
	}
	if rec.Sections[0].Kind != KindUnknown || rec.Sections[0].Name != "nutrition_facts" {
		t.Fatalf("未知 section 解析不符: %+v", rec.Sections[0])
	}
}

// TestShapeErrors 验证内容形状不符时返回 ErrSectionShape 并指明 section。
func TestShapeErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"ingredients", `{"ingredients": "not a list"}`},
		{"title", `{"title": ["not", "a", "string"]}`},
		{"instructions", `{"instructions": "not groups"}`},
	}
	for _, tc := range cases {
		_, err := Parse(strings.NewReader(tc.input))
		if !errors.Is(err, ErrSectionShape) {
			t.Fatalf("%s: 期望 ErrSectionShape, got %v", tc.name, err)
		}
		if !strings.Contains(err.Error(), tc.name) {
			t.Fatalf("%s: 错误信息未指明 section: %v", tc.name, err)
		}
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	for _, input := range []string{`[]`, `"text"`, `42`} {
		if _, err := Parse(strings.NewReader(input)); !errors.Is(err, ErrNotObject) {
			t.Fatalf("%s: 期望 ErrNotObject, got %v", input, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does/not/exist.json")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("期望文件不存在错误, got %v", err)
	}
}
