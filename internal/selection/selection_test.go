package selection

import (
	"testing"

	"github.com/vortex/wordcore/internal/idgen"
	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/ops"
)

func buildTwoParagraphDoc(t *testing.T) *model.Document {
	t.Helper()
	idgen.Reset()
	doc := model.NewDocument(model.SectionProperties{})
	textPath := model.Path{0, 0, 0, 0, 0}
	doc, err := ops.Apply(doc, ops.InsertText{Path: textPath, Offset: 0, Text: "hello"})
	if err != nil {
		t.Fatalf("insert first paragraph text: %v", err)
	}
	paraPath := model.Path{0, 0, 0}
	doc, err = ops.Apply(doc, ops.SplitNode{Path: paraPath, Position: 1})
	if err != nil {
		t.Fatalf("split paragraph: %v", err)
	}
	secondTextPath := model.Path{0, 0, 1, 0, 0}
	doc, err = ops.Apply(doc, ops.InsertNode{Path: model.Path{0, 0, 1, 0}, Node: model.NewElement(model.TagRun, (*model.RunProperties)(nil), model.NewTextLeaf("world"))})
	if err != nil {
		t.Fatalf("insert run into second paragraph: %v", err)
	}
	_ = secondTextPath
	return doc
}

func TestNormalizeSwapsBackwardSelection(t *testing.T) {
	a := model.Point{Path: model.Path{0, 1}, Offset: 0}
	b := model.Point{Path: model.Path{0, 2}, Offset: 0}
	sel := Normalize(Selection{Anchor: b, Focus: a})
	if !sel.Anchor.Equal(a) || !sel.Focus.Equal(b) {
		t.Fatalf("expected normalized anchor=%v focus=%v, got anchor=%v focus=%v", a, b, sel.Anchor, sel.Focus)
	}
}

func TestIsCollapsed(t *testing.T) {
	p := model.Point{Path: model.Path{0}, Offset: 3}
	if !IsCollapsed(Collapse(p.Path, p.Offset)) {
		t.Fatal("expected collapsed selection")
	}
	if IsCollapsed(Create(model.Path{0}, 0, model.Path{0}, 1)) {
		t.Fatal("expected non-collapsed selection")
	}
}

func TestGetSelectedTextSameLeaf(t *testing.T) {
	idgen.Reset()
	doc := model.NewDocument(model.SectionProperties{})
	textPath := model.Path{0, 0, 0, 0, 0}
	doc, err := ops.Apply(doc, ops.InsertText{Path: textPath, Offset: 0, Text: "hello world"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	sel := Create(textPath, 0, textPath, 5)
	if got := GetSelectedText(doc, sel); got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestGetSelectedTextAcrossParagraphs(t *testing.T) {
	doc := buildTwoParagraphDoc(t)
	first := model.Path{0, 0, 0, 0, 0}
	second := model.Path{0, 0, 1, 0, 0}
	sel := Create(first, 0, second, 5)
	want := "hello\nworld"
	if got := GetSelectedText(doc, sel); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
