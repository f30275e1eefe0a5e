package plugins

import (
	"testing"

	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/selection"
)

func TestToggleBoldWholeRunSelection(t *testing.T) {
	e := newDocEditor(t, []string{"hello world"})
	e.SetSelection(selection.Create(leafPathAt(0, 0), 0, leafPathAt(0, 0), 11))
	if err := ToggleBool(e, PropBold); err != nil {
		t.Fatalf("ToggleBool: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "hello world" {
		t.Fatalf("text changed: %q", got)
	}
	n, err := model.Get(e.Document().Root, runPathAt(0, 0))
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	props, _ := n.(*model.Element).Props().(*model.RunProperties)
	if props == nil || props.Bold == nil || !*props.Bold {
		t.Fatal("expected bold set")
	}
}

func TestToggleBoldIsMajorityRule(t *testing.T) {
	e := newDocEditor(t, []string{"hello world"})
	e.SetSelection(selection.Create(leafPathAt(0, 0), 0, leafPathAt(0, 0), 11))
	if err := ToggleBool(e, PropBold); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if err := ToggleBool(e, PropBold); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	n, err := model.Get(e.Document().Root, runPathAt(0, 0))
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	props, _ := n.(*model.Element).Props().(*model.RunProperties)
	if props != nil && props.Bold != nil && *props.Bold {
		t.Fatal("expected bold cleared on second toggle")
	}
}

func TestToggleBoldPartialRunSplitsAtBoundaries(t *testing.T) {
	e := newDocEditor(t, []string{"hello world"})
	e.SetSelection(selection.Create(leafPathAt(0, 0), 2, leafPathAt(0, 0), 7))
	if err := ToggleBool(e, PropBold); err != nil {
		t.Fatalf("ToggleBool: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "hello world" {
		t.Fatalf("text changed: %q", got)
	}
	sec, err := model.Get(e.Document().Root, model.Path{0, 0, 0})
	if err != nil {
		t.Fatalf("get paragraph: %v", err)
	}
	para := sec.(*model.Element)
	if n := para.ChildCount(); n != 3 {
		t.Fatalf("expected 3 runs after split, got %d", n)
	}
	middle, _ := model.AsElement(para.ChildAt(1))
	props, _ := middle.Props().(*model.RunProperties)
	if props == nil || props.Bold == nil || !*props.Bold {
		t.Fatal("expected middle run bold")
	}
	first, _ := model.AsElement(para.ChildAt(0))
	fp, _ := first.Props().(*model.RunProperties)
	if fp != nil && fp.Bold != nil && *fp.Bold {
		t.Fatal("expected first run unaffected")
	}
}
