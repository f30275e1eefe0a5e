package plugins

import (
	"testing"

	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/selection"
)

func TestInsertTextAtCollapsedSelection(t *testing.T) {
	e := newDocEditor(t, []string{"hello"})
	e.SetSelection(selection.Collapse(leafPathAt(0, 0), 5))
	if err := InsertText(e, " world"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "hello world" {
		t.Fatalf("got %q", got)
	}
	if off := e.Selection().Anchor.Offset; off != 11 {
		t.Fatalf("cursor offset = %d", off)
	}
}

func TestInsertTextReplacesSelection(t *testing.T) {
	e := newDocEditor(t, []string{"hello"})
	e.SetSelection(selection.Create(leafPathAt(0, 0), 1, leafPathAt(0, 0), 4))
	if err := InsertText(e, "X"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "hXo" {
		t.Fatalf("got %q", got)
	}
}

func TestDeleteSelectionSameLeaf(t *testing.T) {
	e := newDocEditor(t, []string{"hello"})
	e.SetSelection(selection.Create(leafPathAt(0, 0), 1, leafPathAt(0, 0), 4))
	if err := DeleteSelection(e); err != nil {
		t.Fatalf("DeleteSelection: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "ho" {
		t.Fatalf("got %q", got)
	}
}

func TestDeleteSelectionCrossParagraph(t *testing.T) {
	e := newDocEditor(t, []string{"hello"}, []string{"world"})
	e.SetSelection(selection.Create(leafPathAt(0, 0), 3, leafPathAt(1, 0), 2))
	if err := DeleteSelection(e); err != nil {
		t.Fatalf("DeleteSelection: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "helrld" {
		t.Fatalf("got %q", got)
	}
}

func TestBackspaceWithinLeaf(t *testing.T) {
	e := newDocEditor(t, []string{"hello"})
	e.SetSelection(selection.Collapse(leafPathAt(0, 0), 5))
	if err := Backspace(e); err != nil {
		t.Fatalf("Backspace: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "hell" {
		t.Fatalf("got %q", got)
	}
}

func TestBackspaceAcrossParagraph(t *testing.T) {
	e := newDocEditor(t, []string{"hello"}, []string{"world"})
	e.SetSelection(selection.Collapse(leafPathAt(1, 0), 0))
	if err := Backspace(e); err != nil {
		t.Fatalf("Backspace: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "helloworld" {
		t.Fatalf("got %q", got)
	}
}

func TestSplitParagraphAtCursor(t *testing.T) {
	e := newDocEditor(t, []string{"hello"})
	e.SetSelection(selection.Collapse(leafPathAt(0, 0), 2))
	if err := SplitParagraph(e); err != nil {
		t.Fatalf("SplitParagraph: %v", err)
	}
	sec, err := model.Get(e.Document().Root, model.Path{0, 0})
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if n := sec.(*model.Element).ChildCount(); n != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", n)
	}
	if got := model.Text(e.Document().Root); got != "hello" {
		t.Fatalf("got %q", got)
	}
}
