package plugins

import (
	"testing"

	"github.com/vortex/wordcore/internal/editor"
	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/selection"
)

func paraNumberingDirect(t *testing.T, e *editor.Editor, path model.Path) *model.Numbering {
	t.Helper()
	n, err := model.Get(e.Document().Root, path)
	if err != nil {
		t.Fatalf("get paragraph: %v", err)
	}
	props, _ := n.(*model.Element).Props().(*model.ParagraphProperties)
	if props == nil {
		return nil
	}
	return props.Numbering
}

func TestToggleBulletSetsAndClears(t *testing.T) {
	e := newDocEditor(t, []string{"one"}, []string{"two"})
	e.SetSelection(selection.Create(leafPathAt(0, 0), 0, leafPathAt(1, 0), 3))

	if err := ToggleNumbering(e, NumIDBullet); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	for i := 0; i < 2; i++ {
		num := paraNumberingDirect(t, e, paraPathAt(i))
		if num == nil || num.NumID != NumIDBullet {
			t.Fatalf("paragraph %d: expected bullet numbering, got %v", i, num)
		}
	}

	if err := ToggleNumbering(e, NumIDBullet); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	for i := 0; i < 2; i++ {
		if num := paraNumberingDirect(t, e, paraPathAt(i)); num != nil {
			t.Fatalf("paragraph %d: expected numbering cleared, got %v", i, num)
		}
	}
}

func TestIndentOutdentClampsLevel(t *testing.T) {
	e := newDocEditor(t, []string{"one"})
	e.SetSelection(selection.Collapse(leafPathAt(0, 0), 0))
	if err := ToggleNumbering(e, NumIDNumbered); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	for i := 0; i < 9; i++ {
		if err := Indent(e); err != nil {
			t.Fatalf("indent: %v", err)
		}
	}
	num := paraNumberingDirect(t, e, paraPathAt(0))
	if num == nil || num.Level != maxListLevel {
		t.Fatalf("expected level clamped to %d, got %v", maxListLevel, num)
	}
	for i := 0; i < 10; i++ {
		if err := Outdent(e); err != nil {
			t.Fatalf("outdent: %v", err)
		}
	}
	if num := paraNumberingDirect(t, e, paraPathAt(0)); num != nil {
		t.Fatalf("expected numbering cleared after outdenting past 0, got %v", num)
	}
}
