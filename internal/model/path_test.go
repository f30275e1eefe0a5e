package model

import (
	"testing"

	"github.com/vortex/wordcore/internal/idgen"
)

func TestPathCompare(t *testing.T) {
	cases := []struct {
		a, b Path
		want int
	}{
		{Path{0, 1}, Path{0, 2}, -1},
		{Path{0, 2}, Path{0, 1}, 1},
		{Path{0}, Path{0, 0}, -1},
		{Path{0, 0}, Path{0}, 1},
		{Path{1, 2, 3}, Path{1, 2, 3}, 0},
	}
	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestGetResolvesPath(t *testing.T) {
	idgen.Reset()
	doc := NewDocument(SectionProperties{})
	body := doc.Body()
	section := body.ChildAt(0)
	para := section.(*Element).ChildAt(0)
	run := para.(*Element).ChildAt(0)
	text := run.(*Element).ChildAt(0)

	got, err := Get(doc.Root, Path{0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID() != text.ID() {
		t.Errorf("Get returned wrong node: got id %s want %s", got.ID(), text.ID())
	}
}

func TestGetPathInvalid(t *testing.T) {
	idgen.Reset()
	doc := NewDocument(SectionProperties{})
	if _, err := Get(doc.Root, Path{5}); err == nil {
		t.Fatal("expected PathInvalid error")
	}
}
