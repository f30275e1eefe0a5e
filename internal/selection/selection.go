// Package selection implements the document-relative selection model:
// a normalized anchor/focus pair of model.Points and the handful of pure
// functions the editor and plugins use to query and reshape it.
package selection

import (
	"strings"

	"github.com/vortex/wordcore/internal/model"
)

// Selection is an anchor/focus pair of points. A normalized selection has
// Anchor lexicographically before or equal to Focus; editing gestures
// (shift-click, shift-arrow) may produce a backward selection, which
// Normalize corrects.
type Selection struct {
	Anchor model.Point
	Focus  model.Point
}

// Collapse returns a collapsed selection (anchor == focus) at the given
// text position.
func Collapse(path model.Path, offset int) Selection {
	p := model.Point{Path: path, Offset: offset}
	return Selection{Anchor: p, Focus: p}
}

// Create builds a selection from explicit anchor and focus coordinates.
// The result is not normalized — callers needing reading-order endpoints
// should call Normalize.
func Create(anchorPath model.Path, anchorOffset int, focusPath model.Path, focusOffset int) Selection {
	return Selection{
		Anchor: model.Point{Path: anchorPath, Offset: anchorOffset},
		Focus:  model.Point{Path: focusPath, Offset: focusOffset},
	}
}

// IsCollapsed reports whether anchor and focus address the same point.
func IsCollapsed(sel Selection) bool {
	return sel.Anchor.Equal(sel.Focus)
}

// comparePoints orders two points: by path first, then by offset when the
// paths are equal.
func comparePoints(a, b model.Point) int {
	if c := a.Path.Compare(b.Path); c != 0 {
		return c
	}
	switch {
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	default:
		return 0
	}
}

// Normalize swaps anchor and focus if the selection runs backward, so the
// returned selection's anchor is never after its focus in reading order.
func Normalize(sel Selection) Selection {
	if comparePoints(sel.Anchor, sel.Focus) > 0 {
		return Selection{Anchor: sel.Focus, Focus: sel.Anchor}
	}
	return sel
}

type textLeaf struct {
	path      model.Path
	paraPath  model.Path
	leaf      *model.Leaf
}

func collectTextLeaves(n model.Node, path model.Path, paraPath model.Path) []textLeaf {
	switch v := n.(type) {
	case *model.Leaf:
		if v.Tag() != model.TagText {
			return nil
		}
		return []textLeaf{{path: path.Clone(), paraPath: paraPath, leaf: v}}
	case *model.Element:
		pp := paraPath
		if v.Tag() == model.TagParagraph {
			pp = path.Clone()
		}
		var out []textLeaf
		for i, c := range v.Children() {
			out = append(out, collectTextLeaves(c, path.Child(i), pp)...)
		}
		return out
	default:
		return nil
	}
}

// GetSelectedText returns the plain-text content of sel, with one "\n"
// inserted for every paragraph boundary crossed between the first and last
// text leaf in the selection.
func GetSelectedText(doc *model.Document, sel Selection) string {
	sel = Normalize(sel)
	leaves := collectTextLeaves(doc.Root, model.Path{}, nil)

	var sb strings.Builder
	var lastPara model.Path
	started := false
	for _, lr := range leaves {
		if lr.path.Compare(sel.Anchor.Path) < 0 {
			continue
		}
		if lr.path.Compare(sel.Focus.Path) > 0 {
			break
		}
		runes := []rune(lr.leaf.Text())
		start, end := 0, len(runes)
		if lr.path.Equal(sel.Anchor.Path) {
			start = sel.Anchor.Offset
		}
		if lr.path.Equal(sel.Focus.Path) {
			end = sel.Focus.Offset
		}
		if start > len(runes) {
			start = len(runes)
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start > end {
			start = end
		}
		if started && !lr.paraPath.Equal(lastPara) {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(runes[start:end]))
		lastPara = lr.paraPath
		started = true
	}
	return sb.String()
}
