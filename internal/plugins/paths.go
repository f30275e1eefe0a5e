// Package plugins implements the command set spec.md §4.4 describes on
// top of internal/editor: text editing, formatting, lists, tables, and
// clipboard. Every command mutates the document only through
// editor.Editor.Apply/Batch, following the teacher's one-file-per-concern
// layout (go-docx/pkg/docx/run.go, paragraph.go, parfmt.go, pagebreak.go).
package plugins

import "github.com/vortex/wordcore/internal/model"

// runPath returns the path to the run containing the text leaf at leafPath.
func runPath(leafPath model.Path) model.Path {
	return leafPath[:len(leafPath)-1]
}

// paragraphPath returns the path to the paragraph containing the text leaf
// at leafPath (leafPath's grandparent).
func paragraphPath(leafPath model.Path) model.Path {
	return leafPath[:len(leafPath)-2]
}

// sectionPath returns the path to the section containing the paragraph at
// paraPath (paraPath's parent).
func sectionPath(paraPath model.Path) model.Path {
	return paraPath[:len(paraPath)-1]
}

// runIndex returns the run's sibling index within its paragraph.
func runIndex(leafPath model.Path) int {
	return leafPath[len(leafPath)-2]
}

// paragraphIndex returns the paragraph's sibling index within its section.
func paragraphIndex(paraPath model.Path) int {
	return paraPath[len(paraPath)-1]
}

// firstTextPath returns the path to the first text-leaf descendant of n,
// given n's own path.
func firstTextPath(n model.Node, path model.Path) (model.Path, bool) {
	switch v := n.(type) {
	case *model.Leaf:
		if v.Tag() == model.TagText {
			return path, true
		}
		return nil, false
	case *model.Element:
		for i, c := range v.Children() {
			if p, ok := firstTextPath(c, path.Child(i)); ok {
				return p, true
			}
		}
	}
	return nil, false
}
