package plugins

import (
	"fmt"

	"github.com/vortex/wordcore/internal/editor"
	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/ops"
	"github.com/vortex/wordcore/internal/selection"
)

// RegisterTextEditing adds the insert/delete/backspace/split commands to e.
func RegisterTextEditing(e *editor.Editor) {
	e.RegisterCommand(&editor.Command{
		ID:         "text.insert",
		Name:       "Insert text",
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute: func(e *editor.Editor, args any) error {
			text, _ := args.(string)
			return InsertText(e, text)
		},
	})
	e.RegisterCommand(&editor.Command{
		ID:         "text.deleteSelection",
		Name:       "Delete selection",
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute: func(e *editor.Editor, args any) error {
			return DeleteSelection(e)
		},
	})
	e.RegisterCommand(&editor.Command{
		ID:        "text.backspace",
		Name:      "Backspace",
		Shortcuts: []string{"Backspace"},
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute: func(e *editor.Editor, args any) error {
			return Backspace(e)
		},
	})
	e.RegisterCommand(&editor.Command{
		ID:        "text.splitParagraph",
		Name:      "Split paragraph",
		Shortcuts: []string{"Enter"},
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute: func(e *editor.Editor, args any) error {
			return SplitParagraph(e)
		},
	})
}

// InsertText inserts text at the current selection, first deleting it if
// non-collapsed. The inserted text always carries the carrier leaf's run
// properties; callers needing different styling apply a formatting
// command afterward.
func InsertText(e *editor.Editor, text string) error {
	return e.Batch(func() error {
		sel := selection.Normalize(e.Selection())
		if !selection.IsCollapsed(sel) {
			if err := deleteSelectionOps(e, sel); err != nil {
				return err
			}
			sel = selection.Collapse(e.Selection().Anchor.Path, e.Selection().Anchor.Offset)
		}
		point := sel.Anchor
		if err := e.Apply(ops.InsertText{Path: point.Path, Offset: point.Offset, Text: text}); err != nil {
			return err
		}
		e.SetSelection(selection.Collapse(point.Path, point.Offset+len([]rune(text))))
		return nil
	})
}

// DeleteSelection removes the current (non-collapsed) selection using the
// three deterministic cases spec.md §4.4.1 describes.
func DeleteSelection(e *editor.Editor) error {
	sel := selection.Normalize(e.Selection())
	if selection.IsCollapsed(sel) {
		return nil
	}
	return e.Batch(func() error {
		return deleteSelectionOps(e, sel)
	})
}

func deleteSelectionOps(e *editor.Editor, sel selection.Selection) error {
	anchor, focus := sel.Anchor, sel.Focus

	switch {
	case anchor.Path.Equal(focus.Path):
		return deleteSameLeaf(e, anchor, focus)
	case paragraphPath(anchor.Path).Equal(paragraphPath(focus.Path)):
		return deleteSameParagraph(e, anchor, focus)
	default:
		return deleteCrossParagraph(e, anchor, focus)
	}
}

func deleteSameLeaf(e *editor.Editor, anchor, focus model.Point) error {
	min, max := anchor.Offset, focus.Offset
	if err := e.Apply(ops.DeleteText{Path: anchor.Path, Offset: min, Length: max - min}); err != nil {
		return err
	}
	e.SetSelection(selection.Collapse(anchor.Path, min))
	return nil
}

func deleteSameParagraph(e *editor.Editor, anchor, focus model.Point) error {
	paraPath := paragraphPath(anchor.Path)
	anchorLeaf, err := model.GetTextLeaf(e.Document().Root, anchor.Path)
	if err != nil {
		return err
	}
	anchorLen := anchorLeaf.TextLen()
	if err := e.Apply(ops.DeleteText{Path: anchor.Path, Offset: anchor.Offset, Length: anchorLen - anchor.Offset}); err != nil {
		return err
	}

	aRunIdx := runIndex(anchor.Path)
	fRunIdx := runIndex(focus.Path)
	for idx := fRunIdx - 1; idx > aRunIdx; idx-- {
		runNode, err := model.Get(e.Document().Root, paraPath.Child(idx))
		if err != nil {
			return err
		}
		if err := e.Apply(ops.RemoveNode{Path: paraPath.Child(idx), Node: runNode}); err != nil {
			return err
		}
	}

	shiftedFocusPath := append(paraPath.Child(aRunIdx+1), focus.Path[len(paraPath)+1:]...)
	if err := e.Apply(ops.DeleteText{Path: shiftedFocusPath, Offset: 0, Length: focus.Offset}); err != nil {
		return err
	}
	e.SetSelection(selection.Collapse(anchor.Path, anchor.Offset))
	return nil
}

func deleteCrossParagraph(e *editor.Editor, anchor, focus model.Point) error {
	aParaPath := paragraphPath(anchor.Path)
	fParaPath := paragraphPath(focus.Path)
	secPath := sectionPath(aParaPath)
	if !sectionPath(fParaPath).Equal(secPath) {
		return fmt.Errorf("plugins: cross-section delete is not supported")
	}

	aParaIdx := paragraphIndex(aParaPath)
	fParaIdx := paragraphIndex(fParaPath)
	anchorRunIdx := runIndex(anchor.Path)
	focusRunIdx := runIndex(focus.Path)

	anchorLeaf, err := model.GetTextLeaf(e.Document().Root, anchor.Path)
	if err != nil {
		return err
	}
	if err := e.Apply(ops.DeleteText{Path: anchor.Path, Offset: anchor.Offset, Length: anchorLeaf.TextLen() - anchor.Offset}); err != nil {
		return err
	}

	aParaNode, err := model.Get(e.Document().Root, aParaPath)
	if err != nil {
		return err
	}
	aParaRunCount := aParaNode.(*model.Element).ChildCount()
	for idx := aParaRunCount - 1; idx > anchorRunIdx; idx-- {
		n, err := model.Get(e.Document().Root, aParaPath.Child(idx))
		if err != nil {
			return err
		}
		if err := e.Apply(ops.RemoveNode{Path: aParaPath.Child(idx), Node: n}); err != nil {
			return err
		}
	}

	for idx := fParaIdx - 1; idx > aParaIdx; idx-- {
		n, err := model.Get(e.Document().Root, secPath.Child(idx))
		if err != nil {
			return err
		}
		if err := e.Apply(ops.RemoveNode{Path: secPath.Child(idx), Node: n}); err != nil {
			return err
		}
	}

	shiftedFocusParaPath := secPath.Child(aParaIdx + 1)
	shiftedFocusLeafPath := append(shiftedFocusParaPath.Clone(), focus.Path[len(fParaPath):]...)
	if err := e.Apply(ops.DeleteText{Path: shiftedFocusLeafPath, Offset: 0, Length: focus.Offset}); err != nil {
		return err
	}

	for idx := focusRunIdx - 1; idx >= 0; idx-- {
		n, err := model.Get(e.Document().Root, shiftedFocusParaPath.Child(idx))
		if err != nil {
			return err
		}
		if err := e.Apply(ops.RemoveNode{Path: shiftedFocusParaPath.Child(idx), Node: n}); err != nil {
			return err
		}
	}

	if err := e.Apply(ops.MergeNode{Path: shiftedFocusParaPath, Position: aParaIdx + 1}); err != nil {
		return err
	}
	e.SetSelection(selection.Collapse(anchor.Path, anchor.Offset))
	return nil
}

// Backspace deletes the selection if non-collapsed, otherwise extends one
// character to the left and deletes it.
func Backspace(e *editor.Editor) error {
	sel := selection.Normalize(e.Selection())
	if !selection.IsCollapsed(sel) {
		return DeleteSelection(e)
	}
	point := sel.Anchor
	if point.Offset > 0 {
		return e.Batch(func() error {
			return deleteSameLeaf(e, model.Point{Path: point.Path, Offset: point.Offset - 1}, point)
		})
	}
	// At the start of a leaf: extend into the previous leaf, run, or
	// paragraph, in that order of preference.
	if leafIdx := point.Path[len(point.Path)-1]; leafIdx > 0 {
		prevLeafPath := runPath(point.Path).Child(leafIdx - 1)
		prevLeaf, err := model.GetTextLeaf(e.Document().Root, prevLeafPath)
		if err != nil {
			return err
		}
		n := prevLeaf.TextLen()
		if n == 0 {
			return nil
		}
		return e.Batch(func() error {
			return deleteSameLeaf(e, model.Point{Path: prevLeafPath, Offset: n - 1}, model.Point{Path: prevLeafPath, Offset: n})
		})
	}
	paraPath := paragraphPath(point.Path)
	runIdx := runIndex(point.Path)
	if runIdx > 0 {
		prevRunPath := paraPath.Child(runIdx - 1)
		prevRun, err := model.Get(e.Document().Root, prevRunPath)
		if err != nil {
			return err
		}
		prevLeafPath, ok := firstTextPath(prevRun, prevRunPath)
		if !ok {
			return fmt.Errorf("plugins: previous run has no text leaf")
		}
		prevLeaf, err := model.GetTextLeaf(e.Document().Root, prevLeafPath)
		if err != nil {
			return err
		}
		n := prevLeaf.TextLen()
		if n == 0 {
			return nil
		}
		return e.Batch(func() error {
			return deleteSameLeaf(e, model.Point{Path: prevLeafPath, Offset: n - 1}, model.Point{Path: prevLeafPath, Offset: n})
		})
	}
	paraIdx := paragraphIndex(paraPath)
	if paraIdx == 0 {
		return nil
	}
	secPath := sectionPath(paraPath)
	prevParaPath := secPath.Child(paraIdx - 1)
	prevPara, err := model.Get(e.Document().Root, prevParaPath)
	if err != nil {
		return err
	}
	prevLeafPath, ok := lastTextPath(prevPara, prevParaPath)
	if !ok {
		return fmt.Errorf("plugins: previous paragraph has no text leaf")
	}
	prevLeaf, err := model.GetTextLeaf(e.Document().Root, prevLeafPath)
	if err != nil {
		return err
	}
	anchor := model.Point{Path: prevLeafPath, Offset: prevLeaf.TextLen()}
	return e.Batch(func() error {
		return deleteCrossParagraph(e, anchor, point)
	})
}

// lastTextPath returns the path to the last text-leaf descendant of n.
func lastTextPath(n model.Node, path model.Path) (model.Path, bool) {
	el, ok := model.AsElement(n)
	if !ok {
		if leaf, ok := model.AsLeaf(n); ok && leaf.Tag() == model.TagText {
			return path, true
		}
		return nil, false
	}
	for i := el.ChildCount() - 1; i >= 0; i-- {
		if p, ok := lastTextPath(el.ChildAt(i), path.Child(i)); ok {
			return p, true
		}
	}
	return nil, false
}

// SplitParagraph implements Enter: split the text leaf, its run, and the
// paragraph at the cursor, in that order, landing the cursor at the start
// of the new paragraph's first text.
func SplitParagraph(e *editor.Editor) error {
	sel := selection.Normalize(e.Selection())
	if !selection.IsCollapsed(sel) {
		if err := DeleteSelection(e); err != nil {
			return err
		}
		sel = selection.Normalize(e.Selection())
	}
	point := sel.Anchor
	return e.Batch(func() error {
		leafPath := point.Path
		if err := e.Apply(ops.SplitNode{Path: leafPath, Position: point.Offset}); err != nil {
			return err
		}
		rPath := runPath(leafPath)
		if err := e.Apply(ops.SplitNode{Path: rPath, Position: 1}); err != nil {
			return err
		}
		pPath := paragraphPath(leafPath)
		newRunIdx := runIndex(leafPath) + 1
		if err := e.Apply(ops.SplitNode{Path: pPath, Position: newRunIdx}); err != nil {
			return err
		}
		secPath := sectionPath(pPath)
		newParaIdx := paragraphIndex(pPath) + 1
		newParaPath := secPath.Child(newParaIdx)
		newLeaf, ok := firstTextPath(mustGet(e, newParaPath), newParaPath)
		if !ok {
			return fmt.Errorf("plugins: split produced no text in new paragraph")
		}
		e.SetSelection(selection.Collapse(newLeaf, 0))
		return nil
	})
}

func mustGet(e *editor.Editor, path model.Path) model.Node {
	n, _ := model.Get(e.Document().Root, path)
	return n
}
