package plugins

import (
	"github.com/vortex/wordcore/internal/editor"
	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/ops"
	"github.com/vortex/wordcore/internal/selection"
)

// BoolProperty names a *bool field on RunProperties that ToggleBool can
// flip. Grounded on go-docx/pkg/docx/run.go's Bold()/Italic()/Underline()
// tri-state accessor pattern, generalized to a majority-rule batch toggle.
type BoolProperty string

const (
	PropBold          BoolProperty = "bold"
	PropItalic        BoolProperty = "italic"
	PropStrikethrough BoolProperty = "strikethrough"
)

// RegisterFormatting adds the bold/italic/strikethrough toggle commands to e.
func RegisterFormatting(e *editor.Editor) {
	for _, prop := range []BoolProperty{PropBold, PropItalic, PropStrikethrough} {
		prop := prop
		e.RegisterCommand(&editor.Command{
			ID:         "format.toggle." + string(prop),
			Name:       "Toggle " + string(prop),
			CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
			Execute: func(e *editor.Editor, args any) error {
				return ToggleBool(e, prop)
			},
		})
	}
}

func getBool(rp *model.RunProperties, prop BoolProperty) bool {
	if rp == nil {
		return false
	}
	var p *bool
	switch prop {
	case PropBold:
		p = rp.Bold
	case PropItalic:
		p = rp.Italic
	case PropStrikethrough:
		p = rp.Strikethrough
	}
	return p != nil && *p
}

func setBool(rp *model.RunProperties, prop BoolProperty, v bool) *model.RunProperties {
	cp := rp.Clone()
	if cp == nil {
		cp = &model.RunProperties{}
	}
	switch prop {
	case PropBold:
		cp.Bold = &v
	case PropItalic:
		cp.Italic = &v
	case PropStrikethrough:
		cp.Strikethrough = &v
	}
	return cp
}

// ToggleBool toggles prop on every run intersecting the current selection.
// Runs the selection only partially covers are split first so the flag
// applies to exactly the selected characters. The toggle is majority
// rule: if every selected run already carries prop, it is cleared on all
// of them; otherwise it is set on all of them.
func ToggleBool(e *editor.Editor, prop BoolProperty) error {
	sel := selection.Normalize(e.Selection())
	if selection.IsCollapsed(sel) {
		return nil
	}
	return e.Batch(func() error {
		runPaths, err := splitRunsToSelection(e, sel)
		if err != nil {
			return err
		}
		allSet := true
		for _, rp := range runPaths {
			n, err := model.Get(e.Document().Root, rp)
			if err != nil {
				return err
			}
			run := n.(*model.Element)
			props, _ := run.Props().(*model.RunProperties)
			if !getBool(props, prop) {
				allSet = false
				break
			}
		}
		target := !allSet
		for _, rp := range runPaths {
			n, err := model.Get(e.Document().Root, rp)
			if err != nil {
				return err
			}
			run := n.(*model.Element)
			props, _ := run.Props().(*model.RunProperties)
			if err := e.Apply(ops.SetProperties{Path: rp, Properties: setBool(props, prop, target), OldProperties: props}); err != nil {
				return err
			}
		}
		return nil
	})
}

// splitRunsToSelection splits the runs at the selection's endpoints so the
// selection's first and last run boundaries line up exactly with the
// selected text, then returns the paths of every run fully inside the
// (possibly widened) selection, in document order.
func splitRunsToSelection(e *editor.Editor, sel selection.Selection) ([]model.Path, error) {
	anchor, focus := sel.Anchor, sel.Focus

	if anchor.Path.Equal(focus.Path) {
		leaf, err := model.GetTextLeaf(e.Document().Root, anchor.Path)
		if err != nil {
			return nil, err
		}
		if focus.Offset < leaf.TextLen() {
			if err := splitLeafAndRun(e, anchor.Path, focus.Offset); err != nil {
				return nil, err
			}
		}
		runP := runPath(anchor.Path)
		if anchor.Offset > 0 {
			if err := splitLeafAndRun(e, anchor.Path, anchor.Offset); err != nil {
				return nil, err
			}
			runP = paragraphPath(anchor.Path).Child(runIndex(anchor.Path) + 1)
		}
		return []model.Path{runP}, nil
	}

	// Split at the focus boundary first so the anchor-side indices the
	// later split computes are unaffected by it.
	fLeaf, err := model.GetTextLeaf(e.Document().Root, focus.Path)
	if err != nil {
		return nil, err
	}
	if focus.Offset < fLeaf.TextLen() {
		if err := splitLeafAndRun(e, focus.Path, focus.Offset); err != nil {
			return nil, err
		}
	}
	firstRunPath := runPath(anchor.Path)
	if anchor.Offset > 0 {
		if err := splitLeafAndRun(e, anchor.Path, anchor.Offset); err != nil {
			return nil, err
		}
		firstRunPath = paragraphPath(anchor.Path).Child(runIndex(anchor.Path) + 1)
	}
	lastRunPath := runPath(focus.Path)
	if anchor.Offset > 0 && paragraphPath(anchor.Path).Equal(paragraphPath(focus.Path)) {
		// The anchor-side split added one run before the focus run.
		lastRunPath = paragraphPath(focus.Path).Child(runIndex(focus.Path) + 1)
	}

	var out []model.Path
	paraPath := paragraphPath(anchor.Path)
	if paraPath.Equal(paragraphPath(focus.Path)) {
		for idx := runIndex(firstRunPath); idx <= runIndex(lastRunPath); idx++ {
			out = append(out, paraPath.Child(idx))
		}
		return out, nil
	}

	// Cross-paragraph selection: collect the tail of the anchor paragraph,
	// every run in intervening paragraphs, and the head of the focus
	// paragraph.
	aPara, err := model.Get(e.Document().Root, paraPath)
	if err != nil {
		return nil, err
	}
	for idx := runIndex(firstRunPath); idx < aPara.(*model.Element).ChildCount(); idx++ {
		out = append(out, paraPath.Child(idx))
	}
	secPath := sectionPath(paraPath)
	fParaPath := paragraphPath(focus.Path)
	for idx := paragraphIndex(paraPath) + 1; idx < paragraphIndex(fParaPath); idx++ {
		midPara, err := model.Get(e.Document().Root, secPath.Child(idx))
		if err != nil {
			return nil, err
		}
		for r := 0; r < midPara.(*model.Element).ChildCount(); r++ {
			out = append(out, secPath.Child(idx).Child(r))
		}
	}
	for idx := 0; idx <= runIndex(lastRunPath); idx++ {
		out = append(out, fParaPath.Child(idx))
	}
	return out, nil
}

// splitLeafAndRun splits the text leaf at leafPath/offset, then splits its
// run right after the resulting first leaf, so the run boundary lines up
// with the text boundary at offset.
func splitLeafAndRun(e *editor.Editor, leafPath model.Path, offset int) error {
	if err := e.Apply(ops.SplitNode{Path: leafPath, Position: offset}); err != nil {
		return err
	}
	return e.Apply(ops.SplitNode{Path: runPath(leafPath), Position: 1})
}
