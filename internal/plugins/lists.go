package plugins

import (
	"github.com/vortex/wordcore/internal/editor"
	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/ops"
	"github.com/vortex/wordcore/internal/selection"
)

// Well-known numbering instance ids the bullet/numbered toggle commands
// reference, per spec.md §4.4.3.
const (
	NumIDBullet    = 1
	NumIDNumbered  = 2
	listStyleID    = "ListParagraph"
	maxListLevel   = 8
)

// RegisterLists adds the bullet/numbered/indent/outdent commands to e.
func RegisterLists(e *editor.Editor) {
	e.RegisterCommand(&editor.Command{
		ID:         "list.toggleBullet",
		Name:       "Toggle bullet list",
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute:    func(e *editor.Editor, args any) error { return ToggleNumbering(e, NumIDBullet) },
	})
	e.RegisterCommand(&editor.Command{
		ID:         "list.toggleNumbered",
		Name:       "Toggle numbered list",
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute:    func(e *editor.Editor, args any) error { return ToggleNumbering(e, NumIDNumbered) },
	})
	e.RegisterCommand(&editor.Command{
		ID:         "list.indent",
		Name:       "Indent list item",
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute:    func(e *editor.Editor, args any) error { return Indent(e) },
	})
	e.RegisterCommand(&editor.Command{
		ID:         "list.outdent",
		Name:       "Outdent list item",
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute:    func(e *editor.Editor, args any) error { return Outdent(e) },
	})
}

// selectedParagraphPaths returns the paths of every paragraph the current
// selection touches, in document order.
func selectedParagraphPaths(e *editor.Editor) []model.Path {
	sel := selection.Normalize(e.Selection())
	aPara := paragraphPath(sel.Anchor.Path)
	fPara := paragraphPath(sel.Focus.Path)
	if aPara.Equal(fPara) {
		return []model.Path{aPara}
	}
	secPath := sectionPath(aPara)
	var out []model.Path
	for idx := paragraphIndex(aPara); idx <= paragraphIndex(fPara); idx++ {
		out = append(out, secPath.Child(idx))
	}
	return out
}

func paraProps(e *editor.Editor, path model.Path) (*model.ParagraphProperties, error) {
	n, err := model.Get(e.Document().Root, path)
	if err != nil {
		return nil, err
	}
	props, _ := n.(*model.Element).Props().(*model.ParagraphProperties)
	return props, nil
}

// ToggleNumbering applies spec.md §4.4.3's toggle rule across every
// paragraph the selection touches: if all already use numId, clear
// numbering on all of them; otherwise set numId on all of them (preserving
// each paragraph's existing level, defaulting to 0) and stamp the
// ListParagraph style.
func ToggleNumbering(e *editor.Editor, numID int) error {
	return e.Batch(func() error {
		paths := selectedParagraphPaths(e)
		allSet := true
		for _, p := range paths {
			props, err := paraProps(e, p)
			if err != nil {
				return err
			}
			if props == nil || props.Numbering == nil || props.Numbering.NumID != numID {
				allSet = false
				break
			}
		}
		for _, p := range paths {
			props, err := paraProps(e, p)
			if err != nil {
				return err
			}
			next := props.Clone()
			if next == nil {
				next = &model.ParagraphProperties{}
			}
			if allSet {
				next.Numbering = nil
			} else {
				level := 0
				if props != nil && props.Numbering != nil {
					level = props.Numbering.Level
				}
				next.Numbering = &model.Numbering{NumID: numID, Level: level}
				styleID := listStyleID
				next.StyleID = &styleID
			}
			if err := e.Apply(ops.SetProperties{Path: p, Properties: next, OldProperties: props}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Indent bumps numbering.level on every selected paragraph, clamped to
// [0, 8]. Paragraphs without numbering are left untouched.
func Indent(e *editor.Editor) error {
	return bumpLevel(e, 1)
}

// Outdent decrements numbering.level; outdenting below 0 clears numbering
// entirely.
func Outdent(e *editor.Editor) error {
	return bumpLevel(e, -1)
}

func bumpLevel(e *editor.Editor, delta int) error {
	return e.Batch(func() error {
		for _, p := range selectedParagraphPaths(e) {
			props, err := paraProps(e, p)
			if err != nil {
				return err
			}
			if props == nil || props.Numbering == nil {
				continue
			}
			next := props.Clone()
			level := next.Numbering.Level + delta
			if level < 0 {
				next.Numbering = nil
			} else {
				if level > maxListLevel {
					level = maxListLevel
				}
				next.Numbering.Level = level
			}
			if err := e.Apply(ops.SetProperties{Path: p, Properties: next, OldProperties: props}); err != nil {
				return err
			}
		}
		return nil
	})
}
