// Package editor is not safe for concurrent use: an Editor and every
// command registered on it must be driven from one goroutine at a time,
// or protected by an external mutex. Independent Editor instances may be
// used concurrently.
package editor

import (
	"fmt"

	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/ops"
	"github.com/vortex/wordcore/internal/selection"
)

// Listener receives document-changed and selection-changed notifications.
type Listener func(*Editor)

// Command is a named, registered unit of work. CanExecute gates whether
// ExecuteCommand will run Execute; Execute is free to call Apply or Batch
// any number of times.
type Command struct {
	ID         string
	Name       string
	Shortcuts  []string
	CanExecute func(e *Editor, args any) bool
	Execute    func(e *Editor, args any) error
}

// historyEntry is one undo-stack record: the batch that was applied, its
// precomputed inverse, and the selection on either side of it.
type historyEntry struct {
	forward  ops.Batch
	inverse  ops.Batch
	before   selection.Selection
	after    selection.Selection
}

// Editor holds the live document, selection, and linear undo/redo history
// spec.md §4.3 describes, plus the command table plugins register against.
type Editor struct {
	document *model.Document
	sel      selection.Selection
	readOnly bool

	undo []historyEntry
	redo []historyEntry
	cap  int

	commands map[string]*Command

	docListeners []Listener
	selListeners []Listener

	inBatch       bool
	batchOps      ops.Batch
	batchInverses ops.Batch
}

// DefaultHistoryCap is the default bound on undo-stack depth (spec.md §4.3).
const DefaultHistoryCap = 100

// New returns an editor over doc with an empty undo/redo history and the
// selection collapsed at the document's first text position.
func New(doc *model.Document) *Editor {
	e := &Editor{
		document: doc,
		cap:      DefaultHistoryCap,
		commands: make(map[string]*Command),
	}
	if first, err := firstTextPath(doc); err == nil {
		e.sel = selection.Collapse(first, 0)
	}
	return e
}

// SetHistoryCap changes the undo-stack bound; entries beyond the new cap
// are dropped from the oldest end.
func (e *Editor) SetHistoryCap(n int) {
	e.cap = n
	for len(e.undo) > e.cap {
		e.undo = e.undo[1:]
	}
}

// Document returns the current document value.
func (e *Editor) Document() *model.Document { return e.document }

// Selection returns the current selection.
func (e *Editor) Selection() selection.Selection { return e.sel }

// ReadOnly reports whether mutation commands are disabled.
func (e *Editor) ReadOnly() bool { return e.readOnly }

// SetReadOnly toggles read-only mode. Selection and copy commands remain
// available; mutation commands' CanExecute must check e.ReadOnly().
func (e *Editor) SetReadOnly(ro bool) { e.readOnly = ro }

// OnDocumentChanged registers a listener invoked after each committed batch.
func (e *Editor) OnDocumentChanged(l Listener) { e.docListeners = append(e.docListeners, l) }

// OnSelectionChanged registers a listener invoked after each selection set.
func (e *Editor) OnSelectionChanged(l Listener) { e.selListeners = append(e.selListeners, l) }

// SetSelection replaces the current selection and publishes
// selection-changed. It does not touch history.
func (e *Editor) SetSelection(sel selection.Selection) {
	e.sel = sel
	for _, l := range e.selListeners {
		l(e)
	}
}

func (e *Editor) publishDocumentChanged() {
	for _, l := range e.docListeners {
		l(e)
	}
}

// RegisterCommand adds cmd to the command table, replacing any existing
// command with the same ID.
func (e *Editor) RegisterCommand(cmd *Command) {
	e.commands[cmd.ID] = cmd
}

// CanExecuteCommand reports whether the named command would run right now.
func (e *Editor) CanExecuteCommand(id string, args any) bool {
	cmd, ok := e.commands[id]
	if !ok {
		return false
	}
	return cmd.CanExecute == nil || cmd.CanExecute(e, args)
}

// ExecuteCommand looks up id, checks CanExecute, and runs Execute. When
// Execute records a history entry (via Apply/Batch) and then moves the
// selection, the entry's post-batch selection is patched to the command's
// final selection so Redo restores where the command actually left the
// cursor.
func (e *Editor) ExecuteCommand(id string, args any) error {
	cmd, ok := e.commands[id]
	if !ok {
		return fmt.Errorf("editor: unknown command %q", id)
	}
	if cmd.CanExecute != nil && !cmd.CanExecute(e, args) {
		return fmt.Errorf("editor: command %q cannot execute", id)
	}
	undoDepth := len(e.undo)
	if err := cmd.Execute(e, args); err != nil {
		return err
	}
	if len(e.undo) > undoDepth {
		e.undo[len(e.undo)-1].after = e.sel
	}
	return nil
}

// Apply applies a single operation. Outside a Batch call it is pushed as
// its own history entry; inside one it accumulates into the enclosing
// batch's entry.
func (e *Editor) Apply(op ops.Op) error {
	if e.inBatch {
		inv, err := ops.Invert(e.document, op)
		if err != nil {
			return err
		}
		next, err := ops.Apply(e.document, op)
		if err != nil {
			return err
		}
		e.document = next
		e.batchOps = append(e.batchOps, op)
		e.batchInverses = append(e.batchInverses, inv)
		return nil
	}
	inv, err := ops.Invert(e.document, op)
	if err != nil {
		return err
	}
	next, err := ops.Apply(e.document, op)
	if err != nil {
		return err
	}
	beforeSel := e.sel
	e.document = next
	e.pushHistory(historyEntry{forward: ops.Batch{op}, inverse: ops.Batch{inv}, before: beforeSel, after: e.sel})
	e.publishDocumentChanged()
	return nil
}

// Batch runs fn with operations accumulating into a single undo entry.
// If fn returns an error, every operation applied so far inside this call
// is reverted in reverse order and no history entry is recorded.
func (e *Editor) Batch(fn func() error) error {
	if e.inBatch {
		return fn()
	}
	before := e.document
	beforeSel := e.sel
	e.inBatch = true
	e.batchOps = nil
	e.batchInverses = nil
	err := fn()
	forward := e.batchOps
	inverses := e.batchInverses
	e.inBatch = false
	e.batchOps = nil
	e.batchInverses = nil

	if err != nil {
		e.document = before
		e.sel = beforeSel
		return err
	}
	if len(forward) == 0 {
		return nil
	}
	reversed := make(ops.Batch, len(inverses))
	for i, inv := range inverses {
		reversed[len(inverses)-1-i] = inv
	}
	e.pushHistory(historyEntry{forward: forward, inverse: reversed, before: beforeSel, after: e.sel})
	e.publishDocumentChanged()
	return nil
}

func (e *Editor) pushHistory(entry historyEntry) {
	e.undo = append(e.undo, entry)
	if len(e.undo) > e.cap {
		e.undo = e.undo[len(e.undo)-e.cap:]
	}
	e.redo = nil
}

// CanUndo reports whether Undo would do anything.
func (e *Editor) CanUndo() bool { return len(e.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (e *Editor) CanRedo() bool { return len(e.redo) > 0 }

// Undo pops the last history entry, applies its inverse batch, restores
// the pre-batch selection, and pushes the entry onto redo.
func (e *Editor) Undo() error {
	if len(e.undo) == 0 {
		return fmt.Errorf("editor: nothing to undo")
	}
	entry := e.undo[len(e.undo)-1]
	next, _, err := ops.ApplyBatch(e.document, entry.inverse)
	if err != nil {
		return err
	}
	e.undo = e.undo[:len(e.undo)-1]
	e.document = next
	e.sel = entry.before
	e.redo = append(e.redo, entry)
	e.publishDocumentChanged()
	return nil
}

// Redo reapplies the forward batch of the most recently undone entry and
// restores the post-batch selection.
func (e *Editor) Redo() error {
	if len(e.redo) == 0 {
		return fmt.Errorf("editor: nothing to redo")
	}
	entry := e.redo[len(e.redo)-1]
	next, _, err := ops.ApplyBatch(e.document, entry.forward)
	if err != nil {
		return err
	}
	e.redo = e.redo[:len(e.redo)-1]
	e.document = next
	e.sel = entry.after
	e.undo = append(e.undo, entry)
	e.publishDocumentChanged()
	return nil
}

func firstTextPath(doc *model.Document) (model.Path, error) {
	var find func(n model.Node, path model.Path) (model.Path, bool)
	find = func(n model.Node, path model.Path) (model.Path, bool) {
		switch v := n.(type) {
		case *model.Leaf:
			if v.Tag() == model.TagText {
				return path, true
			}
			return nil, false
		case *model.Element:
			for i, c := range v.Children() {
				if p, ok := find(c, path.Child(i)); ok {
					return p, true
				}
			}
		}
		return nil, false
	}
	if p, ok := find(doc.Root, model.Path{}); ok {
		return p, nil
	}
	return nil, fmt.Errorf("editor: document has no text leaves")
}
