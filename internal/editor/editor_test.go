package editor

import (
	"errors"
	"testing"

	"github.com/vortex/wordcore/internal/idgen"
	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/ops"
	"github.com/vortex/wordcore/internal/selection"
)

var textPath = model.Path{0, 0, 0, 0, 0}

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	idgen.Reset()
	doc := model.NewDocument(model.SectionProperties{})
	return New(doc)
}

func TestApplyPushesHistoryEntry(t *testing.T) {
	e := newTestEditor(t)
	if err := e.Apply(ops.InsertText{Path: textPath, Offset: 0, Text: "hi"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "hi" {
		t.Fatalf("got %q", got)
	}
	if !e.CanUndo() {
		t.Fatal("expected CanUndo true")
	}
}

func TestUndoRedo(t *testing.T) {
	e := newTestEditor(t)
	if err := e.Apply(ops.InsertText{Path: textPath, Offset: 0, Text: "hi"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "" {
		t.Fatalf("after undo: got %q", got)
	}
	if !e.CanRedo() {
		t.Fatal("expected CanRedo true")
	}
	if err := e.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "hi" {
		t.Fatalf("after redo: got %q", got)
	}
}

func TestBatchCommitsOneEntry(t *testing.T) {
	e := newTestEditor(t)
	err := e.Batch(func() error {
		if err := e.Apply(ops.InsertText{Path: textPath, Offset: 0, Text: "hello"}); err != nil {
			return err
		}
		return e.Apply(ops.InsertText{Path: textPath, Offset: 5, Text: " world"})
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "hello world" {
		t.Fatalf("got %q", got)
	}
	if len(e.undo) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(e.undo))
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "" {
		t.Fatalf("after undo: got %q", got)
	}
}

func TestBatchRevertsOnError(t *testing.T) {
	e := newTestEditor(t)
	sentinel := errors.New("boom")
	err := e.Batch(func() error {
		if err := e.Apply(ops.InsertText{Path: textPath, Offset: 0, Text: "hello"}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if got := model.Text(e.Document().Root); got != "" {
		t.Fatalf("expected no change after reverted batch, got %q", got)
	}
	if e.CanUndo() {
		t.Fatal("expected no history entry recorded")
	}
}

func TestReadOnlyBlocksRegisteredMutationCommand(t *testing.T) {
	e := newTestEditor(t)
	e.RegisterCommand(&Command{
		ID:   "insertText",
		Name: "Insert text",
		CanExecute: func(e *Editor, args any) bool {
			return !e.ReadOnly()
		},
		Execute: func(e *Editor, args any) error {
			return e.Apply(ops.InsertText{Path: textPath, Offset: 0, Text: args.(string)})
		},
	})
	e.SetReadOnly(true)
	if e.CanExecuteCommand("insertText", "x") {
		t.Fatal("expected command disabled in read-only mode")
	}
	if err := e.ExecuteCommand("insertText", "x"); err == nil {
		t.Fatal("expected error executing disabled command")
	}
}

func TestSelectionChangedNotification(t *testing.T) {
	e := newTestEditor(t)
	calls := 0
	e.OnSelectionChanged(func(*Editor) { calls++ })
	e.SetSelection(selection.Collapse(textPath, 2))
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}
	if e.Selection().Anchor.Offset != 2 {
		t.Fatalf("selection not updated")
	}
}

func TestDocumentChangedNotification(t *testing.T) {
	e := newTestEditor(t)
	calls := 0
	e.OnDocumentChanged(func(*Editor) { calls++ })
	if err := e.Apply(ops.InsertText{Path: textPath, Offset: 0, Text: "x"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}
}
