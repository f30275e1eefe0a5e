package ops

import (
	"testing"

	"github.com/vortex/wordcore/internal/idgen"
	"github.com/vortex/wordcore/internal/model"
)

func freshDoc(t *testing.T) *model.Document {
	t.Helper()
	idgen.Reset()
	return model.NewDocument(model.SectionProperties{})
}

// A fresh NewDocument is document -> body -> section -> paragraph -> run ->
// text, so the first text leaf sits five levels below Root.
var (
	sectionPath = model.Path{0, 0}
	paraPath    = model.Path{0, 0, 0}
	textPath    = model.Path{0, 0, 0, 0, 0}
)

func TestInsertAndDeleteText(t *testing.T) {
	doc := freshDoc(t)

	doc, err := Apply(doc, InsertText{Path: textPath, Offset: 0, Text: "hello"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := model.Text(doc.Root); got != "hello" {
		t.Fatalf("after insert: got %q", got)
	}

	doc, err = Apply(doc, DeleteText{Path: textPath, Offset: 1, Length: 3})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := model.Text(doc.Root); got != "ho" {
		t.Fatalf("after delete: got %q", got)
	}
}

func TestInsertTextOffsetOutOfRange(t *testing.T) {
	doc := freshDoc(t)
	if _, err := Apply(doc, InsertText{Path: textPath, Offset: 99, Text: "x"}); err == nil {
		t.Fatal("expected OffsetOutOfRange error")
	}
}

func TestInvertInsertText(t *testing.T) {
	doc := freshDoc(t)
	op := InsertText{Path: textPath, Offset: 0, Text: "abc"}
	inv, err := Invert(doc, op)
	if err != nil {
		t.Fatalf("invert: %v", err)
	}
	next, err := Apply(doc, op)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	back, err := Apply(next, inv)
	if err != nil {
		t.Fatalf("apply inverse: %v", err)
	}
	if got := model.Text(back.Root); got != "" {
		t.Fatalf("round trip: got %q, want empty", got)
	}
}

func TestSplitAndMergeTextLeaf(t *testing.T) {
	doc := freshDoc(t)
	doc, err := Apply(doc, InsertText{Path: textPath, Offset: 0, Text: "helloworld"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	doc, err = Apply(doc, SplitNode{Path: textPath, Position: 5})
	if err != nil {
		t.Fatalf("split text: %v", err)
	}

	run, err := model.Get(doc.Root, paraPath.Child(0))
	if err != nil {
		t.Fatalf("resolve run: %v", err)
	}
	runEl := run.(*model.Element)
	if runEl.ChildCount() != 2 {
		t.Fatalf("expected 2 text children after split, got %d", runEl.ChildCount())
	}
	if got := model.Text(runEl); got != "helloworld" {
		t.Fatalf("text after split: got %q", got)
	}

	merged, err := Apply(doc, MergeNode{Path: paraPath.Child(0).Child(1), Position: 1})
	if err != nil {
		t.Fatalf("merge text: %v", err)
	}
	run, err = model.Get(merged.Root, paraPath.Child(0))
	if err != nil {
		t.Fatalf("resolve merged run: %v", err)
	}
	if got := run.(*model.Element).ChildCount(); got != 1 {
		t.Fatalf("expected 1 text child after merge, got %d", got)
	}
	if got := model.Text(run); got != "helloworld" {
		t.Fatalf("text after merge: got %q", got)
	}
}

func TestSplitAndMergeParagraph(t *testing.T) {
	doc := freshDoc(t)
	doc, err := Apply(doc, InsertText{Path: textPath, Offset: 0, Text: "hello"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Split the paragraph after its only run (position 1): the first
	// paragraph keeps the run, the second starts empty.
	doc, err = Apply(doc, SplitNode{Path: paraPath, Position: 1})
	if err != nil {
		t.Fatalf("split paragraph: %v", err)
	}
	section, err := model.Get(doc.Root, sectionPath)
	if err != nil {
		t.Fatalf("resolve section: %v", err)
	}
	if got := section.(*model.Element).ChildCount(); got != 2 {
		t.Fatalf("expected 2 paragraphs after split, got %d", got)
	}

	doc, err = Apply(doc, MergeNode{Path: sectionPath.Child(1), Position: 1})
	if err != nil {
		t.Fatalf("merge paragraph: %v", err)
	}
	section, err = model.Get(doc.Root, sectionPath)
	if err != nil {
		t.Fatalf("resolve section after merge: %v", err)
	}
	if got := section.(*model.Element).ChildCount(); got != 1 {
		t.Fatalf("expected 1 paragraph after merge, got %d", got)
	}
	if got := model.Text(doc.Root); got != "hello" {
		t.Fatalf("text after merge: got %q", got)
	}
}

func TestApplyBatchRollsBackOnError(t *testing.T) {
	doc := freshDoc(t)
	batch := Batch{
		InsertText{Path: textPath, Offset: 0, Text: "ok"},
		InsertText{Path: textPath, Offset: 99, Text: "bad"},
	}
	result, _, err := ApplyBatch(doc, batch)
	if err == nil {
		t.Fatal("expected error from second op")
	}
	if result != doc {
		t.Fatal("expected original document on rollback")
	}
}

func TestApplyBatchInverse(t *testing.T) {
	doc := freshDoc(t)
	batch := Batch{
		InsertText{Path: textPath, Offset: 0, Text: "hello"},
		InsertText{Path: textPath, Offset: 5, Text: " world"},
	}
	after, inverse, err := ApplyBatch(doc, batch)
	if err != nil {
		t.Fatalf("apply batch: %v", err)
	}
	if got := model.Text(after.Root); got != "hello world" {
		t.Fatalf("after batch: got %q", got)
	}
	undone := after
	for _, op := range inverse {
		undone, err = Apply(undone, op)
		if err != nil {
			t.Fatalf("apply inverse op: %v", err)
		}
	}
	if got := model.Text(undone.Root); got != "" {
		t.Fatalf("after undo: got %q, want empty", got)
	}
}
