package plugins

import (
	"strings"
	"testing"

	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/selection"
)

func TestCopyPlainAndHTML(t *testing.T) {
	e := newDocEditor(t, []string{"hello world"})
	e.SetSelection(selection.Create(leafPathAt(0, 0), 0, leafPathAt(0, 0), 5))
	payload := Copy(e)
	if payload.PlainText != "hello" {
		t.Fatalf("plain text = %q", payload.PlainText)
	}
	if !strings.Contains(payload.HTML, "hello") {
		t.Fatalf("html = %q", payload.HTML)
	}
}

func TestCopyCollapsedSelectionIsEmpty(t *testing.T) {
	e := newDocEditor(t, []string{"hello"})
	e.SetSelection(selection.Collapse(leafPathAt(0, 0), 2))
	payload := Copy(e)
	if payload.PlainText != "" || payload.HTML != "" {
		t.Fatalf("expected empty payload, got %+v", payload)
	}
}

func TestPastePlainTextSingleLineSplicesAtCursor(t *testing.T) {
	e := newDocEditor(t, []string{"hello"})
	e.SetSelection(selection.Collapse(leafPathAt(0, 0), 5))
	if err := Paste(e, Payload{PlainText: "!"}); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "hello!" {
		t.Fatalf("got %q", got)
	}
}

func TestPastePlainTextMultilineSplitsParagraph(t *testing.T) {
	e := newDocEditor(t, []string{"hello"})
	e.SetSelection(selection.Collapse(leafPathAt(0, 0), 5))
	if err := Paste(e, Payload{PlainText: "x\ny"}); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	sec, err := model.Get(e.Document().Root, model.Path{0, 0})
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if n := sec.(*model.Element).ChildCount(); n != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", n)
	}
	para0, _ := model.Get(e.Document().Root, model.Path{0, 0, 0})
	para1, _ := model.Get(e.Document().Root, model.Path{0, 0, 1})
	if got := model.Text(para0); got != "hellox" {
		t.Fatalf("para0 = %q", got)
	}
	if got := model.Text(para1); got != "y" {
		t.Fatalf("para1 = %q", got)
	}
}

func TestPasteHTMLBoldRunSplicesFormattedRun(t *testing.T) {
	e := newDocEditor(t, []string{"hello"})
	e.SetSelection(selection.Collapse(leafPathAt(0, 0), 5))
	if err := Paste(e, Payload{HTML: "<p><strong>!</strong></p>"}); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "hello!" {
		t.Fatalf("got %q", got)
	}
	para, err := model.Get(e.Document().Root, model.Path{0, 0, 0})
	if err != nil {
		t.Fatalf("get paragraph: %v", err)
	}
	p := para.(*model.Element)
	last, _ := model.AsElement(p.ChildAt(p.ChildCount() - 1))
	props, _ := last.Props().(*model.RunProperties)
	if props == nil || props.Bold == nil || !*props.Bold {
		t.Fatal("expected pasted run bold")
	}
}

func TestPasteDeletesRangedSelectionFirst(t *testing.T) {
	e := newDocEditor(t, []string{"hello world"})
	e.SetSelection(selection.Create(leafPathAt(0, 0), 0, leafPathAt(0, 0), 5))
	if err := Paste(e, Payload{PlainText: "bye"}); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if got := model.Text(e.Document().Root); got != "bye world" {
		t.Fatalf("got %q", got)
	}
}
