package plugins

import (
	"testing"

	"github.com/vortex/wordcore/internal/editor"
	"github.com/vortex/wordcore/internal/idgen"
	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/ops"
	"github.com/vortex/wordcore/internal/selection"
)

func newTableEditor(t *testing.T, rows, cols int) *editor.Editor {
	t.Helper()
	idgen.Reset()
	table := NewTable(rows, cols)
	section := model.NewElement(model.TagSection, model.SectionProperties{}, table)
	body := model.NewElement(model.TagBody, nil, section)
	root := model.NewElement(model.TagDocument, nil, body)
	doc := &model.Document{
		Root:     root,
		Headers:  map[string]*model.Element{},
		Footers:  map[string]*model.Element{},
		Media:    map[string]*model.MediaAsset{},
		RawParts: map[string][]byte{},
	}
	return editor.New(doc)
}

var tablePath = model.Path{0, 0, 0}

func TestNewTableShape(t *testing.T) {
	tbl := NewTable(2, 3)
	if tbl.ChildCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.ChildCount())
	}
	row, _ := model.AsElement(tbl.ChildAt(0))
	if row.ChildCount() != 3 {
		t.Fatalf("expected 3 cells, got %d", row.ChildCount())
	}
}

func TestInsertRowBelow(t *testing.T) {
	e := newTableEditor(t, 2, 2)
	if err := InsertRow(e, tablePath, 0, false); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	table, err := getTable(e, tablePath)
	if err != nil {
		t.Fatalf("getTable: %v", err)
	}
	if table.ChildCount() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.ChildCount())
	}
}

func TestInsertColumnAddsCellToEveryRow(t *testing.T) {
	e := newTableEditor(t, 2, 2)
	if err := InsertColumn(e, tablePath, 0, false); err != nil {
		t.Fatalf("InsertColumn: %v", err)
	}
	table, err := getTable(e, tablePath)
	if err != nil {
		t.Fatalf("getTable: %v", err)
	}
	for r := 0; r < table.ChildCount(); r++ {
		row, _ := model.AsElement(table.ChildAt(r))
		if row.ChildCount() != 3 {
			t.Fatalf("row %d: expected 3 cells, got %d", r, row.ChildCount())
		}
	}
}

func TestDeleteLastRowRemovesTable(t *testing.T) {
	e := newTableEditor(t, 1, 2)
	if err := DeleteRow(e, tablePath, 0); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	if _, err := model.Get(e.Document().Root, tablePath); err == nil {
		t.Fatal("expected table removed")
	}
}

func TestDeleteLastColumnRemovesTable(t *testing.T) {
	e := newTableEditor(t, 2, 1)
	if err := DeleteColumn(e, tablePath, 0); err != nil {
		t.Fatalf("DeleteColumn: %v", err)
	}
	if _, err := model.Get(e.Document().Root, tablePath); err == nil {
		t.Fatal("expected table removed")
	}
}

func TestMergeCellsHorizontalSumsGridSpan(t *testing.T) {
	e := newTableEditor(t, 1, 2)
	if err := MergeCellsHorizontal(e, tablePath, 0, 0); err != nil {
		t.Fatalf("MergeCellsHorizontal: %v", err)
	}
	row, err := model.Get(e.Document().Root, tablePath.Child(0))
	if err != nil {
		t.Fatalf("get row: %v", err)
	}
	if n := row.(*model.Element).ChildCount(); n != 1 {
		t.Fatalf("expected 1 cell after merge, got %d", n)
	}
	cell, _ := model.Get(e.Document().Root, tablePath.Child(0).Child(0))
	props, _ := cell.(*model.Element).Props().(model.TableCellProperties)
	if props.GridSpan != 2 {
		t.Fatalf("expected gridSpan 2, got %d", props.GridSpan)
	}
}

func TestSplitCellInsertsEmptyCells(t *testing.T) {
	e := newTableEditor(t, 1, 1)
	newProps := model.TableCellProperties{GridSpan: 3}
	cell, err := model.Get(e.Document().Root, tablePath.Child(0).Child(0))
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	oldProps, _ := cell.(*model.Element).Props().(model.TableCellProperties)
	prop := ops.SetProperties{Path: tablePath.Child(0).Child(0), Properties: newProps, OldProperties: oldProps}
	if err := e.Apply(prop); err != nil {
		t.Fatalf("widen cell: %v", err)
	}
	if err := SplitCell(e, tablePath, 0, 0); err != nil {
		t.Fatalf("SplitCell: %v", err)
	}
	row, err := model.Get(e.Document().Root, tablePath.Child(0))
	if err != nil {
		t.Fatalf("get row: %v", err)
	}
	if n := row.(*model.Element).ChildCount(); n != 3 {
		t.Fatalf("expected 3 cells after split, got %d", n)
	}
}

func TestTabNextInsertsRowPastLastCell(t *testing.T) {
	e := newTableEditor(t, 1, 1)
	firstLeaf, err := cellFirstLeaf(e, tablePath.Child(0).Child(0))
	if err != nil {
		t.Fatalf("cellFirstLeaf: %v", err)
	}
	e.SetSelection(selection.Collapse(firstLeaf, 0))
	if err := TabNext(e); err != nil {
		t.Fatalf("TabNext: %v", err)
	}
	table, err := getTable(e, tablePath)
	if err != nil {
		t.Fatalf("getTable: %v", err)
	}
	if table.ChildCount() != 2 {
		t.Fatalf("expected a fresh row inserted, got %d rows", table.ChildCount())
	}
}
