package plugins

import (
	"fmt"

	"github.com/vortex/wordcore/internal/editor"
	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/ops"
	"github.com/vortex/wordcore/internal/selection"
)

// RegisterTables adds the Tab/Shift+Tab cell-navigation commands to e;
// they take no args and act on the current selection. The row, column and
// cell functions below (InsertRow, DeleteColumn, MergeCellsHorizontal, ...)
// are not registered as commands.
func RegisterTables(e *editor.Editor) {
	e.RegisterCommand(&editor.Command{
		ID:         "table.tabNext",
		Name:       "Next cell",
		Shortcuts:  []string{"Tab"},
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute:    func(e *editor.Editor, args any) error { return TabNext(e) },
	})
	e.RegisterCommand(&editor.Command{
		ID:         "table.tabPrevious",
		Name:       "Previous cell",
		Shortcuts:  []string{"Shift+Tab"},
		CanExecute: func(e *editor.Editor, args any) bool { return !e.ReadOnly() },
		Execute:    func(e *editor.Editor, args any) error { return TabPrevious(e) },
	})
}

// TableLocation names a row/column within a table for the commands below.
type TableLocation struct {
	TablePath model.Path
	Row       int
	Col       int
}

func emptyParagraph() *model.Element {
	run := model.NewElement(model.TagRun, (*model.RunProperties)(nil), model.NewTextLeaf(""))
	return model.NewElement(model.TagParagraph, (*model.ParagraphProperties)(nil), run)
}

func emptyCell() *model.Element {
	return model.NewElement(model.TagTableCell, model.TableCellProperties{GridSpan: 1}, emptyParagraph())
}

func newRow(cols int) *model.Element {
	cells := make([]model.Node, cols)
	for i := range cells {
		cells[i] = emptyCell()
	}
	return model.NewElement(model.TagTableRow, nil, cells...)
}

// NewTable builds a table of rows x cols, every cell seeded with one
// empty paragraph and default-width columns.
func NewTable(rows, cols int) *model.Element {
	rowNodes := make([]model.Node, rows)
	for i := range rowNodes {
		rowNodes[i] = newRow(cols)
	}
	return model.NewElement(model.TagTable, model.TableProperties{}, rowNodes...)
}

// InsertTable inserts a freshly built table as a new child at path.
func InsertTable(e *editor.Editor, path model.Path, rows, cols int) error {
	return e.Apply(ops.InsertNode{Path: path, Node: NewTable(rows, cols)})
}

func getTable(e *editor.Editor, tablePath model.Path) (*model.Element, error) {
	n, err := model.Get(e.Document().Root, tablePath)
	if err != nil {
		return nil, err
	}
	t, ok := n.(*model.Element)
	if !ok || t.Tag() != model.TagTable {
		return nil, fmt.Errorf("plugins: %v is not a table", tablePath)
	}
	return t, nil
}

// InsertRow inserts a new row with the same column count as rowIdx's row,
// above rowIdx if before is true, otherwise below it.
func InsertRow(e *editor.Editor, tablePath model.Path, rowIdx int, before bool) error {
	table, err := getTable(e, tablePath)
	if err != nil {
		return err
	}
	row, ok := model.AsElement(table.ChildAt(rowIdx))
	if !ok {
		return fmt.Errorf("plugins: row %d not found", rowIdx)
	}
	insertIdx := rowIdx
	if !before {
		insertIdx = rowIdx + 1
	}
	return e.Apply(ops.InsertNode{Path: tablePath.Child(insertIdx), Node: newRow(row.ChildCount())})
}

// InsertColumn inserts one empty cell into every row, left of colIdx if
// before is true, otherwise right of it.
func InsertColumn(e *editor.Editor, tablePath model.Path, colIdx int, before bool) error {
	table, err := getTable(e, tablePath)
	if err != nil {
		return err
	}
	insertIdx := colIdx
	if !before {
		insertIdx = colIdx + 1
	}
	return e.Batch(func() error {
		for r := 0; r < table.ChildCount(); r++ {
			if err := e.Apply(ops.InsertNode{Path: tablePath.Child(r).Child(insertIdx), Node: emptyCell()}); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteRow removes rowIdx's row, or the whole table if it is the last
// remaining row.
func DeleteRow(e *editor.Editor, tablePath model.Path, rowIdx int) error {
	table, err := getTable(e, tablePath)
	if err != nil {
		return err
	}
	if table.ChildCount() <= 1 {
		return e.Apply(ops.RemoveNode{Path: tablePath, Node: table})
	}
	return e.Apply(ops.RemoveNode{Path: tablePath.Child(rowIdx), Node: table.ChildAt(rowIdx)})
}

// DeleteColumn removes colIdx's cell from every row, or the whole table
// if it is the last remaining column.
func DeleteColumn(e *editor.Editor, tablePath model.Path, colIdx int) error {
	table, err := getTable(e, tablePath)
	if err != nil {
		return err
	}
	firstRow, _ := model.AsElement(table.ChildAt(0))
	if firstRow.ChildCount() <= 1 {
		return e.Apply(ops.RemoveNode{Path: tablePath, Node: table})
	}
	return e.Batch(func() error {
		for r := 0; r < table.ChildCount(); r++ {
			rowPath := tablePath.Child(r)
			cell, err := model.Get(e.Document().Root, rowPath.Child(colIdx))
			if err != nil {
				return err
			}
			if err := e.Apply(ops.RemoveNode{Path: rowPath.Child(colIdx), Node: cell}); err != nil {
				return err
			}
		}
		return nil
	})
}

// MergeCellsHorizontal appends the right neighbor cell's blocks onto the
// cell at (rowIdx, colIdx), removes the right cell, and sums gridSpan.
func MergeCellsHorizontal(e *editor.Editor, tablePath model.Path, rowIdx, colIdx int) error {
	rowPath := tablePath.Child(rowIdx)
	cellPath := rowPath.Child(colIdx)
	rightPath := rowPath.Child(colIdx + 1)

	cellNode, err := model.Get(e.Document().Root, cellPath)
	if err != nil {
		return err
	}
	cell := cellNode.(*model.Element)
	cellProps, _ := cell.Props().(model.TableCellProperties)

	return e.Batch(func() error {
		rightNode, err := model.Get(e.Document().Root, rightPath)
		if err != nil {
			return err
		}
		right := rightNode.(*model.Element)
		rightProps, _ := right.Props().(model.TableCellProperties)
		base := cell.ChildCount()
		for i, child := range right.Children() {
			if err := e.Apply(ops.InsertNode{Path: cellPath.Child(base + i), Node: child}); err != nil {
				return err
			}
		}
		if err := e.Apply(ops.RemoveNode{Path: rightPath, Node: right}); err != nil {
			return err
		}
		newProps := cellProps
		newProps.GridSpan = cellProps.GridSpan + rightProps.GridSpan
		return e.Apply(ops.SetProperties{Path: cellPath, Properties: newProps, OldProperties: cellProps})
	})
}

// SplitCell resets the cell at (rowIdx, colIdx) to gridSpan 1 and inserts
// (oldSpan-1) empty cells immediately after it.
func SplitCell(e *editor.Editor, tablePath model.Path, rowIdx, colIdx int) error {
	cellPath := tablePath.Child(rowIdx).Child(colIdx)
	n, err := model.Get(e.Document().Root, cellPath)
	if err != nil {
		return err
	}
	cell := n.(*model.Element)
	props, _ := cell.Props().(model.TableCellProperties)
	if props.GridSpan <= 1 {
		return nil
	}
	return e.Batch(func() error {
		newProps := props
		newProps.GridSpan = 1
		if err := e.Apply(ops.SetProperties{Path: cellPath, Properties: newProps, OldProperties: props}); err != nil {
			return err
		}
		for i := 0; i < props.GridSpan-1; i++ {
			if err := e.Apply(ops.InsertNode{Path: tablePath.Child(rowIdx).Child(colIdx + 1 + i), Node: emptyCell()}); err != nil {
				return err
			}
		}
		return nil
	})
}

// tableCellPath returns the path of the table-cell element containing the
// text leaf at leafPath (cell -> paragraph -> run -> leaf).
func tableCellPath(leafPath model.Path) model.Path {
	return leafPath[:len(leafPath)-3]
}

func cellFirstLeaf(e *editor.Editor, cellPath model.Path) (model.Path, error) {
	n, err := model.Get(e.Document().Root, cellPath)
	if err != nil {
		return nil, err
	}
	p, ok := firstTextPath(n, cellPath)
	if !ok {
		return nil, fmt.Errorf("plugins: cell has no text")
	}
	return p, nil
}

// TabNext moves the cursor to the next cell in reading order, wrapping to
// the next row; Tab past the last cell inserts a fresh row and moves into
// its first cell.
func TabNext(e *editor.Editor) error {
	leafPath := selection.Normalize(e.Selection()).Focus.Path
	cellPath := tableCellPath(leafPath)
	rowPath, colIdx, ok := cellPath.Parent()
	if !ok {
		return fmt.Errorf("plugins: selection is not in a table")
	}
	tablePath, rowIdx, ok := rowPath.Parent()
	if !ok {
		return fmt.Errorf("plugins: selection is not in a table")
	}
	table, err := getTable(e, tablePath)
	if err != nil {
		return err
	}
	row := table.ChildAt(rowIdx).(*model.Element)

	var nextCellPath model.Path
	switch {
	case colIdx+1 < row.ChildCount():
		nextCellPath = rowPath.Child(colIdx + 1)
	case rowIdx+1 < table.ChildCount():
		nextCellPath = tablePath.Child(rowIdx + 1).Child(0)
	default:
		newRowIdx := table.ChildCount()
		if err := e.Apply(ops.InsertNode{Path: tablePath.Child(newRowIdx), Node: newRow(row.ChildCount())}); err != nil {
			return err
		}
		nextCellPath = tablePath.Child(newRowIdx).Child(0)
	}
	firstLeaf, err := cellFirstLeaf(e, nextCellPath)
	if err != nil {
		return err
	}
	e.SetSelection(selection.Collapse(firstLeaf, 0))
	return nil
}

// TabPrevious moves the cursor to the previous cell in reading order; it
// is a no-op at the table's first cell.
func TabPrevious(e *editor.Editor) error {
	leafPath := selection.Normalize(e.Selection()).Focus.Path
	cellPath := tableCellPath(leafPath)
	rowPath, colIdx, ok := cellPath.Parent()
	if !ok {
		return fmt.Errorf("plugins: selection is not in a table")
	}
	tablePath, rowIdx, ok := rowPath.Parent()
	if !ok {
		return fmt.Errorf("plugins: selection is not in a table")
	}

	var prevCellPath model.Path
	switch {
	case colIdx > 0:
		prevCellPath = rowPath.Child(colIdx - 1)
	case rowIdx > 0:
		table, err := getTable(e, tablePath)
		if err != nil {
			return err
		}
		prevRow := table.ChildAt(rowIdx - 1).(*model.Element)
		prevCellPath = tablePath.Child(rowIdx - 1).Child(prevRow.ChildCount() - 1)
	default:
		return nil
	}
	firstLeaf, err := cellFirstLeaf(e, prevCellPath)
	if err != nil {
		return err
	}
	e.SetSelection(selection.Collapse(firstLeaf, 0))
	return nil
}
