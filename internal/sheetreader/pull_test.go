package sheetreader

import (
	"strings"
	"testing"

	"github.com/cellstream/xlsxio/internal/sharedstrings"
)

func drainAll(d *Driver) (rows []int, cells [][]Cell) {
	for {
		row, ok := d.AdvanceRow()
		if !ok {
			return rows, cells
		}
		rows = append(rows, row)
		var rowCells []Cell
		for {
			c, ok := d.TakeCell()
			if !ok {
				break
			}
			rowCells = append(rowCells, c)
		}
		cells = append(cells, rowCells)
	}
}

func TestDriverBasic(t *testing.T) {
	d := NewDriver(strings.NewReader(sheetBasic), mustSharedStrings(t, `<sst><si><t>hello</t></si><si><t>world</t></si></sst>`), 0)

	rows, cells := drainAll(d)
	if len(rows) != 2 || rows[0] != 1 || rows[1] != 2 {
		t.Fatalf("rows = %v, want [1 2]", rows)
	}
	if len(cells[0]) != 2 || cells[0][0].Value != "hello" || cells[0][1].Value != "42" {
		t.Errorf("row 1 cells = %+v", cells[0])
	}
	if len(cells[1]) != 2 || cells[1][0].Value != "3.5" || cells[1][1].Value != "world" {
		t.Errorf("row 2 cells = %+v", cells[1])
	}
}

func TestDriverRowGapSynthesis(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1"><v>a</v></c></row>
<row r="3"><c r="A3"><v>c</v></c></row>
</sheetData></worksheet>`

	d := NewDriver(strings.NewReader(sheet), sharedstrings.Empty(), 0)
	rows, cells := drainAll(d)
	if len(rows) != 3 {
		t.Fatalf("rows = %v, want 3 rows", rows)
	}
	if len(cells[1]) != 1 || !cells[1][0].IsNull {
		t.Errorf("synthesized row 2 cells = %+v, want one null cell", cells[1])
	}
}

func TestDriverRowGapSkipped(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1"><v>a</v></c></row>
<row r="3"><c r="A3"><v>c</v></c></row>
</sheetData></worksheet>`

	d := NewDriver(strings.NewReader(sheet), sharedstrings.Empty(), SkipEmptyRows)
	rows, _ := drainAll(d)
	if len(rows) != 2 || rows[0] != 1 || rows[1] != 3 {
		t.Fatalf("rows = %v, want [1 3]", rows)
	}
}

func TestDriverCellGapSynthesisAndSkip(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1"><v>a</v></c><c r="C1"><v>c</v></c></row>
</sheetData></worksheet>`

	d := NewDriver(strings.NewReader(sheet), sharedstrings.Empty(), 0)
	_, cells := drainAll(d)
	if len(cells[0]) != 3 || !cells[0][1].IsNull {
		t.Fatalf("row cells = %+v, want [a null c]", cells[0])
	}

	d = NewDriver(strings.NewReader(sheet), sharedstrings.Empty(), SkipEmptyCells)
	_, cells = drainAll(d)
	if len(cells[0]) != 2 {
		t.Fatalf("row cells (skip) = %+v, want 2 cells", cells[0])
	}
}

func TestDriverCurrentRowCol(t *testing.T) {
	d := NewDriver(strings.NewReader(sheetBasic), sharedstrings.Empty(), 0)
	if d.CurrentRow() != 0 {
		t.Fatalf("CurrentRow() before AdvanceRow = %d, want 0", d.CurrentRow())
	}
	d.AdvanceRow()
	if d.CurrentRow() != 1 {
		t.Errorf("CurrentRow() = %d, want 1", d.CurrentRow())
	}
	d.TakeCell()
	if d.CurrentCol() != 1 {
		t.Errorf("CurrentCol() = %d, want 1", d.CurrentCol())
	}
}

func TestDriverAbandonRowMidway(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1"><v>a</v></c><c r="B1"><v>b</v></c></row>
<row r="2"><c r="A2"><v>x</v></c></row>
</sheetData></worksheet>`

	d := NewDriver(strings.NewReader(sheet), sharedstrings.Empty(), 0)
	row, ok := d.AdvanceRow()
	if !ok || row != 1 {
		t.Fatalf("AdvanceRow = %d, %v", row, ok)
	}
	// Skip taking any cells from row 1 and move straight to row 2.
	row, ok = d.AdvanceRow()
	if !ok || row != 2 {
		t.Fatalf("AdvanceRow = %d, %v, want row 2", row, ok)
	}
	c, ok := d.TakeCell()
	if !ok || c.Value != "x" {
		t.Fatalf("TakeCell = %+v, %v, want x", c, ok)
	}
}
