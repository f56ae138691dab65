package sheetreader

import (
	"strings"
	"testing"

	"github.com/cellstream/xlsxio/internal/sharedstrings"
)

func mustSharedStrings(t *testing.T, doc string) *sharedstrings.Table {
	t.Helper()
	table, err := sharedstrings.ParseBytes([]byte(doc))
	if err != nil {
		t.Fatalf("sharedstrings.ParseBytes: %v", err)
	}
	return table
}

type recorded struct {
	cells []Cell
	rows  []int
}

func run(t *testing.T, sheet string, table *sharedstrings.Table, flags SkipFlags) recorded {
	t.Helper()
	var got recorded
	err := Process(strings.NewReader(sheet), table, flags,
		func(c Cell) bool { got.cells = append(got.cells, c); return true },
		func(row int) bool { got.rows = append(got.rows, row); return true },
	)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return got
}

const sheetBasic = `<worksheet><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1"><v>42</v></c></row>
<row r="2"><c r="A2"><v>3.5</v></c><c r="B2" t="s"><v>1</v></c></row>
</sheetData></worksheet>`

func TestProcessBasic(t *testing.T) {
	table := mustSharedStrings(t, `<sst><si><t>hello</t></si><si><t>world</t></si></sst>`)
	got := run(t, sheetBasic, table, 0)

	want := []Cell{
		{Row: 1, Col: 1, Value: "hello"},
		{Row: 1, Col: 2, Value: "42"},
		{Row: 2, Col: 1, Value: "3.5"},
		{Row: 2, Col: 2, Value: "world"},
	}
	if len(got.cells) != len(want) {
		t.Fatalf("got %d cells, want %d: %+v", len(got.cells), len(want), got.cells)
	}
	for i, w := range want {
		if got.cells[i] != w {
			t.Errorf("cell[%d] = %+v, want %+v", i, got.cells[i], w)
		}
	}
	if len(got.rows) != 2 || got.rows[0] != 1 || got.rows[1] != 2 {
		t.Errorf("rows = %v, want [1 2]", got.rows)
	}
}

func TestProcessRowGapSynthesis(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1"><v>a</v></c></row>
<row r="3"><c r="A3"><v>c</v></c></row>
</sheetData></worksheet>`

	got := run(t, sheet, sharedstrings.Empty(), 0)
	wantRows := []int{1, 2, 3}
	if len(got.rows) != len(wantRows) {
		t.Fatalf("rows = %v, want %v", got.rows, wantRows)
	}
	// Row 2 should be synthesized as a single null cell (expected width 1,
	// locked from row 1).
	foundNullRow2 := false
	for _, c := range got.cells {
		if c.Row == 2 {
			foundNullRow2 = true
			if !c.IsNull || c.Col != 1 {
				t.Errorf("synthesized row 2 cell = %+v, want null at col 1", c)
			}
		}
	}
	if !foundNullRow2 {
		t.Error("expected a synthesized null cell for row 2")
	}
}

func TestProcessRowGapSkipped(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1"><v>a</v></c></row>
<row r="3"><c r="A3"><v>c</v></c></row>
</sheetData></worksheet>`

	got := run(t, sheet, sharedstrings.Empty(), SkipEmptyRows)
	if len(got.rows) != 2 || got.rows[0] != 1 || got.rows[1] != 3 {
		t.Errorf("rows = %v, want [1 3]", got.rows)
	}
	for _, c := range got.cells {
		if c.Row == 2 {
			t.Errorf("did not expect a row-2 cell with SkipEmptyRows set: %+v", c)
		}
	}
}

func TestProcessCellGapSynthesisAndSkip(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1"><v>a</v></c><c r="C1"><v>c</v></c></row>
</sheetData></worksheet>`

	got := run(t, sheet, sharedstrings.Empty(), 0)
	want := []Cell{
		{Row: 1, Col: 1, Value: "a"},
		{Row: 1, Col: 2, IsNull: true},
		{Row: 1, Col: 3, Value: "c"},
	}
	if len(got.cells) != len(want) {
		t.Fatalf("cells = %+v, want %+v", got.cells, want)
	}
	for i, w := range want {
		if got.cells[i] != w {
			t.Errorf("cell[%d] = %+v, want %+v", i, got.cells[i], w)
		}
	}

	got = run(t, sheet, sharedstrings.Empty(), SkipEmptyCells)
	want = []Cell{
		{Row: 1, Col: 1, Value: "a"},
		{Row: 1, Col: 3, Value: "c"},
	}
	if len(got.cells) != len(want) {
		t.Fatalf("cells (skip) = %+v, want %+v", got.cells, want)
	}
}

func TestProcessExtraCellsSkipped(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1"><v>a</v></c></row>
<row r="2"><c r="A2"><v>x</v></c><c r="B2"><v>y</v></c></row>
</sheetData></worksheet>`

	got := run(t, sheet, sharedstrings.Empty(), SkipExtraCells)
	for _, c := range got.cells {
		if c.Row == 2 && c.Col == 2 {
			t.Errorf("expected column B of row 2 to be discarded by SkipExtraCells, got %+v", c)
		}
	}
}

func TestProcessHiddenRowSkipped(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1" hidden="1"><c r="A1"><v>hidden</v></c></row>
<row r="2"><c r="A2"><v>shown</v></c></row>
</sheetData></worksheet>`

	// The hidden row is dropped before padding, so without SkipEmptyRows it
	// comes back as a synthesized empty row 1.
	got := run(t, sheet, sharedstrings.Empty(), SkipHiddenRows)
	if len(got.rows) != 2 || got.rows[0] != 1 || got.rows[1] != 2 {
		t.Errorf("rows = %v, want [1 2]", got.rows)
	}
	for _, c := range got.cells {
		if c.Value == "hidden" {
			t.Error("hidden row's cell should not have been emitted")
		}
	}
}

func TestProcessInlineString(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1" t="inlineStr"><is><t>inline value</t></is></c></row>
</sheetData></worksheet>`

	got := run(t, sheet, sharedstrings.Empty(), 0)
	if len(got.cells) != 1 || got.cells[0].Value != "inline value" {
		t.Fatalf("cells = %+v", got.cells)
	}
}

func TestProcessNullCellNoValueTag(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1"/></row>
</sheetData></worksheet>`

	got := run(t, sheet, sharedstrings.Empty(), 0)
	if len(got.cells) != 1 || !got.cells[0].IsNull {
		t.Fatalf("cells = %+v, want single null cell", got.cells)
	}
}

func TestProcessPhoneticRunInCellExcluded(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1" t="inlineStr"><is><t>山</t><rPh><t>やま</t></rPh></is></c></row>
</sheetData></worksheet>`

	got := run(t, sheet, sharedstrings.Empty(), 0)
	if len(got.cells) != 1 || got.cells[0].Value != "山" {
		t.Fatalf("cells = %+v, want [山]", got.cells)
	}
}

func TestProcessMalformedRefFallsBackToRunningColumn(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c><v>a</v></c><c><v>b</v></c></row>
</sheetData></worksheet>`

	got := run(t, sheet, sharedstrings.Empty(), 0)
	want := []Cell{{Row: 1, Col: 1, Value: "a"}, {Row: 1, Col: 2, Value: "b"}}
	if len(got.cells) != len(want) {
		t.Fatalf("cells = %+v, want %+v", got.cells, want)
	}
	for i, w := range want {
		if got.cells[i] != w {
			t.Errorf("cell[%d] = %+v, want %+v", i, got.cells[i], w)
		}
	}
}

func TestProcessSharedStringOutOfRangeIsNull(t *testing.T) {
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1" t="s"><v>99</v></c></row>
</sheetData></worksheet>`

	got := run(t, sheet, sharedstrings.Empty(), 0)
	if len(got.cells) != 1 || !got.cells[0].IsNull {
		t.Fatalf("cells = %+v, want null cell for out-of-range shared string", got.cells)
	}
}

func TestProcessStopEarly(t *testing.T) {
	seen := 0
	err := Process(strings.NewReader(sheetBasic), sharedstrings.Empty(), 0,
		func(c Cell) bool { seen++; return false },
		func(row int) bool { return true },
	)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if seen != 1 {
		t.Errorf("expected traversal to stop after first cell, saw %d", seen)
	}
}
