package sheetreader

import (
	"encoding/xml"
	"io"

	"github.com/cellstream/xlsxio/internal/sharedstrings"
)

// Driver is the pull-mode counterpart to Process: a caller advances row by
// row with AdvanceRow and pulls that row's cells one at a time with
// TakeCell, rather than handing the engine a pair of callbacks.
//
// Gaps the skip flags don't suppress are synthesized here exactly as they
// are in push mode, just one call at a time instead of in a batch.
type Driver struct {
	m     *machine
	flags SkipFlags

	curRow      int
	curCol      int
	rowIsReal   bool
	rowExpected int

	peekedRowStart      int
	peekedRowStartValid bool

	peekedCell      Cell
	peekedCellValid bool

	rowEndSeen         bool
	rowEndEndsRow      int
	rowEndExpectedCols int

	done bool
}

// NewDriver builds a pull-mode Driver over a worksheet part.
func NewDriver(r io.Reader, table *sharedstrings.Table, flags SkipFlags) *Driver {
	return &Driver{m: newMachine(xml.NewDecoder(r), table, flags), flags: flags}
}

// CurrentRow returns the row number the driver is currently positioned on
// (0 before the first AdvanceRow call).
func (d *Driver) CurrentRow() int { return d.curRow }

// CurrentCol returns the column of the last cell TakeCell returned within
// the current row (0 if no cell has been taken yet this row).
func (d *Driver) CurrentCol() int { return d.curCol }

// AdvanceRow moves to the next row — real or, unless SkipEmptyRows is set,
// synthesized to fill a gap in the row-number sequence — and returns its
// number. ok is false once the worksheet is exhausted.
func (d *Driver) AdvanceRow() (row int, ok bool) {
	if d.done {
		return 0, false
	}
	if !d.peekedRowStartValid {
		d.rowEndSeen = false
		d.peekedCellValid = false
		if !d.peekNextRowStart() {
			d.done = true
			return 0, false
		}
	}

	nextReal := d.peekedRowStart
	candidate := d.curRow + 1
	if d.curRow == 0 {
		candidate = 1
	}

	if !d.flags.Has(SkipEmptyRows) && candidate < nextReal {
		d.curRow = candidate
		d.rowIsReal = false
		d.curCol = 0
		d.rowExpected = d.m.expectedCols
		return d.curRow, true
	}

	d.curRow = nextReal
	d.rowIsReal = true
	d.curCol = 0
	d.peekedRowStartValid = false
	return d.curRow, true
}

// TakeCell returns the next cell in the current row, synthesizing a null
// cell for any gap the skip flags don't suppress. ok is false once the row
// has no more cells (real or synthesized) to offer.
func (d *Driver) TakeCell() (Cell, bool) {
	if d.done || d.curRow == 0 {
		return Cell{}, false
	}

	if !d.rowIsReal {
		if d.flags.Has(SkipEmptyCells) {
			return Cell{}, false
		}
		if d.curCol >= d.rowExpected {
			return Cell{}, false
		}
		d.curCol++
		return Cell{Row: d.curRow, Col: d.curCol, IsNull: true}, true
	}

	for {
		if d.rowEndSeen && d.rowEndEndsRow == d.curRow {
			if d.flags.Has(SkipEmptyCells) {
				d.rowEndSeen = false
				return Cell{}, false
			}
			if d.curCol >= d.rowEndExpectedCols {
				d.rowEndSeen = false
				return Cell{}, false
			}
			d.curCol++
			return Cell{Row: d.curRow, Col: d.curCol, IsNull: true}, true
		}

		if !d.peekedCellValid {
			sig, err := d.m.advance()
			if err != nil {
				d.done = true
				return Cell{}, false
			}
			switch sig.kind {
			case sigEOF:
				d.done = true
				return Cell{}, false
			case sigCell:
				d.peekedCell = sig.cell
				d.peekedCellValid = true
			case sigRowEnd:
				d.rowEndSeen = true
				d.rowEndEndsRow = sig.row
				d.rowEndExpectedCols = sig.expectedCols
			case sigRowStart:
				// Not expected mid-row; ignore defensively.
			}
			continue
		}

		c := d.peekedCell
		if !d.flags.Has(SkipEmptyCells) && c.Col > d.curCol+1 {
			d.curCol++
			return Cell{Row: d.curRow, Col: d.curCol, IsNull: true}, true
		}
		d.peekedCellValid = false
		d.curCol = c.Col
		return c, true
	}
}

func (d *Driver) peekNextRowStart() bool {
	for {
		sig, err := d.m.advance()
		if err != nil {
			return false
		}
		switch sig.kind {
		case sigEOF:
			return false
		case sigRowStart:
			d.peekedRowStart = sig.row
			d.peekedRowStartValid = true
			return true
		case sigRowEnd, sigCell:
			continue
		}
	}
}
