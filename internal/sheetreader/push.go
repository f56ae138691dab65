package sheetreader

import (
	"encoding/xml"
	"io"

	"github.com/cellstream/xlsxio/internal/sharedstrings"
)

// Process drives a worksheet part to completion in push mode, invoking
// cellFn for every cell (including synthesized null cells for gaps the skip
// flags don't suppress) and rowFn once a row is fully delivered. Either
// callback returning false stops the traversal early without an error.
func Process(r io.Reader, table *sharedstrings.Table, flags SkipFlags, cellFn CellCallback, rowFn RowCallback) error {
	m := newMachine(xml.NewDecoder(r), table, flags)

	lastRow := 0
	lastCol := 0

	emitCell := func(c Cell) bool {
		if cellFn == nil {
			return true
		}
		return cellFn(c)
	}
	emitRow := func(row int) bool {
		if rowFn == nil {
			return true
		}
		return rowFn(row)
	}

	padRow := func(row int) bool {
		if !flags.Has(SkipEmptyCells) {
			for c := 1; c <= m.expectedCols; c++ {
				if !emitCell(Cell{Row: row, Col: c, IsNull: true}) {
					return false
				}
			}
		}
		return emitRow(row)
	}

	for {
		sig, err := m.advance()
		if err != nil {
			return err
		}

		switch sig.kind {
		case sigEOF:
			return nil

		case sigRowStart:
			if !flags.Has(SkipEmptyRows) {
				for r := lastRow + 1; r < sig.row; r++ {
					if !padRow(r) {
						return nil
					}
				}
			}
			lastCol = 0

		case sigCell:
			if !flags.Has(SkipEmptyCells) {
				for c := lastCol + 1; c < sig.cell.Col; c++ {
					if !emitCell(Cell{Row: sig.row, Col: c, IsNull: true}) {
						return nil
					}
				}
			}
			lastCol = sig.cell.Col
			if !emitCell(sig.cell) {
				return nil
			}

		case sigRowEnd:
			if !flags.Has(SkipEmptyCells) {
				for c := lastCol + 1; c <= sig.expectedCols; c++ {
					if !emitCell(Cell{Row: sig.row, Col: c, IsNull: true}) {
						return nil
					}
				}
			}
			lastRow = sig.row
			if !emitRow(sig.row) {
				return nil
			}
		}
	}
}
