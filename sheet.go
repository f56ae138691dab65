package xlsxio

import (
	"fmt"
	"io"
	"time"

	"github.com/cellstream/xlsxio/internal/sheetreader"
)

// CellCallback is invoked for each cell in push mode. Returning false is a
// cooperative stop, not an error.
type CellCallback func(c Cell) bool

// RowCallback is invoked once a row has been fully delivered in push mode
// (after all of that row's cells, including any synthesized padding).
// Returning false is a cooperative stop.
type RowCallback func(row int) bool

// Sheet is an open worksheet, positioned for forward-only traversal. Use
// NextRow/NextCell (or the typed NextCell* variants) to pull cells one at a
// time, or Process to drive the sheet to completion with callbacks. A Sheet
// should be used in one mode or the other, not both — mixing calls to
// Process with calls to NextRow/NextCell on the same Sheet produces
// undefined results, since Process consumes the same underlying stream the
// pull cursor tracks.
type Sheet struct {
	file   *File
	rc     io.ReadCloser
	driver *sheetreader.Driver
	flags  SkipFlags
}

// Close releases the sheet's archive entry. It must be called when done
// reading the sheet.
func (s *Sheet) Close() error {
	return s.rc.Close()
}

// Flags returns the SkipFlags this Sheet was opened with.
func (s *Sheet) Flags() SkipFlags {
	return s.flags
}

// NextRow advances to the next row — real or, unless SkipEmptyRows was set,
// synthesized to fill a gap in the row-number sequence — and returns its
// number. ok is false once the worksheet is exhausted.
func (s *Sheet) NextRow() (row int, ok bool) {
	return s.driver.AdvanceRow()
}

// NextCell returns the next cell in the current row, synthesizing a null
// cell for any gap the skip flags don't suppress. ok is false once the row
// has no more cells (real or synthesized) to offer.
func (s *Sheet) NextCell() (Cell, bool) {
	c, ok := s.driver.TakeCell()
	if !ok {
		return Cell{}, false
	}
	return Cell{Row: c.Row, Col: c.Col, Value: c.Value, IsNull: c.IsNull, Style: c.Style}, true
}

// NextCellString is NextCell followed by Cell.Value.
func (s *Sheet) NextCellString() (string, bool) {
	c, ok := s.NextCell()
	if !ok {
		return "", false
	}
	return c.Value, true
}

// NextCellInt is NextCell followed by Cell.Int.
func (s *Sheet) NextCellInt() (int, bool) {
	c, ok := s.NextCell()
	if !ok {
		return 0, false
	}
	return c.Int(), true
}

// NextCellFloat is NextCell followed by Cell.Float.
func (s *Sheet) NextCellFloat() (float64, bool) {
	c, ok := s.NextCell()
	if !ok {
		return 0, false
	}
	return c.Float(), true
}

// NextCellDateTime is NextCell followed by Cell.DateTime.
func (s *Sheet) NextCellDateTime() (time.Time, bool) {
	c, ok := s.NextCell()
	if !ok {
		return time.Time{}, false
	}
	return c.DateTime(), true
}

// LastRow returns the row number the sheet is currently positioned on (0
// before the first NextRow call).
func (s *Sheet) LastRow() int {
	return s.driver.CurrentRow()
}

// LastColumn returns the column of the last cell NextCell returned within
// the current row (0 if no cell has been taken yet this row).
func (s *Sheet) LastColumn() int {
	return s.driver.CurrentCol()
}

// Process drives the sheet to completion in push mode, invoking cellFn for
// every cell (including synthesized null cells for gaps the skip flags
// don't suppress) and rowFn, if non-nil, once each row is fully delivered.
// Either callback returning false stops the traversal early; Process then
// returns an error satisfying errors.Is(err, ErrStopped) rather than nil, so
// a caller can tell "stopped early" apart from "ran to completion". Call
// Process on a freshly opened Sheet, before any NextRow/NextCell call.
func (s *Sheet) Process(cellFn CellCallback, rowFn RowCallback) error {
	stopped := false
	var cb sheetreader.CellCallback
	if cellFn != nil {
		cb = func(c sheetreader.Cell) bool {
			ok := cellFn(Cell{Row: c.Row, Col: c.Col, Value: c.Value, IsNull: c.IsNull, Style: c.Style})
			if !ok {
				stopped = true
			}
			return ok
		}
	}
	var rb sheetreader.RowCallback
	if rowFn != nil {
		rb = func(row int) bool {
			ok := rowFn(row)
			if !ok {
				stopped = true
			}
			return ok
		}
	}
	if err := sheetreader.Process(s.rc, s.file.strings, s.flags, cb, rb); err != nil {
		return fmt.Errorf("xlsxio: %w: %v", ErrParse, err)
	}
	if stopped {
		return fmt.Errorf("xlsxio: %w", ErrStopped)
	}
	return nil
}
