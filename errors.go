package xlsxio

import "errors"

// Sentinel errors returned (via errors.Is) by this package's operations.
var (
	// ErrContainer indicates a failure opening or reading the underlying ZIP
	// archive, or locating a required part within it (the workbook part
	// itself, or [Content_Types].xml).
	ErrContainer = errors.New("xlsxio: container error")
	// ErrSheetNotFound indicates a requested sheet name has no matching
	// entry in the workbook.
	ErrSheetNotFound = errors.New("xlsxio: sheet not found")
	// ErrParse indicates malformed XML in a required part.
	ErrParse = errors.New("xlsxio: parse error")
	// ErrOutOfRange names the out-of-range condition. No operation of this
	// package returns it: a cell referencing data out of range (e.g. a shared
	// string index past the end of the table) simply resolves to a null
	// cell, and the typed NextCell* accessors report failure only through
	// their bool result.
	ErrOutOfRange = errors.New("xlsxio: value out of range")
	// ErrStopped is returned by Process (Sheet.Process and File.Process) when
	// either callback returned false to request an early stop. It is not a
	// failure of the underlying traversal — use errors.Is to tell it apart
	// from a real parse or container error.
	ErrStopped = errors.New("xlsxio: stopped")
)
