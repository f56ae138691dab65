package xlsxio

import "github.com/cellstream/xlsxio/internal/sheetreader"

// SkipFlags controls which parts of a sparse worksheet are rectangularized
// away versus synthesized as null cells/rows. The zero value requests no
// skipping: every gap in the source is padded with null cells/rows.
type SkipFlags = sheetreader.SkipFlags

const (
	// SkipEmptyRows suppresses emission of rows whose source encoding is
	// absent (gaps in the row-number sequence).
	SkipEmptyRows = sheetreader.SkipEmptyRows
	// SkipEmptyCells suppresses emission of cells whose source encoding is
	// absent (gaps in the column sequence within a row).
	SkipEmptyCells = sheetreader.SkipEmptyCells
	// SkipExtraCells discards cells to the right of the first row's column
	// count.
	SkipExtraCells = sheetreader.SkipExtraCells
	// SkipHiddenRows discards any row with a truthy "hidden" attribute.
	SkipHiddenRows = sheetreader.SkipHiddenRows
)
