package xlsxio

import (
	"strconv"
	"strings"
	"time"
)

// Cell is a single resolved worksheet cell, with Row and Col both 1-based.
type Cell struct {
	Row int
	Col int
	// Value is the cell's resolved textual value: the raw <v> text, the
	// shared-string table entry it indexed, or the concatenated <is><t>
	// text runs of an inline string. It is "" when IsNull is true.
	Value string
	// IsNull distinguishes "no value" from "value is the empty string".
	IsNull bool
	// Style is the cell's "s" attribute: a 0-based index into the
	// workbook's cell-format (XF) table, or 0 when the cell carries none.
	// It is only meaningful to the display-formatting adapter
	// (styleindex/numformat); the core reader never interprets it.
	Style int
}

// Int parses Value as a whole decimal number, returning 0 if it is not one.
func (c Cell) Int() int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Value))
	if err != nil {
		return 0
	}
	return v
}

// Float parses Value as a decimal floating-point number, returning 0 if it
// is not one.
func (c Cell) Float() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil {
		return 0
	}
	return v
}

// excelEpochOffsetDays is the number of days between the Excel 1900 date
// system's epoch and the Unix epoch (1970-01-01), i.e. the serial value of
// 1970-01-01 under the (uncorrected) 1900 system.
const excelEpochOffsetDays = 25569

// DateTime parses Value as an Excel date serial and converts it to a
// time.Time under the 1900 date system, without correcting for the
// Lotus 1-2-3 leap-year bug or supporting the 1904 epoch — callers that
// need either should use numformat.ConvertDateEx directly with
// File.Date1904 instead. A Value of "0" or one that fails to
// parse returns the zero time.Time.
func (c Cell) DateTime() time.Time {
	v := c.Float()
	if v == 0 {
		return time.Time{}
	}
	secs := int64((v - excelEpochOffsetDays) * 86400)
	return time.Unix(secs, 0).UTC()
}
