// Package cellref decodes and encodes A1-style cell coordinates (e.g.
// "AA12"), the reference form used throughout worksheet XML.
package cellref

import (
	"strconv"
	"strings"
)

// Parse decodes an A1-style cell reference into a 1-based (row, col) pair.
// Column letters (case-insensitive) are interpreted as a base-26 number
// (A=1 ... Z=26, AA=27 ...); the digits that follow are the decimal row
// number. A malformed reference — digits before letters, no digits at all,
// or any other character — yields (0, 0), matching the "unspecified"
// sentinel the sheet state machine falls back on.
func Parse(ref string) (row, col int) {
	col = parseCol(ref)
	row = parseRow(ref)
	return row, col
}

// parseCol mirrors get_col_nr: walk leading letters, stop (successfully) at
// the first digit, bail to 0 on any other character.
func parseCol(ref string) int {
	result := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'A' && c <= 'Z':
			result = result*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			result = result*26 + int(c-'a') + 1
		case c >= '0' && c <= '9' && i > 0:
			return result
		default:
			return 0
		}
	}
	return 0
}

// parseRow mirrors get_row_nr: letters are skipped, digits accumulate a
// decimal row number, any other character (or leading digit with no letters
// in front of it) is an error.
func parseRow(ref string) int {
	result := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			// letters contribute nothing to the row number
		case c >= '0' && c <= '9' && i > 0:
			result = result*10 + int(c-'0')
		default:
			return 0
		}
	}
	return result
}

// Format encodes a 1-based (row, col) pair as an upper-case A1-style
// reference. It is the inverse of Parse for well-formed (row >= 1, col >= 1)
// coordinates; it returns "" for non-positive input.
func Format(row, col int) string {
	if row < 1 || col < 1 {
		return ""
	}
	var letters strings.Builder
	n := col
	for n > 0 {
		n--
		letters.WriteByte(byte('A' + n%26))
		n /= 26
	}
	s := letters.String()
	// letters were appended least-significant first; reverse in place.
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	var out strings.Builder
	out.Write(b)
	out.WriteString(strconv.Itoa(row))
	return out.String()
}
