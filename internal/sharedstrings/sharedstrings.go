// Package sharedstrings builds the workbook-wide shared-string table from
// the xl/sharedStrings.xml part.
//
// The table is an ordered, zero-indexed, immutable list of strings. Each
// <si> item's text is the concatenation of its <t> runs; phonetic runs
// (<rPh>) are excluded entirely, mirroring the four-state machine the
// original C reader drives over the same part (root -> sst -> si -> t, with
// <rPh> handled as a nested skip region).
package sharedstrings

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/cellstream/xlsxio/internal/xmlname"
)

// Table is an immutable, zero-indexed list of shared strings.
type Table struct {
	strings []string
}

// Empty is a zero-length table, returned when no shared-strings part exists.
// A missing table is not an error: no cell needs to reference it unless the
// worksheet itself contains a shared-string cell.
func Empty() *Table {
	return &Table{}
}

// Len returns the number of strings in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.strings)
}

// Get returns the string at the given zero-based index. It returns
// ("", false) when idx is out of range, rather than panicking, so that a
// shared-string cell referencing a missing entry resolves to a null cell
// per the out-of-range contract instead of crashing the traversal.
func (t *Table) Get(idx int) (string, bool) {
	if t == nil || idx < 0 || idx >= len(t.strings) {
		return "", false
	}
	return t.strings[idx], true
}

// state names the four levels of the shared-string state machine, plus the
// skip layer used to discard <rPh> phonetic runs.
type state int

const (
	stateRoot state = iota
	stateSST
	stateSI
	stateT
	stateSkip
)

// Parse reads the full xl/sharedStrings.xml document from r and builds a
// Table. A missing or mid-parse-truncated table yields an empty (not nil)
// Table rather than an error, matching the "never fails the archive" policy
// for shared strings — a truncated stream simply stops contributing
// further entries.
func Parse(r io.Reader) (*Table, error) {
	dec := xml.NewDecoder(r)
	t := &Table{}

	st := stateRoot
	var savedBeforeSkip state
	skipDepth := 0

	var buf strings.Builder
	accumulate := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Parse error mid-stream: keep whatever was parsed so far rather
			// than discarding the whole table.
			return t, nil
		}

		switch el := tok.(type) {
		case xml.StartElement:
			name := el.Name.Local
			switch st {
			case stateRoot:
				if xmlname.Equal(name, "sst") {
					st = stateSST
				}
			case stateSST:
				if xmlname.Equal(name, "si") {
					buf.Reset()
					st = stateSI
				}
			case stateSI:
				switch {
				case xmlname.Equal(name, "t"):
					accumulate = true
					st = stateT
				case xmlname.Equal(name, "rPh"):
					savedBeforeSkip = stateSI
					skipDepth = 1
					st = stateSkip
				}
			case stateT:
				if xmlname.Equal(name, "rPh") {
					savedBeforeSkip = stateT
					skipDepth = 1
					st = stateSkip
				}
			case stateSkip:
				if xmlname.Equal(name, "rPh") {
					skipDepth++
				}
			}

		case xml.EndElement:
			name := el.Name.Local
			switch st {
			case stateSST:
				if xmlname.Equal(name, "sst") {
					st = stateRoot
				}
			case stateSI:
				if xmlname.Equal(name, "si") {
					t.strings = append(t.strings, buf.String())
					st = stateSST
				}
			case stateT:
				if xmlname.Equal(name, "t") {
					accumulate = false
					st = stateSI
				} else if xmlname.Equal(name, "si") {
					t.strings = append(t.strings, buf.String())
					st = stateSST
				}
			case stateSkip:
				if xmlname.Equal(name, "rPh") {
					skipDepth--
					if skipDepth == 0 {
						st = savedBeforeSkip
					}
				}
			}

		case xml.CharData:
			if accumulate && st == stateT {
				buf.Write(el)
			}
		}
	}

	return t, nil
}

// ParseBytes is a convenience wrapper for building a Table from an in-memory
// byte slice (the shape exercised by every test fixture in this module).
func ParseBytes(data []byte) (*Table, error) {
	t, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sharedstrings: %w", err)
	}
	return t, nil
}
