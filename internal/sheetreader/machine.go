package sheetreader

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cellstream/xlsxio/internal/cellref"
	"github.com/cellstream/xlsxio/internal/sharedstrings"
	"github.com/cellstream/xlsxio/internal/xmlname"
)

type sheetState int

const (
	stateOuter sheetState = iota
	stateWorksheet
	stateSheetData
	stateRow
	stateCell
	stateValue
	stateHiddenRow
	stateIgnoreCell
	stateSkipPhonetic
)

type cellMode int

const (
	cellModeValue cellMode = iota
	cellModeShared
)

// signalKind identifies what, if anything, a call to machine.advance
// produced.
type signalKind int

const (
	sigNone signalKind = iota
	sigRowStart
	sigRowEnd
	sigCell
	sigEOF
)

type signal struct {
	kind         signalKind
	row          int
	cell         Cell
	expectedCols int // valid on sigRowEnd
}

// machine is the low-level nested state machine over a single worksheet
// part. It knows nothing about skip-empty-rows/skip-empty-cells padding —
// that bookkeeping differs between the push and pull drivers built on top
// of it — but it does enforce skip-hidden-rows and skip-extra-cells, since
// those decide whether source content is read at all.
type machine struct {
	dec     *xml.Decoder
	strings *sharedstrings.Table
	flags   SkipFlags

	state sheetState

	row, col       int
	expectedCols   int
	expectedLocked bool

	hiddenDepth int
	ignoreDepth int

	cellCol   int
	cellStyle int
	cellMode  cellMode
	sawAnyTag bool

	buf        strings.Builder
	accumulate bool

	phoneticDepth int
	restoreState  sheetState

	eof bool
}

func newMachine(dec *xml.Decoder, table *sharedstrings.Table, flags SkipFlags) *machine {
	return &machine{dec: dec, strings: table, flags: flags, state: stateOuter}
}

// advance drives the decoder until it produces an externally meaningful
// signal (row start, row end, cell, or end of document).
func (m *machine) advance() (signal, error) {
	if m.eof {
		return signal{kind: sigEOF}, nil
	}
	for {
		tok, err := m.dec.Token()
		if err == io.EOF {
			m.eof = true
			return signal{kind: sigEOF}, nil
		}
		if err != nil {
			return signal{}, fmt.Errorf("sheetreader: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if sig, ok := m.start(el); ok {
				return sig, nil
			}
		case xml.EndElement:
			if sig, ok := m.end(el.Name.Local); ok {
				return sig, nil
			}
		case xml.CharData:
			if m.accumulate {
				m.buf.Write(el)
			}
		}
	}
}

func attrValue(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if xmlname.Equal(a.Name.Local, name) {
			return a.Value, true
		}
	}
	return "", false
}

func (m *machine) start(el xml.StartElement) (signal, bool) {
	name := el.Name.Local

	switch m.state {
	case stateOuter:
		if xmlname.Equal(name, "worksheet") {
			m.state = stateWorksheet
		}

	case stateWorksheet:
		if xmlname.Equal(name, "sheetData") {
			m.state = stateSheetData
		}

	case stateSheetData:
		if !xmlname.Equal(name, "row") {
			break
		}
		hidden := false
		if v, ok := attrValue(el, "hidden"); ok {
			hidden = v == "1" || v == "true"
		}
		if hidden && m.flags.Has(SkipHiddenRows) {
			m.hiddenDepth = 1
			m.state = stateHiddenRow
			break
		}
		rowNum := m.row + 1
		if v, ok := attrValue(el, "r"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				rowNum = n
			}
		}
		m.row = rowNum
		m.col = 0
		m.state = stateRow
		return signal{kind: sigRowStart, row: m.row}, true

	case stateHiddenRow:
		if xmlname.Equal(name, "row") {
			m.hiddenDepth++
		}

	case stateRow:
		if !xmlname.Equal(name, "c") {
			break
		}
		col := 0
		if v, ok := attrValue(el, "r"); ok {
			_, col = cellref.Parse(v)
		}
		if col == 0 {
			col = m.col + 1
		}
		if m.flags.Has(SkipExtraCells) && m.expectedLocked && col > m.expectedCols {
			m.col = col - 1
			m.ignoreDepth = 1
			m.state = stateIgnoreCell
			break
		}
		m.cellCol = col
		m.cellStyle = 0
		if v, ok := attrValue(el, "s"); ok {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				m.cellStyle = n
			}
		}
		m.cellMode = cellModeValue
		if v, ok := attrValue(el, "t"); ok && v == "s" {
			m.cellMode = cellModeShared
		}
		m.sawAnyTag = false
		m.buf.Reset()
		m.state = stateCell

	case stateIgnoreCell:
		if xmlname.Equal(name, "c") {
			m.ignoreDepth++
		}

	case stateCell:
		switch {
		case xmlname.Equal(name, "v"), xmlname.Equal(name, "t"):
			m.sawAnyTag = true
			m.accumulate = true
			m.state = stateValue
		case xmlname.Equal(name, "is"):
			m.sawAnyTag = true
		case xmlname.Equal(name, "rPh"):
			m.phoneticDepth = 1
			m.restoreState = stateCell
			m.state = stateSkipPhonetic
		}

	case stateValue:
		if xmlname.Equal(name, "rPh") {
			m.phoneticDepth = 1
			m.restoreState = stateValue
			m.accumulate = false
			m.state = stateSkipPhonetic
		}

	case stateSkipPhonetic:
		if xmlname.Equal(name, "rPh") {
			m.phoneticDepth++
		}
	}

	return signal{}, false
}

func (m *machine) end(name string) (signal, bool) {
	switch m.state {
	case stateWorksheet:
		if xmlname.Equal(name, "worksheet") {
			m.state = stateOuter
		}

	case stateSheetData:
		if xmlname.Equal(name, "sheetData") {
			m.state = stateWorksheet
		}

	case stateHiddenRow:
		if xmlname.Equal(name, "row") {
			m.hiddenDepth--
			if m.hiddenDepth == 0 {
				m.state = stateSheetData
			}
		}

	case stateRow:
		if xmlname.Equal(name, "row") {
			if !m.expectedLocked {
				m.expectedCols = m.col
				m.expectedLocked = true
			}
			m.state = stateSheetData
			return signal{kind: sigRowEnd, row: m.row, expectedCols: m.expectedCols}, true
		}

	case stateIgnoreCell:
		if xmlname.Equal(name, "c") {
			m.ignoreDepth--
			if m.ignoreDepth == 0 {
				m.state = stateRow
			}
		}

	case stateCell:
		if xmlname.Equal(name, "c") {
			m.col = m.cellCol
			cell := m.resolveCell()
			m.state = stateRow
			return signal{kind: sigCell, row: m.row, cell: cell}, true
		}

	case stateValue:
		switch {
		case xmlname.Equal(name, "v"), xmlname.Equal(name, "t"):
			m.accumulate = false
			m.state = stateCell
		case xmlname.Equal(name, "c"):
			// Malformed/unbalanced stream: <c> closed without closing its
			// open <v>/<t> first. Resolve what we have.
			m.accumulate = false
			m.col = m.cellCol
			cell := m.resolveCell()
			m.state = stateRow
			return signal{kind: sigCell, row: m.row, cell: cell}, true
		}

	case stateSkipPhonetic:
		if xmlname.Equal(name, "rPh") {
			m.phoneticDepth--
			if m.phoneticDepth == 0 {
				m.state = m.restoreState
			}
		}
	}

	return signal{}, false
}

// resolveCell turns the accumulated buffer and cell mode into a Cell value,
// applying the shared-string lookup when applicable.
func (m *machine) resolveCell() Cell {
	if !m.sawAnyTag {
		return Cell{Row: m.row, Col: m.cellCol, Style: m.cellStyle, IsNull: true}
	}
	raw := m.buf.String()
	if m.cellMode == cellModeShared {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return Cell{Row: m.row, Col: m.cellCol, Style: m.cellStyle, IsNull: true}
		}
		s, ok := m.strings.Get(idx)
		if !ok {
			return Cell{Row: m.row, Col: m.cellCol, Style: m.cellStyle, IsNull: true}
		}
		return Cell{Row: m.row, Col: m.cellCol, Style: m.cellStyle, Value: s}
	}
	return Cell{Row: m.row, Col: m.cellCol, Style: m.cellStyle, Value: raw}
}
