package sheetreader

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/cellstream/xlsxio/internal/xmlname"
)

// SheetInfo is one <sheet> entry from the workbook part, in document order.
type SheetInfo struct {
	Name           string
	RelationshipID string
	Visible        bool
}

// Workbook holds the pieces of xl/workbook.xml a reader needs: the ordered
// sheet list and the 1900/1904 date-epoch flag.
type Workbook struct {
	Sheets   []SheetInfo
	Date1904 bool
}

// ListWorkbook walks xl/workbook.xml's <sheets> and <workbookPr> elements.
// Unlike the worksheet state machine, the workbook part is small and read
// once per file, so this collects the full sheet list in a single pass
// rather than exposing an incremental suspend/resume driver.
func ListWorkbook(r io.Reader) (Workbook, error) {
	dec := xml.NewDecoder(r)
	var wb Workbook

	inWorkbook := false
	inSheets := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return wb, fmt.Errorf("sheetreader: parse workbook: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			name := el.Name.Local
			switch {
			case xmlname.Equal(name, "workbook"):
				inWorkbook = true
			case inWorkbook && xmlname.Equal(name, "workbookPr"):
				if v, ok := attrValue(el, "date1904"); ok {
					wb.Date1904 = v == "1" || v == "true"
				}
			case inWorkbook && xmlname.Equal(name, "sheets"):
				inSheets = true
			case inSheets && xmlname.Equal(name, "sheet"):
				info := SheetInfo{Visible: true}
				if v, ok := attrValue(el, "name"); ok {
					info.Name = v
				}
				if v, ok := rIDAttr(el); ok {
					info.RelationshipID = v
				}
				if v, ok := attrValue(el, "state"); ok && v != "visible" {
					info.Visible = false
				}
				wb.Sheets = append(wb.Sheets, info)
			}
		case xml.EndElement:
			name := el.Name.Local
			switch {
			case xmlname.Equal(name, "sheets"):
				inSheets = false
			case xmlname.Equal(name, "workbook"):
				inWorkbook = false
			}
		}
	}

	return wb, nil
}

// rIDAttr looks up the r:id attribute, matching on local name "id" whatever
// prefix the producer chose for it; the attribute's namespace itself is not
// checked.
func rIDAttr(el xml.StartElement) (string, bool) {
	for _, a := range el.Attr {
		if xmlname.Equal(a.Name.Local, "id") {
			return a.Value, true
		}
	}
	return "", false
}
