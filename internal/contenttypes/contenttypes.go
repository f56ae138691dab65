// Package contenttypes parses [Content_Types].xml, the part that tells an
// OOXML consumer which archive entries hold which kind of XML document.
package contenttypes

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Well-known spreadsheet content types this reader cares about.
const (
	WorkbookMain          = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	WorkbookMacroMain     = "application/vnd.ms-excel.sheet.macroEnabled.main+xml"
	WorkbookTemplateMain  = "application/vnd.openxmlformats-officedocument.spreadsheetml.template.main+xml"
	WorkbookMacroTemplate = "application/vnd.ms-excel.template.macroEnabled.main+xml"
	SharedStrings         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	Styles                = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
)

// WorkbookTypes lists the content types that identify the primary workbook
// part, in the order they are checked — the first archive entry matching any
// of them wins.
var WorkbookTypes = []string{WorkbookMain, WorkbookMacroMain, WorkbookTemplateMain, WorkbookMacroTemplate}

type xmlTypes struct {
	Overrides []xmlOverride `xml:"Override"`
	Defaults  []xmlDefault  `xml:"Default"`
}

type xmlOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// Index is a parsed [Content_Types].xml, ready to be queried by content
// type. It is built once per archive and reused across sheet opens.
type Index struct {
	overrides []xmlOverride
	defaults  []xmlDefault
	allNames  []string // every archive entry name, needed to resolve Default rules
}

// Parse reads [Content_Types].xml (data) together with the full list of
// archive entry names (needed to expand Default/extension rules), and
// returns a queryable Index.
func Parse(data []byte, archiveEntryNames []string) (*Index, error) {
	var t xmlTypes
	if err := xml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("contenttypes: parse [Content_Types].xml: %w", err)
	}
	return &Index{overrides: t.Overrides, defaults: t.Defaults, allNames: archiveEntryNames}, nil
}

// Find returns the first archive part path whose content type matches
// contentType, checking Override rules (in document order) before falling
// back to Default (extension) rules applied across every archive entry.
func (idx *Index) Find(contentType string) (partPath string, ok bool) {
	all := idx.FindAll(contentType)
	if len(all) == 0 {
		return "", false
	}
	return all[0], true
}

// FindAll returns every archive part path whose content type matches
// contentType: first the explicit Override matches (in document order), then
// every archive entry matched by a Default (extension) rule, in archive
// order. A part matched by both an Override and a Default rule is reported
// only once via the Override, since Override entries are the authoritative
// per-part mapping in OOXML.
func (idx *Index) FindAll(contentType string) []string {
	var result []string
	seen := make(map[string]bool)

	for _, o := range idx.overrides {
		if o.ContentType != contentType {
			continue
		}
		part := strings.TrimPrefix(o.PartName, "/")
		if !seen[part] {
			result = append(result, part)
			seen[part] = true
		}
	}

	for _, d := range idx.defaults {
		if d.ContentType != contentType {
			continue
		}
		suffix := "." + d.Extension
		for _, name := range idx.allNames {
			if seen[name] {
				continue
			}
			if strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix)) {
				result = append(result, name)
				seen[name] = true
			}
		}
	}

	return result
}

// FindWorkbook returns the first archive part path matching any of
// WorkbookTypes, trying each content type in order and returning the first
// hit.
func (idx *Index) FindWorkbook() (partPath string, ok bool) {
	for _, ct := range WorkbookTypes {
		if p, ok := idx.Find(ct); ok {
			return p, true
		}
	}
	return "", false
}
