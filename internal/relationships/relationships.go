// Package relationships resolves OOXML relationship IDs and sheet names to
// archive part paths, the single parser shared by sheet-name lookup and the
// shared-strings/styles lookup (the teacher's go-xlsb kept two independent,
// duplicated copies of this logic; here there is exactly one).
package relationships

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Well-known relationship Type URI suffixes.
const (
	TypeWorksheet     = "/worksheet"
	TypeSharedStrings = "/sharedStrings"
	TypeStyles        = "/styles"
)

// Relationship is one <Relationship> entry from a .rels file.
type Relationship struct {
	ID     string
	Type   string
	Target string
}

type xmlRelationships struct {
	Relationships []xmlRelationship `xml:"Relationship"`
}

type xmlRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// Table is a parsed .rels file, indexed by relationship Id.
type Table struct {
	byID []Relationship
}

// ParseRels parses the raw bytes of a .rels XML file.
func ParseRels(data []byte) (*Table, error) {
	var doc xmlRelationships
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("relationships: parse .rels: %w", err)
	}
	t := &Table{}
	for _, r := range doc.Relationships {
		t.byID = append(t.byID, Relationship{ID: r.ID, Type: r.Type, Target: r.Target})
	}
	return t, nil
}

// ByID returns the relationship with the given Id.
func (t *Table) ByID(id string) (Relationship, bool) {
	for _, r := range t.byID {
		if r.ID == id {
			return r, true
		}
	}
	return Relationship{}, false
}

// ByTypeSuffix returns the first relationship whose Type URI ends with
// typeSuffix (e.g. TypeSharedStrings).
func (t *Table) ByTypeSuffix(typeSuffix string) (Relationship, bool) {
	for _, r := range t.byID {
		if strings.HasSuffix(r.Type, typeSuffix) {
			return r, true
		}
	}
	return Relationship{}, false
}

// RelsPathFor computes the companion relationship file path for partPath, by
// inserting "_rels/" before the last path segment and appending ".rels".
// e.g. "xl/workbook.xml" -> "xl/_rels/workbook.xml.rels".
func RelsPathFor(partPath string) string {
	idx := strings.LastIndexByte(partPath, '/')
	dir := partPath[:idx+1]
	file := partPath[idx+1:]
	return dir + "_rels/" + file + ".rels"
}

// BasePath returns the portion of partPath up to and including the final
// '/', or "" if partPath has no directory component.
func BasePath(partPath string) string {
	idx := strings.LastIndexByte(partPath, '/')
	if idx < 0 {
		return ""
	}
	return partPath[:idx+1]
}

// JoinTarget resolves a relationship Target against a workbook's base path.
// A Target starting with "/" is absolute: the leading slash is dropped and
// the remainder used as-is. Otherwise Target is relative and is prepended
// with basePath.
func JoinTarget(basePath, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return basePath + target
}
