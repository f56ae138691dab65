package xlsxio

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cellstream/xlsxio/internal/container"
	"github.com/cellstream/xlsxio/internal/contenttypes"
	"github.com/cellstream/xlsxio/internal/relationships"
	"github.com/cellstream/xlsxio/internal/sheetreader"
	"github.com/cellstream/xlsxio/internal/sharedstrings"
	"github.com/cellstream/xlsxio/numformat"
	"github.com/cellstream/xlsxio/styleindex"
)

// sheetEntry holds the display name and resolved archive path for one
// worksheet, plus its visibility as declared in xl/workbook.xml.
type sheetEntry struct {
	name    string
	target  string // archive part path; "" if the relationship didn't resolve
	visible bool
}

// SheetInfo describes one worksheet's name and visibility.
type SheetInfo struct {
	Name    string
	Visible bool
}

// File represents an open .xlsx (or macro-enabled/template variant)
// container. The lifetime of every Sheet derived from a File is bound to
// that File: closing it invalidates any Sheet still open against it.
type File struct {
	arc      *container.Archive
	sheets   []sheetEntry
	strings  *sharedstrings.Table
	styles   styleindex.Table
	date1904 bool
}

// Open opens the named .xlsx file and parses its workbook metadata. The
// caller must call Close on the returned File when done to release the
// underlying file handle.
func Open(name string) (*File, error) {
	arc, err := container.OpenPath(name)
	if err != nil {
		return nil, fmt.Errorf("xlsxio: %w: %v", ErrContainer, err)
	}
	f := &File{arc: arc}
	if err := f.parse(); err != nil {
		_ = arc.Close()
		return nil, err
	}
	return f, nil
}

// OpenReader parses an .xlsx container from an in-memory io.ReaderAt. size
// must be the total byte size of the ZIP data.
func OpenReader(r io.ReaderAt, size int64) (*File, error) {
	arc, err := container.OpenReaderAt(r, size)
	if err != nil {
		return nil, fmt.Errorf("xlsxio: %w: %v", ErrContainer, err)
	}
	f := &File{arc: arc}
	if err := f.parse(); err != nil {
		return nil, err
	}
	return f, nil
}

// OpenBytes parses an .xlsx container from an in-memory byte slice.
func OpenBytes(data []byte) (*File, error) {
	arc, err := container.OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("xlsxio: %w: %v", ErrContainer, err)
	}
	f := &File{arc: arc}
	if err := f.parse(); err != nil {
		return nil, err
	}
	return f, nil
}

// Close releases the underlying ZIP file handle. It is a no-op (and returns
// nil) when the File was opened via OpenReader or OpenBytes.
func (f *File) Close() error {
	return f.arc.Close()
}

// Sheets returns the name and visibility of every worksheet, in workbook
// order.
func (f *File) Sheets() []SheetInfo {
	return f.SheetInfos()
}

// SheetInfos returns the name and visibility of every worksheet, in
// workbook order.
func (f *File) SheetInfos() []SheetInfo {
	infos := make([]SheetInfo, len(f.sheets))
	for i, s := range f.sheets {
		infos[i] = SheetInfo{Name: s.name, Visible: s.visible}
	}
	return infos
}

// SheetNames returns the display names of every worksheet, in workbook
// order.
func (f *File) SheetNames() []string {
	names := make([]string, len(f.sheets))
	for i, s := range f.sheets {
		names[i] = s.name
	}
	return names
}

// Date1904 reports whether the workbook uses the 1904 date system
// (xl/workbook.xml's <workbookPr date1904="1">), as opposed to the default
// 1900 system.
func (f *File) Date1904() bool {
	return f.date1904
}

// FormatCell renders c.Value the way Excel would display it, using the
// number format assigned to c.Style and the workbook's date system. Numeric
// text is rendered through the number format; anything that doesn't parse
// as a number is returned unchanged. This is the additive display-
// formatting layer (styleindex + numformat) sitting downstream of the core
// cell stream — the core itself never interprets Style.
func (f *File) FormatCell(c Cell) string {
	if c.IsNull {
		return ""
	}
	var v any = c.Value
	if n, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64); err == nil {
		v = n
	}
	numFmtID := f.styles.NumFmtID(c.Style)
	fmtStr := f.styles.FormatCode(c.Style)
	return numformat.FormatValue(v, numFmtID, fmtStr, f.date1904)
}

// OpenSheet opens the named worksheet (case-insensitive) for pull-mode
// reading. The caller must call Close on the returned Sheet when done.
func (f *File) OpenSheet(name string, flags SkipFlags) (*Sheet, error) {
	entry, err := f.findSheet(name)
	if err != nil {
		return nil, err
	}
	rc, err := f.arc.Open(entry.target)
	if err != nil {
		return nil, fmt.Errorf("xlsxio: %w: open sheet %q: %v", ErrContainer, name, err)
	}
	return &Sheet{
		file:   f,
		rc:     rc,
		driver: sheetreader.NewDriver(rc, f.strings, flags),
		flags:  flags,
	}, nil
}

// Process opens the named worksheet, drives it to completion in push mode
// invoking cellFn for every cell, and closes it — a single-call convenience
// over OpenSheet followed by Sheet.Process.
func (f *File) Process(sheetName string, flags SkipFlags, cellFn CellCallback) error {
	sheet, err := f.OpenSheet(sheetName, flags)
	if err != nil {
		return err
	}
	defer sheet.Close()
	return sheet.Process(cellFn, nil)
}

func (f *File) findSheet(name string) (sheetEntry, error) {
	lower := strings.ToLower(name)
	for _, s := range f.sheets {
		if strings.ToLower(s.name) == lower {
			if s.target == "" {
				return sheetEntry{}, fmt.Errorf("xlsxio: %w: sheet %q has no resolvable relationship target", ErrSheetNotFound, name)
			}
			return s, nil
		}
	}
	return sheetEntry{}, fmt.Errorf("xlsxio: %w: %q", ErrSheetNotFound, name)
}

// parse locates and reads [Content_Types].xml, the workbook part, its
// companion .rels file, and (if present) the shared-strings and styles
// parts.
func (f *File) parse() error {
	names := f.arc.Names()

	ctData, err := f.arc.ReadAll("[Content_Types].xml")
	if err != nil {
		return fmt.Errorf("xlsxio: %w: read [Content_Types].xml: %v", ErrContainer, err)
	}
	idx, err := contenttypes.Parse(ctData, names)
	if err != nil {
		return fmt.Errorf("xlsxio: %w: %v", ErrParse, err)
	}

	wbPath, ok := idx.FindWorkbook()
	if !ok {
		return fmt.Errorf("xlsxio: %w: no workbook part found", ErrContainer)
	}
	wbData, err := f.arc.ReadAll(wbPath)
	if err != nil {
		return fmt.Errorf("xlsxio: %w: read %q: %v", ErrContainer, wbPath, err)
	}

	rels := &relationships.Table{}
	relsPath := relationships.RelsPathFor(wbPath)
	if f.arc.Has(relsPath) {
		relsData, err := f.arc.ReadAll(relsPath)
		if err != nil {
			return fmt.Errorf("xlsxio: %w: read %q: %v", ErrContainer, relsPath, err)
		}
		rels, err = relationships.ParseRels(relsData)
		if err != nil {
			return fmt.Errorf("xlsxio: %w: %v", ErrParse, err)
		}
	}
	basePath := relationships.BasePath(wbPath)

	wb, err := sheetreader.ListWorkbook(bytes.NewReader(wbData))
	if err != nil {
		return fmt.Errorf("xlsxio: %w: parse workbook: %v", ErrParse, err)
	}
	f.date1904 = wb.Date1904

	for _, s := range wb.Sheets {
		entry := sheetEntry{name: s.Name, visible: s.Visible}
		if rel, ok := rels.ByID(s.RelationshipID); ok {
			entry.target = relationships.JoinTarget(basePath, rel.Target)
		}
		f.sheets = append(f.sheets, entry)
	}

	if rel, ok := rels.ByTypeSuffix(relationships.TypeSharedStrings); ok {
		path := relationships.JoinTarget(basePath, rel.Target)
		if f.arc.Has(path) {
			data, err := f.arc.ReadAll(path)
			if err != nil {
				return fmt.Errorf("xlsxio: %w: read %q: %v", ErrContainer, path, err)
			}
			table, err := sharedstrings.ParseBytes(data)
			if err != nil {
				return fmt.Errorf("xlsxio: %w: %v", ErrParse, err)
			}
			f.strings = table
		}
	}
	if f.strings == nil {
		f.strings = sharedstrings.Empty()
	}

	if rel, ok := rels.ByTypeSuffix(relationships.TypeStyles); ok {
		path := relationships.JoinTarget(basePath, rel.Target)
		if f.arc.Has(path) {
			data, err := f.arc.ReadAll(path)
			if err != nil {
				return fmt.Errorf("xlsxio: %w: read %q: %v", ErrContainer, path, err)
			}
			table, err := styleindex.Parse(data)
			if err != nil {
				return fmt.Errorf("xlsxio: %w: %v", ErrParse, err)
			}
			f.styles = table
		}
	}
	if f.styles == nil {
		f.styles = styleindex.Empty()
	}

	return nil
}
