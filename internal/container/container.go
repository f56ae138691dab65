// Package container wraps archive/zip behind the minimal surface this reader
// needs: open by path, by io.ReaderAt, or by an in-memory buffer; look up a
// named entry; stream its bytes. Open does not limit how many entries are
// open at once: archive/zip supports many concurrently, and this package
// passes that through unchanged.
package container

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// Archive is an open .xlsx (ZIP) container.
type Archive struct {
	zr *zip.ReadCloser // non-nil when opened by path; owns an *os.File
	zf *zip.Reader     // always non-nil
}

// OpenPath opens the named .xlsx file from disk.
// The caller must call Close when done to release the file handle.
func OpenPath(name string) (*Archive, error) {
	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("container: open %q: %w", name, err)
	}
	return &Archive{zr: rc, zf: &rc.Reader}, nil
}

// OpenReaderAt opens a .xlsx container backed by an arbitrary io.ReaderAt
// (for example an already-open *os.File). size must equal the total byte
// length of the underlying data.
func OpenReaderAt(r io.ReaderAt, size int64) (*Archive, error) {
	zf, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("container: open reader: %w", err)
	}
	return &Archive{zf: zf}, nil
}

// OpenBytes opens a .xlsx container from an in-memory byte slice.
func OpenBytes(data []byte) (*Archive, error) {
	return OpenReaderAt(bytes.NewReader(data), int64(len(data)))
}

// Close releases the underlying file handle. It is a no-op (and returns nil)
// when the archive was opened via OpenReaderAt or OpenBytes, since neither
// owns an OS resource to release.
func (a *Archive) Close() error {
	if a.zr != nil {
		return a.zr.Close()
	}
	return nil
}

// Has reports whether an entry with the exact given name exists.
func (a *Archive) Has(name string) bool {
	_, ok := a.find(name)
	return ok
}

// Names returns every entry path in the archive, in ZIP directory order.
func (a *Archive) Names() []string {
	names := make([]string, len(a.zf.File))
	for i, f := range a.zf.File {
		names[i] = f.Name
	}
	return names
}

// Open returns a reader over the named entry's decompressed bytes. The
// caller must Close the returned reader. Open fails cleanly when name is
// empty or does not exist in the archive.
func (a *Archive) Open(name string) (io.ReadCloser, error) {
	if name == "" {
		return nil, fmt.Errorf("container: open: empty entry name")
	}
	f, ok := a.find(name)
	if !ok {
		return nil, fmt.Errorf("container: entry %q not found", name)
	}
	return f.Open()
}

// ReadAll reads the full decompressed contents of the named entry.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	rc, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	data, readErr := io.ReadAll(rc)
	closeErr := rc.Close()
	if readErr != nil {
		return nil, fmt.Errorf("container: read %q: %w", name, readErr)
	}
	// Propagate decompressor checksum / close errors even when the read
	// appeared to succeed (e.g. a truncated deflate stream).
	if closeErr != nil {
		return nil, fmt.Errorf("container: close %q: %w", name, closeErr)
	}
	return data, nil
}

func (a *Archive) find(name string) (*zip.File, bool) {
	for _, f := range a.zf.File {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}
