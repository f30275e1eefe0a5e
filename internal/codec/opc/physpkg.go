package opc

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Sentinel errors for physical package I/O, grounded on the teacher's
// physpkg_test.go observable contract.
var (
	// ErrEncryptedPackage is returned when the input is an OLE2 compound
	// file — the container format Word uses for password-protected
	// documents — rather than a zip package this codec can read.
	ErrEncryptedPackage = errors.New("opc: package is encrypted (OLE2 compound file)")
	// ErrNotZipPackage is returned when the input is neither a zip
	// package nor a recognizable encrypted document.
	ErrNotZipPackage = errors.New("opc: input is not a zip package")
	// ErrMemberNotFound is returned when a requested member is absent
	// from the physical package.
	ErrMemberNotFound = errors.New("opc: member not found in package")
)

// ole2Magic is the signature of an OLE2 compound file, the container
// format used by password-protected (encrypted) .docx files.
var ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// PhysPkgReader reads a physical zip-backed OOXML package.
type PhysPkgReader struct {
	zr      *zip.Reader
	closer  io.Closer // non-nil when opened from a file
	entries map[string]*zip.File
}

func newPhysPkgReader(zr *zip.Reader, closer io.Closer) *PhysPkgReader {
	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}
	return &PhysPkgReader{zr: zr, closer: closer, entries: entries}
}

// NewPhysPkgReaderFromBytes opens a physical package held entirely in
// memory.
func NewPhysPkgReaderFromBytes(data []byte) (*PhysPkgReader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if bytes.HasPrefix(data, ole2Magic) {
			return nil, ErrEncryptedPackage
		}
		return nil, fmt.Errorf("%w: %v", ErrNotZipPackage, err)
	}
	return newPhysPkgReader(zr, nil), nil
}

// NewPhysPkgReaderFromFile opens a physical package stored on disk.
func NewPhysPkgReaderFromFile(path string) (*PhysPkgReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opc: opening package file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opc: stat package file: %w", err)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		magic := make([]byte, len(ole2Magic))
		if _, rerr := f.ReadAt(magic, 0); rerr == nil && bytes.Equal(magic, ole2Magic) {
			f.Close()
			return nil, ErrEncryptedPackage
		}
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrNotZipPackage, err)
	}
	return newPhysPkgReader(zr, f), nil
}

// URIs returns the partnames of every member of the package other than
// [Content_Types].xml.
func (r *PhysPkgReader) URIs() []PackURI {
	out := make([]PackURI, 0, len(r.entries))
	for name := range r.entries {
		if name == "[Content_Types].xml" {
			continue
		}
		out = append(out, PackURI("/"+name))
	}
	return out
}

// BlobFor returns the raw bytes of the member named by partName.
func (r *PhysPkgReader) BlobFor(partName PackURI) ([]byte, error) {
	f, ok := r.entries[partName.memberName()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, partName)
	}
	return readZipFile(f)
}

// ContentTypesXml returns the raw bytes of [Content_Types].xml.
func (r *PhysPkgReader) ContentTypesXml() ([]byte, error) {
	f, ok := r.entries["[Content_Types].xml"]
	if !ok {
		return nil, fmt.Errorf("%w: [Content_Types].xml", ErrMemberNotFound)
	}
	return readZipFile(f)
}

// RelsXmlFor returns the raw bytes of partName's .rels file, or nil if
// partName has no relationships.
func (r *PhysPkgReader) RelsXmlFor(partName PackURI) ([]byte, error) {
	f, ok := r.entries[partName.RelsURI().memberName()]
	if !ok {
		return nil, nil
	}
	return readZipFile(f)
}

// Close releases the underlying file, if the reader was opened from one.
func (r *PhysPkgReader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opc: opening zip member %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("opc: reading zip member %s: %w", f.Name, err)
	}
	return data, nil
}

// PhysPkgWriter writes a physical zip-backed OOXML package. XML members
// are deflated; media payloads are stored uncompressed, per spec.md
// §4.5.2 step 5.
type PhysPkgWriter struct {
	zw *zip.Writer
}

// NewPhysPkgWriter wraps w as a physical package writer.
func NewPhysPkgWriter(w io.Writer) *PhysPkgWriter {
	return &PhysPkgWriter{zw: zip.NewWriter(w)}
}

// Write adds a member to the package. name is a zip entry name (no
// leading slash); store controls whether the member is stored
// uncompressed (true, for media) or deflated (false, for XML/text).
func (w *PhysPkgWriter) Write(name string, blob []byte, store bool) error {
	method := zip.Deflate
	if store {
		method = zip.Store
	}
	fw, err := w.zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return fmt.Errorf("opc: creating zip member %s: %w", name, err)
	}
	if _, err := fw.Write(blob); err != nil {
		return fmt.Errorf("opc: writing zip member %s: %w", name, err)
	}
	return nil
}

// Close finalizes the zip archive.
func (w *PhysPkgWriter) Close() error {
	return w.zw.Close()
}
