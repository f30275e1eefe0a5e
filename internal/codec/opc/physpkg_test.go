package opc

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

// buildTestZip assembles an in-memory zip from name->content, mirroring
// the real construction a PhysPkgWriter produces.
func buildTestZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating zip member %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("writing zip member %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

const minimalContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const minimalDocumentXml = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body/></w:document>`

func TestPhysPkgReaderFromBytes(t *testing.T) {
	data := buildTestZip(t, map[string]string{
		"[Content_Types].xml": minimalContentTypes,
		"word/document.xml":   minimalDocumentXml,
	})

	phys, err := NewPhysPkgReaderFromBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer phys.Close()

	ct, err := phys.ContentTypesXml()
	if err != nil {
		t.Fatalf("ContentTypesXml: %v", err)
	}
	if string(ct) != minimalContentTypes {
		t.Errorf("ContentTypesXml mismatch")
	}

	blob, err := phys.BlobFor("/word/document.xml")
	if err != nil {
		t.Fatalf("BlobFor: %v", err)
	}
	if string(blob) != minimalDocumentXml {
		t.Errorf("BlobFor mismatch")
	}

	if _, err := phys.BlobFor("/word/missing.xml"); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("expected ErrMemberNotFound, got %v", err)
	}

	relsBlob, err := phys.RelsXmlFor("/word/document.xml")
	if err != nil {
		t.Fatalf("RelsXmlFor: %v", err)
	}
	if relsBlob != nil {
		t.Errorf("expected nil rels for a part with no .rels member, got %v", relsBlob)
	}
}

func TestPhysPkgReaderURIs(t *testing.T) {
	data := buildTestZip(t, map[string]string{
		"[Content_Types].xml": minimalContentTypes,
		"word/document.xml":   minimalDocumentXml,
		"word/styles.xml":     "<w:styles/>",
	})
	phys, err := NewPhysPkgReaderFromBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer phys.Close()

	uris := phys.URIs()
	if len(uris) != 2 {
		t.Fatalf("got %d URIs, want 2 (excluding [Content_Types].xml): %v", len(uris), uris)
	}
}

func TestPhysPkgReaderDetectsEncryptedPackage(t *testing.T) {
	ole2 := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 512)...)
	if _, err := NewPhysPkgReaderFromBytes(ole2); !errors.Is(err, ErrEncryptedPackage) {
		t.Errorf("expected ErrEncryptedPackage, got %v", err)
	}
}

func TestPhysPkgReaderRejectsGarbage(t *testing.T) {
	if _, err := NewPhysPkgReaderFromBytes([]byte("not a zip file at all")); !errors.Is(err, ErrNotZipPackage) {
		t.Errorf("expected ErrNotZipPackage, got %v", err)
	}
}

func TestPhysPkgWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewPhysPkgWriter(&buf)
	if err := w.Write("[Content_Types].xml", []byte(minimalContentTypes), false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write("word/media/image1.png", []byte("fakepng"), true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	phys, err := NewPhysPkgReaderFromBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("re-reading written package: %v", err)
	}
	defer phys.Close()
	blob, err := phys.BlobFor("/word/media/image1.png")
	if err != nil {
		t.Fatalf("BlobFor: %v", err)
	}
	if string(blob) != "fakepng" {
		t.Errorf("image content mismatch: got %q", blob)
	}
}
