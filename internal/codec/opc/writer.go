package opc

import (
	"fmt"
	"io"
)

// PackageWriter orchestrates writing a package's relationships and parts
// out as a physical zip, reconstructed from the teacher's writer_test.go
// observable contract (no writer.go itself was present in the pack).
type PackageWriter struct{}

// Write assembles [Content_Types].xml, /_rels/.rels, every part's blob,
// and every non-empty part's own .rels file into w.
func (PackageWriter) Write(w io.Writer, rels *Relationships, parts []Part) error {
	pw := NewPhysPkgWriter(w)

	contentTypes := buildContentTypes(parts)
	ctBlob, err := serializeContentTypes(contentTypes)
	if err != nil {
		return err
	}
	if err := pw.Write("[Content_Types].xml", ctBlob, false); err != nil {
		return err
	}

	if rels.Len() > 0 {
		relsBlob, err := serializeRelationships(rels)
		if err != nil {
			return err
		}
		if err := pw.Write(PackageURI.RelsURI().memberName(), relsBlob, false); err != nil {
			return err
		}
	}

	for _, part := range parts {
		blob, err := part.Blob()
		if err != nil {
			return fmt.Errorf("opc: serializing part %q: %w", part.PartName(), err)
		}
		store := isMediaExt(part.PartName().Ext())
		if err := pw.Write(part.PartName().memberName(), blob, store); err != nil {
			return err
		}

		if partRels := part.Rels(); partRels != nil && partRels.Len() > 0 {
			relsBlob, err := serializeRelationships(partRels)
			if err != nil {
				return err
			}
			if err := pw.Write(part.PartName().RelsURI().memberName(), relsBlob, false); err != nil {
				return err
			}
		}
	}

	return pw.Close()
}

// buildContentTypes derives a [Content_Types].xml map from parts,
// following the real-world docx convention: a Default entry per
// extension for media and .rels, plus an explicit Override for every XML
// part (since distinct XML parts sharing the ".xml" extension generally
// carry distinct content types).
func buildContentTypes(parts []Part) *ContentTypeMap {
	m := NewContentTypeMap()
	m.SetDefault("rels", CTRelationships)

	seenDefault := map[string]bool{}
	for _, part := range parts {
		ext := part.PartName().Ext()
		if ext == "xml" {
			m.SetOverride(part.PartName(), part.ContentType())
			continue
		}
		if !seenDefault[ext] {
			m.SetDefault(ext, part.ContentType())
			seenDefault[ext] = true
		}
	}
	return m
}

// isMediaExt reports whether ext should be stored uncompressed rather
// than deflated, per spec.md §4.5.2 step 5.
func isMediaExt(ext string) bool {
	switch ext {
	case "png", "jpg", "jpeg", "gif", "bmp", "tiff", "emf", "wmf":
		return true
	default:
		return false
	}
}
