package opc

import (
	"strconv"
	"testing"
)

// link adds an internal relationship from src to target, computing the
// relative Target ref the way a real writer would.
func link(src *Relationships, relType string, target Part) {
	ref := target.PartName().RelativeRef(src.BaseURI())
	src.Add(relType, ref, target, false)
}

// linkExt adds an external relationship on src.
func linkExt(src *Relationships, relType, url string) {
	src.Add(relType, url, nil, true)
}

func TestIterPartsVisitsEachPartOnce(t *testing.T) {
	pkg := NewOpcPackage(nil)
	doc := NewBasePart("/word/document.xml", CTWmlDocumentMain, nil)
	styles := NewBasePart("/word/styles.xml", CTWmlStyles, nil)
	numbering := NewBasePart("/word/numbering.xml", CTWmlNumbering, nil)
	pkg.AddPart(doc)
	pkg.AddPart(styles)
	pkg.AddPart(numbering)

	link(pkg.Rels(), RTOfficeDocument, doc)
	link(doc.Rels(), RTStyles, styles)
	link(doc.Rels(), RTNumbering, numbering)
	// Both document and styles reference numbering; it must appear once.
	link(styles.Rels(), RTNumbering, numbering)

	parts := pkg.IterParts()
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3 (no duplicates): %v", len(parts), partNames(parts))
	}
}

func TestIterPartsSkipsExternalAndDangling(t *testing.T) {
	pkg := NewOpcPackage(nil)
	doc := NewBasePart("/word/document.xml", CTWmlDocumentMain, nil)
	pkg.AddPart(doc)
	link(pkg.Rels(), RTOfficeDocument, doc)
	linkExt(doc.Rels(), RTHyperlink, "https://example.com")
	// A dangling relationship: TargetPart nil, not external.
	doc.Rels().Load("rId9", RTImage, "media/missing.png", nil, false)

	parts := pkg.IterParts()
	if len(parts) != 1 {
		t.Fatalf("got %d parts, want 1: %v", len(parts), partNames(parts))
	}
}

func TestIterRelsYieldsEveryEdgeIncludingDangling(t *testing.T) {
	pkg := NewOpcPackage(nil)
	doc := NewBasePart("/word/document.xml", CTWmlDocumentMain, nil)
	pkg.AddPart(doc)
	link(pkg.Rels(), RTOfficeDocument, doc)
	linkExt(doc.Rels(), RTHyperlink, "https://example.com")
	doc.Rels().Load("rId9", RTImage, "media/missing.png", nil, false)

	rels := pkg.IterRels()
	if len(rels) != 3 {
		t.Fatalf("got %d relationships, want 3 (office doc + external + dangling): %v", len(rels), rels)
	}
}

func TestIterPartsHandlesDeepChainWithoutOverflow(t *testing.T) {
	pkg := NewOpcPackage(nil)
	const depth = 5000
	prev := (*Relationships)(nil)
	for i := 0; i < depth; i++ {
		name := PackURI(nextChainPartName(i))
		part := NewBasePart(name, CTXml, nil)
		pkg.AddPart(part)
		if prev == nil {
			link(pkg.Rels(), RTOfficeDocument, part)
		} else {
			link(prev, RTStyles, part)
		}
		prev = part.Rels()
	}

	parts := pkg.IterParts()
	if len(parts) != depth {
		t.Fatalf("got %d parts, want %d", len(parts), depth)
	}
}

func nextChainPartName(i int) string {
	return "/chain/part" + strconv.Itoa(i) + ".xml"
}

func partNames(parts []Part) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p.PartName())
	}
	return out
}
