package opc

import "testing"

func TestRelationshipsAddMintsSequentialIds(t *testing.T) {
	rels := NewRelationships("/word")
	r1 := rels.Add(RTStyles, "styles.xml", nil, false)
	r2 := rels.Add(RTNumbering, "numbering.xml", nil, false)
	if r1.RID != "rId1" || r2.RID != "rId2" {
		t.Errorf("got rIds %q, %q, want rId1, rId2", r1.RID, r2.RID)
	}
	if rels.Len() != 2 {
		t.Errorf("Len() = %d, want 2", rels.Len())
	}
}

func TestRelationshipsLoadPreservesExplicitId(t *testing.T) {
	rels := NewRelationships("/word")
	rels.Load("rId5", RTStyles, "styles.xml", nil, false)
	next := rels.Add(RTNumbering, "numbering.xml", nil, false)
	if next.RID == "rId5" {
		t.Errorf("Add collided with loaded id rId5")
	}
	if rels.GetByRID("rId5") == nil {
		t.Errorf("GetByRID(rId5) = nil, want loaded relationship")
	}
}

func TestRelationshipsGetByRelType(t *testing.T) {
	rels := NewRelationships("/")
	rels.Add(RTOfficeDocument, "word/document.xml", nil, false)
	rel, err := rels.GetByRelType(RTOfficeDocument)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rel.TargetRef != "word/document.xml" {
		t.Errorf("TargetRef = %q, want %q", rel.TargetRef, "word/document.xml")
	}
	if _, err := rels.GetByRelType(RTStyles); err == nil {
		t.Error("expected error for absent relationship type")
	}
}

func TestRelationshipsGetOrAddDedups(t *testing.T) {
	rels := NewRelationships("/word")
	part := NewBasePart("/word/styles.xml", CTWmlStyles, nil)
	r1 := rels.GetOrAdd(RTStyles, part)
	r2 := rels.GetOrAdd(RTStyles, part)
	if r1 != r2 {
		t.Errorf("GetOrAdd created a duplicate relationship for the same part/type")
	}
	if rels.Len() != 1 {
		t.Errorf("Len() = %d, want 1", rels.Len())
	}
}

func TestRelationshipsGetOrAddDistinguishesRelType(t *testing.T) {
	rels := NewRelationships("/word")
	part := NewBasePart("/word/media/image1.png", "image/png", nil)
	r1 := rels.GetOrAdd(RTImage, part)
	r2 := rels.GetOrAdd(RTThumbnail, part)
	if r1 == r2 {
		t.Errorf("GetOrAdd merged relationships with different types")
	}
	if rels.Len() != 2 {
		t.Errorf("Len() = %d, want 2", rels.Len())
	}
}
