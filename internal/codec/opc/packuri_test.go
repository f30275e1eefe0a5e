package opc

import "testing"

func TestBaseURI(t *testing.T) {
	cases := []struct {
		name PackURI
		want string
	}{
		{"/word/document.xml", "/word"},
		{"/word/_rels/document.xml.rels", "/word/_rels"},
		{"/[Content_Types].xml", "/"},
		{PackageURI, "/"},
	}
	for _, c := range cases {
		if got := c.name.BaseURI(); got != c.want {
			t.Errorf("BaseURI(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestRelsURI(t *testing.T) {
	cases := []struct {
		name PackURI
		want PackURI
	}{
		{"/word/document.xml", "/word/_rels/document.xml.rels"},
		{PackageURI, "/_rels/.rels"},
		{"/word/media/image1.png", "/word/media/_rels/image1.png.rels"},
	}
	for _, c := range cases {
		if got := c.name.RelsURI(); got != c.want {
			t.Errorf("RelsURI(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestExt(t *testing.T) {
	if got := PackURI("/word/media/image1.PNG").Ext(); got != "png" {
		t.Errorf("Ext() = %q, want %q", got, "png")
	}
}

func TestRelativeRef(t *testing.T) {
	cases := []struct {
		base   string
		target PackURI
		want   string
	}{
		{"/word", "/word/styles.xml", "styles.xml"},
		{"/word", "/word/media/image1.png", "media/image1.png"},
		{"/word/media", "/word/document.xml", "../document.xml"},
		{"/", "/word/document.xml", "word/document.xml"},
		{"/customXml/itemProps1", "/customXml/item1.xml", "../item1.xml"},
	}
	for _, c := range cases {
		if got := c.target.RelativeRef(c.base); got != c.want {
			t.Errorf("RelativeRef(base=%q, target=%q) = %q, want %q", c.base, c.target, got, c.want)
		}
	}
}

func TestFromRelRef(t *testing.T) {
	cases := []struct {
		base string
		ref  string
		want PackURI
	}{
		{"/word", "styles.xml", "/word/styles.xml"},
		{"/word", "media/image1.png", "/word/media/image1.png"},
		{"/word/media", "../document.xml", "/word/document.xml"},
		{"/", "word/document.xml", "/word/document.xml"},
		{"/word", "/word/numbering.xml", "/word/numbering.xml"},
	}
	for _, c := range cases {
		if got := FromRelRef(c.base, c.ref); got != c.want {
			t.Errorf("FromRelRef(base=%q, ref=%q) = %q, want %q", c.base, c.ref, got, c.want)
		}
	}
}

func TestRelativeRefFromRelRefRoundTrip(t *testing.T) {
	bases := []string{"/word", "/word/media", "/", "/customXml/itemProps1"}
	targets := []PackURI{"/word/document.xml", "/word/media/image3.png", "/docProps/core.xml"}
	for _, base := range bases {
		for _, target := range targets {
			ref := target.RelativeRef(base)
			got := FromRelRef(base, ref)
			if got != target {
				t.Errorf("round trip base=%q target=%q: ref=%q resolved to %q", base, target, ref, got)
			}
		}
	}
}
