package oxml

import (
	"testing"

	"github.com/beevik/etree"
)

func TestParseXmlRoundTrip(t *testing.T) {
	src := []byte(`<?xml version="1.0"?><w:p xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:r/></w:p>`)
	el, err := ParseXml(src)
	if err != nil {
		t.Fatalf("ParseXml: %v", err)
	}
	if el.Tag != "p" || el.Space != "w" {
		t.Fatalf("root = %s:%s", el.Space, el.Tag)
	}
	out, err := SerializeXml(el)
	if err != nil {
		t.Fatalf("SerializeXml: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}
}

func TestParseXmlInvalid(t *testing.T) {
	if _, err := ParseXml([]byte("not xml <<<")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOxmlElementDeclaresNamespace(t *testing.T) {
	el := OxmlElement("w:p", "r")
	if el.Space != "w" || el.Tag != "p" {
		t.Fatalf("got %s:%s", el.Space, el.Tag)
	}
	hasW, hasR := false, false
	for _, a := range el.Attr {
		if a.Space == "xmlns" && a.Key == "w" {
			hasW = true
		}
		if a.Space == "xmlns" && a.Key == "r" {
			hasR = true
		}
	}
	if !hasW || !hasR {
		t.Fatal("expected both xmlns:w and xmlns:r declarations")
	}
}

func TestSetAttrOmitsEmpty(t *testing.T) {
	el := OxmlElement("w:p")
	SetAttr(el, "w:val", "")
	if el.SelectAttr("val") != nil {
		t.Error("empty value should not create an attribute")
	}
	SetAttr(el, "w:val", "x")
	if a := el.SelectAttr("val"); a == nil || a.Value != "x" {
		t.Error("non-empty value should create the attribute")
	}
}

func TestWalkVisitsDepthFirst(t *testing.T) {
	root := OxmlElement("w:body")
	p1 := Child(root, "w:p")
	Child(p1, "w:r")
	p2 := Child(root, "w:p")
	Child(p2, "w:r")

	var order []string
	Walk(root, func(e *etree.Element) bool {
		order = append(order, e.Space+":"+e.Tag)
		return true
	})
	want := []string{"w:body", "w:p", "w:r", "w:p", "w:r"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}
