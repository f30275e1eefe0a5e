package oxml

import (
	"bytes"
	"fmt"

	"github.com/beevik/etree"
)

// xmlProcInst is the standard XML declaration required by spec.md §4.5.3.
const xmlProcInst = `version="1.0" encoding="UTF-8" standalone="yes"`

// ParseXml parses XML bytes into an *etree.Element. Parse failures from a
// malformed part are returned as an error so callers can silently skip the
// part per spec.md §4.5.1 step 1 ("parsing failures are silent skips").
func ParseXml(xmlBytes []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("oxml: parsing xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("oxml: no root element found")
	}
	return root, nil
}

// SerializeXml serializes an *etree.Element to bytes with the OOXML
// declaration, compact (no insignificant whitespace).
func SerializeXml(el *etree.Element) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlProcInst)
	doc.SetRoot(el.Copy())
	doc.WriteSettings.CanonicalEndTags = true

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("oxml: serializing xml: %w", err)
	}
	return buf.Bytes(), nil
}

// OxmlElement creates a new element with the given namespace-prefixed tag
// ("w:p") and declares xmlns for its own prefix plus any extra prefixes
// listed in nsDecls.
func OxmlElement(nspTag string, nsDecls ...string) *etree.Element {
	prefix, local := Prefix(nspTag), LocalName(nspTag)
	el := etree.NewElement(local)
	el.Space = prefix

	prefixes := map[string]bool{}
	if prefix != "" {
		prefixes[prefix] = true
	}
	for _, pfx := range nsDecls {
		prefixes[pfx] = true
	}
	for pfx := range prefixes {
		if uri, ok := Nsmap[pfx]; ok {
			el.CreateAttr("xmlns:"+pfx, uri)
		}
	}
	return el
}

// Child appends a new namespace-prefixed child element to parent and
// returns it.
func Child(parent *etree.Element, nspTag string) *etree.Element {
	el := etree.NewElement(LocalName(nspTag))
	el.Space = Prefix(nspTag)
	parent.AddChild(el)
	return el
}

// FindElement is a namespace-prefix-aware FindElement forwarder, kept as a
// single call site so every lookup in this codec goes through one place.
func FindElement(el *etree.Element, path string) *etree.Element {
	return el.FindElement(path)
}

// FindElements is the plural form of FindElement.
func FindElements(el *etree.Element, path string) []*etree.Element {
	return el.FindElements(path)
}

// Attr returns the value of a namespace-prefixed attribute ("r:id"), or ""
// when absent.
func Attr(el *etree.Element, nspAttr string) string {
	prefix, local := Prefix(nspAttr), LocalName(nspAttr)
	a := el.SelectAttr(local)
	if a == nil {
		return ""
	}
	if prefix != "" && a.Space != "" && a.Space != prefix {
		return ""
	}
	return a.Value
}

// SetAttr sets a namespace-prefixed attribute, omitting it entirely when
// value is empty — spec.md §4.5.3's "undefined/null/false are omitted" rule
// applied to strings.
func SetAttr(el *etree.Element, nspAttr, value string) {
	if value == "" {
		return
	}
	prefix, local := Prefix(nspAttr), LocalName(nspAttr)
	if prefix == "" {
		el.CreateAttr(local, value)
		return
	}
	el.CreateAttr(prefix+":"+local, value)
}

// Walk performs a depth-first pre-order traversal of el and its descendant
// elements, invoking visit on each. Used by the docx import's field and
// equation readers (spec.md §9's "pull/visit interface" is otherwise left
// unspecified at this layer).
func Walk(el *etree.Element, visit func(*etree.Element) bool) {
	if el == nil {
		return
	}
	if !visit(el) {
		return
	}
	for _, child := range el.ChildElements() {
		Walk(child, visit)
	}
}

// SetText sets the element's character content, escaping handled by etree.
func SetText(el *etree.Element, text string) {
	el.SetText(text)
}
