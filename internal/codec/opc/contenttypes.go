package opc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const contentTypesNS = "http://schemas.openxmlformats.org/package/2006/content-types"

// ContentTypeMap models [Content_Types].xml: a set of Default entries
// keyed by (lower-cased) file extension, overridden per-partname by
// Override entries. Neither the teacher nor the rest of the pack defines
// this type; it is built from the [Content_Types].xml fixtures embedded in
// the pack's opc tests (dangling_rels_test.go, strict_test.go).
type ContentTypeMap struct {
	defaults  map[string]string // ext (no dot, lower-case) -> content type
	overrides map[string]string // partname -> content type
}

// NewContentTypeMap creates an empty map.
func NewContentTypeMap() *ContentTypeMap {
	return &ContentTypeMap{defaults: map[string]string{}, overrides: map[string]string{}}
}

// SetDefault registers a Default entry for ext (without leading dot).
func (m *ContentTypeMap) SetDefault(ext, contentType string) {
	m.defaults[strings.ToLower(ext)] = contentType
}

// SetOverride registers an Override entry for partName.
func (m *ContentTypeMap) SetOverride(partName PackURI, contentType string) {
	m.overrides[string(partName)] = contentType
}

// Lookup returns the content type for partName: an Override entry if one
// exists, else the Default entry for its extension, else "".
func (m *ContentTypeMap) Lookup(partName PackURI) string {
	if ct, ok := m.overrides[string(partName)]; ok {
		return ct
	}
	return m.defaults[partName.Ext()]
}

// ParseContentTypes parses [Content_Types].xml bytes.
func ParseContentTypes(blob []byte) (*ContentTypeMap, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(blob); err != nil {
		return nil, fmt.Errorf("opc: parsing [Content_Types].xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("opc: [Content_Types].xml has no root element")
	}

	m := NewContentTypeMap()
	for _, el := range root.ChildElements() {
		switch el.Tag {
		case "Default":
			ext := el.SelectAttrValue("Extension", "")
			ct := el.SelectAttrValue("ContentType", "")
			if ext != "" {
				m.SetDefault(ext, ct)
			}
		case "Override":
			partName := el.SelectAttrValue("PartName", "")
			ct := el.SelectAttrValue("ContentType", "")
			if partName != "" {
				m.SetOverride(PackURI(partName), ct)
			}
		}
	}
	return m, nil
}

// serializeContentTypes builds [Content_Types].xml bytes, Default entries
// sorted by extension followed by Override entries sorted by partname —
// deterministic output so unchanged packages round-trip byte-identically.
func serializeContentTypes(m *ContentTypeMap) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlProcInst)
	doc.WriteSettings.CanonicalEndTags = true

	root := doc.CreateElement("Types")
	root.CreateAttr("xmlns", contentTypesNS)

	for _, ext := range sortedStringKeys(m.defaults) {
		el := root.CreateElement("Default")
		el.CreateAttr("Extension", ext)
		el.CreateAttr("ContentType", m.defaults[ext])
	}
	for _, partName := range sortedStringKeys(m.overrides) {
		el := root.CreateElement("Override")
		el.CreateAttr("PartName", partName)
		el.CreateAttr("ContentType", m.overrides[partName])
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("opc: serializing [Content_Types].xml: %w", err)
	}
	return buf.Bytes(), nil
}
