// Package oxml provides low-level XML element manipulation for the
// wordprocessing OOXML dialect: namespace-aware tag construction, parsing
// and serialization over github.com/beevik/etree.
package oxml

import (
	"fmt"
	"strings"
)

// Nsmap maps namespace prefixes to their URIs, per spec.md §6.2.
var Nsmap = map[string]string{
	"w":       "http://schemas.openxmlformats.org/wordprocessingml/2006/main",
	"r":       "http://schemas.openxmlformats.org/officeDocument/2006/relationships",
	"wp":      "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing",
	"a":       "http://schemas.openxmlformats.org/drawingml/2006/main",
	"pic":     "http://schemas.openxmlformats.org/drawingml/2006/picture",
	"mc":      "http://schemas.openxmlformats.org/markup-compatibility/2006",
	"cp":      "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
	"dc":      "http://purl.org/dc/elements/1.1/",
	"dcterms": "http://purl.org/dc/terms/",
	"m":       "http://schemas.openxmlformats.org/officeDocument/2006/math",
	"wps":     "http://schemas.microsoft.com/office/word/2010/wordprocessingShape",
	"xml":     "http://www.w3.org/XML/1998/namespace",
}

// Pfxmap is the reverse mapping of URI -> prefix.
var Pfxmap map[string]string

func init() {
	Pfxmap = make(map[string]string, len(Nsmap))
	for pfx, uri := range Nsmap {
		Pfxmap[uri] = pfx
	}
}

// TryQn converts a namespace-prefixed tag to Clark notation.
// TryQn("w:p") returns "{http://schemas.openxmlformats.org/wordprocessingml/2006/main}p".
func TryQn(tag string) (string, error) {
	prefix, local, ok := strings.Cut(tag, ":")
	if !ok {
		return tag, nil
	}
	uri, exists := Nsmap[prefix]
	if !exists {
		return "", fmt.Errorf("oxml: unknown namespace prefix %q in tag %q", prefix, tag)
	}
	return "{" + uri + "}" + local, nil
}

// Qn converts a namespace-prefixed tag to Clark notation.
// Panics on unknown prefix — use only with compile-time known tags.
func Qn(tag string) string {
	s, err := TryQn(tag)
	if err != nil {
		panic(err)
	}
	return s
}

// LocalName strips a namespace prefix, returning "p" for "w:p" and for
// an already-unprefixed tag like "p".
func LocalName(tag string) string {
	_, local, ok := strings.Cut(tag, ":")
	if !ok {
		return tag
	}
	return local
}

// Prefix returns the "w" in "w:p", or "" when the tag carries none.
func Prefix(tag string) string {
	prefix, _, ok := strings.Cut(tag, ":")
	if !ok {
		return ""
	}
	return prefix
}
