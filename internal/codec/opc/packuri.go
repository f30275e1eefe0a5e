package opc

import (
	"path"
	"strings"
)

// PackURI is a part name: an absolute, "/"-rooted path inside the package,
// e.g. "/word/document.xml". The package itself is addressed by
// [PackageURI] ("/").
type PackURI string

// BaseURI returns the directory containing this part, used as the base for
// resolving the part's own relative relationship targets.
// BaseURI("/word/document.xml") == "/word".
func (p PackURI) BaseURI() string {
	dir := path.Dir(string(p))
	if dir == "." {
		return "/"
	}
	return dir
}

// RelsURI returns the partname of this part's relationships file.
// RelsURI("/word/document.xml") == "/word/_rels/document.xml.rels".
// RelsURI("/") == "/_rels/.rels".
func (p PackURI) RelsURI() PackURI {
	if p == PackageURI {
		return "/_rels/.rels"
	}
	dir := path.Dir(string(p))
	base := path.Base(string(p))
	if dir == "." || dir == "/" {
		return PackURI("/_rels/" + base + ".rels")
	}
	return PackURI(dir + "/_rels/" + base + ".rels")
}

// Ext returns the part's file extension without a leading dot, lower-cased.
func (p PackURI) Ext() string {
	e := path.Ext(string(p))
	return strings.ToLower(strings.TrimPrefix(e, "."))
}

// RelativeRef returns this partname expressed relative to baseURI, the form
// stored as a relationship Target attribute.
func (p PackURI) RelativeRef(baseURI string) string {
	baseParts := splitPath(baseURI)
	targetParts := splitPath(string(p))

	common := 0
	for common < len(baseParts) && common < len(targetParts)-1 && baseParts[common] == targetParts[common] {
		common++
	}

	var segs []string
	for i := common; i < len(baseParts); i++ {
		segs = append(segs, "..")
	}
	segs = append(segs, targetParts[common:]...)
	if len(segs) == 0 {
		return path.Base(string(p))
	}
	return strings.Join(segs, "/")
}

// splitPath splits an absolute "/"-rooted path into non-empty segments.
func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// FromRelRef resolves a relationship Target (relative or absolute) against
// baseURI into an absolute PackURI.
func FromRelRef(baseURI, ref string) PackURI {
	if strings.HasPrefix(ref, "/") {
		return PackURI(path.Clean(ref))
	}
	joined := path.Join(baseURI, ref)
	if !strings.HasPrefix(joined, "/") {
		joined = "/" + joined
	}
	return PackURI(path.Clean(joined))
}

// memberName is the ZIP entry name for this partname (no leading slash).
func (p PackURI) memberName() string {
	return strings.TrimPrefix(string(p), "/")
}
