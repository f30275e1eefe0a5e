package model

// Document is the immutable top-level value: a path-addressed node tree
// (Root, tag document -> body -> section+) plus the registries spec.md §3
// keeps outside the tree. Every mutation elsewhere in this module returns a
// new Document; the old value, and every reader holding it, is unaffected.
type Document struct {
	Root *Element // tag == TagDocument, single child: the body

	Styles    *StylesRegistry
	Numbering *NumberingRegistry
	Headers   map[string]*Element // id -> header element (TagHeader)
	Footers   map[string]*Element
	Media     map[string]*MediaAsset
	Comments  *CommentsRegistry
	Footnotes *NotesRegistry
	Endnotes  *NotesRegistry
	Metadata  Metadata
	Settings  Settings
	Theme     *Theme

	// RawParts preserves package parts this model doesn't interpret
	// (word/fontTable.xml, word/webSettings.xml, ...) so they round-trip
	// byte-for-byte — spec_full's "preserve unknown, don't interpret"
	// treatment for parts the distillation didn't name.
	RawParts map[string][]byte
}

// NewDocument builds an empty document: one body containing one section
// with the given default section properties and a single empty paragraph.
func NewDocument(sectionProps SectionProperties) *Document {
	emptyRun := NewElement(TagRun, (*RunProperties)(nil), NewTextLeaf(""))
	para := NewElement(TagParagraph, (*ParagraphProperties)(nil), emptyRun)
	section := NewElement(TagSection, sectionProps, para)
	body := NewElement(TagBody, nil, section)
	root := NewElement(TagDocument, nil, body)
	return &Document{
		Root:     root,
		Headers:  map[string]*Element{},
		Footers:  map[string]*Element{},
		Media:    map[string]*MediaAsset{},
		RawParts: map[string][]byte{},
	}
}

// Body returns the body element (the document's single child).
func (d *Document) Body() *Element {
	if d.Root == nil || d.Root.ChildCount() == 0 {
		return nil
	}
	b, _ := AsElement(d.Root.ChildAt(0))
	return b
}

// Sections returns the body's section children in document order.
func (d *Document) Sections() []*Element {
	body := d.Body()
	if body == nil {
		return nil
	}
	out := make([]*Element, 0, body.ChildCount())
	for _, c := range body.Children() {
		if el, ok := AsElement(c); ok && el.Tag() == TagSection {
			out = append(out, el)
		}
	}
	return out
}

// WithRoot returns a new Document with a replaced tree, registries shared.
func (d *Document) WithRoot(root *Element) *Document {
	cp := *d
	cp.Root = root
	return &cp
}

// WithStyles returns a new Document with a replaced styles registry.
func (d *Document) WithStyles(s *StylesRegistry) *Document {
	cp := *d
	cp.Styles = s
	return &cp
}

// WithNumbering returns a new Document with a replaced numbering registry.
func (d *Document) WithNumbering(n *NumberingRegistry) *Document {
	cp := *d
	cp.Numbering = n
	return &cp
}

// Text returns the concatenated text content of a node's text-leaf
// descendants, depth-first, with no separators — used for extraction and
// tests; paragraph-boundary newlines are the selection manager's concern
// (spec.md §4.2), not this generic walk.
func Text(n Node) string {
	var sb []byte
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *Leaf:
			if v.Tag() == TagText {
				sb = append(sb, v.Text()...)
			}
		case *Element:
			for _, c := range v.Children() {
				walk(c)
			}
		}
	}
	walk(n)
	return string(sb)
}
