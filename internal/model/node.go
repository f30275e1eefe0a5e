package model

import "github.com/vortex/wordcore/internal/idgen"

// Node is implemented by Element and Leaf, the two node kinds spec.md §3
// defines. Both are immutable once constructed: every mutation in this
// module returns a new Node sharing unaffected subtrees with the old one.
type Node interface {
	ID() string
	Tag() Tag
	// cloneFresh returns a deep copy with a fresh identity for itself and every
	// descendant — used by the clipboard plugin, which must never splice a
	// node that already has a path elsewhere in the document.
	cloneFresh() Node
}

// Element is a node with an ordered sequence of children and a
// tag-specific properties value (see properties.go; nil when the tag
// carries no properties).
type Element struct {
	id       string
	tag      Tag
	children []Node
	props    any
}

// NewElement constructs an Element with a fresh identity.
func NewElement(tag Tag, props any, children ...Node) *Element {
	return &Element{id: idgen.Next(), tag: tag, props: props, children: children}
}

func (e *Element) ID() string  { return e.id }
func (e *Element) Tag() Tag    { return e.tag }
func (e *Element) Props() any  { return e.props }
func (e *Element) Children() []Node {
	return e.children
}
func (e *Element) ChildCount() int { return len(e.children) }
func (e *Element) ChildAt(i int) Node {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// WithChildren returns a new Element with the given children, identity and
// tag preserved. Used by the persistent-update path-copy in internal/ops.
func (e *Element) WithChildren(children []Node) *Element {
	return &Element{id: e.id, tag: e.tag, props: e.props, children: children}
}

// WithProps returns a new Element carrying a different properties value.
func (e *Element) WithProps(props any) *Element {
	return &Element{id: e.id, tag: e.tag, props: props, children: e.children}
}

func (e *Element) cloneFresh() Node {
	children := make([]Node, len(e.children))
	for i, c := range e.children {
		children[i] = c.cloneFresh()
	}
	return &Element{id: idgen.Next(), tag: e.tag, props: clonePropsValue(e.props), children: children}
}

// Leaf is a node carrying payload data and no children.
type Leaf struct {
	id      string
	tag     Tag
	text    string // valid only when tag == TagText
	payload any
}

// NewLeaf constructs a Leaf with a fresh identity.
func NewLeaf(tag Tag, payload any) *Leaf {
	return &Leaf{id: idgen.Next(), tag: tag, payload: payload}
}

// NewTextLeaf constructs a text leaf.
func NewTextLeaf(text string) *Leaf {
	return &Leaf{id: idgen.Next(), tag: TagText, text: text}
}

func (l *Leaf) ID() string    { return l.id }
func (l *Leaf) Tag() Tag      { return l.tag }
func (l *Leaf) Text() string  { return l.text }
func (l *Leaf) Payload() any  { return l.payload }
func (l *Leaf) TextLen() int  { return len([]rune(l.text)) }

// WithText returns a new text leaf with replaced content, same identity.
func (l *Leaf) WithText(text string) *Leaf {
	return &Leaf{id: l.id, tag: l.tag, text: text, payload: l.payload}
}

func (l *Leaf) cloneFresh() Node {
	return &Leaf{id: idgen.Next(), tag: l.tag, text: l.text, payload: l.payload}
}

// AsElement type-asserts n as *Element, returning ok=false for a Leaf.
func AsElement(n Node) (*Element, bool) {
	e, ok := n.(*Element)
	return e, ok
}

// AsLeaf type-asserts n as *Leaf, returning ok=false for an Element.
func AsLeaf(n Node) (*Leaf, bool) {
	l, ok := n.(*Leaf)
	return l, ok
}

// CloneFresh deep-clones a node, minting a fresh identity for it and every
// descendant. Used by the clipboard plugin (spec.md §4.4.5: "every pasted
// subtree is deep-cloned with fresh identities before insertion").
func CloneFresh(n Node) Node {
	return n.cloneFresh()
}

func clonePropsValue(props any) any {
	switch p := props.(type) {
	case *RunProperties:
		return p.Clone()
	case *ParagraphProperties:
		return p.Clone()
	case SectionProperties:
		return p.Clone()
	case TableProperties:
		return p.Clone()
	case TableCellProperties:
		return p.Clone()
	case HyperlinkProperties:
		return p.Clone()
	case DrawingProperties:
		return p.Clone()
	default:
		return props
	}
}
