// Package ops implements the operation algebra: the seven mutations that
// may be applied to a model.Document (insert_text, delete_text,
// insert_node, remove_node, split_node, merge_node, set_properties), each
// with a pure Apply and a matching Invert, composable into a Batch.
package ops

import "github.com/vortex/wordcore/internal/model"

// Op is implemented by every operation type this package defines. The
// marker method keeps callers from passing an arbitrary value to Apply.
type Op interface {
	op()
}

// InsertText inserts Text into the text leaf at Path, before Offset
// (measured in runes).
type InsertText struct {
	Path   model.Path
	Offset int
	Text   string
}

// DeleteText removes the Length runes starting at Offset from the text
// leaf at Path. Text may carry the deleted content for the caller's
// information; Apply and Invert do not read it (Invert re-reads the leaf).
type DeleteText struct {
	Path   model.Path
	Offset int
	Length int
	Text   string
}

// InsertNode inserts Node as a new child of the element at Path.Parent(),
// at sibling index Path's last component.
type InsertNode struct {
	Path model.Path
	Node model.Node
}

// RemoveNode removes the node at Path from its parent. Node may carry the
// value being removed; Apply and Invert do not read it (Invert re-reads
// the node at Path).
type RemoveNode struct {
	Path model.Path
	Node model.Node
}

// SplitNode splits the node at Path into two siblings at Position.
//
// For an Element, Position is a child index: the node keeps
// children[:Position] and a new sibling, with a fresh identity, receives
// children[Position:]. For a text Leaf, Position is a rune offset: the
// node keeps text[:Position] and the new sibling receives text[Position:].
// Properties, when non-nil, overrides the new sibling's properties
// (Element only); nil means the new sibling carries the original node's
// properties value as is (not a copy).
type SplitNode struct {
	Path       model.Path
	Position   int
	Properties any
}

// MergeNode merges the node at Path into its preceding sibling: the
// previous sibling absorbs its children (or text), and the node at Path
// is removed. Position and Properties capture the removed node's sibling
// index and properties so Invert can reconstruct a SplitNode.
type MergeNode struct {
	Path       model.Path
	Position   int
	Properties any
}

// SetProperties replaces the properties value of the node at Path.
// OldProperties captures the prior value so Invert can restore it.
type SetProperties struct {
	Path          model.Path
	Properties    any
	OldProperties any
}

func (InsertText) op()    {}
func (DeleteText) op()    {}
func (InsertNode) op()    {}
func (RemoveNode) op()    {}
func (SplitNode) op()     {}
func (MergeNode) op()     {}
func (SetProperties) op() {}

// Batch is an ordered group of operations applied and inverted as a unit.
type Batch []Op
