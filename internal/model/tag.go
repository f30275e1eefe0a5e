package model

// Tag identifies the kind of a node. The set is closed: every tag a
// document can contain is enumerated here, each with a fixed child kind.
type Tag string

const (
	TagDocument Tag = "document" // body
	TagBody     Tag = "body"     // section+
	TagSection  Tag = "section"  // block+

	TagParagraph  Tag = "paragraph"   // inline+
	TagTable      Tag = "table"       // row+
	TagTableRow   Tag = "table-row"   // cell+
	TagTableCell  Tag = "table-cell"  // block+
	TagRun        Tag = "run"         // text-leaf+
	TagHyperlink  Tag = "hyperlink"   // run+
	TagDrawing    Tag = "drawing"     // image-leaf
	TagShapeGroup Tag = "shape-group" // shape+

	// Header/footer subtrees are small block containers, addressed outside
	// the main body tree via the registries.
	TagHeader Tag = "header" // block+
	TagFooter Tag = "footer" // block+

	// Leaves.
	TagText              Tag = "text"
	TagLineBreak         Tag = "line-break"
	TagColumnBreak       Tag = "column-break"
	TagTab               Tag = "tab"
	TagBookmarkStart     Tag = "bookmark-start"
	TagBookmarkEnd       Tag = "bookmark-end"
	TagCommentRangeStart Tag = "comment-range-start"
	TagCommentRangeEnd   Tag = "comment-range-end"
	TagFootnoteRef       Tag = "footnote-ref"
	TagEndnoteRef        Tag = "endnote-ref"
	TagField             Tag = "field"
	TagShape             Tag = "shape"
	TagEquation          Tag = "equation"
	TagImageLeaf         Tag = "image-leaf"
	TagPageBreak         Tag = "page-break"
)

// elementTags is the set of tags that carry children rather than payload
// data. Mirrors spec.md §3's isElement(n) definition.
var elementTags = map[Tag]bool{
	TagDocument:   true,
	TagBody:       true,
	TagSection:    true,
	TagParagraph:  true,
	TagTable:      true,
	TagTableRow:   true,
	TagTableCell:  true,
	TagRun:        true,
	TagHyperlink:  true,
	TagDrawing:    true,
	TagShapeGroup: true,
	TagHeader:     true,
	TagFooter:     true,
}

// IsElement returns true for tags in the element set (document, body,
// section, paragraph, run, table, table-row, table-cell, hyperlink,
// drawing, header, footer, shape-group).
func IsElement(tag Tag) bool {
	return elementTags[tag]
}
