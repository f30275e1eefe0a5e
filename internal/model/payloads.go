package model

// Leaf payload shapes for the tags whose import/export carries more than
// plain text. Kept alongside the tag definitions they belong to (tag.go)
// since the closed tag set and the payload a given tag carries are one
// contract; the codec constructs and reads these, plugins treat them as
// opaque data threaded through operations.

// ImagePayload is the payload of an image-leaf: a reference into the
// document's Media registry.
type ImagePayload struct {
	MediaID string
}

// BookmarkPayload is the payload of a bookmark-start/bookmark-end leaf.
type BookmarkPayload struct {
	ID   string
	Name string // empty on bookmark-end
}

// CommentRangePayload is the payload of a comment-range-start/end leaf.
type CommentRangePayload struct {
	CommentID string
}

// NoteRefPayload is the payload of a footnote-ref/endnote-ref leaf.
type NoteRefPayload struct {
	NoteID string
}

// FieldPayload is the payload of a field leaf (simple field: instruction
// text plus the cached display result).
type FieldPayload struct {
	Instruction string
	Result      string
}

// OpaqueXmlPayload is the payload of a shape or equation leaf this model
// doesn't interpret structurally; Raw carries the serialized element so it
// round-trips byte-for-byte. EquationText holds the concatenated m:t text
// for equation leaves (spec.md §4.5.1 step 8), empty for shapes.
type OpaqueXmlPayload struct {
	Raw          []byte
	EquationText string
}
