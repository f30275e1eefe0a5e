package handler

import (
	"encoding/json"
	"fmt"

	"github.com/vortex/wordcore/internal/model"
	"github.com/vortex/wordcore/internal/ops"
)

// opRequest is the JSON wire shape for one operation posted to
// .../operations. Type selects which ops.Op it decodes into; the other
// fields are interpreted according to Type, matching the constructor each
// concrete ops.Op takes.
//
// RemoveNode's Node and DeleteText's Text are not read by ops.Apply (only
// by ops.Invert, which re-derives them from the live document), so callers
// never need to supply them.
type opRequest struct {
	Type     string     `json:"type"`
	Path     model.Path `json:"path"`
	Offset   int        `json:"offset,omitempty"`
	Length   int        `json:"length,omitempty"`
	Position int        `json:"position,omitempty"`
	Text     string     `json:"text,omitempty"`
	Node     *nodeWire  `json:"node,omitempty"`

	PropsKind string          `json:"props_kind,omitempty"`
	Props     json.RawMessage `json:"props,omitempty"`
}

// nodeWire is the JSON wire shape for a model.Node: a tag plus either Text
// (for a text leaf) or Children (for an element). Leaf payload kinds other
// than plain text (images, bookmarks, comment ranges, note refs, fields,
// opaque XML) have no wire representation; inserting one of those requires
// a plugin command instead of a raw insert_node operation.
type nodeWire struct {
	Tag       model.Tag       `json:"tag"`
	Text      *string         `json:"text,omitempty"`
	PropsKind string          `json:"props_kind,omitempty"`
	Props     json.RawMessage `json:"props,omitempty"`
	Children  []nodeWire      `json:"children,omitempty"`
}

func (n nodeWire) toNode() (model.Node, error) {
	if n.Text != nil {
		return model.NewTextLeaf(*n.Text), nil
	}
	if !model.IsElement(n.Tag) {
		return nil, fmt.Errorf("handler: tag %q has no wire representation for a non-text leaf", n.Tag)
	}
	props, err := propsForKind(n.PropsKind, n.Props)
	if err != nil {
		return nil, err
	}
	children := make([]model.Node, len(n.Children))
	for i, c := range n.Children {
		child, err := c.toNode()
		if err != nil {
			return nil, fmt.Errorf("handler: child %d: %w", i, err)
		}
		children[i] = child
	}
	return model.NewElement(n.Tag, props, children...), nil
}

// propsForKind decodes raw into the concrete properties type kind names,
// in the pointer-or-value shape internal/codec/docx stores on each tag's
// Element.
func propsForKind(kind string, raw json.RawMessage) (any, error) {
	if kind == "" {
		return nil, nil
	}
	switch kind {
	case "run":
		var p model.RunProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("handler: decoding run properties: %w", err)
		}
		return &p, nil
	case "paragraph":
		var p model.ParagraphProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("handler: decoding paragraph properties: %w", err)
		}
		return &p, nil
	case "section":
		var p model.SectionProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("handler: decoding section properties: %w", err)
		}
		return p, nil
	case "table":
		var p model.TableProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("handler: decoding table properties: %w", err)
		}
		return p, nil
	case "tableCell":
		var p model.TableCellProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("handler: decoding table cell properties: %w", err)
		}
		return p, nil
	case "hyperlink":
		var p model.HyperlinkProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("handler: decoding hyperlink properties: %w", err)
		}
		return p, nil
	case "drawing":
		var p model.DrawingProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("handler: decoding drawing properties: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("handler: unknown properties kind %q", kind)
	}
}

func (r opRequest) toOp() (ops.Op, error) {
	switch r.Type {
	case "insert_text":
		return ops.InsertText{Path: r.Path, Offset: r.Offset, Text: r.Text}, nil
	case "delete_text":
		return ops.DeleteText{Path: r.Path, Offset: r.Offset, Length: r.Length}, nil
	case "insert_node":
		if r.Node == nil {
			return nil, fmt.Errorf("handler: insert_node requires node")
		}
		node, err := r.Node.toNode()
		if err != nil {
			return nil, err
		}
		return ops.InsertNode{Path: r.Path, Node: node}, nil
	case "remove_node":
		return ops.RemoveNode{Path: r.Path}, nil
	case "split_node":
		props, err := propsForKind(r.PropsKind, r.Props)
		if err != nil {
			return nil, err
		}
		return ops.SplitNode{Path: r.Path, Position: r.Position, Properties: props}, nil
	case "merge_node":
		props, err := propsForKind(r.PropsKind, r.Props)
		if err != nil {
			return nil, err
		}
		return ops.MergeNode{Path: r.Path, Position: r.Position, Properties: props}, nil
	case "set_properties":
		props, err := propsForKind(r.PropsKind, r.Props)
		if err != nil {
			return nil, err
		}
		return ops.SetProperties{Path: r.Path, Properties: props}, nil
	default:
		return nil, fmt.Errorf("handler: unknown operation type %q", r.Type)
	}
}
