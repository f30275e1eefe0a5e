package ops

import "github.com/vortex/wordcore/internal/model"

// Invert returns the operation that undoes op, given doc — the document
// state immediately before op would be applied. History (internal/editor)
// calls Invert before Apply, in forward order, and replays the inverses in
// reverse to undo a batch.
func Invert(doc *model.Document, op Op) (Op, error) {
	switch o := op.(type) {
	case InsertText:
		return DeleteText{Path: o.Path, Offset: o.Offset, Length: len([]rune(o.Text)), Text: o.Text}, nil
	case DeleteText:
		return invertDeleteText(doc, o)
	case InsertNode:
		return RemoveNode{Path: o.Path, Node: o.Node}, nil
	case RemoveNode:
		return invertRemoveNode(doc, o)
	case SplitNode:
		return invertSplitNode(doc, o)
	case MergeNode:
		return invertMergeNode(doc, o)
	case SetProperties:
		return invertSetProperties(doc, o)
	default:
		return nil, model.ErrPathInvalid(nil)
	}
}

func invertDeleteText(doc *model.Document, o DeleteText) (Op, error) {
	leaf, err := model.GetTextLeaf(doc.Root, o.Path)
	if err != nil {
		return nil, err
	}
	runes := []rune(leaf.Text())
	end := o.Offset + o.Length
	if o.Offset < 0 || o.Length < 0 || end > len(runes) {
		return nil, model.ErrOffsetOutOfRange(o.Path, end, len(runes))
	}
	return InsertText{Path: o.Path, Offset: o.Offset, Text: string(runes[o.Offset:end])}, nil
}

func invertRemoveNode(doc *model.Document, o RemoveNode) (Op, error) {
	n, err := model.Get(doc.Root, o.Path)
	if err != nil {
		return nil, err
	}
	return InsertNode{Path: o.Path, Node: n}, nil
}

func invertSplitNode(doc *model.Document, o SplitNode) (Op, error) {
	parentPath, idx, ok := o.Path.Parent()
	if !ok {
		return nil, model.ErrPathInvalid(o.Path)
	}
	target, err := model.Get(doc.Root, o.Path)
	if err != nil {
		return nil, err
	}
	rightProps := o.Properties
	if rightProps == nil {
		if el, ok := model.AsElement(target); ok {
			rightProps = el.Props()
		}
	}
	secondPath := parentPath.Child(idx + 1)
	return MergeNode{Path: secondPath, Position: idx + 1, Properties: rightProps}, nil
}

func invertMergeNode(doc *model.Document, o MergeNode) (Op, error) {
	parentPath, idx, ok := o.Path.Parent()
	if !ok || idx == 0 {
		return nil, model.ErrPathInvalid(o.Path)
	}
	prevPath := parentPath.Child(idx - 1)
	prev, err := model.Get(doc.Root, prevPath)
	if err != nil {
		return nil, err
	}
	var splitPos int
	switch p := prev.(type) {
	case *model.Leaf:
		splitPos = p.TextLen()
	case *model.Element:
		splitPos = p.ChildCount()
	default:
		return nil, model.ErrTypeMismatch(prevPath, "element or text", string(prev.Tag()))
	}
	return SplitNode{Path: prevPath, Position: splitPos, Properties: o.Properties}, nil
}

func invertSetProperties(doc *model.Document, o SetProperties) (Op, error) {
	n, err := model.Get(doc.Root, o.Path)
	if err != nil {
		return nil, err
	}
	el, ok := model.AsElement(n)
	if !ok {
		return nil, model.ErrTypeMismatch(o.Path, "element", string(n.Tag()))
	}
	return SetProperties{Path: o.Path, Properties: el.Props(), OldProperties: o.Properties}, nil
}
