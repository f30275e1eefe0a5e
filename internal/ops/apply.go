package ops

import "github.com/vortex/wordcore/internal/model"

// Apply runs op against doc and returns the resulting document. It never
// mutates doc or any node reachable from it; on error doc is returned
// unchanged alongside the error.
func Apply(doc *model.Document, op Op) (*model.Document, error) {
	switch o := op.(type) {
	case InsertText:
		return applyInsertText(doc, o)
	case DeleteText:
		return applyDeleteText(doc, o)
	case InsertNode:
		return applyInsertNode(doc, o)
	case RemoveNode:
		return applyRemoveNode(doc, o)
	case SplitNode:
		return applySplitNode(doc, o)
	case MergeNode:
		return applyMergeNode(doc, o)
	case SetProperties:
		return applySetProperties(doc, o)
	default:
		return doc, model.ErrPathInvalid(nil)
	}
}

func applyInsertText(doc *model.Document, o InsertText) (*model.Document, error) {
	root, err := replaceAt(doc.Root, o.Path, func(n model.Node) (model.Node, error) {
		leaf, ok := model.AsLeaf(n)
		if !ok || leaf.Tag() != model.TagText {
			return nil, model.ErrTypeMismatch(o.Path, "text", string(n.Tag()))
		}
		runes := []rune(leaf.Text())
		if o.Offset < 0 || o.Offset > len(runes) {
			return nil, model.ErrOffsetOutOfRange(o.Path, o.Offset, len(runes))
		}
		var out []rune
		out = append(out, runes[:o.Offset]...)
		out = append(out, []rune(o.Text)...)
		out = append(out, runes[o.Offset:]...)
		return leaf.WithText(string(out)), nil
	})
	if err != nil {
		return doc, err
	}
	return doc.WithRoot(root.(*model.Element)), nil
}

func applyDeleteText(doc *model.Document, o DeleteText) (*model.Document, error) {
	root, err := replaceAt(doc.Root, o.Path, func(n model.Node) (model.Node, error) {
		leaf, ok := model.AsLeaf(n)
		if !ok || leaf.Tag() != model.TagText {
			return nil, model.ErrTypeMismatch(o.Path, "text", string(n.Tag()))
		}
		runes := []rune(leaf.Text())
		end := o.Offset + o.Length
		if o.Offset < 0 || o.Length < 0 || end > len(runes) {
			return nil, model.ErrOffsetOutOfRange(o.Path, end, len(runes))
		}
		var out []rune
		out = append(out, runes[:o.Offset]...)
		out = append(out, runes[end:]...)
		return leaf.WithText(string(out)), nil
	})
	if err != nil {
		return doc, err
	}
	return doc.WithRoot(root.(*model.Element)), nil
}

func applyInsertNode(doc *model.Document, o InsertNode) (*model.Document, error) {
	parentPath, idx, ok := o.Path.Parent()
	if !ok {
		return doc, model.ErrPathInvalid(o.Path)
	}
	root, err := replaceChildrenAt(doc.Root, parentPath, func(children []model.Node) ([]model.Node, error) {
		return insertAt(children, idx, o.Node)
	})
	if err != nil {
		return doc, err
	}
	return doc.WithRoot(root.(*model.Element)), nil
}

func applyRemoveNode(doc *model.Document, o RemoveNode) (*model.Document, error) {
	parentPath, idx, ok := o.Path.Parent()
	if !ok {
		return doc, model.ErrPathInvalid(o.Path)
	}
	root, err := replaceChildrenAt(doc.Root, parentPath, func(children []model.Node) ([]model.Node, error) {
		out, _, err := removeAt(children, idx)
		return out, err
	})
	if err != nil {
		return doc, err
	}
	return doc.WithRoot(root.(*model.Element)), nil
}

func applySplitNode(doc *model.Document, o SplitNode) (*model.Document, error) {
	parentPath, idx, ok := o.Path.Parent()
	if !ok {
		return doc, model.ErrPathInvalid(o.Path)
	}
	target, err := model.Get(doc.Root, o.Path)
	if err != nil {
		return doc, err
	}

	var first, second model.Node
	switch v := target.(type) {
	case *model.Leaf:
		if v.Tag() != model.TagText {
			return doc, model.ErrTypeMismatch(o.Path, "text", string(v.Tag()))
		}
		runes := []rune(v.Text())
		if o.Position < 0 || o.Position > len(runes) {
			return doc, model.ErrOffsetOutOfRange(o.Path, o.Position, len(runes))
		}
		first = v.WithText(string(runes[:o.Position]))
		second = model.NewTextLeaf(string(runes[o.Position:]))
	case *model.Element:
		children := v.Children()
		if o.Position < 0 || o.Position > len(children) {
			return doc, model.ErrPathInvalid(o.Path)
		}
		firstChildren := append([]model.Node(nil), children[:o.Position]...)
		secondChildren := append([]model.Node(nil), children[o.Position:]...)
		props := o.Properties
		if props == nil {
			props = v.Props()
		}
		first = v.WithChildren(firstChildren)
		second = model.NewElement(v.Tag(), props, secondChildren...)
	default:
		return doc, model.ErrTypeMismatch(o.Path, "element or text", string(target.Tag()))
	}

	root, err := replaceChildrenAt(doc.Root, parentPath, func(children []model.Node) ([]model.Node, error) {
		if idx < 0 || idx >= len(children) {
			return nil, model.ErrPathInvalid(o.Path)
		}
		out := append([]model.Node(nil), children[:idx]...)
		out = append(out, first, second)
		out = append(out, children[idx+1:]...)
		return out, nil
	})
	if err != nil {
		return doc, err
	}
	return doc.WithRoot(root.(*model.Element)), nil
}

func applyMergeNode(doc *model.Document, o MergeNode) (*model.Document, error) {
	parentPath, idx, ok := o.Path.Parent()
	if !ok || idx == 0 {
		return doc, model.ErrPathInvalid(o.Path)
	}
	parentNode, err := model.Get(doc.Root, parentPath)
	if err != nil {
		return doc, err
	}
	parent, ok := model.AsElement(parentNode)
	if !ok || idx >= parent.ChildCount() {
		return doc, model.ErrPathInvalid(o.Path)
	}
	prev := parent.ChildAt(idx - 1)
	right := parent.ChildAt(idx)

	var merged model.Node
	switch p := prev.(type) {
	case *model.Leaf:
		r, ok := model.AsLeaf(right)
		if !ok || p.Tag() != model.TagText || r.Tag() != model.TagText {
			return doc, model.ErrTypeMismatch(o.Path, "text", string(right.Tag()))
		}
		merged = p.WithText(p.Text() + r.Text())
	case *model.Element:
		r, ok := model.AsElement(right)
		if !ok {
			return doc, model.ErrTypeMismatch(o.Path, "element", string(right.Tag()))
		}
		merged = p.WithChildren(append(append([]model.Node(nil), p.Children()...), r.Children()...))
	default:
		return doc, model.ErrTypeMismatch(o.Path, "element or text", string(prev.Tag()))
	}

	root, err := replaceChildrenAt(doc.Root, parentPath, func(children []model.Node) ([]model.Node, error) {
		out := append([]model.Node(nil), children[:idx-1]...)
		out = append(out, merged)
		out = append(out, children[idx+1:]...)
		return out, nil
	})
	if err != nil {
		return doc, err
	}
	return doc.WithRoot(root.(*model.Element)), nil
}

func applySetProperties(doc *model.Document, o SetProperties) (*model.Document, error) {
	root, err := replaceAt(doc.Root, o.Path, func(n model.Node) (model.Node, error) {
		el, ok := model.AsElement(n)
		if !ok {
			return nil, model.ErrTypeMismatch(o.Path, "element", string(n.Tag()))
		}
		return el.WithProps(o.Properties), nil
	})
	if err != nil {
		return doc, err
	}
	return doc.WithRoot(root.(*model.Element)), nil
}
