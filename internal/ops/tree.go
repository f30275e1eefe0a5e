package ops

import "github.com/vortex/wordcore/internal/model"

// replaceAt performs a persistent update: it returns a new tree, sharing
// every subtree not on the path to the target, with the node at path
// replaced by transform's result. Mirrors spec.md §4.1's "apply semantics
// are pure... the implementation must share structure along the path."
func replaceAt(root model.Node, path model.Path, transform func(model.Node) (model.Node, error)) (model.Node, error) {
	if len(path) == 0 {
		return transform(root)
	}
	el, ok := model.AsElement(root)
	if !ok {
		return nil, model.ErrPathInvalid(path)
	}
	idx := path[0]
	if idx < 0 || idx >= el.ChildCount() {
		return nil, model.ErrPathInvalid(path)
	}
	newChild, err := replaceAt(el.ChildAt(idx), path[1:], transform)
	if err != nil {
		return nil, err
	}
	children := append([]model.Node(nil), el.Children()...)
	children[idx] = newChild
	return el.WithChildren(children), nil
}

// replaceChildrenAt is replaceAt specialized to transforming an element's
// child slice — the shape every structural operation (insert/remove/split/
// merge) needs, since all of them add or remove siblings.
func replaceChildrenAt(root model.Node, parentPath model.Path, transform func([]model.Node) ([]model.Node, error)) (model.Node, error) {
	return replaceAt(root, parentPath, func(n model.Node) (model.Node, error) {
		el, ok := model.AsElement(n)
		if !ok {
			return nil, model.ErrPathInvalid(parentPath)
		}
		newChildren, err := transform(el.Children())
		if err != nil {
			return nil, err
		}
		return el.WithChildren(newChildren), nil
	})
}

func insertAt(children []model.Node, idx int, n model.Node) ([]model.Node, error) {
	if idx < 0 || idx > len(children) {
		return nil, model.ErrPathInvalid(nil)
	}
	out := make([]model.Node, 0, len(children)+1)
	out = append(out, children[:idx]...)
	out = append(out, n)
	out = append(out, children[idx:]...)
	return out, nil
}

func removeAt(children []model.Node, idx int) ([]model.Node, model.Node, error) {
	if idx < 0 || idx >= len(children) {
		return nil, nil, model.ErrPathInvalid(nil)
	}
	removed := children[idx]
	out := make([]model.Node, 0, len(children)-1)
	out = append(out, children[:idx]...)
	out = append(out, children[idx+1:]...)
	return out, removed, nil
}
