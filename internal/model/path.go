package model

// Path is an ordered sequence of non-negative integers locating a node as
// successive child indices from the document root. Per spec.md §3.
type Path []int

// Equal reports whether p and other address the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (p Path) Clone() Path {
	cp := make(Path, len(p))
	copy(cp, p)
	return cp
}

// Parent returns the path to this path's parent and the index it occupies
// among its siblings. Calling Parent on an empty path is invalid and
// returns ok=false.
func (p Path) Parent() (parent Path, index int, ok bool) {
	if len(p) == 0 {
		return nil, 0, false
	}
	return p[:len(p)-1], p[len(p)-1], true
}

// Child returns a new path one level deeper, at child index i.
func (p Path) Child(i int) Path {
	cp := make(Path, len(p)+1)
	copy(cp, p)
	cp[len(p)] = i
	return cp
}

// Compare orders paths lexicographically by component, with shorter
// prefixes ordered before longer paths that extend them — spec.md §4.2's
// path comparison, consistent with document reading order.
func (p Path) Compare(other Path) int {
	n := len(p)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if p[i] != other[i] {
			if p[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	default:
		return 0
	}
}

// Point is a text position: path to a text leaf plus a character offset.
type Point struct {
	Path   Path
	Offset int
}

// Equal reports whether two points address the same location.
func (pt Point) Equal(other Point) bool {
	return pt.Path.Equal(other.Path) && pt.Offset == other.Offset
}

// resolve walks the tree from root following path, returning every node
// visited (root first) and the final node, or an error if the path does
// not resolve.
func resolve(root Node, path Path) ([]Node, error) {
	chain := make([]Node, 0, len(path)+1)
	cur := root
	chain = append(chain, cur)
	for _, idx := range path {
		el, ok := AsElement(cur)
		if !ok {
			return nil, ErrPathInvalid(path)
		}
		if idx < 0 || idx >= el.ChildCount() {
			return nil, ErrPathInvalid(path)
		}
		cur = el.ChildAt(idx)
		chain = append(chain, cur)
	}
	return chain, nil
}

// Get resolves path against root and returns the addressed node.
func Get(root Node, path Path) (Node, error) {
	chain, err := resolve(root, path)
	if err != nil {
		return nil, err
	}
	return chain[len(chain)-1], nil
}

// GetTextLeaf resolves path and requires it to address a text leaf,
// returning TypeMismatch otherwise.
func GetTextLeaf(root Node, path Path) (*Leaf, error) {
	n, err := Get(root, path)
	if err != nil {
		return nil, err
	}
	leaf, ok := AsLeaf(n)
	if !ok || leaf.Tag() != TagText {
		return nil, ErrTypeMismatch(path, "text", string(n.Tag()))
	}
	return leaf, nil
}
