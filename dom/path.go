package dom

import "golang.org/x/net/html"

// Path is a serializable node address: the sequence of child indices to
// follow from a root node. It is the contract between snapshot capture and
// snapshot restore — a path recorded against a root stays valid as long as
// the tree shape above the target is unchanged.
type Path []int

// PathOf returns the path of n relative to root. The second return is false
// when n is nil or not under root. The path of root itself is empty.
func PathOf(root, n *html.Node) (Path, bool) {
	if root == nil || n == nil || !Contains(root, n) {
		return nil, false
	}
	var rev []int
	for cur := n; cur != root; cur = cur.Parent {
		idx := 0
		for s := cur.PrevSibling; s != nil; s = s.PrevSibling {
			idx++
		}
		rev = append(rev, idx)
	}
	p := make(Path, len(rev))
	for i, idx := range rev {
		p[len(rev)-1-i] = idx
	}
	return p, true
}

// Resolve follows the path from root and returns the addressed node, or nil
// when any step walks off the tree. Malformed paths degrade to nil rather
// than panicking.
func (p Path) Resolve(root *html.Node) *html.Node {
	cur := root
	for _, idx := range p {
		if cur == nil || idx < 0 {
			return nil
		}
		child := cur.FirstChild
		for ; child != nil && idx > 0; child = child.NextSibling {
			idx--
		}
		if child == nil {
			return nil
		}
		cur = child
	}
	return cur
}

// PathPosition is a serializable Position: a node path plus an offset.
type PathPosition struct {
	Path   Path `json:"path"`
	Offset int  `json:"offset"`
}

// SelectionPath is a serializable Range: recorded start and end positions.
type SelectionPath struct {
	Start PathPosition `json:"start"`
	End   PathPosition `json:"end"`
}

// ToRange reconstructs a live range by resolving both endpoints against
// root. Returns nil when either endpoint no longer resolves.
func (sp *SelectionPath) ToRange(root *html.Node) *Range {
	if sp == nil {
		return nil
	}
	start := sp.Start.Path.Resolve(root)
	end := sp.End.Path.Resolve(root)
	if start == nil || end == nil {
		return nil
	}
	return &Range{
		Start: Position{Node: start, Offset: sp.Start.Offset},
		End:   Position{Node: end, Offset: sp.End.Offset},
	}
}

// PathFromRange records a range as paths relative to root. The second return
// is false when the range or either of its endpoints lies outside root.
func PathFromRange(root *html.Node, r *Range) (*SelectionPath, bool) {
	if r == nil {
		return nil, false
	}
	startPath, ok := PathOf(root, r.Start.Node)
	if !ok {
		return nil, false
	}
	endPath, ok := PathOf(root, r.End.Node)
	if !ok {
		return nil, false
	}
	return &SelectionPath{
		Start: PathPosition{Path: startPath, Offset: r.Start.Offset},
		End:   PathPosition{Path: endPath, Offset: r.End.Offset},
	}, true
}
