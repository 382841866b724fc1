package dom

import "golang.org/x/net/html"

// Position is a point in the tree: a node and an offset within it.
// For text nodes the offset counts runes into the text; for other nodes it
// counts children.
type Position struct {
	Node   *html.Node
	Offset int
}

// Range is a span between two positions. Start and end may sit in different
// nodes. Ranges are plain snapshots: they do not track tree mutations.
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a range between two positions.
func NewRange(start, end Position) *Range {
	return &Range{Start: start, End: end}
}

// CollapsedAt builds a caret range at a single point.
func CollapsedAt(n *html.Node, offset int) *Range {
	pos := Position{Node: n, Offset: offset}
	return &Range{Start: pos, End: pos}
}

// Collapsed reports whether start and end are the same point.
func (r *Range) Collapsed() bool {
	return r.Start.Node == r.End.Node && r.Start.Offset == r.End.Offset
}
