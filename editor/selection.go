package editor

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/SimonW97/roosterjs/dom"
)

// SelectionType tags the two descriptor shapes.
type SelectionType int

const (
	// SelectionNormal is a plain sequence of ranges.
	SelectionNormal SelectionType = iota
	// SelectionTable is a table-region selection: one range per selected
	// region plus the enclosing table.
	SelectionTable
)

// CellCoordinates addresses a cell within a table. The resolver never fills
// coordinates in; the field is reserved for table-specific logic downstream.
type CellCoordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Selection is the normalized selection descriptor. A nil range inside
// Ranges is a valid "no selection" entry and counts as not collapsed.
type Selection struct {
	Type            SelectionType
	Ranges          []*dom.Range
	AreAllCollapsed bool
	Table           *html.Node
	Coordinates     *CellCoordinates
}

// NewNormalSelection wraps a single, possibly nil, range as a Normal
// descriptor.
func NewNormalSelection(r *dom.Range) *Selection {
	ranges := []*dom.Range{r}
	return &Selection{
		Type:            SelectionNormal,
		Ranges:          ranges,
		AreAllCollapsed: areAllCollapsed(ranges),
	}
}

// NewTableSelection wraps a range sequence and its enclosing table as a
// Table descriptor. Coordinates are left nil.
func NewTableSelection(ranges []*dom.Range, table *html.Node) *Selection {
	return &Selection{
		Type:            SelectionTable,
		Ranges:          ranges,
		AreAllCollapsed: areAllCollapsed(ranges),
		Table:           table,
	}
}

// areAllCollapsed reports whether every range in the sequence is collapsed.
// A nil range counts as not collapsed; an empty sequence is vacuously all
// collapsed.
func areAllCollapsed(ranges []*dom.Range) bool {
	collapsed := 0
	for _, r := range ranges {
		if r != nil && r.Collapsed() {
			collapsed++
		}
	}
	return collapsed == len(ranges)
}

// Selection resolves the current selection descriptor. It never fails: when
// no valid selection exists the result carries nil or empty ranges.
//
// While a shadow fragment is attached the recorded snapshot paths are
// authoritative and neither the cached DOM-event state nor the live
// platform selection is consulted, so preview operations see a stable
// selection regardless of concurrent focus changes.
func (c *Core) Selection() *Selection {
	if c.Lifecycle.ShadowEditFragment != nil {
		if paths := c.Lifecycle.ShadowEditTableSelectionPath; len(paths) > 0 {
			ranges := make([]*dom.Range, 0, len(paths))
			for i := range paths {
				ranges = append(ranges, paths[i].ToRange(c.ContentDiv))
			}
			return NewTableSelection(ranges, enclosingTable(ranges))
		}
		return NewNormalSelection(c.Lifecycle.ShadowEditSelectionPath.ToRange(c.ContentDiv))
	}

	if t := c.DOMEvent.TableSelectionRange; t != nil {
		return t
	}

	if c.hasFocus() {
		if live := c.liveRanges(); len(live) > 0 {
			if r := live[0]; rangeInside(c.ContentDiv, r) {
				return NewNormalSelection(r)
			}
		}
	}

	// No focus, or focus without a usable in-container range: keep the
	// last-known cached selection, even when stale or nil.
	return NewNormalSelection(c.DOMEvent.SelectionRange)
}

// rangeInside reports whether both endpoints of r sit under container.
func rangeInside(container *html.Node, r *dom.Range) bool {
	return r != nil &&
		dom.Contains(container, r.Start.Node) &&
		dom.Contains(container, r.End.Node)
}

// enclosingTable finds the table containing the first resolvable range.
func enclosingTable(ranges []*dom.Range) *html.Node {
	for _, r := range ranges {
		if r != nil && r.Start.Node != nil {
			if t := dom.Closest(r.Start.Node, atom.Table); t != nil {
				return t
			}
		}
	}
	return nil
}
