package editor

import (
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/SimonW97/roosterjs/dom"
)

// coreWith builds a core whose container holds the parsed markup.
func coreWith(t *testing.T, markup string) *Core {
	t.Helper()
	c := NewCore()
	moveChildren(dom.ParseFragment(markup), c.ContentDiv)
	return c
}

// firstText returns the first text node under root.
func firstText(t *testing.T, root *html.Node) *html.Node {
	t.Helper()
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.TextNode {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	if found == nil {
		t.Fatal("no text node in tree")
	}
	return found
}

func TestAreAllCollapsed(t *testing.T) {
	text := &html.Node{Type: html.TextNode, Data: "hello"}
	collapsed := dom.CollapsedAt(text, 1)
	expanded := dom.NewRange(dom.Position{Node: text, Offset: 0}, dom.Position{Node: text, Offset: 3})

	tests := []struct {
		name   string
		ranges []*dom.Range
		want   bool
	}{
		{"empty sequence", nil, true},
		{"single collapsed", []*dom.Range{collapsed}, true},
		{"single expanded", []*dom.Range{expanded}, false},
		{"nil range", []*dom.Range{nil}, false},
		{"collapsed plus nil", []*dom.Range{collapsed, nil}, false},
		{"all collapsed", []*dom.Range{collapsed, dom.CollapsedAt(text, 2)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := areAllCollapsed(tt.ranges); got != tt.want {
				t.Fatalf("areAllCollapsed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelection_FallbackToCachedRange(t *testing.T) {
	c := coreWith(t, "<p>hello</p>")
	text := firstText(t, c.ContentDiv)
	cached := dom.NewRange(dom.Position{Node: text, Offset: 0}, dom.Position{Node: text, Offset: 2})
	c.DOMEvent.SelectionRange = cached

	sel := c.Selection()
	if sel.Type != SelectionNormal {
		t.Fatalf("Type = %v, want normal", sel.Type)
	}
	if len(sel.Ranges) != 1 || sel.Ranges[0] != cached {
		t.Fatalf("Ranges = %v, want the exact cached range", sel.Ranges)
	}
	if sel.AreAllCollapsed {
		t.Fatal("expanded cached range reported as collapsed")
	}
}

func TestSelection_FallbackWithNilCache(t *testing.T) {
	c := coreWith(t, "<p>hello</p>")

	sel := c.Selection()
	if sel.Type != SelectionNormal {
		t.Fatalf("Type = %v, want normal", sel.Type)
	}
	if len(sel.Ranges) != 1 || sel.Ranges[0] != nil {
		t.Fatalf("Ranges = %v, want a single nil entry", sel.Ranges)
	}
	if sel.AreAllCollapsed {
		t.Fatal("nil range must not count as collapsed")
	}
}

func TestSelection_LiveWinsWhenFocused(t *testing.T) {
	c := coreWith(t, "<p>hello</p>")
	text := firstText(t, c.ContentDiv)
	live := dom.CollapsedAt(text, 1)
	stale := dom.CollapsedAt(text, 4)

	c.DOMEvent.SelectionRange = stale
	c.API.HasFocus = func() bool { return true }
	c.API.LiveRanges = func() []*dom.Range { return []*dom.Range{live} }

	sel := c.Selection()
	if sel.Ranges[0] != live {
		t.Fatal("focused resolution must prefer the live range over the cache")
	}
	if !sel.AreAllCollapsed {
		t.Fatal("collapsed live range not reported as collapsed")
	}
}

func TestSelection_LiveOutsideContainerFallsBack(t *testing.T) {
	c := coreWith(t, "<p>hello</p>")
	text := firstText(t, c.ContentDiv)
	cached := dom.CollapsedAt(text, 0)

	outside := &html.Node{Type: html.TextNode, Data: "elsewhere"}
	c.DOMEvent.SelectionRange = cached
	c.API.HasFocus = func() bool { return true }
	c.API.LiveRanges = func() []*dom.Range { return []*dom.Range{dom.CollapsedAt(outside, 0)} }

	sel := c.Selection()
	if sel.Ranges[0] != cached {
		t.Fatal("out-of-container live range must fall back to the cached range")
	}
}

func TestSelection_NoFocusIgnoresLive(t *testing.T) {
	c := coreWith(t, "<p>hello</p>")
	text := firstText(t, c.ContentDiv)
	live := dom.CollapsedAt(text, 1)

	c.API.HasFocus = func() bool { return false }
	c.API.LiveRanges = func() []*dom.Range { return []*dom.Range{live} }

	sel := c.Selection()
	if sel.Ranges[0] != nil {
		t.Fatal("without focus the live range must not be consulted")
	}
}

func TestSelection_TableCacheBeatsLive(t *testing.T) {
	c := coreWith(t, "<table><tr><td>a</td><td>b</td></tr></table>")
	text := firstText(t, c.ContentDiv)
	table := dom.Closest(text, atom.Table)

	cachedTable := NewTableSelection([]*dom.Range{dom.CollapsedAt(text, 0)}, table)
	c.DOMEvent.TableSelectionRange = cachedTable
	c.API.HasFocus = func() bool { return true }
	c.API.LiveRanges = func() []*dom.Range { return []*dom.Range{dom.CollapsedAt(text, 1)} }

	sel := c.Selection()
	if sel != cachedTable {
		t.Fatal("cached table selection must win over live resolution")
	}
	if sel.Coordinates != nil {
		t.Fatal("resolver must not fill coordinates")
	}
}

func TestSelection_ShadowTablePathsWin(t *testing.T) {
	c := coreWith(t, "<table><tr><td>a</td><td>b</td></tr></table>")
	textA := firstText(t, c.ContentDiv)
	table := dom.Closest(textA, atom.Table)

	spA, ok := dom.PathFromRange(c.ContentDiv, dom.CollapsedAt(textA, 0))
	if !ok {
		t.Fatal("PathFromRange failed for cell a")
	}
	textB := firstText(t, table.FirstChild.FirstChild.LastChild)
	spB, ok := dom.PathFromRange(c.ContentDiv, dom.CollapsedAt(textB, 0))
	if !ok {
		t.Fatal("PathFromRange failed for cell b")
	}

	// Contradictory caches and live state; the recorded paths must win.
	c.Lifecycle.ShadowEditFragment = dom.NewFragment()
	c.Lifecycle.ShadowEditTableSelectionPath = []dom.SelectionPath{*spA, *spB}
	c.Lifecycle.ShadowEditSelectionPath = spA
	c.DOMEvent.SelectionRange = dom.CollapsedAt(textB, 1)
	c.API.HasFocus = func() bool { return true }
	c.API.LiveRanges = func() []*dom.Range { return []*dom.Range{dom.CollapsedAt(textB, 1)} }

	sel := c.Selection()
	if sel.Type != SelectionTable {
		t.Fatalf("Type = %v, want table", sel.Type)
	}
	if len(sel.Ranges) != 2 {
		t.Fatalf("len(Ranges) = %d, want 2", len(sel.Ranges))
	}
	if sel.Ranges[0] == nil || sel.Ranges[0].Start.Node != textA {
		t.Fatal("first recorded path did not resolve to cell a")
	}
	if sel.Ranges[1] == nil || sel.Ranges[1].Start.Node != textB {
		t.Fatal("second recorded path did not resolve to cell b")
	}
	if sel.Table != table {
		t.Fatal("enclosing table not reconstructed from the first range")
	}
	if sel.Coordinates != nil {
		t.Fatal("coordinates must stay nil")
	}
}

func TestSelection_ShadowPlainPath(t *testing.T) {
	c := coreWith(t, "<p>hello</p>")
	text := firstText(t, c.ContentDiv)

	sp, ok := dom.PathFromRange(c.ContentDiv, dom.CollapsedAt(text, 2))
	if !ok {
		t.Fatal("PathFromRange failed")
	}

	c.Lifecycle.ShadowEditFragment = dom.NewFragment()
	c.Lifecycle.ShadowEditSelectionPath = sp
	c.DOMEvent.SelectionRange = dom.CollapsedAt(text, 4)

	sel := c.Selection()
	if sel.Type != SelectionNormal {
		t.Fatalf("Type = %v, want normal", sel.Type)
	}
	r := sel.Ranges[0]
	if r == nil || r.Start.Node != text || r.Start.Offset != 2 {
		t.Fatalf("resolved range = %+v, want offset 2 in the text node", r)
	}
}

func TestSelection_ShadowWithoutRecordedPath(t *testing.T) {
	c := coreWith(t, "<p>hello</p>")
	text := firstText(t, c.ContentDiv)

	c.Lifecycle.ShadowEditFragment = dom.NewFragment()
	c.DOMEvent.SelectionRange = dom.CollapsedAt(text, 1)

	sel := c.Selection()
	if sel.Type != SelectionNormal {
		t.Fatalf("Type = %v, want normal", sel.Type)
	}
	if sel.Ranges[0] != nil {
		t.Fatal("shadow edit without a recorded path must resolve to a nil range, not the cache")
	}
}
