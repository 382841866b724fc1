package editor

import "github.com/SimonW97/roosterjs/dom"

// StartShadowEdit snapshots the current selection as serializable paths and
// clones the content into a detached fragment. While the fragment is
// attached, Selection resolves from the recorded paths only. Calling it
// again while already in shadow edit is a no-op.
//
// A selection whose ranges fall outside ContentDiv records nothing; the
// resolver then degrades to a nil-range descriptor rather than failing.
func (c *Core) StartShadowEdit() {
	if c.Lifecycle.ShadowEditFragment != nil {
		return
	}

	sel := c.Selection()
	if sel.Type == SelectionTable {
		var paths []dom.SelectionPath
		for _, r := range sel.Ranges {
			if sp, ok := dom.PathFromRange(c.ContentDiv, r); ok {
				paths = append(paths, *sp)
			}
		}
		c.Lifecycle.ShadowEditTableSelectionPath = paths
	} else if len(sel.Ranges) > 0 {
		if sp, ok := dom.PathFromRange(c.ContentDiv, sel.Ranges[0]); ok {
			c.Lifecycle.ShadowEditSelectionPath = sp
		}
	}

	frag := dom.NewFragment()
	for child := c.ContentDiv.FirstChild; child != nil; child = child.NextSibling {
		frag.AppendChild(dom.Clone(child, true))
	}
	c.Lifecycle.ShadowEditFragment = frag
}

// StopShadowEdit leaves shadow editing: the fragment and the recorded
// selection paths are dropped and live resolution resumes.
func (c *Core) StopShadowEdit() {
	c.Lifecycle.ShadowEditFragment = nil
	c.Lifecycle.ShadowEditSelectionPath = nil
	c.Lifecycle.ShadowEditTableSelectionPath = nil
}
