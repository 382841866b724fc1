package editor

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/SimonW97/roosterjs/css"
	"github.com/SimonW97/roosterjs/dom"
)

// Core is the editor core state. It is owned by the hosting editor and
// passed by reference into the selection and color subsystems, which mutate
// it (and the tree under ContentDiv) in place. All operations are
// synchronous and run on the caller's goroutine; Core itself takes no locks.
type Core struct {
	// ContentDiv is the root editable container.
	ContentDiv *html.Node

	Lifecycle Lifecycle
	DOMEvent  DOMEvent
	API       API

	// Stylesheet optionally carries the document's style rules for
	// resolved-color lookups during the dark transform.
	Stylesheet *css.Stylesheet
}

// Lifecycle holds mode and shadow-edit state.
type Lifecycle struct {
	// IsDarkMode reports whether the content is currently in dark
	// representation.
	IsDarkMode bool

	// ShadowEditFragment is non-nil only while shadow editing is active.
	// While set, selection resolution uses the recorded paths below and
	// never consults live selection state.
	ShadowEditFragment *html.Node

	// ShadowEditSelectionPath is the plain selection recorded on entering
	// shadow edit, nil when none was recorded.
	ShadowEditSelectionPath *dom.SelectionPath

	// ShadowEditTableSelectionPath holds one recorded path per selected
	// table region; non-empty takes precedence over the plain path.
	ShadowEditTableSelectionPath []dom.SelectionPath

	// OnExternalContentTransform, when set, fully replaces the built-in
	// per-element dark transform.
	OnExternalContentTransform func(*html.Node)

	// GetDarkColor maps a light color value to its dark-mode replacement.
	// Nil falls back to css.DarkColor.
	GetDarkColor func(string) string
}

// DOMEvent caches the selection state maintained by the host's focus and
// selection-change listeners.
type DOMEvent struct {
	SelectionRange      *dom.Range
	TableSelectionRange *Selection
}

// API holds the capability functions supplied by the host. Missing
// capabilities read as "no focus" and "no live ranges".
type API struct {
	HasFocus   func() bool
	LiveRanges func() []*dom.Range
}

// NewCore builds a core around an empty detached content container.
func NewCore() *Core {
	return &Core{
		ContentDiv: &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div},
	}
}

func (c *Core) hasFocus() bool {
	return c.API.HasFocus != nil && c.API.HasFocus()
}

func (c *Core) liveRanges() []*dom.Range {
	if c.API.LiveRanges == nil {
		return nil
	}
	return c.API.LiveRanges()
}

func (c *Core) getDarkColor(light string) string {
	if c.Lifecycle.GetDarkColor != nil {
		return c.Lifecycle.GetDarkColor(light)
	}
	return css.DarkColor(light)
}
