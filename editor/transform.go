package editor

import (
	"golang.org/x/net/html"

	"github.com/SimonW97/roosterjs/css"
	"github.com/SimonW97/roosterjs/dom"
)

// Direction selects which way TransformColor rewrites colors.
type Direction int

const (
	// LightToDark rewrites light colors into their dark-mode replacements,
	// stashing the originals in data attributes.
	LightToDark Direction = iota
	// DarkToLight restores the stashed originals and clears the stash.
	DarkToLight
)

// colorChannel pairs a CSS property with its HTML presentation attribute
// and the two data keys stashing their pre-transform values.
type colorChannel struct {
	cssName      string
	attrName     string
	styleDataKey string
	attrDataKey  string
}

var colorChannels = [2]colorChannel{
	{cssName: "color", attrName: "color", styleDataKey: "data-ogsc", attrDataKey: "data-ogac"},
	{cssName: "background-color", attrName: "bgcolor", styleDataKey: "data-ogsb", attrDataKey: "data-ogab"},
}

// TransformColor rewrites the colors of root's subtree in the given
// direction. root may be an element or a detached fragment; includeSelf
// additionally transforms an element root itself. pre, when non-nil, runs
// before any element is rewritten so the caller can mutate the tree (for
// example insert the collected nodes into the document) under the same
// light/dark assumption.
//
// When the core is not in dark mode the element set is empty and the call
// reduces to running pre. Per element and channel the stash keys make the
// dark transform idempotent and the light restore exact; elements that
// cannot be transformed are skipped silently.
func (c *Core) TransformColor(root *html.Node, includeSelf bool, pre func(), dir Direction) {
	var elements []*html.Node
	if c.Lifecycle.IsDarkMode {
		elements = dom.Elements(root, includeSelf)
	}

	if pre != nil {
		pre()
	}

	for _, el := range elements {
		if !dom.IsElement(el) {
			continue
		}
		switch dir {
		case DarkToLight:
			c.restoreElementColors(el)
		case LightToDark:
			if external := c.Lifecycle.OnExternalContentTransform; external != nil {
				external(el)
			} else {
				c.darkenElementColors(el)
			}
		}
	}
}

// restoreElementColors undoes a dark transform on one element, channel by
// channel. Only channels with recorded originals are touched.
func (c *Core) restoreElementColors(el *html.Node) {
	st := css.StyleOf(el)
	styleChanged := false

	for _, ch := range colorChannels {
		if dom.HasAttr(el, ch.styleDataKey) {
			if orig := dom.Attr(el, ch.styleDataKey); orig == "" {
				st.Remove(ch.cssName)
			} else {
				st.Set(ch.cssName, orig, false)
			}
			dom.RemoveAttr(el, ch.styleDataKey)
			styleChanged = true
		}

		if dom.HasAttr(el, ch.attrDataKey) {
			if orig := dom.Attr(el, ch.attrDataKey); meaningfulAttr(orig) {
				dom.SetAttr(el, ch.attrName, orig)
			} else {
				dom.RemoveAttr(el, ch.attrName)
			}
			dom.RemoveAttr(el, ch.attrDataKey)
		}
	}

	if styleChanged {
		st.Apply(el)
	}
}

// darkenElementColors applies the dark transform to one element. A channel
// whose stash keys are already populated is left alone, which keeps repeated
// dark passes over the same subtree from compounding.
func (c *Core) darkenElementColors(el *html.Node) {
	st := css.StyleOf(el)
	styleChanged := false

	for _, ch := range colorChannels {
		if dom.HasAttr(el, ch.styleDataKey) || dom.HasAttr(el, ch.attrDataKey) {
			continue
		}

		inline := st.Get(ch.cssName)
		attrVal := dom.Attr(el, ch.attrName)

		value := css.ComputedColor(c.Stylesheet, el, ch.cssName)
		if value == "" {
			value = inline
		}
		if value == "" {
			value = attrVal
		}
		if value == "" || value == "inherit" || inline == "inherit" {
			continue
		}

		dark := c.getDarkColor(value)
		st.Set(ch.cssName, dark, true)
		dom.SetAttr(el, ch.styleDataKey, inline)
		styleChanged = true

		if dom.HasAttr(el, ch.attrName) {
			dom.SetAttr(el, ch.attrDataKey, attrVal)
			dom.SetAttr(el, ch.attrName, dark)
		}
	}

	if styleChanged {
		st.Apply(el)
	}
}

// meaningfulAttr reports whether a recorded attribute value is worth
// restoring. Serialized absent values ("", "undefined", "null") mean the
// attribute did not exist and must be removed instead.
func meaningfulAttr(v string) bool {
	return v != "" && v != "undefined" && v != "null"
}
