// Package dom provides node-tree primitives for the editing engine.
//
// The engine operates on *html.Node trees from golang.org/x/net/html. This
// package adds what the html package leaves out: positions and ranges,
// serializable node paths, detached fragment containers, attribute helpers,
// and the tree queries (containment, nearest ancestor, element collection)
// the selection and color subsystems are built on.
package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// IsFragment reports whether n is a detached container node: a document-type
// node with no parent, as produced by NewFragment or html.Parse.
func IsFragment(n *html.Node) bool {
	return n != nil && n.Type == html.DocumentNode && n.Parent == nil
}

// NewFragment returns an empty detached container node. Children appended to
// it are not part of any document until moved elsewhere.
func NewFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

// ParseFragment parses markup in a div context and returns a detached
// fragment holding the resulting nodes. Parse errors yield an empty fragment.
func ParseFragment(markup string) *html.Node {
	frag := NewFragment()
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return frag
	}
	for _, n := range nodes {
		frag.AppendChild(n)
	}
	return frag
}

// Contains reports whether n is ancestor or a descendant of ancestor.
func Contains(ancestor, n *html.Node) bool {
	if ancestor == nil {
		return false
	}
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Closest returns the nearest ancestor of n (inclusive) matching tag,
// or nil if there is none.
func Closest(n *html.Node, tag atom.Atom) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.DataAtom == tag {
			return n
		}
	}
	return nil
}

// Elements collects element nodes under root in document order. When
// includeSelf is true and root is itself an element, root leads the result.
// Fragment containers contribute all descendant elements; any other root
// kind yields nothing beyond its element descendants.
func Elements(root *html.Node, includeSelf bool) []*html.Node {
	if root == nil {
		return nil
	}
	var out []*html.Node
	if includeSelf && IsElement(root) {
		out = append(out, root)
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// Attr returns the value of the named attribute, or "" if absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets the named attribute, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute if present.
func RemoveAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Clone returns a copy of n. With deep set, the whole subtree is copied.
// The copy is detached: no parent or sibling links into the source tree.
func Clone(n *html.Node, deep bool) *html.Node {
	if n == nil {
		return nil
	}
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	if deep {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			c.AppendChild(Clone(child, true))
		}
	}
	return c
}

// Text extracts visible text from a subtree, skipping script and style
// content, with single spaces between text runs.
func Text(root *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return sb.String()
}

// RenderChildren serialises the children of root back to HTML.
func RenderChildren(root *html.Node) string {
	if root == nil {
		return ""
	}
	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&buf, c)
	}
	return buf.String()
}
