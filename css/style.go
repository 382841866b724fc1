// Package css implements the style handling the color transformer relies on:
// inline style declarations, document stylesheet resolution, and color value
// parsing with the default dark-mode mapping.
package css

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"

	"github.com/SimonW97/roosterjs/dom"
)

// Declaration is a single CSS property declaration.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Style is an ordered list of inline declarations, parsed from and written
// back to an element's style attribute.
type Style struct {
	decls []Declaration
}

// ParseStyle parses inline declaration text ("color: red; margin: 0").
// Unparseable input yields an empty style rather than an error — a malformed
// style attribute degrades to "no declarations".
func ParseStyle(src string) *Style {
	s := &Style{}
	if strings.TrimSpace(src) == "" {
		return s
	}
	decls, err := parser.ParseDeclarations(src)
	if err != nil {
		return s
	}
	for _, d := range decls {
		s.decls = append(s.decls, Declaration{
			Property:  strings.ToLower(strings.TrimSpace(d.Property)),
			Value:     strings.TrimSpace(d.Value),
			Important: d.Important,
		})
	}
	return s
}

// StyleOf parses the style attribute of n.
func StyleOf(n *html.Node) *Style {
	return ParseStyle(dom.Attr(n, "style"))
}

// Get returns the value of the last declaration for prop, or "".
func (s *Style) Get(prop string) string {
	d, ok := s.Decl(prop)
	if !ok {
		return ""
	}
	return d.Value
}

// Decl returns the last declaration for prop.
func (s *Style) Decl(prop string) (Declaration, bool) {
	prop = strings.ToLower(prop)
	for i := len(s.decls) - 1; i >= 0; i-- {
		if s.decls[i].Property == prop {
			return s.decls[i], true
		}
	}
	return Declaration{}, false
}

// Set replaces or appends the declaration for prop.
func (s *Style) Set(prop, value string, important bool) {
	prop = strings.ToLower(prop)
	for i := range s.decls {
		if s.decls[i].Property == prop {
			s.decls[i].Value = value
			s.decls[i].Important = important
			return
		}
	}
	s.decls = append(s.decls, Declaration{Property: prop, Value: value, Important: important})
}

// Remove deletes every declaration for prop.
func (s *Style) Remove(prop string) {
	prop = strings.ToLower(prop)
	kept := s.decls[:0]
	for _, d := range s.decls {
		if d.Property != prop {
			kept = append(kept, d)
		}
	}
	s.decls = kept
}

// Empty reports whether the style has no declarations.
func (s *Style) Empty() bool {
	return len(s.decls) == 0
}

// String serialises the declarations back to attribute text.
func (s *Style) String() string {
	var sb strings.Builder
	for i, d := range s.decls {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		if d.Important {
			sb.WriteString(" !important")
		}
	}
	return sb.String()
}

// Apply writes the style back to n's style attribute, removing the
// attribute entirely when no declarations remain.
func (s *Style) Apply(n *html.Node) {
	if s.Empty() {
		dom.RemoveAttr(n, "style")
		return
	}
	dom.SetAttr(n, "style", s.String())
}
