package css

import (
	"strings"

	"github.com/andybalholm/cascadia"
	dcss "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/SimonW97/roosterjs/dom"
)

// Stylesheet holds parsed qualified rules for resolved-value lookups.
// It covers the subset the color transformer needs: selector matching with
// specificity ordering, importance, and color inheritance. At-rules are
// ignored.
type Stylesheet struct {
	rules []sheetRule
}

type sheetRule struct {
	sel   cascadia.Sel
	spec  cascadia.Specificity
	decls []Declaration
	order int
}

// ParseStylesheet parses stylesheet text. Selectors cascadia cannot parse
// and malformed rules are skipped.
func ParseStylesheet(src string) *Stylesheet {
	ss := &Stylesheet{}
	ss.add(src)
	return ss
}

// StylesheetOf collects and parses the <style> elements under root.
func StylesheetOf(root *html.Node) *Stylesheet {
	ss := &Stylesheet{}
	for _, el := range dom.Elements(root, true) {
		if el.DataAtom != atom.Style {
			continue
		}
		var sb strings.Builder
		for c := el.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		ss.add(sb.String())
	}
	return ss
}

func (ss *Stylesheet) add(src string) {
	if strings.TrimSpace(src) == "" {
		return
	}
	parsed, err := parser.Parse(src)
	if err != nil {
		return
	}
	for _, rule := range parsed.Rules {
		if rule.Kind != dcss.QualifiedRule {
			continue
		}
		var decls []Declaration
		for _, d := range rule.Declarations {
			decls = append(decls, Declaration{
				Property:  strings.ToLower(strings.TrimSpace(d.Property)),
				Value:     strings.TrimSpace(d.Value),
				Important: d.Important,
			})
		}
		if len(decls) == 0 {
			continue
		}
		for _, selText := range rule.Selectors {
			sel, err := cascadia.Parse(strings.TrimSpace(selText))
			if err != nil {
				continue
			}
			ss.rules = append(ss.rules, sheetRule{
				sel:   sel,
				spec:  sel.Specificity(),
				decls: decls,
				order: len(ss.rules),
			})
		}
	}
}

// Value returns the winning sheet declaration for prop on n: importance
// first, then specificity, then source order.
func (ss *Stylesheet) Value(n *html.Node, prop string) (value string, important, ok bool) {
	if ss == nil || !dom.IsElement(n) {
		return "", false, false
	}
	prop = strings.ToLower(prop)
	bestOrder := -1
	var bestSpec cascadia.Specificity
	for _, r := range ss.rules {
		if !r.sel.Match(n) {
			continue
		}
		for _, d := range r.decls {
			if d.Property != prop {
				continue
			}
			if ok {
				switch {
				case d.Important != important:
					if !d.Important {
						continue
					}
				case bestSpec.Less(r.spec):
					// higher specificity wins
				case r.spec.Less(bestSpec):
					continue
				case r.order < bestOrder:
					continue
				}
			}
			value, important, ok = d.Value, d.Important, true
			bestSpec, bestOrder = r.spec, r.order
		}
	}
	return value, important, ok
}

// ComputedColor resolves the effective value of a color property for n:
// inline declarations and sheet rules cascade per importance, and "color"
// inherits through ancestors while "background-color" does not. Returns ""
// when nothing applies.
func ComputedColor(ss *Stylesheet, n *html.Node, prop string) string {
	inherits := strings.EqualFold(prop, "color")
	for cur := n; cur != nil; cur = cur.Parent {
		if !dom.IsElement(cur) {
			continue
		}
		if v := cascadeValue(ss, cur, prop); v != "" && !strings.EqualFold(v, "inherit") {
			return v
		}
		if !inherits {
			return ""
		}
	}
	return ""
}

// cascadeValue resolves prop on a single element: an important sheet rule
// beats a plain inline declaration, otherwise inline wins.
func cascadeValue(ss *Stylesheet, el *html.Node, prop string) string {
	st := StyleOf(el)
	inline, hasInline := st.Decl(prop)
	if hasInline && inline.Important {
		return inline.Value
	}
	if v, important, ok := ss.Value(el, prop); ok {
		if important || !hasInline {
			return v
		}
	}
	if hasInline {
		return inline.Value
	}
	return ""
}
