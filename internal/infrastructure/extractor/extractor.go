// Package extractor pulls the visible text out of an HTML document.
package extractor

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipped elements hold text that is never rendered.
var skipped = map[atom.Atom]struct{}{
	atom.Script: {},
	atom.Style:  {},
}

// HTMLExtractor implements ports.TextExtractor on top of golang.org/x/net/html.
type HTMLExtractor struct{}

func New() HTMLExtractor {
	return HTMLExtractor{}
}

// Extract concatenates the text nodes under <body> in document order, without
// separators. The parser is the HTML5 tree builder, so malformed markup is
// repaired rather than rejected; input it cannot read yields "".
func (HTMLExtractor) Extract(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return ""
	}

	body := findBody(root)
	if body == nil {
		return ""
	}

	var sb strings.Builder
	collectText(body, &sb)
	return sb.String()
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			sb.WriteString(c.Data)
		case html.ElementNode:
			if _, skip := skipped[c.DataAtom]; skip {
				continue
			}
			collectText(c, sb)
		}
	}
}
