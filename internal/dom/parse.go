package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses an HTML markup fragment into detached elements.
// Whitespace-only text between tags is dropped; other text becomes the
// enclosing element's text content.
func ParseFragment(markup string) ([]*Element, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, err
	}
	var out []*Element
	for _, n := range nodes {
		if el := convertNode(n); el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

func convertNode(n *html.Node) *Element {
	if n.Type != html.ElementNode {
		return nil
	}
	el := NewElement(n.Data)
	for _, a := range n.Attr {
		el.SetAttr(a.Key, a.Val)
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				text.WriteString(c.Data)
			}
		case html.ElementNode:
			if child := convertNode(c); child != nil {
				el.AppendChild(child)
			}
		}
	}
	el.text = text.String()
	return el
}
