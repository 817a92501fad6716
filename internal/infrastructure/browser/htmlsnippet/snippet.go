package htmlsnippet

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"fixbridge/internal/domain/entity"
)

var ErrNoElement = errors.New("snippet contains no element")

// skippedTags never contribute text to a descriptor.
var skippedTags = []string{"script", "style", "noscript", "template"}

// FromHTML builds a descriptor from the first element of an HTML fragment,
// e.g. a node copied from the browser's devtools.
func FromHTML(snippet string) (*entity.ElementDescriptor, error) {
	nodes, err := html.ParseFragment(strings.NewReader(snippet), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("parse snippet: %w", err)
	}

	var root *html.Node
	for _, n := range nodes {
		if root = firstElement(n); root != nil {
			break
		}
	}
	if root == nil {
		return nil, ErrNoElement
	}

	el := &entity.ElementDescriptor{
		TagName:   strings.ToUpper(root.Data),
		ClassList: []string{},
	}
	for _, attr := range root.Attr {
		switch attr.Key {
		case "id":
			el.ID = attr.Val
		case "class":
			el.ClassList = strings.Fields(attr.Val)
		}
	}

	var sb strings.Builder
	collectText(root, &sb)
	el.TextContent = strings.TrimSpace(sb.String())

	return el, nil
}

func firstElement(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := firstElement(c); el != nil {
			return el
		}
	}
	return nil
}

// collectText mirrors textContent: every descendant text node, in order.
func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if isOneOf(n.Data, skippedTags...) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
