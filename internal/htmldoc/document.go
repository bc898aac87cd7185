package htmldoc

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrEmptyDocument is returned when the input contains no markup at all.
// This is the only input the loader rejects: x/net/html recovers from any
// malformed markup, so every non-empty input yields a document.
var ErrEmptyDocument = errors.New("htmldoc: empty document")

// Node is one element in the parsed tag tree. Nodes are built once during
// Parse and never mutated afterwards; evaluators only read them.
type Node struct {
	Tag      string
	Attrs    map[string]string // Attribute keys lowercased
	Children []*Node

	parent *Node
	text   []string // Direct text content pieces, in order
}

// Document is an immutable parsed representation of one HTML page,
// including <head> (for the lang attribute on <html>) and <body>.
type Document struct {
	root *Node
}

// Parse reads HTML from r and builds the document tree.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmptyDocument
	}

	tree, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}

	root := &Node{Tag: "#document", Attrs: map[string]string{}}
	convert(tree, root)
	return &Document{root: root}, nil
}

// ParseString parses HTML from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// convert copies the x/net/html tree into our read-only representation.
func convert(n *html.Node, parent *Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			node := &Node{
				Tag:    strings.ToLower(c.Data),
				Attrs:  make(map[string]string, len(c.Attr)),
				parent: parent,
			}
			for _, attr := range c.Attr {
				node.Attrs[strings.ToLower(attr.Key)] = attr.Val
			}
			parent.Children = append(parent.Children, node)
			convert(c, node)
		case html.TextNode:
			if fields := strings.Fields(c.Data); len(fields) > 0 {
				parent.text = append(parent.text, strings.Join(fields, " "))
			}
		default:
			// Comments and doctypes carry no accessibility signal
		}
	}
}

// Root returns the document root node.
func (d *Document) Root() *Node {
	return d.root
}

// Find returns the first element with the given tag in document order,
// or nil if none exists.
func (d *Document) Find(tag string) *Node {
	return d.root.Find(tag)
}

// FindAll returns all elements matching any of the given tags,
// in document order.
func (d *Document) FindAll(tags ...string) []*Node {
	return d.root.FindAll(tags...)
}

// Walk visits every element in document order.
func (d *Document) Walk(fn func(*Node)) {
	d.root.walk(fn)
}

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(key string) string {
	return n.Attrs[strings.ToLower(key)]
}

// HasAttr reports whether the attribute is present, even if empty.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attrs[strings.ToLower(key)]
	return ok
}

// Parent returns the parent element, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// HasAncestor reports whether any ancestor has the given tag.
func (n *Node) HasAncestor(tag string) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p.Tag == tag {
			return true
		}
	}
	return false
}

// Find returns the first descendant with the given tag in document order.
func (n *Node) Find(tag string) *Node {
	var found *Node
	n.walk(func(node *Node) {
		if found == nil && node.Tag == tag {
			found = node
		}
	})
	return found
}

// FindAll returns all descendants matching any of the given tags,
// in document order.
func (n *Node) FindAll(tags ...string) []*Node {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[strings.ToLower(t)] = true
	}

	var nodes []*Node
	n.walk(func(node *Node) {
		if want[node.Tag] {
			nodes = append(nodes, node)
		}
	})
	return nodes
}

// Text returns the concatenated visible text of the subtree, with
// whitespace collapsed. Script, style, and similar non-visible
// containers are skipped.
func (n *Node) Text() string {
	var buf strings.Builder
	n.collectText(&buf)
	return strings.TrimSpace(buf.String())
}

func (n *Node) collectText(buf *strings.Builder) {
	switch n.Tag {
	case "script", "style", "noscript", "iframe", "template":
		return
	}

	for _, piece := range n.text {
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(piece)
	}
	for _, c := range n.Children {
		c.collectText(buf)
	}
}

func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.Children {
		fn(c)
		c.walk(fn)
	}
}
