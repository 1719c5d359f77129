package document

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/AshleyScirra/html-imports-polyfill/internal/pathutil"
)

// Document is the parsed handle for one fetched import document. The base
// path is derived from the URL once at parse time so relative references
// found inside the document resolve against it.
type Document struct {
	URL  string
	Base string

	root *html.Node
}

// Parse builds a Document from raw HTML bytes. The x/net/html parser
// always synthesizes html/head/body containers, so even a fragment
// yields a walkable document.
func Parse(url string, raw []byte) (*Document, error) {
	node, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return &Document{
		URL:  url,
		Base: pathutil.Dir(url),
		root: node,
	}, nil
}

// Main returns a handle for the top-level page itself. It has no backing
// node tree; it exists so unmapped scripts have a document to fall back to.
func Main(url string) *Document {
	return &Document{URL: url, Base: pathutil.Dir(url)}
}

// TopLevel returns the direct element children of the document's head and
// body containers, head first, in document order. Nested descendants are
// intentionally not included.
func (d *Document) TopLevel() []*html.Node {
	if d == nil || d.root == nil {
		return nil
	}
	var out []*html.Node
	for _, container := range []atom.Atom{atom.Head, atom.Body} {
		parent := findElement(d.root, container)
		if parent == nil {
			continue
		}
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, c)
			}
		}
	}
	return out
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// Attr returns the value of the named attribute on an element, or "".
func Attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
