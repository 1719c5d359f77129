// Package scan classifies the top-level elements of an import document into
// typed dependency descriptors and partitions them into schedulable groups.
package scan

import (
	"log"

	"golang.org/x/net/html/atom"

	"github.com/AshleyScirra/html-imports-polyfill/internal/document"
	"github.com/AshleyScirra/html-imports-polyfill/internal/origin"
	"github.com/AshleyScirra/html-imports-polyfill/internal/pathutil"
)

// Kind discriminates the three dependency kinds an import can declare.
type Kind int

const (
	KindImport Kind = iota
	KindStylesheet
	KindScript
)

func (k Kind) String() string {
	switch k {
	case KindImport:
		return "import"
	case KindStylesheet:
		return "stylesheet"
	case KindScript:
		return "script"
	}
	return "unknown"
}

// Dependency is one typed, URL-resolved descriptor. Immutable once
// produced; document order is significant and preserved through grouping.
type Dependency struct {
	Kind Kind
	URL  string
}

// Scan walks the direct top-level children of doc's head and body and
// produces the ordered dependency list. Script URLs are recorded into the
// origin registry as a side effect, because by the time a script runs the
// only key it has left is its own URL.
func Scan(doc *document.Document, reg *origin.Registry) []Dependency {
	var deps []Dependency
	for _, n := range doc.TopLevel() {
		switch n.DataAtom {
		case atom.Link:
			href := document.Attr(n, "href")
			if href == "" {
				continue
			}
			switch rel := document.Attr(n, "rel"); rel {
			case "import":
				deps = append(deps, Dependency{Kind: KindImport, URL: pathutil.Resolve(doc.Base, href)})
			case "stylesheet":
				deps = append(deps, Dependency{Kind: KindStylesheet, URL: pathutil.Resolve(doc.Base, href)})
			default:
				log.Printf("html imports: ignoring link rel=%q in %s", rel, doc.URL)
			}
		case atom.Script:
			src := document.Attr(n, "src")
			if src == "" {
				// Inline scripts carry no URL to schedule or map.
				continue
			}
			url := pathutil.Resolve(doc.Base, src)
			deps = append(deps, Dependency{Kind: KindScript, URL: url})
			reg.Record(url, doc)
		}
	}
	return deps
}
