// Package origin tracks which import document declared each script. Script
// execution happens asynchronously, long after scanning, so the only key a
// running script has left is its own resolved URL.
package origin

import (
	"errors"
	"sync"

	"github.com/AshleyScirra/html-imports-polyfill/internal/document"
)

// ErrUnmapped is returned when a script URL was never recorded.
var ErrUnmapped = errors.New("script url has no owning import")

// Registry is a process-lifetime, append-only map from a script's resolved
// URL to the import document that declared it. Entries are never pruned.
type Registry struct {
	mu    sync.RWMutex
	byURL map[string]*document.Document
}

func NewRegistry() *Registry {
	return &Registry{byURL: make(map[string]*document.Document)}
}

// Record associates a script URL with its owning import document. The first
// writer wins; a script reachable from two imports keeps the document that
// discovered it first.
func (r *Registry) Record(url string, doc *document.Document) {
	if r == nil || url == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byURL[url]; !ok {
		r.byURL[url] = doc
	}
}

// Lookup returns the import document that declared the script at url.
func (r *Registry) Lookup(url string) (*document.Document, error) {
	if r == nil {
		return nil, ErrUnmapped
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.byURL[url]
	if !ok {
		return nil, ErrUnmapped
	}
	return doc, nil
}

// Len reports how many script URLs have been recorded.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byURL)
}
