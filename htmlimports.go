// Package htmlimports resolves trees of declarative import documents and
// loads their stylesheets and scripts with maximum parallelism under two
// ordering guarantees: scripts execute in declaration order within a
// document, and an import's scripts begin loading before anything declared
// after it in the parent document.
package htmlimports

import (
	"context"
	"fmt"
	"log"

	"github.com/AshleyScirra/html-imports-polyfill/internal/document"
	"github.com/AshleyScirra/html-imports-polyfill/internal/engine"
	"github.com/AshleyScirra/html-imports-polyfill/internal/fetch"
	"github.com/AshleyScirra/html-imports-polyfill/internal/future"
	"github.com/AshleyScirra/html-imports-polyfill/internal/inject"
	"github.com/AshleyScirra/html-imports-polyfill/internal/origin"
)

// Re-exported types so callers only import this package. Fetcher and
// Injector are the collaborator contracts; implementing them does not
// require reaching into internal packages.
type (
	Progress = engine.Progress
	Result   = engine.Result
	Failure  = engine.Failure
	Document = document.Document
	Fetcher  = fetch.Fetcher
	Injector = inject.Injector
)

// Native is the host's own import primitive. When the host supports
// imports natively the whole polyfill engine is skipped in its favor.
type Native interface {
	AddImport(ctx context.Context, url string, async bool) (*Document, error)
}

type Config struct {
	// Fetcher retrieves documents and resources. Required.
	Fetcher Fetcher

	// Injector instantiates script/stylesheet elements. Defaults to an
	// inject.Sink over Fetcher.
	Injector Injector

	// Native, when set, marks native import support and receives every
	// AddImport call directly.
	Native Native

	// MainURL identifies the top-level page; unmapped scripts fall back
	// to its document handle.
	MainURL string
}

// Loader is the public facade over the expansion engine.
type Loader struct {
	engine   *engine.Engine
	injector inject.Injector
	origins  *origin.Registry
	native   Native
	main     *Document

	// Decided once at construction, fixed for the Loader's lifetime.
	nativeSupport bool
}

func New(cfg Config) (*Loader, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	inj := cfg.Injector
	if inj == nil {
		inj = inject.NewSink(cfg.Fetcher)
	}
	reg := origin.NewRegistry()
	eng, err := engine.New(cfg.Fetcher, inj, reg)
	if err != nil {
		return nil, err
	}
	return &Loader{
		engine:        eng,
		injector:      inj,
		origins:       reg,
		native:        cfg.Native,
		main:          document.Main(cfg.MainURL),
		nativeSupport: cfg.Native != nil,
	}, nil
}

// AddImport loads the import tree rooted at url. With native support the
// host primitive handles the whole request; otherwise the engine expands
// the tree. The async hint is only meaningful to the native path.
func (l *Loader) AddImport(ctx context.Context, url string, async bool, progress *Progress) *future.Future[Result] {
	if l.nativeSupport {
		if progress != nil {
			progress.MarkPending()
		}
		return future.Go(func() (Result, error) {
			doc, err := l.native.AddImport(ctx, url, async)
			if progress != nil {
				progress.MarkDone()
			}
			if err != nil {
				log.Printf("html imports: loading %s failed: %v", url, err)
				return Result{Failures: []Failure{{URL: url, Err: err}}}, nil
			}
			return Result{Document: doc}, nil
		})
	}
	return l.engine.Load(ctx, url, progress)
}

// CurrentImportDocument reports which import document declared the
// presently executing script. Outside a script, or for a script no import
// ever declared, it falls back to the main document with a warning.
func (l *Loader) CurrentImportDocument() *Document {
	url := l.injector.CurrentScript()
	if url == "" {
		log.Printf("html imports: no script is executing; falling back to the main document")
		return l.main
	}
	doc, err := l.origins.Lookup(url)
	if err != nil {
		log.Printf("html imports: %s: %v; falling back to the main document", url, err)
		return l.main
	}
	return doc
}

// HasNativeSupport reports whether import requests bypass the engine.
func (l *Loader) HasNativeSupport() bool { return l.nativeSupport }

// MainDocument returns the top-level page handle.
func (l *Loader) MainDocument() *Document { return l.main }
