// Package engine implements recursive import expansion: every import
// document's dependencies load with as much parallelism as the ordering
// contract allows. Scripts in one document execute in declaration order,
// and an import's scripts are always initiated before anything declared
// after that import in its parent document starts loading.
package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/AshleyScirra/html-imports-polyfill/internal/document"
	"github.com/AshleyScirra/html-imports-polyfill/internal/fetch"
	"github.com/AshleyScirra/html-imports-polyfill/internal/future"
	"github.com/AshleyScirra/html-imports-polyfill/internal/inject"
	"github.com/AshleyScirra/html-imports-polyfill/internal/origin"
	"github.com/AshleyScirra/html-imports-polyfill/internal/scan"
)

// Failure records one contained load failure. Failures never abort sibling
// subtrees; they surface here instead of propagating.
type Failure struct {
	URL string
	Err error
}

// Result is what a whole-tree load settles with: the root document plus
// every failure that was contained along the way. A nil Document means the
// root document itself could not be fetched or parsed.
type Result struct {
	Document *document.Document
	Failures []Failure
}

// Engine drives import expansion through its fetch and inject
// collaborators, recording script ownership as it scans.
type Engine struct {
	fetcher  fetch.Fetcher
	injector inject.Injector
	origins  *origin.Registry
}

func New(f fetch.Fetcher, inj inject.Injector, reg *origin.Registry) (*Engine, error) {
	if f == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if inj == nil {
		return nil, fmt.Errorf("injector is required")
	}
	if reg == nil {
		return nil, fmt.Errorf("origin registry is required")
	}
	return &Engine{fetcher: f, injector: inj, origins: reg}, nil
}

// Load expands the whole import tree rooted at url and settles once every
// collected stylesheet and script load across the tree has settled.
func (e *Engine) Load(ctx context.Context, url string, progress *Progress) *future.Future[Result] {
	res := future.New[Result]()
	go func() {
		root := newRootContext(progress)
		root.markQueued(url)
		doc, _ := e.expand(ctx, url, nil, root, true).Wait(ctx)
		res.Resolve(Result{Document: doc, Failures: root.takeFailures()})
	}()
	return res
}

// Expand is the recursive entry point. A nil root marks the top-level
// call, which allocates the shared RootContext and performs the final
// aggregation wait; recursive calls borrow the parent's root.
func (e *Engine) Expand(ctx context.Context, url string, pre *future.Future[*document.Document], root *RootContext, progress *Progress) *future.Future[*document.Document] {
	isRoot := root == nil
	if isRoot {
		root = newRootContext(progress)
		root.markQueued(url)
	}
	return e.expand(ctx, url, pre, root, isRoot)
}

func (e *Engine) expand(ctx context.Context, url string, pre *future.Future[*document.Document], root *RootContext, isRoot bool) *future.Future[*document.Document] {
	result := future.New[*document.Document]()
	go func() {
		doc, err := e.obtain(ctx, url, pre)
		if err != nil {
			// Contained: the failure never reaches parent or sibling
			// subtrees, only the log and the failure record.
			log.Printf("html imports: loading %s failed: %v", url, err)
			root.addFailure(Failure{URL: url, Err: err})
			result.Resolve(nil)
			return
		}

		grouped := scan.Partition(scan.Scan(doc, e.origins))

		// Stylesheets start immediately and unconditionally; nothing ever
		// waits on them except the root aggregation.
		for _, d := range grouped.Stylesheets {
			root.addSheet(d.URL, e.injector.Stylesheet(ctx, d.URL))
		}

		// Pre-fetch every newly discovered import now, before the ordered
		// walk below reaches it. Its bytes arrive while earlier groups are
		// still being processed; expansion stays ordered.
		for _, g := range grouped.Groups {
			if g.Kind != scan.KindImport {
				continue
			}
			u := g.Deps[0].URL
			if !root.markQueued(u) {
				continue
			}
			root.progress().addTotal(1)
			root.storePrefetch(u, future.Go(func() (*document.Document, error) {
				return e.fetchDocument(ctx, u)
			}))
		}

		// Chain the groups: group i+1 starts once group i's ordering
		// obligation is satisfied, which for scripts is initiation and for
		// imports is full recursive expansion.
		obligation := future.Resolved(struct{}{})
		for _, g := range grouped.Groups {
			obligation = e.scheduleGroup(ctx, g, obligation, root)
		}
		<-obligation.Done()

		if isRoot {
			root.settleCollected(ctx)
			root.progress().addLoaded(1)
		}
		result.Resolve(doc)
	}()
	return result
}

// obtain yields the import document, either from the pre-fetch started by
// the parent expansion or by fetching it now.
func (e *Engine) obtain(ctx context.Context, url string, pre *future.Future[*document.Document]) (*document.Document, error) {
	if pre != nil {
		return pre.Wait(ctx)
	}
	return e.fetchDocument(ctx, url)
}

func (e *Engine) fetchDocument(ctx context.Context, url string) (*document.Document, error) {
	raw, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return document.Parse(url, raw)
}

func (e *Engine) scheduleGroup(ctx context.Context, g scan.Group, prev *future.Future[struct{}], root *RootContext) *future.Future[struct{}] {
	next := future.New[struct{}]()
	go func() {
		defer next.Resolve(struct{}{})
		<-prev.Done()

		if g.Kind == scan.KindScript {
			// Initiation alone satisfies the obligation: the injector's
			// insertion-order guarantee covers execution order, so the
			// next group need not wait for these downloads.
			for _, d := range g.Deps {
				root.addScript(d.URL, e.injector.Script(ctx, d.URL))
			}
			return
		}

		url := g.Deps[0].URL
		pf := root.takePrefetch(url)
		if pf == nil {
			// A duplicate of an import queued elsewhere in the tree; it
			// contributes nothing further.
			return
		}
		sub := e.expand(ctx, url, pf, root, false)
		<-sub.Done()
		root.progress().addLoaded(1)
	}()
	return next
}
