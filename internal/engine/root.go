package engine

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/AshleyScirra/html-imports-polyfill/internal/document"
	"github.com/AshleyScirra/html-imports-polyfill/internal/future"
)

// Progress is the live loaded/total counter pair for one tree. Total
// starts at 1 for the root and grows by 1 per newly discovered import;
// loaded catches up as expansions finish and reaches total only when the
// whole tree, root included, has settled.
type Progress struct {
	loaded atomic.Int64
	total  atomic.Int64
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() (loaded, total int64) {
	return p.loaded.Load(), p.total.Load()
}

func (p *Progress) addLoaded(n int64) { p.loaded.Add(n) }
func (p *Progress) addTotal(n int64)  { p.total.Add(n) }

// MarkPending and MarkDone mirror progress for loads that bypass the
// engine, such as the native fast path.
func (p *Progress) MarkPending() {
	p.loaded.Store(0)
	p.total.Store(1)
}

func (p *Progress) MarkDone() {
	p.loaded.Store(p.total.Load())
}

type pendingLoad struct {
	url string
	fut *future.Future[struct{}]
}

// RootContext is the state shared by every recursive expansion belonging
// to one top-level request: the dedup set of queued import URLs, the
// pre-fetch table, the in-flight stylesheet and script collectors, the
// progress counters and the contained failures. Created by the top-level
// call, borrowed by all descendants.
type RootContext struct {
	mu       sync.Mutex
	queued   map[string]struct{}
	prefetch map[string]*future.Future[*document.Document]
	sheets   []pendingLoad
	scripts  []pendingLoad
	failures []Failure
	prog     *Progress
}

func newRootContext(progress *Progress) *RootContext {
	if progress == nil {
		progress = &Progress{}
	}
	progress.loaded.Store(0)
	progress.total.Store(1)
	return &RootContext{
		queued:   make(map[string]struct{}),
		prefetch: make(map[string]*future.Future[*document.Document]),
		prog:     progress,
	}
}

func (r *RootContext) progress() *Progress { return r.prog }

// markQueued adds url to the dedup set, reporting whether it was new. A
// re-seen URL is skipped entirely; this is also the only thing standing
// between an import cycle and infinite recursion.
func (r *RootContext) markQueued(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.queued[url]; ok {
		return false
	}
	r.queued[url] = struct{}{}
	return true
}

func (r *RootContext) storePrefetch(url string, f *future.Future[*document.Document]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefetch[url] = f
}

// takePrefetch removes and returns the pending fetch for url so exactly
// one import group expands it; later takers see nil.
func (r *RootContext) takePrefetch(url string) *future.Future[*document.Document] {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.prefetch[url]
	delete(r.prefetch, url)
	return f
}

func (r *RootContext) addSheet(url string, f *future.Future[struct{}]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sheets = append(r.sheets, pendingLoad{url: url, fut: f})
}

func (r *RootContext) addScript(url string, f *future.Future[struct{}]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, pendingLoad{url: url, fut: f})
}

func (r *RootContext) addFailure(f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
}

func (r *RootContext) takeFailures() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.failures
	r.failures = nil
	return out
}

// settleCollected waits until every collected stylesheet and script load
// across the tree has settled, recording the ones that failed. Only the
// top-level expansion calls this; deferring the wait to the root keeps
// sibling subtrees from serializing on each other's resources.
func (r *RootContext) settleCollected(ctx context.Context) {
	r.mu.Lock()
	pending := make([]pendingLoad, 0, len(r.sheets)+len(r.scripts))
	pending = append(pending, r.sheets...)
	pending = append(pending, r.scripts...)
	r.mu.Unlock()

	for _, p := range pending {
		if _, err := p.fut.Wait(ctx); err != nil {
			log.Printf("html imports: loading %s failed: %v", p.url, err)
			r.addFailure(Failure{URL: p.url, Err: err})
		}
	}
}
