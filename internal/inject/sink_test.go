package inject

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AshleyScirra/html-imports-polyfill/internal/future"
	"github.com/AshleyScirra/html-imports-polyfill/internal/tester"
)

// gateFetcher blocks each fetch until its URL is released.
type gateFetcher struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	errs  map[string]error
}

func newGateFetcher(urls ...string) *gateFetcher {
	g := &gateFetcher{gates: make(map[string]chan struct{}), errs: make(map[string]error)}
	for _, u := range urls {
		g.gates[u] = make(chan struct{})
	}
	return g
}

func (g *gateFetcher) release(url string) {
	g.mu.Lock()
	ch := g.gates[url]
	g.mu.Unlock()
	close(ch)
}

func (g *gateFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	g.mu.Lock()
	ch := g.gates[url]
	err := g.errs[url]
	g.mu.Unlock()
	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return []byte(url), nil
}

func TestScriptsExecuteInInsertionOrder(t *testing.T) {
	g := newGateFetcher("a.js", "b.js")
	s := NewSink(g)

	var mu sync.Mutex
	var ran []string
	s.OnScript = func(url string, _ []byte) {
		mu.Lock()
		ran = append(ran, url)
		mu.Unlock()
	}

	ctx := context.Background()
	fa := s.Script(ctx, "a.js")
	fb := s.Script(ctx, "b.js")

	// b's bytes arrive first; it must still run after a.
	g.release("b.js")
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	tester.Len(t, ran, 0, "nothing may execute before a.js arrives")
	mu.Unlock()

	g.release("a.js")
	_, err := fa.Wait(ctx)
	tester.NoErr(t, err)
	_, err = fb.Wait(ctx)
	tester.NoErr(t, err)

	mu.Lock()
	tester.Eq(t, ran, []string{"a.js", "b.js"})
	mu.Unlock()
}

func TestFailedScriptDoesNotStallChain(t *testing.T) {
	g := newGateFetcher("bad.js", "good.js")
	g.errs["bad.js"] = errors.New("load error")
	s := NewSink(g)

	ctx := context.Background()
	fBad := s.Script(ctx, "bad.js")
	fGood := s.Script(ctx, "good.js")
	g.release("bad.js")
	g.release("good.js")

	_, err := fBad.Wait(ctx)
	tester.Err(t, err)
	_, err = fGood.Wait(ctx)
	tester.NoErr(t, err)
}

func TestCurrentScriptDuringExecution(t *testing.T) {
	s := NewSink(newGateFetcher())

	var seen string
	s.OnScript = func(url string, _ []byte) {
		seen = s.CurrentScript()
	}
	_, err := s.Script(context.Background(), "x.js").Wait(context.Background())
	tester.NoErr(t, err)
	tester.Eq(t, seen, "x.js")
	tester.Eq(t, s.CurrentScript(), "")
}

func TestElementsRecordInsertionOrder(t *testing.T) {
	s := NewSink(newGateFetcher())
	ctx := context.Background()

	var fs []*future.Future[struct{}]
	fs = append(fs, s.Stylesheet(ctx, "theme.css"))
	fs = append(fs, s.Script(ctx, "a.js"))
	fs = append(fs, s.Script(ctx, "b.js"))
	tester.Len(t, future.WaitAll(ctx, fs), 0)

	tester.Eq(t, s.Elements(), []Element{
		{Kind: "stylesheet", URL: "theme.css"},
		{Kind: "script", URL: "a.js"},
		{Kind: "script", URL: "b.js"},
	})
}
