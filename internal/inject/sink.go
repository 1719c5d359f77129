package inject

import (
	"context"
	"sync"

	"github.com/AshleyScirra/html-imports-polyfill/internal/fetch"
	"github.com/AshleyScirra/html-imports-polyfill/internal/future"
)

// Element records one injected element in insertion order.
type Element struct {
	Kind string // "script" or "stylesheet"
	URL  string
}

// Sink is the default Injector. It downloads every resource as soon as it
// is injected, but runs script handlers strictly in insertion order by
// chaining each script behind the previously injected one. A failed script
// rejects its own future and the chain moves on, the way a browser keeps
// executing later script tags after one errors.
type Sink struct {
	fetcher fetch.Fetcher

	// OnScript, if set, is invoked with the script's URL and bytes at
	// execution time. CurrentScript is valid for the duration of the call.
	OnScript func(url string, body []byte)

	mu       sync.Mutex
	tail     *future.Future[struct{}]
	elements []Element
	cur      string
}

func NewSink(f fetch.Fetcher) *Sink {
	return &Sink{fetcher: f}
}

func (s *Sink) Script(ctx context.Context, url string) *future.Future[struct{}] {
	loaded := future.New[struct{}]()
	body := future.Go(func() ([]byte, error) {
		return s.fetcher.Fetch(ctx, url)
	})

	s.mu.Lock()
	prev := s.tail
	s.tail = loaded
	s.elements = append(s.elements, Element{Kind: "script", URL: url})
	s.mu.Unlock()

	go func() {
		if prev != nil {
			<-prev.Done()
		}
		b, err := body.Wait(ctx)
		if err != nil {
			loaded.Fail(err)
			return
		}
		s.execute(url, b)
		loaded.Resolve(struct{}{})
	}()
	return loaded
}

func (s *Sink) execute(url string, body []byte) {
	s.mu.Lock()
	s.cur = url
	handler := s.OnScript
	s.mu.Unlock()

	if handler != nil {
		handler(url, body)
	}

	s.mu.Lock()
	s.cur = ""
	s.mu.Unlock()
}

func (s *Sink) Stylesheet(ctx context.Context, url string) *future.Future[struct{}] {
	s.mu.Lock()
	s.elements = append(s.elements, Element{Kind: "stylesheet", URL: url})
	s.mu.Unlock()

	return future.Go(func() (struct{}, error) {
		_, err := s.fetcher.Fetch(ctx, url)
		return struct{}{}, err
	})
}

func (s *Sink) CurrentScript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Elements returns the injected elements in insertion order.
func (s *Sink) Elements() []Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}
