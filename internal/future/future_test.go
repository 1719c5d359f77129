package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AshleyScirra/html-imports-polyfill/internal/tester"
)

func TestResolveOnce(t *testing.T) {
	f := New[int]()
	f.Resolve(1)
	f.Resolve(2)
	f.Fail(errors.New("late"))

	v, err := f.Wait(context.Background())
	tester.NoErr(t, err)
	tester.Eq(t, v, 1)
	tester.True(t, f.Settled(), "future should be settled")
}

func TestFail(t *testing.T) {
	boom := errors.New("boom")
	f := Failed[string](boom)
	_, err := f.Wait(context.Background())
	tester.True(t, errors.Is(err, boom), "expected boom")
}

func TestGo(t *testing.T) {
	f := Go(func() (string, error) { return "ok", nil })
	v, err := f.Wait(context.Background())
	tester.NoErr(t, err)
	tester.Eq(t, v, "ok")
}

func TestWaitHonorsContext(t *testing.T) {
	f := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Wait(ctx)
	tester.True(t, errors.Is(err, context.DeadlineExceeded), "expected deadline error")
}

func TestWaitAllCollectsFailures(t *testing.T) {
	fs := []*Future[int]{
		Resolved(1),
		Failed[int](errors.New("a")),
		Failed[int](errors.New("b")),
	}
	errs := WaitAll(context.Background(), fs)
	tester.Len(t, errs, 2)
}
