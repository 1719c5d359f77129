package origin

import (
	"errors"
	"testing"

	"github.com/AshleyScirra/html-imports-polyfill/internal/document"
	"github.com/AshleyScirra/html-imports-polyfill/internal/tester"
)

func TestRecordAndLookup(t *testing.T) {
	r := NewRegistry()
	a := document.Main("a.html")
	r.Record("app/x.js", a)

	got, err := r.Lookup("app/x.js")
	tester.NoErr(t, err)
	tester.True(t, got == a, "expected the recording document")
	tester.Eq(t, r.Len(), 1)
}

func TestLookupUnmapped(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("missing.js")
	tester.True(t, errors.Is(err, ErrUnmapped), "expected ErrUnmapped")
}

func TestFirstWriterWins(t *testing.T) {
	r := NewRegistry()
	a := document.Main("a.html")
	b := document.Main("b.html")
	r.Record("shared.js", a)
	r.Record("shared.js", b)

	got, err := r.Lookup("shared.js")
	tester.NoErr(t, err)
	tester.True(t, got == a, "second Record must not replace the first")
}
