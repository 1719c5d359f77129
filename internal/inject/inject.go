// Package inject provides the resource-injection collaborators: the engine
// initiates script and stylesheet loads through an Injector and observes
// completion through the returned futures.
package inject

import (
	"context"

	"github.com/AshleyScirra/html-imports-polyfill/internal/future"
)

// Injector is the host's element-instantiation primitive. Script must
// preserve insertion-order execution semantics: scripts injected earlier
// run before scripts injected later, regardless of byte arrival order.
type Injector interface {
	Script(ctx context.Context, url string) *future.Future[struct{}]
	Stylesheet(ctx context.Context, url string) *future.Future[struct{}]

	// CurrentScript reports the URL of the script whose handler is running
	// right now, or "" outside any script. The document.currentScript
	// equivalent.
	CurrentScript() string
}
