// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about HTTP requests and pagination behavior.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    observability.SetFetchHooks(&myFetchHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Fetch().OnPage(ctx, dataset, offset, rows)
//	observability.Fetch().OnDone(ctx, dataset, total, reason)
package observability

import (
	"context"
	"sync"
	"time"
)

// TerminationReason identifies why a paginated fetch stopped requesting pages.
type TerminationReason string

const (
	// ReasonLimitReached means the caller's row limit was satisfied.
	ReasonLimitReached TerminationReason = "limit_reached"

	// ReasonShortPage means the API returned fewer rows than requested,
	// signalling the end of the dataset.
	ReasonShortPage TerminationReason = "short_page"

	// ReasonEmptyPage means the API returned zero rows for a page.
	ReasonEmptyPage TerminationReason = "empty_page"

	// ReasonNoData means the very first page matched no records.
	ReasonNoData TerminationReason = "no_data"

	// ReasonZeroLimit means the caller requested zero rows; no request was made.
	ReasonZeroLimit TerminationReason = "zero_limit"
)

// FetchHooks receives events from the paginated fetch loop.
type FetchHooks interface {
	// OnPage records one successfully retrieved page.
	OnPage(ctx context.Context, dataset string, offset, rows int)

	// OnDone records fetch completion with the total row count and why the loop stopped.
	OnDone(ctx context.Context, dataset string, total int, reason TerminationReason)
}

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopFetchHooks is a no-op implementation of FetchHooks.
type NoopFetchHooks struct{}

func (NoopFetchHooks) OnPage(context.Context, string, int, int)               {}
func (NoopFetchHooks) OnDone(context.Context, string, int, TerminationReason) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	fetchHooks FetchHooks = NoopFetchHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetFetchHooks registers custom fetch hooks.
// This should be called once at application startup before any fetch operations.
func SetFetchHooks(h FetchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fetchHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Fetch returns the registered fetch hooks.
func Fetch() FetchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fetchHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	fetchHooks = NoopFetchHooks{}
	httpHooks = NoopHTTPHooks{}
}
