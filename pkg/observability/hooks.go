// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends to the engine. Consumers
// register hooks at startup to receive events about matching, cache
// operations and proof rounds.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [PrometheusHooks] implements every interface on a private registry and
// can write the collected metrics to a node_exporter textfile.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks := observability.NewPrometheusHooks()
//	    observability.SetMatchHooks(hooks)
//	    observability.SetCacheHooks(hooks)
//	    // ... run application
//	    _ = hooks.WriteTextfile("arbor.prom")
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Match().OnMatchStart(ctx, vertices)
//	// ... match ...
//	observability.Match().OnMatchComplete(ctx, vertices, isomorphic, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Match Hooks
// =============================================================================

// MatchHooks receives events from the matching pipeline.
type MatchHooks interface {
	// Load events
	OnLoadComplete(ctx context.Context, path string, vertices, edges int, duration time.Duration, err error)

	// Match events
	OnMatchStart(ctx context.Context, vertices int)
	OnMatchComplete(ctx context.Context, vertices int, isomorphic bool, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Proof Hooks
// =============================================================================

// ProofHooks receives events from proof rounds.
type ProofHooks interface {
	// OnRound records one answered challenge bit.
	OnRound(ctx context.Context, bit uint, accepted bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopMatchHooks is a no-op implementation of MatchHooks.
type NoopMatchHooks struct{}

func (NoopMatchHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {}
func (NoopMatchHooks) OnMatchStart(context.Context, int)                                    {}
func (NoopMatchHooks) OnMatchComplete(context.Context, int, bool, time.Duration, error)     {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopProofHooks is a no-op implementation of ProofHooks.
type NoopProofHooks struct{}

func (NoopProofHooks) OnRound(context.Context, uint, bool) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	matchHooks MatchHooks = NoopMatchHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	proofHooks ProofHooks = NoopProofHooks{}
	hooksMu    sync.RWMutex
)

// SetMatchHooks registers custom match hooks.
// This should be called once at application startup before any matching.
func SetMatchHooks(h MatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		matchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetProofHooks registers custom proof hooks.
func SetProofHooks(h ProofHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		proofHooks = h
	}
}

// Match returns the registered match hooks.
func Match() MatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return matchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Proof returns the registered proof hooks.
func Proof() ProofHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return proofHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	matchHooks = NoopMatchHooks{}
	cacheHooks = NoopCacheHooks{}
	proofHooks = NoopProofHooks{}
}
