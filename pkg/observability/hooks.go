// Package observability lets a host receive events about document loading,
// rendering, caching and outgoing HTTP without the libraries depending on a
// metrics or tracing backend.
//
// Hooks are registered once at startup; libraries fetch the current hooks on
// every event:
//
//	observability.NewLogHooks(logger).Register()
//
//	observability.Pipeline().OnLoadStart(ctx, ref)
//	// ... fetch ...
//	observability.Pipeline().OnLoadComplete(ctx, ref, len(data), time.Since(start), err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, ref string)
	OnLoadComplete(ctx context.Context, ref string, size int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, ref string, formats []string)
	OnRenderComplete(ctx context.Context, ref string, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. keyType is "document" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from outgoing HTTP requests. OnError means no
// response arrived.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// Noop implements every hook interface and ignores all events. Embed it to
// implement only the events you care about.
type Noop struct{}

func (Noop) OnLoadStart(context.Context, string)                                      {}
func (Noop) OnLoadComplete(context.Context, string, int, time.Duration, error)        {}
func (Noop) OnRenderStart(context.Context, string, []string)                          {}
func (Noop) OnRenderComplete(context.Context, string, []string, time.Duration, error) {}
func (Noop) OnCacheHit(context.Context, string)                                       {}
func (Noop) OnCacheMiss(context.Context, string)                                      {}
func (Noop) OnCacheSet(context.Context, string, int)                                  {}
func (Noop) OnRequest(context.Context, string, string, string)                        {}
func (Noop) OnResponse(context.Context, string, string, string, int, time.Duration)   {}
func (Noop) OnError(context.Context, string, string, string, error)                   {}

// slot holds one registered hook; an empty slot reads as Noop.
type slot[T any] struct{ p atomic.Pointer[T] }

func (s *slot[T]) load() T {
	if p := s.p.Load(); p != nil {
		return *p
	}
	return any(Noop{}).(T)
}

func (s *slot[T]) store(h T) {
	if any(h) != nil {
		s.p.Store(&h)
	}
}

var (
	pipelineSlot slot[PipelineHooks]
	cacheSlot    slot[CacheHooks]
	httpSlot     slot[HTTPHooks]
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.store(h) }

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.store(h) }

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.store(h) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.load() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.load() }

// Reset drops every registered hook.
func Reset() {
	pipelineSlot.p.Store(nil)
	cacheSlot.p.Store(nil)
	httpSlot.p.Store(nil)
}
