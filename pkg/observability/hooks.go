// Package observability lets callers observe conversions without the
// library depending on a metrics backend.
//
// Hooks are registered once at startup and read by the pipeline:
//
//	observability.SetConvertHooks(observability.NewLogHooks(logger))
//
//	observability.Convert().OnConvertStart(ctx, name, layers)
//	// ... convert ...
//	observability.Convert().OnConvertComplete(ctx, name, tables, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ConvertHooks receives events from document conversion.
type ConvertHooks interface {
	OnConvertStart(ctx context.Context, document string, layers int)
	OnConvertComplete(ctx context.Context, document string, tables int, duration time.Duration, err error)

	// OnExport reports an asset export run. exporter is the exporter kind.
	OnExport(ctx context.Context, exporter string, assets int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations. keyType is the key
// kind, such as "document".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopConvertHooks ignores every event.
type NoopConvertHooks struct{}

func (NoopConvertHooks) OnConvertStart(context.Context, string, int)                          {}
func (NoopConvertHooks) OnConvertComplete(context.Context, string, int, time.Duration, error) {}
func (NoopConvertHooks) OnExport(context.Context, string, int, time.Duration, error)          {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	convertHooks ConvertHooks = NoopConvertHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetConvertHooks registers conversion hooks. nil is ignored.
func SetConvertHooks(h ConvertHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		convertHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Convert returns the registered conversion hooks.
func Convert() ConvertHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return convertHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	convertHooks = NoopConvertHooks{}
	cacheHooks = NoopCacheHooks{}
}
