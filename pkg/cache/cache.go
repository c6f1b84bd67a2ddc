// Package cache stores converted documents between runs.
//
// A [Cache] is a plain byte store with per-entry TTLs. Keys are produced by a
// [Keyer] so that the same document converted with the same options maps to
// the same entry regardless of which backend holds it:
//
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: caching disabled
//
// Usage:
//
//	c, err := cache.NewFileCache(dir)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	key := cache.NewDefaultKeyer().DocumentKey(cache.Hash(data), opts)
//	if html, hit, _ := c.Get(ctx, key); hit {
//	    return html, nil
//	}
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the value for key. A miss is reported as hit == false
	// with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLDocument is the lifetime of converted HTML.
const TTLDocument = 7 * 24 * time.Hour

// DocumentKeyOpts are the conversion options that change the rendered HTML.
type DocumentKeyOpts struct {
	Stacking string `json:"stacking"`
	Order    string `json:"order"`
	Links    string `json:"links"`
	Indent   int    `json:"indent"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DocumentKey is the key of the HTML converted from a document.
	DocumentKey(docHash string, opts DocumentKeyOpts) string
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey implements [Keyer].
func (DefaultKeyer) DocumentKey(docHash string, opts DocumentKeyOpts) string {
	return hashKey("document", docHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer, giving callers that
// share one backend their own namespace.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (the default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DocumentKey implements [Keyer].
func (k *ScopedKeyer) DocumentKey(docHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(docHash, opts)
}

// Open returns the backend selected by url: "" for a [FileCache] in dir,
// "none" for a [NullCache], and a redis:// or rediss:// URL for a
// [RedisCache].
func Open(ctx context.Context, url, dir string) (Cache, error) {
	switch {
	case url == "":
		return NewFileCache(dir)
	case url == "none":
		return NewNullCache(), nil
	case isRedisURL(url):
		return NewRedisCache(ctx, url)
	default:
		return nil, fmt.Errorf("unsupported cache url %q", url)
	}
}
