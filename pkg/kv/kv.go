// Package kv is the key-value persistence boundary used by the stores.
// Values are opaque strings; callers own the encoding.
package kv

import "context"

// Store is a synchronous string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Closer is implemented by stores holding an underlying file or connection.
type Closer interface {
	Close() error
}
