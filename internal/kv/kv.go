package kv

import "context"

// Store is a durable, synchronous key-value adapter over string keys and
// values. Backends are swappable; the storage service is the only caller.
type Store interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Contains(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context) ([]string, error)
}
