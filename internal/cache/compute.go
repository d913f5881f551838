package cache

import (
	"context"
	"time"
)

// Store is the cache surface used by GetOrCompute.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

// GetOrCompute returns the cached value for key, or runs produce and caches a
// successful result. Cache faults and type mismatches fall through to produce;
// errors from produce are returned and never cached.
func GetOrCompute[T any](ctx context.Context, store Store, key string, ttl time.Duration, produce func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := safeGet(store, key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	val, err := produce(ctx)
	if err != nil {
		return val, err
	}
	safeSet(store, key, val, ttl)
	return val, nil
}

func safeGet(store Store, key string) (v any, ok bool) {
	if store == nil || key == "" {
		return nil, false
	}
	defer func() {
		if r := recover(); r != nil {
			v, ok = nil, false
		}
	}()
	return store.Get(key)
}

func safeSet(store Store, key string, value any, ttl time.Duration) {
	if store == nil || key == "" {
		return
	}
	defer func() {
		_ = recover()
	}()
	store.Set(key, value, ttl)
}
