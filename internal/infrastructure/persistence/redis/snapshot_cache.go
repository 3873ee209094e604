package redis

import (
	"context"
	"errors"
	"time"

	"github.com/tutorspet/tutorspet/pkg/circuitbreaker"
	"github.com/tutorspet/tutorspet/pkg/retry"
)

// SnapshotStore holds one encoded document and its fingerprint.
type SnapshotStore interface {
	// Get returns the cached document and fingerprint, or ErrCacheMiss.
	Get(ctx context.Context) (data []byte, fingerprint string, err error)

	// Set replaces the cached document.
	Set(ctx context.Context, data []byte, fingerprint string) error

	// Invalidate drops the cached document.
	Invalidate(ctx context.Context) error
}

// SnapshotCache is the Redis implementation of SnapshotStore. Once Redis keeps
// failing, the breaker opens and calls fail fast with circuitbreaker.ErrCircuitOpen.
type SnapshotCache struct {
	cache   *Cache
	key     string
	fpKey   string
	ttl     time.Duration
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker
}

// NewSnapshotCache creates a SnapshotCache using the namespace and TTL of the
// cache's configuration. breaker may be nil.
func NewSnapshotCache(cache *Cache, breaker *circuitbreaker.CircuitBreaker) *SnapshotCache {
	cfg := cache.Config()
	return &SnapshotCache{
		cache:   cache,
		key:     SnapshotKey(cfg.Namespace),
		fpKey:   FingerprintKey(cfg.Namespace),
		ttl:     cfg.TTL,
		retrier: retry.CacheRetrier(retry.WithRetryIf(isTransient)),
		breaker: breaker,
	}
}

func (s *SnapshotCache) guard(ctx context.Context, fn func(context.Context) error) error {
	if s.breaker == nil {
		return s.retrier.Do(ctx, fn)
	}
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.retrier.Do(ctx, fn)
	})
}

// IsCacheFailure reports whether err should count against the breaker. Misses
// and cancellations do not.
func IsCacheFailure(err error) bool {
	return isTransient(err)
}

func isTransient(err error) bool {
	return !errors.Is(err, ErrCacheMiss) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

// Get implements SnapshotStore.
func (s *SnapshotCache) Get(ctx context.Context) ([]byte, string, error) {
	var data, fingerprint string
	err := s.guard(ctx, func(ctx context.Context) error {
		var err error
		if data, err = s.cache.GetString(ctx, s.key); err != nil {
			return err
		}
		fingerprint, err = s.cache.GetString(ctx, s.fpKey)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return []byte(data), fingerprint, nil
}

// Set implements SnapshotStore.
func (s *SnapshotCache) Set(ctx context.Context, data []byte, fingerprint string) error {
	return s.guard(ctx, func(ctx context.Context) error {
		return s.cache.SetPair(ctx, s.key, string(data), s.fpKey, fingerprint, s.ttl)
	})
}

// Invalidate implements SnapshotStore.
func (s *SnapshotCache) Invalidate(ctx context.Context) error {
	return s.guard(ctx, func(ctx context.Context) error {
		return s.cache.Delete(ctx, s.key, s.fpKey)
	})
}
