package redis

import (
	"context"
	"errors"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/infrastructure/persistence/serialization"
	"github.com/tutorspet/tutorspet/pkg/circuitbreaker"
	"github.com/tutorspet/tutorspet/pkg/logger"
)

// CachedRepository serves loads from a SnapshotStore and falls back to the
// durable repository. Saves always reach the durable repository first. Cache
// failures are logged and never fail an operation.
type CachedRepository struct {
	inner  tutorspet.Repository
	store  SnapshotStore
	logger *logger.Logger
}

// NewCachedRepository wraps inner with store.
func NewCachedRepository(inner tutorspet.Repository, store SnapshotStore, log *logger.Logger) *CachedRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedRepository{
		inner:  inner,
		store:  store,
		logger: log.With(logger.Component("snapshot_cache")),
	}
}

// Load implements tutorspet.Repository.
func (r *CachedRepository) Load(ctx context.Context) (*tutorspet.TutorsPet, error) {
	if t, ok := r.loadCached(ctx); ok {
		return t, nil
	}

	t, err := r.inner.Load(ctx)
	if err != nil {
		return nil, err
	}
	r.fill(ctx, t)
	return t, nil
}

func (r *CachedRepository) loadCached(ctx context.Context) (*tutorspet.TutorsPet, bool) {
	data, fingerprint, err := r.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			r.warn("cache read failed", err)
		}
		return nil, false
	}

	if serialization.Fingerprint(data) != fingerprint {
		r.logger.Warn("cached document does not match its fingerprint")
		r.invalidate(ctx)
		return nil, false
	}

	t, err := serialization.Decode(data)
	if err != nil {
		r.logger.Warn("cached document is corrupted", logger.Err(err))
		r.invalidate(ctx)
		return nil, false
	}

	r.logger.Debug("loaded from cache", logger.Fingerprint(fingerprint))
	return t, true
}

// Save implements tutorspet.Repository.
func (r *CachedRepository) Save(ctx context.Context, t *tutorspet.TutorsPet) error {
	_, err := r.SaveIfChanged(ctx, t)
	return err
}

// SaveIfChanged implements tutorspet.ChangeTracker. The cache is refreshed only
// after the durable write succeeded.
func (r *CachedRepository) SaveIfChanged(ctx context.Context, t *tutorspet.TutorsPet) (bool, error) {
	if t == nil {
		return false, shared.NullArgument("redis", "Save", "tutors pet")
	}

	wrote := true
	if tracker, ok := r.inner.(tutorspet.ChangeTracker); ok {
		var err error
		if wrote, err = tracker.SaveIfChanged(ctx, t); err != nil {
			return false, err
		}
	} else if err := r.inner.Save(ctx, t); err != nil {
		return false, err
	}

	if wrote {
		r.fill(ctx, t)
	}
	return wrote, nil
}

func (r *CachedRepository) fill(ctx context.Context, t *tutorspet.TutorsPet) {
	data, err := serialization.Encode(t)
	if err != nil {
		r.logger.Warn("failed to encode snapshot for cache", logger.Err(err))
		return
	}
	if err := r.store.Set(ctx, data, serialization.Fingerprint(data)); err != nil {
		r.warn("cache write failed", err)
	}
}

func (r *CachedRepository) invalidate(ctx context.Context) {
	if err := r.store.Invalidate(ctx); err != nil {
		r.warn("cache invalidation failed", err)
	}
}

// warn logs a cache failure. While the breaker is open every call is rejected,
// so rejections are logged at debug level only.
func (r *CachedRepository) warn(msg string, err error) {
	if circuitbreaker.IsRejected(err) {
		r.logger.Debug(msg, logger.Err(err))
		return
	}
	r.logger.Warn(msg, logger.Err(err))
}
