package redis

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/infrastructure/persistence/serialization"
	"github.com/tutorspet/tutorspet/internal/testutil"
	"github.com/tutorspet/tutorspet/pkg/circuitbreaker"
	"github.com/tutorspet/tutorspet/pkg/logger"
)

type fakeStore struct {
	data        []byte
	fingerprint string
	getErr      error
	setErr      error
	sets        int
	invalidated int
}

func (s *fakeStore) Get(context.Context) ([]byte, string, error) {
	if s.getErr != nil {
		return nil, "", s.getErr
	}
	if s.data == nil {
		return nil, "", ErrCacheMiss
	}
	return s.data, s.fingerprint, nil
}

func (s *fakeStore) Set(_ context.Context, data []byte, fingerprint string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.sets++
	s.data, s.fingerprint = data, fingerprint
	return nil
}

func (s *fakeStore) Invalidate(context.Context) error {
	s.invalidated++
	s.data, s.fingerprint = nil, ""
	return nil
}

type fakeRepo struct {
	stored *tutorspet.TutorsPet
	loads  int
	saves  int
}

func (r *fakeRepo) Load(context.Context) (*tutorspet.TutorsPet, error) {
	r.loads++
	if r.stored == nil {
		return nil, shared.ErrStorageNotFound
	}
	return r.stored.Clone(), nil
}

func (r *fakeRepo) Save(_ context.Context, t *tutorspet.TutorsPet) error {
	r.saves++
	r.stored = t.Clone()
	return nil
}

func TestCachedRepository_LoadFillsAndServesCache(t *testing.T) {
	repo := &fakeRepo{stored: testutil.TypicalTutorsPet()}
	store := &fakeStore{}
	cached := NewCachedRepository(repo, store, nil)
	ctx := context.Background()

	first, err := cached.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.loads)
	assert.Equal(t, 1, store.sets)

	second, err := cached.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.loads, "second load is served from cache")
	assert.True(t, first.Equal(second))
}

func TestCachedRepository_NotFoundPassesThrough(t *testing.T) {
	cached := NewCachedRepository(&fakeRepo{}, &fakeStore{}, nil)
	_, err := cached.Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrStorageNotFound)
}

func TestCachedRepository_BadCacheFallsBack(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{stored: testutil.TypicalTutorsPet()}

	data, err := serialization.Encode(tutorspet.New())
	require.NoError(t, err)
	store := &fakeStore{data: data, fingerprint: "stale"}

	loaded, err := NewCachedRepository(repo, store, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Students().Len())
	assert.Equal(t, 1, store.invalidated)

	corrupt := []byte(`{"students":[{"uuid":"x"}]}`)
	store = &fakeStore{data: corrupt, fingerprint: serialization.Fingerprint(corrupt)}
	_, err = NewCachedRepository(repo, store, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.invalidated)
}

func TestCachedRepository_CacheErrorsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf, Level: logger.LevelWarn, Format: logger.FormatJSON})
	repo := &fakeRepo{stored: testutil.TypicalTutorsPet()}
	store := &fakeStore{getErr: errors.New("connection refused"), setErr: errors.New("connection refused")}

	_, err := NewCachedRepository(repo, store, log).Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "cache read failed")
	assert.Contains(t, buf.String(), "cache write failed")
}

func TestCachedRepository_RejectedCallsAreQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf, Level: logger.LevelWarn, Format: logger.FormatJSON})
	repo := &fakeRepo{stored: testutil.TypicalTutorsPet()}
	store := &fakeStore{getErr: circuitbreaker.ErrCircuitOpen, setErr: circuitbreaker.ErrCircuitOpen}

	loaded, err := NewCachedRepository(repo, store, log).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Students().Len())
	assert.Empty(t, buf.String())
}

func TestCachedRepository_SaveWritesThrough(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	store := &fakeStore{}
	cached := NewCachedRepository(repo, store, nil)

	wrote, err := cached.SaveIfChanged(ctx, testutil.TypicalTutorsPet())
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, 1, store.sets)

	assert.ErrorIs(t, cached.Save(ctx, nil), shared.ErrNullArgument)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "tutorspet:snapshot:default", SnapshotKey("default"))
	assert.Equal(t, "tutorspet:snapshot:default:fingerprint", FingerprintKey("default"))
}
