package eventhandler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/testutil"
)

type memoryRepo struct {
	saved []*tutorspet.TutorsPet
	err   error
}

func (r *memoryRepo) Load(context.Context) (*tutorspet.TutorsPet, error) {
	if len(r.saved) == 0 {
		return nil, shared.ErrStorageNotFound
	}
	return r.saved[len(r.saved)-1], nil
}

func (r *memoryRepo) Save(_ context.Context, t *tutorspet.TutorsPet) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, t)
	return nil
}

type trackingRepo struct {
	memoryRepo
}

func (r *trackingRepo) SaveIfChanged(ctx context.Context, t *tutorspet.TutorsPet) (bool, error) {
	if n := len(r.saved); n > 0 && r.saved[n-1].Equal(t) {
		return false, nil
	}
	return true, r.Save(ctx, t)
}

type recordingPublisher struct {
	events []shared.Event
}

func (p *recordingPublisher) Publish(e shared.Event) error {
	p.events = append(p.events, e)
	return nil
}

func TestOnStateChanged_SavesSnapshot(t *testing.T) {
	repo := &memoryRepo{}
	pub := &recordingPublisher{}
	h := NewOnStateChangedHandler(repo, pub, nil, DefaultStateChangedConfig())

	snapshot := testutil.TypicalTutorsPet()
	require.NoError(t, h.Handle(tutorspet.NewStateChangedEvent(tutorspet.ReasonCommit, "added", snapshot)))

	require.Len(t, repo.saved, 1)
	assert.Same(t, snapshot, repo.saved[0])
	require.Len(t, pub.events, 1)
	saved, ok := pub.events[0].(*tutorspet.StorageSavedEvent)
	require.True(t, ok)
	assert.False(t, saved.Skipped)
}

func TestOnStateChanged_SkipsUnchangedSnapshot(t *testing.T) {
	repo := &trackingRepo{}
	pub := &recordingPublisher{}
	h := NewOnStateChangedHandler(repo, pub, nil, StateChangedConfig{})

	require.NoError(t, h.Handle(tutorspet.NewStateChangedEvent(tutorspet.ReasonCommit, "a", testutil.TypicalTutorsPet())))
	require.NoError(t, h.Handle(tutorspet.NewStateChangedEvent(tutorspet.ReasonRedo, "a", testutil.TypicalTutorsPet())))

	assert.Len(t, repo.saved, 1)
	require.Len(t, pub.events, 2)
	assert.True(t, pub.events[1].(*tutorspet.StorageSavedEvent).Skipped)
}

func TestOnStateChanged_SaveError(t *testing.T) {
	boom := errors.New("read-only file system")
	pub := &recordingPublisher{}
	h := NewOnStateChangedHandler(&memoryRepo{err: boom}, pub, nil, DefaultStateChangedConfig())

	err := h.Handle(tutorspet.NewStateChangedEvent(tutorspet.ReasonUndo, "x", tutorspet.New()))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "autosave after undo")
	assert.Empty(t, pub.events)
}

func TestOnStateChanged_IgnoresOtherEvents(t *testing.T) {
	repo := &memoryRepo{}
	h := NewOnStateChangedHandler(repo, nil, nil, DefaultStateChangedConfig())

	assert.NoError(t, h.Handle(tutorspet.NewStorageSavedEvent(false)))
	assert.Empty(t, repo.saved)
}
