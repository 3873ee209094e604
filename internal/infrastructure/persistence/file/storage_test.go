package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/testutil"
)

var _ tutorspet.Repository = (*Storage)(nil)
var _ tutorspet.ChangeTracker = (*Storage)(nil)

func TestStorage_LoadMissingFile(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "tutorspet.json"), nil)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrStorageNotFound)
	assert.False(t, shared.IsStorageCorrupted(err))
}

func TestStorage_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tutorspet.json")
	s := NewStorage(path, nil)
	ctx := context.Background()
	original := testutil.TypicalTutorsPet()

	require.NoError(t, s.Save(ctx, original))

	loaded, err := NewStorage(path, nil).Load(ctx)
	require.NoError(t, err)
	assert.True(t, original.Equal(loaded))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestStorage_SkipsUnchangedWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutorspet.json")
	s := NewStorage(path, nil)
	ctx := context.Background()
	root := testutil.TypicalTutorsPet()

	wrote, err := s.SaveIfChanged(ctx, root)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = s.SaveIfChanged(ctx, root.Clone())
	require.NoError(t, err)
	assert.False(t, wrote)

	require.NoError(t, root.AddStudent(testutil.Alex()))
	wrote, err = s.SaveIfChanged(ctx, root)
	require.NoError(t, err)
	assert.True(t, wrote)

	fresh := NewStorage(path, nil)
	loaded, err := fresh.Load(ctx)
	require.NoError(t, err)
	wrote, err = fresh.SaveIfChanged(ctx, loaded)
	require.NoError(t, err)
	assert.False(t, wrote, "a loaded document counts as written")
}

func TestStorage_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutorspet.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"students":[{"uuid":"nope"}]}`), 0o644))

	_, err := NewStorage(path, nil).Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrDataConversion)
	assert.False(t, shared.IsNotFound(err))
}

func TestStorage_SaveNil(t *testing.T) {
	err := NewStorage(filepath.Join(t.TempDir(), "x.json"), nil).Save(context.Background(), nil)
	assert.ErrorIs(t, err, shared.ErrNullArgument)
}

func TestStorage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "x.json")
	err := NewStorage(path, nil).Save(ctx, tutorspet.New())
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
