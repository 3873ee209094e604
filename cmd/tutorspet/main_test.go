package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorspet/tutorspet/config"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/infrastructure/persistence/file"
	"github.com/tutorspet/tutorspet/pkg/logger"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("STORAGE_PATH", filepath.Join(dir, "data", "tutorspet.json"))
	t.Setenv("EXPORT_DIR", filepath.Join(dir, "exports"))
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
	return dir
}

func runOK(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), args, &out), out.String())
	return out.String()
}

func TestRun_Workflow(t *testing.T) {
	dir := setupEnv(t)

	assert.Contains(t, runOK(t, "summary"), "6 students, 0 classes")
	_, err := os.Stat(filepath.Join(dir, "data", "tutorspet.json"))
	assert.True(t, os.IsNotExist(err), "reading must not create the data file")

	runOK(t, "add-class", "-name", "CS2103T Tutorial")
	runOK(t, "link", "-class", "1", "-student", "1")
	runOK(t, "add-lesson", "-class", "1", "-day", "MONDAY", "-start", "08:00", "-end", "10:00",
		"-venue", "COM1-0101", "-weeks", "10")
	runOK(t, "attend", "-class", "1", "-lesson", "1", "-student", "1", "-week", "1", "-score", "80")

	stats := runOK(t, "stats", "-class", "1", "-student", "1")
	assert.Contains(t, stats, "Average participation score: 80.00")

	summary := runOK(t, "summary")
	assert.Contains(t, summary, "6 students, 1 classes")
	assert.Contains(t, summary, "CS2103T Tutorial: 1 students, 1 lessons, 1 attendance entries")

	out := filepath.Join(dir, "sheet.xlsx")
	assert.Contains(t, runOK(t, "export", "-class", "CS2103T Tutorial", "-out", out), out)
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestRun_CommandErrors(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer
	ctx := context.Background()

	assert.Error(t, run(ctx, []string{"frobnicate"}, &out))

	err := run(ctx, []string{"link", "-class", "1", "-student", "1"}, &out)
	assert.ErrorIs(t, err, shared.ErrInvalidIndex)

	err = run(ctx, []string{"stats", "-class", "0"}, &out)
	assert.ErrorIs(t, err, errUsage)

	err = run(ctx, []string{"migrate"}, &out)
	assert.ErrorIs(t, err, errNeedsPostgres)
}

func TestRun_Health(t *testing.T) {
	dir := setupEnv(t)

	out := runOK(t, "health")
	assert.Contains(t, out, "storage: file "+filepath.Join(dir, "data", "tutorspet.json")+" (not created yet)")
	assert.Contains(t, out, "cache: disabled")
}

func TestRun_Help(t *testing.T) {
	out := runOK(t)
	assert.Contains(t, out, "usage: tutorspet")
	assert.Contains(t, out, "add-student")
}

func TestLoadInitial(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()
	path := filepath.Join(t.TempDir(), "tutorspet.json")
	repo := file.NewStorage(path, log)

	seeded, err := loadInitial(ctx, repo, config.StorageConfig{SeedSampleData: true}, log)
	require.NoError(t, err)
	assert.Equal(t, 6, seeded.Students().Len())

	empty, err := loadInitial(ctx, repo, config.StorageConfig{}, log)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Students().Len())

	require.NoError(t, os.WriteFile(path, []byte(`{"students": 1}`), 0o600))

	_, err = loadInitial(ctx, repo, config.StorageConfig{Strict: true}, log)
	assert.True(t, shared.IsStorageCorrupted(err))

	lenient, err := loadInitial(ctx, repo, config.StorageConfig{Strict: false, SeedSampleData: true}, log)
	require.NoError(t, err)
	assert.Equal(t, 0, lenient.Students().Len())
}
