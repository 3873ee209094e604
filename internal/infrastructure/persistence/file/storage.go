// Package file stores the aggregate as a JSON document on the local filesystem.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/infrastructure/persistence/serialization"
	"github.com/tutorspet/tutorspet/pkg/logger"
)

// ErrNotFound is returned by Load when no document exists at the storage path.
var ErrNotFound = shared.NewDomainError("file", "Load", shared.ErrStorageNotFound,
	"Data file not found")

// Storage is a file-backed tutorspet.Repository. Writes go to a temporary file
// in the same directory which is then renamed over the document.
type Storage struct {
	path string
	log  *logger.Logger

	mu          sync.Mutex
	fingerprint string
}

// NewStorage creates a Storage for the document at path.
func NewStorage(path string, log *logger.Logger) *Storage {
	if log == nil {
		log = logger.Nop()
	}
	return &Storage{
		path: path,
		log:  log.With(logger.Component("file_storage"), logger.String("path", path)),
	}
}

// Path returns the document path.
func (s *Storage) Path() string {
	return s.path
}

// Load reads and decodes the document.
func (s *Storage) Load(ctx context.Context) (*tutorspet.TutorsPet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, shared.WrapError(ErrNotFound.Domain, ErrNotFound.Op, shared.ErrStorageNotFound, ErrNotFound.Message, err)
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	t, err := serialization.Decode(data)
	if err != nil {
		s.log.Warn("stored document is corrupted", logger.Err(err))
		return nil, err
	}

	s.mu.Lock()
	s.fingerprint = serialization.Fingerprint(data)
	s.mu.Unlock()

	s.log.Debug("document loaded",
		logger.Int("students", t.Students().Len()),
		logger.Int("module_classes", t.ModuleClasses().Len()),
	)
	return t, nil
}

// Save writes t, skipping the write when the document is unchanged.
func (s *Storage) Save(ctx context.Context, t *tutorspet.TutorsPet) error {
	_, err := s.SaveIfChanged(ctx, t)
	return err
}

// SaveIfChanged writes t unless its document matches the last one read or
// written, and reports whether it wrote.
func (s *Storage) SaveIfChanged(ctx context.Context, t *tutorspet.TutorsPet) (bool, error) {
	if t == nil {
		return false, shared.NullArgument("file", "Save", "tutors pet")
	}

	data, err := serialization.Encode(t)
	if err != nil {
		return false, err
	}
	sum := serialization.Fingerprint(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sum == s.fingerprint {
		s.log.Debug("document unchanged, write skipped", logger.Fingerprint(sum))
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := writeAtomic(s.path, data); err != nil {
		return false, err
	}

	s.fingerprint = sum
	s.log.Debug("document saved", logger.Fingerprint(sum), logger.Int("bytes", len(data)))
	return true, nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
