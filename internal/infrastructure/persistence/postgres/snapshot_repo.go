package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/infrastructure/persistence/serialization"
	"github.com/tutorspet/tutorspet/pkg/logger"
	"github.com/tutorspet/tutorspet/pkg/retry"
)

var (
	// ErrSnapshotNotFound is returned when the namespace has no stored revision.
	ErrSnapshotNotFound = shared.NewDomainError("postgres", "Load", shared.ErrStorageNotFound,
		"No snapshot stored")

	// ErrSchemaNotMigrated is returned when the snapshot table does not exist yet.
	ErrSchemaNotMigrated = errors.New("postgres: snapshot table missing, run migrate first")
)

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// SnapshotRepositoryConfig configures a SnapshotRepository.
type SnapshotRepositoryConfig struct {
	// Namespace separates independent data sets in one database.
	Namespace string

	// KeepRevisions is how many revisions survive a save. Zero keeps all.
	KeepRevisions int
}

// DefaultSnapshotRepositoryConfig returns the default configuration.
func DefaultSnapshotRepositoryConfig() SnapshotRepositoryConfig {
	return SnapshotRepositoryConfig{
		Namespace:     "default",
		KeepRevisions: 50,
	}
}

// Revision describes one stored snapshot.
type Revision struct {
	Number           int64
	Fingerprint      string
	StudentCount     int
	ModuleClassCount int
	SavedAt          time.Time
}

// SnapshotRepository is a tutorspet.Repository that appends every changed
// document as a new revision and loads the latest one.
type SnapshotRepository struct {
	conn    *Connection
	config  SnapshotRepositoryConfig
	retrier *retry.Retrier
	log     *logger.Logger

	mu          sync.Mutex
	fingerprint string
}

// NewSnapshotRepository creates a SnapshotRepository.
func NewSnapshotRepository(conn *Connection, config SnapshotRepositoryConfig, log *logger.Logger) *SnapshotRepository {
	if config.Namespace == "" {
		config.Namespace = DefaultSnapshotRepositoryConfig().Namespace
	}
	if config.KeepRevisions < 0 {
		config.KeepRevisions = 0
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(logger.Component("postgres_snapshots"), logger.String("namespace", config.Namespace))
	return &SnapshotRepository{
		conn:   conn,
		config: config,
		retrier: retry.DatabaseRetrier(
			retry.WithRetryIf(IsTransient),
			retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
				log.Warn("retrying database operation",
					logger.Int("attempt", attempt), logger.Duration("delay", delay), logger.Err(err))
			}),
		),
		log: log,
	}
}

// Namespace returns the namespace the repository reads and writes.
func (r *SnapshotRepository) Namespace() string {
	return r.config.Namespace
}

// Load implements tutorspet.Repository by decoding the latest revision.
func (r *SnapshotRepository) Load(ctx context.Context) (*tutorspet.TutorsPet, error) {
	query := `
		SELECT fingerprint, document::text
		FROM tutorspet_snapshots
		WHERE namespace = $1
		ORDER BY revision DESC
		LIMIT 1
	`
	var fingerprint, document string
	err := r.retrier.Do(ctx, func(ctx context.Context) error {
		return r.conn.QueryRow(ctx, query, r.config.Namespace).Scan(&fingerprint, &document)
	})
	if err != nil {
		return nil, r.loadError(err)
	}

	t, err := serialization.Decode([]byte(document))
	if err != nil {
		r.log.Warn("stored document is corrupted", logger.Err(err))
		return nil, err
	}

	r.mu.Lock()
	r.fingerprint = fingerprint
	r.mu.Unlock()

	r.log.Debug("snapshot loaded", logger.Fingerprint(fingerprint))
	return t, nil
}

// LoadRevision decodes a specific revision of the namespace.
func (r *SnapshotRepository) LoadRevision(ctx context.Context, revision int64) (*tutorspet.TutorsPet, error) {
	query := `
		SELECT document::text
		FROM tutorspet_snapshots
		WHERE namespace = $1 AND revision = $2
	`
	var document string
	err := r.retrier.Do(ctx, func(ctx context.Context) error {
		return r.conn.QueryRow(ctx, query, r.config.Namespace, revision).Scan(&document)
	})
	if err != nil {
		return nil, r.loadError(err)
	}
	return serialization.Decode([]byte(document))
}

func (r *SnapshotRepository) loadError(err error) error {
	switch {
	case IsNoRows(err):
		return shared.WrapError(ErrSnapshotNotFound.Domain, ErrSnapshotNotFound.Op,
			shared.ErrStorageNotFound, ErrSnapshotNotFound.Message, err)
	case IsUndefinedTable(err):
		return ErrSchemaNotMigrated
	default:
		return fmt.Errorf("load snapshot: %w", err)
	}
}

// Save implements tutorspet.Repository.
func (r *SnapshotRepository) Save(ctx context.Context, t *tutorspet.TutorsPet) error {
	_, err := r.SaveIfChanged(ctx, t)
	return err
}

// SaveIfChanged implements tutorspet.ChangeTracker. A changed document is
// appended as a new revision and revisions beyond KeepRevisions are pruned in
// the same transaction.
func (r *SnapshotRepository) SaveIfChanged(ctx context.Context, t *tutorspet.TutorsPet) (bool, error) {
	if t == nil {
		return false, shared.NullArgument("postgres", "Save", "tutors pet")
	}

	data, err := serialization.Encode(t)
	if err != nil {
		return false, err
	}
	sum := serialization.Fingerprint(data)

	r.mu.Lock()
	defer r.mu.Unlock()

	if sum == r.fingerprint {
		r.log.Debug("snapshot unchanged, write skipped", logger.Fingerprint(sum))
		return false, nil
	}

	var revision int64
	err = r.retrier.Do(ctx, func(ctx context.Context) error {
		return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
			insert := `
				INSERT INTO tutorspet_snapshots (namespace, fingerprint, document, student_count, module_class_count)
				VALUES ($1, $2, $3::jsonb, $4, $5)
				RETURNING revision
			`
			if err := tx.QueryRow(ctx, insert,
				r.config.Namespace, sum, string(data),
				t.Students().Len(), t.ModuleClasses().Len(),
			).Scan(&revision); err != nil {
				return err
			}
			return r.prune(ctx, tx)
		})
	})
	if err != nil {
		if IsUndefinedTable(err) {
			return false, ErrSchemaNotMigrated
		}
		return false, fmt.Errorf("save snapshot: %w", err)
	}

	r.fingerprint = sum
	r.log.Debug("snapshot saved", logger.Fingerprint(sum), logger.Int64("revision", revision))
	return true, nil
}

func (r *SnapshotRepository) prune(ctx context.Context, tx pgx.Tx) error {
	if r.config.KeepRevisions == 0 {
		return nil
	}
	query := `
		DELETE FROM tutorspet_snapshots
		WHERE namespace = $1 AND revision NOT IN (
			SELECT revision FROM tutorspet_snapshots
			WHERE namespace = $1
			ORDER BY revision DESC
			LIMIT $2
		)
	`
	_, err := tx.Exec(ctx, query, r.config.Namespace, r.config.KeepRevisions)
	return err
}

// Revisions lists the newest revisions of the namespace, newest first.
func (r *SnapshotRepository) Revisions(ctx context.Context, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT revision, fingerprint, student_count, module_class_count, saved_at
		FROM tutorspet_snapshots
		WHERE namespace = $1
		ORDER BY revision DESC
		LIMIT $2
	`
	return retry.DoWithData(ctx, r.retrier, func(ctx context.Context) ([]Revision, error) {
		rows, err := r.conn.Query(ctx, query, r.config.Namespace, limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var revisions []Revision
		for rows.Next() {
			var rev Revision
			if err := rows.Scan(&rev.Number, &rev.Fingerprint, &rev.StudentCount, &rev.ModuleClassCount, &rev.SavedAt); err != nil {
				return nil, fmt.Errorf("scan revision: %w", err)
			}
			revisions = append(revisions, rev)
		}
		return revisions, rows.Err()
	})
}
