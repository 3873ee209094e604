package tutorspet

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository loads and saves the whole aggregate.
type Repository interface {
	// Load returns the stored aggregate.
	// Returns an error of kind shared.ErrStorageNotFound when nothing was stored yet,
	// and of kind shared.ErrDataConversion when the stored data is corrupted.
	Load(ctx context.Context) (*TutorsPet, error)

	// Save replaces the stored aggregate with t.
	Save(ctx context.Context, t *TutorsPet) error
}

// ChangeTracker is implemented by repositories that skip writing a snapshot
// identical to the last one they loaded or stored.
type ChangeTracker interface {
	// SaveIfChanged stores t unless it is unchanged and reports whether it wrote.
	SaveIfChanged(ctx context.Context, t *TutorsPet) (bool, error)
}
