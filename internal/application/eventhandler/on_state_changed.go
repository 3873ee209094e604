// Package eventhandler contains reactions to domain events. Handlers run after
// the model has moved to a new snapshot and never change the model themselves.
package eventhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON STATE CHANGED HANDLER
// Persists every snapshot that becomes current, whether it came from a
// command, an undo or a redo.
// ═══════════════════════════════════════════════════════════════════════════

// OnStateChangedHandler saves the current snapshot to a repository.
type OnStateChangedHandler struct {
	repo      tutorspet.Repository
	publisher shared.EventPublisher
	logger    *logger.Logger
	config    StateChangedConfig
}

// StateChangedConfig contains configuration for the handler.
type StateChangedConfig struct {
	// SaveTimeout bounds a single save.
	SaveTimeout time.Duration
}

// DefaultStateChangedConfig returns the default configuration.
func DefaultStateChangedConfig() StateChangedConfig {
	return StateChangedConfig{
		SaveTimeout: 10 * time.Second,
	}
}

// NewOnStateChangedHandler creates the autosave handler. publisher may be nil,
// in which case no StorageSavedEvent is published.
func NewOnStateChangedHandler(
	repo tutorspet.Repository,
	publisher shared.EventPublisher,
	log *logger.Logger,
	config StateChangedConfig,
) *OnStateChangedHandler {
	if log == nil {
		log = logger.Nop()
	}
	if config.SaveTimeout <= 0 {
		config.SaveTimeout = DefaultStateChangedConfig().SaveTimeout
	}

	return &OnStateChangedHandler{
		repo:      repo,
		publisher: publisher,
		logger:    log.With(logger.Component("on_state_changed")),
		config:    config,
	}
}

// Handle implements shared.EventHandler.
func (h *OnStateChangedHandler) Handle(event shared.Event) error {
	changed, ok := event.(*tutorspet.StateChangedEvent)
	if !ok {
		h.logger.Warn("received unexpected event", logger.String("event_type", string(event.EventType())))
		return nil
	}
	if changed.Snapshot == nil {
		return shared.NullArgument("eventhandler", "OnStateChanged", "snapshot")
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.SaveTimeout)
	defer cancel()

	start := time.Now()
	wrote, err := h.save(ctx, changed.Snapshot)
	if err != nil {
		h.logger.Error("autosave failed",
			logger.String("reason", changed.Reason),
			logger.Feedback(changed.Label),
			logger.Err(err),
		)
		return fmt.Errorf("autosave after %s: %w", changed.Reason, err)
	}

	h.logger.Debug("autosave done",
		logger.String("reason", changed.Reason),
		logger.Bool("written", wrote),
		logger.Latency(time.Since(start)),
	)

	if h.publisher != nil {
		if err := h.publisher.Publish(tutorspet.NewStorageSavedEvent(!wrote)); err != nil {
			h.logger.Warn("failed to publish storage saved event", logger.Err(err))
		}
	}
	return nil
}

func (h *OnStateChangedHandler) save(ctx context.Context, snapshot *tutorspet.TutorsPet) (bool, error) {
	if tracker, ok := h.repo.(tutorspet.ChangeTracker); ok {
		return tracker.SaveIfChanged(ctx, snapshot)
	}
	if err := h.repo.Save(ctx, snapshot); err != nil {
		return false, err
	}
	return true, nil
}
