package tutorspet

import (
	"github.com/tutorspet/tutorspet/internal/domain/shared"
)

// AggregateID identifies the single aggregate in events and storage.
const AggregateID = "tutorspet"

// Reasons a snapshot became current.
const (
	ReasonCommit = "commit"
	ReasonUndo   = "undo"
	ReasonRedo   = "redo"
)

// StateChangedEvent is published once every time a new snapshot becomes current.
type StateChangedEvent struct {
	shared.BaseEvent

	// Reason is one of ReasonCommit, ReasonUndo and ReasonRedo.
	Reason string

	// Label is the message of the command that produced the snapshot, or of the
	// undone or redone command.
	Label string

	// Snapshot is the now-current state. Subscribers must not modify it.
	Snapshot *TutorsPet
}

// NewStateChangedEvent creates a StateChangedEvent.
func NewStateChangedEvent(reason, label string, snapshot *TutorsPet) *StateChangedEvent {
	return &StateChangedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventStateChanged, AggregateID),
		Reason:    reason,
		Label:     label,
		Snapshot:  snapshot,
	}
}

// Payload implements shared.Event.
func (e *StateChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"reason":         e.Reason,
		"label":          e.Label,
		"students":       e.Snapshot.Students().Len(),
		"module_classes": e.Snapshot.ModuleClasses().Len(),
	}
}

// StorageSavedEvent is published after the current snapshot was persisted.
type StorageSavedEvent struct {
	shared.BaseEvent

	// Skipped is true when the store already held an identical snapshot.
	Skipped bool
}

// NewStorageSavedEvent creates a StorageSavedEvent.
func NewStorageSavedEvent(skipped bool) *StorageSavedEvent {
	return &StorageSavedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventStorageSaved, AggregateID),
		Skipped:   skipped,
	}
}

// Payload implements shared.Event.
func (e *StorageSavedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"skipped": e.Skipped}
}
