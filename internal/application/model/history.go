package model

import (
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
)

// InitialLabel labels the snapshot a History starts from.
const InitialLabel = "Initial state"

// Errors returned by History.
var (
	ErrNoUndoableState = shared.NewDomainError("history", "Undo", shared.ErrNoUndoableState,
		"There are no commands to undo")
	ErrNoRedoableState = shared.NewDomainError("history", "Redo", shared.ErrNoRedoableState,
		"There are no commands to redo")
)

// HistoryEntry is one snapshot label as shown to users.
type HistoryEntry struct {
	Label   string
	Current bool
}

// History is a linear list of committed snapshots with a cursor. Snapshots are
// cloned on commit and never modified afterwards.
type History struct {
	snapshots []*tutorspet.TutorsPet
	labels    []string
	cursor    int
}

// NewHistory creates a History whose only snapshot is a clone of initial.
func NewHistory(initial *tutorspet.TutorsPet) *History {
	return &History{
		snapshots: []*tutorspet.TutorsPet{initial.Clone()},
		labels:    []string{InitialLabel},
		cursor:    0,
	}
}

// Current returns the snapshot at the cursor. Callers must not modify it.
func (h *History) Current() *tutorspet.TutorsPet {
	return h.snapshots[h.cursor]
}

// Commit discards every snapshot after the cursor, then appends a clone of root
// labelled with message and moves the cursor to it.
func (h *History) Commit(root *tutorspet.TutorsPet, message string) {
	h.snapshots = append(h.snapshots[:h.cursor+1], root.Clone())
	h.labels = append(h.labels[:h.cursor+1], message)
	h.cursor++
}

// CanUndo reports whether there is a snapshot before the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether there is a snapshot after the cursor.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Undo moves the cursor back. It returns the now-current snapshot and the label
// of the snapshot that was undone.
func (h *History) Undo() (*tutorspet.TutorsPet, string, error) {
	if !h.CanUndo() {
		return nil, "", ErrNoUndoableState
	}
	undone := h.labels[h.cursor]
	h.cursor--
	return h.snapshots[h.cursor], undone, nil
}

// Redo moves the cursor forward. It returns the now-current snapshot and its label.
func (h *History) Redo() (*tutorspet.TutorsPet, string, error) {
	if !h.CanRedo() {
		return nil, "", ErrNoRedoableState
	}
	h.cursor++
	return h.snapshots[h.cursor], h.labels[h.cursor], nil
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Cursor returns the position of the current snapshot.
func (h *History) Cursor() int {
	return h.cursor
}

// Entries returns the snapshot labels in order, marking the current one.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.labels))
	for i, l := range h.labels {
		out[i] = HistoryEntry{Label: l, Current: i == h.cursor}
	}
	return out
}
