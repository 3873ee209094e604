package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MANAGER
// ══════════════════════════════════════════════════════════════════════════════

// Manager implements Model on top of a History. Commands run against a working
// clone of the current snapshot; the clone is thrown away when a command fails.
type Manager struct {
	history       *History
	working       *tutorspet.TutorsPet
	studentFilter student.Predicate
	classFilter   moduleclass.Predicate
	publisher     shared.EventPublisher
	log           *logger.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithPublisher sets where StateChangedEvents are published.
func WithPublisher(p shared.EventPublisher) Option {
	return func(m *Manager) { m.publisher = p }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager creates a Manager whose history starts at initial.
// A nil initial starts from an empty aggregate.
func NewManager(initial *tutorspet.TutorsPet, opts ...Option) *Manager {
	if initial == nil {
		initial = tutorspet.New()
	}
	m := &Manager{
		history:       NewHistory(initial),
		studentFilter: student.ShowAll,
		classFilter:   moduleclass.ShowAll,
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.working = m.history.Current().Clone()
	m.log = m.log.With(logger.Component("model"))
	return m
}

// Execute runs cmd. On failure the working state is reset to the current
// snapshot, so a failing command never leaves partial changes behind.
func (m *Manager) Execute(cmd Executable) (Result, error) {
	start := time.Now()
	name := commandName(cmd)

	res, err := cmd.Execute(m)
	if err != nil {
		m.working = m.history.Current().Clone()
		m.log.Debug("command failed",
			logger.Command(name),
			logger.Err(err),
			logger.Latency(time.Since(start)),
		)
		return Result{}, err
	}

	m.log.Info("command executed",
		logger.Command(name),
		logger.Feedback(res.Feedback),
		logger.HistoryCursor(m.history.Cursor()),
		logger.Latency(time.Since(start)),
	)
	return res, nil
}

func commandName(cmd Executable) string {
	name := fmt.Sprintf("%T", cmd)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// ─────────────────────────────────────────────────────────────────────────────
// Model implementation
// ─────────────────────────────────────────────────────────────────────────────

// TutorsPet implements Model.
func (m *Manager) TutorsPet() *tutorspet.TutorsPet {
	return m.working
}

// FilteredStudentList implements Model.
func (m *Manager) FilteredStudentList() []student.Student {
	all := m.working.Students().Items()
	out := make([]student.Student, 0, len(all))
	for _, s := range all {
		if m.studentFilter(s) {
			out = append(out, s)
		}
	}
	return out
}

// UpdateFilteredStudentList implements Model.
func (m *Manager) UpdateFilteredStudentList(pred student.Predicate) error {
	if pred == nil {
		return shared.NullArgument("model", "UpdateFilteredStudentList", "predicate")
	}
	m.studentFilter = pred
	return nil
}

// FilteredModuleClassList implements Model.
func (m *Manager) FilteredModuleClassList() []moduleclass.ModuleClass {
	all := m.working.ModuleClasses().Items()
	out := make([]moduleclass.ModuleClass, 0, len(all))
	for _, c := range all {
		if m.classFilter(c) {
			out = append(out, c)
		}
	}
	return out
}

// UpdateFilteredModuleClassList implements Model.
func (m *Manager) UpdateFilteredModuleClassList(pred moduleclass.Predicate) error {
	if pred == nil {
		return shared.NullArgument("model", "UpdateFilteredModuleClassList", "predicate")
	}
	m.classFilter = pred
	return nil
}

// Commit implements Model.
func (m *Manager) Commit(message string) {
	m.history.Commit(m.working, message)
	m.publish(tutorspet.ReasonCommit, message)
}

// Undo implements Model.
func (m *Manager) Undo() (string, error) {
	snapshot, label, err := m.history.Undo()
	if err != nil {
		return "", err
	}
	m.working = snapshot.Clone()
	m.publish(tutorspet.ReasonUndo, label)
	return label, nil
}

// Redo implements Model.
func (m *Manager) Redo() (string, error) {
	snapshot, label, err := m.history.Redo()
	if err != nil {
		return "", err
	}
	m.working = snapshot.Clone()
	m.publish(tutorspet.ReasonRedo, label)
	return label, nil
}

func (m *Manager) publish(reason, label string) {
	if m.publisher == nil {
		return
	}
	event := tutorspet.NewStateChangedEvent(reason, label, m.history.Current())
	if err := m.publisher.Publish(event); err != nil {
		m.log.Warn("state change handler failed",
			logger.String("reason", reason),
			logger.Err(err),
		)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Read access
// ─────────────────────────────────────────────────────────────────────────────

// Current returns the committed snapshot at the history cursor. Callers must not modify it.
func (m *Manager) Current() tutorspet.ReadOnlyTutorsPet {
	return m.history.Current()
}

// Snapshot returns an independent copy of the committed state, for persistence.
func (m *Manager) Snapshot() *tutorspet.TutorsPet {
	return m.history.Current().Clone()
}

// History returns the labels of every snapshot, marking the current one.
func (m *Manager) History() []HistoryEntry {
	return m.history.Entries()
}

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool {
	return m.history.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (m *Manager) CanRedo() bool {
	return m.history.CanRedo()
}
