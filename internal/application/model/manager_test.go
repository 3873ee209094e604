package model

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/testutil"
	"github.com/tutorspet/tutorspet/pkg/logger"
)

type recordingPublisher struct {
	events []shared.Event
	err    error
}

func (p *recordingPublisher) Publish(e shared.Event) error {
	p.events = append(p.events, e)
	return p.err
}

type execFunc func(m Model) (Result, error)

func (f execFunc) Execute(m Model) (Result, error) { return f(m) }

func addStudent(name string) execFunc {
	return func(m Model) (Result, error) {
		if err := m.TutorsPet().AddStudent(testutil.NewStudentBuilder().WithName(name).Build()); err != nil {
			return Result{}, err
		}
		m.Commit("add " + name)
		return Result{Feedback: "add " + name}, nil
	}
}

func TestManager_FailedCommandLeavesStateUntouched(t *testing.T) {
	m := NewManager(testutil.TypicalTutorsPet())
	before := m.Snapshot()

	boom := errors.New("boom")
	_, err := m.Execute(execFunc(func(m Model) (Result, error) {
		m.TutorsPet().ClearStudents()
		return Result{}, boom
	}))
	require.ErrorIs(t, err, boom)

	assert.True(t, before.Equal(m.TutorsPet()))
	assert.True(t, before.Equal(m.Snapshot()))
	assert.Len(t, m.History(), 1)
}

func TestManager_UndoRedoRestoreState(t *testing.T) {
	pub := &recordingPublisher{}
	m := NewManager(tutorspet.New(), WithPublisher(pub))

	_, err := m.Execute(addStudent("Amy"))
	require.NoError(t, err)
	afterAmy := m.Snapshot()
	_, err = m.Execute(addStudent("Bob"))
	require.NoError(t, err)

	label, err := m.Undo()
	require.NoError(t, err)
	assert.Equal(t, "add Bob", label)
	assert.True(t, afterAmy.Equal(m.TutorsPet()))
	assert.True(t, m.CanRedo())

	_, err = m.Redo()
	require.NoError(t, err)
	assert.Equal(t, 2, m.Current().Students().Len())

	require.Len(t, pub.events, 4)
	reasons := make([]string, 0, len(pub.events))
	for _, e := range pub.events {
		sc, ok := e.(*tutorspet.StateChangedEvent)
		require.True(t, ok)
		reasons = append(reasons, sc.Reason)
	}
	assert.Equal(t, []string{
		tutorspet.ReasonCommit, tutorspet.ReasonCommit, tutorspet.ReasonUndo, tutorspet.ReasonRedo,
	}, reasons)
}

func TestManager_PublisherErrorDoesNotFailCommand(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf, Level: logger.LevelDebug})
	pub := &recordingPublisher{err: errors.New("disk full")}
	m := NewManager(nil, WithPublisher(pub), WithLogger(log))

	_, err := m.Execute(addStudent("Amy"))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Current().Students().Len())
	assert.Contains(t, buf.String(), "state change handler failed")
	assert.Contains(t, buf.String(), "command executed")
}

func TestManager_Filters(t *testing.T) {
	m := NewManager(testutil.TypicalTutorsPet())

	assert.ErrorIs(t, m.UpdateFilteredStudentList(nil), shared.ErrNullArgument)
	assert.ErrorIs(t, m.UpdateFilteredModuleClassList(nil), shared.ErrNullArgument)

	require.NoError(t, m.UpdateFilteredStudentList(student.NameContainsKeywords("alice", "benson")))
	assert.Len(t, m.FilteredStudentList(), 2)

	require.NoError(t, m.UpdateFilteredModuleClassList(moduleclass.NameContainsKeywords("Lab")))
	require.Len(t, m.FilteredModuleClassList(), 1)
	assert.Equal(t, shared.Name("CS2100 Lab"), m.FilteredModuleClassList()[0].Name())

	// Filtered lists follow the working state.
	m.TutorsPet().ClearModuleClasses()
	assert.Empty(t, m.FilteredModuleClassList())
}
