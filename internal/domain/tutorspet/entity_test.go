package tutorspet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/testutil"
)

func TestRemoveStudent_LeavesNoDanglingIDs(t *testing.T) {
	root := testutil.TypicalTutorsPet()

	require.NoError(t, root.RemoveStudent(testutil.Alice()))
	require.NoError(t, root.RemoveStudent(testutil.Benson()))

	for _, m := range root.ModuleClasses().Items() {
		assert.False(t, m.HasStudent(testutil.AliceID))
		assert.False(t, m.HasStudent(testutil.BensonID))
		for _, l := range m.Lessons() {
			assert.False(t, l.AttendanceRecords().ReferencesStudent(testutil.AliceID))
		}
	}
	assert.NoError(t, root.Validate())

	err := root.RemoveStudent(testutil.Alice())
	assert.ErrorIs(t, err, student.ErrStudentNotFound)
}

func TestClone_IsIndependent(t *testing.T) {
	root := testutil.TypicalTutorsPet()
	clone := root.Clone()
	require.True(t, root.Equal(clone))

	require.NoError(t, clone.AddStudent(testutil.Alex()))
	clone.ClearModuleClasses()

	assert.Equal(t, 3, root.Students().Len())
	assert.Equal(t, 2, root.ModuleClasses().Len())
	assert.False(t, root.Equal(clone))
	assert.False(t, root.Equal(nil))
}

func TestFromParts_RejectsInconsistentData(t *testing.T) {
	_, err := tutorspet.FromParts(
		[]student.Student{testutil.Alice(), testutil.NewStudentBuilder().WithName("Alice Pauline").Build()},
		nil,
	)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = tutorspet.FromParts(
		[]student.Student{testutil.Carl()},
		[]moduleclass.ModuleClass{testutil.CS2100Lab()},
	)
	assert.ErrorIs(t, err, tutorspet.ErrUnknownStudentReference)
}

func TestModuleClassContainer(t *testing.T) {
	root := testutil.TypicalTutorsPet()

	err := root.AddModuleClass(testutil.NewModuleClassBuilder().WithName("CS2100 Lab").Build())
	assert.ErrorIs(t, err, moduleclass.ErrDuplicateModuleClass)

	lab := testutil.CS2100Lab()
	renamed := lab.WithName("CS2100 Tutorial")
	require.NoError(t, root.SetModuleClass(lab, renamed))
	assert.True(t, root.HasModuleClass(renamed))
	assert.False(t, root.HasModuleClass(lab))

	require.NoError(t, root.RemoveModuleClass(renamed))
	assert.ErrorIs(t, root.RemoveModuleClass(renamed), moduleclass.ErrModuleClassNotFound)
}

func TestStateChangedEvent_Payload(t *testing.T) {
	e := tutorspet.NewStateChangedEvent(tutorspet.ReasonUndo, "add Amy", testutil.TypicalTutorsPet())
	assert.Equal(t, shared.EventStateChanged, e.EventType())
	assert.Equal(t, tutorspet.AggregateID, e.AggregateID())
	assert.Equal(t, 3, e.Payload()["students"])
	assert.Equal(t, "undo", e.Payload()["reason"])
}
