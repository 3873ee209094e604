package student_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/testutil"
)

func TestNewStudent_RequiresFields(t *testing.T) {
	_, err := student.NewStudent(student.NewStudentParams{Name: "Amy Bee", Phone: "11111111"})
	assert.ErrorIs(t, err, shared.ErrNullArgument)

	s, err := student.NewStudent(student.NewStudentParams{
		Name:  "Amy Bee",
		Phone: "11111111",
		Email: "amy@example.com",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, s.ID(), "id is generated")
}

func TestStudent_EditKeepsID(t *testing.T) {
	alice := testutil.Alice()
	name := shared.Name("Alicia Pauline")
	tags := []shared.Tag{}

	edited := alice.Edit(student.EditDescriptor{Name: &name, Tags: &tags})
	assert.Equal(t, alice.ID(), edited.ID())
	assert.Equal(t, name, edited.Name())
	assert.Equal(t, alice.Phone(), edited.Phone())
	assert.Empty(t, edited.Tags())
	assert.Len(t, alice.Tags(), 1, "original is unchanged")

	assert.False(t, student.EditDescriptor{}.IsAnyFieldEdited())
}

func TestStudent_IdentityAndString(t *testing.T) {
	benson := testutil.Benson()
	namesake := testutil.NewStudentBuilder().WithName("Benson Meier").Build()

	assert.True(t, benson.IsSame(namesake))
	assert.False(t, benson.Equal(namesake))
	assert.True(t, benson.Equal(testutil.Benson()))
	assert.Equal(t, "Benson Meier; Phone: 98765432; Email: johnd@example.com; Tags: [friends][owesMoney]", benson.String())
}

func TestNameContainsKeywords(t *testing.T) {
	p := student.NameContainsKeywords("kurz", "elle")
	assert.True(t, p(testutil.Carl()))
	assert.False(t, p(testutil.Alice()))
	assert.True(t, student.ShowAll(testutil.Alice()))
}

func TestUniqueStudentList(t *testing.T) {
	l := student.NewUniqueStudentList()
	require.NoError(t, l.Add(testutil.Alice()))

	err := l.Add(testutil.NewStudentBuilder().WithName("Alice Pauline").Build())
	assert.ErrorIs(t, err, student.ErrDuplicateStudent)

	found, ok := l.FindByID(testutil.AliceID)
	require.True(t, ok)
	assert.True(t, found.Equal(testutil.Alice()))

	assert.ErrorIs(t, l.Remove(testutil.Benson()), student.ErrStudentNotFound)
}

func TestUniqueStudentList_RejectsReusedID(t *testing.T) {
	l := student.NewUniqueStudentList()
	require.NoError(t, l.Add(testutil.Alice()))
	require.NoError(t, l.Add(testutil.Benson()))

	copied := testutil.NewStudentBuilder().WithID(testutil.AliceID).WithName("Other Name").Build()
	assert.ErrorIs(t, l.Add(copied), student.ErrDuplicateStudent)
	assert.Equal(t, 2, l.Len())

	assert.ErrorIs(t, l.Set(testutil.Benson(), copied), student.ErrDuplicateStudent)
	assert.ErrorIs(t, l.Set(testutil.Carl(), copied), student.ErrStudentNotFound)

	renamed := testutil.NewStudentBuilder().WithID(testutil.AliceID).WithName("Alice Renamed").Build()
	require.NoError(t, l.Set(testutil.Alice(), renamed))

	err := student.NewUniqueStudentList().ReplaceAll([]student.Student{testutil.Alice(), copied})
	assert.ErrorIs(t, err, student.ErrDuplicateStudent)
}
