package command_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorspet/tutorspet/internal/application/command"
	"github.com/tutorspet/tutorspet/internal/application/model"
	"github.com/tutorspet/tutorspet/internal/domain/attendance"
	"github.com/tutorspet/tutorspet/internal/domain/lesson"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/testutil"
)

func idx(n int) shared.Index { return shared.MustIndex(n) }

func score(t *testing.T, n int) attendance.Attendance {
	t.Helper()
	a, err := attendance.NewAttendance(n)
	require.NoError(t, err)
	return a
}

func newManager() *model.Manager {
	return model.NewManager(testutil.TypicalTutorsPet())
}

func classAt(m *model.Manager, i int) moduleclass.ModuleClass {
	return m.Current().ModuleClasses().At(i)
}

// assertFailsUnchanged executes cmd, expects target and checks that nothing was committed.
func assertFailsUnchanged(t *testing.T, m *model.Manager, cmd command.Command, target error) {
	t.Helper()
	before := m.Snapshot()
	historyLen := len(m.History())

	_, err := m.Execute(cmd)
	require.ErrorIs(t, err, target)
	assert.True(t, before.Equal(m.Snapshot()), "committed state changed")
	assert.True(t, before.Equal(m.TutorsPet()), "working state changed")
	assert.Len(t, m.History(), historyLen)
}

// ══════════════════════════════════════════════════════════════════════════════
// SCENARIOS
// ══════════════════════════════════════════════════════════════════════════════

func TestDeleteStudent_CascadesThroughClassesAndAttendance(t *testing.T) {
	class, err := moduleclass.NewModuleClass(moduleclass.NewModuleClassParams{
		Name:    "CS1101 Tutorial",
		Lessons: []lesson.Lesson{testutil.NewLessonBuilder().Build()},
	})
	require.NoError(t, err)
	root := tutorspet.New()
	require.NoError(t, root.AddModuleClass(class))
	m := model.NewManager(root)

	add, err := command.NewAddStudentCommand(testutil.Alex())
	require.NoError(t, err)
	_, err = m.Execute(add)
	require.NoError(t, err)

	link, err := command.NewLinkCommand(idx(1), idx(1))
	require.NoError(t, err)
	_, err = m.Execute(link)
	require.NoError(t, err)

	target := command.AttendanceTarget{
		ModuleClassIndex: idx(1),
		LessonIndex:      idx(1),
		StudentIndex:     idx(1),
		Week:             attendance.MustWeek(1),
	}
	addAttendance, err := command.NewAddAttendanceCommand(target, score(t, 80))
	require.NoError(t, err)
	_, err = m.Execute(addAttendance)
	require.NoError(t, err)

	linked := classAt(m, 0)
	require.True(t, linked.HasStudent(testutil.AlexID))
	require.True(t, linked.Lessons()[0].AttendanceRecords().Record(attendance.MustWeek(1)).Has(testutil.AlexID))

	del, err := command.NewDeleteStudentCommand(idx(1))
	require.NoError(t, err)
	res, err := m.Execute(del)
	require.NoError(t, err)
	assert.Contains(t, res.Feedback, "Alex Yeoh")

	after := classAt(m, 0)
	assert.Equal(t, shared.Name("CS1101 Tutorial"), after.Name())
	assert.Empty(t, after.StudentIDs())
	assert.False(t, after.Lessons()[0].AttendanceRecords().Record(attendance.MustWeek(1)).Has(testutil.AlexID))
	assert.NoError(t, m.Snapshot().Validate())
}

func TestDeleteAttendance_MissingRecord(t *testing.T) {
	m := newManager()
	cmd, err := command.NewDeleteAttendanceCommand(command.AttendanceTarget{
		ModuleClassIndex: idx(1),
		LessonIndex:      idx(1),
		StudentIndex:     idx(2), // Benson has no week 1 record
		Week:             attendance.MustWeek(1),
	})
	require.NoError(t, err)

	assertFailsUnchanged(t, m, cmd, command.ErrMissingAttendance)
}

func TestEditLesson_VenueOnlyKeepsOccurrencesAndRecords(t *testing.T) {
	m := newManager()
	original := classAt(m, 0).Lessons()[0]

	venue := lesson.Venue("COM2-0202")
	cmd, err := command.NewEditLessonCommand(idx(1), idx(1), &command.EditLessonDescriptor{Venue: &venue})
	require.NoError(t, err)

	res, err := m.Execute(cmd)
	require.NoError(t, err)
	assert.Contains(t, res.Feedback, "COM2-0202")

	edited := classAt(m, 0).Lessons()[0]
	assert.Equal(t, venue, edited.Venue())
	assert.Equal(t, original.NumberOfOccurrences(), edited.NumberOfOccurrences())
	assert.True(t, original.AttendanceRecords().Equal(edited.AttendanceRecords()))
	assert.True(t, original.IsSame(edited))
}

func TestEditLesson_DuplicateSlot(t *testing.T) {
	m := newManager()
	day := lesson.Monday
	start := lesson.MustTime("08:00")
	end := lesson.MustTime("10:00")
	cmd, err := command.NewEditLessonCommand(idx(1), idx(2), &command.EditLessonDescriptor{
		Day:       &day,
		StartTime: &start,
		EndTime:   &end,
	})
	require.NoError(t, err)

	assertFailsUnchanged(t, m, cmd, command.ErrDuplicateLesson)
}

func TestEditLesson_Errors(t *testing.T) {
	late := lesson.MustTime("23:00")
	tests := []struct {
		name   string
		class  int
		lesson int
		desc   command.EditLessonDescriptor
		want   error
	}{
		{"invalid class", 5, 1, command.EditLessonDescriptor{StartTime: &late}, command.ErrInvalidModuleClassIndex},
		{"invalid lesson", 1, 3, command.EditLessonDescriptor{StartTime: &late}, command.ErrInvalidLessonIndex},
		{"not edited", 1, 1, command.EditLessonDescriptor{}, command.ErrNotEdited},
		{"start after end", 1, 1, command.EditLessonDescriptor{StartTime: &late}, command.ErrInvalidTimeRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := tt.desc
			cmd, err := command.NewEditLessonCommand(idx(tt.class), idx(tt.lesson), &desc)
			require.NoError(t, err)
			assertFailsUnchanged(t, newManager(), cmd, tt.want)
		})
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

func TestAddStudent(t *testing.T) {
	m := newManager()

	cmd, err := command.NewAddStudentCommand(testutil.Alex())
	require.NoError(t, err)
	res, err := m.Execute(cmd)
	require.NoError(t, err)
	assert.Equal(t, "New student added: Alex Yeoh; Phone: 87438807; Email: alexyeoh@example.com", res.Feedback)
	assert.Equal(t, 4, m.Current().Students().Len())

	dup := testutil.NewStudentBuilder().WithName("Alice Pauline").Build()
	cmd, err = command.NewAddStudentCommand(dup)
	require.NoError(t, err)
	assertFailsUnchanged(t, m, cmd, command.ErrDuplicateStudent)
}

func TestEditStudent(t *testing.T) {
	m := newManager()

	phone := shared.Phone("11111111")
	cmd, err := command.NewEditStudentCommand(idx(1), &student.EditDescriptor{Phone: &phone})
	require.NoError(t, err)
	_, err = m.Execute(cmd)
	require.NoError(t, err)

	edited := m.Current().Students().At(0)
	assert.Equal(t, phone, edited.Phone())
	assert.Equal(t, testutil.AliceID, edited.ID(), "edits keep the id")
	assert.True(t, classAt(m, 0).HasStudent(edited.ID()))

	name := shared.Name("Benson Meier")
	cmd, err = command.NewEditStudentCommand(idx(1), &student.EditDescriptor{Name: &name})
	require.NoError(t, err)
	assertFailsUnchanged(t, m, cmd, command.ErrDuplicateStudent)

	cmd, err = command.NewEditStudentCommand(idx(1), &student.EditDescriptor{})
	require.NoError(t, err)
	assertFailsUnchanged(t, m, cmd, command.ErrNotEdited)
}

func TestFindStudent_IndicesFollowFilteredList(t *testing.T) {
	m := newManager()

	find, err := command.NewFindStudentCommand("carl")
	require.NoError(t, err)
	res, err := m.Execute(find)
	require.NoError(t, err)
	assert.Equal(t, "1 students listed!", res.Feedback)
	require.Len(t, m.FilteredStudentList(), 1)

	outOfView, err := command.NewDeleteStudentCommand(idx(2))
	require.NoError(t, err)
	assertFailsUnchanged(t, m, outOfView, command.ErrInvalidStudentIndex)

	del, err := command.NewDeleteStudentCommand(idx(1))
	require.NoError(t, err)
	_, err = m.Execute(del)
	require.NoError(t, err)

	_, found := m.Snapshot().StudentByID(testutil.CarlID)
	assert.False(t, found)
	assert.Equal(t, 2, m.Current().Students().Len())

	_, err = m.Execute(&command.ListStudentCommand{})
	require.NoError(t, err)
	assert.Len(t, m.FilteredStudentList(), 2)
}

func TestClearStudent_RemovesReferences(t *testing.T) {
	m := newManager()

	res, err := m.Execute(&command.ClearStudentCommand{})
	require.NoError(t, err)
	assert.Equal(t, command.MessageClearStudentSuccess, res.Feedback)

	assert.Equal(t, 0, m.Current().Students().Len())
	assert.Equal(t, 2, m.Current().ModuleClasses().Len())
	assert.Empty(t, classAt(m, 0).StudentIDs())
	assert.NoError(t, m.Snapshot().Validate())
}

// ══════════════════════════════════════════════════════════════════════════════
// MODULE CLASSES
// ══════════════════════════════════════════════════════════════════════════════

func TestModuleClassCommands(t *testing.T) {
	m := newManager()

	add, err := command.NewAddModuleClassCommand(testutil.NewModuleClassBuilder().WithName("CS1231S Tutorial").Build())
	require.NoError(t, err)
	_, err = m.Execute(add)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Current().ModuleClasses().Len())

	dup, err := command.NewAddModuleClassCommand(testutil.NewModuleClassBuilder().WithName("CS2100 Lab").Build())
	require.NoError(t, err)
	assertFailsUnchanged(t, m, dup, command.ErrDuplicateModuleClass)

	// Names are compared exactly.
	lower, err := command.NewAddModuleClassCommand(testutil.NewModuleClassBuilder().WithName("cs2100 lab").Build())
	require.NoError(t, err)
	_, err = m.Execute(lower)
	require.NoError(t, err)

	name := shared.Name("CS2100 Lab")
	rename, err := command.NewEditModuleClassCommand(idx(1), &command.EditModuleClassDescriptor{Name: &name})
	require.NoError(t, err)
	assertFailsUnchanged(t, m, rename, command.ErrDuplicateModuleClass)

	name = "CS2103T Lab"
	rename, err = command.NewEditModuleClassCommand(idx(1), &command.EditModuleClassDescriptor{Name: &name})
	require.NoError(t, err)
	_, err = m.Execute(rename)
	require.NoError(t, err)
	renamed := classAt(m, 0)
	assert.Equal(t, name, renamed.Name())
	assert.Len(t, renamed.Lessons(), 2, "lessons are kept")
	assert.True(t, renamed.HasStudent(testutil.AliceID), "members are kept")

	find, err := command.NewFindModuleClassCommand("lab")
	require.NoError(t, err)
	res, err := m.Execute(find)
	require.NoError(t, err)
	assert.Equal(t, "3 classes listed!", res.Feedback)

	del, err := command.NewDeleteModuleClassCommand(idx(3))
	require.NoError(t, err)
	_, err = m.Execute(del)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Current().ModuleClasses().Len())
	assert.Equal(t, 3, m.Current().Students().Len(), "students are kept")

	_, err = m.Execute(&command.ClearModuleClassCommand{})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Current().ModuleClasses().Len())
	assert.Equal(t, 3, m.Current().Students().Len())
}

func TestLinkAndUnlink(t *testing.T) {
	m := newManager()

	link, err := command.NewLinkCommand(idx(1), idx(1))
	require.NoError(t, err)
	assertFailsUnchanged(t, m, link, command.ErrStudentAlreadyLinked)

	link, err = command.NewLinkCommand(idx(1), idx(3))
	require.NoError(t, err)
	res, err := m.Execute(link)
	require.NoError(t, err)
	assert.Equal(t, "Linked student Carl Kurz to class CS2103T Tutorial", res.Feedback)
	assert.True(t, classAt(m, 0).HasStudent(testutil.CarlID))

	unlink, err := command.NewUnlinkCommand(idx(2), idx(1))
	require.NoError(t, err)
	assertFailsUnchanged(t, m, unlink, command.ErrStudentNotInClass)

	unlink, err = command.NewUnlinkCommand(idx(1), idx(1))
	require.NoError(t, err)
	_, err = m.Execute(unlink)
	require.NoError(t, err)

	class := classAt(m, 0)
	assert.False(t, class.HasStudent(testutil.AliceID))
	assert.False(t, class.Lessons()[0].AttendanceRecords().ReferencesStudent(testutil.AliceID),
		"unlinking purges attendance")
	_, stillThere := m.Snapshot().StudentByID(testutil.AliceID)
	assert.True(t, stillThere)
}

func TestAddModuleClass_RejectsUnknownReferences(t *testing.T) {
	m := newManager()

	stranger := uuid.New()
	unknownMember, err := command.NewAddModuleClassCommand(
		testutil.NewModuleClassBuilder().WithName("CS1231S Tutorial").WithStudents(stranger).Build())
	require.NoError(t, err)
	assertFailsUnchanged(t, m, unknownMember, command.ErrUnknownStudent)
	_, err = m.Execute(unknownMember)
	assert.ErrorIs(t, err, tutorspet.ErrUnknownStudentReference)
	assert.True(t, command.IsCommandError(err))

	unknownAttendee, err := command.NewAddModuleClassCommand(
		testutil.NewModuleClassBuilder().WithName("CS1231S Tutorial").
			WithLessons(testutil.NewLessonBuilder().WithAttendance(stranger, 1, 50).Build()).Build())
	require.NoError(t, err)
	assertFailsUnchanged(t, m, unknownAttendee, command.ErrUnknownStudent)

	nonMember, err := command.NewAddModuleClassCommand(
		testutil.NewModuleClassBuilder().WithName("CS1231S Tutorial").WithStudents(testutil.AliceID).
			WithLessons(testutil.NewLessonBuilder().WithAttendance(testutil.CarlID, 1, 50).Build()).Build())
	require.NoError(t, err)
	assertFailsUnchanged(t, m, nonMember, command.ErrStudentNotInClass)

	member, err := command.NewAddModuleClassCommand(
		testutil.NewModuleClassBuilder().WithName("CS1231S Tutorial").WithStudents(testutil.CarlID).
			WithLessons(testutil.NewLessonBuilder().WithAttendance(testutil.CarlID, 1, 50).Build()).Build())
	require.NoError(t, err)
	_, err = m.Execute(member)
	require.NoError(t, err)
	assert.NoError(t, m.Snapshot().Validate())
}

// ══════════════════════════════════════════════════════════════════════════════
// LESSONS
// ══════════════════════════════════════════════════════════════════════════════

func TestAddLesson_RejectsAttendanceOfNonMembers(t *testing.T) {
	m := newManager()

	// CS2100 Lab has Benson only.
	stranger, err := command.NewAddLessonCommand(idx(2),
		testutil.NewLessonBuilder().WithAttendance(uuid.New(), 1, 70).Build())
	require.NoError(t, err)
	assertFailsUnchanged(t, m, stranger, command.ErrUnknownStudent)

	alice, err := command.NewAddLessonCommand(idx(2),
		testutil.NewLessonBuilder().WithAttendance(testutil.AliceID, 1, 70).Build())
	require.NoError(t, err)
	assertFailsUnchanged(t, m, alice, command.ErrStudentNotInClass)

	benson, err := command.NewAddLessonCommand(idx(2),
		testutil.NewLessonBuilder().WithAttendance(testutil.BensonID, 1, 70).Build())
	require.NoError(t, err)
	_, err = m.Execute(benson)
	require.NoError(t, err)
	assert.True(t, classAt(m, 1).Lessons()[0].AttendanceRecords().Record(attendance.MustWeek(1)).Has(testutil.BensonID))
	assert.NoError(t, m.Snapshot().Validate())
}

func TestAddAndDeleteLesson(t *testing.T) {
	m := newManager()

	l := testutil.NewLessonBuilder().WithDay(lesson.Friday).WithOccurrences(13).Build()
	add, err := command.NewAddLessonCommand(idx(2), l)
	require.NoError(t, err)
	_, err = m.Execute(add)
	require.NoError(t, err)

	lessons := classAt(m, 1).Lessons()
	require.Len(t, lessons, 1)
	assert.Equal(t, 13, lessons[0].AttendanceRecords().Len())

	add, err = command.NewAddLessonCommand(idx(2), testutil.NewLessonBuilder().WithDay(lesson.Friday).WithVenue("elsewhere").Build())
	require.NoError(t, err)
	assertFailsUnchanged(t, m, add, command.ErrDuplicateLesson)

	del, err := command.NewDeleteLessonCommand(idx(1), idx(1))
	require.NoError(t, err)
	_, err = m.Execute(del)
	require.NoError(t, err)

	remaining := classAt(m, 0).Lessons()
	require.Len(t, remaining, 1)
	assert.Equal(t, lesson.Thursday, remaining[0].Day())

	del, err = command.NewDeleteLessonCommand(idx(1), idx(2))
	require.NoError(t, err)
	assertFailsUnchanged(t, m, del, command.ErrInvalidLessonIndex)
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE
// ══════════════════════════════════════════════════════════════════════════════

func TestAttendanceCommands(t *testing.T) {
	target := func(student, week int) command.AttendanceTarget {
		return command.AttendanceTarget{
			ModuleClassIndex: idx(1),
			LessonIndex:      idx(1),
			StudentIndex:     idx(student),
			Week:             attendance.MustWeek(week),
		}
	}
	recorded := func(m *model.Manager, week int) attendance.Record {
		return classAt(m, 0).Lessons()[0].AttendanceRecords().Record(attendance.MustWeek(week))
	}

	t.Run("add", func(t *testing.T) {
		m := newManager()
		cmd, err := command.NewAddAttendanceCommand(target(2, 3), score(t, 55))
		require.NoError(t, err)
		res, err := m.Execute(cmd)
		require.NoError(t, err)
		assert.Contains(t, res.Feedback, "Added week 3 attendance of student Benson Meier")
		got, ok := recorded(m, 3).Get(testutil.BensonID)
		require.True(t, ok)
		assert.Equal(t, 55, got.ParticipationScore())
	})

	t.Run("add over existing", func(t *testing.T) {
		cmd, err := command.NewAddAttendanceCommand(target(1, 1), score(t, 10))
		require.NoError(t, err)
		assertFailsUnchanged(t, newManager(), cmd, command.ErrAttendanceExists)
	})

	t.Run("add for non member", func(t *testing.T) {
		cmd, err := command.NewAddAttendanceCommand(target(3, 1), score(t, 10))
		require.NoError(t, err)
		assertFailsUnchanged(t, newManager(), cmd, command.ErrStudentNotInClass)
	})

	t.Run("invalid week", func(t *testing.T) {
		cmd, err := command.NewAddAttendanceCommand(target(1, 11), score(t, 10))
		require.NoError(t, err)
		assertFailsUnchanged(t, newManager(), cmd, command.ErrInvalidWeek)
	})

	t.Run("invalid student index", func(t *testing.T) {
		cmd, err := command.NewEditAttendanceCommand(target(9, 1), score(t, 10))
		require.NoError(t, err)
		assertFailsUnchanged(t, newManager(), cmd, command.ErrInvalidStudentIndex)
	})

	t.Run("edit", func(t *testing.T) {
		m := newManager()
		cmd, err := command.NewEditAttendanceCommand(target(1, 1), score(t, 95))
		require.NoError(t, err)
		_, err = m.Execute(cmd)
		require.NoError(t, err)
		got, _ := recorded(m, 1).Get(testutil.AliceID)
		assert.Equal(t, 95, got.ParticipationScore())
	})

	t.Run("edit missing", func(t *testing.T) {
		cmd, err := command.NewEditAttendanceCommand(target(1, 2), score(t, 95))
		require.NoError(t, err)
		assertFailsUnchanged(t, newManager(), cmd, command.ErrMissingAttendance)
	})

	t.Run("delete", func(t *testing.T) {
		m := newManager()
		cmd, err := command.NewDeleteAttendanceCommand(target(1, 1))
		require.NoError(t, err)
		res, err := m.Execute(cmd)
		require.NoError(t, err)
		assert.Contains(t, res.Feedback, "Deleted week 1 attendance of student Alice Pauline from lesson")
		assert.False(t, recorded(m, 1).Has(testutil.AliceID))
	})
}

func TestAttendanceLessonHelpers(t *testing.T) {
	l := testutil.NewLessonBuilder().WithAttendance(testutil.AliceID, 1, 80).Build()

	got, err := command.AttendanceInLesson(l, testutil.AliceID, attendance.MustWeek(1))
	require.NoError(t, err)
	assert.Equal(t, 80, got.ParticipationScore())

	_, err = command.AttendanceInLesson(l, testutil.BensonID, attendance.MustWeek(1))
	assert.ErrorIs(t, err, command.ErrMissingAttendance)

	_, err = command.DeleteAttendanceFromLesson(l, testutil.AliceID, attendance.MustWeek(12))
	assert.ErrorIs(t, err, command.ErrInvalidWeek)

	edited, err := command.EditAttendanceInLesson(l, testutil.AliceID, attendance.MustWeek(1), score(t, 81))
	require.NoError(t, err)
	assert.False(t, edited.Equal(l))
	assert.True(t, edited.IsSame(l))
}

// ══════════════════════════════════════════════════════════════════════════════
// CONSTRUCTION
// ══════════════════════════════════════════════════════════════════════════════

func TestConstructors_RejectMissingArguments(t *testing.T) {
	var none shared.Index

	_, err := command.NewDeleteStudentCommand(none)
	assert.ErrorIs(t, err, shared.ErrNullArgument)

	_, err = command.NewEditStudentCommand(idx(1), nil)
	assert.ErrorIs(t, err, shared.ErrNullArgument)

	_, err = command.NewAddStudentCommand(student.Student{})
	assert.ErrorIs(t, err, shared.ErrNullArgument)

	_, err = command.NewLinkCommand(idx(1), none)
	assert.ErrorIs(t, err, shared.ErrNullArgument)

	_, err = command.NewAddLessonCommand(idx(1), lesson.Lesson{})
	assert.ErrorIs(t, err, shared.ErrNullArgument)

	_, err = command.NewDeleteAttendanceCommand(command.AttendanceTarget{
		ModuleClassIndex: idx(1), LessonIndex: idx(1), StudentIndex: idx(1),
	})
	assert.ErrorIs(t, err, shared.ErrNullArgument)

	_, err = command.NewFindStudentCommand()
	assert.ErrorIs(t, err, shared.ErrNullArgument)
}

func TestIsCommandError(t *testing.T) {
	assert.True(t, command.IsCommandError(command.ErrInvalidWeek))
	assert.True(t, command.IsCommandError(command.ErrMissingAttendance))
	assert.False(t, command.IsCommandError(student.ErrDuplicateStudent))
	assert.False(t, command.IsCommandError(nil))
}

func TestAddStudent_RejectsReusedID(t *testing.T) {
	m := newManager()

	copied := testutil.NewStudentBuilder().WithID(testutil.AliceID).WithName("Other Name").Build()
	add, err := command.NewAddStudentCommand(copied)
	require.NoError(t, err)
	assertFailsUnchanged(t, m, add, command.ErrDuplicateStudent)

	holders := 0
	for _, s := range m.Current().Students().Items() {
		if s.ID() == testutil.AliceID {
			holders++
		}
	}
	assert.Equal(t, 1, holders)
	assert.True(t, classAt(m, 0).HasStudent(testutil.AliceID))
}

// ══════════════════════════════════════════════════════════════════════════════
// UNDO / REDO
// ══════════════════════════════════════════════════════════════════════════════

func TestUndoRedo_FeedbackAndFilters(t *testing.T) {
	m := newManager()

	add, err := command.NewAddStudentCommand(testutil.Alex())
	require.NoError(t, err)
	added, err := m.Execute(add)
	require.NoError(t, err)
	afterAdd := m.Snapshot()

	find, err := command.NewFindStudentCommand("carl")
	require.NoError(t, err)
	_, err = m.Execute(find)
	require.NoError(t, err)
	findClass, err := command.NewFindModuleClassCommand("lab")
	require.NoError(t, err)
	_, err = m.Execute(findClass)
	require.NoError(t, err)
	require.Len(t, m.FilteredStudentList(), 1)
	require.Len(t, m.FilteredModuleClassList(), 1)

	res, err := m.Execute(&command.UndoCommand{})
	require.NoError(t, err)
	assert.Equal(t, "Undo success! Undone: "+added.Feedback, res.Feedback)
	assert.True(t, testutil.TypicalTutorsPet().Equal(m.Snapshot()))
	assert.Len(t, m.FilteredStudentList(), 3, "undo shows every student")
	assert.Len(t, m.FilteredModuleClassList(), 2, "undo shows every class")

	_, err = m.Execute(find)
	require.NoError(t, err)

	res, err = m.Execute(&command.RedoCommand{})
	require.NoError(t, err)
	assert.Equal(t, "Redo success! Redone: "+added.Feedback, res.Feedback)
	assert.True(t, afterAdd.Equal(m.Snapshot()))
	assert.Len(t, m.FilteredStudentList(), 4, "redo shows every student")
}

func TestUndoRedo_NothingToMove(t *testing.T) {
	m := newManager()

	_, err := m.Execute(&command.UndoCommand{})
	assert.ErrorIs(t, err, model.ErrNoUndoableState)
	assert.ErrorIs(t, err, shared.ErrNoUndoableState)

	_, err = m.Execute(&command.RedoCommand{})
	assert.ErrorIs(t, err, model.ErrNoRedoableState)
	assert.ErrorIs(t, err, shared.ErrNoRedoableState)

	add, err := command.NewAddStudentCommand(testutil.Alex())
	require.NoError(t, err)
	_, err = m.Execute(add)
	require.NoError(t, err)
	_, err = m.Execute(&command.RedoCommand{})
	assert.ErrorIs(t, err, model.ErrNoRedoableState)
	assert.Len(t, m.History(), 2)
}
