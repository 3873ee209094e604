package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/application/model"
	"github.com/tutorspet/tutorspet/internal/domain/attendance"
	"github.com/tutorspet/tutorspet/internal/domain/lesson"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
)

// Attendance command messages.
const (
	MessageAddAttendanceSuccess    = "Added week %s attendance of student %s to lesson %s"
	MessageEditAttendanceSuccess   = "Edited week %s attendance of student %s in lesson %s"
	MessageDeleteAttendanceSuccess = "Deleted week %s attendance of student %s from lesson %s"
)

// AttendanceTarget addresses one student's attendance in one lesson-week.
type AttendanceTarget struct {
	ModuleClassIndex shared.Index
	LessonIndex      shared.Index
	StudentIndex     shared.Index
	Week             attendance.Week
}

func (t AttendanceTarget) validate(op string) error {
	switch {
	case t.ModuleClassIndex.IsZero():
		return shared.NullArgument(domain, op, "class index")
	case t.LessonIndex.IsZero():
		return shared.NullArgument(domain, op, "lesson index")
	case t.StudentIndex.IsZero():
		return shared.NullArgument(domain, op, "student index")
	case t.Week.IsZero():
		return shared.NullArgument(domain, op, "week")
	}
	return nil
}

// resolved is an AttendanceTarget looked up against the displayed lists.
type resolved struct {
	student     student.Student
	moduleClass moduleclass.ModuleClass
	lesson      lesson.Lesson
}

func (t AttendanceTarget) resolve(m model.Model) (resolved, error) {
	shownStudents := m.FilteredStudentList()
	shownClasses := m.FilteredModuleClassList()

	s, err := StudentAt(shownStudents, t.StudentIndex)
	if err != nil {
		return resolved{}, err
	}
	mc, err := ModuleClassAt(shownClasses, t.ModuleClassIndex)
	if err != nil {
		return resolved{}, err
	}
	l, err := LessonAt(mc, t.LessonIndex)
	if err != nil {
		return resolved{}, err
	}
	if err := CheckWeek(l, t.Week); err != nil {
		return resolved{}, err
	}
	if err := CheckMember(mc, s.ID()); err != nil {
		return resolved{}, err
	}
	return resolved{student: s, moduleClass: mc, lesson: l}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Lesson helpers
// ─────────────────────────────────────────────────────────────────────────────

// AddAttendanceToLesson returns l with id's attendance for week w set to a.
// Fails with ErrAttendanceExists when the student already has attendance that week.
func AddAttendanceToLesson(l lesson.Lesson, id uuid.UUID, w attendance.Week, a attendance.Attendance) (lesson.Lesson, error) {
	if err := CheckWeek(l, w); err != nil {
		return lesson.Lesson{}, err
	}
	records := l.AttendanceRecords()
	record := records.Record(w)
	if record.Has(id) {
		return lesson.Lesson{}, ErrAttendanceExists
	}
	return l.WithRecords(records.WithRecord(w, record.With(id, a))), nil
}

// EditAttendanceInLesson returns l with id's attendance for week w replaced by a.
// Fails with ErrMissingAttendance when the student has no attendance that week.
func EditAttendanceInLesson(l lesson.Lesson, id uuid.UUID, w attendance.Week, a attendance.Attendance) (lesson.Lesson, error) {
	if err := CheckWeek(l, w); err != nil {
		return lesson.Lesson{}, err
	}
	records := l.AttendanceRecords()
	record := records.Record(w)
	if !record.Has(id) {
		return lesson.Lesson{}, ErrMissingAttendance
	}
	return l.WithRecords(records.WithRecord(w, record.With(id, a))), nil
}

// DeleteAttendanceFromLesson returns l without id's attendance for week w.
// Fails with ErrMissingAttendance when the student has no attendance that week.
func DeleteAttendanceFromLesson(l lesson.Lesson, id uuid.UUID, w attendance.Week) (lesson.Lesson, error) {
	if err := CheckWeek(l, w); err != nil {
		return lesson.Lesson{}, err
	}
	records := l.AttendanceRecords()
	record := records.Record(w)
	if !record.Has(id) {
		return lesson.Lesson{}, ErrMissingAttendance
	}
	return l.WithRecords(records.WithRecord(w, record.Without(id))), nil
}

// AttendanceInLesson returns id's attendance for week w.
func AttendanceInLesson(l lesson.Lesson, id uuid.UUID, w attendance.Week) (attendance.Attendance, error) {
	if err := CheckWeek(l, w); err != nil {
		return attendance.Attendance{}, err
	}
	a, ok := l.AttendanceRecords().Record(w).Get(id)
	if !ok {
		return attendance.Attendance{}, ErrMissingAttendance
	}
	return a, nil
}

func replaceLesson(m model.Model, r resolved, edited lesson.Lesson) error {
	modified, err := r.moduleClass.WithLessonReplaced(r.lesson, edited)
	if err != nil {
		return translate(err)
	}
	return translate(m.TutorsPet().SetModuleClass(r.moduleClass, modified))
}

// ══════════════════════════════════════════════════════════════════════════════
// ADD ATTENDANCE
// ══════════════════════════════════════════════════════════════════════════════

// AddAttendanceCommand records a student's attendance for a lesson-week.
type AddAttendanceCommand struct {
	AttendanceTarget
	Attendance attendance.Attendance
}

// NewAddAttendanceCommand creates a validated AddAttendanceCommand.
func NewAddAttendanceCommand(t AttendanceTarget, a attendance.Attendance) (*AddAttendanceCommand, error) {
	c := &AddAttendanceCommand{AttendanceTarget: t, Attendance: a}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *AddAttendanceCommand) Validate() error {
	return c.validate("AddAttendance")
}

// Execute implements Command.
func (c *AddAttendanceCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	r, err := c.resolve(m)
	if err != nil {
		return Result{}, err
	}
	edited, err := AddAttendanceToLesson(r.lesson, r.student.ID(), c.Week, c.Attendance)
	if err != nil {
		return Result{}, err
	}
	if err := replaceLesson(m, r, edited); err != nil {
		return Result{}, err
	}
	msg := fmt.Sprintf(MessageAddAttendanceSuccess, c.Week, r.student.Name(), r.lesson)
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*AddAttendanceCommand) isCommand() {}

// ══════════════════════════════════════════════════════════════════════════════
// EDIT ATTENDANCE
// ══════════════════════════════════════════════════════════════════════════════

// EditAttendanceCommand changes an existing attendance of a student for a lesson-week.
type EditAttendanceCommand struct {
	AttendanceTarget
	Attendance attendance.Attendance
}

// NewEditAttendanceCommand creates a validated EditAttendanceCommand.
func NewEditAttendanceCommand(t AttendanceTarget, a attendance.Attendance) (*EditAttendanceCommand, error) {
	c := &EditAttendanceCommand{AttendanceTarget: t, Attendance: a}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *EditAttendanceCommand) Validate() error {
	return c.validate("EditAttendance")
}

// Execute implements Command.
func (c *EditAttendanceCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	r, err := c.resolve(m)
	if err != nil {
		return Result{}, err
	}
	edited, err := EditAttendanceInLesson(r.lesson, r.student.ID(), c.Week, c.Attendance)
	if err != nil {
		return Result{}, err
	}
	if err := replaceLesson(m, r, edited); err != nil {
		return Result{}, err
	}
	msg := fmt.Sprintf(MessageEditAttendanceSuccess, c.Week, r.student.Name(), r.lesson)
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*EditAttendanceCommand) isCommand() {}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE ATTENDANCE
// ══════════════════════════════════════════════════════════════════════════════

// DeleteAttendanceCommand removes a student's attendance for a lesson-week.
type DeleteAttendanceCommand struct {
	AttendanceTarget
}

// NewDeleteAttendanceCommand creates a validated DeleteAttendanceCommand.
func NewDeleteAttendanceCommand(t AttendanceTarget) (*DeleteAttendanceCommand, error) {
	c := &DeleteAttendanceCommand{AttendanceTarget: t}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *DeleteAttendanceCommand) Validate() error {
	return c.validate("DeleteAttendance")
}

// Execute implements Command.
func (c *DeleteAttendanceCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	r, err := c.resolve(m)
	if err != nil {
		return Result{}, err
	}
	edited, err := DeleteAttendanceFromLesson(r.lesson, r.student.ID(), c.Week)
	if err != nil {
		return Result{}, err
	}
	if err := replaceLesson(m, r, edited); err != nil {
		return Result{}, err
	}
	msg := fmt.Sprintf(MessageDeleteAttendanceSuccess, c.Week, r.student.Name(), r.lesson)
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*DeleteAttendanceCommand) isCommand() {}
