package command

import (
	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/attendance"
	"github.com/tutorspet/tutorspet/internal/domain/lesson"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
)

// ══════════════════════════════════════════════════════════════════════════════
// INDEX RESOLUTION
// Display indices resolve against the lists captured at the start of a command.
// ══════════════════════════════════════════════════════════════════════════════

// StudentAt returns the student at idx of the displayed list.
func StudentAt(shown []student.Student, idx shared.Index) (student.Student, error) {
	if !idx.InBounds(len(shown)) {
		return student.Student{}, ErrInvalidStudentIndex
	}
	return shown[idx.ZeroBased()], nil
}

// ModuleClassAt returns the class at idx of the displayed list.
func ModuleClassAt(shown []moduleclass.ModuleClass, idx shared.Index) (moduleclass.ModuleClass, error) {
	if !idx.InBounds(len(shown)) {
		return moduleclass.ModuleClass{}, ErrInvalidModuleClassIndex
	}
	return shown[idx.ZeroBased()], nil
}

// LessonAt returns the lesson at idx of the class.
func LessonAt(m moduleclass.ModuleClass, idx shared.Index) (lesson.Lesson, error) {
	lessons := m.Lessons()
	if !idx.InBounds(len(lessons)) {
		return lesson.Lesson{}, ErrInvalidLessonIndex
	}
	return lessons[idx.ZeroBased()], nil
}

// CheckWeek fails with ErrInvalidWeek when w is outside the lesson's occurrences.
func CheckWeek(l lesson.Lesson, w attendance.Week) error {
	if !l.AttendanceRecords().ContainsWeek(w) {
		return ErrInvalidWeek
	}
	return nil
}

// CheckMember fails with ErrStudentNotInClass when id is not a member of m.
func CheckMember(m moduleclass.ModuleClass, id uuid.UUID) error {
	if !m.HasStudent(id) {
		return ErrStudentNotInClass
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// REFERENCE CHECKS
// Classes and lessons built outside the model may carry student ids of their own.
// ══════════════════════════════════════════════════════════════════════════════

// CheckReferences fails with ErrUnknownStudent when a member of m or an attendee
// of its lessons is not in root, and with ErrStudentNotInClass when an attendee
// is not a member of m.
func CheckReferences(root *tutorspet.TutorsPet, m moduleclass.ModuleClass) error {
	for _, id := range m.StudentIDs() {
		if !root.HasStudentID(id) {
			return ErrUnknownStudent
		}
	}
	for _, l := range m.Lessons() {
		if err := CheckAttendees(root, m, l); err != nil {
			return err
		}
	}
	return nil
}

// CheckAttendees applies the attendee part of CheckReferences to a single lesson.
func CheckAttendees(root *tutorspet.TutorsPet, m moduleclass.ModuleClass, l lesson.Lesson) error {
	for _, r := range l.AttendanceRecords().Records() {
		for _, id := range r.StudentIDs() {
			if !root.HasStudentID(id) {
				return ErrUnknownStudent
			}
			if err := CheckMember(m, id); err != nil {
				return err
			}
		}
	}
	return nil
}
