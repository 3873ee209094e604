package student

import (
	"errors"

	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrDuplicateStudent is returned when a student with the same name or id already exists.
	ErrDuplicateStudent = shared.NewDomainError("student", "UniqueStudentList", shared.ErrAlreadyExists,
		"Operation would result in duplicate students")

	// ErrStudentNotFound is returned when the target student is not in the list.
	ErrStudentNotFound = shared.NewDomainError("student", "UniqueStudentList", shared.ErrNotFound,
		"Student not found")
)

// ══════════════════════════════════════════════════════════════════════════════
// UNIQUE STUDENT LIST
// ══════════════════════════════════════════════════════════════════════════════

// UniqueStudentList holds students with distinct names and distinct ids, in insertion order.
type UniqueStudentList struct {
	list *shared.UniqueList[Student]
}

// NewUniqueStudentList creates an empty list.
func NewUniqueStudentList() *UniqueStudentList {
	return &UniqueStudentList{list: shared.NewUniqueList[Student]("student")}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, shared.ErrAlreadyExists):
		return ErrDuplicateStudent
	case errors.Is(err, shared.ErrNotFound):
		return ErrStudentNotFound
	default:
		return err
	}
}

// Contains reports whether a student with the same name is in the list.
func (l *UniqueStudentList) Contains(s Student) bool { return l.list.Contains(s) }

// Add appends s. It fails when a student with the same name or id exists.
func (l *UniqueStudentList) Add(s Student) error {
	if _, ok := l.FindByID(s.ID()); ok {
		return ErrDuplicateStudent
	}
	return translate(l.list.Add(s))
}

// Set replaces target with edited. It fails when target is absent or when
// edited shares a name or id with another student.
func (l *UniqueStudentList) Set(target, edited Student) error {
	if target.ID() != edited.ID() {
		if other, ok := l.FindByID(edited.ID()); ok && !other.Equal(target) {
			if !l.holds(target) {
				return ErrStudentNotFound
			}
			return ErrDuplicateStudent
		}
	}
	return translate(l.list.Set(target, edited))
}

// Remove deletes s.
func (l *UniqueStudentList) Remove(s Student) error { return translate(l.list.Remove(s)) }

// ReplaceAll replaces the contents with students. It fails when two of them
// share a name or id.
func (l *UniqueStudentList) ReplaceAll(students []Student) error {
	seen := make(map[uuid.UUID]struct{}, len(students))
	for _, s := range students {
		if _, dup := seen[s.ID()]; dup {
			return ErrDuplicateStudent
		}
		seen[s.ID()] = struct{}{}
	}
	return translate(l.list.ReplaceAll(students))
}

func (l *UniqueStudentList) holds(s Student) bool {
	for _, item := range l.list.Items() {
		if item.Equal(s) {
			return true
		}
	}
	return false
}

// FindByID returns the student with the given id.
func (l *UniqueStudentList) FindByID(id uuid.UUID) (Student, bool) {
	for _, s := range l.list.Items() {
		if s.ID() == id {
			return s, true
		}
	}
	return Student{}, false
}

// Len returns the number of students.
func (l *UniqueStudentList) Len() int { return l.list.Len() }

// Items returns a copy of the students in order.
func (l *UniqueStudentList) Items() []Student { return l.list.Items() }

// View returns a live read-only view.
func (l *UniqueStudentList) View() shared.View[Student] { return l.list.View() }

// Clone returns an independent copy.
func (l *UniqueStudentList) Clone() *UniqueStudentList {
	return &UniqueStudentList{list: l.list.Clone()}
}

// Equal reports whether both lists hold equal students in the same order.
func (l *UniqueStudentList) Equal(other *UniqueStudentList) bool {
	return l.list.Equal(other.list)
}
