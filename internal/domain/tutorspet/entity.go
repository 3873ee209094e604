// Package tutorspet contains the aggregate root that owns every student and
// module class. It is the unit of persistence and of history snapshots.
package tutorspet

import (
	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
)

// ErrUnknownStudentReference is returned when a class refers to a student the root does not hold.
var ErrUnknownStudentReference = shared.NewDomainError("tutorspet", "Validate", shared.ErrInvalidState,
	"Module class refers to a student that does not exist")

// ReadOnlyTutorsPet exposes the aggregate without any way to change it.
type ReadOnlyTutorsPet interface {
	Students() shared.View[student.Student]
	ModuleClasses() shared.View[moduleclass.ModuleClass]
}

// TutorsPet is the aggregate root.
type TutorsPet struct {
	students *student.UniqueStudentList
	classes  *moduleclass.UniqueModuleClassList
}

// New creates an empty aggregate.
func New() *TutorsPet {
	return &TutorsPet{
		students: student.NewUniqueStudentList(),
		classes:  moduleclass.NewUniqueModuleClassList(),
	}
}

// FromParts creates an aggregate from stored students and classes. It fails on
// duplicates and on classes referring to unknown students.
func FromParts(students []student.Student, classes []moduleclass.ModuleClass) (*TutorsPet, error) {
	t := New()
	if err := t.students.ReplaceAll(students); err != nil {
		return nil, err
	}
	if err := t.classes.ReplaceAll(classes); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that every class member and attendance entry refers to an existing student.
func (t *TutorsPet) Validate() error {
	for _, m := range t.classes.Items() {
		for _, id := range m.StudentIDs() {
			if !t.HasStudentID(id) {
				return ErrUnknownStudentReference
			}
		}
		for _, l := range m.Lessons() {
			for _, r := range l.AttendanceRecords().Records() {
				for _, id := range r.StudentIDs() {
					if !t.HasStudentID(id) {
						return ErrUnknownStudentReference
					}
				}
			}
		}
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

// Students returns a live read-only view of the students.
func (t *TutorsPet) Students() shared.View[student.Student] { return t.students.View() }

// HasStudent reports whether a student with the same name exists.
func (t *TutorsPet) HasStudent(s student.Student) bool { return t.students.Contains(s) }

// HasStudentID reports whether a student with the given id exists.
func (t *TutorsPet) HasStudentID(id uuid.UUID) bool {
	_, ok := t.students.FindByID(id)
	return ok
}

// StudentByID returns the student with the given id.
func (t *TutorsPet) StudentByID(id uuid.UUID) (student.Student, bool) {
	return t.students.FindByID(id)
}

// AddStudent adds s.
func (t *TutorsPet) AddStudent(s student.Student) error { return t.students.Add(s) }

// SetStudent replaces target with edited.
func (t *TutorsPet) SetStudent(target, edited student.Student) error {
	return t.students.Set(target, edited)
}

// RemoveStudent removes s and every reference to it from the module classes.
func (t *TutorsPet) RemoveStudent(s student.Student) error {
	if err := t.students.Remove(s); err != nil {
		return err
	}
	t.classes.RemoveStudent(s.ID())
	return nil
}

// ClearStudents removes every student and every reference to them.
func (t *TutorsPet) ClearStudents() {
	for _, s := range t.students.Items() {
		t.classes.RemoveStudent(s.ID())
	}
	t.students = student.NewUniqueStudentList()
}

// ══════════════════════════════════════════════════════════════════════════════
// MODULE CLASSES
// ══════════════════════════════════════════════════════════════════════════════

// ModuleClasses returns a live read-only view of the module classes.
func (t *TutorsPet) ModuleClasses() shared.View[moduleclass.ModuleClass] { return t.classes.View() }

// HasModuleClass reports whether a class with the same name exists.
func (t *TutorsPet) HasModuleClass(m moduleclass.ModuleClass) bool { return t.classes.Contains(m) }

// AddModuleClass adds m.
func (t *TutorsPet) AddModuleClass(m moduleclass.ModuleClass) error { return t.classes.Add(m) }

// SetModuleClass replaces target with edited.
func (t *TutorsPet) SetModuleClass(target, edited moduleclass.ModuleClass) error {
	return t.classes.Set(target, edited)
}

// RemoveModuleClass removes m.
func (t *TutorsPet) RemoveModuleClass(m moduleclass.ModuleClass) error { return t.classes.Remove(m) }

// ClearModuleClasses removes every class. Students are kept.
func (t *TutorsPet) ClearModuleClasses() {
	t.classes = moduleclass.NewUniqueModuleClassList()
}

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOTS
// ══════════════════════════════════════════════════════════════════════════════

// Clone returns an independent copy. Entities are immutable values, so only the
// containers are copied.
func (t *TutorsPet) Clone() *TutorsPet {
	return &TutorsPet{
		students: t.students.Clone(),
		classes:  t.classes.Clone(),
	}
}

// Equal reports whether both aggregates hold equal students and classes in the same order.
func (t *TutorsPet) Equal(other *TutorsPet) bool {
	if other == nil {
		return false
	}
	return t.students.Equal(other.students) && t.classes.Equal(other.classes)
}
