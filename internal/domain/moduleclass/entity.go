// Package moduleclass models the classes a tutor teaches: their members and
// their weekly lessons.
package moduleclass

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/lesson"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrDuplicateModuleClass is returned when a class with the same name already exists.
	ErrDuplicateModuleClass = shared.NewDomainError("moduleclass", "UniqueModuleClassList", shared.ErrAlreadyExists,
		"Operation would result in duplicate module classes")

	// ErrModuleClassNotFound is returned when the target class is not in the list.
	ErrModuleClassNotFound = shared.NewDomainError("moduleclass", "UniqueModuleClassList", shared.ErrNotFound,
		"Module class not found")

	// ErrDuplicateLesson is returned when a class would hold two lessons in the same slot.
	ErrDuplicateLesson = shared.NewDomainError("moduleclass", "Lessons", shared.ErrAlreadyExists,
		"Operation would result in duplicate lessons")

	// ErrLessonNotFound is returned when the target lesson is not in the class.
	ErrLessonNotFound = shared.NewDomainError("moduleclass", "Lessons", shared.ErrNotFound,
		"Lesson not found")
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: MODULE CLASS
// ══════════════════════════════════════════════════════════════════════════════

// ModuleClass is an immutable class with a name, a set of member student ids and
// an ordered list of lessons. Names are compared exactly.
type ModuleClass struct {
	name       shared.Name
	studentIDs []uuid.UUID
	lessons    []lesson.Lesson
}

// NewModuleClassParams holds the fields of a ModuleClass.
type NewModuleClassParams struct {
	Name       shared.Name
	StudentIDs []uuid.UUID
	Lessons    []lesson.Lesson
}

// NewModuleClass creates a ModuleClass. Duplicate ids are collapsed; duplicate
// lessons are rejected.
func NewModuleClass(p NewModuleClassParams) (ModuleClass, error) {
	if p.Name == "" {
		return ModuleClass{}, shared.NullArgument("moduleclass", "NewModuleClass", "name")
	}
	for i := range p.Lessons {
		for j := i + 1; j < len(p.Lessons); j++ {
			if p.Lessons[i].IsSame(p.Lessons[j]) {
				return ModuleClass{}, ErrDuplicateLesson
			}
		}
	}
	return ModuleClass{
		name:       p.Name,
		studentIDs: idSet(p.StudentIDs),
		lessons:    append(make([]lesson.Lesson, 0, len(p.Lessons)), p.Lessons...),
	}, nil
}

func idSet(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Name returns the class name.
func (m ModuleClass) Name() shared.Name { return m.name }

// StudentIDs returns a copy of the member ids, sorted.
func (m ModuleClass) StudentIDs() []uuid.UUID {
	return append(make([]uuid.UUID, 0, len(m.studentIDs)), m.studentIDs...)
}

// Lessons returns a copy of the lessons in order.
func (m ModuleClass) Lessons() []lesson.Lesson {
	return append(make([]lesson.Lesson, 0, len(m.lessons)), m.lessons...)
}

// HasStudent reports whether id is a member.
func (m ModuleClass) HasStudent(id uuid.UUID) bool {
	for _, sid := range m.studentIDs {
		if sid == id {
			return true
		}
	}
	return false
}

// HasLesson reports whether a lesson in the same slot as l exists.
func (m ModuleClass) HasLesson(l lesson.Lesson) bool {
	for _, existing := range m.lessons {
		if existing.IsSame(l) {
			return true
		}
	}
	return false
}

// WithName returns a copy of the class renamed to name.
func (m ModuleClass) WithName(name shared.Name) ModuleClass {
	out := m.clone()
	out.name = name
	return out
}

// WithStudent returns a copy of the class with id added to its members.
func (m ModuleClass) WithStudent(id uuid.UUID) ModuleClass {
	out := m.clone()
	out.studentIDs = idSet(append(out.studentIDs, id))
	return out
}

// WithoutStudent returns a copy of the class without id as a member and without
// any attendance of id in its lessons.
func (m ModuleClass) WithoutStudent(id uuid.UUID) ModuleClass {
	out := m.clone()
	ids := make([]uuid.UUID, 0, len(out.studentIDs))
	for _, sid := range out.studentIDs {
		if sid != id {
			ids = append(ids, sid)
		}
	}
	out.studentIDs = ids
	for i, l := range out.lessons {
		out.lessons[i] = l.WithoutStudent(id)
	}
	return out
}

// WithLessonAdded returns a copy of the class with l appended.
func (m ModuleClass) WithLessonAdded(l lesson.Lesson) (ModuleClass, error) {
	if m.HasLesson(l) {
		return ModuleClass{}, ErrDuplicateLesson
	}
	out := m.clone()
	out.lessons = append(out.lessons, l)
	return out, nil
}

// WithLessonReplaced returns a copy of the class with target replaced by edited
// at the same position.
func (m ModuleClass) WithLessonReplaced(target, edited lesson.Lesson) (ModuleClass, error) {
	pos := m.lessonIndex(target)
	if pos < 0 {
		return ModuleClass{}, ErrLessonNotFound
	}
	if !target.IsSame(edited) && m.HasLesson(edited) {
		return ModuleClass{}, ErrDuplicateLesson
	}
	out := m.clone()
	out.lessons[pos] = edited
	return out, nil
}

// WithLessonRemoved returns a copy of the class without target.
func (m ModuleClass) WithLessonRemoved(target lesson.Lesson) (ModuleClass, error) {
	pos := m.lessonIndex(target)
	if pos < 0 {
		return ModuleClass{}, ErrLessonNotFound
	}
	out := m.clone()
	out.lessons = append(out.lessons[:pos], out.lessons[pos+1:]...)
	return out, nil
}

func (m ModuleClass) lessonIndex(target lesson.Lesson) int {
	for i, l := range m.lessons {
		if l.Equal(target) {
			return i
		}
	}
	return -1
}

func (m ModuleClass) clone() ModuleClass {
	return ModuleClass{
		name:       m.name,
		studentIDs: m.StudentIDs(),
		lessons:    m.Lessons(),
	}
}

// IsSame reports whether both classes have the same name.
func (m ModuleClass) IsSame(other ModuleClass) bool {
	return m.name == other.name
}

// Equal reports whether both classes have the same name, members and lessons.
func (m ModuleClass) Equal(other ModuleClass) bool {
	if m.name != other.name || len(m.studentIDs) != len(other.studentIDs) || len(m.lessons) != len(other.lessons) {
		return false
	}
	for i := range m.studentIDs {
		if m.studentIDs[i] != other.studentIDs[i] {
			return false
		}
	}
	for i := range m.lessons {
		if !m.lessons[i].Equal(other.lessons[i]) {
			return false
		}
	}
	return true
}

// String returns a human-readable representation.
func (m ModuleClass) String() string {
	lessons := make([]string, len(m.lessons))
	for i, l := range m.lessons {
		lessons[i] = l.String()
	}
	return fmt.Sprintf("%s; Students: %d; Lessons: [%s]", m.name, len(m.studentIDs), strings.Join(lessons, ", "))
}

// ══════════════════════════════════════════════════════════════════════════════
// PREDICATES
// ══════════════════════════════════════════════════════════════════════════════

// Predicate selects module classes for the filtered list.
type Predicate func(ModuleClass) bool

// ShowAll is the predicate that selects every class.
func ShowAll(ModuleClass) bool { return true }

// NameContainsKeywords selects classes whose name contains any keyword as a whole word.
func NameContainsKeywords(keywords ...string) Predicate {
	kws := append([]string(nil), keywords...)
	return func(m ModuleClass) bool {
		for _, k := range kws {
			if m.name.ContainsWord(k) {
				return true
			}
		}
		return false
	}
}
