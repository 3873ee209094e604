package student

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is an immutable record of a tutee. Edits produce a new Student that
// keeps the original id.
type Student struct {
	id    uuid.UUID
	name  shared.Name
	phone shared.Phone
	email shared.Email
	tags  []shared.Tag
}

// NewStudentParams holds the fields of a new Student.
type NewStudentParams struct {
	// ID defaults to a freshly generated UUID when zero.
	ID    uuid.UUID
	Name  shared.Name
	Phone shared.Phone
	Email shared.Email
	Tags  []shared.Tag
}

// NewStudent creates a Student, validating that every required field is present.
func NewStudent(p NewStudentParams) (Student, error) {
	switch {
	case p.Name == "":
		return Student{}, shared.NullArgument("student", "NewStudent", "name")
	case p.Phone == "":
		return Student{}, shared.NullArgument("student", "NewStudent", "phone")
	case p.Email == "":
		return Student{}, shared.NullArgument("student", "NewStudent", "email")
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return Student{
		id:    id,
		name:  p.Name,
		phone: p.Phone,
		email: p.Email,
		tags:  shared.TagSet(p.Tags...),
	}, nil
}

// ID returns the stable identifier used by class membership and attendance.
func (s Student) ID() uuid.UUID { return s.id }

// Name returns the student's name.
func (s Student) Name() shared.Name { return s.name }

// Phone returns the student's phone number.
func (s Student) Phone() shared.Phone { return s.phone }

// Email returns the student's email.
func (s Student) Email() shared.Email { return s.email }

// Tags returns a copy of the student's tags, sorted.
func (s Student) Tags() []shared.Tag {
	return append(make([]shared.Tag, 0, len(s.tags)), s.tags...)
}

// EditDescriptor carries the fields an edit replaces. Nil fields keep their
// current value.
type EditDescriptor struct {
	Name  *shared.Name
	Phone *shared.Phone
	Email *shared.Email
	Tags  *[]shared.Tag
}

// IsAnyFieldEdited reports whether at least one field is set.
func (d EditDescriptor) IsAnyFieldEdited() bool {
	return d.Name != nil || d.Phone != nil || d.Email != nil || d.Tags != nil
}

// Edit returns a copy of s with the descriptor's fields applied. The id is kept.
func (s Student) Edit(d EditDescriptor) Student {
	out := s
	if d.Name != nil {
		out.name = *d.Name
	}
	if d.Phone != nil {
		out.phone = *d.Phone
	}
	if d.Email != nil {
		out.email = *d.Email
	}
	if d.Tags != nil {
		out.tags = shared.TagSet(*d.Tags...)
	} else {
		out.tags = s.Tags()
	}
	return out
}

// IsSame reports whether both students have the same name. This is the identity
// used to reject duplicates.
func (s Student) IsSame(other Student) bool {
	return s.name == other.name
}

// Equal reports whether both students have equal ids and fields.
func (s Student) Equal(other Student) bool {
	if s.id != other.id || s.name != other.name || s.phone != other.phone || s.email != other.email {
		return false
	}
	if len(s.tags) != len(other.tags) {
		return false
	}
	for i := range s.tags {
		if s.tags[i] != other.tags[i] {
			return false
		}
	}
	return true
}

// String returns a human-readable representation.
func (s Student) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s; Phone: %s; Email: %s", s.name, s.phone, s.email)
	if len(s.tags) > 0 {
		b.WriteString("; Tags: ")
		for _, t := range s.tags {
			b.WriteString(t.String())
		}
	}
	return b.String()
}

// ══════════════════════════════════════════════════════════════════════════════
// PREDICATES
// ══════════════════════════════════════════════════════════════════════════════

// Predicate selects students for the filtered list.
type Predicate func(Student) bool

// ShowAll is the predicate that selects every student.
func ShowAll(Student) bool { return true }

// NameContainsKeywords selects students whose name contains any keyword as a whole word.
func NameContainsKeywords(keywords ...string) Predicate {
	kws := append([]string(nil), keywords...)
	return func(s Student) bool {
		for _, k := range kws {
			if s.name.ContainsWord(k) {
				return true
			}
		}
		return false
	}
}
