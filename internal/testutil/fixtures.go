// Package testutil provides typical students, lessons and classes for tests.
package testutil

import (
	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/attendance"
	"github.com/tutorspet/tutorspet/internal/domain/lesson"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
)

// Fixed ids keep fixtures comparable across test runs.
var (
	AliceID  = uuid.MustParse("0f14d0ab-9605-4a62-a9e4-5ed26688389b")
	BensonID = uuid.MustParse("4bb4f7d1-24b6-4f36-8bd4-8ac2e2b1f0b0")
	CarlID   = uuid.MustParse("a4f3c0a2-2a3c-4e4d-9b1f-2f0b7f1c3d5e")
	AlexID   = uuid.MustParse("d6c4a1a3-7f0e-4b8e-8c61-1b7d0c3e9a24")
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

// StudentBuilder builds students with sensible defaults.
type StudentBuilder struct {
	p student.NewStudentParams
}

// NewStudentBuilder starts from a default student.
func NewStudentBuilder() *StudentBuilder {
	return &StudentBuilder{p: student.NewStudentParams{
		ID:    uuid.New(),
		Name:  "Amy Bee",
		Phone: "85355255",
		Email: "amy@gmail.com",
	}}
}

// WithID sets the id.
func (b *StudentBuilder) WithID(id uuid.UUID) *StudentBuilder { b.p.ID = id; return b }

// WithName sets the name.
func (b *StudentBuilder) WithName(name string) *StudentBuilder { b.p.Name = shared.Name(name); return b }

// WithPhone sets the phone.
func (b *StudentBuilder) WithPhone(phone string) *StudentBuilder {
	b.p.Phone = shared.Phone(phone)
	return b
}

// WithEmail sets the email.
func (b *StudentBuilder) WithEmail(email string) *StudentBuilder {
	b.p.Email = shared.Email(email)
	return b
}

// WithTags sets the tags.
func (b *StudentBuilder) WithTags(tags ...string) *StudentBuilder {
	b.p.Tags = make([]shared.Tag, len(tags))
	for i, t := range tags {
		b.p.Tags[i] = shared.Tag(t)
	}
	return b
}

// Build returns the student. It panics on invalid fields.
func (b *StudentBuilder) Build() student.Student {
	s, err := student.NewStudent(b.p)
	if err != nil {
		panic(err)
	}
	return s
}

// Alice returns a typical student.
func Alice() student.Student {
	return NewStudentBuilder().WithID(AliceID).WithName("Alice Pauline").
		WithPhone("94351253").WithEmail("alice@example.com").WithTags("friends").Build()
}

// Benson returns a typical student.
func Benson() student.Student {
	return NewStudentBuilder().WithID(BensonID).WithName("Benson Meier").
		WithPhone("98765432").WithEmail("johnd@example.com").WithTags("owesMoney", "friends").Build()
}

// Carl returns a typical student who is in no class.
func Carl() student.Student {
	return NewStudentBuilder().WithID(CarlID).WithName("Carl Kurz").
		WithPhone("95352563").WithEmail("heinz@example.com").Build()
}

// Alex returns the student used in the cascade scenario.
func Alex() student.Student {
	return NewStudentBuilder().WithID(AlexID).WithName("Alex Yeoh").
		WithPhone("87438807").WithEmail("alexyeoh@example.com").Build()
}

// ══════════════════════════════════════════════════════════════════════════════
// LESSONS
// ══════════════════════════════════════════════════════════════════════════════

// LessonBuilder builds lessons with sensible defaults.
type LessonBuilder struct {
	p lesson.NewLessonParams
}

// NewLessonBuilder starts from a Monday 08:00-10:00 lesson over 10 weeks.
func NewLessonBuilder() *LessonBuilder {
	return &LessonBuilder{p: lesson.NewLessonParams{
		StartTime:   lesson.MustTime("08:00"),
		EndTime:     lesson.MustTime("10:00"),
		Day:         lesson.Monday,
		Occurrences: 10,
		Venue:       "COM1-0101",
	}}
}

// From starts from an existing lesson.
func (b *LessonBuilder) From(l lesson.Lesson) *LessonBuilder {
	b.p = l.Params()
	return b
}

// WithTimes sets the start and end times.
func (b *LessonBuilder) WithTimes(start, end string) *LessonBuilder {
	b.p.StartTime = lesson.MustTime(start)
	b.p.EndTime = lesson.MustTime(end)
	return b
}

// WithDay sets the day.
func (b *LessonBuilder) WithDay(d lesson.Day) *LessonBuilder { b.p.Day = d; return b }

// WithVenue sets the venue.
func (b *LessonBuilder) WithVenue(v string) *LessonBuilder { b.p.Venue = lesson.Venue(v); return b }

// WithOccurrences sets the number of occurrences and resets the records.
func (b *LessonBuilder) WithOccurrences(n int) *LessonBuilder {
	b.p.Occurrences = lesson.NumberOfOccurrences(n)
	b.p.Records = nil
	return b
}

// WithAttendance records score for id in the 1-based week.
func (b *LessonBuilder) WithAttendance(id uuid.UUID, week, score int) *LessonBuilder {
	records := attendance.NewRecordList(b.p.Occurrences.Int())
	if b.p.Records != nil {
		records = *b.p.Records
	}
	w := attendance.MustWeek(week)
	a, err := attendance.NewAttendance(score)
	if err != nil {
		panic(err)
	}
	records = records.WithRecord(w, records.Record(w).With(id, a))
	b.p.Records = &records
	return b
}

// Build returns the lesson. It panics on invalid fields.
func (b *LessonBuilder) Build() lesson.Lesson {
	l, err := lesson.NewLesson(b.p)
	if err != nil {
		panic(err)
	}
	return l
}

// ══════════════════════════════════════════════════════════════════════════════
// MODULE CLASSES
// ══════════════════════════════════════════════════════════════════════════════

// ModuleClassBuilder builds module classes with sensible defaults.
type ModuleClassBuilder struct {
	p moduleclass.NewModuleClassParams
}

// NewModuleClassBuilder starts from an empty class.
func NewModuleClassBuilder() *ModuleClassBuilder {
	return &ModuleClassBuilder{p: moduleclass.NewModuleClassParams{Name: "CS2103T Tutorial"}}
}

// WithName sets the name.
func (b *ModuleClassBuilder) WithName(name string) *ModuleClassBuilder {
	b.p.Name = shared.Name(name)
	return b
}

// WithStudents sets the member ids.
func (b *ModuleClassBuilder) WithStudents(ids ...uuid.UUID) *ModuleClassBuilder {
	b.p.StudentIDs = ids
	return b
}

// WithLessons sets the lessons.
func (b *ModuleClassBuilder) WithLessons(lessons ...lesson.Lesson) *ModuleClassBuilder {
	b.p.Lessons = lessons
	return b
}

// Build returns the class. It panics on invalid fields.
func (b *ModuleClassBuilder) Build() moduleclass.ModuleClass {
	m, err := moduleclass.NewModuleClass(b.p)
	if err != nil {
		panic(err)
	}
	return m
}

// CS2103TTutorial returns a class with Alice and Benson and two lessons.
// Alice scored 80 in week 1 of the first lesson.
func CS2103TTutorial() moduleclass.ModuleClass {
	return NewModuleClassBuilder().
		WithName("CS2103T Tutorial").
		WithStudents(AliceID, BensonID).
		WithLessons(
			NewLessonBuilder().WithAttendance(AliceID, 1, 80).Build(),
			NewLessonBuilder().WithDay(lesson.Thursday).WithTimes("13:00", "14:00").WithVenue("COM1-B103").Build(),
		).
		Build()
}

// CS2100Lab returns a class with Benson and no lessons.
func CS2100Lab() moduleclass.ModuleClass {
	return NewModuleClassBuilder().WithName("CS2100 Lab").WithStudents(BensonID).Build()
}

// TypicalTutorsPet returns an aggregate with Alice, Benson and Carl and two classes.
func TypicalTutorsPet() *tutorspet.TutorsPet {
	t, err := tutorspet.FromParts(
		[]student.Student{Alice(), Benson(), Carl()},
		[]moduleclass.ModuleClass{CS2103TTutorial(), CS2100Lab()},
	)
	if err != nil {
		panic(err)
	}
	return t
}
