// Package lesson models recurring weekly lessons of a module class.
package lesson

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/attendance"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Day is the day of the week a lesson takes place on.
type Day string

const (
	Monday    Day = "MONDAY"
	Tuesday   Day = "TUESDAY"
	Wednesday Day = "WEDNESDAY"
	Thursday  Day = "THURSDAY"
	Friday    Day = "FRIDAY"
	Saturday  Day = "SATURDAY"
	Sunday    Day = "SUNDAY"
)

// DayConstraints describes what ParseDay accepts.
const DayConstraints = "Day should be a valid day of the week, e.g. Monday"

// ParseDay parses a day name, ignoring case.
func ParseDay(value string) (Day, error) {
	d := Day(strings.ToUpper(strings.TrimSpace(value)))
	if !d.IsValid() {
		return "", shared.NewDomainError("lesson", "ParseDay", shared.ErrInvalidFormat, DayConstraints)
	}
	return d, nil
}

// IsValid checks that the day is one of the seven week days.
func (d Day) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d Day) String() string {
	return string(d)
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	minutes int
}

// TimeConstraints describes what ParseTime accepts.
const TimeConstraints = "Time should be in the 24-hour format HH:mm"

// ParseTime parses an "HH:mm" value.
func ParseTime(value string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return TimeOfDay{}, shared.WrapError("lesson", "ParseTime", shared.ErrInvalidFormat, TimeConstraints, err)
	}
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
}

// MustTime is ParseTime for values known to be valid. It panics otherwise.
func MustTime(value string) TimeOfDay {
	t, err := ParseTime(value)
	if err != nil {
		panic(err)
	}
	return t
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

// Minutes returns the minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.minutes
}

// String returns the "HH:mm" representation.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// Venue is where a lesson takes place.
type Venue string

// MaxVenueLength bounds the venue length in characters.
const MaxVenueLength = 50

// VenueConstraints describes what NewVenue accepts.
const VenueConstraints = "Venue should not be blank and should be at most 50 characters long"

// NewVenue creates a new Venue with validation.
func NewVenue(value string) (Venue, error) {
	value = strings.TrimSpace(value)
	if value == "" || utf8.RuneCountInString(value) > MaxVenueLength {
		return "", shared.NewDomainError("lesson", "NewVenue", shared.ErrInvalidInput, VenueConstraints)
	}
	return Venue(value), nil
}

// String returns the string representation.
func (v Venue) String() string {
	return string(v)
}

// NumberOfOccurrences is how many calendar weeks a lesson recurs.
type NumberOfOccurrences int

// Occurrence bounds.
const (
	MinOccurrences NumberOfOccurrences = 1
	MaxOccurrences NumberOfOccurrences = 52
)

// OccurrencesConstraints describes what NewNumberOfOccurrences accepts.
const OccurrencesConstraints = "Number of occurrences should be an integer between 1 and 52 inclusive"

// NewNumberOfOccurrences creates a NumberOfOccurrences with validation.
func NewNumberOfOccurrences(n int) (NumberOfOccurrences, error) {
	o := NumberOfOccurrences(n)
	if o < MinOccurrences || o > MaxOccurrences {
		return 0, shared.NewDomainError("lesson", "NewNumberOfOccurrences", shared.ErrValueOutOfRange, OccurrencesConstraints)
	}
	return o, nil
}

// Int returns the underlying int value.
func (n NumberOfOccurrences) Int() int {
	return int(n)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: LESSON
// ══════════════════════════════════════════════════════════════════════════════

// Errors returned by NewLesson.
var (
	ErrInvalidTimeRange = shared.NewDomainError("lesson", "NewLesson", shared.ErrInvalidInput,
		"The start time should be before the end time")
	ErrRecordCountMismatch = shared.NewDomainError("lesson", "NewLesson", shared.ErrInvalidState,
		"The number of attendance records should match the number of occurrences")
)

// Lesson is an immutable weekly lesson with its attendance records.
type Lesson struct {
	startTime   TimeOfDay
	endTime     TimeOfDay
	day         Day
	occurrences NumberOfOccurrences
	venue       Venue
	records     attendance.RecordList
}

// NewLessonParams holds the fields of a Lesson.
type NewLessonParams struct {
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	Day         Day
	Occurrences NumberOfOccurrences
	Venue       Venue

	// Records defaults to Occurrences empty records when nil.
	Records *attendance.RecordList
}

// NewLesson creates a Lesson, checking the time range and the record count.
func NewLesson(p NewLessonParams) (Lesson, error) {
	if !p.Day.IsValid() {
		return Lesson{}, shared.NewDomainError("lesson", "NewLesson", shared.ErrInvalidFormat, DayConstraints)
	}
	if p.Occurrences < MinOccurrences || p.Occurrences > MaxOccurrences {
		return Lesson{}, shared.NewDomainError("lesson", "NewLesson", shared.ErrValueOutOfRange, OccurrencesConstraints)
	}
	if p.Venue == "" {
		return Lesson{}, shared.NewDomainError("lesson", "NewLesson", shared.ErrInvalidInput, VenueConstraints)
	}
	if !p.StartTime.Before(p.EndTime) {
		return Lesson{}, ErrInvalidTimeRange
	}
	records := attendance.NewRecordList(p.Occurrences.Int())
	if p.Records != nil {
		if p.Records.Len() != p.Occurrences.Int() {
			return Lesson{}, ErrRecordCountMismatch
		}
		records = attendance.RecordListOf(p.Records.Records())
	}
	return Lesson{
		startTime:   p.StartTime,
		endTime:     p.EndTime,
		day:         p.Day,
		occurrences: p.Occurrences,
		venue:       p.Venue,
		records:     records,
	}, nil
}

// StartTime returns the start time.
func (l Lesson) StartTime() TimeOfDay { return l.startTime }

// EndTime returns the end time.
func (l Lesson) EndTime() TimeOfDay { return l.endTime }

// Day returns the day of the week.
func (l Lesson) Day() Day { return l.day }

// NumberOfOccurrences returns how many weeks the lesson recurs.
func (l Lesson) NumberOfOccurrences() NumberOfOccurrences { return l.occurrences }

// Venue returns the venue.
func (l Lesson) Venue() Venue { return l.venue }

// AttendanceRecords returns the weekly attendance records.
func (l Lesson) AttendanceRecords() attendance.RecordList { return l.records }

// Params returns the lesson's fields, for building an edited copy.
func (l Lesson) Params() NewLessonParams {
	records := l.records
	return NewLessonParams{
		StartTime:   l.startTime,
		EndTime:     l.endTime,
		Day:         l.day,
		Occurrences: l.occurrences,
		Venue:       l.venue,
		Records:     &records,
	}
}

// WithRecords returns a copy of the lesson with its attendance records replaced.
// records must hold one record per occurrence.
func (l Lesson) WithRecords(records attendance.RecordList) Lesson {
	out := l
	out.records = records
	return out
}

// WithoutStudent returns a copy of the lesson with id removed from every week's record.
func (l Lesson) WithoutStudent(id uuid.UUID) Lesson {
	if !l.records.ReferencesStudent(id) {
		return l
	}
	return l.WithRecords(l.records.WithoutStudent(id))
}

// IsSame reports whether other occupies the same time slot on the same day.
// Venue and records are ignored.
func (l Lesson) IsSame(other Lesson) bool {
	return l.day == other.day && l.startTime == other.startTime && l.endTime == other.endTime
}

// Equal reports whether every field of both lessons is equal.
func (l Lesson) Equal(other Lesson) bool {
	return l.IsSame(other) &&
		l.occurrences == other.occurrences &&
		l.venue == other.venue &&
		l.records.Equal(other.records)
}

// String returns a human-readable representation.
func (l Lesson) String() string {
	return fmt.Sprintf("%s %s-%s Venue: %s Occurrences: %d", l.day, l.startTime, l.endTime, l.venue, l.occurrences)
}
