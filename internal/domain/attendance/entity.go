// Package attendance models per-week participation of students in a lesson.
package attendance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE
// ══════════════════════════════════════════════════════════════════════════════

// Participation score bounds.
const (
	MinParticipationScore = 0
	MaxParticipationScore = 100
)

// ScoreConstraints describes what NewAttendance accepts.
const ScoreConstraints = "Participation score should be an integer between 0 and 100 inclusive"

// Attendance is the participation score of one student in one lesson-week.
type Attendance struct {
	score int
}

// NewAttendance creates an Attendance with validation.
func NewAttendance(score int) (Attendance, error) {
	if score < MinParticipationScore || score > MaxParticipationScore {
		return Attendance{}, shared.NewDomainError("attendance", "NewAttendance", shared.ErrValueOutOfRange, ScoreConstraints)
	}
	return Attendance{score: score}, nil
}

// ParticipationScore returns the score.
func (a Attendance) ParticipationScore() int {
	return a.score
}

// String returns the string representation.
func (a Attendance) String() string {
	return fmt.Sprintf("%d", a.score)
}

// ══════════════════════════════════════════════════════════════════════════════
// WEEK
// ══════════════════════════════════════════════════════════════════════════════

// Week is a 1-based position in a lesson's recurrence range. The zero Week means
// "not provided".
type Week struct {
	index shared.Index
}

// NewWeek creates a Week from its 1-based number.
func NewWeek(oneBased int) (Week, error) {
	idx, err := shared.IndexFromOneBased(oneBased)
	if err != nil {
		return Week{}, shared.WrapError("attendance", "NewWeek", shared.ErrInvalidIndex, "week must be a positive integer", err)
	}
	return Week{index: idx}, nil
}

// MustWeek is NewWeek for values known to be valid. It panics otherwise.
func MustWeek(oneBased int) Week {
	w, err := NewWeek(oneBased)
	if err != nil {
		panic(err)
	}
	return w
}

// ZeroBased returns the 0-based week index.
func (w Week) ZeroBased() int { return w.index.ZeroBased() }

// OneBased returns the week number as shown to users.
func (w Week) OneBased() int { return w.index.OneBased() }

// IsZero reports whether the week was not provided.
func (w Week) IsZero() bool { return w.index.IsZero() }

// String returns the 1-based representation.
func (w Week) String() string { return w.index.String() }

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE RECORD
// ══════════════════════════════════════════════════════════════════════════════

// Record maps student ids to their attendance for one week.
// A student without an entry has no attendance that week.
type Record struct {
	entries map[uuid.UUID]Attendance
}

// NewRecord creates a Record holding a copy of entries.
func NewRecord(entries map[uuid.UUID]Attendance) Record {
	m := make(map[uuid.UUID]Attendance, len(entries))
	for id, a := range entries {
		m[id] = a
	}
	return Record{entries: m}
}

// EmptyRecord creates a Record without entries.
func EmptyRecord() Record {
	return NewRecord(nil)
}

// Get returns the attendance of id.
func (r Record) Get(id uuid.UUID) (Attendance, bool) {
	a, ok := r.entries[id]
	return a, ok
}

// Has reports whether id has an attendance entry.
func (r Record) Has(id uuid.UUID) bool {
	_, ok := r.entries[id]
	return ok
}

// Len returns the number of entries.
func (r Record) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the entries.
func (r Record) Entries() map[uuid.UUID]Attendance {
	return NewRecord(r.entries).entries
}

// StudentIDs returns the ids with an entry, sorted.
func (r Record) StudentIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// With returns a copy of the record with id's attendance set to a.
func (r Record) With(id uuid.UUID, a Attendance) Record {
	out := NewRecord(r.entries)
	out.entries[id] = a
	return out
}

// Without returns a copy of the record without an entry for id.
func (r Record) Without(id uuid.UUID) Record {
	out := NewRecord(r.entries)
	delete(out.entries, id)
	return out
}

// Equal reports whether both records hold the same entries.
func (r Record) Equal(other Record) bool {
	if len(r.entries) != len(other.entries) {
		return false
	}
	for id, a := range r.entries {
		if b, ok := other.entries[id]; !ok || a != b {
			return false
		}
	}
	return true
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE RECORD LIST
// ══════════════════════════════════════════════════════════════════════════════

// RecordList holds one Record per occurrence week of a lesson.
type RecordList struct {
	records []Record
}

// NewRecordList creates a list of weeks empty records.
func NewRecordList(weeks int) RecordList {
	records := make([]Record, weeks)
	for i := range records {
		records[i] = EmptyRecord()
	}
	return RecordList{records: records}
}

// RecordListOf creates a list holding copies of records.
func RecordListOf(records []Record) RecordList {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = NewRecord(r.entries)
	}
	return RecordList{records: out}
}

// Len returns the number of weeks.
func (l RecordList) Len() int {
	return len(l.records)
}

// ContainsWeek reports whether w addresses one of the list's weeks.
func (l RecordList) ContainsWeek(w Week) bool {
	return !w.IsZero() && w.ZeroBased() < len(l.records)
}

// Record returns the record of week w. It panics when the week is not contained.
func (l RecordList) Record(w Week) Record {
	return l.records[w.ZeroBased()]
}

// Records returns a copy of all weekly records.
func (l RecordList) Records() []Record {
	return RecordListOf(l.records).records
}

// WithRecord returns a copy of the list with week w's record replaced.
func (l RecordList) WithRecord(w Week, r Record) RecordList {
	out := RecordList{records: append(make([]Record, 0, len(l.records)), l.records...)}
	out.records[w.ZeroBased()] = r
	return out
}

// WithoutStudent returns a copy of the list with id removed from every week.
func (l RecordList) WithoutStudent(id uuid.UUID) RecordList {
	out := make([]Record, len(l.records))
	for i, r := range l.records {
		if r.Has(id) {
			out[i] = r.Without(id)
		} else {
			out[i] = r
		}
	}
	return RecordList{records: out}
}

// ReferencesStudent reports whether any week holds an entry for id.
func (l RecordList) ReferencesStudent(id uuid.UUID) bool {
	for _, r := range l.records {
		if r.Has(id) {
			return true
		}
	}
	return false
}

// Equal reports whether both lists hold equal records in the same order.
func (l RecordList) Equal(other RecordList) bool {
	if len(l.records) != len(other.records) {
		return false
	}
	for i := range l.records {
		if !l.records[i].Equal(other.records[i]) {
			return false
		}
	}
	return true
}

// String returns a compact representation, e.g. "[{} {80}]".
func (l RecordList) String() string {
	parts := make([]string, len(l.records))
	for i, r := range l.records {
		scores := make([]string, 0, r.Len())
		for _, id := range r.StudentIDs() {
			a, _ := r.Get(id)
			scores = append(scores, a.String())
		}
		parts[i] = "{" + strings.Join(scores, " ") + "}"
	}
	return "[" + strings.Join(parts, " ") + "]"
}
