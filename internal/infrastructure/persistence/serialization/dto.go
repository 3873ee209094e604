// Package serialization converts the aggregate to and from its JSON document.
// The document is the single storage format shared by every backend.
package serialization

// ══════════════════════════════════════════════════════════════════════════════
// DOCUMENT DTOs
// ══════════════════════════════════════════════════════════════════════════════

// Document is the stored form of the whole aggregate.
type Document struct {
	Students      []StudentDTO     `json:"students"`
	ModuleClasses []ModuleClassDTO `json:"moduleClasses"`
}

// StudentDTO is the stored form of a student.
type StudentDTO struct {
	// UUID is the stable id referenced by classes and attendance
	UUID string `json:"uuid"`

	Name  string   `json:"name"`
	Phone string   `json:"phone"`
	Email string   `json:"email"`
	Tags  []string `json:"tags"`
}

// ModuleClassDTO is the stored form of a module class.
type ModuleClassDTO struct {
	Name         string      `json:"name"`
	StudentUUIDs []string    `json:"studentUuids"`
	Lessons      []LessonDTO `json:"lessons"`
}

// LessonDTO is the stored form of a lesson.
type LessonDTO struct {
	StartTime           string `json:"startTime"` // HH:mm
	EndTime             string `json:"endTime"`   // HH:mm
	Day                 string `json:"day"`
	NumberOfOccurrences int    `json:"numberOfOccurrences"`
	Venue               string `json:"venue"`

	// AttendanceRecordList holds one map per week, keyed by student uuid
	AttendanceRecordList []map[string]AttendanceDTO `json:"attendanceRecordList"`
}

// AttendanceDTO is the stored form of one attendance entry.
type AttendanceDTO struct {
	ParticipationScore int `json:"participationScore"`
}
