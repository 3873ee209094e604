package serialization

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/attendance"
	"github.com/tutorspet/tutorspet/internal/domain/lesson"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAPPING ERRORS
// ══════════════════════════════════════════════════════════════════════════════

// MappingError locates a field of the document that could not be converted.
type MappingError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *MappingError) Unwrap() error {
	return e.Err
}

func mappingError(err error, format string, args ...interface{}) error {
	return &MappingError{Path: fmt.Sprintf(format, args...), Err: err}
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN -> DOCUMENT
// ══════════════════════════════════════════════════════════════════════════════

// FromDomain converts the aggregate to its document.
func FromDomain(t tutorspet.ReadOnlyTutorsPet) Document {
	students := t.Students().Items()
	classes := t.ModuleClasses().Items()

	doc := Document{
		Students:      make([]StudentDTO, 0, len(students)),
		ModuleClasses: make([]ModuleClassDTO, 0, len(classes)),
	}
	for _, s := range students {
		doc.Students = append(doc.Students, studentToDTO(s))
	}
	for _, m := range classes {
		doc.ModuleClasses = append(doc.ModuleClasses, moduleClassToDTO(m))
	}
	return doc
}

func studentToDTO(s student.Student) StudentDTO {
	tags := make([]string, 0, len(s.Tags()))
	for _, t := range s.Tags() {
		tags = append(tags, string(t))
	}
	return StudentDTO{
		UUID:  s.ID().String(),
		Name:  s.Name().String(),
		Phone: s.Phone().String(),
		Email: s.Email().String(),
		Tags:  tags,
	}
}

func moduleClassToDTO(m moduleclass.ModuleClass) ModuleClassDTO {
	ids := make([]string, 0, len(m.StudentIDs()))
	for _, id := range m.StudentIDs() {
		ids = append(ids, id.String())
	}
	lessons := make([]LessonDTO, 0, len(m.Lessons()))
	for _, l := range m.Lessons() {
		lessons = append(lessons, lessonToDTO(l))
	}
	return ModuleClassDTO{
		Name:         m.Name().String(),
		StudentUUIDs: ids,
		Lessons:      lessons,
	}
}

func lessonToDTO(l lesson.Lesson) LessonDTO {
	records := l.AttendanceRecords().Records()
	weeks := make([]map[string]AttendanceDTO, len(records))
	for i, r := range records {
		week := make(map[string]AttendanceDTO, r.Len())
		for id, a := range r.Entries() {
			week[id.String()] = AttendanceDTO{ParticipationScore: a.ParticipationScore()}
		}
		weeks[i] = week
	}
	return LessonDTO{
		StartTime:            l.StartTime().String(),
		EndTime:              l.EndTime().String(),
		Day:                  l.Day().String(),
		NumberOfOccurrences:  l.NumberOfOccurrences().Int(),
		Venue:                l.Venue().String(),
		AttendanceRecordList: weeks,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// DOCUMENT -> DOMAIN
// ══════════════════════════════════════════════════════════════════════════════

// ToDomain converts the document back to an aggregate. Every field is validated
// with the same rules the commands apply, and classes may only refer to stored
// students.
func (d Document) ToDomain() (*tutorspet.TutorsPet, error) {
	students := make([]student.Student, 0, len(d.Students))
	for i, dto := range d.Students {
		s, err := dto.toDomain()
		if err != nil {
			return nil, mappingError(err, "students[%d]", i)
		}
		students = append(students, s)
	}

	classes := make([]moduleclass.ModuleClass, 0, len(d.ModuleClasses))
	for i, dto := range d.ModuleClasses {
		m, err := dto.toDomain()
		if err != nil {
			return nil, mappingError(err, "moduleClasses[%d]", i)
		}
		classes = append(classes, m)
	}

	return tutorspet.FromParts(students, classes)
}

func (dto StudentDTO) toDomain() (student.Student, error) {
	id, err := uuid.Parse(dto.UUID)
	if err != nil {
		return student.Student{}, mappingError(err, "uuid")
	}
	name, err := shared.NewName(dto.Name)
	if err != nil {
		return student.Student{}, mappingError(err, "name")
	}
	phone, err := shared.NewPhone(dto.Phone)
	if err != nil {
		return student.Student{}, mappingError(err, "phone")
	}
	email, err := shared.NewEmail(dto.Email)
	if err != nil {
		return student.Student{}, mappingError(err, "email")
	}
	tags := make([]shared.Tag, 0, len(dto.Tags))
	for i, raw := range dto.Tags {
		tag, err := shared.NewTag(raw)
		if err != nil {
			return student.Student{}, mappingError(err, "tags[%d]", i)
		}
		tags = append(tags, tag)
	}

	return student.NewStudent(student.NewStudentParams{
		ID:    id,
		Name:  name,
		Phone: phone,
		Email: email,
		Tags:  tags,
	})
}

func (dto ModuleClassDTO) toDomain() (moduleclass.ModuleClass, error) {
	name, err := shared.NewName(dto.Name)
	if err != nil {
		return moduleclass.ModuleClass{}, mappingError(err, "name")
	}
	ids := make([]uuid.UUID, 0, len(dto.StudentUUIDs))
	for i, raw := range dto.StudentUUIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return moduleclass.ModuleClass{}, mappingError(err, "studentUuids[%d]", i)
		}
		ids = append(ids, id)
	}
	lessons := make([]lesson.Lesson, 0, len(dto.Lessons))
	for i, l := range dto.Lessons {
		converted, err := l.toDomain()
		if err != nil {
			return moduleclass.ModuleClass{}, mappingError(err, "lessons[%d]", i)
		}
		lessons = append(lessons, converted)
	}

	return moduleclass.NewModuleClass(moduleclass.NewModuleClassParams{
		Name:       name,
		StudentIDs: ids,
		Lessons:    lessons,
	})
}

func (dto LessonDTO) toDomain() (lesson.Lesson, error) {
	start, err := lesson.ParseTime(dto.StartTime)
	if err != nil {
		return lesson.Lesson{}, mappingError(err, "startTime")
	}
	end, err := lesson.ParseTime(dto.EndTime)
	if err != nil {
		return lesson.Lesson{}, mappingError(err, "endTime")
	}
	day, err := lesson.ParseDay(dto.Day)
	if err != nil {
		return lesson.Lesson{}, mappingError(err, "day")
	}
	occurrences, err := lesson.NewNumberOfOccurrences(dto.NumberOfOccurrences)
	if err != nil {
		return lesson.Lesson{}, mappingError(err, "numberOfOccurrences")
	}
	venue, err := lesson.NewVenue(dto.Venue)
	if err != nil {
		return lesson.Lesson{}, mappingError(err, "venue")
	}

	weeks := make([]attendance.Record, 0, len(dto.AttendanceRecordList))
	for i, week := range dto.AttendanceRecordList {
		entries := make(map[uuid.UUID]attendance.Attendance, len(week))
		for rawID, a := range week {
			id, err := uuid.Parse(rawID)
			if err != nil {
				return lesson.Lesson{}, mappingError(err, "attendanceRecordList[%d][%s]", i, rawID)
			}
			score, err := attendance.NewAttendance(a.ParticipationScore)
			if err != nil {
				return lesson.Lesson{}, mappingError(err, "attendanceRecordList[%d][%s]", i, rawID)
			}
			entries[id] = score
		}
		weeks = append(weeks, attendance.NewRecord(entries))
	}
	records := attendance.RecordListOf(weeks)

	return lesson.NewLesson(lesson.NewLessonParams{
		StartTime:   start,
		EndTime:     end,
		Day:         day,
		Occurrences: occurrences,
		Venue:       venue,
		Records:     &records,
	})
}
