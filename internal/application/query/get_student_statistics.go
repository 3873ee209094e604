// Package query contains read operations over the displayed lists and the
// current snapshot. Queries never change the model.
package query

import (
	"fmt"
	"strings"

	"github.com/tutorspet/tutorspet/internal/application/command"
	"github.com/tutorspet/tutorspet/internal/domain/attendance"
	"github.com/tutorspet/tutorspet/internal/domain/lesson"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT STATISTICS QUERY
// Participation statistics of one student across the lessons of one class.
// ══════════════════════════════════════════════════════════════════════════════

// DisplayedLists is the part of the model a query resolves display indices against.
type DisplayedLists interface {
	FilteredStudentList() []student.Student
	FilteredModuleClassList() []moduleclass.ModuleClass
}

// GetStudentStatisticsQuery selects a class and a student by display index.
type GetStudentStatisticsQuery struct {
	ModuleClassIndex shared.Index
	StudentIndex     shared.Index
}

// Validate checks that both indices are set.
func (q GetStudentStatisticsQuery) Validate() error {
	if q.ModuleClassIndex.IsZero() {
		return shared.NullArgument("query", "GetStudentStatistics", "class index")
	}
	if q.StudentIndex.IsZero() {
		return shared.NullArgument("query", "GetStudentStatistics", "student index")
	}
	return nil
}

// LessonStatisticsDTO holds the statistics of one lesson.
type LessonStatisticsDTO struct {
	Lesson string `json:"lesson"`

	// Weeks is the number of occurrences of the lesson.
	Weeks int `json:"weeks"`

	// AverageScore is the mean participation score over the attended weeks,
	// or 0 when no week was attended.
	AverageScore float64 `json:"average_score"`

	// AbsentWeeks lists the 1-based weeks without attendance.
	AbsentWeeks []int `json:"absent_weeks"`
}

// AttendedWeeks returns the number of weeks with attendance.
func (d LessonStatisticsDTO) AttendedWeeks() int {
	return d.Weeks - len(d.AbsentWeeks)
}

// StudentStatisticsDTO holds the statistics of a student in a class.
type StudentStatisticsDTO struct {
	Student     string                `json:"student"`
	ModuleClass string                `json:"module_class"`
	Lessons     []LessonStatisticsDTO `json:"lessons"`
}

// String renders the statistics for the result display.
func (d StudentStatisticsDTO) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Statistics of %s in %s:", d.Student, d.ModuleClass)
	if len(d.Lessons) == 0 {
		b.WriteString("\nThis class has no lessons.")
		return b.String()
	}
	for i, l := range d.Lessons {
		fmt.Fprintf(&b, "\n%d. %s\nAverage participation score: %.2f\nNumber of weeks absent: %d",
			i+1, l.Lesson, l.AverageScore, len(l.AbsentWeeks))
		if len(l.AbsentWeeks) > 0 {
			weeks := make([]string, len(l.AbsentWeeks))
			for j, w := range l.AbsentWeeks {
				weeks[j] = fmt.Sprintf("%d", w)
			}
			fmt.Fprintf(&b, "\nWeeks absent: %s", strings.Join(weeks, ", "))
		}
	}
	return b.String()
}

// GetStudentStatisticsHandler answers GetStudentStatisticsQuery.
type GetStudentStatisticsHandler struct {
	lists DisplayedLists
}

// NewGetStudentStatisticsHandler creates the handler.
func NewGetStudentStatisticsHandler(lists DisplayedLists) *GetStudentStatisticsHandler {
	return &GetStudentStatisticsHandler{lists: lists}
}

// Handle resolves the indices and computes the statistics. It fails with the
// command index errors and with command.ErrStudentNotInClass.
func (h *GetStudentStatisticsHandler) Handle(q GetStudentStatisticsQuery) (*StudentStatisticsDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s, err := command.StudentAt(h.lists.FilteredStudentList(), q.StudentIndex)
	if err != nil {
		return nil, err
	}
	m, err := command.ModuleClassAt(h.lists.FilteredModuleClassList(), q.ModuleClassIndex)
	if err != nil {
		return nil, err
	}
	if err := command.CheckMember(m, s.ID()); err != nil {
		return nil, err
	}

	out := &StudentStatisticsDTO{
		Student:     s.Name().String(),
		ModuleClass: m.Name().String(),
		Lessons:     make([]LessonStatisticsDTO, 0, len(m.Lessons())),
	}
	for _, l := range m.Lessons() {
		out.Lessons = append(out.Lessons, lessonStatistics(l, s))
	}
	return out, nil
}

func lessonStatistics(l lesson.Lesson, s student.Student) LessonStatisticsDTO {
	records := l.AttendanceRecords().Records()
	stats := LessonStatisticsDTO{
		Lesson:      l.String(),
		Weeks:       len(records),
		AbsentWeeks: make([]int, 0),
	}

	scores := make([]attendance.Attendance, 0, len(records))
	for i, r := range records {
		a, ok := r.Get(s.ID())
		if !ok {
			stats.AbsentWeeks = append(stats.AbsentWeeks, i+1)
			continue
		}
		scores = append(scores, a)
	}
	stats.AverageScore = AverageOf(scores)
	return stats
}

// AverageOf returns the mean score of the given attendances, or 0 for none.
func AverageOf(scores []attendance.Attendance) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0
	for _, a := range scores {
		total += a.ParticipationScore()
	}
	return float64(total) / float64(len(scores))
}
