// Package export writes attendance of a module class to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tutorspet/tutorspet/internal/application/query"
	"github.com/tutorspet/tutorspet/internal/domain/attendance"
	"github.com/tutorspet/tutorspet/internal/domain/lesson"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/pkg/logger"
)

// MembersSheet is the only sheet of a workbook exported for a class without lessons.
const MembersSheet = "Members"

// LessonSheetName returns the sheet name of the lesson at the 1-based position.
func LessonSheetName(position int) string {
	return fmt.Sprintf("Lesson %d", position)
}

// AttendanceSheet exports one workbook per class: one sheet per lesson, one
// row per member and one column per week, followed by the member's average.
type AttendanceSheet struct {
	logger *logger.Logger
}

// NewAttendanceSheet creates an exporter.
func NewAttendanceSheet(log *logger.Logger) *AttendanceSheet {
	if log == nil {
		log = logger.Nop()
	}
	return &AttendanceSheet{logger: log.With(logger.Component("attendance_export"))}
}

// Build creates the workbook for m. Members are listed in the order of the
// student list of t. The caller must close the returned file.
func (s *AttendanceSheet) Build(t tutorspet.ReadOnlyTutorsPet, m moduleclass.ModuleClass) (*excelize.File, error) {
	members := membersOf(t, m)

	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)

	lessons := m.Lessons()
	if len(lessons) == 0 {
		if err := f.SetSheetName(defaultSheet, MembersSheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		if err := writeMembers(f, members); err != nil {
			_ = f.Close()
			return nil, err
		}
		return f, nil
	}

	for i, l := range lessons {
		name := LessonSheetName(i + 1)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := writeLesson(f, name, l, members); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	s.logger.Debug("workbook built",
		logger.ModuleClass(m.Name().String()),
		logger.Int("lessons", len(lessons)),
		logger.Int("members", len(members)),
	)
	return f, nil
}

// Write builds the workbook for m and writes it to w.
func (s *AttendanceSheet) Write(w io.Writer, t tutorspet.ReadOnlyTutorsPet, m moduleclass.ModuleClass) error {
	f, err := s.Build(t, m)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close workbook", logger.Err(err))
		}
	}()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile builds the workbook for m and saves it at path.
func (s *AttendanceSheet) WriteFile(path string, t tutorspet.ReadOnlyTutorsPet, m moduleclass.ModuleClass) error {
	f, err := s.Build(t, m)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close workbook", logger.Err(err))
		}
	}()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	s.logger.Info("attendance exported", logger.ModuleClass(m.Name().String()), logger.String("path", path))
	return nil
}

func membersOf(t tutorspet.ReadOnlyTutorsPet, m moduleclass.ModuleClass) []student.Student {
	members := make([]student.Student, 0, len(m.StudentIDs()))
	for _, s := range t.Students().Items() {
		if m.HasStudent(s.ID()) {
			members = append(members, s)
		}
	}
	return members
}

func writeMembers(f *excelize.File, members []student.Student) error {
	if err := f.SetSheetRow(MembersSheet, "A1", &[]interface{}{"Student", "Phone", "Email"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, s := range members {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{s.Name().String(), s.Phone().String(), s.Email().String()}
		if err := f.SetSheetRow(MembersSheet, cell, &row); err != nil {
			return fmt.Errorf("write member %s: %w", s.Name(), err)
		}
	}
	return nil
}

func writeLesson(f *excelize.File, sheet string, l lesson.Lesson, members []student.Student) error {
	records := l.AttendanceRecords().Records()

	header := make([]interface{}, 0, len(records)+2)
	header = append(header, "Student")
	for week := range records {
		header = append(header, fmt.Sprintf("Week %d", week+1))
	}
	header = append(header, "Average")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header of %s: %w", sheet, err)
	}

	for i, s := range members {
		row := make([]interface{}, 0, len(records)+2)
		row = append(row, s.Name().String())
		scores := make([]attendance.Attendance, 0, len(records))
		for _, r := range records {
			a, ok := r.Get(s.ID())
			if !ok {
				row = append(row, nil)
				continue
			}
			row = append(row, a.ParticipationScore())
			scores = append(scores, a)
		}
		if len(scores) > 0 {
			row = append(row, query.AverageOf(scores))
		} else {
			row = append(row, nil)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s in %s: %w", s.Name(), sheet, err)
		}
	}

	// Lesson details go one blank row below the table.
	caption, err := excelize.CoordinatesToCellName(1, len(members)+3)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, caption, l.String())
}

// ClassByName returns the class of t with exactly the given name.
func ClassByName(t tutorspet.ReadOnlyTutorsPet, name string) (moduleclass.ModuleClass, error) {
	for _, m := range t.ModuleClasses().Items() {
		if m.Name().String() == name {
			return m, nil
		}
	}
	return moduleclass.ModuleClass{}, shared.WrapError("export", "ClassByName", shared.ErrNotFound,
		fmt.Sprintf("no class named %q", name), moduleclass.ErrModuleClassNotFound)
}
