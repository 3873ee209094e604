// Package command contains write operations (CQRS - Commands).
//
// Every user intent is a Command executed against a model.Model. A command
// either succeeds and commits a new snapshot, or fails with one of the errors
// below and leaves the committed state untouched.
package command

import (
	"errors"

	"github.com/tutorspet/tutorspet/internal/application/model"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
)

// Command is a closed set of user intents. Only types in this package implement it.
type Command interface {
	model.Executable
	isCommand()
}

// Result is the outcome of a successful command.
type Result = model.Result

// ══════════════════════════════════════════════════════════════════════════════
// COMMAND ERRORS
// ══════════════════════════════════════════════════════════════════════════════

const domain = "command"

var (
	// ErrInvalidStudentIndex - the student index is outside the displayed student list.
	ErrInvalidStudentIndex = shared.NewDomainError(domain, "Execute", shared.ErrInvalidIndex,
		"The student index provided is invalid")

	// ErrInvalidModuleClassIndex - the class index is outside the displayed class list.
	ErrInvalidModuleClassIndex = shared.NewDomainError(domain, "Execute", shared.ErrInvalidIndex,
		"The class index provided is invalid")

	// ErrInvalidLessonIndex - the lesson index is outside the class's lessons.
	ErrInvalidLessonIndex = shared.NewDomainError(domain, "Execute", shared.ErrInvalidIndex,
		"The lesson index provided is invalid")

	// ErrInvalidWeek - the week is outside the lesson's occurrences.
	ErrInvalidWeek = shared.NewDomainError(domain, "Execute", shared.ErrInvalidIndex,
		"The week provided is invalid")

	// ErrDuplicateStudent - another student already has this name or id.
	ErrDuplicateStudent = shared.NewDomainError(domain, "Execute", shared.ErrAlreadyExists,
		"This student already exists in Tutor's Pet.")

	// ErrDuplicateModuleClass - another class already has this name.
	ErrDuplicateModuleClass = shared.NewDomainError(domain, "Execute", shared.ErrAlreadyExists,
		"This class already exists in Tutor's Pet.")

	// ErrDuplicateLesson - another lesson of the class occupies this slot.
	ErrDuplicateLesson = shared.NewDomainError(domain, "Execute", shared.ErrAlreadyExists,
		"This lesson already exists.")

	// ErrStudentNotInClass - the student is not a member of the class.
	ErrStudentNotInClass = shared.NewDomainError(domain, "Execute", shared.ErrInvalidState,
		"The student is not in the class")

	// ErrUnknownStudent - a class or lesson refers to a student Tutor's Pet does not hold.
	ErrUnknownStudent = shared.WrapError(domain, "Execute", shared.ErrInvalidState,
		"The class refers to a student that does not exist", tutorspet.ErrUnknownStudentReference)

	// ErrStudentAlreadyLinked - the student is already a member of the class.
	ErrStudentAlreadyLinked = shared.NewDomainError(domain, "Execute", shared.ErrAlreadyExists,
		"The student is already in the class")

	// ErrNotEdited - an edit command carried no field to change.
	ErrNotEdited = shared.NewDomainError(domain, "Execute", shared.ErrInvalidInput,
		"At least one field to edit must be provided.")

	// ErrMissingAttendance - the student has no attendance for the week.
	ErrMissingAttendance = shared.NewDomainError(domain, "Execute", shared.ErrNotFound,
		"The student does not have attendance for this week")

	// ErrAttendanceExists - the student already has attendance for the week.
	ErrAttendanceExists = shared.NewDomainError(domain, "Execute", shared.ErrAlreadyExists,
		"The student already has attendance for this week")

	// ErrInvalidTimeRange - the lesson would end before it starts.
	ErrInvalidTimeRange = shared.NewDomainError(domain, "Execute", shared.ErrInvalidInput,
		"The start time should be before the end time")
)

// IsCommandError reports whether err is one of the errors a command reports to the user.
func IsCommandError(err error) bool {
	var de *shared.DomainError
	return errors.As(err, &de) && de.Domain == domain
}

// translate maps domain container errors onto command errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, student.ErrDuplicateStudent):
		return ErrDuplicateStudent
	case errors.Is(err, moduleclass.ErrDuplicateModuleClass):
		return ErrDuplicateModuleClass
	case errors.Is(err, moduleclass.ErrDuplicateLesson):
		return ErrDuplicateLesson
	default:
		return err
	}
}
