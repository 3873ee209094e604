// Package model is the facade commands operate on: the working state, the
// filtered lists shown to the user and the undo/redo history.
package model

import (
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
)

// Model is the interface commands are executed against.
type Model interface {
	// TutorsPet returns the working state. Changes become permanent on Commit.
	TutorsPet() *tutorspet.TutorsPet

	// FilteredStudentList returns the students currently shown, in display order.
	FilteredStudentList() []student.Student

	// UpdateFilteredStudentList changes the student filter. A nil predicate is rejected.
	UpdateFilteredStudentList(pred student.Predicate) error

	// FilteredModuleClassList returns the module classes currently shown, in display order.
	FilteredModuleClassList() []moduleclass.ModuleClass

	// UpdateFilteredModuleClassList changes the class filter. A nil predicate is rejected.
	UpdateFilteredModuleClassList(pred moduleclass.Predicate) error

	// Commit records the working state as a new snapshot labelled message.
	Commit(message string)

	// Undo restores the previous snapshot and returns the label of the undone one.
	Undo() (string, error)

	// Redo restores the next snapshot and returns its label.
	Redo() (string, error)
}

// Result is the outcome of a successful command.
type Result struct {
	// Feedback is shown to the user and labels the history snapshot.
	Feedback string
}

// Executable is anything Manager.Execute can run.
type Executable interface {
	Execute(m Model) (Result, error)
}
