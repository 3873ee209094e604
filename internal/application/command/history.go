package command

import (
	"fmt"

	"github.com/tutorspet/tutorspet/internal/application/model"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/student"
)

// History command messages.
const (
	MessageUndoSuccess = "Undo success! Undone: %s"
	MessageRedoSuccess = "Redo success! Redone: %s"
)

// UndoCommand restores the snapshot before the current one and shows every entity.
type UndoCommand struct{}

// Execute implements Command.
func (*UndoCommand) Execute(m model.Model) (Result, error) {
	label, err := m.Undo()
	if err != nil {
		return Result{}, err
	}
	if err := showAll(m); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageUndoSuccess, label)}, nil
}

func (*UndoCommand) isCommand() {}

// RedoCommand restores the snapshot after the current one and shows every entity.
type RedoCommand struct{}

// Execute implements Command.
func (*RedoCommand) Execute(m model.Model) (Result, error) {
	label, err := m.Redo()
	if err != nil {
		return Result{}, err
	}
	if err := showAll(m); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageRedoSuccess, label)}, nil
}

func (*RedoCommand) isCommand() {}

func showAll(m model.Model) error {
	if err := m.UpdateFilteredStudentList(student.ShowAll); err != nil {
		return err
	}
	return m.UpdateFilteredModuleClassList(moduleclass.ShowAll)
}
