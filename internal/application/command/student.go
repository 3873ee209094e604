package command

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/application/model"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
)

// Student command messages.
const (
	MessageAddStudentSuccess    = "New student added: %s"
	MessageEditStudentSuccess   = "Edited Student: %s"
	MessageDeleteStudentSuccess = "Deleted Student: %s"
	MessageClearStudentSuccess  = "All students have been cleared!"
	MessageFindStudentSuccess   = "%d students listed!"
	MessageListStudentSuccess   = "Listed all students"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentCommand adds a student.
type AddStudentCommand struct {
	Student student.Student
}

// NewAddStudentCommand creates a validated AddStudentCommand.
func NewAddStudentCommand(s student.Student) (*AddStudentCommand, error) {
	c := &AddStudentCommand{Student: s}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *AddStudentCommand) Validate() error {
	if c.Student.ID() == uuid.Nil {
		return shared.NullArgument(domain, "AddStudent", "student")
	}
	return nil
}

// Execute implements Command.
func (c *AddStudentCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	root := m.TutorsPet()
	if root.HasStudent(c.Student) {
		return Result{}, ErrDuplicateStudent
	}
	if err := root.AddStudent(c.Student); err != nil {
		return Result{}, translate(err)
	}
	msg := fmt.Sprintf(MessageAddStudentSuccess, c.Student)
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*AddStudentCommand) isCommand() {}

// ══════════════════════════════════════════════════════════════════════════════
// EDIT STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// EditStudentCommand edits the student at StudentIndex of the displayed list.
type EditStudentCommand struct {
	StudentIndex shared.Index
	Descriptor   *student.EditDescriptor
}

// NewEditStudentCommand creates a validated EditStudentCommand.
func NewEditStudentCommand(idx shared.Index, d *student.EditDescriptor) (*EditStudentCommand, error) {
	c := &EditStudentCommand{StudentIndex: idx, Descriptor: d}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *EditStudentCommand) Validate() error {
	if c.StudentIndex.IsZero() {
		return shared.NullArgument(domain, "EditStudent", "student index")
	}
	if c.Descriptor == nil {
		return shared.NullArgument(domain, "EditStudent", "descriptor")
	}
	return nil
}

// Execute implements Command.
func (c *EditStudentCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	target, err := StudentAt(m.FilteredStudentList(), c.StudentIndex)
	if err != nil {
		return Result{}, err
	}
	if !c.Descriptor.IsAnyFieldEdited() {
		return Result{}, ErrNotEdited
	}

	edited := target.Edit(*c.Descriptor)
	root := m.TutorsPet()
	if !target.IsSame(edited) && root.HasStudent(edited) {
		return Result{}, ErrDuplicateStudent
	}
	if err := root.SetStudent(target, edited); err != nil {
		return Result{}, translate(err)
	}
	if err := m.UpdateFilteredStudentList(student.ShowAll); err != nil {
		return Result{}, err
	}

	msg := fmt.Sprintf(MessageEditStudentSuccess, edited)
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*EditStudentCommand) isCommand() {}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// DeleteStudentCommand deletes the student at StudentIndex of the displayed list,
// together with every class membership and attendance entry of that student.
type DeleteStudentCommand struct {
	StudentIndex shared.Index
}

// NewDeleteStudentCommand creates a validated DeleteStudentCommand.
func NewDeleteStudentCommand(idx shared.Index) (*DeleteStudentCommand, error) {
	c := &DeleteStudentCommand{StudentIndex: idx}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *DeleteStudentCommand) Validate() error {
	if c.StudentIndex.IsZero() {
		return shared.NullArgument(domain, "DeleteStudent", "student index")
	}
	return nil
}

// Execute implements Command.
func (c *DeleteStudentCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	target, err := StudentAt(m.FilteredStudentList(), c.StudentIndex)
	if err != nil {
		return Result{}, err
	}
	if err := m.TutorsPet().RemoveStudent(target); err != nil {
		return Result{}, translate(err)
	}
	msg := fmt.Sprintf(MessageDeleteStudentSuccess, target)
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*DeleteStudentCommand) isCommand() {}

// ══════════════════════════════════════════════════════════════════════════════
// CLEAR / FIND / LIST STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

// ClearStudentCommand removes every student and every reference to them.
type ClearStudentCommand struct{}

// Execute implements Command.
func (*ClearStudentCommand) Execute(m model.Model) (Result, error) {
	m.TutorsPet().ClearStudents()
	m.Commit(MessageClearStudentSuccess)
	return Result{Feedback: MessageClearStudentSuccess}, nil
}

func (*ClearStudentCommand) isCommand() {}

// FindStudentCommand shows the students whose name contains any keyword.
type FindStudentCommand struct {
	Keywords []string
}

// NewFindStudentCommand creates a validated FindStudentCommand.
func NewFindStudentCommand(keywords ...string) (*FindStudentCommand, error) {
	c := &FindStudentCommand{Keywords: keywords}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *FindStudentCommand) Validate() error {
	if len(c.Keywords) == 0 || strings.TrimSpace(strings.Join(c.Keywords, "")) == "" {
		return shared.NullArgument(domain, "FindStudent", "keywords")
	}
	return nil
}

// Execute implements Command.
func (c *FindStudentCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	if err := m.UpdateFilteredStudentList(student.NameContainsKeywords(c.Keywords...)); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageFindStudentSuccess, len(m.FilteredStudentList()))}, nil
}

func (*FindStudentCommand) isCommand() {}

// ListStudentCommand shows every student.
type ListStudentCommand struct{}

// Execute implements Command.
func (*ListStudentCommand) Execute(m model.Model) (Result, error) {
	if err := m.UpdateFilteredStudentList(student.ShowAll); err != nil {
		return Result{}, err
	}
	return Result{Feedback: MessageListStudentSuccess}, nil
}

func (*ListStudentCommand) isCommand() {}
