package command

import (
	"fmt"
	"strings"

	"github.com/tutorspet/tutorspet/internal/application/model"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
)

// Module class command messages.
const (
	MessageAddModuleClassSuccess    = "New class added: %s"
	MessageEditModuleClassSuccess   = "Edited Class: %s"
	MessageDeleteModuleClassSuccess = "Deleted Class: %s"
	MessageClearModuleClassSuccess  = "All classes have been cleared!"
	MessageFindModuleClassSuccess   = "%d classes listed!"
	MessageListModuleClassSuccess   = "Listed all classes"
	MessageLinkSuccess              = "Linked student %s to class %s"
	MessageUnlinkSuccess            = "Unlinked student %s from class %s"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD MODULE CLASS
// ══════════════════════════════════════════════════════════════════════════════

// AddModuleClassCommand adds a module class.
type AddModuleClassCommand struct {
	ModuleClass moduleclass.ModuleClass
}

// NewAddModuleClassCommand creates a validated AddModuleClassCommand.
func NewAddModuleClassCommand(mc moduleclass.ModuleClass) (*AddModuleClassCommand, error) {
	c := &AddModuleClassCommand{ModuleClass: mc}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *AddModuleClassCommand) Validate() error {
	if c.ModuleClass.Name() == "" {
		return shared.NullArgument(domain, "AddModuleClass", "module class")
	}
	return nil
}

// Execute implements Command.
func (c *AddModuleClassCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	root := m.TutorsPet()
	if root.HasModuleClass(c.ModuleClass) {
		return Result{}, ErrDuplicateModuleClass
	}
	if err := CheckReferences(root, c.ModuleClass); err != nil {
		return Result{}, err
	}
	if err := root.AddModuleClass(c.ModuleClass); err != nil {
		return Result{}, translate(err)
	}
	msg := fmt.Sprintf(MessageAddModuleClassSuccess, c.ModuleClass.Name())
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*AddModuleClassCommand) isCommand() {}

// ══════════════════════════════════════════════════════════════════════════════
// EDIT MODULE CLASS
// ══════════════════════════════════════════════════════════════════════════════

// EditModuleClassDescriptor carries the class fields an edit replaces.
type EditModuleClassDescriptor struct {
	Name *shared.Name
}

// IsAnyFieldEdited reports whether at least one field is set.
func (d EditModuleClassDescriptor) IsAnyFieldEdited() bool {
	return d.Name != nil
}

// EditModuleClassCommand edits the class at ModuleClassIndex of the displayed list.
// Members and lessons are kept.
type EditModuleClassCommand struct {
	ModuleClassIndex shared.Index
	Descriptor       *EditModuleClassDescriptor
}

// NewEditModuleClassCommand creates a validated EditModuleClassCommand.
func NewEditModuleClassCommand(idx shared.Index, d *EditModuleClassDescriptor) (*EditModuleClassCommand, error) {
	c := &EditModuleClassCommand{ModuleClassIndex: idx, Descriptor: d}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *EditModuleClassCommand) Validate() error {
	if c.ModuleClassIndex.IsZero() {
		return shared.NullArgument(domain, "EditModuleClass", "class index")
	}
	if c.Descriptor == nil {
		return shared.NullArgument(domain, "EditModuleClass", "descriptor")
	}
	return nil
}

// Execute implements Command.
func (c *EditModuleClassCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	target, err := ModuleClassAt(m.FilteredModuleClassList(), c.ModuleClassIndex)
	if err != nil {
		return Result{}, err
	}
	if !c.Descriptor.IsAnyFieldEdited() {
		return Result{}, ErrNotEdited
	}

	edited := target.WithName(*c.Descriptor.Name)
	root := m.TutorsPet()
	if !target.IsSame(edited) && root.HasModuleClass(edited) {
		return Result{}, ErrDuplicateModuleClass
	}
	if err := root.SetModuleClass(target, edited); err != nil {
		return Result{}, translate(err)
	}
	if err := m.UpdateFilteredModuleClassList(moduleclass.ShowAll); err != nil {
		return Result{}, err
	}

	msg := fmt.Sprintf(MessageEditModuleClassSuccess, edited.Name())
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*EditModuleClassCommand) isCommand() {}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE MODULE CLASS
// ══════════════════════════════════════════════════════════════════════════════

// DeleteModuleClassCommand deletes the class at ModuleClassIndex of the displayed list.
// Students stay in Tutor's Pet.
type DeleteModuleClassCommand struct {
	ModuleClassIndex shared.Index
}

// NewDeleteModuleClassCommand creates a validated DeleteModuleClassCommand.
func NewDeleteModuleClassCommand(idx shared.Index) (*DeleteModuleClassCommand, error) {
	c := &DeleteModuleClassCommand{ModuleClassIndex: idx}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *DeleteModuleClassCommand) Validate() error {
	if c.ModuleClassIndex.IsZero() {
		return shared.NullArgument(domain, "DeleteModuleClass", "class index")
	}
	return nil
}

// Execute implements Command.
func (c *DeleteModuleClassCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	target, err := ModuleClassAt(m.FilteredModuleClassList(), c.ModuleClassIndex)
	if err != nil {
		return Result{}, err
	}
	if err := m.TutorsPet().RemoveModuleClass(target); err != nil {
		return Result{}, translate(err)
	}
	msg := fmt.Sprintf(MessageDeleteModuleClassSuccess, target.Name())
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*DeleteModuleClassCommand) isCommand() {}

// ══════════════════════════════════════════════════════════════════════════════
// CLEAR / FIND / LIST MODULE CLASSES
// ══════════════════════════════════════════════════════════════════════════════

// ClearModuleClassCommand removes every class. Students are kept.
type ClearModuleClassCommand struct{}

// Execute implements Command.
func (*ClearModuleClassCommand) Execute(m model.Model) (Result, error) {
	m.TutorsPet().ClearModuleClasses()
	m.Commit(MessageClearModuleClassSuccess)
	return Result{Feedback: MessageClearModuleClassSuccess}, nil
}

func (*ClearModuleClassCommand) isCommand() {}

// FindModuleClassCommand shows the classes whose name contains any keyword.
type FindModuleClassCommand struct {
	Keywords []string
}

// NewFindModuleClassCommand creates a validated FindModuleClassCommand.
func NewFindModuleClassCommand(keywords ...string) (*FindModuleClassCommand, error) {
	c := &FindModuleClassCommand{Keywords: keywords}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *FindModuleClassCommand) Validate() error {
	if len(c.Keywords) == 0 || strings.TrimSpace(strings.Join(c.Keywords, "")) == "" {
		return shared.NullArgument(domain, "FindModuleClass", "keywords")
	}
	return nil
}

// Execute implements Command.
func (c *FindModuleClassCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	if err := m.UpdateFilteredModuleClassList(moduleclass.NameContainsKeywords(c.Keywords...)); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageFindModuleClassSuccess, len(m.FilteredModuleClassList()))}, nil
}

func (*FindModuleClassCommand) isCommand() {}

// ListModuleClassCommand shows every class.
type ListModuleClassCommand struct{}

// Execute implements Command.
func (*ListModuleClassCommand) Execute(m model.Model) (Result, error) {
	if err := m.UpdateFilteredModuleClassList(moduleclass.ShowAll); err != nil {
		return Result{}, err
	}
	return Result{Feedback: MessageListModuleClassSuccess}, nil
}

func (*ListModuleClassCommand) isCommand() {}

// ══════════════════════════════════════════════════════════════════════════════
// LINK / UNLINK
// ══════════════════════════════════════════════════════════════════════════════

// LinkCommand makes the displayed student a member of the displayed class.
type LinkCommand struct {
	ModuleClassIndex shared.Index
	StudentIndex     shared.Index
}

// NewLinkCommand creates a validated LinkCommand.
func NewLinkCommand(classIdx, studentIdx shared.Index) (*LinkCommand, error) {
	c := &LinkCommand{ModuleClassIndex: classIdx, StudentIndex: studentIdx}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *LinkCommand) Validate() error {
	if c.ModuleClassIndex.IsZero() {
		return shared.NullArgument(domain, "Link", "class index")
	}
	if c.StudentIndex.IsZero() {
		return shared.NullArgument(domain, "Link", "student index")
	}
	return nil
}

// Execute implements Command.
func (c *LinkCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	shownStudents := m.FilteredStudentList()
	shownClasses := m.FilteredModuleClassList()

	s, err := StudentAt(shownStudents, c.StudentIndex)
	if err != nil {
		return Result{}, err
	}
	target, err := ModuleClassAt(shownClasses, c.ModuleClassIndex)
	if err != nil {
		return Result{}, err
	}
	if target.HasStudent(s.ID()) {
		return Result{}, ErrStudentAlreadyLinked
	}

	if err := m.TutorsPet().SetModuleClass(target, target.WithStudent(s.ID())); err != nil {
		return Result{}, translate(err)
	}
	msg := fmt.Sprintf(MessageLinkSuccess, s.Name(), target.Name())
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*LinkCommand) isCommand() {}

// UnlinkCommand removes the displayed student from the displayed class and
// drops the student's attendance in that class's lessons.
type UnlinkCommand struct {
	ModuleClassIndex shared.Index
	StudentIndex     shared.Index
}

// NewUnlinkCommand creates a validated UnlinkCommand.
func NewUnlinkCommand(classIdx, studentIdx shared.Index) (*UnlinkCommand, error) {
	c := &UnlinkCommand{ModuleClassIndex: classIdx, StudentIndex: studentIdx}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *UnlinkCommand) Validate() error {
	if c.ModuleClassIndex.IsZero() {
		return shared.NullArgument(domain, "Unlink", "class index")
	}
	if c.StudentIndex.IsZero() {
		return shared.NullArgument(domain, "Unlink", "student index")
	}
	return nil
}

// Execute implements Command.
func (c *UnlinkCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	shownStudents := m.FilteredStudentList()
	shownClasses := m.FilteredModuleClassList()

	s, err := StudentAt(shownStudents, c.StudentIndex)
	if err != nil {
		return Result{}, err
	}
	target, err := ModuleClassAt(shownClasses, c.ModuleClassIndex)
	if err != nil {
		return Result{}, err
	}
	if err := CheckMember(target, s.ID()); err != nil {
		return Result{}, err
	}

	if err := m.TutorsPet().SetModuleClass(target, target.WithoutStudent(s.ID())); err != nil {
		return Result{}, translate(err)
	}
	msg := fmt.Sprintf(MessageUnlinkSuccess, s.Name(), target.Name())
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*UnlinkCommand) isCommand() {}
