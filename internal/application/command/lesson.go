package command

import (
	"errors"
	"fmt"

	"github.com/tutorspet/tutorspet/internal/application/model"
	"github.com/tutorspet/tutorspet/internal/domain/lesson"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
)

// Lesson command messages.
const (
	MessageAddLessonSuccess    = "New lesson added: %s"
	MessageEditLessonSuccess   = "Edited Lesson: %s"
	MessageDeleteLessonSuccess = "Deleted Lesson: %s"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD LESSON
// ══════════════════════════════════════════════════════════════════════════════

// AddLessonCommand adds a lesson to the class at ModuleClassIndex of the displayed list.
type AddLessonCommand struct {
	ModuleClassIndex shared.Index
	Lesson           lesson.Lesson
}

// NewAddLessonCommand creates a validated AddLessonCommand.
func NewAddLessonCommand(classIdx shared.Index, l lesson.Lesson) (*AddLessonCommand, error) {
	c := &AddLessonCommand{ModuleClassIndex: classIdx, Lesson: l}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *AddLessonCommand) Validate() error {
	if c.ModuleClassIndex.IsZero() {
		return shared.NullArgument(domain, "AddLesson", "class index")
	}
	if c.Lesson.NumberOfOccurrences() == 0 {
		return shared.NullArgument(domain, "AddLesson", "lesson")
	}
	return nil
}

// Execute implements Command.
func (c *AddLessonCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	target, err := ModuleClassAt(m.FilteredModuleClassList(), c.ModuleClassIndex)
	if err != nil {
		return Result{}, err
	}
	if err := CheckAttendees(m.TutorsPet(), target, c.Lesson); err != nil {
		return Result{}, err
	}
	modified, err := target.WithLessonAdded(c.Lesson)
	if err != nil {
		return Result{}, translate(err)
	}
	if err := m.TutorsPet().SetModuleClass(target, modified); err != nil {
		return Result{}, translate(err)
	}
	msg := fmt.Sprintf(MessageAddLessonSuccess, c.Lesson)
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*AddLessonCommand) isCommand() {}

// ══════════════════════════════════════════════════════════════════════════════
// EDIT LESSON
// ══════════════════════════════════════════════════════════════════════════════

// EditLessonDescriptor carries the lesson fields an edit replaces. The number of
// occurrences and the attendance records are never edited.
type EditLessonDescriptor struct {
	StartTime *lesson.TimeOfDay
	EndTime   *lesson.TimeOfDay
	Day       *lesson.Day
	Venue     *lesson.Venue
}

// IsAnyFieldEdited reports whether at least one field is set.
func (d EditLessonDescriptor) IsAnyFieldEdited() bool {
	return d.StartTime != nil || d.EndTime != nil || d.Day != nil || d.Venue != nil
}

// EditLessonCommand edits lesson LessonIndex of the class at ModuleClassIndex.
type EditLessonCommand struct {
	ModuleClassIndex shared.Index
	LessonIndex      shared.Index
	Descriptor       *EditLessonDescriptor
}

// NewEditLessonCommand creates a validated EditLessonCommand.
func NewEditLessonCommand(classIdx, lessonIdx shared.Index, d *EditLessonDescriptor) (*EditLessonCommand, error) {
	c := &EditLessonCommand{ModuleClassIndex: classIdx, LessonIndex: lessonIdx, Descriptor: d}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *EditLessonCommand) Validate() error {
	if c.ModuleClassIndex.IsZero() {
		return shared.NullArgument(domain, "EditLesson", "class index")
	}
	if c.LessonIndex.IsZero() {
		return shared.NullArgument(domain, "EditLesson", "lesson index")
	}
	if c.Descriptor == nil {
		return shared.NullArgument(domain, "EditLesson", "descriptor")
	}
	return nil
}

// Execute implements Command.
func (c *EditLessonCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	target, err := ModuleClassAt(m.FilteredModuleClassList(), c.ModuleClassIndex)
	if err != nil {
		return Result{}, err
	}
	toEdit, err := LessonAt(target, c.LessonIndex)
	if err != nil {
		return Result{}, err
	}
	if !c.Descriptor.IsAnyFieldEdited() {
		return Result{}, ErrNotEdited
	}

	edited, err := editLesson(toEdit, *c.Descriptor)
	if err != nil {
		return Result{}, err
	}
	modified, err := target.WithLessonReplaced(toEdit, edited)
	if err != nil {
		return Result{}, translate(err)
	}
	if err := m.TutorsPet().SetModuleClass(target, modified); err != nil {
		return Result{}, translate(err)
	}
	if err := m.UpdateFilteredModuleClassList(moduleclass.ShowAll); err != nil {
		return Result{}, err
	}

	msg := fmt.Sprintf(MessageEditLessonSuccess, edited)
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*EditLessonCommand) isCommand() {}

func editLesson(l lesson.Lesson, d EditLessonDescriptor) (lesson.Lesson, error) {
	p := l.Params()
	if d.StartTime != nil {
		p.StartTime = *d.StartTime
	}
	if d.EndTime != nil {
		p.EndTime = *d.EndTime
	}
	if d.Day != nil {
		p.Day = *d.Day
	}
	if d.Venue != nil {
		p.Venue = *d.Venue
	}
	edited, err := lesson.NewLesson(p)
	if errors.Is(err, lesson.ErrInvalidTimeRange) {
		return lesson.Lesson{}, ErrInvalidTimeRange
	}
	return edited, err
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE LESSON
// ══════════════════════════════════════════════════════════════════════════════

// DeleteLessonCommand deletes lesson LessonIndex of the class at ModuleClassIndex.
type DeleteLessonCommand struct {
	ModuleClassIndex shared.Index
	LessonIndex      shared.Index
}

// NewDeleteLessonCommand creates a validated DeleteLessonCommand.
func NewDeleteLessonCommand(classIdx, lessonIdx shared.Index) (*DeleteLessonCommand, error) {
	c := &DeleteLessonCommand{ModuleClassIndex: classIdx, LessonIndex: lessonIdx}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the command.
func (c *DeleteLessonCommand) Validate() error {
	if c.ModuleClassIndex.IsZero() {
		return shared.NullArgument(domain, "DeleteLesson", "class index")
	}
	if c.LessonIndex.IsZero() {
		return shared.NullArgument(domain, "DeleteLesson", "lesson index")
	}
	return nil
}

// Execute implements Command.
func (c *DeleteLessonCommand) Execute(m model.Model) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	target, err := ModuleClassAt(m.FilteredModuleClassList(), c.ModuleClassIndex)
	if err != nil {
		return Result{}, err
	}
	toDelete, err := LessonAt(target, c.LessonIndex)
	if err != nil {
		return Result{}, err
	}
	modified, err := target.WithLessonRemoved(toDelete)
	if err != nil {
		return Result{}, translate(err)
	}
	if err := m.TutorsPet().SetModuleClass(target, modified); err != nil {
		return Result{}, translate(err)
	}
	msg := fmt.Sprintf(MessageDeleteLessonSuccess, toDelete)
	m.Commit(msg)
	return Result{Feedback: msg}, nil
}

func (*DeleteLessonCommand) isCommand() {}
