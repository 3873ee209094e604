package moduleclass

import (
	"errors"

	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
)

// UniqueModuleClassList holds module classes with distinct names, in insertion order.
type UniqueModuleClassList struct {
	list *shared.UniqueList[ModuleClass]
}

// NewUniqueModuleClassList creates an empty list.
func NewUniqueModuleClassList() *UniqueModuleClassList {
	return &UniqueModuleClassList{list: shared.NewUniqueList[ModuleClass]("moduleclass")}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, shared.ErrAlreadyExists):
		return ErrDuplicateModuleClass
	case errors.Is(err, shared.ErrNotFound):
		return ErrModuleClassNotFound
	default:
		return err
	}
}

// Contains reports whether a class with the same name is in the list.
func (l *UniqueModuleClassList) Contains(m ModuleClass) bool { return l.list.Contains(m) }

// Add appends m.
func (l *UniqueModuleClassList) Add(m ModuleClass) error { return translate(l.list.Add(m)) }

// Set replaces target with edited.
func (l *UniqueModuleClassList) Set(target, edited ModuleClass) error {
	return translate(l.list.Set(target, edited))
}

// Remove deletes m.
func (l *UniqueModuleClassList) Remove(m ModuleClass) error { return translate(l.list.Remove(m)) }

// ReplaceAll replaces the contents with classes.
func (l *UniqueModuleClassList) ReplaceAll(classes []ModuleClass) error {
	return translate(l.list.ReplaceAll(classes))
}

// RemoveStudent drops id from every class's members and attendance records.
func (l *UniqueModuleClassList) RemoveStudent(id uuid.UUID) {
	items := l.list.Items()
	for i, m := range items {
		items[i] = m.WithoutStudent(id)
	}
	// Names are untouched, so the list stays free of duplicates.
	_ = l.list.ReplaceAll(items)
}

// Len returns the number of classes.
func (l *UniqueModuleClassList) Len() int { return l.list.Len() }

// Items returns a copy of the classes in order.
func (l *UniqueModuleClassList) Items() []ModuleClass { return l.list.Items() }

// View returns a live read-only view.
func (l *UniqueModuleClassList) View() shared.View[ModuleClass] { return l.list.View() }

// Clone returns an independent copy.
func (l *UniqueModuleClassList) Clone() *UniqueModuleClassList {
	return &UniqueModuleClassList{list: l.list.Clone()}
}

// Equal reports whether both lists hold equal classes in the same order.
func (l *UniqueModuleClassList) Equal(other *UniqueModuleClassList) bool {
	return l.list.Equal(other.list)
}
