package shared

// Identifiable is implemented by entities stored in a UniqueList.
// IsSame is the identity test used for duplicate detection and is usually looser
// than Equal, which compares every field.
type Identifiable[T any] interface {
	IsSame(other T) bool
	Equal(other T) bool
}

// UniqueList is an ordered list of entities in which no two entities share an identity.
// The zero value is not usable; create lists with NewUniqueList.
type UniqueList[T Identifiable[T]] struct {
	domain string
	items  []T
}

// NewUniqueList creates an empty list whose errors are reported under domain.
func NewUniqueList[T Identifiable[T]](domain string) *UniqueList[T] {
	return &UniqueList[T]{domain: domain, items: make([]T, 0)}
}

func (l *UniqueList[T]) duplicate(op string) error {
	return NewDomainError(l.domain, op, ErrAlreadyExists, "operation would result in duplicate "+l.domain+"s")
}

func (l *UniqueList[T]) notFound(op string) error {
	return NewDomainError(l.domain, op, ErrNotFound, l.domain+" not found")
}

// Contains reports whether an entity with the same identity as e is in the list.
func (l *UniqueList[T]) Contains(e T) bool {
	for _, item := range l.items {
		if item.IsSame(e) {
			return true
		}
	}
	return false
}

// Add appends e. It fails when an entity with the same identity already exists.
func (l *UniqueList[T]) Add(e T) error {
	if l.Contains(e) {
		return l.duplicate("Add")
	}
	l.items = append(l.items, e)
	return nil
}

// Set replaces target with edited at target's position.
// Fails when target is absent, or when edited collides with a different entity.
func (l *UniqueList[T]) Set(target, edited T) error {
	pos := l.indexOf(target)
	if pos < 0 {
		return l.notFound("Set")
	}
	if !target.IsSame(edited) && l.Contains(edited) {
		return l.duplicate("Set")
	}
	l.items[pos] = edited
	return nil
}

// Remove deletes e. It fails when e is absent.
func (l *UniqueList[T]) Remove(e T) error {
	pos := l.indexOf(e)
	if pos < 0 {
		return l.notFound("Remove")
	}
	items := make([]T, 0, len(l.items)-1)
	items = append(items, l.items[:pos]...)
	items = append(items, l.items[pos+1:]...)
	l.items = items
	return nil
}

// ReplaceAll replaces the contents with items. Fails when items contains duplicates.
func (l *UniqueList[T]) ReplaceAll(items []T) error {
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if items[i].IsSame(items[j]) {
				return l.duplicate("ReplaceAll")
			}
		}
	}
	l.items = append(make([]T, 0, len(items)), items...)
	return nil
}

// Len returns the number of entities.
func (l *UniqueList[T]) Len() int {
	return len(l.items)
}

// Items returns a copy of the entities in order.
func (l *UniqueList[T]) Items() []T {
	return append(make([]T, 0, len(l.items)), l.items...)
}

// View returns a live read-only view of the list.
func (l *UniqueList[T]) View() View[T] {
	return View[T]{list: l}
}

// Clone returns an independent list with the same entities.
func (l *UniqueList[T]) Clone() *UniqueList[T] {
	return &UniqueList[T]{domain: l.domain, items: l.Items()}
}

// Equal reports whether both lists hold equal entities in the same order.
func (l *UniqueList[T]) Equal(other *UniqueList[T]) bool {
	if len(l.items) != len(other.items) {
		return false
	}
	for i := range l.items {
		if !l.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

func (l *UniqueList[T]) indexOf(e T) int {
	for i, item := range l.items {
		if item.Equal(e) {
			return i
		}
	}
	return -1
}

// View is a read-only window on a UniqueList. It reflects later changes to the list
// and offers no way to modify it.
type View[T Identifiable[T]] struct {
	list *UniqueList[T]
}

// Len returns the number of entities.
func (v View[T]) Len() int {
	if v.list == nil {
		return 0
	}
	return v.list.Len()
}

// At returns the entity at zero-based position i. It panics when i is out of range.
func (v View[T]) At(i int) T {
	return v.list.items[i]
}

// Items returns a copy of the entities in order.
func (v View[T]) Items() []T {
	if v.list == nil {
		return []T{}
	}
	return v.list.Items()
}

// Contains reports whether an entity with the same identity as e is visible.
func (v View[T]) Contains(e T) bool {
	return v.list != nil && v.list.Contains(e)
}
