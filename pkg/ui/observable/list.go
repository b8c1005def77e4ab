// Package observable provides an ordered collection that reports every
// membership change to its subscribers.
package observable

import "slices"

// ChangeType identifies the kind of modification.
type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeUpdate
	ChangeRemove
	ChangeClear
	ChangeSet // full replacement
)

func (t ChangeType) String() string {
	switch t {
	case ChangeAdd:
		return "add"
	case ChangeUpdate:
		return "update"
	case ChangeRemove:
		return "remove"
	case ChangeClear:
		return "clear"
	case ChangeSet:
		return "set"
	default:
		return "unknown"
	}
}

// Change describes a modification to a List.
type Change[T any] struct {
	Type  ChangeType
	Index int
	Item  T // for Add/Update, the new value
	Old   T // for Update/Remove, the old value
	// Removed holds the previous contents for Clear and Set.
	Removed []T
}

type subscriber[T any] struct {
	id int
	fn func(Change[T])
}

// List is an ordered collection that notifies subscribers after each
// change. It is not safe for concurrent use.
type List[T comparable] struct {
	items     []T
	listeners []subscriber[T]
	nextID    int
}

// NewList creates a list holding items.
func NewList[T comparable](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

// Len returns the number of items. A nil list is empty.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the item at index i, or the zero value if out of bounds.
func (l *List[T]) At(i int) T {
	if l == nil || i < 0 || i >= len(l.items) {
		var zero T
		return zero
	}
	return l.items[i]
}

// Items returns a copy of the items.
func (l *List[T]) Items() []T {
	if l == nil {
		return nil
	}
	return slices.Clone(l.items)
}

// IndexOf returns the position of item, or -1.
func (l *List[T]) IndexOf(item T) int {
	if l == nil {
		return -1
	}
	return slices.Index(l.items, item)
}

// Contains reports whether item is in the list.
func (l *List[T]) Contains(item T) bool {
	return l.IndexOf(item) >= 0
}

// Add appends items, notifying once per item.
func (l *List[T]) Add(items ...T) *List[T] {
	for _, item := range items {
		idx := len(l.items)
		l.items = append(l.items, item)
		l.notify(Change[T]{Type: ChangeAdd, Index: idx, Item: item})
	}
	return l
}

// Insert inserts item at index i, clamped to the list bounds.
func (l *List[T]) Insert(i int, item T) *List[T] {
	i = max(0, min(i, len(l.items)))
	l.items = slices.Insert(l.items, i, item)
	l.notify(Change[T]{Type: ChangeAdd, Index: i, Item: item})
	return l
}

// Remove removes the first occurrence of item and reports whether it was
// present.
func (l *List[T]) Remove(item T) bool {
	i := l.IndexOf(item)
	if i < 0 {
		return false
	}
	l.RemoveAt(i)
	return true
}

// RemoveAt removes the item at index i.
func (l *List[T]) RemoveAt(i int) *List[T] {
	if i < 0 || i >= len(l.items) {
		return l
	}
	old := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	l.notify(Change[T]{Type: ChangeRemove, Index: i, Old: old})
	return l
}

// Replace puts item at index i in place of the current value.
func (l *List[T]) Replace(i int, item T) *List[T] {
	if i < 0 || i >= len(l.items) {
		return l
	}
	old := l.items[i]
	l.items[i] = item
	l.notify(Change[T]{Type: ChangeUpdate, Index: i, Item: item, Old: old})
	return l
}

// Set replaces all items.
func (l *List[T]) Set(items []T) *List[T] {
	old := l.items
	l.items = slices.Clone(items)
	l.notify(Change[T]{Type: ChangeSet, Removed: old})
	return l
}

// Clear removes all items.
func (l *List[T]) Clear() *List[T] {
	old := l.items
	l.items = nil
	l.notify(Change[T]{Type: ChangeClear, Removed: old})
	return l
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (l *List[T]) Subscribe(fn func(Change[T])) func() {
	l.nextID++
	id := l.nextID
	l.listeners = append(l.listeners, subscriber[T]{id: id, fn: fn})
	return func() {
		l.listeners = slices.DeleteFunc(l.listeners, func(s subscriber[T]) bool {
			return s.id == id
		})
	}
}

func (l *List[T]) notify(c Change[T]) {
	for _, s := range slices.Clone(l.listeners) {
		s.fn(c)
	}
}
