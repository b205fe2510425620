// Package optimistic models a list that shows a local change before the
// server has confirmed it.
//
// A List is either Confirmed (every item known to the server) or
// PendingAppend (confirmed items plus one provisional item at the tail).
// Commit replaces the provisional item with the server's records; Rollback
// returns to the list as it was before the append.
package optimistic

// Phase is the state of a List.
type Phase int

const (
	Confirmed Phase = iota
	PendingAppend
)

func (p Phase) String() string {
	if p == PendingAppend {
		return "pending_append"
	}
	return "confirmed"
}

// List is an immutable value; every transition returns a new List.
type List[T any] struct {
	confirmed   []T
	provisional *T
}

// NewConfirmed returns a Confirmed list holding items.
func NewConfirmed[T any](items []T) List[T] {
	return List[T]{confirmed: clone(items)}
}

func (l List[T]) Phase() Phase {
	if l.provisional != nil {
		return PendingAppend
	}
	return Confirmed
}

// Items returns what observers should see, provisional item included.
func (l List[T]) Items() []T {
	out := clone(l.confirmed)
	if l.provisional != nil {
		out = append(out, *l.provisional)
	}
	return out
}

// Pending returns the provisional item, if any.
func (l List[T]) Pending() (T, bool) {
	if l.provisional == nil {
		var zero T
		return zero, false
	}
	return *l.provisional, true
}

func (l List[T]) Len() int {
	n := len(l.confirmed)
	if l.provisional != nil {
		n++
	}
	return n
}

// Append moves a Confirmed list to PendingAppend. It reports false, leaving l
// unchanged, if an item is already pending.
func (l List[T]) Append(item T) (List[T], bool) {
	if l.provisional != nil {
		return l, false
	}
	return List[T]{confirmed: l.confirmed, provisional: &item}, true
}

// Commit drops the provisional item and appends the server's records.
func (l List[T]) Commit(records ...T) List[T] {
	out := clone(l.confirmed)
	return List[T]{confirmed: append(out, records...)}
}

// Rollback drops the provisional item.
func (l List[T]) Rollback() List[T] {
	return List[T]{confirmed: l.confirmed}
}

func clone[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
