package listcontainer

import "strconv"

// ItemSetChange describes why the set
// or order of visible items changed.
type ItemSetChange int

const (
	ItemsAdded ItemSetChange = iota
	ItemsRemoved
	ItemsReplaced
	ItemsSorted
	ItemsFiltered
)

func (c ItemSetChange) String() string {
	switch c {
	case ItemsAdded:
		return "ItemsAdded"
	case ItemsRemoved:
		return "ItemsRemoved"
	case ItemsReplaced:
		return "ItemsReplaced"
	case ItemsSorted:
		return "ItemsSorted"
	case ItemsFiltered:
		return "ItemsFiltered"
	}
	return "ItemSetChange(" + strconv.Itoa(int(c)) + ")"
}

// ItemSetChangeEvent is passed to item set change listeners
// once per logical mutation of a Container.
type ItemSetChangeEvent[T comparable] struct {
	Container *Container[T]
	Change    ItemSetChange
	// Items that were added or removed, nil for other changes.
	Items []T
}

// PropertySetChangeEvent is passed to property set change listeners
// when the visible property ids of a Container changed.
type PropertySetChangeEvent[T comparable] struct {
	Container   *Container[T]
	PropertyIDs []string
}

// ListenerID identifies a registered listener
// for removal.
type ListenerID uint64

type listener[E any] struct {
	id ListenerID
	fn func(E)
}

// listeners calls the registered functions
// synchronously in registration order.
type listeners[E any] struct {
	lastID  ListenerID
	entries []listener[E]
}

func (l *listeners[E]) add(fn func(E)) ListenerID {
	l.lastID++
	l.entries = append(l.entries, listener[E]{id: l.lastID, fn: fn})
	return l.lastID
}

func (l *listeners[E]) remove(id ListenerID) bool {
	for i, entry := range l.entries {
		if entry.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (l *listeners[E]) len() int { return len(l.entries) }

func (l *listeners[E]) fire(event E) {
	// Listeners added or removed during dispatch
	// take effect with the next event
	for _, entry := range l.entries {
		entry.fn(event)
	}
}
