// Package listcontainer exposes an in-memory list of Go values
// as a keyed table of items and properties.
//
// Items are their own identity and properties are addressed
// by property ids like "detail.property", "numbers[2]", or "values(key)"
// that are evaluated with reflection at read and write time.
//
// A Container is designed for a single writer
// and is not safe for concurrent use.
package listcontainer

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/domonda/go-listcontainer/propertypath"
)

// Container owns an ordered list of items of type T
// and provides navigation, mutation, sorting, filtering,
// and property access by property ids.
//
// Insertion order is the iteration order until the container is sorted.
// Navigation methods only see items that pass all filters.
type Container[T comparable] struct {
	title       string
	titles      map[string]string // column titles by property id
	options     Option
	resolver    *propertypath.Resolver
	comparators *Comparators

	items   []T
	members map[T]struct{}

	// visible are the items that pass all filters,
	// the same slice as items if there are no filters
	visible      []T
	visibleIndex map[T]int

	explicitIDs  []string // nil if inferred
	inferredIDs  []string
	inferred     bool
	generatedIDs []string
	generated    map[string]generatedProperty[T]
	paths        map[string]propertypath.Path
	types        map[typeKey]reflect.Type
	views        map[T]map[string]*Property

	filters    []filterEntry[T]
	lastFilter FilterID

	itemSetListeners     listeners[ItemSetChangeEvent[T]]
	propertySetListeners listeners[PropertySetChangeEvent[T]]
}

type typeKey struct {
	owner reflect.Type
	id    string
}

// NewContainer returns a Container with the passed items
// using DefaultNaming for property ids.
// Duplicate items are only added once.
func NewContainer[T comparable](items []T, options ...Option) *Container[T] {
	return NewContainerWithResolver(nil, items, options...)
}

// NewContainerWithResolver returns a Container with the passed items
// using resolver to evaluate property ids.
// A nil resolver uses DefaultNaming.
func NewContainerWithResolver[T comparable](resolver *propertypath.Resolver, items []T, options ...Option) *Container[T] {
	if resolver == nil {
		resolver = propertypath.NewResolver(propertypath.NewTypeCache(&DefaultNaming))
	}
	c := &Container[T]{
		options:     combineOptions(options),
		resolver:    resolver,
		comparators: DefaultComparators,
		members:     make(map[T]struct{}, len(items)),
		generated:   make(map[string]generatedProperty[T]),
		paths:       make(map[string]propertypath.Path),
		types:       make(map[typeKey]reflect.Type),
		views:       make(map[T]map[string]*Property),
	}
	c.add(items)
	c.refresh()
	return c
}

// Resolver returns the resolver used to evaluate property ids.
func (c *Container[T]) Resolver() *propertypath.Resolver { return c.resolver }

// Options returns the options the container was created with.
func (c *Container[T]) Options() Option { return c.options }

// SetComparators sets the comparators used for sorting.
// A nil value resets to DefaultComparators.
func (c *Container[T]) SetComparators(comparators *Comparators) {
	if comparators == nil {
		comparators = DefaultComparators
	}
	c.comparators = comparators
}

// Comparators returns the comparators used for sorting.
func (c *Container[T]) Comparators() *Comparators { return c.comparators }

// add appends all items that are not yet members
// and returns the added items.
// Values of an interface type T whose dynamic type
// can't be a map key, like slices, are skipped.
func (c *Container[T]) add(items []T) (added []T) {
	for _, item := range items {
		if !isHashable(item) || c.isMember(item) {
			continue
		}
		c.members[item] = struct{}{}
		c.items = append(c.items, item)
		added = append(added, item)
	}
	return added
}

func (c *Container[T]) isMember(item T) bool {
	if !isHashable(item) {
		return false
	}
	_, ok := c.members[item]
	return ok
}

// isHashable returns false for interface values
// with a dynamic type that would panic as map key.
func isHashable(item any) bool {
	return item == nil || reflect.ValueOf(item).Comparable()
}

// refresh recalculates the visible items
// after the items or filters changed.
func (c *Container[T]) refresh() {
	if len(c.filters) == 0 {
		c.visible = c.items
	} else {
		c.visible = make([]T, 0, len(c.items))
		for _, item := range c.items {
			if c.passesFilters(item) {
				c.visible = append(c.visible, item)
			}
		}
	}
	c.visibleIndex = make(map[T]int, len(c.visible))
	for i, item := range c.visible {
		c.visibleIndex[item] = i
	}
}

func (c *Container[T]) itemsChanged(change ItemSetChange, items []T) {
	c.refresh()
	c.itemSetListeners.fire(ItemSetChangeEvent[T]{
		Container: c,
		Change:    change,
		Items:     items,
	})
}

// Size returns the number of visible items.
func (c *Container[T]) Size() int { return len(c.visible) }

// NumItems returns the number of all items
// including the ones that don't pass the filters.
func (c *Container[T]) NumItems() int { return len(c.items) }

// ItemIDs returns a copy of the visible items in their order.
func (c *Container[T]) ItemIDs() []T { return slices.Clone(c.visible) }

// AllItemIDs returns a copy of all items in their order
// including the ones that don't pass the filters.
func (c *Container[T]) AllItemIDs() []T { return slices.Clone(c.items) }

// IDByIndex returns the visible item at index
// or false if index is out of range.
func (c *Container[T]) IDByIndex(index int) (id T, ok bool) {
	if index < 0 || index >= len(c.visible) {
		return id, false
	}
	return c.visible[index], true
}

// IndexOfID returns the index of a visible item
// or -1 if the item is not visible.
func (c *Container[T]) IndexOfID(id T) int {
	if !isHashable(id) {
		return -1
	}
	index, ok := c.visibleIndex[id]
	if !ok {
		return -1
	}
	return index
}

// ContainsID returns true if the item is visible.
func (c *Container[T]) ContainsID(id T) bool {
	if !isHashable(id) {
		return false
	}
	_, ok := c.visibleIndex[id]
	return ok
}

// FirstID returns the first visible item
// or false if there are no visible items.
func (c *Container[T]) FirstID() (id T, ok bool) {
	return c.IDByIndex(0)
}

// LastID returns the last visible item
// or false if there are no visible items.
func (c *Container[T]) LastID() (id T, ok bool) {
	return c.IDByIndex(len(c.visible) - 1)
}

// NextID returns the visible item following id
// or false if id is the last or not a visible item.
func (c *Container[T]) NextID(id T) (next T, ok bool) {
	index := c.IndexOfID(id)
	if index < 0 {
		return next, false
	}
	return c.IDByIndex(index + 1)
}

// PrevID returns the visible item preceding id
// or false if id is the first or not a visible item.
func (c *Container[T]) PrevID(id T) (prev T, ok bool) {
	index := c.IndexOfID(id)
	if index < 0 {
		return prev, false
	}
	return c.IDByIndex(index - 1)
}

// IsFirstID returns true if id is the first visible item.
func (c *Container[T]) IsFirstID(id T) bool {
	return len(c.visible) > 0 && c.IndexOfID(id) == 0
}

// IsLastID returns true if id is the last visible item.
func (c *Container[T]) IsLastID(id T) bool {
	return len(c.visible) > 0 && c.IndexOfID(id) == len(c.visible)-1
}

// Item returns the row view of a visible item.
func (c *Container[T]) Item(id T) (Item[T], bool) {
	if !c.ContainsID(id) {
		return Item[T]{}, false
	}
	return Item[T]{container: c, id: id}, true
}

// Property returns the cached view of a property of an item.
// Items that don't pass the filters are also accessible.
func (c *Container[T]) Property(id T, propertyID string) (*Property, error) {
	return c.property(id, propertyID)
}

// AddItem appends item to the container and fires one
// ItemSetChangeEvent. It returns false without event
// if the item is already in the container
// or is an interface value that can't be a map key.
func (c *Container[T]) AddItem(item T) bool {
	added := c.add([]T{item})
	if len(added) == 0 {
		return false
	}
	c.itemsChanged(ItemsAdded, added)
	return true
}

// AddItems appends all items that are not already
// in the container and fires one ItemSetChangeEvent
// if any item was added.
// Returns the number of added items.
func (c *Container[T]) AddItems(items ...T) int {
	added := c.add(items)
	if len(added) > 0 {
		c.itemsChanged(ItemsAdded, added)
	}
	return len(added)
}

// RemoveItem removes item from the container and fires one
// ItemSetChangeEvent. It returns false without event
// if the item is not in the container.
func (c *Container[T]) RemoveItem(item T) bool {
	if !c.isMember(item) {
		return false
	}
	delete(c.members, item)
	delete(c.views, item)
	index := slices.Index(c.items, item)
	c.items = slices.Delete(c.items, index, index+1)
	c.itemsChanged(ItemsRemoved, []T{item})
	return true
}

// RemoveAllItems removes all items and fires one
// ItemSetChangeEvent if the container was not empty.
func (c *Container[T]) RemoveAllItems() bool {
	if len(c.items) == 0 {
		return false
	}
	removed := c.items
	c.items = nil
	clear(c.members)
	clear(c.views)
	c.itemsChanged(ItemsRemoved, removed)
	return true
}

// SetItems replaces all items and fires one ItemSetChangeEvent.
// Inferred property ids are inferred again from the new items.
func (c *Container[T]) SetItems(items []T) {
	c.items = nil
	clear(c.members)
	clear(c.views)
	c.inferredIDs = nil
	c.inferred = false
	c.add(items)
	c.itemsChanged(ItemsReplaced, nil)
}

// AddItemAt always returns an error wrapping ErrUnsupportedOperation.
func (c *Container[T]) AddItemAt(index int, item T) error {
	return fmt.Errorf("AddItemAt(%d): %w", index, ErrUnsupportedOperation)
}

// AddItemAfter always returns an error wrapping ErrUnsupportedOperation.
func (c *Container[T]) AddItemAfter(previous, item T) error {
	return fmt.Errorf("AddItemAfter: %w", ErrUnsupportedOperation)
}

// AddItemWithoutID always returns an error wrapping ErrUnsupportedOperation
// because every item is its own id.
func (c *Container[T]) AddItemWithoutID() (id T, err error) {
	return id, fmt.Errorf("AddItemWithoutID: %w", ErrUnsupportedOperation)
}

// AddItemSetChangeListener registers a listener that is called
// synchronously after every change of the visible items.
// Listeners are called in registration order
// and must not mutate the container.
func (c *Container[T]) AddItemSetChangeListener(listener func(ItemSetChangeEvent[T])) ListenerID {
	return c.itemSetListeners.add(listener)
}

// RemoveItemSetChangeListener returns false
// if no listener with id was registered.
func (c *Container[T]) RemoveItemSetChangeListener(id ListenerID) bool {
	return c.itemSetListeners.remove(id)
}

// AddPropertySetChangeListener registers a listener that is called
// synchronously after every change of the visible property ids.
func (c *Container[T]) AddPropertySetChangeListener(listener func(PropertySetChangeEvent[T])) ListenerID {
	return c.propertySetListeners.add(listener)
}

// RemovePropertySetChangeListener returns false
// if no listener with id was registered.
func (c *Container[T]) RemovePropertySetChangeListener(id ListenerID) bool {
	return c.propertySetListeners.remove(id)
}

// NumListeners returns the number of registered item set
// and property set change listeners.
func (c *Container[T]) NumListeners() int {
	return c.itemSetListeners.len() + c.propertySetListeners.len()
}
