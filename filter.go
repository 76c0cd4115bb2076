package listcontainer

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

// Filter decides which items of a Container are visible.
type Filter[T comparable] interface {
	// PassesFilter returns true if the item is visible.
	PassesFilter(item Item[T]) bool

	// AppliesToProperty returns true if the filter
	// depends on the value of the property id.
	AppliesToProperty(propertyID string) bool
}

// FilterID identifies an added filter for removal.
type FilterID uint64

type filterEntry[T comparable] struct {
	id     FilterID
	filter Filter[T]
}

// FilterFunc implements Filter for a function
// that does not depend on specific properties.
type FilterFunc[T comparable] func(item Item[T]) bool

func (f FilterFunc[T]) PassesFilter(item Item[T]) bool { return f(item) }

func (FilterFunc[T]) AppliesToProperty(string) bool { return false }

// StringFilter returns a Filter passing items whose property value
// formatted with fmt.Sprint contains text,
// or starts with text if onlyMatchPrefix is true.
// Items with a nil value or a property error don't pass.
func StringFilter[T comparable](propertyID, text string, ignoreCase, onlyMatchPrefix bool) Filter[T] {
	if ignoreCase {
		text = strings.ToLower(text)
	}
	return &stringFilter[T]{
		propertyID:      propertyID,
		text:            text,
		ignoreCase:      ignoreCase,
		onlyMatchPrefix: onlyMatchPrefix,
	}
}

type stringFilter[T comparable] struct {
	propertyID      string
	text            string
	ignoreCase      bool
	onlyMatchPrefix bool
}

func (f *stringFilter[T]) PassesFilter(item Item[T]) bool {
	val, err := item.Value(f.propertyID)
	if err != nil || val == nil {
		return false
	}
	str := fmt.Sprint(val)
	if f.ignoreCase {
		str = strings.ToLower(str)
	}
	if f.onlyMatchPrefix {
		return strings.HasPrefix(str, f.text)
	}
	return strings.Contains(str, f.text)
}

func (f *stringFilter[T]) AppliesToProperty(propertyID string) bool {
	return propertyID == f.propertyID
}

// EqualsFilter returns a Filter passing items whose
// property value is equal to value after converting
// value to the property type.
// Values that can't be converted without loss,
// like 30.7 for an int property, don't pass.
// A nil value passes items with a nil property value.
func EqualsFilter[T comparable](propertyID string, value any) Filter[T] {
	return &equalsFilter[T]{propertyID: propertyID, value: value}
}

type equalsFilter[T comparable] struct {
	propertyID string
	value      any
}

func (f *equalsFilter[T]) PassesFilter(item Item[T]) bool {
	prop, err := item.Property(f.propertyID)
	if err != nil {
		return false
	}
	val, err := prop.ReflectValue()
	if err != nil {
		return false
	}
	if f.value == nil || ValueIsNil(val) {
		return f.value == nil && ValueIsNil(val)
	}
	want := reflect.ValueOf(f.value)
	if want.Type() != val.Type() {
		var ok bool
		want, ok = convertLossless(want, val.Type())
		if !ok {
			return false
		}
	}
	if !want.Comparable() || !val.Comparable() {
		return reflect.DeepEqual(want.Interface(), val.Interface())
	}
	return want.Equal(val)
}

// convertLossless converts v to t if t can hold v exactly
// and converting back results in v.
// Numbers are never converted to strings.
func convertLossless(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !v.Type().ConvertibleTo(t) || !t.ConvertibleTo(v.Type()) {
		return reflect.Value{}, false
	}
	if !canHoldSign(v, t.Kind()) {
		return reflect.Value{}, false
	}
	conv := v.Convert(t)
	if v.Comparable() && !conv.Convert(v.Type()).Equal(v) {
		return reflect.Value{}, false
	}
	return conv, true
}

func canHoldSign(v reflect.Value, k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return v.Int() >= 0
		case reflect.Float32, reflect.Float64:
			return v.Float() >= 0
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return v.Uint() <= math.MaxInt64
		}
	}
	return true
}

func (f *equalsFilter[T]) AppliesToProperty(propertyID string) bool {
	return propertyID == f.propertyID
}

func (c *Container[T]) passesFilters(item T) bool {
	for _, entry := range c.filters {
		if !entry.filter.PassesFilter(Item[T]{container: c, id: item}) {
			return false
		}
	}
	return true
}

// AddFilter adds a filter and fires one ItemSetChangeEvent.
// Only items passing all filters are visible.
func (c *Container[T]) AddFilter(filter Filter[T]) FilterID {
	c.lastFilter++
	c.filters = append(c.filters, filterEntry[T]{id: c.lastFilter, filter: filter})
	c.itemsChanged(ItemsFiltered, nil)
	return c.lastFilter
}

// RemoveFilter removes a filter and fires one ItemSetChangeEvent.
// Returns false if there was no filter with the id.
func (c *Container[T]) RemoveFilter(id FilterID) bool {
	index := slices.IndexFunc(c.filters, func(e filterEntry[T]) bool { return e.id == id })
	if index < 0 {
		return false
	}
	c.filters = slices.Delete(c.filters, index, index+1)
	c.itemsChanged(ItemsFiltered, nil)
	return true
}

// RemoveFiltersForProperty removes all filters that apply
// to a property id and fires one ItemSetChangeEvent
// if any filter was removed.
// Returns the number of removed filters.
func (c *Container[T]) RemoveFiltersForProperty(propertyID string) int {
	before := len(c.filters)
	c.filters = slices.DeleteFunc(c.filters, func(e filterEntry[T]) bool {
		return e.filter.AppliesToProperty(propertyID)
	})
	removed := before - len(c.filters)
	if removed > 0 {
		c.itemsChanged(ItemsFiltered, nil)
	}
	return removed
}

// RemoveAllFilters removes all filters and fires one ItemSetChangeEvent
// if there were any filters.
func (c *Container[T]) RemoveAllFilters() bool {
	if len(c.filters) == 0 {
		return false
	}
	c.filters = nil
	c.itemsChanged(ItemsFiltered, nil)
	return true
}

// NumFilters returns the number of active filters.
func (c *Container[T]) NumFilters() int { return len(c.filters) }

// Refilter re-evaluates all filters after item values changed
// and fires one ItemSetChangeEvent.
func (c *Container[T]) Refilter() {
	c.itemsChanged(ItemsFiltered, nil)
}
