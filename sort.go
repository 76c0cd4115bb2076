package listcontainer

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// SortOrder is one key of a multi key sort.
type SortOrder struct {
	PropertyID string `yaml:"property"`
	Descending bool   `yaml:"descending,omitempty"`
}

func (o SortOrder) String() string {
	if o.Descending {
		return o.PropertyID + " desc"
	}
	return o.PropertyID + " asc"
}

// Sort sorts all items of the container in place
// by the passed property ids where the first id is the primary key.
// ascending has a direction flag per property id,
// missing flags default to ascending.
//
// See SortBy.
func (c *Container[T]) Sort(propertyIDs []string, ascending []bool) error {
	orders := make([]SortOrder, len(propertyIDs))
	for i, id := range propertyIDs {
		orders[i] = SortOrder{
			PropertyID: id,
			Descending: i < len(ascending) && !ascending[i],
		}
	}
	return c.SortBy(orders...)
}

// SortBy sorts all items of the container in place by the passed orders.
//
// The sort is stable, items with equal values for all
// sort keys keep their relative order.
// nil values are ordered before non nil values
// and after them for descending orders.
//
// All property values are read before the items are reordered.
// If any value can't be read or a property type is not sortable,
// then an error is returned and the order is unchanged.
//
// Sorting fires no ItemSetChangeEvent unless the container
// was created with OptionNotifyOnSort.
func (c *Container[T]) SortBy(orders ...SortOrder) error {
	if len(orders) == 0 || len(c.items) == 0 {
		return nil
	}

	compare, err := c.sortCompareFuncs(orders)
	if err != nil {
		return err
	}

	type sortRow struct {
		item T
		keys []reflect.Value
	}
	rows := make([]sortRow, len(c.items))
	for i, item := range c.items {
		rows[i] = sortRow{item: item, keys: make([]reflect.Value, len(orders))}
		for k, order := range orders {
			prop, err := c.property(item, order.PropertyID)
			if err != nil {
				return fmt.Errorf("can't sort by %q: %w", order.PropertyID, err)
			}
			rows[i].keys[k], err = prop.ReflectValue()
			if err != nil {
				return fmt.Errorf("can't sort by %q: %w", order.PropertyID, err)
			}
		}
	}

	slices.SortStableFunc(rows, func(a, b sortRow) int {
		for k, order := range orders {
			n := compareNilFirst(a.keys[k], b.keys[k], compare[k])
			if n != 0 {
				if order.Descending {
					return -n
				}
				return n
			}
		}
		return 0
	})

	for i := range rows {
		c.items[i] = rows[i].item
	}
	c.refresh()
	if c.options.Has(OptionNotifyOnSort) {
		c.itemSetListeners.fire(ItemSetChangeEvent[T]{
			Container: c,
			Change:    ItemsSorted,
		})
	}
	return nil
}

// sortCompareFuncs returns the CompareFunc for every order
// or an error if a property can't be sorted.
func (c *Container[T]) sortCompareFuncs(orders []SortOrder) ([]CompareFunc, error) {
	compare := make([]CompareFunc, len(orders))
	for i, order := range orders {
		typ, err := c.PropertyType(order.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("can't sort by %q: %w", order.PropertyID, err)
		}
		compare[i] = c.comparators.For(typ)
		if compare[i] == nil {
			return nil, fmt.Errorf("%w: %q of type %s", ErrNotSortable, order.PropertyID, typ)
		}
		if reflect.TypeFor[T]().Kind() == reflect.Interface {
			// Items may have different dynamic types
			compare[i] = c.comparators.compareDynamic
		}
	}
	return compare, nil
}

// ParseSortOrders parses a comma separated list of property ids
// each optionally followed by " asc" or " desc".
func ParseSortOrders(str string) ([]SortOrder, error) {
	var orders []SortOrder
	for _, part := range strings.Split(str, ",") {
		fields := strings.Fields(part)
		switch {
		case len(fields) == 1:
			orders = append(orders, SortOrder{PropertyID: fields[0]})
		case len(fields) == 2 && strings.EqualFold(fields[1], "asc"):
			orders = append(orders, SortOrder{PropertyID: fields[0]})
		case len(fields) == 2 && strings.EqualFold(fields[1], "desc"):
			orders = append(orders, SortOrder{PropertyID: fields[0], Descending: true})
		default:
			return nil, fmt.Errorf("invalid sort order %q", strings.TrimSpace(part))
		}
	}
	return orders, nil
}
