package listcontainer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainer_Filters(t *testing.T) {
	persons := newPersons(12)
	c := NewContainer(persons)
	events := recordEvents(c)

	prefix := c.AddFilter(StringFilter[*Person]("firstName", "fist1", true, true))
	require.Equal(t, []*Person{persons[1], persons[10], persons[11]}, c.ItemIDs())
	require.Equal(t, 12, c.NumItems())
	require.Len(t, events.itemSetEvents, 1)
	require.Equal(t, ItemsFiltered, events.itemSetEvents[0].Change)

	// Navigation only sees visible items
	require.False(t, c.ContainsID(persons[2]))
	next, ok := c.NextID(persons[1])
	require.True(t, ok)
	require.Same(t, persons[10], next)
	_, ok = c.Item(persons[2])
	require.False(t, ok)
	_, err := c.Property(persons[2], "age")
	require.NoError(t, err, "hidden items still have properties")

	even := c.AddFilter(FilterFunc[*Person](func(item Item[*Person]) bool {
		return item.ID().Age%2 == 0
	}))
	require.Equal(t, []*Person{persons[10]}, c.ItemIDs())
	require.Equal(t, 2, c.NumFilters())

	require.True(t, c.RemoveFilter(prefix))
	require.False(t, c.RemoveFilter(prefix))
	require.Equal(t, 6, c.Size())

	// Items added later are filtered
	c.AddItem(&Person{Age: 13})
	require.Equal(t, 6, c.Size())
	c.AddItem(&Person{Age: 14})
	require.Equal(t, 7, c.Size())

	// Changed values require Refilter
	persons[0].Age = 1
	require.True(t, c.ContainsID(persons[0]))
	c.Refilter()
	require.False(t, c.ContainsID(persons[0]))

	require.True(t, c.RemoveFilter(even))
	require.Equal(t, 14, c.Size())
	require.False(t, c.RemoveAllFilters())
}

func TestContainer_RemoveFiltersForProperty(t *testing.T) {
	c := NewContainer(newPersons(5))
	c.AddFilter(StringFilter[*Person]("firstName", "Fist", false, true))
	c.AddFilter(EqualsFilter[*Person]("age", 3))
	c.AddFilter(StringFilter[*Person]("lastName", "Last", false, false))
	require.Equal(t, 1, c.Size())

	events := recordEvents(c)
	require.Equal(t, 1, c.RemoveFiltersForProperty("age"))
	require.Equal(t, 5, c.Size())
	require.Len(t, events.itemSetEvents, 1)

	require.Equal(t, 0, c.RemoveFiltersForProperty("age"))
	require.Len(t, events.itemSetEvents, 1, "no event without removed filter")

	require.True(t, c.RemoveAllFilters())
	require.Equal(t, 0, c.NumFilters())
}

func TestStringFilter(t *testing.T) {
	p := &Person{FirstName: "Erik", LastName: "Unger", Age: 42}
	c := NewContainer([]*Person{p})
	item, _ := c.Item(p)

	tests := []struct {
		name   string
		filter Filter[*Person]
		want   bool
	}{
		{name: "contains", filter: StringFilter[*Person]("lastName", "nge", false, false), want: true},
		{name: "contains case", filter: StringFilter[*Person]("lastName", "NGE", false, false), want: false},
		{name: "contains ignore case", filter: StringFilter[*Person]("lastName", "NGE", true, false), want: true},
		{name: "prefix", filter: StringFilter[*Person]("firstName", "Er", false, true), want: true},
		{name: "not prefix", filter: StringFilter[*Person]("firstName", "rik", false, true), want: false},
		{name: "int value", filter: StringFilter[*Person]("age", "4", false, true), want: true},
		{name: "nil value", filter: StringFilter[*Person]("detail.property", "", false, false), want: false},
		{name: "unknown property", filter: StringFilter[*Person]("unknown", "", false, false), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filter.PassesFilter(item))
		})
	}
}

func TestEqualsFilter(t *testing.T) {
	p := &Person{FirstName: "Erik", LastName: "A", Age: 42, Scores: map[string]int{"a": 1}}
	c := NewContainer([]*Person{p})
	item, _ := c.Item(p)

	tests := []struct {
		name   string
		filter Filter[*Person]
		want   bool
	}{
		{name: "int", filter: EqualsFilter[*Person]("age", 42), want: true},
		{name: "converted int", filter: EqualsFilter[*Person]("age", int64(42)), want: true},
		{name: "other int", filter: EqualsFilter[*Person]("age", 41), want: false},
		{name: "string", filter: EqualsFilter[*Person]("firstName", "Erik"), want: true},
		{name: "not convertible", filter: EqualsFilter[*Person]("age", []int{42}), want: false},
		{name: "whole float", filter: EqualsFilter[*Person]("age", 42.0), want: true},
		{name: "fractional float", filter: EqualsFilter[*Person]("age", 42.7), want: false},
		{name: "negative float", filter: EqualsFilter[*Person]("age", -42.0), want: false},
		{name: "uint", filter: EqualsFilter[*Person]("age", uint8(42)), want: true},
		{name: "int to string", filter: EqualsFilter[*Person]("lastName", 65), want: false},
		{name: "rune to string", filter: EqualsFilter[*Person]("lastName", 'A'), want: false},
		{name: "one letter string", filter: EqualsFilter[*Person]("lastName", "A"), want: true},
		{name: "fractional map value", filter: EqualsFilter[*Person]("scores(a)", 1.5), want: false},
		{name: "nil value", filter: EqualsFilter[*Person]("born", nil), want: true},
		{name: "nil intermediate", filter: EqualsFilter[*Person]("detail.property", nil), want: true},
		{name: "not nil", filter: EqualsFilter[*Person]("firstName", nil), want: false},
		{name: "map", filter: EqualsFilter[*Person]("scores", map[string]int{"a": 1}), want: true},
		{name: "map key", filter: EqualsFilter[*Person]("scores(a)", 1), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filter.PassesFilter(item))
			require.True(t, tt.filter.AppliesToProperty(tt.filter.(*equalsFilter[*Person]).propertyID))
		})
	}
}
