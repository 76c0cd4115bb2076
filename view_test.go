package listcontainer

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestContainer_View(t *testing.T) {
	born := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)
	persons := []*Person{
		{FirstName: "Erik", LastName: "Unger", Age: 42, Born: &born},
		{FirstName: "Mia", Detail: &Detail{Property: "x"}},
	}
	c := NewContainer(persons)
	c.SetTitle("People")
	require.NoError(t, c.SetVisiblePropertyIDs("firstName", "age", "born", "detail.property", "fullName"))

	var view View = c
	require.Equal(t, "People", view.Title())
	require.Equal(t, []string{"firstName", "age", "born", "detail.property", "fullName"}, view.Columns())
	require.Equal(t, 2, view.NumRows())

	require.Equal(t, "Erik", view.Cell(0, 0))
	require.Equal(t, 42, view.Cell(0, 1))
	require.Equal(t, &born, view.Cell(0, 2))
	require.Nil(t, view.Cell(0, 3), "nil intermediate")
	require.Equal(t, "x", view.Cell(1, 3))
	require.Equal(t, "Erik Unger", view.Cell(0, 4))
	require.Nil(t, view.Cell(2, 0))
	require.Nil(t, view.Cell(0, 5))
	require.Nil(t, view.Cell(-1, 0))

	require.Equal(t, reflect.TypeFor[int](), c.ReflectCell(1, 1).Type())
	require.False(t, c.ReflectCell(0, 3).IsValid())

	require.Equal(t,
		[][]string{
			{"First Name", "Age", "Born", "Property", "Full Name"},
			{"Erik", "42", "2001-02-03T04:05:06Z", "", "Erik Unger"},
			{"Mia", "0", "", "x", "Mia "},
		},
		ViewStrings(c, c.ColumnTitles()),
	)
	require.Len(t, ViewStrings(c, nil), 2, "without header row")
}

func TestContainer_ColumnTitles(t *testing.T) {
	c := NewContainer(newPersons(1))
	require.NoError(t, c.SetVisiblePropertyIDs("lastName", "detailList[0].moreDetails[1]", "scores(x)"))
	require.NoError(t, c.AddGeneratedProperty("my_generated", nil, func(*Person) (any, error) { return 1, nil }))
	require.Equal(t, []string{"Last Name", "More Details", "Scores", "My generated"}, c.ColumnTitles())

	require.NoError(t, c.ApplyLayout(&Layout{Columns: []LayoutColumn{{Property: "lastName", Title: "Surname"}}}))
	require.Equal(t, []string{"Surname"}, c.ColumnTitles())
}

func TestCellString(t *testing.T) {
	tests := []struct {
		name string
		cell any
		want string
	}{
		{name: "nil", cell: nil, want: ""},
		{name: "nil pointer", cell: (*int)(nil), want: ""},
		{name: "pointer", cell: pointerTo(5), want: "5"},
		{name: "pointer to pointer", cell: pointerTo(pointerTo("x")), want: "x"},
		{name: "string", cell: "hello", want: "hello"},
		{name: "float", cell: 1.5, want: "1.5"},
		{name: "bool", cell: true, want: "true"},
		{name: "time", cell: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), want: "2024-05-06T07:08:09Z"},
		{name: "error", cell: errors.New("failed"), want: "failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CellString(tt.cell))
		})
	}
}
