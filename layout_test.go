package listcontainer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"
)

const testLayoutYAML = `title: People
columns:
  - lastName
  - property: firstName
    title: Given Name
  - age
sort:
  - property: age
    descending: true
  - property: lastName
`

func TestParseLayout(t *testing.T) {
	layout, err := ParseLayout([]byte(testLayoutYAML))
	require.NoError(t, err)
	require.Equal(t,
		&Layout{
			Title: "People",
			Columns: []LayoutColumn{
				{Property: "lastName"},
				{Property: "firstName", Title: "Given Name"},
				{Property: "age"},
			},
			Sort: []SortOrder{
				{PropertyID: "age", Descending: true},
				{PropertyID: "lastName"},
			},
		},
		layout,
	)

	data, err := layout.Marshal()
	require.NoError(t, err)
	reparsed, err := ParseLayout(data)
	require.NoError(t, err)
	require.Equal(t, layout, reparsed)
	require.Contains(t, string(data), "- lastName\n", "column without title as plain string")
}

func TestParseLayout_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown field", yaml: "columns: [a]\nwidth: 3\n"},
		{name: "unknown column field", yaml: "columns:\n  - property: a\n    width: 3\n"},
		{name: "duplicate column", yaml: "columns: [a, b, a]\n"},
		{name: "empty column", yaml: "columns:\n  - title: x\n"},
		{name: "empty sort property", yaml: "sort:\n  - descending: true\n"},
		{name: "invalid yaml", yaml: "columns: [a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestReadLayoutFile(t *testing.T) {
	file := fs.File(filepath.Join(t.TempDir(), "layout.yaml"))
	require.NoError(t, file.WriteAll([]byte(testLayoutYAML)))

	layout, err := ReadLayoutFile(file)
	require.NoError(t, err)
	require.Equal(t, "People", layout.Title)
	require.Len(t, layout.Columns, 3)

	_, err = ReadLayoutFile(fs.MemFile{FileName: "broken.yaml", FileData: []byte("columns: [a, a]")})
	require.ErrorIs(t, err, ErrDuplicateProperty)
	require.ErrorContains(t, err, "broken.yaml")

	_, err = ReadLayoutFile(fs.File(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
}

func TestContainer_ApplyLayout(t *testing.T) {
	persons := newPersons(4)
	persons[0].LastName = "Same"
	persons[3].LastName = "Same"
	persons[3].Age = 0
	c := NewContainer(persons)
	events := recordEvents(c)

	layout, err := ParseLayout([]byte(testLayoutYAML))
	require.NoError(t, err)
	require.NoError(t, c.ApplyLayout(layout))

	require.Equal(t, "People", c.Title())
	require.Equal(t, []string{"lastName", "firstName", "age"}, c.PropertyIDs())
	require.Equal(t, []string{"Last Name", "Given Name", "Age"}, c.ColumnTitles())
	require.Equal(t, []*Person{persons[2], persons[1], persons[0], persons[3]}, c.ItemIDs())
	require.Len(t, events.propertySetEvents, 1)

	current := c.Layout()
	require.Equal(t, "People", current.Title)
	require.Equal(t, layout.Columns, current.Columns)
	require.Empty(t, current.Sort)

	err = c.ApplyLayout(&Layout{Sort: []SortOrder{{PropertyID: "detailList"}}})
	require.ErrorIs(t, err, ErrNotSortable)
	require.Equal(t, "People", c.Title(), "empty title keeps title")
	require.Len(t, c.PropertyIDs(), 3, "empty columns keep columns")

	require.Error(t, c.ApplyLayout(nil))
}

func TestContainer_ApplyLayout_InvalidSort(t *testing.T) {
	persons := newPersons(3)
	c := NewContainer(persons)
	require.NoError(t, c.SetVisiblePropertyIDs("firstName", "age"))
	c.SetTitle("Before")
	titles := c.ColumnTitles()
	events := recordEvents(c)

	tests := []struct {
		name    string
		layout  *Layout
		wantErr error
	}{
		{
			name: "not sortable",
			layout: &Layout{
				Title:   "After",
				Columns: []LayoutColumn{{Property: "lastName", Title: "Last Name"}},
				Sort:    []SortOrder{{PropertyID: "lastName"}, {PropertyID: "detailList"}},
			},
			wantErr: ErrNotSortable,
		},
		{
			name: "missing property",
			layout: &Layout{
				Title:   "After",
				Columns: []LayoutColumn{{Property: "lastName"}},
				Sort:    []SortOrder{{PropertyID: "missing"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.ApplyLayout(tt.layout)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			require.Equal(t, "Before", c.Title())
			require.Equal(t, []string{"firstName", "age"}, c.PropertyIDs())
			require.Equal(t, titles, c.ColumnTitles())
			require.Equal(t, persons, c.ItemIDs())
		})
	}
	require.Empty(t, events.propertySetEvents)
}
