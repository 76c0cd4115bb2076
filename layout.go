package listcontainer

import (
	"bytes"
	"errors"
	"fmt"

	fs "github.com/ungerik/go-fs"
	"gopkg.in/yaml.v3"
)

// Layout describes the visible columns, their titles,
// and the sort order of a Container as YAML document:
//
//	title: People
//	columns:
//	  - firstName
//	  - property: detail.property
//	    title: Detail
//	sort:
//	  - property: lastName
//	  - property: age
//	    descending: true
type Layout struct {
	Title   string         `yaml:"title,omitempty"`
	Columns []LayoutColumn `yaml:"columns"`
	Sort    []SortOrder    `yaml:"sort,omitempty"`
}

// LayoutColumn is a visible property id with an optional title.
// In YAML it can be written as plain property id string.
type LayoutColumn struct {
	Property string `yaml:"property"`
	Title    string `yaml:"title,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler
// to accept a plain string as property id.
func (c *LayoutColumn) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Property = node.Value
		c.Title = ""
		return nil
	}
	type plain LayoutColumn
	return node.Decode((*plain)(c))
}

// MarshalYAML implements yaml.Marshaler
// to write columns without title as plain string.
func (c LayoutColumn) MarshalYAML() (any, error) {
	if c.Title == "" {
		return c.Property, nil
	}
	type plain LayoutColumn
	return plain(c), nil
}

// ParseLayout parses a YAML layout document.
// Unknown fields are an error.
func ParseLayout(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	layout := new(Layout)
	if err := dec.Decode(layout); err != nil {
		return nil, fmt.Errorf("can't parse layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}

// ReadLayoutFile reads and parses a YAML layout file.
func ReadLayoutFile(file fs.FileReader) (*Layout, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	layout, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%w in file %s", err, file.Name())
	}
	return layout, nil
}

// Validate returns an error if a column or sort order
// has no property id or a column property id is not unique.
func (l *Layout) Validate() error {
	if l == nil {
		return errors.New("nil Layout")
	}
	seen := make(map[string]bool, len(l.Columns))
	for i, col := range l.Columns {
		if col.Property == "" {
			return fmt.Errorf("layout column %d has no property", i)
		}
		if seen[col.Property] {
			return fmt.Errorf("%w in layout: %q", ErrDuplicateProperty, col.Property)
		}
		seen[col.Property] = true
	}
	for i, order := range l.Sort {
		if order.PropertyID == "" {
			return fmt.Errorf("layout sort order %d has no property", i)
		}
	}
	return nil
}

// Marshal returns the layout as YAML document.
func (l *Layout) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}

// Layout returns the current title and visible columns
// of the container. The sort order is not tracked
// by the container and left empty.
func (c *Container[T]) Layout() *Layout {
	ids := c.propertyIDs()
	layout := &Layout{
		Title:   c.title,
		Columns: make([]LayoutColumn, len(ids)),
	}
	for i, id := range ids {
		layout.Columns[i] = LayoutColumn{Property: id, Title: c.titles[id]}
	}
	return layout
}

// ApplyLayout sets the title, visible property ids,
// and column titles of the container and sorts it
// if the layout has sort orders.
// An empty title or empty columns leave the container unchanged.
// Sort orders are checked first so an unsortable
// property doesn't change anything.
func (c *Container[T]) ApplyLayout(layout *Layout) error {
	if err := layout.Validate(); err != nil {
		return err
	}
	if len(layout.Sort) > 0 && len(c.items) > 0 {
		if _, err := c.sortCompareFuncs(layout.Sort); err != nil {
			return err
		}
	}
	if len(layout.Columns) > 0 {
		ids := make([]string, len(layout.Columns))
		titles := make(map[string]string)
		for i, col := range layout.Columns {
			ids[i] = col.Property
			if col.Title != "" {
				titles[col.Property] = col.Title
			}
		}
		if err := c.SetVisiblePropertyIDs(ids...); err != nil {
			return err
		}
		c.titles = titles
	}
	if layout.Title != "" {
		c.title = layout.Title
	}
	return c.SortBy(layout.Sort...)
}
