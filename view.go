package listcontainer

import (
	"fmt"
	"reflect"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/domonda/go-listcontainer/propertypath"
)

// View is a table with a title, named columns, and rows of cells.
// A Container is a View of its visible items and property ids.
type View interface {
	Title() string
	Columns() []string
	NumRows() int
	// Cell returns the value of a cell
	// or nil if row or col are out of range
	// or the value can't be read.
	Cell(row, col int) any
}

// ReflectCellView is a View that also returns
// cell values as reflect.Value.
type ReflectCellView interface {
	View

	// ReflectCell returns the value of a cell
	// or an invalid reflect.Value if row or col are out of range,
	// the value can't be read, or an intermediate value is nil.
	ReflectCell(row, col int) reflect.Value
}

var _ ReflectCellView = new(Container[*struct{}])

// Title returns the title of the container used as table title.
func (c *Container[T]) Title() string { return c.title }

// SetTitle sets the title of the container.
func (c *Container[T]) SetTitle(title string) { c.title = title }

// Columns returns the visible property ids.
func (c *Container[T]) Columns() []string { return c.PropertyIDs() }

// NumRows returns the number of visible items.
func (c *Container[T]) NumRows() int { return c.Size() }

func (c *Container[T]) Cell(row, col int) any {
	val := c.ReflectCell(row, col)
	if !val.IsValid() || !val.CanInterface() {
		return nil
	}
	return val.Interface()
}

func (c *Container[T]) ReflectCell(row, col int) reflect.Value {
	ids := c.propertyIDs()
	if row < 0 || col < 0 || row >= len(c.visible) || col >= len(ids) {
		return reflect.Value{}
	}
	prop, err := c.property(c.visible[row], ids[col])
	if err != nil {
		return reflect.Value{}
	}
	val, err := prop.ReflectValue()
	if err != nil {
		return reflect.Value{}
	}
	return val
}

// ColumnTitles returns a human readable title for every
// visible property id. Titles set by a Layout are used
// if available, else the last field name of the property id
// is converted with SpacePascalCase.
func (c *Container[T]) ColumnTitles() []string {
	ids := c.propertyIDs()
	titles := make([]string, len(ids))
	for i, id := range ids {
		titles[i] = c.columnTitle(id)
	}
	return titles
}

func (c *Container[T]) columnTitle(id string) string {
	if title, ok := c.titles[id]; ok {
		return title
	}
	name := id
	if path, err := c.path(id); err == nil {
		for i := len(path) - 1; i >= 0; i-- {
			if path[i].Kind == propertypath.FieldStep {
				name = path[i].Name
				break
			}
		}
	}
	r, size := utf8.DecodeRuneInString(name)
	return SpacePascalCase(string(unicode.ToUpper(r)) + name[size:])
}

// ViewStrings returns the cells of a View formatted as strings
// with an optional header row of column titles.
// nil cells are formatted as empty strings.
func ViewStrings(view View, headerRow []string) [][]string {
	rows := make([][]string, 0, view.NumRows()+1)
	if headerRow != nil {
		rows = append(rows, headerRow)
	}
	numCols := len(view.Columns())
	for row := 0; row < view.NumRows(); row++ {
		rowStrs := make([]string, numCols)
		for col := range rowStrs {
			rowStrs[col] = CellString(view.Cell(row, col))
		}
		rows = append(rows, rowStrs)
	}
	return rows
}

// CellString formats a cell value as string.
// nil values and nil pointers return an empty string,
// errors return their message, pointers are dereferenced,
// and time.Time uses RFC 3339.
func CellString(cell any) string {
	val := reflect.ValueOf(cell)
	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return ""
		}
		if err, ok := val.Interface().(error); ok {
			return err.Error()
		}
		val = val.Elem()
	}
	if !val.IsValid() || !val.CanInterface() {
		return ""
	}
	if t, ok := val.Interface().(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return fmt.Sprint(val.Interface())
}
