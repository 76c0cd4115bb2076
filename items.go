package listcontainer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/domonda/go-listcontainer/propertypath"
)

// NewItemsFromStrings creates one item of type T per row
// setting the properties named by the columns of header
// to the row's string values converted with propertypath.Assign.
//
// T must be a struct or a pointer to a struct.
// Header columns are trimmed and may be nested property ids
// like "detail.property". Empty header columns and empty cells
// are skipped. A nil resolver uses DefaultNaming.
func NewItemsFromStrings[T any](resolver *propertypath.Resolver, header []string, rows [][]string) ([]T, error) {
	if resolver == nil {
		resolver = propertypath.NewResolver(propertypath.NewTypeCache(&DefaultNaming))
	}
	itemType := reflect.TypeFor[T]()
	structType := itemType
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("item type %s is not a struct or pointer to struct", itemType)
	}

	paths := make([]propertypath.Path, len(header))
	for col, id := range header {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		path, err := propertypath.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", col, err)
		}
		if _, err := resolver.ResolveType(itemType, path); err != nil {
			return nil, fmt.Errorf("column %d: %w", col, err)
		}
		paths[col] = path
	}

	items := make([]T, len(rows))
	for rowIndex, row := range rows {
		item := reflect.ValueOf(&items[rowIndex]).Elem()
		if itemType.Kind() == reflect.Pointer {
			item.Set(reflect.New(structType))
		}
		for col, str := range row {
			if col >= len(paths) || paths[col] == nil || str == "" {
				continue
			}
			err := resolver.Set(item, paths[col], reflect.ValueOf(str))
			if err != nil {
				return nil, &CellError{Row: rowIndex, Col: col, Err: err}
			}
		}
	}
	return items, nil
}

// CellError wraps an error with the row and column
// of the table cell that caused it.
type CellError struct {
	Row int
	Col int
	Err error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("row %d, column %d: %s", e.Row, e.Col, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// IsCellError returns true if err wraps a *CellError.
func IsCellError(err error) bool {
	var cellErr *CellError
	return errors.As(err, &cellErr)
}

// RemoveEmptyRows removes rows with only empty or whitespace cells.
func RemoveEmptyRows(rows [][]string) [][]string {
	filtered := rows[:0:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				filtered = append(filtered, row)
				break
			}
		}
	}
	return filtered
}
