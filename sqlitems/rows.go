// Package sqlitems scans SQL result sets into container items
// and exposes container views as read only SQL tables.
//
// Result set column names are property ids of the item type,
// so a query like
//
//	SELECT name, street AS "address.street" FROM customers
//
// fills the nested property address.street of every item.
package sqlitems

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"slices"

	"github.com/domonda/go-listcontainer"
	"github.com/domonda/go-listcontainer/propertypath"
)

var _ Rows = &sql.Rows{}

// Rows is implemented by *sql.Rows and the PgxRows adapter.
type Rows interface {
	Columns() ([]string, error)
	Scan(dest ...any) error
	Close() error
	Next() bool
	Err() error
}

// ScanItems scans all rows into items of type T and closes rows.
//
// T must be a struct or a pointer to a struct.
// Every column name must be a property id of T.
// NULL values leave the property unchanged,
// other values are converted with propertypath.Assign.
// A nil resolver uses listcontainer.DefaultNaming.
func ScanItems[T any](ctx context.Context, rows Rows, resolver *propertypath.Resolver) (items []T, err error) {
	defer func() {
		if e := rows.Close(); e != nil && err == nil {
			err = e
		}
	}()

	if resolver == nil {
		resolver = propertypath.NewResolver(propertypath.NewTypeCache(&listcontainer.DefaultNaming))
	}
	itemType := reflect.TypeFor[T]()
	structType := itemType
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("item type %s is not a struct or pointer to struct", itemType)
	}

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	paths := make([]propertypath.Path, len(columns))
	for col, name := range columns {
		path, err := propertypath.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		if _, err = resolver.ResolveType(itemType, path); err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		paths[col] = path
	}

	values := make([]any, len(columns))
	scanners := make([]any, len(columns))
	for i := range scanners {
		scanners[i] = valueScanner{&values[i]}
	}
	for row := 0; rows.Next(); row++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		clear(values)
		if err = rows.Scan(scanners...); err != nil {
			return nil, err
		}
		var item T
		v := reflect.ValueOf(&item).Elem()
		if itemType.Kind() == reflect.Pointer {
			v.Set(reflect.New(structType))
		}
		for col, val := range values {
			if val == nil {
				continue
			}
			if err = resolver.Set(v, paths[col], reflect.ValueOf(val)); err != nil {
				return nil, &listcontainer.CellError{Row: row, Col: col, Err: err}
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// QueryItems executes query on db and scans the result with ScanItems.
func QueryItems[T any](ctx context.Context, db *sql.DB, resolver *propertypath.Resolver, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return ScanItems[T](ctx, rows, resolver)
}

// QueryContainer executes query on db and returns a new Container
// of the scanned items with the result columns as visible property ids.
func QueryContainer[T comparable](ctx context.Context, db *sql.DB, query string, args ...any) (*listcontainer.Container[T], error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	c := listcontainer.NewContainer[T](nil)
	items, err := ScanItems[T](ctx, rows, c.Resolver())
	if err != nil {
		return nil, err
	}
	if err = c.SetVisiblePropertyIDs(columns...); err != nil {
		return nil, err
	}
	c.SetItems(items)
	return c, nil
}

var _ sql.Scanner = new(valueScanner)

type valueScanner struct {
	dest *any
}

// Scan implements the database/sql.Scanner interface.
func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		// Copy bytes because they won't be valid after this method call
		src = slices.Clone(b)
	}
	*s.dest = src
	return nil
}
