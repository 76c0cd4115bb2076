package csvitems

import (
	"fmt"
	"strings"

	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-listcontainer"
	"github.com/domonda/go-listcontainer/propertypath"
)

// Read detects the format of CSV data and returns one item per
// non empty row after the header row.
// The header row names the property ids of T.
// A nil resolver uses listcontainer.DefaultNaming.
func Read[T any](data []byte, config *DetectionConfig, resolver *propertypath.Resolver) ([]T, *Format, error) {
	rows, format, err := ParseDetectFormat(data, config)
	if err != nil {
		return nil, format, err
	}
	items, err := rowsAsItems[T](rows, resolver)
	return items, format, err
}

// ReadWithFormat is like Read but uses a known format.
func ReadWithFormat[T any](data []byte, format *Format, resolver *propertypath.Resolver) ([]T, error) {
	rows, err := ParseWithFormat(data, format)
	if err != nil {
		return nil, err
	}
	return rowsAsItems[T](rows, resolver)
}

// ReadFile reads a CSV file with Read.
func ReadFile[T any](file fs.FileReader, config *DetectionConfig, resolver *propertypath.Resolver) ([]T, *Format, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	items, format, err := Read[T](data, config, resolver)
	if err != nil {
		return nil, format, fmt.Errorf("%w in CSV file %s", err, file.Name())
	}
	return items, format, nil
}

// ReadContainer reads a CSV file into a new Container
// whose visible property ids are the CSV header columns.
func ReadContainer[T comparable](file fs.FileReader, config *DetectionConfig, options ...listcontainer.Option) (*listcontainer.Container[T], error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	rows, _, err := ParseDetectFormat(data, config)
	if err != nil {
		return nil, fmt.Errorf("%w in CSV file %s", err, file.Name())
	}
	rows = listcontainer.RemoveEmptyRows(rows)
	c := listcontainer.NewContainer[T](nil, options...)
	items, err := rowsAsItems[T](rows, c.Resolver())
	if err != nil {
		return nil, fmt.Errorf("%w in CSV file %s", err, file.Name())
	}
	if len(rows) > 0 {
		var ids []string
		for _, col := range rows[0] {
			if id := strings.TrimSpace(col); id != "" {
				ids = append(ids, id)
			}
		}
		if err = c.SetVisiblePropertyIDs(ids...); err != nil {
			return nil, err
		}
	}
	c.SetItems(items)
	return c, nil
}

func rowsAsItems[T any](rows [][]string, resolver *propertypath.Resolver) ([]T, error) {
	rows = listcontainer.RemoveEmptyRows(rows)
	if len(rows) == 0 {
		return nil, nil
	}
	return listcontainer.NewItemsFromStrings[T](resolver, rows[0], rows[1:])
}
