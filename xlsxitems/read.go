// Package xlsxitems reads the sheets of Excel files into container items
// and writes container views as Excel sheets using excelize.
//
// Like with CSV, the first row of a sheet names
// the property ids of the items.
package xlsxitems

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	fs "github.com/ungerik/go-fs"
	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-listcontainer"
	"github.com/domonda/go-listcontainer/propertypath"
)

var (
	// ErrEmptySheet is returned for sheets without any non empty row.
	ErrEmptySheet = errors.New("empty sheet")
)

// ErrSheetNotExist is returned for missing sheet names.
type ErrSheetNotExist = excelize.ErrSheetNotExist

// ReadSheetRows returns the non empty rows of a sheet.
// An empty sheet name selects the first sheet.
// If rawCellStrings is true then cell values are returned
// without applying their number format.
func ReadSheetRows(reader io.Reader, sheet string, rawCellStrings bool) (rows [][]string, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
		}
	}
	rows, err = f.GetRows(sheet, excelize.Options{RawCellValue: rawCellStrings})
	if err != nil {
		return nil, err
	}
	rows = listcontainer.RemoveEmptyRows(rows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySheet, sheet)
	}
	return rows, nil
}

// ReadSheet reads the items of a sheet.
// An empty sheet name selects the first sheet.
// The first row names the property ids of T
// and cells are converted with propertypath.Assign.
// A nil resolver uses listcontainer.DefaultNaming.
func ReadSheet[T any](reader io.Reader, sheet string, resolver *propertypath.Resolver) ([]T, error) {
	rows, err := ReadSheetRows(reader, sheet, true)
	if err != nil {
		return nil, err
	}
	return listcontainer.NewItemsFromStrings[T](resolver, rows[0], rows[1:])
}

// ReadFile reads the items of the first sheet of an Excel file.
func ReadFile[T any](file fs.FileReader, resolver *propertypath.Resolver) ([]T, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	items, err := ReadSheet[T](bytes.NewReader(data), "", resolver)
	if err != nil {
		return nil, fmt.Errorf("%w in Excel file %s", err, file.Name())
	}
	return items, nil
}

// ReadContainer reads the first sheet of an Excel file into a new Container
// whose title is the sheet name and whose visible property ids
// are the non empty header columns.
func ReadContainer[T comparable](file fs.FileReader, options ...listcontainer.Option) (*listcontainer.Container[T], error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w in Excel file %s", err, file.Name())
	}
	sheet := f.GetSheetName(0)
	if err = f.Close(); err != nil {
		return nil, err
	}

	rows, err := ReadSheetRows(bytes.NewReader(data), sheet, true)
	if err != nil {
		return nil, fmt.Errorf("%w in Excel file %s", err, file.Name())
	}
	c := listcontainer.NewContainer[T](nil, options...)
	items, err := listcontainer.NewItemsFromStrings[T](c.Resolver(), rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("%w in Excel file %s", err, file.Name())
	}
	var ids []string
	for _, col := range rows[0] {
		if col != "" {
			ids = append(ids, col)
		}
	}
	if err = c.SetVisiblePropertyIDs(ids...); err != nil {
		return nil, err
	}
	c.SetTitle(sheet)
	c.SetItems(items)
	return c, nil
}
