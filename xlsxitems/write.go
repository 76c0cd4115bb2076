package xlsxitems

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-listcontainer"
)

// WriteView writes view as a new sheet of an Excel file to dest.
// The first row contains the column property ids
// so the file can be read back with ReadSheet.
// An empty sheet name uses the title of the view
// or "Sheet1" if the view has no title.
//
// Numbers, booleans, and strings are written as native cell values.
// Other values like time.Time are formatted with listcontainer.CellString
// so they can be parsed back.
func WriteView(dest io.Writer, sheet string, view listcontainer.View) (err error) {
	if sheet == "" {
		sheet = view.Title()
	}
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if err = f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	columns := view.Columns()
	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err = f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	values := make([]any, len(columns))
	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		for col := range values {
			values[col] = cellValue(view.Cell(row, col))
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("can't write row %d: %w", row, err)
		}
	}

	return f.Write(dest)
}

// Bytes returns view written as Excel file with WriteView.
func Bytes(sheet string, view listcontainer.View) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteView(&buf, sheet, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellValue(cell any) any {
	val := reflect.ValueOf(cell)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if !val.IsValid() {
		return nil
	}
	switch val.Kind() {
	case reflect.Bool:
		return val.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint()
	case reflect.Float32, reflect.Float64:
		return val.Float()
	case reflect.String:
		return val.String()
	}
	return listcontainer.CellString(cell)
}
