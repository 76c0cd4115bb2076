// Package htmlitems writes container views as HTML tables.
//
// Cell values are HTML escaped unless a CellFormatter
// returns raw HTML.
package htmlitems

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"maps"
	"reflect"

	"github.com/domonda/go-listcontainer"
)

// Writer writes a listcontainer.View as HTML table.
// All With* methods return a modified copy.
type Writer struct {
	tableClass       string
	columnFormatters map[string]CellFormatter
	typeFormatters   map[reflect.Type]CellFormatter
	nilValue         template.HTML
	headerRow        bool
	headerTemplate   *template.Template
	rowTemplate      *template.Template
	footerTemplate   *template.Template
}

// NewWriter returns a Writer without header row and formatters
// using HeaderTemplate, RowTemplate, and FooterTemplate.
func NewWriter() *Writer {
	return &Writer{
		headerTemplate: HeaderTemplate,
		rowTemplate:    RowTemplate,
		footerTemplate: FooterTemplate,
	}
}

// WriteView writes view as HTML table with the title
// of the view as caption.
//
// Cells are formatted by the formatter of their column property id,
// else by the formatter of their type,
// else with listcontainer.CellString.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view listcontainer.View) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var (
		columns   = view.Columns()
		numCols   = len(columns)
		templData = &RowTemplateContext{
			TemplateContext: TemplateContext{
				TableClass: w.tableClass,
				Caption:    view.Title(),
			},
			Cells: make([]CellContext, numCols),
		}
	)
	for i, column := range columns {
		templData.Cells[i].PropertyID = column
	}

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	if w.headerRow {
		titles := columns
		if titled, ok := view.(interface{ ColumnTitles() []string }); ok {
			titles = titled.ColumnTitles()
		}
		templData.IsHeaderRow = true
		templData.ViewRow = -1
		for i := range titles {
			templData.Cells[i].HTML = template.HTML(template.HTMLEscapeString(titles[i])) //#nosec G203
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.IsHeaderRow = false
		templData.RowIndex++
	}

	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		templData.ViewRow = row
		for col := range numCols {
			cell := &templData.Cells[col]
			value := view.Cell(row, col)
			cell.IsNil = listcontainer.ValueIsNil(reflect.ValueOf(value))
			cell.HTML, err = w.formatCell(columns[col], value)
			if err != nil {
				return &listcontainer.CellError{Row: row, Col: col, Err: err}
			}
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.RowIndex++
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

func (w *Writer) formatCell(column string, value any) (template.HTML, error) {
	if listcontainer.ValueIsNil(reflect.ValueOf(value)) {
		return w.nilValue, nil
	}
	formatter := w.columnFormatters[column]
	if formatter == nil {
		formatter = w.typeFormatters[reflect.TypeOf(value)]
	}
	if formatter == nil {
		return template.HTML(template.HTMLEscapeString(listcontainer.CellString(value))), nil //#nosec G203
	}
	str, raw, err := formatter.FormatCell(value)
	if err != nil {
		return "", err
	}
	if !raw {
		str = template.HTMLEscapeString(str)
	}
	return template.HTML(str), nil //#nosec G203
}

// Bytes returns the HTML table of view.
func (w *Writer) Bytes(ctx context.Context, view listcontainer.View) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.WriteView(ctx, &buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WithHeaderRow returns a writer that renders the column titles
// of the view as th elements in the first row.
func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithColumnFormatter returns a writer using formatter for the cells
// of the column with propertyID.
// Column formatters take precedence over type formatters.
// A nil formatter removes the column formatter.
func (w *Writer) WithColumnFormatter(propertyID string, formatter CellFormatter) *Writer {
	mod := w.clone()
	mod.columnFormatters = maps.Clone(w.columnFormatters)
	if formatter == nil {
		delete(mod.columnFormatters, propertyID)
		return mod
	}
	if mod.columnFormatters == nil {
		mod.columnFormatters = make(map[string]CellFormatter)
	}
	mod.columnFormatters[propertyID] = formatter
	return mod
}

// WithTypeFormatter returns a writer using formatter for
// cell values of type typ.
// A nil formatter removes the type formatter.
func (w *Writer) WithTypeFormatter(typ reflect.Type, formatter CellFormatter) *Writer {
	mod := w.clone()
	mod.typeFormatters = maps.Clone(w.typeFormatters)
	if formatter == nil {
		delete(mod.typeFormatters, typ)
		return mod
	}
	if mod.typeFormatters == nil {
		mod.typeFormatters = make(map[reflect.Type]CellFormatter)
	}
	mod.typeFormatters[typ] = formatter
	return mod
}

// WithNilValue sets the HTML written for nil cells.
func (w *Writer) WithNilValue(nilValue template.HTML) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *Writer) WithTemplates(header, row, footer *template.Template) *Writer {
	mod := w.clone()
	mod.headerTemplate = header
	mod.rowTemplate = row
	mod.footerTemplate = footer
	return mod
}
