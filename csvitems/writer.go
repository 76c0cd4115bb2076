package csvitems

import (
	"bytes"
	"context"
	"io"
	"reflect"
	"strings"

	"github.com/domonda/go-types/charset"

	"github.com/domonda/go-listcontainer"
)

// Encoder encodes the UTF-8 bytes of a written row.
type Encoder interface {
	Bytes([]byte) ([]byte, error)
}

// EncoderFunc implements the Encoder interface for a function.
type EncoderFunc func([]byte) ([]byte, error)

func (f EncoderFunc) Bytes(data []byte) ([]byte, error) {
	return f(data)
}

// CharsetEncoder returns an Encoder for a character encoding
// name supported by the go-types charset package.
func CharsetEncoder(name string) (Encoder, error) {
	enc, err := charset.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	return EncoderFunc(enc.Encode), nil
}

// HeaderRow selects what the first written row contains.
type HeaderRow int

const (
	NoHeaderRow HeaderRow = iota
	// HeaderRowPropertyIDs writes the column property ids
	// so that the CSV can be read back with Read.
	HeaderRowPropertyIDs
	// HeaderRowTitles writes the column titles of views
	// implementing ColumnTitles() []string.
	HeaderRowTitles
)

// Writer writes a listcontainer.View as CSV.
// All With* methods return a modified copy.
type Writer struct {
	headerRow        HeaderRow
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	nilValue         string
	delimiter        rune
	newLine          string
	encoder          Encoder
}

// NewWriter returns a Writer using ';' as delimiter,
// "\r\n" as newline, and the property ids as header row.
func NewWriter() *Writer {
	return &Writer{
		headerRow:    HeaderRowPropertyIDs,
		escapeQuotes: `""`,
		delimiter:    ';',
		newLine:      "\r\n",
	}
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WriteView writes the optional header row
// and all rows of view to dest.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view listcontainer.View) error {
	switch w.headerRow {
	case HeaderRowPropertyIDs:
		if err := w.writeRow(dest, view.Columns()); err != nil {
			return err
		}
	case HeaderRowTitles:
		titles := view.Columns()
		if titled, ok := view.(interface{ ColumnTitles() []string }); ok {
			titles = titled.ColumnTitles()
		}
		if err := w.writeRow(dest, titles); err != nil {
			return err
		}
	}

	numCols := len(view.Columns())
	rowStrs := make([]string, numCols)
	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for col := range rowStrs {
			cell := view.Cell(row, col)
			if listcontainer.ValueIsNil(reflect.ValueOf(cell)) {
				rowStrs[col] = w.nilValue
			} else {
				rowStrs[col] = listcontainer.CellString(cell)
			}
		}
		if err := w.writeRow(dest, rowStrs); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the CSV of view.
func (w *Writer) Bytes(ctx context.Context, view listcontainer.View) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.WriteView(ctx, &buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *Writer) writeRow(dest io.Writer, fields []string) error {
	var row bytes.Buffer
	for i, field := range fields {
		if i > 0 {
			row.WriteRune(w.delimiter)
		}
		row.WriteString(w.escapeString(field))
	}
	row.WriteString(w.newLine)

	data := row.Bytes()
	if w.encoder != nil {
		var err error
		data, err = w.encoder.Bytes(data)
		if err != nil {
			return err
		}
	}
	_, err := dest.Write(data)
	return err
}

func (w *Writer) escapeString(str string) string {
	// \n alone is valid within quotes
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields ||
		strings.ContainsRune(str, w.delimiter) ||
		strings.ContainsRune(str, '\n') ||
		strings.HasPrefix(str, `"`):
		return `"` + strings.ReplaceAll(str, `"`, w.escapeQuotes) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return str
}

func (w *Writer) WithHeaderRow(headerRow HeaderRow) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

// WithNilValue sets the string written for nil cells.
func (w *Writer) WithNilValue(nilValue string) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *Writer) WithEscapeQuotes(escapeQuotes string) *Writer {
	mod := w.clone()
	mod.escapeQuotes = escapeQuotes
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

// WithFormat sets delimiter, newline, and encoder from format.
func (w *Writer) WithFormat(format *Format) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	mod := w.clone()
	mod.delimiter = rune(format.Separator[0])
	mod.newLine = format.Newline
	mod.encoder = nil
	if format.Encoding != "UTF-8" {
		enc, err := CharsetEncoder(format.Encoding)
		if err != nil {
			return nil, err
		}
		mod.encoder = enc
	}
	return mod, nil
}

func (w *Writer) WithEncoder(encoder Encoder) *Writer {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

func (w *Writer) Delimiter() rune { return w.delimiter }

func (w *Writer) NewLine() string { return w.newLine }
