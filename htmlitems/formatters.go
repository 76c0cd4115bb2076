package htmlitems

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/domonda/go-listcontainer"
)

// CellFormatter formats the value of a cell.
// If raw is true then str is HTML that will not be escaped.
type CellFormatter interface {
	FormatCell(value any) (str string, raw bool, err error)
}

// CellFormatterFunc implements CellFormatter with a function.
type CellFormatterFunc func(value any) (str string, raw bool, err error)

func (f CellFormatterFunc) FormatCell(value any) (str string, raw bool, err error) {
	return f(value)
}

var (
	PreCellFormatter CellFormatterFunc = func(value any) (str string, raw bool, err error) {
		return "<pre>" + template.HTMLEscapeString(listcontainer.CellString(value)) + "</pre>", true, nil
	}

	CodeCellFormatter CellFormatterFunc = func(value any) (str string, raw bool, err error) {
		return "<code>" + template.HTMLEscapeString(listcontainer.CellString(value)) + "</code>", true, nil
	}

	_ CellFormatter = JSONCellFormatter("")
	_ CellFormatter = SpanClassCellFormatter("")
)

// JSONCellFormatter formats values as JSON within a pre element
// indented by the underlying string or compacted if it is empty.
// []byte and string values must already be JSON,
// other values are marshalled.
type JSONCellFormatter string

func (indent JSONCellFormatter) FormatCell(value any) (str string, raw bool, err error) {
	var src []byte
	switch v := value.(type) {
	case json.RawMessage:
		src = v
	case []byte:
		src = v
	case string:
		src = []byte(v)
	default:
		src, err = json.Marshal(value)
		if err != nil {
			return "", false, err
		}
	}
	var buf bytes.Buffer
	if indent == "" {
		err = json.Compact(&buf, src)
	} else {
		err = json.Indent(&buf, src, "", string(indent))
	}
	if err != nil {
		return "", false, err
	}
	return "<pre>" + template.HTMLEscapeString(buf.String()) + "</pre>", true, nil
}

// SpanClassCellFormatter formats the value within
// a span element with the class of the underlying string.
type SpanClassCellFormatter string

func (class SpanClassCellFormatter) FormatCell(value any) (str string, raw bool, err error) {
	text := template.HTMLEscapeString(listcontainer.CellString(value))
	return fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), text), true, nil
}
