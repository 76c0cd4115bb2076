package sqlitems

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/domonda/go-listcontainer"
)

var _ driver.Stmt = new(stmt)

// stmt is a parsed SELECT query over a view.
type stmt struct {
	view listcontainer.View
}

func newStmt(views map[string]listcontainer.View, query string) (*stmt, error) {
	q, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	view := views[q.table]
	if view == nil {
		return nil, fmt.Errorf("table %q not found", q.table)
	}
	sourceColumns := view.Columns()
	if q.columns == nil {
		q.columns = sourceColumns
	}
	if slices.Equal(q.columns, sourceColumns) && q.offset == 0 && q.limit < 0 {
		return &stmt{view: view}, nil
	}
	projected := &projectedView{
		source:  view,
		columns: q.columns,
		mapping: make([]int, len(q.columns)),
		offset:  q.offset,
		limit:   q.limit,
	}
	for i, column := range q.columns {
		projected.mapping[i] = slices.Index(sourceColumns, column)
		if projected.mapping[i] == -1 {
			return nil, fmt.Errorf("column %q not found in table %q", column, q.table)
		}
	}
	return &stmt{view: projected}, nil
}

func (s *stmt) Close() error {
	return nil
}

// NumInput returns 0 because placeholders are not supported.
func (s *stmt) NumInput() int {
	return 0
}

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, errors.New("Exec not supported by read only view database")
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	return &driverRows{view: s.view}, nil
}

var _ driver.Rows = new(driverRows)

type driverRows struct {
	view     listcontainer.View
	rowIndex int
}

func (r *driverRows) Columns() []string {
	return r.view.Columns()
}

func (r *driverRows) Close() error {
	r.rowIndex = -1
	return nil
}

func (r *driverRows) Next(dest []driver.Value) (err error) {
	if r.rowIndex < 0 || r.rowIndex >= r.view.NumRows() {
		return io.EOF
	}
	for col := range dest {
		dest[col], err = driverValue(r.view.Cell(r.rowIndex, col))
		if err != nil {
			return fmt.Errorf("row %d, column %d: %w", r.rowIndex, col, err)
		}
	}
	r.rowIndex++
	return nil
}

// driverValue converts a cell to a driver.Value.
// Values without a driver representation like maps and structs
// are formatted with listcontainer.CellString.
func driverValue(val any) (driver.Value, error) {
	if valuer, ok := val.(driver.Valuer); ok {
		return valuer.Value()
	}
	if driver.IsValue(val) {
		return val, nil
	}
	if v, err := driver.DefaultParameterConverter.ConvertValue(val); err == nil {
		return v, nil
	}
	return listcontainer.CellString(val), nil
}

// projectedView selects and reorders the columns
// of a source view and slices its rows.
type projectedView struct {
	source  listcontainer.View
	columns []string
	mapping []int
	offset  int
	limit   int // negative for no limit
}

func (v *projectedView) Title() string     { return v.source.Title() }
func (v *projectedView) Columns() []string { return v.columns }

func (v *projectedView) NumRows() int {
	n := max(v.source.NumRows()-v.offset, 0)
	if v.limit >= 0 {
		n = min(n, v.limit)
	}
	return n
}

func (v *projectedView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= v.NumRows() || col >= len(v.mapping) {
		return nil
	}
	return v.source.Cell(row+v.offset, v.mapping[col])
}

const identPattern = `[a-zA-Z]\w*|"[^",]+"`

var queryRegexp = regexp.MustCompile(
	`^(?i:select)\s+(\*|(?:` + identPattern + `)(?:\s*,\s*(?:` + identPattern + `))*)` +
		`\s+(?i:from)\s+([a-zA-Z][\w.]*|"[a-zA-Z][\w.]*")` +
		`(?:\s+(?i:limit)\s+(\d+))?` +
		`(?:\s+(?i:offset)\s+(\d+))?` +
		`(?:\s*;)*$`,
)

type query struct {
	columns []string // nil for *
	table   string
	offset  int
	limit   int // -1 for no limit
}

func parseQuery(str string) (q query, err error) {
	str = strings.TrimSpace(str)
	m := queryRegexp.FindStringSubmatch(str)
	if m == nil {
		return query{}, fmt.Errorf("invalid query %q", str)
	}
	if m[1] != "*" {
		q.columns = strings.Split(m[1], ",")
		for i := range q.columns {
			q.columns[i] = unquote(strings.TrimSpace(q.columns[i]))
		}
	}
	q.table = unquote(m[2])
	q.limit = -1
	if m[3] != "" {
		if q.limit, err = strconv.Atoi(m[3]); err != nil {
			return query{}, fmt.Errorf("invalid LIMIT in query %q: %w", str, err)
		}
	}
	if m[4] != "" {
		if q.offset, err = strconv.Atoi(m[4]); err != nil {
			return query{}, fmt.Errorf("invalid OFFSET in query %q: %w", str, err)
		}
	}
	return q, nil
}

func unquote(str string) string {
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}
	return str
}
