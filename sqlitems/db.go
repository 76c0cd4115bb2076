package sqlitems

import (
	"context"
	"database/sql"
	"database/sql/driver"

	"github.com/domonda/go-listcontainer"
)

// NewViewsDB returns a read only database whose tables are views.
// Supported queries are
//
//	SELECT * | col1, "nested.col2" FROM table [LIMIT n] [OFFSET m]
//
// Views are read at query time,
// so the result reflects the current state of a Container.
func NewViewsDB(views map[string]listcontainer.View) *sql.DB {
	return sql.OpenDB(database{views: views})
}

// NewViewDB returns a read only database with view as the only table.
func NewViewDB(tableName string, view listcontainer.View) *sql.DB {
	return NewViewsDB(map[string]listcontainer.View{
		tableName: view,
	})
}

type database struct {
	views map[string]listcontainer.View
}

func (c database) Connect(context.Context) (driver.Conn, error) {
	return c, nil
}

func (c database) Driver() driver.Driver {
	return c
}

func (c database) Open(string) (driver.Conn, error) {
	return c, nil
}

func (c database) OpenConnector(string) (driver.Connector, error) {
	return c, nil
}

func (c database) Prepare(query string) (driver.Stmt, error) {
	return newStmt(c.views, query)
}

func (database) Close() error {
	return nil
}

func (c database) Begin() (driver.Tx, error) {
	return c, nil
}

func (database) Commit() error {
	return nil
}

func (database) Rollback() error {
	return nil
}
