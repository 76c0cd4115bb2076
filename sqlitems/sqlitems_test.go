package sqlitems

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/domonda/go-listcontainer"
)

type Address struct {
	Street string
	City   string `prop:"town"`
}

type Customer struct {
	Name    string
	Number  int
	Joined  time.Time
	Address *Address
	Tags    map[string]string
}

func Test_parseQuery(t *testing.T) {
	tests := []struct {
		query   string
		want    query
		wantErr bool
	}{
		{
			query: `select * from table`,
			want:  query{table: "table", limit: -1},
		},
		{
			query: `SELECT * FROM "my.table";`,
			want:  query{table: "my.table", limit: -1},
		},
		{
			query: `select a,B , "Col3",column4 from my.table`,
			want:  query{columns: []string{"a", "B", "Col3", "column4"}, table: "my.table", limit: -1},
		},
		{
			query: `SELECT name, "address.town", "tags(level)", "items[0].name" FROM customers`,
			want:  query{columns: []string{"name", "address.town", "tags(level)", "items[0].name"}, table: "customers", limit: -1},
		},
		{
			query: `Select name From customers Limit 10 Offset 5`,
			want:  query{columns: []string{"name"}, table: "customers", limit: 10, offset: 5},
		},
		{
			query: `SELECT * FROM customers OFFSET 2`,
			want:  query{table: "customers", limit: -1, offset: 2},
		},

		// Errors
		{query: "", wantErr: true},
		{query: `SELECT *,b FROM "my.table"`, wantErr: true},
		{query: `SELECT a,* FROM "my.table"`, wantErr: true},
		{query: `SELECT a FROM t WHERE a = 1`, wantErr: true},
		{query: `SELECT a FROM t OFFSET 1 LIMIT 2`, wantErr: true},
		{query: `DELETE FROM t`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := parseQuery(tt.query)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func testCustomers() []*Customer {
	return []*Customer{
		{Name: "Alice", Number: 1, Address: &Address{Street: "Main St 1", City: "Vienna"}},
		{Name: "Bob", Number: 2},
		{Name: "Carol", Number: 3, Address: &Address{City: "Graz"}, Tags: map[string]string{"level": "gold"}},
	}
}

func TestViewDB(t *testing.T) {
	ctx := context.Background()
	c := listcontainer.NewContainer(testCustomers())
	// Tables expose the visible properties of a container
	require.NoError(t, c.SetVisiblePropertyIDs("name", "number", "address.town", "tags(level)"))
	db := NewViewDB("customers", c)
	defer db.Close()

	customers, err := QueryItems[*Customer](ctx, db, nil, `SELECT name, "address.town" FROM customers`)
	require.NoError(t, err)
	require.Equal(t,
		[]*Customer{
			{Name: "Alice", Address: &Address{City: "Vienna"}},
			{Name: "Bob"},
			{Name: "Carol", Address: &Address{City: "Graz"}},
		},
		customers,
	)

	customers, err = QueryItems[*Customer](ctx, db, nil, `SELECT number, name FROM customers LIMIT 1 OFFSET 1`)
	require.NoError(t, err)
	require.Equal(t, []*Customer{{Name: "Bob", Number: 2}}, customers)

	customers, err = QueryItems[*Customer](ctx, db, nil, `SELECT "tags(level)", name FROM customers OFFSET 2`)
	require.NoError(t, err)
	require.Equal(t, []*Customer{{Name: "Carol", Tags: map[string]string{"level": "gold"}}}, customers)

	// Queries read the current state of the container
	require.NoError(t, c.SetVisiblePropertyIDs("name", "number"))
	c.RemoveItem(c.AllItemIDs()[0])
	var names []string
	rows, err := db.QueryContext(ctx, `SELECT * FROM customers`)
	require.NoError(t, err)
	for rows.Next() {
		var (
			name   string
			number int
		)
		require.NoError(t, rows.Scan(&name, &number))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, []string{"Bob", "Carol"}, names)

	_, err = db.QueryContext(ctx, `SELECT * FROM unknown`)
	require.ErrorContains(t, err, "not found")
	_, err = db.QueryContext(ctx, `SELECT unknown FROM customers`)
	require.ErrorContains(t, err, "not found")
	_, err = db.ExecContext(ctx, `SELECT * FROM customers`)
	require.Error(t, err)
}

func TestDriverValue(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		val  any
		want any
	}{
		{name: "nil", val: nil, want: nil},
		{name: "int", val: 7, want: int64(7)},
		{name: "uint8", val: uint8(3), want: int64(3)},
		{name: "float32", val: float32(1.5), want: 1.5},
		{name: "string", val: "x", want: "x"},
		{name: "time", val: now, want: now},
		{name: "nil pointer", val: (*int)(nil), want: nil},
		{name: "valuer", val: sql.NullString{String: "v", Valid: true}, want: "v"},
		{name: "map", val: map[string]int{"a": 1}, want: listcontainer.CellString(map[string]int{"a": 1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := driverValue(tt.val)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection of :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE customers (
			name   TEXT NOT NULL,
			number INTEGER NOT NULL,
			joined TEXT,
			street TEXT,
			town   TEXT,
			level  TEXT
		);
		INSERT INTO customers VALUES ('Alice', 1, '2024-03-01', 'Main St 1', 'Vienna', 'gold');
		INSERT INTO customers VALUES ('Bob', 2, NULL, NULL, NULL, NULL);
	`)
	require.NoError(t, err)
	return db
}

func TestQueryItems_SQLite(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	customers, err := QueryItems[*Customer](ctx, db, nil, `
		SELECT
			name,
			number,
			joined,
			street AS "address.street",
			town AS "address.town",
			level AS "tags(level)"
		FROM customers
		ORDER BY number
	`)
	require.NoError(t, err)
	require.Equal(t,
		[]*Customer{
			{
				Name:    "Alice",
				Number:  1,
				Joined:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				Address: &Address{Street: "Main St 1", City: "Vienna"},
				Tags:    map[string]string{"level": "gold"},
			},
			{Name: "Bob", Number: 2},
		},
		customers,
	)

	values, err := QueryItems[Customer](ctx, db, nil, `SELECT name FROM customers WHERE number = ?`, 2)
	require.NoError(t, err)
	require.Equal(t, []Customer{{Name: "Bob"}}, values)

	_, err = QueryItems[*Customer](ctx, db, nil, `SELECT name, street FROM customers`)
	require.ErrorContains(t, err, `column "street"`)

	_, err = QueryItems[*Customer](ctx, db, nil, `SELECT name AS number FROM customers`)
	require.True(t, listcontainer.IsCellError(err))

	_, err = QueryItems[string](ctx, db, nil, `SELECT name FROM customers`)
	require.Error(t, err)

	_, err = QueryItems[*Customer](ctx, db, nil, `SELECT * FROM missing_table`)
	require.Error(t, err)
}

func TestQueryContainer_SQLite(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	c, err := QueryContainer[*Customer](ctx, db, `SELECT number, name, town AS "address.town" FROM customers ORDER BY number DESC`)
	require.NoError(t, err)
	require.Equal(t, 2, c.Size())
	require.Equal(t, []string{"number", "name", "address.town"}, c.PropertyIDs())
	require.Equal(t, "Bob", c.Cell(0, 1))
	require.Equal(t, "Vienna", c.Cell(1, 2))

	// Round trip through the view database
	viewDB := NewViewDB("customers", c)
	defer viewDB.Close()
	customers, err := QueryItems[*Customer](ctx, viewDB, c.Resolver(), `SELECT name FROM customers`)
	require.NoError(t, err)
	require.Equal(t, []*Customer{{Name: "Bob"}, {Name: "Alice"}}, customers)
}

func TestScanItems_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	db := openSQLite(t)
	_, err := QueryItems[*Customer](ctx, db, nil, `SELECT name FROM customers`)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOpenPostgres(t *testing.T) {
	ctx := context.Background()

	var openedDriver string
	sqlOpen = func(driverName, dsn string) (*sql.DB, error) {
		openedDriver = driverName
		return sql.Open("sqlite", ":memory:")
	}
	t.Cleanup(func() { sqlOpen = sql.Open })

	db, err := OpenPostgres(ctx, "postgres://localhost/test")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.Equal(t, "pgx", openedDriver)

	sqlOpen = func(string, string) (*sql.DB, error) {
		return nil, errors.New("boom")
	}
	_, err = OpenPostgres(ctx, "postgres://localhost/test")
	require.ErrorContains(t, err, "open postgres: boom")

	sqlOpen = sql.Open
	_, err = OpenPostgres(ctx, "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	require.Error(t, err)
}
