package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"
	"testing"
)

var fromTable = regexp.MustCompile(`FROM\s+(\w+)`)

// fakeResult is what a query against one table returns.
type fakeResult struct {
	columns []string
	rows    [][]driver.Value
	err     error
}

// fakeDB is an in-process driver.Connector that serves canned rows per table
// and records the statement and transaction boundaries it sees.
type fakeDB struct {
	mu      sync.Mutex
	tables  map[string]fakeResult
	events  []string
	beginTx []driver.TxOptions
}

func newFakeDB(t *testing.T) (*fakeDB, *sql.DB) {
	t.Helper()
	f := &fakeDB{tables: map[string]fakeResult{}}
	db := sql.OpenDB(f)
	t.Cleanup(func() { db.Close() })
	return f, db
}

func (f *fakeDB) set(table string, result fakeResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table] = result
}

func (f *fakeDB) record(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeDB) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.events...)
}

func (f *fakeDB) TxOptions() []driver.TxOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]driver.TxOptions{}, f.beginTx...)
}

func (f *fakeDB) Connect(context.Context) (driver.Conn, error) { return &fakeConn{db: f}, nil }
func (f *fakeDB) Driver() driver.Driver                        { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("fake driver: use sql.OpenDB")
}

type fakeConn struct {
	db *fakeDB
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("fake driver: prepared statements not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *fakeConn) BeginTx(_ context.Context, opts driver.TxOptions) (driver.Tx, error) {
	c.db.mu.Lock()
	c.db.beginTx = append(c.db.beginTx, opts)
	c.db.mu.Unlock()
	c.db.record("begin")
	return &fakeTx{db: c.db}, nil
}

func (c *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	m := fromTable.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("fake driver: no table in %q", query)
	}
	table := m[1]
	c.db.record("query " + table)

	c.db.mu.Lock()
	result, ok := c.db.tables[table]
	c.db.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("fake driver: no rows configured for %s", table)
	}
	if result.err != nil {
		return nil, result.err
	}
	return &fakeRows{columns: result.columns, rows: result.rows}, nil
}

type fakeTx struct {
	db *fakeDB
}

func (tx *fakeTx) Commit() error {
	tx.db.record("commit")
	return nil
}

func (tx *fakeTx) Rollback() error {
	tx.db.record("rollback")
	return nil
}

type fakeRows struct {
	columns []string
	rows    [][]driver.Value
	next    int
}

func (r *fakeRows) Columns() []string { return r.columns }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.next >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.next])
	r.next++
	return nil
}

var (
	_ driver.Connector      = (*fakeDB)(nil)
	_ driver.ConnBeginTx    = (*fakeConn)(nil)
	_ driver.QueryerContext = (*fakeConn)(nil)
)
