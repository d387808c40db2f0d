package mocks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync/atomic"
)

// MockDB satisfies store.TxBeginner and hands out real *sql.Tx values backed
// by a driver that executes nothing. It lets transactional service code run
// against in-memory stores.
type MockDB struct {
	// BeginErr, when set, is returned by BeginTx instead of a transaction.
	BeginErr error
	// CommitErr, when set, is returned by every Commit.
	CommitErr error

	Begins    atomic.Int64
	Commits   atomic.Int64
	Rollbacks atomic.Int64

	db *sql.DB
}

// NewMockDB creates a MockDB. Close it when the test ends.
func NewMockDB() *MockDB {
	m := &MockDB{}
	m.db = sql.OpenDB(noopConnector{owner: m})
	return m
}

// BeginTx implements store.TxBeginner
func (m *MockDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	m.Begins.Add(1)
	return m.db.BeginTx(ctx, opts)
}

// Close releases the underlying connection pool.
func (m *MockDB) Close() error {
	return m.db.Close()
}

var errNoopExec = errors.New("mocks: statements are not supported by MockDB")

type noopConnector struct {
	owner *MockDB
}

func (c noopConnector) Connect(context.Context) (driver.Conn, error) {
	return &noopConn{owner: c.owner}, nil
}

func (c noopConnector) Driver() driver.Driver {
	return noopDriver{owner: c.owner}
}

type noopDriver struct {
	owner *MockDB
}

func (d noopDriver) Open(string) (driver.Conn, error) {
	return &noopConn{owner: d.owner}, nil
}

type noopConn struct {
	owner *MockDB
}

func (c *noopConn) Prepare(string) (driver.Stmt, error) { return nil, errNoopExec }
func (c *noopConn) Close() error                        { return nil }
func (c *noopConn) Begin() (driver.Tx, error)           { return &noopTx{owner: c.owner}, nil }

type noopTx struct {
	owner *MockDB
}

func (t *noopTx) Commit() error {
	t.owner.Commits.Add(1)
	return t.owner.CommitErr
}

func (t *noopTx) Rollback() error {
	t.owner.Rollbacks.Add(1)
	return nil
}
