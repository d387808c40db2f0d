// Package store defines interfaces for data persistence operations.
// The task store interface keeps the service layer independent of the
// database engine, and RunInTransaction gives callers one place to scope
// multi-statement work.
package store
