// Package testdb provides helpers for tests that run against a real
// PostgreSQL database. Tests using it carry the integration build tag and
// skip themselves when no database URL is configured.
package testdb
