// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver. It also owns the embedded schema, applied with
// goose by Migrate.
package postgres
