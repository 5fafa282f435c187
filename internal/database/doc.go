// Package database implements the domain repositories on PostgreSQL
// via pgx, plus connection setup and startup migrations.
package database
