// Package sqlstore implements driven.ProteinStore over database/sql.
//
// Queries are written with '?' placeholders and rebound for the target
// dialect, so the SQLite and PostgreSQL adapters share one implementation
// and differ only in how they open the database and which schema they apply.
package sqlstore
