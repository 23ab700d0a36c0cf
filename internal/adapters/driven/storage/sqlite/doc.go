// Package sqlite provides the default protein store, a single SQLite file
// under the data directory (~/.tmvis/data/tmvis.db unless overridden).
//
// It uses modernc.org/sqlite, a pure-Go driver, so the binary builds
// without cgo. The query code lives in sqlstore and is shared with the
// PostgreSQL adapter.
package sqlite
