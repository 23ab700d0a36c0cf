// Package postgres provides a PostgreSQL protein store for shared deployments,
// selected with DATABASE_URL=postgres://... . It uses github.com/lib/pq
// through database/sql and the query code in sqlstore.
package postgres
