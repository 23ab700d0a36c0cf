package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect selects placeholder syntax.
type Dialect int

const (
	// SQLite uses '?' placeholders.
	SQLite Dialect = iota
	// Postgres uses '$1', '$2', ... placeholders.
	Postgres
)

// String returns the dialect name.
func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Rebind converts '?' placeholders to the dialect's syntax.
// Queries must not contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
