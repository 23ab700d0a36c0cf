package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rostlab/tmvis/internal/core/domain"
)

func TestDialect_Rebind(t *testing.T) {
	q := "SELECT 1 FROM proteins WHERE a = ? AND b = ? LIMIT ?"
	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, "SELECT 1 FROM proteins WHERE a = $1 AND b = $2 LIMIT $3", Postgres.Rebind(q))
	assert.Equal(t, "sqlite", SQLite.String())
	assert.Equal(t, "postgres", Postgres.String())
}

func TestFilterClause(t *testing.T) {
	where, args := filterClause(domain.ProteinFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = filterClause(domain.ProteinFilter{Random: true, TaxonID: "9606"})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = filterClause(domain.ProteinFilter{TaxonID: "9606", SuperKingdom: "Bacteria"})
	assert.Equal(t, " WHERE p.taxon_id = ?", where)
	assert.Equal(t, []any{"9606"}, args)

	where, args = filterClause(domain.ProteinFilter{
		Topology:  domain.TopologyBetaStrand,
		MinLength: 40,
		MaxLength: 100,
		Clade:     "Metazoa",
	})
	assert.Equal(t, " WHERE p.seq_length >= ? AND p.seq_length <= ? AND p.has_beta_strand = ? AND p.has_signal = ? AND o.clade = ?", where)
	assert.Equal(t, []any{40, 100, true, false, "Metazoa"}, args)
}
