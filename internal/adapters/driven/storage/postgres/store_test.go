package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// testDSNEnv names a disposable database for integration tests.
const testDSNEnv = "TMVIS_TEST_POSTGRES_DSN"

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDSNEnv)
	}
	store, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = store.DB().Exec("TRUNCATE payloads, annotations, proteins, organisms")
		assert.NoError(t, store.Close())
	})
	return store
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	p := &domain.Protein{
		Accession: "P13224",
		UniProtID: "GP1BB_HUMAN",
		Sequence:  "MGSGPRGALSLLLLLLAPPSRPAAG",
		Organism:  domain.Organism{TaxonID: "9606", Name: "Homo sapiens", SuperKingdom: "Eukaryota", Clade: "Metazoa"},
		TMInfo:    domain.TMInfo{HelixCount: 21, HasAlphaHelix: true},
	}
	require.NoError(t, store.SaveProtein(ctx, p))
	require.NoError(t, store.ReplaceRecords(ctx, "P13224", []domain.RangeRecord{{Start: 1, End: 3, Label: "S", Source: "tmvis"}}))
	require.NoError(t, store.SavePayload(ctx, domain.RawPayload{Source: domain.SourceTopDB, Accession: "P13224", Content: []byte(`{}`)}))

	got, err := store.GetProtein(ctx, "gp1bb_human")
	require.NoError(t, err)
	assert.Equal(t, p.Organism, got.Organism)

	list, err := store.ListProteins(ctx, domain.ProteinFilter{Topology: domain.TopologyAlphaHelix})
	require.NoError(t, err)
	require.Len(t, list, 1)

	records, err := store.ListRecords(ctx, "P13224")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	payloads, err := store.ListPayloads(ctx, "P13224")
	require.NoError(t, err)
	assert.Len(t, payloads, 1)

	require.NoError(t, store.DeleteProtein(ctx, "P13224"))
	_, err = store.GetProtein(ctx, "P13224")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
