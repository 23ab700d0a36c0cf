package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostlab/tmvis/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func protein(acc, name, seq, taxon, kingdom string, tm domain.TMInfo) *domain.Protein {
	return &domain.Protein{
		Accession: acc,
		UniProtID: name,
		Sequence:  seq,
		Organism:  domain.Organism{TaxonID: taxon, Name: "Organism " + taxon, SuperKingdom: kingdom, Clade: "Clade " + taxon},
		TMInfo:    tm,
	}
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(dir, DatabaseFile)
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.DB().Ping())
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tmvis.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.SaveProtein(context.Background(), protein("P1", "A_HUMAN", "MK", "9606", "Eukaryota", domain.TMInfo{})))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	n, err := second.CountProteins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var version int
	require.NoError(t, second.DB().QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

// ==================== Protein Tests ====================

func TestProteins_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	generated := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := protein("P13224", "GP1BB_HUMAN", "MGSGPRGALSLLLLLLAPPSRPAAG", "9606", "Eukaryota", domain.TMInfo{
		HelixCount: 21, HelixPercent: 10.5, HasAlphaHelix: true, GeneratedAt: generated,
	})
	require.NoError(t, store.SaveProtein(ctx, p))

	got, err := store.GetProtein(ctx, "p13224")
	require.NoError(t, err)
	assert.Equal(t, "GP1BB_HUMAN", got.UniProtID)
	assert.Equal(t, p.Sequence, got.Sequence)
	assert.Equal(t, p.Organism, got.Organism)
	assert.Equal(t, 21, got.TMInfo.HelixCount)
	assert.InDelta(t, 10.5, got.TMInfo.HelixPercent, 1e-9)
	assert.True(t, got.TMInfo.HasAlphaHelix)
	assert.False(t, got.TMInfo.HasBetaStrand)
	assert.True(t, generated.Equal(got.TMInfo.GeneratedAt))
	assert.False(t, got.CreatedAt.IsZero())

	byName, err := store.GetProtein(ctx, "gp1bb_human")
	require.NoError(t, err)
	assert.Equal(t, "P13224", byName.Accession)

	_, err = store.GetProtein(ctx, "Q00000")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.SaveProtein(ctx, &domain.Protein{}), domain.ErrInvalidInput)
}

func TestProteins_SaveUpdatesAndKeepsCreatedAt(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	p := protein("P1", "A_HUMAN", "MK", "9606", "Eukaryota", domain.TMInfo{})
	require.NoError(t, store.SaveProtein(ctx, p))
	first, err := store.GetProtein(ctx, "P1")
	require.NoError(t, err)

	p.Sequence = "MKTA"
	require.NoError(t, store.SaveProtein(ctx, p))
	second, err := store.GetProtein(ctx, "P1")
	require.NoError(t, err)

	assert.Equal(t, "MKTA", second.Sequence)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}

func TestProteins_WithoutOrganism(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProtein(ctx, &domain.Protein{Accession: "P2", Sequence: "MK"}))
	got, err := store.GetProtein(ctx, "P2")
	require.NoError(t, err)
	assert.Empty(t, got.Organism.TaxonID)
}

func TestProteins_ListFilters(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	helix := domain.TMInfo{HasAlphaHelix: true}
	strand := domain.TMInfo{HasBetaStrand: true}
	strandSignal := domain.TMInfo{HasBetaStrand: true, HasSignal: true}
	both := domain.TMInfo{HasAlphaHelix: true, HasBetaStrand: true}

	seqOf := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'A'
		}
		return string(b)
	}

	for _, p := range []*domain.Protein{
		protein("A1", "A1_HUMAN", seqOf(20), "9606", "Eukaryota", helix),
		protein("A2", "A2_HUMAN", seqOf(300), "9606", "Eukaryota", strand),
		protein("A3", "A3_ECOLI", seqOf(50), "83333", "Bacteria", strandSignal),
		protein("A4", "A4_YEAST", seqOf(80), "559292", "Eukaryota", both),
	} {
		require.NoError(t, store.SaveProtein(ctx, p))
	}

	accessions := func(ps []domain.Protein) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Accession
		}
		return out
	}

	tests := []struct {
		name   string
		filter domain.ProteinFilter
		want   []string
	}{
		{"zero value", domain.ProteinFilter{}, []string{"A1", "A2", "A3", "A4"}},
		{"default human", domain.DefaultProteinFilter(), []string{"A1", "A2"}},
		{"kingdom", domain.ProteinFilter{SuperKingdom: "Eukaryota"}, []string{"A1", "A2", "A4"}},
		{"kingdom and clade", domain.ProteinFilter{SuperKingdom: "Eukaryota", Clade: "Clade 559292"}, []string{"A4"}},
		{"alpha helix", domain.ProteinFilter{Topology: domain.TopologyAlphaHelix}, []string{"A1", "A4"}},
		{"both", domain.ProteinFilter{Topology: domain.TopologyBoth}, []string{"A4"}},
		{"beta no signal", domain.ProteinFilter{Topology: domain.TopologyBetaStrand}, []string{"A2", "A4"}},
		{"beta with signal", domain.ProteinFilter{Topology: domain.TopologyBetaStrand, SignalPeptide: true}, []string{"A3"}},
		{"length", domain.ProteinFilter{MinLength: 40, MaxLength: 100}, []string{"A3", "A4"}},
		{"limit", domain.ProteinFilter{Limit: 2}, []string{"A1", "A2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListProteins(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, accessions(got))
		})
	}

	t.Run("random ignores criteria", func(t *testing.T) {
		got, err := store.ListProteins(ctx, domain.ProteinFilter{Random: true, TaxonID: "none", Limit: 3})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestProteins_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProtein(ctx, protein("P1", "A_HUMAN", "MKTAYIAK", "9606", "Eukaryota", domain.TMInfo{})))
	require.NoError(t, store.ReplaceRecords(ctx, "P1", []domain.RangeRecord{{Start: 1, End: 3, Label: "H", Source: "tmvis"}}))
	require.NoError(t, store.SavePayload(ctx, domain.RawPayload{Source: domain.SourceTopDB, Accession: "P1", Content: []byte(`{}`)}))

	require.NoError(t, store.DeleteProtein(ctx, "P1"))
	_, err := store.GetProtein(ctx, "P1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	records, err := store.ListRecords(ctx, "P1")
	require.NoError(t, err)
	assert.Empty(t, records)
	payloads, err := store.ListPayloads(ctx, "P1")
	require.NoError(t, err)
	assert.Empty(t, payloads)

	assert.ErrorIs(t, store.DeleteProtein(ctx, "P1"), domain.ErrNotFound)
}

// ==================== Record Tests ====================

func TestRecords_ReplaceAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveProtein(ctx, protein("P1", "A_HUMAN", "MKTAYIAKQRQISFVKSHFSRQ", "9606", "Eukaryota", domain.TMInfo{})))

	records := []domain.RangeRecord{
		{Start: 10, End: 20, Label: "H", Source: "tmvis"},
		{ID: "fixed", Start: 2, End: 5, Label: "S", Source: "topdb", SourceRef: "TDB1", SourceURL: "https://topdb.unitmp.org/entry/P1"},
	}
	require.NoError(t, store.ReplaceRecords(ctx, "P1", records))

	got, err := store.ListRecords(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, 10, got[0].Start)
	assert.Equal(t, "fixed", got[1].ID)
	assert.Equal(t, "TDB1", got[1].SourceRef)
	assert.Equal(t, "https://topdb.unitmp.org/entry/P1", got[1].SourceURL)

	require.NoError(t, store.ReplaceRecords(ctx, "P1", records[:1]))
	got, err = store.ListRecords(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	assert.ErrorIs(t, store.ReplaceRecords(ctx, "Q9", records), domain.ErrNotFound)
}

// ==================== Payload Tests ====================

func TestPayloads_SaveAndListInRegistryOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveProtein(ctx, protein("P1", "A_HUMAN", "MK", "9606", "Eukaryota", domain.TMInfo{})))

	require.NoError(t, store.SavePayload(ctx, domain.RawPayload{Source: domain.SourceMembranome, Accession: "P1", MIMEType: "application/json", Content: []byte(`{"a":1}`)}))
	require.NoError(t, store.SavePayload(ctx, domain.RawPayload{Source: domain.SourcePredicted, Accession: "P1", MIMEType: "application/json", Content: []byte(`{"transmembrane":"**"}`)}))
	require.NoError(t, store.SavePayload(ctx, domain.RawPayload{Source: domain.SourceMembranome, Accession: "P1", MIMEType: "application/json", Content: []byte(`{"a":2}`)}))

	got, err := store.ListPayloads(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.SourcePredicted, got[0].Source)
	assert.Equal(t, domain.SourceMembranome, got[1].Source)
	assert.Equal(t, `{"a":2}`, string(got[1].Content))
	assert.Equal(t, "P1", got[1].Accession)

	err = store.SavePayload(ctx, domain.RawPayload{Source: "pdbtm", Accession: "P1"})
	assert.ErrorIs(t, err, domain.ErrUnknownSource)

	err = store.SavePayload(ctx, domain.RawPayload{Source: domain.SourceTopDB, Accession: "Q9"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_FileIsPrivate(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "data"))
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(filepath.Join(dir, "data"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}
