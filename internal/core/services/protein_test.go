package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostlab/tmvis/internal/adapters/driven/storage/memory"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/normalisers/records"
)

const dump = `{"_id":"P13224","uniprot_id":"GP1BB_HUMAN","sequence":"MGSGPRGALSLLLLLLAPPSRPAAG","seq_length":25,"organism":{"taxon_id":9606,"name":"Homo sapiens","super_kingdom":"Eukaryota","clade":"Metazoa"},"predictions":{"transmembrane":"SSSSiiiiiHHHHHHHHHHHooooo"},"topdb":{"TopDB_Entry":"IIIIIIIIIMMMMMMMMMMMOOOOO"},"membranomedb":{"tm_seq_start":"10","tm_seq_end":"20"},"annotations":[{"start":10,"end":20,"label":"AH","source_db":"membranome","source_db_url":"https://membranome.org/proteins/1"}]}

{"_id":"Q9NZ94","uniprot_id":"NLGN3_HUMAN","sequence":"MWLQLGLPSLPLLLAL","organism":{"taxon_id":"9606"}}
not json
{"uniprot_id":"NOID_HUMAN","sequence":"MK"}
`

func TestProteinService_Import(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProteinStore()
	svc := NewProteinService(store)

	summary, err := svc.Import(ctx, strings.NewReader(dump))
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 2, summary.Skipped)
	require.Len(t, summary.Errors, 2)
	assert.Contains(t, summary.Errors[0], "line 4")
	assert.Contains(t, summary.Errors[1], "without _id")

	p, err := svc.Get(ctx, "P13224")
	require.NoError(t, err)
	assert.Equal(t, "9606", p.Organism.TaxonID)
	assert.Equal(t, "Eukaryota", p.Organism.SuperKingdom)
	assert.True(t, p.TMInfo.HasAlphaHelix)
	assert.True(t, p.TMInfo.HasSignal)
	assert.Equal(t, 11, p.TMInfo.HelixCount)
	assert.InDelta(t, 44.0, p.TMInfo.HelixPercent, 1e-9)

	payloads, err := store.ListPayloads(ctx, "P13224")
	require.NoError(t, err)
	require.Len(t, payloads, 3)
	assert.Equal(t, domain.SourcePredicted, payloads[0].Source)
	assert.Equal(t, domain.SourceTopDB, payloads[1].Source)
	assert.Equal(t, domain.SourceMembranome, payloads[2].Source)
	assert.JSONEq(t, `{"seq_length":25,"membranomedb":{"tm_seq_start":"10","tm_seq_end":"20"}}`, string(payloads[2].Content))

	recs, err := store.ListRecords(ctx, "P13224")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "membranome", recs[0].Source)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProteinService_ImportedProteinCollects(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProteinStore()
	_, err := NewProteinService(store).Import(ctx, strings.NewReader(dump))
	require.NoError(t, err)

	report, err := NewAnnotationService(store, newRegistry(), records.New()).
		Collect(ctx, "GP1BB_HUMAN", domain.LookupOptions{})
	require.NoError(t, err)

	assert.Equal(t, []domain.AnnotationSource{
		domain.SourcePredicted, domain.SourceTopDB, domain.SourceMembranome,
	}, report.Annotation.AvailableSources())

	topdbRanges, err := report.Annotation.Ranges(domain.SourceTopDB)
	require.NoError(t, err)
	assert.Equal(t, domain.ResidueRange{Start: 10, End: 20, Label: domain.LabelHelixInOut}, topdbRanges[1])
}

func TestProteinService_ImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(dump), 0o600))

	summary, err := NewProteinService(memory.NewProteinStore()).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)

	_, err = NewProteinService(memory.NewProteinStore()).ImportFile(context.Background(), filepath.Join(t.TempDir(), "none"))
	assert.Error(t, err)
}

func TestProteinService_ImportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProteinService(memory.NewProteinStore()).Import(ctx, strings.NewReader(dump))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProteinService_List(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProteinStore()
	svc := NewProteinService(store)
	_, err := svc.Import(ctx, strings.NewReader(dump))
	require.NoError(t, err)

	filter := domain.DefaultProteinFilter()
	filter.Topology = domain.TopologyAlphaHelix
	got, err := svc.List(ctx, filter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "P13224", got[0].Accession)

	filter.MinLength, filter.MaxLength = 100, 10
	_, err = svc.List(ctx, filter)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProteinService_NoStore(t *testing.T) {
	svc := NewProteinService(nil)
	ctx := context.Background()

	_, err := svc.List(ctx, domain.ProteinFilter{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = svc.Get(ctx, "P1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = svc.Count(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, err = svc.Import(ctx, strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestProteinService_GetEmptyID(t *testing.T) {
	_, err := NewProteinService(memory.NewProteinStore()).Get(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
