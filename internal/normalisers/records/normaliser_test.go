package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostlab/tmvis/internal/core/domain"
)

func TestNormaliseRecords_GroupsBySource(t *testing.T) {
	rows := []domain.RangeRecord{
		{ID: "1", Start: 5, End: 15, Label: "AH", Source: "membranome", SourceURL: "https://membranome.org/proteins/42"},
		{ID: "2", Start: 1, End: 4, Label: "i", Source: "tmvis"},
		{ID: "3", Start: 5, End: 20, Label: "H", Source: "tmvis"},
		{ID: "4", Start: 1, End: 30, Label: "o", Source: "TopDB"},
	}

	agg := New().NormaliseRecords(rows, 30)

	assert.Equal(t, []domain.AnnotationSource{
		domain.SourcePredicted, domain.SourceTopDB, domain.SourceMembranome,
	}, agg.AvailableSources())

	predicted, err := agg.Ranges(domain.SourcePredicted)
	require.NoError(t, err)
	assert.Equal(t, []domain.ResidueRange{
		{Start: 1, End: 4, Label: domain.LabelInside},
		{Start: 5, End: 20, Label: domain.LabelHelixInOut},
	}, predicted)

	url, err := agg.ReferenceURL(domain.SourceMembranome)
	require.NoError(t, err)
	assert.Equal(t, "https://membranome.org/proteins/42", url)

	url, err = agg.ReferenceURL(domain.SourceTopDB)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestNormaliseRecords_UnknownSourceSkipped(t *testing.T) {
	rows := []domain.RangeRecord{
		{ID: "1", Start: 1, End: 5, Label: "AH", Source: "pdbtm"},
		{ID: "2", Start: 1, End: 5, Label: "AH", Source: "uniprot"},
	}

	agg := New().NormaliseRecords(rows, 10)

	assert.Equal(t, []domain.AnnotationSource{domain.SourceUniProt}, agg.AvailableSources())
	require.Len(t, agg.Warnings(), 1)
	assert.Equal(t, domain.WarningDropped, agg.Warnings()[0].Kind)
}

func TestNormaliseRecords_ClampsAndWarns(t *testing.T) {
	rows := []domain.RangeRecord{
		{ID: "1", Start: 8, End: 40, Label: "AH", Source: "topdb"},
	}

	agg := New().NormaliseRecords(rows, 10)

	ranges, err := agg.Ranges(domain.SourceTopDB)
	require.NoError(t, err)
	assert.Equal(t, []domain.ResidueRange{{Start: 8, End: 10, Label: domain.LabelAlphaHelical}}, ranges)
	require.Len(t, agg.Warnings(), 1)
	assert.Equal(t, domain.WarningClamped, agg.Warnings()[0].Kind)
}

func TestNormaliseRecords_AllRowsDropped(t *testing.T) {
	rows := []domain.RangeRecord{
		{ID: "1", Start: 20, End: 10, Label: "AH", Source: "topdb"},
	}

	agg := New().NormaliseRecords(rows, 30)

	assert.True(t, agg.Has(domain.SourceTopDB))
	assert.False(t, agg.HasAnnotations())
}

func TestNormaliseRecords_Empty(t *testing.T) {
	agg := New().NormaliseRecords(nil, 30)

	assert.False(t, agg.HasAnnotations())
	assert.Empty(t, agg.PresentSources())
}
