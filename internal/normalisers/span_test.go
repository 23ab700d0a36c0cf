package normalisers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostlab/tmvis/internal/core/domain"
)

func TestCanonicalise_Conventions(t *testing.T) {
	tests := []struct {
		name       string
		conv       domain.CoordinateConvention
		start, end int
		want       domain.ResidueRange
	}{
		{"one based inclusive", domain.OneBasedInclusive, 5, 15, domain.ResidueRange{Start: 5, End: 15, Label: "AH"}},
		{"zero based inclusive", domain.ZeroBasedInclusive, 4, 14, domain.ResidueRange{Start: 5, End: 15, Label: "AH"}},
		{"zero based half open", domain.ZeroBasedHalfOpen, 4, 15, domain.ResidueRange{Start: 5, End: 15, Label: "AH"}},
		{"one based half open", domain.OneBasedHalfOpen, 5, 16, domain.ResidueRange{Start: 5, End: 15, Label: "AH"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, warnings, ok := Canonicalise(domain.SourceUniProt, tt.conv, tt.start, tt.end, "AH", 100)
			require.True(t, ok)
			assert.Empty(t, warnings)
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestCanonicalise_ClampsEnd(t *testing.T) {
	r, warnings, ok := Canonicalise(domain.SourceUniProt, domain.OneBasedInclusive, 90, 120, "AH", 100)

	require.True(t, ok)
	assert.Equal(t, 100, r.End)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarningClamped, warnings[0].Kind)
	assert.NoError(t, r.ValidateWithin(100))
}

func TestCanonicalise_ClampsStart(t *testing.T) {
	r, warnings, ok := Canonicalise(domain.SourceTopDB, domain.ZeroBasedInclusive, -3, 4, "i", 10)

	require.True(t, ok)
	assert.Equal(t, 1, r.Start)
	assert.Equal(t, 5, r.End)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarningClamped, warnings[0].Kind)
}

func TestCanonicalise_Drops(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"reversed", 15, 5},
		{"past end", 120, 130},
		{"before start", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, warnings, ok := Canonicalise(domain.SourceUniProt, domain.OneBasedInclusive, tt.start, tt.end, "AH", 100)
			assert.False(t, ok)
			require.Len(t, warnings, 1)
			assert.Equal(t, domain.WarningDropped, warnings[0].Kind)
		})
	}
}

func TestCanonicalise_UnknownLength(t *testing.T) {
	r, warnings, ok := Canonicalise(domain.SourceUniProt, domain.OneBasedInclusive, 500, 520, "AH", 0)

	require.True(t, ok)
	assert.Empty(t, warnings)
	assert.Equal(t, 520, r.End)
}

func TestCanonicalise_UnknownLabelKept(t *testing.T) {
	r, warnings, ok := Canonicalise(domain.SourcePredicted, domain.OneBasedInclusive, 1, 3, "?", 10)

	require.True(t, ok)
	assert.Equal(t, domain.Label("?"), r.Label)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarningUnknownLabel, warnings[0].Kind)
}

func TestCollector_Finish(t *testing.T) {
	c := NewCollector(domain.SourceMembranome, domain.OneBasedInclusive, 10)
	c.Add(20, 30, "AH")

	ranges, warnings := c.Finish()

	assert.NotNil(t, ranges)
	assert.Empty(t, ranges)
	require.Len(t, warnings, 2)
	assert.Equal(t, domain.WarningDropped, warnings[0].Kind)
	assert.Equal(t, domain.WarningEmptySource, warnings[1].Kind)
}

func TestRuns(t *testing.T) {
	runs := Runs("iiHHHo")

	assert.Equal(t, []Run{
		{Start: 0, End: 1, Code: "i"},
		{Start: 2, End: 4, Code: "H"},
		{Start: 5, End: 5, Code: "o"},
	}, runs)
	assert.Empty(t, Runs(""))
}

func TestFlexInt(t *testing.T) {
	var doc struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
		D FlexInt `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": 5, "b": "15", "c": null, "d": 7.0}`), &doc)
	require.NoError(t, err)

	assert.Equal(t, FlexInt{Value: 5, Set: true}, doc.A)
	assert.Equal(t, FlexInt{Value: 15, Set: true}, doc.B)
	assert.False(t, doc.C.Set)
	assert.Equal(t, 7, doc.D.Value)

	var bad FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"x1"`), &bad))
}
