package residuetable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostlab/tmvis/internal/core/domain"
)

func labels(s string) []domain.Label {
	out := make([]domain.Label, 0, len(s))
	for _, r := range s {
		out = append(out, domain.Label(string(r)))
	}
	return out
}

func TestBuild_PredictedHelix(t *testing.T) {
	ann := domain.NewMembraneAnnotation()
	require.NoError(t, ann.Set(domain.SourcePredicted, []domain.ResidueRange{{Start: 10, End: 20, Label: "H"}}))
	sequence := strings.Repeat("A", 30)

	table := NewBuilder().Build(sequence, ann)

	assert.Equal(t, []string{"Sequence", "TMbed Prediction"}, table.Columns)
	require.Len(t, table.Rows, 30)

	col, ok := table.Column(domain.SourcePredicted)
	require.True(t, ok)
	want := strings.Repeat("*", 9) + strings.Repeat("H", 11) + strings.Repeat("*", 10)
	assert.Equal(t, labels(want), col)
	assert.Equal(t, sequence, table.Sequence())
}

func TestBuild_NothingPopulated(t *testing.T) {
	table := NewBuilder().Build("MKTA", domain.NewMembraneAnnotation())

	assert.Equal(t, []string{"Sequence"}, table.Columns)
	assert.Empty(t, table.Sources)
	require.Len(t, table.Rows, 4)
	assert.Empty(t, table.Rows[0].Labels)
}

func TestBuild_NilAnnotation(t *testing.T) {
	table := NewBuilder().Build("MK", nil)

	assert.Equal(t, []string{"Sequence"}, table.Columns)
	assert.Len(t, table.Rows, 2)
}

func TestBuild_EmptySequence(t *testing.T) {
	ann := domain.NewMembraneAnnotation()
	require.NoError(t, ann.Set(domain.SourceUniProt, []domain.ResidueRange{{Start: 1, End: 5, Label: "AH"}}))

	table := NewBuilder().Build("", ann)

	assert.Equal(t, []string{"Sequence", "UniProt Annotation"}, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestBuild_ColumnsInRegistryOrder(t *testing.T) {
	ann := domain.NewMembraneAnnotation()
	require.NoError(t, ann.Set(domain.SourceTmAlphaFold, []domain.ResidueRange{{Start: 2, End: 3, Label: "AH"}}))
	require.NoError(t, ann.Set(domain.SourcePredicted, []domain.ResidueRange{{Start: 1, End: 1, Label: "i"}}))
	require.NoError(t, ann.Set(domain.SourceTopDB, []domain.ResidueRange{}))

	table := NewBuilder().Build("MKT", ann)

	assert.Equal(t, []domain.AnnotationSource{domain.SourcePredicted, domain.SourceTmAlphaFold}, table.Sources)
	assert.Equal(t, []string{"Sequence", "TMbed Prediction", "TmAlphaFold Annotation"}, table.Columns)
	assert.Equal(t, Row{Position: 2, Residue: "K", Labels: []domain.Label{"*", "AH"}}, table.Rows[1])
}

func TestBuild_EveryCellKnownOrFill(t *testing.T) {
	ann := domain.NewMembraneAnnotation()
	require.NoError(t, ann.Set(domain.SourcePredicted, []domain.ResidueRange{
		{Start: 1, End: 3, Label: "i"}, {Start: 4, End: 8, Label: "H"}, {Start: 9, End: 12, Label: "o"},
	}))
	require.NoError(t, ann.Set(domain.SourceMembranome, []domain.ResidueRange{{Start: 5, End: 7, Label: "AH"}}))

	table := NewBuilder().Build(strings.Repeat("L", 12), ann)

	require.Len(t, table.Rows, 12)
	for _, row := range table.Rows {
		require.Len(t, row.Labels, 2)
		for _, l := range row.Labels {
			assert.True(t, l.IsKnown() || l == domain.LabelNone, "cell %q", l)
		}
	}
}

func TestVector_LastWriteWins(t *testing.T) {
	vec := NewBuilder().Vector(6, []domain.ResidueRange{
		{Start: 1, End: 4, Label: "i"},
		{Start: 3, End: 6, Label: "H"},
	})

	assert.Equal(t, labels("iiHHHH"), vec)
}

func TestVector_IgnoresPositionsBeyondLength(t *testing.T) {
	vec := NewBuilder().Vector(3, []domain.ResidueRange{{Start: 2, End: 9, Label: "o"}})

	assert.Equal(t, labels("*oo"), vec)
	assert.Empty(t, NewBuilder().Vector(0, []domain.ResidueRange{{Start: 1, End: 2, Label: "o"}}))
}

func TestTable_Lookups(t *testing.T) {
	ann := domain.NewMembraneAnnotation()
	require.NoError(t, ann.Set(domain.SourceUniProt, []domain.ResidueRange{{Start: 2, End: 2, Label: "AH"}}))
	table := NewBuilder().Build("MKT", ann)

	l, ok := table.Label(1, domain.SourceUniProt)
	require.True(t, ok)
	assert.Equal(t, domain.LabelAlphaHelical, l)

	_, ok = table.Label(1, domain.SourcePredicted)
	assert.False(t, ok)
	_, ok = table.Label(5, domain.SourceUniProt)
	assert.False(t, ok)
	_, ok = table.Column(domain.SourceTopDB)
	assert.False(t, ok)
}
