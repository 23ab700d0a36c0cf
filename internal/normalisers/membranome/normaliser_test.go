package membranome

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostlab/tmvis/internal/core/domain"
)

func payloadOf(content string) *domain.RawPayload {
	return &domain.RawPayload{Source: domain.SourceMembranome, MIMEType: "application/json", Content: []byte(content)}
}

func TestNormaliser_Metadata(t *testing.T) {
	n := New()
	assert.Equal(t, domain.SourceMembranome, n.Source())
	assert.Equal(t, domain.OneBasedInclusive, n.Convention())
}

func TestNormalise_Span(t *testing.T) {
	raw := payloadOf(`{"seq_length":101,"membranomedb":{"tm_seq_start":5,"tm_seq_end":15}}`)

	result, err := New().Normalise(context.Background(), raw, 101)
	require.NoError(t, err)

	assert.Equal(t, []domain.ResidueRange{{Start: 5, End: 15, Label: domain.LabelAlphaHelical}}, result.Ranges)
	assert.Empty(t, result.Warnings)
}

func TestNormalise_StringPositions(t *testing.T) {
	raw := payloadOf(`{"seq_length":"101","membranomedb":{"tm_seq_start":"5","tm_seq_end":"15"}}`)

	result, err := New().Normalise(context.Background(), raw, 0)
	require.NoError(t, err)

	assert.Equal(t, []domain.ResidueRange{{Start: 5, End: 15, Label: domain.LabelAlphaHelical}}, result.Ranges)
}

func TestNormalise_RecordLengthBoundsSpan(t *testing.T) {
	raw := payloadOf(`{"seq_length":12,"membranomedb":{"tm_seq_start":5,"tm_seq_end":15}}`)

	result, err := New().Normalise(context.Background(), raw, 0)
	require.NoError(t, err)

	assert.Equal(t, 12, result.Ranges[0].End)
	assert.Equal(t, domain.WarningClamped, result.Warnings[0].Kind)
}

func TestNormalise_LengthMismatch(t *testing.T) {
	raw := payloadOf(`{"seq_length":101,"membranomedb":{"tm_seq_start":5,"tm_seq_end":15}}`)

	result, err := New().Normalise(context.Background(), raw, 100)
	require.NoError(t, err)

	require.Len(t, result.Ranges, 1)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, domain.WarningLengthMismatch, result.Warnings[0].Kind)
}

func TestNormalise_IncompleteRecord(t *testing.T) {
	raw := payloadOf(`{"seq_length":101,"membranomedb":{"tm_seq_start":5}}`)

	result, err := New().Normalise(context.Background(), raw, 101)
	require.NoError(t, err)

	assert.Empty(t, result.Ranges)
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, domain.WarningDropped, result.Warnings[0].Kind)
	assert.Equal(t, domain.WarningEmptySource, result.Warnings[1].Kind)
}

func TestNormalise_NoCoverage(t *testing.T) {
	_, err := New().Normalise(context.Background(), payloadOf(`{"seq_length":101}`), 101)
	assert.ErrorIs(t, err, domain.ErrNoCoverage)
}

func TestNormalise_InvalidInput(t *testing.T) {
	_, err := New().Normalise(context.Background(), payloadOf(`{"membranomedb":{"tm_seq_start":"five"}}`), 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New().Normalise(context.Background(), nil, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
