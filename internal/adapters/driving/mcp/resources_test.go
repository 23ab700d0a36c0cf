package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/report"
)

func TestExtractAccession(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid protein URI",
			uri:      "tmvis://proteins/P02945",
			expected: "P02945",
		},
		{
			name:     "entry name",
			uri:      "tmvis://proteins/BACR_HALSA",
			expected: "BACR_HALSA",
		},
		{
			name:     "invalid prefix",
			uri:      "file://proteins/P02945",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "tmvis://proteins/P02945/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractAccession(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleLegendResource(t *testing.T) {
	server, err := NewServer(&Ports{Annotation: &mockAnnotationService{}})
	require.NoError(t, err)

	result, err := server.handleLegendResource(context.Background(), makeReadResourceRequest("tmvis://legend"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var doc legendDocument
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &doc))
	assert.Len(t, doc.Topology, 9)
	assert.Len(t, doc.Confidence, 4)
	assert.Equal(t, "H", doc.Topology[0].Code)
	assert.Equal(t, "lightgreen", doc.Topology[0].Colour)
	assert.Equal(t, report.TMbedCaveat, doc.Caveat)
}

func TestServer_handleSourcesResource(t *testing.T) {
	server, err := NewServer(&Ports{Annotation: &mockAnnotationService{}})
	require.NoError(t, err)

	result, err := server.handleSourcesResource(context.Background(), makeReadResourceRequest("tmvis://sources"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	text := result.Contents[0].Text
	assert.Contains(t, text, "TMbed Prediction")
	assert.Contains(t, text, "TmAlphaFold Annotation")
	assert.Less(t, strings.Index(text, `"tmbed"`), strings.Index(text, `"uniprot"`))
}

func TestServer_handleProteinResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the offline report", func(t *testing.T) {
		mockAnn := &mockAnnotationService{report: testReport()}
		server, err := NewServer(&Ports{Annotation: mockAnn})
		require.NoError(t, err)

		result, err := server.handleProteinResource(ctx, makeReadResourceRequest("tmvis://proteins/P02945"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"accession": "P02945"`)
		assert.Equal(t, "P02945", mockAnn.gotID)
		assert.False(t, mockAnn.gotOpts.Remote)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Annotation: &mockAnnotationService{}})
		require.NoError(t, err)

		_, err = server.handleProteinResource(ctx, makeReadResourceRequest("tmvis://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("unknown protein returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Annotation: &mockAnnotationService{err: domain.ErrNotFound}})
		require.NoError(t, err)

		_, err = server.handleProteinResource(ctx, makeReadResourceRequest("tmvis://proteins/Q00000"))

		require.Error(t, err)
	})

	t.Run("returns error on lookup failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Annotation: &mockAnnotationService{err: errors.New("store down")}})
		require.NoError(t, err)

		_, err = server.handleProteinResource(ctx, makeReadResourceRequest("tmvis://proteins/P02945"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "collecting annotations")
	})
}
