package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rostlab/tmvis/internal/colourmap"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/report"
)

const (
	// uriScheme is the custom URI scheme for tmvis resources.
	uriScheme = "tmvis://"

	jsonMIME = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "legend",
		Name:        "legend",
		Description: "Topology codes with orientation and colour, and the pLDDT confidence bands",
		MIMEType:    jsonMIME,
	}, s.handleLegendResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Annotation sources in display order",
		MIMEType:    jsonMIME,
	}, s.handleSourcesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "proteins/{accession}",
		Name:        "protein-report",
		Description: "Membrane annotation report of one protein from the local store",
		MIMEType:    jsonMIME,
	}, s.handleProteinResource)
}

type legendEntry struct {
	Code        string `json:"code"`
	Topology    string `json:"topology"`
	Orientation string `json:"orientation"`
	Colour      string `json:"colour"`
}

type confidenceEntry struct {
	Label  string  `json:"label"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Colour string  `json:"colour"`
}

type legendDocument struct {
	Topology   []legendEntry     `json:"topology"`
	Confidence []confidenceEntry `json:"confidence"`
	Caveat     string            `json:"caveat"`
}

func legend() legendDocument {
	doc := legendDocument{Caveat: report.TMbedCaveat}
	for _, e := range append(colourmap.TopologyLegend(), colourmap.SpanLegend()...) {
		doc.Topology = append(doc.Topology, legendEntry{
			Code:        string(e.Code),
			Topology:    e.Topology,
			Orientation: e.Orientation,
			Colour:      e.Colour.Name,
		})
	}
	for _, b := range colourmap.ConfidenceBands() {
		doc.Confidence = append(doc.Confidence, confidenceEntry{
			Label:  b.Label,
			Min:    b.Min,
			Max:    b.Max,
			Colour: b.Colour.Name,
		})
	}
	return doc
}

// handleLegendResource returns the colour legend.
func (s *Server) handleLegendResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, legend())
}

// handleSourcesResource returns the annotation source registry.
func (s *Server) handleSourcesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type sourceInfo struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	infos := domain.SourceInfos()
	out := make([]sourceInfo, len(infos))
	for i, info := range infos {
		out[i] = sourceInfo{
			ID:          string(info.ID),
			Name:        info.DisplayName,
			Description: info.Description,
		}
	}
	return jsonResult(req.Params.URI, out)
}

// handleProteinResource returns the offline report for one protein.
func (s *Server) handleProteinResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractAccession(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rep, err := s.ports.Annotation.Collect(ctx, id, domain.LookupOptions{})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("collecting annotations: %w", err)
	}
	return jsonResult(req.Params.URI, report.NewDocument(rep, nil))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIME,
			Text:     string(data),
		}},
	}, nil
}

// extractAccession extracts the identifier from a URI like tmvis://proteins/{accession}.
func extractAccession(uri string) string {
	const prefix = uriScheme + "proteins/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
