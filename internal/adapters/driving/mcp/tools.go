package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rostlab/tmvis/internal/colourmap"
	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/report"
)

// AnnotationsInput is the input schema for the get_annotations tool.
type AnnotationsInput struct {
	ID      string `json:"id" jsonschema:"UniProt accession (P02945) or entry name (BACR_HALSA)"`
	Offline bool   `json:"offline,omitempty" jsonschema:"consult the local store only"`
	Scheme  string `json:"scheme,omitempty" jsonschema:"structure colour scheme: topology (default) or plddt"`
}

// AnnotationsOutput is the output schema for the get_annotations tool.
type AnnotationsOutput struct {
	Found  bool             `json:"found"`
	Report *report.Document `json:"report,omitempty"`
}

// ListInput is the input schema for the list_proteins tool.
type ListInput struct {
	TaxonID   string `json:"taxon_id,omitempty" jsonschema:"NCBI taxon id, e.g. 9606"`
	Domain    string `json:"domain,omitempty" jsonschema:"super kingdom, used when taxon_id is empty"`
	Clade     string `json:"clade,omitempty" jsonschema:"clade within the super kingdom"`
	Topology  string `json:"topology,omitempty" jsonschema:"all, both, alpha-helix or beta-strand"`
	Signal    bool   `json:"signal,omitempty" jsonschema:"require a signal peptide (beta-strand only)"`
	MinLength int    `json:"min_length,omitempty" jsonschema:"minimum sequence length"`
	MaxLength int    `json:"max_length,omitempty" jsonschema:"maximum sequence length"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of proteins (default 100)"`
	Random    bool   `json:"random,omitempty" jsonschema:"random selection, ignoring other filters"`
}

// ListOutput is the output schema for the list_proteins tool.
type ListOutput struct {
	Proteins []ProteinOutput `json:"proteins"`
	Count    int             `json:"count"`
}

// ProteinOutput represents one stored protein.
type ProteinOutput struct {
	Accession     string  `json:"accession"`
	UniProtID     string  `json:"uniprot_id"`
	Length        int     `json:"length"`
	Organism      string  `json:"organism,omitempty"`
	TaxonID       string  `json:"taxon_id,omitempty"`
	HelixPercent  float64 `json:"helix_percent"`
	StrandPercent float64 `json:"strand_percent"`
	SignalPeptide bool    `json:"signal_peptide"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_annotations",
		Description: "Collect transmembrane annotations for a protein from all sources",
	}, s.handleGetAnnotations)
	s.tools = append(s.tools, "get_annotations")

	if s.ports.Protein != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_proteins",
			Description: "List proteins in the local store by organism, topology and length",
		}, s.handleListProteins)
		s.tools = append(s.tools, "list_proteins")
	}
}

// handleGetAnnotations handles the get_annotations tool invocation.
// An unknown protein is a normal answer, not a tool error.
func (s *Server) handleGetAnnotations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnnotationsInput,
) (*mcp.CallToolResult, AnnotationsOutput, error) {
	scheme, err := colourmap.ParseScheme(input.Scheme)
	if err != nil {
		return nil, AnnotationsOutput{}, err
	}

	opts := domain.LookupOptions{Remote: !input.Offline}
	rep, err := s.ports.Annotation.Collect(ctx, input.ID, opts)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, AnnotationsOutput{Found: false}, nil
	}
	if err != nil {
		return nil, AnnotationsOutput{}, fmt.Errorf("collecting annotations: %w", err)
	}

	style := colourmap.NewViewerStyle(rep.Annotation, scheme, colourmap.RenderCartoon, false)
	doc := report.NewDocument(rep, &style)
	return nil, AnnotationsOutput{Found: true, Report: &doc}, nil
}

// handleListProteins handles the list_proteins tool invocation.
func (s *Server) handleListProteins(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	filter, err := input.filter()
	if err != nil {
		return nil, ListOutput{}, err
	}

	proteins, err := s.ports.Protein.List(ctx, filter)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("listing proteins: %w", err)
	}

	output := ListOutput{
		Proteins: make([]ProteinOutput, len(proteins)),
		Count:    len(proteins),
	}
	for i := range proteins {
		p := &proteins[i]
		output.Proteins[i] = ProteinOutput{
			Accession:     p.Accession,
			UniProtID:     p.UniProtID,
			Length:        p.Length(),
			Organism:      p.Organism.Name,
			TaxonID:       p.Organism.TaxonID,
			HelixPercent:  p.TMInfo.HelixPercent,
			StrandPercent: p.TMInfo.StrandPercent,
			SignalPeptide: p.TMInfo.HasSignal,
		}
	}
	return nil, output, nil
}

// filter builds the store filter. Unset bounds take the defaults.
func (in ListInput) filter() (domain.ProteinFilter, error) {
	topology, err := domain.ParseTopology(in.Topology)
	if err != nil {
		return domain.ProteinFilter{}, err
	}

	f := domain.DefaultProteinFilter()
	f.TaxonID = in.TaxonID
	f.SuperKingdom = in.Domain
	f.Clade = in.Clade
	f.Topology = topology
	f.SignalPeptide = in.Signal
	f.Random = in.Random
	if in.MinLength > 0 {
		f.MinLength = in.MinLength
	}
	if in.MaxLength > 0 {
		f.MaxLength = in.MaxLength
	}
	if in.Limit > 0 {
		f.Limit = in.Limit
	}
	return f, nil
}
