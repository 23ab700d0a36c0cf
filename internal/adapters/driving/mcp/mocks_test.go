package mcp

import (
	"context"
	"io"

	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driving"
)

// mockAnnotationService is a mock implementation of driving.AnnotationService.
type mockAnnotationService struct {
	report *domain.ProteinReport
	err    error

	gotID   string
	gotOpts domain.LookupOptions
}

func (m *mockAnnotationService) Collect(
	_ context.Context,
	id string,
	opts domain.LookupOptions,
) (*domain.ProteinReport, error) {
	m.gotID = id
	m.gotOpts = opts
	return m.report, m.err
}

// mockProteinService is a mock implementation of driving.ProteinService.
type mockProteinService struct {
	proteins []domain.Protein
	err      error

	gotFilter domain.ProteinFilter
}

func (m *mockProteinService) List(_ context.Context, filter domain.ProteinFilter) ([]domain.Protein, error) {
	m.gotFilter = filter
	return m.proteins, m.err
}

func (m *mockProteinService) Get(_ context.Context, _ string) (*domain.Protein, error) {
	if len(m.proteins) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.proteins[0], m.err
}

func (m *mockProteinService) Count(_ context.Context) (int, error) {
	return len(m.proteins), m.err
}

func (m *mockProteinService) Import(_ context.Context, _ io.Reader) (*driving.ImportSummary, error) {
	return &driving.ImportSummary{}, m.err
}

func (m *mockProteinService) ImportFile(_ context.Context, _ string) (*driving.ImportSummary, error) {
	return &driving.ImportSummary{}, m.err
}

// testReport builds a report with a prediction and an empty UniProt answer.
func testReport() *domain.ProteinReport {
	ann := domain.NewMembraneAnnotation()
	_ = ann.Set(domain.SourcePredicted, []domain.ResidueRange{{Start: 2, End: 4, Label: domain.LabelHelixInOut}})
	_ = ann.Set(domain.SourceUniProt, nil)
	return &domain.ProteinReport{
		Query:      "P02945",
		Identity:   domain.ProteinIdentity{Accession: "P02945", EntryName: "BACR_HALSA", Length: 6},
		Sequence:   "MLELLP",
		Annotation: ann,
	}
}
