package services

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
	"github.com/rostlab/tmvis/internal/core/ports/driving"
	"github.com/rostlab/tmvis/internal/logger"
	"github.com/rostlab/tmvis/internal/normalisers"
)

// Ensure ProteinService implements the interface.
var _ driving.ProteinService = (*ProteinService)(nil)

// maxLineBytes bounds one JSON Lines document (titin is ~35k residues).
const maxLineBytes = 4 * 1024 * 1024

// ProteinService browses and loads the protein store.
type ProteinService struct {
	store driven.ProteinStore
	now   func() time.Time
}

// NewProteinService creates a new protein service.
func NewProteinService(store driven.ProteinStore) *ProteinService {
	return &ProteinService{store: store, now: time.Now}
}

// List returns proteins matching the filter.
func (s *ProteinService) List(ctx context.Context, filter domain.ProteinFilter) ([]domain.Protein, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Listing proteins: %+v", filter)
	return s.store.ListProteins(ctx, filter)
}

// Get retrieves a protein by accession or entry name.
func (s *ProteinService) Get(ctx context.Context, id string) (*domain.Protein, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.GetProtein(ctx, id)
}

// Count returns the number of stored proteins.
func (s *ProteinService) Count(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, domain.ErrStoreUnavailable
	}
	return s.store.CountProteins(ctx)
}

// ImportFile imports one JSON Lines file.
func (s *ProteinService) ImportFile(ctx context.Context, path string) (*driving.ImportSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	logger.Info("Importing %s", path)
	return s.Import(ctx, f)
}

// Import reads one protein document per line. Bad lines are skipped and
// reported; only store failures and cancellation abort the run.
func (s *ProteinService) Import(ctx context.Context, r io.Reader) (*driving.ImportSummary, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}

	summary := &driving.ImportSummary{RunID: uuid.New().String()}
	logger.Section("Import " + summary.RunID)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		doc, err := parseDocument([]byte(text))
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: %v", line, err))
			logger.Warn("Import line %d skipped: %v", line, err)
			continue
		}

		if err := s.storeDocument(ctx, doc); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: %v", line, err))
				continue
			}
			return summary, fmt.Errorf("line %d: %w", line, err)
		}
		summary.Imported++
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("read import: %w", err)
	}

	logger.Info("Import %s: %d imported, %d skipped", summary.RunID, summary.Imported, summary.Skipped)
	return summary, nil
}

// document is one line of a protein dump.
type document struct {
	ID        string              `json:"_id"`
	UniProtID string              `json:"uniprot_id"`
	Sequence  string              `json:"sequence"`
	SeqLength normalisers.FlexInt `json:"seq_length"`
	Organism  struct {
		TaxonID      json.RawMessage `json:"taxon_id"`
		Name         string          `json:"name"`
		SuperKingdom string          `json:"super_kingdom"`
		Clade        string          `json:"clade"`
	} `json:"organism"`
	Predictions  json.RawMessage `json:"predictions"`
	TopDB        json.RawMessage `json:"topdb"`
	MembranomeDB json.RawMessage `json:"membranomedb"`
	Annotations  []struct {
		Start     normalisers.FlexInt `json:"start"`
		End       normalisers.FlexInt `json:"end"`
		Label     string              `json:"label"`
		SourceDB  string              `json:"source_db"`
		SourceRef string              `json:"source_db_ref"`
		SourceURL string              `json:"source_db_url"`
	} `json:"annotations"`
}

func parseDocument(data []byte) (*document, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	doc.ID = strings.TrimSpace(doc.ID)
	if doc.ID == "" {
		return nil, fmt.Errorf("%w: document without _id", domain.ErrInvalidInput)
	}
	if doc.Sequence == "" {
		return nil, fmt.Errorf("%w: %s has no sequence", domain.ErrInvalidInput, doc.ID)
	}
	return &doc, nil
}

func (s *ProteinService) storeDocument(ctx context.Context, doc *document) error {
	now := s.now()

	var predictions struct {
		Transmembrane string `json:"transmembrane"`
	}
	if len(doc.Predictions) > 0 {
		if err := json.Unmarshal(doc.Predictions, &predictions); err != nil {
			return fmt.Errorf("%w: %s predictions: %v", domain.ErrInvalidInput, doc.ID, err)
		}
	}

	protein := &domain.Protein{
		Accession: doc.ID,
		UniProtID: doc.UniProtID,
		Sequence:  doc.Sequence,
		Organism: domain.Organism{
			TaxonID:      rawString(doc.Organism.TaxonID),
			Name:         doc.Organism.Name,
			SuperKingdom: doc.Organism.SuperKingdom,
			Clade:        doc.Organism.Clade,
		},
		TMInfo:    DeriveTMInfo(predictions.Transmembrane, now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.SeqLength.Set && doc.SeqLength.Value != protein.Length() {
		logger.Warn("%s: seq_length %d, sequence has %d residues", doc.ID, doc.SeqLength.Value, protein.Length())
	}

	if err := s.store.SaveProtein(ctx, protein); err != nil {
		return fmt.Errorf("save %s: %w", doc.ID, err)
	}

	payloads := []domain.RawPayload{}
	if len(doc.Predictions) > 0 && predictions.Transmembrane != "" {
		payloads = append(payloads, jsonPayload(domain.SourcePredicted, doc.ID, doc.Predictions))
	}
	if isPresent(doc.TopDB) {
		payloads = append(payloads, jsonPayload(domain.SourceTopDB, doc.ID, doc.TopDB))
	}
	if isPresent(doc.MembranomeDB) {
		content, err := json.Marshal(map[string]any{
			"seq_length":   protein.Length(),
			"membranomedb": doc.MembranomeDB,
		})
		if err != nil {
			return fmt.Errorf("%w: %s membranome: %v", domain.ErrInvalidInput, doc.ID, err)
		}
		payloads = append(payloads, jsonPayload(domain.SourceMembranome, doc.ID, content))
	}
	for _, p := range payloads {
		if err := s.store.SavePayload(ctx, p); err != nil {
			return fmt.Errorf("save %s payload for %s: %w", p.Source, doc.ID, err)
		}
	}

	records := make([]domain.RangeRecord, 0, len(doc.Annotations))
	for _, a := range doc.Annotations {
		if !a.Start.Set || !a.End.Set {
			logger.Warn("%s: annotation without bounds skipped", doc.ID)
			continue
		}
		records = append(records, domain.RangeRecord{
			Start:     a.Start.Value,
			End:       a.End.Value,
			Label:     a.Label,
			Source:    a.SourceDB,
			SourceRef: a.SourceRef,
			SourceURL: a.SourceURL,
		})
	}
	if err := s.store.ReplaceRecords(ctx, doc.ID, records); err != nil {
		return fmt.Errorf("save records for %s: %w", doc.ID, err)
	}

	logger.Debug("Imported %s: %d residues, %d payloads, %d records",
		doc.ID, protein.Length(), len(payloads), len(records))
	return nil
}

func jsonPayload(source domain.AnnotationSource, accession string, content []byte) domain.RawPayload {
	return domain.RawPayload{
		Source:    source,
		Accession: accession,
		MIMEType:  "application/json",
		Content:   content,
	}
}

func isPresent(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s != "" && s != "null" && s != "{}"
}

// rawString renders a JSON string or number without quotes.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
