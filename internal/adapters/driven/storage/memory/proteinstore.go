package memory

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
)

// Ensure ProteinStore implements the interface.
var _ driven.ProteinStore = (*ProteinStore)(nil)

// ProteinStore is an in-memory implementation of driven.ProteinStore.
type ProteinStore struct {
	mu       sync.RWMutex
	proteins map[string]domain.Protein
	records  map[string][]domain.RangeRecord
	payloads map[string]map[domain.AnnotationSource]domain.RawPayload
}

// NewProteinStore creates a new in-memory protein store.
func NewProteinStore() *ProteinStore {
	return &ProteinStore{
		proteins: make(map[string]domain.Protein),
		records:  make(map[string][]domain.RangeRecord),
		payloads: make(map[string]map[domain.AnnotationSource]domain.RawPayload),
	}
}

// SaveProtein stores or updates a protein. CreatedAt of an existing record is kept.
func (s *ProteinStore) SaveProtein(_ context.Context, protein *domain.Protein) error {
	if protein == nil || protein.Accession == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *protein
	if existing, ok := s.proteins[p.Accession]; ok && !existing.CreatedAt.IsZero() {
		p.CreatedAt = existing.CreatedAt
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	s.proteins[p.Accession] = p
	return nil
}

// GetProtein retrieves a protein by accession or entry name, case-insensitively.
func (s *ProteinStore) GetProtein(_ context.Context, id string) (*domain.Protein, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.proteins[id]; ok {
		return &p, nil
	}
	for _, p := range s.proteins {
		if strings.EqualFold(p.Accession, id) || strings.EqualFold(p.UniProtID, id) {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListProteins returns proteins matching the filter, ordered by accession
// unless random selection is requested.
func (s *ProteinStore) ListProteins(_ context.Context, filter domain.ProteinFilter) ([]domain.Protein, error) {
	s.mu.RLock()
	out := make([]domain.Protein, 0, len(s.proteins))
	for _, p := range s.proteins {
		if filter.Matches(&p) {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	if filter.Random {
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].Accession < out[j].Accession })
	}

	if limit := filter.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountProteins returns the number of stored proteins.
func (s *ProteinStore) CountProteins(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.proteins), nil
}

// DeleteProtein removes a protein with its records and payloads.
func (s *ProteinStore) DeleteProtein(_ context.Context, accession string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.proteins[accession]; !ok {
		return domain.ErrNotFound
	}
	delete(s.proteins, accession)
	delete(s.records, accession)
	delete(s.payloads, accession)
	return nil
}

// ReplaceRecords replaces every annotation row of a protein.
// Rows without an ID get a generated one.
func (s *ProteinStore) ReplaceRecords(_ context.Context, accession string, records []domain.RangeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.proteins[accession]; !ok {
		return domain.ErrNotFound
	}
	stored := make([]domain.RangeRecord, len(records))
	for i, r := range records {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		stored[i] = r
	}
	s.records[accession] = stored
	return nil
}

// ListRecords returns a protein's annotation rows in insertion order.
func (s *ProteinStore) ListRecords(_ context.Context, accession string) ([]domain.RangeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.records[accession]
	out := make([]domain.RangeRecord, len(records))
	copy(out, records)
	return out, nil
}

// SavePayload stores a raw payload, one per accession and source.
func (s *ProteinStore) SavePayload(_ context.Context, payload domain.RawPayload) error {
	if !payload.Source.IsRegistered() {
		return &domain.UnknownSourceError{Source: payload.Source}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.proteins[payload.Accession]; !ok {
		return domain.ErrNotFound
	}
	bySource, ok := s.payloads[payload.Accession]
	if !ok {
		bySource = make(map[domain.AnnotationSource]domain.RawPayload)
		s.payloads[payload.Accession] = bySource
	}
	payload.Content = append([]byte(nil), payload.Content...)
	bySource[payload.Source] = payload
	return nil
}

// ListPayloads returns a protein's raw payloads in registry order.
func (s *ProteinStore) ListPayloads(_ context.Context, accession string) ([]domain.RawPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.RawPayload
	for _, source := range domain.Sources() {
		if p, ok := s.payloads[accession][source]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Close is a no-op.
func (s *ProteinStore) Close() error {
	return nil
}
