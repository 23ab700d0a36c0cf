package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
	"github.com/rostlab/tmvis/internal/core/ports/driving"
	"github.com/rostlab/tmvis/internal/logger"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService collects and merges membrane annotations for one protein.
type AnnotationService struct {
	store      driven.ProteinStore
	registry   driven.NormaliserRegistry
	records    driven.RecordNormaliser
	fetchers   map[domain.AnnotationSource]driven.AnnotationFetcher
	structures driven.StructureFetcher
}

// NewAnnotationService creates a new annotation service.
// The store may be nil, in which case only remote sources are consulted.
func NewAnnotationService(
	store driven.ProteinStore,
	registry driven.NormaliserRegistry,
	records driven.RecordNormaliser,
) *AnnotationService {
	return &AnnotationService{
		store:    store,
		registry: registry,
		records:  records,
		fetchers: make(map[domain.AnnotationSource]driven.AnnotationFetcher),
	}
}

// SetFetcher registers a remote fetcher for its source.
func (s *AnnotationService) SetFetcher(fetcher driven.AnnotationFetcher) {
	s.fetchers[fetcher.Source()] = fetcher
}

// SetStructureFetcher sets the AlphaFold DB collaborator.
func (s *AnnotationService) SetStructureFetcher(fetcher driven.StructureFetcher) {
	s.structures = fetcher
}

// localResult is what the store knows about the protein.
type localResult struct {
	protein  *domain.Protein
	records  []domain.RangeRecord
	payloads []domain.RawPayload
	err      error
}

// remoteResult is what the remote collaborators returned, still raw.
type remoteResult struct {
	identity  domain.ProteinIdentity
	payloads  []*domain.RawPayload
	structure *domain.Structure
	failures  map[domain.AnnotationSource]error
}

// Collect looks the identifier up in the store and, when enabled, the remote
// sources. Fetches run concurrently; normalisation and merging happen once every
// fetch has finished so the result does not depend on completion order.
// Store annotations take precedence over remote ones for the same source.
func (s *AnnotationService) Collect(
	ctx context.Context, id string, opts domain.LookupOptions,
) (*domain.ProteinReport, error) {
	logger.Section("Collect Annotations")

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty identifier", domain.ErrInvalidInput)
	}
	logger.Debug("Identifier: %q (%s), remote=%t", id, domain.ClassifyIdentifier(id), opts.Remote)

	var (
		wg     sync.WaitGroup
		local  localResult
		remote = remoteResult{failures: make(map[domain.AnnotationSource]error)}
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		local = s.fetchLocal(ctx, id)
	}()

	if opts.Remote {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.fetchRemote(ctx, id, opts, &remote)
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &domain.ProteinReport{
		Query:     id,
		Identity:  remote.identity,
		Protein:   local.protein,
		Structure: remote.structure,
		Failures:  make(map[domain.AnnotationSource]string),
	}

	// Sequence: store first, then the AlphaFold model's UniProt sequence.
	switch {
	case local.protein != nil && local.protein.Sequence != "":
		report.Sequence = local.protein.Sequence
	case remote.structure != nil:
		report.Sequence = remote.structure.Sequence
	}
	seqLen := len([]rune(report.Sequence))
	if seqLen == 0 {
		seqLen = remote.identity.Length
	}
	logger.Debug("Sequence length: %d", seqLen)

	remoteAgg := s.normaliseRemote(ctx, &remote, seqLen)
	localAgg := s.normaliseLocal(ctx, &local, seqLen)

	result := remoteAgg
	result.MergeFrom(localAgg)
	report.Annotation = result

	for source, err := range remote.failures {
		report.Failures[source] = err.Error()
	}
	for _, w := range result.Warnings() {
		logger.Warn("%s", w)
	}

	foundRemotely := len(remoteAgg.PresentSources()) > 0 || remote.structure != nil || remote.identity.Accession != ""
	if local.protein == nil && !foundRemotely {
		if local.err != nil && !errors.Is(local.err, domain.ErrNotFound) {
			return nil, fmt.Errorf("lookup %s: %w", id, local.err)
		}
		return nil, fmt.Errorf("lookup %s: %w", id, domain.ErrNotFound)
	}

	logger.Info("Found %d available sources for %s", len(result.AvailableSources()), report.Accession())
	return report, nil
}

func (s *AnnotationService) fetchLocal(ctx context.Context, id string) localResult {
	if s.store == nil {
		return localResult{err: domain.ErrStoreUnavailable}
	}

	protein, err := s.store.GetProtein(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Store lookup for %s failed: %v", id, err)
		}
		return localResult{err: err}
	}

	res := localResult{protein: protein}
	if res.records, err = s.store.ListRecords(ctx, protein.Accession); err != nil {
		logger.Warn("Listing records for %s failed: %v", protein.Accession, err)
	}
	if res.payloads, err = s.store.ListPayloads(ctx, protein.Accession); err != nil {
		logger.Warn("Listing payloads for %s failed: %v", protein.Accession, err)
	}
	logger.Debug("Store: %d records, %d payloads", len(res.records), len(res.payloads))
	return res
}

// fetchRemote queries UniProt first because TmAlphaFold is keyed by entry
// name and AlphaFold DB by accession; those two then run concurrently.
func (s *AnnotationService) fetchRemote(ctx context.Context, id string, opts domain.LookupOptions, out *remoteResult) {
	var mu sync.Mutex
	fail := func(source domain.AnnotationSource, err error) {
		if errors.Is(err, domain.ErrNoCoverage) {
			logger.Debug("%s has no entry for %s", source, id)
			return
		}
		logger.Warn("%s fetch for %s failed: %v", source, id, err)
		mu.Lock()
		out.failures[source] = err
		mu.Unlock()
	}
	keep := func(p *domain.RawPayload) {
		mu.Lock()
		out.payloads = append(out.payloads, p)
		mu.Unlock()
	}

	entryName, accession := id, id
	if f, ok := s.fetchers[domain.SourceUniProt]; ok {
		payload, err := f.Fetch(ctx, id)
		if err != nil {
			fail(domain.SourceUniProt, err)
		} else {
			keep(payload)
			if res, err := s.registry.Normalise(ctx, payload, 0); err == nil && res.Identity != nil {
				out.identity = *res.Identity
				if res.Identity.EntryName != "" {
					entryName = res.Identity.EntryName
				}
				if res.Identity.Accession != "" {
					accession = res.Identity.Accession
				}
			}
		}
	}

	var wg sync.WaitGroup
	if f, ok := s.fetchers[domain.SourceTmAlphaFold]; ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload, err := f.Fetch(ctx, entryName)
			if err != nil {
				fail(domain.SourceTmAlphaFold, err)
				return
			}
			payload.Accession = accession
			keep(payload)
		}()
	}
	if s.structures != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st, err := s.structures.FetchStructure(ctx, accession, opts.Structure)
			if err != nil {
				if errors.Is(err, domain.ErrNoCoverage) {
					logger.Debug("AlphaFold DB has no model for %s", accession)
				} else {
					logger.Warn("AlphaFold DB fetch for %s failed: %v", accession, err)
				}
				return
			}
			mu.Lock()
			out.structure = st
			mu.Unlock()
		}()
	}
	wg.Wait()
}

// normaliseRemote turns the raw remote payloads into an aggregate.
func (s *AnnotationService) normaliseRemote(ctx context.Context, r *remoteResult, seqLen int) *domain.MembraneAnnotation {
	agg := domain.NewMembraneAnnotation()
	for _, p := range r.payloads {
		if s.applyPayload(ctx, agg, p, seqLen, r.failures) {
			ref := r.identity.Accession
			if ref == "" {
				ref = p.Accession
			}
			setDefaultReference(agg, p.Source, ref)
		}
	}
	for source, err := range r.failures {
		agg.AddWarning(domain.NewWarning(source, domain.WarningFetchFailed, "%v", err))
	}
	return agg
}

// normaliseLocal turns stored payloads and rows into an aggregate.
// Rows override payloads of the same source.
func (s *AnnotationService) normaliseLocal(ctx context.Context, l *localResult, seqLen int) *domain.MembraneAnnotation {
	agg := domain.NewMembraneAnnotation()
	if l.protein == nil {
		return agg
	}

	failures := make(map[domain.AnnotationSource]error)
	for i := range l.payloads {
		if s.applyPayload(ctx, agg, &l.payloads[i], seqLen, failures) {
			setDefaultReference(agg, l.payloads[i].Source, l.protein.Accession)
		}
	}
	for source, err := range failures {
		agg.AddWarning(domain.NewWarning(source, domain.WarningFetchFailed, "stored payload: %v", err))
	}

	if len(l.records) > 0 && s.records != nil {
		fromRows := s.records.NormaliseRecords(l.records, seqLen)
		for _, source := range fromRows.PresentSources() {
			if u, _ := fromRows.ReferenceURL(source); u == "" {
				setDefaultReference(fromRows, source, l.protein.Accession)
			}
		}
		agg.MergeFrom(fromRows)
	}
	return agg
}

// applyPayload normalises one payload into agg. It reports whether the
// source became present. Absent sources are recorded in failures unless
// the upstream simply had no entry.
func (s *AnnotationService) applyPayload(
	ctx context.Context,
	agg *domain.MembraneAnnotation,
	p *domain.RawPayload,
	seqLen int,
	failures map[domain.AnnotationSource]error,
) bool {
	res, err := s.registry.Normalise(ctx, p, seqLen)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCoverage) {
			logger.Warn("Normalising %s failed: %v", p.Source, err)
			failures[p.Source] = err
		}
		return false
	}
	if err := agg.Set(p.Source, res.Ranges); err != nil {
		logger.Warn("Rejecting %s ranges: %v", p.Source, err)
		failures[p.Source] = err
		return false
	}
	for _, w := range res.Warnings {
		agg.AddWarning(w)
	}
	return true
}

func setDefaultReference(agg *domain.MembraneAnnotation, source domain.AnnotationSource, accession string) {
	info, err := domain.LookupSource(source)
	if err != nil || accession == "" {
		return
	}
	_ = agg.SetReferenceURL(source, info.ReferenceURL(accession))
}
