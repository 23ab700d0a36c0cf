package domain

import "sort"

// MembraneAnnotation aggregates every source's normalised ranges for one protein.
//
// A source is either absent (never set, or its fetch failed), present but empty
// (the source answered with zero ranges), or present with ranges. Mutation is
// always whole-source: Set and MergeFrom replace a source's list, never merge
// inside it. The aggregate is not safe for concurrent use; combine independently
// built aggregates with MergeFrom instead.
type MembraneAnnotation struct {
	ranges        map[AnnotationSource][]ResidueRange
	referenceURLs map[AnnotationSource]string
	warnings      []Warning
}

// SourceReference pairs a source with its attribution URL.
type SourceReference struct {
	Source AnnotationSource
	URL    string
}

// NewMembraneAnnotation creates an empty aggregate.
func NewMembraneAnnotation() *MembraneAnnotation {
	return &MembraneAnnotation{
		ranges:        make(map[AnnotationSource][]ResidueRange),
		referenceURLs: make(map[AnnotationSource]string),
	}
}

// Set replaces the ranges for a source. A nil or empty slice marks the
// source present with no evidence. Calling Set twice with the same ranges
// leaves the aggregate unchanged.
func (a *MembraneAnnotation) Set(source AnnotationSource, ranges []ResidueRange) error {
	if _, err := LookupSource(source); err != nil {
		return err
	}
	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	stored := make([]ResidueRange, len(ranges))
	copy(stored, ranges)
	a.ranges[source] = stored
	return nil
}

// Ranges returns a copy of a source's ranges in their stored order.
// An absent source yields a nil slice; a present but empty source yields
// an empty non-nil slice.
func (a *MembraneAnnotation) Ranges(source AnnotationSource) ([]ResidueRange, error) {
	if _, err := LookupSource(source); err != nil {
		return nil, err
	}
	stored, ok := a.ranges[source]
	if !ok {
		return nil, nil
	}
	out := make([]ResidueRange, len(stored))
	copy(out, stored)
	return out, nil
}

// Has reports whether the source is present, even if empty.
func (a *MembraneAnnotation) Has(source AnnotationSource) bool {
	_, ok := a.ranges[source]
	return ok
}

// SetReferenceURL records the attribution URL for a source.
func (a *MembraneAnnotation) SetReferenceURL(source AnnotationSource, url string) error {
	if _, err := LookupSource(source); err != nil {
		return err
	}
	a.referenceURLs[source] = url
	return nil
}

// ReferenceURL returns the attribution URL for a source.
func (a *MembraneAnnotation) ReferenceURL(source AnnotationSource) (string, error) {
	if _, err := LookupSource(source); err != nil {
		return "", err
	}
	return a.referenceURLs[source], nil
}

// References returns every recorded attribution URL in registry order.
func (a *MembraneAnnotation) References() []SourceReference {
	refs := make([]SourceReference, 0, len(a.referenceURLs))
	for _, s := range Sources() {
		if u, ok := a.referenceURLs[s]; ok && u != "" {
			refs = append(refs, SourceReference{Source: s, URL: u})
		}
	}
	return refs
}

// MergeFrom copies every source present in other over this aggregate.
// The union is right-biased on the source key: other wins, whole lists only.
// Reference URLs follow the same rule and warnings are appended.
func (a *MembraneAnnotation) MergeFrom(other *MembraneAnnotation) {
	if other == nil {
		return
	}
	for source, ranges := range other.ranges {
		stored := make([]ResidueRange, len(ranges))
		copy(stored, ranges)
		a.ranges[source] = stored
	}
	for source, u := range other.referenceURLs {
		a.referenceURLs[source] = u
	}
	a.warnings = append(a.warnings, other.warnings...)
}

// HasAnnotations reports whether at least one source has a non-empty range list.
func (a *MembraneAnnotation) HasAnnotations() bool {
	for _, ranges := range a.ranges {
		if len(ranges) > 0 {
			return true
		}
	}
	return false
}

// AvailableSources returns sources with non-empty range lists in registry order.
func (a *MembraneAnnotation) AvailableSources() []AnnotationSource {
	var out []AnnotationSource
	for _, s := range Sources() {
		if len(a.ranges[s]) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// PresentSources returns every present source, empty or not, in registry order.
func (a *MembraneAnnotation) PresentSources() []AnnotationSource {
	present := make([]AnnotationSource, 0, len(a.ranges))
	for s := range a.ranges {
		present = append(present, s)
	}
	sort.Slice(present, func(i, j int) bool {
		return present[i].order() < present[j].order()
	})
	return present
}

// AddWarning records a data-quality warning.
func (a *MembraneAnnotation) AddWarning(w Warning) {
	a.warnings = append(a.warnings, w)
}

// Warnings returns the recorded warnings in insertion order.
func (a *MembraneAnnotation) Warnings() []Warning {
	out := make([]Warning, len(a.warnings))
	copy(out, a.warnings)
	return out
}
