package domain

import (
	"net/url"
	"strings"
)

// AnnotationSource identifies one origin of topology evidence.
type AnnotationSource string

const (
	// SourcePredicted is the local TMbed prediction store.
	SourcePredicted AnnotationSource = "tmbed"
	// SourceTopDB is the Topology Data Bank of Transmembrane Proteins.
	SourceTopDB AnnotationSource = "topdb"
	// SourceMembranome is the Membranome single-helix database.
	SourceMembranome AnnotationSource = "membranome"
	// SourceUniProt is UniProtKB transmembrane features.
	SourceUniProt AnnotationSource = "uniprot"
	// SourceTmAlphaFold is the TmAlphaFold membrane region API.
	SourceTmAlphaFold AnnotationSource = "tmalphafold"
)

// accessionPlaceholder is substituted in SourceInfo.URLTemplate.
const accessionPlaceholder = "{accession}"

// SourceInfo describes a registered source.
type SourceInfo struct {
	// ID is the registry key.
	ID AnnotationSource

	// DisplayName is the column header and legend text.
	DisplayName string

	// Description explains what the source reports.
	Description string

	// URLTemplate is the attribution URL with an {accession} placeholder.
	URLTemplate string
}

// ReferenceURL expands the attribution template for an accession.
func (i SourceInfo) ReferenceURL(accession string) string {
	return strings.ReplaceAll(i.URLTemplate, accessionPlaceholder, url.PathEscape(accession))
}

// registry is ordered; that order is the canonical display order.
var registry = []SourceInfo{
	{
		ID:          SourcePredicted,
		DisplayName: "TMbed Prediction",
		Description: "Per-residue transmembrane prediction from the local store",
		URLTemplate: "https://lambda.predictprotein.org/o/" + accessionPlaceholder,
	},
	{
		ID:          SourceTopDB,
		DisplayName: "TopDB Annotation",
		Description: "Experimentally supported topology from TopDB",
		URLTemplate: "https://topdb.unitmp.org/entry/" + accessionPlaceholder,
	},
	{
		ID:          SourceMembranome,
		DisplayName: "Membranome Annotation",
		Description: "Single transmembrane helix span from Membranome",
		URLTemplate: "https://membranome.org/proteins?search=" + accessionPlaceholder,
	},
	{
		ID:          SourceUniProt,
		DisplayName: "UniProt Annotation",
		Description: "Transmembrane features from UniProtKB",
		URLTemplate: "https://www.uniprot.org/uniprotkb/" + accessionPlaceholder + "/entry",
	},
	{
		ID:          SourceTmAlphaFold,
		DisplayName: "TmAlphaFold Annotation",
		Description: "Membrane regions of the AlphaFold model from TmAlphaFold",
		URLTemplate: "https://tmalphafold.ttk.hu/entry/" + accessionPlaceholder,
	},
}

// sourceAliases maps identifiers used by stores and older dumps onto registry keys.
var sourceAliases = map[string]AnnotationSource{
	"tmbed":       SourcePredicted,
	"tmvis":       SourcePredicted,
	"predicted":   SourcePredicted,
	"prediction":  SourcePredicted,
	"topdb":       SourceTopDB,
	"membranome":  SourceMembranome,
	"membdb":      SourceMembranome,
	"uniprot":     SourceUniProt,
	"tmalphafold": SourceTmAlphaFold,
}

// Sources returns every registered source in canonical order.
func Sources() []AnnotationSource {
	out := make([]AnnotationSource, len(registry))
	for i, info := range registry {
		out[i] = info.ID
	}
	return out
}

// SourceInfos returns the registry entries in canonical order.
func SourceInfos() []SourceInfo {
	out := make([]SourceInfo, len(registry))
	copy(out, registry)
	return out
}

// LookupSource returns the registry entry for a source.
// Unregistered sources yield *UnknownSourceError.
func LookupSource(s AnnotationSource) (SourceInfo, error) {
	for _, info := range registry {
		if info.ID == s {
			return info, nil
		}
	}
	return SourceInfo{}, &UnknownSourceError{Source: s}
}

// ParseSource resolves a store or user supplied name, case-insensitively.
func ParseSource(name string) (AnnotationSource, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if s, ok := sourceAliases[key]; ok {
		return s, nil
	}
	return "", &UnknownSourceError{Source: AnnotationSource(name)}
}

// IsRegistered reports whether the source is in the registry.
func (s AnnotationSource) IsRegistered() bool {
	_, err := LookupSource(s)
	return err == nil
}

// DisplayName returns the registry display name, or the raw identifier
// for unregistered sources.
func (s AnnotationSource) DisplayName() string {
	info, err := LookupSource(s)
	if err != nil {
		return string(s)
	}
	return info.DisplayName
}

// order returns the registry index, or -1.
func (s AnnotationSource) order() int {
	for i, info := range registry {
		if info.ID == s {
			return i
		}
	}
	return -1
}
