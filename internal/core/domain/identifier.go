package domain

import (
	"regexp"
	"strings"
)

// IdentifierKind classifies a user-supplied protein identifier.
type IdentifierKind int

const (
	// IdentifierUnknown matches neither UniProt format.
	IdentifierUnknown IdentifierKind = iota
	// IdentifierAccession is a UniProt accession number (e.g., "P13224").
	IdentifierAccession
	// IdentifierEntryName is a UniProt entry name (e.g., "GP1BB_HUMAN").
	IdentifierEntryName
)

var (
	accessionRE = regexp.MustCompile(`^(?:[OPQ][0-9][A-Z0-9]{3}[0-9]|[A-NR-Z][0-9](?:[A-Z][A-Z0-9]{2}[0-9]){1,2})$`)
	entryNameRE = regexp.MustCompile(`^[A-Z0-9]{3,20}_[A-Z0-9]{3,20}$`)
)

// ClassifyIdentifier reports which UniProt format an identifier has.
// Matching is case-insensitive.
func ClassifyIdentifier(id string) IdentifierKind {
	s := strings.ToUpper(strings.TrimSpace(id))
	switch {
	case entryNameRE.MatchString(s):
		return IdentifierEntryName
	case accessionRE.MatchString(s):
		return IdentifierAccession
	default:
		return IdentifierUnknown
	}
}

// String names the kind.
func (k IdentifierKind) String() string {
	switch k {
	case IdentifierAccession:
		return "accession"
	case IdentifierEntryName:
		return "entry name"
	default:
		return "unknown"
	}
}
