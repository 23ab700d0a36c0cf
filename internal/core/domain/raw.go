package domain

// RawPayload is a source response exactly as a fetch collaborator delivered it.
// It is the normaliser's input; its shape is owned by the upstream service.
type RawPayload struct {
	// Source identifies which normaliser consumes the payload.
	Source AnnotationSource

	// Accession is the protein identifier the payload was fetched for.
	Accession string

	// MIMEType is the content type reported by the upstream (e.g., "application/json").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// RangeRecord is one annotation row from the local protein store,
// in the store's native coordinates (1-based, inclusive).
type RangeRecord struct {
	// ID is the store identifier of the row.
	ID string

	// Start is the first residue as stored.
	Start int

	// End is the last residue as stored.
	End int

	// Label is the stored topology code.
	Label string

	// Source is the store's source name (e.g., "topdb", "tmvis").
	Source string

	// SourceRef is an optional upstream identifier.
	SourceRef string

	// SourceURL is an optional attribution URL.
	SourceURL string
}
