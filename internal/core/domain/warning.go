package domain

import "fmt"

// WarningKind classifies a recorded data-quality problem.
type WarningKind string

const (
	// WarningClamped means a span was cut back to the sequence bounds.
	WarningClamped WarningKind = "clamped"
	// WarningDropped means a span lay wholly outside the sequence or was reversed.
	WarningDropped WarningKind = "dropped"
	// WarningUnknownLabel means a code outside the closed vocabulary was kept.
	WarningUnknownLabel WarningKind = "unknown_label"
	// WarningEmptySource means a source answered but contributed no usable range.
	WarningEmptySource WarningKind = "empty_source"
	// WarningLengthMismatch means a payload disagreed with the known sequence length.
	WarningLengthMismatch WarningKind = "length_mismatch"
	// WarningFetchFailed means a collaborator fetch failed and the source is absent.
	WarningFetchFailed WarningKind = "fetch_failed"
)

// Warning is a non-fatal data-quality finding.
type Warning struct {
	Source  AnnotationSource
	Kind    WarningKind
	Message string
}

// NewWarning formats a warning message.
func NewWarning(source AnnotationSource, kind WarningKind, format string, args ...any) Warning {
	return Warning{
		Source:  source,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// String renders the warning for logs.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", string(w.Source), string(w.Kind), w.Message)
}
