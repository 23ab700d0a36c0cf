package tui

import "errors"

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("tui: annotation service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
