// Package mcp provides an MCP (Model Context Protocol) server adapter for tmvis.
// It lets AI assistants look up membrane annotations and browse the protein store.
package mcp

import "errors"

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("mcp: annotation service is required")
