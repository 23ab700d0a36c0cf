package domain

import (
	"fmt"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// StoreBackend selects the protein store implementation.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendSQLite is a local SQLite file.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendPostgres is a PostgreSQL server.
	StoreBackendPostgres StoreBackend = "postgres"

	// StoreBackendMemory keeps proteins in memory for the lifetime of the process.
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendSQLite, StoreBackendPostgres, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendSQLite:
		return "SQLite (local file)"
	case StoreBackendPostgres:
		return "PostgreSQL (server)"
	case StoreBackendMemory:
		return "In-memory (not persisted)"
	default:
		return unknownDescription
	}
}

// StoreSettings configures the protein store.
type StoreSettings struct {
	// Backend selects the implementation.
	Backend StoreBackend

	// DSN is the connection string for postgres, or a file path for sqlite.
	// Empty means the default file in DataDir.
	DSN string

	// DataDir holds the SQLite file. Empty means ~/.tmvis/data.
	DataDir string
}

// RemoteSettings configures the remote annotation collaborators.
type RemoteSettings struct {
	// Enabled allows UniProt, TmAlphaFold and AlphaFold lookups.
	Enabled bool

	// TimeoutSeconds bounds each request.
	TimeoutSeconds int

	// RequestsPerSecond throttles each upstream. Zero keeps the per-service defaults.
	RequestsPerSecond float64

	// UniProtURL, TmAlphaFoldURL and AlphaFoldURL override the API roots.
	UniProtURL     string
	TmAlphaFoldURL string
	AlphaFoldURL   string
}

// Timeout returns the request timeout as a duration.
func (r RemoteSettings) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Store holds protein store settings.
	Store StoreSettings

	// Remote holds remote lookup settings.
	Remote RemoteSettings
}

// Default remote settings.
const (
	DefaultTimeoutSeconds = 15
)

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Backend: StoreBackendSQLite,
		},
		Remote: RemoteSettings{
			Enabled:        true,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// ApplyDatabaseURL overrides the store settings from a DATABASE_URL value.
// "sqlite:///path" selects a SQLite file and "postgres://..." a server.
func (s *AppSettings) ApplyDatabaseURL(raw string) error {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return nil
	case strings.HasPrefix(raw, "sqlite:///"):
		path := strings.TrimPrefix(raw, "sqlite:///")
		if path == "" {
			return fmt.Errorf("%w: database url %q has no path", ErrInvalidInput, raw)
		}
		s.Store.Backend = StoreBackendSQLite
		s.Store.DSN = path
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		s.Store.Backend = StoreBackendPostgres
		s.Store.DSN = raw
	default:
		return fmt.Errorf("%w: unsupported database url %q", ErrInvalidInput, raw)
	}
	return nil
}

// Validate checks the settings.
func (s AppSettings) Validate() error {
	if !s.Store.Backend.IsValid() {
		return fmt.Errorf("%w: store backend %q", ErrInvalidInput, s.Store.Backend)
	}
	if s.Store.Backend == StoreBackendPostgres && s.Store.DSN == "" {
		return fmt.Errorf("%w: postgres backend requires store.dsn", ErrInvalidInput)
	}
	if s.Remote.TimeoutSeconds < 0 || s.Remote.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: remote limits must not be negative", ErrInvalidInput)
	}
	return nil
}

// AllStoreBackends returns every store backend.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{StoreBackendSQLite, StoreBackendPostgres, StoreBackendMemory}
}
