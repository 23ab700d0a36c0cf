package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/core/ports/driven"
	"github.com/rostlab/tmvis/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStoreBackend     = "store.backend"
	keyStoreDSN         = "store.dsn"
	keyStoreDataDir     = "store.data_dir"
	keyRemoteEnabled    = "remote.enabled"
	keyRemoteTimeout    = "remote.timeout_seconds"
	keyRemoteRate       = "remote.requests_per_second"
	keyUniProtBaseURL   = "uniprot.base_url"
	keyTmAlphaFoldURL   = "tmalphafold.base_url"
	keyAlphaFoldBaseURL = "alphafold.base_url"
)

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindFloat
)

// settingKeys lists every settable key in display order.
var settingKeys = []struct {
	key  string
	kind keyKind
}{
	{keyStoreBackend, kindString},
	{keyStoreDSN, kindString},
	{keyStoreDataDir, kindString},
	{keyRemoteEnabled, kindBool},
	{keyRemoteTimeout, kindInt},
	{keyRemoteRate, kindFloat},
	{keyUniProtBaseURL, kindString},
	{keyTmAlphaFoldURL, kindString},
	{keyAlphaFoldBaseURL, kindString},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend: s.getBackend(defaults.Store.Backend),
			DSN:     s.configStore.GetString(keyStoreDSN),
			DataDir: s.configStore.GetString(keyStoreDataDir),
		},
		Remote: domain.RemoteSettings{
			Enabled:           s.getBool(keyRemoteEnabled, defaults.Remote.Enabled),
			TimeoutSeconds:    s.getInt(keyRemoteTimeout, defaults.Remote.TimeoutSeconds),
			RequestsPerSecond: s.configStore.GetFloat(keyRemoteRate),
			UniProtURL:        s.configStore.GetString(keyUniProtBaseURL),
			TmAlphaFoldURL:    s.configStore.GetString(keyTmAlphaFoldURL),
			AlphaFoldURL:      s.configStore.GetString(keyAlphaFoldBaseURL),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyStoreBackend, settings.Store.Backend.String()},
		{keyStoreDSN, settings.Store.DSN},
		{keyStoreDataDir, settings.Store.DataDir},
		{keyRemoteEnabled, settings.Remote.Enabled},
		{keyRemoteTimeout, settings.Remote.TimeoutSeconds},
		{keyRemoteRate, settings.Remote.RequestsPerSecond},
		{keyUniProtBaseURL, settings.Remote.UniProtURL},
		{keyTmAlphaFoldURL, settings.Remote.TmAlphaFoldURL},
		{keyAlphaFoldBaseURL, settings.Remote.AlphaFoldURL},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value according to the key's type and stores it.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	for _, k := range settingKeys {
		if k.key != key {
			continue
		}

		var parsed any
		switch k.kind {
		case kindBool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: %s expects true or false", domain.ErrInvalidInput, key)
			}
			parsed = b
		case kindInt:
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("%w: %s expects a non-negative integer", domain.ErrInvalidInput, key)
			}
			parsed = n
		case kindFloat:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("%w: %s expects a non-negative number", domain.ErrInvalidInput, key)
			}
			parsed = f
		default:
			if key == keyStoreBackend && !domain.StoreBackend(value).IsValid() {
				return fmt.Errorf("%w: unknown store backend %q", domain.ErrInvalidInput, value)
			}
			parsed = value
		}

		if err := s.configStore.Set(key, parsed); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		return nil
	}

	return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// Keys returns every settable key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.key
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	val := domain.StoreBackend(s.configStore.GetString(keyStoreBackend))
	if !val.IsValid() {
		return defaultVal
	}
	return val
}
