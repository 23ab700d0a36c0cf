package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostlab/tmvis/internal/adapters/driven/storage/memory"
	"github.com/rostlab/tmvis/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Store.Backend, settings.Store.Backend)
	assert.Equal(t, defaults.Remote.Enabled, settings.Remote.Enabled)
	assert.Equal(t, defaults.Remote.TimeoutSeconds, settings.Remote.TimeoutSeconds)
	assert.Equal(t, defaults, service.GetDefaults())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.backend", "postgres")
	_ = store.Set("store.dsn", "postgres://db/tmvis")
	_ = store.Set("remote.enabled", false)
	_ = store.Set("remote.timeout_seconds", int64(5))
	_ = store.Set("remote.requests_per_second", 1.5)
	_ = store.Set("uniprot.base_url", "http://localhost:9000")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.StoreBackendPostgres, settings.Store.Backend)
	assert.Equal(t, "postgres://db/tmvis", settings.Store.DSN)
	assert.False(t, settings.Remote.Enabled)
	assert.Equal(t, 5, settings.Remote.TimeoutSeconds)
	assert.InDelta(t, 1.5, settings.Remote.RequestsPerSecond, 1e-9)
	assert.Equal(t, "http://localhost:9000", settings.Remote.UniProtURL)
}

func TestSettingsService_Get_InvalidBackendReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.backend", "mongo")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendSQLite, settings.Store.Backend)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	want := domain.DefaultAppSettings()
	want.Store.DataDir = "/srv/tmvis"
	want.Remote.Enabled = false
	want.Remote.RequestsPerSecond = 3
	want.Remote.AlphaFoldURL = "http://af.local"
	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)

	bad := domain.DefaultAppSettings()
	bad.Store.Backend = domain.StoreBackendPostgres
	assert.ErrorIs(t, service.Save(&bad), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("remote.enabled", "false"))
	require.NoError(t, service.Set("remote.timeout_seconds", "30"))
	require.NoError(t, service.Set("remote.requests_per_second", "0.5"))
	require.NoError(t, service.Set("store.backend", "memory"))
	require.NoError(t, service.Set(" tmalphafold.base_url ", " http://tm.local "))

	assert.False(t, store.GetBool("remote.enabled"))
	assert.Equal(t, 30, store.GetInt("remote.timeout_seconds"))
	assert.InDelta(t, 0.5, store.GetFloat("remote.requests_per_second"), 1e-9)
	assert.Equal(t, "memory", store.GetString("store.backend"))
	assert.Equal(t, "http://tm.local", store.GetString("tmalphafold.base_url"))
}

func TestSettingsService_Set_Rejects(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct{ key, value string }{
		{"search.mode", "hybrid"},
		{"remote.enabled", "maybe"},
		{"remote.timeout_seconds", "-1"},
		{"remote.timeout_seconds", "ten"},
		{"remote.requests_per_second", "-2"},
		{"store.backend", "mongo"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()
	assert.Len(t, keys, 9)
	assert.Equal(t, "store.backend", keys[0])
	assert.Contains(t, keys, "alphafold.base_url")
}
