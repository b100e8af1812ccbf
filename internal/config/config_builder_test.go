package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// validConfig returns defaults completed with the two required secrets.
func validConfig() *StructuredConfig {
	cfg := defaults()
	cfg.App.TokenSignKey = "secret"
	cfg.Storage.DB.DSN = "file:test.db"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// configs replace earlier values while zero fields leave them intact.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validConfig(),
		&StructuredConfig{
			Server: Server{HTTPAddress: ":9999"},
			Security: Security{
				RateLimit: RateLimit{Max: 5},
			},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.HTTPAddress)
	assert.Equal(t, 5, cfg.Security.RateLimit.Max)
	assert.Equal(t, 60*time.Minute, cfg.Security.RateLimit.Window)
	assert.Equal(t, "jwt", cfg.Security.Session.Name)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
}

func TestBuild_DefaultsOnly(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{
		App:     App{TokenSignKey: "k"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/posts"}},
	})

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
	assert.Empty(t, cfg.Server.OpsAddress)
	assert.Equal(t, int64(100<<10), cfg.Security.BodyLimit)
	assert.Equal(t, []string{"*"}, cfg.Security.CORS.AllowedOrigins)
	assert.Equal(t, 100, cfg.Security.RateLimit.Max)
	assert.Equal(t, DefaultRateLimitMessage, cfg.Security.RateLimit.Message)
	assert.False(t, cfg.Security.Session.Signed)
	assert.False(t, cfg.Security.Session.Secure)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_InvalidFlagRecordsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-a", "not-an-address"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags_AppendsConfig(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-d", "file:x.db", "-db-driver", "sqlite3"})
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "file:x.db", b.configs[0].Storage.DB.DSN)
	assert.Equal(t, DriverSQLite, b.configs[0].Storage.DB.Driver)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_LastPathWins(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"token_issuer": "first"}})
	second := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"token_issuer": "second"}})

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: first},
		&StructuredConfig{JSONFilePath: second},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "second", b.configs[2].App.TokenIssuer)
}

func TestWithJSON_MissingFileRecordsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withJSON()
	assert.Error(t, b.err)
}

// TestFullChain runs the full default/env/flags/json chain the way
// GetStructuredConfig does, with an explicit argument list.
func TestFullChain(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"security": map[string]any{
			"rate_limit": map[string]any{"max": 10, "window": "1m"},
		},
	})
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-secret")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env/db")

	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-a", ":7070", "-c", path}).
		withJSON().
		build()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.App.TokenSignKey)
	assert.Equal(t, "postgres://env/db", cfg.Storage.DB.DSN)
	assert.Equal(t, ":7070", cfg.Server.HTTPAddress)
	assert.Equal(t, 10, cfg.Security.RateLimit.Max)
	assert.Equal(t, time.Minute, cfg.Security.RateLimit.Window)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "missing sign key", mutate: func(c *StructuredConfig) { c.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "zero token duration", mutate: func(c *StructuredConfig) { c.App.TokenDuration = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "missing address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "unknown driver", mutate: func(c *StructuredConfig) { c.Storage.DB.Driver = "mysql" }, wantErr: ErrInvalidStorageConfigs},
		{name: "missing dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "zero body limit", mutate: func(c *StructuredConfig) { c.Security.BodyLimit = 0 }, wantErr: ErrInvalidSecurityConfigs},
		{name: "zero rate limit", mutate: func(c *StructuredConfig) { c.Security.RateLimit.Max = 0 }, wantErr: ErrInvalidSecurityConfigs},
		{
			name: "zero rate limit but disabled",
			mutate: func(c *StructuredConfig) {
				c.Security.RateLimit.Max = 0
				c.Security.RateLimit.Disabled = true
			},
		},
		{name: "signed without key", mutate: func(c *StructuredConfig) { c.Security.Session.Signed = true }, wantErr: ErrInvalidSecurityConfigs},
		{name: "tracing without endpoint", mutate: func(c *StructuredConfig) { c.Tracing.Enabled = true }, wantErr: ErrInvalidTracingConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
