package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBase = `
database:
  host: localhost
  name: testdb
  user: testuser
amazon:
  client_id: amzn1.application-oa2-client.test
  client_secret: topsecret
identity:
  url: https://example.supabase.co
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: validBase,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testdb", cfg.Database.Name)
				assert.Equal(t, "amzn1.application-oa2-client.test", cfg.Amazon.ClientID)
				assert.Equal(t, "https://example.supabase.co", cfg.Identity.URL)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: validBase,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.PoolSize)
				assert.Equal(t, "https://api.amazon.com/auth/o2/token", cfg.Amazon.TokenURL)
				assert.Equal(t, 10*time.Second, cfg.Amazon.RequestTimeout)
				assert.Equal(t, 5*time.Minute, cfg.Credentials.CacheTTL)
				assert.Equal(t, 2*time.Minute, cfg.Credentials.ExpiryBuffer)
				assert.Equal(t, 10*time.Minute, cfg.Credentials.RefreshWindow)
				assert.Equal(t, 5*time.Minute, cfg.Credentials.SweepInterval)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: validBase + `
  api_key: "${TEST_IDENTITY_KEY}"
`,
			envVars: map[string]string{
				"TEST_IDENTITY_KEY": "anon-key-123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "anon-key-123", cfg.Identity.APIKey)
			},
		},
		{
			name: "missing database host",
			yaml: `
database:
  name: testdb
  user: testuser
amazon:
  client_id: id
  client_secret: secret
identity:
  url: https://example.supabase.co
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing amazon client secret",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
amazon:
  client_id: id
identity:
  url: https://example.supabase.co
`,
			wantErr: "amazon.client_secret is required",
		},
		{
			name: "refresh window narrower than expiry buffer",
			yaml: validBase + `
credentials:
  refresh_window: 1m
  expiry_buffer: 2m
`,
			wantErr: "refresh_window must be greater",
		},
		{
			name:    "invalid YAML",
			yaml:    "database: [not a map",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		Name:     "spproxy",
		User:     "app",
		Password: "pw",
		SSLMode:  "require",
	}

	assert.Equal(
		t,
		"host=db.internal port=5433 dbname=spproxy user=app password=pw sslmode=require",
		d.DSN(),
	)
}
