package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		wantErr           bool
		wantErrorContains string
		check             func(t *testing.T, cfg *Config)
	}{
		{
			name:          "defaults when file is empty",
			configContent: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":8084", cfg.Server.Address)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "postgres", cfg.Store.Driver)
				assert.Equal(t, "header", cfg.Auth.Provider)
				assert.Equal(t, "study.recorded", cfg.RabbitMQ.RoutingKey)
				assert.Equal(t, uint(3), cfg.RabbitMQ.DialAttempts)
				assert.Equal(t, 4, cfg.Worker.MaxWorkers)
				assert.Equal(t, "/metrics", cfg.Metrics.Path)
				assert.Contains(t, cfg.CORS.AllowedHeaders, "X-User-ID")
			},
		},
		{
			name: "file values override defaults",
			configContent: `server:
  address: ":9000"
database:
  host: db.internal
  port: 6432
  name: study
store:
  driver: hosted
  url: https://project.example.co
  api_key: anon
auth:
  provider: hosted
  url: https://project.example.co
worker:
  enabled: true
  max_workers: 8
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":9000", cfg.Server.Address)
				assert.Equal(t, "db.internal", cfg.Database.Host)
				assert.Equal(t, 6432, cfg.Database.Port)
				assert.Equal(t, "hosted", cfg.Store.Driver)
				assert.Equal(t, "https://project.example.co", cfg.Store.URL)
				assert.Equal(t, "anon", cfg.Store.APIKey)
				assert.Equal(t, "hosted", cfg.Auth.Provider)
				assert.True(t, cfg.Worker.Enabled)
				assert.Equal(t, 8, cfg.Worker.MaxWorkers)
			},
		},
		{
			name:          "environment overrides file",
			configContent: "logging:\n  level: debug\n",
			env: map[string]string{
				"LOGGING_LEVEL":  "error",
				"SERVER_ADDRESS": ":7000",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "error", cfg.Logging.Level)
				assert.Equal(t, ":7000", cfg.Server.Address)
			},
		},
		{
			name:              "hosted store requires url",
			configContent:     "store:\n  driver: hosted\n",
			wantErr:           true,
			wantErrorContains: "invalid config",
		},
		{
			name:              "unknown store driver",
			configContent:     "store:\n  driver: sqlite\n",
			wantErr:           true,
			wantErrorContains: "invalid config",
		},
		{
			name:              "invalid YAML format",
			configContent:     "server:\n  address: [[[\n",
			wantErr:           true,
			wantErrorContains: "failed to read config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.configContent)

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "study_db", cfg.Database.Name)
}
