package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(nil, env(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://127.0.0.1:2609", cfg.BotURL)
	assert.Equal(t, "password", cfg.BotPassword)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Zero(t, cfg.RequestTimeout)
	assert.Equal(t, cfg.PollInterval, cfg.LoadTimeout())
	assert.Equal(t, 100, cfg.HistoryLength)
	assert.Equal(t, "never", cfg.HourlyReset)
	assert.Equal(t, "replace", cfg.ImportMode)
	assert.True(t, cfg.PersistHistory)
	assert.Equal(t, 9000, cfg.GRPCPort)
	assert.False(t, cfg.Mock)
}

func TestLoadFrom_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "duskboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9090"
bot_url: "http://bot.local:2609"
poll_interval: 30s
history_length: 50
mounted_targets: [total-commands, runtime]
`), 0o644))

	cfg, err := LoadFrom(
		[]string{"-config", path, "-history", "25"},
		env(map[string]string{"DUSK_ADDR": ":7070", "DUSK_HISTORY_LENGTH": "40"}),
	)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr, "env beats file")
	assert.Equal(t, "http://bot.local:2609", cfg.BotURL)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 25, cfg.HistoryLength, "flag beats env")
	assert.Equal(t, []string{"total-commands", "runtime"}, cfg.MountedTargets)
}

func TestLoadFrom_ExplicitRequestTimeout(t *testing.T) {
	cfg, err := LoadFrom([]string{"-interval", "20s", "-timeout", "4s"}, env(nil))
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 4*time.Second, cfg.LoadTimeout())
}

func TestLoadFrom_ConfigFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("import_mode: merge\n"), 0o644))

	cfg, err := LoadFrom(nil, env(map[string]string{"DUSK_CONFIG": path}))
	require.NoError(t, err)
	assert.Equal(t, "merge", cfg.ImportMode)
}

func TestLoadFrom_Lists(t *testing.T) {
	cfg, err := LoadFrom(
		[]string{"-origins", "http://a.local, http://b.local,"},
		env(map[string]string{"DUSK_MOUNTED_TARGETS": "runtime, cpu-usage"}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"runtime", "cpu-usage"}, cfg.MountedTargets)
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"bad env duration", nil, map[string]string{"DUSK_POLL_INTERVAL": "soon"}},
		{"bad env bool", nil, map[string]string{"DUSK_MOCK": "maybe"}},
		{"missing file", []string{"-config=/does/not/exist.yaml"}, nil},
		{"unknown flag", []string{"-nope"}, nil},
		{"invalid reset", []string{"-hourly-reset", "weekly"}, nil},
		{"invalid target", []string{"-targets", "sidebar"}, nil},
		{"negative timeout", []string{"-timeout", "-1s"}, nil},
		{"relative bot url", []string{"-bot", "localhost"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.args, env(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	cfg.HistoryLength = 0
	cfg.ImportMode = "append"
	cfg.GRPCPort = 70000
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history_length")
	assert.Contains(t, err.Error(), "import_mode")
	assert.Contains(t, err.Error(), "grpc_port")
}

func TestConfigFlag(t *testing.T) {
	assert.Equal(t, "a.yaml", configFlag([]string{"-config", "a.yaml"}))
	assert.Equal(t, "b.yaml", configFlag([]string{"--config=b.yaml"}))
	assert.Equal(t, "", configFlag([]string{"config", "c.yaml"}))
	assert.Equal(t, "", configFlag([]string{"-config"}))
}
