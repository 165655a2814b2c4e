package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()
	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, ".gymkeeper", c.DataDir)
	assert.False(t, c.Verbose)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		mutate      func(*Config)
	}{
		{
			name: "address and interval",
			args: []string{"-a", "10.0.0.5:9090", "-i", "10"},
			mutate: func(c *Config) {
				c.ServerEndpointAddr = "10.0.0.5:9090"
				c.OnlineCheckInterval = 10 * time.Second
			},
		},
		{
			name: "data dir, log file, verbose",
			args: []string{"-d", "/tmp/gk", "-l", "debug", "-v"},
			mutate: func(c *Config) {
				c.DataDir = "/tmp/gk"
				c.LogFile = "debug"
				c.Verbose = true
			},
		},
		{
			name:   "config selector is ignored",
			args:   []string{"-c", "client.json"},
			mutate: func(*Config) {},
		},
		{
			name:        "bad interval",
			args:        []string{"-i", "often"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&got, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(&got, tt.args) })

			want := defaults()
			tt.mutate(&want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func writeJSON(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseJson(t *testing.T) {
	p := writeJSON(t, `{
		"server_endpoint_addr": "gym.example:443",
		"online_check_interval": "15s",
		"request_timeout": 2000000000,
		"log_level": "debug"
	}`)

	got := defaults()
	parseJson(&got, []string{"-c", p})

	assert.Equal(t, "gym.example:443", got.ServerEndpointAddr)
	assert.Equal(t, 15*time.Second, got.OnlineCheckInterval)
	assert.Equal(t, 2*time.Second, got.RequestTimeout)
	assert.Equal(t, "debug", got.LogLevel)
	assert.Equal(t, ".gymkeeper", got.DataDir, "absent fields keep their value")
}

func TestParseJson_Errors(t *testing.T) {
	c := defaults()
	assert.Panics(t, func() { parseJson(&c, []string{"-config", filepath.Join(t.TempDir(), "missing.json")}) })

	p := writeJSON(t, `{"online_check_interval": "sometimes"}`)
	assert.Panics(t, func() { parseJson(&c, []string{"-c", p}) })
}

func TestLoad_FlagsOverrideJson(t *testing.T) {
	p := writeJSON(t, `{"server_endpoint_addr": "from-json:1", "data_dir": "json-dir"}`)

	cfg := load([]string{"-c", p, "-a", "from-flag:2"})
	assert.Equal(t, "from-flag:2", cfg.ServerEndpointAddr)
	assert.Equal(t, "json-dir", cfg.DataDir)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}
