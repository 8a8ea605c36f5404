package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mididump.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
backend = "logrus"

[decode]
running_status = false
verify = true
kinds = ["NoteOn", "SysEx"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "logrus", cfg.Log.Backend)
	assert.False(t, cfg.Decode.RunningStatus)
	assert.True(t, cfg.Decode.Verify)

	opts, err := cfg.StreamOptions(cfg.Logger())
	require.NoError(t, err)

	applied := &contracts.StreamOptions{}
	for _, opt := range opts {
		opt(applied)
	}
	assert.Equal(t, contracts.DebugLevel, applied.LogLevel)
	require.NotNil(t, applied.RunningStatus)
	assert.False(t, *applied.RunningStatus)
	require.NotNil(t, applied.MIDIEventFilter)
	assert.Len(t, applied.MIDIEventFilter.Kinds, 2)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"level":   "[log]\nlevel = \"loud\"\n",
		"backend": "[log]\nbackend = \"syslog\"\n",
		"kind":    "[decode]\nkinds = [\"Reset\"]\n",
		"unknown": "[decode]\nrunning = true\n",
		"syntax":  "[log\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
