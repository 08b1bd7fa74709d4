package earlyrepair

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesDocumentedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 8, cfg.MaxPenalty)
	assert.Equal(t, 5*time.Second, cfg.ParseTimeout)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Nil(t, cfg.Seed)
}

func TestLoadConfigFileOverridesOnlySetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_penalty = 4\nseed = 42\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxPenalty)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.Equal(t, 5*time.Second, cfg.ParseTimeout) // untouched, keeps default
	assert.Equal(t, 5, cfg.MaxAttempts)
}

func TestLoadConfigFileAcceptsFractionalTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("parse_timeout = 1.5\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.ParseTimeout)
}
