package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/worldkit/input"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesAndMergesBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
assets_dir: /srv/assets
default_world: castle
audio: false
tick_ms: 33
bindings:
  k: move-forward
  q: quit
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/assets", cfg.AssetsDir)
	assert.Equal(t, "castle", cfg.DefaultWorld)
	assert.False(t, cfg.Audio)
	assert.Equal(t, 33, cfg.TickMillis)

	b, err := cfg.InputBindings()
	require.NoError(t, err)
	assert.Equal(t, input.ActionMoveForward, b["k"])
	assert.Equal(t, input.ActionQuit, b["q"])
	// Defaults survive the merge
	assert.Equal(t, input.ActionMoveForward, b["w"])
	assert.Equal(t, input.ActionInteract, b["e"])
}

func TestLoadRejectsUnknownAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bindings:\n  k: fly\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	_, err = cfg.InputBindings()
	require.Error(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t:::"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
