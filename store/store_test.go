package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/worldkit/worldfile"
)

func testWorld(paths ...string) worldfile.World {
	var w worldfile.World
	for _, p := range paths {
		w.Objects = append(w.Objects, worldfile.Object{
			Type:  worldfile.TypeStaticObject,
			Model: filepath.Base(p),
			Path:  p,
			Scale: worldfile.Vec3{X: 1, Y: 1, Z: 1},
		})
	}
	return w
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "worlds.json"))

	saved := testWorld("models/wall.json", "models/tree.json")
	require.NoError(t, s.Save("garden", saved))

	loaded, err := s.Load("garden")
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestLoadMissingWorld(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "worlds.json"))
	_, err := s.Load("nope")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestSavePreservesOtherWorlds(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "worlds.json"))
	require.NoError(t, s.Save("a", testWorld("models/a.json")))
	require.NoError(t, s.Save("b", testWorld("models/b.json")))

	names, err := s.List()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, names)

	a, err := s.Load("a")
	require.NoError(t, err)
	require.Len(t, a.Objects, 1)
	require.Equal(t, "models/a.json", a.Objects[0].Path)
}

func TestDeleteMissingIsNoOp(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "worlds.json"))
	require.NoError(t, s.Save("keep", testWorld("models/k.json")))
	require.NoError(t, s.Delete("ghost"))

	names, err := s.List()
	require.NoError(t, err)
	require.Equal(t, []string{"keep"}, names)
}

func TestListEmptyStore(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "worlds.json"))
	names, err := s.List()
	require.NoError(t, err)
	require.Empty(t, names)
}
