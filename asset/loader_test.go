package asset

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const wallModel = `{
  "name": "wall",
  "class": "wall",
  "parts": [
    {"name": "base", "min": [-0.5, 0, -0.5], "max": [0.5, 1, 0.5], "color": 8947848}
  ]
}`

func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "models"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models", "wall.json"), []byte(wallModel), 0o644))

	f, err := os.Create(filepath.Join(dir, "brick.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	require.NoError(t, f.Close())
	return dir
}

func TestGetModelReturnsClones(t *testing.T) {
	l := NewLoader(writeAssets(t), zap.NewNop())
	defer l.Dispose()

	a, err := l.Get("models/wall.json")
	require.NoError(t, err)
	b, err := l.Get("models/wall.json")
	require.NoError(t, err)

	require.Equal(t, "wall", a.Model)
	require.Equal(t, ClassWall, a.Class)
	require.NotSame(t, a.Object, b.Object, "instances must be independent clones")

	// Clones share geometry and the pooled material
	pa := a.Object.Children()[0]
	pb := b.Object.Children()[0]
	require.Same(t, pa.Mesh.Geometry, pb.Mesh.Geometry)
	require.Same(t, pa.Mesh.Materials[0], pb.Mesh.Materials[0])
	require.True(t, pa.Mesh.Materials[0].Cached, "template materials must be pool-owned")
}

func TestConcurrentGetsShareOneLoad(t *testing.T) {
	l := NewLoader(writeAssets(t), zap.NewNop())
	defer l.Dispose()

	const n = 16
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			a, err := l.Get("models/wall.json")
			if err == nil && a.Object == nil {
				err = errors.New("nil object")
			}
			errs[i] = err
		}(i)
	}
	close(start)
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "caller %d", i)
	}
	require.EqualValues(t, 1, l.loads.Load(), "one underlying load for N concurrent callers")
}

func TestCloneDisposalLeavesTemplateGeometryIntact(t *testing.T) {
	l := NewLoader(writeAssets(t), zap.NewNop())
	defer l.Dispose()

	a, err := l.Get("models/wall.json")
	require.NoError(t, err)
	a.Object.Dispose()

	b, err := l.Get("models/wall.json")
	require.NoError(t, err)
	geo := b.Object.Children()[0].Mesh.Geometry
	require.True(t, geo.Cached, "template geometry must be loader-owned")
	require.False(t, geo.Disposed(), "shared geometry must survive clone disposal")
}

func TestGetTextureShared(t *testing.T) {
	l := NewLoader(writeAssets(t), zap.NewNop())
	defer l.Dispose()

	a, err := l.Get("brick.png")
	require.NoError(t, err)
	b, err := l.Get("brick.png")
	require.NoError(t, err)

	require.Same(t, a.Texture, b.Texture, "textures are shared, not cloned")
	require.Equal(t, 4, a.Texture.Width)
}

func TestFailureClearsFlightAndAllowsRetry(t *testing.T) {
	dir := writeAssets(t)
	l := NewLoader(dir, zap.NewNop())
	defer l.Dispose()

	_, err := l.Get("models/tree.json")
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "models", "tree.json"),
		[]byte(`{"name":"tree","parts":[{"min":[0,0,0],"max":[1,2,1],"color":65280}]}`), 0o644))

	a, err := l.Get("models/tree.json")
	require.NoError(t, err)
	require.Equal(t, ClassProp, a.Class, "class defaults to prop")
}

func TestUnknownSuffixRejected(t *testing.T) {
	l := NewLoader(writeAssets(t), zap.NewNop())
	defer l.Dispose()
	_, err := l.Get("models/wall.gltf2")
	require.True(t, errors.Is(err, ErrUnknownAsset))
}

func TestDisposeReleasesAndBlocksFurtherGets(t *testing.T) {
	l := NewLoader(writeAssets(t), zap.NewNop())

	a, err := l.Get("models/wall.json")
	require.NoError(t, err)
	mat := a.Object.Children()[0].Mesh.Materials[0]
	geo := a.Object.Children()[0].Mesh.Geometry

	l.Dispose()
	l.Dispose() // Repeat dispose is a no-op

	require.True(t, mat.Disposed(), "pooled materials released by loader teardown")
	require.True(t, geo.Disposed(), "template geometry released by loader teardown")
	_, err = l.Get("models/wall.json")
	require.True(t, errors.Is(err, ErrDisposed))
}

func TestThumbnailCachedPerKey(t *testing.T) {
	l := NewLoader(writeAssets(t), zap.NewNop())
	defer l.Dispose()

	img1, err := l.Thumbnail("models/wall.json")
	require.NoError(t, err)
	img2, err := l.Thumbnail("models/wall.json")
	require.NoError(t, err)
	require.Same(t, img1, img2, "thumbnails render once per key")

	// The footprint center must carry the part color
	c := img1.RGBAAt(img1.Rect.Dx()/2, img1.Rect.Dy()/2)
	require.EqualValues(t, 255, c.A)
}
