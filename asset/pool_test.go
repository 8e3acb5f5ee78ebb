package asset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/worldkit/scene"
)

func TestPoolDeduplicatesByFingerprint(t *testing.T) {
	p := NewMaterialPool()

	a := scene.NewMaterial("a", 0xff0000)
	b := scene.NewMaterial("b", 0xff0000) // same visuals, different name

	pooled := p.GetOrCreateStandard(a)
	require.Same(t, a, pooled)
	require.True(t, a.Cached)

	got := p.GetOrCreateStandard(b)
	require.Same(t, a, got, "visually identical material reuses the pooled one")
	require.True(t, b.Disposed(), "superseded material is released")
	require.Equal(t, 1, p.Len())
}

func TestPoolDistinguishesVisualFields(t *testing.T) {
	base := func() *scene.Material { return scene.NewMaterial("m", 0x336699) }

	opaque := base()
	transparent := base()
	transparent.Transparent = true
	transparent.Opacity = 0.5

	doubleSided := base()
	doubleSided.Side = scene.DoubleSide

	textured := base()
	textured.Map = &scene.Texture{Key: "brick.png"}

	fps := map[uint64]string{}
	for _, m := range []*scene.Material{opaque, transparent, doubleSided, textured} {
		fp := Fingerprint(m)
		if prev, dup := fps[fp]; dup {
			t.Fatalf("Fingerprint collision between %s variants", prev)
		}
		fps[fp] = m.Name
	}
}

func TestPoolIdempotentForPooledMaterial(t *testing.T) {
	p := NewMaterialPool()
	m := scene.NewMaterial("m", 0x00ff00)

	first := p.GetOrCreateStandard(m)
	second := p.GetOrCreateStandard(first)

	require.Same(t, first, second)
	require.False(t, first.Disposed(), "re-pooling the pooled material must not release it")
}

func TestPoolDisposeReleasesAll(t *testing.T) {
	p := NewMaterialPool()
	a := p.GetOrCreateStandard(scene.NewMaterial("a", 1))
	b := p.GetOrCreateStandard(scene.NewMaterial("b", 2))

	p.Dispose()
	p.Dispose()

	require.True(t, a.Disposed())
	require.True(t, b.Disposed())
}
