package asset

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/worldkit/parameter"
	"github.com/lixenwraith/worldkit/scene"
)

// ThumbnailCache renders assets without precomputed previews once into a
// small square image framed to their bounding box and reuses the result.
type ThumbnailCache struct {
	loader *Loader
	mu     sync.Mutex
	images map[string]*image.RGBA
}

func newThumbnailCache(l *Loader) *ThumbnailCache {
	return &ThumbnailCache{loader: l, images: make(map[string]*image.RGBA)}
}

// Get returns the preview for key, generating it on first use
func (c *ThumbnailCache) Get(key string) (*image.RGBA, error) {
	c.mu.Lock()
	if img, ok := c.images[key]; ok {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	a, err := c.loader.Get(key)
	if err != nil {
		return nil, err
	}
	if a.Object == nil {
		return nil, fmt.Errorf("thumbnail %s: not a model asset", key)
	}
	img := renderFootprint(a.Object, parameter.ThumbnailSize)
	a.Object.Dispose()

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.images[key]; ok {
		return existing, nil
	}
	c.images[key] = img
	return img, nil
}

// renderFootprint paints a top-down orthographic footprint of the model
// into a size x size image. Per pixel the highest part wins, keyed by its
// material base color. Crude next to a real offscreen render, but it is
// the same framing contract: square viewport fitted to the bounds.
func renderFootprint(obj *scene.Object, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	bounds := obj.Bounds()
	if bounds.IsEmpty() {
		return img
	}

	// Square frame around the XZ footprint, centered
	ext := bounds.Size()
	span := ext.X()
	if ext.Z() > span {
		span = ext.Z()
	}
	if span <= 0 {
		span = 1
	}
	center := bounds.Center()

	type part struct {
		box scene.Box
		col uint32
	}
	var parts []part
	obj.Traverse(func(n *scene.Object) {
		if n.Mesh == nil || n.Mesh.Geometry == nil || len(n.Mesh.Materials) == 0 {
			return
		}
		wp := n.WorldPosition()
		gb := n.Mesh.Geometry.Bounds
		parts = append(parts, part{
			box: scene.Box{Min: wp.Add(gb.Min), Max: wp.Add(gb.Max)},
			col: n.Mesh.Materials[0].Color,
		})
	})

	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			wx := center.X() + (float64(px)/float64(size-1)-0.5)*span
			wz := center.Z() + (float64(py)/float64(size-1)-0.5)*span
			top := -1.0
			var topCol uint32
			hit := false
			for _, p := range parts {
				if p.box.ContainsXZ(mgl64.Vec3{wx, 0, wz}) && p.box.Max.Y() > top {
					top = p.box.Max.Y()
					topCol = p.col
					hit = true
				}
			}
			if hit {
				img.SetRGBA(px, py, color.RGBA{
					R: uint8(topCol >> 16),
					G: uint8(topCol >> 8),
					B: uint8(topCol),
					A: 255,
				})
			}
		}
	}
	return img
}

func (c *ThumbnailCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = make(map[string]*image.RGBA)
}
