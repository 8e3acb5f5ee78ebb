package asset

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/lixenwraith/worldkit/scene"
)

// MaterialPool deduplicates materials by their visual fingerprint so many
// instances with identical surface properties share one GPU-side material.
// Pooled materials carry the Cached flag; only the pool tears them down.
type MaterialPool struct {
	mu            sync.Mutex
	byFingerprint map[uint64]*scene.Material
	disposed      bool
}

// NewMaterialPool creates an empty pool
func NewMaterialPool() *MaterialPool {
	return &MaterialPool{byFingerprint: make(map[uint64]*scene.Material)}
}

// Fingerprint hashes the visually-defining fields: base color, texture
// slot identities, transparency, opacity and side. Name and wireframe are
// excluded: they don't change texture bindings.
func Fingerprint(m *scene.Material) uint64 {
	h := xxhash.New()
	var buf [8]byte

	binary.LittleEndian.PutUint32(buf[:4], m.Color)
	h.Write(buf[:4])

	writeTex := func(t *scene.Texture) {
		if t != nil {
			h.WriteString(t.Key)
		}
		h.Write([]byte{0}) // slot separator
	}
	writeTex(m.Map)
	writeTex(m.NormalMap)

	flags := byte(m.Side)
	if m.Transparent {
		flags |= 0x10
	}
	h.Write([]byte{flags})

	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(m.Opacity))
	h.Write(buf[:])

	return h.Sum64()
}

// GetOrCreateStandard returns the pooled equivalent of m. The first
// material seen for a fingerprint becomes the pooled one; later callers
// get it back and their own material is released as superseded.
func (p *MaterialPool) GetOrCreateStandard(m *scene.Material) *scene.Material {
	if m == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return m
	}
	fp := Fingerprint(m)
	if pooled, ok := p.byFingerprint[fp]; ok {
		if pooled != m {
			m.Dispose()
		}
		return pooled
	}
	m.Cached = true
	p.byFingerprint[fp] = m
	return m
}

// Len reports the number of distinct pooled materials
func (p *MaterialPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byFingerprint)
}

// Dispose releases every pooled material. Idempotent. This is the only
// disposal path for Cached materials.
func (p *MaterialPool) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return
	}
	p.disposed = true
	for _, m := range p.byFingerprint {
		m.Cached = false
		m.Dispose()
	}
	p.byFingerprint = nil
}
