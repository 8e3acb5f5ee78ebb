package scene

// Mesh pairs geometry with its per-submesh materials
// Materials[i] covers submesh i; a single-material mesh has one entry
type Mesh struct {
	Geometry  *Geometry
	Materials []*Material
}

// Geometry is a placeholder for GPU vertex data; the logic layer only
// needs its bounds and its disposal state. Cached marks loader ownership:
// clones share template geometry, so instance disposal skips cached
// geometry and only the loader tears it down.
type Geometry struct {
	Bounds   Box
	Cached   bool
	disposed bool
}

// NewGeometry creates geometry with the given local bounds
func NewGeometry(bounds Box) *Geometry {
	return &Geometry{Bounds: bounds}
}

// Dispose releases the geometry. Idempotent.
func (g *Geometry) Dispose() { g.disposed = true }

// Disposed reports release state, used by tests to verify teardown
func (g *Geometry) Disposed() bool { return g.disposed }

// Side selects which faces a material renders
type Side uint8

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Texture is a shared image resource identified by its source key.
// Textures are owned by the loader cache, never by materials.
type Texture struct {
	Key      string
	Width    int
	Height   int
	disposed bool
}

// Dispose releases the texture. Idempotent.
func (t *Texture) Dispose() { t.disposed = true }

// Disposed reports release state
func (t *Texture) Disposed() bool { return t.disposed }

// Material holds the visually-defining surface properties. Color is packed
// 0xRRGGBB. Cached marks pool ownership: entity/object disposal skips
// cached materials, only the pool tears them down.
type Material struct {
	Name string

	Color     uint32
	Map       *Texture
	NormalMap *Texture

	Transparent bool
	Opacity     float64
	Side        Side
	Wireframe   bool

	Cached   bool
	disposed bool
}

// NewMaterial creates an opaque front-sided material
func NewMaterial(name string, color uint32) *Material {
	return &Material{Name: name, Color: color, Opacity: 1}
}

// Clone copies the material, sharing texture pointers and clearing the
// Cached flag: a clone is caller-owned until pooled again
func (m *Material) Clone() *Material {
	c := *m
	c.Cached = false
	c.disposed = false
	return &c
}

// Dispose releases the material but not its textures (shared resources,
// released by the loader). Idempotent.
func (m *Material) Dispose() { m.disposed = true }

// Disposed reports release state
func (m *Material) Disposed() bool { return m.disposed }
