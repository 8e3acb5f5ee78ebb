package scene

// LightType mirrors the properties-metadata light variants
type LightType string

const (
	LightPoint    LightType = "point"
	LightSpot     LightType = "spot"
	LightRectArea LightType = "rectArea"
)

// Light is pure data attached to an object; the renderer decides what to
// do with it (here: nothing, terminal output has no lighting)
type Light struct {
	Type       LightType
	Color      uint32
	Intensity  float64
	Distance   float64
	Decay      float64
	Angle      float64
	Penumbra   float64
	CastShadow bool
}

func (l *Light) clone() *Light {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
