package brick

// TubeSpec describes the interior cavity tubes of a brick underside and
// the rib walls that brace them.
type TubeSpec struct {
	Radius       float64 `json:"radius"`
	Thickness    float64 `json:"thickness,omitempty"` // wall thickness, hollow tubes only
	RibThickness float64 `json:"rib_thickness"`
	RibHeight    float64 `json:"rib_height"`
}

// Geometry holds the shared brick dimensions in mm. All derived stages
// (placement, topology, solid construction, interference) read from one
// Geometry value so the lattice and the analytic stud cylinders agree.
type Geometry struct {
	Pitch      float64  `json:"pitch"`       // stud spacing b
	Gap        float64  `json:"gap"`         // half clearance between neighboring bricks
	Wall       float64  `json:"wall"`        // outer wall thickness
	Height     float64  `json:"height"`      // body height h of a regular brick
	StudHeight float64  `json:"stud_height"` // stud cylinder height
	CapHeight  float64  `json:"cap_height"`  // roof thickness above the cavity
	SmallTube  TubeSpec `json:"small_tube"`  // solid pins inside 1xn cavities
	BigTube    TubeSpec `json:"big_tube"`    // hollow tubes inside nxm cavities
	DeltaR     float64  `json:"delta_r"`     // stud oversize driving the press fit
}

// DefaultGeometry returns the standard brick dimensions.
func DefaultGeometry() Geometry {
	return Geometry{
		Pitch:      8.0,
		Gap:        0.1,
		Wall:       1.6,
		Height:     9.6,
		StudHeight: 1.7,
		CapHeight:  1.5,
		SmallTube:  TubeSpec{Radius: 1.6, RibThickness: 1.1, RibHeight: 8.1},
		BigTube:    TubeSpec{Radius: 3.3, Thickness: 0.9, RibThickness: 0.9, RibHeight: 6.8},
		DeltaR:     0.05,
	}
}

// StudRadius returns the analytic stud cylinder radius. The oversize
// DeltaR is what makes a seated stud interfere with the cavity wall.
func (g Geometry) StudRadius() float64 {
	return g.Pitch/2 - g.Gap - g.Wall + g.DeltaR
}

// BodyHeight returns the vertical body span for a category, before the
// placement origin shift. Base plates hang below lattice level zero.
func (g Geometry) BodyHeight(c Category) Extent {
	switch c {
	case CategoryRegular:
		return Extent{YMin: 0, YMax: g.Height}
	case CategoryBasePlate:
		return Extent{YMin: -g.CapHeight, YMax: 0}
	default: // plate, tile
		return Extent{YMin: 0, YMax: g.Height / 3}
	}
}
