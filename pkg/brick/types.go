package brick

import "fmt"

// Category distinguishes the brick archetype families. The category
// fixes the vertical extent rule of the brick body (excluding studs).
type Category string

const (
	// CategoryRegular is a full-height brick: body spans (0, h).
	CategoryRegular Category = "regular"
	// CategoryPlate is a third-height brick with studs: body spans (0, h/3).
	CategoryPlate Category = "plate"
	// CategoryTile is a third-height brick without cavity ribs on top.
	CategoryTile Category = "tile"
	// CategoryBasePlate is a ground plate: body spans (-hTop, 0) so its
	// studs sit exactly at lattice level zero.
	CategoryBasePlate Category = "base-plate"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryRegular, CategoryPlate, CategoryTile, CategoryBasePlate:
		return true
	}
	return false
}

// Archetype describes one brick shape in the catalog. NX and NZ are the
// stud counts along the two lattice axes.
type Archetype struct {
	Category Category `json:"category"`
	NX       int      `json:"nx"`
	NZ       int      `json:"nz"`
}

func (a Archetype) String() string {
	return fmt.Sprintf("%s%dx%d", a.Category, a.NX, a.NZ)
}

// Vec3 is a position in model units (mm).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Placement puts one archetype instance into the assembly. Identity is
// the placement id; several placements may reference the same archetype.
type Placement struct {
	ArchetypeID int    `json:"archetype_id"`
	Origin      Vec3   `json:"origin"`
	Tag         string `json:"tag,omitempty"`
}

// Assembly is the boundary input contract: the archetype catalog, the
// placements, and the geometry constants. MeshSize and Friction are
// carried for the external solver tooling; the core ignores them.
type Assembly struct {
	Name       string            `json:"name,omitempty"`
	Geometry   Geometry          `json:"geometry"`
	Archetypes map[int]Archetype `json:"archetypes"`
	Placements map[int]Placement `json:"placements"`
	MeshSize   float64           `json:"mesh_size,omitempty"`
	Friction   float64           `json:"friction,omitempty"`
}

// NewAssembly returns an empty assembly with default geometry.
func NewAssembly(name string) *Assembly {
	return &Assembly{
		Name:       name,
		Geometry:   DefaultGeometry(),
		Archetypes: make(map[int]Archetype),
		Placements: make(map[int]Placement),
	}
}

// GridCoord is an integer stud/cavity position on the lattice.
type GridCoord struct {
	IX int `json:"ix"`
	IZ int `json:"iz"`
}

// Sub returns c - o componentwise.
func (c GridCoord) Sub(o GridCoord) GridCoord {
	return GridCoord{IX: c.IX - o.IX, IZ: c.IZ - o.IZ}
}

// Extent is the y-range spanned by a brick body, studs excluded.
type Extent struct {
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}
