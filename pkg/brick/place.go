package brick

import (
	"fmt"
	"math"
	"sort"
)

// PlacedPart is the derived lattice view of one placement: its absolute
// stud coordinates and the vertical extent of its body. It is immutable
// once produced; later stages only read it.
type PlacedPart struct {
	ID        int         `json:"id"`
	Archetype Archetype   `json:"archetype"`
	Origin    Vec3        `json:"origin"`
	Tag       string      `json:"tag,omitempty"`
	Offset    GridCoord   `json:"offset"` // grid-quantized origin
	Studs     []GridCoord `json:"studs"`
	Extent    Extent      `json:"extent"`
}

// Local translates an absolute lattice coordinate back into the part's
// zero-based local footprint frame.
func (p PlacedPart) Local(c GridCoord) GridCoord {
	return c.Sub(p.Offset)
}

// Footprint returns the zero-based local stud coordinates of an
// archetype, x-major: (0,0), (0,1), ..., (nx-1, nz-1).
func Footprint(a Archetype) []GridCoord {
	coords := make([]GridCoord, 0, a.NX*a.NZ)
	for ix := 0; ix < a.NX; ix++ {
		for iz := 0; iz < a.NZ; iz++ {
			coords = append(coords, GridCoord{IX: ix, IZ: iz})
		}
	}
	return coords
}

// Place derives the lattice view of a single placement.
func Place(id int, p Placement, a Archetype, g Geometry) (PlacedPart, error) {
	if !a.Category.Valid() {
		return PlacedPart{}, fmt.Errorf("part %d: %w: %q", id, ErrUnknownCategory, a.Category)
	}
	if a.NX < 1 || a.NZ < 1 {
		return PlacedPart{}, fmt.Errorf("part %d: %w: %dx%d", id, ErrBadFootprint, a.NX, a.NZ)
	}

	offset := GridCoord{
		IX: int(math.Round(p.Origin.X / g.Pitch)),
		IZ: int(math.Round(p.Origin.Z / g.Pitch)),
	}
	studs := Footprint(a)
	for i := range studs {
		studs[i].IX += offset.IX
		studs[i].IZ += offset.IZ
	}

	body := g.BodyHeight(a.Category)
	return PlacedPart{
		ID:        id,
		Archetype: a,
		Origin:    p.Origin,
		Tag:       p.Tag,
		Offset:    offset,
		Studs:     studs,
		Extent:    Extent{YMin: body.YMin + p.Origin.Y, YMax: body.YMax + p.Origin.Y},
	}, nil
}

// PlaceAll derives the lattice view for every placement in the assembly,
// sorted by ascending part id so downstream aggregation is reproducible.
// It fails on the first configuration error.
func PlaceAll(asm *Assembly) ([]PlacedPart, error) {
	ids := make([]int, 0, len(asm.Placements))
	for id := range asm.Placements {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]PlacedPart, 0, len(ids))
	for _, id := range ids {
		pl := asm.Placements[id]
		a, ok := asm.Archetypes[pl.ArchetypeID]
		if !ok {
			return nil, fmt.Errorf("part %d: %w: archetype %d", id, ErrUnknownArchetype, pl.ArchetypeID)
		}
		part, err := Place(id, pl, a, asm.Geometry)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}
