// Package solid builds brick solids through the abstract geometry
// kernel: body, studs, cavity hollowing, interior tubes, rib walls, and
// the widened stud seats requested by the topology stage. One solid is
// produced per archetype; the builder never reads or mutates the
// assembly itself.
package solid

import (
	"fmt"

	"github.com/bricklab/studwork/pkg/brick"
	"github.com/bricklab/studwork/pkg/kernel"
)

// Builder constructs brick solids with a geometry kernel.
type Builder struct {
	Kernel kernel.Kernel
	Geom   brick.Geometry
}

// NewBuilder returns a builder using the given kernel and geometry.
func NewBuilder(k kernel.Kernel, g brick.Geometry) *Builder {
	return &Builder{Kernel: k, Geom: g}
}

// Brick builds the solid for one archetype. widen lists the local
// cavity positions whose stud seats are pre-enlarged to the analytic
// stud radius so the seated stud does not start in interference.
func (b *Builder) Brick(a brick.Archetype, widen []brick.GridCoord) (kernel.Solid, error) {
	if !a.Category.Valid() {
		return nil, fmt.Errorf("solid: %w: %q", brick.ErrUnknownCategory, a.Category)
	}
	if a.NX < 1 || a.NZ < 1 {
		return nil, fmt.Errorf("solid: %w: %dx%d", brick.ErrBadFootprint, a.NX, a.NZ)
	}

	g := b.Geom
	k := b.Kernel

	outMinX := -g.Pitch/2 + g.Gap
	outMinZ := outMinX
	sizeX := float64(a.NX)*g.Pitch - 2*g.Gap
	sizeZ := float64(a.NZ)*g.Pitch - 2*g.Gap
	bodyH := bodyHeight(g, a.Category)

	s := k.Translate(k.Box(sizeX, bodyH, sizeZ), outMinX, 0, outMinZ)

	// Studs on top; tiles have a smooth roof.
	if a.Category != brick.CategoryTile {
		for _, c := range brick.Footprint(a) {
			stud := k.Cylinder(g.StudHeight, g.StudRadius())
			s = k.Union(s, k.Translate(stud, g.Pitch*float64(c.IX), bodyH, g.Pitch*float64(c.IZ)))
		}
	}

	// Base plates have no cavity; everything below is underside work.
	if a.Category == brick.CategoryBasePlate {
		return s, nil
	}

	cavH := bodyH - g.CapHeight
	innerX := sizeX - 2*g.Wall
	innerZ := sizeZ - 2*g.Wall
	if cavH <= 0 || innerX <= 0 || innerZ <= 0 {
		return s, nil
	}
	cavity := k.Translate(k.Box(innerX, cavH, innerZ), outMinX+g.Wall, 0, outMinZ+g.Wall)
	s = k.Difference(s, cavity)

	s = b.addTubes(s, a, cavH)
	if a.Category == brick.CategoryRegular {
		s = b.addRibs(s, a, cavH, outMinX+g.Wall, outMinZ+g.Wall, innerX, innerZ)
	}

	// Pre-enlarged seats where a neighbor's stud will sit.
	for _, c := range widen {
		seat := k.Cylinder(g.StudHeight, g.StudRadius())
		s = k.Difference(s, k.Translate(seat, g.Pitch*float64(c.IX), 0, g.Pitch*float64(c.IZ)))
	}
	return s, nil
}

// Mesh builds the archetype solid and tessellates it.
func (b *Builder) Mesh(a brick.Archetype, widen []brick.GridCoord) (*kernel.Mesh, error) {
	s, err := b.Brick(a, widen)
	if err != nil {
		return nil, err
	}
	m, err := b.Kernel.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("solid: tessellate %s: %w", a, err)
	}
	m.Name = a.String()
	return m, nil
}

// addTubes places the interior cavity tubes at the footprint midpoints:
// solid small pins for single-row bricks, hollow big tubes otherwise.
// A 1x1 footprint has no midpoints and gets no tubes.
func (b *Builder) addTubes(s kernel.Solid, a brick.Archetype, cavH float64) kernel.Solid {
	g := b.Geom
	k := b.Kernel
	xMids, zMids := brick.MidGrid(a, g.Pitch)

	switch {
	case len(xMids) == 0 && len(zMids) == 0:
		return s
	case len(zMids) == 0: // nx1
		for _, x := range xMids {
			s = k.Union(s, k.Translate(k.Cylinder(cavH, g.SmallTube.Radius), x, 0, 0))
		}
	case len(xMids) == 0: // 1xn
		for _, z := range zMids {
			s = k.Union(s, k.Translate(k.Cylinder(cavH, g.SmallTube.Radius), 0, 0, z))
		}
	default:
		for _, x := range xMids {
			for _, z := range zMids {
				outer := k.Cylinder(cavH, g.BigTube.Radius)
				inner := k.Cylinder(cavH, g.BigTube.Radius-g.BigTube.Thickness)
				s = k.Union(s, k.Translate(k.Difference(outer, inner), x, 0, z))
			}
		}
	}
	return s
}

// addRibs places the thin rib walls bracing the cavity tubes. Ribs only
// exist for an even stud count in the crossed axis, at every other
// midpoint, and hang from the cavity roof down to the rib height.
func (b *Builder) addRibs(s kernel.Solid, a brick.Archetype, cavH, innerMinX, innerMinZ, innerX, innerZ float64) kernel.Solid {
	g := b.Geom
	k := b.Kernel

	tube := g.BigTube
	if a.NX == 1 || a.NZ == 1 {
		tube = g.SmallTube
	}
	if tube.RibThickness == 0 {
		return s
	}
	ribH := tube.RibHeight
	if ribH > cavH {
		ribH = cavH
	}
	yMin := cavH - ribH

	xMids, zMids := brick.MidGrid(a, g.Pitch)
	if a.NX%2 == 0 {
		for i, x := range xMids {
			if (i-1)%2 != 0 {
				continue
			}
			rib := k.Box(tube.RibThickness, ribH, innerZ)
			s = k.Union(s, k.Translate(rib, x-tube.RibThickness/2, yMin, innerMinZ))
		}
	}
	if a.NZ%2 == 0 {
		for i, z := range zMids {
			if (i-1)%2 != 0 {
				continue
			}
			rib := k.Box(innerX, ribH, tube.RibThickness)
			s = k.Union(s, k.Translate(rib, innerMinX, yMin, z-tube.RibThickness/2))
		}
	}
	return s
}

// bodyHeight is the solid body height in the part-local frame, always
// measured up from y=0.
func bodyHeight(g brick.Geometry, c brick.Category) float64 {
	switch c {
	case brick.CategoryRegular:
		return g.Height
	case brick.CategoryBasePlate:
		return g.CapHeight
	default:
		return g.Height / 3
	}
}
