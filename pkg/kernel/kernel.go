// Package kernel defines the narrow contract to the external solid
// modeling and meshing collaborator. The topology and interference core
// never imports it; only the brick solid builder drives it, so the
// backend can be swapped without touching the geometric reasoning.
package kernel

// Solid is an opaque handle to a backend solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid-modeling interface. Bricks are built
// from axis-aligned primitives only, so no rotation is required.
type Kernel interface {
	// Box creates a box with its minimum corner at the origin.
	Box(x, y, z float64) Solid
	// Cylinder creates a y-axis cylinder with its base center at the origin.
	Cylinder(height, radius float64) Solid

	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh tessellates a solid into a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}
