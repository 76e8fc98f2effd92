// Package brick defines the assembly data model for studwork: brick
// archetypes, part placements on the stud lattice, and the geometry
// constants shared by every downstream stage. It also derives the
// per-part stud coordinates and vertical extents that the topology
// classifier consumes.
package brick
