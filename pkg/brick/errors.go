package brick

import "errors"

// Sentinel errors for assembly configuration failures. All of them are
// fatal: the placement stage refuses to produce partial output.
var (
	// ErrUnknownArchetype indicates a placement references an archetype
	// id that is not in the catalog.
	ErrUnknownArchetype = errors.New("brick: placement references unknown archetype")
	// ErrUnknownCategory indicates an archetype carries a category
	// outside the closed set.
	ErrUnknownCategory = errors.New("brick: unknown archetype category")
	// ErrBadFootprint indicates an archetype with non-positive nx or nz.
	ErrBadFootprint = errors.New("brick: archetype footprint counts must be positive")
)
