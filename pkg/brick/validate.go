package brick

import (
	"fmt"
	"sort"
)

// Severity indicates whether a validation finding blocks placement or is
// merely advisory.
type Severity int

const (
	SeverityError   Severity = iota // blocks placement
	SeverityWarning                 // advisory
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding describes a single validation result tied to a part or
// archetype id.
type Finding struct {
	PartID   int // zero if the finding is archetype- or assembly-level
	Message  string
	Severity Severity
}

func (f Finding) Error() string {
	if f.PartID == 0 {
		return fmt.Sprintf("[%s] %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("[%s] part %d: %s", f.Severity, f.PartID, f.Message)
}

// ValidationResult bundles blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []Finding
	Warnings []Finding
}

// OK reports whether the assembly has no blocking errors.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Validate checks the assembly configuration without deriving anything.
// Unlike PlaceAll, it collects every finding instead of failing on the
// first. Degenerate single-row footprints are reported as warnings: they
// are a documented branch with no interior rib midpoints, not an error.
func Validate(asm *Assembly) ValidationResult {
	var res ValidationResult

	archIDs := make([]int, 0, len(asm.Archetypes))
	for id := range asm.Archetypes {
		archIDs = append(archIDs, id)
	}
	sort.Ints(archIDs)

	for _, id := range archIDs {
		a := asm.Archetypes[id]
		if !a.Category.Valid() {
			res.Errors = append(res.Errors, Finding{
				Message:  fmt.Sprintf("archetype %d: unknown category %q", id, a.Category),
				Severity: SeverityError,
			})
		}
		if a.NX < 1 || a.NZ < 1 {
			res.Errors = append(res.Errors, Finding{
				Message:  fmt.Sprintf("archetype %d: footprint %dx%d must be positive", id, a.NX, a.NZ),
				Severity: SeverityError,
			})
		} else if a.NX == 1 || a.NZ == 1 {
			res.Warnings = append(res.Warnings, Finding{
				Message:  fmt.Sprintf("archetype %d: single stud row (%dx%d), no interior rib midpoints in that axis", id, a.NX, a.NZ),
				Severity: SeverityWarning,
			})
		}
	}

	partIDs := make([]int, 0, len(asm.Placements))
	for id := range asm.Placements {
		partIDs = append(partIDs, id)
	}
	sort.Ints(partIDs)

	seen := make(map[Placement]int)
	for _, id := range partIDs {
		pl := asm.Placements[id]
		if _, ok := asm.Archetypes[pl.ArchetypeID]; !ok {
			res.Errors = append(res.Errors, Finding{
				PartID:   id,
				Message:  fmt.Sprintf("references unknown archetype %d", pl.ArchetypeID),
				Severity: SeverityError,
			})
		}
		key := pl
		key.Tag = ""
		if prev, ok := seen[key]; ok {
			res.Warnings = append(res.Warnings, Finding{
				PartID:   id,
				Message:  fmt.Sprintf("coincides with part %d (same archetype and origin)", prev),
				Severity: SeverityWarning,
			})
		} else {
			seen[key] = id
		}
	}
	return res
}
