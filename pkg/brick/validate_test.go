package brick

import (
	"strings"
	"testing"
)

func TestValidateCleanAssembly(t *testing.T) {
	asm := NewAssembly("wall")
	asm.Archetypes[1] = Archetype{Category: CategoryRegular, NX: 2, NZ: 2}
	asm.Placements[1] = Placement{ArchetypeID: 1}
	asm.Placements[2] = Placement{ArchetypeID: 1, Origin: Vec3{X: 16}}

	res := Validate(asm)
	if !res.OK() {
		t.Errorf("expected no errors, got %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	asm := NewAssembly("broken")
	asm.Archetypes[1] = Archetype{Category: "arch", NX: 2, NZ: 2}
	asm.Archetypes[2] = Archetype{Category: CategoryRegular, NX: 0, NZ: 2}
	asm.Placements[1] = Placement{ArchetypeID: 9}

	res := Validate(asm)
	if res.OK() {
		t.Fatal("expected errors")
	}
	if len(res.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(res.Errors), res.Errors)
	}
}

func TestValidateSingleRowWarning(t *testing.T) {
	asm := NewAssembly("beam")
	asm.Archetypes[1] = Archetype{Category: CategoryRegular, NX: 4, NZ: 1}

	res := Validate(asm)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(res.Warnings))
	}
	if !strings.Contains(res.Warnings[0].Message, "single stud row") {
		t.Errorf("warning = %q, want single stud row", res.Warnings[0].Message)
	}
}

func TestValidateCoincidentPlacements(t *testing.T) {
	asm := NewAssembly("dup")
	asm.Archetypes[1] = Archetype{Category: CategoryRegular, NX: 2, NZ: 2}
	asm.Placements[1] = Placement{ArchetypeID: 1}
	asm.Placements[2] = Placement{ArchetypeID: 1, Tag: "copy"}

	res := Validate(asm)
	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(res.Warnings), res.Warnings)
	}
	if res.Warnings[0].PartID != 2 {
		t.Errorf("warning part = %d, want 2", res.Warnings[0].PartID)
	}
	if res.Warnings[0].Severity != SeverityWarning {
		t.Errorf("severity = %v, want warning", res.Warnings[0].Severity)
	}
}

func TestFindingError(t *testing.T) {
	f := Finding{PartID: 3, Message: "references unknown archetype 9", Severity: SeverityError}
	got := f.Error()
	if !strings.Contains(got, "part 3") || !strings.Contains(got, "error") {
		t.Errorf("Error() = %q", got)
	}
}
