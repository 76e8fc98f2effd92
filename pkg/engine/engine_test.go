package engine

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if asm == nil {
		t.Fatal("expected non-nil assembly")
	}
	if len(asm.Placements) != 0 {
		t.Errorf("expected empty assembly, got %d placements", len(asm.Placements))
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if asm == nil {
		t.Fatal("expected non-nil assembly")
	}
}

func TestEvaluateValidExpression(t *testing.T) {
	eng := NewEngine()

	// Plain Lisp with no scene builtins leaves the assembly empty.
	asm, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(asm.Placements) != 0 {
		t.Errorf("expected no placements, got %d", len(asm.Placements))
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate("(defbrick \"b\" (brick :nx 2")
	if err != nil {
		t.Fatalf("syntax errors are eval errors, not fatal: %v", err)
	}
	if asm != nil {
		t.Error("expected nil assembly on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
}

func TestEvaluateRuntimeError(t *testing.T) {
	eng := NewEngine()

	asm, evalErrs, err := eng.Evaluate(`(place "nosuch")`)
	if err != nil {
		t.Fatalf("runtime errors are eval errors, not fatal: %v", err)
	}
	if asm != nil {
		t.Error("expected nil assembly on runtime error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	joined := ""
	for _, e := range evalErrs {
		joined += e.Error() + "\n"
	}
	if !strings.Contains(joined, "nosuch") {
		t.Errorf("errors should mention the unknown brick: %s", joined)
	}
}

func TestEvaluateScene(t *testing.T) {
	eng := NewEngine()

	source := `
(scene "tower")
(mesh-size 0.75)
(friction 0.2)
(defbrick "b11" (brick :nx 1 :nz 1))
(place "b11" :at (vec3 0 0 0))
(place "b11" :at (vec3 0 9.6 0) :tag "load")
`
	asm, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if asm.Name != "tower" {
		t.Errorf("scene name = %q, want tower", asm.Name)
	}
	if asm.MeshSize != 0.75 {
		t.Errorf("mesh size = %f, want 0.75", asm.MeshSize)
	}
	if asm.Friction != 0.2 {
		t.Errorf("friction = %f, want 0.2", asm.Friction)
	}
	if len(asm.Archetypes) != 1 {
		t.Fatalf("got %d archetypes, want 1", len(asm.Archetypes))
	}
	if len(asm.Placements) != 2 {
		t.Fatalf("got %d placements, want 2", len(asm.Placements))
	}
	second := asm.Placements[2]
	if second.Origin.Y != 9.6 {
		t.Errorf("placement 2 origin.Y = %f, want 9.6", second.Origin.Y)
	}
	if second.Tag != "load" {
		t.Errorf("placement 2 tag = %q, want load", second.Tag)
	}
}

func TestEvaluateDeterministicIDs(t *testing.T) {
	eng := NewEngine()
	source := `
(defbrick "a" (brick :nx 2 :nz 1))
(defbrick "b" (plate :nx 1 :nz 1))
(place "a")
(place "b")
(place "a")
`
	first, _, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	second, _, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}

	for id, p := range first.Placements {
		if second.Placements[id] != p {
			t.Errorf("placement %d differs between runs: %+v vs %+v", id, p, second.Placements[id])
		}
	}
	if first.Placements[1].ArchetypeID != 1 || first.Placements[2].ArchetypeID != 2 {
		t.Errorf("archetype ids not sequential: %+v", first.Placements)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	eng := NewEngine()
	source := `(defbrick "b" (brick :nx 1 :nz 1)) (place "b")`

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			asm, evalErrs, err := eng.Evaluate(source)
			// A result may be superseded by a concurrent call; both
			// outcomes are acceptable, a wrong assembly is not.
			if err != nil {
				if !strings.Contains(err.Error(), "superseded") {
					t.Errorf("unexpected fatal error: %v", err)
				}
				return
			}
			if len(evalErrs) > 0 {
				t.Errorf("unexpected eval errors: %v", evalErrs)
				return
			}
			if len(asm.Placements) != 1 {
				t.Errorf("got %d placements, want 1", len(asm.Placements))
			}
		}()
	}
	wg.Wait()
}

func TestEvalTimeoutValue(t *testing.T) {
	if EvalTimeout < time.Second {
		t.Errorf("EvalTimeout = %v, suspiciously short", EvalTimeout)
	}
}

func TestEvalErrorFormat(t *testing.T) {
	e := EvalError{Line: 3, Message: "boom"}
	if got := e.Error(); got != "line 3: boom" {
		t.Errorf("Error() = %q", got)
	}
	e = EvalError{Message: "boom"}
	if got := e.Error(); got != "boom" {
		t.Errorf("Error() without line = %q", got)
	}
}
