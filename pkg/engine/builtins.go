package engine

import (
	"fmt"
	"strings"

	"github.com/bricklab/studwork/pkg/brick"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms scene source before it reaches zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     avoiding global symbol registration for every keyword.
//  2. Kebab-case to underscore: base-plate -> base_plate, since zygomys
//     reads a hyphen inside an identifier as subtraction.
//  3. ; line comments become // comments, the form zygomys accepts.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/4)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"' || b[i] == '`':
			// Copy a quoted literal untouched.
			quote := b[i]
			out = append(out, b[i])
			i++
			for i < len(b) && b[i] != quote {
				if quote == '"' && b[i] == '\\' && i+1 < len(b) {
					out = append(out, b[i], b[i+1])
					i += 2
					continue
				}
				out = append(out, b[i])
				i++
			}
			if i < len(b) {
				out = append(out, b[i])
				i++
			}
		case b[i] == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}
		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			// Preserve the := assignment operator.
			out = append(out, b[i], b[i+1])
			i += 2
		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, []byte(kwPrefix)...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j
		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			// Hyphen between identifier characters, not a minus operator.
			out = append(out, '_')
			i++
		default:
			out = append(out, b[i])
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpArchSpec wraps a brick.Archetype before it is registered.
type sexpArchSpec struct {
	a brick.Archetype
}

func (s *sexpArchSpec) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", s.a)
}
func (s *sexpArchSpec) Type() *zygo.RegisteredType { return nil }

// sexpArchRef wraps a registered archetype id so it can be placed.
type sexpArchRef struct {
	id   int
	name string
}

func (s *sexpArchRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(brickref %q)", s.name)
}
func (s *sexpArchRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a brick.Vec3.
type sexpVec3 struct {
	vec brick.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string and returns
// the keyword name without its prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (brick.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return brick.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Scene state
// ---------------------------------------------------------------------------

// sceneState accumulates the assembly while a scene evaluates.
// Archetype and placement ids are sequential in evaluation order, so a
// given scene always produces the same assembly.
type sceneState struct {
	asm      *brick.Assembly
	names    map[string]int // brick name -> archetype id
	nextArch int
	nextPart int
}

func newSceneState() *sceneState {
	return &sceneState{
		asm:      brick.NewAssembly(""),
		names:    make(map[string]int),
		nextArch: 1,
		nextPart: 1,
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// archSpecBuiltin returns the builtin implementing one archetype form,
// e.g. (brick :nx 2 :nz 1).
func archSpecBuiltin(cat brick.Category) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		a := brick.Archetype{Category: cat, NX: 1, NZ: 1}
		if v, ok := pa.kw["nx"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: nx: %w", name, err)
			}
			a.NX = n
		}
		if v, ok := pa.kw["nz"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: nz: %w", name, err)
			}
			a.NZ = n
		}
		if a.NX < 1 || a.NZ < 1 {
			return zygo.SexpNull, fmt.Errorf("%s: footprint %dx%d must be positive", name, a.NX, a.NZ)
		}
		return &sexpArchSpec{a: a}, nil
	}
}

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins populate st.asm during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens become recognizable literals.
func registerBuiltins(env *zygo.Zlisp, st *sceneState) {

	// -----------------------------------------------------------------------
	// (scene "wall1x2")
	// -----------------------------------------------------------------------
	env.AddFunction("scene", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("scene requires a name")
		}
		n, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scene: name: %w", err)
		}
		st.asm.Name = n
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (brick :nx 2 :nz 1), (plate ...), (tile ...), (base-plate ...)
	// -----------------------------------------------------------------------
	env.AddFunction("brick", archSpecBuiltin(brick.CategoryRegular))
	env.AddFunction("plate", archSpecBuiltin(brick.CategoryPlate))
	env.AddFunction("tile", archSpecBuiltin(brick.CategoryTile))
	env.AddFunction("base_plate", archSpecBuiltin(brick.CategoryBasePlate))

	// -----------------------------------------------------------------------
	// (defbrick "b21" (brick :nx 2 :nz 1))
	// -----------------------------------------------------------------------
	env.AddFunction("defbrick", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("defbrick requires a name and an archetype expression")
		}
		brickName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defbrick: name: %w", err)
		}
		if _, exists := st.names[brickName]; exists {
			return zygo.SexpNull, fmt.Errorf("defbrick: %q already defined", brickName)
		}
		spec, ok := args[1].(*sexpArchSpec)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("defbrick: expected archetype expression, got %T", args[1])
		}

		id := st.nextArch
		st.nextArch++
		st.asm.Archetypes[id] = spec.a
		st.names[brickName] = id
		return &sexpArchRef{id: id, name: brickName}, nil
	})

	// -----------------------------------------------------------------------
	// (place "b21" :at (vec3 16 0 0) :tag "load")
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a brick name or reference")
		}

		var archID int
		switch ref := pa.positional[0].(type) {
		case *sexpArchRef:
			archID = ref.id
		case *zygo.SexpStr:
			id, ok := st.names[ref.S]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("place: unknown brick %q", ref.S)
			}
			archID = id
		default:
			return zygo.SexpNull, fmt.Errorf("place: expected brick name or reference, got %T", ref)
		}

		pl := brick.Placement{ArchetypeID: archID}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			pl.Origin = vec
		}
		if v, ok := pa.kw["tag"]; ok {
			tag, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: tag: %w", err)
			}
			pl.Tag = tag
		}

		id := st.nextPart
		st.nextPart++
		st.asm.Placements[id] = pl
		return &zygo.SexpInt{Val: int64(id)}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 components")
		}
		var v brick.Vec3
		for i, dst := range []*float64{&v.X, &v.Y, &v.Z} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: component %d: %w", i, err)
			}
			*dst = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (geometry :pitch 8.0 :stud-height 1.7 :delta-r 0.05)
	// -----------------------------------------------------------------------
	env.AddFunction("geometry", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		fields := map[string]*float64{
			"pitch":       &st.asm.Geometry.Pitch,
			"gap":         &st.asm.Geometry.Gap,
			"wall":        &st.asm.Geometry.Wall,
			"height":      &st.asm.Geometry.Height,
			"stud-height": &st.asm.Geometry.StudHeight,
			"cap-height":  &st.asm.Geometry.CapHeight,
			"delta-r":     &st.asm.Geometry.DeltaR,
		}
		for key, dst := range fields {
			if v, ok := pa.kw[key]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("geometry: %s: %w", key, err)
				}
				*dst = f
			}
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (mesh-size 0.75) and (friction 0.2)
	// -----------------------------------------------------------------------
	env.AddFunction("mesh_size", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("mesh-size requires a value")
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh-size: %w", err)
		}
		st.asm.MeshSize = f
		return zygo.SexpNull, nil
	})
	env.AddFunction("friction", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("friction requires a value")
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("friction: %w", err)
		}
		st.asm.Friction = f
		return zygo.SexpNull, nil
	})
}
