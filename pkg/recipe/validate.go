package recipe

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks
// drawing generation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks generation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID, e.Message)
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Validate runs all structural and parameter checks on the recipe.
// The recipe must be indexed first. Validate is read-only.
func Validate(r *Recipe) ValidationResult {
	var findings []ValidationError
	findings = append(findings, validateIDs(r)...)
	findings = append(findings, validateReferences(r)...)
	findings = append(findings, validateOrder(r)...)
	findings = append(findings, validateDAG(r)...)
	findings = append(findings, validateParams(r)...)

	var result ValidationResult
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, f)
		} else {
			result.Errors = append(result.Errors, f)
		}
	}
	return result
}

// validateIDs checks for empty and duplicate node IDs.
func validateIDs(r *Recipe) []ValidationError {
	var errs []ValidationError
	seen := make(map[NodeID]bool)
	check := func(id NodeID) {
		if id.IsZero() {
			errs = append(errs, ValidationError{
				Message:  "node with empty id",
				Severity: SeverityError,
			})
			return
		}
		if seen[id] {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  "duplicate node id",
				Severity: SeverityError,
			})
		}
		seen[id] = true
	}
	for _, p := range r.Primitives {
		check(p.ID)
	}
	for _, op := range r.Operations {
		check(op.ID)
	}
	return errs
}

// validateReferences checks that every target/tool reference resolves.
func validateReferences(r *Recipe) []ValidationError {
	var errs []ValidationError
	for _, op := range r.Operations {
		if !r.Has(op.Target) {
			errs = append(errs, ValidationError{
				NodeID:   op.ID,
				Message:  fmt.Sprintf("target reference %q does not exist", op.Target),
				Severity: SeverityError,
			})
		}
		if !r.Has(op.Tool) {
			errs = append(errs, ValidationError{
				NodeID:   op.ID,
				Message:  fmt.Sprintf("tool reference %q does not exist", op.Tool),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateOrder checks that operations reference only previously
// defined nodes. Primitives always count as defined.
func validateOrder(r *Recipe) []ValidationError {
	var errs []ValidationError
	defined := make(map[NodeID]bool, len(r.Primitives))
	for _, p := range r.Primitives {
		defined[p.ID] = true
	}
	for _, op := range r.Operations {
		for _, ref := range []NodeID{op.Target, op.Tool} {
			if r.Has(ref) && !defined[ref] {
				errs = append(errs, ValidationError{
					NodeID:   op.ID,
					Message:  fmt.Sprintf("reference %q is defined later", ref),
					Severity: SeverityError,
				})
			}
		}
		defined[op.ID] = true
	}
	return errs
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) =
// fully explored. A gray node reached during traversal is a cycle.
func validateDAG(r *Recipe) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int) // default zero = white
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray

		if op := r.Operation(id); op != nil {
			if visit(op.Target) || visit(op.Tool) {
				return true
			}
		}

		color[id] = black
		return false
	}

	for _, op := range r.Operations {
		if color[op.ID] == white {
			if visit(op.ID) {
				// One cycle error is sufficient; stop early.
				break
			}
		}
	}

	return errs
}

// validateParams checks kind-specific parameter ranges. Degenerate but
// harmless values (sub-millimetre features) are warnings only.
func validateParams(r *Recipe) []ValidationError {
	var errs []ValidationError
	bad := func(id NodeID, msg string) {
		errs = append(errs, ValidationError{NodeID: id, Message: msg, Severity: SeverityError})
	}
	for _, p := range r.Primitives {
		switch d := p.Params.(type) {
		case BoxParams:
			if d.Size.X <= 0 || d.Size.Y <= 0 || d.Size.Z <= 0 {
				bad(p.ID, fmt.Sprintf("box size must be positive, got %+v", d.Size))
			}
		case CylinderParams:
			if d.Diameter <= 0 || d.Height <= 0 {
				bad(p.ID, fmt.Sprintf("cylinder diameter/height must be positive, got %g/%g", d.Diameter, d.Height))
			}
		case SphereParams:
			if d.Diameter <= 0 {
				bad(p.ID, fmt.Sprintf("sphere diameter must be positive, got %g", d.Diameter))
			}
		case ConeParams:
			if d.BottomDiameter <= 0 || d.Height <= 0 {
				bad(p.ID, fmt.Sprintf("cone bottom diameter/height must be positive, got %g/%g", d.BottomDiameter, d.Height))
			}
			if d.TopDiameter < 0 {
				bad(p.ID, fmt.Sprintf("cone top diameter must be non-negative, got %g", d.TopDiameter))
			}
		case TorusParams:
			if d.MajorDiameter <= 0 || d.TubeDiameter <= 0 {
				bad(p.ID, fmt.Sprintf("torus diameters must be positive, got %g/%g", d.MajorDiameter, d.TubeDiameter))
			}
			if d.TubeDiameter >= d.MajorDiameter {
				errs = append(errs, ValidationError{
					NodeID:   p.ID,
					Message:  "torus tube diameter exceeds major diameter; shape is self-intersecting",
					Severity: SeverityWarning,
				})
			}
		case nil:
			bad(p.ID, "primitive has no params")
		}
	}
	return errs
}
