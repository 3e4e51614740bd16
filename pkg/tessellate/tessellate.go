// Package tessellate evaluates a part recipe into triangle meshes
// using a geometry kernel. The boolean operation DAG is walked
// bottom-up with memoization; the final node yields the part mesh.
// The tessellator is read-only and never mutates the recipe.
package tessellate

import (
	"fmt"

	"github.com/chazu/graphite/pkg/kernel"
	"github.com/chazu/graphite/pkg/recipe"
)

// evaluator memoizes solids per recipe node during a walk.
type evaluator struct {
	r      *recipe.Recipe
	k      kernel.Kernel
	solids map[recipe.NodeID]kernel.Solid
}

// Evaluate builds the final solid for the recipe's root node.
func Evaluate(r *recipe.Recipe, k kernel.Kernel) (kernel.Solid, error) {
	if r == nil {
		return nil, fmt.Errorf("tessellate: nil recipe")
	}
	root, err := r.FinalNode()
	if err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}
	ev := &evaluator{r: r, k: k, solids: make(map[recipe.NodeID]kernel.Solid)}
	return ev.solid(root)
}

// Mesh evaluates the recipe and tessellates the final solid.
func Mesh(r *recipe.Recipe, k kernel.Kernel) (*kernel.Mesh, error) {
	s, err := Evaluate(r, k)
	if err != nil {
		return nil, err
	}
	m, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed: %w", err)
	}
	m.PartName = r.Name
	return m, nil
}

// PrimitiveMesh tessellates a single placed primitive, ignoring the
// boolean operations. Used for per-feature edge extraction.
func PrimitiveMesh(r *recipe.Recipe, k kernel.Kernel, id recipe.NodeID) (*kernel.Mesh, error) {
	p := r.Primitive(id)
	if p == nil {
		return nil, fmt.Errorf("tessellate: no primitive %q", id)
	}
	ev := &evaluator{r: r, k: k, solids: make(map[recipe.NodeID]kernel.Solid)}
	s, err := ev.solid(id)
	if err != nil {
		return nil, err
	}
	m, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for %q: %w", id, err)
	}
	m.PartName = string(id)
	return m, nil
}

// solid resolves a node to a kernel solid, evaluating dependencies
// first. The recipe is validated at load time, so cycles cannot occur
// here; a missing reference is still reported defensively.
func (ev *evaluator) solid(id recipe.NodeID) (kernel.Solid, error) {
	if s, ok := ev.solids[id]; ok {
		return s, nil
	}

	if p := ev.r.Primitive(id); p != nil {
		s, err := ev.primitive(p)
		if err != nil {
			return nil, err
		}
		ev.solids[id] = s
		return s, nil
	}

	op := ev.r.Operation(id)
	if op == nil {
		return nil, fmt.Errorf("tessellate: node %q does not exist", id)
	}

	target, err := ev.solid(op.Target)
	if err != nil {
		return nil, err
	}
	tool, err := ev.solid(op.Tool)
	if err != nil {
		return nil, err
	}

	var s kernel.Solid
	switch op.Op {
	case recipe.OpUnion:
		s = ev.k.Union(target, tool)
	case recipe.OpSubtract:
		s = ev.k.Difference(target, tool)
	case recipe.OpIntersect:
		s = ev.k.Intersection(target, tool)
	default:
		return nil, fmt.Errorf("tessellate: operation %q has unknown op %v", id, op.Op)
	}

	ev.solids[id] = s
	return s, nil
}

// primitive creates and places the solid for a primitive node.
func (ev *evaluator) primitive(p *recipe.Primitive) (kernel.Solid, error) {
	var s kernel.Solid

	switch d := p.Params.(type) {
	case recipe.BoxParams:
		s = ev.k.Box(d.Size.X, d.Size.Y, d.Size.Z)
	case recipe.CylinderParams:
		s = ev.k.Cylinder(d.Height, d.Diameter/2, int(d.Axis))
	case recipe.SphereParams:
		s = ev.k.Sphere(d.Diameter / 2)
	case recipe.ConeParams:
		s = ev.k.Cone(d.Height, d.BottomDiameter/2, d.TopDiameter/2, int(d.Axis))
	case recipe.TorusParams:
		s = ev.k.Torus(d.MajorDiameter/2, d.TubeDiameter/2)
	default:
		return nil, fmt.Errorf("tessellate: primitive %q has unsupported params %T", p.ID, p.Params)
	}

	// Apply scale, then rotation, then translation.
	if t := p.Transform; t != nil {
		if sc := t.EffectiveScale(); sc.X != 1 || sc.Y != 1 || sc.Z != 1 {
			s = ev.k.Scale(s, sc.X, sc.Y, sc.Z)
		}
		if rot := t.Rotate; rot.X != 0 || rot.Y != 0 || rot.Z != 0 {
			s = ev.k.Rotate(s, rot.X, rot.Y, rot.Z)
		}
		if tr := t.Translate; tr.X != 0 || tr.Y != 0 || tr.Z != 0 {
			s = ev.k.Translate(s, tr.X, tr.Y, tr.Z)
		}
	}

	return s, nil
}
