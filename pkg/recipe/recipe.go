// Package recipe defines the part recipe consumed by the drawing
// engine: a DAG of geometric primitives combined by boolean operations.
// Recipes are produced by an external generator and are read-only here;
// the arena is indexed by node ID and validated once at load time.
package recipe

import "fmt"

// Recipe is the complete definition of a procedurally generated part.
type Recipe struct {
	Name       string       `json:"name"`
	Primitives []*Primitive `json:"primitives"`
	Operations []*Operation `json:"operations"`
	// Root is the node whose evaluation yields the final part. Empty
	// means the last operation, or the sole primitive.
	Root NodeID `json:"root,omitempty"`

	prims map[NodeID]*Primitive
	ops   map[NodeID]*Operation
}

// Index builds the internal ID lookup tables. It must be called after
// constructing or unmarshaling a recipe and before any lookup. Index
// does not validate; call Validate for that.
func (r *Recipe) Index() {
	r.prims = make(map[NodeID]*Primitive, len(r.Primitives))
	for _, p := range r.Primitives {
		r.prims[p.ID] = p
	}
	r.ops = make(map[NodeID]*Operation, len(r.Operations))
	for _, op := range r.Operations {
		r.ops[op.ID] = op
	}
}

// Primitive returns the primitive with the given ID, or nil.
func (r *Recipe) Primitive(id NodeID) *Primitive {
	return r.prims[id]
}

// Operation returns the operation with the given ID, or nil.
func (r *Recipe) Operation(id NodeID) *Operation {
	return r.ops[id]
}

// Has reports whether any node with the given ID exists.
func (r *Recipe) Has(id NodeID) bool {
	_, okP := r.prims[id]
	_, okO := r.ops[id]
	return okP || okO
}

// FinalNode returns the root node ID: the explicit Root if set, else
// the last operation, else the sole primitive.
func (r *Recipe) FinalNode() (NodeID, error) {
	if !r.Root.IsZero() {
		if !r.Has(r.Root) {
			return "", fmt.Errorf("recipe: root %q does not exist", r.Root)
		}
		return r.Root, nil
	}
	if n := len(r.Operations); n > 0 {
		return r.Operations[n-1].ID, nil
	}
	if len(r.Primitives) == 1 {
		return r.Primitives[0].ID, nil
	}
	return "", fmt.Errorf("recipe: no root node (have %d primitives, 0 operations)", len(r.Primitives))
}

// SubtractiveTools returns the set of node IDs used as the tool of a
// subtract operation. Primitives in this set carve material out of the
// part (holes, slots).
func (r *Recipe) SubtractiveTools() map[NodeID]bool {
	tools := make(map[NodeID]bool)
	for _, op := range r.Operations {
		if op.Op == OpSubtract {
			tools[op.Tool] = true
		}
	}
	return tools
}

// Features returns all cylindrical and conical primitives, in
// definition order. These drive radial dimensions and center lines.
func (r *Recipe) Features() []*Primitive {
	var feats []*Primitive
	for _, p := range r.Primitives {
		if _, ok := p.FeatureAxis(); ok {
			feats = append(feats, p)
		}
	}
	return feats
}
