// Package clone implements the deep-copy primitive C5's elaborator uses to
// turn a module/interface/program *definition* into a fresh per-instance
// subtree (§4.5, §9.3 "clone, don't share"): own-edges recurse and get
// brand-new nodes, ref-edges are rewritten only when their target was
// itself reached via an own-edge in the same clone, and anything a
// ref-edge points at outside the cloned subtree (a shared typespec, a
// package-scope declaration) is left pointing at the original. Grounded on
// internal/wire's node-payload copy (internal/wire.CopyScalars) plus the
// teacher's internal/snapshot restore, which is structurally the same
// "allocate fresh, then copy/rewrite" shape this package applies to a
// single subtree instead of a whole arena.
package clone

import (
	"uhdm/internal/ir"
	"uhdm/internal/wire"
)

// Clone deep-copies n — and, recursively, everything reachable from n via
// own-edges — into new nodes in the same serializer, returning the clone
// of n. newParent becomes the clone's parent (ir.Node.SetParent); pass nil
// for a detached clone. Clone is null-tolerant: cloning a nil node returns
// nil, nil.
func Clone(s *ir.Serializer, n ir.Node, newParent ir.Node) (ir.Node, error) {
	if n == nil {
		return nil, nil
	}
	c := &cloner{s: s, mapping: make(map[ir.NodeID]ir.NodeID)}
	root := c.clone(n)
	if c.err != nil {
		return nil, c.err
	}
	c.rewriteRefs()
	if c.err != nil {
		return nil, c.err
	}
	root.SetParent(newParent)
	return root, nil
}

type cloner struct {
	s       *ir.Serializer
	mapping map[ir.NodeID]ir.NodeID // original id -> clone id, for every node actually cloned
	err     error
}

// clone recursively copies n's own-edge subtree. Ref-edge fields are
// written with the *original* target id as a placeholder; rewriteRefs
// fixes up every placeholder that turned out to name a cloned node once
// the whole subtree is known.
func (c *cloner) clone(n ir.Node) ir.Node {
	if c.err != nil {
		return nil
	}
	if id, ok := c.mapping[n.ID()]; ok {
		return c.s.Get(id)
	}

	dst := c.s.NewByKind(n.Kind())
	c.mapping[n.ID()] = dst.ID()

	if grower, ok := n.(ir.EdgeGrower); ok {
		if dstGrower, ok := dst.(ir.EdgeGrower); ok {
			dstGrower.GrowEdges(grower.GroupLens())
		}
	}
	if err := wire.CopyScalars(dst, n); err != nil {
		c.err = err
		return dst
	}

	srcWalker, srcOK := n.(ir.EdgeWalker)
	dstWalker, dstOK := dst.(ir.EdgeWalker)
	if !srcOK || !dstOK {
		return dst
	}

	var kinds []ir.EdgeKind
	var srcIDs []ir.NodeID
	srcWalker.WalkEdges(func(kind ir.EdgeKind, id *ir.NodeID) {
		kinds = append(kinds, kind)
		srcIDs = append(srcIDs, *id)
	})

	idx := 0
	dstWalker.WalkEdges(func(_ ir.EdgeKind, ptr *ir.NodeID) {
		kind, origID := kinds[idx], srcIDs[idx]
		idx++
		if c.err != nil {
			return
		}
		if kind == ir.EdgeOwn && origID != 0 {
			child := c.s.Get(origID)
			newChild := c.clone(child)
			if newChild != nil {
				newChild.SetParent(dst)
				*ptr = newChild.ID()
			}
			return
		}
		// Ref edge (or a nil own edge): placeholder, resolved by
		// rewriteRefs once every own-edge node in the subtree exists.
		*ptr = origID
	})
	return dst
}

// rewriteRefs walks every node this Clone call created and redirects any
// ref-edge whose placeholder id names a node that was itself cloned —
// refs to anything outside the subtree are left untouched.
func (c *cloner) rewriteRefs() {
	for _, newID := range c.mapping {
		n := c.s.Get(newID)
		walker, ok := n.(ir.EdgeWalker)
		if !ok {
			continue
		}
		walker.WalkEdges(func(kind ir.EdgeKind, ptr *ir.NodeID) {
			if kind != ir.EdgeRef {
				return
			}
			if newTarget, ok := c.mapping[*ptr]; ok {
				*ptr = newTarget
			}
		})
	}
}
