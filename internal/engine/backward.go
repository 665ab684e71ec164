package engine

// Backward computes the gradient of v with respect to every value it depends on.
//
// Algorithm:
//  1. Seed v's gradient with 1 (dv/dv)
//  2. Order the reachable graph topologically
//  3. Walk the order in reverse, applying each backward rule
//
// Reverse topological order guarantees that every consumer of a value has
// propagated into it before the value propagates further, so gradients through
// multiple paths are fully accumulated.
//
// Gradients are accumulated, not assigned: calling Backward twice without
// zeroing adds the second pass on top of the first. On a leaf, Backward only
// seeds the leaf's own gradient. On nil, it does nothing.
func (v *Value) Backward() {
	if v == nil {
		return
	}

	order := TopologicalOrder(v)

	v.grad = 1.0
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		if node.backward != nil {
			node.backward(node)
		}
	}
}

// Backward runs the backward pass rooted at root. See (*Value).Backward.
func Backward(root *Value) {
	root.Backward()
}
