package engine

import (
	"fmt"
	"io"
)

// ZeroGradAll resets the gradient of v and of every value reachable from it.
//
// Unlike Tape.ZeroGrad, this also reaches values that were never recorded,
// such as constants lifted by the scalar operations.
func (v *Value) ZeroGradAll() {
	for _, node := range TopologicalOrder(v) {
		node.grad = 0
	}
}

// ZeroGradGraph resets every gradient in the graph rooted at root.
func ZeroGradGraph(root *Value) {
	root.ZeroGradAll()
}

// Dump writes one line per value reachable from v, operands before the
// values built from them, ending with v itself. Shared values appear once.
//
// Each line is the node's index in that order followed by its String form
// and, for results, the indices of its operands:
//
//	0: Value(data=2.0000, grad=0.0000)
//	1: Value(data=-3.0000, grad=0.0000)
//	2: Value(data=-6.0000, op=*, operands=[2.0000, -3.0000], grad=0.0000) <- [0 1]
func (v *Value) Dump(w io.Writer) error {
	order := TopologicalOrder(v)
	index := make(map[*Value]int, len(order))
	for i, node := range order {
		index[node] = i
	}

	for i, node := range order {
		if _, err := fmt.Fprintf(w, "%d: %s", i, node); err != nil {
			return fmt.Errorf("dump value %d: %w", i, err)
		}
		if !node.IsLeaf() {
			refs := make([]int, len(node.operands))
			for j, operand := range node.operands {
				refs[j] = index[operand]
			}
			if _, err := fmt.Fprintf(w, " <- %v", refs); err != nil {
				return fmt.Errorf("dump value %d: %w", i, err)
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("dump value %d: %w", i, err)
		}
	}
	return nil
}
