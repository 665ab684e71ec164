package engine

// frame is one pending node on the traversal stack.
type frame struct {
	value *Value
	next  int // Index of the next operand to visit
}

// TopologicalOrder returns every value reachable from root through operand
// links, each exactly once, with every value placed after all of its operands.
//
// The traversal is an iterative post-order depth-first search, so deep graphs
// do not grow the goroutine stack. Deduplication is keyed on pointer identity:
// distinct values with equal data are distinct vertices.
//
// Returns nil if root is nil.
func TopologicalOrder(root *Value) []*Value {
	if root == nil {
		return nil
	}

	order := make([]*Value, 0, 16)
	visited := map[*Value]struct{}{root: {}}
	stack := []frame{{value: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.value.operands) {
			operand := top.value.operands[top.next]
			top.next++
			if _, seen := visited[operand]; !seen {
				visited[operand] = struct{}{}
				stack = append(stack, frame{value: operand})
			}
			continue
		}
		order = append(order, top.value)
		stack = stack[:len(stack)-1]
	}

	return order
}
