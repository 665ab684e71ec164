package engine

import (
	"fmt"
	"strings"
)

// String returns a one-line debugging dump of v: its data, the producing
// operation, the data of its immediate operands and its gradient.
//
// Example: Value(data=0.7071, op=tanh, operands=[0.8814], grad=1.0000).
func (v *Value) String() string {
	if v == nil {
		return "Value(nil)"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Value(data=%.4f", v.data)
	if !v.IsLeaf() {
		fmt.Fprintf(&sb, ", op=%s, operands=[", v.op)
		for i, operand := range v.operands {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%.4f", operand.data)
		}
		sb.WriteString("]")
	}
	fmt.Fprintf(&sb, ", grad=%.4f)", v.grad)
	return sb.String()
}
