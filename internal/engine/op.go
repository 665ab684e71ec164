package engine

// Op identifies the operation that produced a Value.
type Op uint8

// Operation tags.
const (
	OpNone Op = iota // Leaf
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpTanh
	OpPow
	OpExp
	OpReLU
)

var opNames = [...]string{
	OpNone: "",
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpNeg:  "neg",
	OpTanh: "tanh",
	OpPow:  "pow",
	OpExp:  "exp",
	OpReLU: "relu",
}

// String returns the symbol of the operation, or "" for leaves.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}
