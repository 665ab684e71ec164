package engine

// Tape is an arena that records the values created during one forward pass.
//
// Values join a tape in two ways: leaves created with Leaf, and results of
// operations whose operands include a value bound to a tape that is
// recording. A result joins the first such tape in operand order; results
// built while no operand's tape records stay unbound.
//
// Recorded values are kept in creation order, which is always a valid
// topological order because operands exist before the values built from them.
//
// Long-lived parameters should be plain New leaves held outside the tape, so
// that Clear only releases the per-step intermediates.
//
// Usage:
//
//	tape := NewTape()
//	tape.StartRecording()
//	x := tape.Leaf(3.0)
//	y := x.Mul(w) // recorded
//	y.Backward()
//	// ... read gradients ...
//	tape.Clear()
type Tape struct {
	values    []*Value // Values created on this tape, oldest first
	recording bool     // New results join the tape only while set
}

// NewTape creates an empty tape. Nothing is appended until StartRecording.
func NewTape() *Tape {
	return &Tape{
		values: make([]*Value, 0, 64), // One small MLP step fits without growing
	}
}

// StartRecording makes new leaves and results bound to t join it.
func (t *Tape) StartRecording() {
	t.recording = true
}

// StopRecording stops appending. Values keep their binding to t.
func (t *Tape) StopRecording() {
	t.recording = false
}

// IsRecording reports whether results of t's values are currently appended.
func (t *Tape) IsRecording() bool {
	return t.recording
}

// Leaf creates a leaf value owned by the tape.
//
// The leaf is recorded only while the tape is recording, but it keeps a
// reference to the tape either way, so values derived from it are recorded
// once recording starts.
func (t *Tape) Leaf(data float64) *Value {
	v := &Value{data: data, tape: t}
	t.record(v)
	return v
}

// Leaves creates one leaf per element of data.
func (t *Tape) Leaves(data []float64) []*Value {
	out := make([]*Value, len(data))
	for i, d := range data {
		out[i] = t.Leaf(d)
	}
	return out
}

// record binds v to t, so results built from v look here first, and appends
// v while t is recording.
func (t *Tape) record(v *Value) {
	v.tape = t
	if t.recording {
		t.values = append(t.values, v)
	}
}

// Len returns the number of recorded values.
func (t *Tape) Len() int {
	return len(t.values)
}

// Values returns the recorded values in creation order.
func (t *Tape) Values() []*Value {
	out := make([]*Value, len(t.values))
	copy(out, t.values)
	return out
}

// ZeroGrad resets the gradient of every recorded value in one pass.
// Constants and parameters off the tape are untouched; see (*Value).ZeroGradAll.
func (t *Tape) ZeroGrad() {
	for _, v := range t.values {
		v.grad = 0
	}
}

// Clear drops all recorded values so they can be garbage collected once the
// caller releases them. Recording state is preserved.
func (t *Tape) Clear() {
	for i := range t.values {
		t.values[i].tape = nil
		t.values[i] = nil
	}
	t.values = t.values[:0]
}
