package render

// Recorder is a Sink that records every op in order. Useful in tests and for
// dumping raw history.
type Recorder struct {
	Ops []Op
}

// Emit appends the op to the recorded sequence.
func (r *Recorder) Emit(op Op) {
	r.Ops = append(r.Ops, op)
}

// LastText returns the text of the most recent SetText op, or "".
func (r *Recorder) LastText() string {
	for i := len(r.Ops) - 1; i >= 0; i-- {
		if op, ok := r.Ops[i].(SetText); ok {
			return op.Text
		}
	}
	return ""
}

// LastImage returns the data of the most recent SetImage op, or nil.
func (r *Recorder) LastImage() []byte {
	for i := len(r.Ops) - 1; i >= 0; i-- {
		if op, ok := r.Ops[i].(SetImage); ok {
			return op.Data
		}
	}
	return nil
}

// LastStatus returns the most recent SetStatus op and whether one exists.
func (r *Recorder) LastStatus() (SetStatus, bool) {
	for i := len(r.Ops) - 1; i >= 0; i-- {
		if op, ok := r.Ops[i].(SetStatus); ok {
			return op, true
		}
	}
	return SetStatus{}, false
}

// Bubbles returns only the ShowBubble ops, in order.
func (r *Recorder) Bubbles() []ShowBubble {
	var bubbles []ShowBubble
	for _, op := range r.Ops {
		if b, ok := op.(ShowBubble); ok {
			bubbles = append(bubbles, b)
		}
	}
	return bubbles
}

// Verify Recorder implements Sink
var _ Sink = (*Recorder)(nil)
