// Package render defines the operations the conversation core performs on
// the presentation layer. The core never touches a UI toolkit directly; it
// emits Op values into a Sink and the sink decides how to draw them.
package render

import "strings"

// BubbleState is the lifecycle state shown next to a status label.
type BubbleState string

const (
	StateRunning  BubbleState = "running"
	StateComplete BubbleState = "complete"
)

// Op is a closed union of render operations. Sinks switch on the concrete
// type; adding a new op is a breaking change for sinks, which is intended.
type Op interface {
	op()
}

// ShowBubble adds a finished chat bubble for a role. Exactly one of Text or
// ImageSrc is set; ImageSrc is a URL or data URI.
type ShowBubble struct {
	Role     string
	Text     string
	ImageSrc string
}

// SetText replaces the in-progress assistant text with the full cumulative
// value for the current turn.
type SetText struct {
	Text string
}

// SetCode replaces the in-progress code display with the full cumulative
// value for the current turn.
type SetCode struct {
	Code string
}

// SetImage replaces the in-progress image preview with the given bytes.
type SetImage struct {
	Data []byte
}

// SetStatus updates the turn status indicator.
type SetStatus struct {
	Label string
	State BubbleState
}

func (ShowBubble) op() {}
func (SetText) op()    {}
func (SetCode) op()    {}
func (SetImage) op()   {}
func (SetStatus) op()  {}

// Sink receives render operations in emission order.
type Sink interface {
	Emit(op Op)
}

// EscapeMath escapes literal dollar signs so a sink that supports math
// markup does not treat them as the start of an expression.
func EscapeMath(s string) string {
	return strings.ReplaceAll(s, "$", `\$`)
}
