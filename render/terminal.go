// Terminal sink for the CLI.
//
// Information Hiding:
// - Incremental redraw strategy hidden (deltas are derived from cumulative
//   SetText/SetCode values)
// - Output formatting hidden
package render

import (
	"fmt"
	"io"
)

// Terminal renders ops as plain text on a writer. Cumulative SetText and
// SetCode values are diffed against what was already printed so streaming
// turns appear token by token.
type Terminal struct {
	w          io.Writer
	textShown  int
	codeShown  int
	lastStatus SetStatus
	midStream  bool
}

// NewTerminal creates a terminal sink writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Emit renders a single op.
func (t *Terminal) Emit(op Op) {
	switch v := op.(type) {
	case ShowBubble:
		t.finishStream()
		if v.ImageSrc != "" {
			fmt.Fprintf(t.w, "[%s] <image %s>\n", v.Role, summarizeSrc(v.ImageSrc))
			return
		}
		fmt.Fprintf(t.w, "[%s] %s\n", v.Role, v.Text)
	case SetText:
		if len(v.Text) >= t.textShown {
			fmt.Fprint(t.w, v.Text[t.textShown:])
			t.textShown = len(v.Text)
			t.midStream = true
		}
	case SetCode:
		if len(v.Code) >= t.codeShown {
			fmt.Fprint(t.w, v.Code[t.codeShown:])
			t.codeShown = len(v.Code)
			t.midStream = true
		}
	case SetImage:
		t.finishStream()
		fmt.Fprintf(t.w, "<image preview, %d bytes>\n", len(v.Data))
	case SetStatus:
		if v == t.lastStatus {
			return
		}
		t.lastStatus = v
		t.finishStream()
		if v.Label != "" {
			fmt.Fprintf(t.w, "-- %s\n", v.Label)
		}
	}
}

// Reset prepares the sink for a new turn.
func (t *Terminal) Reset() {
	t.finishStream()
	t.textShown = 0
	t.codeShown = 0
	t.lastStatus = SetStatus{}
}

func (t *Terminal) finishStream() {
	if t.midStream {
		fmt.Fprintln(t.w)
		t.midStream = false
	}
}

func summarizeSrc(src string) string {
	if len(src) > 48 {
		return src[:48] + "..."
	}
	return src
}

// Verify Terminal implements Sink
var _ Sink = (*Terminal)(nil)
