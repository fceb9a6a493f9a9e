// Turn accumulator - the incremental render-state machine for one agent turn.
//
// Information Hiding:
// - Buffer bookkeeping (cumulative text/code, latest image frame) hidden
// - Status tag mapping hidden behind a fixed lookup table
package chat

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/richinex/palaver/render"
	"github.com/richinex/palaver/runtime"
)

// TurnState tracks the lifecycle of a turn.
type TurnState int

const (
	TurnIdle TurnState = iota
	TurnStreaming
	TurnCompleted
	TurnFailed
)

// String returns the string representation of the turn state.
func (s TurnState) String() string {
	switch s {
	case TurnIdle:
		return "idle"
	case TurnStreaming:
		return "streaming"
	case TurnCompleted:
		return "completed"
	case TurnFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// statusByTag is the total mapping from recognized status-transition tags to
// the label and state shown to the user. Tags outside this table leave the
// status unchanged.
var statusByTag = map[runtime.EventType]render.SetStatus{
	runtime.EventWebSearchCompleted:  {Label: "✅ Web search completed.", State: render.StateComplete},
	runtime.EventWebSearchInProgress: {Label: "🔍 Starting web search...", State: render.StateRunning},
	runtime.EventWebSearchSearching:  {Label: "🔍 Web search in progress...", State: render.StateRunning},

	runtime.EventFileSearchCompleted:  {Label: "✅ File search completed.", State: render.StateComplete},
	runtime.EventFileSearchInProgress: {Label: "🗂️ Starting file search...", State: render.StateRunning},
	runtime.EventFileSearchSearching:  {Label: "🗂️ File search in progress...", State: render.StateRunning},

	runtime.EventImageGenGenerating: {Label: "🎨 Drawing image...", State: render.StateRunning},
	runtime.EventImageGenInProgress: {Label: "🎨 Drawing image...", State: render.StateRunning},

	runtime.EventCodeDone:         {Label: "🤖 Ran code.", State: render.StateComplete},
	runtime.EventCodeCompleted:    {Label: "🤖 Ran code.", State: render.StateComplete},
	runtime.EventCodeInProgress:   {Label: "🤖 Running code...", State: render.StateRunning},
	runtime.EventCodeInterpreting: {Label: "🤖 Running code...", State: render.StateRunning},

	runtime.EventMCPCallCompleted:  {Label: "⚒️ Called MCP tool", State: render.StateComplete},
	runtime.EventMCPCallFailed:     {Label: "⚒️ Error calling MCP tool", State: render.StateComplete},
	runtime.EventMCPCallInProgress: {Label: "⚒️ Calling MCP tool...", State: render.StateRunning},

	runtime.EventMCPListCompleted:  {Label: "⚒️ Listed MCP tools", State: render.StateComplete},
	runtime.EventMCPListFailed:     {Label: "⚒️ Error listing MCP tools", State: render.StateComplete},
	runtime.EventMCPListInProgress: {Label: "⚒️ Listing MCP tools", State: render.StateRunning},

	runtime.EventCompleted: {Label: "", State: render.StateComplete},
}

// TurnAccumulator holds the render state for one in-flight turn. Its four
// buffers grow or are replaced independently and never shrink within a turn.
// Construct a fresh accumulator per turn; a new turn must not inherit a prior
// turn's state.
type TurnAccumulator struct {
	sink        render.Sink
	text        strings.Builder
	code        strings.Builder
	latestImage []byte
	status      render.SetStatus
}

// NewTurnAccumulator creates an accumulator emitting into sink.
func NewTurnAccumulator(sink render.Sink) *TurnAccumulator {
	return &TurnAccumulator{sink: sink}
}

// Apply processes one event in arrival order, updating buffers and emitting
// render ops. The sink always receives the full cumulative text/code value,
// not the delta. Unrecognized tags are ignored.
func (a *TurnAccumulator) Apply(ev runtime.Event) error {
	if status, ok := statusByTag[ev.Type]; ok {
		a.status = status
		a.sink.Emit(status)
	}

	switch ev.Type {
	case runtime.EventTextDelta:
		a.text.WriteString(ev.Delta)
		a.sink.Emit(render.SetText{Text: render.EscapeMath(a.text.String())})
	case runtime.EventCodeDelta:
		a.code.WriteString(ev.Delta)
		a.sink.Emit(render.SetCode{Code: a.code.String()})
	case runtime.EventPartialImage:
		data, err := base64.StdEncoding.DecodeString(ev.PartialImageB64)
		if err != nil {
			return fmt.Errorf("failed to decode partial image frame: %w", err)
		}
		// Only the most recent frame is kept; frames replace, not accumulate.
		a.latestImage = data
		a.sink.Emit(render.SetImage{Data: data})
	}

	return nil
}

// Text returns the accumulated assistant text.
func (a *TurnAccumulator) Text() string {
	return a.text.String()
}

// Code returns the accumulated interpreter code.
func (a *TurnAccumulator) Code() string {
	return a.code.String()
}

// LatestImage returns the most recent partial image frame, or nil.
func (a *TurnAccumulator) LatestImage() []byte {
	return a.latestImage
}

// Status returns the most recent status, zero if none was seen.
func (a *TurnAccumulator) Status() render.SetStatus {
	return a.status
}
