// Package runtime abstracts the remote tool-using agent runtime.
//
// A runtime executes one conversation turn and emits an ordered,
// single-pass stream of discriminated events while it works. The tag set and
// payload shapes are a fixed external contract; consumers pattern-match
// against the known tags and ignore the rest.
package runtime

// EventType is the discriminating tag of a turn event. Values mirror the
// runtime's wire tags.
type EventType string

const (
	// Payload-bearing events.
	EventTextDelta    EventType = "response.output_text.delta"
	EventCodeDelta    EventType = "response.code_interpreter_call_code.delta"
	EventPartialImage EventType = "response.image_generation_call.partial_image"

	// Status-transition events. These carry no payload; consumers map them
	// to a human-readable status.
	EventWebSearchInProgress   EventType = "response.web_search_call.in_progress"
	EventWebSearchSearching    EventType = "response.web_search_call.searching"
	EventWebSearchCompleted    EventType = "response.web_search_call.completed"
	EventFileSearchInProgress  EventType = "response.file_search_call.in_progress"
	EventFileSearchSearching   EventType = "response.file_search_call.searching"
	EventFileSearchCompleted   EventType = "response.file_search_call.completed"
	EventImageGenInProgress    EventType = "response.image_generation_call.in_progress"
	EventImageGenGenerating    EventType = "response.image_generation_call.generating"
	EventCodeInProgress        EventType = "response.code_interpreter_call.in_progress"
	EventCodeInterpreting      EventType = "response.code_interpreter_call.interpreting"
	EventCodeCompleted         EventType = "response.code_interpreter_call.completed"
	EventCodeDone              EventType = "response.code_interpreter_call_code.done"
	EventMCPCallInProgress     EventType = "response.mcp_call.in_progress"
	EventMCPCallCompleted      EventType = "response.mcp_call.completed"
	EventMCPCallFailed         EventType = "response.mcp_call.failed"
	EventMCPListInProgress     EventType = "response.mcp_list_tools.in_progress"
	EventMCPListCompleted      EventType = "response.mcp_list_tools.completed"
	EventMCPListFailed         EventType = "response.mcp_list_tools.failed"
	EventCompleted             EventType = "response.completed"
)

// Event is one discriminated event in a turn stream. Type selects which
// payload field is meaningful.
type Event struct {
	Type EventType

	// Delta holds the text fragment for EventTextDelta and EventCodeDelta.
	Delta string

	// PartialImageB64 holds a base64-encoded preview frame for
	// EventPartialImage.
	PartialImageB64 string
}

// TextDelta builds a text delta event.
func TextDelta(delta string) Event {
	return Event{Type: EventTextDelta, Delta: delta}
}

// CodeDelta builds a code delta event.
func CodeDelta(delta string) Event {
	return Event{Type: EventCodeDelta, Delta: delta}
}

// PartialImage builds a partial image event from base64 frame data.
func PartialImage(b64 string) Event {
	return Event{Type: EventPartialImage, PartialImageB64: b64}
}

// Status builds a bare status-transition event.
func Status(tag EventType) Event {
	return Event{Type: tag}
}
