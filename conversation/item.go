// Package conversation provides the persisted conversation history model.
//
// An Item is one self-contained unit of history: a user or assistant message,
// or a record of a tool call the agent made during a turn. Items carry enough
// information to be rendered without consulting any other item; arrival order
// is the only relationship between them.
package conversation

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role identifies the author of a message item.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind discriminates the item union. The string values are the wire tags of
// the agent runtime's item records and are stored verbatim.
type Kind string

const (
	// KindMessage is a plain user or assistant message.
	KindMessage Kind = "message"

	// Tool call records. Each carries kind-specific fields.
	KindWebSearchCall       Kind = "web_search_call"
	KindFileSearchCall      Kind = "file_search_call"
	KindImageGenerationCall Kind = "image_generation_call"
	KindCodeInterpreterCall Kind = "code_interpreter_call"
	KindMCPListTools        Kind = "mcp_list_tools"
	KindMCPCall             Kind = "mcp_call"
)

// ImagePart is one image in a multi-part user message. Src is either a
// regular URL or a data URI produced by DataURI.
type ImagePart struct {
	Src string `json:"image_url"`
}

// Item is a tagged union over conversation history entries. Kind selects
// which fields are meaningful; unused fields stay zero. Unknown kinds are
// preserved so history written by a newer runtime survives round-trips.
type Item struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	// KindMessage
	Role       Role        `json:"role,omitempty"`
	Text       string      `json:"text,omitempty"`
	ImageParts []ImagePart `json:"image_parts,omitempty"`

	// KindCodeInterpreterCall
	Code string `json:"code,omitempty"`

	// KindImageGenerationCall: base64-encoded image bytes.
	ImageResult string `json:"result,omitempty"`

	// KindMCPListTools and KindMCPCall
	ServerLabel string `json:"server_label,omitempty"`
	ToolName    string `json:"tool_name,omitempty"`
	Arguments   string `json:"arguments,omitempty"`
}

// NewUserText creates a plain-text user message.
func NewUserText(text string) Item {
	return Item{ID: uuid.NewString(), Kind: KindMessage, Role: RoleUser, Text: text}
}

// NewUserImage creates a user message holding image parts.
func NewUserImage(parts ...ImagePart) Item {
	return Item{ID: uuid.NewString(), Kind: KindMessage, Role: RoleUser, ImageParts: parts}
}

// NewAssistantText creates a plain-text assistant message.
func NewAssistantText(text string) Item {
	return Item{ID: uuid.NewString(), Kind: KindMessage, Role: RoleAssistant, Text: text}
}

// NewWebSearchCall records a web search performed by the agent.
func NewWebSearchCall() Item {
	return Item{ID: uuid.NewString(), Kind: KindWebSearchCall}
}

// NewFileSearchCall records a file search against the indexing store.
func NewFileSearchCall() Item {
	return Item{ID: uuid.NewString(), Kind: KindFileSearchCall}
}

// NewImageGenerationCall records a generated image. result is the
// base64-encoded image bytes as delivered by the runtime.
func NewImageGenerationCall(result string) Item {
	return Item{ID: uuid.NewString(), Kind: KindImageGenerationCall, ImageResult: result}
}

// NewCodeInterpreterCall records code the agent executed.
func NewCodeInterpreterCall(code string) Item {
	return Item{ID: uuid.NewString(), Kind: KindCodeInterpreterCall, Code: code}
}

// NewMCPListTools records a tool listing against an MCP server.
func NewMCPListTools(serverLabel string) Item {
	return Item{ID: uuid.NewString(), Kind: KindMCPListTools, ServerLabel: serverLabel}
}

// NewMCPCall records a call to a named MCP tool.
func NewMCPCall(serverLabel, toolName, arguments string) Item {
	return Item{
		ID:          uuid.NewString(),
		Kind:        KindMCPCall,
		ServerLabel: serverLabel,
		ToolName:    toolName,
		Arguments:   arguments,
	}
}

// IsMessage reports whether the item is a plain message (as opposed to a
// tool call record or an unknown kind).
func (i Item) IsMessage() bool {
	return i.Kind == KindMessage
}

// DataURI encodes raw image bytes as a data URI for storage in an ImagePart.
func DataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// IsDataURI reports whether src is a data URI rather than a remote URL.
func IsDataURI(src string) bool {
	return strings.HasPrefix(src, "data:")
}
