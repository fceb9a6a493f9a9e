// Package replay projects persisted conversation history into render
// operations. The projection is pure and total: every known item kind has
// exactly one rendering rule, and unknown kinds are skipped so replay never
// fails on history written by a newer runtime.
package replay

import (
	"fmt"

	"github.com/richinex/palaver/conversation"
	"github.com/richinex/palaver/render"
)

// Fixed summaries for tool call records that render as a sentence.
const (
	webSearchSummary  = "🔍 Searched the web..."
	fileSearchSummary = "🗂️ Searched your files..."
)

// Project converts items into the render ops that reproduce them on screen,
// in order. Pure function of its input; safe to call repeatedly.
func Project(items []conversation.Item) []render.Op {
	var ops []render.Op
	for _, item := range items {
		ops = append(ops, projectItem(item)...)
	}
	return ops
}

// Replay projects items and emits the resulting ops into sink.
func Replay(items []conversation.Item, sink render.Sink) {
	for _, op := range Project(items) {
		sink.Emit(op)
	}
}

func projectItem(item conversation.Item) []render.Op {
	switch item.Kind {
	case conversation.KindMessage:
		return projectMessage(item)
	case conversation.KindWebSearchCall:
		return []render.Op{assistantText(webSearchSummary)}
	case conversation.KindFileSearchCall:
		return []render.Op{assistantText(fileSearchSummary)}
	case conversation.KindImageGenerationCall:
		return []render.Op{render.ShowBubble{
			Role:     string(conversation.RoleAssistant),
			ImageSrc: "data:image/jpeg;base64," + item.ImageResult,
		}}
	case conversation.KindCodeInterpreterCall:
		// Code is shown verbatim, no math escaping.
		return []render.Op{assistantText(item.Code)}
	case conversation.KindMCPListTools:
		return []render.Op{assistantText(fmt.Sprintf("Listed %s's tools", item.ServerLabel))}
	case conversation.KindMCPCall:
		return []render.Op{assistantText(fmt.Sprintf(
			"Called %s's %s with args %s", item.ServerLabel, item.ToolName, item.Arguments))}
	default:
		// Unknown kinds are skipped, not errors.
		return nil
	}
}

func projectMessage(item conversation.Item) []render.Op {
	switch item.Role {
	case conversation.RoleUser:
		if len(item.ImageParts) > 0 {
			ops := make([]render.Op, 0, len(item.ImageParts))
			for _, part := range item.ImageParts {
				ops = append(ops, render.ShowBubble{
					Role:     string(conversation.RoleUser),
					ImageSrc: part.Src,
				})
			}
			return ops
		}
		return []render.Op{render.ShowBubble{
			Role: string(conversation.RoleUser),
			Text: item.Text,
		}}
	case conversation.RoleAssistant:
		return []render.Op{assistantText(render.EscapeMath(item.Text))}
	default:
		return nil
	}
}

func assistantText(text string) render.Op {
	return render.ShowBubble{Role: string(conversation.RoleAssistant), Text: text}
}
