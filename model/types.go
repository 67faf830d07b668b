// Package model provides the conversation data model shared across packages.
//
// Information Hiding:
// - Message and content block structure centralized here
// - Tool-use pairing invariant enforced in one place
package model

import (
	"encoding/json"
	"fmt"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// BlockType identifies the variant of a content block.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
)

// ToolUseBlock is a tool invocation requested by the assistant.
// The ID is assigned by the model and links the request to its result.
type ToolUseBlock struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResultBlock carries the outcome of one tool invocation back to the model.
// Errors ride in-band: IsError is set and Content holds the description.
type ToolResultBlock struct {
	ToolUseID string `json:"tool_use_id"`
	Content   string `json:"content"`
	IsError   bool   `json:"is_error,omitempty"`
}

// ContentBlock is a tagged variant selected by Type.
// Exactly one of Text, ToolUse, or ToolResult is populated.
type ContentBlock struct {
	Type       BlockType        `json:"type"`
	Text       string           `json:"text,omitempty"`
	ToolUse    *ToolUseBlock    `json:"tool_use,omitempty"`
	ToolResult *ToolResultBlock `json:"tool_result,omitempty"`
}

// Message is one entry in a transcript: a role plus ordered content blocks.
type Message struct {
	Role    Role           `json:"role"`
	Content []ContentBlock `json:"content"`
}

// TextBlock creates a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: text}
}

// UserMessage creates a user message with a single text block.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: []ContentBlock{TextBlock(text)}}
}

// AssistantText creates an assistant message with a single text block.
func AssistantText(text string) Message {
	return Message{Role: RoleAssistant, Content: []ContentBlock{TextBlock(text)}}
}

// AssistantToolUse creates an assistant message carrying tool-use blocks in
// the order given, optionally preceded by a text block.
func AssistantToolUse(text string, uses []ToolUseBlock) Message {
	blocks := make([]ContentBlock, 0, len(uses)+1)
	if text != "" {
		blocks = append(blocks, TextBlock(text))
	}
	for i := range uses {
		use := uses[i]
		blocks = append(blocks, ContentBlock{Type: BlockToolUse, ToolUse: &use})
	}
	return Message{Role: RoleAssistant, Content: blocks}
}

// ToolResults creates a tool-role message carrying result blocks in the
// order given.
func ToolResults(results []ToolResultBlock) Message {
	blocks := make([]ContentBlock, 0, len(results))
	for i := range results {
		res := results[i]
		blocks = append(blocks, ContentBlock{Type: BlockToolResult, ToolResult: &res})
	}
	return Message{Role: RoleTool, Content: blocks}
}

// Text returns the concatenated text blocks of the message.
func (m Message) Text() string {
	var out string
	for _, b := range m.Content {
		if b.Type == BlockText {
			out += b.Text
		}
	}
	return out
}

// ToolUses returns the tool-use blocks of the message in order.
func (m Message) ToolUses() []ToolUseBlock {
	var uses []ToolUseBlock
	for _, b := range m.Content {
		if b.Type == BlockToolUse && b.ToolUse != nil {
			uses = append(uses, *b.ToolUse)
		}
	}
	return uses
}

// ToolResultBlocks returns the tool-result blocks of the message in order.
func (m Message) ToolResultBlocks() []ToolResultBlock {
	var results []ToolResultBlock
	for _, b := range m.Content {
		if b.Type == BlockToolResult && b.ToolResult != nil {
			results = append(results, *b.ToolResult)
		}
	}
	return results
}

// ValidateToolPairing checks the transcript invariant: every tool-use block
// in an assistant message is answered by exactly one tool-result block with
// the same ID in the immediately following tool-role message, and every
// tool-result block answers a tool-use block from the immediately preceding
// assistant message.
func ValidateToolPairing(transcript []Message) error {
	for i, msg := range transcript {
		switch msg.Role {
		case RoleAssistant:
			uses := msg.ToolUses()
			if len(uses) == 0 {
				continue
			}
			if i+1 >= len(transcript) || transcript[i+1].Role != RoleTool {
				return fmt.Errorf("assistant message %d has %d tool-use blocks but no following tool message", i, len(uses))
			}
			results := transcript[i+1].ToolResultBlocks()
			seen := make(map[string]int, len(results))
			for _, r := range results {
				seen[r.ToolUseID]++
			}
			for _, u := range uses {
				if seen[u.ID] != 1 {
					return fmt.Errorf("tool-use %q in message %d answered %d times, want exactly 1", u.ID, i, seen[u.ID])
				}
			}
			if len(results) != len(uses) {
				return fmt.Errorf("tool message %d has %d results for %d tool-use blocks", i+1, len(results), len(uses))
			}
		case RoleTool:
			if i == 0 || transcript[i-1].Role != RoleAssistant || len(transcript[i-1].ToolUses()) == 0 {
				return fmt.Errorf("tool message %d does not follow an assistant tool-use message", i)
			}
		}
	}
	return nil
}
