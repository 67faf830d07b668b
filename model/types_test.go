package model

import (
	"encoding/json"
	"testing"
)

func TestMessageConstructorsAndAccessors(t *testing.T) {
	user := UserMessage("hello")
	if user.Role != RoleUser {
		t.Errorf("expected user role, got %s", user.Role)
	}
	if user.Text() != "hello" {
		t.Errorf("expected 'hello', got %q", user.Text())
	}

	assistant := AssistantText("hi there")
	if assistant.Role != RoleAssistant {
		t.Errorf("expected assistant role, got %s", assistant.Role)
	}
	if got := assistant.Text(); got != "hi there" {
		t.Errorf("expected 'hi there', got %q", got)
	}
	if len(assistant.ToolUses()) != 0 {
		t.Error("plain text message should have no tool uses")
	}
}

func TestAssistantToolUsePreservesOrder(t *testing.T) {
	uses := []ToolUseBlock{
		{ID: "call_1", Name: "get_all_services", Arguments: json.RawMessage(`{}`)},
		{ID: "call_2", Name: "search_by_price", Arguments: json.RawMessage(`{"max_price":100}`)},
	}

	msg := AssistantToolUse("Let me check.", uses)
	if msg.Role != RoleAssistant {
		t.Fatalf("expected assistant role, got %s", msg.Role)
	}
	if msg.Text() != "Let me check." {
		t.Errorf("expected leading text, got %q", msg.Text())
	}

	got := msg.ToolUses()
	if len(got) != 2 {
		t.Fatalf("expected 2 tool uses, got %d", len(got))
	}
	if got[0].ID != "call_1" || got[1].ID != "call_2" {
		t.Errorf("tool use order not preserved: %v", got)
	}
}

func TestAssistantToolUseWithoutText(t *testing.T) {
	msg := AssistantToolUse("", []ToolUseBlock{{ID: "call_1", Name: "get_service_categories"}})
	if len(msg.Content) != 1 {
		t.Errorf("expected single block, got %d", len(msg.Content))
	}
	if msg.Text() != "" {
		t.Errorf("expected no text, got %q", msg.Text())
	}
}

func TestToolResultsMessage(t *testing.T) {
	results := []ToolResultBlock{
		{ToolUseID: "call_1", Content: "Classic Facial - $75"},
		{ToolUseID: "call_2", Content: "unknown tool", IsError: true},
	}

	msg := ToolResults(results)
	if msg.Role != RoleTool {
		t.Fatalf("expected tool role, got %s", msg.Role)
	}

	got := msg.ToolResultBlocks()
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ToolUseID != "call_1" || got[1].ToolUseID != "call_2" {
		t.Errorf("result order not preserved: %v", got)
	}
	if got[0].IsError || !got[1].IsError {
		t.Errorf("error flags wrong: %v", got)
	}
}

func TestMessageRoundTripsThroughJSON(t *testing.T) {
	original := AssistantToolUse("checking", []ToolUseBlock{
		{ID: "call_1", Name: "get_service_info", Arguments: json.RawMessage(`{"service_name":"Classic Facial"}`)},
	})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	uses := decoded.ToolUses()
	if len(uses) != 1 {
		t.Fatalf("expected 1 tool use after round trip, got %d", len(uses))
	}
	if uses[0].ID != "call_1" || uses[0].Name != "get_service_info" {
		t.Errorf("tool use corrupted: %+v", uses[0])
	}
	if string(uses[0].Arguments) != `{"service_name":"Classic Facial"}` {
		t.Errorf("arguments corrupted: %s", uses[0].Arguments)
	}
}

func TestValidateToolPairingAccepts(t *testing.T) {
	transcript := []Message{
		UserMessage("what facials do you have?"),
		AssistantToolUse("", []ToolUseBlock{
			{ID: "call_1", Name: "list_services"},
			{ID: "call_2", Name: "get_service_categories"},
		}),
		ToolResults([]ToolResultBlock{
			{ToolUseID: "call_2", Content: "Facials, Massages"},
			{ToolUseID: "call_1", Content: "Classic Facial - $75"},
		}),
		AssistantText("We offer two facials."),
	}

	if err := ValidateToolPairing(transcript); err != nil {
		t.Errorf("valid transcript rejected: %v", err)
	}
}

func TestValidateToolPairingRejectsMissingToolMessage(t *testing.T) {
	transcript := []Message{
		UserMessage("hi"),
		AssistantToolUse("", []ToolUseBlock{{ID: "call_1", Name: "list_services"}}),
		AssistantText("done"),
	}

	if err := ValidateToolPairing(transcript); err == nil {
		t.Error("expected error for tool use without following tool message")
	}
}

func TestValidateToolPairingRejectsUnansweredUse(t *testing.T) {
	transcript := []Message{
		UserMessage("hi"),
		AssistantToolUse("", []ToolUseBlock{
			{ID: "call_1", Name: "list_services"},
			{ID: "call_2", Name: "get_all_services"},
		}),
		ToolResults([]ToolResultBlock{
			{ToolUseID: "call_1", Content: "ok"},
		}),
	}

	if err := ValidateToolPairing(transcript); err == nil {
		t.Error("expected error for unanswered tool use")
	}
}

func TestValidateToolPairingRejectsDuplicateResult(t *testing.T) {
	transcript := []Message{
		UserMessage("hi"),
		AssistantToolUse("", []ToolUseBlock{{ID: "call_1", Name: "list_services"}}),
		ToolResults([]ToolResultBlock{
			{ToolUseID: "call_1", Content: "ok"},
			{ToolUseID: "call_1", Content: "ok again"},
		}),
	}

	if err := ValidateToolPairing(transcript); err == nil {
		t.Error("expected error for duplicate tool result")
	}
}

func TestValidateToolPairingRejectsOrphanToolMessage(t *testing.T) {
	transcript := []Message{
		UserMessage("hi"),
		ToolResults([]ToolResultBlock{{ToolUseID: "call_1", Content: "ok"}}),
	}

	if err := ValidateToolPairing(transcript); err == nil {
		t.Error("expected error for tool message not following assistant tool use")
	}
}
