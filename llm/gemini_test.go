package llm

import (
	"encoding/json"
	"testing"

	"github.com/serenityspa/concierge/model"
	"google.golang.org/genai"
)

func TestTurnFromGeminiResponseSynthesizesUniqueIDs(t *testing.T) {
	response := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: genai.RoleModel,
				Parts: []*genai.Part{
					{FunctionCall: &genai.FunctionCall{
						Name: "list_services",
						Args: map[string]any{"category": "facial"},
					}},
					{FunctionCall: &genai.FunctionCall{
						Name: "list_services",
						Args: map[string]any{"category": "massage"},
					}},
				},
			},
		}},
	}

	turn := turnFromGeminiResponse(response)
	if len(turn.ToolRequests) != 2 {
		t.Fatalf("expected 2 tool requests, got %d", len(turn.ToolRequests))
	}
	if turn.ToolRequests[0].ID == turn.ToolRequests[1].ID {
		t.Errorf("duplicate calls must get distinct IDs, both %q", turn.ToolRequests[0].ID)
	}
	for _, req := range turn.ToolRequests {
		if req.Name != "list_services" {
			t.Errorf("request name = %q", req.Name)
		}
	}
}

func TestTurnFromGeminiResponseTextAndCall(t *testing.T) {
	response := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: genai.RoleModel,
				Parts: []*genai.Part{
					{Text: "Let me check."},
					{FunctionCall: &genai.FunctionCall{Name: "get_all_services"}},
				},
			},
		}},
	}

	turn := turnFromGeminiResponse(response)
	if turn.Answer != "Let me check." {
		t.Errorf("answer = %q", turn.Answer)
	}
	if len(turn.ToolRequests) != 1 {
		t.Fatalf("expected 1 tool request, got %d", len(turn.ToolRequests))
	}
	if turn.IsFinal() {
		t.Error("turn with tool requests must not be final")
	}
}

func TestConvertToGeminiContentsMapsResultsToFunctionNames(t *testing.T) {
	transcript := []model.Message{
		model.UserMessage("what facials do you have?"),
		model.AssistantToolUse("", []model.ToolUseBlock{
			{ID: "list_services:0", Name: "list_services", Arguments: json.RawMessage(`{"category":"facial"}`)},
			{ID: "list_services:1", Name: "list_services", Arguments: json.RawMessage(`{"category":"massage"}`)},
		}),
		model.ToolResults([]model.ToolResultBlock{
			{ToolUseID: "list_services:0", Content: "- Classic Facial - $75 (60 minutes)"},
			{ToolUseID: "list_services:1", Content: "- Swedish Massage - $95 (60 minutes)"},
		}),
	}

	contents := convertToGeminiContents(transcript)
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}

	toolContent := contents[2]
	if len(toolContent.Parts) != 2 {
		t.Fatalf("expected 2 response parts, got %d", len(toolContent.Parts))
	}
	for _, part := range toolContent.Parts {
		if part.FunctionResponse == nil {
			t.Fatal("expected a function response part")
		}
		if part.FunctionResponse.Name != "list_services" {
			t.Errorf("response name = %q, want the function name", part.FunctionResponse.Name)
		}
	}
}

func TestConvertToGeminiContentsWrapsPlainTextResult(t *testing.T) {
	transcript := []model.Message{
		model.AssistantToolUse("", []model.ToolUseBlock{
			{ID: "get_service_info:0", Name: "get_service_info", Arguments: json.RawMessage(`{}`)},
		}),
		model.ToolResults([]model.ToolResultBlock{
			{ToolUseID: "get_service_info:0", Content: "unknown tool", IsError: true},
		}),
	}

	contents := convertToGeminiContents(transcript)
	resp := contents[1].Parts[0].FunctionResponse
	if resp == nil {
		t.Fatal("expected a function response part")
	}
	if resp.Response["result"] != "unknown tool" {
		t.Errorf("plain text not wrapped: %v", resp.Response)
	}
	if resp.Response["error"] != true {
		t.Errorf("error flag missing: %v", resp.Response)
	}
}
