// Google Gemini Provider implementation using official google.golang.org/genai SDK.
//
// Information Hiding:
// - API authentication and client creation
// - Request/response format for Gemini API
// - System instruction handling via config
// - Function call / function response conversion

package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/serenityspa/concierge/model"
	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	initErr     error // Stores client initialization error for deferred reporting
}

// NewGeminiProvider creates a new Gemini provider.
// If client initialization fails, the error is stored and returned on first use.
func NewGeminiProvider(apiKey, model string, maxTokens uint32, temperature float32) *GeminiProvider {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return &GeminiProvider{
			client:      nil,
			model:       model,
			maxTokens:   int32(maxTokens),
			temperature: temperature,
			initErr:     fmt.Errorf("failed to initialize Gemini client: %w", err),
		}
	}

	return &GeminiProvider{
		client:      client,
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
		initErr:     nil,
	}
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the current model.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Converse sends the transcript with tool definitions and returns the
// model's turn.
func (p *GeminiProvider) Converse(ctx context.Context, system string, transcript []model.Message, tools []ToolDefinition) (ModelTurn, error) {
	if p.initErr != nil {
		return ModelTurn{}, p.initErr
	}
	if p.client == nil {
		return ModelTurn{}, fmt.Errorf("gemini client not initialized")
	}

	contents := convertToGeminiContents(transcript)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(p.temperature),
		MaxOutputTokens: p.maxTokens,
	}
	if len(tools) > 0 {
		config.Tools = convertToGeminiTools(tools)
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	response, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return ModelTurn{}, fmt.Errorf("chat completion failed: %w", err)
	}

	return turnFromGeminiResponse(response), nil
}

// turnFromGeminiResponse converts a Gemini response to a ModelTurn.
// Gemini carries no call IDs, so one is synthesized per call; two calls
// to the same function in one turn stay distinct.
func turnFromGeminiResponse(response *genai.GenerateContentResponse) ModelTurn {
	turn := ModelTurn{}
	if len(response.Candidates) > 0 && response.Candidates[0].Content != nil {
		for _, part := range response.Candidates[0].Content.Parts {
			if part.Text != "" {
				turn.Answer += part.Text
			}
			if part.FunctionCall != nil {
				argsJSON, _ := json.Marshal(part.FunctionCall.Args)
				turn.ToolRequests = append(turn.ToolRequests, ToolCallRequest{
					ID:        fmt.Sprintf("%s:%d", part.FunctionCall.Name, len(turn.ToolRequests)),
					Name:      part.FunctionCall.Name,
					Arguments: argsJSON,
				})
			}
		}
	}

	if response.UsageMetadata != nil {
		turn.Usage = &TokenUsage{
			PromptTokens:     uint32(response.UsageMetadata.PromptTokenCount),
			CompletionTokens: uint32(response.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      uint32(response.UsageMetadata.TotalTokenCount),
		}
	}

	return turn
}

// convertToGeminiContents converts transcript messages to Gemini contents.
// Tool results become FunctionResponse parts in user-role content since
// Gemini expects tool output from the user side.
func convertToGeminiContents(transcript []model.Message) []*genai.Content {
	var contents []*genai.Content

	// FunctionResponse parts carry the function name, not the synthesized
	// call ID; track the mapping while walking the transcript.
	callNames := make(map[string]string)

	for _, msg := range transcript {
		switch msg.Role {
		case model.RoleUser:
			contents = append(contents, genai.NewContentFromText(msg.Text(), genai.RoleUser))
		case model.RoleAssistant:
			uses := msg.ToolUses()
			if len(uses) == 0 {
				contents = append(contents, genai.NewContentFromText(msg.Text(), genai.RoleModel))
				continue
			}
			content := &genai.Content{Role: genai.RoleModel}
			if text := msg.Text(); text != "" {
				content.Parts = append(content.Parts, &genai.Part{Text: text})
			}
			for _, use := range uses {
				callNames[use.ID] = use.Name
				var args map[string]any
				_ = json.Unmarshal(use.Arguments, &args)
				content.Parts = append(content.Parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						Name: use.Name,
						Args: args,
					},
				})
			}
			contents = append(contents, content)
		case model.RoleTool:
			content := &genai.Content{Role: genai.RoleUser}
			for _, result := range msg.ToolResultBlocks() {
				var payload map[string]any
				_ = json.Unmarshal([]byte(result.Content), &payload)
				if payload == nil {
					payload = map[string]any{"result": result.Content}
				}
				if result.IsError {
					payload["error"] = true
				}
				name, ok := callNames[result.ToolUseID]
				if !ok {
					name = result.ToolUseID
				}
				content.Parts = append(content.Parts, &genai.Part{
					FunctionResponse: &genai.FunctionResponse{
						Name:     name,
						Response: payload,
					},
				})
			}
			contents = append(contents, content)
		}
	}

	return contents
}

// convertToGeminiTools converts tool definitions to Gemini format.
func convertToGeminiTools(tools []ToolDefinition) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	var declarations []*genai.FunctionDeclaration
	for _, t := range tools {
		schema := convertToGeminiSchema(t.Parameters)
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  schema,
		})
	}

	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

// convertToGeminiSchema converts a parameter schema to Gemini format.
func convertToGeminiSchema(params map[string]interface{}) *genai.Schema {
	schema := &genai.Schema{
		Type: genai.TypeObject,
	}

	if t, ok := params["type"].(string); ok {
		schema.Type = mapToGeminiType(t)
	}

	if req, ok := params["required"].([]interface{}); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}
	// Also handle []string
	if req, ok := params["required"].([]string); ok {
		schema.Required = req
	}

	if props, ok := params["properties"].(map[string]interface{}); ok {
		schema.Properties = make(map[string]*genai.Schema)
		for name, prop := range props {
			propMap, ok := prop.(map[string]interface{})
			if !ok {
				continue
			}
			schema.Properties[name] = convertPropertyToGeminiSchema(propMap)
		}
	}

	return schema
}

// convertPropertyToGeminiSchema converts a single property to Gemini schema.
func convertPropertyToGeminiSchema(prop map[string]interface{}) *genai.Schema {
	schema := &genai.Schema{}

	if t, ok := prop["type"].(string); ok {
		schema.Type = mapToGeminiType(t)
	}

	if d, ok := prop["description"].(string); ok {
		schema.Description = d
	}

	// Gemini requires 'items' for arrays
	if schema.Type == genai.TypeArray {
		if items, ok := prop["items"].(map[string]interface{}); ok {
			schema.Items = convertPropertyToGeminiSchema(items)
		} else {
			schema.Items = &genai.Schema{Type: genai.TypeString}
		}
	}

	if schema.Type == genai.TypeObject {
		if props, ok := prop["properties"].(map[string]interface{}); ok {
			schema.Properties = make(map[string]*genai.Schema)
			for name, p := range props {
				if pMap, ok := p.(map[string]interface{}); ok {
					schema.Properties[name] = convertPropertyToGeminiSchema(pMap)
				}
			}
		}
	}

	return schema
}

// mapToGeminiType maps JSON schema type to Gemini type.
func mapToGeminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "integer", "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// Verify GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)
