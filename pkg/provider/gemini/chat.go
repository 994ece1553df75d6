package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/MJKeo/game-nerd-bot/pkg/provider"
	"github.com/MJKeo/game-nerd-bot/pkg/types"
)

// Config contains Gemini credential and runtime options.
type Config struct {
	APIKey      string
	Model       string // e.g., "gemini-2.0-flash"
	Temperature float64
}

// ChatModel implements provider.ChatModel using Google Gemini.
type ChatModel struct {
	client             *genai.Client
	defaultModel       string
	defaultTemperature float64
}

const (
	defaultModel       = "gemini-2.0-flash"
	defaultTemperature = 0.5
)

// NewChatModel builds a Gemini chat provider.
func NewChatModel(ctx context.Context, cfg Config) (provider.ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}

	temp := cfg.Temperature
	if temp == 0 {
		temp = defaultTemperature
	}

	return &ChatModel{
		client:             client,
		defaultModel:       modelName,
		defaultTemperature: temp,
	}, nil
}

func (m *ChatModel) Name() string {
	return "gemini"
}

// Chat implements provider.ChatModel.Chat
func (m *ChatModel) Chat(ctx context.Context, messages []types.Message, opts ...provider.Option) (*types.ChatResponse, error) {
	_, cs, err := m.prepareSession(messages, opts)
	if err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		return nil, errors.New("no messages to send")
	}

	// Gemini's ChatSession carries prior turns as History; SendMessage takes
	// only the newest message's parts.
	lastMsg := messages[len(messages)-1]
	parts := toGeminiParts(lastMsg)

	resp, err := cs.SendMessage(ctx, parts...)
	if err != nil {
		return nil, err
	}

	return toChatResponse(resp), nil
}

// Stream implements provider.ChatModel.Stream
func (m *ChatModel) Stream(ctx context.Context, messages []types.Message, opts ...provider.Option) (<-chan provider.ChatChunk, error) {
	_, cs, err := m.prepareSession(messages, opts)
	if err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		return nil, errors.New("no messages to send")
	}
	lastMsg := messages[len(messages)-1]
	parts := toGeminiParts(lastMsg)

	iter := cs.SendMessageStream(ctx, parts...)
	ch := make(chan provider.ChatChunk)

	go func() {
		defer close(ch)
		for {
			resp, err := iter.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				ch <- provider.ChatChunk{Error: err}
				return
			}

			if len(resp.Candidates) > 0 {
				cand := resp.Candidates[0]
				if cand.Content != nil {
					var sb strings.Builder
					chunk := provider.ChatChunk{}
					for _, part := range cand.Content.Parts {
						switch p := part.(type) {
						case genai.Text:
							sb.WriteString(string(p))
						case genai.FunctionCall:
							tc := toToolCall(p)
							chunk.ToolCall = &tc
						}
					}
					chunk.Content = sb.String()
					ch <- chunk
				}
			}
		}
	}()

	return ch, nil
}

// prepareSession creates a ChatSession with history populated.
func (m *ChatModel) prepareSession(messages []types.Message, opts []provider.Option) (*genai.GenerativeModel, *genai.ChatSession, error) {
	// 1. Apply options
	options := &provider.ChatOptions{
		Model:       m.defaultModel,
		Temperature: m.defaultTemperature,
	}
	for _, o := range opts {
		o(options)
	}

	// 2. Configure Model
	gm := m.client.GenerativeModel(options.Model)
	gm.SetTemperature(float32(options.Temperature))
	if options.MaxTokens > 0 {
		gm.SetMaxOutputTokens(int32(options.MaxTokens))
	}
	if len(options.Tools) > 0 {
		gm.Tools = toGeminiTools(options.Tools)
	}

	// 3. Build History
	// Gemini ChatSession manages history. We need to feed all BUT the last
	// message as history.
	cs := gm.StartChat()

	if len(messages) > 1 {
		history := messages[:len(messages)-1]
		geminiHistory := make([]*genai.Content, 0, len(history))

		for _, msg := range history {
			role := "user"
			switch msg.Role {
			case types.RoleAssistant:
				role = "model" // Gemini uses "model" instead of "assistant"
			case types.RoleTool:
				role = "function"
			case types.RoleSystem:
				// Gemini takes the system prompt as SystemInstruction on the
				// model, not as a chat history entry.
				gm.SystemInstruction = &genai.Content{
					Parts: []genai.Part{genai.Text(msg.Content)},
				}
				continue
			}

			geminiHistory = append(geminiHistory, &genai.Content{
				Role:  role,
				Parts: toGeminiParts(msg),
			})
		}
		cs.History = geminiHistory
	}

	return gm, cs, nil
}

// Helpers

// toGeminiTools maps OpenAI-style tool definitions onto Gemini function
// declarations.
func toGeminiTools(defs []types.ToolDefinition) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, d := range defs {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        d.Function.Name,
			Description: d.Function.Description,
			Parameters:  toGeminiSchema(d.Function.Parameters),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// toGeminiSchema converts the JSON Schema subset our tools declare (object,
// string, integer, number, boolean, array, enum, required) into the genai
// schema type. Unknown constructs are dropped rather than rejected.
func toGeminiSchema(v any) *genai.Schema {
	node, ok := v.(map[string]any)
	if !ok {
		return &genai.Schema{Type: genai.TypeObject}
	}

	s := &genai.Schema{}
	switch node["type"] {
	case "object":
		s.Type = genai.TypeObject
	case "string":
		s.Type = genai.TypeString
	case "integer":
		s.Type = genai.TypeInteger
	case "number":
		s.Type = genai.TypeNumber
	case "boolean":
		s.Type = genai.TypeBoolean
	case "array":
		s.Type = genai.TypeArray
	default:
		s.Type = genai.TypeString
	}

	if desc, ok := node["description"].(string); ok {
		s.Description = desc
	}
	if enum, ok := node["enum"]; ok {
		s.Enum = toStringSlice(enum)
	}
	if items, ok := node["items"]; ok {
		s.Items = toGeminiSchema(items)
	}
	if props, ok := node["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, sub := range props {
			s.Properties[name] = toGeminiSchema(sub)
		}
	}
	if req, ok := node["required"]; ok {
		s.Required = toStringSlice(req)
	}
	return s
}

func toStringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// toToolCall converts a Gemini function call into our provider-neutral shape.
// Gemini does not assign invocation IDs, so one is synthesized; the function
// name travels on the tool-result message to close the loop.
func toToolCall(fc genai.FunctionCall) types.ToolCall {
	args, err := json.Marshal(fc.Args)
	if err != nil {
		args = []byte("{}")
	}
	return types.ToolCall{
		ID:   "call_" + uuid.New().String()[:8],
		Type: "function",
		Function: types.FunctionCall{
			Name:      fc.Name,
			Arguments: string(args),
		},
	}
}

func toGeminiParts(msg types.Message) []genai.Part {
	var parts []genai.Part

	if msg.Role == types.RoleTool {
		// Tool results go back as a FunctionResponse keyed by function name.
		var payload map[string]any
		if err := json.Unmarshal([]byte(msg.Content), &payload); err != nil {
			payload = map[string]any{"output": msg.Content}
		}
		parts = append(parts, genai.FunctionResponse{
			Name:     msg.Name,
			Response: payload,
		})
		return parts
	}

	if msg.Content != "" {
		parts = append(parts, genai.Text(msg.Content))
	}
	for _, tc := range msg.ToolCalls {
		var args map[string]any
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			args = map[string]any{}
		}
		parts = append(parts, genai.FunctionCall{
			Name: tc.Function.Name,
			Args: args,
		})
	}
	return parts
}

func toChatResponse(resp *genai.GenerateContentResponse) *types.ChatResponse {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return &types.ChatResponse{
			Message: types.Message{Role: types.RoleAssistant, Content: ""},
		}
	}

	cand := resp.Candidates[0]
	var sb strings.Builder

	msg := types.Message{
		Role: types.RoleAssistant,
	}

	for _, part := range cand.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			msg.ToolCalls = append(msg.ToolCalls, toToolCall(p))
		}
	}
	msg.Content = sb.String()

	finish := toFinishReason(cand.FinishReason)
	if len(msg.ToolCalls) > 0 {
		finish = "tool_calls"
	}

	out := &types.ChatResponse{
		Message:      msg,
		FinishReason: finish,
	}
	if resp.UsageMetadata != nil {
		out.Usage = types.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out
}

func toFinishReason(fr genai.FinishReason) string {
	switch fr {
	case genai.FinishReasonStop:
		return "stop"
	case genai.FinishReasonMaxTokens:
		return "length"
	default:
		return fmt.Sprintf("unknown:%d", fr)
	}
}

// Ensure interface compliance
var _ provider.ChatModel = (*ChatModel)(nil)
