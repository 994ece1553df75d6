package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/MJKeo/game-nerd-bot/pkg/provider"
	"github.com/MJKeo/game-nerd-bot/pkg/types"
)

// Config contains OpenAI credential and runtime options.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	HTTPClient  *http.Client
	Temperature float64 // Default temperature
}

// ChatModel implements provider.ChatModel using OpenAI chat completions.
type ChatModel struct {
	name               string
	client             *goopenai.Client
	defaultModel       string
	defaultTemperature float64
}

const (
	defaultTemperature = 0.7
	defaultModel       = "gpt-4.1-nano"
)

// NewChatModel builds a chat completion provider.
func NewChatModel(cfg Config) (provider.ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		apiCfg.HTTPClient = cfg.HTTPClient
	}

	modelName := cfg.Model
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultModel
	}

	temp := cfg.Temperature
	if temp == 0 {
		temp = defaultTemperature
	}

	return &ChatModel{
		name:               "openai",
		client:             goopenai.NewClientWithConfig(apiCfg),
		defaultModel:       modelName,
		defaultTemperature: temp,
	}, nil
}

// NewWithClient wraps an already-configured go-openai client under the given
// provider name. OpenAI-compatible providers (OpenRouter) share the wire
// format and reuse this implementation instead of duplicating it.
func NewWithClient(name string, client *goopenai.Client, model string, temperature float64) provider.ChatModel {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	if temperature == 0 {
		temperature = defaultTemperature
	}
	return &ChatModel{
		name:               name,
		client:             client,
		defaultModel:       model,
		defaultTemperature: temperature,
	}
}

func (m *ChatModel) Name() string {
	return m.name
}

func (m *ChatModel) prepareRequest(messages []types.Message, opts []provider.Option) (goopenai.ChatCompletionRequest, error) {
	// 1. Apply options
	options := &provider.ChatOptions{
		Model:       m.defaultModel,
		Temperature: m.defaultTemperature,
	}
	for _, o := range opts {
		o(options)
	}

	// 2. Convert Messages
	openaiMsgs := make([]goopenai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		oMsg := goopenai.ChatCompletionMessage{
			Content: msg.Content,
			Name:    msg.Name,
		}

		switch msg.Role {
		case types.RoleSystem:
			oMsg.Role = goopenai.ChatMessageRoleSystem
		case types.RoleUser:
			oMsg.Role = goopenai.ChatMessageRoleUser
		case types.RoleAssistant:
			oMsg.Role = goopenai.ChatMessageRoleAssistant
			if len(msg.ToolCalls) > 0 {
				oMsg.ToolCalls = toOpenAIToolCalls(msg.ToolCalls)
			}
		case types.RoleTool:
			oMsg.Role = goopenai.ChatMessageRoleTool
			oMsg.ToolCallID = msg.ToolCallID
		default:
			oMsg.Role = goopenai.ChatMessageRoleUser // Fallback
		}
		openaiMsgs[i] = oMsg
	}

	// 3. Build Request
	req := goopenai.ChatCompletionRequest{
		Model:       options.Model,
		Messages:    openaiMsgs,
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
		Stop:        options.Stop,
	}

	// 4. Attach tool declarations
	if len(options.Tools) > 0 {
		req.Tools = make([]goopenai.Tool, len(options.Tools))
		for i, t := range options.Tools {
			req.Tools[i] = goopenai.Tool{
				Type: goopenai.ToolType(t.Type),
				Function: &goopenai.FunctionDefinition{
					Name:        t.Function.Name,
					Description: t.Function.Description,
					Parameters:  t.Function.Parameters,
				},
			}
		}
	}

	return req, nil
}

// Chat implements provider.ChatModel.Chat
func (m *ChatModel) Chat(ctx context.Context, messages []types.Message, opts ...provider.Option) (*types.ChatResponse, error) {
	req, err := m.prepareRequest(messages, opts)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: no choices returned", m.name)
	}

	choice := resp.Choices[0]

	// Convert response back to types.Message
	chatMsg := types.Message{
		Role:    types.RoleAssistant,
		Content: choice.Message.Content,
	}
	if len(choice.Message.ToolCalls) > 0 {
		chatMsg.ToolCalls = fromOpenAIToolCalls(choice.Message.ToolCalls)
	}

	return &types.ChatResponse{
		Message:      chatMsg,
		FinishReason: string(choice.FinishReason),
		Usage: types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Stream implements provider.ChatModel.Stream
func (m *ChatModel) Stream(ctx context.Context, messages []types.Message, opts ...provider.Option) (<-chan provider.ChatChunk, error) {
	req, err := m.prepareRequest(messages, opts)
	if err != nil {
		return nil, err
	}
	req.Stream = true

	stream, err := m.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, err
	}

	ch := make(chan provider.ChatChunk)
	go func() {
		defer close(ch)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				ch <- provider.ChatChunk{Error: err}
				return
			}

			if len(resp.Choices) > 0 {
				choice := resp.Choices[0]
				chunk := provider.ChatChunk{
					Content:      choice.Delta.Content,
					ID:           resp.ID,
					FinishReason: string(choice.FinishReason),
				}

				if len(choice.Delta.ToolCalls) > 0 {
					// Streaming tool calls arrive as fragments; the consumer
					// aggregates them by index.
					tc := choice.Delta.ToolCalls[0]
					chunk.ToolCall = &types.ToolCall{
						ID:   tc.ID,
						Type: string(tc.Type),
						Function: types.FunctionCall{
							Name:      tc.Function.Name,
							Arguments: tc.Function.Arguments,
						},
					}
				}

				ch <- chunk
			}
		}
	}()

	return ch, nil
}

// Helpers

func toOpenAIToolCalls(tcs []types.ToolCall) []goopenai.ToolCall {
	res := make([]goopenai.ToolCall, len(tcs))
	for i, tc := range tcs {
		res[i] = goopenai.ToolCall{
			ID:   tc.ID,
			Type: goopenai.ToolType(tc.Type),
			Function: goopenai.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		}
	}
	return res
}

func fromOpenAIToolCalls(tcs []goopenai.ToolCall) []types.ToolCall {
	res := make([]types.ToolCall, len(tcs))
	for i, tc := range tcs {
		res[i] = types.ToolCall{
			ID:   tc.ID,
			Type: string(tc.Type),
			Function: types.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		}
	}
	return res
}

// Ensure interface compliance
var _ provider.ChatModel = (*ChatModel)(nil)
