package scripted

import (
	"context"
	"strings"
	"sync"

	"github.com/MJKeo/game-nerd-bot/pkg/provider"
	"github.com/MJKeo/game-nerd-bot/pkg/types"
)

// ChatModel is a deterministic provider that replays a fixed script of
// responses. With an empty script it echoes the newest user message, which
// keeps the CLI usable without any credentials. The last scripted response
// repeats once the script is exhausted, so loop-ceiling behavior can be
// exercised with a single tool-call entry.
type ChatModel struct {
	mu     sync.Mutex
	script []types.ChatResponse
	cursor int
	calls  [][]types.Message
}

// New returns a scripted provider that replays the given responses in order.
func New(script ...types.ChatResponse) *ChatModel {
	return &ChatModel{script: script}
}

// Text builds a plain-text script entry.
func Text(content string) types.ChatResponse {
	return types.ChatResponse{
		Message:      types.Message{Role: types.RoleAssistant, Content: content},
		FinishReason: "stop",
	}
}

// ToolCalls builds a script entry that requests the given tool invocations.
func ToolCalls(calls ...types.ToolCall) types.ChatResponse {
	return types.ChatResponse{
		Message:      types.Message{Role: types.RoleAssistant, ToolCalls: calls},
		FinishReason: "tool_calls",
	}
}

func (p *ChatModel) Name() string {
	return "scripted"
}

// Calls returns every message list submitted to the provider, in order.
func (p *ChatModel) Calls() [][]types.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]types.Message, len(p.calls))
	copy(out, p.calls)
	return out
}

// Chat implements provider.ChatModel
func (p *ChatModel) Chat(ctx context.Context, messages []types.Message, opts ...provider.Option) (*types.ChatResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	recorded := make([]types.Message, len(messages))
	copy(recorded, messages)
	p.calls = append(p.calls, recorded)

	if len(p.script) == 0 {
		resp := Text(echoReply(messages))
		return &resp, nil
	}

	idx := p.cursor
	if idx >= len(p.script) {
		idx = len(p.script) - 1
	} else {
		p.cursor++
	}
	resp := p.script[idx]
	return &resp, nil
}

// Stream implements provider.ChatModel
func (p *ChatModel) Stream(ctx context.Context, messages []types.Message, opts ...provider.Option) (<-chan provider.ChatChunk, error) {
	ch := make(chan provider.ChatChunk)

	go func() {
		defer close(ch)

		resp, err := p.Chat(ctx, messages, opts...)
		if err != nil {
			ch <- provider.ChatChunk{Error: err}
			return
		}
		if resp.HasToolCalls() {
			for i := range resp.Message.ToolCalls {
				tc := resp.Message.ToolCalls[i]
				ch <- provider.ChatChunk{ToolCall: &tc}
			}
		}

		// Simulate streaming by words
		words := strings.Fields(resp.Message.Content)
		for i, word := range words {
			chunk := provider.ChatChunk{Content: word}
			if i < len(words)-1 {
				chunk.Content += " "
			}
			select {
			case ch <- chunk:
			case <-ctx.Done():
				return
			}
		}
		ch <- provider.ChatChunk{FinishReason: resp.FinishReason}
	}()

	return ch, nil
}

func echoReply(messages []types.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == types.RoleUser {
			return "You said: " + messages[i].Content
		}
	}
	return "Hello! Ask me about video games."
}

// Ensure interface compliance
var _ provider.ChatModel = (*ChatModel)(nil)
