package scripted

import (
	"context"
	"testing"

	"github.com/MJKeo/game-nerd-bot/pkg/types"
)

func TestChat_EchoesWithoutScript(t *testing.T) {
	p := New()

	resp, err := p.Chat(context.Background(), []types.Message{
		types.NewSystemMessage("be nice"),
		types.NewUserMessage("hello there"),
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Message.Content != "You said: hello there" {
		t.Errorf("Chat() = %q", resp.Message.Content)
	}
}

func TestChat_ReplaysScriptInOrder(t *testing.T) {
	p := New(Text("first"), Text("second"))
	ctx := context.Background()

	for i, want := range []string{"first", "second", "second", "second"} {
		resp, err := p.Chat(ctx, []types.Message{types.NewUserMessage("go")})
		if err != nil {
			t.Fatalf("Chat() #%d error = %v", i, err)
		}
		if resp.Message.Content != want {
			t.Errorf("Chat() #%d = %q, want %q (last entry repeats)", i, resp.Message.Content, want)
		}
	}
}

func TestChat_RecordsSubmissions(t *testing.T) {
	p := New(Text("ok"))
	msgs := []types.Message{types.NewUserMessage("record me")}

	if _, err := p.Chat(context.Background(), msgs); err != nil {
		t.Fatal(err)
	}

	calls := p.Calls()
	if len(calls) != 1 || calls[0][0].Content != "record me" {
		t.Errorf("Calls() = %+v", calls)
	}

	// The recorded copy must not alias the caller's slice.
	msgs[0].Content = "tampered"
	if p.Calls()[0][0].Content != "record me" {
		t.Error("Calls() returned aliased messages")
	}
}

func TestToolCallsEntry(t *testing.T) {
	entry := ToolCalls(types.ToolCall{
		ID:       "call_1",
		Type:     "function",
		Function: types.FunctionCall{Name: "find_game_by_name", Arguments: `{}`},
	})

	if entry.FinishReason != "tool_calls" {
		t.Errorf("FinishReason = %s", entry.FinishReason)
	}
	if !entry.HasToolCalls() {
		t.Error("HasToolCalls() = false")
	}
}

func TestStream(t *testing.T) {
	p := New(Text("alpha beta gamma"))

	ch, err := p.Stream(context.Background(), []types.Message{types.NewUserMessage("go")})
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	var content, finish string
	for chunk := range ch {
		if chunk.Error != nil {
			t.Fatalf("chunk error = %v", chunk.Error)
		}
		content += chunk.Content
		if chunk.FinishReason != "" {
			finish = chunk.FinishReason
		}
	}
	if content != "alpha beta gamma" {
		t.Errorf("streamed content = %q", content)
	}
	if finish != "stop" {
		t.Errorf("finish reason = %q", finish)
	}
}
