package gemini

import (
	"context"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/MJKeo/game-nerd-bot/pkg/types"
)

func TestNewChatModel_RequiresKey(t *testing.T) {
	if _, err := NewChatModel(context.Background(), Config{}); err == nil {
		t.Error("NewChatModel() without key should fail")
	}
}

func TestToGeminiSchema(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"game_name": map[string]any{
				"type":        "string",
				"description": "Title to search for",
			},
			"num_results": map[string]any{
				"type": "integer",
			},
			"platforms": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "enum": []string{"pc", "playstation5"}},
			},
		},
		"required": []string{"game_name"},
	}

	got := toGeminiSchema(schema)
	if got.Type != genai.TypeObject {
		t.Errorf("Type = %v, want object", got.Type)
	}

	name, ok := got.Properties["game_name"]
	if !ok {
		t.Fatal("missing game_name property")
	}
	if name.Type != genai.TypeString || name.Description != "Title to search for" {
		t.Errorf("game_name = %+v", name)
	}

	if got.Properties["num_results"].Type != genai.TypeInteger {
		t.Errorf("num_results type = %v", got.Properties["num_results"].Type)
	}

	platforms := got.Properties["platforms"]
	if platforms.Type != genai.TypeArray {
		t.Errorf("platforms type = %v", platforms.Type)
	}
	if platforms.Items == nil || len(platforms.Items.Enum) != 2 {
		t.Errorf("platforms items = %+v", platforms.Items)
	}

	if len(got.Required) != 1 || got.Required[0] != "game_name" {
		t.Errorf("Required = %v", got.Required)
	}
}

func TestToGeminiSchema_NonMap(t *testing.T) {
	got := toGeminiSchema("bogus")
	if got.Type != genai.TypeObject {
		t.Errorf("fallback Type = %v, want object", got.Type)
	}
}

func TestToToolCall_SynthesizesID(t *testing.T) {
	tc := toToolCall(genai.FunctionCall{
		Name: "find_game_by_name",
		Args: map[string]any{"game_name": "okami"},
	})

	if !strings.HasPrefix(tc.ID, "call_") {
		t.Errorf("ID = %q, want call_ prefix", tc.ID)
	}
	if tc.Type != "function" || tc.Function.Name != "find_game_by_name" {
		t.Errorf("tool call = %+v", tc)
	}
	if !strings.Contains(tc.Function.Arguments, "okami") {
		t.Errorf("Arguments = %q", tc.Function.Arguments)
	}

	// Each call gets its own id.
	other := toToolCall(genai.FunctionCall{Name: "find_game_by_name"})
	if other.ID == tc.ID {
		t.Error("synthesized ids collided")
	}
}

func TestToGeminiParts(t *testing.T) {
	t.Run("tool result becomes function response", func(t *testing.T) {
		msg := types.NewToolResultMessage("call_1", `{"success": true, "results": []}`)
		msg.Name = "find_game_by_name"

		parts := toGeminiParts(msg)
		if len(parts) != 1 {
			t.Fatalf("parts = %d, want 1", len(parts))
		}
		fr, ok := parts[0].(genai.FunctionResponse)
		if !ok {
			t.Fatalf("part type = %T", parts[0])
		}
		if fr.Name != "find_game_by_name" {
			t.Errorf("FunctionResponse.Name = %s", fr.Name)
		}
		if fr.Response["success"] != true {
			t.Errorf("Response = %v", fr.Response)
		}
	})

	t.Run("non-json tool result is wrapped", func(t *testing.T) {
		msg := types.NewToolResultMessage("call_2", "plain text result")
		msg.Name = "get_current_date"

		fr := toGeminiParts(msg)[0].(genai.FunctionResponse)
		if fr.Response["output"] != "plain text result" {
			t.Errorf("Response = %v", fr.Response)
		}
	})

	t.Run("assistant tool calls become function call parts", func(t *testing.T) {
		msg := types.Message{
			Role: types.RoleAssistant,
			ToolCalls: []types.ToolCall{{
				ID:       "call_3",
				Type:     "function",
				Function: types.FunctionCall{Name: "get_current_date", Arguments: `{}`},
			}},
		}

		parts := toGeminiParts(msg)
		if len(parts) != 1 {
			t.Fatalf("parts = %d, want 1", len(parts))
		}
		fc, ok := parts[0].(genai.FunctionCall)
		if !ok {
			t.Fatalf("part type = %T", parts[0])
		}
		if fc.Name != "get_current_date" {
			t.Errorf("FunctionCall.Name = %s", fc.Name)
		}
	})

	t.Run("plain text", func(t *testing.T) {
		parts := toGeminiParts(types.NewUserMessage("hello"))
		if text, ok := parts[0].(genai.Text); !ok || string(text) != "hello" {
			t.Errorf("parts = %+v", parts)
		}
	})
}

func TestToGeminiTools(t *testing.T) {
	defs := []types.ToolDefinition{
		{
			Type: "function",
			Function: types.FunctionDefinition{
				Name:        "find_game_by_name",
				Description: "Search by title",
				Parameters:  map[string]any{"type": "object"},
			},
		},
		{
			Type:     "function",
			Function: types.FunctionDefinition{Name: "get_current_date"},
		},
	}

	tools := toGeminiTools(defs)
	if len(tools) != 1 {
		t.Fatalf("tools = %d, want 1 grouped declaration set", len(tools))
	}
	decls := tools[0].FunctionDeclarations
	if len(decls) != 2 || decls[0].Name != "find_game_by_name" {
		t.Errorf("declarations = %+v", decls)
	}
}
