package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MJKeo/game-nerd-bot/pkg/types"
)

// Tool represents a callable capability declared to the model.
type Tool interface {
	// Name returns the unique name of the tool.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// InputSchema returns the JSON schema for validation.
	InputSchema() map[string]any

	// Execute runs the tool logic.
	Execute(ctx context.Context, input map[string]any) (any, error)
}

// BaseTool implements the common fields of Tool.
// Embed this struct to get default implementations.
type BaseTool struct {
	NameVal   string
	DescVal   string
	SchemaVal map[string]any
}

func NewBaseTool(name, desc string) BaseTool {
	return BaseTool{NameVal: name, DescVal: desc}
}

func (b *BaseTool) Name() string                { return b.NameVal }
func (b *BaseTool) Description() string         { return b.DescVal }
func (b *BaseTool) InputSchema() map[string]any { return b.SchemaVal }

// Execute must be implemented by the embedding struct.
func (b *BaseTool) Execute(ctx context.Context, input map[string]any) (any, error) {
	return nil, nil
}

// Callable adapts plain functions into Tool implementations.
type Callable func(ctx context.Context, input map[string]any) (any, error)

// Func is a lightweight Tool implementation backed by a function.
type Func struct {
	BaseTool
	fn Callable
}

// NewFunc creates a new Tool from a function. The default schema accepts an
// empty object; set a real one with WithSchema.
func NewFunc(name, description string, fn Callable) *Func {
	f := &Func{
		BaseTool: NewBaseTool(name, description),
		fn:       fn,
	}
	f.SchemaVal = map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	return f
}

// Execute runs the wrapped function.
func (f *Func) Execute(ctx context.Context, input map[string]any) (any, error) {
	if f.fn == nil {
		return nil, fmt.Errorf("tool %s has no implementation", f.Name())
	}
	return f.fn(ctx, input)
}

func (f *Func) WithSchema(schema map[string]any) *Func {
	f.SchemaVal = schema
	return f
}

// Struct is a tool that decodes its input map into a typed argument struct.
type Struct[T any] struct {
	BaseTool
	fn func(context.Context, T) (any, error)
}

// NewStruct creates a tool from a struct type; the schema is generated from
// the struct fields and can be overridden with WithSchema when reflection
// cannot express constraints like enums.
func NewStruct[T any](name, description string, fn func(context.Context, T) (any, error)) *Struct[T] {
	var zero T
	s := &Struct[T]{
		BaseTool: NewBaseTool(name, description),
		fn:       fn,
	}
	s.SchemaVal = GenerateSchema(zero)
	return s
}

func (s *Struct[T]) Execute(ctx context.Context, input map[string]any) (any, error) {
	var args T
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input for tool %s: %w", s.Name(), err)
	}

	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("failed to parse arguments for tool %s: %w", s.Name(), err)
	}
	return s.fn(ctx, args)
}

func (s *Struct[T]) WithSchema(schema map[string]any) *Struct[T] {
	s.SchemaVal = schema
	return s
}

// Format renders a readable list for prompt injection.
func Format(tools []Tool) string {
	if len(tools) == 0 {
		return "no tools available"
	}
	parts := make([]string, 0, len(tools))
	for _, t := range tools {
		parts = append(parts, fmt.Sprintf("- %s: %s", t.Name(), t.Description()))
	}
	return strings.Join(parts, "\n")
}

// ToDefinition converts a Tool into a types.ToolDefinition for LLM providers.
func ToDefinition(t Tool) types.ToolDefinition {
	return types.ToolDefinition{
		Type: "function",
		Function: types.FunctionDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.InputSchema(),
		},
	}
}

// ToDefinitions converts a list of Tools to provider tool definitions.
func ToDefinitions(tools []Tool) []types.ToolDefinition {
	res := make([]types.ToolDefinition, len(tools))
	for i, t := range tools {
		res[i] = ToDefinition(t)
	}
	return res
}
