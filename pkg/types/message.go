package types

// Role identifies who authored a message in the conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// FunctionCall carries the name and raw JSON arguments of a requested call.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string arguments
}

// ToolCall represents a request from the model to invoke a declared tool.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"` // usually "function"
	Function FunctionCall `json:"function"`
}

// FunctionDefinition is the declared surface of a tool: its name, what it
// does, and the JSON Schema of its parameters.
type FunctionDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters"` // JSON Schema
}

// ToolDefinition describes a tool available to the model.
// It matches the OpenAI tools schema.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// Usage represents token usage statistics.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Message is a single chat turn.
// It is designed to be flexible enough to handle various LLM APIs.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	Name       string     `json:"name,omitempty"`         // Optional: author name
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // For RoleAssistant: tools the model wants to call
	ToolCallID string     `json:"tool_call_id,omitempty"` // For RoleTool: the ID of the call this message responds to
}

// NewUserMessage builds a user message with the given text.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewSystemMessage builds a system message with the given text.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewToolResultMessage builds the tool-result message answering the tool
// call with the given invocation ID.
func NewToolResultMessage(callID, content string) Message {
	return Message{Role: RoleTool, ToolCallID: callID, Content: content}
}

// ChatResponse represents the full response from a ChatModel.
type ChatResponse struct {
	Message      Message
	FinishReason string // stop, length, tool_calls, content_filter
	Usage        Usage
}

// HasToolCalls reports whether the model asked for tool executions instead
// of (or in addition to) answering in plain text.
func (r *ChatResponse) HasToolCalls() bool {
	return r != nil && len(r.Message.ToolCalls) > 0
}
