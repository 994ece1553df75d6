package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MJKeo/game-nerd-bot/pkg/gamedata"
	"github.com/MJKeo/game-nerd-bot/pkg/memory"
	"github.com/MJKeo/game-nerd-bot/pkg/prompt"
	"github.com/MJKeo/game-nerd-bot/pkg/provider"
	"github.com/MJKeo/game-nerd-bot/pkg/tool"
	"github.com/MJKeo/game-nerd-bot/pkg/types"
)

// ErrLoopCeiling reports that a turn hit the tool-call round limit before
// the model produced a plain-text answer. The fallback reply returned
// alongside it is safe to show to the user.
var ErrLoopCeiling = errors.New("tool-call loop exceeded the configured ceiling")

const (
	// defaultMaxRounds caps the number of tool-use iterations per turn.
	defaultMaxRounds = 6

	defaultFallback = "*wipes sweat from brow* Whew, I got lost deep in the game archives and couldn't dig out a clean answer this time. Mind rephrasing the question?"
)

// Config describes how an Agent is assembled.
type Config struct {
	Provider provider.ChatModel
	Registry *tool.Registry
	Memory   memory.Memory
	Executor *tool.Executor

	SystemPrompt    prompt.Template
	PersonaReminder string

	// MaxRounds bounds the tool-call loop for one turn; <= 0 selects the
	// default.
	MaxRounds int
	// Fallback is returned when MaxRounds is exhausted.
	Fallback string
}

// Agent mediates one conversation: it drives the model/tool round-trips for
// each user turn until the model answers in plain text. One Agent per
// session; the Memory it owns is never shared.
type Agent struct {
	provider        provider.ChatModel
	registry        *tool.Registry
	memory          memory.Memory
	executor        *tool.Executor
	systemPrompt    prompt.Template
	personaReminder string
	maxRounds       int
	fallback        string
}

// New builds an Agent and wires defaults.
func New(cfg Config) (*Agent, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if cfg.Registry == nil {
		cfg.Registry = tool.NewRegistry()
	}
	if cfg.Memory == nil {
		cfg.Memory = memory.NewInMemory()
	}
	if cfg.Executor == nil {
		cfg.Executor = tool.NewExecutor(0)
	}
	if cfg.SystemPrompt.Text == "" {
		cfg.SystemPrompt = prompt.NewTemplate(prompt.SystemPrompt)
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = defaultMaxRounds
	}
	if cfg.Fallback == "" {
		cfg.Fallback = defaultFallback
	}

	return &Agent{
		provider:        cfg.Provider,
		registry:        cfg.Registry,
		memory:          cfg.Memory,
		executor:        cfg.Executor,
		systemPrompt:    cfg.SystemPrompt,
		personaReminder: cfg.PersonaReminder,
		maxRounds:       cfg.MaxRounds,
		fallback:        cfg.Fallback,
	}, nil
}

// Run executes one user turn to completion: submit, execute any requested
// tools, resubmit, until the model answers in plain text or the round
// ceiling is hit. Provider-level failures are returned as-is with the user
// message already recorded, so the next turn can proceed on intact history.
func (a *Agent) Run(ctx context.Context, input string) (string, error) {
	a.memory.Add(types.NewUserMessage(input))

	messages := a.buildSubmission()
	defs := a.registry.Definitions()

	for round := 0; round < a.maxRounds; round++ {
		resp, err := a.provider.Chat(ctx, messages, provider.WithTools(defs))
		if err != nil {
			return "", fmt.Errorf("model provider: %w", err)
		}

		if !resp.HasToolCalls() {
			a.memory.Add(resp.Message)
			slog.Info("agent finish", "rounds", round+1)
			return resp.Message.Content, nil
		}

		// The assistant's tool-call message must precede its results in
		// the submitted ordering.
		a.memory.Add(resp.Message)
		messages = append(messages, resp.Message)

		// Some models repeat the same invocation id within one response;
		// each id gets exactly one tool-result message.
		seen := make(map[string]bool, len(resp.Message.ToolCalls))
		for _, tc := range resp.Message.ToolCalls {
			if seen[tc.ID] {
				continue
			}
			seen[tc.ID] = true

			result := a.executeCall(ctx, tc)
			a.memory.Add(result)
			messages = append(messages, result)
		}
	}

	slog.Warn("agent hit round ceiling", "max_rounds", a.maxRounds)
	a.memory.Add(types.Message{Role: types.RoleAssistant, Content: a.fallback})
	return a.fallback, ErrLoopCeiling
}

// History returns a copy of the remembered conversation.
func (a *Agent) History() []types.Message {
	return a.memory.History()
}

// buildSubmission assembles system prompt + history, appending the persona
// reminder to the newest user message only in the submitted copy so stored
// history stays clean.
func (a *Agent) buildSubmission() []types.Message {
	history := a.memory.History()
	messages := make([]types.Message, 0, len(history)+1)
	messages = append(messages, types.NewSystemMessage(a.systemPrompt.Render(nil)))
	messages = append(messages, history...)

	last := len(messages) - 1
	if messages[last].Role == types.RoleUser {
		messages[last].Content = prompt.WithReminder(messages[last].Content, a.personaReminder)
	}
	return messages
}

// toolEnvelope is the wire shape of a tool result handed back to the model.
type toolEnvelope struct {
	Success       bool   `json:"success"`
	Results       any    `json:"results,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// executeCall resolves and runs one requested invocation, producing the one
// tool-result message that answers it. Failures of every kind are folded
// into the envelope; a tool call never aborts the turn.
func (a *Agent) executeCall(ctx context.Context, tc types.ToolCall) types.Message {
	name := tc.Function.Name
	slog.Info("agent tool call", "tool", name, "args", tc.Function.Arguments)

	var envelope toolEnvelope

	t, ok := a.registry.Get(name)
	if !ok {
		envelope = toolEnvelope{
			Success:       false,
			FailureReason: (&tool.ToolNotFoundError{Name: name}).Error(),
		}
	} else if output, err := a.executor.Execute(ctx, t, tc.Function.Arguments); err != nil {
		slog.Warn("agent tool failed", "tool", name, "err", err)
		envelope = toolEnvelope{Success: false, FailureReason: failureReason(err)}
	} else {
		envelope = toolEnvelope{Success: true, Results: output}
	}

	content, err := json.Marshal(envelope)
	if err != nil {
		content = []byte(`{"success":false,"failure_reason":"failed to serialize tool result"}`)
	}

	msg := types.NewToolResultMessage(tc.ID, string(content))
	msg.Name = name // Gemini keys function responses by name, not id
	return msg
}

// failureReason phrases a tool error for the model, which decides the
// user-facing wording.
func failureReason(err error) string {
	var (
		validationErr *tool.ValidationError
		notFoundErr   *gamedata.NotFoundError
		serviceErr    *gamedata.ExternalServiceError
	)
	switch {
	case errors.As(err, &validationErr):
		return "Invalid arguments: " + validationErr.Error()
	case errors.As(err, &notFoundErr):
		return "Not found: " + notFoundErr.Error()
	case errors.As(err, &serviceErr):
		return "Database error: " + serviceErr.Error()
	default:
		return err.Error()
	}
}
