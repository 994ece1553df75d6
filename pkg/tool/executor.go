package tool

import (
	"context"
	"time"

	"github.com/MJKeo/game-nerd-bot/pkg/parser"
)

// Executor runs a single model-requested invocation: decode the raw JSON
// arguments, validate them against the declared schema, and execute the tool
// under a bounded timeout. Retries are deliberately absent here; the data
// layer owns retry behavior for its own transient failures.
type Executor struct {
	timeout time.Duration
	args    *parser.JSONParser[map[string]any]
}

const defaultTimeout = 30 * time.Second

// NewExecutor builds an Executor; a non-positive timeout selects the default.
func NewExecutor(timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Executor{
		timeout: timeout,
		args:    parser.NewJSONParser[map[string]any](),
	}
}

// Execute decodes rawArgs, validates, and runs the tool. Every error path
// returns a typed failure the mediator can serialize for the model.
func (e *Executor) Execute(ctx context.Context, t Tool, rawArgs string) (any, error) {
	input := map[string]any{}
	if rawArgs != "" {
		decoded, err := e.args.Parse(rawArgs)
		if err != nil {
			return nil, &ValidationError{Tool: t.Name(), Causes: []string{err.Error()}}
		}
		input = decoded
	}

	if err := ValidateInput(t, input); err != nil {
		return nil, err
	}

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return t.Execute(execCtx, input)
}
