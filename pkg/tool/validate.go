package tool

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError indicates arguments rejected by a tool's declared schema
// before execution was attempted.
type ValidationError struct {
	Tool   string
	Causes []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %s: %s", e.Tool, strings.Join(e.Causes, "; "))
}

// ValidateInput checks the decoded argument map against the tool's declared
// JSON Schema. Tools without a schema accept anything.
func ValidateInput(t Tool, input map[string]any) error {
	schema := t.InputSchema()
	if schema == nil {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(input),
	)
	if err != nil {
		// The schema itself failed to compile; that is a declaration bug,
		// not a model mistake, but the invocation still has to be rejected.
		return &ValidationError{Tool: t.Name(), Causes: []string{err.Error()}}
	}

	if !result.Valid() {
		causes := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			causes = append(causes, desc.String())
		}
		return &ValidationError{Tool: t.Name(), Causes: causes}
	}
	return nil
}
