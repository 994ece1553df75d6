package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Parser defines how to parse the output of an LLM.
type Parser[T any] interface {
	// Parse converts the output text into a structured object.
	Parse(text string) (T, error)
	// GetFormatInstructions returns a string describing the expected format.
	GetFormatInstructions() string
}

// JSONParser parses JSON output into a struct or map. Models occasionally
// wrap JSON in markdown fences even when told not to; those are stripped.
type JSONParser[T any] struct{}

// NewJSONParser creates a new JSON parser.
func NewJSONParser[T any]() *JSONParser[T] {
	return &JSONParser[T]{}
}

// Parse tries to extract and parse JSON from the text.
func (p *JSONParser[T]) Parse(text string) (T, error) {
	var zero T
	cleaned := cleanJSON(text)

	if err := json.Unmarshal([]byte(cleaned), &zero); err != nil {
		return zero, fmt.Errorf("failed to parse JSON: %w. Input: %s", err, text)
	}
	return zero, nil
}

func (p *JSONParser[T]) GetFormatInstructions() string {
	return "Return the output as a valid JSON object."
}

// cleanJSON extracts JSON from markdown code blocks or strips surrounding whitespace.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	re := regexp.MustCompile("(?s)```(?:json)?(.*?)```")
	matches := re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	return text
}
