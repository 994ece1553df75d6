package prompt

import (
	"fmt"
	"strings"
)

// Template is a string with {{name}} placeholders. The persona prompt has no
// placeholders today, but session-scoped values (user name, locale) slot in
// without touching the agent.
type Template struct {
	Text string
}

// NewTemplate wraps the given text.
func NewTemplate(text string) Template {
	return Template{Text: text}
}

// Render substitutes every placeholder that has a value; unmatched
// placeholders stay in place so a missing key is visible, not silent.
func (t Template) Render(vars map[string]any) string {
	out := t.Text
	for key, val := range vars {
		out = strings.ReplaceAll(out, "{{"+key+"}}", fmt.Sprint(val))
	}
	return out
}

// WithReminder appends a persona reminder to a message body. The reminder
// rides on the submitted copy of the newest user message only; stored
// history never carries it.
func WithReminder(body, reminder string) string {
	if reminder == "" {
		return body
	}
	return body + "\n\n" + reminder
}
