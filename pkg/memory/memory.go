package memory

import (
	"strings"
	"sync"

	"github.com/MJKeo/game-nerd-bot/pkg/types"
)

// Memory defines how conversation state is stored. Each chat session owns
// its own Memory instance; nothing is shared between sessions.
type Memory interface {
	Add(message types.Message)
	History() []types.Message
	Len() int
	Reset()
}

// InMemory is a simple thread-safe memory backend. History is append-only
// for the lifetime of the session and discarded with it.
type InMemory struct {
	mu       sync.RWMutex
	messages []types.Message
}

// NewInMemory creates an empty memory store.
func NewInMemory() *InMemory {
	return &InMemory{messages: make([]types.Message, 0, 8)}
}

// Add appends a message to history.
func (m *InMemory) Add(message types.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

// History returns a copy of the conversation so callers cannot mutate internal state.
func (m *InMemory) History() []types.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Len returns the number of stored messages.
func (m *InMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}

// Reset clears the conversation.
func (m *InMemory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = m.messages[:0]
}

// FormatHistory renders a simple bullet list of the conversation for prompts.
func FormatHistory(messages []types.Message) string {
	if len(messages) == 0 {
		return ""
	}
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, string(msg.Role)+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}
