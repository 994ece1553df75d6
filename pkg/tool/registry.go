package tool

import (
	"fmt"
	"sort"
	"sync"

	"github.com/MJKeo/game-nerd-bot/pkg/types"
)

// Registry is the lookup table mapping declared tool names to instances.
// Model-requested invocations resolve through it; anything unrecognized is
// rejected with ToolNotFoundError instead of dispatched dynamically.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]Tool
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[string]Tool)}
}

// Register adds a tool instance. Registering the same name twice replaces
// the earlier instance.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[t.Name()] = t
}

// Get returns a tool instance by exact name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.instances[name]
	return t, ok
}

// List returns all registered tools in name order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Tool, 0, len(r.instances))
	for _, t := range r.instances {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Definitions returns provider declarations for every registered tool.
func (r *Registry) Definitions() []types.ToolDefinition {
	return ToDefinitions(r.List())
}

// ToolNotFoundError indicates a requested tool is missing.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Name)
}
