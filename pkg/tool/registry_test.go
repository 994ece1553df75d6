package tool

import (
	"strings"
	"testing"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	r.Register(NewFunc("zeta", "last alphabetically", nil))
	r.Register(NewFunc("alpha", "first alphabetically", nil))

	if _, ok := r.Get("alpha"); !ok {
		t.Error("Get(alpha) not found")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should not resolve")
	}

	list := r.List()
	if len(list) != 2 || list[0].Name() != "alpha" || list[1].Name() != "zeta" {
		t.Errorf("List() order = %v", names(list))
	}

	defs := r.Definitions()
	if len(defs) != 2 || defs[0].Function.Name != "alpha" {
		t.Errorf("Definitions() = %+v", defs)
	}
}

func TestRegistry_Replace(t *testing.T) {
	r := NewRegistry()
	r.Register(NewFunc("dup", "old", nil))
	r.Register(NewFunc("dup", "new", nil))

	got, _ := r.Get("dup")
	if got.Description() != "new" {
		t.Errorf("re-registration should replace; got %s", got.Description())
	}
	if len(r.List()) != 1 {
		t.Errorf("List() len = %d, want 1", len(r.List()))
	}
}

func TestToolNotFoundError(t *testing.T) {
	err := &ToolNotFoundError{Name: "ghost"}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error message = %q", err.Error())
	}
}

func names(tools []Tool) []string {
	out := make([]string, len(tools))
	for i, tl := range tools {
		out[i] = tl.Name()
	}
	return out
}
