package tool

import (
	"reflect"
	"testing"
)

type schemaFixture struct {
	Query    string   `json:"query" description:"Search query"`
	Limit    int      `json:"limit,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	MinScore *int     `json:"min_score,omitempty"`
	Exact    bool     `json:"exact,omitempty"`
	hidden   string   //nolint:unused
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema(schemaFixture{})

	if schema["type"] != "object" {
		t.Errorf("schema type = %v, want object", schema["type"])
	}

	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatal("schema has no properties map")
	}

	wantTypes := map[string]string{
		"query":     "string",
		"limit":     "integer",
		"tags":      "array",
		"min_score": "integer",
		"exact":     "boolean",
	}
	for name, wantType := range wantTypes {
		prop, ok := props[name].(map[string]any)
		if !ok {
			t.Errorf("missing property %s", name)
			continue
		}
		if prop["type"] != wantType {
			t.Errorf("property %s type = %v, want %s", name, prop["type"], wantType)
		}
	}

	if _, ok := props["hidden"]; ok {
		t.Error("unexported field leaked into schema")
	}

	query := props["query"].(map[string]any)
	if query["description"] != "Search query" {
		t.Errorf("query description = %v", query["description"])
	}

	tags := props["tags"].(map[string]any)
	items, ok := tags["items"].(map[string]any)
	if !ok || items["type"] != "string" {
		t.Errorf("tags items = %v, want string items", tags["items"])
	}

	required, _ := schema["required"].([]string)
	if !reflect.DeepEqual(required, []string{"query"}) {
		t.Errorf("required = %v, want [query]", required)
	}
}

func TestGenerateSchema_NonStruct(t *testing.T) {
	schema := GenerateSchema("not a struct")
	if schema["type"] != "object" {
		t.Errorf("fallback schema type = %v, want object", schema["type"])
	}
}
