package tool

import (
	"reflect"
	"strings"
)

// GenerateSchema creates a JSON Schema from a Go struct.
// It supports the "json" tag for field names and the "description" tag for
// descriptions. Fields without omitempty are treated as required.
func GenerateSchema(v any) map[string]any {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return map[string]any{
			"type": "object", // Default fallback
		}
	}

	properties := make(map[string]any)
	required := []string{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Skip unexported fields
		if field.PkgPath != "" {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := jsonTag
		if name == "" {
			name = field.Name
		}
		// Handle "name,omitempty"
		if comma := strings.Index(name, ","); comma != -1 {
			name = name[:comma]
		}

		propSchema := map[string]any{
			"type": getType(field.Type),
		}
		if desc := field.Tag.Get("description"); desc != "" {
			propSchema["description"] = desc
		}
		if field.Type.Kind() == reflect.Slice || field.Type.Kind() == reflect.Array {
			propSchema["items"] = map[string]any{"type": getType(field.Type.Elem())}
		}

		properties[name] = propSchema

		if !strings.Contains(jsonTag, "omitempty") {
			required = append(required, name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

func getType(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "string" // Default fallback
	}
}
