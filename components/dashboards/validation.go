package dashboards

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// WidgetValidator validates widget payloads before they are submitted.
type WidgetValidator interface {
	Validate(widget Widget) error
}

var widgetSchema = map[string]any{
	"type":     "object",
	"required": []string{"displayType", "queries"},
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"displayType": map[string]any{
			"enum": []string{"table", "area", "bar", "big_number", "line", "top_n"},
		},
		"interval": map[string]any{"type": "string"},
		"queries": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []string{"fields"},
				"properties": map[string]any{
					"name":         map[string]any{"type": "string"},
					"fields":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"columns":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"aggregates":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"fieldAliases": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"conditions":   map[string]any{"type": "string"},
					"orderby":      map[string]any{"type": "string"},
				},
			},
		},
	},
}

// JSONSchemaValidator validates widgets against the shared widget schema.
type JSONSchemaValidator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{}
}

// Validate ensures the widget satisfies the schema and that field aliases,
// when present, are index-aligned with fields.
func (v *JSONSchemaValidator) Validate(widget Widget) error {
	for _, query := range widget.Queries {
		if len(query.FieldAliases) > 0 && len(query.FieldAliases) != len(query.Fields) {
			return fmt.Errorf("dashboards: widget %q query %q has %d aliases for %d fields",
				widget.Title, query.Name, len(query.FieldAliases), len(query.Fields))
		}
	}
	schema, err := v.schema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(widget)
	if err != nil {
		return fmt.Errorf("dashboards: marshal widget %q: %w", widget.Title, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("dashboards: normalize widget %q: %w", widget.Title, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboards: widget %q failed validation: %w", widget.Title, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schema() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		data, err := json.Marshal(widgetSchema)
		if err != nil {
			v.err = fmt.Errorf("dashboards: marshal widget schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("widget.json", bytes.NewReader(data)); err != nil {
			v.err = fmt.Errorf("dashboards: load widget schema: %w", err)
			return
		}
		v.compiled, v.err = compiler.Compile("widget.json")
	})
	return v.compiled, v.err
}
