package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tezkor/menu-tracker/constants"
)

// buildOverridesSchema returns the JSON-Schema for alias override files as a
// generic map. Field ids are enumerated so unknown keys are rejected.
func buildOverridesSchema() map[string]any {
	aliasList := map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string", "minLength": 1},
		"minItems": 1,
	}
	props := map[string]any{}
	for _, f := range constants.FieldOrder {
		props[string(f)] = aliasList
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"aliases": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           props,
			},
		},
		"required": []string{"aliases"},
	}
}

func validateOverrides(cfg fileFormat) error {
	schemaBytes, err := json.Marshal(buildOverridesSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("aliases.json", bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("aliases.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal overrides: %w", err)
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("unmarshal overrides: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("overrides do not match schema: %w", err)
	}
	return nil
}
