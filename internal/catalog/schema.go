package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://drillq/catalog.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func optionSchema(requireCue bool) map[string]any {
	required := []string{"label", "description"}
	if requireCue {
		required = append(required, "coaching_cue")
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"label":        map[string]any{"type": "string", "minLength": 1},
			"description":  map[string]any{"type": "string", "minLength": 1},
			"coaching_cue": map[string]any{"type": "string", "minLength": 1},
		},
		"required":             required,
		"additionalProperties": false,
	}
}

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// catalogSchema is the JSON Schema every catalog document must satisfy.
func catalogSchema() map[string]any {
	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"properties": map[string]any{
			"version": map[string]any{"type": "string", "minLength": 2},
			"scenarios": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       map[string]any{"type": "string", "minLength": 1},
						"sport":    map[string]any{"enum": enumStrings(AllSports())},
						"level":    map[string]any{"enum": enumStrings(AllLevels())},
						"category": map[string]any{"type": "string", "minLength": 1},
						"position": map[string]any{"enum": enumStrings(AllPositions())},
						"prompt":   map[string]any{"type": "string", "minLength": 1},
						"best":     optionSchema(true),
						"ok":       optionSchema(false),
						"bad":      optionSchema(false),
					},
					"required":             []string{"id", "sport", "level", "category", "prompt", "best", "ok", "bad"},
					"additionalProperties": false,
				},
			},
		},
		"required": []string{"version", "scenarios"},
	}
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the map.
		raw, err := json.Marshal(catalogSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal catalog schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
