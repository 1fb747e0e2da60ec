package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://lesson-script.json"

var contentItemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"text":               map[string]any{"type": "string", "minLength": 1},
		"animationTag":       map[string]any{"type": "string"},
		"visualRef":          map[string]any{"type": "string"},
		"waitForPermission":  map[string]any{"type": "boolean"},
		"autoAdvanceDelayMs": map[string]any{"type": "integer", "minimum": 0},
		"sectionTransition":  map[string]any{"type": "string"},
	},
	"required":             []any{"text"},
	"additionalProperties": false,
}

var sectionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":          map[string]any{"type": "string"},
		"title":       map[string]any{"type": "string"},
		"avatarState": map[string]any{"type": "string"},
		"items": map[string]any{
			"type":  "array",
			"items": contentItemSchema,
		},
	},
	"required":             []any{"items"},
	"additionalProperties": false,
}

var badgeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":        map[string]any{"type": "string", "minLength": 1},
		"image":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
	},
	"required":             []any{"name"},
	"additionalProperties": false,
}

// scriptSchema describes the structure of a lesson document. Semantic
// checks (non-empty sections, index bounds, unique ids) live in Validate.
var scriptSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":           map[string]any{"type": "string", "minLength": 1},
		"title":        map[string]any{"type": "string"},
		"description":  map[string]any{"type": "string"},
		"version":      map[string]any{"type": "string"},
		"duration":     map[string]any{"type": "string"},
		"ages":         map[string]any{"type": "string"},
		"introduction": sectionSchema,
		"sections": map[string]any{
			"type":  "array",
			"items": sectionSchema,
		},
		"conclusion": sectionSchema,
		"quizQuestions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":                 map[string]any{"type": "string"},
					"prompt":             map[string]any{"type": "string", "minLength": 1},
					"options":            map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"correctOptionIndex": map[string]any{"type": "integer"},
					"feedbackCorrect":    map[string]any{"type": "string"},
					"feedbackIncorrect":  map[string]any{"type": "string"},
				},
				"required":             []any{"id", "prompt", "options", "correctOptionIndex"},
				"additionalProperties": false,
			},
		},
		"badgeDefs": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"completion":   badgeSchema,
				"perfectScore": badgeSchema,
			},
			"required":             []any{"completion", "perfectScore"},
			"additionalProperties": false,
		},
		"feedbackTiers": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"perfect":        map[string]any{"type": "string"},
				"great":          map[string]any{"type": "string"},
				"good":           map[string]any{"type": "string"},
				"needsPractice":  map[string]any{"type": "string"},
				"greatThreshold": map[string]any{"type": "integer", "minimum": 1, "maximum": 99},
				"goodThreshold":  map[string]any{"type": "integer", "minimum": 1, "maximum": 99},
			},
			"required":             []any{"perfect", "great", "good", "needsPractice"},
			"additionalProperties": false,
		},
	},
	"required":             []any{"id", "introduction", "sections", "conclusion", "quizQuestions", "badgeDefs", "feedbackTiers"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiled returns the lesson document schema, compiling it on first use.
func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a JSON-decoded value, not Go literals.
		defBytes, err := json.Marshal(scriptSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// validateShape checks a generically decoded document against the schema.
func validateShape(doc any) error {
	s, err := compiled()
	if err != nil {
		return fmt.Errorf("compile lesson schema: %w", err)
	}

	// Round-trip through encoding/json so numbers and maps have the
	// representation the validator expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}

	if err := s.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
