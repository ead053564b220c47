// internal/appconfig/schema.go
package appconfig

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema constrains the shape of the configuration document. Unknown
// keys are rejected so a typo (envdir, log_file) fails loudly instead of
// silently falling back to defaults.
var configSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"envDir":           map[string]any{"type": "string", "minLength": 1},
		"dataDir":          map[string]any{"type": "string", "minLength": 1},
		"requirementsFile": map[string]any{"type": "string", "minLength": 1},
		"modelMode":        map[string]any{"type": "string", "enum": []string{"full", "lite"}},
		"replyDelayMs":     map[string]any{"type": "integer", "minimum": 0},
		"debug":            map[string]any{"type": "boolean"},
		"logFile":          map[string]any{"type": "string"},
	},
}

// ValidateDocument checks a raw configuration document against the config
// schema and returns a single error listing every violation.
func ValidateDocument(data []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}
