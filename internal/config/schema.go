package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema builds a JSON Schema describing runner.yaml, for editor validation.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true, // Every key is optional; files override the defaults
	}
	schema := reflector.Reflect(new(RunnerConfig))
	schema.Title = "Cactus Run configuration"
	schema.Description = "Design-space constants for the runner (800x200 world, milliseconds)"
	return schema
}

// SchemaJSON returns the schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
