package validation

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"geogate/internal/ports"
)

//go:embed schemas/feature_collection.schema.json
var featureCollectionSchema []byte

// JSONSchemaValidator implements ports.SchemaValidator using compiled,
// embedded JSON Schemas.
type JSONSchemaValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator compiles all embedded schemas.
func NewJSONSchemaValidator() (ports.SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	resources := map[string][]byte{
		ports.SchemaFeatureCollection: featureCollectionSchema,
	}

	schemas := make(map[string]*jsonschema.Schema, len(resources))
	for name, raw := range resources {
		url := name + ".schema.json"
		if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to load %s schema: %w", name, err)
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", name, err)
		}
		schemas[name] = schema
	}

	return &JSONSchemaValidator{schemas: schemas}, nil
}

func (v *JSONSchemaValidator) Validate(ctx context.Context, schemaName string, payload []byte) error {
	schema, exists := v.schemas[schemaName]
	if !exists {
		return fmt.Errorf("no schema found for %s", schemaName)
	}

	var data interface{}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}

	if err := schema.Validate(data); err != nil {
		return fmt.Errorf("validation failed for %s: %w", schemaName, err)
	}
	return nil
}
