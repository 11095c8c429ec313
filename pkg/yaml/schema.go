package yaml

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaGenerator generates a JSON schema for a Go type.
// Uses [github.com/invopop/jsonschema].
type SchemaGenerator struct {
	reflector *jsonschema.Reflector
	v         any
}

// NewSchemaGenerator creates a new [SchemaGenerator] for the type of v.
func NewSchemaGenerator(v any) *SchemaGenerator {
	return &SchemaGenerator{
		reflector: &jsonschema.Reflector{
			DoNotReference:             true,
			RequiredFromJSONSchemaTags: true,
			AllowAdditionalProperties:  false,
		},
		v: v,
	}
}

// AddGoComments loads Go doc comments for the package at path, so that field
// comments become schema descriptions.
func (g *SchemaGenerator) AddGoComments(base, path string) error {
	err := g.reflector.AddGoComments(base, path)
	if err != nil {
		return fmt.Errorf("add go comments: %w", err)
	}

	return nil
}

// Generate returns the indented JSON schema.
func (g *SchemaGenerator) Generate() ([]byte, error) {
	jss := g.reflector.Reflect(g.v)

	b, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(b, '\n'), nil
}
