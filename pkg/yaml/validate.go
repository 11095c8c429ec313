package yaml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator validates YAML documents against a JSON schema.
// Uses [github.com/santhosh-tekuri/jsonschema/v6].
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new [Validator] with the provided JSON schema data.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	var schema any

	err := json.Unmarshal(schemaData, &schema)
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()

	err = compiler.AddResource(url, schema)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	jss, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: jss}, nil
}

func MustNewValidator(url string, schemaData []byte) *Validator {
	v, err := NewValidator(url, schemaData)
	if err != nil {
		panic(err)
	}

	return v
}

// Validate validates already decoded data against the schema.
// Failures are returned as an [*Error] carrying the YAML path of the most
// specific failing location.
func (s *Validator) Validate(data any) error {
	err := s.schema.Validate(data)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	return &Error{
		Err:  validationErr,
		Path: buildPathFromLocation(findMostSpecificLocation(validationErr)),
	}
}

// ValidateBytes decodes a YAML document and validates it. The source is
// attached to any returned [*Error] so that it can be annotated.
func (s *Validator) ValidateBytes(data []byte) error {
	var doc any

	err := NewDecoder(bytes.NewReader(data)).Decode(&doc)
	if err != nil {
		return NewErrorWrapper(WithSource(data)).Wrap(err)
	}

	// Empty documents decode to nil; validate them as an empty mapping.
	if doc == nil {
		doc = map[string]any{}
	}

	return NewErrorWrapper(WithSource(data)).Wrap(s.Validate(normalize(doc)))
}

// normalize converts decoded YAML values into the JSON-compatible types that
// the schema validator expects.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}

		return out

	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}

		return out

	case uint64:
		return json.Number(fmt.Sprint(t))

	case int64:
		return json.Number(fmt.Sprint(t))

	case int:
		return json.Number(fmt.Sprint(t))

	case float64:
		return json.Number(fmt.Sprint(t))
	}

	return v
}

// findMostSpecificLocation recursively searches through all causes to find the
// one with the longest InstanceLocation.
func findMostSpecificLocation(err *jsonschema.ValidationError) []string {
	longest := err.InstanceLocation

	for _, cause := range err.Causes {
		candidateLocation := findMostSpecificLocation(cause)
		if len(candidateLocation) > len(longest) {
			longest = candidateLocation
		}
	}

	return longest
}

// buildPathFromLocation converts an InstanceLocation slice to a [yaml.Path].
func buildPathFromLocation(location []string) *yaml.Path {
	if len(location) == 0 {
		return NewPathBuilder().Root().Build()
	}

	current := NewPathBuilder().Root()

	for _, part := range location {
		var index uint

		_, err := fmt.Sscanf(part, "%d", &index)
		if err == nil {
			current = current.Index(index)
		} else {
			current = current.Child(part)
		}
	}

	return current.Build()
}
