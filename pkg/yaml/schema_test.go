package yaml_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/ffprefs/pkg/yaml"
)

type schemaTarget struct {
	Name  string `json:"name"            jsonschema:"required,title=Name"`
	Count int    `json:"count,omitempty"`
}

func TestSchemaGenerator_Generate(t *testing.T) {
	t.Parallel()

	data, err := yaml.NewSchemaGenerator(&schemaTarget{}).Generate()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "name")
	assert.Contains(t, props, "count")
	assert.Equal(t, []any{"name"}, schema["required"])

	// The generated schema must be usable by the validator.
	v, err := yaml.NewValidator("gen.json", data)
	require.NoError(t, err)
	require.NoError(t, v.ValidateBytes([]byte("name: x\n")))
	require.Error(t, v.ValidateBytes([]byte("count: 1\n")))
}
