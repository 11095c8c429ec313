package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/ffprefs/pkg/yaml"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"kind": {"type": "string"},
		"onError": {"enum": ["abort", "continue"]},
		"prefs": {
			"type": "object",
			"properties": {
				"fileName": {"type": "string"}
			},
			"additionalProperties": false
		},
		"items": {
			"type": "array",
			"items": {"type": "string"}
		}
	},
	"required": ["kind"]
}`

func TestNewValidator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		errMsg     string
		schemaData []byte
		wantErr    bool
	}{
		"valid schema": {
			schemaData: []byte(testSchema),
		},
		"invalid json": {
			schemaData: []byte(`{"invalid": json}`),
			wantErr:    true,
			errMsg:     "unmarshal schema",
		},
		"invalid schema": {
			schemaData: []byte(`{"type": "invalid_type"}`),
			wantErr:    true,
			errMsg:     "compile schema",
		},
		"empty schema": {
			schemaData: []byte(`{}`),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			validator, err := yaml.NewValidator("test.json", tc.schemaData)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				assert.Nil(t, validator)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, validator)
		})
	}
}

func TestValidator_ValidateBytes(t *testing.T) {
	t.Parallel()

	validator := yaml.MustNewValidator("test.json", []byte(testSchema))

	tcs := map[string]struct {
		input    string
		wantPath string
		wantErr  bool
	}{
		"valid": {
			input: "kind: Configuration\nonError: abort\n",
		},
		"missing required field": {
			input:    "onError: abort\n",
			wantErr:  true,
			wantPath: "$",
		},
		"bad enum": {
			input:    "kind: Configuration\nonError: explode\n",
			wantErr:  true,
			wantPath: "$.onError",
		},
		"unknown nested field": {
			input:    "kind: Configuration\nprefs:\n  fileName: prefs.js\n  extra: true\n",
			wantErr:  true,
			wantPath: "$.prefs",
		},
		"invalid array item": {
			input:    "kind: Configuration\nitems:\n  - a\n  - 1\n",
			wantErr:  true,
			wantPath: "$.items[1]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := validator.ValidateBytes([]byte(tc.input))
			if !tc.wantErr {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)

			var yamlErr *yaml.Error
			require.ErrorAs(t, err, &yamlErr)
			require.NotNil(t, yamlErr.Path)
			assert.Equal(t, tc.wantPath, yamlErr.Path.String())
		})
	}
}

func TestValidator_ValidateBytesSyntaxError(t *testing.T) {
	t.Parallel()

	validator := yaml.MustNewValidator("test.json", []byte(testSchema))

	err := validator.ValidateBytes([]byte("kind: [unclosed\n"))
	require.Error(t, err)

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
}
