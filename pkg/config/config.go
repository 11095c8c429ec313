package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/macropower/ffprefs/pkg/prefs"
	"github.com/macropower/ffprefs/pkg/yaml"
)

//go:generate go run ../../internal/schemagen/main.go -o config.v1beta1.json

const (
	APIVersion = "ffprefs.jacobcolvin.com/v1beta1"
	Kind       = "Configuration"

	// DefaultRulesFile is the rule file used when none is given.
	DefaultRulesFile = "rules.txt"
)

var (
	ValidAPIVersions = []string{APIVersion}
	ValidKinds       = []string{Kind}
)

//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	Registry *RegistryConfig `json:"registry,omitempty" jsonschema:"title=Registry"`
	Prefs    *PrefsConfig    `json:"prefs,omitempty"    jsonschema:"title=Preference Files"`
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"required,title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"required,title=Kind"`
	// AppDataDir overrides the per-user application data directory that the
	// profile registry is located in. Empty uses the platform default.
	AppDataDir string `json:"appDataDir,omitempty" jsonschema:"title=Application Data Directory"`
	// RulesFile is the rule file used when no path argument is given.
	RulesFile string `json:"rulesFile,omitempty" jsonschema:"title=Rules File"`
	// OnError is the failure policy: abort at the first profile that fails,
	// or continue with the remaining profiles.
	OnError string `json:"onError,omitempty" jsonschema:"title=On Error,enum=abort,enum=continue"`
	// Filter is a CEL expression selecting the profiles to patch.
	Filter string `json:"filter,omitempty" jsonschema:"title=Profile Filter"`
}

// RegistryConfig configures how the profile registry is read.
type RegistryConfig struct {
	// ResolveRelative joins relative profile paths onto the registry directory.
	ResolveRelative *bool `json:"resolveRelative,omitempty" jsonschema:"title=Resolve Relative Paths"`
}

// PrefsConfig configures how preference files are patched.
type PrefsConfig struct {
	// FileName is the preference file inside each profile directory.
	FileName string `json:"fileName,omitempty" jsonschema:"title=File Name"`
	// LineSuffix is appended to each serialized rule when adding and matching lines.
	LineSuffix *string `json:"lineSuffix,omitempty" jsonschema:"title=Line Suffix"`
}

// NewConfig creates a new [Config] with default values.
func NewConfig() *Config {
	c := &Config{
		APIVersion: APIVersion,
		Kind:       Kind,
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes unset fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.RulesFile == "" {
		c.RulesFile = DefaultRulesFile
	}

	if c.OnError == "" {
		c.OnError = string(prefs.FailurePolicyAbort)
	}

	if c.Registry == nil {
		c.Registry = &RegistryConfig{}
	}

	if c.Registry.ResolveRelative == nil {
		resolve := false
		c.Registry.ResolveRelative = &resolve
	}

	if c.Prefs == nil {
		c.Prefs = &PrefsConfig{}
	}

	if c.Prefs.FileName == "" {
		c.Prefs.FileName = prefs.DefaultFileName
	}

	if c.Prefs.LineSuffix == nil {
		suffix := prefs.DefaultLineSuffix
		c.Prefs.LineSuffix = &suffix
	}
}

// Validate runs checks that can't be represented in the schema.
func (c *Config) Validate() error {
	_, err := prefs.GetFailurePolicy(c.OnError)
	if err != nil {
		return yaml.NewError(err, yaml.WithPath(yaml.NewPathBuilder().Root().Child("onError").Build()))
	}

	if c.Filter != "" {
		_, err := prefs.NewFilter(c.Filter)
		if err != nil {
			return yaml.NewError(err, yaml.WithPath(yaml.NewPathBuilder().Root().Child("filter").Build()))
		}
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	extendSchemaWithEnums(jss, ValidAPIVersions, ValidKinds)
}

func extendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	apiVersion, ok := jss.Properties.Get("apiVersion")
	if !ok {
		panic("apiVersion property not found in schema")
	}

	for _, version := range apiVersions {
		apiVersion.OneOf = append(apiVersion.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: version,
			Title: "API Version",
		})
	}

	_, _ = jss.Properties.Set("apiVersion", apiVersion)

	kind, ok := jss.Properties.Get("kind")
	if !ok {
		panic("kind property not found in schema")
	}

	for _, kindValue := range kinds {
		kind.OneOf = append(kind.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: kindValue,
			Title: "Kind",
		})
	}

	_, _ = jss.Properties.Set("kind", kind)
}

// MarshalYAML serializes the config to YAML.
func (c *Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b := &bytes.Buffer{}

	enc := yaml.NewEncoder(b)

	err := enc.Encode((*alias)(c))
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("close yaml encoder: %w", err)
	}

	return b.Bytes(), nil
}

// GetPath returns the default configuration file path.
func GetPath() string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "ffprefs", "config.yaml")
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", "ffprefs", "config.yaml")
	}

	return filepath.Join(os.TempDir(), "ffprefs", "config.yaml")
}
