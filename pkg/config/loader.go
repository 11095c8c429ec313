package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/macropower/ffprefs/pkg/yaml"
)

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed config.v1beta1.json
	schemaJSON []byte

	// DefaultValidator validates configuration against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/config.v1beta1.json", schemaJSON)

	// ErrInvalid is returned when a configuration file fails validation.
	ErrInvalid = errors.New("invalid configuration")
)

type ConfigValidator interface {
	ValidateBytes(data []byte) error
}

// ConfigLoader loads and validates configuration files.
type ConfigLoader struct {
	cv        ConfigValidator
	yamlError *yaml.ErrorWrapper
	data      []byte
}

type ConfigLoaderOpt func(*ConfigLoader)

func WithConfigValidator(cv ConfigValidator) ConfigLoaderOpt {
	return func(cl *ConfigLoader) {
		cl.cv = cv
	}
}

// NewConfigLoaderFromBytes creates a [ConfigLoader] from byte data.
func NewConfigLoaderFromBytes(data []byte, opts ...ConfigLoaderOpt) *ConfigLoader {
	cl := &ConfigLoader{
		cv:   DefaultValidator,
		data: data,
	}
	for _, opt := range opts {
		opt(cl)
	}

	cl.yamlError = yaml.NewErrorWrapper(yaml.WithSource(cl.data))

	return cl
}

// NewConfigLoaderFromFile creates a [ConfigLoader] from a file path.
func NewConfigLoaderFromFile(path string, opts ...ConfigLoaderOpt) (*ConfigLoader, error) {
	data, err := readConfig(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return NewConfigLoaderFromBytes(data, opts...), nil
}

// Validate validates configuration data with [ConfigValidator] without loading
// it into a [Config] struct.
func (cl *ConfigLoader) Validate() error {
	err := cl.cv.ValidateBytes(cl.data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// Load parses and returns the [Config].
func (cl *ConfigLoader) Load() (*Config, error) {
	c := &Config{}

	err := yaml.NewDecoder(bytes.NewReader(cl.data)).Decode(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, cl.yamlError.Wrap(err))
	}

	c.EnsureDefaults()

	// Run Go validation on the config (for requirements that can't be represented in the schema).
	err = c.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, cl.yamlError.Wrap(err))
	}

	return c, nil
}

// LoadFile reads, validates and loads the configuration at path. The file
// must exist.
func LoadFile(path string) (*Config, error) {
	cl, err := NewConfigLoaderFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}

	err = cl.Validate()
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}

	cfg, err := cl.Load()
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}

	slog.Debug("loaded configuration", slog.String("path", path))

	return cfg, nil
}

// LoadDefaultFile is like [LoadFile], but a missing file results in the
// default configuration. Use it for the path from [GetPath].
func LoadDefaultFile(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no configuration file, using defaults", slog.String("path", path))

		return NewConfig(), nil
	}

	return cfg, err
}

// WriteDefaultConfig writes the embedded default config.yaml and JSON schema
// to the specified path. An existing config file is kept unless force is set,
// in which case it is moved to a backup first.
func WriteDefaultConfig(path string, force bool) error {
	configExists := false

	pathInfo, err := os.Stat(path)
	if pathInfo != nil {
		switch {
		case err == nil && pathInfo.Mode().IsRegular():
			configExists = true
		case pathInfo.IsDir():
			return fmt.Errorf("%s: path is a directory", path)
		default:
			return fmt.Errorf("%s: unknown file state", path)
		}
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if configExists && force {
		backupFile := fmt.Sprintf("%s.%d.old", filepath.Base(path), time.Now().UnixNano())
		backupPath := filepath.Join(filepath.Dir(path), backupFile)
		slog.Info("backing up existing config file",
			slog.String("path", backupPath),
		)

		err = os.Rename(path, backupPath)
		if err != nil {
			return fmt.Errorf("rename existing config file to backup: %w", err)
		}

		configExists = false
	}

	if configExists {
		slog.Info("configuration file already exists, skipping write",
			slog.String("path", path),
		)
	} else {
		slog.Info("write default configuration",
			slog.String("path", path),
		)

		err = os.WriteFile(path, defaultConfigYAML, 0o600)
		if err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
	}

	schemaPath := filepath.Join(filepath.Dir(path), "config.v1beta1.json")
	slog.Debug("write JSON schema",
		slog.String("path", schemaPath),
	)

	err = os.WriteFile(schemaPath, schemaJSON, 0o600)
	if err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}

	return nil
}

func readConfig(path string) ([]byte, error) {
	pathInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if pathInfo.IsDir() {
		return nil, fmt.Errorf("%s: path is a directory: %w", path, os.ErrInvalid)
	}
	if !pathInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: unknown file state: %w", path, os.ErrInvalid)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}
