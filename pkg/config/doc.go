// Package config provides configuration management for ffprefs.
//
// The configuration file is optional. When present it is validated against
// the embedded JSON schema before it is decoded, and any field that is left
// unset falls back to its default.
package config
