package profile

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	pathKey        = "Path"
	pathPrefix     = "Path="
	profilesPrefix = "Path=Profiles/"
)

// Registry is the parsed content of a profile registry file.
type Registry struct {
	// Dir is the directory containing the registry file.
	Dir string
	// ProfilesDir is the default profile storage directory that
	// `Path=Profiles/...` entries are resolved against.
	ProfilesDir string
	// Lines are the non-empty lines of the registry file.
	Lines []string
	// ResolveRelative joins relative paths that don't use the Profiles/
	// prefix onto Dir, as used by the Linux registry layout.
	ResolveRelative bool
}

// RegistryOpt configures a [Registry].
type RegistryOpt func(*Registry)

// WithResolveRelative enables resolving relative profile paths against the
// registry directory.
func WithResolveRelative(resolve bool) RegistryOpt {
	return func(r *Registry) {
		r.ResolveRelative = resolve
	}
}

// NewRegistry creates a [Registry] from registry file content.
func NewRegistry(data, dir, profilesDir string, opts ...RegistryOpt) *Registry {
	r := &Registry{
		Dir:         dir,
		ProfilesDir: profilesDir,
		Lines:       splitLines(data),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ReadRegistry reads the registry file described by loc. A missing registry
// file results in a [Registry] without profiles.
func ReadRegistry(loc Locations, opts ...RegistryOpt) (*Registry, error) {
	dir := filepath.Dir(loc.RegistryFile)

	data, err := os.ReadFile(loc.RegistryFile)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("profile registry does not exist", slog.String("path", loc.RegistryFile))

		return NewRegistry("", dir, loc.ProfilesDir, opts...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile registry: %w", err)
	}

	return NewRegistry(string(data), dir, loc.ProfilesDir, opts...), nil
}

// Paths returns the resolved directory of every registry line that mentions
// a path, in file order. The sequence is computed lazily and may be iterated
// more than once.
func (r *Registry) Paths() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range r.Lines {
			if !strings.Contains(line, pathKey) {
				continue
			}

			p := Resolve(line, r.ProfilesDir)
			if r.ResolveRelative && !strings.HasPrefix(line, profilesPrefix) && !filepath.IsAbs(p) {
				p = filepath.Join(r.Dir, p)
			}

			if !yield(p) {
				return
			}
		}
	}
}

// Resolve converts a registry line into a profile directory. A
// `Path=Profiles/` prefix is replaced by profilesDir; otherwise a leading
// `Path=` is stripped. Trailing carriage returns are removed.
func Resolve(line, profilesDir string) string {
	line = strings.TrimRight(line, "\r")

	if rest, ok := strings.CutPrefix(line, profilesPrefix); ok {
		return filepath.Join(profilesDir, filepath.FromSlash(rest))
	}

	return strings.TrimPrefix(line, pathPrefix)
}

func splitLines(data string) []string {
	var lines []string

	for line := range strings.SplitSeq(data, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
