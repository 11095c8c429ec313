package prefs

import (
	"fmt"
	"path/filepath"

	"github.com/google/cel-go/cel"

	"github.com/macropower/ffprefs/pkg/expr"
)

// Filter selects profiles with a CEL expression.
//
// The expression has access to variables:
//   - `path` (string): The profile directory
//   - `name` (string): The last element of the profile directory
//
// Examples:
//   - name.endsWith(".default-release")
//   - pathDir(path).contains("Profiles") && hasFile(path, "prefs.js")
type Filter struct {
	program    cel.Program
	Expression string
}

var filterEnv = expr.MustNewEnvironment(
	cel.Variable("path", cel.StringType),
	cel.Variable("name", cel.StringType),
)

// NewFilter compiles expression into a [Filter].
func NewFilter(expression string) (*Filter, error) {
	program, err := filterEnv.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", expression, err)
	}

	return &Filter{program: program, Expression: expression}, nil
}

// Match reports whether the profile directory dir is selected.
func (f *Filter) Match(dir string) (bool, error) {
	ok, err := expr.EvalBool(f.program, map[string]any{
		"path": dir,
		"name": filepath.Base(dir),
	})
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", f.Expression, err)
	}

	return ok, nil
}
