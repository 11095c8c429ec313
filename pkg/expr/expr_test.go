package expr_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/cel-go/cel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/ffprefs/pkg/expr"
)

func TestPathFunctions(t *testing.T) {
	t.Parallel()

	env := expr.MustNewEnvironment(cel.Variable("path", cel.StringType))

	tcs := map[string]struct {
		expression string
		path       string
		want       bool
	}{
		"pathBase match": {
			expression: `pathBase(path) == "abc.default"`,
			path:       "/home/u/.mozilla/firefox/Profiles/abc.default",
			want:       true,
		},
		"pathBase no match": {
			expression: `pathBase(path) == "abc.default"`,
			path:       "/home/u/.mozilla/firefox/Profiles/xyz.dev",
			want:       false,
		},
		"pathDir contains": {
			expression: `pathDir(path).contains("Profiles")`,
			path:       "/data/Profiles/abc.default",
			want:       true,
		},
		"pathExt": {
			expression: `pathExt(path) == ".default-release"`,
			path:       "/data/Profiles/abc.default-release",
			want:       true,
		},
		"string extensions": {
			expression: `pathBase(path).lowerAscii().startsWith("abc")`,
			path:       "/data/Profiles/ABC.default",
			want:       true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			program, err := env.Compile(tc.expression)
			require.NoError(t, err)

			got, err := expr.EvalBool(program, map[string]any{"path": tc.path})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHasFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prefs.js"), []byte("x\n"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	env := expr.MustNewEnvironment(cel.Variable("path", cel.StringType))

	tcs := map[string]struct {
		expression string
		want       bool
	}{
		"existing file":  {expression: `hasFile(path, "prefs.js")`, want: true},
		"missing file":   {expression: `hasFile(path, "user.js")`, want: false},
		"directory name": {expression: `hasFile(path, "sub")`, want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			program, err := env.Compile(tc.expression)
			require.NoError(t, err)

			got, err := expr.EvalBool(program, map[string]any{"path": dir})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	env := expr.MustNewEnvironment(cel.Variable("path", cel.StringType))

	_, err := env.Compile("path.invalidFunction()")
	require.Error(t, err)

	_, err = env.Compile("")
	require.Error(t, err)
}

func TestEvalBoolRequiresBool(t *testing.T) {
	t.Parallel()

	env := expr.MustNewEnvironment(cel.Variable("path", cel.StringType))

	program, err := env.Compile("pathBase(path)")
	require.NoError(t, err)

	_, err = expr.EvalBool(program, map[string]any{"path": "/a/b"})
	require.ErrorIs(t, err, expr.ErrNotBool)
}
