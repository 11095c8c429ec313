package prefs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/ffprefs/pkg/prefs"
	"github.com/macropower/ffprefs/pkg/rule"
)

func mustSet(t *testing.T, data string) *rule.Set {
	t.Helper()

	s, err := rule.ParseSet(data)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestApply(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		rules string
		lines []string
		want  []string
	}{
		"add appends at end": {
			rules: "+(foo,1)\n",
			lines: []string{"user_pref(a,1);\r"},
			want:  []string{"user_pref(a,1);\r", "user_pref(foo,1);\r"},
		},
		"add keeps rule order and duplicates": {
			rules: "+(b,2)\n+(a,1)\n+(b,2)\n",
			lines: []string{},
			want:  []string{"user_pref(b,2);\r", "user_pref(a,1);\r", "user_pref(b,2);\r"},
		},
		"delete removes every occurrence": {
			rules: "-(foo,1)\n",
			lines: []string{"user_pref(foo,1);\r", "user_pref(x,2);\r", "user_pref(foo,1);\r"},
			want:  []string{"user_pref(x,2);\r"},
		},
		"delete matches exact text only": {
			rules: "-(foo,1)\n",
			lines: []string{"user_pref(foo,1);", "user_pref(foo, 1);\r", "user_pref(foo,10);\r"},
			want:  []string{"user_pref(foo,1);", "user_pref(foo, 1);\r", "user_pref(foo,10);\r"},
		},
		"line matching several delete rules": {
			rules: "-(foo,1)\n-(foo,1)\n",
			lines: []string{"user_pref(foo,1);\r", "user_pref(bar,1);\r"},
			want:  []string{"user_pref(bar,1);\r"},
		},
		"delete wins over add": {
			rules: "+(foo,1)\n-(foo,1)\n",
			lines: []string{"user_pref(a,1);\r"},
			want:  []string{"user_pref(a,1);\r"},
		},
		"no rules": {
			rules: "",
			lines: []string{"user_pref(a,1);\r"},
			want:  []string{"user_pref(a,1);\r"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input := append([]string{}, tc.lines...)

			got := prefs.Apply(tc.lines, mustSet(t, tc.rules), prefs.DefaultLineSuffix)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, input, tc.lines, "input must not be modified")
		})
	}
}

func TestApplySuffix(t *testing.T) {
	t.Parallel()

	s := mustSet(t, "+(foo,1)\n-(bar,2)\n")

	got := prefs.Apply([]string{"user_pref(bar,2);"}, s, "")
	assert.Equal(t, []string{"user_pref(foo,1);"}, got)
}
