package prefs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/ffprefs/pkg/prefs"
)

func TestDiff(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		before      []string
		after       []string
		wantContain []string
		wantEmpty   bool
	}{
		"unchanged": {
			before:    []string{"user_pref(a,1);"},
			after:     []string{"user_pref(a,1);"},
			wantEmpty: true,
		},
		"added line": {
			before:      []string{"user_pref(a,1);"},
			after:       []string{"user_pref(a,1);", "user_pref(foo,1);"},
			wantContain: []string{"--- p/prefs.js", "+++ p/prefs.js", "+user_pref(foo,1);"},
		},
		"removed line": {
			before:      []string{"user_pref(foo,1);", "user_pref(a,1);"},
			after:       []string{"user_pref(a,1);"},
			wantContain: []string{"-user_pref(foo,1);"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := prefs.Diff("p/prefs.js", tc.before, tc.after)
			if tc.wantEmpty {
				assert.Empty(t, got)

				return
			}

			for _, s := range tc.wantContain {
				assert.Contains(t, got, s)
			}
		})
	}
}
