package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRevision(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		settings []debug.BuildSetting
		ok       bool
		want     string
	}{
		"no build info": {
			want: "unknown",
		},
		"no vcs settings": {
			ok:   true,
			want: "unknown",
		},
		"long revision is shortened": {
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			ok:       true,
			want:     "0123456",
		},
		"short revision": {
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}},
			ok:       true,
			want:     "abc",
		},
		"modified tree": {
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.modified", Value: "true"},
			},
			ok:   true,
			want: "0123456-dirty",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := getRevision(func() ([]debug.BuildSetting, bool) {
				return tc.settings, tc.ok
			})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Revision, GetVersion())
}
