package prefs

import (
	"slices"

	"github.com/macropower/ffprefs/pkg/rule"
)

// DefaultLineSuffix is appended to serialized rules when adding and matching
// preference lines.
const DefaultLineSuffix = "\r"

// Apply returns lines with the rules in s applied. Every added rule is
// appended in order, duplicates included. Then every line equal to a deleted
// rule is removed, including lines that were just added. Each rule is
// serialized with [rule.Rule.String] followed by suffix.
//
// The input slice is not modified.
func Apply(lines []string, s *rule.Set, suffix string) []string {
	out := make([]string, 0, len(lines)+len(s.Added))
	out = append(out, lines...)

	for _, r := range s.Added {
		out = append(out, r.String()+suffix)
	}

	if len(s.Deleted) == 0 {
		return out
	}

	deleted := make(map[string]struct{}, len(s.Deleted))
	for _, r := range s.Deleted {
		deleted[r.String()+suffix] = struct{}{}
	}

	return slices.DeleteFunc(out, func(line string) bool {
		_, ok := deleted[line]

		return ok
	})
}
