package prefs

import (
	"github.com/aymanbagabas/go-udiff"
)

// Diff returns a unified diff between the old and new preference lines of
// the file at path. It returns an empty string when nothing changed.
func Diff(path string, before, after []string) string {
	return udiff.Unified(path, path, joinLines(before), joinLines(after))
}
