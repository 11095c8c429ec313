package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ReadLines reads the file at path and returns its non-empty lines. Lines are
// split on `\n` only, so a `\r` from CRLF files stays part of the line. A
// missing file has no lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Profile paths come from the registry.
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("preference file does not exist", slog.String("path", path))

		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return splitLines(string(data)), nil
}

// WriteLines replaces the content of the file at path with lines, each
// terminated by `\n`. It returns the number of bytes written.
func WriteLines(path string, lines []string) (int, error) {
	content := joinLines(lines)

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		return 0, fmt.Errorf("write file: %w", err)
	}

	return len(content), nil
}

func splitLines(data string) []string {
	lines := []string{}

	for line := range strings.SplitSeq(data, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

func joinLines(lines []string) string {
	var sb strings.Builder

	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return sb.String()
}
