package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/ffprefs/pkg/config"
	"github.com/macropower/ffprefs/pkg/rule"
)

// ErrorHandler renders errors returned by the root command. Usage, rule and
// config errors get a hint on how to fix them.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))

	if hint := errorHint(err); hint != "" {
		mustN(fmt.Fprintln(w, styles.ErrorText.UnsetWidth().Render(hint)))
		mustN(fmt.Fprintln(w))
	}

	if isUsageError(err) {
		mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
			lipgloss.Left,
			styles.ErrorText.UnsetWidth().Render("Try"),
			styles.Program.Flag.Render("--help"),
			styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("for usage."),
		)))
		mustN(fmt.Fprintln(w))
	}
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, rule.ErrMalformed):
		return "Rule lines must look like +(name,value) or -(name,value)."
	case errors.Is(err, config.ErrInvalid):
		return "Run with --write-config to create a default configuration."
	}

	return ""
}

// XXX: this is a hack to detect usage errors.
// See: https://github.com/spf13/cobra/pull/2266
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"accepts at most",
	} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
