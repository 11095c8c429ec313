package prefs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/macropower/ffprefs/pkg/log"
	"github.com/macropower/ffprefs/pkg/rule"
)

// DefaultFileName is the name of the preference file inside a profile.
const DefaultFileName = "prefs.js"

// FailurePolicy decides what happens to the remaining profiles when patching
// one profile fails.
type FailurePolicy string

const (
	// FailurePolicyAbort stops at the first failure. Profiles patched before
	// the failure keep their new content.
	FailurePolicyAbort FailurePolicy = "abort"
	// FailurePolicyContinue patches every profile and reports all failures.
	FailurePolicyContinue FailurePolicy = "continue"
)

// AllFailurePolicies lists the valid [FailurePolicy] values.
var AllFailurePolicies = []string{
	string(FailurePolicyAbort),
	string(FailurePolicyContinue),
}

var (
	// ErrPatch wraps failures to read or write a preference file.
	ErrPatch = errors.New("patch preferences")
	// ErrUnknownFailurePolicy is returned for an invalid [FailurePolicy].
	ErrUnknownFailurePolicy = errors.New("unknown failure policy")
)

// GetFailurePolicy parses a [FailurePolicy].
func GetFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(strings.ToLower(s)); p {
	case FailurePolicyAbort, FailurePolicyContinue:
		return p, nil
	case "":
		return FailurePolicyAbort, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFailurePolicy, s)
}

// Result summarizes a [Patcher.Patch] run.
type Result struct {
	Patched int
	Skipped int
	Failed  int
}

// Patcher applies a [rule.Set] to the preference files of profiles.
type Patcher struct {
	rules    *rule.Set
	filter   *Filter
	dryRun   io.Writer
	fileName string
	suffix   string
	policy   FailurePolicy
}

// PatcherOpt configures a [Patcher].
type PatcherOpt func(*Patcher)

// WithFileName sets the preference file name. Defaults to [DefaultFileName].
func WithFileName(name string) PatcherOpt {
	return func(p *Patcher) {
		p.fileName = name
	}
}

// WithLineSuffix sets the suffix used when adding and matching lines.
// Defaults to [DefaultLineSuffix].
func WithLineSuffix(suffix string) PatcherOpt {
	return func(p *Patcher) {
		p.suffix = suffix
	}
}

// WithFilter only patches profiles matched by f.
func WithFilter(f *Filter) PatcherOpt {
	return func(p *Patcher) {
		p.filter = f
	}
}

// WithDryRun writes a diff of each change to w instead of writing files.
func WithDryRun(w io.Writer) PatcherOpt {
	return func(p *Patcher) {
		p.dryRun = w
	}
}

// WithFailurePolicy sets the [FailurePolicy]. Defaults to [FailurePolicyAbort].
func WithFailurePolicy(policy FailurePolicy) PatcherOpt {
	return func(p *Patcher) {
		p.policy = policy
	}
}

// NewPatcher creates a new [Patcher] for the rules in s.
func NewPatcher(s *rule.Set, opts ...PatcherOpt) *Patcher {
	p := &Patcher{
		rules:    s,
		fileName: DefaultFileName,
		suffix:   DefaultLineSuffix,
		policy:   FailurePolicyAbort,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Patch patches every profile in dirs, following the [FailurePolicy].
// Iteration stops early if ctx is cancelled.
func (p *Patcher) Patch(ctx context.Context, dirs iter.Seq[string]) (Result, error) {
	logger := log.WithContext(ctx)

	var (
		res  Result
		errs []error
	)

	for dir := range dirs {
		err := ctx.Err()
		if err != nil {
			return res, errors.Join(append(errs, fmt.Errorf("patch cancelled: %w", err))...)
		}

		dir = strings.TrimRight(dir, "\r")

		if p.filter != nil {
			ok, err := p.filter.Match(dir)
			if err != nil {
				return res, err
			}
			if !ok {
				logger.Debug("skip profile", slog.String("dir", dir))

				res.Skipped++

				continue
			}
		}

		err = p.PatchProfile(ctx, dir)
		if err != nil {
			res.Failed++

			if p.policy == FailurePolicyAbort {
				return res, err
			}

			logger.Error("patch profile", slog.String("dir", dir), slog.Any("err", err))
			errs = append(errs, err)

			continue
		}

		res.Patched++
	}

	return res, errors.Join(errs...)
}

// PatchProfile applies the rules to the preference file of the profile in dir.
func (p *Patcher) PatchProfile(ctx context.Context, dir string) error {
	logger := log.WithContext(ctx)
	path := filepath.Join(strings.TrimRight(dir, "\r"), p.fileName)

	before, err := ReadLines(path)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrPatch, path, err)
	}

	after := Apply(before, p.rules, p.suffix)

	if p.dryRun != nil {
		_, err := io.WriteString(p.dryRun, Diff(path, before, after))
		if err != nil {
			return fmt.Errorf("%w %q: write diff: %w", ErrPatch, path, err)
		}

		return nil
	}

	n, err := WriteLines(path, after)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrPatch, path, err)
	}

	logger.Info("patched preferences",
		slog.String("path", path),
		slog.Int("lines", len(after)),
		slog.String("size", humanize.Bytes(uint64(n))), //nolint:gosec // G115: n is a length.
	)

	return nil
}
