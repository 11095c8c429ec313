package cli

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/macropower/ffprefs/pkg/config"
	"github.com/macropower/ffprefs/pkg/log"
	"github.com/macropower/ffprefs/pkg/prefs"
	"github.com/macropower/ffprefs/pkg/profile"
	"github.com/macropower/ffprefs/pkg/rule"
)

func run(cmd *cobra.Command, ra *RunArgs) error {
	configPath := ra.ConfigPath
	if configPath == "" {
		configPath = config.GetPath()
	}

	if ra.WriteConfig {
		return config.WriteDefaultConfig(configPath, false)
	}

	loadConfig := config.LoadDefaultFile
	if ra.ConfigPath != "" {
		loadConfig = config.LoadFile
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ra.override(cfg)

	err = cfg.Validate()
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}

	rulesPath := ra.RulesPath
	if rulesPath == "" {
		rulesPath = cfg.RulesFile
	}

	rules, err := rule.Load(rulesPath)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	if rules.Empty() {
		slog.Info("no rules to apply", slog.String("path", rulesPath))

		return nil
	}

	loc, err := locations(cfg)
	if err != nil {
		return err
	}

	slog.Debug("resolved locations",
		slog.String("registry", loc.RegistryFile),
		slog.String("profiles", loc.ProfilesDir),
	)

	reg, err := profile.ReadRegistry(loc, profile.WithResolveRelative(*cfg.Registry.ResolveRelative))
	if err != nil {
		return err
	}

	opts, err := patcherOpts(cmd, cfg, ra.DryRun)
	if err != nil {
		return err
	}

	ctx := log.NewContext(cmd.Context(), slog.Default().With(slog.String("rules", rulesPath)))

	res, err := prefs.NewPatcher(rules, opts...).Patch(ctx, reg.Paths())

	slog.Info("patch complete",
		slog.Int("patched", res.Patched),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed),
		slog.Bool("dry_run", ra.DryRun),
	)

	if err != nil {
		return fmt.Errorf("patch profiles: %w", err)
	}

	return nil
}

// override replaces config values with the ones set by flags or environment
// variables.
func (ra *RunArgs) override(cfg *config.Config) {
	if ra.AppDataDir != "" {
		cfg.AppDataDir = ra.AppDataDir
	}

	if ra.Filter != "" {
		cfg.Filter = ra.Filter
	}

	if ra.OnError != "" {
		cfg.OnError = ra.OnError
	}
}

func locations(cfg *config.Config) (profile.Locations, error) {
	appData := cfg.AppDataDir
	if appData == "" {
		var err error

		appData, err = profile.DefaultAppDataDir(runtime.GOOS)
		if err != nil {
			return profile.Locations{}, err
		}
	}

	return profile.NewLocations(runtime.GOOS, appData), nil
}

func patcherOpts(cmd *cobra.Command, cfg *config.Config, dryRun bool) ([]prefs.PatcherOpt, error) {
	policy, err := prefs.GetFailurePolicy(cfg.OnError)
	if err != nil {
		return nil, err
	}

	opts := []prefs.PatcherOpt{
		prefs.WithFileName(cfg.Prefs.FileName),
		prefs.WithLineSuffix(*cfg.Prefs.LineSuffix),
		prefs.WithFailurePolicy(policy),
	}

	if cfg.Filter != "" {
		f, err := prefs.NewFilter(cfg.Filter)
		if err != nil {
			return nil, err
		}

		opts = append(opts, prefs.WithFilter(f))
	}

	if dryRun {
		opts = append(opts, prefs.WithDryRun(cmd.OutOrStdout()))
	}

	return opts, nil
}
