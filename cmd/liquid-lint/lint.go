package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"liquidlint/internal/config"
	"liquidlint/internal/diag"
	"liquidlint/internal/diagfmt"
	"liquidlint/internal/lint"
	"liquidlint/internal/observ"
	"liquidlint/internal/runner"
	"liquidlint/internal/trace"
	"liquidlint/internal/ui"
	"liquidlint/internal/version"
)

func addLintFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("config", "c", "", "configuration file (default: nearest .liquid-lint.toml/.yml)")
	f.StringSliceP("exclude", "e", nil, "glob of files to skip (repeatable)")
	f.StringSliceP("include-linter", "i", nil, "run only these checks")
	f.StringSliceP("exclude-linter", "x", nil, "do not run these checks")
	f.StringP("reporter", "r", "default", "output format ("+strings.Join(diagfmt.Names(), "|")+")")
	f.String("path-mode", "as-given", "how paths are printed (as-given|auto|absolute|relative|basename)")
	f.String("stdin-file-path", "", "lint stdin, reporting issues under this path")
	f.Bool("show-linters", false, "list available checks")
	f.Bool("show-reporters", false, "list available reporters")
	f.BoolP("version", "v", false, "print the version")
	f.Bool("verbose-version", false, "print version, build and code linter details")
	f.Bool("summary", true, "print totals after the default report")
	f.IntP("jobs", "j", 0, "parallel workers (0 = number of CPUs)")
	f.Bool("cache", false, "reuse results of unchanged files between runs")
	f.String("cache-dir", "", "cache location (default: $XDG_CACHE_HOME/liquid-lint)")
	f.Bool("clear-cache", false, "drop cached results before linting (implies --cache)")
	f.String("ui", "off", "progress view on stderr (auto|on|off)")
	f.Bool("timings", false, "print phase and per-check timings to stderr")
}

type lintFlags struct {
	configPath     string
	exclude        []string
	includeLinters []string
	excludeLinters []string
	reporter       string
	pathMode       string
	stdinPath      string
	showLinters    bool
	showReporters  bool
	version        bool
	verboseVersion bool
	summary        bool
	jobs           int
	cache          bool
	cacheDir       string
	clearCache     bool
	ui             string
	timings        bool
}

func readLintFlags(cmd *cobra.Command) (lintFlags, error) {
	f := cmd.Flags()
	var lf lintFlags
	var err error
	get := func(fn func() error) {
		if err == nil {
			err = fn()
		}
	}
	get(func() (e error) { lf.configPath, e = f.GetString("config"); return })
	get(func() (e error) { lf.exclude, e = f.GetStringSlice("exclude"); return })
	get(func() (e error) { lf.includeLinters, e = f.GetStringSlice("include-linter"); return })
	get(func() (e error) { lf.excludeLinters, e = f.GetStringSlice("exclude-linter"); return })
	get(func() (e error) { lf.reporter, e = f.GetString("reporter"); return })
	get(func() (e error) { lf.pathMode, e = f.GetString("path-mode"); return })
	get(func() (e error) { lf.stdinPath, e = f.GetString("stdin-file-path"); return })
	get(func() (e error) { lf.showLinters, e = f.GetBool("show-linters"); return })
	get(func() (e error) { lf.showReporters, e = f.GetBool("show-reporters"); return })
	get(func() (e error) { lf.version, e = f.GetBool("version"); return })
	get(func() (e error) { lf.verboseVersion, e = f.GetBool("verbose-version"); return })
	get(func() (e error) { lf.summary, e = f.GetBool("summary"); return })
	get(func() (e error) { lf.jobs, e = f.GetInt("jobs"); return })
	get(func() (e error) { lf.cache, e = f.GetBool("cache"); return })
	get(func() (e error) { lf.cacheDir, e = f.GetString("cache-dir"); return })
	get(func() (e error) { lf.clearCache, e = f.GetBool("clear-cache"); return })
	get(func() (e error) { lf.ui, e = f.GetString("ui"); return })
	get(func() (e error) { lf.timings, e = f.GetBool("timings"); return })
	return lf, err
}

func runLint(cmd *cobra.Command, args []string) error {
	lf, err := readLintFlags(cmd)
	if err != nil {
		return usageErrorf("%v", err)
	}
	useColor := applyColor(cmd)

	switch {
	case lf.version || lf.verboseVersion:
		printVersion(cmd, lf.verboseVersion)
		return nil
	case lf.showLinters:
		cmd.Println(color.BlueString("Available linters:"))
		for _, d := range lint.Default().Descriptors() {
			cmd.Printf(" - %s\n", d.Name)
		}
		return nil
	case lf.showReporters:
		cmd.Println(color.BlueString("Available reporters:"))
		for _, name := range diagfmt.Names() {
			cmd.Printf(" - %s\n", name)
		}
		return nil
	}

	if len(args) == 0 && lf.stdinPath == "" {
		return usageErrorf("no files specified")
	}
	pathMode, err := diagfmt.ParsePathMode(lf.pathMode)
	if err != nil {
		return usageErrorf("%v", err)
	}
	mode, err := readUIMode(lf.ui)
	if err != nil {
		return usageErrorf("%v", err)
	}
	reporter, err := diagfmt.Lookup(lf.reporter, diagfmt.Options{
		Color:       useColor,
		PathMode:    pathMode,
		Summary:     lf.summary,
		ToolName:    version.Name,
		ToolVersion: version.Version,
		Rules:       ruleDescriptions(),
	})
	if err != nil {
		return err
	}

	stopProfiling, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, span := trace.Start(cmd.Context(), trace.ScopeDriver, "liquid-lint")
	defer span.End("")

	var timer *observ.Timer
	if lf.timings {
		timer = observ.NewTimer()
	}

	phase := timer.Begin("config")
	cfg, err := loadConfig(lf.configPath)
	if err != nil {
		return err
	}
	timer.End(phase, cfg.Path())

	opts := runner.Options{
		Config:  cfg,
		Select:  lint.SelectOptions{IncludeLinters: lf.includeLinters, ExcludeLinters: lf.excludeLinters},
		Files:   args,
		Exclude: lf.exclude,
		Jobs:    lf.jobs,
		Timer:   timer,
	}
	if lf.stdinPath != "" {
		opts.Stdin = cmd.InOrStdin()
		opts.StdinPath = lf.stdinPath
	}
	if lf.cache || lf.clearCache {
		opts.Cache, err = openCache(lf.cacheDir)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		if lf.clearCache {
			if err := opts.Cache.DropAll(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			trace.PointCtx(ctx, trace.ScopeDriver, "cache-cleared", opts.Cache.Dir())
		}
	}

	var rep *diag.Report
	if shouldUseTUI(mode, cmd.ErrOrStderr()) && lf.stdinPath == "" {
		rep, err = ui.RunWithProgress(ctx, "linting", cmd.ErrOrStderr(), opts)
	} else {
		rep, err = runner.Run(ctx, opts)
	}
	if err != nil {
		return err
	}

	phase = timer.Begin("report")
	err = reporter.Report(cmd.OutOrStdout(), rep)
	timer.End(phase, lf.reporter)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if rep.Failed() {
		return errLintsFailed
	}
	return nil
}

// loadConfig reads .env next to the working directory, the configuration
// file and environment overrides, in that order.
func loadConfig(explicit string) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnv(wd); err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(explicit, wd)
	if err != nil {
		return nil, err
	}
	return cfg.ApplyEnv(), nil
}

func openCache(dir string) (*runner.DiskCache, error) {
	if dir != "" {
		return runner.OpenDiskCacheAt(dir)
	}
	return runner.OpenDiskCache(version.Name)
}

func ruleDescriptions() map[string]string {
	descs := lint.Default().Descriptors()
	out := make(map[string]string, len(descs))
	for _, d := range descs {
		out[d.Name] = d.Description
	}
	return out
}

// applyColor resolves --color and returns whether output is coloured.
func applyColor(cmd *cobra.Command) bool {
	value, err := cmd.Flags().GetString("color")
	if err != nil {
		value = "auto"
	}
	var on bool
	switch strings.ToLower(value) {
	case "on", "always", "true":
		on = true
	case "off", "never", "false":
		on = false
	default:
		on = isTerminal(cmd.OutOrStdout())
	}
	color.NoColor = !on
	return on
}
