package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/driver"
)

type checkOptions struct {
	config    string
	changed   bool
	format    string
	jobs      int
	maxErrors int
	phases    []string
	globals   []string
	verbose   bool
}

func newCheckCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Type-check files and directories",
		Long: `Run the lexer, parser, resolver and type checker over every source
file under the given paths (default: the working directory) and print
every error with its position. Exits 1 when any error is reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args, stdout, stderr)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.config, "config", "", "config file (default: nearest zygr.yml, zygr.yaml or zygr.toml)")
	flags.BoolVar(&opts.changed, "changed", false, "only check files modified or untracked in git")
	flags.StringVarP(&opts.format, "format", "f", "text", "output format: text, json or yaml")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "number of files checked in parallel")
	flags.IntVar(&opts.maxErrors, "max-errors", 0, "stop reporting after this many errors (0 = no limit)")
	flags.StringSliceVar(&opts.phases, "phase", nil, "only report errors from these phases (io, lexical, syntactic, resolution, type)")
	flags.StringSliceVar(&opts.globals, "global", nil, "extra global names to treat as declared")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return err
	})
	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions, args []string, stdout, stderr io.Writer) error {
	cfg, err := loadCheckConfig(opts.config)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if !driver.ValidFormat(cfg.Format) {
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if flags.Changed("max-errors") {
		cfg.MaxErrors = opts.maxErrors
	}
	if flags.Changed("phase") {
		cfg.Phases = nil
		for _, name := range opts.phases {
			phase, err := diagnostics.ParsePhase(name)
			if err != nil {
				return err
			}
			cfg.Phases = append(cfg.Phases, phase)
		}
	}
	cfg.Globals = append(cfg.Globals, opts.globals...)

	logger := newLogger(stderr, opts.verbose)
	paths, err := checkPaths(cfg, opts.changed, args)
	if err != nil {
		return err
	}
	logger.Debug("collected sources", "count", len(paths), "config", cfg.Path, "jobs", cfg.Jobs)

	units, err := driver.CheckFiles(cmd.Context(), paths, driver.OptionsFromConfig(cfg, logger))
	if err != nil {
		return err
	}
	report := driver.NewReport(units, driver.ReportOptionsFromConfig(cfg))
	logger.Debug("check finished", "run_id", report.RunID, "errors", report.Totals.Errors)

	if cfg.Format == "text" {
		newRenderer(stdout).report(report)
	} else if err := report.Encode(stdout, cfg.Format); err != nil {
		return err
	}
	if report.HasErrors() {
		return errReported
	}
	return nil
}

func loadCheckConfig(path string) (*driver.Config, error) {
	if path != "" {
		return driver.LoadConfig(path)
	}
	return driver.DiscoverConfig(".")
}

// checkPaths expands args into source files. Explicit files are always
// checked; unreadable ones are kept so they surface as io-failure records.
func checkPaths(cfg *driver.Config, changed bool, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	seen := make(map[string]bool)
	var paths []string
	add := func(files ...string) {
		for _, file := range files {
			if !seen[file] {
				seen[file] = true
				paths = append(paths, file)
			}
		}
	}
	for _, arg := range args {
		if changed {
			files, err := driver.ChangedSources(arg, cfg)
			if err != nil {
				return nil, err
			}
			add(files...)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			add(arg)
			continue
		}
		files, err := driver.CollectSources(arg, cfg)
		if err != nil {
			return nil, err
		}
		add(files...)
	}
	return paths, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
