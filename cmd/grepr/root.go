// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/grepr/grepr/internal/config"
	"github.com/grepr/grepr/internal/issue"
	"github.com/grepr/grepr/internal/logging"
	"github.com/grepr/grepr/internal/search"
	"github.com/grepr/grepr/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// rootFlags holds the values bound to the root command flags.
	rootFlags struct {
		count       bool
		ignoreCase  bool
		invertMatch bool
		recursive   bool
		excludeDirs []string
		configFile  string
		verbose     bool
	}

	// app is one grepr invocation: its streams, its configuration source
	// and the exit code decided by the search.
	app struct {
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
		provider config.Provider

		flags    rootFlags
		verbose  bool
		exitCode types.ExitCode
	}
)

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		provider: config.NewProvider(),
	}
}

// newRootCommand builds the root command bound to a.
func (a *app) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grepr [flags] PATTERN [FILE...]",
		Short: "Search files for lines matching a regular expression",
		Long: TitleStyle.Render("grepr") + SubtitleStyle.Render(" - search files for lines matching a regular expression") + `

Each FILE is searched in order; "-" (the default) reads standard input.
Matching lines are printed without their trailing whitespace, prefixed
with the file name when more than one source is searched. Unreadable
paths are reported on stderr and the search continues.

` + SubtitleStyle.Render("Examples:") + `
  ` + CmdStyle.Render("grepr 'err(or)?' app.log") + `        Print matching lines
  ` + CmdStyle.Render("grepr -ci todo main.go util.go") + `   Count matches per file, ignoring case
  ` + CmdStyle.Render("grepr -rv '^#' conf/") + `             Print non-comment lines of every file
  ` + CmdStyle.Render("cat notes | grepr idea") + `           Search standard input`,
		Args:          cobra.MinimumNArgs(1),
		RunE:          a.runSearch,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	f.SetInterspersed(true)
	f.BoolVarP(&a.flags.count, "count", "c", false, "print only the number of selected lines per source")
	f.BoolVarP(&a.flags.ignoreCase, "insensitive", "i", false, "match case-insensitively")
	f.BoolVarP(&a.flags.invertMatch, "invert-match", "v", false, "select non-matching lines")
	f.BoolVarP(&a.flags.recursive, "recursive", "r", false, "search directories recursively")
	f.StringArrayVar(&a.flags.excludeDirs, "exclude-dir", nil, "skip directories whose name matches `GLOB` when recursing (repeatable)")
	f.StringVar(&a.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/grepr/config.cue)")
	f.BoolVar(&a.flags.verbose, "verbose", false, "enable debug diagnostics and issue hints on stderr")

	return cmd
}

// runSearch merges flags over the configuration and runs the search.
// Per-entry failures only set the exit code; everything else is returned.
func (a *app) runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	a.verbose = a.flags.verbose
	cfg := a.loadConfig(ctx)
	a.verbose = pick(flags, "verbose", a.flags.verbose, cfg.UI.Verbose)

	logger := logging.New(a.stderr, a.verbose)
	if cfg.Source != "" {
		logger.Debug("loaded config", "path", cfg.Source)
	}

	excludeDirs := cfg.ExcludeDirs
	if flags.Changed("exclude-dir") {
		excludeDirs = a.flags.excludeDirs
	}

	searchCfg, err := search.NewSearchConfig(search.Options{
		Pattern:     args[0],
		Paths:       args[1:],
		IgnoreCase:  pick(flags, "insensitive", a.flags.ignoreCase, cfg.IgnoreCase),
		Recursive:   pick(flags, "recursive", a.flags.recursive, cfg.Recursive),
		CountOnly:   pick(flags, "count", a.flags.count, cfg.Count),
		InvertMatch: pick(flags, "invert-match", a.flags.invertMatch, cfg.InvertMatch),
		ExcludeDirs: excludeDirs,
	})
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: patternError(err)}
	}

	return a.search(ctx, searchCfg, logger)
}

func (a *app) search(ctx context.Context, cfg search.SearchConfig, logger *log.Logger) error {
	err := search.NewSearcher(cfg,
		search.WithStdin(a.stdin),
		search.WithStdout(a.stdout),
		search.WithStderr(a.stderr),
		search.WithLogger(logger),
	).Run(ctx)

	var runErr *search.RunError
	switch {
	case errors.As(err, &runErr):
		logger.Debug("search finished with failures", "failed", runErr.Failed, "total", runErr.Total)
		if a.verbose {
			renderHints(a.stderr, runErr)
		}
		a.exitCode = types.ExitFailure
		return nil
	case err != nil:
		return &ExitError{Code: types.ExitFailure, Err: issue.WrapWithContext(err, "search", "")}
	default:
		a.exitCode = types.ExitSuccess
		return nil
	}
}

// loadConfig returns the user configuration, or the defaults after printing
// a warning when it cannot be loaded.
func (a *app) loadConfig(ctx context.Context) *config.Config {
	cfg, err := a.provider.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		return config.DefaultConfig()
	}
	return cfg
}

// handleError prints fatal errors for fang.
func (a *app) handleError(w io.Writer, _ fang.Styles, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("grepr:")+" "+formatErrorForDisplay(err, a.verbose))
	if a.verbose {
		renderHints(w, err)
	}
}

// pick returns the flag value when it was set on the command line and the
// configured value otherwise.
func pick(flags *pflag.FlagSet, name string, flagValue, configured bool) bool {
	if flags.Changed(name) {
		return flagValue
	}
	return configured
}

// patternError attaches remediation hints to a search configuration error.
func patternError(err error) error {
	var cfgErr *search.ConfigError
	if !errors.As(err, &cfgErr) {
		return err
	}

	ctx := issue.NewErrorContext().WithIssue(issue.InvalidPatternId).Wrap(err)
	if cfgErr.Field == "exclude-dir" {
		return ctx.WithOperation("parse --exclude-dir glob").
			WithSuggestion("Globs follow filepath.Match syntax; escape a literal '[' as '\\['").
			BuildError()
	}
	return ctx.WithOperation("compile search pattern").
		WithSuggestion("Patterns use RE2 syntax; escape literal metacharacters with a backslash").
		WithSuggestion("Quote the pattern so the shell passes it unchanged").
		BuildError()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Run executes grepr with args and returns the process exit code: 0 when
// every entry was searched, 1 when any entry failed or the invocation was
// invalid. Finding no matching line is not a failure.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) types.ExitCode {
	a := newApp(stdin, stdout, stderr)
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(a.handleError),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return types.ExitFailure
	}
	return a.exitCode
}

// Execute runs grepr against the process arguments and streams and exits.
// This is called by main.main().
func Execute() {
	os.Exit(int(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)))
}
