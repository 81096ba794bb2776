// Package cmd provides the CLI commands for ignorelib.
package cmd

import (
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ignorelib/internal/config"
	"github.com/Aman-CERP/ignorelib/internal/errors"
	"github.com/Aman-CERP/ignorelib/internal/logging"
	"github.com/Aman-CERP/ignorelib/internal/output"
	"github.com/Aman-CERP/ignorelib/pkg/ignore"
	"github.com/Aman-CERP/ignorelib/pkg/version"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	root        string
	ignoreFile  string
	globalFiles []string
	patterns    []string
	ignoreCase  bool
	debug       bool
	logLevel    string
	color       string

	cleanup func()
}

// NewRootCmd creates the root command for ignorelib CLI.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ignorelib",
		Short: "Resolve gitignore rules for a directory tree",
		Long: `ignorelib answers, for any path under a project root, whether it is
ignored by the gitignore rule language and which rule decided it.

Rules are collected from literal global patterns, global ignore files
(such as ~/.gitignore_global) and the per-directory ignore files found
while descending the tree. An ignored directory prunes everything beneath
it unless a path is itself explicitly re-included.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("ignorelib version {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.root, "root", "C", "", "Project root (default: nearest directory with .git or .ignorelib.yaml)")
	pf.StringVar(&opts.ignoreFile, "ignore-file", "", "Per-directory ignore file name (default: .gitignore)")
	pf.StringArrayVar(&opts.globalFiles, "global-file", nil, "Additional global ignore file (repeatable)")
	pf.StringArrayVarP(&opts.patterns, "pattern", "p", nil, "Additional global pattern (repeatable)")
	pf.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "Match patterns case-insensitively")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging to ~/.ignorelib/logs/")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.color, "color", "", "Colour output: auto, always, never")

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newWalkCmd(opts))
	cmd.AddCommand(newSnapshotCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd, opts
}

// Execute runs the root command and prints any error.
func Execute() error {
	cmd, opts := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), formatError(err, opts.debug))
	}
	return err
}

// formatError renders a command error for stderr. With --debug the cause
// and details are included.
func formatError(err error, debug bool) string {
	if debug {
		return errors.FormatForUser(err, true) + "\n"
	}
	return errors.FormatForCLI(err)
}

// errorAttrs flattens err into slog attributes, sorted by key.
func errorAttrs(err error) []any {
	fields := errors.FormatForLog(err)
	attrs := make([]any, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}

// session is everything a command needs after flags and config are merged.
type session struct {
	root    string
	cfg     *config.Config
	manager *ignore.Manager
	logger  *slog.Logger
	out     *output.Writer
}

// resolveRoot returns the absolute project root.
func (o *rootOptions) resolveRoot() (string, error) {
	if o.root == "" {
		return config.FindProjectRoot(".")
	}
	root, err := filepath.Abs(o.root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root: %w", err)
	}
	return root, nil
}

// loadConfig loads the layered config and applies flag overrides.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (string, *config.Config, error) {
	root, err := o.resolveRoot()
	if err != nil {
		return "", nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, errors.ConfigError("failed to load configuration", err).
			WithDetail("root", root).
			WithSuggestion("Check .ignorelib.yaml, the user config and IGNORELIB_* variables")
	}

	flags := cmd.Flags()
	if flags.Changed("ignore-file") {
		cfg.Ignore.FileName = o.ignoreFile
	}
	if flags.Changed("ignore-case") {
		cfg.Ignore.IgnoreCase = o.ignoreCase
	}
	cfg.Ignore.GlobalFiles = append(cfg.Ignore.GlobalFiles, o.globalFiles...)
	cfg.Ignore.GlobalPatterns = append(cfg.Ignore.GlobalPatterns, o.patterns...)
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("color") {
		cfg.Output.Color = o.color
	}

	if err := cfg.Validate(); err != nil {
		return "", nil, errors.ConfigError("invalid flags", err)
	}
	return root, cfg, nil
}

// open builds a session: config, logger, manager and output writer.
// Callers must defer close once open succeeds.
func (o *rootOptions) open(cmd *cobra.Command) (*session, error) {
	root, cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := o.setupLogging(cmd, cfg)
	if err != nil {
		return nil, err
	}

	m, err := ignore.New(root, cfg.ManagerOptions(logger)...)
	if err != nil {
		o.close()
		return nil, err
	}

	logger.Debug("manager ready",
		slog.String("root", m.Root()),
		slog.String("ignore_file", m.IgnoreFileName()),
		slog.Int("global_files", len(m.GlobalFiles())))

	return &session{
		root:    root,
		cfg:     cfg,
		manager: m,
		logger:  logger,
		out:     output.NewWithColor(cmd.OutOrStdout(), cfg.Output.Color),
	}, nil
}

func (o *rootOptions) setupLogging(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	if !o.debug {
		return logging.NewTextLogger(cmd.ErrOrStderr(), logging.LevelFromString(cfg.LogLevel)), nil
	}

	logCfg := logging.DebugConfig()
	logCfg.WriteToStderr = false
	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup debug logging: %w", err)
	}
	o.cleanup = cleanup
	logger.Info("Debug logging enabled",
		slog.String("log_file", logCfg.FilePath),
		slog.String("version", version.Short()))
	return logger, nil
}

func (o *rootOptions) close() {
	if o.cleanup != nil {
		o.cleanup()
		o.cleanup = nil
	}
}
