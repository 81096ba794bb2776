package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ignorelib/configs"
	"github.com/Aman-CERP/ignorelib/internal/config"
	"github.com/Aman-CERP/ignorelib/internal/errors"
	"github.com/Aman-CERP/ignorelib/internal/output"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage ignorelib configuration files.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/ignorelib/config.yaml)
  3. Project config (.ignorelib.yaml)
  4. Environment variables (IGNORELIB_*)
  5. Command-line flags`,
		Example: `  # Create a project config with defaults
  ignorelib config init

  # Show effective configuration
  ignorelib config show

  # Print config file paths
  ignorelib config path`,
	}

	cmd.AddCommand(newConfigInitCmd(root))
	cmd.AddCommand(newConfigShowCmd(root))
	cmd.AddCommand(newConfigPathCmd(root))

	return cmd
}

func newConfigInitCmd(root *rootOptions) *cobra.Command {
	var force, user bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with defaults",
		Long: `Write the default configuration to .ignorelib.yaml in the project
root, or to the user config file with --user.

An existing file is left alone unless --force is given, in which case it
is backed up next to itself before being replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, root, user, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration (a backup is kept)")
	cmd.Flags().BoolVar(&user, "user", false, "Write the user config instead of the project config")

	return cmd
}

func runConfigInit(cmd *cobra.Command, root *rootOptions, user, force bool) error {
	out := output.New(cmd.OutOrStdout())

	path, exists, err := configTarget(root, user)
	if err != nil {
		return err
	}

	var backupPath string
	if exists {
		if !force {
			return errors.New(errors.ErrCodeInvalidInput, "configuration already exists", nil).
				WithDetail("path", path).
				WithSuggestion("Use --force to replace it; the current file is backed up first")
		}
		if user {
			backupPath, err = config.BackupUserConfig()
		} else {
			backupPath, err = config.BackupFile(path)
		}
		if err != nil {
			return errors.New(errors.ErrCodeWriteFailed, "failed to back up configuration", err)
		}
	}

	template := configs.ProjectConfigTemplate
	if user {
		template = configs.UserConfigTemplate
	}
	if err := config.WriteTemplate(path, template); err != nil {
		return errors.New(errors.ErrCodeWriteFailed, "failed to write configuration", err).
			WithDetail("path", path)
	}

	if backupPath == "" {
		out.Successf("Created %s", path)
		return nil
	}
	out.Warningf("Replaced %s", path)
	out.Statusf("", "Backup: %s", backupPath)
	return nil
}

// configTarget returns the file config init writes and whether it exists.
func configTarget(root *rootOptions, user bool) (string, bool, error) {
	if user {
		return config.GetUserConfigPath(), config.UserConfigExists(), nil
	}
	dir, err := root.resolveRoot()
	if err != nil {
		return "", false, err
	}
	if existing := config.ProjectConfigPath(dir); existing != "" {
		return existing, true, nil
	}
	return filepath.Join(dir, config.ProjectConfigYAML), false, nil
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		source     string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the configuration after merging defaults, the user config, the
project config, environment variables and flags.

With --source, show a single layer over the defaults instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, root, jsonOutput, source)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, user, project, defaults")

	return cmd
}

func runConfigShow(cmd *cobra.Command, root *rootOptions, jsonOutput bool, source string) error {
	out := output.New(cmd.OutOrStdout())

	var cfg *config.Config
	switch source {
	case "merged":
		_, merged, err := root.loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = merged

	case "user":
		if !config.UserConfigExists() {
			return errors.New(errors.ErrCodeConfigNotFound, "no user configuration file found", nil).
				WithDetail("path", config.GetUserConfigPath()).
				WithSuggestion("Run 'ignorelib config init --user' to create one")
		}
		userCfg, err := config.LoadFile(config.GetUserConfigPath())
		if err != nil {
			return errors.ConfigError("failed to load user config", err)
		}
		cfg = userCfg

	case "project":
		dir, err := root.resolveRoot()
		if err != nil {
			return err
		}
		path := config.ProjectConfigPath(dir)
		if path == "" {
			return errors.New(errors.ErrCodeConfigNotFound, "no project configuration file found", nil).
				WithDetail("root", dir).
				WithSuggestion("Run 'ignorelib config init' to create one")
		}
		projectCfg, err := config.LoadFile(path)
		if err != nil {
			return errors.ConfigError("failed to load project config", err)
		}
		cfg = projectCfg

	case "defaults":
		cfg = config.NewConfig()

	default:
		return errors.ValidationError(
			fmt.Sprintf("invalid source: %s (use: merged, user, project, defaults)", source), nil)
	}

	if jsonOutput {
		return out.JSON(cfg)
	}
	return out.YAML(cfg)
}

func newConfigPathCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := output.New(cmd.OutOrStdout())
			out.Line("user:    " + config.GetUserConfigPath())
			if err := printBackups(out, config.ListUserConfigBackups); err != nil {
				return err
			}

			dir, err := root.resolveRoot()
			if err != nil {
				return err
			}
			project := config.ProjectConfigPath(dir)
			if project == "" {
				out.Line("project: " + filepath.Join(dir, config.ProjectConfigYAML) + " (not found)")
				return nil
			}
			out.Line("project: " + project)
			return printBackups(out, func() ([]string, error) { return config.ListBackups(project) })
		},
	}
}

// printBackups lists backups, newest first, under the path they belong to.
func printBackups(out *output.Writer, list func() ([]string, error)) error {
	backups, err := list()
	if err != nil {
		return errors.ConfigError("failed to list configuration backups", err)
	}
	for _, b := range backups {
		out.Statusf("", "backup: %s", b)
	}
	return nil
}
