package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ignorelib/internal/errors"
	"github.com/Aman-CERP/ignorelib/internal/export"
)

type snapshotOptions struct {
	format string
	out    string
	noWalk bool
}

func newSnapshotCmd(root *rootOptions) *cobra.Command {
	opts := &snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export every loaded ignore rule",
		Long: `Walk the tree so every reachable ignore file is loaded, then print
the collected rules: the literal global patterns, each global ignore
file and each directory's ignore file, with patterns as written.

Ignored directories are not entered, so their ignore files are not
part of the snapshot.`,
		Example: `  # YAML to stdout
  ignorelib snapshot

  # JSON file, written atomically under a lock
  ignorelib snapshot --out rules.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.noWalk, "no-walk", false, "Only export global rules and the root's ignore file")

	return cmd
}

func runSnapshot(cmd *cobra.Command, root *rootOptions, opts *snapshotOptions) error {
	s, err := root.open(cmd)
	if err != nil {
		return err
	}
	defer root.close()

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return errors.ValidationError(err.Error(), err)
	}
	if opts.out != "" && !cmd.Flags().Changed("format") {
		format = export.FormatForPath(opts.out)
	}

	if opts.noWalk {
		// Loads the root's rules only
		for range s.manager.Walk() {
			break
		}
	} else {
		for _, err := range s.manager.Walk(s.cfg.WalkOptions()...) {
			if err != nil {
				s.logger.Warn("failed to read directory", errorAttrs(err)...)
			}
		}
	}

	snap := s.manager.Snapshot()

	if opts.out == "" {
		return export.Encode(s.out.Out(), format, snap)
	}

	if err := export.WriteFile(cmd.Context(), opts.out, format, snap); err != nil {
		return errors.New(errors.ErrCodeWriteFailed, "failed to write snapshot", err).
			WithDetail("path", opts.out)
	}
	s.logger.Debug("snapshot written", slog.String("path", opts.out))
	return nil
}
