package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ignorelib/internal/scanner"
	"github.com/Aman-CERP/ignorelib/pkg/ignore"
)

type walkOptions struct {
	dirs           bool
	globs          []string
	excludes       []string
	skipEmpty      bool
	followSymlinks bool
	json           bool
}

func newWalkCmd(root *rootOptions) *cobra.Command {
	opts := &walkOptions{}

	cmd := &cobra.Command{
		Use:   "walk",
		Short: "List the files that are not ignored",
		Long: `Walk the project tree top-down and print every file that is not
ignored, relative to the root. Ignored directories are never entered.

With --dirs, print the visited directories instead.`,
		Example: `  # Every kept file
  ignorelib walk

  # Only Go sources outside testdata
  ignorelib walk --glob '**/*.go' --exclude '**/testdata/**'

  # Directories that contain at least one kept entry
  ignorelib walk --dirs --skip-empty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWalk(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dirs, "dirs", false, "List directories instead of files")
	cmd.Flags().StringArrayVarP(&opts.globs, "glob", "g", nil, "Only list files matching this doublestar glob (repeatable)")
	cmd.Flags().StringArrayVar(&opts.excludes, "exclude", nil, "Skip files matching this doublestar glob (repeatable)")
	cmd.Flags().BoolVar(&opts.skipEmpty, "skip-empty", false, "Omit directories whose entries are all ignored")
	cmd.Flags().BoolVarP(&opts.followSymlinks, "follow-symlinks", "L", false, "Descend into symlinked directories")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output as JSON")

	return cmd
}

func runWalk(cmd *cobra.Command, root *rootOptions, opts *walkOptions) error {
	s, err := root.open(cmd)
	if err != nil {
		return err
	}
	defer root.close()

	if cmd.Flags().Changed("skip-empty") {
		s.cfg.Walk.SkipEmptyDirs = opts.skipEmpty
	}
	if cmd.Flags().Changed("follow-symlinks") {
		s.cfg.Walk.FollowSymlinks = opts.followSymlinks
	}

	if opts.dirs {
		return walkDirs(s, opts)
	}

	scanOpts := &scanner.Options{
		Include:        s.cfg.Walk.Include,
		Exclude:        append(s.cfg.Walk.Exclude, opts.excludes...),
		MaxFileSize:    s.cfg.Walk.MaxFileSize,
		SkipBinary:     s.cfg.Walk.SkipBinary,
		FollowSymlinks: s.cfg.Walk.FollowSymlinks,
	}
	if len(opts.globs) > 0 {
		scanOpts.Include = opts.globs
	}

	files, err := scanner.New(s.manager, s.logger).ScanAll(cmd.Context(), scanOpts)
	if err != nil {
		return err
	}

	if opts.json || s.cfg.Output.Format == "json" {
		if files == nil {
			files = []scanner.FileInfo{}
		}
		return s.out.JSON(files)
	}
	for _, f := range files {
		s.out.Line(f.Path)
	}
	return nil
}

func walkDirs(s *session, opts *walkOptions) error {
	var entries []ignore.WalkEntry
	for entry, err := range s.manager.Walk(s.cfg.WalkOptions()...) {
		if err != nil {
			s.logger.Warn("failed to read directory", errorAttrs(err)...)
			continue
		}
		entries = append(entries, entry)
	}

	if opts.json || s.cfg.Output.Format == "json" {
		if entries == nil {
			entries = []ignore.WalkEntry{}
		}
		return s.out.JSON(entries)
	}
	for _, e := range entries {
		s.out.Line(e.Dir)
	}
	return nil
}
