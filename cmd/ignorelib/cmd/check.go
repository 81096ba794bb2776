package cmd

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ignorelib/pkg/ignore"
)

type checkOptions struct {
	verbose bool
	table   bool
	json    bool
	stdin   bool
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report the verdict for each path",
		Long: `Report whether each path is ignored, explicitly re-included
(unignored) or not matched by any rule (no-opinion).

Paths are relative to the project root; a trailing slash marks a
directory. Absolute paths inside the root are accepted.`,
		Example: `  # Check a few paths
  ignorelib check build/ main.go

  # Show the deciding rule
  ignorelib check -v app.log

  # Read paths from stdin
  git ls-files -o | ignorelib check --stdin --table`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.stdin {
				return fmt.Errorf("requires at least one path, or --stdin")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show the deciding source, line and pattern")
	cmd.Flags().BoolVar(&opts.table, "table", false, "Render results as a table")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.stdin, "stdin", false, "Read paths from stdin, one per line")

	return cmd
}

func runCheck(cmd *cobra.Command, root *rootOptions, opts *checkOptions, args []string) error {
	s, err := root.open(cmd)
	if err != nil {
		return err
	}
	defer root.close()

	paths := args
	if opts.stdin {
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			// spaces are part of file names; only CRLF endings are stripped
			if line := strings.TrimSuffix(sc.Text(), "\r"); line != "" {
				paths = append(paths, line)
			}
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	results := make([]ignore.Explanation, 0, len(paths))
	for _, p := range paths {
		ex, err := s.manager.Explain(relativeToRoot(s.root, p))
		if err != nil {
			return err
		}
		results = append(results, ex)
	}

	switch {
	case opts.json || s.cfg.Output.Format == "json":
		return s.out.JSON(results)
	case s.cfg.Output.Format == "yaml":
		return s.out.YAML(results)
	case opts.table:
		rows := make([][]string, 0, len(results))
		for _, ex := range results {
			rows = append(rows, []string{ex.Path, s.out.Verdict(ex.Verdict), source(ex), ex.Pattern})
		}
		s.out.Table([]string{"PATH", "VERDICT", "SOURCE", "PATTERN"}, rows)
	default:
		for _, ex := range results {
			line := fmt.Sprintf("%s\t%s", s.out.Verdict(ex.Verdict), ex.Path)
			if opts.verbose {
				if src := source(ex); src != "" {
					line += "\t" + s.out.Dim(src) + "\t" + s.out.Dim(ex.Pattern)
				}
			}
			s.out.Line(line)
		}
	}
	return nil
}

// source describes where a verdict came from.
func source(ex ignore.Explanation) string {
	src := ex.Origin
	if src != "" && ex.Line > 0 {
		src += ":" + strconv.Itoa(ex.Line)
	}
	if ex.PrunedBy != "" {
		src += " (pruned by " + ex.PrunedBy + "/)"
	}
	return src
}

// relativeToRoot turns an absolute path inside root into a root-relative
// one. Anything else is returned unchanged for the manager to validate.
func relativeToRoot(root, p string) string {
	if !filepath.IsAbs(p) {
		return p
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	rel = filepath.ToSlash(rel)
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(filepath.Separator)) {
		rel += "/"
	}
	return rel
}
