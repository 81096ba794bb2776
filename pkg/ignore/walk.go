package ignore

import (
	"iter"
	"os"
	"path"
	"slices"
)

// WalkEntry is one directory yielded by Walk.
type WalkEntry struct {
	// Dir is the slash-separated directory relative to the root, "." for the root.
	Dir string `json:"dir" yaml:"dir"`
	// AbsDir is the directory's absolute path.
	AbsDir string `json:"abs_dir" yaml:"abs_dir"`
	// Subdirs are the names of kept subdirectories, sorted.
	Subdirs []string `json:"subdirs" yaml:"subdirs"`
	// Files are the names of kept non-directory entries, sorted.
	Files []string `json:"files" yaml:"files"`
}

// Path returns the root-relative path of a name listed in the entry.
func (e WalkEntry) Path(name string) string {
	return joinRel(e.Dir, name)
}

func (e WalkEntry) empty() bool {
	return len(e.Subdirs) == 0 && len(e.Files) == 0
}

// WalkOption configures Walk.
type WalkOption func(*walkOptions)

type walkOptions struct {
	skipEmptyDirs  bool
	followSymlinks bool
}

// WithSkipEmptyDirs omits directories left with no entries after filtering.
// The root is always yielded.
func WithSkipEmptyDirs() WalkOption {
	return func(o *walkOptions) {
		o.skipEmptyDirs = true
	}
}

// WithFollowSymlinks treats symlinks to directories as directories.
func WithFollowSymlinks(follow bool) WalkOption {
	return func(o *walkOptions) {
		o.followSymlinks = follow
	}
}

// frame is a directory waiting to be yielded. entry is set when the listing
// was already read.
type frame struct {
	dir   string
	entry *WalkEntry
	err   error
}

// Walk enumerates the tree top-down, depth first. Ignored files are left out
// and ignored directories are neither listed nor descended into. Directories
// that cannot be read are yielded with an error and skipped.
//
// Each call starts a fresh traversal; stop early by breaking out of the loop.
func (m *Manager) Walk(opts ...WalkOption) iter.Seq2[WalkEntry, error] {
	var o walkOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(yield func(WalkEntry, error) bool) {
		w := &walker{m: m, opts: o}
		if info, err := m.fs.Stat(m.root); err == nil {
			w.visited = append(w.visited, info)
		}

		stack := []frame{{dir: rootDir}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if f.entry == nil && f.err == nil {
				entry, err := w.list(f.dir)
				f.entry, f.err = &entry, err
			}
			if f.err != nil {
				if !yield(WalkEntry{Dir: f.dir, AbsDir: m.abs(f.dir)}, f.err) {
					return
				}
				continue
			}

			entry := *f.entry
			children := make([]frame, 0, len(entry.Subdirs))
			if o.skipEmptyDirs {
				// list children now so empty ones can be dropped from Subdirs
				kept := make([]string, 0, len(entry.Subdirs))
				for _, name := range entry.Subdirs {
					child, err := w.list(entry.Path(name))
					if err == nil && child.empty() {
						continue
					}
					kept = append(kept, name)
					children = append(children, frame{dir: entry.Path(name), entry: &child, err: err})
				}
				entry.Subdirs = kept
			} else {
				for _, name := range entry.Subdirs {
					children = append(children, frame{dir: entry.Path(name)})
				}
			}

			if !yield(entry, nil) {
				return
			}

			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// walker holds the state of one traversal.
type walker struct {
	m       *Manager
	opts    walkOptions
	visited []os.FileInfo
}

// list reads dir and filters its entries through the manager.
func (w *walker) list(dir string) (WalkEntry, error) {
	m := w.m
	entry := WalkEntry{
		Dir:     dir,
		AbsDir:  m.abs(dir),
		Subdirs: []string{},
		Files:   []string{},
	}

	infos, err := m.fs.ReadDir(entry.AbsDir)
	if err != nil {
		return entry, readDirFailed(dir, err)
	}

	m.loadScopes(dir)

	for _, info := range infos {
		name := info.Name()
		rel := joinRel(dir, name)
		isDir := info.IsDir()

		if info.Mode()&os.ModeSymlink != 0 {
			isDir = w.followDir(rel)
		}

		if m.resolve(rel, isDir).verdict == Ignore {
			continue
		}

		if isDir {
			entry.Subdirs = append(entry.Subdirs, name)
		} else {
			entry.Files = append(entry.Files, name)
		}
	}

	slices.Sort(entry.Subdirs)
	slices.Sort(entry.Files)
	return entry, nil
}

// followDir reports whether the symlink at rel should be descended into.
// Targets already visited in this traversal are treated as files.
func (w *walker) followDir(rel string) bool {
	if !w.opts.followSymlinks {
		return false
	}

	info, err := w.m.fs.Stat(w.m.abs(rel))
	if err != nil || !info.IsDir() {
		return false
	}
	for _, seen := range w.visited {
		if os.SameFile(seen, info) {
			return false
		}
	}
	w.visited = append(w.visited, info)
	return true
}

func joinRel(dir, name string) string {
	if dir == rootDir {
		return name
	}
	return path.Join(dir, name)
}
