package ignore

// Snapshot is a plain copy of every rule set a Manager has loaded.
// Patterns are kept as written, in source order.
type Snapshot struct {
	// Root is the absolute root directory.
	Root string `json:"root" yaml:"root"`
	// IgnoreFileName is the per-directory ignore file name.
	IgnoreFileName string `json:"ignore_file_name" yaml:"ignore_file_name"`
	// GlobalPatterns are the literal global patterns.
	GlobalPatterns []string `json:"global_patterns" yaml:"global_patterns"`
	// GlobalFiles maps each loaded global ignore file to its patterns.
	GlobalFiles map[string][]string `json:"global_files" yaml:"global_files"`
	// Directories maps each visited directory ("." for the root) to the
	// patterns of its ignore file. Directories without one map to an empty list.
	Directories map[string][]string `json:"directories" yaml:"directories"`
}

// Snapshot copies the loaded state. It never reads the filesystem, so only
// directories already visited by Resolve or Walk appear.
func (m *Manager) Snapshot() Snapshot {
	s := Snapshot{
		Root:           m.root,
		IgnoreFileName: m.ignoreFileName,
		GlobalPatterns: m.global.Patterns(),
		GlobalFiles:    make(map[string][]string, len(m.globalFiles)),
	}

	for _, rs := range m.globalFiles {
		s.GlobalFiles[rs.Origin()] = rs.Patterns()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	s.Directories = make(map[string][]string, len(m.dirs))
	for dir, rs := range m.dirs {
		s.Directories[dir] = rs.Patterns()
	}
	return s
}

// AsMap returns the snapshot as nested maps, lists and strings only.
func (s Snapshot) AsMap() map[string]any {
	files := make(map[string]any, len(s.GlobalFiles))
	for k, v := range s.GlobalFiles {
		files[k] = toAnySlice(v)
	}

	dirs := make(map[string]any, len(s.Directories))
	for k, v := range s.Directories {
		dirs[k] = toAnySlice(v)
	}

	return map[string]any{
		"root":             s.Root,
		"ignore_file_name": s.IgnoreFileName,
		"global_patterns":  toAnySlice(s.GlobalPatterns),
		"global_files":     files,
		"directories":      dirs,
	}
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
