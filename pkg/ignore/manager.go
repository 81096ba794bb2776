// Package ignore resolves gitignore-style verdicts for paths under a root
// directory. A Manager combines literal global patterns, an ordered list of
// global ignore files and per-directory ignore files that are loaded lazily
// the first time a path beneath them is queried.
package ignore

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Aman-CERP/ignorelib/internal/gitignore"
)

// DefaultIgnoreFileName is the per-directory ignore file looked for by default.
const DefaultIgnoreFileName = ".gitignore"

// GlobalPatternsOrigin identifies the literal global pattern list.
const GlobalPatternsOrigin = "global_patterns"

// rootDir is the key of the root directory in the per-directory cache.
const rootDir = "."

// Verdict is the three-valued result of resolving a path.
type Verdict = gitignore.Verdict

const (
	// NoOpinion means no rule in any scope matched the path.
	NoOpinion = gitignore.NoOpinion
	// Ignore means the path, or a directory above it, is excluded.
	Ignore = gitignore.Ignore
	// Unignore means a negated rule explicitly re-includes the path.
	Unignore = gitignore.Unignore
)

// Manager resolves verdicts for paths relative to one root directory.
// It is safe for concurrent use. Each directory's ignore file is read at most
// once for the lifetime of the Manager.
type Manager struct {
	root           string
	ignoreFileName string
	fs             FileSystem
	logger         *slog.Logger
	compiler       *gitignore.Compiler

	global      *gitignore.RuleSet
	globalFiles []*gitignore.RuleSet

	mu    sync.RWMutex
	dirs  map[string]*gitignore.RuleSet
	loads singleflight.Group
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	globalFiles    []string
	globalPatterns []string
	ignoreFileName string
	ignoreCase     bool
	fs             FileSystem
	logger         *slog.Logger
	cacheSize      int
}

// WithGlobalIgnoreFiles adds global ignore files, highest precedence first.
// Relative paths are resolved against the root and a leading ~ is expanded.
func WithGlobalIgnoreFiles(paths ...string) Option {
	return func(o *options) {
		o.globalFiles = append(o.globalFiles, paths...)
	}
}

// WithGlobalPatterns adds literal patterns evaluated relative to the root
// with the lowest precedence.
func WithGlobalPatterns(patterns ...string) Option {
	return func(o *options) {
		o.globalPatterns = append(o.globalPatterns, patterns...)
	}
}

// WithIgnoreFileName sets the per-directory ignore file name.
func WithIgnoreFileName(name string) Option {
	return func(o *options) {
		o.ignoreFileName = name
	}
}

// WithIgnoreCase makes every rule match case-insensitively.
func WithIgnoreCase(ignoreCase bool) Option {
	return func(o *options) {
		o.ignoreCase = ignoreCase
	}
}

// WithFileSystem replaces the host filesystem.
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPatternCacheSize sets the size of the compiled pattern cache.
func WithPatternCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// New creates a Manager rooted at root. Global ignore files are read
// immediately; files that are missing or unreadable contribute nothing.
func New(root string, opts ...Option) (*Manager, error) {
	o := options{ignoreFileName: DefaultIgnoreFileName}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateIgnoreFileName(o.ignoreFileName); err != nil {
		return nil, err
	}

	if root == "" {
		return nil, invalidRoot(root, nil)
	}
	absRoot, err := filepath.Abs(expandHome(root))
	if err != nil {
		return nil, invalidRoot(root, err)
	}

	if o.fs == nil {
		o.fs = OSFileSystem()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	info, err := o.fs.Stat(absRoot)
	if err != nil {
		return nil, invalidRoot(root, err)
	}
	if !info.IsDir() {
		return nil, invalidRoot(root, fmt.Errorf("%s is not a directory", absRoot))
	}

	compiler, err := gitignore.NewCompiler(o.ignoreCase, o.cacheSize)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		root:           absRoot,
		ignoreFileName: o.ignoreFileName,
		fs:             o.fs,
		logger:         o.logger,
		compiler:       compiler,
		global:         gitignore.NewRuleSet(GlobalPatternsOrigin, "", o.globalPatterns, compiler),
		dirs:           make(map[string]*gitignore.RuleSet),
	}

	for _, p := range o.globalFiles {
		abs := m.globalFilePath(p)
		rs, ok := m.readRuleSet(abs, abs, "")
		if !ok {
			continue
		}
		m.globalFiles = append(m.globalFiles, rs)
	}

	m.logger.Debug("ignore manager created",
		slog.String("root", m.root),
		slog.String("ignore_file", m.ignoreFileName),
		slog.Int("global_files", len(m.globalFiles)),
		slog.Int("global_patterns", m.global.Len()),
		slog.Bool("ignore_case", o.ignoreCase))

	return m, nil
}

func validateIgnoreFileName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return invalidIgnoreFileName(name)
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~`+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

func (m *Manager) globalFilePath(p string) string {
	p = expandHome(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.root, p)
}

// Root returns the absolute root directory.
func (m *Manager) Root() string { return m.root }

// IgnoreFileName returns the per-directory ignore file name.
func (m *Manager) IgnoreFileName() string { return m.ignoreFileName }

// GlobalFiles returns the global ignore files that were loaded, in precedence order.
func (m *Manager) GlobalFiles() []string {
	out := make([]string, 0, len(m.globalFiles))
	for _, rs := range m.globalFiles {
		out = append(out, rs.Origin())
	}
	return out
}

// Resolve returns the verdict for path, a path relative to the root.
// A trailing "/" marks path as a directory; otherwise the filesystem decides,
// and a symlink counts as a file.
//
// A path that a rule explicitly re-includes is Unignore. Otherwise, if any
// ancestor directory resolves to Ignore the path is Ignore, since git never
// looks inside an excluded directory.
func (m *Manager) Resolve(p string) (Verdict, error) {
	d, err := m.decide(p)
	if err != nil {
		return NoOpinion, err
	}
	return d.verdict, nil
}

// IsIgnored is Resolve. Callers distinguish Unignore from NoOpinion.
func (m *Manager) IsIgnored(p string) (Verdict, error) {
	return m.Resolve(p)
}

// Explanation describes how a verdict was reached.
type Explanation struct {
	// Path is the normalized query path.
	Path string `json:"path" yaml:"path"`
	// Verdict is the resolved verdict.
	Verdict Verdict `json:"verdict" yaml:"verdict"`
	// Origin is the source of the deciding rule, empty for NoOpinion.
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`
	// Line is the deciding rule's position in its source.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
	// Pattern is the deciding rule as written.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	// PrunedBy is the ignored ancestor directory, if that decided the verdict.
	PrunedBy string `json:"pruned_by,omitempty" yaml:"pruned_by,omitempty"`
}

// Explain resolves path and reports the deciding rule.
func (m *Manager) Explain(p string) (Explanation, error) {
	d, err := m.decide(p)
	if err != nil {
		return Explanation{}, err
	}

	ex := Explanation{
		Path:     d.path,
		Verdict:  d.verdict,
		PrunedBy: d.prunedBy,
	}
	if d.set != nil {
		r := d.set.Rule(d.index)
		ex.Origin = r.Origin()
		ex.Line = r.Line()
		ex.Pattern = r.Pattern()
	}
	return ex, nil
}

// decision is a verdict with the rule that produced it.
type decision struct {
	path     string
	verdict  Verdict
	set      *gitignore.RuleSet
	index    int
	prunedBy string
}

func (m *Manager) decide(p string) (decision, error) {
	rel, isDir, err := m.normalize(p)
	if err != nil {
		return decision{}, err
	}

	if !isDir {
		if info, err := m.fs.Lstat(m.abs(rel)); err == nil && info.IsDir() {
			isDir = true
		}
	}

	m.loadAncestors(rel)
	return m.resolve(rel, isDir), nil
}

// resolve applies the containment rule. Every ancestor of rel must be loaded.
func (m *Manager) resolve(rel string, isDir bool) decision {
	d := m.direct(rel, isDir)
	d.path = rel
	if d.verdict == Unignore {
		return d
	}

	for _, anc := range ancestors(rel) {
		if a := m.direct(anc, true); a.verdict == Ignore {
			a.path = rel
			a.prunedBy = anc
			return a
		}
	}
	return d
}

// direct walks the scopes of rel from most to least specific and returns the
// first opinion.
func (m *Manager) direct(rel string, isDir bool) decision {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for dir := path.Dir(rel); ; dir = path.Dir(dir) {
		rs := m.dirs[dir]
		if v, i := rs.Decide(relativeTo(rel, dir), isDir); v != NoOpinion {
			return decision{verdict: v, set: rs, index: i}
		}
		if dir == rootDir {
			break
		}
	}

	for _, rs := range m.globalFiles {
		if v, i := rs.Decide(rel, isDir); v != NoOpinion {
			return decision{verdict: v, set: rs, index: i}
		}
	}

	if v, i := m.global.Decide(rel, isDir); v != NoOpinion {
		return decision{verdict: v, set: m.global, index: i}
	}
	return decision{verdict: NoOpinion, index: -1}
}

// normalize validates a query path and returns it slash-separated and clean.
func (m *Manager) normalize(p string) (string, bool, error) {
	if p == "" {
		return "", false, invalidPath(p, "empty path")
	}

	slashed := filepath.ToSlash(p)
	if filepath.IsAbs(p) || strings.HasPrefix(slashed, "/") {
		return "", false, invalidPath(p, "path must be relative to the root")
	}

	isDir := strings.HasSuffix(slashed, "/")
	rel := path.Clean(slashed)
	switch {
	case rel == "..", strings.HasPrefix(rel, "../"):
		return "", false, pathOutsideRoot(p)
	case rel == rootDir:
		return "", false, invalidPath(p, "path refers to the root itself")
	}
	return rel, isDir, nil
}

func (m *Manager) abs(rel string) string {
	if rel == rootDir {
		return m.root
	}
	return filepath.Join(m.root, filepath.FromSlash(rel))
}

// loadAncestors makes sure the rule set of every directory above rel,
// including the root, is cached.
func (m *Manager) loadAncestors(rel string) {
	m.loadDir(rootDir)
	for _, dir := range ancestors(rel) {
		m.loadDir(dir)
	}
}

// loadScopes caches the rule sets that apply to entries of dir.
func (m *Manager) loadScopes(dir string) {
	m.loadDir(rootDir)
	if dir == rootDir {
		return
	}
	for _, anc := range ancestors(dir) {
		m.loadDir(anc)
	}
	m.loadDir(dir)
}

// loadDir returns the cached rule set of dir, reading its ignore file once.
func (m *Manager) loadDir(dir string) *gitignore.RuleSet {
	m.mu.RLock()
	rs, ok := m.dirs[dir]
	m.mu.RUnlock()
	if ok {
		return rs
	}

	v, _, _ := m.loads.Do(dir, func() (any, error) {
		m.mu.RLock()
		rs, ok := m.dirs[dir]
		m.mu.RUnlock()
		if ok {
			return rs, nil
		}

		scope := dir
		if dir == rootDir {
			scope = ""
		}
		rs, _ = m.readRuleSet(m.abs(path.Join(dir, m.ignoreFileName)), path.Join(dir, m.ignoreFileName), scope)

		m.mu.Lock()
		m.dirs[dir] = rs
		m.mu.Unlock()
		return rs, nil
	})
	return v.(*gitignore.RuleSet)
}

// readRuleSet reads and compiles an ignore file. A file that is missing,
// unreadable or not a regular file yields an empty set and false.
func (m *Manager) readRuleSet(abs, origin, scope string) (*gitignore.RuleSet, bool) {
	info, err := m.fs.Stat(abs)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Debug("ignore file not available",
				slog.String("path", abs),
				slog.String("error", err.Error()))
		}
		return gitignore.Empty(origin, scope), false
	}
	if !info.Mode().IsRegular() {
		m.logger.Debug("ignore file is not a regular file", slog.String("path", abs))
		return gitignore.Empty(origin, scope), false
	}

	data, err := m.fs.ReadFile(abs)
	if err != nil {
		m.logger.Debug("failed to read ignore file",
			slog.String("path", abs),
			slog.String("error", err.Error()))
		return gitignore.Empty(origin, scope), false
	}

	rs, err := gitignore.ParseRuleSet(origin, scope, bytes.NewReader(data), m.compiler)
	if err != nil {
		m.logger.Debug("failed to parse ignore file",
			slog.String("path", abs),
			slog.String("error", err.Error()))
		return gitignore.Empty(origin, scope), false
	}
	return rs, true
}

// ancestors returns the directories strictly between the root and rel,
// top-down.
func ancestors(rel string) []string {
	var out []string
	for i := 0; i < len(rel); i++ {
		if rel[i] == '/' {
			out = append(out, rel[:i])
		}
	}
	return out
}

// relativeTo returns rel relative to dir. dir must be an ancestor of rel.
func relativeTo(rel, dir string) string {
	if dir == rootDir {
		return rel
	}
	return rel[len(dir)+1:]
}
