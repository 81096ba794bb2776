package gitignore

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ignored compiles a single-pattern rule set and reports whether path is ignored.
func ignored(t *testing.T, pattern, path string, isDir bool) bool {
	t.Helper()
	rs := NewRuleSet("test", "", []string{pattern}, nil)
	return rs.Evaluate(path, isDir) == Ignore
}

// =============================================================================
// Basic Pattern Matching
// =============================================================================

func TestRuleSet_Evaluate_SimplePatterns(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		isDir    bool
		expected bool
	}{
		{name: "exact filename match", pattern: "foo.txt", path: "foo.txt", expected: true},
		{name: "exact filename no match", pattern: "foo.txt", path: "bar.txt", expected: false},
		{name: "filename in subdir", pattern: "foo.txt", path: "src/foo.txt", expected: true},
		{name: "filename deep nested", pattern: "foo.txt", path: "a/b/c/foo.txt", expected: true},
		{name: "name matches directory", pattern: "vendor", path: "vendor", isDir: true, expected: true},
		{name: "partial name no match", pattern: "foo", path: "foobar", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ignored(t, tt.pattern, tt.path, tt.isDir))
		})
	}
}

func TestRuleSet_Evaluate_WildcardPatterns(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		// Extension wildcards
		{name: "*.log matches .log", pattern: "*.log", path: "error.log", expected: true},
		{name: "*.log matches deep .log", pattern: "*.log", path: "logs/error.log", expected: true},
		{name: "*.log no match .txt", pattern: "*.log", path: "error.txt", expected: false},
		{name: "*.c matches dotfile", pattern: "*.c", path: ".c", expected: true},

		// Prefix wildcards
		{name: "test* matches testfile", pattern: "test*", path: "testfile.go", expected: true},
		{name: "test* no match production", pattern: "test*", path: "production.go", expected: false},
		{name: "star does not cross slash", pattern: "/a*b", path: "a/b", expected: false},

		// Question mark (single char)
		{name: "file?.txt matches file1.txt", pattern: "file?.txt", path: "file1.txt", expected: true},
		{name: "file?.txt no match file12.txt", pattern: "file?.txt", path: "file12.txt", expected: false},
		{name: "question mark does not match slash", pattern: "foo?bar", path: "foo/bar", expected: false},

		// Character classes
		{name: "class matches member", pattern: "foo.[ch]", path: "foo.c", expected: true},
		{name: "class no match", pattern: "foo.[dh]", path: "foo.c", expected: false},
		{name: "range matches", pattern: "[a-c].txt", path: "b.txt", expected: true},
		{name: "range no match", pattern: "[a-c].txt", path: "d.txt", expected: false},
		{name: "bang negated class", pattern: "[!a-c].txt", path: "d.txt", expected: true},
		{name: "bang negated class no match", pattern: "[!a-c].txt", path: "a.txt", expected: false},
		{name: "caret negated class", pattern: "[^a].txt", path: "b.txt", expected: true},
		{name: "leading bracket literal member", pattern: "[]a].txt", path: "].txt", expected: true},
		{name: "unterminated class is literal", pattern: "[abc", path: "[abc", expected: true},

		// Named classes
		{name: "alpha class matches letter", pattern: "[[:alpha:]].c", path: "a.c", expected: true},
		{name: "alpha class in subdir", pattern: "[[:alpha:]].c", path: "src/b.c", expected: true},
		{name: "alpha class no match digit", pattern: "[[:alpha:]].c", path: "1.c", expected: false},
		{name: "digit class matches", pattern: "log[[:digit:]]", path: "log7", expected: true},
		{name: "digit class no match letter", pattern: "log[[:digit:]]", path: "logx", expected: false},
		{name: "negated space class matches", pattern: "[![:space:]]x", path: "ax", expected: true},
		{name: "negated space class no match", pattern: "[![:space:]]x", path: " x", expected: false},
		{name: "named class with members", pattern: "[_[:upper:]]*", path: "_tmp", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ignored(t, tt.pattern, tt.path, false))
		})
	}
}

func TestRuleSet_Evaluate_DoubleStarPatterns(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		isDir    bool
		expected bool
	}{
		// Leading **
		{name: "**/logs matches root", pattern: "**/logs", path: "logs", isDir: true, expected: true},
		{name: "**/logs matches one level", pattern: "**/logs", path: "a/logs", isDir: true, expected: true},
		{name: "**/logs matches two levels", pattern: "**/logs", path: "a/b/logs", expected: true},
		{name: "**/bla.c matches root file", pattern: "**/bla.c", path: "bla.c", expected: true},
		{name: "**/bla.c matches nested file", pattern: "**/bla.c", path: "foo/bar/bla.c", expected: true},

		// Trailing **
		{name: "logs/** matches child", pattern: "logs/**", path: "logs/x", expected: true},
		{name: "logs/** matches grandchild", pattern: "logs/**", path: "logs/a/b", expected: true},
		{name: "logs/** does not match itself", pattern: "logs/**", path: "logs", isDir: true, expected: false},
		{name: "logs/** anchored", pattern: "logs/**", path: "a/logs/x", expected: false},

		// Middle **
		{name: "a/**/b zero segments", pattern: "a/**/b", path: "a/b", expected: true},
		{name: "a/**/b one segment", pattern: "a/**/b", path: "a/x/b", expected: true},
		{name: "a/**/b many segments", pattern: "a/**/b", path: "a/x/y/z/b", expected: true},
		{name: "a/**/b no partial segment", pattern: "a/**/b", path: "a/xb", expected: false},
		{name: "foo/**/blie.c", pattern: "foo/**/blie.c", path: "foo/bar/bla/blie.c", expected: true},

		// Whole-pattern and inline **
		{name: "bare ** matches everything", pattern: "**", path: "a/b/c", expected: true},
		{name: "/** matches everything", pattern: "/**", path: "x", expected: true},
		{name: "** inside segment acts like *", pattern: "**foo", path: "a/xfoo", expected: true},
		{name: "** inside segment does not cross slash", pattern: "/a**b", path: "a/b", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ignored(t, tt.pattern, tt.path, tt.isDir))
		})
	}
}

func TestRuleSet_Evaluate_AnchoredPatterns(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		{name: "/foo matches at root", pattern: "/foo", path: "foo", expected: true},
		{name: "/foo not nested", pattern: "/foo", path: "sub/foo", expected: false},
		{name: "foo matches at root", pattern: "foo", path: "foo", expected: true},
		{name: "foo matches nested", pattern: "foo", path: "sub/foo", expected: true},
		{name: "/*.c matches root", pattern: "/*.c", path: "foo.c", expected: true},
		{name: "/*.c not nested", pattern: "/*.c", path: "foo/foo.c", expected: false},
		{name: "inner slash anchors", pattern: "doc/frotz", path: "doc/frotz", expected: true},
		{name: "inner slash not nested", pattern: "doc/frotz", path: "a/doc/frotz", expected: false},
		{name: "foo/bar/* matches child", pattern: "foo/bar/*", path: "foo/bar/something", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ignored(t, tt.pattern, tt.path, false))
		})
	}
}

// =============================================================================
// Negation
// =============================================================================

func TestRuleSet_Evaluate_Negation(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		expected Verdict
	}{
		{name: "negation re-includes", patterns: []string{"*.log", "!important.log"}, path: "important.log", expected: Unignore},
		{name: "negation leaves others ignored", patterns: []string{"*.log", "!important.log"}, path: "debug.log", expected: Ignore},
		{name: "unmatched is no opinion", patterns: []string{"*.log", "!important.log"}, path: "main.go", expected: NoOpinion},
		{name: "last match wins", patterns: []string{"a.c", "!a.c", "a.c"}, path: "a.c", expected: Ignore},
		{name: "negation alone", patterns: []string{"!c.c"}, path: "c.c", expected: Unignore},
		{name: "later negation overrides", patterns: []string{"a.c", "b.c", "!c.c"}, path: "c.c", expected: Unignore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewRuleSet("test", "", tt.patterns, nil)
			assert.Equal(t, tt.expected, rs.Evaluate(tt.path, false))
		})
	}
}

func TestRuleSet_Evaluate_Manpage(t *testing.T) {
	// Given: the "exclude everything except directory foo/bar" example
	rs := NewRuleSet("test", "", []string{"/*", "!/foo", "/foo/*", "!/foo/bar"}, nil)

	// Then: each path gets the verdict git documents
	assert.Equal(t, Ignore, rs.Evaluate("a.c", false))
	assert.Equal(t, Ignore, rs.Evaluate("foo/blie", false))
	assert.Equal(t, Unignore, rs.Evaluate("foo", true))
	assert.Equal(t, Unignore, rs.Evaluate("foo/bar", true))
	assert.False(t, rs.Evaluate("foo/bar/bloe", false).Ignored())
}

// =============================================================================
// Directory Patterns
// =============================================================================

func TestRuleSet_Evaluate_DirectoryPatterns(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		isDir    bool
		expected bool
	}{
		{name: "build/ matches dir", pattern: "build/", path: "build", isDir: true, expected: true},
		{name: "build/ no match file", pattern: "build/", path: "build", isDir: false, expected: false},
		{name: "build/ matches nested dir", pattern: "build/", path: "src/build", isDir: true, expected: true},
		{name: "/bar/ anchored dir", pattern: "/bar/", path: "foo/bar", isDir: true, expected: false},
		{name: "bar matches dir too", pattern: "bar", path: "foo/bar", isDir: true, expected: true},
		{name: "foo/bar/* not the dir itself", pattern: "foo/bar/*", path: "foo/bar", isDir: true, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ignored(t, tt.pattern, tt.path, tt.isDir))
		})
	}
}

// =============================================================================
// Parsing Edge Cases
// =============================================================================

func TestCompile_NotARule(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"\t",
		"\r",
		"# comment",
		"#",
		"!",
		"/",
		"!/",
		"[z-a]",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, ok := Compile(line, Source{}, false)
			assert.False(t, ok)
		})
	}
}

func TestCompile_Flags(t *testing.T) {
	tests := []struct {
		line     string
		negate   bool
		dirOnly  bool
		anchored bool
	}{
		{line: "foo"},
		{line: "!foo", negate: true},
		{line: "foo/", dirOnly: true},
		{line: "/foo", anchored: true},
		{line: "a/b", anchored: true},
		{line: "!/a/b/", negate: true, dirOnly: true, anchored: true},
		{line: "**/foo", anchored: true},
		{line: `\!foo`},
		{line: `foo\/`},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r, ok := Compile(tt.line, Source{ScopeDir: "sub", Origin: "sub/.gitignore", Line: 3}, false)
			require.True(t, ok)
			assert.Equal(t, tt.negate, r.Negate())
			assert.Equal(t, tt.dirOnly, r.DirOnly())
			assert.Equal(t, tt.anchored, r.Anchored())
			assert.Equal(t, "sub", r.ScopeDir())
			assert.Equal(t, "sub/.gitignore", r.Origin())
			assert.Equal(t, 3, r.Line())
		})
	}
}

func TestRuleSet_Evaluate_EscapedHash(t *testing.T) {
	assert.True(t, ignored(t, `\#file`, "#file", false))
	assert.False(t, ignored(t, `\#file`, "file", false))
}

func TestRuleSet_Evaluate_EscapedExclamation(t *testing.T) {
	rs := NewRuleSet("test", "", []string{`\!important`}, nil)
	assert.Equal(t, Ignore, rs.Evaluate("!important", false))
}

func TestRuleSet_Evaluate_TrailingSpaces(t *testing.T) {
	// Unescaped trailing spaces are trimmed
	assert.True(t, ignored(t, "foo   ", "foo", false))
	// Escaped trailing space is kept
	assert.True(t, ignored(t, `foo\ `, "foo ", false))
	assert.False(t, ignored(t, `foo\ `, "foo", false))
	// An even number of backslashes does not escape the space
	assert.True(t, ignored(t, `foo\\ `, `foo\`, false))
}

func TestRuleSet_Evaluate_EscapedWildcards(t *testing.T) {
	assert.True(t, ignored(t, `\*.txt`, "*.txt", false))
	assert.False(t, ignored(t, `\*.txt`, "a.txt", false))
	assert.True(t, ignored(t, `what\?`, "what?", false))
	assert.False(t, ignored(t, `what\?`, "whatx", false))
}

func TestRuleSet_Evaluate_IgnoreCase(t *testing.T) {
	sensitive := NewRuleSet("test", "", []string{"a.c", "b.c"}, nil)
	assert.Equal(t, Ignore, sensitive.Evaluate("a.c", false))
	assert.Equal(t, NoOpinion, sensitive.Evaluate("A.c", false))

	c, err := NewCompiler(true, 0)
	require.NoError(t, err)
	insensitive := NewRuleSet("test", "", []string{"a.c", "b.c"}, c)
	assert.Equal(t, Ignore, insensitive.Evaluate("a.c", false))
	assert.Equal(t, Ignore, insensitive.Evaluate("A.c", false))
	assert.Equal(t, Ignore, insensitive.Evaluate("A.C", false))
}

// =============================================================================
// Round trip
// =============================================================================

func TestRule_String_RoundTripsFlags(t *testing.T) {
	lines := []string{
		"foo", "!foo", "foo/", "/foo", "!/foo/", "a/b", "/a/b", "a/b/",
		"!a/**/b/", "**/logs", "logs/**", "/**", "**", "*.c", "/*.c",
		`\#x`, `\!x`, `foo\ `, `foo\/`, "//a", "a//", "foo /", "[!a-c]/x",
		"!!x", `a\`,
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			// Given: a compiled rule
			r, ok := Compile(line, Source{}, false)
			require.True(t, ok)

			// When: its canonical form is compiled again
			again, ok := Compile(r.String(), Source{}, false)
			require.True(t, ok, "canonical form %q is not a rule", r.String())

			// Then: the flags survive
			assert.Equal(t, r.Negate(), again.Negate(), "negate for %q", r.String())
			assert.Equal(t, r.Anchored(), again.Anchored(), "anchored for %q", r.String())
			assert.Equal(t, r.DirOnly(), again.DirOnly(), "dirOnly for %q", r.String())
		})
	}
}

func TestRule_String_Canonical(t *testing.T) {
	tests := map[string]string{
		"foo":      "foo",
		"!/foo/":   "!/foo/",
		"a/b":      "a/b",
		"/a/b":     "a/b",
		"foo   ":   "foo",
		"**/logs/": "**/logs/",
	}

	for line, want := range tests {
		r, ok := Compile(line, Source{}, false)
		require.True(t, ok)
		assert.Equal(t, want, r.String(), "line %q", line)
	}
}

// =============================================================================
// Translate / Match helpers
// =============================================================================

func TestTranslate(t *testing.T) {
	tests := []struct {
		pattern string
		regex   string
	}{
		{pattern: "*.c", regex: `^(?:.*/)?[^/]*\.c$`},
		{pattern: "foo.c", regex: `^(?:.*/)?foo\.c$`},
		{pattern: "/*.c", regex: `^[^/]*\.c$`},
		{pattern: "/foo.c", regex: `^foo\.c$`},
		{pattern: "foo.[ch]", regex: `^(?:.*/)?foo\.[ch]$`},
		{pattern: "bar/", regex: `^(?:.*/)?bar$`},
		{pattern: "foo/**", regex: `^foo/.+$`},
		{pattern: "foo/**/blie.c", regex: `^foo/(?:.*/)?blie\.c$`},
		{pattern: "**/bla.c", regex: `^(?:.*/)?bla\.c$`},
		{pattern: "foo/**/bar", regex: `^foo/(?:.*/)?bar$`},
		{pattern: "foo/bar/*", regex: `^foo/bar/[^/]*$`},
		{pattern: "[!a]", regex: `^(?:.*/)?[^/a]$`},
		{pattern: "[[:alpha:]].c", regex: `^(?:.*/)?[[:alpha:]]\.c$`},
		{pattern: "[![:space:]]", regex: `^(?:.*/)?[^/[:space:]]$`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, ok := Translate(tt.pattern, false)
			require.True(t, ok)
			assert.Equal(t, tt.regex, got)
		})
	}

	got, ok := Translate("*.c", true)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(got, "(?i)"))

	_, ok = Translate("# comment", false)
	assert.False(t, ok)
}

func TestMatch(t *testing.T) {
	positive := [][2]string{
		{"foo.c", "*.c"},
		{".c", "*.c"},
		{"foo/foo.c", "*.c"},
		{"foo/foo.c", "foo.c"},
		{"foo.c", "/*.c"},
		{"foo.c", "/foo.c"},
		{"foo.c", "foo.c"},
		{"foo.c", "foo.[ch]"},
		{"foo/bar/bla.c", "foo/**"},
		{"foo/bar/bla/blie.c", "foo/**/blie.c"},
		{"foo/bar/bla.c", "**/bla.c"},
		{"bla.c", "**/bla.c"},
		{"foo/bar", "foo/**/bar"},
		{"foo/bla/bar", "foo/**/bar"},
		{"foo/bar/", "bar/"},
		{"foo/bar/", "bar"},
		{"foo/bar/something", "foo/bar/*"},
	}
	negative := [][2]string{
		{"foo.c", "foo.[dh]"},
		{"foo/foo.c", "/foo.c"},
		{"foo/foo.c", "/*.c"},
		{"foo/bar/", "/bar/"},
		{"foo/bar/", "foo/bar/*"},
		{"foo/bar", "foo?bar"},
		{"foo/bar", "bar/"},
	}

	for _, tc := range positive {
		assert.True(t, Match(tc[0], tc[1]), "path %q pattern %q", tc[0], tc[1])
	}
	for _, tc := range negative {
		assert.False(t, Match(tc[0], tc[1]), "path %q pattern %q", tc[0], tc[1])
	}
}

// =============================================================================
// RuleSet accessors
// =============================================================================

func TestRuleSet_Matching(t *testing.T) {
	rs := NewRuleSet("test", "", []string{"a.c", "b.c", "!c.c"}, nil)

	got := rs.Matching("a.c", false)
	require.Len(t, got, 1)
	assert.Equal(t, "a.c", got[0].Pattern())

	assert.Empty(t, rs.Matching("d.c", false))

	got = rs.Matching("c.c", false)
	require.Len(t, got, 1)
	assert.Equal(t, "!c.c", got[0].Pattern())

	rs = NewRuleSet("test", "", []string{"a.c", "!a.c", "a.c"}, nil)
	got = rs.Matching("a.c", false)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a.c", "!a.c", "a.c"}, []string{got[0].Pattern(), got[1].Pattern(), got[2].Pattern()})
}

func TestRuleSet_Decide(t *testing.T) {
	rs := NewRuleSet("dir/.gitignore", "dir", []string{"# header", "", "*.log", "!keep.log"}, nil)

	v, idx := rs.Decide("keep.log", false)
	assert.Equal(t, Unignore, v)
	require.Equal(t, 1, idx)
	r := rs.Rule(idx)
	assert.Equal(t, "!keep.log", r.Pattern())
	assert.Equal(t, 4, r.Line())
	assert.Equal(t, "dir/.gitignore", r.Origin())

	v, idx = rs.Decide("main.go", false)
	assert.Equal(t, NoOpinion, v)
	assert.Equal(t, -1, idx)
}

func TestRuleSet_Patterns(t *testing.T) {
	rs := NewRuleSet("test", "sub", []string{"# c", "/build/", "!keep  ", ""}, nil)

	assert.Equal(t, []string{"/build/", "!keep"}, rs.Patterns())
	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, "test", rs.Origin())
	assert.Equal(t, "sub", rs.ScopeDir())
	assert.Len(t, rs.Rules(), 2)

	empty := Empty("missing", "")
	assert.Equal(t, []string{}, empty.Patterns())
	assert.Equal(t, NoOpinion, empty.Evaluate("x", false))

	var nilSet *RuleSet
	assert.Equal(t, NoOpinion, nilSet.Evaluate("x", false))
	assert.Equal(t, 0, nilSet.Len())
}

func TestParseRuleSet_LineNumbers(t *testing.T) {
	body := "# comment\n\n*.tmp\r\n!keep.tmp\n"

	rs, err := ParseRuleSet(".gitignore", "", strings.NewReader(body), nil)
	require.NoError(t, err)

	rules := rs.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, 3, rules[0].Line())
	assert.Equal(t, "*.tmp", rules[0].Pattern())
	assert.Equal(t, 4, rules[1].Line())
}

func TestReadPatterns(t *testing.T) {
	body := "\n# a comment\n\n# and an empty line:\n\n\\#not a comment\n!negative\n" +
		"with trailing whitespace \n" +
		"with escaped trailing whitespace\\ \n"

	got, err := ReadPatterns(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, []string{
		`\#not a comment`,
		"!negative",
		"with trailing whitespace",
		`with escaped trailing whitespace\ `,
	}, got)
}

// =============================================================================
// Stack
// =============================================================================

func TestStack_FirstOpinionWins(t *testing.T) {
	first := NewRuleSet("first", "", []string{"[a].c", "[b].c", "![d].c"}, nil)
	second := NewRuleSet("second", "", []string{"[a].c", "![b],c", "[c].c", "[d].c"}, nil)
	stack := Stack{first, second}

	assert.Equal(t, Ignore, stack.Evaluate("a.c", false))
	assert.Equal(t, Ignore, stack.Evaluate("b.c", false))
	assert.Equal(t, Ignore, stack.Evaluate("c.c", false))
	assert.Equal(t, Unignore, stack.Evaluate("d.c", false))
	assert.Equal(t, NoOpinion, stack.Evaluate("e.c", false))
}

// =============================================================================
// Compiler
// =============================================================================

func TestCompiler_CachesExpressions(t *testing.T) {
	c, err := NewCompiler(false, 16)
	require.NoError(t, err)

	// Given: the same pattern in two sources
	a := NewRuleSet("a/.gitignore", "a", []string{"*.log"}, c)
	b := NewRuleSet("b/.gitignore", "b", []string{"*.log"}, c)

	// Then: one expression is cached and both sets work
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, Ignore, a.Evaluate("x.log", false))
	assert.Equal(t, Ignore, b.Evaluate("y/x.log", false))
	assert.Equal(t, "a", a.Rule(0).ScopeDir())
	assert.Equal(t, "b", b.Rule(0).ScopeDir())
}

func TestCompiler_InvalidPatternCached(t *testing.T) {
	c, err := NewCompiler(false, 16)
	require.NoError(t, err)

	_, ok := c.Compile("[z-a]", Source{})
	assert.False(t, ok)
	_, ok = c.Compile("[z-a]", Source{})
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCompiler_Nil(t *testing.T) {
	var c *Compiler
	r, ok := c.Compile("*.go", Source{})
	require.True(t, ok)
	assert.True(t, r.Match("main.go", false))
	assert.False(t, c.IgnoreCase())
	assert.Equal(t, 0, c.Len())
}

// =============================================================================
// Verdict
// =============================================================================

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "ignored", Ignore.String())
	assert.Equal(t, "unignored", Unignore.String())
	assert.Equal(t, "no-opinion", NoOpinion.String())
	assert.Equal(t, "verdict(9)", Verdict(9).String())

	text, err := Unignore.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "unignored", string(text))

	assert.True(t, Ignore.Ignored())
	assert.False(t, Unignore.Ignored())
	assert.True(t, Unignore.Decided())
	assert.False(t, NoOpinion.Decided())
}

func TestVerdict_TextRoundTrip(t *testing.T) {
	for _, v := range []Verdict{NoOpinion, Ignore, Unignore} {
		text, err := v.MarshalText()
		require.NoError(t, err)

		var got Verdict
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, v, got)
	}

	var v Verdict
	assert.Error(t, v.UnmarshalText([]byte("maybe")))
}

// =============================================================================
// Thread Safety
// =============================================================================

func TestRuleSet_ThreadSafety(t *testing.T) {
	c, err := NewCompiler(false, 8)
	require.NoError(t, err)
	rs := NewRuleSet("test", "", []string{"*.log", "build/", "!keep.log"}, c)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = rs.Evaluate("debug.log", false)
				_ = rs.Evaluate("build", true)
				_, _ = c.Compile("*.tmp", Source{})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, Ignore, rs.Evaluate("debug.log", false))
	assert.Equal(t, Unignore, rs.Evaluate("keep.log", false))
}
