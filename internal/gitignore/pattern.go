package gitignore

import (
	"regexp"
	"strings"
)

// Rule is one compiled gitignore pattern line. Rules are immutable.
type Rule struct {
	pattern  string         // source text after trailing whitespace handling
	body     string         // glob text with !, leading / and trailing / removed
	regex    *regexp.Regexp // compiled matcher for paths relative to scopeDir
	negate   bool           // starts with !
	dirOnly  bool           // ends with /
	anchored bool           // starts with / or has an inner /
	scopeDir string         // slash-separated directory relative to the root, "" is the root
	origin   string         // file path or literal list the rule came from
	line     int            // 1-based position in the source, 0 if unknown
}

// Source describes where a pattern line came from.
type Source struct {
	// Origin identifies the ignore file or literal pattern list.
	Origin string
	// ScopeDir is the slash-separated directory, relative to the root, that
	// the rule's paths are relative to. Empty means the root.
	ScopeDir string
	// Line is the 1-based position of the pattern in its source.
	Line int
}

// parsedLine is a pattern line split into its markers and glob body.
type parsedLine struct {
	pattern  string
	body     string
	negate   bool
	dirOnly  bool
	anchored bool
}

// Compile compiles one raw line into a Rule.
// It returns false for lines that are not rules: blank lines, comments and
// lines with nothing left after the ! and / markers are removed.
func Compile(line string, src Source, ignoreCase bool) (Rule, bool) {
	return compile(line, src, ignoreCase, regexp.Compile)
}

// compile parses line and builds its matcher with compileRE.
func compile(line string, src Source, ignoreCase bool, compileRE func(string) (*regexp.Regexp, error)) (Rule, bool) {
	p, ok := parseLine(line)
	if !ok {
		return Rule{}, false
	}

	re, err := compileRE(translate(p.body, p.anchored, ignoreCase))
	if err != nil {
		// e.g. an inverted range such as [z-a]
		return Rule{}, false
	}

	return Rule{
		pattern:  p.pattern,
		body:     p.body,
		regex:    re,
		negate:   p.negate,
		dirOnly:  p.dirOnly,
		anchored: p.anchored,
		scopeDir: src.ScopeDir,
		origin:   src.Origin,
		line:     src.Line,
	}, true
}

// parseLine strips the gitignore markers from one line.
func parseLine(line string) (parsedLine, bool) {
	line = strings.TrimSuffix(line, "\r")
	line = trimTrailingSpace(line)
	if line == "" || line[0] == '#' {
		return parsedLine{}, false
	}

	p := parsedLine{pattern: line}

	if line[0] == '!' {
		p.negate = true
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") && !isEscaped(line, len(line)-1) {
		p.dirOnly = true
		line = line[:len(line)-1]
	}

	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = line[1:]
	} else if hasInnerSlash(line) {
		// "doc/frotz" means "/doc/frotz", not "**/doc/frotz"
		p.anchored = true
	}

	if line == "" {
		return parsedLine{}, false
	}

	p.body = line
	return p, true
}

// trimTrailingSpace removes trailing spaces and tabs unless escaped with "\".
func trimTrailingSpace(s string) string {
	for len(s) > 0 {
		c := s[len(s)-1]
		if c != ' ' && c != '\t' {
			break
		}
		if isEscaped(s, len(s)-1) {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}

// isEscaped reports whether s[i] is preceded by an odd number of backslashes.
func isEscaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// hasInnerSlash reports whether s has a "/" before its last character.
func hasInnerSlash(s string) bool {
	i := strings.IndexByte(s, '/')
	return i >= 0 && i < len(s)-1
}

// Match reports whether the rule matches rel, a slash-separated path relative
// to the rule's scope directory. Directory-only rules never match files.
func (r Rule) Match(rel string, isDir bool) bool {
	if r.regex == nil || rel == "" {
		return false
	}
	if r.dirOnly && !isDir {
		return false
	}
	return r.regex.MatchString(rel)
}

// Pattern returns the pattern text as written in its source.
func (r Rule) Pattern() string { return r.pattern }

// Negate reports whether the rule re-includes matching paths.
func (r Rule) Negate() bool { return r.negate }

// DirOnly reports whether the rule only applies to directories.
func (r Rule) DirOnly() bool { return r.dirOnly }

// Anchored reports whether the rule only matches at its scope directory level.
func (r Rule) Anchored() bool { return r.anchored }

// ScopeDir returns the directory the rule's paths are relative to.
func (r Rule) ScopeDir() string { return r.scopeDir }

// Origin returns the rule's source identifier.
func (r Rule) Origin() string { return r.origin }

// Line returns the 1-based position of the rule in its source.
func (r Rule) Line() int { return r.line }

// Regexp returns the source of the compiled matcher.
func (r Rule) Regexp() string {
	if r.regex == nil {
		return ""
	}
	return r.regex.String()
}

// String renders the rule as a canonical pattern. Compiling the result
// yields a rule with the same negate, anchored and directory-only flags.
func (r Rule) String() string {
	var b strings.Builder
	if r.negate {
		b.WriteByte('!')
	}
	if r.anchored && !hasInnerSlash(r.body) {
		b.WriteByte('/')
	}
	b.WriteString(r.body)
	if r.dirOnly {
		b.WriteByte('/')
	}
	return b.String()
}

// Translate returns the regular expression source a pattern compiles to,
// or false if the line is not a rule.
func Translate(pattern string, ignoreCase bool) (string, bool) {
	p, ok := parseLine(pattern)
	if !ok {
		return "", false
	}
	return translate(p.body, p.anchored, ignoreCase), true
}

// Match reports whether path is ignored by the single pattern. A trailing
// "/" on path marks it as a directory. Negated patterns report whether they
// match, not the resulting verdict.
func Match(path, pattern string) bool {
	r, ok := Compile(pattern, Source{}, false)
	if !ok {
		return false
	}
	isDir := strings.HasSuffix(path, "/")
	return r.Match(strings.TrimSuffix(path, "/"), isDir)
}

// translate converts a glob body into an anchored regular expression.
func translate(body string, anchored, ignoreCase bool) string {
	var b strings.Builder

	if ignoreCase {
		b.WriteString("(?i)")
	}
	b.WriteString("^")
	if !anchored {
		// basename pattern: any number of leading directories
		b.WriteString("(?:.*/)?")
	}

	segments := splitSegments(body)
	needSep := false
	for i, seg := range segments {
		if seg != "**" {
			if needSep {
				b.WriteByte('/')
			}
			b.WriteString(translateSegment(seg))
			needSep = true
			continue
		}

		switch {
		case i == len(segments)-1 && needSep:
			// "dir/**": everything beneath dir, not dir itself
			b.WriteString("/.+")
		case i == len(segments)-1:
			b.WriteString(".*")
		case needSep:
			// "a/**/b": zero or more segments in between
			b.WriteString("/(?:.*/)?")
		default:
			// "**/b": zero or more leading segments
			b.WriteString("(?:.*/)?")
		}
		needSep = false
	}

	b.WriteString("$")
	return b.String()
}

// splitSegments splits a glob body on unescaped slashes.
func splitSegments(body string) []string {
	segments := make([]string, 0, strings.Count(body, "/")+1)
	start := 0
	for i := 0; i < len(body); i++ {
		if body[i] == '/' && !isEscaped(body, i) {
			segments = append(segments, body[start:i])
			start = i + 1
		}
	}
	return append(segments, body[start:])
}

// translateSegment converts one path segment of a glob into regex source.
func translateSegment(seg string) string {
	var b strings.Builder

	for i := 0; i < len(seg); i++ {
		c := seg[i]
		switch c {
		case '*':
			// consecutive stars inside a segment behave like one
			for i+1 < len(seg) && seg[i+1] == '*' {
				i++
			}
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		case '[':
			end := findCharClassEnd(seg, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(translateCharClass(seg[i+1 : end]))
			i = end
		case '\\':
			if i+1 == len(seg) {
				b.WriteString(`\\`)
				continue
			}
			i++
			b.WriteString(regexp.QuoteMeta(seg[i : i+1]))
		default:
			b.WriteString(regexp.QuoteMeta(seg[i : i+1]))
		}
	}

	return b.String()
}

// findCharClassEnd locates the closing bracket of the class opened at start.
func findCharClassEnd(pat string, start int) int {
	idx := start + 1
	if idx < len(pat) && (pat[idx] == '!' || pat[idx] == '^') {
		idx++
	}

	// a leading ']' is a literal member
	if idx < len(pat) && pat[idx] == ']' {
		idx++
	}

	for ; idx < len(pat); idx++ {
		switch pat[idx] {
		case '\\':
			idx++
		case '[':
			// a named class such as [:alpha:] holds its own ']'
			if n := namedClassLen(pat[idx:]); n > 0 {
				idx += n - 1
			}
		case ']':
			return idx
		}
	}

	return -1
}

// namedClassLen returns the length of the "[:name:]" expression at the
// start of s, or 0 if there is none.
func namedClassLen(s string) int {
	if !strings.HasPrefix(s, "[:") {
		return 0
	}
	end := strings.Index(s[2:], ":]")
	if end < 0 {
		return 0
	}
	return end + 4
}

// translateCharClass converts the inside of a glob class into a regex class.
func translateCharClass(inner string) string {
	var b strings.Builder
	b.WriteByte('[')

	i := 0
	if i < len(inner) && (inner[i] == '!' || inner[i] == '^') {
		// negated classes never match the separator
		b.WriteString(`^/`)
		i++
	}

	if i < len(inner) && inner[i] == ']' {
		b.WriteString(`\]`)
		i++
	}

	for ; i < len(inner); i++ {
		c := inner[i]
		if c == '[' {
			// regexp accepts the same [:name:] classes as wildmatch
			if n := namedClassLen(inner[i:]); n > 0 {
				b.WriteString(inner[i : i+n])
				i += n - 1
				continue
			}
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(inner) {
			b.WriteString(`\\`)
			continue
		}
		i++
		if isAlnum(inner[i]) {
			b.WriteByte(inner[i])
		} else {
			b.WriteByte('\\')
			b.WriteByte(inner[i])
		}
	}

	b.WriteByte(']')
	return b.String()
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
