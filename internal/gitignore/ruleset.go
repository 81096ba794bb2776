package gitignore

import (
	"io"
)

// RuleSet is the ordered, immutable list of rules compiled from one source.
type RuleSet struct {
	origin   string
	scopeDir string
	patterns []string
	rules    []Rule
}

// NewRuleSet compiles patterns in order. Lines that are not rules are
// skipped. Line numbers are the 1-based positions in patterns.
func NewRuleSet(origin, scopeDir string, patterns []string, c *Compiler) *RuleSet {
	rs := &RuleSet{
		origin:   origin,
		scopeDir: scopeDir,
		rules:    make([]Rule, 0, len(patterns)),
	}

	for i, line := range patterns {
		r, ok := c.Compile(line, Source{Origin: origin, ScopeDir: scopeDir, Line: i + 1})
		if !ok {
			continue
		}
		rs.rules = append(rs.rules, r)
		rs.patterns = append(rs.patterns, r.pattern)
	}

	return rs
}

// ParseRuleSet reads an ignore file body and compiles it. Line numbers refer
// to the lines of r.
func ParseRuleSet(origin, scopeDir string, r io.Reader, c *Compiler) (*RuleSet, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return NewRuleSet(origin, scopeDir, lines, c), nil
}

// Empty returns a rule set with no rules, used for sources that could not be read.
func Empty(origin, scopeDir string) *RuleSet {
	return &RuleSet{origin: origin, scopeDir: scopeDir}
}

// Evaluate returns the verdict of the last rule matching rel, a
// slash-separated path relative to the set's scope directory.
func (rs *RuleSet) Evaluate(rel string, isDir bool) Verdict {
	v, _ := rs.Decide(rel, isDir)
	return v
}

// Decide is Evaluate that also returns the index of the deciding rule,
// or -1 when no rule matched.
func (rs *RuleSet) Decide(rel string, isDir bool) (Verdict, int) {
	if rs == nil {
		return NoOpinion, -1
	}

	// last match wins, so scan from the end
	for i := len(rs.rules) - 1; i >= 0; i-- {
		if rs.rules[i].Match(rel, isDir) {
			return verdictFor(&rs.rules[i]), i
		}
	}
	return NoOpinion, -1
}

// Matching returns every rule that matches rel, in source order.
func (rs *RuleSet) Matching(rel string, isDir bool) []Rule {
	if rs == nil {
		return nil
	}

	var out []Rule
	for i := range rs.rules {
		if rs.rules[i].Match(rel, isDir) {
			out = append(out, rs.rules[i])
		}
	}
	return out
}

// Rule returns the i-th compiled rule.
func (rs *RuleSet) Rule(i int) Rule {
	return rs.rules[i]
}

// Rules returns a copy of the compiled rules in source order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Patterns returns the raw text of every compiled rule in source order.
func (rs *RuleSet) Patterns() []string {
	if rs == nil || len(rs.patterns) == 0 {
		return []string{}
	}
	out := make([]string, len(rs.patterns))
	copy(out, rs.patterns)
	return out
}

// Origin returns the source identifier of the set.
func (rs *RuleSet) Origin() string {
	if rs == nil {
		return ""
	}
	return rs.origin
}

// ScopeDir returns the directory the set's rules are relative to.
func (rs *RuleSet) ScopeDir() string {
	if rs == nil {
		return ""
	}
	return rs.scopeDir
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}
