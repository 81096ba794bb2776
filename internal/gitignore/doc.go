// Package gitignore compiles gitignore pattern lines into rules and
// evaluates paths against ordered rule sets.
//
// It implements the pattern dialect documented at:
// https://git-scm.com/docs/gitignore
//
// Features:
//   - Basename patterns matched at any depth (*.log)
//   - Anchored patterns (/build, doc/frotz)
//   - Wildcards (*, ?, [a-z], [!0-9]) and double stars (**/x, x/**, a/**/b)
//   - Negation (!keep.log) and escaped markers (\#, \!, trailing "\ ")
//   - Directory-only patterns (build/)
//   - Optional case-insensitive matching
//
// A RuleSet holds the rules of one source (an ignore file or a literal
// pattern list). Evaluation is last-match-wins and yields a three-valued
// Verdict:
//
//	rs := gitignore.NewRuleSet("literal", "", []string{"*.log", "!keep.log"}, nil)
//	rs.Evaluate("keep.log", false) // Unignore
//	rs.Evaluate("app.log", false)  // Ignore
//	rs.Evaluate("main.go", false)  // NoOpinion
//
// Hierarchical resolution across many rule sets lives in pkg/ignore.
package gitignore
