package gitignore

// Stack is an ordered list of rule sets where the first set with an
// opinion decides. All sets are evaluated against the same relative path.
type Stack []*RuleSet

// Evaluate returns the verdict of the first set that has one.
func (s Stack) Evaluate(rel string, isDir bool) Verdict {
	for _, rs := range s {
		if v := rs.Evaluate(rel, isDir); v != NoOpinion {
			return v
		}
	}
	return NoOpinion
}
