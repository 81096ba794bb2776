package gitignore

import "fmt"

// Verdict is the outcome of evaluating a path against rules.
type Verdict uint8

const (
	// NoOpinion means no rule matched the path.
	NoOpinion Verdict = iota
	// Ignore means the deciding rule excludes the path.
	Ignore
	// Unignore means the deciding rule is a negation that re-includes the path.
	Unignore
)

// String returns the verdict name used in CLI and export output.
func (v Verdict) String() string {
	switch v {
	case Ignore:
		return "ignored"
	case Unignore:
		return "unignored"
	case NoOpinion:
		return "no-opinion"
	default:
		return fmt.Sprintf("verdict(%d)", uint8(v))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verdict) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ignored":
		*v = Ignore
	case "unignored":
		*v = Unignore
	case "no-opinion", "":
		*v = NoOpinion
	default:
		return fmt.Errorf("unknown verdict %q", text)
	}
	return nil
}

// Ignored reports whether v is Ignore.
func (v Verdict) Ignored() bool {
	return v == Ignore
}

// Decided reports whether any rule had an opinion.
func (v Verdict) Decided() bool {
	return v != NoOpinion
}

// verdictFor maps a matching rule to its verdict.
func verdictFor(r *Rule) Verdict {
	if r.negate {
		return Unignore
	}
	return Ignore
}
