// Package detect decides whether a freshly computed digest differs from the
// committed state of a path.
package detect

import "github.com/keshon/hashwatch/internal/history"

type Verdict int

const (
	Unchanged Verdict = iota
	Changed
)

func (v Verdict) String() string {
	switch v {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one evaluation. Digest is set for Changed and
// names the candidate; a candidate is not committed until confirmed.
type Result struct {
	Verdict Verdict
	Digest  string
}

// Evaluate compares current against the last committed digest of h.
// A path with no history is always Changed.
func Evaluate(h history.History, current string) Result {
	last, ok := h.Current()
	if ok && last.Digest == current {
		return Result{Verdict: Unchanged}
	}
	return Result{Verdict: Changed, Digest: current}
}

// Confirm reports whether a digest recomputed after the cooldown still
// differs from the committed digest. The first candidate plays no part: a
// third value seen after the cooldown is committed as well.
func Confirm(h history.History, recomputed string) bool {
	return Evaluate(h, recomputed).Verdict == Changed
}
