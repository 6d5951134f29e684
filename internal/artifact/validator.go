// Package artifact holds the pieces the pipeline uses to trust its outputs:
// a read-only validator, a collision-free output path allocator, and an
// insertion-ordered registry of validated artifacts.
package artifact

import "os"

// UnitCounter counts content units (words, lines, ...) in file content.
type UnitCounter func(content string) int

// Rule is a per-stage validation policy: a minimum byte size and an
// optional minimum content-unit count. Rules are static configuration and
// are never mutated during a run.
type Rule struct {
	MinBytes   int64
	MinUnits   int
	CountUnits UnitCounter
}

// Check reports whether the file at path satisfies the rule. It returns
// false (never panics) when the path does not exist, the file is smaller
// than MinBytes, or the counted units fall below MinUnits. Pure read-only;
// callers must not register or chain an artifact that fails this check.
func (r Rule) Check(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.Size() < r.MinBytes {
		return false
	}

	if r.MinUnits > 0 && r.CountUnits != nil {
		content, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		if r.CountUnits(string(content)) < r.MinUnits {
			return false
		}
	}

	return true
}
