package orchestrator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gitrdm/roomshift/internal/roommodel"
)

// fingerprint computes the floor-pattern de-duplication key from
// spec.md §4.H step 3: sort staff by name, and for each emit
// "name:f1,f2,...;" with floors sorted ascending (composite keys, so main
// and annex floors never collide). Two solutions with identical strings
// are considered the same solution.
func fingerprint(assignments map[string]*roommodel.StaffAssignment) string {
	names := make([]string, 0, len(assignments))
	for name := range assignments {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		floors := assignments[name].Floors()
		parts := make([]string, len(floors))
		for i, f := range floors {
			parts[i] = fmt.Sprintf("%d", f)
		}
		b.WriteString(name)
		b.WriteString(":")
		b.WriteString(strings.Join(parts, ","))
		b.WriteString(";")
	}
	return b.String()
}

// dedupeByFingerprint returns the first occurrence of each distinct
// fingerprint, preserving input order (pattern-index-ascending, then
// solver-emission order, per spec.md §5's ordering requirement), capped at
// k.
func dedupeByFingerprint(results []roommodel.OptimizationResult, k int) []roommodel.OptimizationResult {
	seen := map[string]bool{}
	out := make([]roommodel.OptimizationResult, 0, k)
	for _, r := range results {
		fp := fingerprint(r.Assignments)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, r)
		if len(out) >= k {
			break
		}
	}
	return out
}
