// Package patterns generates the twin-distribution quota patterns the
// orchestrator feeds to the twin distributor, one at a time, per spec.md
// §4.G: a base pattern copied from the input distribution plus every
// single-unit pairwise swap of mainTwin/annexTwin quotas.
package patterns

import (
	"github.com/gitrdm/roomshift/internal/roommodel"
)

// Pattern is one twin-quota candidate: per-staff main/annex twin targets for
// a single pass through the twin distributor.
type Pattern struct {
	MainTwin  map[string]int
	AnnexTwin map[string]int
}

func clonePattern(p Pattern) Pattern {
	main := make(map[string]int, len(p.MainTwin))
	for k, v := range p.MainTwin {
		main[k] = v
	}
	annex := make(map[string]int, len(p.AnnexTwin))
	for k, v := range p.AnnexTwin {
		annex[k] = v
	}
	return Pattern{MainTwin: main, AnnexTwin: annex}
}

// Generate builds the base pattern plus every single-unit pairwise swap
// pattern, in the order spec.md §4.G describes them tried: staffOrder
// fixes the pair iteration order so repeated runs over the same input
// produce identical pattern sequences.
func Generate(staffOrder []string, dist map[string]roommodel.StaffDistribution) []Pattern {
	base := Pattern{MainTwin: map[string]int{}, AnnexTwin: map[string]int{}}
	for _, name := range staffOrder {
		d, ok := dist[name]
		if !ok {
			continue
		}
		base.MainTwin[name] = d.MainTwin
		base.AnnexTwin[name] = d.AnnexTwin
	}

	patterns := []Pattern{base}
	for i := 0; i < len(staffOrder); i++ {
		for j := i + 1; j < len(staffOrder); j++ {
			s1, s2 := staffOrder[i], staffOrder[j]
			if _, ok := dist[s1]; !ok {
				continue
			}
			if _, ok := dist[s2]; !ok {
				continue
			}
			patterns = append(patterns, swap(base, s1, s2, "mainTwin")...)
			patterns = append(patterns, swap(base, s1, s2, "annexTwin")...)
		}
	}
	return rebalanceAll(patterns, staffOrder, base)
}

// swap returns the two symmetric single-unit-move variants for field between
// s1 and s2 (s1→s2 and s2→s1); a direction that would drive a quota negative
// is skipped.
func swap(base Pattern, s1, s2, field string) []Pattern {
	var out []Pattern
	if p, ok := moveOne(base, s1, s2, field); ok {
		out = append(out, p)
	}
	if p, ok := moveOne(base, s2, s1, field); ok {
		out = append(out, p)
	}
	return out
}

func moveOne(base Pattern, from, to, field string) (Pattern, bool) {
	p := clonePattern(base)
	var bins map[string]int
	if field == "mainTwin" {
		bins = p.MainTwin
	} else {
		bins = p.AnnexTwin
	}
	if bins[from] <= 0 {
		return Pattern{}, false
	}
	bins[from]--
	bins[to]++
	return p, true
}

// rebalanceAll applies the over-quota rebalancing pass (spec.md §4.D) to
// every generated pattern except the base, which by construction never
// exceeds any staff's original target.
func rebalanceAll(ps []Pattern, staffOrder []string, base Pattern) []Pattern {
	out := make([]Pattern, len(ps))
	out[0] = ps[0]
	for i := 1; i < len(ps); i++ {
		p := clonePattern(ps[i])
		rebalanceField(p.MainTwin, base.MainTwin, staffOrder)
		rebalanceField(p.AnnexTwin, base.AnnexTwin, staffOrder)
		out[i] = p
	}
	return out
}

// rebalanceField redistributes any staff's over-quota excess (current − its
// original target) to staff in staffOrder whose current value is still
// below their original target, capped at that target; unabsorbable excess
// is discarded (spec.md §4.D "re-balancing of over-quota patterns").
func rebalanceField(current, original map[string]int, staffOrder []string) {
	for _, name := range staffOrder {
		excess := current[name] - original[name]
		for excess > 0 {
			absorbed := false
			for _, recipient := range staffOrder {
				if recipient == name {
					continue
				}
				room := original[recipient] - current[recipient]
				if room <= 0 {
					continue
				}
				current[recipient]++
				current[name]--
				excess--
				absorbed = true
				break
			}
			if !absorbed {
				break
			}
		}
	}
}
