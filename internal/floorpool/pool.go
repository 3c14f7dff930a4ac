// Package floorpool tracks per-floor remaining-room counts during one
// optimization run and implements the deterministic draw-down policy
// spec.md §4.B requires: larger remaining bins drain first, ties broken by
// room-type code so repeated runs over the same input draw identically.
package floorpool

import (
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/gitrdm/roomshift/internal/roommodel"
)

// Pool is the mutable per-floor remaining-room state described in
// spec.md §4.B. It is owned by whichever component creates it (the bath
// placer, or the orchestrator's twin materialization) and never shared
// across components once consumed.
type Pool struct {
	floorNumber    int
	isMainBuilding bool
	normal         map[string]int
	eco            int
}

// New seeds a Pool from a FloorInfo snapshot.
func New(fi roommodel.FloorInfo) *Pool {
	normal := make(map[string]int, len(fi.RoomCounts))
	for k, v := range fi.RoomCounts {
		normal[k] = v
	}
	return &Pool{
		floorNumber:    fi.FloorNumber,
		isMainBuilding: fi.IsMainBuilding,
		normal:         normal,
		eco:            fi.EcoRooms,
	}
}

// AllocateNormal draws up to count rooms of any code, twin or not, draining
// the largest remaining code bins first (spec.md §4.B policy). If count
// exceeds what remains, it takes everything remaining and logs a warning
// rather than failing.
func (p *Pool) AllocateNormal(count int, log hclog.Logger) map[string]int {
	return p.allocateFiltered(count, nil, log)
}

// AllocateFromCodes draws up to count rooms restricted to codes satisfying
// predicate, using the same largest-bin-first policy. It is used by the
// bath pre-placer to draw twin codes before single-like codes on a floor
// (spec.md §4.C step 3).
func (p *Pool) AllocateFromCodes(count int, predicate func(code string) bool, log hclog.Logger) map[string]int {
	return p.allocateFiltered(count, predicate, log)
}

func (p *Pool) allocateFiltered(count int, predicate func(code string) bool, log hclog.Logger) map[string]int {
	if count <= 0 {
		return map[string]int{}
	}
	type bin struct {
		code string
		n    int
	}
	bins := make([]bin, 0, len(p.normal))
	for code, n := range p.normal {
		if n <= 0 {
			continue
		}
		if predicate != nil && !predicate(code) {
			continue
		}
		bins = append(bins, bin{code, n})
	}
	sort.Slice(bins, func(i, j int) bool {
		if bins[i].n != bins[j].n {
			return bins[i].n > bins[j].n
		}
		return bins[i].code < bins[j].code
	})

	taken := make(map[string]int, len(bins))
	remaining := count
	for _, b := range bins {
		if remaining <= 0 {
			break
		}
		take := b.n
		if take > remaining {
			take = remaining
		}
		taken[b.code] = take
		p.normal[b.code] -= take
		remaining -= take
	}
	if remaining > 0 && log != nil {
		log.Warn("floorpool: requested more normal rooms than remain on floor",
			"floor", p.floorNumber, "main", p.isMainBuilding, "requested", count, "shortfall", remaining)
	}
	return taken
}

// AllocateEco draws up to count eco rooms, capped at what remains, and
// returns the actual number taken.
func (p *Pool) AllocateEco(count int) int {
	if count <= 0 {
		return 0
	}
	take := count
	if take > p.eco {
		take = p.eco
	}
	p.eco -= take
	return take
}

// NormalRemaining returns a snapshot copy of the remaining non-eco counts.
func (p *Pool) NormalRemaining() map[string]int {
	cp := make(map[string]int, len(p.normal))
	for k, v := range p.normal {
		if v > 0 {
			cp[k] = v
		}
	}
	return cp
}

// EcoRemaining returns the remaining eco count.
func (p *Pool) EcoRemaining() int { return p.eco }

// TotalNormalRemaining sums the remaining non-eco counts.
func (p *Pool) TotalNormalRemaining() int {
	total := 0
	for _, v := range p.normal {
		total += v
	}
	return total
}

// TwinRemaining sums the remaining counts of codes the classifier predicate
// reports as twin-like.
func (p *Pool) TwinRemaining(isTwin func(code string) bool) int {
	total := 0
	for code, v := range p.normal {
		if isTwin(code) {
			total += v
		}
	}
	return total
}

// Snapshot returns a FloorInfo reflecting the pool's current remaining state.
func (p *Pool) Snapshot() roommodel.FloorInfo {
	fi, _ := roommodel.NewFloorInfo(p.floorNumber, p.isMainBuilding, p.NormalRemaining(), p.eco)
	return fi
}
