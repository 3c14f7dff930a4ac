package orchestrator

import (
	"github.com/gitrdm/roomshift/internal/ecosolver"
	"github.com/gitrdm/roomshift/internal/roommodel"
)

// buildEcoSites and buildEcoStaffInputs translate the already-combined
// (bath + twin + single) assignments into the eco solver's input shapes
// (spec.md §4.F). dist is the full, original per-staff distribution (bath
// cleaners included) so their eco quotas are still visible even though
// bathplacer removes them from the remaining-distribution map used by the
// rest of the pipeline. bathCleaners flags which names are pinned to a
// single pre-placed floor and may never open a new one.
//
// Eligibility follows rule 2/3: a staff member may always take eco on a
// floor they already cover; opening a brand-new floor additionally
// requires cap headroom (or contractor status), and bath cleaners never
// open a new floor at all. This module does not attempt the full |Δ|≤1
// adjacency relaxation spec.md allows when headroom is exhausted —
// DESIGN.md records this as a deliberate simplification: a staff member
// with no headroom simply gets no new-floor sites, rather than being
// offered adjacent-only ones.
func buildEcoSites(
	bd *roommodel.BuildingData,
	assignments map[string]*roommodel.StaffAssignment,
	constraints map[string]roommodel.StaffPointConstraint,
	dist map[string]roommodel.StaffDistribution,
	bathCleaners map[string]bool,
) []ecosolver.StaffFloor {
	var sites []ecosolver.StaffFloor

	alreadyOpenOn := func(name string, floorNumber int, isMain bool) bool {
		a, ok := assignments[name]
		if !ok {
			return false
		}
		if isMain {
			_, ok = a.MainAssignments[floorNumber]
		} else {
			_, ok = a.AnnexAssignments[floorNumber]
		}
		return ok
	}

	for _, isMain := range []bool{true, false} {
		floors := bd.MainFloors
		if !isMain {
			floors = bd.AnnexFloors
		}
		for _, f := range floors {
			if f.EcoRooms <= 0 {
				continue
			}
			for name := range dist {
				open := alreadyOpenOn(name, f.FloorNumber, isMain)
				if bathCleaners[name] {
					if !open {
						continue
					}
				} else if !open {
					sp := constraints[name]
					caps := floorCapsFor(sp, dist[name])
					used := 0
					if a, ok := assignments[name]; ok {
						used = a.MainFloorCount() + a.AnnexFloorCount()
					}
					if used >= caps.Total {
						continue
					}
				}
				sites = append(sites, ecosolver.StaffFloor{
					Staff: name, IsMain: isMain, Floor: f.FloorNumber, Eco: f.EcoRooms, AlreadyOpen: open,
				})
			}
		}
	}
	return sites
}

func buildEcoStaffInputs(dist map[string]roommodel.StaffDistribution, constraints map[string]roommodel.StaffPointConstraint) []ecosolver.StaffEcoInput {
	out := make([]ecosolver.StaffEcoInput, 0, len(dist))
	for name, d := range dist {
		sp := constraints[name]
		caps := floorCapsFor(sp, d)
		out = append(out, ecosolver.StaffEcoInput{
			Name:          name,
			MainQuota:     d.MainEco,
			AnnexQuota:    d.AnnexEco,
			CapRemaining:  caps.Total,
			IsBathCleaner: sp.IsBathCleaner,
			IsContractor:  sp.Constraint.IsContractor(),
		})
	}
	return out
}
