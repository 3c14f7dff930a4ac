package orchestrator

import (
	"github.com/gitrdm/roomshift/internal/roommodel"
	"github.com/gitrdm/roomshift/internal/twindist"
)

// floorCapsFor implements spec.md §4.H's getMaxFloors policy, with the
// stricter per-building-AND-total reading SPEC_FULL.md §3 resolves: a
// contractor gets an effectively unlimited cap; a staff member with both
// main and annex quota present gets MainCap=1 and AnnexCap=1 (Total still
// 2); otherwise just a staff-wide Total of 2.
func floorCapsFor(sp roommodel.StaffPointConstraint, d roommodel.StaffDistribution) twindist.FloorCaps {
	if sp.Constraint.IsContractor() {
		return twindist.FloorCaps{Total: 99}
	}
	hasMain := d.RequiredMain() > 0 || d.MainEco > 0
	hasAnnex := d.RequiredAnnex() > 0 || d.AnnexEco > 0
	if hasMain && hasAnnex {
		return twindist.FloorCaps{Total: 2, MainCap: 1, AnnexCap: 1}
	}
	return twindist.FloorCaps{Total: 2}
}
