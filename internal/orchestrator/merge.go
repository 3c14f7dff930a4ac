package orchestrator

import "github.com/gitrdm/roomshift/internal/roommodel"

// mergeAssignments combines two assignment maps (e.g. twin + single, or
// pre-placement + the rest), summing allocations when the same staff/floor
// appears in more than one. No input map is mutated: the result is a fresh
// map of fresh StaffAssignments.
func mergeAssignments(sets ...map[string]*roommodel.StaffAssignment) map[string]*roommodel.StaffAssignment {
	out := map[string]*roommodel.StaffAssignment{}
	for _, set := range sets {
		for name, a := range set {
			dst, ok := out[name]
			if !ok {
				dst = roommodel.NewStaffAssignment(a.Staff, a.BathType)
				out[name] = dst
			}
			for floor, alloc := range a.MainAssignments {
				existing := dst.MainAssignments[floor]
				dst.SetMainAllocation(floor, existing.Merge(alloc))
			}
			for floor, alloc := range a.AnnexAssignments {
				existing := dst.AnnexAssignments[floor]
				dst.SetAnnexAllocation(floor, existing.Merge(alloc))
			}
		}
	}
	return out
}
