package orchestrator

import "github.com/gitrdm/roomshift/internal/roommodel"

// computeUnassigned implements spec.md §4.I: for every floor of both
// buildings, subtract the sum of every staff's allocation on that floor
// from the original FloorInfo counts. A FloorUnassigned is emitted only if
// some component is positive (roommodel.UnassignedRooms.AppendMain/Annex
// already enforce that).
func computeUnassigned(original *roommodel.BuildingData, assignments map[string]*roommodel.StaffAssignment) roommodel.UnassignedRooms {
	var out roommodel.UnassignedRooms

	for _, f := range original.MainFloors {
		out.AppendMain(unassignedOnFloor(f, assignments, true))
	}
	for _, f := range original.AnnexFloors {
		out.AppendAnnex(unassignedOnFloor(f, assignments, false))
	}
	return out
}

func unassignedOnFloor(f roommodel.FloorInfo, assignments map[string]*roommodel.StaffAssignment, isMain bool) roommodel.FloorUnassigned {
	remaining := make(map[string]int, len(f.RoomCounts))
	for code, n := range f.RoomCounts {
		remaining[code] = n
	}
	remainingEco := f.EcoRooms

	for _, a := range assignments {
		var alloc roommodel.RoomAllocation
		var ok bool
		if isMain {
			alloc, ok = a.MainAssignments[f.FloorNumber]
		} else {
			alloc, ok = a.AnnexAssignments[f.FloorNumber]
		}
		if !ok {
			continue
		}
		for code, n := range alloc.RoomCounts {
			remaining[code] -= n
		}
		remainingEco -= alloc.EcoRooms
	}

	return roommodel.FloorUnassigned{Floor: f.FloorNumber, Normal: remaining, Eco: remainingEco}
}

// isComplete reports whether a solution leaves nothing unassigned
// (spec.md §4.I: "A solution is complete iff totalUnassigned == 0").
func isComplete(u roommodel.UnassignedRooms) bool {
	return u.TotalUnassigned() == 0
}
