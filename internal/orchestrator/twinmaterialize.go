package orchestrator

import (
	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/roomshift/internal/floorpool"
	"github.com/gitrdm/roomshift/internal/roommodel"
	"github.com/gitrdm/roomshift/internal/twindist"
)

// materializeTwins converts the twin distributor's per-staff, per-floor
// twin-room counts into actual RoomAllocations, drawing real twin-coded
// rooms from each floor's remaining inventory using the same
// largest-bin-first policy every other draw-down in this module follows
// (floorpool.Pool). staffOrder fixes draw order per floor
// so repeated runs over the same pattern assign identical codes.
func materializeTwins(
	bd *roommodel.BuildingData,
	assignments map[string]*twindist.Assignment,
	staffOrder []string,
	classifier *roommodel.RoomTypeClassifier,
	log hclog.Logger,
) map[string]*roommodel.StaffAssignment {
	out := make(map[string]*roommodel.StaffAssignment, len(assignments))
	for _, name := range staffOrder {
		out[name] = roommodel.NewStaffAssignment(roommodel.Staff{Name: name}, roommodel.NoBathCleaning())
	}

	drainFloor := func(floors []roommodel.FloorInfo, isMain bool, countFor func(name string) map[int]int) {
		pools := make(map[int]*floorpool.Pool, len(floors))
		for _, f := range floors {
			pools[f.FloorNumber] = floorpool.New(f)
		}
		for _, floorNum := range sortedFloorNumbers(floors) {
			pool := pools[floorNum]
			for _, name := range staffOrder {
				a, ok := assignments[name]
				if !ok {
					continue
				}
				counts := countFor(name)
				n := counts[floorNum]
				if n <= 0 {
					continue
				}
				drawn := pool.AllocateFromCodes(n, classifier.IsTwin, log)
				alloc := roommodel.NewRoomAllocation(drawn, 0)
				if isMain {
					existing := out[name].MainAssignments[floorNum]
					out[name].SetMainAllocation(floorNum, existing.Merge(alloc))
				} else {
					existing := out[name].AnnexAssignments[floorNum]
					out[name].SetAnnexAllocation(floorNum, existing.Merge(alloc))
				}
			}
		}
	}

	drainFloor(bd.MainFloors, true, func(name string) map[int]int { return assignments[name].MainFloorTwins })
	drainFloor(bd.AnnexFloors, false, func(name string) map[int]int { return assignments[name].AnnexFloorTwins })
	return out
}

// sortedFloorNumbers returns floor numbers in the order floors already
// appear — NewBuildingData guarantees ascending order, so no re-sort is
// needed here.
func sortedFloorNumbers(floors []roommodel.FloorInfo) []int {
	out := make([]int, len(floors))
	for i, f := range floors {
		out[i] = f.FloorNumber
	}
	return out
}
