// Package bathplacer implements the greedy large-bath-cleaning staff
// pre-placer described in spec.md §4.C: each bath cleaner is confined to the
// smallest unused floor per building that can satisfy their single+twin
// target, so scarce small floors are not blocked by staff who don't need
// them.
package bathplacer

import (
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/gitrdm/roomshift/internal/floorpool"
	"github.com/gitrdm/roomshift/internal/roommodel"
)

// Result is the pre-placer's output: the pre-assignments for bath staff,
// the building data with their rooms decremented, and the distribution map
// with bath staff removed — the inputs the rest of the pipeline consumes
// (spec.md §4.C step 5).
type Result struct {
	PreAssignments        map[string]*roommodel.StaffAssignment
	RemainingBuilding      *roommodel.BuildingData
	RemainingDistribution map[string]roommodel.StaffDistribution
}

// Place runs the pre-placement pass. staffOrder determines both which
// staff are considered bath cleaners (via constraints) and the order in
// which they compete for floors.
func Place(
	bd *roommodel.BuildingData,
	staffOrder []roommodel.Staff,
	dist map[string]roommodel.StaffDistribution,
	constraints map[string]roommodel.StaffPointConstraint,
	bathType roommodel.BathCleaningType,
	classifier *roommodel.RoomTypeClassifier,
	log hclog.Logger,
) Result {
	mainPools := newPools(bd.MainFloors)
	annexPools := newPools(bd.AnnexFloors)
	usedMain := map[int]bool{}
	usedAnnex := map[int]bool{}

	mainByCount := sortedByCount(bd.MainFloors)
	annexByCount := sortedByCount(bd.AnnexFloors)

	preAssignments := make(map[string]*roommodel.StaffAssignment)
	remainingDist := make(map[string]roommodel.StaffDistribution, len(dist))
	for name, d := range dist {
		remainingDist[name] = d
	}

	for _, st := range staffOrder {
		sp, ok := constraints[st.Name]
		if !ok || !sp.IsBathCleaner {
			continue
		}
		d, ok := dist[st.Name]
		if !ok {
			continue
		}
		assignment := roommodel.NewStaffAssignment(st, bathType)

		if required := d.RequiredMain(); required > 0 {
			if floor, found := pickFloor(mainByCount, usedMain, required); found {
				usedMain[floor] = true
				pool := mainPools[floor]
				alloc := drawBathRoom(pool, d.MainTwin, d.MainSingle, classifier)
				assignment.SetMainAllocation(floor, alloc)
			} else if log != nil {
				log.Warn("bathplacer: no sufficient unused main floor for bath cleaner",
					"staff", st.Name, "required", required)
			}
		}
		if required := d.RequiredAnnex(); required > 0 {
			if floor, found := pickFloor(annexByCount, usedAnnex, required); found {
				usedAnnex[floor] = true
				pool := annexPools[floor]
				alloc := drawBathRoom(pool, d.AnnexTwin, d.AnnexSingle, classifier)
				assignment.SetAnnexAllocation(floor, alloc)
			} else if log != nil {
				log.Warn("bathplacer: no sufficient unused annex floor for bath cleaner",
					"staff", st.Name, "required", required)
			}
		}

		preAssignments[st.Name] = assignment
		delete(remainingDist, st.Name)
	}

	return Result{
		PreAssignments:        preAssignments,
		RemainingBuilding:      rebuild(bd, mainPools, annexPools),
		RemainingDistribution: remainingDist,
	}
}

func newPools(floors []roommodel.FloorInfo) map[int]*floorpool.Pool {
	pools := make(map[int]*floorpool.Pool, len(floors))
	for _, f := range floors {
		pools[f.FloorNumber] = floorpool.New(f)
	}
	return pools
}

type floorTotal struct {
	floor int
	total int
}

// sortedByCount returns (floor, totalRoomCount) pairs ordered ascending by
// total room count (spec.md §4.C step 2), breaking ties by floor number for
// determinism.
func sortedByCount(floors []roommodel.FloorInfo) []floorTotal {
	entries := make([]floorTotal, len(floors))
	for i, f := range floors {
		entries[i] = floorTotal{f.FloorNumber, f.TotalRoomCount()}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].total != entries[j].total {
			return entries[i].total < entries[j].total
		}
		return entries[i].floor < entries[j].floor
	})
	return entries
}

// pickFloor selects the first unused floor whose total room count is at
// least required (spec.md §4.C step 3: "smallest sufficient fit").
func pickFloor(byCount []floorTotal, used map[int]bool, required int) (int, bool) {
	for _, e := range byCount {
		if used[e.floor] {
			continue
		}
		if e.total < required {
			continue
		}
		return e.floor, true
	}
	return 0, false
}

func drawBathRoom(pool *floorpool.Pool, twinTarget, singleTarget int, classifier *roommodel.RoomTypeClassifier) roommodel.RoomAllocation {
	twins := pool.AllocateFromCodes(twinTarget, classifier.IsTwin, nil)
	singles := pool.AllocateFromCodes(singleTarget, classifier.IsSingleLike, nil)
	merged := make(map[string]int, len(twins)+len(singles))
	for k, v := range twins {
		merged[k] = v
	}
	for k, v := range singles {
		merged[k] += v
	}
	return roommodel.NewRoomAllocation(merged, 0)
}

func rebuild(bd *roommodel.BuildingData, mainPools, annexPools map[int]*floorpool.Pool) *roommodel.BuildingData {
	mainOut := make([]roommodel.FloorInfo, len(bd.MainFloors))
	for i, f := range bd.MainFloors {
		mainOut[i] = mainPools[f.FloorNumber].Snapshot()
	}
	annexOut := make([]roommodel.FloorInfo, len(bd.AnnexFloors))
	for i, f := range bd.AnnexFloors {
		annexOut[i] = annexPools[f.FloorNumber].Snapshot()
	}
	return roommodel.NewBuildingData(mainOut, annexOut)
}
