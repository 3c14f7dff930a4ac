package roommodel

import (
	"fmt"
	"sort"
)

// FloorInfo describes one floor's cleaning-eligible room inventory.
//
// Invariant: every count in RoomCounts and EcoRooms is non-negative. The
// floor's total room count (spec.md §3) is the sum of RoomCounts plus
// EcoRooms; TotalRoomCount (excluding eco) is what the bath pre-placer's
// sufficiency check compares against (see SPEC_FULL.md §3).
type FloorInfo struct {
	FloorNumber    int
	IsMainBuilding bool
	RoomCounts     map[string]int
	EcoRooms       int
}

// NewFloorInfo validates and constructs a FloorInfo. The supplied room-count
// map is copied so the caller's map can be reused or mutated freely.
func NewFloorInfo(floorNumber int, isMainBuilding bool, roomCounts map[string]int, ecoRooms int) (FloorInfo, error) {
	if ecoRooms < 0 {
		return FloorInfo{}, fmt.Errorf("roommodel: floor %d: negative eco count %d", floorNumber, ecoRooms)
	}
	cp := make(map[string]int, len(roomCounts))
	for code, n := range roomCounts {
		if n < 0 {
			return FloorInfo{}, fmt.Errorf("roommodel: floor %d: negative count %d for code %q", floorNumber, n, code)
		}
		if n == 0 {
			continue
		}
		cp[code] = n
	}
	return FloorInfo{
		FloorNumber:    floorNumber,
		IsMainBuilding: isMainBuilding,
		RoomCounts:     cp,
		EcoRooms:       ecoRooms,
	}, nil
}

// TotalRoomCount sums RoomCounts (single-like and twin), excluding eco rooms.
func (f FloorInfo) TotalRoomCount() int {
	total := 0
	for _, n := range f.RoomCounts {
		total += n
	}
	return total
}

// TotalWithEco sums RoomCounts plus EcoRooms — the floor's full invariant total.
func (f FloorInfo) TotalWithEco() int {
	return f.TotalRoomCount() + f.EcoRooms
}

// Clone returns a deep copy safe for independent mutation.
func (f FloorInfo) Clone() FloorInfo {
	cp := make(map[string]int, len(f.RoomCounts))
	for k, v := range f.RoomCounts {
		cp[k] = v
	}
	return FloorInfo{
		FloorNumber:    f.FloorNumber,
		IsMainBuilding: f.IsMainBuilding,
		RoomCounts:     cp,
		EcoRooms:       f.EcoRooms,
	}
}

// FloorKey returns a composite key that distinguishes a main-building floor
// from an annex floor of the same number. The annex offset of 1000 mirrors
// the convention spec.md §4.D calls out for the twin distributor's
// UsedFloors bookkeeping; it is reused everywhere a floor identity must be
// unique across both buildings (floor caps, fingerprints).
func FloorKey(isMainBuilding bool, floorNumber int) int {
	if isMainBuilding {
		return floorNumber
	}
	return floorNumber + 1000
}

// BuildingData holds both buildings' floor inventories in ascending floor
// order, with cached non-eco room totals.
type BuildingData struct {
	MainFloors     []FloorInfo
	AnnexFloors    []FloorInfo
	MainRoomCount  int
	AnnexRoomCount int
}

// NewBuildingData sorts each building's floors ascending by floor number and
// computes the cached totals (excluding eco rooms).
func NewBuildingData(mainFloors, annexFloors []FloorInfo) *BuildingData {
	m := cloneSortedFloors(mainFloors)
	a := cloneSortedFloors(annexFloors)
	bd := &BuildingData{MainFloors: m, AnnexFloors: a}
	for _, f := range m {
		bd.MainRoomCount += f.TotalRoomCount()
	}
	for _, f := range a {
		bd.AnnexRoomCount += f.TotalRoomCount()
	}
	return bd
}

func cloneSortedFloors(floors []FloorInfo) []FloorInfo {
	out := make([]FloorInfo, len(floors))
	for i, f := range floors {
		out[i] = f.Clone()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FloorNumber < out[j].FloorNumber })
	return out
}

// FloorsFor returns the floor slice for the requested building.
func (b *BuildingData) FloorsFor(isMainBuilding bool) []FloorInfo {
	if isMainBuilding {
		return b.MainFloors
	}
	return b.AnnexFloors
}

// GetFloorCount returns the number of floors across both buildings.
func (b *BuildingData) GetFloorCount() int {
	return len(b.MainFloors) + len(b.AnnexFloors)
}

// GetTotalRooms returns the grand total of rooms (including eco) across both
// buildings.
func (b *BuildingData) GetTotalRooms() int {
	total := 0
	for _, f := range b.MainFloors {
		total += f.TotalWithEco()
	}
	for _, f := range b.AnnexFloors {
		total += f.TotalWithEco()
	}
	return total
}

// Clone returns a deep, independently-mutable copy.
func (b *BuildingData) Clone() *BuildingData {
	return NewBuildingData(b.MainFloors, b.AnnexFloors)
}
