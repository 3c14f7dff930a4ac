package roommodel

import "sort"

// RoomAllocation is the per-(staff, building, floor) count record from
// spec.md §3: immutable once constructed. Components B/D/E/F are the only
// producers.
type RoomAllocation struct {
	RoomCounts map[string]int
	EcoRooms   int
}

// NewRoomAllocation copies roomCounts so the returned value is safe from
// later mutation of the caller's map.
func NewRoomAllocation(roomCounts map[string]int, ecoRooms int) RoomAllocation {
	cp := make(map[string]int, len(roomCounts))
	for k, v := range roomCounts {
		if v == 0 {
			continue
		}
		cp[k] = v
	}
	return RoomAllocation{RoomCounts: cp, EcoRooms: ecoRooms}
}

// Total returns the allocation's room count, eco included.
func (a RoomAllocation) Total() int {
	total := a.EcoRooms
	for _, n := range a.RoomCounts {
		total += n
	}
	return total
}

// Merge returns a new allocation combining a and other, summing overlapping
// codes. Used when the eco solver adds eco rooms to a floor a staff member
// already covers via singles or twins.
func (a RoomAllocation) Merge(other RoomAllocation) RoomAllocation {
	cp := make(map[string]int, len(a.RoomCounts)+len(other.RoomCounts))
	for k, v := range a.RoomCounts {
		cp[k] = v
	}
	for k, v := range other.RoomCounts {
		cp[k] += v
	}
	return RoomAllocation{RoomCounts: cp, EcoRooms: a.EcoRooms + other.EcoRooms}
}

// StaffAssignment is the per-staff output record (spec.md §3): created once
// per staff per optimization and never mutated after the orchestrator
// returns it, except for the eco solver's write-back before return.
type StaffAssignment struct {
	Staff            Staff
	MainAssignments  map[int]RoomAllocation
	AnnexAssignments map[int]RoomAllocation
	BathType         BathCleaningType
}

// NewStaffAssignment creates an empty assignment record for staff.
func NewStaffAssignment(staff Staff, bathType BathCleaningType) *StaffAssignment {
	return &StaffAssignment{
		Staff:            staff,
		MainAssignments:  make(map[int]RoomAllocation),
		AnnexAssignments: make(map[int]RoomAllocation),
		BathType:         bathType,
	}
}

// SetMainAllocation overwrites the main-building allocation for floor.
func (a *StaffAssignment) SetMainAllocation(floor int, alloc RoomAllocation) {
	a.MainAssignments[floor] = alloc
}

// SetAnnexAllocation overwrites the annex-building allocation for floor.
func (a *StaffAssignment) SetAnnexAllocation(floor int, alloc RoomAllocation) {
	a.AnnexAssignments[floor] = alloc
}

// AddEcoMain merges eco rooms into the staff's main-building allocation for
// floor, creating an empty allocation first if none existed yet.
func (a *StaffAssignment) AddEcoMain(floor int, eco int) {
	existing := a.MainAssignments[floor]
	a.MainAssignments[floor] = existing.Merge(RoomAllocation{EcoRooms: eco})
}

// AddEcoAnnex is the annex-building counterpart of AddEcoMain.
func (a *StaffAssignment) AddEcoAnnex(floor int, eco int) {
	existing := a.AnnexAssignments[floor]
	a.AnnexAssignments[floor] = existing.Merge(RoomAllocation{EcoRooms: eco})
}

// Floors returns the sorted union of composite floor keys (see FloorKey)
// this staff member covers across both buildings.
func (a *StaffAssignment) Floors() []int {
	keys := make([]int, 0, len(a.MainAssignments)+len(a.AnnexAssignments))
	for f := range a.MainAssignments {
		keys = append(keys, FloorKey(true, f))
	}
	for f := range a.AnnexAssignments {
		keys = append(keys, FloorKey(false, f))
	}
	sort.Ints(keys)
	return keys
}

// MainFloorCount returns the number of distinct main-building floors this
// staff member covers.
func (a *StaffAssignment) MainFloorCount() int { return len(a.MainAssignments) }

// AnnexFloorCount returns the number of distinct annex-building floors this
// staff member covers.
func (a *StaffAssignment) AnnexFloorCount() int { return len(a.AnnexAssignments) }

// TotalRooms sums room counts (eco included) across both buildings.
func (a *StaffAssignment) TotalRooms() int {
	total := 0
	for _, alloc := range a.MainAssignments {
		total += alloc.Total()
	}
	for _, alloc := range a.AnnexAssignments {
		total += alloc.Total()
	}
	return total
}
