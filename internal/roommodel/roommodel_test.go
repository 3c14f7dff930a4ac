package roommodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFloorInfo_RejectsNegativeCounts(t *testing.T) {
	_, err := NewFloorInfo(2, true, map[string]int{"S": -1}, 0)
	require.Error(t, err)

	_, err = NewFloorInfo(2, true, map[string]int{"S": 1}, -3)
	require.Error(t, err)
}

func TestNewFloorInfo_DropsZeroBinsAndCopiesInput(t *testing.T) {
	src := map[string]int{"S": 3, "T": 0}
	fi, err := NewFloorInfo(4, true, src, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, fi.TotalRoomCount())
	assert.Equal(t, 5, fi.TotalWithEco())
	_, hasTwin := fi.RoomCounts["T"]
	assert.False(t, hasTwin)

	src["S"] = 99
	assert.Equal(t, 3, fi.RoomCounts["S"], "constructor must defensively copy the input map")
}

func TestFloorKey_DistinguishesBuildings(t *testing.T) {
	assert.Equal(t, 3, FloorKey(true, 3))
	assert.Equal(t, 1003, FloorKey(false, 3))
	assert.NotEqual(t, FloorKey(true, 3), FloorKey(false, 3))
}

func TestNewBuildingData_SortsAndCachesTotals(t *testing.T) {
	f3, _ := NewFloorInfo(3, true, map[string]int{"S": 2}, 0)
	f2, _ := NewFloorInfo(2, true, map[string]int{"S": 5}, 1)
	bd := NewBuildingData([]FloorInfo{f3, f2}, nil)

	require.Len(t, bd.MainFloors, 2)
	assert.Equal(t, 2, bd.MainFloors[0].FloorNumber)
	assert.Equal(t, 3, bd.MainFloors[1].FloorNumber)
	assert.Equal(t, 7, bd.MainRoomCount, "eco rooms excluded from cached total")
	assert.Equal(t, 8, bd.GetTotalRooms(), "grand total includes eco")
	assert.Equal(t, 2, bd.GetFloorCount())
}

func TestBuildingData_CloneIsIndependent(t *testing.T) {
	f, _ := NewFloorInfo(2, true, map[string]int{"S": 5}, 0)
	bd := NewBuildingData([]FloorInfo{f}, nil)
	clone := bd.Clone()

	clone.MainFloors[0].RoomCounts["S"] = 1
	assert.Equal(t, 5, bd.MainFloors[0].RoomCounts["S"], "mutating the clone must not affect the original")
}

func TestStaffDistribution_RequiredTotalsAndValidate(t *testing.T) {
	d := StaffDistribution{MainSingle: 2, MainTwin: 3, AnnexSingle: 1, AnnexTwin: 1}
	assert.Equal(t, 5, d.RequiredMain())
	assert.Equal(t, 2, d.RequiredAnnex())
	assert.NoError(t, d.Validate())

	bad := StaffDistribution{MainSingle: -1}
	assert.Error(t, bad.Validate())
}

func TestConstraintKind_Variants(t *testing.T) {
	none := NoConstraint()
	assert.False(t, none.IsContractor())
	_, capOK := none.Cap()
	assert.False(t, capOK)

	upper := UpperLimit(4)
	cap, ok := upper.Cap()
	require.True(t, ok)
	assert.Equal(t, 4, cap)
	assert.Equal(t, "UpperLimit(4)", upper.String())

	lower := LowerRange(2, 8)
	min, max, ok := lower.Range()
	require.True(t, ok)
	assert.Equal(t, 2, min)
	assert.Equal(t, 8, max)
	assert.True(t, lower.IsContractor())
}

func TestBuildingAssignment_HasMainHasAnnex(t *testing.T) {
	assert.True(t, BuildingBoth.HasMain())
	assert.True(t, BuildingBoth.HasAnnex())
	assert.True(t, BuildingMainOnly.HasMain())
	assert.False(t, BuildingMainOnly.HasAnnex())
	assert.False(t, BuildingAnnexOnly.HasMain())
	assert.True(t, BuildingAnnexOnly.HasAnnex())
}

func TestRoomAllocation_MergeSumsOverlappingCodes(t *testing.T) {
	a := NewRoomAllocation(map[string]int{"S": 2, "T": 1}, 1)
	b := NewRoomAllocation(map[string]int{"T": 3, "D": 1}, 2)

	merged := a.Merge(b)
	assert.Equal(t, 2, merged.RoomCounts["S"])
	assert.Equal(t, 4, merged.RoomCounts["T"])
	assert.Equal(t, 1, merged.RoomCounts["D"])
	assert.Equal(t, 3, merged.EcoRooms)
	assert.Equal(t, 10, merged.Total())
}

func TestStaffAssignment_FloorsAndTotals(t *testing.T) {
	sa := NewStaffAssignment(Staff{Name: "alice"}, NoBathCleaning())
	sa.SetMainAllocation(2, NewRoomAllocation(map[string]int{"S": 3}, 1))
	sa.SetAnnexAllocation(2, NewRoomAllocation(map[string]int{"T": 2}, 0))
	sa.AddEcoMain(2, 1)

	assert.Equal(t, []int{2, 1002}, sa.Floors())
	assert.Equal(t, 1, sa.MainFloorCount())
	assert.Equal(t, 1, sa.AnnexFloorCount())
	assert.Equal(t, 3+1+1+2, sa.TotalRooms())
}

func TestUnassignedRooms_SkipsEmptyFloorsAndSumsTotals(t *testing.T) {
	var u UnassignedRooms
	u.AppendMain(FloorUnassigned{Floor: 2, Normal: map[string]int{"S": 0}, Eco: 0})
	u.AppendMain(FloorUnassigned{Floor: 3, Normal: map[string]int{"S": 2}, Eco: 1})
	u.AppendAnnex(FloorUnassigned{Floor: 2, Eco: 3})

	require.Len(t, u.MainBuilding, 1, "all-zero floor must be dropped")
	assert.Equal(t, 2, u.TotalNormalUnassigned())
	assert.Equal(t, 4, u.TotalEcoUnassigned())
	assert.Equal(t, 6, u.TotalUnassigned())
}

func TestRoomTypeClassifier_DefaultsAndOverride(t *testing.T) {
	def := NewRoomTypeClassifier(nil)
	assert.True(t, def.IsTwin("T"))
	assert.True(t, def.IsTwin("ANT"))
	assert.False(t, def.IsTwin("S"))
	assert.True(t, def.IsSingleLike("ZZZ"), "unrecognized codes default to single-like")

	custom := NewRoomTypeClassifier(map[string]struct{}{"X": {}})
	assert.True(t, custom.IsTwin("X"))
	assert.False(t, custom.IsTwin("T"), "custom twin set replaces, not extends, the default")
}
