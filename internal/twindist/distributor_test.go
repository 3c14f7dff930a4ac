package twindist

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/roomshift/internal/roommodel"
)

func isTwinCode(code string) bool { return code == "T" }

func floor(t *testing.T, num int, main bool, counts map[string]int, eco int) roommodel.FloorInfo {
	t.Helper()
	fi, err := roommodel.NewFloorInfo(num, main, counts, eco)
	require.NoError(t, err)
	return fi
}

func TestDistribute_RoundRobinAcrossFloors(t *testing.T) {
	bd := roommodel.NewBuildingData([]roommodel.FloorInfo{
		floor(t, 1, true, map[string]int{"T": 4}, 0),
		floor(t, 2, true, map[string]int{"T": 4}, 0),
	}, nil)

	staffOrder := []string{"alice", "bob"}
	mainTargets := map[string]int{"alice": 4, "bob": 4}
	caps := map[string]FloorCaps{
		"alice": {Total: 2, MainCap: 2},
		"bob":   {Total: 2, MainCap: 2},
	}

	assignments, ok := Distribute(bd, staffOrder, mainTargets, nil, 2, caps, isTwinCode, hclog.NewNullLogger(), DefaultTimeout)
	require.True(t, ok)
	assert.Equal(t, 4, assignments["alice"].MainFloorTwins[1]+assignments["alice"].MainFloorTwins[2])
	assert.Equal(t, 4, assignments["bob"].MainFloorTwins[1]+assignments["bob"].MainFloorTwins[2])
}

func TestDistribute_RespectsMaxStaffPerFloor(t *testing.T) {
	bd := roommodel.NewBuildingData([]roommodel.FloorInfo{
		floor(t, 1, true, map[string]int{"T": 6}, 0),
	}, nil)

	staffOrder := []string{"alice", "bob", "carol"}
	mainTargets := map[string]int{"alice": 2, "bob": 2, "carol": 2}
	caps := map[string]FloorCaps{
		"alice": {Total: 1, MainCap: 1},
		"bob":   {Total: 1, MainCap: 1},
		"carol": {Total: 1, MainCap: 1},
	}

	assignments, ok := Distribute(bd, staffOrder, mainTargets, nil, 2, caps, isTwinCode, hclog.NewNullLogger(), DefaultTimeout)
	require.False(t, ok, "only two staff may touch the single floor at once under maxStaffPerFloor=2")

	present := 0
	for _, name := range staffOrder {
		if len(assignments[name].MainFloorTwins) > 0 {
			present++
		}
	}
	assert.LessOrEqual(t, present, 2)
}

func TestDistribute_FloorCapPreventsOverflow(t *testing.T) {
	bd := roommodel.NewBuildingData([]roommodel.FloorInfo{
		floor(t, 1, true, map[string]int{"T": 2}, 0),
		floor(t, 2, true, map[string]int{"T": 2}, 0),
		floor(t, 3, true, map[string]int{"T": 2}, 0),
	}, nil)

	staffOrder := []string{"alice"}
	mainTargets := map[string]int{"alice": 6}
	caps := map[string]FloorCaps{
		"alice": {Total: 2, MainCap: 2},
	}

	assignments, ok := Distribute(bd, staffOrder, mainTargets, nil, 3, caps, isTwinCode, hclog.NewNullLogger(), DefaultTimeout)
	require.False(t, ok)
	assert.LessOrEqual(t, len(assignments["alice"].MainFloorTwins), 2)
}

func TestDistribute_EmptyTargetsIsTriviallyOK(t *testing.T) {
	bd := roommodel.NewBuildingData([]roommodel.FloorInfo{
		floor(t, 1, true, map[string]int{"T": 2}, 0),
	}, nil)

	assignments, ok := Distribute(bd, []string{"alice"}, map[string]int{}, map[string]int{}, 2,
		map[string]FloorCaps{"alice": {Total: 2, MainCap: 2, AnnexCap: 2}}, isTwinCode, hclog.NewNullLogger(), DefaultTimeout)
	require.True(t, ok)
	assert.Empty(t, assignments["alice"].MainFloorTwins)
}
