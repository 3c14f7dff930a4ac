package orchestrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/roomshift/internal/config"
	"github.com/gitrdm/roomshift/internal/roommodel"
)

func floor(t *testing.T, num int, main bool, counts map[string]int, eco int) roommodel.FloorInfo {
	t.Helper()
	fi, err := roommodel.NewFloorInfo(num, main, counts, eco)
	require.NoError(t, err)
	return fi
}

func TestOptimize_EmptyInputReturnsSingleEmptyResult(t *testing.T) {
	bd := roommodel.NewBuildingData(nil, nil)
	results, err := Optimize(bd, nil, nil, nil, roommodel.NoBathCleaning(), nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Assignments)
	assert.True(t, results[0].IsComplete)
}

func TestOptimize_MissingDistributionFailsFast(t *testing.T) {
	bd := roommodel.NewBuildingData([]roommodel.FloorInfo{
		floor(t, 1, true, map[string]int{"S": 2}, 0),
	}, nil)
	staff := []roommodel.Staff{{Name: "alice"}}

	_, err := Optimize(bd, staff, map[string]roommodel.StaffDistribution{}, nil, roommodel.NoBathCleaning(), nil, nil)
	require.Error(t, err)
	var missing MissingDistributionError
	assert.ErrorAs(t, err, &missing)
}

func TestOptimize_SimpleCompleteSolution(t *testing.T) {
	bd := roommodel.NewBuildingData([]roommodel.FloorInfo{
		floor(t, 1, true, map[string]int{"S": 4}, 0),
	}, nil)
	staff := []roommodel.Staff{{Name: "alice"}}
	dist := map[string]roommodel.StaffDistribution{
		"alice": {MainSingle: 4},
	}
	constraints := map[string]roommodel.StaffPointConstraint{
		"alice": {Building: roommodel.BuildingBoth},
	}

	results, err := Optimize(bd, staff, dist, constraints, roommodel.NoBathCleaning(), config.New(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.True(t, results[0].IsComplete)
	assert.Equal(t, 0, results[0].UnassignedRooms.TotalUnassigned())
	assert.Equal(t, 4, results[0].Assignments["alice"].TotalRooms())
}

func TestOptimize_ZeroQuotaStaffStillExhaustsFloor(t *testing.T) {
	bd := roommodel.NewBuildingData([]roommodel.FloorInfo{
		floor(t, 1, true, map[string]int{"S": 4}, 0),
	}, nil)
	staff := []roommodel.Staff{{Name: "alice"}}
	dist := map[string]roommodel.StaffDistribution{
		"alice": {}, // zero quota everywhere, but not "missing"
	}
	constraints := map[string]roommodel.StaffPointConstraint{
		"alice": {Building: roommodel.BuildingBoth},
	}

	// The single solver must exhaust every floor's single-like rooms across
	// eligible staff, so alice takes all four despite her zero quota.
	results, err := Optimize(bd, staff, dist, constraints, roommodel.NoBathCleaning(), config.New(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.True(t, results[0].IsComplete)
	assert.Equal(t, 0, results[0].UnassignedRooms.TotalUnassigned())
}

func TestOptimize_DedupesIdenticalFloorPatterns(t *testing.T) {
	bd := roommodel.NewBuildingData([]roommodel.FloorInfo{
		floor(t, 1, true, map[string]int{"S": 2}, 0),
		floor(t, 2, true, map[string]int{"S": 2}, 0),
	}, nil)
	staff := []roommodel.Staff{{Name: "alice"}, {Name: "bob"}}
	dist := map[string]roommodel.StaffDistribution{
		"alice": {MainSingle: 2},
		"bob":   {MainSingle: 2},
	}
	constraints := map[string]roommodel.StaffPointConstraint{
		"alice": {Building: roommodel.BuildingBoth},
		"bob":   {Building: roommodel.BuildingBoth},
	}

	cfg := config.New(config.WithRequestedSolutions(5))
	results, err := Optimize(bd, staff, dist, constraints, roommodel.NoBathCleaning(), cfg, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	seen := map[string]bool{}
	for _, r := range results {
		fp := fingerprint(r.Assignments)
		assert.False(t, seen[fp], "duplicate floor-pattern fingerprint in results")
		seen[fp] = true
	}
}

func TestOptimize_FallsBackToBestPartialWhenNoCompleteSolutionExists(t *testing.T) {
	bd := roommodel.NewBuildingData([]roommodel.FloorInfo{
		floor(t, 1, true, map[string]int{"S": 3}, 0),
	}, nil)
	staff := []roommodel.Staff{{Name: "alice"}}
	dist := map[string]roommodel.StaffDistribution{
		"alice": {MainSingle: 5},
	}
	constraints := map[string]roommodel.StaffPointConstraint{
		"alice": {Building: roommodel.BuildingBoth},
	}

	results, err := Optimize(bd, staff, dist, constraints, roommodel.NoBathCleaning(), config.New(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.False(t, results[0].IsComplete)
	assert.Greater(t, results[0].Assignments["alice"].TotalRooms(), 0)
}

func TestOptimize_PastDeadlineStopsRelaxationLoopImmediately(t *testing.T) {
	bd := roommodel.NewBuildingData([]roommodel.FloorInfo{
		floor(t, 1, true, map[string]int{"S": 4}, 0),
	}, nil)
	staff := []roommodel.Staff{{Name: "alice"}}
	dist := map[string]roommodel.StaffDistribution{
		"alice": {MainSingle: 4},
	}
	constraints := map[string]roommodel.StaffPointConstraint{
		"alice": {Building: roommodel.BuildingBoth},
	}

	// Same inputs as TestOptimize_SimpleCompleteSolution, which normally
	// yields a complete solution; an already-past deadline must cut the
	// relaxation loop off before any pattern is tried, leaving nothing in
	// either the complete-results list or the best-partial pool.
	cfg := config.New(config.WithDeadline(time.Now().Add(-time.Hour)))
	_, err := Optimize(bd, staff, dist, constraints, roommodel.NoBathCleaning(), cfg, nil)
	require.Error(t, err)
	var infeasible *InfeasibleError
	assert.ErrorAs(t, err, &infeasible)
}
