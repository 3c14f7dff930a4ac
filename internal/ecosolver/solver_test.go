package ecosolver

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func TestSolve_ExhaustsEcoFloor(t *testing.T) {
	sites := []StaffFloor{
		{Staff: "alice", IsMain: true, Floor: 1, Eco: 3, AlreadyOpen: true},
		{Staff: "bob", IsMain: true, Floor: 1, Eco: 3, AlreadyOpen: true},
	}
	staff := []StaffEcoInput{
		{Name: "alice", MainQuota: 2, CapRemaining: 1},
		{Name: "bob", MainQuota: 1, CapRemaining: 1},
	}

	res := Solve(sites, staff, DefaultEnumCap, DefaultTimeout, hclog.NewNullLogger())
	total := 0
	for _, byFloor := range res.MainEco {
		for _, n := range byFloor {
			total += n
		}
	}
	assert.Equal(t, 3, total)
}

func TestRoundRobin_ExhaustsFloorAndReportsUnbalanced(t *testing.T) {
	// These sites are feasible for the CP model, so round-robin is
	// exercised directly to check its own exhaustion behavior and that it
	// reports Balanced=false.
	sites := []StaffFloor{
		{Staff: "alice", IsMain: true, Floor: 1, Eco: 2},
		{Staff: "bob", IsMain: true, Floor: 1, Eco: 2},
	}
	res := roundRobin(sites)
	total := 0
	for _, byFloor := range res.MainEco {
		for _, n := range byFloor {
			total += n
		}
	}
	assert.Equal(t, 2, total)
	assert.False(t, res.Balanced)
}

func TestSolve_RoundRobinBalancesLowestTotalFirst(t *testing.T) {
	sites := []StaffFloor{
		{Staff: "alice", IsMain: true, Floor: 1, Eco: 4},
		{Staff: "bob", IsMain: true, Floor: 1, Eco: 4},
	}
	res := roundRobin(sites)
	aliceTotal, bobTotal := 0, 0
	for floor, n := range res.MainEco["alice"] {
		_ = floor
		aliceTotal += n
	}
	for floor, n := range res.MainEco["bob"] {
		_ = floor
		bobTotal += n
	}
	assert.Equal(t, 2, aliceTotal)
	assert.Equal(t, 2, bobTotal)
}
