// Package twindist implements the round-robin, floor-level twin-room
// distributor from spec.md §4.D: staff rotate through ascending floors,
// taking one twin room at a time, subject to per-staff floor caps and the
// shared maxStaffPerFloor ceiling.
package twindist

import (
	"context"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"
	set "github.com/hashicorp/go-set/v3"
	"github.com/gitrdm/roomshift/internal/roommodel"
)

// DefaultTimeout is the per-call soft deadline spec.md §5 suggests for the
// twin distributor; callers that want the configured value should pass
// cfg.TwinTimeout instead.
const DefaultTimeout = 30 * time.Second

// FloorCaps is the per-staff floor-cap policy (spec.md §4.H getMaxFloors,
// with the stricter reading from SPEC_FULL.md §3 applied): a staff member
// assigned to both buildings is capped at MainCap floors in the main
// building and AnnexCap floors in the annex, with Total as the overall
// ceiling across both. A zero MainCap or AnnexCap means that building has
// no separate cap, and Total is used in its place.
type FloorCaps struct {
	Total    int
	MainCap  int
	AnnexCap int
}

// Assignment is one staff member's twin-room distribution result
// (spec.md §4.D): per-floor twin counts in each building, plus the set of
// floors (composite keys, see roommodel.FloorKey) they now occupy.
type Assignment struct {
	MainFloorTwins  map[int]int
	AnnexFloorTwins map[int]int
	UsedFloors      *set.Set[int]
}

func newAssignment() *Assignment {
	return &Assignment{
		MainFloorTwins:  map[int]int{},
		AnnexFloorTwins: map[int]int{},
		UsedFloors:      set.New[int](0),
	}
}

// Distribute runs the round-robin distributor over both buildings
// independently. mainTargets/annexTargets are per-staff twin-room targets
// for one pattern (spec.md §4.G); staffOrder is the shift-sheet order that
// governs round-robin fairness. timeout is the per-call soft deadline
// (non-positive falls back to DefaultTimeout); it bounds the pass the same
// way singlesolver/ecosolver bound their CP search, even though this
// distributor is a deterministic round-robin rather than a CP model. It
// returns ok=false if any staff member ends the pass with a positive
// remaining target in either building, or if the timeout elapsed first —
// either way the pattern is infeasible and the caller should move to the
// next one.
func Distribute(
	bd *roommodel.BuildingData,
	staffOrder []string,
	mainTargets, annexTargets map[string]int,
	maxStaffPerFloor int,
	caps map[string]FloorCaps,
	isTwin func(code string) bool,
	log hclog.Logger,
	timeout time.Duration,
) (map[string]*Assignment, bool) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	assignments := make(map[string]*Assignment, len(staffOrder))
	for _, name := range staffOrder {
		assignments[name] = newAssignment()
	}

	mainOK := distributeBuilding(ctx, bd.MainFloors, true, staffOrder, mainTargets, maxStaffPerFloor, caps, assignments, isTwin, log)
	annexOK := distributeBuilding(ctx, bd.AnnexFloors, false, staffOrder, annexTargets, maxStaffPerFloor, caps, assignments, isTwin, log)

	return assignments, mainOK && annexOK
}

// distributeBuilding processes one building's floors ascending, running the
// round-robin allocation described in spec.md §4.D.
func distributeBuilding(
	ctx context.Context,
	floors []roommodel.FloorInfo,
	isMain bool,
	staffOrder []string,
	targets map[string]int,
	maxStaffPerFloor int,
	caps map[string]FloorCaps,
	assignments map[string]*Assignment,
	isTwin func(code string) bool,
	log hclog.Logger,
) bool {
	remaining := make(map[string]int, len(targets))
	order := make([]string, 0, len(staffOrder))
	for _, name := range staffOrder {
		t := targets[name]
		if t > 0 {
			remaining[name] = t
			order = append(order, name)
		}
	}
	if len(order) == 0 {
		return true
	}

	buildingFloorCount := func(name string) int {
		a := assignments[name]
		if isMain {
			return len(a.MainFloorTwins)
		}
		return len(a.AnnexFloorTwins)
	}
	buildingCap := func(name string) int {
		c := caps[name]
		if isMain {
			if c.MainCap > 0 {
				return c.MainCap
			}
			return c.Total
		}
		if c.AnnexCap > 0 {
			return c.AnnexCap
		}
		return c.Total
	}
	totalFloorCount := func(name string) int { return assignments[name].UsedFloors.Size() }
	totalCap := func(name string) int { return caps[name].Total }

	floorStaffPresence := map[int]map[string]bool{}
	presentOn := func(floor int, name string) bool {
		a := assignments[name]
		if isMain {
			_, ok := a.MainFloorTwins[floor]
			return ok
		}
		_, ok := a.AnnexFloorTwins[floor]
		return ok
	}

	eligible := func(name string, floor int) bool {
		if presentOn(floor, name) {
			return true
		}
		if buildingFloorCount(name) >= buildingCap(name) || totalFloorCount(name) >= totalCap(name) {
			return false
		}
		return len(floorStaffPresence[floor]) < maxStaffPerFloor
	}

	ptr := 0
	for _, f := range sortedAscending(floors) {
		if ctx.Err() != nil {
			if log != nil {
				log.Debug("twindist: timeout elapsed, stopping distribution early",
					"floor", f.FloorNumber, "main", isMain)
			}
			break
		}
		floorRemaining := twinRemainingOn(f, isTwin)
		for floorRemaining > 0 {
			progressed := false
			for i := 0; i < len(order); i++ {
				idx := (ptr + i) % len(order)
				name := order[idx]
				if remaining[name] <= 0 {
					continue
				}
				if !eligible(name, f.FloorNumber) {
					continue
				}
				a := assignments[name]
				key := roommodel.FloorKey(isMain, f.FloorNumber)
				if isMain {
					a.MainFloorTwins[f.FloorNumber]++
				} else {
					a.AnnexFloorTwins[f.FloorNumber]++
				}
				a.UsedFloors.Insert(key)
				if floorStaffPresence[f.FloorNumber] == nil {
					floorStaffPresence[f.FloorNumber] = map[string]bool{}
				}
				floorStaffPresence[f.FloorNumber][name] = true
				remaining[name]--
				floorRemaining--
				ptr = (idx + 1) % len(order)
				progressed = true
				break
			}
			if !progressed {
				if log != nil {
					log.Debug("twindist: no eligible staff for remaining twins on floor",
						"floor", f.FloorNumber, "main", isMain, "remaining", floorRemaining)
				}
				break
			}
		}
	}

	ok := true
	for _, name := range order {
		if remaining[name] > 0 {
			ok = false
		}
	}
	return ok
}

func sortedAscending(floors []roommodel.FloorInfo) []roommodel.FloorInfo {
	out := make([]roommodel.FloorInfo, len(floors))
	copy(out, floors)
	sort.Slice(out, func(i, j int) bool { return out[i].FloorNumber < out[j].FloorNumber })
	return out
}

// twinRemainingOn sums a floor's twin-coded room counts using isTwin against
// the floor's remaining (post-bath-placement) RoomCounts.
func twinRemainingOn(f roommodel.FloorInfo, isTwin func(code string) bool) int {
	total := 0
	for code, n := range f.RoomCounts {
		if isTwin(code) {
			total += n
		}
	}
	return total
}
