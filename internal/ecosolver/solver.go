// Package ecosolver implements the balanced eco-room CP model from
// spec.md §4.F: it distributes eco-room workload across staff who already
// hold single/twin assignments, favoring floors they already cover, and
// falls back to a deterministic round-robin when the CP model proves
// infeasible.
package ecosolver

import (
	"context"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/roomshift/internal/roommodel"
	"github.com/gitrdm/roomshift/pkg/cpsolver"
)

// DefaultTimeout is the per-call soft deadline spec.md §5 suggests for the
// eco model; callers that want the configured value should pass
// cfg.EcoTimeout instead.
const DefaultTimeout = 10 * time.Second

// DefaultEnumCap is the eco solver's enumeration cap when the caller does
// not override it via config.Config.EcoEnumCap.
const DefaultEnumCap = 1

// shortageWeight is the coefficient solveCP puts on each shortfall term of
// its weighted objective list. That list is not handed to the model:
// cpsolver.Model.Minimize takes unweighted variables, so the model's
// objective is the plain sum of the shortfall and open-floor slack
// variables, and cpsolver uses it only to order enumerated solutions. No
// term balances staff totals against each other.
const shortageWeight = 1000

// StaffFloor is one (staff, building, floor) site eco rooms may land on.
type StaffFloor struct {
	Staff      string
	IsMain     bool
	Floor      int
	Eco        int // this floor's remaining eco-room count
	AlreadyOpen bool
	// Adjacent marks a floor within |Δ|=1 of a floor the staff already
	// covers in the same building. buildEcoSites never sets it and neither
	// solveCP nor roundRobin reads it, so adjacency has no effect on which
	// sites are offered or chosen.
	Adjacent bool
}

// StaffEcoInput is one staff member's eco-quota and cap context.
type StaffEcoInput struct {
	Name           string
	MainQuota      int
	AnnexQuota     int
	CapRemaining   int // staff-wide floor cap; floors already used by the single/twin stages are not subtracted, and the solver does not read it
	IsBathCleaner  bool
	IsContractor   bool
}

// Result is the eco solver's per-staff output: eco-room counts to add by
// building/floor.
type Result struct {
	MainEco  map[string]map[int]int
	AnnexEco map[string]map[int]int
	Balanced bool // true if the CP model found a solution; false if the round-robin fallback ran
}

// Solve runs the CP model first; on infeasibility it falls back to the
// deterministic round-robin described in spec.md §4.F. enumCap is the
// solver's enumeration cap (non-positive falls back to DefaultEnumCap);
// timeout is the per-call soft deadline (non-positive falls back to
// DefaultTimeout).
func Solve(sites []StaffFloor, staff []StaffEcoInput, enumCap int, timeout time.Duration, log hclog.Logger) Result {
	if enumCap <= 0 {
		enumCap = DefaultEnumCap
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if cpResult, ok := solveCP(sites, staff, enumCap, timeout, log); ok {
		return cpResult
	}
	if log != nil {
		log.Debug("ecosolver: CP model infeasible, falling back to round-robin")
	}
	return roundRobin(sites)
}

func solveCP(sites []StaffFloor, staff []StaffEcoInput, enumCap int, timeout time.Duration, log hclog.Logger) (Result, bool) {
	m := cpsolver.NewModel()
	type key struct {
		staff string
		main  bool
		floor int
	}
	vars := map[key]*cpsolver.Var{}

	bySite := map[key]StaffFloor{}
	for _, s := range sites {
		k := key{s.Staff, s.IsMain, s.Floor}
		bySite[k] = s
	}

	byFloor := map[key][]key{}
	floorKeyOf := func(s StaffFloor) key { return key{"", s.IsMain, s.Floor} }
	for _, s := range sites {
		k := key{s.Staff, s.IsMain, s.Floor}
		d, _ := cpsolver.NewDomain(0, s.Eco)
		v := m.NewVar("e", d)
		vars[k] = v
		fk := floorKeyOf(s)
		byFloor[fk] = append(byFloor[fk], k)
	}

	// Rule 1: each eco floor's count is fully consumed.
	seenFloor := map[key]bool{}
	for _, s := range sites {
		fk := floorKeyOf(s)
		if seenFloor[fk] {
			continue
		}
		seenFloor[fk] = true
		var terms []cpsolver.Term
		for _, k := range byFloor[fk] {
			terms = append(terms, cpsolver.Term{Coeff: 1, Var: vars[k]})
		}
		m.AddConstraint(cpsolver.NewLinear(terms, cpsolver.OpEQ, s.Eco))
	}

	// Rule 2/3: a staff may only take eco on a floor they don't already
	// cover if cap headroom remains (or they're a contractor), and bath
	// cleaners may never open a new floor — enforced by the caller not
	// including ineligible sites in `sites` at all (see SPEC_FULL.md
	// DESIGN.md note on ecosolver site construction).

	// Soft shortage per staff/building with non-zero quota.
	staffByName := map[string]StaffEcoInput{}
	for _, s := range staff {
		staffByName[s.Name] = s
	}
	var objective []cpsolver.Term
	shortfallVars := map[string]*cpsolver.Var{}
	rewardVars := map[string]*cpsolver.Var{}

	addShortfall := func(name string, isMain bool, quota int) {
		if quota <= 0 {
			return
		}
		var terms []cpsolver.Term
		for _, s := range sites {
			if s.Staff != name || s.IsMain != isMain {
				continue
			}
			terms = append(terms, cpsolver.Term{Coeff: 1, Var: vars[key{s.Staff, s.IsMain, s.Floor}]})
		}
		sd, _ := cpsolver.NewDomain(0, quota)
		shortfall := m.NewVar("ecoShortfall", sd)
		bKey := name + ":main"
		if !isMain {
			bKey = name + ":annex"
		}
		shortfallVars[bKey] = shortfall
		terms = append(terms, cpsolver.Term{Coeff: 1, Var: shortfall})
		m.AddConstraint(cpsolver.NewLinear(terms, cpsolver.OpGE, quota))
		objective = append(objective, cpsolver.Term{Coeff: shortageWeight, Var: shortfall})
	}
	for _, s := range staff {
		addShortfall(s.Name, true, s.MainQuota)
		addShortfall(s.Name, false, s.AnnexQuota)
	}

	// Already-open floors: a slack variable per already-open site holds
	// (capacity - taken). rewardVars keeps one slack per staff (the last
	// such site), and those slacks join the minimize set, which only orders
	// the enumerated solutions; it does not steer the search.
	for _, s := range sites {
		if !s.AlreadyOpen || s.Eco <= 0 {
			continue
		}
		slack, _ := cpsolver.NewDomain(0, s.Eco)
		slackVar := m.NewVar("ecoOpenSlack", slack)
		rewardVars[s.Staff] = slackVar
		m.AddConstraint(cpsolver.NewLinear(
			[]cpsolver.Term{{Coeff: 1, Var: vars[key{s.Staff, s.IsMain, s.Floor}]}, {Coeff: 1, Var: slackVar}},
			cpsolver.OpEQ, s.Eco,
		))
		objective = append(objective, cpsolver.Term{Coeff: 1, Var: slackVar})
	}

	minimizeVars := make([]*cpsolver.Var, 0, len(shortfallVars)+len(rewardVars))
	for _, v := range shortfallVars {
		minimizeVars = append(minimizeVars, v)
	}
	for _, v := range rewardVars {
		minimizeVars = append(minimizeVars, v)
	}
	m.Minimize(minimizeVars...)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	solutions := cpsolver.Solve(ctx, m, enumCap)
	if len(solutions) == 0 {
		return Result{}, false
	}
	sol := solutions[0]

	res := Result{MainEco: map[string]map[int]int{}, AnnexEco: map[string]map[int]int{}, Balanced: true}
	for k, v := range vars {
		n := sol.Value(v)
		if n <= 0 {
			continue
		}
		bucket := res.AnnexEco
		if k.main {
			bucket = res.MainEco
		}
		if bucket[k.staff] == nil {
			bucket[k.staff] = map[int]int{}
		}
		bucket[k.staff][k.floor] = n
	}
	return res, true
}

// roundRobin is the deterministic fallback: iterate floors in composite-key
// order, and for each eco floor sort the staff that have a site on it by the
// eco rooms this pass has already given them (ascending, ties by name),
// assigning one eco room at a time. Rooms staff hold from earlier stages do
// not count toward that ordering.
func roundRobin(sites []StaffFloor) Result {
	res := Result{MainEco: map[string]map[int]int{}, AnnexEco: map[string]map[int]int{}, Balanced: false}

	type floorGroup struct {
		isMain bool
		floor  int
		eco    int
		staff  []string
	}
	groups := map[int]*floorGroup{}
	order := []int{}
	totals := map[string]int{}
	for _, s := range sites {
		gk := roommodel.FloorKey(s.IsMain, s.Floor)
		g, ok := groups[gk]
		if !ok {
			g = &floorGroup{isMain: s.IsMain, floor: s.Floor, eco: s.Eco}
			groups[gk] = g
			order = append(order, gk)
		}
		g.staff = append(g.staff, s.Staff)
		if _, ok := totals[s.Staff]; !ok {
			totals[s.Staff] = 0
		}
	}
	sort.Ints(order)

	for _, gk := range order {
		g := groups[gk]
		remaining := g.eco
		staffNames := append([]string(nil), g.staff...)
		for remaining > 0 && len(staffNames) > 0 {
			sort.SliceStable(staffNames, func(i, j int) bool {
				if totals[staffNames[i]] != totals[staffNames[j]] {
					return totals[staffNames[i]] < totals[staffNames[j]]
				}
				return staffNames[i] < staffNames[j]
			})
			name := staffNames[0]
			bucket := res.AnnexEco
			if g.isMain {
				bucket = res.MainEco
			}
			if bucket[name] == nil {
				bucket[name] = map[int]int{}
			}
			bucket[name][g.floor]++
			totals[name]++
			remaining--
		}
	}
	return res
}
