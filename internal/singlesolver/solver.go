// Package singlesolver implements the soft-shortage single-room CP model
// from spec.md §4.E on top of pkg/cpsolver: it assigns each floor's
// remaining single-like rooms across eligible staff, respecting residual
// floor caps, the shared maxStaffPerFloor ceiling, and eco-floor
// participation, while minimizing total shortage against each staff's
// target.
package singlesolver

import (
	"context"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"
	set "github.com/hashicorp/go-set/v3"

	"github.com/gitrdm/roomshift/internal/roommodel"
	"github.com/gitrdm/roomshift/pkg/cpsolver"
)

// StaffInput is one staff member's inputs to the single-room model.
type StaffInput struct {
	Name           string
	Building       roommodel.BuildingAssignment
	MainTarget     int
	AnnexTarget    int
	MainEcoQuota   int
	AnnexEcoQuota  int
	MaxFloors      int
	TwinUsedFloors *set.Set[int] // composite FloorKey set (roommodel.FloorKey)
}

// DefaultTimeout is the per-call soft deadline spec.md §5 suggests for the
// single model when enumeration is enabled; callers that want the
// configured value should pass cfg.SingleTimeout instead.
const DefaultTimeout = 2 * time.Second

// Solve builds and searches the single-room CP model. bd must already
// reflect bath-placement decrements; twin-distribution decrements need not
// be applied, since this solver only considers codes classifier.IsSingleLike
// accepts. Returns up to enumCap PartialSolutionResults ordered by ascending
// shortage (cpsolver's objective ordering); returns an empty slice if the
// model itself is infeasible.
// timeout is the per-call soft deadline (spec.md §5); a non-positive value
// falls back to DefaultTimeout.
func Solve(
	bd *roommodel.BuildingData,
	staff []StaffInput,
	maxStaffPerFloor int,
	classifier *roommodel.RoomTypeClassifier,
	enumCap int,
	timeout time.Duration,
	log hclog.Logger,
) []roommodel.PartialSolutionResult {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	m := cpsolver.NewModel()
	b := newBuilder(bd, staff, maxStaffPerFloor, classifier, m, log)
	b.build()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	solutions := cpsolver.Solve(ctx, m, enumCap)
	out := make([]roommodel.PartialSolutionResult, 0, len(solutions))
	for _, sol := range solutions {
		out = append(out, b.toResult(sol))
	}
	return out
}

type floorRef struct {
	key     int // roommodel.FloorKey
	isMain  bool
	floor   roommodel.FloorInfo
}

type xKey struct {
	staff string
	floor int // composite key
	code  string
}

type yKey struct {
	staff string
	floor int
}

type builder struct {
	bd               *roommodel.BuildingData
	staff            []StaffInput
	staffByName      map[string]StaffInput
	maxStaffPerFloor int
	classifier       *roommodel.RoomTypeClassifier
	model            *cpsolver.Model
	log              hclog.Logger

	floors    []floorRef
	xVars     map[xKey]*cpsolver.Var
	yVars     map[yKey]*cpsolver.Var
	shortfall map[string]*cpsolver.Var // keyed "name:main" / "name:annex"
}

func newBuilder(bd *roommodel.BuildingData, staff []StaffInput, maxStaffPerFloor int, classifier *roommodel.RoomTypeClassifier, m *cpsolver.Model, log hclog.Logger) *builder {
	byName := make(map[string]StaffInput, len(staff))
	for _, s := range staff {
		byName[s.Name] = s
	}
	b := &builder{
		bd: bd, staff: staff, staffByName: byName,
		maxStaffPerFloor: maxStaffPerFloor, classifier: classifier, model: m, log: log,
		xVars: map[xKey]*cpsolver.Var{}, yVars: map[yKey]*cpsolver.Var{}, shortfall: map[string]*cpsolver.Var{},
	}
	for _, f := range bd.MainFloors {
		b.floors = append(b.floors, floorRef{key: roommodel.FloorKey(true, f.FloorNumber), isMain: true, floor: f})
	}
	for _, f := range bd.AnnexFloors {
		b.floors = append(b.floors, floorRef{key: roommodel.FloorKey(false, f.FloorNumber), isMain: false, floor: f})
	}
	sort.Slice(b.floors, func(i, j int) bool { return b.floors[i].key < b.floors[j].key })
	return b
}

func (b *builder) eligible(s StaffInput, fr floorRef) bool {
	if fr.isMain {
		return s.Building.HasMain()
	}
	return s.Building.HasAnnex()
}

func (b *builder) build() {
	b.buildXAndExhaustion()
	b.buildYAndReify()
	b.buildResidualCap()
	b.buildFloorCap()
	b.buildEcoParticipation()
	b.buildShortage()
}

func singleLikeCodes(f roommodel.FloorInfo, classifier *roommodel.RoomTypeClassifier) map[string]int {
	out := make(map[string]int)
	for code, n := range f.RoomCounts {
		if classifier.IsSingleLike(code) {
			out[code] = n
		}
	}
	return out
}

func (b *builder) buildXAndExhaustion() {
	for _, fr := range b.floors {
		codes := singleLikeCodes(fr.floor, b.classifier)
		for code, count := range codes {
			var terms []cpsolver.Term
			for _, s := range b.staff {
				if !b.eligible(s, fr) {
					continue
				}
				d, _ := cpsolver.NewDomain(0, count)
				v := b.model.NewVar("x", d)
				b.xVars[xKey{s.Name, fr.key, code}] = v
				terms = append(terms, cpsolver.Term{Coeff: 1, Var: v})
			}
			if len(terms) == 0 {
				continue
			}
			b.model.AddConstraint(cpsolver.NewLinear(terms, cpsolver.OpEQ, count))
		}
	}
}

func (b *builder) buildYAndReify() {
	for _, fr := range b.floors {
		floorTotal := fr.floor.TotalRoomCount()
		for _, s := range b.staff {
			if !b.eligible(s, fr) {
				continue
			}
			var terms []cpsolver.Term
			for code := range singleLikeCodes(fr.floor, b.classifier) {
				if v, ok := b.xVars[xKey{s.Name, fr.key, code}]; ok {
					terms = append(terms, cpsolver.Term{Coeff: 1, Var: v})
				}
			}
			if len(terms) == 0 {
				continue
			}
			yd, _ := cpsolver.NewDomain(0, 1)
			y := b.model.NewVar("y", yd)
			b.yVars[yKey{s.Name, fr.key}] = y
			bigM := floorTotal
			if bigM < 1 {
				bigM = 1
			}
			b.model.Reify(terms, y, bigM)
		}
	}
}

func (b *builder) buildResidualCap() {
	for _, s := range b.staff {
		var terms []cpsolver.Term
		alreadyUsed := 0
		if s.TwinUsedFloors != nil {
			alreadyUsed = s.TwinUsedFloors.Size()
		}
		for _, fr := range b.floors {
			if s.TwinUsedFloors != nil && s.TwinUsedFloors.Contains(fr.key) {
				continue // not a "new" floor — doesn't consume residual cap
			}
			if y, ok := b.yVars[yKey{s.Name, fr.key}]; ok {
				terms = append(terms, cpsolver.Term{Coeff: 1, Var: y})
			}
		}
		if len(terms) == 0 {
			continue
		}
		remaining := s.MaxFloors - alreadyUsed
		if remaining < 0 {
			remaining = 0
		}
		b.model.AddConstraint(cpsolver.NewLinear(terms, cpsolver.OpLE, remaining))
	}
}

func (b *builder) buildFloorCap() {
	for _, fr := range b.floors {
		alreadyPresent := 0
		var terms []cpsolver.Term
		for _, s := range b.staff {
			present := s.TwinUsedFloors != nil && s.TwinUsedFloors.Contains(fr.key)
			if present {
				alreadyPresent++
				continue
			}
			if y, ok := b.yVars[yKey{s.Name, fr.key}]; ok {
				terms = append(terms, cpsolver.Term{Coeff: 1, Var: y})
			}
		}
		if len(terms) == 0 {
			continue
		}
		limit := b.maxStaffPerFloor - alreadyPresent
		if limit < 0 {
			limit = 0
		}
		b.model.AddConstraint(cpsolver.NewLinear(terms, cpsolver.OpLE, limit))
	}
}

func (b *builder) buildEcoParticipation() {
	for _, s := range b.staff {
		b.requireEcoFloor(s, true, s.MainEcoQuota)
		b.requireEcoFloor(s, false, s.AnnexEcoQuota)
	}
}

func (b *builder) requireEcoFloor(s StaffInput, isMain bool, quota int) {
	if quota <= 0 {
		return
	}
	var terms []cpsolver.Term
	for _, fr := range b.floors {
		if fr.isMain != isMain || fr.floor.EcoRooms <= 0 {
			continue
		}
		if y, ok := b.yVars[yKey{s.Name, fr.key}]; ok {
			terms = append(terms, cpsolver.Term{Coeff: 1, Var: y})
		}
	}
	if len(terms) == 0 {
		if b.log != nil {
			b.log.Debug("singlesolver: no eco-bearing floor available to satisfy eco participation", "staff", s.Name, "main", isMain)
		}
		return
	}
	b.model.AddConstraint(cpsolver.NewLinear(terms, cpsolver.OpGE, 1))
}

func (b *builder) buildShortage() {
	for _, s := range b.staff {
		b.addShortfall(s, true, s.MainTarget)
		b.addShortfall(s, false, s.AnnexTarget)
	}
}

func (b *builder) addShortfall(s StaffInput, isMain bool, target int) {
	if target <= 0 {
		return
	}
	var terms []cpsolver.Term
	for _, fr := range b.floors {
		if fr.isMain != isMain {
			continue
		}
		for code := range singleLikeCodes(fr.floor, b.classifier) {
			if v, ok := b.xVars[xKey{s.Name, fr.key, code}]; ok {
				terms = append(terms, cpsolver.Term{Coeff: 1, Var: v})
			}
		}
	}
	sd, _ := cpsolver.NewDomain(0, target)
	shortfall := b.model.NewVar("shortfall", sd)
	key := s.Name + ":main"
	if !isMain {
		key = s.Name + ":annex"
	}
	b.shortfall[key] = shortfall
	b.model.Minimize(shortfall)

	terms = append(terms, cpsolver.Term{Coeff: 1, Var: shortfall})
	b.model.AddConstraint(cpsolver.NewLinear(terms, cpsolver.OpGE, target))
}

func (b *builder) toResult(sol cpsolver.Solution) roommodel.PartialSolutionResult {
	assignments := make(map[string]*roommodel.StaffAssignment, len(b.staff))
	for _, s := range b.staff {
		assignments[s.Name] = roommodel.NewStaffAssignment(roommodel.Staff{Name: s.Name}, roommodel.NoBathCleaning())
	}

	totalAssigned, totalTarget := 0, 0
	perStaffShortage := map[string]int{}
	for _, s := range b.staff {
		totalTarget += s.MainTarget + s.AnnexTarget
	}

	for _, fr := range b.floors {
		for code := range singleLikeCodes(fr.floor, b.classifier) {
			for _, s := range b.staff {
				v, ok := b.xVars[xKey{s.Name, fr.key, code}]
				if !ok {
					continue
				}
				n := sol.Value(v)
				if n <= 0 {
					continue
				}
				totalAssigned += n
				a := assignments[s.Name]
				if fr.isMain {
					existing := a.MainAssignments[fr.floor.FloorNumber]
					a.SetMainAllocation(fr.floor.FloorNumber, existing.Merge(roommodel.NewRoomAllocation(map[string]int{code: n}, 0)))
				} else {
					existing := a.AnnexAssignments[fr.floor.FloorNumber]
					a.SetAnnexAllocation(fr.floor.FloorNumber, existing.Merge(roommodel.NewRoomAllocation(map[string]int{code: n}, 0)))
				}
			}
		}
	}

	shortage := 0
	for key, v := range b.shortfall {
		n := sol.Value(v)
		shortage += n
		if n > 0 {
			perStaffShortage[key] += n
		}
	}

	return roommodel.PartialSolutionResult{
		Assignments:      assignments,
		TotalAssigned:    totalAssigned,
		TotalTarget:      totalTarget,
		Shortage:         shortage,
		PerStaffShortage: perStaffShortage,
	}
}
