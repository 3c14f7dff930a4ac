// Package orchestrator implements the pipeline described in spec.md §4.H:
// bath pre-placement, then for each floor-cap relaxation value and each
// twin-quota pattern, twin distribution followed by the single-room CP
// solver; complete candidates are finished with the eco solver and
// de-duplicated by floor-pattern fingerprint, while solutions with a
// non-zero shortage accumulate in a bounded best-partial pool used as a
// fallback and infeasible attempts are recorded as diagnostics.
package orchestrator

import (
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/gitrdm/roomshift/internal/bathplacer"
	"github.com/gitrdm/roomshift/internal/config"
	"github.com/gitrdm/roomshift/internal/ecosolver"
	"github.com/gitrdm/roomshift/internal/patterns"
	"github.com/gitrdm/roomshift/internal/roommodel"
	"github.com/gitrdm/roomshift/internal/singlesolver"
	"github.com/gitrdm/roomshift/internal/twindist"
)

// Optimize is the core's single public entry point (spec.md §6:
// "optimize(buildingData, config, k) → [OptimizationResult; ≤k]").
func Optimize(
	bd *roommodel.BuildingData,
	staffOrder []roommodel.Staff,
	dist map[string]roommodel.StaffDistribution,
	constraints map[string]roommodel.StaffPointConstraint,
	bathType roommodel.BathCleaningType,
	cfg *config.Config,
	log hclog.Logger,
) ([]roommodel.OptimizationResult, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if cfg == nil {
		cfg = config.New()
	}

	if len(staffOrder) == 0 || bd.GetTotalRooms() == 0 {
		unassigned := computeUnassigned(bd, map[string]*roommodel.StaffAssignment{})
		return []roommodel.OptimizationResult{{
			Assignments:     map[string]*roommodel.StaffAssignment{},
			UnassignedRooms: unassigned,
			IsComplete:      isComplete(unassigned),
		}}, nil
	}
	if len(dist) == 0 {
		return nil, MissingDistributionError{}
	}

	classifier := cfg.Classifier()

	bathResult := bathplacer.Place(bd, staffOrder, dist, constraints, bathType, classifier, log)
	bathCleaners := make(map[string]bool, len(bathResult.PreAssignments))
	for name := range bathResult.PreAssignments {
		bathCleaners[name] = true
	}

	remainingStaffOrder := make([]string, 0, len(staffOrder))
	for _, st := range staffOrder {
		if _, ok := bathResult.RemainingDistribution[st.Name]; ok {
			remainingStaffOrder = append(remainingStaffOrder, st.Name)
		}
	}

	pats := patterns.Generate(remainingStaffOrder, bathResult.RemainingDistribution)
	diagnostics := newDiagnostics()

	var completeResults []roommodel.OptimizationResult
	var pool bestPartialPool
	pool.limit = cfg.BestPartialPoolSize

relaxation:
	for maxStaffPerFloor := cfg.MaxStaffPerFloorMin; maxStaffPerFloor <= cfg.MaxStaffPerFloorMax; maxStaffPerFloor++ {
		if deadlineExceeded(cfg) {
			log.Debug("orchestrator: deadline exceeded, stopping relaxation loop", "maxStaffPerFloor", maxStaffPerFloor)
			break relaxation
		}
		caps := make(map[string]twindist.FloorCaps, len(remainingStaffOrder))
		for _, name := range remainingStaffOrder {
			caps[name] = floorCapsFor(constraints[name], bathResult.RemainingDistribution[name])
		}

		for patIdx, pat := range pats {
			if deadlineExceeded(cfg) {
				log.Debug("orchestrator: deadline exceeded between patterns, stopping relaxation loop",
					"maxStaffPerFloor", maxStaffPerFloor, "pattern", patIdx)
				break relaxation
			}
			twinAssignments, ok := twindist.Distribute(
				bathResult.RemainingBuilding, remainingStaffOrder, pat.MainTwin, pat.AnnexTwin,
				maxStaffPerFloor, caps, classifier.IsTwin, log, cfg.TwinTimeout,
			)
			if !ok {
				diagnostics = appendDiag(diagnostics, maxStaffPerFloor, patIdx, "twin distribution could not meet every staff target")
				continue
			}

			staffInputs := make([]singlesolver.StaffInput, 0, len(remainingStaffOrder))
			for _, name := range remainingStaffOrder {
				d := bathResult.RemainingDistribution[name]
				sp := constraints[name]
				staffInputs = append(staffInputs, singlesolver.StaffInput{
					Name: name, Building: sp.Building,
					MainTarget: d.MainSingle, AnnexTarget: d.AnnexSingle,
					MainEcoQuota: d.MainEco, AnnexEcoQuota: d.AnnexEco,
					MaxFloors: caps[name].Total, TwinUsedFloors: twinAssignments[name].UsedFloors,
				})
			}

			partials := singlesolver.Solve(bathResult.RemainingBuilding, staffInputs, maxStaffPerFloor, classifier, cfg.SingleEnumCap, cfg.SingleTimeout, log)
			if len(partials) == 0 {
				diagnostics = appendDiag(diagnostics, maxStaffPerFloor, patIdx, "single solver found no satisfying assignment")
				continue
			}

			twinMaterialized := materializeTwins(bathResult.RemainingBuilding, twinAssignments, remainingStaffOrder, classifier, log)

			for _, partial := range partials {
				combined := mergeAssignments(bathResult.PreAssignments, twinMaterialized, partial.Assignments)

				if partial.Shortage == 0 {
					finishWithEco(bd, dist, constraints, bathCleaners, combined, cfg, log)
					unassigned := computeUnassigned(bd, combined)
					completeResults = append(completeResults, roommodel.OptimizationResult{
						Assignments: combined, UnassignedRooms: unassigned, IsComplete: isComplete(unassigned),
					})
					if len(completeResults) >= cfg.RequestedSolutions {
						break relaxation
					}
				} else {
					pool.insert(combined, partial.Shortage)
				}
			}
		}
		if len(completeResults) >= 1 {
			break
		}
	}

	if len(completeResults) > 0 {
		return dedupeByFingerprint(completeResults, cfg.RequestedSolutions), nil
	}

	if len(pool.entries) > 0 {
		out := make([]roommodel.OptimizationResult, 0, len(pool.entries))
		for _, entry := range pool.entries {
			finishWithEco(bd, dist, constraints, bathCleaners, entry.assignments, cfg, log)
			unassigned := computeUnassigned(bd, entry.assignments)
			out = append(out, roommodel.OptimizationResult{
				Assignments: entry.assignments, UnassignedRooms: unassigned, IsComplete: isComplete(unassigned),
			})
			if len(out) >= cfg.RequestedSolutions {
				break
			}
		}
		return out, nil
	}

	return nil, &InfeasibleError{Diagnostics: diagnostics}
}

func finishWithEco(
	bd *roommodel.BuildingData,
	dist map[string]roommodel.StaffDistribution,
	constraints map[string]roommodel.StaffPointConstraint,
	bathCleaners map[string]bool,
	combined map[string]*roommodel.StaffAssignment,
	cfg *config.Config,
	log hclog.Logger,
) {
	sites := buildEcoSites(bd, combined, constraints, dist, bathCleaners)
	staffInputs := buildEcoStaffInputs(dist, constraints)
	ecoResult := ecosolver.Solve(sites, staffInputs, cfg.EcoEnumCap, cfg.EcoTimeout, log)
	for name, byFloor := range ecoResult.MainEco {
		a, ok := combined[name]
		if !ok {
			continue
		}
		for floor, n := range byFloor {
			a.AddEcoMain(floor, n)
		}
	}
	for name, byFloor := range ecoResult.AnnexEco {
		a, ok := combined[name]
		if !ok {
			continue
		}
		for floor, n := range byFloor {
			a.AddEcoAnnex(floor, n)
		}
	}
}

// deadlineExceeded reports whether a host-supplied cfg.Deadline (spec.md §5:
// "a host-supplied deadline, if any") has passed. A zero Deadline means no
// deadline was requested, so it never trips.
func deadlineExceeded(cfg *config.Config) bool {
	return !cfg.Deadline.IsZero() && time.Now().After(cfg.Deadline)
}

func appendDiag(d *multierror.Error, maxStaffPerFloor, patIdx int, reason string) *multierror.Error {
	return multierror.Append(d, fmt.Errorf("maxStaffPerFloor=%d pattern=%d: %s", maxStaffPerFloor, patIdx, reason))
}

// bestPartialPool is the bounded top-N (ascending shortage) fallback pool
// from spec.md §4.H ("keep top-10 by ascending shortage").
type bestPartialPool struct {
	limit   int
	entries []poolEntry
}

type poolEntry struct {
	assignments map[string]*roommodel.StaffAssignment
	shortage    int
}

func (p *bestPartialPool) insert(assignments map[string]*roommodel.StaffAssignment, shortage int) {
	p.entries = append(p.entries, poolEntry{assignments: assignments, shortage: shortage})
	sort.SliceStable(p.entries, func(i, j int) bool { return p.entries[i].shortage < p.entries[j].shortage })
	if p.limit > 0 && len(p.entries) > p.limit {
		p.entries = p.entries[:p.limit]
	}
}
