package orchestrator

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// MissingDistributionError reports a nil or empty StaffDistribution input
// (spec.md §7 "MissingDistribution": "fail fast with an explanatory error").
type MissingDistributionError struct{}

func (MissingDistributionError) Error() string {
	return "orchestrator: staff distribution is empty; configure per-staff room quotas before optimizing"
}

// InfeasibleError reports that every pattern and every maxStaffPerFloor
// value explored yielded neither a complete nor a partial solution
// (spec.md §7 "Infeasible"). Diagnostics accumulates one entry per
// exploration dead-end so the caller can see why.
type InfeasibleError struct {
	Diagnostics *multierror.Error
}

func (e *InfeasibleError) Error() string {
	if e.Diagnostics == nil || len(e.Diagnostics.Errors) == 0 {
		return "orchestrator: infeasible — no complete or partial solution found across any pattern or floor-cap relaxation"
	}
	return fmt.Sprintf("orchestrator: infeasible after exploring all patterns and floor-cap relaxations: %s", e.Diagnostics.Error())
}

func (e *InfeasibleError) Unwrap() error {
	if e.Diagnostics == nil {
		return nil
	}
	return e.Diagnostics.ErrorOrNil()
}

func newDiagnostics() *multierror.Error {
	return &multierror.Error{}
}
