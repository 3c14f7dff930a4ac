package roommodel

import "fmt"

// Staff is a shift worker eligible for room-cleaning assignment. Name is the
// identity key used throughout the core (pattern generation, round-robin
// ordering, fingerprinting); ID is carried through for the caller's benefit
// only.
type Staff struct {
	Name string
	ID   string
}

// constraintKindTag tags the variant held by ConstraintKind.
type constraintKindTag int

const (
	constraintNone constraintKindTag = iota
	constraintUpperLimit
	constraintLowerRange
)

// ConstraintKind is the tagged variant from spec.md §3: None, an upper-bound
// "disabled worker" cap, or a lower/upper "contractor" range.
type ConstraintKind struct {
	tag constraintKindTag
	cap int
	min int
	max int
}

// NoConstraint is the default, unconstrained kind.
func NoConstraint() ConstraintKind { return ConstraintKind{tag: constraintNone} }

// UpperLimit caps the staff member's room count at cap (the "disabled
// worker" case).
func UpperLimit(cap int) ConstraintKind { return ConstraintKind{tag: constraintUpperLimit, cap: cap} }

// LowerRange marks a contractor with an expected [min,max] room-count range.
func LowerRange(min, max int) ConstraintKind {
	return ConstraintKind{tag: constraintLowerRange, min: min, max: max}
}

// IsContractor reports whether this is the LowerRange ("contractor") variant.
func (c ConstraintKind) IsContractor() bool { return c.tag == constraintLowerRange }

// Cap returns the upper-limit cap and whether this is the UpperLimit variant.
func (c ConstraintKind) Cap() (int, bool) { return c.cap, c.tag == constraintUpperLimit }

// Range returns the contractor [min,max] and whether this is the LowerRange
// variant.
func (c ConstraintKind) Range() (int, int, bool) { return c.min, c.max, c.tag == constraintLowerRange }

func (c ConstraintKind) String() string {
	switch c.tag {
	case constraintUpperLimit:
		return fmt.Sprintf("UpperLimit(%d)", c.cap)
	case constraintLowerRange:
		return fmt.Sprintf("LowerRange(%d,%d)", c.min, c.max)
	default:
		return "None"
	}
}

// BuildingAssignment restricts which building a staff member may be assigned
// rooms in.
type BuildingAssignment int

const (
	BuildingBoth BuildingAssignment = iota
	BuildingMainOnly
	BuildingAnnexOnly
)

// HasMain reports whether main-building assignment is permitted.
func (b BuildingAssignment) HasMain() bool { return b != BuildingAnnexOnly }

// HasAnnex reports whether annex-building assignment is permitted.
func (b BuildingAssignment) HasAnnex() bool { return b != BuildingMainOnly }

func (b BuildingAssignment) String() string {
	switch b {
	case BuildingMainOnly:
		return "MainOnly"
	case BuildingAnnexOnly:
		return "AnnexOnly"
	default:
		return "Both"
	}
}

// BathKind distinguishes the large-bath cleaning task variants.
type BathKind int

const (
	BathNone BathKind = iota
	BathNormal
	BathWithDraining
)

// BathCleaningType is the day's bath-cleaning configuration: which kind of
// task is in effect and the associated room-count reduction (spec.md §3).
// The reduction is carried through for observability on the returned
// StaffAssignment; the core does not subtract it from StaffDistribution
// bins itself, since those are an operator-set input that already reflects
// whatever reduction the day calls for (spec.md §3 "pre-computed input to
// the core").
type BathCleaningType struct {
	Kind      BathKind
	Reduction int
}

// NoBathCleaning is the default "no bath task today" value.
func NoBathCleaning() BathCleaningType { return BathCleaningType{Kind: BathNone} }

// StaffPointConstraint is the per-staff constraint bundle from spec.md §3:
// a ConstraintKind, a building restriction, and the bath-cleaner flag.
type StaffPointConstraint struct {
	Constraint    ConstraintKind
	Building      BuildingAssignment
	IsBathCleaner bool
}

// StaffDistribution is the six-bin, operator-pre-set quota vector for one
// staff member (spec.md §3).
type StaffDistribution struct {
	MainSingle  int
	MainTwin    int
	MainEco     int
	AnnexSingle int
	AnnexTwin   int
	AnnexEco    int

	Building      BuildingAssignment
	IsBathCleaner bool
}

// Validate checks the non-negativity invariant on all six bins.
func (d StaffDistribution) Validate() error {
	bins := map[string]int{
		"mainSingle": d.MainSingle, "mainTwin": d.MainTwin, "mainEco": d.MainEco,
		"annexSingle": d.AnnexSingle, "annexTwin": d.AnnexTwin, "annexEco": d.AnnexEco,
	}
	for name, v := range bins {
		if v < 0 {
			return fmt.Errorf("roommodel: negative %s bin %d", name, v)
		}
	}
	return nil
}

// RequiredMain returns the single+twin room count the bath pre-placer must
// find a sufficient main floor for (spec.md §4.C step 1).
func (d StaffDistribution) RequiredMain() int { return d.MainSingle + d.MainTwin }

// RequiredAnnex is the annex-building counterpart of RequiredMain.
func (d StaffDistribution) RequiredAnnex() int { return d.AnnexSingle + d.AnnexTwin }
