// Package config provides functional-options configuration for the
// optimization core, mirroring gokando's OptimizeOption pattern
// (pkg/minikanren/optimize.go) applied to this module's own knobs:
// per-call timeouts, enumeration caps, the floor-cap relaxation range, the
// twin room-type set, and the requested solution count.
package config

import (
	"time"

	"github.com/gitrdm/roomshift/internal/roommodel"
)

// Option configures a Config. Use the With* helpers below.
type Option func(*Config)

// Config holds every tunable knob the orchestrator and solvers read.
// Zero value is invalid; use New to get spec.md-compliant defaults.
type Config struct {
	// RequestedSolutions is k in spec.md §6 ("up to k OptimizationResult").
	RequestedSolutions int

	// MaxStaffPerFloorMin/Max bound the progressive relaxation loop
	// (spec.md §4.H: "For maxStaffPerFloor from 2 to 7 inclusive").
	MaxStaffPerFloorMin int
	MaxStaffPerFloorMax int

	// SingleEnumCap / EcoEnumCap are the solver enumeration caps
	// (spec.md §4.E/§4.H: "enumeration cap = 5").
	SingleEnumCap int
	EcoEnumCap    int

	// SingleTimeout / EcoTimeout / TwinTimeout are the per-call soft
	// deadlines from spec.md §5, read by singlesolver.Solve,
	// ecosolver.Solve, and twindist.Distribute respectively.
	SingleTimeout time.Duration
	EcoTimeout    time.Duration
	TwinTimeout   time.Duration

	// BestPartialPoolSize is the bounded best-partial pool spec.md §4.H
	// keeps across patterns ("keep top-10 by ascending shortage").
	BestPartialPoolSize int

	// TwinCodes configures the room-type classifier (spec.md §6: "The set
	// of twin codes is configurable at construction"). Nil selects
	// roommodel.DefaultTwinCodes.
	TwinCodes map[string]struct{}

	// Deadline, if non-zero, is a host-supplied wall-clock cutoff the
	// orchestrator honors by returning the best-so-far partial instead of
	// continuing (spec.md §5: "There are no mandatory deadlines").
	Deadline time.Time
}

// New builds a Config from spec.md's stated defaults, then applies opts.
func New(opts ...Option) *Config {
	c := &Config{
		RequestedSolutions:  7,
		MaxStaffPerFloorMin: 2,
		MaxStaffPerFloorMax: 7,
		SingleEnumCap:       5,
		EcoEnumCap:          1,
		SingleTimeout:       2 * time.Second,
		EcoTimeout:          10 * time.Second,
		TwinTimeout:         30 * time.Second,
		BestPartialPoolSize: 10,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithRequestedSolutions sets k, the number of solutions to return.
func WithRequestedSolutions(k int) Option {
	return func(c *Config) { c.RequestedSolutions = k }
}

// WithMaxStaffPerFloorRange overrides the relaxation loop's bounds.
func WithMaxStaffPerFloorRange(min, max int) Option {
	return func(c *Config) { c.MaxStaffPerFloorMin, c.MaxStaffPerFloorMax = min, max }
}

// WithSingleEnumCap overrides the single solver's enumeration cap.
func WithSingleEnumCap(n int) Option {
	return func(c *Config) { c.SingleEnumCap = n }
}

// WithEcoEnumCap overrides the eco solver's enumeration cap.
func WithEcoEnumCap(n int) Option {
	return func(c *Config) { c.EcoEnumCap = n }
}

// WithSingleTimeout overrides the single solver's per-call soft deadline.
func WithSingleTimeout(d time.Duration) Option {
	return func(c *Config) { c.SingleTimeout = d }
}

// WithEcoTimeout overrides the eco solver's per-call soft deadline.
func WithEcoTimeout(d time.Duration) Option {
	return func(c *Config) { c.EcoTimeout = d }
}

// WithTwinTimeout overrides the twin distributor's per-call soft deadline.
func WithTwinTimeout(d time.Duration) Option {
	return func(c *Config) { c.TwinTimeout = d }
}

// WithBestPartialPoolSize overrides the best-partial pool bound.
func WithBestPartialPoolSize(n int) Option {
	return func(c *Config) { c.BestPartialPoolSize = n }
}

// WithTwinCodes overrides the twin room-type code set. codes is copied so
// later mutation of the caller's map has no effect on this Config.
func WithTwinCodes(codes map[string]struct{}) Option {
	cp := make(map[string]struct{}, len(codes))
	for k := range codes {
		cp[k] = struct{}{}
	}
	return func(c *Config) { c.TwinCodes = cp }
}

// WithDeadline sets a host-supplied wall-clock cutoff.
func WithDeadline(t time.Time) Option {
	return func(c *Config) { c.Deadline = t }
}

// Classifier builds the room-type classifier this config implies.
func (c *Config) Classifier() *roommodel.RoomTypeClassifier {
	return roommodel.NewRoomTypeClassifier(c.TwinCodes)
}
