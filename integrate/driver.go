// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrate implements the integration driver (C6): it owns the global
// state vector and absolute-tolerance vector, configures the external
// integrator, advances time, and handles reinitialisation.
//
// This is grounded directly in mdl/retention/model.go's Update function, the
// only place in the teacher's corpus that drives github.com/cpmech/gosl/ode:
// the same Init(method, neq, fcn, jac, M, xOut)/SetTol(atol, rtol)/Solve(y, t0,
// t1, step, fixed) call shape is reused here, generalised from a single-equation
// retention-curve ODE to the engine's full state vector.
package integrate

import (
	"github.com/cpmech/gosl/ode"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/tetode/graph"
	"github.com/cpmech/tetode/rate"
	"github.com/cpmech/tetode/xerr"
)

// State is the integration driver's lifecycle state (spec §4.7).
type State int

const (
	Unconfigured State = iota
	Configured
	Running
)

const (
	defaultAtol     = 1e-3
	defaultRtol     = 1e-3
	defaultMaxSteps = 10000
	defaultMethod   = "Dopri5"
)

// Driver is the C6 integration driver: state machine, state vector, tolerances,
// and the wrapped gosl/ode solver.
type Driver struct {
	Graph *graph.Graph

	y      []float64
	abstol []float64
	rtol   float64

	maxSteps      int
	method        string
	tNow          float64
	pendingReinit bool
	state         State

	solver *ode.Solver
}

// New allocates a driver for the given process graph: y and abstol of size
// |y|, default abstol=1e-3, rtol=1e-3, step budget 10000, and marks the
// integrator for reinitialisation (spec §4.7, Setup completes transition).
func New(g *graph.Graph) *Driver {
	n := g.Len()
	d := &Driver{
		Graph:         g,
		y:             make([]float64, n),
		abstol:        utl.DblOnes(n),
		rtol:          defaultRtol,
		maxSteps:      defaultMaxSteps,
		method:        defaultMethod,
		pendingReinit: true,
		state:         Configured,
	}
	for i := range d.abstol {
		d.abstol[i] *= defaultAtol
	}
	return d
}

// Y returns the live state vector. Callers that mutate it must call MarkDirty.
func (o *Driver) Y() []float64 { return o.y }

// TNow returns the last committed integration time.
func (o *Driver) TNow() float64 { return o.tNow }

// State returns the current lifecycle state.
func (o *Driver) State() State { return o.state }

// MarkDirty flags the integrator for reinitialisation on the next Run, per any
// structural mutation (species count, rate constant, tolerance, step budget).
func (o *Driver) MarkDirty() { o.pendingReinit = true }

// SetMethod selects the gosl/ode method used on the next reinitialisation
// (e.g. "Dopri5" for the non-stiff reference integrator, "Radau5" for stiff
// catalogues). Does not itself force a reinit.
func (o *Driver) SetMethod(name string) { o.method = name }

// SetTol sets the (uniform) relative tolerance and the absolute-tolerance
// vector to a single value applied to every slot. Allowed only in Configured
// state or while a reinit is pending; fails with InvalidTolerance on a
// negative value.
func (o *Driver) SetTol(atol, rtol float64) error {
	if atol < 0 || rtol < 0 {
		return xerr.New(xerr.InvalidTolerance, "tolerances must be non-negative, got atol=%g rtol=%g", atol, rtol)
	}
	o.rtol = rtol
	for i := range o.abstol {
		o.abstol[i] = atol
	}
	o.pendingReinit = true
	return nil
}

// SetTolVector sets the relative tolerance and a per-slot absolute-tolerance
// vector (len must equal |y|).
func (o *Driver) SetTolVector(abstol []float64, rtol float64) error {
	if rtol < 0 {
		return xerr.New(xerr.InvalidTolerance, "rtol must be non-negative, got %g", rtol)
	}
	if len(abstol) != len(o.abstol) {
		return xerr.New(xerr.ArgumentOutOfRange, "abstol vector has length %d, expected %d", len(abstol), len(o.abstol))
	}
	for _, a := range abstol {
		if a < 0 {
			return xerr.New(xerr.InvalidTolerance, "abstol entries must be non-negative, got %g", a)
		}
	}
	copy(o.abstol, abstol)
	o.rtol = rtol
	o.pendingReinit = true
	return nil
}

// Abstol returns the current absolute-tolerance vector.
func (o *Driver) Abstol() []float64 { return o.abstol }

// Rtol returns the current relative tolerance.
func (o *Driver) Rtol() float64 { return o.rtol }

// SetMaxSteps sets the per-run step budget (spec §5 cancellation).
func (o *Driver) SetMaxSteps(n int) {
	o.maxSteps = n
	o.pendingReinit = true
}

// MaxSteps returns the current step budget.
func (o *Driver) MaxSteps() int { return o.maxSteps }

func (o *Driver) fcn(f []float64, dx, x float64, y []float64) error {
	rate.Eval(o.Graph, x, y, f)
	return nil
}

func (o *Driver) reinit() {
	o.solver = new(ode.Solver)
	o.solver.Init(o.method, len(o.y), o.fcn, nil, nil, nil)
	o.solver.SetTol(avgAtol(o.abstol), o.rtol)
	o.solver.Distr = false
	o.solver.NmaxSS = o.maxSteps
	o.pendingReinit = false
}

func avgAtol(abstol []float64) float64 {
	if len(abstol) == 0 {
		return defaultAtol
	}
	sum := 0.0
	for _, a := range abstol {
		sum += a
	}
	return sum / float64(len(abstol))
}

// Run advances integration to tEnd, reinitialising the integrator first if a
// structural mutation is pending (spec §4.7). Fails with TimeRegression if
// tEnd < t_now, and with IntegrationFailure if the integrator fails or exceeds
// its step budget; on failure t_now and y remain at the last committed step.
func (o *Driver) Run(tEnd float64) error {
	if tEnd < o.tNow {
		return xerr.New(xerr.TimeRegression, "run(%g) requested but t_now is already %g", tEnd, o.tNow)
	}
	if tEnd == o.tNow {
		return nil
	}
	if o.pendingReinit {
		o.reinit()
	}
	o.state = Running
	defer func() { o.state = Configured }()

	t0 := o.tNow
	yPrev := append([]float64(nil), o.y...)
	err := o.solver.Solve(o.y, t0, tEnd, tEnd-t0, false)
	if err != nil {
		copy(o.y, yPrev)
		return xerr.Wrap(xerr.IntegrationFailure, err, "integration from t=%g to t=%g failed", t0, tEnd)
	}
	o.tNow = tEnd
	return nil
}

// RestoreState overwrites t_now, rtol, maxSteps, abstol and y directly from a
// checkpoint and marks the integrator for reinitialisation (spec §6.1). The
// caller is responsible for validating vector lengths beforehand.
func (o *Driver) RestoreState(tNow, rtol float64, maxSteps int, abstol, y []float64) {
	o.tNow = tNow
	o.rtol = rtol
	o.maxSteps = maxSteps
	copy(o.abstol, abstol)
	copy(o.y, y)
	o.pendingReinit = true
}

// Advance is equivalent to Run(t_now + dt); fails with ArgumentOutOfRange if
// dt < 0.
func (o *Driver) Advance(dt float64) error {
	if dt < 0 {
		return xerr.New(xerr.ArgumentOutOfRange, "advance requires dt >= 0, got %g", dt)
	}
	return o.Run(o.tNow + dt)
}
