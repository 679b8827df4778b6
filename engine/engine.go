// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine ties together the model catalogue, geometry index, state-def
// resolver, process graph, and integration driver into the query/mutation
// surface of §6: the Engine API that user code and the CLI actually call.
package engine

import (
	"github.com/cpmech/tetode/geom"
	"github.com/cpmech/tetode/graph"
	"github.com/cpmech/tetode/integrate"
	"github.com/cpmech/tetode/model"
	"github.com/cpmech/tetode/statedef"
	"github.com/cpmech/tetode/xerr"
)

// NA is Avogadro's constant (molecules per mole), reused from the process
// graph builder for concentration<->count conversions at the API boundary.
const NA = graph.NA

// Engine is one independent simulation instance: its own catalogue, geometry,
// resolution, process graph, and integration driver. Per spec §5, nothing is
// shared between Engine values — separate instances may run on separate
// goroutines/threads freely.
type Engine struct {
	Cat   *model.Catalogue
	Geom  *geom.Index
	Res   *statedef.Resolution
	Graph *graph.Graph
	Drv   *integrate.Driver
}

// New resolves cat against idx, builds the process graph, and allocates a
// fresh integration driver — the Unconfigured -> Configured transition of
// spec §4.7. Fails with UnresolvedSystem if any compartment/patch references
// an unregistered system, or with NotDefined/InvalidReaction if the graph
// builder finds a dangling surface-reaction dependency.
func New(cat *model.Catalogue, idx *geom.Index) (*Engine, error) {
	res, err := statedef.Resolve(cat, idx)
	if err != nil {
		return nil, err
	}
	g, err := graph.Build(res)
	if err != nil {
		return nil, err
	}
	return &Engine{Cat: cat, Geom: idx, Res: res, Graph: g, Drv: integrate.New(g)}, nil
}

// GetTime returns t_now, the last committed integration time.
func (o *Engine) GetTime() float64 { return o.Drv.TNow() }

// Run advances integration to t_end, reinitialising the integrator first if a
// mutation is pending.
func (o *Engine) Run(tEnd float64) error { return o.Drv.Run(tEnd) }

// Advance is equivalent to Run(get_time() + dt).
func (o *Engine) Advance(dt float64) error { return o.Drv.Advance(dt) }

// SetTol sets atol/rtol uniformly across all state slots.
func (o *Engine) SetTol(atol, rtol float64) error { return o.Drv.SetTol(atol, rtol) }

// SetMaxSteps sets the per-run step budget.
func (o *Engine) SetMaxSteps(n int) { o.Drv.SetMaxSteps(n) }

func (o *Engine) lookupSpecies(name string) (*model.Species, error) {
	sp := o.Cat.SpeciesByName(name)
	if sp == nil {
		return nil, xerr.New(xerr.ArgumentOutOfRange, "unknown species %q", name)
	}
	return sp, nil
}

func (o *Engine) lookupCompartment(name string) (*geom.Compartment, error) {
	c := o.Geom.CompartmentByName(name)
	if c == nil {
		return nil, xerr.New(xerr.ArgumentOutOfRange, "unknown compartment %q", name)
	}
	return c, nil
}

func (o *Engine) lookupPatch(name string) (*geom.Patch, error) {
	p := o.Geom.PatchByName(name)
	if p == nil {
		return nil, xerr.New(xerr.ArgumentOutOfRange, "unknown patch %q", name)
	}
	return p, nil
}

func (o *Engine) checkTetIdx(t int) error {
	if t < 0 || t >= len(o.Geom.Tets) {
		return xerr.New(xerr.ArgumentOutOfRange, "tet index %d out of range [0,%d)", t, len(o.Geom.Tets))
	}
	return nil
}

func (o *Engine) checkTriIdx(t int) error {
	if t < 0 || t >= len(o.Geom.Tris) {
		return xerr.New(xerr.ArgumentOutOfRange, "tri index %d out of range [0,%d)", t, len(o.Geom.Tris))
	}
	return nil
}
