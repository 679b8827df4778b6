// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"

	"github.com/cpmech/tetode/graph"
	"github.com/cpmech/tetode/model"
	"github.com/cpmech/tetode/xerr"
)

// SetTetReacK rebinds the rate constant of reaction named reac, scoped to the
// volume system attached to tet's compartment, and recomputes + rebinds the
// coefficient of every process in the graph tagged with (reaction id, tet) —
// per spec §9, this shares one id across whatever instances the reaction has
// at that tet (a single set of processes, since a volumetric reaction has
// exactly one coefficient per element). Marks the integrator for
// reinitialisation.
func (o *Engine) SetTetReacK(tet int, reac string, k float64) error {
	if k < 0 {
		return xerr.New(xerr.ArgumentOutOfRange, "rate constant must be non-negative, got %g", k)
	}
	if err := o.checkTetIdx(tet); err != nil {
		return err
	}
	t := o.Geom.Tets[tet]
	c := o.Geom.Compartments[t.Compartment]
	sys := o.Cat.LookupVolSystem(c.VolSystem)
	rx := sys.ReactionByName(reac)
	if rx == nil {
		return xerr.New(xerr.NotDefined, "reaction %q is not defined in compartment %q's volume system", reac, c.Name)
	}
	rx.K = k
	coeff := k * math.Pow(1000*t.Volume*graph.NA, float64(1-rx.Order))
	n := o.Graph.RebindCoeff(rx.Index, tet, coeff)
	if n == 0 {
		return xerr.New(xerr.NotDefined, "reaction %q has no effect at tet %d (all stoichiometric updates are zero there)", reac, tet)
	}
	o.Drv.MarkDirty()
	return nil
}

// SetTriSreacK rebinds the rate constant of surface reaction named sreac,
// scoped to the surface system attached to tri's patch, and recomputes +
// rebinds the coefficient of every process tagged with (sreac id, tri) — this
// includes the sreac's processes on the adjacent inner/outer tet slots, since
// they were registered under the same key at graph-build time. Marks the
// integrator for reinitialisation.
func (o *Engine) SetTriSreacK(tri int, sreac string, k float64) error {
	if k < 0 {
		return xerr.New(xerr.ArgumentOutOfRange, "rate constant must be non-negative, got %g", k)
	}
	if err := o.checkTriIdx(tri); err != nil {
		return err
	}
	tr := o.Geom.Tris[tri]
	p := o.Geom.Patches[tr.Patch]
	sys := o.Cat.LookupSurfSystem(p.SurfSystem)
	sr := sys.ReactionByName(sreac)
	if sr == nil {
		return xerr.New(xerr.NotDefined, "surface reaction %q is not defined in patch %q's surface system", sreac, p.Name)
	}
	sr.K = k

	var vScale float64
	switch sr.Class {
	case model.SurfSurf:
		vScale = tr.Area * graph.NA
	default: // model.SurfVol
		var vol float64
		if sr.Inside {
			vol = o.Geom.Tets[tr.Inner].Volume
		} else {
			vol = o.Geom.Tets[tr.Outer].Volume
		}
		vScale = 1000 * vol * graph.NA
	}
	coeff := k * math.Pow(vScale, float64(1-sr.Order))
	n := o.Graph.RebindCoeff(sr.Index, tri, coeff)
	if n == 0 {
		return xerr.New(xerr.NotDefined, "surface reaction %q has no effect at tri %d (all stoichiometric updates are zero there)", sreac, tri)
	}
	o.Drv.MarkDirty()
	return nil
}
