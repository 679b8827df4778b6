// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/tetode/statedef"
	"github.com/cpmech/tetode/xerr"
)

// GetCompCount returns the sum of y slots for species across every tet of
// compartment comp. Fails with NotDefined if species is not defined anywhere
// in that compartment.
func (o *Engine) GetCompCount(comp, species string) (float64, error) {
	c, err := o.lookupCompartment(comp)
	if err != nil {
		return 0, err
	}
	sp, err := o.lookupSpecies(species)
	if err != nil {
		return 0, err
	}
	li := o.Res.SpecG2L(c, sp.Index)
	if li == statedef.Undefined {
		return 0, xerr.New(xerr.NotDefined, "species %q is not defined in compartment %q", species, comp)
	}
	y := o.Drv.Y()
	stride := o.Res.CompStride[c.Index]
	off := o.Res.CompOffset[c.Index]
	sum := 0.0
	for slot := range c.Tets {
		sum += y[off+slot*stride+li]
	}
	return sum, nil
}

// SetCompCount distributes n across every tet of compartment comp by volume
// fraction, and marks the integrator for reinitialisation. Fails with
// ArgumentOutOfRange if n < 0, or NotDefined if species is not defined there.
func (o *Engine) SetCompCount(comp, species string, n float64) error {
	if n < 0 {
		return xerr.New(xerr.ArgumentOutOfRange, "count must be non-negative, got %g", n)
	}
	c, err := o.lookupCompartment(comp)
	if err != nil {
		return err
	}
	sp, err := o.lookupSpecies(species)
	if err != nil {
		return err
	}
	li := o.Res.SpecG2L(c, sp.Index)
	if li == statedef.Undefined {
		return xerr.New(xerr.NotDefined, "species %q is not defined in compartment %q", species, comp)
	}
	totalVol := 0.0
	for _, t := range c.Tets {
		totalVol += o.Geom.Tets[t].Volume
	}
	y := o.Drv.Y()
	stride := o.Res.CompStride[c.Index]
	off := o.Res.CompOffset[c.Index]
	for slot, t := range c.Tets {
		frac := 0.0
		if totalVol > 0 {
			frac = o.Geom.Tets[t].Volume / totalVol
		}
		y[off+slot*stride+li] = n * frac
	}
	o.Drv.MarkDirty()
	return nil
}

// GetPatchCount returns the sum of y slots for species across every tri of
// patch p.
func (o *Engine) GetPatchCount(patch, species string) (float64, error) {
	p, err := o.lookupPatch(patch)
	if err != nil {
		return 0, err
	}
	sp, err := o.lookupSpecies(species)
	if err != nil {
		return 0, err
	}
	li := o.Res.PatchSpecG2L(p, sp.Index)
	if li == statedef.Undefined {
		return 0, xerr.New(xerr.NotDefined, "species %q is not defined in patch %q", species, patch)
	}
	y := o.Drv.Y()
	stride := o.Res.PatchStride[p.Index]
	off := o.Res.PatchOffset[p.Index]
	sum := 0.0
	for slot := range p.Tris {
		sum += y[off+slot*stride+li]
	}
	return sum, nil
}

// SetPatchCount distributes n across every tri of patch p by area fraction.
func (o *Engine) SetPatchCount(patch, species string, n float64) error {
	if n < 0 {
		return xerr.New(xerr.ArgumentOutOfRange, "count must be non-negative, got %g", n)
	}
	p, err := o.lookupPatch(patch)
	if err != nil {
		return err
	}
	sp, err := o.lookupSpecies(species)
	if err != nil {
		return err
	}
	li := o.Res.PatchSpecG2L(p, sp.Index)
	if li == statedef.Undefined {
		return xerr.New(xerr.NotDefined, "species %q is not defined in patch %q", species, patch)
	}
	totalArea := 0.0
	for _, t := range p.Tris {
		totalArea += o.Geom.Tris[t].Area
	}
	y := o.Drv.Y()
	stride := o.Res.PatchStride[p.Index]
	off := o.Res.PatchOffset[p.Index]
	for slot, t := range p.Tris {
		frac := 0.0
		if totalArea > 0 {
			frac = o.Geom.Tris[t].Area / totalArea
		}
		y[off+slot*stride+li] = n * frac
	}
	o.Drv.MarkDirty()
	return nil
}

// GetTetCount returns the count of species in a single tet.
func (o *Engine) GetTetCount(tet int, species string) (float64, error) {
	if err := o.checkTetIdx(tet); err != nil {
		return 0, err
	}
	sp, err := o.lookupSpecies(species)
	if err != nil {
		return 0, err
	}
	idx, ok := o.Res.StateIndexTet(tet, sp.Index)
	if !ok {
		return 0, xerr.New(xerr.NotDefined, "species %q is not defined in tet %d's compartment", species, tet)
	}
	return o.Drv.Y()[idx], nil
}

// SetTetCount sets the count of species in a single tet.
func (o *Engine) SetTetCount(tet int, species string, n float64) error {
	if n < 0 {
		return xerr.New(xerr.ArgumentOutOfRange, "count must be non-negative, got %g", n)
	}
	if err := o.checkTetIdx(tet); err != nil {
		return err
	}
	sp, err := o.lookupSpecies(species)
	if err != nil {
		return err
	}
	idx, ok := o.Res.StateIndexTet(tet, sp.Index)
	if !ok {
		return xerr.New(xerr.NotDefined, "species %q is not defined in tet %d's compartment", species, tet)
	}
	o.Drv.Y()[idx] = n
	o.Drv.MarkDirty()
	return nil
}

// GetTriCount returns the count of species on a single tri.
func (o *Engine) GetTriCount(tri int, species string) (float64, error) {
	if err := o.checkTriIdx(tri); err != nil {
		return 0, err
	}
	sp, err := o.lookupSpecies(species)
	if err != nil {
		return 0, err
	}
	idx, ok := o.Res.StateIndexTri(tri, sp.Index)
	if !ok {
		return 0, xerr.New(xerr.NotDefined, "species %q is not defined in tri %d's patch", species, tri)
	}
	return o.Drv.Y()[idx], nil
}

// SetTriCount sets the count of species on a single tri.
func (o *Engine) SetTriCount(tri int, species string, n float64) error {
	if n < 0 {
		return xerr.New(xerr.ArgumentOutOfRange, "count must be non-negative, got %g", n)
	}
	if err := o.checkTriIdx(tri); err != nil {
		return err
	}
	sp, err := o.lookupSpecies(species)
	if err != nil {
		return err
	}
	idx, ok := o.Res.StateIndexTri(tri, sp.Index)
	if !ok {
		return xerr.New(xerr.NotDefined, "species %q is not defined in tri %d's patch", species, tri)
	}
	o.Drv.Y()[idx] = n
	o.Drv.MarkDirty()
	return nil
}

// GetCompConc returns the concentration (mol/L) of species across compartment
// comp: total count / (total volume * 1000 * N_A).
func (o *Engine) GetCompConc(comp, species string) (float64, error) {
	count, err := o.GetCompCount(comp, species)
	if err != nil {
		return 0, err
	}
	c, _ := o.lookupCompartment(comp)
	totalVol := 0.0
	for _, t := range c.Tets {
		totalVol += o.Geom.Tets[t].Volume
	}
	if totalVol == 0 {
		return 0, nil
	}
	return count / (totalVol * 1000 * NA), nil
}

// GetTetConc returns the concentration (mol/L) of species in a single tet.
func (o *Engine) GetTetConc(tet int, species string) (float64, error) {
	count, err := o.GetTetCount(tet, species)
	if err != nil {
		return 0, err
	}
	vol := o.Geom.Tets[tet].Volume
	if vol == 0 {
		return 0, nil
	}
	return count / (vol * 1000 * NA), nil
}
