// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statedef implements the state-def resolver (C3): it assigns global
// indices to species, reactions, and diffusions, builds per-compartment and
// per-patch local species maps, and lays out the flat global state vector y.
//
// This generalises the teacher's ele.Info/ele.SetInfoFunc idiom (a name-to-local
// "dof" map built once per element kind, ele/info.go) from per-element degrees of
// freedom to per-compartment/per-patch species slots.
package statedef

import (
	"sort"

	"github.com/cpmech/tetode/geom"
	"github.com/cpmech/tetode/model"
	"github.com/cpmech/tetode/xerr"
)

// Undefined marks a species that is not present in a given compartment/patch.
const Undefined = -1

// Resolution is the resolved, flat index space derived from a catalogue and a
// geometry index: global species indices (already on model.Species), global
// reaction/diffusion indices, per-system local species orderings, and the
// global state-vector layout.
type Resolution struct {
	Cat  *model.Catalogue
	Geom *geom.Index

	NSpecies int

	volSysLocal map[*model.VolSystem][]int // global species idx, local order
	volSysG2L   map[*model.VolSystem][]int // [globalSpeciesIdx] -> local idx or Undefined

	surfSysLocal map[*model.SurfSystem][]int
	surfSysG2L   map[*model.SurfSystem][]int

	// dense per-reaction vectors, length = len(volSysLocal[system])
	reactionUpdate map[*model.Reaction][]int
	reactionLHS    map[*model.Reaction][]int

	// dense per-surf-reaction surface-side vectors, length = len(surfSysLocal[system])
	sreacUpdateSurf map[*model.SurfReaction][]int
	sreacLHSSurf    map[*model.SurfReaction][]int

	diffSpeciesLocal     map[*model.VolDiffusion]int
	surfDiffSpeciesLocal map[*model.SurfDiffusion]int

	// state vector layout, one entry per compartment (in registration order)
	// followed by one entry per patch (in registration order)
	CompOffset []int
	CompStride []int // local species count of the system attached to each compartment
	PatchOffset []int
	PatchStride []int

	Length int

	tetSlot []int // [globalTetIdx] -> position within its compartment's Tets slice
	triSlot []int // [globalTriIdx] -> position within its patch's Tris slice

	// one counter shared by reactions, surface reactions and both diffusion
	// kinds, so no two rules get the same id in the process graph's rebind table
	nextIdx int
}

// Resolve builds a Resolution from a catalogue and a geometry index. Fails with
// UnresolvedSystem if a compartment or patch references a system name that was
// never registered in the catalogue.
func Resolve(cat *model.Catalogue, idx *geom.Index) (*Resolution, error) {
	r := &Resolution{
		Cat: cat, Geom: idx, NSpecies: cat.NSpecies(),
		volSysLocal: make(map[*model.VolSystem][]int), volSysG2L: make(map[*model.VolSystem][]int),
		surfSysLocal: make(map[*model.SurfSystem][]int), surfSysG2L: make(map[*model.SurfSystem][]int),
		reactionUpdate: make(map[*model.Reaction][]int), reactionLHS: make(map[*model.Reaction][]int),
		sreacUpdateSurf: make(map[*model.SurfReaction][]int), sreacLHSSurf: make(map[*model.SurfReaction][]int),
		diffSpeciesLocal: make(map[*model.VolDiffusion]int), surfDiffSpeciesLocal: make(map[*model.SurfDiffusion]int),
	}

	// compartments
	r.CompOffset = make([]int, len(idx.Compartments))
	r.CompStride = make([]int, len(idx.Compartments))
	offset := 0
	for _, c := range idx.Compartments {
		sys := cat.LookupVolSystem(c.VolSystem)
		if sys == nil {
			return nil, xerr.New(xerr.UnresolvedSystem, "compartment %q references unregistered volume system %q", c.Name, c.VolSystem)
		}
		r.resolveVolSystem(sys)
		r.CompOffset[c.Index] = offset
		stride := len(r.volSysLocal[sys])
		r.CompStride[c.Index] = stride
		offset += stride * len(c.Tets)
	}

	// patches
	r.PatchOffset = make([]int, len(idx.Patches))
	r.PatchStride = make([]int, len(idx.Patches))
	for _, p := range idx.Patches {
		sys := cat.LookupSurfSystem(p.SurfSystem)
		if sys == nil {
			return nil, xerr.New(xerr.UnresolvedSystem, "patch %q references unregistered surface system %q", p.Name, p.SurfSystem)
		}
		r.resolveSurfSystem(sys)
		r.PatchOffset[p.Index] = offset
		stride := len(r.surfSysLocal[sys])
		r.PatchStride[p.Index] = stride
		offset += stride * len(p.Tris)
	}
	r.Length = offset

	// reverse tet/tri -> local slot maps
	r.tetSlot = make([]int, len(idx.Tets))
	for _, c := range idx.Compartments {
		for slot, t := range c.Tets {
			r.tetSlot[t] = slot
		}
	}
	r.triSlot = make([]int, len(idx.Tris))
	for _, p := range idx.Patches {
		for slot, t := range p.Tris {
			r.triSlot[t] = slot
		}
	}

	return r, nil
}

// resolveVolSystem computes (once, cached) the local species ordering for sys,
// the corresponding global->local map, and every reaction/diffusion's dense
// update/lhs vectors and global index.
func (r *Resolution) resolveVolSystem(sys *model.VolSystem) {
	if _, done := r.volSysLocal[sys]; done {
		return
	}
	referenced := map[int]bool{}
	for _, rx := range sys.Reactions {
		for _, m := range rx.LHS {
			referenced[r.Cat.SpeciesByName(m.Species).Index] = true
		}
		for _, m := range rx.RHS {
			referenced[r.Cat.SpeciesByName(m.Species).Index] = true
		}
	}
	for _, d := range sys.Diffusions {
		referenced[r.Cat.SpeciesByName(d.Species).Index] = true
	}
	local := sortedKeys(referenced)
	r.volSysLocal[sys] = local

	g2l := make([]int, r.NSpecies)
	for i := range g2l {
		g2l[i] = Undefined
	}
	for li, gi := range local {
		g2l[gi] = li
	}
	r.volSysG2L[sys] = g2l

	for _, rx := range sys.Reactions {
		rx.Index = r.nextIdx
		r.nextIdx++
		r.reactionUpdate[rx] = denseVector(rx.UpdateVector(), r.Cat, g2l, len(local))
		r.reactionLHS[rx] = denseLHS(rx.LHS, r.Cat, g2l, len(local))
	}
	for _, d := range sys.Diffusions {
		d.Index = r.nextIdx
		r.nextIdx++
		r.diffSpeciesLocal[d] = g2l[r.Cat.SpeciesByName(d.Species).Index]
	}
}

func (r *Resolution) resolveSurfSystem(sys *model.SurfSystem) {
	if _, done := r.surfSysLocal[sys]; done {
		return
	}
	referenced := map[int]bool{}
	for _, sr := range sys.Reactions {
		for _, m := range sr.LHSSurf {
			referenced[r.Cat.SpeciesByName(m.Species).Index] = true
		}
		for _, m := range sr.RHSSurf {
			referenced[r.Cat.SpeciesByName(m.Species).Index] = true
		}
	}
	for _, d := range sys.Diffusions {
		referenced[r.Cat.SpeciesByName(d.Species).Index] = true
	}
	local := sortedKeys(referenced)
	r.surfSysLocal[sys] = local

	g2l := make([]int, r.NSpecies)
	for i := range g2l {
		g2l[i] = Undefined
	}
	for li, gi := range local {
		g2l[gi] = li
	}
	r.surfSysG2L[sys] = g2l

	for _, sr := range sys.Reactions {
		sr.Index = r.nextIdx
		r.nextIdx++
		r.sreacUpdateSurf[sr] = denseVector(sr.UpdateVectorSurf(), r.Cat, g2l, len(local))
		r.sreacLHSSurf[sr] = denseLHS(sr.LHSSurf, r.Cat, g2l, len(local))
	}
	for _, d := range sys.Diffusions {
		d.Index = r.nextIdx
		r.nextIdx++
		r.surfDiffSpeciesLocal[d] = g2l[r.Cat.SpeciesByName(d.Species).Index]
	}
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func denseVector(uv map[string]int, cat *model.Catalogue, g2l []int, n int) []int {
	dense := make([]int, n)
	for name, u := range uv {
		li := g2l[cat.SpeciesByName(name).Index]
		if li != Undefined {
			dense[li] = u
		}
	}
	return dense
}

func denseLHS(lhs []model.Mult, cat *model.Catalogue, g2l []int, n int) []int {
	dense := make([]int, n)
	for _, m := range lhs {
		li := g2l[cat.SpeciesByName(m.Species).Index]
		if li != Undefined {
			dense[li] += m.Count
		}
	}
	return dense
}

// SpecG2L translates a global species index into the given compartment's local
// species index, or Undefined if the species is not present in that compartment.
func (o *Resolution) SpecG2L(compartment *geom.Compartment, globalSpecies int) int {
	sys := o.Cat.LookupVolSystem(compartment.VolSystem)
	g2l := o.volSysG2L[sys]
	if globalSpecies < 0 || globalSpecies >= len(g2l) {
		return Undefined
	}
	return g2l[globalSpecies]
}

// PatchSpecG2L translates a global species index into the given patch's local
// (surface) species index, or Undefined if not present.
func (o *Resolution) PatchSpecG2L(patch *geom.Patch, globalSpecies int) int {
	sys := o.Cat.LookupSurfSystem(patch.SurfSystem)
	g2l := o.surfSysG2L[sys]
	if globalSpecies < 0 || globalSpecies >= len(g2l) {
		return Undefined
	}
	return g2l[globalSpecies]
}

// VolSysLocalSpecies returns the local species ordering (global indices) for sys.
func (o *Resolution) VolSysLocalSpecies(sys *model.VolSystem) []int { return o.volSysLocal[sys] }

// VolSysG2L returns the global->local species map for sys.
func (o *Resolution) VolSysG2L(sys *model.VolSystem) []int { return o.volSysG2L[sys] }

// SurfSysLocalSpecies returns the local species ordering (global indices) for sys.
func (o *Resolution) SurfSysLocalSpecies(sys *model.SurfSystem) []int { return o.surfSysLocal[sys] }

// SurfSysG2L returns the global->local species map for sys.
func (o *Resolution) SurfSysG2L(sys *model.SurfSystem) []int { return o.surfSysG2L[sys] }

// ReactionUpdate returns the dense update vector (rhs-lhs) for rx, in rx's
// system's local species order.
func (o *Resolution) ReactionUpdate(rx *model.Reaction) []int { return o.reactionUpdate[rx] }

// ReactionLHS returns the dense left-hand vector for rx, in rx's system's local
// species order.
func (o *Resolution) ReactionLHS(rx *model.Reaction) []int { return o.reactionLHS[rx] }

// DiffusionSpeciesLocal returns the local species index (within its system) that
// d depends on.
func (o *Resolution) DiffusionSpeciesLocal(d *model.VolDiffusion) int { return o.diffSpeciesLocal[d] }

// SurfReactionUpdateSurf returns the dense surface-side update vector for sr.
func (o *Resolution) SurfReactionUpdateSurf(sr *model.SurfReaction) []int { return o.sreacUpdateSurf[sr] }

// SurfReactionLHSSurf returns the dense surface-side left-hand vector for sr.
func (o *Resolution) SurfReactionLHSSurf(sr *model.SurfReaction) []int { return o.sreacLHSSurf[sr] }

// SurfDiffusionSpeciesLocal returns the local (surface) species index that d
// depends on.
func (o *Resolution) SurfDiffusionSpeciesLocal(d *model.SurfDiffusion) int {
	return o.surfDiffSpeciesLocal[d]
}

// TetSlot returns the position of the given global tet index within its
// compartment's local-to-global Tets slice.
func (o *Resolution) TetSlot(globalTet int) int { return o.tetSlot[globalTet] }

// TriSlot returns the position of the given global tri index within its
// patch's local-to-global Tris slice.
func (o *Resolution) TriSlot(globalTri int) int { return o.triSlot[globalTri] }

// StateIndexTet returns the y-index for (globalTet, globalSpecies), and ok=false
// if the species is not defined in that tet's compartment.
func (o *Resolution) StateIndexTet(globalTet, globalSpecies int) (idx int, ok bool) {
	t := o.Geom.Tets[globalTet]
	c := o.Geom.Compartments[t.Compartment]
	li := o.SpecG2L(c, globalSpecies)
	if li == Undefined {
		return 0, false
	}
	slot := o.tetSlot[globalTet]
	return o.CompOffset[c.Index] + slot*o.CompStride[c.Index] + li, true
}

// StateIndexTri returns the y-index for (globalTri, globalSpecies) within its
// patch's surface species, and ok=false if not defined there.
func (o *Resolution) StateIndexTri(globalTri, globalSpecies int) (idx int, ok bool) {
	tr := o.Geom.Tris[globalTri]
	p := o.Geom.Patches[tr.Patch]
	li := o.PatchSpecG2L(p, globalSpecies)
	if li == Undefined {
		return 0, false
	}
	slot := o.triSlot[globalTri]
	return o.PatchOffset[p.Index] + slot*o.PatchStride[p.Index] + li, true
}
