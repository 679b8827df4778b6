// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"math"

	"github.com/cpmech/tetode/geom"
	"github.com/cpmech/tetode/model"
	"github.com/cpmech/tetode/statedef"
	"github.com/cpmech/tetode/xerr"
)

type procEntry struct {
	coeff  float64
	update int
	descs  []ReactantTerm
	pid    int
}

type builder struct {
	res       *statedef.Resolution
	slotProcs [][]procEntry
	rebind    map[rebindKey][][2]int // key -> list of (slot, position in slotProcs[slot])
}

func (b *builder) add(slot int, coeff float64, update int, descs []ReactantTerm, pid int, key rebindKey) {
	pos := len(b.slotProcs[slot])
	b.slotProcs[slot] = append(b.slotProcs[slot], procEntry{coeff, update, descs, pid})
	b.rebind[key] = append(b.rebind[key], [2]int{slot, pos})
}

// Build walks compartments/patches x elements x reaction/diffusion rules,
// following the fixed traversal order of spec §4.4, and produces the flattened
// process graph.
func Build(res *statedef.Resolution) (*Graph, error) {
	b := &builder{
		res:       res,
		slotProcs: make([][]procEntry, res.Length),
		rebind:    make(map[rebindKey][][2]int),
	}

	for _, c := range res.Geom.Compartments {
		sys := res.Cat.LookupVolSystem(c.VolSystem)
		for slot, globalTet := range c.Tets {
			tet := res.Geom.Tets[globalTet]
			if err := b.addReactionsAtTet(res, sys, c, tet, globalTet, slot); err != nil {
				return nil, err
			}
			b.addVolDiffusionAtTet(res, sys, c, tet, globalTet, slot)
		}
	}

	for _, p := range res.Geom.Patches {
		sys := res.Cat.LookupSurfSystem(p.SurfSystem)
		innerComp := res.Geom.Compartments[p.InnerComp]
		var outerComp *geom.Compartment
		if p.OuterComp != geom.Absent {
			outerComp = res.Geom.Compartments[p.OuterComp]
		}
		for slot, globalTri := range p.Tris {
			tri := res.Geom.Tris[globalTri]
			if err := b.addSurfReactionsAtTri(res, sys, p, innerComp, outerComp, tri, globalTri, slot); err != nil {
				return nil, err
			}
			b.addSurfDiffusionAtTri(res, sys, p, tri, globalTri, slot)
		}
	}

	return b.flatten(), nil
}

func (b *builder) addReactionsAtTet(res *statedef.Resolution, sys *model.VolSystem, c *geom.Compartment, tet *geom.Tet, globalTet, slot int) error {
	for _, rx := range sys.Reactions {
		if !rx.Active {
			continue
		}
		coeff := massActionCoeff(rx.K, rx.Order, 1000*tet.Volume*NA)
		lhsVec := res.ReactionLHS(rx)
		descs := make([]ReactantTerm, 0, len(lhsVec))
		for li, mult := range lhsVec {
			if mult == 0 {
				continue
			}
			stateIdx := res.CompOffset[c.Index] + slot*res.CompStride[c.Index] + li
			descs = append(descs, ReactantTerm{Order: mult, Index: stateIdx})
		}
		update := res.ReactionUpdate(rx)
		key := rebindKey{rx.Index, globalTet}
		for li, u := range update {
			if u == 0 {
				continue
			}
			stateIdx := res.CompOffset[c.Index] + slot*res.CompStride[c.Index] + li
			b.add(stateIdx, coeff, u, descs, rx.Index, key)
		}
	}
	return nil
}

func (b *builder) addVolDiffusionAtTet(res *statedef.Resolution, sys *model.VolSystem, c *geom.Compartment, tet *geom.Tet, globalTet, slot int) {
	for _, d := range sys.Diffusions {
		if !d.Active {
			continue
		}
		li := res.DiffusionSpeciesLocal(d)
		donorIdx := res.CompOffset[c.Index] + slot*res.CompStride[c.Index] + li
		key := rebindKey{d.Index, globalTet}
		for face := 0; face < 4; face++ {
			if !tet.NeighborInSameCompartment(face, res.Geom.Tets) {
				continue
			}
			nbrGlobal := tet.Neighbor[face]
			nbrSlot := res.TetSlot(nbrGlobal)
			acceptorIdx := res.CompOffset[c.Index] + nbrSlot*res.CompStride[c.Index] + li
			dcond := tet.FaceArea[face] * d.D / (tet.Volume * tet.FaceDist[face])
			descs := []ReactantTerm{{Order: 1, Index: donorIdx}}
			b.add(donorIdx, dcond, -1, descs, d.Index, key)
			b.add(acceptorIdx, dcond, +1, descs, d.Index, key)
		}
	}
}

func (b *builder) addSurfReactionsAtTri(res *statedef.Resolution, sys *model.SurfSystem, p *geom.Patch, innerComp, outerComp *geom.Compartment, tri *geom.Tri, globalTri, slot int) error {
	for _, sr := range sys.Reactions {
		if !sr.Active {
			continue
		}
		var coeff float64
		switch sr.Class {
		case model.SurfSurf:
			coeff = massActionCoeff(sr.K, sr.Order, tri.Area*NA)
		case model.SurfVol:
			var vol float64
			if sr.Inside {
				vol = res.Geom.Tets[tri.Inner].Volume
			} else {
				if !tri.HasOuter() {
					return xerr.New(xerr.InvalidReaction, "surface reaction %q needs an outer compartment at triangle %d, but this triangle has none", sr.Name, globalTri)
				}
				vol = res.Geom.Tets[tri.Outer].Volume
			}
			coeff = massActionCoeff(sr.K, sr.Order, 1000*vol*NA)
		}

		descs, err := sharedDescriptors(res, sr, p, innerComp, outerComp, tri, slot)
		if err != nil {
			return err
		}
		key := rebindKey{sr.Index, globalTri}

		updateS := res.SurfReactionUpdateSurf(sr)
		for li, u := range updateS {
			if u == 0 {
				continue
			}
			stateIdx := res.PatchOffset[p.Index] + slot*res.PatchStride[p.Index] + li
			b.add(stateIdx, coeff, u, descs, sr.Index, key)
		}

		if err := b.addSideUpdates(res, sr.UpdateVectorInner(), innerComp, res.TetSlot(tri.Inner), descs, coeff, sr.Index, key); err != nil {
			return err
		}
		if outerComp != nil && tri.HasOuter() {
			if err := b.addSideUpdates(res, sr.UpdateVectorOuter(), outerComp, res.TetSlot(tri.Outer), descs, coeff, sr.Index, key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) addSideUpdates(res *statedef.Resolution, uv map[string]int, comp *geom.Compartment, tetSlot int, descs []ReactantTerm, coeff float64, pid int, key rebindKey) error {
	for name, u := range uv {
		if u == 0 {
			continue
		}
		sp := res.Cat.SpeciesByName(name)
		li := res.SpecG2L(comp, sp.Index)
		if li == statedef.Undefined {
			return xerr.New(xerr.NotDefined, "species %q is not defined in compartment %q, but a surface reaction needs it there", name, comp.Name)
		}
		stateIdx := res.CompOffset[comp.Index] + tetSlot*res.CompStride[comp.Index] + li
		b.add(stateIdx, coeff, u, descs, pid, key)
	}
	return nil
}

func sharedDescriptors(res *statedef.Resolution, sr *model.SurfReaction, p *geom.Patch, innerComp, outerComp *geom.Compartment, tri *geom.Tri, slot int) ([]ReactantTerm, error) {
	var descs []ReactantTerm
	for _, m := range sr.LHSSurf {
		sp := res.Cat.SpeciesByName(m.Species)
		li := res.PatchSpecG2L(p, sp.Index)
		if li == statedef.Undefined {
			return nil, xerr.New(xerr.NotDefined, "species %q is not defined in patch %q", m.Species, p.Name)
		}
		stateIdx := res.PatchOffset[p.Index] + slot*res.PatchStride[p.Index] + li
		descs = append(descs, ReactantTerm{Order: m.Count, Index: stateIdx})
	}
	innerSlot := res.TetSlot(tri.Inner)
	for _, m := range sr.LHSInner {
		sp := res.Cat.SpeciesByName(m.Species)
		li := res.SpecG2L(innerComp, sp.Index)
		if li == statedef.Undefined {
			return nil, xerr.New(xerr.NotDefined, "species %q is not defined in inner compartment %q", m.Species, innerComp.Name)
		}
		stateIdx := res.CompOffset[innerComp.Index] + innerSlot*res.CompStride[innerComp.Index] + li
		descs = append(descs, ReactantTerm{Order: m.Count, Index: stateIdx})
	}
	if len(sr.LHSOuter) > 0 {
		if outerComp == nil || !tri.HasOuter() {
			return nil, xerr.New(xerr.InvalidReaction, "surface reaction %q needs an outer compartment at triangle %d, but this triangle has none", sr.Name, tri.Index)
		}
		outerSlot := res.TetSlot(tri.Outer)
		for _, m := range sr.LHSOuter {
			sp := res.Cat.SpeciesByName(m.Species)
			li := res.SpecG2L(outerComp, sp.Index)
			if li == statedef.Undefined {
				return nil, xerr.New(xerr.NotDefined, "species %q is not defined in outer compartment %q", m.Species, outerComp.Name)
			}
			stateIdx := res.CompOffset[outerComp.Index] + outerSlot*res.CompStride[outerComp.Index] + li
			descs = append(descs, ReactantTerm{Order: m.Count, Index: stateIdx})
		}
	}
	return descs, nil
}

func (b *builder) addSurfDiffusionAtTri(res *statedef.Resolution, sys *model.SurfSystem, p *geom.Patch, tri *geom.Tri, globalTri, slot int) {
	for _, sd := range sys.Diffusions {
		if !sd.Active {
			continue
		}
		li := res.SurfDiffusionSpeciesLocal(sd)
		donorIdx := res.PatchOffset[p.Index] + slot*res.PatchStride[p.Index] + li
		key := rebindKey{sd.Index, globalTri}
		for edge := 0; edge < 3; edge++ {
			nbr := tri.Neighbor[edge]
			if nbr == geom.Absent {
				continue
			}
			nbrSlot := res.TriSlot(nbr)
			acceptorIdx := res.PatchOffset[p.Index] + nbrSlot*res.PatchStride[p.Index] + li
			dcond := tri.EdgeLen[edge] * sd.D / (tri.Area * tri.EdgeDist[edge])
			descs := []ReactantTerm{{Order: 1, Index: donorIdx}}
			b.add(donorIdx, dcond, -1, descs, sd.Index, key)
			b.add(acceptorIdx, dcond, +1, descs, sd.Index, key)
		}
	}
}

// massActionCoeff implements spec §4.5: c = k * v_scale^-(n-1).
func massActionCoeff(k float64, order int, vScale float64) float64 {
	return k * math.Pow(vScale, float64(1-order))
}

// flatten copies the per-slot, per-process temporary structures into the
// final contiguous arenas and rebuilds the rebind side-table over arena indices.
func (b *builder) flatten() *Graph {
	g := &Graph{
		Slots:     make([]Span, len(b.slotProcs)),
		byProcess: make(map[rebindKey][]int),
	}

	nProc := 0
	nDesc := 0
	for _, procs := range b.slotProcs {
		nProc += len(procs)
		for _, pe := range procs {
			nDesc += len(pe.descs)
		}
	}
	g.Processes = make([]Process, 0, nProc)
	g.Descriptors = make([]ReactantTerm, 0, nDesc)

	// slot -> position -> final arena index, needed to translate rebind entries
	slotPosToArena := make([][]int, len(b.slotProcs))

	for slot, procs := range b.slotProcs {
		off := len(g.Processes)
		slotPosToArena[slot] = make([]int, len(procs))
		for pos, pe := range procs {
			descOff := len(g.Descriptors)
			g.Descriptors = append(g.Descriptors, pe.descs...)
			arenaIdx := len(g.Processes)
			g.Processes = append(g.Processes, Process{
				Coeff: pe.coeff, Update: pe.update,
				DescOff: descOff, DescLen: len(pe.descs),
				ProcessID: pe.pid,
			})
			slotPosToArena[slot][pos] = arenaIdx
		}
		g.Slots[slot] = Span{Off: off, Len: len(procs)}
	}

	for key, positions := range b.rebind {
		idxs := make([]int, len(positions))
		for i, sp := range positions {
			idxs[i] = slotPosToArena[sp[0]][sp[1]]
		}
		g.byProcess[key] = idxs
	}

	return g
}
