// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"github.com/cpmech/tetode/xerr"
)

// Compartment is a set of tetrahedra sharing a volume system, identified by name.
type Compartment struct {
	Index     int
	Name      string
	VolSystem string // name of the attached volume system (resolved at setup)
	Tets      []int  // global tet indices, in local order (the local-to-global map)
}

// Patch is a set of triangles sharing a surface system, referencing a required
// inner compartment and an optional outer compartment.
type Patch struct {
	Index      int
	Name       string
	SurfSystem string // name of the attached surface system (resolved at setup)
	InnerComp  int    // compartment index (required)
	OuterComp  int    // compartment index, or Absent
	Tris       []int  // global tri indices, in local order (the local-to-global map)
}

// Index is the geometry index: the full arena of tets/tris plus their grouping
// into compartments and patches.
type Index struct {
	Tets []*Tet
	Tris []*Tri

	Compartments []*Compartment
	Patches      []*Patch

	compByName  map[string]int
	patchByName map[string]int
}

// NewIndex returns an empty geometry index.
func NewIndex() *Index {
	return &Index{
		compByName:  make(map[string]int),
		patchByName: make(map[string]int),
	}
}

// AddCompartment registers a new compartment attached to the named volume system.
// Fails with NameConflict if the compartment name is already registered.
func (o *Index) AddCompartment(name, volSystem string) (*Compartment, error) {
	if _, found := o.compByName[name]; found {
		return nil, xerr.New(xerr.NameConflict, "compartment %q is already registered", name)
	}
	c := &Compartment{Index: len(o.Compartments), Name: name, VolSystem: volSystem}
	o.compByName[name] = c.Index
	o.Compartments = append(o.Compartments, c)
	return c, nil
}

// AddPatch registers a new patch attached to the named surface system, with a
// required inner compartment name and an optional outer compartment name (empty
// string for none).
func (o *Index) AddPatch(name, surfSystem, innerComp, outerComp string) (*Patch, error) {
	if _, found := o.patchByName[name]; found {
		return nil, xerr.New(xerr.NameConflict, "patch %q is already registered", name)
	}
	innerIdx, found := o.compByName[innerComp]
	if !found {
		return nil, xerr.New(xerr.ArgumentOutOfRange, "patch %q references unknown inner compartment %q", name, innerComp)
	}
	outerIdx := Absent
	if outerComp != "" {
		idx, found := o.compByName[outerComp]
		if !found {
			return nil, xerr.New(xerr.ArgumentOutOfRange, "patch %q references unknown outer compartment %q", name, outerComp)
		}
		outerIdx = idx
	}
	p := &Patch{Index: len(o.Patches), Name: name, SurfSystem: surfSystem, InnerComp: innerIdx, OuterComp: outerIdx}
	o.patchByName[name] = p.Index
	o.Patches = append(o.Patches, p)
	return p, nil
}

// AddTet appends a new tetrahedron to the given compartment (by name) and returns
// its global index.
func (o *Index) AddTet(compartment string, volume float64, faceArea, faceDist [4]float64, neighbor [4]int) (int, error) {
	ci, found := o.compByName[compartment]
	if !found {
		return 0, xerr.New(xerr.ArgumentOutOfRange, "unknown compartment %q", compartment)
	}
	t := &Tet{
		Index: len(o.Tets), Compartment: ci,
		Volume: volume, FaceArea: faceArea, FaceDist: faceDist, Neighbor: neighbor,
		AdjTri: [4]int{Absent, Absent, Absent, Absent},
	}
	o.Tets = append(o.Tets, t)
	o.Compartments[ci].Tets = append(o.Compartments[ci].Tets, t.Index)
	return t.Index, nil
}

// AddTri appends a new triangle to the given patch (by name) and returns its
// global index. innerTet and outerTet are global tet indices (outerTet may be
// Absent). The corresponding tets' AdjTri slots are updated to reference this
// triangle.
func (o *Index) AddTri(patch string, area float64, edgeLen, edgeDist [3]float64, neighbor [3]int, innerTet, outerTet int) (int, error) {
	pi, found := o.patchByName[patch]
	if !found {
		return 0, xerr.New(xerr.ArgumentOutOfRange, "unknown patch %q", patch)
	}
	if innerTet < 0 || innerTet >= len(o.Tets) {
		return 0, xerr.New(xerr.ArgumentOutOfRange, "triangle in patch %q references invalid inner tet %d", patch, innerTet)
	}
	tr := &Tri{
		Index: len(o.Tris), Patch: pi,
		Area: area, EdgeLen: edgeLen, EdgeDist: edgeDist, Neighbor: neighbor,
		Inner: innerTet, Outer: outerTet,
	}
	o.Tris = append(o.Tris, tr)
	o.Patches[pi].Tris = append(o.Patches[pi].Tris, tr.Index)
	linkAdjTri(o.Tets[innerTet], tr.Index)
	if outerTet != Absent {
		linkAdjTri(o.Tets[outerTet], tr.Index)
	}
	return tr.Index, nil
}

func linkAdjTri(t *Tet, triIdx int) {
	for i, a := range t.AdjTri {
		if a == Absent {
			t.AdjTri[i] = triIdx
			return
		}
	}
}

// CompartmentByName returns the compartment with the given name, or nil.
func (o *Index) CompartmentByName(name string) *Compartment {
	if i, found := o.compByName[name]; found {
		return o.Compartments[i]
	}
	return nil
}

// PatchByName returns the patch with the given name, or nil.
func (o *Index) PatchByName(name string) *Patch {
	if i, found := o.patchByName[name]; found {
		return o.Patches[i]
	}
	return nil
}
