// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the geometry index (C2): tetrahedra and triangles with
// per-element metric data, grouped into compartments and patches.
//
// This generalises the teacher's per-cell coordinate-matrix idiom
// (ele/auxiliary.go's BuildCoordsMatrix, computed once at setup) from FEM nodal
// coordinates to finite-volume-style tet/tri metrics (volume, face area,
// inter-centroid distance) precomputed once and never touched again.
package geom

// Absent marks a missing neighbour/adjacency slot (no neighbour across a face/edge,
// or no outer tet for a boundary triangle).
const Absent = -1

// Tet is a tetrahedral element: volume, four face areas, four inter-centroid
// distances (one per face), four neighbour tet indices, and up to four adjacent
// surface triangle indices.
type Tet struct {
	Index       int
	Compartment int // owning compartment index

	Volume   float64
	FaceArea [4]float64
	FaceDist [4]float64 // inter-centroid distance to the neighbour across this face
	Neighbor [4]int     // tet index, or Absent
	AdjTri   [4]int     // adjacent triangle index, or Absent
}

// NeighborInSameCompartment reports whether the j-th face neighbour exists and
// belongs to the same compartment as this tet.
func (t *Tet) NeighborInSameCompartment(j int, all []*Tet) bool {
	n := t.Neighbor[j]
	if n == Absent {
		return false
	}
	return all[n].Compartment == t.Compartment
}
