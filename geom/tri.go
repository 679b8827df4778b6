// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// Tri is a triangular surface element: area, three edge lengths, three
// inter-centroid distances (one per edge), three neighbour triangle indices
// within the same patch, and oriented inner/outer adjacent tetrahedron indices.
type Tri struct {
	Index int
	Patch int // owning patch index

	Area     float64
	EdgeLen  [3]float64
	EdgeDist [3]float64 // inter-centroid distance to the neighbour across this edge
	Neighbor [3]int     // neighbouring tri index within the same patch, or Absent

	Inner int // inner adjacent tet index (required)
	Outer int // outer adjacent tet index, or Absent if this triangle has only one side
}

// HasOuter reports whether this triangle is shared by two compartments.
func (t *Tri) HasOuter() bool { return t.Outer != Absent }
