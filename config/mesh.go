// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"github.com/cpmech/tetode/geom"
	"github.com/cpmech/tetode/internal/meshio"
)

// ReadMesh reads and validates a ".mesh.json" file into a fresh geom.Index.
// Decoding and structural validation (file I/O, JSON shape, unknown-name
// checks against the names declared in the same file) is delegated to
// internal/meshio; this function replays the result through
// geom.Index.Add* — compartments, then patches (so inner/outer compartment
// names resolve), then tets, then tris (so inner/outer tet indices resolve)
// — so every invariant geom itself enforces still runs.
func ReadMesh(dir, fn string) (*geom.Index, error) {
	m, err := meshio.Read(dir, fn)
	if err != nil {
		return nil, err
	}

	idx := geom.NewIndex()
	for _, c := range m.Compartments {
		if _, err := idx.AddCompartment(c.Name, c.VolSystem); err != nil {
			return nil, err
		}
	}
	for _, p := range m.Patches {
		if _, err := idx.AddPatch(p.Name, p.SurfSystem, p.InnerComp, p.OuterComp); err != nil {
			return nil, err
		}
	}
	for _, t := range m.Tets {
		if _, err := idx.AddTet(t.Compartment, t.Volume, t.FaceArea, t.FaceDist, t.Neighbor); err != nil {
			return nil, err
		}
	}
	for _, t := range m.Tris {
		if _, err := idx.AddTri(t.Patch, t.Area, t.EdgeLen, t.EdgeDist, t.Neighbor, t.InnerTet, t.OuterTet); err != nil {
			return nil, err
		}
	}
	return idx, nil
}
