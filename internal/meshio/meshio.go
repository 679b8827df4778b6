// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshio adapts the teacher's mesh-reading idiom (inp.ReadMsh: read
// file, decode JSON, validate structural invariants before anything downstream
// touches the data) to tet/tri finite-volume metrics instead of FE node/cell
// connectivity.
package meshio

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/tetode/xerr"
)

// Compartment mirrors one Compartment registration.
type Compartment struct {
	Name      string `json:"name"`
	VolSystem string `json:"vol_system"`
}

// Patch mirrors one Patch registration.
type Patch struct {
	Name       string `json:"name"`
	SurfSystem string `json:"surf_system"`
	InnerComp  string `json:"inner_comp"`
	OuterComp  string `json:"outer_comp"` // empty for none
}

// Tet mirrors one Tet registration (precomputed metrics, not raw vertex
// coordinates — the geometry index never recomputes these, per spec §4.2).
type Tet struct {
	Compartment string     `json:"compartment"`
	Volume      float64    `json:"volume"`
	FaceArea    [4]float64 `json:"face_area"`
	FaceDist    [4]float64 `json:"face_dist"`
	Neighbor    [4]int     `json:"neighbor"`
}

// Tri mirrors one Tri registration.
type Tri struct {
	Patch    string     `json:"patch"`
	Area     float64    `json:"area"`
	EdgeLen  [3]float64 `json:"edge_len"`
	EdgeDist [3]float64 `json:"edge_dist"`
	Neighbor [3]int     `json:"neighbor"`
	InnerTet int        `json:"inner_tet"`
	OuterTet int        `json:"outer_tet"` // geom.Absent (-1) for none
}

// Mesh is the decoding target of a ".mesh.json" file: the companion of a
// teacher ".sim" file's msh.Mesh section, generalised from FEM node/cell
// connectivity to precomputed per-tet/per-tri finite-volume metrics.
type Mesh struct {
	Compartments []Compartment `json:"compartments"`
	Patches      []Patch       `json:"patches"`
	Tets         []Tet         `json:"tets"`
	Tris         []Tri         `json:"tris"`
}

// Read reads and JSON-decodes a ".mesh.json" file, then checks the structural
// invariants inp.ReadMsh checks on its own Verts/Cells slices before any
// downstream index construction is attempted: every tet must name a known
// compartment and every tri a known patch, by construction order (compartments
// and patches are decoded first so the names below can be checked against
// them), and every face/edge metric array must be non-negative.
func Read(dir, fn string) (*Mesh, error) {
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot read mesh file %q", fn)
	}
	var m Mesh
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot decode mesh file %q", fn)
	}

	compNames := make(map[string]bool, len(m.Compartments))
	for _, c := range m.Compartments {
		compNames[c.Name] = true
	}
	patchNames := make(map[string]bool, len(m.Patches))
	for _, p := range m.Patches {
		patchNames[p.Name] = true
	}

	for i, t := range m.Tets {
		if !compNames[t.Compartment] {
			return nil, xerr.New(xerr.ArgumentOutOfRange, "tet %d references unknown compartment %q", i, t.Compartment)
		}
		if t.Volume < 0 {
			return nil, xerr.New(xerr.ArgumentOutOfRange, "tet %d has negative volume %g", i, t.Volume)
		}
		for j := 0; j < 4; j++ {
			if t.FaceArea[j] < 0 || t.FaceDist[j] < 0 {
				return nil, xerr.New(xerr.ArgumentOutOfRange, "tet %d has a negative face metric at face %d", i, j)
			}
		}
	}
	for i, t := range m.Tris {
		if !patchNames[t.Patch] {
			return nil, xerr.New(xerr.ArgumentOutOfRange, "tri %d references unknown patch %q", i, t.Patch)
		}
		if t.Area < 0 {
			return nil, xerr.New(xerr.ArgumentOutOfRange, "tri %d has negative area %g", i, t.Area)
		}
		for j := 0; j < 3; j++ {
			if t.EdgeLen[j] < 0 || t.EdgeDist[j] < 0 {
				return nil, xerr.New(xerr.ArgumentOutOfRange, "tri %d has a negative edge metric at edge %d", i, j)
			}
		}
	}

	return &m, nil
}
