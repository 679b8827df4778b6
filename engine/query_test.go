// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tetode/geom"
	"github.com/cpmech/tetode/model"
)

// buildMembraneModel builds a cell with a membrane patch carrying a surface
// species "R" over two triangles, for patch-level query tests.
func buildMembraneModel(tst *testing.T) *Engine {
	cat := model.NewCatalogue()
	cat.VolSystem("cyto") // empty volume system, no volumetric species
	ssys := cat.SurfSystem("membrane")
	cat.RegisterSpecies("R")
	if _, err := ssys.RegisterDiffusion("diffR", "R", 1.0); err != nil {
		tst.Fatalf("RegisterDiffusion failed: %v", err)
	}

	idx := geom.NewIndex()
	idx.AddCompartment("cell", "cyto")
	idx.AddPatch("pm", "membrane", "cell", "")
	idx.AddTet("cell", 1.0, [4]float64{}, [4]float64{}, [4]int{geom.Absent, geom.Absent, geom.Absent, geom.Absent})
	idx.AddTri("pm", 2.0, [3]float64{1, 1, 1}, [3]float64{1, 1, 1}, [3]int{1, geom.Absent, geom.Absent}, 0, geom.Absent)
	idx.AddTri("pm", 3.0, [3]float64{1, 1, 1}, [3]float64{1, 1, 1}, [3]int{geom.Absent, geom.Absent, geom.Absent}, 0, geom.Absent)

	eng, err := New(cat, idx)
	if err != nil {
		tst.Fatalf("engine.New failed: %v", err)
	}
	return eng
}

func Test_query01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("query01 (patch get/set, area-weighted distribution)")

	eng := buildMembraneModel(tst)

	if err := eng.SetPatchCount("pm", "R", 50.0); err != nil {
		tst.Errorf("SetPatchCount failed: %v\n", err)
		return
	}
	r0, err := eng.GetTriCount(0, "R")
	if err != nil {
		tst.Errorf("GetTriCount failed: %v\n", err)
		return
	}
	r1, err := eng.GetTriCount(1, "R")
	if err != nil {
		tst.Errorf("GetTriCount failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "tri0 (area 2/5)", 1e-9, r0, 20.0)
	chk.Scalar(tst, "tri1 (area 3/5)", 1e-9, r1, 30.0)

	total, err := eng.GetPatchCount("pm", "R")
	if err != nil {
		tst.Errorf("GetPatchCount failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "patch total", 1e-9, total, 50.0)
}

func Test_query02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("query02 (concentration conversions)")

	cat := model.NewCatalogue()
	cat.RegisterSpecies("A")
	sys := cat.VolSystem("cyto")
	sys.RegisterDiffusion("diffA", "A", 1.0) // forces A into the local species set

	idx := geom.NewIndex()
	idx.AddCompartment("cell", "cyto")
	idx.AddTet("cell", 1e-15, [4]float64{}, [4]float64{}, [4]int{geom.Absent, geom.Absent, geom.Absent, geom.Absent})

	eng, err := New(cat, idx)
	if err != nil {
		tst.Fatalf("engine.New failed: %v", err)
	}

	if err := eng.SetTetCount(0, "A", NA*1e-15*1000); err != nil {
		tst.Errorf("SetTetCount failed: %v\n", err)
		return
	}
	conc, err := eng.GetTetConc(0, "A")
	if err != nil {
		tst.Errorf("GetTetConc failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "conc (1 mol/L)", 1e-9, conc, 1.0)
}

func Test_query03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("query03 (negative count rejected)")

	eng := buildMembraneModel(tst)
	if err := eng.SetPatchCount("pm", "R", -1.0); err == nil {
		tst.Errorf("negative count should be rejected\n")
	}
	if err := eng.SetTetCount(0, "nonexistent", 1.0); err == nil {
		tst.Errorf("unknown species should be rejected\n")
	}
}
