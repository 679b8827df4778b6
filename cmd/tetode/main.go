// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/tetode/config"
	"github.com/cpmech/tetode/engine"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nTetODE -- deterministic reaction-diffusion on tetrahedral meshes\n\n")

	// flags
	var tEnd, atol, rtol float64
	var maxSteps int
	var method, modelFile, meshFile, checkpointOut, checkpointIn string
	flag.Float64Var(&tEnd, "tend", 1.0, "final simulation time")
	flag.Float64Var(&atol, "atol", 1e-3, "absolute integration tolerance")
	flag.Float64Var(&rtol, "rtol", 1e-3, "relative integration tolerance")
	flag.IntVar(&maxSteps, "maxsteps", 10000, "maximum integration steps per run")
	flag.StringVar(&method, "method", "Dopri5", "integration method: Dopri5 or Radau5")
	flag.StringVar(&checkpointOut, "save", "", "write a checkpoint to this path after the run")
	flag.StringVar(&checkpointIn, "restore", "", "restore from a checkpoint at this path before the run")
	flag.Parse()

	if len(flag.Args()) < 2 {
		chk.Panic("Please, provide a model file and a mesh file. Ex.: model.json mesh.json")
	}
	modelFile = flag.Arg(0)
	meshFile = flag.Arg(1)

	// load
	cat, err := config.ReadModel(".", modelFile)
	if err != nil {
		chk.Panic("%v", err)
	}
	idx, err := config.ReadMesh(".", meshFile)
	if err != nil {
		chk.Panic("%v", err)
	}
	io.Pf("> model and mesh loaded: %d species, %d compartments, %d patches\n",
		cat.NSpecies(), len(idx.Compartments), len(idx.Patches))

	// build engine
	eng, err := engine.New(cat, idx)
	if err != nil {
		chk.Panic("%v", err)
	}
	eng.Drv.SetMethod(method)
	if err := eng.SetTol(atol, rtol); err != nil {
		chk.Panic("%v", err)
	}
	eng.SetMaxSteps(maxSteps)
	io.Pf("> engine ready: %d process-graph slots, %d processes\n", eng.Graph.Len(), len(eng.Graph.Processes))

	if checkpointIn != "" {
		if err := eng.Restore(checkpointIn); err != nil {
			chk.Panic("%v", err)
		}
		io.Pf("> restored from %q at t=%g\n", checkpointIn, eng.GetTime())
	}

	// run
	if err := eng.Run(tEnd); err != nil {
		chk.Panic("%v", err)
	}
	io.PfGreen("> integration to t=%g completed\n", eng.GetTime())

	if checkpointOut != "" {
		if err := eng.Checkpoint(checkpointOut); err != nil {
			chk.Panic("%v", err)
		}
		io.Pf("> checkpoint written to %q\n", checkpointOut)
	}
}
