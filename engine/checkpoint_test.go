// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tetode/xerr"
)

func Test_checkpoint01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("checkpoint01 (round-trip)")

	eng := buildTwoTetDecay(tst, 0.3)
	eng.SetCompCount("cell", "A", 100.0)
	if err := eng.SetTol(1e-9, 1e-9); err != nil {
		tst.Fatalf("SetTol failed: %v", err)
	}
	if err := eng.Run(1.0); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	if err := eng.SetTetReacK(0, "decay", 0.9); err != nil {
		tst.Fatalf("SetTetReacK failed: %v", err)
	}

	path := tst.TempDir() + "/ckpt.bin"
	if err := eng.Checkpoint(path); err != nil {
		tst.Errorf("Checkpoint failed: %v\n", err)
		return
	}
	defer os.Remove(path)

	restored := buildTwoTetDecay(tst, 0.3)
	if err := restored.Restore(path); err != nil {
		tst.Errorf("Restore failed: %v\n", err)
		return
	}

	chk.Scalar(tst, "t_now", 1e-12, restored.GetTime(), eng.GetTime())
	for i := range eng.Drv.Y() {
		chk.Scalar(tst, "y", 1e-12, restored.Drv.Y()[i], eng.Drv.Y()[i])
	}
	for i := range eng.Graph.Processes {
		chk.Scalar(tst, "coeff", 1e-12, restored.Graph.Processes[i].Coeff, eng.Graph.Processes[i].Coeff)
	}
}

func Test_checkpoint02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("checkpoint02 (mismatch detection)")

	eng := buildTwoTetDecay(tst, 0.3)
	path := tst.TempDir() + "/ckpt.bin"
	if err := eng.Checkpoint(path); err != nil {
		tst.Fatalf("Checkpoint failed: %v", err)
	}
	defer os.Remove(path)

	other := buildMembraneModel(tst)
	err := other.Restore(path)
	if !xerr.Is(err, xerr.CheckpointMismatch) {
		tst.Errorf("restoring into an incompatible engine should report CheckpointMismatch, got %v\n", err)
	}
}
