// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tetode/integrate"
	"github.com/cpmech/tetode/xerr"
)

func Test_mutate01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mutate01 (SetTetReacK rebinds and dirties the driver)")

	eng := buildTwoTetDecay(tst, 0.3)
	eng.SetCompCount("cell", "A", 100.0)
	if err := eng.Run(1.0); err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	if err := eng.SetTetReacK(0, "decay", 5.0); err != nil {
		tst.Errorf("SetTetReacK failed: %v\n", err)
		return
	}
	sys := eng.Cat.LookupVolSystem("cyto")
	chk.Scalar(tst, "K updated", 1e-15, sys.ReactionByName("decay").K, 5.0)

	if eng.Drv.State() != integrate.Configured {
		tst.Errorf("state should remain Configured after a mutation\n")
	}
	// the next Run should reinitialise the integrator with the new rate
	if err := eng.Run(2.0); err != nil {
		tst.Errorf("Run after rebind failed: %v\n", err)
	}
}

func Test_mutate02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mutate02 (error cases)")

	eng := buildTwoTetDecay(tst, 0.3)

	if err := eng.SetTetReacK(0, "decay", -1.0); !xerr.Is(err, xerr.ArgumentOutOfRange) {
		tst.Errorf("negative k should report ArgumentOutOfRange, got %v\n", err)
	}
	if err := eng.SetTetReacK(0, "nonexistent", 1.0); !xerr.Is(err, xerr.NotDefined) {
		tst.Errorf("unknown reaction should report NotDefined, got %v\n", err)
	}
	if err := eng.SetTriSreacK(0, "nonexistent", 1.0); err == nil {
		tst.Errorf("unknown tri/sreac combination should fail\n")
	}
}
