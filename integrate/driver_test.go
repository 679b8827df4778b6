// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tetode/graph"
	"github.com/cpmech/tetode/xerr"
)

// single-slot exponential decay: dy/dt = -k*y, via one first-order process.
func buildDecayGraph(k float64) *graph.Graph {
	return &graph.Graph{
		Slots: []graph.Span{{Off: 0, Len: 1}},
		Processes: []graph.Process{
			{Coeff: k, Update: -1, DescOff: 0, DescLen: 1, ProcessID: 0},
		},
		Descriptors: []graph.ReactantTerm{{Order: 1, Index: 0}},
	}
}

func Test_driver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver01 (setup defaults)")

	g := buildDecayGraph(1.0)
	d := New(g)
	chk.IntAssert(int(d.State()), int(Configured))
	chk.Scalar(tst, "t_now", 1e-15, d.TNow(), 0.0)
	chk.Scalar(tst, "rtol", 1e-15, d.Rtol(), defaultRtol)
	chk.IntAssert(len(d.Y()), 1)
	chk.IntAssert(len(d.Abstol()), 1)
	chk.Scalar(tst, "abstol[0]", 1e-15, d.Abstol()[0], defaultAtol)
}

func Test_driver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver02 (exponential decay integration)")

	k := 0.7
	g := buildDecayGraph(k)
	d := New(g)
	d.Y()[0] = 10.0
	if err := d.SetTol(1e-10, 1e-10); err != nil {
		tst.Errorf("SetTol failed: %v\n", err)
		return
	}

	tEnd := 2.0
	if err := d.Run(tEnd); err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "t_now", 1e-12, d.TNow(), tEnd)

	want := 10.0 * math.Exp(-k*tEnd)
	chk.Scalar(tst, "y[0]", 1e-6, d.Y()[0], want)
}

func Test_driver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver03 (error cases)")

	g := buildDecayGraph(1.0)
	d := New(g)

	if err := d.SetTol(-1.0, 1e-3); !xerr.Is(err, xerr.InvalidTolerance) {
		tst.Errorf("negative atol should report InvalidTolerance, got %v\n", err)
	}

	if err := d.Run(-1.0); !xerr.Is(err, xerr.TimeRegression) {
		tst.Errorf("run(t_end) before t_now should report TimeRegression, got %v\n", err)
	}

	if err := d.Advance(-0.5); !xerr.Is(err, xerr.ArgumentOutOfRange) {
		tst.Errorf("negative dt should report ArgumentOutOfRange, got %v\n", err)
	}
}

func Test_driver04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("driver04 (Advance, MarkDirty, SetTolVector)")

	g := buildDecayGraph(1.0)
	d := New(g)
	d.Y()[0] = 1.0

	if err := d.Advance(0.0); err != nil {
		tst.Errorf("Advance(0) should be a no-op, got %v\n", err)
	}
	chk.Scalar(tst, "t_now", 1e-15, d.TNow(), 0.0)

	if err := d.SetTolVector([]float64{1e-9}, 1e-9); err != nil {
		tst.Errorf("SetTolVector failed: %v\n", err)
	}
	if err := d.SetTolVector([]float64{1e-9, 2e-9}, 1e-9); !xerr.Is(err, xerr.ArgumentOutOfRange) {
		tst.Errorf("mismatched abstol length should report ArgumentOutOfRange, got %v\n", err)
	}

	d.SetMaxSteps(50)
	chk.IntAssert(d.MaxSteps(), 50)
	d.MarkDirty() // idempotent, just exercises the pendingReinit path
}
