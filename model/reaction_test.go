// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/tetode/xerr"
)

func Test_reaction01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("reaction01")

	cat := NewCatalogue()
	cat.RegisterSpecies("A")
	cat.RegisterSpecies("B")
	cat.RegisterSpecies("C")

	sys := cat.VolSystem("cytosol")
	rx, err := sys.RegisterReaction("bind", []Mult{{"A", 1}, {"B", 1}}, []Mult{{"C", 1}}, 1.5e6)
	if err != nil {
		tst.Errorf("RegisterReaction failed: %v\n", err)
		return
	}
	chk.IntAssert(rx.Order, 2)
	chk.Scalar(tst, "k", 1e-15, rx.K, 1.5e6)

	uv := rx.UpdateVector()
	chk.IntAssert(uv["A"], -1)
	chk.IntAssert(uv["B"], -1)
	chk.IntAssert(uv["C"], 1)

	if sys.ReactionByName("bind") != rx {
		tst.Errorf("ReactionByName should find the registered reaction\n")
	}
	if sys.ReactionByName("unbind") != nil {
		tst.Errorf("ReactionByName should return nil for an unregistered reaction\n")
	}
}

func Test_reaction02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("reaction02 (error cases)")

	cat := NewCatalogue()
	cat.RegisterSpecies("A")
	sys := cat.VolSystem("cytosol")

	_, err := sys.RegisterReaction("neg", []Mult{{"A", -1}}, nil, 1.0)
	if !xerr.Is(err, xerr.InvalidStoichiometry) {
		tst.Errorf("negative multiplicity should report InvalidStoichiometry, got %v\n", err)
	}

	_, err = sys.RegisterReaction("negk", []Mult{{"A", 1}}, nil, -1.0)
	if !xerr.Is(err, xerr.ArgumentOutOfRange) {
		tst.Errorf("negative rate constant should report ArgumentOutOfRange, got %v\n", err)
	}

	_, err = sys.RegisterReaction("order5", []Mult{{"A", 5}}, nil, 1.0)
	if !xerr.Is(err, xerr.UnsupportedOrder) {
		tst.Errorf("order 5 should report UnsupportedOrder, got %v\n", err)
	}
}

func Test_voldiffusion01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("voldiffusion01")

	cat := NewCatalogue()
	cat.RegisterSpecies("A")
	sys := cat.VolSystem("cytosol")

	d, err := sys.RegisterDiffusion("diffA", "A", 2.0e-9)
	if err != nil {
		tst.Errorf("RegisterDiffusion failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "D", 1e-20, d.D, 2.0e-9)
	if sys.DiffusionByName("diffA") != d {
		tst.Errorf("DiffusionByName should find the registered rule\n")
	}

	_, err = sys.RegisterDiffusion("bad", "A", -1.0)
	if !xerr.Is(err, xerr.InvalidStoichiometry) {
		tst.Errorf("negative diffusion constant should report InvalidStoichiometry, got %v\n", err)
	}
}
