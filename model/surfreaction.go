// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/tetode/xerr"
)

// SurfSystem is a named grouping of surface reactions and surface diffusions that
// a patch may attach to by name.
type SurfSystem struct {
	Name  string
	Units string

	Reactions  []*SurfReaction
	Diffusions []*SurfDiffusion
}

// SurfClass classifies a surface reaction by where its reactants live.
type SurfClass int

const (
	// SurfSurf: all reactants are on the surface multiset.
	SurfSurf SurfClass = iota
	// SurfVol: at least one reactant is in a volume multiset (inner or outer).
	SurfVol
)

// SurfReaction is a surface reaction with three paired multisets: surface-side,
// inner-volume-side, outer-volume-side.
type SurfReaction struct {
	Name   string
	Index  int
	System *SurfSystem

	LHSSurf, RHSSurf   []Mult
	LHSInner, RHSInner []Mult
	LHSOuter, RHSOuter []Mult
	K                  float64

	// Inside selects the volume that scales a surface-volume reaction's
	// coefficient: true the triangle's inner tet, false its outer tet.
	Inside bool

	Order int
	Class SurfClass

	// Active gates whether graph.Build wires this reaction into any patch;
	// see model.Reaction.Active.
	Active bool
}

// RegisterReaction adds a surface reaction to this system. Fails with
// InvalidReaction if reactants are present on both the inner and outer volume
// multisets simultaneously (straddling is disallowed, per spec §4.1).
func (o *SurfSystem) RegisterReaction(name string, lhsSurf, rhsSurf, lhsInner, rhsInner, lhsOuter, rhsOuter []Mult, k float64, inside bool) (*SurfReaction, error) {
	if len(lhsInner) > 0 && len(lhsOuter) > 0 {
		return nil, xerr.New(xerr.InvalidReaction, "surface reaction %q has reactants on both the inner and outer volume sides", name)
	}
	orderS, err := validateMultisets(lhsSurf, rhsSurf)
	if err != nil {
		return nil, err
	}
	orderI, err := validateMultisets(lhsInner, rhsInner)
	if err != nil {
		return nil, err
	}
	orderO, err := validateMultisets(lhsOuter, rhsOuter)
	if err != nil {
		return nil, err
	}
	order := orderS + orderI + orderO
	if order > 4 {
		return nil, xerr.New(xerr.UnsupportedOrder, "surface reaction %q has order %d, which exceeds the maximum of 4", name, order)
	}
	if k < 0 {
		return nil, xerr.New(xerr.ArgumentOutOfRange, "surface reaction %q has a negative rate constant %g", name, k)
	}
	class := SurfSurf
	if len(lhsInner) > 0 || len(lhsOuter) > 0 {
		class = SurfVol
	}
	sr := &SurfReaction{
		Name: name, System: o,
		LHSSurf: lhsSurf, RHSSurf: rhsSurf,
		LHSInner: lhsInner, RHSInner: rhsInner,
		LHSOuter: lhsOuter, RHSOuter: rhsOuter,
		K: k, Inside: inside, Order: order, Class: class, Active: true,
	}
	o.Reactions = append(o.Reactions, sr)
	return sr, nil
}

// ReactionByName returns the surface reaction with the given name in this system, or nil.
func (o *SurfSystem) ReactionByName(name string) *SurfReaction {
	for _, r := range o.Reactions {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// SurfDiffusion is a surface diffusion rule: species + surface diffusion constant,
// scoped to a surface system.
type SurfDiffusion struct {
	Name    string
	Index   int
	System  *SurfSystem
	Species string
	D       float64
	Active  bool
}

// RegisterDiffusion adds a surface diffusion rule to this system, active by default.
func (o *SurfSystem) RegisterDiffusion(name, species string, d float64) (*SurfDiffusion, error) {
	if d < 0 {
		return nil, xerr.New(xerr.InvalidStoichiometry, "surface diffusion rule %q has a negative diffusion constant %g", name, d)
	}
	sd := &SurfDiffusion{Name: name, System: o, Species: species, D: d, Active: true}
	o.Diffusions = append(o.Diffusions, sd)
	return sd, nil
}

// UpdateVectorSurf returns rhs - lhs on the surface side, keyed by species name.
func (o *SurfReaction) UpdateVectorSurf() map[string]int { return updateVector(o.LHSSurf, o.RHSSurf) }

// UpdateVectorInner returns rhs - lhs on the inner-volume side, keyed by species name.
func (o *SurfReaction) UpdateVectorInner() map[string]int {
	return updateVector(o.LHSInner, o.RHSInner)
}

// UpdateVectorOuter returns rhs - lhs on the outer-volume side, keyed by species name.
func (o *SurfReaction) UpdateVectorOuter() map[string]int {
	return updateVector(o.LHSOuter, o.RHSOuter)
}
