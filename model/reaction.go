// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/cpmech/tetode/xerr"
)

// VolSystem is a named grouping of volume reactions and volume diffusions that a
// compartment may attach to by name.
type VolSystem struct {
	Name  string
	Units string // documentation-only hint, no behavioural effect

	Reactions  []*Reaction
	Diffusions []*VolDiffusion
}

// Reaction is a volumetric mass-action reaction: lhs -> rhs at rate constant K,
// scoped to a volume system.
type Reaction struct {
	Name   string
	Index  int // global reaction index, assigned by the state-def resolver
	System *VolSystem

	LHS []Mult
	RHS []Mult
	K   float64

	Order int // sum of LHS multiplicities

	// Active gates whether graph.Build wires this reaction into any
	// compartment. A reaction stays registered in the catalogue regardless,
	// so library rules can be carried without being live (spec §3.1).
	Active bool
}

// RegisterReaction adds a volumetric reaction to this system, active by
// default. Fails with InvalidStoichiometry if any multiplicity is negative,
// with UnsupportedOrder if the resulting order exceeds 4, and with
// ArgumentOutOfRange if k is negative.
func (o *VolSystem) RegisterReaction(name string, lhs, rhs []Mult, k float64) (*Reaction, error) {
	order, err := validateMultisets(lhs, rhs)
	if err != nil {
		return nil, err
	}
	if order > 4 {
		return nil, xerr.New(xerr.UnsupportedOrder, "reaction %q has order %d, which exceeds the maximum of 4", name, order)
	}
	if k < 0 {
		return nil, xerr.New(xerr.ArgumentOutOfRange, "reaction %q has a negative rate constant %g", name, k)
	}
	r := &Reaction{Name: name, System: o, LHS: lhs, RHS: rhs, K: k, Order: order, Active: true}
	o.Reactions = append(o.Reactions, r)
	return r, nil
}

// RegisterDiffusion adds a volume diffusion rule to this system, active by default.
func (o *VolSystem) RegisterDiffusion(name, species string, d float64) (*VolDiffusion, error) {
	if d < 0 {
		return nil, xerr.New(xerr.InvalidStoichiometry, "diffusion rule %q has a negative diffusion constant %g", name, d)
	}
	vd := &VolDiffusion{Name: name, System: o, Species: species, D: d, Active: true}
	o.Diffusions = append(o.Diffusions, vd)
	return vd, nil
}

// VolDiffusion is a volume diffusion rule: one species diffuses with constant D,
// scoped to a volume system.
type VolDiffusion struct {
	Name    string
	Index   int // global diffusion index
	System  *VolSystem
	Species string
	D       float64
	Active  bool
}

// ReactionByName returns the reaction with the given name in this system, or nil.
func (o *VolSystem) ReactionByName(name string) *Reaction {
	for _, r := range o.Reactions {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// DiffusionByName returns the diffusion rule with the given name in this system, or nil.
func (o *VolSystem) DiffusionByName(name string) *VolDiffusion {
	for _, d := range o.Diffusions {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// updateVector returns rhs - lhs as a map from species name to net multiplicity change.
func updateVector(lhs, rhs []Mult) map[string]int {
	u := make(map[string]int)
	for _, m := range lhs {
		u[m.Species] -= m.Count
	}
	for _, m := range rhs {
		u[m.Species] += m.Count
	}
	return u
}

// UpdateVector returns rhs - lhs for this reaction, keyed by species name.
func (o *Reaction) UpdateVector() map[string]int { return updateVector(o.LHS, o.RHS) }

func validateMultisets(lhs, rhs []Mult) (order int, err error) {
	for _, m := range lhs {
		if m.Count < 0 {
			return 0, xerr.New(xerr.InvalidStoichiometry, "negative left-hand multiplicity %d for species %q", m.Count, m.Species)
		}
		order += m.Count
	}
	for _, m := range rhs {
		if m.Count < 0 {
			return 0, xerr.New(xerr.InvalidStoichiometry, "negative right-hand multiplicity %d for species %q", m.Count, m.Species)
		}
	}
	return order, nil
}
