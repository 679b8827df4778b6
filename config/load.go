// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads a model catalogue and a geometry index from JSON files,
// mirroring the teacher's inp.ReadMat/inp.ReadSim idiom: plain JSON-tagged
// structs decoded with encoding/json from bytes read via gosl/io.ReadFile,
// then assembled into the package types via their Register*/Add* calls (so
// every invariant check those calls perform also runs here).
package config

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/tetode/geom"
	"github.com/cpmech/tetode/model"
	"github.com/cpmech/tetode/xerr"
)

// ReactionData mirrors one Reaction registration (mass-action, volumetric).
type ReactionData struct {
	Name   string  `json:"name"`
	LHS    []Mult  `json:"lhs"`
	RHS    []Mult  `json:"rhs"`
	K      float64 `json:"k"`
	Active bool    `json:"active"`
}

// Mult mirrors one model.Mult entry.
type Mult struct {
	Species string `json:"species"`
	Count   int    `json:"count"`
}

// DiffusionData mirrors one VolDiffusion/SurfDiffusion registration.
type DiffusionData struct {
	Name    string  `json:"name"`
	Species string  `json:"species"`
	D       float64 `json:"d"`
	Active  bool    `json:"active"`
}

// SurfReactionData mirrors one SurfReaction registration.
type SurfReactionData struct {
	Name      string  `json:"name"`
	LHSSurf   []Mult  `json:"lhs_surf"`
	RHSSurf   []Mult  `json:"rhs_surf"`
	LHSInner  []Mult  `json:"lhs_inner"`
	RHSInner  []Mult  `json:"rhs_inner"`
	LHSOuter  []Mult  `json:"lhs_outer"`
	RHSOuter  []Mult  `json:"rhs_outer"`
	K         float64 `json:"k"`
	Inside    bool    `json:"inside"`
	Active    bool    `json:"active"`
}

// VolSystemData mirrors one VolSystem and its reactions/diffusions.
type VolSystemData struct {
	Name       string          `json:"name"`
	Units      string          `json:"units"`
	Reactions  []ReactionData  `json:"reactions"`
	Diffusions []DiffusionData `json:"diffusions"`
}

// SurfSystemData mirrors one SurfSystem and its reactions/diffusions.
type SurfSystemData struct {
	Name       string             `json:"name"`
	Units      string             `json:"units"`
	Reactions  []SurfReactionData `json:"reactions"`
	Diffusions []DiffusionData    `json:"diffusions"`
}

// ModelFile is the top-level decoding target of a ".model.json" file: the
// species catalogue plus every volume/surface system, exactly the way a
// ".mat" file is the top-level decoding target of inp.ReadMat.
type ModelFile struct {
	Species     []string         `json:"species"`
	VolSystems  []VolSystemData  `json:"vol_systems"`
	SurfSystems []SurfSystemData `json:"surf_systems"`
}

func toMults(in []Mult) []model.Mult {
	out := make([]model.Mult, len(in))
	for i, m := range in {
		out[i] = model.Mult{Species: m.Species, Count: m.Count}
	}
	return out
}

// ReadModel reads and validates a ".model.json" file into a fresh
// model.Catalogue, registering species, then per-system reactions and
// diffusions in file order. Every rule is registered regardless of its
// Active flag — the catalogue holds the full library — but a rule with
// Active == false has its model-level Active flag cleared afterwards, so
// graph.Build skips it when wiring processes into compartments/patches
// (the "Active" flag of SPEC_FULL.md §3.1).
func ReadModel(dir, fn string) (*model.Catalogue, error) {
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot read model file %q", fn)
	}
	var mf ModelFile
	if err := json.Unmarshal(b, &mf); err != nil {
		return nil, xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot decode model file %q", fn)
	}

	cat := model.NewCatalogue()
	for _, name := range mf.Species {
		if _, err := cat.RegisterSpecies(name); err != nil {
			return nil, err
		}
	}
	for _, vs := range mf.VolSystems {
		sys := cat.VolSystem(vs.Name)
		sys.Units = vs.Units
		for _, rx := range vs.Reactions {
			r, err := sys.RegisterReaction(rx.Name, toMults(rx.LHS), toMults(rx.RHS), rx.K)
			if err != nil {
				return nil, err
			}
			r.Active = rx.Active
		}
		for _, d := range vs.Diffusions {
			vd, err := sys.RegisterDiffusion(d.Name, d.Species, d.D)
			if err != nil {
				return nil, err
			}
			vd.Active = d.Active
		}
	}
	for _, ss := range mf.SurfSystems {
		sys := cat.SurfSystem(ss.Name)
		sys.Units = ss.Units
		for _, sr := range ss.Reactions {
			r, err := sys.RegisterReaction(sr.Name, toMults(sr.LHSSurf), toMults(sr.RHSSurf),
				toMults(sr.LHSInner), toMults(sr.RHSInner), toMults(sr.LHSOuter), toMults(sr.RHSOuter),
				sr.K, sr.Inside)
			if err != nil {
				return nil, err
			}
			r.Active = sr.Active
		}
		for _, d := range ss.Diffusions {
			sd, err := sys.RegisterDiffusion(d.Name, d.Species, d.D)
			if err != nil {
				return nil, err
			}
			sd.Active = d.Active
		}
	}
	return cat, nil
}
