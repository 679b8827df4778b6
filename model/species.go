// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model implements the biochemical model catalogue (C1): the canonical
// registry of species, volume/surface systems, reactions, surface reactions,
// and diffusion rules that a tet-ODE simulation is built from.
package model

import (
	"github.com/cpmech/tetode/xerr"
)

// Species identifies a chemical species by a stable name and a global index.
// Immutable after registration.
type Species struct {
	Name  string
	Index int // global species index, assigned at registration time
}

// Mult is a stoichiometric multiset entry: a species with a non-negative multiplicity.
type Mult struct {
	Species string
	Count   int
}

// Catalogue is the canonical registry for one model: species, volume/surface systems,
// reactions, surface reactions, volume diffusions, surface diffusions.
type Catalogue struct {
	species    []*Species
	speciesIdx map[string]int // name -> index into species

	volSystems  map[string]*VolSystem
	surfSystems map[string]*SurfSystem
}

// NewCatalogue returns an empty model catalogue.
func NewCatalogue() *Catalogue {
	return &Catalogue{
		speciesIdx:  make(map[string]int),
		volSystems:  make(map[string]*VolSystem),
		surfSystems: make(map[string]*SurfSystem),
	}
}

// RegisterSpecies adds a new species by name. Fails with NameConflict if the name
// is already registered.
func (o *Catalogue) RegisterSpecies(name string) (*Species, error) {
	if _, found := o.speciesIdx[name]; found {
		return nil, xerr.New(xerr.NameConflict, "species %q is already registered", name)
	}
	s := &Species{Name: name, Index: len(o.species)}
	o.speciesIdx[name] = s.Index
	o.species = append(o.species, s)
	return s, nil
}

// Species returns all registered species in registration order.
func (o *Catalogue) Species() []*Species { return o.species }

// SpeciesByName returns the species with the given name, or nil if not registered.
func (o *Catalogue) SpeciesByName(name string) *Species {
	if i, found := o.speciesIdx[name]; found {
		return o.species[i]
	}
	return nil
}

// NSpecies returns the total number of registered species.
func (o *Catalogue) NSpecies() int { return len(o.species) }

// VolSystem returns a volume system by name, registering it on first use.
func (o *Catalogue) VolSystem(name string) *VolSystem {
	if vs, found := o.volSystems[name]; found {
		return vs
	}
	vs := &VolSystem{Name: name}
	o.volSystems[name] = vs
	return vs
}

// SurfSystem returns a surface system by name, registering it on first use.
func (o *Catalogue) SurfSystem(name string) *SurfSystem {
	if ss, found := o.surfSystems[name]; found {
		return ss
	}
	ss := &SurfSystem{Name: name}
	o.surfSystems[name] = ss
	return ss
}

// VolSystemNames returns all registered volume system names.
func (o *Catalogue) VolSystemNames() []string {
	names := make([]string, 0, len(o.volSystems))
	for n := range o.volSystems {
		names = append(names, n)
	}
	return names
}

// LookupVolSystem returns the volume system by name, or nil if never registered.
func (o *Catalogue) LookupVolSystem(name string) *VolSystem {
	return o.volSystems[name]
}

// LookupSurfSystem returns the surface system by name, or nil if never registered.
func (o *Catalogue) LookupSurfSystem(name string) *SurfSystem {
	return o.surfSystems[name]
}
