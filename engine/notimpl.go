// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "github.com/cpmech/tetode/xerr"

// SetSpeciesClamped would clamp a species' concentration at a tet/tri so that
// integration never changes it. Present on the API surface (spec §1) but
// unimplemented by this core — mirrors how ele/factory.go panics on an
// unregistered element kind rather than silently no-opping.
func (o *Engine) SetSpeciesClamped(tet int, species string, clamped bool) error {
	return xerr.New(xerr.NotImplemented, "species clamping is not implemented by this engine")
}

// SetReactionActive would toggle a single reaction on/off at one element
// without removing it from the process graph. Present on the API surface but
// unimplemented: the process graph has no structural-change path after setup
// (spec §3 Lifecycle).
func (o *Engine) SetReactionActive(tet int, reac string, active bool) error {
	return xerr.New(xerr.NotImplemented, "per-element reaction activation/deactivation is not implemented by this engine")
}

// GetMembPotential, SetMembPotential and friends would expose
// electrophysiology (membrane potential, channels, currents). Non-goal per
// spec §1: the calls exist on the surface but always fail.
func (o *Engine) GetMembPotential(tri int) (float64, error) {
	return 0, xerr.New(xerr.NotImplemented, "electrophysiology is not part of this engine")
}

func (o *Engine) SetMembPotential(tri int, v float64) error {
	return xerr.New(xerr.NotImplemented, "electrophysiology is not part of this engine")
}

func (o *Engine) SetChannelConductance(tri int, channel string, g float64) error {
	return xerr.New(xerr.NotImplemented, "electrophysiology is not part of this engine")
}
