// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rate implements the rate evaluator (C5): a pure function f(t, y) ->
// dy/dt built by iterating the process graph. No side effects, no allocation,
// no global state other than the graph itself (read-only after setup).
package rate

import (
	"math"

	"github.com/cpmech/tetode/graph"
)

// Eval computes dy into dy[i] for every slot i, given the process graph g and
// the current state y. len(y) == len(dy) == g.Len() is assumed (the integrator
// owns allocation; this function never allocates).
//
// This is the innermost loop of the whole engine and is written branch-light on
// the common order==1 case, mirroring the teacher's tight per-integration-point
// loops (ele/diffusion/diffusion.go).
func Eval(g *graph.Graph, t float64, y, dy []float64) {
	_ = t // the process graph is time-invariant; t is part of the integrator's f(t,y) contract
	for i := 0; i < g.Len(); i++ {
		s := 0.0
		for _, p := range g.ProcessesAt(i) {
			r := float64(p.Update) * p.Coeff
			for _, term := range g.DescriptorsOf(p) {
				if term.Order == 1 {
					r *= y[term.Index]
				} else {
					r *= math.Pow(y[term.Index], float64(term.Order))
				}
			}
			s += r
		}
		dy[i] = s
	}
}
