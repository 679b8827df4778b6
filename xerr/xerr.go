// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xerr defines the typed error taxonomy used across the tetode engine.
//
// gosl/chk only offers formatted, untyped errors (chk.Err) and fatal panics
// (chk.Panic); the engine's API needs callers to switch on error *kind*
// (ArgumentOutOfRange vs NotDefined vs IntegrationFailure, ...), so this
// package wraps the same "sprintf + wrap" idiom gofem uses with a Kind tag.
package xerr

import "fmt"

// Kind identifies the category of a tetode error.
type Kind int

const (
	// ArgumentOutOfRange: unknown index/name, negative count/concentration/rate/tolerance.
	ArgumentOutOfRange Kind = iota
	// NotDefined: species/reaction/diffusion not defined for the requested element.
	NotDefined
	// UnresolvedSystem: a compartment/patch references a system never registered.
	UnresolvedSystem
	// InvalidStoichiometry: negative stoichiometric coefficient or diffusion constant at setup.
	InvalidStoichiometry
	// InvalidReaction: a surface reaction straddles inner and outer volumes at once,
	// or needs an outer volume at a triangle that has none.
	InvalidReaction
	// UnsupportedOrder: reaction order greater than 4.
	UnsupportedOrder
	// NameConflict: a name was re-registered within the same kind.
	NameConflict
	// InvalidGeometry: a non-mesh (well-mixed) compartment was given to the tet-ODE engine.
	InvalidGeometry
	// CheckpointMismatch: restore against an incompatible configuration.
	CheckpointMismatch
	// IntegrationFailure: integrator returned non-success or exceeded its step budget.
	IntegrationFailure
	// TimeRegression: run(t_end) requested with t_end < t_now.
	TimeRegression
	// InvalidTolerance: a negative tolerance was supplied.
	InvalidTolerance
	// NotImplemented: API surface present but not supported by this engine.
	NotImplemented
)

var kindNames = map[Kind]string{
	ArgumentOutOfRange:   "ArgumentOutOfRange",
	NotDefined:           "NotDefined",
	UnresolvedSystem:     "UnresolvedSystem",
	InvalidStoichiometry: "InvalidStoichiometry",
	InvalidReaction:      "InvalidReaction",
	UnsupportedOrder:     "UnsupportedOrder",
	NameConflict:         "NameConflict",
	InvalidGeometry:      "InvalidGeometry",
	CheckpointMismatch:   "CheckpointMismatch",
	IntegrationFailure:   "IntegrationFailure",
	TimeRegression:       "TimeRegression",
	InvalidTolerance:     "InvalidTolerance",
	NotImplemented:       "NotImplemented",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Error is a tetode error: a Kind plus a formatted message, optionally wrapping a cause.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a *Error with the given kind, formatting msg/args with fmt.Sprintf.
func New(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...)}
}

// Wrap builds a *Error with the given kind, wrapping cause and formatting msg/args.
func Wrap(kind Kind, cause error, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), Cause: cause}
}

// Is reports whether err is a *Error of the given kind (helper for callers using errors.As).
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Kind == kind
}
