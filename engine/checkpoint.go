// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"bufio"
	"encoding/binary"
	"encoding/gob"
	"os"
	"reflect"

	"github.com/cpmech/tetode/xerr"
)

// identity is the opaque state-def blob of spec §6.1 item 1: enough of the
// catalogue+geometry shape to detect a restore against an incompatible
// configuration. gob-encoded, exactly the teacher's default EncType
// (inp/sim.go: EncType defaults to "gob").
type identity struct {
	SpeciesNames     []string
	CompartmentNames []string
	CompartmentNTets []int
	CompartmentSys   []string
	PatchNames       []string
	PatchNTris       []int
	PatchSys         []string
	NProcesses       int
	YLen             int
}

func (o *Engine) identity() identity {
	id := identity{YLen: o.Graph.Len(), NProcesses: len(o.Graph.Processes)}
	for _, s := range o.Cat.Species() {
		id.SpeciesNames = append(id.SpeciesNames, s.Name)
	}
	for _, c := range o.Geom.Compartments {
		id.CompartmentNames = append(id.CompartmentNames, c.Name)
		id.CompartmentNTets = append(id.CompartmentNTets, len(c.Tets))
		id.CompartmentSys = append(id.CompartmentSys, c.VolSystem)
	}
	for _, p := range o.Geom.Patches {
		id.PatchNames = append(id.PatchNames, p.Name)
		id.PatchNTris = append(id.PatchNTris, len(p.Tris))
		id.PatchSys = append(id.PatchSys, p.SurfSystem)
	}
	return id
}

// Checkpoint writes the binary checkpoint file of spec §6.1: state-def
// identity blob, per-process coefficients (the only mutable element
// metadata), t_now, rtol, max_steps, abstol, y — little-endian, no extra
// framing beyond gob's own self-delimiting encoding for the identity blob.
//
// This generalises fem.FEM's Summary.Save/inp.Sim.EncType idiom (gob-encoded
// restart data keyed by a matching configuration) to a single self-contained
// file instead of a directory of per-processor summary files.
func (o *Engine) Checkpoint(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot create checkpoint file %q", path)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if err := gob.NewEncoder(w).Encode(o.identity()); err != nil {
		return xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot encode state-def blob")
	}

	coeffs := make([]float64, len(o.Graph.Processes))
	for i, p := range o.Graph.Processes {
		coeffs[i] = p.Coeff
	}
	if err := writeSection(w, coeffs); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, o.Drv.TNow()); err != nil {
		return xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot write t_now")
	}
	if err := binary.Write(w, binary.LittleEndian, o.Drv.Rtol()); err != nil {
		return xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot write rtol")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(o.Drv.MaxSteps())); err != nil {
		return xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot write max_steps")
	}
	if err := writeSection(w, o.Drv.Abstol()); err != nil {
		return err
	}
	if err := writeSection(w, o.Drv.Y()); err != nil {
		return err
	}
	return w.Flush()
}

func writeSection(w *bufio.Writer, vals []float64) error {
	for _, v := range vals {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot write checkpoint section")
		}
	}
	return nil
}

// Restore reads a checkpoint written by Checkpoint and applies it to this
// engine. Fails with CheckpointMismatch if the stored state-def blob does not
// identity-match the current configuration.
func (o *Engine) Restore(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return xerr.Wrap(xerr.ArgumentOutOfRange, err, "cannot open checkpoint file %q", path)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var stored identity
	if err := gob.NewDecoder(r).Decode(&stored); err != nil {
		return xerr.Wrap(xerr.CheckpointMismatch, err, "cannot decode state-def blob")
	}
	current := o.identity()
	if !reflect.DeepEqual(stored, current) {
		return xerr.New(xerr.CheckpointMismatch, "checkpoint %q does not match the current configuration", path)
	}

	coeffs := make([]float64, stored.NProcesses)
	if err := readSection(r, coeffs); err != nil {
		return err
	}
	for i := range coeffs {
		o.Graph.Processes[i].Coeff = coeffs[i]
	}

	var tNow, rtol float64
	var maxSteps uint32
	if err := binary.Read(r, binary.LittleEndian, &tNow); err != nil {
		return xerr.Wrap(xerr.CheckpointMismatch, err, "cannot read t_now")
	}
	if err := binary.Read(r, binary.LittleEndian, &rtol); err != nil {
		return xerr.Wrap(xerr.CheckpointMismatch, err, "cannot read rtol")
	}
	if err := binary.Read(r, binary.LittleEndian, &maxSteps); err != nil {
		return xerr.Wrap(xerr.CheckpointMismatch, err, "cannot read max_steps")
	}
	abstol := make([]float64, stored.YLen)
	if err := readSection(r, abstol); err != nil {
		return err
	}
	y := make([]float64, stored.YLen)
	if err := readSection(r, y); err != nil {
		return err
	}

	o.Drv.RestoreState(tNow, rtol, int(maxSteps), abstol, y)
	return nil
}

func readSection(r *bufio.Reader, into []float64) error {
	for i := range into {
		if err := binary.Read(r, binary.LittleEndian, &into[i]); err != nil {
			return xerr.Wrap(xerr.CheckpointMismatch, err, "cannot read checkpoint section")
		}
	}
	return nil
}
