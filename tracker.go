// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package keepalivestats implements an in-process accounting engine for
// TCP/UDP keepalive offloads: it partitions wall-clock time by how many
// keepalives were registered/active at each instant, and aggregates each
// keepalive's registered/active lifetime into a per-carrier running total,
// suitable for daily telemetry upload.
package keepalivestats

import "sync/atomic"

// Tracker is the state machine (component E) tying together the identity
// table, duration histogram, and carrier lifetime table. It must be driven
// exclusively from a single serialized execution context: every exported
// method asserts this via a non-reentrant guard and fails fast with
// ErrWrongContext rather than corrupting state.
//
// The zero Tracker is not usable; construct one with NewTracker.
type Tracker struct {
	clock Clock
	busy  atomic.Bool

	reg   *registry
	hist  *durationHistogram
	carr  *carrierTable

	nRegistered int
	nActive     int
}

// NewTracker constructs a Tracker bound to clock. The histogram and carrier
// table start empty as of clock.NowMS() at construction time.
func NewTracker(clock Clock) *Tracker {
	now := clock.NowMS()
	return &Tracker{
		clock: clock,
		reg:   newRegistry(),
		hist:  newDurationHistogram(now),
		carr:  newCarrierTable(),
	}
}

// enter acquires the non-reentrant guard or reports ErrWrongContext.
func (t *Tracker) enter() error {
	if !t.busy.CompareAndSwap(false, true) {
		return ErrWrongContext
	}
	return nil
}

// exit releases the guard acquired by enter.
func (t *Tracker) exit() {
	t.busy.Store(false)
}

// accrue folds elapsed time since the histogram's last accrual into the
// bucket identified by the tracker's *current* (i.e. pre-event) cursors.
// Every hook calls this before mutating cursors or the registry, per the
// "accrue first" ordering rule.
func (t *Tracker) accrue(nowMS uint64) {
	t.hist.accrue(nowMS, t.nRegistered, t.nActive)
}

// OnStartKeepalive registers a new keepalive on (network, slot). It fails
// with ErrSlotInUse if a live registration already exists for that key; a
// key whose prior registration was stopped may be reused freely, creating a
// fresh record that aggregates independently into the carrier table.
func (t *Tracker) OnStartKeepalive(network Network, slot int, caps NetworkCapabilities, intervalSeconds uint32) error {
	if err := t.enter(); err != nil {
		return err
	}
	defer t.exit()

	if _, exists := t.reg.lookup(network, slot); exists {
		return ErrSlotInUse
	}

	now := t.clock.NowMS()
	t.accrue(now)

	rec := &Registration{
		Network:          network,
		Slot:             slot,
		CarrierID:        caps.carrierID(),
		TransportBitmask: caps.TransportBitmask(),
		IntervalMS:       uint64(intervalSeconds) * 1000,
		StartedAtMS:      now,
		LastTransitionMS: now,
		Paused:           false,
	}
	t.reg.insert(rec)
	t.nRegistered++
	t.nActive++
	return nil
}

// OnPauseKeepalive marks (network, slot) paused. It fails with
// ErrUnknownRegistration if there is no live registration, and with
// ErrIllegalTransition if the registration is already paused.
func (t *Tracker) OnPauseKeepalive(network Network, slot int) error {
	if err := t.enter(); err != nil {
		return err
	}
	defer t.exit()

	rec, ok := t.reg.lookup(network, slot)
	if !ok {
		return ErrUnknownRegistration
	}
	if rec.Paused {
		return ErrIllegalTransition
	}

	now := t.clock.NowMS()
	t.accrue(now)

	elapsed := deltaMS(now, rec.LastTransitionMS)
	key := rec.CarrierKey()
	t.carr.addRegistered(key, elapsed)
	t.carr.addActive(key, elapsed)

	rec.Paused = true
	rec.LastTransitionMS = now
	t.nActive--
	return nil
}

// OnResumeKeepalive marks (network, slot) unpaused. It fails with
// ErrUnknownRegistration if there is no live registration, and with
// ErrIllegalTransition if the registration is not currently paused.
func (t *Tracker) OnResumeKeepalive(network Network, slot int) error {
	if err := t.enter(); err != nil {
		return err
	}
	defer t.exit()

	rec, ok := t.reg.lookup(network, slot)
	if !ok {
		return ErrUnknownRegistration
	}
	if !rec.Paused {
		return ErrIllegalTransition
	}

	now := t.clock.NowMS()
	t.accrue(now)

	// While paused, the record was registered but not active: the elapsed
	// interval folds into registered-ms only.
	elapsed := deltaMS(now, rec.LastTransitionMS)
	t.carr.addRegistered(rec.CarrierKey(), elapsed)

	rec.Paused = false
	rec.LastTransitionMS = now
	t.nActive++
	return nil
}

// OnStopKeepalive removes the live registration on (network, slot), folding
// its trailing registered (and, if unpaused, active) tail into the carrier
// table before discarding the record. It fails with ErrUnknownRegistration
// if there is no live registration.
func (t *Tracker) OnStopKeepalive(network Network, slot int) error {
	if err := t.enter(); err != nil {
		return err
	}
	defer t.exit()

	rec, ok := t.reg.lookup(network, slot)
	if !ok {
		return ErrUnknownRegistration
	}

	now := t.clock.NowMS()
	t.accrue(now)

	elapsed := deltaMS(now, rec.LastTransitionMS)
	key := rec.CarrierKey()
	t.carr.addRegistered(key, elapsed)
	wasActive := !rec.Paused
	if wasActive {
		t.carr.addActive(key, elapsed)
	}

	t.reg.remove(network, slot)
	t.nRegistered--
	if wasActive {
		t.nActive--
	}
	return nil
}
