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

package keepalivestats

import "errors"

// Sentinel errors returned by Tracker. All of them are programming errors:
// none are recoverable by the tracker itself, and none should ever fire for
// a correctly wired caller.
var (
	// ErrWrongContext is returned when a Tracker method is invoked while
	// another call on the same Tracker is already in flight, whether from a
	// concurrent goroutine or reentrantly from within a callback. Every
	// mutating and read method must run serialized on a single dispatcher.
	ErrWrongContext = errors.New("keepalivestats: call made off the tracker's dispatcher")

	// ErrSlotInUse is returned by OnStartKeepalive when (network, slot)
	// already has a live registration.
	ErrSlotInUse = errors.New("keepalivestats: network/slot already registered")

	// ErrUnknownRegistration is returned by OnPauseKeepalive, OnResumeKeepalive,
	// and OnStopKeepalive when (network, slot) has no live registration.
	ErrUnknownRegistration = errors.New("keepalivestats: no live registration for network/slot")

	// ErrIllegalTransition is returned by OnPauseKeepalive on an
	// already-paused record, and by OnResumeKeepalive on an already-running
	// one.
	ErrIllegalTransition = errors.New("keepalivestats: illegal pause/resume transition")
)
