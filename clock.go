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

import "time"

// Clock is the tracker's only external dependency: a source of monotonic
// uptime in milliseconds. Successive calls within a single event's
// processing must be non-decreasing.
type Clock interface {
	NowMS() uint64
}

// SystemClock is the production Clock. It derives monotonic milliseconds
// from time.Now()'s monotonic reading relative to a fixed start instant
// captured at construction, so it is immune to wall-clock adjustments
// (NTP steps, manual clock changes) that a time.Now().UnixMilli() delta
// would not be.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock whose NowMS starts at 0 at construction
// time and advances with wall time thereafter.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowMS implements Clock.
func (c *SystemClock) NowMS() uint64 {
	return uint64(time.Since(c.start).Milliseconds())
}

// FakeClock is a test double that returns an imperatively-set value. It is
// not safe for concurrent use, matching the tracker's single-dispatcher
// contract: tests advance it between calls on the same goroutine.
type FakeClock struct {
	nowMS uint64
}

// NewFakeClock returns a FakeClock initialized to nowMS.
func NewFakeClock(nowMS uint64) *FakeClock {
	return &FakeClock{nowMS: nowMS}
}

// NowMS implements Clock.
func (c *FakeClock) NowMS() uint64 {
	return c.nowMS
}

// Set assigns the clock's current value. It must not move backwards;
// callers that need to simulate a caller bug should do so explicitly via
// SetUnchecked.
func (c *FakeClock) Set(nowMS uint64) {
	if nowMS < c.nowMS {
		panic("keepalivestats: FakeClock.Set moved backwards; use SetUnchecked to test caller-bug handling")
	}
	c.nowMS = nowMS
}

// SetUnchecked assigns the clock's current value without the monotonicity
// check, for tests that intentionally exercise out-of-order timestamps.
func (c *FakeClock) SetUnchecked(nowMS uint64) {
	c.nowMS = nowMS
}

// Advance moves the clock forward by deltaMS and returns the new value.
func (c *FakeClock) Advance(deltaMS uint64) uint64 {
	c.nowMS += deltaMS
	return c.nowMS
}
