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

// durationHistogram is the duration histogram (component C): two dense,
// growing accumulators indexed by the current concurrent count, holding the
// total milliseconds spent at each count since the last reset.
//
// A dense slice is used rather than a sparse map because the maximum
// concurrent keepalive count is bounded by the device's slot budget (small
// double digits at most), making a dense vector both simpler and cheaper to
// snapshot than an ordered map keyed by count.
type durationHistogram struct {
	regDur        []uint64
	actDur        []uint64
	lastAccrualMS uint64
}

func newDurationHistogram(nowMS uint64) *durationHistogram {
	return &durationHistogram{
		regDur:        []uint64{0},
		actDur:        []uint64{0},
		lastAccrualMS: nowMS,
	}
}

// accrue folds the elapsed time since the last accrual into the bucket
// identified by the pre-event cursor values nRegistered and nActive, then
// advances lastAccrualMS to now. Callers must invoke this using the cursor
// values as they stood *before* the current event's effect, per the
// "accrue first" ordering rule.
func (h *durationHistogram) accrue(nowMS uint64, nRegistered, nActive int) {
	delta := deltaMS(nowMS, h.lastAccrualMS)
	h.ensureLen(&h.regDur, nRegistered)
	h.regDur[nRegistered] += delta
	h.ensureLen(&h.actDur, nActive)
	h.actDur[nActive] += delta
	h.lastAccrualMS = nowMS
}

// ensureLen grows arr so that index idx is valid, zero-filling new slots.
func (h *durationHistogram) ensureLen(arr *[]uint64, idx int) {
	if idx < len(*arr) {
		return
	}
	grown := make([]uint64, idx+1)
	copy(grown, *arr)
	*arr = grown
}

// snapshot returns padded copies of regDur and actDur, both extended to the
// greater of the two lengths with zero fill, so callers can zip them
// index-for-index without bounds checks.
func (h *durationHistogram) snapshot() (regDur, actDur []uint64) {
	l := len(h.regDur)
	if len(h.actDur) > l {
		l = len(h.actDur)
	}
	regDur = make([]uint64, l)
	copy(regDur, h.regDur)
	actDur = make([]uint64, l)
	copy(actDur, h.actDur)
	return regDur, actDur
}

// reset zeroes both accumulators, shrinking each back to the single bucket
// for count 0 so that their lengths again track the largest count reached
// since this reset, and sets lastAccrualMS to now. The current cursor values
// (tracked by the Tracker, not the histogram) are retained by the caller
// across reset.
func (h *durationHistogram) reset(nowMS uint64) {
	h.regDur = h.regDur[:1]
	h.regDur[0] = 0
	h.actDur = h.actDur[:1]
	h.actDur[0] = 0
	h.lastAccrualMS = nowMS
}

// deltaMS returns now - last, assuming the monotonic-non-decreasing
// timestamp contract documented on Clock. A caller bug that violates the
// contract is not clamped; it surfaces as an unsigned wraparound, which is
// preferable to silently hiding the bug behind a clamp (see SPEC_FULL.md §5).
func deltaMS(now, last uint64) uint64 {
	return now - last
}
