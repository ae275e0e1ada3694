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

// KeepaliveDurationBucket is one entry of DailyReport.DurationPerNumOfKeepalive:
// the total milliseconds spent with exactly NumOfKeepalive keepalives
// registered, and separately, active.
type KeepaliveDurationBucket struct {
	NumOfKeepalive                   int
	KeepaliveRegisteredDurationsMsec uint64
	KeepaliveActiveDurationsMsec     uint64
}

// DailyReport is the tracker's output schema: a snapshot of the duration
// histogram and carrier lifetime table, plus a set of fields reserved for
// callers outside this package's scope (request counts, distinct user
// count, uid lists) that the core deliberately leaves unset.
type DailyReport struct {
	DurationPerNumOfKeepalive   []KeepaliveDurationBucket
	KeepaliveLifetimePerCarrier []CarrierLifetimeRow

	// Reserved fields. The core never populates these; they exist so the
	// output schema matches what a richer caller (counting user-initiated
	// vs. automatic keepalive requests, or enumerating uids) could fill in
	// without changing the shape of this type.
	KeepaliveRequests          *int64
	AutomaticKeepaliveRequests *int64
	DistinctUserCount          *int64
	UidList                    []int32
}

// Build snapshots the tracker's current state into a DailyReport without
// resetting anything. It closes the open interval for every live
// registration at the current clock reading, advancing each record's
// LastTransitionMS to now, but folds that trailing time only into a
// temporary copy of the carrier table used for this report — the stored
// carrier totals are only ever mutated by the four event hooks (and cleared
// by BuildAndReset). The histogram is accrued up to now, exactly as an event
// hook would accrue it. This is what makes two consecutive Build calls at the
// same clock reading produce identical reports: the second call's folded
// tails are all zero, since LastTransitionMS already equals now.
func (t *Tracker) Build() (*DailyReport, error) {
	if err := t.enter(); err != nil {
		return nil, err
	}
	defer t.exit()

	report, _ := t.snapshotLocked()
	return report, nil
}

// BuildAndReset is Build, followed by zeroing the duration histogram and
// carrier lifetime table (but not the identity table: live registrations
// remain registered, with LastTransitionMS now equal to the reset instant).
func (t *Tracker) BuildAndReset() (*DailyReport, error) {
	if err := t.enter(); err != nil {
		return nil, err
	}
	defer t.exit()

	report, now := t.snapshotLocked()
	t.hist.reset(now)
	t.carr.reset()
	return report, nil
}

// snapshotLocked performs the actual build described by Build's doc comment.
// Callers must already hold the non-reentrant guard.
func (t *Tracker) snapshotLocked() (*DailyReport, uint64) {
	now := t.clock.NowMS()
	t.accrue(now)

	// Fold every live record's open tail into a transient copy of the
	// carrier table, without touching the stored totals, then advance
	// LastTransitionMS so a repeated build at the same now is a no-op.
	temp := t.carr.clone()
	t.reg.forEach(func(rec *Registration) {
		key := rec.CarrierKey()
		elapsed := deltaMS(now, rec.LastTransitionMS)
		tot := temp[key]
		tot.RegisteredMS += elapsed
		if !rec.Paused {
			tot.ActiveMS += elapsed
		}
		temp[key] = tot
		rec.LastTransitionMS = now
	})

	regDur, actDur := t.hist.snapshot()
	buckets := make([]KeepaliveDurationBucket, len(regDur))
	for k := range regDur {
		buckets[k] = KeepaliveDurationBucket{
			NumOfKeepalive:                   k,
			KeepaliveRegisteredDurationsMsec: regDur[k],
			KeepaliveActiveDurationsMsec:     actDur[k],
		}
	}

	report := &DailyReport{
		DurationPerNumOfKeepalive:   buckets,
		KeepaliveLifetimePerCarrier: rowsFrom(temp),
		UidList:                     []int32{},
	}
	return report, now
}
