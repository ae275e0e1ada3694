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

// carrierTotals is the additive accumulator stored per CarrierKey.
type carrierTotals struct {
	RegisteredMS uint64
	ActiveMS     uint64
}

// carrierTable is the carrier lifetime table (component D): a map from
// (carrier id, transport bitmask, interval ms) to accumulated registered
// and active milliseconds. Rows are created lazily on first contribution
// and are never removed except by a full reset.
type carrierTable struct {
	rows map[CarrierKey]carrierTotals
}

func newCarrierTable() *carrierTable {
	return &carrierTable{rows: make(map[CarrierKey]carrierTotals)}
}

// addRegistered adds deltaMS to the registered-ms total for key, creating
// the row (at zero) on first contribution even if deltaMS is 0.
func (t *carrierTable) addRegistered(key CarrierKey, deltaMS uint64) {
	tot := t.rows[key]
	tot.RegisteredMS += deltaMS
	t.rows[key] = tot
}

// addActive adds deltaMS to the active-ms total for key, creating the row
// (at zero) on first contribution even if deltaMS is 0.
func (t *carrierTable) addActive(key CarrierKey, deltaMS uint64) {
	tot := t.rows[key]
	tot.ActiveMS += deltaMS
	t.rows[key] = tot
}

// clone returns a deep copy of the row map, used by the report builder to
// fold transient open-record tails without mutating the stored totals.
func (t *carrierTable) clone() map[CarrierKey]carrierTotals {
	out := make(map[CarrierKey]carrierTotals, len(t.rows))
	for k, v := range t.rows {
		out[k] = v
	}
	return out
}

// reset clears all rows.
func (t *carrierTable) reset() {
	t.rows = make(map[CarrierKey]carrierTotals)
}

// CarrierLifetimeRow is one emitted row of the carrier lifetime table.
type CarrierLifetimeRow struct {
	CarrierID          int
	TransportTypes     uint32
	IntervalsMsec      uint64
	LifetimeMsec       uint64
	ActiveLifetimeMsec uint64
}

// rowsFrom converts a (possibly transient) totals map into the exported row
// slice. Row order is unspecified; consumers key on the tuple.
func rowsFrom(totals map[CarrierKey]carrierTotals) []CarrierLifetimeRow {
	rows := make([]CarrierLifetimeRow, 0, len(totals))
	for key, tot := range totals {
		rows = append(rows, CarrierLifetimeRow{
			CarrierID:          key.CarrierID,
			TransportTypes:     key.TransportBitmask,
			IntervalsMsec:      key.IntervalMS,
			LifetimeMsec:       tot.RegisteredMS,
			ActiveLifetimeMsec: tot.ActiveMS,
		})
	}
	return rows
}
