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

import "testing"

func TestCarrierTableAdditiveAndCreateOnMiss(t *testing.T) {
	c := newCarrierTable()
	key := CarrierKey{CarrierID: UnknownCarrierID, TransportBitmask: 1 << uint(TransportCellular), IntervalMS: 10000}

	c.addRegistered(key, 100)
	c.addActive(key, 40)
	c.addRegistered(key, 50)

	rows := rowsFrom(c.rows)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].LifetimeMsec != 150 || rows[0].ActiveLifetimeMsec != 40 {
		t.Fatalf("row = %+v, want LifetimeMsec=150 ActiveLifetimeMsec=40", rows[0])
	}
}

func TestCarrierTableCloneIsIndependent(t *testing.T) {
	c := newCarrierTable()
	key := CarrierKey{CarrierID: 1, TransportBitmask: 2, IntervalMS: 5000}
	c.addRegistered(key, 100)

	snap := c.clone()
	c.addRegistered(key, 900)

	if snap[key].RegisteredMS != 100 {
		t.Fatalf("clone should not observe later mutations, got %d, want 100", snap[key].RegisteredMS)
	}
	if c.rows[key].RegisteredMS != 1000 {
		t.Fatalf("live table should observe the mutation, got %d, want 1000", c.rows[key].RegisteredMS)
	}
}

func TestCarrierTableReset(t *testing.T) {
	c := newCarrierTable()
	c.addRegistered(CarrierKey{CarrierID: 1}, 100)
	c.reset()
	if len(c.rows) != 0 {
		t.Fatalf("len(rows) after reset = %d, want 0", len(c.rows))
	}
}
