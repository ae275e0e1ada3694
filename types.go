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

// Network is an opaque, comparable handle to a network, scoped per the
// offload controller that assigns Slot values within it. Equality is
// structural (value equality on the underlying integer), never identity of
// a heavier object graph.
type Network int64

// TransportType enumerates the lower-layer transports a keepalive can run
// over. Values are small enough to be packed as bits of a TransportBitmask.
type TransportType int

const (
	TransportCellular TransportType = iota
	TransportWifi
	TransportBluetooth
	TransportEthernet
	TransportVPN
)

// UnknownCarrierID is the sentinel forwarded verbatim when a keepalive's
// carrier cannot be determined from its capabilities at Start time. It is
// never re-derived later: once recorded, a record's carrier id is fixed for
// its lifetime.
const UnknownCarrierID = -1

// NetworkCapabilities is the caller-supplied snapshot of a network's
// properties at the moment a keepalive is started. Only Transports and
// CarrierID are consulted by the tracker; both are captured once and never
// re-read from a live capabilities source afterward.
type NetworkCapabilities struct {
	// Transports lists every transport currently applied to the network.
	// Duplicates are harmless (bits are idempotent).
	Transports []TransportType

	// CarrierID identifies the carrier backing this network, or
	// UnknownCarrierID if indeterminable.
	CarrierID int
}

// TransportBitmask packs Transports into a single bitmask: bit i is set iff
// TransportType(i) is present in Transports.
func (c NetworkCapabilities) TransportBitmask() uint32 {
	var mask uint32
	for _, t := range c.Transports {
		mask |= 1 << uint(t)
	}
	return mask
}

// carrierID returns c.CarrierID as supplied. It does not substitute
// UnknownCarrierID for an unset field: the zero value of NetworkCapabilities
// has CarrierID 0, which is a valid carrier id in principle, so callers that
// truly don't know the carrier should set CarrierID explicitly to
// UnknownCarrierID.
func (c NetworkCapabilities) carrierID() int {
	return c.CarrierID
}

// regKey identifies a live registration in the identity table (component B).
type regKey struct {
	network Network
	slot    int
}

// CarrierKey identifies a row of the carrier lifetime table (component D).
// It is derived once from a registration's captured capabilities and never
// recomputed from a live source.
type CarrierKey struct {
	CarrierID        int
	TransportBitmask uint32
	IntervalMS       uint64
}
