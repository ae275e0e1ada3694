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

package telemetry

import (
	"net/http/httptest"
	"strings"
	"testing"

	keepalivestats "keepalivestats"
)

func TestPublishDisabledIsNoop(t *testing.T) {
	e := NewExporter(Config{Enabled: false})
	e.Publish(&keepalivestats.DailyReport{
		DurationPerNumOfKeepalive: []keepalivestats.KeepaliveDurationBucket{{NumOfKeepalive: 0, KeepaliveRegisteredDurationsMsec: 1000}},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	e.Handler().ServeHTTP(rec, req)
	if strings.Contains(rec.Body.String(), "keepalive_registered_duration_ms") {
		t.Fatalf("disabled exporter should not register collectors, got body:\n%s", rec.Body.String())
	}
}

func TestPublishExposesBucketsAndCarrierRows(t *testing.T) {
	e := NewExporter(Config{Enabled: true})
	e.Publish(&keepalivestats.DailyReport{
		DurationPerNumOfKeepalive: []keepalivestats.KeepaliveDurationBucket{
			{NumOfKeepalive: 0, KeepaliveRegisteredDurationsMsec: 1000, KeepaliveActiveDurationsMsec: 1000},
			{NumOfKeepalive: 1, KeepaliveRegisteredDurationsMsec: 4000, KeepaliveActiveDurationsMsec: 4000},
		},
		KeepaliveLifetimePerCarrier: []keepalivestats.CarrierLifetimeRow{
			{CarrierID: 7, TransportTypes: 1 << uint(keepalivestats.TransportCellular), IntervalsMsec: 10000, LifetimeMsec: 4000, ActiveLifetimeMsec: 4000},
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	e.Handler().ServeHTTP(rec, req)
	body := rec.Body.String()

	for _, want := range []string{
		`keepalive_registered_duration_ms{num_of_keepalive="1"} 4000`,
		`keepalive_active_duration_ms{num_of_keepalive="0"} 1000`,
		`keepalive_carrier_lifetime_ms{carrier_id="7",interval_ms="10000",transport_bitmask="1"} 4000`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got:\n%s", want, body)
		}
	}
}

func TestPublishResetsStaleLabelsBetweenCalls(t *testing.T) {
	e := NewExporter(Config{Enabled: true})
	e.Publish(&keepalivestats.DailyReport{
		DurationPerNumOfKeepalive: []keepalivestats.KeepaliveDurationBucket{
			{NumOfKeepalive: 0, KeepaliveRegisteredDurationsMsec: 1000},
			{NumOfKeepalive: 1, KeepaliveRegisteredDurationsMsec: 2000},
		},
	})
	e.Publish(&keepalivestats.DailyReport{
		DurationPerNumOfKeepalive: []keepalivestats.KeepaliveDurationBucket{
			{NumOfKeepalive: 0, KeepaliveRegisteredDurationsMsec: 3000},
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	e.Handler().ServeHTTP(rec, req)
	body := rec.Body.String()
	if strings.Contains(body, `num_of_keepalive="1"`) {
		t.Fatalf("stale bucket label should have been cleared, got:\n%s", body)
	}
	if !strings.Contains(body, `keepalive_registered_duration_ms{num_of_keepalive="0"} 3000`) {
		t.Fatalf("expected updated value for bucket 0, got:\n%s", body)
	}
}
