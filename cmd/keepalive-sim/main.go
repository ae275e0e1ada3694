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

// Overview:
//
//	keepalive-sim is a synthetic event generator for keepalivestats.Tracker.
//	It drives a configurable number of slots through start/pause/resume/stop
//	cycles on a single goroutine (the tracker has exactly one legal caller at
//	a time), periodically calls BuildAndReset, prints the resulting report as
//	JSON, and optionally exposes the same report on a Prometheus /metrics
//	endpoint.
//
// Usage:
//
//	go run ./cmd/keepalive-sim -slots 8 -report 5s -http :9090
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	keepalivestats "keepalivestats"
	"keepalivestats/internal/telemetry"
)

func main() {
	slots := flag.Int("slots", 4, "number of concurrent keepalive slots to simulate")
	carriers := flag.Int("carriers", 2, "number of distinct carrier ids to draw from")
	tickEvery := flag.Duration("tick", 50*time.Millisecond, "interval between simulated events")
	reportEvery := flag.Duration("report", 5*time.Second, "interval between BuildAndReset snapshots")
	httpAddr := flag.String("http", "", "optional address to serve /metrics on, e.g. :9090")
	duration := flag.Duration("duration", 0, "run duration; 0 runs until interrupted")
	flag.Parse()

	if *slots <= 0 {
		*slots = 4
	}
	if *carriers <= 0 {
		*carriers = 1
	}
	if *tickEvery <= 0 {
		*tickEvery = 50 * time.Millisecond
	}
	if *reportEvery <= 0 {
		*reportEvery = 5 * time.Second
	}

	clock := keepalivestats.NewSystemClock()
	tracker := keepalivestats.NewTracker(clock)

	exporter := telemetry.NewExporter(telemetry.Config{
		Enabled:     *httpAddr != "",
		MetricsAddr: *httpAddr,
	})
	shutdown, err := exporter.ListenAndServe(*httpAddr)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}()
	if *httpAddr != "" {
		log.Printf("keepalive-sim serving /metrics on %s", *httpAddr)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	type slotState struct {
		network keepalivestats.Network
		live    bool
		paused  bool
	}
	states := make([]slotState, *slots)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	tickTicker := time.NewTicker(*tickEvery)
	defer tickTicker.Stop()
	reportTicker := time.NewTicker(*reportEvery)
	defer reportTicker.Stop()

	var endTimer <-chan time.Time
	if *duration > 0 {
		endTimer = time.After(*duration)
	}

	for {
		select {
		case <-sigCh:
			printFinalReport(tracker)
			return
		case <-endTimer:
			printFinalReport(tracker)
			return
		case <-tickTicker.C:
			slot := rng.Intn(*slots)
			st := &states[slot]
			caps := keepalivestats.NetworkCapabilities{
				Transports: []keepalivestats.TransportType{keepalivestats.TransportCellular},
				CarrierID:  rng.Intn(*carriers),
			}
			var err error
			switch {
			case !st.live:
				st.network = keepalivestats.Network(rng.Int63())
				err = tracker.OnStartKeepalive(st.network, slot, caps, 10)
				st.live, st.paused = err == nil, false
			case st.paused:
				err = tracker.OnResumeKeepalive(st.network, slot)
				if err == nil {
					st.paused = false
				}
			case rng.Float64() < 0.15:
				err = tracker.OnStopKeepalive(st.network, slot)
				if err == nil {
					st.live = false
				}
			default:
				err = tracker.OnPauseKeepalive(st.network, slot)
				if err == nil {
					st.paused = true
				}
			}
			if err != nil {
				log.Printf("event error (slot=%d): %v", slot, err)
			}
		case <-reportTicker.C:
			report, err := tracker.BuildAndReset()
			if err != nil {
				log.Printf("BuildAndReset: %v", err)
				continue
			}
			exporter.Publish(report)
			printReport(report)
		}
	}
}

func printReport(report *keepalivestats.DailyReport) {
	b, err := json.Marshal(report)
	if err != nil {
		log.Printf("marshal report: %v", err)
		return
	}
	os.Stdout.Write(b)
	os.Stdout.Write([]byte("\n"))
}

func printFinalReport(tracker *keepalivestats.Tracker) {
	report, err := tracker.Build()
	if err != nil {
		log.Printf("final Build: %v", err)
		return
	}
	printReport(report)
}
