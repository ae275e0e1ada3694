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

// Package telemetry provides opt-in Prometheus exposition of a
// keepalivestats.DailyReport. It is a pull-model mirror, not a hot-path
// instrumentation point: callers build a report on their own cadence and hand
// it to Publish, which overwrites the exporter's gauges wholesale. Nothing in
// this package calls into the tracker's event hooks, so enabling it never
// perturbs the dispatcher-bound accounting it describes.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	keepalivestats "keepalivestats"
)

// Config controls whether and how a Exporter publishes metrics.
//
// MetricsAddr records the address the caller serves /metrics on. The
// Exporter does not read it: ListenAndServe takes its address as an
// argument, and Handler can be mounted on an existing mux instead.
type Config struct {
	Enabled     bool
	MetricsAddr string
}

// Exporter owns a private Prometheus registry carrying a snapshot of the
// most recently published DailyReport. Safe for concurrent use; Publish may
// be called from a different goroutine than the one serving /metrics.
type Exporter struct {
	enabled bool
	reg     *prometheus.Registry

	bucketRegistered *prometheus.GaugeVec
	bucketActive     *prometheus.GaugeVec
	carrierLifetime  *prometheus.GaugeVec
	carrierActive    *prometheus.GaugeVec
	lastPublishedAt  prometheus.Gauge

	server *http.Server
}

// NewExporter builds an Exporter per cfg. When cfg.Enabled is false, Publish
// and ListenAndServe are no-ops, so callers can wire an Exporter
// unconditionally and gate behavior purely through configuration.
func NewExporter(cfg Config) *Exporter {
	reg := prometheus.NewRegistry()
	e := &Exporter{
		enabled: cfg.Enabled,
		reg:     reg,
		bucketRegistered: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "keepalive_registered_duration_ms",
			Help: "Cumulative registered duration, in milliseconds, spent at each concurrent keepalive count since the last reset.",
		}, []string{"num_of_keepalive"}),
		bucketActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "keepalive_active_duration_ms",
			Help: "Cumulative active (unpaused) duration, in milliseconds, spent at each concurrent keepalive count since the last reset.",
		}, []string{"num_of_keepalive"}),
		carrierLifetime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "keepalive_carrier_lifetime_ms",
			Help: "Cumulative registered duration, in milliseconds, per carrier/transport/interval key since the last reset.",
		}, []string{"carrier_id", "transport_bitmask", "interval_ms"}),
		carrierActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "keepalive_carrier_active_lifetime_ms",
			Help: "Cumulative active duration, in milliseconds, per carrier/transport/interval key since the last reset.",
		}, []string{"carrier_id", "transport_bitmask", "interval_ms"}),
		lastPublishedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "keepalive_report_last_published_unix_seconds",
			Help: "Wall-clock time the most recent report was published to this exporter.",
		}),
	}
	if cfg.Enabled {
		reg.MustRegister(e.bucketRegistered, e.bucketActive, e.carrierLifetime, e.carrierActive, e.lastPublishedAt)
	}
	return e
}

// Publish overwrites the exporter's gauges with report's contents. It
// replaces rather than accumulates: a bucket or carrier row absent from
// report is cleared from the previous publication.
func (e *Exporter) Publish(report *keepalivestats.DailyReport) {
	if !e.enabled || report == nil {
		return
	}
	e.bucketRegistered.Reset()
	e.bucketActive.Reset()
	for n, bucket := range report.DurationPerNumOfKeepalive {
		label := strconv.Itoa(n)
		e.bucketRegistered.WithLabelValues(label).Set(float64(bucket.KeepaliveRegisteredDurationsMsec))
		e.bucketActive.WithLabelValues(label).Set(float64(bucket.KeepaliveActiveDurationsMsec))
	}

	e.carrierLifetime.Reset()
	e.carrierActive.Reset()
	for _, row := range report.KeepaliveLifetimePerCarrier {
		carrierID := strconv.Itoa(row.CarrierID)
		bitmask := strconv.FormatUint(uint64(row.TransportTypes), 10)
		interval := strconv.FormatUint(row.IntervalsMsec, 10)
		e.carrierLifetime.WithLabelValues(carrierID, bitmask, interval).Set(float64(row.LifetimeMsec))
		e.carrierActive.WithLabelValues(carrierID, bitmask, interval).Set(float64(row.ActiveLifetimeMsec))
	}

	e.lastPublishedAt.Set(float64(time.Now().Unix()))
}

// Handler returns an http.Handler serving this exporter's registry in the
// Prometheus exposition format, for callers that already run their own mux.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.reg, promhttp.HandlerOpts{})
}

// ListenAndServe starts a dedicated HTTP server on addr serving only
// /metrics. It is a no-op when the exporter is disabled or no address
// was configured. The returned shutdown func stops the server; callers
// should defer it.
func (e *Exporter) ListenAndServe(addr string) (shutdown func(context.Context) error, err error) {
	if !e.enabled || addr == "" {
		return func(context.Context) error { return nil }, nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	e.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return nil, fmt.Errorf("telemetry: listen on %s: %w", addr, err)
	case <-time.After(50 * time.Millisecond):
	}
	return e.server.Shutdown, nil
}
