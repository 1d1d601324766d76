/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package telemetry

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// SyncMetrics records cache sync runs. A nil *SyncMetrics is valid and
// records nothing.
type SyncMetrics struct {
	CountTotal    *Counter
	ErrorTotal    *Counter
	EntitiesTotal *Counter
	Duration      *Histogram
	LastSuccess   *Gauge

	mu          sync.RWMutex
	lastSuccess map[string]time.Time
}

func NewSyncMetrics(meter otelmetric.Meter) (*SyncMetrics, error) {
	sm := &SyncMetrics{lastSuccess: make(map[string]time.Time)}

	countTotal, err := NewCounter(meter, MetricOptions{
		Name: BuildMetricName("sync_count", MetricNameSuffixTotal),
		Description: "total number of cache sync runs. " +
			"Pair with the error total to get the sync success rate",
		Unit: "1",
	})
	if err != nil {
		return nil, err
	}

	errorTotal, err := NewCounter(meter, MetricOptions{
		Name: BuildMetricName("sync_error", MetricNameSuffixTotal),
		Description: "total number of failed cache sync runs. " +
			"error% = artvault_sync_error_total / artvault_sync_count_total",
		Unit: "1",
	})
	if err != nil {
		return nil, err
	}

	entitiesTotal, err := NewCounter(meter, MetricOptions{
		Name:        BuildMetricName("sync_entities", MetricNameSuffixTotal),
		Description: "entities processed by cache sync, by status",
		Unit:        "1",
	})
	if err != nil {
		return nil, err
	}

	duration, err := NewHistogram(meter, MetricOptions{
		Name:        BuildMetricName("sync", MetricNameSuffixDuration),
		Description: "wall time of a single sync procedure",
		Unit:        "s",
		Buckets:     SyncDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	lastSuccess, err := NewGauge(meter, MetricOptions{
		Name:        BuildMetricName("sync_last_success_timestamp_seconds", ""),
		Description: "unix time of the last successful run of each sync procedure",
		Unit:        "s",
	}, sm.observeLastSuccess)
	if err != nil {
		return nil, err
	}

	sm.CountTotal = countTotal
	sm.ErrorTotal = errorTotal
	sm.EntitiesTotal = entitiesTotal
	sm.Duration = duration
	sm.LastSuccess = lastSuccess
	return sm, nil
}

func (sm *SyncMetrics) observeLastSuccess(_ context.Context) []GaugeObservation {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	procedures := make([]string, 0, len(sm.lastSuccess))
	for p := range sm.lastSuccess {
		procedures = append(procedures, p)
	}
	sort.Strings(procedures)

	out := make([]GaugeObservation, 0, len(procedures))
	for _, p := range procedures {
		out = append(out, GaugeObservation{
			Value:      float64(sm.lastSuccess[p].UnixMilli()) / 1000,
			Attributes: []attribute.KeyValue{WithProcedure(p)},
		})
	}
	return out
}

// RecordSync records one finished procedure run. failed counts the entities
// a partial run gave up on.
func (sm *SyncMetrics) RecordSync(ctx context.Context, procedure string, synced, skipped, failed int, elapsed time.Duration, err error) {
	if sm == nil {
		return
	}

	status := StatusSuccess
	if err != nil {
		status = StatusError
	}

	sm.CountTotal.Inc(ctx, WithProcedure(procedure))
	sm.Duration.Record(ctx, elapsed.Seconds(), WithProcedure(procedure), WithStatus(status))
	if synced > 0 {
		sm.EntitiesTotal.Add(ctx, int64(synced), WithProcedure(procedure), WithStatus(StatusSuccess))
	}
	if skipped > 0 {
		sm.EntitiesTotal.Add(ctx, int64(skipped), WithProcedure(procedure), WithStatus(StatusSkipped))
	}
	if failed > 0 {
		sm.EntitiesTotal.Add(ctx, int64(failed), WithProcedure(procedure), WithStatus(StatusError))
	}

	if err != nil {
		sm.ErrorTotal.Inc(ctx, WithProcedure(procedure))
		return
	}

	sm.mu.Lock()
	sm.lastSuccess[procedure] = time.Now()
	sm.mu.Unlock()
}
