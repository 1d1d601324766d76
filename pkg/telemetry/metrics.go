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

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	// SyncDurationBuckets spans a tiny local sync up to a multi-minute full rebuild.
	SyncDurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300}
	// HTTPDurationBuckets covers cache hits through slow durable-store writes.
	HTTPDurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
)

// MetricOptions describes an instrument. Attributes are attached to every
// measurement the instrument records, ahead of the per-call ones.
type MetricOptions struct {
	Name        string
	Description string
	Unit        string
	Attributes  []attribute.KeyValue
	// Buckets sets explicit histogram boundaries; ignored by other kinds.
	Buckets []float64
}

// measurement merges the instrument attributes with the call attributes.
type measurement []attribute.KeyValue

func (m measurement) with(attrs []attribute.KeyValue) otelmetric.MeasurementOption {
	if len(m) == 0 {
		return otelmetric.WithAttributes(attrs...)
	}
	merged := make([]attribute.KeyValue, 0, len(m)+len(attrs))
	merged = append(merged, m...)
	merged = append(merged, attrs...)
	return otelmetric.WithAttributes(merged...)
}

type Counter struct {
	counter otelmetric.Int64Counter
	base    measurement
}

func NewCounter(meter otelmetric.Meter, opts MetricOptions) (*Counter, error) {
	counter, err := meter.Int64Counter(
		opts.Name,
		otelmetric.WithDescription(opts.Description),
		otelmetric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &Counter{counter: counter, base: opts.Attributes}, nil
}

func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, c.base.with(attrs))
}

func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.Add(ctx, 1, attrs...)
}

type Histogram struct {
	histogram otelmetric.Float64Histogram
	base      measurement
}

func NewHistogram(meter otelmetric.Meter, opts MetricOptions) (*Histogram, error) {
	histOpts := []otelmetric.Float64HistogramOption{
		otelmetric.WithDescription(opts.Description),
		otelmetric.WithUnit(opts.Unit),
	}
	if len(opts.Buckets) > 0 {
		histOpts = append(histOpts, otelmetric.WithExplicitBucketBoundaries(opts.Buckets...))
	}

	histogram, err := meter.Float64Histogram(opts.Name, histOpts...)
	if err != nil {
		return nil, err
	}
	return &Histogram{histogram: histogram, base: opts.Attributes}, nil
}

func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, value, h.base.with(attrs))
}

// GaugeObservation is one observed value with its attributes.
type GaugeObservation struct {
	Value      float64
	Attributes []attribute.KeyValue
}

// GaugeCallback reports the current observations; it is called on every collection.
type GaugeCallback func(context.Context) []GaugeObservation

type Gauge struct {
	gauge otelmetric.Float64ObservableGauge
}

func NewGauge(meter otelmetric.Meter, opts MetricOptions, callback GaugeCallback) (*Gauge, error) {
	base := measurement(opts.Attributes)
	gauge, err := meter.Float64ObservableGauge(
		opts.Name,
		otelmetric.WithDescription(opts.Description),
		otelmetric.WithUnit(opts.Unit),
		otelmetric.WithFloat64Callback(func(ctx context.Context, observer otelmetric.Float64Observer) error {
			for _, obs := range callback(ctx) {
				observer.Observe(obs.Value, base.with(obs.Attributes))
			}
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Gauge{gauge: gauge}, nil
}

// UpDownCounter tracks a level that rises and falls, such as in-flight requests.
type UpDownCounter struct {
	counter otelmetric.Int64UpDownCounter
	base    measurement
}

func NewUpDownCounter(meter otelmetric.Meter, opts MetricOptions) (*UpDownCounter, error) {
	counter, err := meter.Int64UpDownCounter(
		opts.Name,
		otelmetric.WithDescription(opts.Description),
		otelmetric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &UpDownCounter{counter: counter, base: opts.Attributes}, nil
}

func (u *UpDownCounter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	u.counter.Add(ctx, value, u.base.with(attrs))
}

func (u *UpDownCounter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	u.Add(ctx, 1, attrs...)
}

func (u *UpDownCounter) Dec(ctx context.Context, attrs ...attribute.KeyValue) {
	u.Add(ctx, -1, attrs...)
}
