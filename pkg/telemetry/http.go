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
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// HTTPMetrics records API traffic. A nil *HTTPMetrics records nothing.
type HTTPMetrics struct {
	RequestsTotal *Counter
	Duration      *Histogram
	InFlight      *UpDownCounter
}

func NewHTTPMetrics(meter otelmetric.Meter) (*HTTPMetrics, error) {
	requestsTotal, err := NewCounter(meter, MetricOptions{
		Name:        BuildMetricName("http_requests", MetricNameSuffixTotal),
		Description: "total number of API requests by route, method and status code",
		Unit:        "1",
	})
	if err != nil {
		return nil, err
	}

	duration, err := NewHistogram(meter, MetricOptions{
		Name:        BuildMetricName("http_request", MetricNameSuffixDuration),
		Description: "API request latency",
		Unit:        "s",
		Buckets:     HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	inFlight, err := NewUpDownCounter(meter, MetricOptions{
		Name:        BuildMetricName("http_requests_in_flight", ""),
		Description: "API requests currently being served",
		Unit:        "1",
	})
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{
		RequestsTotal: requestsTotal,
		Duration:      duration,
		InFlight:      inFlight,
	}, nil
}

func (hm *HTTPMetrics) RequestStarted(ctx context.Context) {
	if hm == nil {
		return
	}
	hm.InFlight.Inc(ctx)
}

func (hm *HTTPMetrics) RequestFinished(ctx context.Context, method, route string, code int, elapsed time.Duration) {
	if hm == nil {
		return
	}
	hm.InFlight.Dec(ctx)

	status := StatusSuccess
	if code >= 500 {
		status = StatusError
	}
	hm.RequestsTotal.Inc(ctx,
		WithMethod(method),
		WithRoute(route),
		WithStatus(status),
		attribute.String("artvault_status_code", strconv.Itoa(code)),
	)
	hm.Duration.Record(ctx, elapsed.Seconds(), WithMethod(method), WithRoute(route))
}
