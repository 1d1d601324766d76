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
	"go.opentelemetry.io/otel/attribute"
)

// naming conventions for metric names
const (
	MetricNameSuffixTotal    = "_total"
	MetricNameSuffixDuration = "_duration_seconds"
	MetricNameSuffixCount    = "_count"
)

const (
	AttrProcedure = "artvault_procedure"
	AttrStatus    = "artvault_status"
	AttrOperation = "artvault_operation"
	AttrRoute     = "artvault_route"
	AttrMethod    = "artvault_method"
	AttrError     = "artvault_error"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

func BuildMetricName(baseName, suffix string) string {
	prefixedName := "artvault_" + baseName
	if suffix == "" {
		return prefixedName
	}
	return prefixedName + suffix
}

// creates attribute for sync procedure name
func WithProcedure(procedure string) attribute.KeyValue {
	return attribute.String(AttrProcedure, procedure)
}

// creates attribute for status
func WithStatus(status string) attribute.KeyValue {
	return attribute.String(AttrStatus, status)
}

// creates  attribute for operation name
func WithOperation(operation string) attribute.KeyValue {
	return attribute.String(AttrOperation, operation)
}

// creates attribute for the matched route template
func WithRoute(route string) attribute.KeyValue {
	return attribute.String(AttrRoute, route)
}

func WithMethod(method string) attribute.KeyValue {
	return attribute.String(AttrMethod, method)
}

// creates attribute for error type
func WithError(errType string) attribute.KeyValue {
	return attribute.String(AttrError, errType)
}
