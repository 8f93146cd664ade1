// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package metrics seeds the dashboard gauges. There is no data source: each
// metric gets an independent uniform draw when the dashboard starts.
package metrics

import (
	"fmt"
	"math/rand/v2"

	"github.com/gtpilot/gtpilot/internal/model"
)

const (
	// MinValue and MaxValue bound generated values to [MinValue, MaxValue).
	MinValue = 20.0
	MaxValue = 100.0
)

var definitions = []model.MetricDefinition{
	{ID: "engagement", Label: "Engagement Rate"},
	{ID: "reach", Label: "Reach"},
	{ID: "impressions", Label: "Impressions"},
	{ID: "ctr", Label: "Click-Through Rate"},
	{ID: "conversion", Label: "Conversion"},
}

// Source yields floats in [0,1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource draws from the math/rand/v2 global generator.
var DefaultSource Source = globalSource{}

// Definitions returns a copy of the fixed metric definitions in display order.
func Definitions() []model.MetricDefinition {
	out := make([]model.MetricDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// Generate assigns every definition a value in [MinValue, MaxValue).
// A nil src uses DefaultSource.
func Generate(src Source) []model.Metric {
	if src == nil {
		src = DefaultSource
	}
	out := make([]model.Metric, 0, len(definitions))
	for _, d := range definitions {
		v := src.Float64()*(MaxValue-MinValue) + MinValue
		// A misbehaving source must not push a value to the upper bound.
		if v >= MaxValue || v < MinValue {
			v = MinValue
		}
		out = append(out, model.Metric{ID: d.ID, Label: d.Label, Value: v})
	}
	return out
}

// Clamp limits v to [0,100] for bar rendering.
func Clamp(v float64) float64 {
	return max(0, min(100, v))
}

// FormatPercent renders v with one decimal and a percent sign.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
