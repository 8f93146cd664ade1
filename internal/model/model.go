// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures shared by the dashboard,
// the analysis bridge and the CLI.
package model

import "fmt"

// MetricDefinition names one gauge on the dashboard.
type MetricDefinition struct {
	ID    string
	Label string
}

// Metric is a named gauge value in percent. Values are assigned once at
// startup and never recomputed.
type Metric struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// String returns the "Label: 42.0%" representation.
func (m Metric) String() string {
	return fmt.Sprintf("%s: %.1f%%", m.Label, m.Value)
}

// TimeRange is the reporting window picked in the settings tab.
type TimeRange string

const (
	TimeRangeLast30Days TimeRange = "Last 30 Days"
	TimeRangeLast7Days  TimeRange = "Last 7 Days"
	TimeRangeThisMonth  TimeRange = "This Month"
)

// TimeRanges lists the selectable ranges in display order.
var TimeRanges = []TimeRange{TimeRangeLast30Days, TimeRangeLast7Days, TimeRangeThisMonth}

// ParseTimeRange returns the matching range, or the default when s is unknown.
func ParseTimeRange(s string) TimeRange {
	for _, r := range TimeRanges {
		if string(r) == s {
			return r
		}
	}
	return TimeRangeLast30Days
}

// Next returns the range after r, wrapping around. Prev is the inverse.
func (r TimeRange) Next() TimeRange { return r.step(1) }

// Prev returns the range before r, wrapping around.
func (r TimeRange) Prev() TimeRange { return r.step(-1) }

func (r TimeRange) step(d int) TimeRange {
	n := len(TimeRanges)
	for i, tr := range TimeRanges {
		if tr == r {
			return TimeRanges[((i+d)%n+n)%n]
		}
	}
	return TimeRangeLast30Days
}
