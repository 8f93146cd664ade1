// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package analysis

import (
	"fmt"
	"strings"

	"github.com/gtpilot/gtpilot/internal/model"
)

const promptTemplate = `You are an expert social media analyst for a high-tech brand called "GT Pilot".
Your tone is professional, insightful, and cinematic, like a mission briefing.
Based on the following social media performance data, provide a concise analysis and three actionable recommendations.
Format your response clearly with "Analysis:" and "Recommendations:" sections.

Current Performance Metrics:
%s
`

// FormatMetrics renders one "- Label: 42.0%" line per metric.
func FormatMetrics(metrics []model.Metric) string {
	lines := make([]string, 0, len(metrics))
	for _, m := range metrics {
		lines = append(lines, fmt.Sprintf("- %s: %.1f%%", m.Label, m.Value))
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt embeds the metric block in the analyst briefing.
func BuildPrompt(metrics []model.Metric) string {
	return fmt.Sprintf(promptTemplate, FormatMetrics(metrics))
}
