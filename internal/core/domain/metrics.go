package domain

import (
	"encoding/json"
	"iter"
	"time"
)

// Metrics summarises the accepted task set of one scheduling request.
type Metrics struct {
	TotalTasks          int
	TotalEstimatedHours float64
	EarliestDueDate     time.Time
	LatestDueDate       time.Time
}

// ComputeMetrics folds tasks into Metrics. tasks must yield at least one task.
func ComputeMetrics(tasks iter.Seq[Task]) Metrics {
	var m Metrics
	for t := range tasks {
		if m.TotalTasks == 0 || t.DueDate.Before(m.EarliestDueDate) {
			m.EarliestDueDate = t.DueDate
		}
		if m.TotalTasks == 0 || t.DueDate.After(m.LatestDueDate) {
			m.LatestDueDate = t.DueDate
		}
		m.TotalTasks++
		m.TotalEstimatedHours += t.EstimatedHours
	}
	return m
}

type metricsJSON struct {
	TotalTasks          int     `json:"totalTasks"`
	TotalEstimatedHours float64 `json:"totalEstimatedHours"`
	EarliestDueDate     string  `json:"earliestDueDate"`
	LatestDueDate       string  `json:"latestDueDate"`
}

// MarshalJSON renders the due dates in TimestampLayout.
func (m Metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(metricsJSON{
		TotalTasks:          m.TotalTasks,
		TotalEstimatedHours: m.TotalEstimatedHours,
		EarliestDueDate:     FormatTimestamp(m.EarliestDueDate),
		LatestDueDate:       FormatTimestamp(m.LatestDueDate),
	})
}
