package domain

import "encoding/json"

// ScheduleMessage is the status message attached to every successful schedule.
const ScheduleMessage = "Tasks scheduled successfully"

// Schedule is the result of one scheduling request.
type Schedule struct {
	ProjectID        string
	RecommendedOrder []string
	Metrics          Metrics
	// Unresolved lists the dependency references that did not match any task.
	Unresolved []UnresolvedDependency
}

type scheduleJSON struct {
	ProjectID        string   `json:"projectId"`
	RecommendedOrder []string `json:"recommendedOrder"`
	Metrics          Metrics  `json:"metrics"`
	Message          string   `json:"message"`
}

// MarshalJSON renders the schedule in its wire shape.
// Unresolved references are diagnostics and are left out.
func (s *Schedule) MarshalJSON() ([]byte, error) {
	order := s.RecommendedOrder
	if order == nil {
		order = []string{}
	}
	return json.Marshal(scheduleJSON{
		ProjectID:        s.ProjectID,
		RecommendedOrder: order,
		Metrics:          s.Metrics,
		Message:          ScheduleMessage,
	})
}
