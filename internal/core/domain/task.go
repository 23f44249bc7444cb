package domain

import "time"

// Task represents a unit of work submitted for ordering.
// Within one scheduling request the Title is the task's identity and the join key
// for dependency resolution.
type Task struct {
	Title          string
	EstimatedHours float64
	DueDate        time.Time
	Dependencies   []string
}

// UnresolvedDependency records a dependency that names a title outside the request.
type UnresolvedDependency struct {
	Task       string `json:"task"`
	Dependency string `json:"dependency"`
}
