package domain

// Span names emitted while scheduling one request.
const (
	SpanSchedule   = "schedule"
	SpanValidate   = "validate"
	SpanBuildGraph = "build-graph"
	SpanSort       = "sort"
	SpanMetrics    = "metrics"
)

// Span attribute keys.
const (
	AttrProject    = "project"
	AttrTasks      = "tasks"
	AttrEdges      = "edges"
	AttrUnresolved = "unresolved"
)
