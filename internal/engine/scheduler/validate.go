package scheduler

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/zerr"
)

// Validator turns a raw scheduling request into tasks.
// Checks run in order and the first violation is returned.
type Validator struct {
	maxTasks int
	strict   bool
}

// NewValidator creates a Validator. A maxTasks of zero disables the size limit.
func NewValidator(maxTasks int, strictDependencies bool) *Validator {
	return &Validator{maxTasks: maxTasks, strict: strictDependencies}
}

// Validate checks payload and returns its tasks in input order.
func (v *Validator) Validate(payload []byte) ([]domain.Task, error) {
	if !gjson.ValidBytes(payload) {
		return nil, zerr.Wrap(domain.ErrMalformedPayload, "Request body must be valid JSON")
	}

	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return nil, zerr.Wrap(domain.ErrMalformedPayload, "Request body must be a JSON object")
	}

	raw := root.Get("tasks")
	if !raw.Exists() || raw.Type == gjson.Null {
		return nil, zerr.Wrap(domain.ErrMissingTasks, "Missing tasks in request body")
	}
	if !raw.IsArray() {
		return nil, zerr.Wrap(domain.ErrTasksNotArray, "Tasks must be an array")
	}

	items := raw.Array()
	if len(items) == 0 {
		return nil, zerr.Wrap(domain.ErrNoTasks, "At least one task required")
	}
	if v.maxTasks > 0 && len(items) > v.maxTasks {
		err := zerr.Wrap(domain.ErrTooManyTasks,
			fmt.Sprintf("Too many tasks: %d exceeds the limit of %d", len(items), v.maxTasks))
		return nil, zerr.With(err, "limit", v.maxTasks)
	}

	tasks := make([]domain.Task, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	var totalHours float64
	for i, item := range items {
		task, err := parseTask(item)
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}
		// The total is reported in the metrics and must stay finite.
		totalHours += task.EstimatedHours
		if math.IsInf(totalHours, 0) {
			err := zerr.Wrap(domain.ErrInvalidEstimatedHours, "Total estimatedHours is too large")
			return nil, zerr.With(err, "task", task.Title)
		}
		if _, dup := seen[task.Title]; dup {
			err := zerr.Wrap(domain.ErrDuplicateTitle, fmt.Sprintf("Duplicate task title %q", task.Title))
			return nil, zerr.With(err, "task", task.Title)
		}
		seen[task.Title] = struct{}{}
		tasks = append(tasks, task)
	}

	if v.strict {
		if err := checkDependencies(tasks, seen); err != nil {
			return nil, err
		}
	}

	return tasks, nil
}

func parseTask(item gjson.Result) (domain.Task, error) {
	title := item.Get("title")
	if !item.IsObject() || title.Type != gjson.String || title.Str == "" {
		return domain.Task{}, zerr.Wrap(domain.ErrInvalidTitle, "Each task must have a valid title")
	}
	task := domain.Task{Title: title.Str}

	hours := item.Get("estimatedHours")
	if hours.Type != gjson.Number || math.IsInf(hours.Num, 0) || hours.Num <= 0 {
		err := zerr.Wrap(domain.ErrInvalidEstimatedHours,
			fmt.Sprintf("Task %q must have a valid estimatedHours (positive number)", task.Title))
		return domain.Task{}, zerr.With(err, "task", task.Title)
	}
	task.EstimatedHours = hours.Num

	due := item.Get("dueDate")
	var ok bool
	if due.Type == gjson.String {
		task.DueDate, ok = domain.ParseDueDate(due.Str)
	}
	if !ok {
		err := zerr.Wrap(domain.ErrInvalidDueDate, fmt.Sprintf("Task %q must have a valid dueDate", task.Title))
		return domain.Task{}, zerr.With(err, "task", task.Title)
	}

	deps := item.Get("dependencies")
	if !deps.Exists() || deps.Type == gjson.Null {
		return task, nil
	}
	if !deps.IsArray() {
		err := zerr.Wrap(domain.ErrInvalidDependencies, fmt.Sprintf("Task %q dependencies must be an array", task.Title))
		return domain.Task{}, zerr.With(err, "task", task.Title)
	}
	for _, dep := range deps.Array() {
		if dep.Type != gjson.String {
			err := zerr.Wrap(domain.ErrInvalidDependencies,
				fmt.Sprintf("Task %q dependencies must be an array of task titles", task.Title))
			return domain.Task{}, zerr.With(err, "task", task.Title)
		}
		task.Dependencies = append(task.Dependencies, dep.Str)
	}

	return task, nil
}

func checkDependencies(tasks []domain.Task, titles map[string]struct{}) error {
	for _, task := range tasks {
		for _, dep := range task.Dependencies {
			if _, ok := titles[dep]; ok {
				continue
			}
			err := zerr.Wrap(domain.ErrUnknownDependency,
				fmt.Sprintf("Task %q depends on unknown task %q", task.Title, dep))
			err = zerr.With(err, "task", task.Title)
			return zerr.With(err, "dependency", dep)
		}
	}
	return nil
}
