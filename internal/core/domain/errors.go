package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrValidationFailed is the root of every error caused by a malformed scheduling request.
	// Callers classify client errors with errors.Is(err, ErrValidationFailed).
	ErrValidationFailed = zerr.New("validation failed")

	// ErrMalformedPayload is returned when the request body is not valid JSON.
	ErrMalformedPayload = zerr.Wrap(ErrValidationFailed, "request body must be valid JSON")

	// ErrMissingTasks is returned when the request has no tasks field.
	ErrMissingTasks = zerr.Wrap(ErrValidationFailed, "missing tasks")

	// ErrTasksNotArray is returned when the tasks field is not a sequence.
	ErrTasksNotArray = zerr.Wrap(ErrValidationFailed, "tasks must be an array")

	// ErrNoTasks is returned when the tasks sequence is empty.
	ErrNoTasks = zerr.Wrap(ErrValidationFailed, "at least one task required")

	// ErrTooManyTasks is returned when the request exceeds the configured task limit.
	ErrTooManyTasks = zerr.Wrap(ErrValidationFailed, "too many tasks")

	// ErrInvalidTitle is returned when a task has a missing, empty or non-string title.
	ErrInvalidTitle = zerr.Wrap(ErrValidationFailed, "invalid title")

	// ErrInvalidEstimatedHours is returned when estimatedHours is not a positive number.
	ErrInvalidEstimatedHours = zerr.Wrap(ErrValidationFailed, "invalid estimatedHours")

	// ErrInvalidDueDate is returned when dueDate is missing or cannot be parsed.
	ErrInvalidDueDate = zerr.Wrap(ErrValidationFailed, "invalid dueDate")

	// ErrInvalidDependencies is returned when dependencies is not a sequence of strings.
	ErrInvalidDependencies = zerr.Wrap(ErrValidationFailed, "invalid dependencies")

	// ErrDuplicateTitle is returned when two tasks in one request share a title.
	ErrDuplicateTitle = zerr.Wrap(ErrValidationFailed, "duplicate title")

	// ErrUnknownDependency is returned in strict mode when a dependency names a title
	// that is not part of the request.
	ErrUnknownDependency = zerr.Wrap(ErrValidationFailed, "unknown dependency")

	// ErrCycleDetected is returned when the dependency graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file contains invalid values.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrEnvLoadFailed is returned when a present .env file cannot be loaded.
	ErrEnvLoadFailed = zerr.New("failed to load .env file")

	// ErrPayloadReadFailed is returned when a task file cannot be read.
	ErrPayloadReadFailed = zerr.New("failed to read task file")

	// ErrPayloadParseFailed is returned when a YAML or HCL task file cannot be parsed.
	ErrPayloadParseFailed = zerr.New("failed to parse task file")

	// ErrUnsupportedFormat is returned for task files with an unknown extension.
	ErrUnsupportedFormat = zerr.New("unsupported task file format, expected .json, .yaml, .yml or .hcl")

	// ErrUnsupportedOutput is returned for an unknown --output value.
	ErrUnsupportedOutput = zerr.New("unsupported output format, expected text or json")

	// ErrNoInputFiles is returned when the schedule command is given no task files.
	ErrNoInputFiles = zerr.New("no task files specified")

	// ErrScheduleFailed is returned when one or more task files could not be scheduled.
	ErrScheduleFailed = zerr.New("scheduling failed")

	// ErrServerFailed is returned when the HTTP server stops with an error.
	ErrServerFailed = zerr.New("http server failed")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch task files")
)

// messager describes an error that reports its own message without the cause chain.
type messager interface {
	Message() string
}

// ClientMessage returns the message a caller should see for err.
// For zerr errors this is the outermost message, which carries the specific
// reason; other errors fall back to Error().
func ClientMessage(err error) string {
	if err == nil {
		return ""
	}
	var m messager
	if errors.As(err, &m) && m.Message() != "" {
		return m.Message()
	}
	return err.Error()
}

// IsValidation reports whether err was caused by a malformed request.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
