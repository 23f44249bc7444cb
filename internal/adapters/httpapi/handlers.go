package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.trai.ch/cadence/internal/core/domain"
)

// HealthMessage is returned by the liveness endpoint.
const HealthMessage = "Cadence scheduling API is running"

const timeoutBody = `{"error":"Request timed out"}`

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type rootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message: "Welcome to Cadence scheduling API",
		Version: s.version,
		Endpoints: map[string]string{
			"health":   RouteHealth,
			"schedule": RouteSchedule,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: HealthMessage})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectId")

	reader := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "Request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Request body could not be read"})
		return
	}

	// The shared computation must not be cut short when the request that
	// started it goes away while others are still waiting on it. A request that
	// times out therefore gets its 503 while the computation runs to completion;
	// maxTasks bounds how long that can take.
	ctx := context.WithoutCancel(r.Context())
	v, err, _ := s.inflight.Do(domain.RequestKey(projectID, body), func() (any, error) {
		return s.scheduler.Schedule(ctx, projectID, body)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	schedule, ok := v.(*domain.Schedule)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error while scheduling tasks"})
		return
	}

	etag := `"` + schedule.Fingerprint() + `"`
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

// writeError maps a scheduling failure to its status code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ClientMessage(err)})
	case errors.Is(err, domain.ErrCycleDetected):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: domain.ClientMessage(err)})
	default:
		s.logger.Error(err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error while scheduling tasks"})
	}
}

// etagMatches reports whether an If-None-Match header value matches etag.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// writeJSON encodes v before any header is sent, so an unencodable value turns
// into a 500 instead of an empty response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		w.Header().Del("ETag")
		buf.WriteString(`{"error":"Internal server error while scheduling tasks"}` + "\n")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
