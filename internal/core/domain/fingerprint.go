package domain

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a deterministic identifier for the content of a schedule.
// Two schedules with the same project, order and metrics share a fingerprint.
func (s *Schedule) Fingerprint() string {
	d := xxhash.New()
	writeField(d, s.ProjectID)
	for _, title := range s.RecommendedOrder {
		writeField(d, title)
	}
	writeField(d, strconv.Itoa(s.Metrics.TotalTasks))
	writeField(d, strconv.FormatFloat(s.Metrics.TotalEstimatedHours, 'g', -1, 64))
	writeField(d, FormatTimestamp(s.Metrics.EarliestDueDate))
	writeField(d, FormatTimestamp(s.Metrics.LatestDueDate))
	return fmt.Sprintf("%016x", d.Sum64())
}

// RequestKey identifies a scheduling request by project and raw payload.
// The key holds the payload itself, so equal keys always mean equal requests.
// The project ID is length-prefixed to keep it apart from the payload.
func RequestKey(projectID string, payload []byte) string {
	return strconv.Itoa(len(projectID)) + ":" + projectID + string(payload)
}

// writeField writes s followed by a NUL separator so that adjacent fields cannot run together.
func writeField(d *xxhash.Digest, s string) {
	_, _ = d.WriteString(s)
	_, _ = d.Write([]byte{0})
}
