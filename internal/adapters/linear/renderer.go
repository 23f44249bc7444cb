// Package linear renders scheduling results as plain text or JSON for the command line.
package linear

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/cadence/internal/ui/output"
	"go.trai.ch/cadence/internal/ui/style"
	"go.trai.ch/zerr"
)

// Renderer implements ports.Renderer.
// In text mode it writes a numbered order followed by the metrics block; in JSON
// mode it writes the same object the HTTP API returns.
type Renderer struct {
	format string
}

// NewRenderer creates a Renderer for the given output format.
func NewRenderer(format string) (*Renderer, error) {
	switch format {
	case "", domain.OutputText:
		return &Renderer{format: domain.OutputText}, nil
	case domain.OutputJSON:
		return &Renderer{format: domain.OutputJSON}, nil
	default:
		err := zerr.Wrap(domain.ErrUnsupportedOutput, fmt.Sprintf("unknown output format %q", format))
		return nil, zerr.With(err, "output", format)
	}
}

// RenderSchedule writes the successful result for source.
func (r *Renderer) RenderSchedule(w io.Writer, source string, s *domain.Schedule) error {
	if r.format == domain.OutputJSON {
		return writeJSON(w, s)
	}

	p := style.NewPalette(output.NewRenderer(w))
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s  %s\n",
		p.Accent.Render(style.Dot), p.Title.Render(source), p.Muted.Render("project "+s.ProjectID))

	width := len(strconv.Itoa(len(s.RecommendedOrder)))
	for i, title := range s.RecommendedOrder {
		fmt.Fprintf(&sb, "  %*d. %s\n", width, i+1, title)
	}
	sb.WriteString("\n")

	rows := [][2]string{
		{"Total tasks", strconv.Itoa(s.Metrics.TotalTasks)},
		{"Total estimated hours", strconv.FormatFloat(s.Metrics.TotalEstimatedHours, 'f', -1, 64)},
		{"Earliest due date", domain.FormatTimestamp(s.Metrics.EarliestDueDate)},
		{"Latest due date", domain.FormatTimestamp(s.Metrics.LatestDueDate)},
	}
	for _, row := range rows {
		pad := strings.Repeat(" ", labelWidth-len(row[0]))
		fmt.Fprintf(&sb, "  %s%s  %s\n", p.Muted.Render(row[0]), pad, row[1])
	}

	if len(s.Unresolved) > 0 {
		sb.WriteString("\n")
		for _, u := range s.Unresolved {
			fmt.Fprintf(&sb, "  %s %s depends on unknown task %q, ignored\n",
				p.Warn.Render(style.Warning), u.Task, u.Dependency)
		}
	}

	fmt.Fprintf(&sb, "%s %s  %s\n",
		p.OK.Render(style.Check), domain.ScheduleMessage, p.Muted.Render("fingerprint "+s.Fingerprint()))

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderFailure writes the error that prevented source from being scheduled.
func (r *Renderer) RenderFailure(w io.Writer, source string, err error) error {
	if r.format == domain.OutputJSON {
		return writeJSON(w, failureJSON{Source: source, Error: domain.ClientMessage(err)})
	}

	p := style.NewPalette(output.NewRenderer(w))
	var sb strings.Builder

	msg := domain.ClientMessage(err)
	fmt.Fprintf(&sb, "%s %s  %s\n", p.Fail.Render(style.Cross), p.Title.Render(source), msg)

	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		meta := zErr.Metadata()
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "    %s %s\n", p.Muted.Render(k+":"), formatValue(meta[k]))
		}
	}

	if cause := rootCause(err); cause != nil && cause.Error() != msg {
		fmt.Fprintf(&sb, "    %s %s\n", p.Muted.Render("caused by:"), cause.Error())
	}

	_, werr := io.WriteString(w, sb.String())
	return werr
}

// labelWidth fits the longest metrics label.
const labelWidth = len("Total estimated hours")

type failureJSON struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// rootCause returns the innermost error of the chain when it is not a zerr error.
// zerr roots are sentinels whose text is already covered by the client message.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		return nil
	}
	return err
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ", ")
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
