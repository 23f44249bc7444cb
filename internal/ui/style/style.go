// Package style holds the colors, icons and text styles shared by the log handler
// and the schedule renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Indigo = lipgloss.Color("#6366F1")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
)

// Palette is the set of text styles used for schedule output.
type Palette struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
	OK     lipgloss.Style
	Warn   lipgloss.Style
	Fail   lipgloss.Style
}

// NewPalette builds the palette on r so colors follow r's profile.
func NewPalette(r *lipgloss.Renderer) Palette {
	return Palette{
		Title:  r.NewStyle().Bold(true),
		Muted:  r.NewStyle().Foreground(Slate),
		Accent: r.NewStyle().Foreground(Indigo),
		OK:     r.NewStyle().Foreground(Green),
		Warn:   r.NewStyle().Foreground(Yellow),
		Fail:   r.NewStyle().Foreground(Red),
	}
}
