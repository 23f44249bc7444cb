package style_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/cadence/internal/ui/style"
)

func TestNewPalette(t *testing.T) {
	plain := lipgloss.NewRenderer(&bytes.Buffer{})
	plain.SetColorProfile(termenv.Ascii)
	p := style.NewPalette(plain)
	assert.Equal(t, "ok", p.OK.Render("ok"))
	assert.Equal(t, "fail", p.Fail.Render("fail"))

	colored := lipgloss.NewRenderer(&bytes.Buffer{}, termenv.WithTTY(true))
	colored.SetColorProfile(termenv.TrueColor)
	p = style.NewPalette(colored)
	assert.NotEqual(t, "fail", p.Fail.Render("fail"))
	assert.Contains(t, p.Fail.Render("fail"), "fail")
}
