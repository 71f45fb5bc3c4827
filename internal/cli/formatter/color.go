package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// stagePalette is cycled over stages in first-seen order, so the same dataset
// always colors a stage the same way.
var stagePalette = []lipgloss.Color{
	"#83a598", "#b8bb26", "#fabd2f", "#d3869b",
	"#8ec07c", "#fe8019", "#bdae93", "#458588",
}

// StagePalette assigns a color to each stage.
type StagePalette map[string]lipgloss.Color

// NewStagePalette colors stages in the given order.
func NewStagePalette(stages []string) StagePalette {
	p := make(StagePalette, len(stages))
	for _, s := range stages {
		if _, ok := p[s]; !ok {
			p[s] = stagePalette[len(p)%len(stagePalette)]
		}
	}
	return p
}

// Render draws stage in its color, or dimmed when the stage is unknown.
func (p StagePalette) Render(stage string) string {
	c, ok := p[stage]
	if !ok {
		return StyleDim.Render(stage)
	}
	return lipgloss.NewStyle().Foreground(c).Render(stage)
}

// DeadlinePill returns a colored deadline indicator.
func DeadlinePill(kind domain.DeadlineKind) string {
	switch kind {
	case domain.DeadlineStrict:
		return StyleRed.Render("● strict")
	case domain.DeadlineCourtSet:
		return StyleYellow.Render("◆ court-set")
	case domain.DeadlineFlexible:
		return StyleGreen.Render("○ flexible")
	default:
		return StyleDim.Render(string(kind))
	}
}

// NodeMarker flags decision and exception nodes.
func NodeMarker(n domain.Node) string {
	switch {
	case n.Exception:
		return StyleRed.Render("!")
	case n.Decision:
		return StyleYellow.Render("?")
	default:
		return " "
	}
}

// OnOff renders a toggle state.
func OnOff(on bool, onText, offText string) string {
	if on {
		return StyleGreen.Render("● " + onText)
	}
	return StyleDim.Render("○ " + offText)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
