package export

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/docketflow/internal/graph"
)

const exceptionColor = "#cc241d"

// stagePalette is cycled over the model's sorted stages.
var stagePalette = []string{
	"#83a598", "#b8bb26", "#fabd2f", "#d3869b",
	"#8ec07c", "#fe8019", "#bdae93", "#458588",
	"#98971a", "#d79921", "#b16286", "#689d6a",
}

func stageColors(m *graph.Model) map[string]string {
	colors := make(map[string]string)
	for i, stage := range m.Stages() {
		colors[stage] = stagePalette[i%len(stagePalette)]
	}
	return colors
}

func quoteDOT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

func mermaidLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	s = strings.ReplaceAll(s, "\n", "<br/>")
	return `"` + s + `"`
}

// formatWidth maps link volume onto a pen width between 1 and 5.
func formatWidth(volume float64) string {
	w := 1 + volume/25
	if w > 5 {
		w = 5
	}
	if w < 1 {
		w = 1
	}
	return strconv.FormatFloat(w, 'f', 1, 64)
}

func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, s)
}
