package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/docketflow/internal/cli/formatter"
	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/graph"
)

// docketHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func docketHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// pickOptions lists the visible nodes, then every preset id the view hides
// marked as hidden. Preset ids the model does not know come back as unshown;
// the form cannot offer them, so callers add them back after it runs.
func pickOptions(visible []domain.Node, m *graph.Model, preset []int) (options []huh.Option[int], unshown []int) {
	options = make([]huh.Option[int], 0, len(visible))
	shown := make(map[int]bool, len(visible))
	for _, n := range visible {
		options = append(options, huh.NewOption(fmt.Sprintf("#%-3d %s", n.ID, n.Label()), n.ID))
		shown[n.ID] = true
	}
	for _, id := range preset {
		if shown[id] {
			continue
		}
		shown[id] = true
		n, err := m.Node(id)
		if err != nil {
			unshown = append(unshown, id)
			continue
		}
		options = append(options, huh.NewOption(fmt.Sprintf("#%-3d %s (hidden)", n.ID, n.Label()), n.ID))
	}
	return options, unshown
}

// pickNodesForm builds a multi-select writing the chosen ids to result. Ids
// already in result start selected.
func pickNodesForm(options []huh.Option[int], result *[]int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Which steps?").
				Description("space toggles, enter confirms").
				Options(options...).
				Height(min(len(options)+2, 16)).
				Value(result),
		),
	).WithTheme(docketHuhTheme()).WithShowHelp(false)
}
