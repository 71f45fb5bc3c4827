package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/service"
)

// FormatGroups renders each group as a tree under its parent node. Members
// of collapsed groups are dimmed.
func FormatGroups(groups []service.GroupView, labels map[int]string) string {
	if len(groups) == 0 {
		return Dim("This dataset has no groups.")
	}

	var items []TreeItem
	for _, g := range groups {
		items = append(items, TreeItem{
			Title:  fmt.Sprintf("%s %s", Bold(g.Group.ID), g.Group.Name),
			Detail: OnOff(g.Expanded, "expanded", "collapsed"),
		})
		parent := fmt.Sprintf("#%d %s", g.Group.ParentNodeID, labels[g.Group.ParentNodeID])
		items = append(items, TreeItem{Title: parent + Dim(" (parent)"), Level: 1, IsLast: len(g.Group.ChildNodeIDs) == 0})
		for i, id := range g.Group.ChildNodeIDs {
			items = append(items, TreeItem{
				Title:  fmt.Sprintf("#%d %s", id, labels[id]),
				Level:  2,
				IsLast: i == len(g.Group.ChildNodeIDs)-1,
				Hidden: !g.Expanded,
			})
		}
	}
	return strings.TrimRight(RenderTree(items), "\n")
}

// FormatPhases renders phases in order with their hotkey in the explorer.
func FormatPhases(phases []service.PhaseView, totalNodes int) string {
	if len(phases) == 0 {
		return Dim("This dataset has no phases.")
	}

	rows := make([][]string, 0, len(phases))
	for i, p := range phases {
		key := Dim("-")
		if i < 9 {
			key = strconv.Itoa(i + 1)
		}
		share := 0.0
		if totalNodes > 0 {
			share = float64(p.Nodes) / float64(totalNodes)
		}
		rows = append(rows, []string{
			key,
			p.Phase.ID,
			p.Phase.Name,
			strings.Join(p.Phase.Stages, ", "),
			OnOff(p.Enabled, "on", "off"),
			RenderShareBar(share, 8),
		})
	}
	return RenderTable([]string{"KEY", "ID", "NAME", "STAGES", "STATE", "NODES"}, rows)
}

// FormatParallel lists processes available across a range of steps.
func FormatParallel(procs []domain.ParallelProcess, labels map[int]string) string {
	var b strings.Builder
	for _, p := range procs {
		fmt.Fprintf(&b, "%s %s %s\n", StylePurple.Render("∥"), Bold(p.Name),
			Dim(fmt.Sprintf("from #%d %s to #%d %s", p.FromNodeID, labels[p.FromNodeID], p.ToNodeID, labels[p.ToNodeID])))
		if p.Description != "" {
			fmt.Fprintf(&b, "  %s\n", p.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRate renders the stored hourly rate.
func FormatRate(rate float64) string {
	if rate <= 0 {
		return Dim("No hourly rate set; estimates show hours and fixed costs only.")
	}
	return fmt.Sprintf("Hourly rate: %s", StyleYellowBold.Render(FormatMoney(rate)+"/h"))
}
