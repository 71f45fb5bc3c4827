package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/service"
)

// NodeListData is the input to FormatNodeList. PhaseByStage maps a stage to
// the name of the phase that owns it.
type NodeListData struct {
	Nodes        []domain.Node
	PhaseByStage map[string]string
	Palette      StagePalette
}

// FormatNodeList renders nodes as a table. Decision nodes are marked "?" and
// exception nodes "!".
func FormatNodeList(d NodeListData) string {
	headers := []string{"ID", "", "NAME", "STAGE", "PHASE", "OWNER", "HOURS", "DAYS"}
	rows := make([][]string, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		phase := d.PhaseByStage[n.Stage]
		if phase == "" {
			phase = Dim("--")
		}
		rows = append(rows, []string{
			strconv.Itoa(n.ID),
			NodeMarker(n),
			n.Label(),
			d.Palette.Render(n.Stage),
			phase,
			dashIfEmpty(n.Owner),
			OptionalRange(n.AttorneyHoursMin, n.AttorneyHoursMax, FormatHours),
			OptionalRange(n.DurationDaysMin, n.DurationDaysMax, FormatDays),
		})
	}
	return RenderTable(headers, rows,
		AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight)
}

// NodeDetailData is the input to FormatNodeDetail. Labels resolves node ids
// on the detail's links.
type NodeDetailData struct {
	Detail    *service.NodeDetail
	PhaseName string
	Labels    map[int]string
	Palette   StagePalette
}

// FormatNodeDetail renders a single node with its costs, documents and links.
func FormatNodeDetail(d NodeDetailData) string {
	n := d.Detail.Node
	var b strings.Builder

	title := fmt.Sprintf("#%d %s", n.ID, n.Label())
	switch {
	case n.Exception:
		title += "  " + StyleRed.Render("exception path")
	case n.Decision:
		title += "  " + StyleYellow.Render("decision")
	}
	b.WriteString(Bold(title) + "\n")
	if !d.Detail.Visible {
		b.WriteString(Dim("hidden in the current view") + "\n")
	}
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-10s", label)), value)
	}
	field("Stage", d.Palette.Render(n.Stage))
	field("Phase", d.PhaseName)
	field("Rule", n.Rule)
	field("Owner", n.Owner)
	field("Deadline", DeadlinePill(n.Deadline))
	if n.Group != "" {
		field("Group", n.Group)
	}
	if n.ExpandsGroup != "" {
		field("Expands", n.ExpandsGroup)
	}
	if n.AttorneyHoursMin != nil || n.AttorneyHoursMax != nil {
		field("Hours", OptionalRange(n.AttorneyHoursMin, n.AttorneyHoursMax, FormatHours))
	}
	if n.DurationDaysMin != nil || n.DurationDaysMax != nil {
		field("Duration", OptionalRange(n.DurationDaysMin, n.DurationDaysMax, FormatDays))
	}
	if n.Description != "" {
		b.WriteString("\n" + n.Description + "\n")
	}

	if len(n.FixedCosts) > 0 {
		b.WriteString("\n" + Header("Fixed costs") + "\n")
		for _, c := range n.FixedCosts {
			lo, hi := c.Range()
			amount := FormatRange(lo, hi, FormatMoney)
			if !c.HasAmount() {
				amount = StyleYellow.Render("no amount")
			}
			fmt.Fprintf(&b, "  %s  %s\n", dashIfEmpty(c.Label), amount)
		}
	}

	if len(n.Documents) > 0 {
		b.WriteString("\n" + Header("Documents") + "\n")
		for _, doc := range n.Documents {
			fmt.Fprintf(&b, "  • %s\n", doc)
		}
	}

	if len(d.Detail.Incoming) > 0 {
		b.WriteString("\n" + Header("From") + "\n")
		for _, l := range d.Detail.Incoming {
			b.WriteString(formatLinkLine(l, l.Source, d.Labels, "←"))
		}
	}
	if len(d.Detail.Outgoing) > 0 {
		var total float64
		for _, l := range d.Detail.Outgoing {
			total += l.Volume
		}
		b.WriteString("\n" + Header("Next") + "\n")
		for _, l := range d.Detail.Outgoing {
			line := strings.TrimSuffix(formatLinkLine(l, l.Target, d.Labels, "→"), "\n")
			if total > 0 {
				line += "  " + RenderShareBar(l.Volume/total, 10)
			}
			b.WriteString(line + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatLinkLine(l domain.Link, other int, labels map[int]string, arrow string) string {
	name, ok := labels[other]
	if !ok {
		name = StyleRed.Render("missing node")
	}
	line := fmt.Sprintf("  %s #%d %s", arrow, other, name)
	if l.Label != "" {
		line += Dim(" (" + l.Label + ")")
	}
	if l.Exception {
		line += " " + StyleRed.Render("exception")
	}
	if l.Parallel {
		line += " " + StylePurple.Render("parallel")
	}
	return line + "\n"
}

func dashIfEmpty(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}
