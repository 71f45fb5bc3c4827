package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/docketflow/internal/cost"
	"github.com/alexanderramin/docketflow/internal/service"
)

// FormatEstimate renders a cost estimate as a boxed summary, optionally
// followed by the per-node breakdown table.
func FormatEstimate(res *service.EstimateResult, breakdown bool) string {
	if len(res.Nodes) == 0 {
		return Dim("No nodes selected.")
	}

	e := res.Estimate
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s  %s\n", Dim(fmt.Sprintf("%-14s", label)), value)
	}
	line("Steps", strconv.Itoa(len(res.Nodes)))
	line("Attorney time", FormatRange(e.HoursMin, e.HoursMax, FormatHours))
	if res.Rate > 0 {
		line("Fees", FormatRange(e.FeesMin, e.FeesMax, FormatMoney)+Dim(" at "+FormatMoney(res.Rate)+"/h"))
	} else {
		line("Fees", Dim("no hourly rate set"))
	}
	line("Fixed costs", FormatRange(e.FixedCostsMin, e.FixedCostsMax, FormatMoney))
	line("Duration", FormatRange(e.DaysMin, e.DaysMax, FormatDays)+Dim(" (sum of steps)"))
	b.WriteString("\n")
	line("Total", StyleYellowBold.Render(FormatRange(e.TotalMin, e.TotalMax, FormatMoney)))

	out := RenderBox("Estimate", strings.TrimRight(b.String(), "\n"))
	if breakdown {
		out += "\n\n" + FormatBreakdown(res.Lines)
	}
	return out
}

// FormatBreakdown renders the per-node contributions to an estimate.
func FormatBreakdown(lines []cost.Line) string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		e := l.Estimate
		rows = append(rows, []string{
			strconv.Itoa(l.NodeID),
			l.Label,
			FormatRange(e.HoursMin, e.HoursMax, FormatHours),
			FormatRange(e.FixedCostsMin, e.FixedCostsMax, FormatMoney),
			FormatRange(e.TotalMin, e.TotalMax, FormatMoney),
		})
	}
	return RenderTable([]string{"ID", "STEP", "HOURS", "FIXED", "TOTAL"}, rows,
		AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight)
}

// FormatEstimateFooter is the one-line estimate shown under the explorer.
func FormatEstimateFooter(res *service.EstimateResult) string {
	if res == nil || len(res.Nodes) == 0 {
		return Dim("space selects steps for a cost estimate")
	}
	e := res.Estimate
	return fmt.Sprintf("%s  %s  %s  %s",
		StyleBold.Render(Plural(len(res.Nodes), "step", "steps")),
		FormatRange(e.HoursMin, e.HoursMax, FormatHours),
		FormatRange(e.DaysMin, e.DaysMax, FormatDays),
		StyleYellowBold.Render(FormatRange(e.TotalMin, e.TotalMax, FormatMoney)),
	)
}
