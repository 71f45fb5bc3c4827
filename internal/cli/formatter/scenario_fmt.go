package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/service"
)

// FormatScenarioList renders saved scenarios as a table.
func FormatScenarioList(scenarios []*domain.Scenario, now time.Time) string {
	rows := make([][]string, 0, len(scenarios))
	for _, s := range scenarios {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.Name,
			s.Dataset,
			strconv.Itoa(len(s.NodeIDs)),
			FormatMoney(s.HourlyRate) + "/h",
			HumanDate(s.CreatedAt.Local(), now),
		})
	}
	return RenderTable([]string{"ID", "NAME", "DATASET", "STEPS", "RATE", "SAVED"}, rows,
		AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight)
}

// FormatScenarioDetail renders a saved scenario with its estimate.
func FormatScenarioDetail(d *service.ScenarioDetail, currentDataset string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(d.Scenario.Name), Dim("("+d.Scenario.Dataset+")"))
	if d.Scenario.Dataset != currentDataset {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("saved against %q, priced against %q", d.Scenario.Dataset, currentDataset)) + "\n")
	}
	if len(d.Missing) > 0 {
		ids := make([]string, 0, len(d.Missing))
		for _, id := range d.Missing {
			ids = append(ids, "#"+strconv.Itoa(id))
		}
		b.WriteString(StyleYellow.Render("skipped steps no longer in the dataset: "+strings.Join(ids, ", ")) + "\n")
	}
	b.WriteString("\n" + FormatEstimate(d.Result, true))
	return b.String()
}
