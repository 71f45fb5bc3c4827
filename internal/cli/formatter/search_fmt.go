package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/docketflow/internal/service"
)

// FormatSearchHits renders search results with the fields each hit matched.
func FormatSearchHits(query string, hits []service.SearchHit, palette StagePalette) string {
	if len(hits) == 0 {
		return Dim(fmt.Sprintf("No nodes match %q.", strings.TrimSpace(query)))
	}

	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		name := h.Node.Label()
		if !h.Visible {
			name += " " + Dim("(hidden)")
		}
		rows = append(rows, []string{
			strconv.Itoa(h.Node.ID),
			name,
			palette.Render(h.Node.Stage),
			StylePurple.Render(strings.Join(h.Fields, ", ")),
		})
	}
	return RenderTable([]string{"ID", "NAME", "STAGE", "MATCHED"}, rows, AlignRight) +
		Dim(Plural(len(hits), "match", "matches"))
}
