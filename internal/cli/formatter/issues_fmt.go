package formatter

import (
	"fmt"
	"strings"
)

// FormatIssues renders dataset integrity problems, one per line.
func FormatIssues(dataset string, issues []error) string {
	if len(issues) == 0 {
		return StyleGreen.Render("✔ ") + fmt.Sprintf("%s: no issues found", dataset)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s: %s\n", StyleRed.Render("✖ "), dataset, Plural(len(issues), "issue", "issues"))
	for _, issue := range issues {
		fmt.Fprintf(&b, "  %s %s\n", StyleRed.Render("•"), issue)
	}
	return strings.TrimRight(b.String(), "\n")
}
