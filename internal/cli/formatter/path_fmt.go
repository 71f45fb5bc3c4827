package formatter

import (
	"fmt"
	"strings"
)

// FormatPaths renders each path as a numbered chain of node labels.
func FormatPaths(paths [][]int, labels map[int]string, start, end int) string {
	if len(paths) == 0 {
		return Dim(fmt.Sprintf("No path from #%d to #%d.", start, end))
	}

	var b strings.Builder
	for i, p := range paths {
		steps := make([]string, 0, len(p))
		for _, id := range p {
			label, ok := labels[id]
			if !ok {
				label = "?"
			}
			steps = append(steps, fmt.Sprintf("%s %s", Dim(fmt.Sprintf("#%d", id)), label))
		}
		fmt.Fprintf(&b, "%s %s\n", StyleHeader.Render(fmt.Sprintf("%d.", i+1)),
			strings.Join(steps, Dim(" → ")))
	}
	b.WriteString(Dim(Plural(len(paths), "path", "paths")))
	return b.String()
}
