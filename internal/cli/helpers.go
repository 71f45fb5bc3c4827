package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/docketflow/internal/cli/formatter"
	"github.com/alexanderramin/docketflow/internal/graph"
)

// parseNodeIDs accepts ids as separate arguments or comma separated lists.
func parseNodeIDs(args []string) ([]int, error) {
	var ids []int
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "#"))
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid node id %q", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseNodeID(arg string) (int, error) {
	ids, err := parseNodeIDs([]string{arg})
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("expected one node id, got %q", arg)
	}
	return ids[0], nil
}

// nodeLabels maps every node id in m to its single-line label.
func nodeLabels(m *graph.Model) map[int]string {
	labels := make(map[int]string)
	for _, n := range m.Nodes() {
		labels[n.ID] = n.Label()
	}
	return labels
}

// phaseNames maps each owned stage to its phase name.
func phaseNames(m *graph.Model) map[string]string {
	names := make(map[string]string)
	for _, p := range m.Phases() {
		for _, s := range p.Stages {
			names[s] = p.Name
		}
	}
	return names
}

func stagePalette(m *graph.Model) formatter.StagePalette {
	return formatter.NewStagePalette(m.Stages())
}
