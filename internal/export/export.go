package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/graph"
	"github.com/alexanderramin/docketflow/internal/visibility"
)

// Options controls what an export contains.
type Options struct {
	// All exports every node and resolvable link, ignoring view state.
	All    bool
	Logger *slog.Logger
}

// Render dispatches to the renderer for format.
func Render(format domain.ExportFormat, m *graph.Model, s visibility.ViewState, opts Options) ([]byte, error) {
	switch format {
	case domain.ExportDOT:
		return []byte(DOT(m, s, opts)), nil
	case domain.ExportMermaid:
		return []byte(Mermaid(m, s, opts)), nil
	case domain.ExportJSON:
		return JSON(m, s, opts)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// snapshot is the node and link set an export draws.
type snapshot struct {
	nodes []domain.Node
	links []domain.Link
}

func take(m *graph.Model, s visibility.ViewState, opts Options) snapshot {
	if !opts.All {
		return snapshot{
			nodes: visibility.VisibleNodes(m, s),
			links: visibility.VisibleLinks(m, s, opts.Logger),
		}
	}
	// Everything visible is the same as an empty state with all groups expanded.
	all := visibility.ViewState{}
	return snapshot{
		nodes: m.Nodes(),
		links: visibility.VisibleLinks(m, all, opts.Logger),
	}
}

// byPhase splits nodes into per-phase buckets in phase order plus the nodes
// whose stage no phase owns.
func byPhase(m *graph.Model, nodes []domain.Node) (clusters [][]domain.Node, phases []domain.Phase, loose []domain.Node) {
	phases = m.Phases()
	pos := make(map[string]int, len(phases))
	for i, p := range phases {
		pos[p.ID] = i
	}
	clusters = make([][]domain.Node, len(phases))
	for _, n := range nodes {
		owner, ok := m.StageOwnerPhase(n.Stage)
		if !ok {
			loose = append(loose, n)
			continue
		}
		clusters[pos[owner]] = append(clusters[pos[owner]], n)
	}
	return clusters, phases, loose
}

// expanderMark marks nodes that toggle a group with the group's state.
func expanderMark(n domain.Node, s visibility.ViewState, all bool) string {
	if n.ExpandsGroup == "" {
		return ""
	}
	if all || s.GroupIsExpanded(n.ExpandsGroup) {
		return " [-]"
	}
	return " [+]"
}

// DOT renders a Graphviz digraph with one cluster per phase.
func DOT(m *graph.Model, s visibility.ViewState, opts Options) string {
	snap := take(m, s, opts)
	colors := stageColors(m)

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", quoteDOT(m.Name()))
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [fontname=\"Helvetica\" style=filled];\n")
	b.WriteString("  edge [fontname=\"Helvetica\" fontsize=10];\n\n")

	writeNode := func(indent string, n domain.Node) {
		shape := "box"
		if n.Decision {
			shape = "diamond"
		}
		attrs := fmt.Sprintf("label=%s shape=%s fillcolor=\"%s\"",
			quoteDOT(n.Name+expanderMark(n, s, opts.All)), shape, colors[n.Stage])
		if n.Exception {
			attrs += " color=\"" + exceptionColor + "\" penwidth=2"
		}
		fmt.Fprintf(&b, "%sn%d [%s];\n", indent, n.ID, attrs)
	}

	clusters, phases, loose := byPhase(m, snap.nodes)
	for i, p := range phases {
		if len(clusters[i]) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  subgraph cluster_%s {\n", sanitizeID(p.ID))
		fmt.Fprintf(&b, "    label=%s;\n", quoteDOT(p.Name))
		b.WriteString("    style=dashed;\n")
		b.WriteString("    color=\"#7c6f64\";\n")
		for _, n := range clusters[i] {
			writeNode("    ", n)
		}
		b.WriteString("  }\n\n")
	}
	for _, n := range loose {
		writeNode("  ", n)
	}
	if len(loose) > 0 {
		b.WriteString("\n")
	}

	for _, l := range snap.links {
		attrs := []string{fmt.Sprintf("penwidth=%s", formatWidth(l.Volume))}
		if l.Label != "" {
			attrs = append(attrs, "label="+quoteDOT(l.Label))
		}
		if l.Exception {
			attrs = append(attrs, "color=\""+exceptionColor+"\"")
		}
		if l.Parallel {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&b, "  n%d -> n%d [%s];\n", l.Source, l.Target, strings.Join(attrs, " "))
	}

	b.WriteString("}\n")
	return b.String()
}

// Mermaid renders a flowchart with one subgraph per phase.
func Mermaid(m *graph.Model, s visibility.ViewState, opts Options) string {
	snap := take(m, s, opts)

	var b strings.Builder
	b.WriteString("flowchart LR\n")

	var exceptions []string
	writeNode := func(indent string, n domain.Node) {
		label := mermaidLabel(n.Name + expanderMark(n, s, opts.All))
		if n.Decision {
			fmt.Fprintf(&b, "%sn%d{%s}\n", indent, n.ID, label)
		} else {
			fmt.Fprintf(&b, "%sn%d[%s]\n", indent, n.ID, label)
		}
		if n.Exception {
			exceptions = append(exceptions, fmt.Sprintf("n%d", n.ID))
		}
	}

	clusters, phases, loose := byPhase(m, snap.nodes)
	for i, p := range phases {
		if len(clusters[i]) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  subgraph phase_%s[%s]\n", sanitizeID(p.ID), mermaidLabel(p.Name))
		for _, n := range clusters[i] {
			writeNode("    ", n)
		}
		b.WriteString("  end\n")
	}
	for _, n := range loose {
		writeNode("  ", n)
	}

	for _, l := range snap.links {
		arrow := "-->"
		switch {
		case l.Exception:
			arrow = "==>"
		case l.Parallel:
			arrow = "-.->"
		}
		label := ""
		if l.Label != "" {
			label = "|" + mermaidLabel(l.Label) + "|"
		}
		fmt.Fprintf(&b, "  n%d %s%s n%d\n", l.Source, arrow, label, l.Target)
	}

	if len(exceptions) > 0 {
		fmt.Fprintf(&b, "  classDef exception stroke:%s,stroke-width:2px\n", exceptionColor)
		fmt.Fprintf(&b, "  class %s exception\n", strings.Join(exceptions, ","))
	}
	return b.String()
}

// Document is the JSON export payload.
type Document struct {
	Name   string        `json:"name"`
	Nodes  []NodeJSON    `json:"nodes"`
	Links  []LinkJSON    `json:"links"`
	Groups []GroupJSON   `json:"groups"`
	Phases []PhaseJSON   `json:"phases"`
	Stats  DocumentStats `json:"stats"`
}

type NodeJSON struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Stage     string   `json:"stage"`
	Rule      string   `json:"rule,omitempty"`
	Owner     string   `json:"owner,omitempty"`
	Decision  bool     `json:"decision,omitempty"`
	Exception bool     `json:"exception,omitempty"`
	Group     string   `json:"group,omitempty"`
	Deadline  string   `json:"deadline,omitempty"`
	Documents []string `json:"documents,omitempty"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
}

type LinkJSON struct {
	Source    int     `json:"source"`
	Target    int     `json:"target"`
	Volume    float64 `json:"volume"`
	Label     string  `json:"label,omitempty"`
	Exception bool    `json:"exception,omitempty"`
	Parallel  bool    `json:"parallel,omitempty"`
}

type GroupJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Expanded bool   `json:"expanded"`
}

type PhaseJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type DocumentStats struct {
	Nodes  int `json:"nodes"`
	Links  int `json:"links"`
	Hidden int `json:"hidden"`
}

// BuildDocument assembles the JSON export payload.
func BuildDocument(m *graph.Model, s visibility.ViewState, opts Options) Document {
	snap := take(m, s, opts)
	doc := Document{
		Name:   m.Name(),
		Nodes:  make([]NodeJSON, 0, len(snap.nodes)),
		Links:  make([]LinkJSON, 0, len(snap.links)),
		Groups: make([]GroupJSON, 0),
		Phases: make([]PhaseJSON, 0),
	}
	for _, n := range snap.nodes {
		doc.Nodes = append(doc.Nodes, NodeJSON{
			ID:        n.ID,
			Name:      n.Name,
			Stage:     n.Stage,
			Rule:      n.Rule,
			Owner:     n.Owner,
			Decision:  n.Decision,
			Exception: n.Exception,
			Group:     n.Group,
			Deadline:  string(n.Deadline),
			Documents: n.Documents,
			X:         n.Position.X,
			Y:         n.Position.Y,
		})
	}
	for _, l := range snap.links {
		doc.Links = append(doc.Links, LinkJSON(l))
	}
	for _, g := range m.Groups() {
		doc.Groups = append(doc.Groups, GroupJSON{ID: g.ID, Name: g.Name, Expanded: opts.All || s.GroupIsExpanded(g.ID)})
	}
	for _, p := range m.Phases() {
		doc.Phases = append(doc.Phases, PhaseJSON{ID: p.ID, Name: p.Name, Enabled: opts.All || s.PhaseIsEnabled(p.ID)})
	}
	doc.Stats = DocumentStats{
		Nodes:  len(doc.Nodes),
		Links:  len(doc.Links),
		Hidden: len(m.Nodes()) - len(doc.Nodes),
	}
	return doc
}

// JSON renders the export payload as indented JSON.
func JSON(m *graph.Model, s visibility.ViewState, opts Options) ([]byte, error) {
	data, err := json.MarshalIndent(BuildDocument(m, s, opts), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
