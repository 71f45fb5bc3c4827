package visibility

import (
	"log/slog"

	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/graph"
)

// IsVisible decides whether a node is currently displayed:
//  1. a member of a collapsed group is hidden;
//  2. a node whose stage no phase owns is shown;
//  3. a node whose owning phase is disabled is hidden;
//  4. everything else is shown.
func IsVisible(m *graph.Model, n domain.Node, s ViewState) bool {
	if n.Group != "" && !s.GroupIsExpanded(n.Group) {
		return false
	}
	phaseID, owned := m.StageOwnerPhase(n.Stage)
	if !owned {
		return true
	}
	return s.PhaseIsEnabled(phaseID)
}

// IsLinkVisible reports whether both endpoints of l resolve and are visible.
func IsLinkVisible(m *graph.Model, l domain.Link, s ViewState) bool {
	src, err := m.Node(l.Source)
	if err != nil {
		return false
	}
	dst, err := m.Node(l.Target)
	if err != nil {
		return false
	}
	return IsVisible(m, src, s) && IsVisible(m, dst, s)
}

// VisibleNodes returns the visible nodes in dataset order.
func VisibleNodes(m *graph.Model, s ViewState) []domain.Node {
	var out []domain.Node
	for _, n := range m.Nodes() {
		if IsVisible(m, n, s) {
			out = append(out, n)
		}
	}
	return out
}

// VisibleLinks returns the links whose endpoints are both visible. Links
// with an endpoint missing from the model are logged and skipped.
func VisibleLinks(m *graph.Model, s ViewState, logger *slog.Logger) []domain.Link {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var out []domain.Link
	for _, l := range m.Links() {
		if !m.HasNode(l.Source) || !m.HasNode(l.Target) {
			logger.Warn("skipping link with unknown endpoint",
				"source", l.Source,
				"target", l.Target,
			)
			continue
		}
		if IsLinkVisible(m, l, s) {
			out = append(out, l)
		}
	}
	return out
}

// HiddenCount returns how many nodes the current state hides.
func HiddenCount(m *graph.Model, s ViewState) int {
	return len(m.Nodes()) - len(VisibleNodes(m, s))
}
