package visibility

import (
	"maps"

	"github.com/alexanderramin/docketflow/internal/graph"
)

// ViewState is the caller-owned toggle state consulted by the resolver.
// Absent keys mean expanded / enabled. Setters return a new ViewState and
// leave the receiver untouched, so a toggle that arrives while a previous
// result is still being drawn cannot corrupt that result.
type ViewState struct {
	GroupExpanded map[string]bool
	PhaseEnabled  map[string]bool
}

// NewViewState seeds a ViewState with the static default of every group and
// phase in m.
func NewViewState(m *graph.Model) ViewState {
	s := ViewState{
		GroupExpanded: make(map[string]bool),
		PhaseEnabled:  make(map[string]bool),
	}
	for _, g := range m.Groups() {
		s.GroupExpanded[g.ID] = g.Expanded
	}
	for _, p := range m.Phases() {
		s.PhaseEnabled[p.ID] = p.Enabled
	}
	return s
}

// Clone returns a deep copy of s.
func (s ViewState) Clone() ViewState {
	c := ViewState{
		GroupExpanded: maps.Clone(s.GroupExpanded),
		PhaseEnabled:  maps.Clone(s.PhaseEnabled),
	}
	if c.GroupExpanded == nil {
		c.GroupExpanded = make(map[string]bool)
	}
	if c.PhaseEnabled == nil {
		c.PhaseEnabled = make(map[string]bool)
	}
	return c
}

// GroupIsExpanded reports the expansion state of a group. NewViewState seeds
// every known group, so only an unknown id falls through to expanded.
func (s ViewState) GroupIsExpanded(groupID string) bool {
	expanded, ok := s.GroupExpanded[groupID]
	return !ok || expanded
}

// PhaseIsEnabled reports the enable state of a phase.
func (s ViewState) PhaseIsEnabled(phaseID string) bool {
	enabled, ok := s.PhaseEnabled[phaseID]
	return !ok || enabled
}

// SetGroupExpanded returns a copy of s with the group set to expanded.
// Setting the same value twice is a no-op.
func (s ViewState) SetGroupExpanded(groupID string, expanded bool) ViewState {
	c := s.Clone()
	c.GroupExpanded[groupID] = expanded
	return c
}

// ToggleGroup returns a copy of s with the group flipped.
func (s ViewState) ToggleGroup(groupID string) ViewState {
	return s.SetGroupExpanded(groupID, !s.GroupIsExpanded(groupID))
}

// SetPhaseEnabled returns a copy of s with the phase set to enabled.
func (s ViewState) SetPhaseEnabled(phaseID string, enabled bool) ViewState {
	c := s.Clone()
	c.PhaseEnabled[phaseID] = enabled
	return c
}

// TogglePhase returns a copy of s with the phase flipped.
func (s ViewState) TogglePhase(phaseID string) ViewState {
	return s.SetPhaseEnabled(phaseID, !s.PhaseIsEnabled(phaseID))
}
