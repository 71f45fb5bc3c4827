package visibility_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/testutil"
	"github.com/alexanderramin/docketflow/internal/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visibleIDs(nodes []domain.Node) []int {
	ids := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestIsVisible_Totality(t *testing.T) {
	m := testutil.NewSampleModel(t)
	member, err := m.Node(5) // discovery group, discovery phase
	require.NoError(t, err)

	for _, expanded := range []bool{true, false} {
		for _, enabled := range []bool{true, false} {
			s := visibility.NewViewState(m).
				SetGroupExpanded("discovery", expanded).
				SetPhaseEnabled("discovery", enabled)

			got := visibility.IsVisible(m, member, s)
			assert.Equal(t, expanded && enabled, got, "expanded=%v enabled=%v", expanded, enabled)
		}
	}
}

func TestIsVisible_CollapsedGroupWinsOverEnabledPhase(t *testing.T) {
	m := testutil.NewSampleModel(t)
	s := visibility.NewViewState(m).
		SetGroupExpanded("discovery", false).
		SetPhaseEnabled("discovery", true)

	members, err := m.NodesInGroup("discovery")
	require.NoError(t, err)
	for _, n := range members {
		assert.False(t, visibility.IsVisible(m, n, s), "node %d in collapsed group must be hidden", n.ID)
	}
}

func TestIsVisible_UnmappedStageIgnoresPhases(t *testing.T) {
	m := testutil.NewSampleModel(t)
	s := visibility.NewViewState(m)
	for _, p := range m.Phases() {
		s = s.SetPhaseEnabled(p.ID, false)
	}

	settlement, err := m.Node(7)
	require.NoError(t, err)
	assert.True(t, visibility.IsVisible(m, settlement, s), "unmapped stage stays visible with every phase off")

	answer, err := m.Node(2)
	require.NoError(t, err)
	assert.False(t, visibility.IsVisible(m, answer, s))
}

func TestIsVisible_AbsentKeysDefaultToShown(t *testing.T) {
	m := testutil.NewSampleModel(t)
	empty := visibility.ViewState{}

	for _, n := range m.Nodes() {
		assert.True(t, visibility.IsVisible(m, n, empty), "node %d", n.ID)
	}
}

func TestNewViewState_SeedsStaticDefaults(t *testing.T) {
	m := testutil.NewSampleModel(t)
	s := visibility.NewViewState(m)

	require.Contains(t, s.GroupExpanded, "discovery")
	assert.False(t, s.GroupExpanded["discovery"])
	for _, p := range m.Phases() {
		require.Contains(t, s.PhaseEnabled, p.ID)
		assert.True(t, s.PhaseEnabled[p.ID])
	}
}

func TestVisibleNodes_DefaultState(t *testing.T) {
	m := testutil.NewSampleModel(t)
	s := visibility.NewViewState(m)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 7, 8, 9}, visibleIDs(visibility.VisibleNodes(m, s)))
	assert.Equal(t, 2, visibility.HiddenCount(m, s))
}

func TestIsLinkVisible_HiddenEndpoint(t *testing.T) {
	m := testutil.NewSampleModel(t)
	link := domain.Link{Source: 4, Target: 5}

	expanded := visibility.NewViewState(m).SetGroupExpanded("discovery", true)
	assert.True(t, visibility.IsLinkVisible(m, link, expanded))

	collapsed := expanded.SetGroupExpanded("discovery", false)
	assert.False(t, visibility.IsLinkVisible(m, link, collapsed))
}

func TestIsLinkVisible_DanglingEndpoint(t *testing.T) {
	m := testutil.NewSampleModel(t)
	s := visibility.NewViewState(m)

	assert.False(t, visibility.IsLinkVisible(m, domain.Link{Source: 0, Target: 999}, s))
}

func TestVisibleLinks_OnlyBetweenVisibleNodes(t *testing.T) {
	m := testutil.NewSampleModel(t)
	s := visibility.NewViewState(m)

	links := visibility.VisibleLinks(m, s, nil)
	for _, l := range links {
		assert.NotContains(t, []int{5, 6}, l.Source)
		assert.NotContains(t, []int{5, 6}, l.Target)
	}
	assert.Len(t, links, 6)
}

func TestVisibleLinks_LogsAndSkipsDangling(t *testing.T) {
	d := testutil.SampleData()
	d.Links = append(d.Links, domain.Link{Source: 0, Target: 999})
	m := testutil.NewTestModel(t, d)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	links := visibility.VisibleLinks(m, visibility.NewViewState(m), logger)
	assert.Len(t, links, 6)
	assert.Contains(t, buf.String(), "skipping link with unknown endpoint")
	assert.Contains(t, buf.String(), "target=999")
}

func TestViewState_SettersDoNotMutateReceiver(t *testing.T) {
	m := testutil.NewSampleModel(t)
	original := visibility.NewViewState(m)

	toggled := original.ToggleGroup("discovery").TogglePhase("trial")

	assert.False(t, original.GroupExpanded["discovery"])
	assert.True(t, original.PhaseEnabled["trial"])
	assert.True(t, toggled.GroupExpanded["discovery"])
	assert.False(t, toggled.PhaseEnabled["trial"])
}

func TestViewState_SetIsIdempotent(t *testing.T) {
	m := testutil.NewSampleModel(t)
	s := visibility.NewViewState(m)

	once := s.SetGroupExpanded("discovery", true)
	twice := once.SetGroupExpanded("discovery", true)
	assert.Equal(t, once, twice)

	assert.Equal(t, s, s.TogglePhase("motions").TogglePhase("motions"))
}

func TestIsVisible_Idempotent(t *testing.T) {
	m := testutil.NewSampleModel(t)
	s := visibility.NewViewState(m).TogglePhase("trial")

	for _, n := range m.Nodes() {
		first := visibility.IsVisible(m, n, s)
		second := visibility.IsVisible(m, n, s)
		assert.Equal(t, first, second)
	}
}
