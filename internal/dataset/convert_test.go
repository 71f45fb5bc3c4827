package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/graph"
)

func TestBuild_Minimal(t *testing.T) {
	m, err := Build(validMinimalSchema())
	require.NoError(t, err)

	assert.Equal(t, "Test Workflow", m.Name())
	assert.Len(t, m.Nodes(), 2)
	assert.Len(t, m.Links(), 1)

	n, err := m.Node(0)
	require.NoError(t, err)
	assert.Equal(t, "Complaint", n.Name)
	assert.Equal(t, domain.DeadlineFlexible, n.Deadline, "deadline defaults to flexible")
}

func TestBuildStrict_RefusesInvalidDataset(t *testing.T) {
	s := validMinimalSchema()
	s.Links = append(s.Links, LinkDef{Source: 1, Target: 42})

	_, err := Build(s)
	require.NoError(t, err, "Build leaves dangling links to the caller")

	_, err = BuildStrict(s)
	require.ErrorIs(t, err, ErrInvalidDataset)
	assert.Contains(t, err.Error(), "links[1].target: unknown node id 42")

	m, err := BuildStrict(validGroupedSchema())
	require.NoError(t, err)
	assert.Len(t, m.Nodes(), 4)
}

func TestBuild_Defaults(t *testing.T) {
	s := validGroupedSchema()
	m, err := Build(s)
	require.NoError(t, err)

	g, err := m.Group("disc")
	require.NoError(t, err)
	assert.False(t, g.Expanded, "groups start collapsed unless expanded is set")
	assert.Equal(t, []int{3}, g.ChildNodeIDs)

	p, err := m.Phase("discovery")
	require.NoError(t, err)
	assert.True(t, p.Enabled, "phases start enabled unless enabled is set")

	s.Groups[0].Expanded = ptrBool(true)
	s.Phases[1].Enabled = ptrBool(false)
	m, err = Build(s)
	require.NoError(t, err)
	g, _ = m.Group("disc")
	p, _ = m.Phase("discovery")
	assert.True(t, g.Expanded)
	assert.False(t, p.Enabled)
}

func TestBuild_NodeFields(t *testing.T) {
	s := validMinimalSchema()
	s.Nodes[0] = NodeDef{
		ID:               0,
		Name:             "Complaint\nFiled",
		Stage:            "filing",
		Rule:             "FRCP 3",
		Owner:            "Plaintiff",
		Deadline:         "strict",
		AttorneyHoursMin: ptrFloat(4),
		AttorneyHoursMax: ptrFloat(8),
		FixedCosts:       []FixedCostDef{{Label: "Filing fee", Amount: ptrFloat(405)}},
		Documents:        []string{"Complaint"},
		X:                10,
		Y:                20,
	}

	m, err := Build(s)
	require.NoError(t, err)
	n, err := m.Node(0)
	require.NoError(t, err)

	assert.Equal(t, "FRCP 3", n.Rule)
	assert.Equal(t, domain.DeadlineStrict, n.Deadline)
	require.NotNil(t, n.AttorneyHoursMax)
	assert.Equal(t, 8.0, *n.AttorneyHoursMax)
	assert.Nil(t, n.DurationDaysMin)
	require.Len(t, n.FixedCosts, 1)
	lo, hi := n.FixedCosts[0].Range()
	assert.Equal(t, 405.0, lo)
	assert.Equal(t, 405.0, hi)
	assert.Equal(t, domain.Position{X: 10, Y: 20}, n.Position)
}

func TestBuild_ExpandsGroupImpliesExpandable(t *testing.T) {
	s := validGroupedSchema()
	s.Nodes[2].Expandable = false
	m, err := Build(s)
	require.NoError(t, err)
	n, err := m.Node(2)
	require.NoError(t, err)
	assert.True(t, n.Expandable)
}

func TestBuild_StageConflict(t *testing.T) {
	s := validGroupedSchema()
	s.Phases[1].Stages = append(s.Phases[1].Stages, "filing")
	_, err := Build(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrStageConflict))
}

func TestBuild_ToleratesDanglingLinks(t *testing.T) {
	s := validMinimalSchema()
	s.Links = append(s.Links, LinkDef{Source: 1, Target: 9})
	m, err := Build(s)
	require.NoError(t, err)
	assert.Len(t, m.DanglingLinks(), 1)
}
