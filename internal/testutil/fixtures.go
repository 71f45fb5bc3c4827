package testutil

import (
	"testing"

	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/graph"
	"github.com/stretchr/testify/require"
)

// Node options
type NodeOption func(*domain.Node)

func WithStage(stage string) NodeOption {
	return func(n *domain.Node) {
		n.Stage = stage
	}
}

func WithGroup(groupID string) NodeOption {
	return func(n *domain.Node) {
		n.Group = groupID
	}
}

func WithExpandsGroup(groupID string) NodeOption {
	return func(n *domain.Node) {
		n.Expandable = true
		n.ExpandsGroup = groupID
	}
}

func WithHours(lo, hi float64) NodeOption {
	return func(n *domain.Node) {
		n.AttorneyHoursMin = &lo
		n.AttorneyHoursMax = &hi
	}
}

func WithDays(lo, hi float64) NodeOption {
	return func(n *domain.Node) {
		n.DurationDaysMin = &lo
		n.DurationDaysMax = &hi
	}
}

func WithCost(c domain.FixedCost) NodeOption {
	return func(n *domain.Node) {
		n.FixedCosts = append(n.FixedCosts, c)
	}
}

func WithDocuments(docs ...string) NodeOption {
	return func(n *domain.Node) {
		n.Documents = append(n.Documents, docs...)
	}
}

func WithRule(rule string) NodeOption {
	return func(n *domain.Node) {
		n.Rule = rule
	}
}

func WithOwner(owner string) NodeOption {
	return func(n *domain.Node) {
		n.Owner = owner
	}
}

func AsDecision() NodeOption {
	return func(n *domain.Node) {
		n.Decision = true
	}
}

func AsException() NodeOption {
	return func(n *domain.Node) {
		n.Exception = true
	}
}

func NewTestNode(id int, name string, opts ...NodeOption) domain.Node {
	n := domain.Node{
		ID:       id,
		Name:     name,
		Stage:    "generic",
		Deadline: domain.DeadlineFlexible,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// SampleData returns a small litigation workflow used across package tests.
//
//	0 Complaint -> 1 Service -> 2 Answer -> 3 Motion? -> 4 Discovery
//	4 -> 5 Interrogatories, 4 -> 6 Depositions, 5/6 -> 8 Trial
//	1 -> 9 Default Judgment (exception), 3 -> 7 Settlement Conference
//
// Nodes 5 and 6 belong to the collapsed "discovery" group. The "settlement"
// stage of node 7 is not owned by any phase.
func SampleData() graph.Data {
	return graph.Data{
		Name: "sample",
		Nodes: []domain.Node{
			NewTestNode(0, "Complaint\nFiled", WithStage("filing"), WithRule("FRCP 3"), WithOwner("Plaintiff"),
				WithHours(4, 8), WithDays(1, 1),
				WithCost(domain.FixedCost{Label: "Filing fee", Amount: domain.Float64Ptr(405)}),
				WithDocuments("Complaint", "Civil Cover Sheet")),
			NewTestNode(1, "Service of\nProcess", WithStage("service"), WithRule("FRCP 4"), WithOwner("Plaintiff"),
				WithHours(1, 2), WithDays(7, 30),
				WithCost(domain.FixedCost{Label: "Process server", AmountMin: domain.Float64Ptr(50), AmountMax: domain.Float64Ptr(150)}),
				WithDocuments("Summons")),
			NewTestNode(2, "Answer\nFiled", WithStage("pleading"), WithRule("FRCP 12(a)"), WithOwner("Defendant"),
				WithHours(6, 12), WithDays(21, 21), WithDocuments("Answer")),
			NewTestNode(3, "Motion to\nDismiss?", WithStage("motion"), WithRule("FRCP 12(b)(6)"), WithOwner("Defendant"),
				AsDecision(), WithHours(10, 25), WithDays(30, 90)),
			NewTestNode(4, "Discovery", WithStage("discovery"), WithExpandsGroup("discovery"), WithOwner("Both")),
			NewTestNode(5, "Interrogatories", WithStage("discovery"), WithGroup("discovery"), WithRule("FRCP 33"),
				WithHours(5, 15), WithDays(30, 30), WithDocuments("Interrogatories")),
			NewTestNode(6, "Depositions", WithStage("discovery"), WithGroup("discovery"), WithRule("FRCP 30"),
				WithHours(20, 60), WithDays(30, 120),
				WithCost(domain.FixedCost{Label: "Court reporter", AmountMin: domain.Float64Ptr(1000), AmountMax: domain.Float64Ptr(5000)}),
				WithDocuments("Deposition Notice", "Transcript")),
			NewTestNode(7, "Settlement\nConference", WithStage("settlement"), WithOwner("Court"), WithHours(3, 6)),
			NewTestNode(8, "Trial", WithStage("trial"), WithOwner("Court"), WithHours(40, 120), WithDays(3, 10)),
			NewTestNode(9, "Default\nJudgment", WithStage("judgment"), WithRule("FRCP 55"), AsException()),
		},
		Links: []domain.Link{
			{Source: 0, Target: 1, Volume: 100},
			{Source: 1, Target: 2, Volume: 90},
			{Source: 1, Target: 9, Volume: 10, Exception: true, Label: "no answer"},
			{Source: 2, Target: 3, Volume: 60},
			{Source: 3, Target: 4, Volume: 45, Label: "denied"},
			{Source: 3, Target: 7, Volume: 15},
			{Source: 4, Target: 5, Volume: 45},
			{Source: 4, Target: 6, Volume: 45},
			{Source: 5, Target: 8, Volume: 20},
			{Source: 6, Target: 8, Volume: 20},
		},
		Groups: []domain.Group{
			{ID: "discovery", Name: "Discovery Tools", ParentNodeID: 4, ChildNodeIDs: []int{5, 6}, Expanded: false},
		},
		Phases: []domain.Phase{
			{ID: "pleadings", Name: "Pleadings", Stages: []string{"filing", "service", "pleading"}, Enabled: true},
			{ID: "motions", Name: "Motions", Stages: []string{"motion"}, Enabled: true},
			{ID: "discovery", Name: "Discovery", Stages: []string{"discovery"}, Enabled: true},
			{ID: "trial", Name: "Trial", Stages: []string{"trial", "judgment"}, Enabled: true},
		},
		ParallelProcesses: []domain.ParallelProcess{
			{ID: "settlement", Name: "Settlement Negotiation", FromNodeID: 2, ToNodeID: 8, Stage: "settlement"},
		},
	}
}

// NewSampleModel builds SampleData into a Model, failing the test on error.
func NewSampleModel(t *testing.T) *graph.Model {
	t.Helper()
	m, err := graph.New(SampleData())
	require.NoError(t, err)
	return m
}

// NewTestModel builds d into a Model, failing the test on error.
func NewTestModel(t *testing.T, d graph.Data) *graph.Model {
	t.Helper()
	m, err := graph.New(d)
	require.NoError(t, err)
	return m
}
