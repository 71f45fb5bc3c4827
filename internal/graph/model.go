package graph

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/docketflow/internal/domain"
)

// Data is the raw input to New. Slices are copied; the caller may reuse them.
type Data struct {
	Name              string
	Nodes             []domain.Node
	Links             []domain.Link
	Groups            []domain.Group
	Phases            []domain.Phase
	ParallelProcesses []domain.ParallelProcess
}

// Model holds an immutable, indexed workflow graph. All accessors return
// copies so callers cannot mutate the definitions.
type Model struct {
	name     string
	nodes    []domain.Node
	links    []domain.Link
	groups   []domain.Group
	phases   []domain.Phase
	parallel []domain.ParallelProcess

	nodeIndex  map[int]int    // node id -> position in nodes
	groupIndex map[string]int // group id -> position in groups
	phaseIndex map[string]int // phase id -> position in phases
	stagePhase map[string]string
	outgoing   map[int][]int // source id -> positions in links
}

// New builds a Model. It refuses duplicate node ids and stages claimed by
// two phases; every other integrity problem (dangling links, unknown groups)
// is tolerated here and surfaced by dataset validation.
func New(d Data) (*Model, error) {
	m := &Model{
		name:       d.Name,
		nodes:      cloneNodes(d.Nodes),
		links:      append([]domain.Link(nil), d.Links...),
		groups:     cloneGroups(d.Groups),
		phases:     clonePhases(d.Phases),
		parallel:   append([]domain.ParallelProcess(nil), d.ParallelProcesses...),
		nodeIndex:  make(map[int]int, len(d.Nodes)),
		groupIndex: make(map[string]int, len(d.Groups)),
		phaseIndex: make(map[string]int, len(d.Phases)),
		stagePhase: make(map[string]string),
		outgoing:   make(map[int][]int),
	}

	for i, n := range m.nodes {
		if _, dup := m.nodeIndex[n.ID]; dup {
			return nil, fmt.Errorf("node %d: %w", n.ID, ErrDuplicateNode)
		}
		m.nodeIndex[n.ID] = i
	}

	for i, g := range m.groups {
		m.groupIndex[g.ID] = i
	}

	for i, p := range m.phases {
		m.phaseIndex[p.ID] = i
		for _, stage := range p.Stages {
			if owner, taken := m.stagePhase[stage]; taken && owner != p.ID {
				return nil, fmt.Errorf("stage %q in phases %q and %q: %w", stage, owner, p.ID, ErrStageConflict)
			}
			m.stagePhase[stage] = p.ID
		}
	}

	for i, l := range m.links {
		m.outgoing[l.Source] = append(m.outgoing[l.Source], i)
	}

	return m, nil
}

// Name returns the dataset name.
func (m *Model) Name() string { return m.name }

// Node returns the node with the given id.
func (m *Model) Node(id int) (domain.Node, error) {
	i, ok := m.nodeIndex[id]
	if !ok {
		return domain.Node{}, fmt.Errorf("node %d: %w", id, ErrNotFound)
	}
	return cloneNode(m.nodes[i]), nil
}

// HasNode reports whether id resolves to a node.
func (m *Model) HasNode(id int) bool {
	_, ok := m.nodeIndex[id]
	return ok
}

// Nodes returns all nodes in dataset order.
func (m *Model) Nodes() []domain.Node {
	return cloneNodes(m.nodes)
}

// NodesInGroup returns the members of a group in dataset order. Membership
// is decided by each node's Group tag. An unknown group id yields an empty
// slice together with ErrUnknownGroup.
func (m *Model) NodesInGroup(groupID string) ([]domain.Node, error) {
	if _, ok := m.groupIndex[groupID]; !ok {
		return []domain.Node{}, fmt.Errorf("group %q: %w", groupID, ErrUnknownGroup)
	}
	members := []domain.Node{}
	for _, n := range m.nodes {
		if n.Group == groupID {
			members = append(members, cloneNode(n))
		}
	}
	return members, nil
}

// StageOwnerPhase returns the id of the phase that owns stage, if any.
func (m *Model) StageOwnerPhase(stage string) (string, bool) {
	id, ok := m.stagePhase[stage]
	return id, ok
}

// Links returns all links in dataset order.
func (m *Model) Links() []domain.Link {
	return append([]domain.Link(nil), m.links...)
}

// Outgoing returns the links whose source is id, in dataset order.
func (m *Model) Outgoing(id int) []domain.Link {
	idx := m.outgoing[id]
	out := make([]domain.Link, 0, len(idx))
	for _, i := range idx {
		out = append(out, m.links[i])
	}
	return out
}

// DanglingLinks returns the links with at least one endpoint that does not
// resolve to a node.
func (m *Model) DanglingLinks() []domain.Link {
	var out []domain.Link
	for _, l := range m.links {
		if !m.HasNode(l.Source) || !m.HasNode(l.Target) {
			out = append(out, l)
		}
	}
	return out
}

// Groups returns all groups in dataset order.
func (m *Model) Groups() []domain.Group {
	return cloneGroups(m.groups)
}

// Group returns the group with the given id.
func (m *Model) Group(id string) (domain.Group, error) {
	i, ok := m.groupIndex[id]
	if !ok {
		return domain.Group{}, fmt.Errorf("group %q: %w", id, ErrUnknownGroup)
	}
	g := m.groups[i]
	g.ChildNodeIDs = append([]int(nil), g.ChildNodeIDs...)
	return g, nil
}

// Phases returns all phases in dataset order.
func (m *Model) Phases() []domain.Phase {
	return clonePhases(m.phases)
}

// Phase returns the phase with the given id.
func (m *Model) Phase(id string) (domain.Phase, error) {
	i, ok := m.phaseIndex[id]
	if !ok {
		return domain.Phase{}, fmt.Errorf("phase %q: %w", id, ErrUnknownPhase)
	}
	p := m.phases[i]
	p.Stages = append([]string(nil), p.Stages...)
	return p, nil
}

// ParallelProcesses returns the processes that run alongside the main graph.
func (m *Model) ParallelProcesses() []domain.ParallelProcess {
	return append([]domain.ParallelProcess(nil), m.parallel...)
}

// Stages returns the distinct stage tags used by nodes, sorted.
func (m *Model) Stages() []string {
	seen := make(map[string]bool)
	var stages []string
	for _, n := range m.nodes {
		if n.Stage != "" && !seen[n.Stage] {
			seen[n.Stage] = true
			stages = append(stages, n.Stage)
		}
	}
	sort.Strings(stages)
	return stages
}

func cloneNode(n domain.Node) domain.Node {
	n.FixedCosts = append([]domain.FixedCost(nil), n.FixedCosts...)
	n.Documents = append([]string(nil), n.Documents...)
	return n
}

func cloneNodes(nodes []domain.Node) []domain.Node {
	out := make([]domain.Node, len(nodes))
	for i, n := range nodes {
		out[i] = cloneNode(n)
	}
	return out
}

func cloneGroups(groups []domain.Group) []domain.Group {
	out := make([]domain.Group, len(groups))
	for i, g := range groups {
		g.ChildNodeIDs = append([]int(nil), g.ChildNodeIDs...)
		out[i] = g
	}
	return out
}

func clonePhases(phases []domain.Phase) []domain.Phase {
	out := make([]domain.Phase, len(phases))
	for i, p := range phases {
		p.Stages = append([]string(nil), p.Stages...)
		out[i] = p
	}
	return out
}
