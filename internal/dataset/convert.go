package dataset

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/graph"
)

// Build converts a dataset into an indexed graph model. It does not run
// Validate; integrity problems other than those graph.New refuses are left
// for the caller to report.
func Build(schema *Schema) (*graph.Model, error) {
	m, err := graph.New(ToData(schema))
	if err != nil {
		return nil, fmt.Errorf("building %q: %w", schema.Name, err)
	}
	return m, nil
}

// BuildStrict refuses a dataset with any validation issue before building it.
func BuildStrict(schema *Schema) (*graph.Model, error) {
	if issues := Validate(schema); len(issues) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(issues...))
	}
	return Build(schema)
}

// ToData maps dataset definitions onto domain records.
func ToData(schema *Schema) graph.Data {
	d := graph.Data{
		Name:              schema.Name,
		Nodes:             make([]domain.Node, 0, len(schema.Nodes)),
		Links:             make([]domain.Link, 0, len(schema.Links)),
		Groups:            make([]domain.Group, 0, len(schema.Groups)),
		Phases:            make([]domain.Phase, 0, len(schema.Phases)),
		ParallelProcesses: make([]domain.ParallelProcess, 0, len(schema.ParallelProcesses)),
	}

	for _, n := range schema.Nodes {
		d.Nodes = append(d.Nodes, convertNode(n))
	}

	for _, l := range schema.Links {
		d.Links = append(d.Links, domain.Link{
			Source:    l.Source,
			Target:    l.Target,
			Volume:    l.Volume,
			Label:     l.Label,
			Exception: l.Exception,
			Parallel:  l.Parallel,
		})
	}

	for _, g := range schema.Groups {
		d.Groups = append(d.Groups, domain.Group{
			ID:           g.ID,
			Name:         g.Name,
			ParentNodeID: g.ParentNodeID,
			ChildNodeIDs: append([]int(nil), g.ChildNodeIDs...),
			Expanded:     domain.BoolFromPtrWithDefault(false, g.Expanded),
		})
	}

	for _, p := range schema.Phases {
		d.Phases = append(d.Phases, domain.Phase{
			ID:      p.ID,
			Name:    p.Name,
			Stages:  append([]string(nil), p.Stages...),
			Enabled: domain.BoolFromPtrWithDefault(true, p.Enabled),
		})
	}

	for _, pp := range schema.ParallelProcesses {
		d.ParallelProcesses = append(d.ParallelProcesses, domain.ParallelProcess{
			ID:          pp.ID,
			Name:        pp.Name,
			Description: pp.Description,
			FromNodeID:  pp.FromNodeID,
			ToNodeID:    pp.ToNodeID,
			Stage:       pp.Stage,
		})
	}

	return d
}

func convertNode(n NodeDef) domain.Node {
	deadline := domain.DeadlineFlexible
	if n.Deadline != "" {
		deadline = domain.DeadlineKind(n.Deadline)
	}

	var costs []domain.FixedCost
	if len(n.FixedCosts) > 0 {
		costs = make([]domain.FixedCost, 0, len(n.FixedCosts))
		for _, fc := range n.FixedCosts {
			costs = append(costs, domain.FixedCost{
				Label:     fc.Label,
				AmountMin: fc.AmountMin,
				AmountMax: fc.AmountMax,
				Amount:    fc.Amount,
			})
		}
	}

	return domain.Node{
		ID:               n.ID,
		Name:             n.Name,
		Stage:            n.Stage,
		Rule:             n.Rule,
		Owner:            n.Owner,
		Description:      n.Description,
		Decision:         n.Decision,
		Exception:        n.Exception,
		Expandable:       n.Expandable || n.ExpandsGroup != "",
		ExpandsGroup:     n.ExpandsGroup,
		Group:            n.Group,
		Deadline:         deadline,
		AttorneyHoursMin: n.AttorneyHoursMin,
		AttorneyHoursMax: n.AttorneyHoursMax,
		DurationDaysMin:  n.DurationDaysMin,
		DurationDaysMax:  n.DurationDaysMax,
		FixedCosts:       costs,
		Documents:        append([]string(nil), n.Documents...),
		Position:         domain.Position{X: n.X, Y: n.Y},
	}
}
