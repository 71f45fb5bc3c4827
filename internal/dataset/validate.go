package dataset

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var schemaValidate *validator.Validate

func init() {
	schemaValidate = validator.New()
	// Report json field names so messages match the file the user wrote.
	schemaValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks the dataset for errors before conversion.
// Returns a slice of all validation errors found.
func Validate(schema *Schema) []error {
	var errs []error

	errs = append(errs, validateFields(schema)...)

	nodeGroups := make(map[int]string)
	errs = append(errs, validateNodes(schema.Nodes, nodeGroups)...)
	errs = append(errs, validateLinks(schema.Links, nodeGroups)...)

	groupIDs := make(map[string]bool)
	errs = append(errs, validateGroups(schema.Groups, nodeGroups, groupIDs)...)
	errs = append(errs, validateGroupRefs(schema.Nodes, schema.Groups, groupIDs)...)

	errs = append(errs, validatePhases(schema.Phases)...)
	errs = append(errs, validateParallel(schema.ParallelProcesses, nodeGroups)...)

	return errs
}

func validateFields(schema *Schema) []error {
	err := schemaValidate.Struct(schema)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		path := strings.TrimPrefix(fe.Namespace(), "Schema.")
		errs = append(errs, fmt.Errorf("%s: %s", path, describeTag(fe)))
	}
	return errs
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("invalid value %q (expected one of: %s)", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// validateNodes records every node id with its group tag in nodeGroups.
func validateNodes(nodes []NodeDef, nodeGroups map[int]string) []error {
	var errs []error

	for i, n := range nodes {
		prefix := fmt.Sprintf("nodes[%d]", i)
		if _, dup := nodeGroups[n.ID]; dup {
			errs = append(errs, fmt.Errorf("%s.id: duplicate node id %d", prefix, n.ID))
		} else {
			nodeGroups[n.ID] = n.Group
		}
		errs = append(errs, validateRange(prefix+".attorney_hours", n.AttorneyHoursMin, n.AttorneyHoursMax)...)
		errs = append(errs, validateRange(prefix+".duration_days", n.DurationDaysMin, n.DurationDaysMax)...)
		for j, fc := range n.FixedCosts {
			fcPrefix := fmt.Sprintf("%s.fixed_costs[%d]", prefix, j)
			if fc.Amount == nil && fc.AmountMin == nil && fc.AmountMax == nil {
				errs = append(errs, fmt.Errorf("%s: no amount given (counted as 0)", fcPrefix))
				continue
			}
			errs = append(errs, validateRange(fcPrefix+".amount", fc.AmountMin, fc.AmountMax)...)
		}
	}

	return errs
}

func validateRange(field string, lo, hi *float64) []error {
	if lo != nil && hi != nil && *lo > *hi {
		return []error{fmt.Errorf("%s: min %g is greater than max %g", field, *lo, *hi)}
	}
	return nil
}

func validateLinks(links []LinkDef, nodeGroups map[int]string) []error {
	var errs []error

	for i, l := range links {
		if _, ok := nodeGroups[l.Source]; !ok {
			errs = append(errs, fmt.Errorf("links[%d].source: unknown node id %d", i, l.Source))
		}
		if _, ok := nodeGroups[l.Target]; !ok {
			errs = append(errs, fmt.Errorf("links[%d].target: unknown node id %d", i, l.Target))
		}
	}

	return errs
}

func validateGroups(groups []GroupDef, nodeGroups map[int]string, groupIDs map[string]bool) []error {
	var errs []error

	for i, g := range groups {
		prefix := fmt.Sprintf("groups[%d]", i)
		if g.ID != "" {
			if groupIDs[g.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate group id %q", prefix, g.ID))
			}
			groupIDs[g.ID] = true
		}
		if _, ok := nodeGroups[g.ParentNodeID]; !ok {
			errs = append(errs, fmt.Errorf("%s.parent_node_id: unknown node id %d", prefix, g.ParentNodeID))
		}
		for j, child := range g.ChildNodeIDs {
			tag, ok := nodeGroups[child]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("%s.child_node_ids[%d]: unknown node id %d", prefix, j, child))
			case tag != g.ID:
				errs = append(errs, fmt.Errorf("%s.child_node_ids[%d]: node %d is tagged with group %q, not %q", prefix, j, child, tag, g.ID))
			}
		}
	}

	return errs
}

func validateGroupRefs(nodes []NodeDef, groups []GroupDef, groupIDs map[string]bool) []error {
	var errs []error

	listed := make(map[string]map[int]bool, len(groups))
	for _, g := range groups {
		if listed[g.ID] == nil {
			listed[g.ID] = make(map[int]bool)
		}
		for _, child := range g.ChildNodeIDs {
			listed[g.ID][child] = true
		}
	}

	for i, n := range nodes {
		prefix := fmt.Sprintf("nodes[%d]", i)
		if n.Group != "" {
			if !groupIDs[n.Group] {
				errs = append(errs, fmt.Errorf("%s.group: unknown group %q", prefix, n.Group))
			} else if !listed[n.Group][n.ID] {
				errs = append(errs, fmt.Errorf("%s.group: node %d is not listed in the children of group %q", prefix, n.ID, n.Group))
			}
		}
		if n.ExpandsGroup != "" && !groupIDs[n.ExpandsGroup] {
			errs = append(errs, fmt.Errorf("%s.expands_group: unknown group %q", prefix, n.ExpandsGroup))
		}
	}

	return errs
}

func validatePhases(phases []PhaseDef) []error {
	var errs []error

	phaseIDs := make(map[string]bool)
	stageOwner := make(map[string]string)
	for i, p := range phases {
		prefix := fmt.Sprintf("phases[%d]", i)
		if p.ID != "" && phaseIDs[p.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate phase id %q", prefix, p.ID))
		}
		phaseIDs[p.ID] = true
		for j, stage := range p.Stages {
			owner, claimed := stageOwner[stage]
			if claimed && owner != p.ID {
				errs = append(errs, fmt.Errorf("%s.stages[%d]: stage %q already belongs to phase %q", prefix, j, stage, owner))
				continue
			}
			stageOwner[stage] = p.ID
		}
	}

	return errs
}

func validateParallel(procs []ParallelDef, nodeGroups map[int]string) []error {
	var errs []error

	for i, p := range procs {
		prefix := fmt.Sprintf("parallel_processes[%d]", i)
		if _, ok := nodeGroups[p.FromNodeID]; !ok {
			errs = append(errs, fmt.Errorf("%s.from_node_id: unknown node id %d", prefix, p.FromNodeID))
		}
		if _, ok := nodeGroups[p.ToNodeID]; !ok {
			errs = append(errs, fmt.Errorf("%s.to_node_id: unknown node id %d", prefix, p.ToNodeID))
		}
	}

	return errs
}
