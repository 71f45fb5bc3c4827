package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrFloat(f float64) *float64 { return &f }
func ptrBool(b bool) *bool        { return &b }

func validMinimalSchema() *Schema {
	return &Schema{
		Name: "Test Workflow",
		Nodes: []NodeDef{
			{ID: 0, Name: "Complaint", Stage: "filing"},
			{ID: 1, Name: "Answer", Stage: "pleading"},
		},
		Links: []LinkDef{
			{Source: 0, Target: 1, Volume: 10},
		},
	}
}

func validGroupedSchema() *Schema {
	s := validMinimalSchema()
	s.Nodes = append(s.Nodes,
		NodeDef{ID: 2, Name: "Discovery", Stage: "discovery", Expandable: true, ExpandsGroup: "disc"},
		NodeDef{ID: 3, Name: "Depositions", Stage: "discovery", Group: "disc"},
	)
	s.Groups = []GroupDef{
		{ID: "disc", Name: "Discovery", ParentNodeID: 2, ChildNodeIDs: []int{3}},
	}
	s.Phases = []PhaseDef{
		{ID: "pleadings", Name: "Pleadings", Stages: []string{"filing", "pleading"}},
		{ID: "discovery", Name: "Discovery", Stages: []string{"discovery"}},
	}
	return s
}

func hasError(errs []error, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Error(), substr) {
			return true
		}
	}
	return false
}

func TestValidate_ValidMinimal(t *testing.T) {
	errs := Validate(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidate_ValidGrouped(t *testing.T) {
	errs := Validate(validGroupedSchema())
	assert.Empty(t, errs)
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Schema)
		wantMsg string
	}{
		{"missing name", func(s *Schema) { s.Name = "" }, "name: is required"},
		{"no nodes", func(s *Schema) { s.Nodes = nil; s.Links = nil }, "nodes: is required"},
		{"missing node stage", func(s *Schema) { s.Nodes[1].Stage = "" }, "nodes[1].stage: is required"},
		{"missing node name", func(s *Schema) { s.Nodes[0].Name = "" }, "nodes[0].name: is required"},
		{"bad deadline", func(s *Schema) { s.Nodes[0].Deadline = "soon" }, "nodes[0].deadline: invalid value \"soon\""},
		{"negative hours", func(s *Schema) { s.Nodes[0].AttorneyHoursMin = ptrFloat(-1) }, "nodes[0].attorney_hours_min: must be >= 0"},
		{"negative cost", func(s *Schema) {
			s.Nodes[0].FixedCosts = []FixedCostDef{{Label: "fee", Amount: ptrFloat(-5)}}
		}, "nodes[0].fixed_costs[0].amount: must be >= 0"},
		{"negative volume", func(s *Schema) { s.Links[0].Volume = -1 }, "links[0].volume: must be >= 0"},
		{"phase without stages", func(s *Schema) {
			s.Phases = []PhaseDef{{ID: "p", Name: "P"}}
		}, "phases[0].stages: is required"},
		{"empty stage entry", func(s *Schema) {
			s.Phases = []PhaseDef{{ID: "p", Name: "P", Stages: []string{"filing", ""}}}
		}, "phases[0].stages[1]: is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalSchema()
			tc.mutate(s)
			errs := Validate(s)
			assert.True(t, hasError(errs, tc.wantMsg), "expected error containing %q, got %v", tc.wantMsg, errs)
		})
	}
}

func TestValidate_DuplicateNodeID(t *testing.T) {
	s := validMinimalSchema()
	s.Nodes = append(s.Nodes, NodeDef{ID: 1, Name: "Dup", Stage: "pleading"})
	errs := Validate(s)
	assert.True(t, hasError(errs, "nodes[2].id: duplicate node id 1"), "got %v", errs)
}

func TestValidate_DanglingLink(t *testing.T) {
	s := validMinimalSchema()
	s.Links = append(s.Links, LinkDef{Source: 1, Target: 42})
	errs := Validate(s)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "links[1].target: unknown node id 42")
}

func TestValidate_UnknownGroup(t *testing.T) {
	s := validMinimalSchema()
	s.Nodes[1].Group = "ghost"
	errs := Validate(s)
	assert.True(t, hasError(errs, "nodes[1].group: unknown group \"ghost\""), "got %v", errs)
}

func TestValidate_GroupMembershipMismatch(t *testing.T) {
	t.Run("child not tagged", func(t *testing.T) {
		s := validGroupedSchema()
		s.Groups[0].ChildNodeIDs = append(s.Groups[0].ChildNodeIDs, 1)
		errs := Validate(s)
		assert.True(t, hasError(errs, "groups[0].child_node_ids[1]: node 1 is tagged with group \"\", not \"disc\""), "got %v", errs)
	})

	t.Run("tagged but not listed", func(t *testing.T) {
		s := validGroupedSchema()
		s.Groups[0].ChildNodeIDs = nil
		errs := Validate(s)
		assert.True(t, hasError(errs, "nodes[3].group: node 3 is not listed"), "got %v", errs)
	})

	t.Run("unknown parent", func(t *testing.T) {
		s := validGroupedSchema()
		s.Groups[0].ParentNodeID = 99
		errs := Validate(s)
		assert.True(t, hasError(errs, "groups[0].parent_node_id: unknown node id 99"), "got %v", errs)
	})

	t.Run("unknown expands_group", func(t *testing.T) {
		s := validGroupedSchema()
		s.Nodes[2].ExpandsGroup = "nope"
		errs := Validate(s)
		assert.True(t, hasError(errs, "nodes[2].expands_group: unknown group \"nope\""), "got %v", errs)
	})
}

func TestValidate_StageInTwoPhases(t *testing.T) {
	s := validGroupedSchema()
	s.Phases[1].Stages = append(s.Phases[1].Stages, "pleading")
	errs := Validate(s)
	assert.True(t, hasError(errs, "phases[1].stages[1]: stage \"pleading\" already belongs to phase \"pleadings\""), "got %v", errs)
}

func TestValidate_StageRepeatedInOnePhaseIsFine(t *testing.T) {
	s := validGroupedSchema()
	s.Phases[0].Stages = append(s.Phases[0].Stages, "filing")
	assert.Empty(t, Validate(s))
}

func TestValidate_MinGreaterThanMax(t *testing.T) {
	s := validMinimalSchema()
	s.Nodes[0].AttorneyHoursMin = ptrFloat(10)
	s.Nodes[0].AttorneyHoursMax = ptrFloat(2)
	s.Nodes[1].FixedCosts = []FixedCostDef{{Label: "fee", AmountMin: ptrFloat(500), AmountMax: ptrFloat(100)}}
	errs := Validate(s)
	assert.True(t, hasError(errs, "nodes[0].attorney_hours: min 10 is greater than max 2"), "got %v", errs)
	assert.True(t, hasError(errs, "nodes[1].fixed_costs[0].amount: min 500 is greater than max 100"), "got %v", errs)
}

func TestValidate_CostWithoutAmount(t *testing.T) {
	s := validMinimalSchema()
	s.Nodes[0].FixedCosts = []FixedCostDef{{Label: "Jury fee"}}
	errs := Validate(s)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "nodes[0].fixed_costs[0]: no amount given")
}

func TestValidate_ParallelEndpoints(t *testing.T) {
	s := validMinimalSchema()
	s.ParallelProcesses = []ParallelDef{
		{ID: "settle", Name: "Settlement", FromNodeID: 0, ToNodeID: 7},
	}
	errs := Validate(s)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "parallel_processes[0].to_node_id: unknown node id 7")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	s := validMinimalSchema()
	s.Name = ""
	s.Links = append(s.Links, LinkDef{Source: 5, Target: 6})
	s.Nodes[0].Group = "ghost"
	errs := Validate(s)
	assert.GreaterOrEqual(t, len(errs), 4)
}
