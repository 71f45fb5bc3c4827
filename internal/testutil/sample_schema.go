package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/docketflow/internal/dataset"
)

// SampleYAML is the SampleData workflow in dataset form with fewer estimates.
// Nodes 5 and 6 sit in the collapsed "discovery" group and node 7's
// "settlement" stage has no phase.
const SampleYAML = `
name: sample
nodes:
  - {id: 0, name: "Complaint Filed", stage: filing, rule: FRCP 3, owner: Plaintiff,
     attorney_hours_min: 4, attorney_hours_max: 8, duration_days_min: 1, duration_days_max: 1,
     fixed_costs: [{label: Filing fee, amount: 405}], documents: [Complaint, Civil Cover Sheet]}
  - {id: 1, name: "Service of Process", stage: service, rule: FRCP 4, owner: Plaintiff,
     attorney_hours_min: 1, attorney_hours_max: 2, duration_days_min: 7, duration_days_max: 30,
     fixed_costs: [{label: Process server, amount_min: 50, amount_max: 150}], documents: [Summons]}
  - {id: 2, name: "Answer Filed", stage: pleading, rule: FRCP 12(a), owner: Defendant,
     attorney_hours_min: 6, attorney_hours_max: 12}
  - {id: 3, name: "Motion to Dismiss?", stage: motion, rule: FRCP 12(b)(6), owner: Defendant, decision: true,
     attorney_hours_min: 10, attorney_hours_max: 25}
  - {id: 4, name: Discovery, stage: discovery, owner: Both, expands_group: discovery}
  - {id: 5, name: Interrogatories, stage: discovery, group: discovery, rule: FRCP 33,
     attorney_hours_min: 5, attorney_hours_max: 15}
  - {id: 6, name: Depositions, stage: discovery, group: discovery, rule: FRCP 30,
     attorney_hours_min: 20, attorney_hours_max: 60,
     fixed_costs: [{label: Court reporter, amount_min: 1000, amount_max: 5000}]}
  - {id: 7, name: Settlement Conference, stage: settlement, owner: Court}
  - {id: 8, name: Trial, stage: trial, owner: Court, attorney_hours_min: 40, attorney_hours_max: 120}
  - {id: 9, name: Default Judgment, stage: judgment, rule: FRCP 55, exception: true}
links:
  - {source: 0, target: 1, volume: 100}
  - {source: 1, target: 2, volume: 90}
  - {source: 1, target: 9, volume: 10, exception: true, label: no answer}
  - {source: 2, target: 3, volume: 60}
  - {source: 3, target: 4, volume: 45, label: denied}
  - {source: 3, target: 7, volume: 15}
  - {source: 4, target: 5, volume: 45}
  - {source: 4, target: 6, volume: 45}
  - {source: 5, target: 8, volume: 20}
  - {source: 6, target: 8, volume: 20}
groups:
  - {id: discovery, name: Discovery Tools, parent_node_id: 4, child_node_ids: [5, 6]}
phases:
  - {id: pleadings, name: Pleadings, stages: [filing, service, pleading]}
  - {id: motions, name: Motions, stages: [motion]}
  - {id: discovery, name: Discovery, stages: [discovery]}
  - {id: trial, name: Trial, stages: [trial, judgment]}
parallel_processes:
  - {id: settlement, name: Settlement Negotiation, from_node_id: 2, to_node_id: 8, stage: settlement}
`

// SampleSchema parses SampleYAML, failing the test if it does not validate.
func SampleSchema(t *testing.T) *dataset.Schema {
	t.Helper()
	schema, err := dataset.Parse([]byte(SampleYAML), dataset.FormatYAML)
	require.NoError(t, err)
	require.Empty(t, dataset.Validate(schema))
	return schema
}
