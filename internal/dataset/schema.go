package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a dataset file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Schema is the top-level structure of a dataset file. Field names are
// snake_case in both JSON and YAML.
type Schema struct {
	Name              string        `json:"name" yaml:"name" validate:"required"`
	Version           string        `json:"version,omitempty" yaml:"version,omitempty"`
	Nodes             []NodeDef     `json:"nodes" yaml:"nodes" validate:"required,min=1,dive"`
	Links             []LinkDef     `json:"links" yaml:"links" validate:"dive"`
	Groups            []GroupDef    `json:"groups,omitempty" yaml:"groups,omitempty" validate:"dive"`
	Phases            []PhaseDef    `json:"phases,omitempty" yaml:"phases,omitempty" validate:"dive"`
	ParallelProcesses []ParallelDef `json:"parallel_processes,omitempty" yaml:"parallel_processes,omitempty" validate:"dive"`
}

// NodeDef defines a workflow step.
type NodeDef struct {
	ID               int            `json:"id" yaml:"id" validate:"gte=0"`
	Name             string         `json:"name" yaml:"name" validate:"required"`
	Stage            string         `json:"stage" yaml:"stage" validate:"required"`
	Rule             string         `json:"rule,omitempty" yaml:"rule,omitempty"`
	Owner            string         `json:"owner,omitempty" yaml:"owner,omitempty"`
	Description      string         `json:"description,omitempty" yaml:"description,omitempty"`
	Decision         bool           `json:"decision,omitempty" yaml:"decision,omitempty"`
	Exception        bool           `json:"exception,omitempty" yaml:"exception,omitempty"`
	Expandable       bool           `json:"expandable,omitempty" yaml:"expandable,omitempty"`
	ExpandsGroup     string         `json:"expands_group,omitempty" yaml:"expands_group,omitempty"`
	Group            string         `json:"group,omitempty" yaml:"group,omitempty"`
	Deadline         string         `json:"deadline,omitempty" yaml:"deadline,omitempty" validate:"omitempty,oneof=strict flexible court-set"`
	AttorneyHoursMin *float64       `json:"attorney_hours_min,omitempty" yaml:"attorney_hours_min,omitempty" validate:"omitempty,gte=0"`
	AttorneyHoursMax *float64       `json:"attorney_hours_max,omitempty" yaml:"attorney_hours_max,omitempty" validate:"omitempty,gte=0"`
	DurationDaysMin  *float64       `json:"duration_days_min,omitempty" yaml:"duration_days_min,omitempty" validate:"omitempty,gte=0"`
	DurationDaysMax  *float64       `json:"duration_days_max,omitempty" yaml:"duration_days_max,omitempty" validate:"omitempty,gte=0"`
	FixedCosts       []FixedCostDef `json:"fixed_costs,omitempty" yaml:"fixed_costs,omitempty" validate:"dive"`
	Documents        []string       `json:"documents,omitempty" yaml:"documents,omitempty"`
	X                float64        `json:"x,omitempty" yaml:"x,omitempty"`
	Y                float64        `json:"y,omitempty" yaml:"y,omitempty"`
}

// FixedCostDef defines an expense. Amount is used for any bound that is not
// given explicitly.
type FixedCostDef struct {
	Label     string   `json:"label,omitempty" yaml:"label,omitempty"`
	AmountMin *float64 `json:"amount_min,omitempty" yaml:"amount_min,omitempty" validate:"omitempty,gte=0"`
	AmountMax *float64 `json:"amount_max,omitempty" yaml:"amount_max,omitempty" validate:"omitempty,gte=0"`
	Amount    *float64 `json:"amount,omitempty" yaml:"amount,omitempty" validate:"omitempty,gte=0"`
}

// LinkDef defines a directed edge.
type LinkDef struct {
	Source    int     `json:"source" yaml:"source"`
	Target    int     `json:"target" yaml:"target"`
	Volume    float64 `json:"volume,omitempty" yaml:"volume,omitempty" validate:"gte=0"`
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	Exception bool    `json:"exception,omitempty" yaml:"exception,omitempty"`
	Parallel  bool    `json:"parallel,omitempty" yaml:"parallel,omitempty"`
}

// GroupDef defines a collapsible group. A group starts collapsed unless
// Expanded is true; a saved view state overrides this per group.
type GroupDef struct {
	ID           string `json:"id" yaml:"id" validate:"required"`
	Name         string `json:"name" yaml:"name" validate:"required"`
	ParentNodeID int    `json:"parent_node_id" yaml:"parent_node_id"`
	ChildNodeIDs []int  `json:"child_node_ids" yaml:"child_node_ids"`
	Expanded     *bool  `json:"expanded,omitempty" yaml:"expanded,omitempty"`
}

// PhaseDef defines a phase. A phase is enabled unless Enabled is false.
type PhaseDef struct {
	ID      string   `json:"id" yaml:"id" validate:"required"`
	Name    string   `json:"name" yaml:"name" validate:"required"`
	Stages  []string `json:"stages" yaml:"stages" validate:"required,min=1,dive,required"`
	Enabled *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// ParallelDef defines a process spanning a range of nodes.
type ParallelDef struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	FromNodeID  int    `json:"from_node_id" yaml:"from_node_id"`
	ToNodeID    int    `json:"to_node_id" yaml:"to_node_id"`
	Stage       string `json:"stage,omitempty" yaml:"stage,omitempty"`
}

// FormatForPath infers the dataset encoding from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported dataset extension %q (expected .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// LoadFile reads and parses a dataset file.
func LoadFile(path string) (*Schema, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// Parse decodes a dataset in the given format.
func Parse(data []byte, format Format) (*Schema, error) {
	var schema Schema
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing dataset: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
	return &schema, nil
}
