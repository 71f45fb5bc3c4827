package domain

import "strings"

// Node is a single step in the litigation workflow.
type Node struct {
	ID          int
	Name        string // may contain "\n" line breaks
	Stage       string
	Rule        string
	Owner       string
	Description string

	Decision  bool
	Exception bool

	// Grouping
	Expandable   bool
	ExpandsGroup string
	Group        string

	Deadline DeadlineKind

	// Estimates consumed by the cost aggregator; nil means absent.
	AttorneyHoursMin *float64
	AttorneyHoursMax *float64
	DurationDaysMin  *float64
	DurationDaysMax  *float64
	FixedCosts       []FixedCost

	Documents []string

	Position Position
}

// FixedCost is a single out-of-pocket expense attached to a node. When no
// explicit min/max is present, Amount stands in for both.
type FixedCost struct {
	Label     string
	AmountMin *float64
	AmountMax *float64
	Amount    *float64
}

// Range returns the low and high amount of the entry, falling back to Amount
// and then to zero for each bound independently.
func (c FixedCost) Range() (float64, float64) {
	lo := Float64FromPtrWithDefault(0, c.AmountMin, c.Amount)
	hi := Float64FromPtrWithDefault(0, c.AmountMax, c.Amount)
	return lo, hi
}

// HasAmount reports whether any amount field is set.
func (c FixedCost) HasAmount() bool {
	return c.AmountMin != nil || c.AmountMax != nil || c.Amount != nil
}

// Position is layout data owned by the renderer. The query core never reads it.
type Position struct {
	X float64
	Y float64
}

// InGroup reports whether the node is a member of a collapsible group.
func (n Node) InGroup() bool {
	return n.Group != ""
}

// Label returns the node name with line breaks collapsed to single spaces.
func (n Node) Label() string {
	return strings.Join(strings.Fields(n.Name), " ")
}

// Link is a directed, weighted edge between two nodes.
type Link struct {
	Source    int
	Target    int
	Volume    float64
	Label     string
	Exception bool
	Parallel  bool
}

// Group is a collapsible cluster of nodes toggled by its parent node.
// Expanded is the static default used to seed view state.
type Group struct {
	ID           string
	Name         string
	ParentNodeID int
	ChildNodeIDs []int
	Expanded     bool
}

// Phase is a set of stages toggled as one visibility unit.
// Enabled is the static default used to seed view state.
type Phase struct {
	ID      string
	Name    string
	Stages  []string
	Enabled bool
}

// ParallelProcess is available across a range of nodes rather than at a
// single point in the sequence (e.g. settlement negotiation).
type ParallelProcess struct {
	ID          string
	Name        string
	Description string
	FromNodeID  int
	ToNodeID    int
	Stage       string
}
