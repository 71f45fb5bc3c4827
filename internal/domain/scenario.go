package domain

import "time"

// Scenario is a saved what-if selection of nodes with the billing rate it
// was priced at. Dataset names the workflow the node ids refer to.
type Scenario struct {
	ID         string
	Name       string
	Dataset    string
	NodeIDs    []int
	HourlyRate float64
	CreatedAt  time.Time
}
