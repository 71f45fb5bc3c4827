// Package cost computes low/high effort and expense estimates over a
// what-if selection of workflow steps.
package cost

import (
	"github.com/alexanderramin/docketflow/internal/domain"
)

// Estimate is an aggregate low/high range. Days are a linear sum of the
// selected steps, not a critical-path duration.
type Estimate struct {
	HoursMin      float64
	HoursMax      float64
	FixedCostsMin float64
	FixedCostsMax float64
	DaysMin       float64
	DaysMax       float64
	FeesMin       float64
	FeesMax       float64
	TotalMin      float64
	TotalMax      float64
}

// Line is the contribution of a single node to an Estimate.
type Line struct {
	NodeID   int
	Label    string
	Estimate Estimate
}

// Aggregate sums the estimates of nodes and prices the attorney hours at
// hourlyRate (0 disables fees). An empty selection yields a zero Estimate.
func Aggregate(nodes []domain.Node, hourlyRate float64) Estimate {
	var e Estimate
	for _, n := range nodes {
		e = e.Add(nodeEstimate(n, hourlyRate))
	}
	return e
}

// Breakdown returns the per-node contributions in input order.
func Breakdown(nodes []domain.Node, hourlyRate float64) []Line {
	lines := make([]Line, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, Line{
			NodeID:   n.ID,
			Label:    n.Label(),
			Estimate: nodeEstimate(n, hourlyRate),
		})
	}
	return lines
}

// Add returns the field-wise sum of e and o.
func (e Estimate) Add(o Estimate) Estimate {
	return Estimate{
		HoursMin:      e.HoursMin + o.HoursMin,
		HoursMax:      e.HoursMax + o.HoursMax,
		FixedCostsMin: e.FixedCostsMin + o.FixedCostsMin,
		FixedCostsMax: e.FixedCostsMax + o.FixedCostsMax,
		DaysMin:       e.DaysMin + o.DaysMin,
		DaysMax:       e.DaysMax + o.DaysMax,
		FeesMin:       e.FeesMin + o.FeesMin,
		FeesMax:       e.FeesMax + o.FeesMax,
		TotalMin:      e.TotalMin + o.TotalMin,
		TotalMax:      e.TotalMax + o.TotalMax,
	}
}

// IsZero reports whether every field is zero.
func (e Estimate) IsZero() bool {
	return e == Estimate{}
}

func nodeEstimate(n domain.Node, hourlyRate float64) Estimate {
	e := Estimate{
		HoursMin: domain.Float64FromPtrWithDefault(0, n.AttorneyHoursMin),
		HoursMax: domain.Float64FromPtrWithDefault(0, n.AttorneyHoursMax),
		DaysMin:  domain.Float64FromPtrWithDefault(0, n.DurationDaysMin),
		DaysMax:  domain.Float64FromPtrWithDefault(0, n.DurationDaysMax),
	}
	for _, c := range n.FixedCosts {
		lo, hi := c.Range()
		e.FixedCostsMin += lo
		e.FixedCostsMax += hi
	}
	e.FeesMin = e.HoursMin * hourlyRate
	e.FeesMax = e.HoursMax * hourlyRate
	e.TotalMin = e.FixedCostsMin + e.FeesMin
	e.TotalMax = e.FixedCostsMax + e.FeesMax
	return e
}
