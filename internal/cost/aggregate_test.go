package cost_test

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/docketflow/internal/cost"
	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-6

func assertEstimateInDelta(t *testing.T, want, got cost.Estimate, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.HoursMin, got.HoursMin, tolerance, msgAndArgs...)
	assert.InDelta(t, want.HoursMax, got.HoursMax, tolerance, msgAndArgs...)
	assert.InDelta(t, want.FixedCostsMin, got.FixedCostsMin, tolerance, msgAndArgs...)
	assert.InDelta(t, want.FixedCostsMax, got.FixedCostsMax, tolerance, msgAndArgs...)
	assert.InDelta(t, want.DaysMin, got.DaysMin, tolerance, msgAndArgs...)
	assert.InDelta(t, want.DaysMax, got.DaysMax, tolerance, msgAndArgs...)
	assert.InDelta(t, want.FeesMin, got.FeesMin, tolerance, msgAndArgs...)
	assert.InDelta(t, want.FeesMax, got.FeesMax, tolerance, msgAndArgs...)
	assert.InDelta(t, want.TotalMin, got.TotalMin, tolerance, msgAndArgs...)
	assert.InDelta(t, want.TotalMax, got.TotalMax, tolerance, msgAndArgs...)
}

func TestAggregate_SampleSelection(t *testing.T) {
	nodes := testutil.SampleData().Nodes[:2] // complaint + service

	got := cost.Aggregate(nodes, 300)

	assert.Equal(t, cost.Estimate{
		HoursMin:      5,
		HoursMax:      10,
		FixedCostsMin: 455,
		FixedCostsMax: 555,
		DaysMin:       8,
		DaysMax:       31,
		FeesMin:       1500,
		FeesMax:       3000,
		TotalMin:      1955,
		TotalMax:      3555,
	}, got)
}

func TestAggregate_RateDisabled(t *testing.T) {
	nodes := testutil.SampleData().Nodes[:2]

	got := cost.Aggregate(nodes, 0)

	assert.Equal(t, 0.0, got.FeesMin)
	assert.Equal(t, 0.0, got.FeesMax)
	assert.Equal(t, got.FixedCostsMin, got.TotalMin)
	assert.Equal(t, got.FixedCostsMax, got.TotalMax)
	assert.Equal(t, 5.0, got.HoursMin, "hours are still reported without a rate")
}

func TestAggregate_EmptySelectionIsZero(t *testing.T) {
	for _, rate := range []float64{0, 1, 250, 1e6} {
		assert.True(t, cost.Aggregate(nil, rate).IsZero(), "rate %v", rate)
		assert.True(t, cost.Aggregate([]domain.Node{}, rate).IsZero(), "rate %v", rate)
	}
}

func TestAggregate_AbsentFieldsCountAsZero(t *testing.T) {
	bare := testutil.NewTestNode(1, "Bare")

	assert.True(t, cost.Aggregate([]domain.Node{bare}, 500).IsZero())
}

func TestAggregate_FallbackIsPerEntry(t *testing.T) {
	n := testutil.NewTestNode(1, "Mixed",
		testutil.WithCost(domain.FixedCost{Amount: domain.Float64Ptr(100)}),
		testutil.WithCost(domain.FixedCost{AmountMin: domain.Float64Ptr(10), AmountMax: domain.Float64Ptr(40)}),
		testutil.WithCost(domain.FixedCost{AmountMax: domain.Float64Ptr(70), Amount: domain.Float64Ptr(20)}),
		testutil.WithCost(domain.FixedCost{Label: "unpriced"}),
	)

	got := cost.Aggregate([]domain.Node{n}, 0)

	assert.Equal(t, 130.0, got.FixedCostsMin) // 100 + 10 + 20 + 0
	assert.Equal(t, 210.0, got.FixedCostsMax) // 100 + 40 + 70 + 0
}

func TestAggregate_ReorderIndependent(t *testing.T) {
	nodes := testutil.SampleData().Nodes
	reversed := make([]domain.Node, len(nodes))
	for i, n := range nodes {
		reversed[len(nodes)-1-i] = n
	}

	assertEstimateInDelta(t, cost.Aggregate(nodes, 275), cost.Aggregate(reversed, 275))
}

func TestAggregate_Idempotent(t *testing.T) {
	nodes := testutil.SampleData().Nodes

	assert.Equal(t, cost.Aggregate(nodes, 410), cost.Aggregate(nodes, 410))
}

// TestAggregate_Additivity property-tests linearity: the aggregate of two
// disjoint selections equals the field-wise sum of their aggregates.
func TestAggregate_Additivity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		all := randomNodes(rng, rng.Intn(12))
		split := 0
		if len(all) > 0 {
			split = rng.Intn(len(all) + 1)
		}
		a, b := all[:split], all[split:]
		rate := float64(rng.Intn(600))

		whole := cost.Aggregate(all, rate)
		parts := cost.Aggregate(a, rate).Add(cost.Aggregate(b, rate))

		assertEstimateInDelta(t, whole, parts, "trial %d", trial)
	}
}

func TestBreakdown_SumsToAggregate(t *testing.T) {
	nodes := testutil.SampleData().Nodes

	lines := cost.Breakdown(nodes, 300)
	require.Len(t, lines, len(nodes))

	var sum cost.Estimate
	for _, l := range lines {
		sum = sum.Add(l.Estimate)
	}
	assertEstimateInDelta(t, cost.Aggregate(nodes, 300), sum)
	assert.Equal(t, "Complaint Filed", lines[0].Label)
}

func randomNodes(rng *rand.Rand, n int) []domain.Node {
	nodes := make([]domain.Node, n)
	for i := range nodes {
		var opts []testutil.NodeOption
		if rng.Intn(4) > 0 {
			lo := float64(rng.Intn(40))
			opts = append(opts, testutil.WithHours(lo, lo+float64(rng.Intn(40))))
		}
		if rng.Intn(3) > 0 {
			lo := float64(rng.Intn(60))
			opts = append(opts, testutil.WithDays(lo, lo+float64(rng.Intn(90))))
		}
		for c := rng.Intn(3); c > 0; c-- {
			amount := float64(rng.Intn(2000)) + rng.Float64()
			if rng.Intn(2) == 0 {
				opts = append(opts, testutil.WithCost(domain.FixedCost{Amount: &amount}))
			} else {
				hi := amount * 2
				opts = append(opts, testutil.WithCost(domain.FixedCost{AmountMin: &amount, AmountMax: &hi}))
			}
		}
		nodes[i] = testutil.NewTestNode(i, "Step", opts...)
	}
	return nodes
}
