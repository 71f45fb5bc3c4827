package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/docketflow/internal/cost"
	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/graph"
	"github.com/alexanderramin/docketflow/internal/visibility"
)

var (
	ErrInvalidRate = errors.New("hourly rate must be >= 0")
	ErrEmptyName   = errors.New("name is required")
	ErrNoSelection = errors.New("no nodes selected")
)

// View is the derived picture for the current view state.
type View struct {
	Dataset    string
	State      visibility.ViewState
	Nodes      []domain.Node
	Links      []domain.Link
	Hidden     int
	Groups     []GroupView
	Phases     []PhaseView
	Parallel   []domain.ParallelProcess
	HourlyRate float64
}

type GroupView struct {
	Group    domain.Group
	Expanded bool
	Members  int
}

type PhaseView struct {
	Phase   domain.Phase
	Enabled bool
	Nodes   int
}

// NodeDetail is a node with its neighbourhood and current visibility.
type NodeDetail struct {
	Node     domain.Node
	Visible  bool
	PhaseID  string
	Incoming []domain.Link
	Outgoing []domain.Link
}

// SearchHit is a matching node with the fields that matched.
type SearchHit struct {
	Node    domain.Node
	Fields  []string
	Visible bool
}

// EstimateResult is a cost estimate over a resolved selection.
type EstimateResult struct {
	Nodes    []domain.Node
	Estimate cost.Estimate
	Lines    []cost.Line
	Rate     float64
}

// ScenarioDetail is a saved scenario priced against the current dataset.
// Missing lists saved node ids the dataset no longer has.
type ScenarioDetail struct {
	Scenario *domain.Scenario
	Result   *EstimateResult
	Missing  []int
}

type ExplorerService interface {
	Model() *graph.Model
	Issues() []error
	Reload(ctx context.Context) error
	View(ctx context.Context) (*View, error)
	VisibleNodes(ctx context.Context) ([]domain.Node, error)
	Node(ctx context.Context, id int) (*NodeDetail, error)
	Search(ctx context.Context, query string, includeHidden bool) ([]SearchHit, error)
	Estimate(ctx context.Context, ids []int, rate *float64) (*EstimateResult, error)
	Paths(ctx context.Context, start, end int, visibleOnly bool) ([][]int, error)
	SetGroup(ctx context.Context, groupID string, expanded bool) error
	ToggleGroup(ctx context.Context, groupID string) (bool, error)
	SetPhase(ctx context.Context, phaseID string, enabled bool) error
	TogglePhase(ctx context.Context, phaseID string) (bool, error)
	Reset(ctx context.Context) error
	HourlyRate(ctx context.Context) (float64, error)
	SetHourlyRate(ctx context.Context, rate float64) error
	Export(ctx context.Context, format domain.ExportFormat, all bool) ([]byte, error)
}

type ScenarioService interface {
	Save(ctx context.Context, name string, ids []int, rate *float64) (*domain.Scenario, error)
	List(ctx context.Context) ([]*domain.Scenario, error)
	Show(ctx context.Context, name string) (*ScenarioDetail, error)
	Delete(ctx context.Context, name string) error
}
