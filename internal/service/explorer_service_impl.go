package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/docketflow/internal/cost"
	"github.com/alexanderramin/docketflow/internal/dataset"
	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/export"
	"github.com/alexanderramin/docketflow/internal/graph"
	"github.com/alexanderramin/docketflow/internal/pathfind"
	"github.com/alexanderramin/docketflow/internal/repository"
	"github.com/alexanderramin/docketflow/internal/search"
	"github.com/alexanderramin/docketflow/internal/visibility"
)

// ExplorerOptions configures NewExplorerService.
type ExplorerOptions struct {
	// Strict refuses a dataset with any integrity problem.
	Strict      bool
	// DefaultRate applies until a rate is stored.
	DefaultRate float64
	Logger      *slog.Logger
}

type explorerService struct {
	loader   DatasetLoader
	views    repository.ViewStateRepo
	settings repository.SettingsRepo
	opts     ExplorerOptions
	logger   *slog.Logger
	observer UseCaseObserver

	mu     sync.RWMutex
	model  *graph.Model
	issues []error
}

// NewExplorerService loads the dataset and returns a service over it.
func NewExplorerService(
	ctx context.Context,
	loader DatasetLoader,
	views repository.ViewStateRepo,
	settings repository.SettingsRepo,
	opts ExplorerOptions,
	observers ...UseCaseObserver,
) (ExplorerService, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &explorerService{
		loader:   loader,
		views:    views,
		settings: settings,
		opts:     opts,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *explorerService) Model() *graph.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Issues returns the integrity problems found in the loaded dataset.
func (s *explorerService) Issues() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.issues)
}

// Reload re-reads the dataset. On failure the previous model stays in place.
func (s *explorerService) Reload(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": s.loader.Path()}
	defer observe(ctx, s.observer, "reload", startedAt, fields, &err)

	schema, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	var (
		m      *graph.Model
		issues []error
	)
	if s.opts.Strict {
		m, err = dataset.BuildStrict(schema)
	} else {
		issues = dataset.Validate(schema)
		for _, issue := range issues {
			s.logger.WarnContext(ctx, "dataset issue", "dataset", schema.Name, "issue", issue.Error())
		}
		m, err = dataset.Build(schema)
	}
	if err != nil {
		return err
	}

	if err := s.settings.Set(ctx, repository.SettingDataset, m.Name()); err != nil {
		return err
	}

	s.mu.Lock()
	s.model = m
	s.issues = issues
	s.mu.Unlock()

	fields["dataset"] = m.Name()
	fields["nodes"] = len(m.Nodes())
	fields["issues"] = len(issues)
	if dangling := m.DanglingLinks(); len(dangling) > 0 {
		fields["dangling_links"] = len(dangling)
	}
	return nil
}

// state overlays the stored toggles on the model's static defaults. Stored
// ids the model no longer has are ignored.
func (s *explorerService) state(ctx context.Context, m *graph.Model) (visibility.ViewState, error) {
	state := visibility.NewViewState(m)
	stored, err := s.views.Load(ctx, m.Name())
	if err != nil {
		return visibility.ViewState{}, err
	}
	for id, expanded := range stored.GroupExpanded {
		if _, ok := state.GroupExpanded[id]; ok {
			state.GroupExpanded[id] = expanded
		}
	}
	for id, enabled := range stored.PhaseEnabled {
		if _, ok := state.PhaseEnabled[id]; ok {
			state.PhaseEnabled[id] = enabled
		}
	}
	return state, nil
}

func (s *explorerService) View(ctx context.Context) (*View, error) {
	m := s.Model()
	state, err := s.state(ctx, m)
	if err != nil {
		return nil, err
	}
	rate, err := s.HourlyRate(ctx)
	if err != nil {
		return nil, err
	}

	nodes := visibility.VisibleNodes(m, state)
	v := &View{
		Dataset:    m.Name(),
		State:      state,
		Nodes:      nodes,
		Links:      visibility.VisibleLinks(m, state, s.logger),
		Hidden:     visibility.HiddenCount(m, state),
		Parallel:   m.ParallelProcesses(),
		HourlyRate: rate,
	}

	for _, g := range m.Groups() {
		members, _ := m.NodesInGroup(g.ID)
		v.Groups = append(v.Groups, GroupView{
			Group:    g,
			Expanded: state.GroupIsExpanded(g.ID),
			Members:  len(members),
		})
	}

	perPhase := make(map[string]int)
	for _, n := range m.Nodes() {
		if owner, ok := m.StageOwnerPhase(n.Stage); ok {
			perPhase[owner]++
		}
	}
	for _, p := range m.Phases() {
		v.Phases = append(v.Phases, PhaseView{
			Phase:   p,
			Enabled: state.PhaseIsEnabled(p.ID),
			Nodes:   perPhase[p.ID],
		})
	}
	return v, nil
}

func (s *explorerService) VisibleNodes(ctx context.Context) ([]domain.Node, error) {
	m := s.Model()
	state, err := s.state(ctx, m)
	if err != nil {
		return nil, err
	}
	return visibility.VisibleNodes(m, state), nil
}

func (s *explorerService) Node(ctx context.Context, id int) (*NodeDetail, error) {
	m := s.Model()
	n, err := m.Node(id)
	if err != nil {
		return nil, err
	}
	state, err := s.state(ctx, m)
	if err != nil {
		return nil, err
	}

	d := &NodeDetail{
		Node:     n,
		Visible:  visibility.IsVisible(m, n, state),
		Outgoing: m.Outgoing(id),
	}
	d.PhaseID, _ = m.StageOwnerPhase(n.Stage)
	for _, l := range m.Links() {
		if l.Target == id {
			d.Incoming = append(d.Incoming, l)
		}
	}
	return d, nil
}

// Search matches against visible nodes, or every node when includeHidden
// is set.
func (s *explorerService) Search(ctx context.Context, query string, includeHidden bool) (hits []SearchHit, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"query": query, "include_hidden": includeHidden}
	defer observe(ctx, s.observer, "search", startedAt, fields, &err)

	m := s.Model()
	state, err := s.state(ctx, m)
	if err != nil {
		return nil, err
	}

	pool := m.Nodes()
	if !includeHidden {
		pool = visibility.VisibleNodes(m, state)
	}

	hits = []SearchHit{}
	for _, n := range search.Search(pool, query) {
		hits = append(hits, SearchHit{
			Node:    n,
			Fields:  search.MatchedFields(n, query),
			Visible: visibility.IsVisible(m, n, state),
		})
	}
	fields["hits"] = len(hits)
	return hits, nil
}

// Estimate prices a selection. Repeated ids count once. A nil rate uses the
// stored rate.
func (s *explorerService) Estimate(ctx context.Context, ids []int, rate *float64) (res *EstimateResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"selected": len(ids)}
	defer observe(ctx, s.observer, "estimate", startedAt, fields, &err)

	effective, err := s.resolveRate(ctx, rate)
	if err != nil {
		return nil, err
	}
	nodes, missing := resolveNodes(s.Model(), ids)
	if len(missing) > 0 {
		return nil, fmt.Errorf("unknown node ids %v: %w", missing, graph.ErrNotFound)
	}

	fields["rate"] = effective
	return priced(nodes, effective), nil
}

func (s *explorerService) resolveRate(ctx context.Context, rate *float64) (float64, error) {
	if rate == nil {
		return s.HourlyRate(ctx)
	}
	if *rate < 0 {
		return 0, fmt.Errorf("%g: %w", *rate, ErrInvalidRate)
	}
	return *rate, nil
}

func priced(nodes []domain.Node, rate float64) *EstimateResult {
	return &EstimateResult{
		Nodes:    nodes,
		Estimate: cost.Aggregate(nodes, rate),
		Lines:    cost.Breakdown(nodes, rate),
		Rate:     rate,
	}
}

// resolveNodes looks ids up in selection order, dropping repeats. Ids the
// model lacks are returned in missing.
func resolveNodes(m *graph.Model, ids []int) (nodes []domain.Node, missing []int) {
	seen := make(map[int]bool, len(ids))
	nodes = []domain.Node{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		n, err := m.Node(id)
		if err != nil {
			missing = append(missing, id)
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, missing
}

func (s *explorerService) Paths(ctx context.Context, start, end int, visibleOnly bool) (paths [][]int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"start": start, "end": end, "visible_only": visibleOnly}
	defer observe(ctx, s.observer, "paths", startedAt, fields, &err)

	m := s.Model()
	for _, id := range []int{start, end} {
		if !m.HasNode(id) {
			return nil, fmt.Errorf("node %d: %w", id, graph.ErrNotFound)
		}
	}

	var links []domain.Link
	for _, l := range m.Links() {
		if m.HasNode(l.Source) && m.HasNode(l.Target) {
			links = append(links, l)
		}
	}
	paths = pathfind.FindPaths(links, start, end)

	if visibleOnly {
		state, err := s.state(ctx, m)
		if err != nil {
			return nil, err
		}
		paths = pathfind.Visible(paths, func(id int) bool {
			n, err := m.Node(id)
			return err == nil && visibility.IsVisible(m, n, state)
		})
	}
	fields["paths"] = len(paths)
	return paths, nil
}

func (s *explorerService) SetGroup(ctx context.Context, groupID string, expanded bool) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"group": groupID, "expanded": expanded}
	defer observe(ctx, s.observer, "set-group", startedAt, fields, &err)

	m := s.Model()
	if _, err := m.Group(groupID); err != nil {
		return err
	}
	return s.views.SaveGroup(ctx, m.Name(), groupID, expanded)
}

// ToggleGroup flips a group and returns its new expansion state.
func (s *explorerService) ToggleGroup(ctx context.Context, groupID string) (bool, error) {
	m := s.Model()
	if _, err := m.Group(groupID); err != nil {
		return false, err
	}
	state, err := s.state(ctx, m)
	if err != nil {
		return false, err
	}
	next := state.ToggleGroup(groupID)
	expanded := next.GroupIsExpanded(groupID)
	return expanded, s.SetGroup(ctx, groupID, expanded)
}

func (s *explorerService) SetPhase(ctx context.Context, phaseID string, enabled bool) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"phase": phaseID, "enabled": enabled}
	defer observe(ctx, s.observer, "set-phase", startedAt, fields, &err)

	m := s.Model()
	if _, err := m.Phase(phaseID); err != nil {
		return err
	}
	return s.views.SavePhase(ctx, m.Name(), phaseID, enabled)
}

// TogglePhase flips a phase and returns its new enable state.
func (s *explorerService) TogglePhase(ctx context.Context, phaseID string) (bool, error) {
	m := s.Model()
	if _, err := m.Phase(phaseID); err != nil {
		return false, err
	}
	state, err := s.state(ctx, m)
	if err != nil {
		return false, err
	}
	next := state.TogglePhase(phaseID)
	enabled := next.PhaseIsEnabled(phaseID)
	return enabled, s.SetPhase(ctx, phaseID, enabled)
}

// Reset restores every group and phase to its static default.
func (s *explorerService) Reset(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "reset", startedAt, nil, &err)

	return s.views.Reset(ctx, s.Model().Name())
}

// HourlyRate returns the stored rate, or the configured default when none
// is stored.
func (s *explorerService) HourlyRate(ctx context.Context) (float64, error) {
	rate, err := repository.GetFloat(ctx, s.settings, repository.SettingHourlyRate)
	if errors.Is(err, repository.ErrNotFound) {
		return max(s.opts.DefaultRate, 0), nil
	}
	if err != nil {
		return 0, err
	}
	return rate, nil
}

func (s *explorerService) SetHourlyRate(ctx context.Context, rate float64) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"rate": rate}
	defer observe(ctx, s.observer, "set-rate", startedAt, fields, &err)

	if rate < 0 {
		return fmt.Errorf("%g: %w", rate, ErrInvalidRate)
	}
	return repository.SetFloat(ctx, s.settings, repository.SettingHourlyRate, rate)
}

func (s *explorerService) Export(ctx context.Context, format domain.ExportFormat, all bool) (out []byte, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"format": string(format), "all": all}
	defer observe(ctx, s.observer, "export", startedAt, fields, &err)

	m := s.Model()
	state, err := s.state(ctx, m)
	if err != nil {
		return nil, err
	}
	return export.Render(format, m, state, export.Options{All: all, Logger: s.logger})
}
