package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/docketflow/internal/db"
	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/graph"
	"github.com/alexanderramin/docketflow/internal/repository"
	"github.com/google/uuid"
)

type scenarioService struct {
	explorer  ExplorerService
	scenarios repository.ScenarioRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewScenarioService(explorer ExplorerService, scenarios repository.ScenarioRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ScenarioService {
	return &scenarioService{
		explorer:  explorer,
		scenarios: scenarios,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Save stores a named selection against the current dataset. Repeated ids
// are kept once. A nil rate saves the current hourly rate.
func (s *scenarioService) Save(ctx context.Context, name string, ids []int, rate *float64) (sc *domain.Scenario, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": name, "selected": len(ids)}
	defer observe(ctx, s.observer, "save-scenario", startedAt, fields, &err)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(ids) == 0 {
		return nil, ErrNoSelection
	}

	m := s.explorer.Model()
	nodes, missing := resolveNodes(m, ids)
	if len(missing) > 0 {
		return nil, fmt.Errorf("unknown node ids %v: %w", missing, graph.ErrNotFound)
	}

	effective, err := s.rate(ctx, rate)
	if err != nil {
		return nil, err
	}

	sc = &domain.Scenario{
		ID:         uuid.New().String(),
		Name:       name,
		Dataset:    m.Name(),
		NodeIDs:    make([]int, 0, len(nodes)),
		HourlyRate: effective,
		CreatedAt:  time.Now().UTC(),
	}
	for _, n := range nodes {
		sc.NodeIDs = append(sc.NodeIDs, n.ID)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteScenarioRepo(tx).Create(ctx, sc)
	})
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *scenarioService) rate(ctx context.Context, rate *float64) (float64, error) {
	if rate == nil {
		return s.explorer.HourlyRate(ctx)
	}
	if *rate < 0 {
		return 0, fmt.Errorf("%g: %w", *rate, ErrInvalidRate)
	}
	return *rate, nil
}

func (s *scenarioService) List(ctx context.Context) ([]*domain.Scenario, error) {
	return s.scenarios.List(ctx)
}

// Show prices a saved scenario at its own rate. Ids the current dataset no
// longer has are skipped and reported in Missing.
func (s *scenarioService) Show(ctx context.Context, name string) (*ScenarioDetail, error) {
	sc, err := s.scenarios.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	nodes, missing := resolveNodes(s.explorer.Model(), sc.NodeIDs)
	return &ScenarioDetail{
		Scenario: sc,
		Result:   priced(nodes, sc.HourlyRate),
		Missing:  missing,
	}, nil
}

func (s *scenarioService) Delete(ctx context.Context, name string) (err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "delete-scenario", startedAt, map[string]any{"name": name}, &err)

	return s.scenarios.Delete(ctx, strings.TrimSpace(name))
}
