package repository

import (
	"context"

	"github.com/alexanderramin/docketflow/internal/domain"
)

// StoredViewState holds the persisted toggles for one dataset. Groups and
// phases never toggled are absent.
type StoredViewState struct {
	GroupExpanded map[string]bool
	PhaseEnabled  map[string]bool
}

type ViewStateRepo interface {
	Load(ctx context.Context, dataset string) (StoredViewState, error)
	SaveGroup(ctx context.Context, dataset, groupID string, expanded bool) error
	SavePhase(ctx context.Context, dataset, phaseID string, enabled bool) error
	Reset(ctx context.Context, dataset string) error
}

type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type ScenarioRepo interface {
	Create(ctx context.Context, s *domain.Scenario) error
	GetByName(ctx context.Context, name string) (*domain.Scenario, error)
	List(ctx context.Context) ([]*domain.Scenario, error)
	Delete(ctx context.Context, name string) error
}
