package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/docketflow/internal/db"
)

// SQLiteViewStateRepo implements ViewStateRepo using a SQLite database.
type SQLiteViewStateRepo struct {
	db db.DBTX
}

func NewSQLiteViewStateRepo(conn db.DBTX) *SQLiteViewStateRepo {
	return &SQLiteViewStateRepo{db: conn}
}

func (r *SQLiteViewStateRepo) Load(ctx context.Context, dataset string) (StoredViewState, error) {
	state := StoredViewState{
		GroupExpanded: make(map[string]bool),
		PhaseEnabled:  make(map[string]bool),
	}

	if err := r.loadFlags(ctx,
		`SELECT group_id, expanded FROM group_state WHERE dataset = ?`, dataset, state.GroupExpanded); err != nil {
		return StoredViewState{}, fmt.Errorf("loading group state: %w", err)
	}
	if err := r.loadFlags(ctx,
		`SELECT phase_id, enabled FROM phase_state WHERE dataset = ?`, dataset, state.PhaseEnabled); err != nil {
		return StoredViewState{}, fmt.Errorf("loading phase state: %w", err)
	}
	return state, nil
}

func (r *SQLiteViewStateRepo) loadFlags(ctx context.Context, query, dataset string, into map[string]bool) error {
	rows, err := r.db.QueryContext(ctx, query, dataset)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var flag int
		if err := rows.Scan(&id, &flag); err != nil {
			return err
		}
		into[id] = intToBool(flag)
	}
	return rows.Err()
}

func (r *SQLiteViewStateRepo) SaveGroup(ctx context.Context, dataset, groupID string, expanded bool) error {
	query := `INSERT INTO group_state (dataset, group_id, expanded, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(dataset, group_id) DO UPDATE SET expanded = excluded.expanded, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, dataset, groupID, boolToInt(expanded), nowUTC()); err != nil {
		return fmt.Errorf("saving group %s: %w", groupID, err)
	}
	return nil
}

func (r *SQLiteViewStateRepo) SavePhase(ctx context.Context, dataset, phaseID string, enabled bool) error {
	query := `INSERT INTO phase_state (dataset, phase_id, enabled, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(dataset, phase_id) DO UPDATE SET enabled = excluded.enabled, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, dataset, phaseID, boolToInt(enabled), nowUTC()); err != nil {
		return fmt.Errorf("saving phase %s: %w", phaseID, err)
	}
	return nil
}

// Reset forgets every stored toggle for dataset.
func (r *SQLiteViewStateRepo) Reset(ctx context.Context, dataset string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM group_state WHERE dataset = ?`, dataset); err != nil {
		return fmt.Errorf("resetting group state: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM phase_state WHERE dataset = ?`, dataset); err != nil {
		return fmt.Errorf("resetting phase state: %w", err)
	}
	return nil
}
