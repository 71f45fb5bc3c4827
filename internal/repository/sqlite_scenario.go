package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/docketflow/internal/db"
	"github.com/alexanderramin/docketflow/internal/domain"
)

// SQLiteScenarioRepo implements ScenarioRepo using a SQLite database.
type SQLiteScenarioRepo struct {
	db db.DBTX
}

func NewSQLiteScenarioRepo(conn db.DBTX) *SQLiteScenarioRepo {
	return &SQLiteScenarioRepo{db: conn}
}

// Create inserts the scenario and its node selection. Run it inside a
// UnitOfWork so a failed node insert does not leave an empty scenario.
func (r *SQLiteScenarioRepo) Create(ctx context.Context, s *domain.Scenario) error {
	query := `INSERT INTO scenarios (id, name, dataset, hourly_rate, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Dataset,
		s.HourlyRate,
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("scenario %q: %w", s.Name, ErrDuplicateName)
		}
		return fmt.Errorf("inserting scenario: %w", err)
	}

	for i, nodeID := range s.NodeIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO scenario_nodes (scenario_id, position, node_id) VALUES (?, ?, ?)`,
			s.ID, i, nodeID)
		if err != nil {
			return fmt.Errorf("inserting scenario node %d: %w", nodeID, err)
		}
	}
	return nil
}

func (r *SQLiteScenarioRepo) GetByName(ctx context.Context, name string) (*domain.Scenario, error) {
	query := `SELECT id, name, dataset, hourly_rate, created_at FROM scenarios WHERE name = ?`
	s, err := scanScenario(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scenario %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning scenario: %w", err)
	}
	if s.NodeIDs, err = r.nodeIDs(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteScenarioRepo) List(ctx context.Context) ([]*domain.Scenario, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, dataset, hourly_rate, created_at FROM scenarios ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}

	var out []*domain.Scenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning scenario: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// Node ids are read after the rows are closed; a :memory: store has a
	// single connection.
	for _, s := range out {
		if s.NodeIDs, err = r.nodeIDs(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteScenarioRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scenarios WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting scenario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting scenario: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("scenario %q: %w", name, ErrNotFound)
	}
	return nil
}

func (r *SQLiteScenarioRepo) nodeIDs(ctx context.Context, scenarioID string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT node_id FROM scenario_nodes WHERE scenario_id = ? ORDER BY position`, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("listing scenario nodes: %w", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning scenario node: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*domain.Scenario, error) {
	var s domain.Scenario
	var createdAt string
	if err := row.Scan(&s.ID, &s.Name, &s.Dataset, &s.HourlyRate, &createdAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	s.CreatedAt = t
	return &s, nil
}
