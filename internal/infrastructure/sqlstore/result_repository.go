package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/repository"
)

const resultSelect = `
	SELECT r.id, r.result, r.user_id, r.time, r.version, u.email AS owner_email
	FROM results r
	JOIN users u ON u.id = r.user_id
`

type resultRepository struct {
	db *DB
}

func NewResultRepository(db *DB) repository.ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Insert(ctx context.Context, result *domain.Result) error {
	if result.Version == 0 {
		result.Version = 1
	}

	query := r.db.Rebind(`
		INSERT INTO results (result, user_id, time, version)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		result.Value,
		result.UserID,
		result.Time,
		result.Version,
	).Scan(&result.ID)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

func (r *resultRepository) Remove(ctx context.Context, result *domain.Result) error {
	query := r.db.Rebind(`DELETE FROM results WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, result.ID)
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("result %d: %w", result.ID, repository.ErrNotFound)
	}

	return nil
}

func (r *resultRepository) FindByID(ctx context.Context, id int64) (*domain.Result, error) {
	query := r.db.Rebind(resultSelect + ` WHERE r.id = ?`)

	var result domain.Result
	err := r.db.GetContext(ctx, &result, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("result %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find result: %w", err)
	}
	return &result, nil
}

func (r *resultRepository) List(ctx context.Context, filter repository.ResultFilter) ([]*domain.Result, error) {
	query, err := ApplyOrdering(resultSelect, resultSortColumns, filter.Sort, "id", "r.id")
	if err != nil {
		return nil, err
	}

	results := []*domain.Result{}
	if err := r.db.SelectContext(ctx, &results, r.db.Rebind(query)); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

func (r *resultRepository) Update(ctx context.Context, result *domain.Result) error {
	query := r.db.Rebind(`
		UPDATE results
		SET result = ?, time = ?, version = version + 1
		WHERE id = ? AND version = ?
	`)
	res, err := r.db.ExecContext(ctx, query,
		result.Value,
		result.Time,
		result.ID,
		result.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update result: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("result %d at version %d: %w", result.ID, result.Version, repository.ErrConflict)
	}

	result.Version++
	return nil
}
