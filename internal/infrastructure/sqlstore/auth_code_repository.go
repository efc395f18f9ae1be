package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/repository"
)

type authCodeRepository struct {
	db *DB
}

func NewAuthCodeRepository(db *DB) repository.AuthCodeRepository {
	return &authCodeRepository{db: db}
}

func (r *authCodeRepository) Create(ctx context.Context, authCode *domain.AuthCode) error {
	query := r.db.Rebind(`
		INSERT INTO auth_codes (code, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		authCode.Code,
		authCode.UserID,
		authCode.ExpiresAt,
		authCode.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create auth code: %w", err)
	}
	return nil
}

func (r *authCodeRepository) FindByCode(ctx context.Context, code string) (*domain.AuthCode, error) {
	query := r.db.Rebind(`
		SELECT code, user_id, expires_at, created_at
		FROM auth_codes
		WHERE code = ?
	`)
	var authCode domain.AuthCode
	err := r.db.GetContext(ctx, &authCode, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("auth code: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find auth code: %w", err)
	}
	return &authCode, nil
}

func (r *authCodeRepository) Delete(ctx context.Context, code string) error {
	query := r.db.Rebind(`DELETE FROM auth_codes WHERE code = ?`)
	result, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to delete auth code: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("auth code: %w", repository.ErrNotFound)
	}

	return nil
}

func (r *authCodeRepository) DeleteExpired(ctx context.Context) error {
	query := r.db.Rebind(`DELETE FROM auth_codes WHERE expires_at < ?`)
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete expired auth codes: %w", err)
	}
	return nil
}
