package repository

import (
	"context"

	"github.com/martijn/resultsapi/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]*domain.User, error)
}
