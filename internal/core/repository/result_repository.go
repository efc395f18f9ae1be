package repository

import (
	"context"

	"github.com/martijn/resultsapi/internal/core/domain"
)

// ResultFilter selects and orders results for List.
type ResultFilter struct {
	// Sort is one of ResultSortFields; empty means "id".
	Sort string
}

// ResultSortFields are the accepted values of ResultFilter.Sort.
// email and roles order by the owner's columns.
var ResultSortFields = []string{"id", "email", "roles", "result", "time"}

type ResultRepository interface {
	// Insert stores a new result and sets its ID.
	Insert(ctx context.Context, result *domain.Result) error
	// Remove deletes the result.
	Remove(ctx context.Context, result *domain.Result) error
	FindByID(ctx context.Context, id int64) (*domain.Result, error)
	List(ctx context.Context, filter ResultFilter) ([]*domain.Result, error)
	// Update writes value and time if the stored version still equals
	// result.Version, then increments result.Version. Otherwise ErrConflict.
	Update(ctx context.Context, result *domain.Result) error
}
