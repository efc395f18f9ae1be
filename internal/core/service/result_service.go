package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/martijn/resultsapi/internal/adapter/logging"
	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/repository"
)

// CreateResultInput is a validated create request.
type CreateResultInput struct {
	Value      int64
	Time       time.Time
	OwnerEmail string
}

// UpdateResultInput carries the fields to overwrite; nil leaves a field as is.
type UpdateResultInput struct {
	Value *int64
	Time  *time.Time
}

type ResultService struct {
	resultRepo repository.ResultRepository
	userRepo   repository.UserRepository
	logger     logging.Logger
}

func NewResultService(
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
	logger logging.Logger,
) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// List returns every result ordered by sort (empty means "id").
// An empty store is reported as not found.
func (s *ResultService) List(ctx context.Context, p domain.Principal, sort string) ([]*domain.Result, error) {
	if sort != "" && !slices.Contains(repository.ResultSortFields, sort) {
		return nil, NewServiceError(http.StatusBadRequest,
			fmt.Sprintf("invalid sort field %q (valid fields: %s)", sort, strings.Join(repository.ResultSortFields, ", ")))
	}

	results, err := s.resultRepo.List(ctx, repository.ResultFilter{Sort: sort})
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrResultNotFound
	}
	return results, nil
}

// Create stores a result owned by in.OwnerEmail. Non-admins may only
// create results for themselves.
func (s *ResultService) Create(ctx context.Context, p domain.Principal, in CreateResultInput) (*domain.Result, error) {
	owner, err := s.userRepo.FindByEmail(ctx, in.OwnerEmail)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnknownOwner
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	if !p.CanManage(owner.ID) {
		return nil, forbidden("create")
	}

	result := domain.NewResult(in.Value, owner, in.Time)
	if err := s.resultRepo.Insert(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to create result: %w", err)
	}

	s.logger.Info("result created", "id", result.ID, "owner", owner.Email, "by", p.Email)
	return result, nil
}

// Get returns the result if p may see it.
func (s *ResultService) Get(ctx context.Context, p domain.Principal, id int64) (*domain.Result, error) {
	return s.load(ctx, p, id, "get")
}

// Load returns the result if p may change it, as the base for a
// conditional Update.
func (s *ResultService) Load(ctx context.Context, p domain.Principal, id int64) (*domain.Result, error) {
	return s.load(ctx, p, id, "update")
}

func (s *ResultService) load(ctx context.Context, p domain.Principal, id int64, verb string) (*domain.Result, error) {
	result, err := s.resultRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find result: %w", err)
	}

	if !p.CanManage(result.UserID) {
		return nil, forbidden(verb)
	}
	return result, nil
}

// Update applies in to current, which must come from Load. The write only
// succeeds if nobody changed the result since it was read; otherwise
// ErrPreconditionFailed. current is updated in place.
func (s *ResultService) Update(ctx context.Context, p domain.Principal, current *domain.Result, in UpdateResultInput) (*domain.Result, error) {
	if !p.CanManage(current.UserID) {
		return nil, forbidden("update")
	}

	if in.Value != nil {
		current.Value = *in.Value
	}
	if in.Time != nil {
		current.Time = in.Time.UTC().Truncate(time.Second)
	}

	err := s.resultRepo.Update(ctx, current)
	if errors.Is(err, repository.ErrConflict) {
		s.logger.Warn("result update lost a race", "id", current.ID, "version", current.Version)
		return nil, ErrPreconditionFailed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update result: %w", err)
	}

	s.logger.Info("result updated", "id", current.ID, "version", current.Version, "by", p.Email)
	return current, nil
}

func (s *ResultService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	result, err := s.load(ctx, p, id, "delete")
	if err != nil {
		return err
	}

	err = s.resultRepo.Remove(ctx, result)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrResultNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}

	s.logger.Info("result deleted", "id", id, "by", p.Email)
	return nil
}

func forbidden(verb string) *ServiceError {
	return NewServiceError(http.StatusForbidden, fmt.Sprintf(msgForbiddenVerb, verb))
}
