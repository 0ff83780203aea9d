package loanmock

import (
	"context"

	domain "loanbook-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error; reads default to context.Canceled.
type Repo struct {
	CreateFn          func(ctx context.Context, l *domain.Loan) error
	GetByIDFn         func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListFn            func(ctx context.Context, f domain.ListFilter) ([]domain.Loan, error)
	CountByBorrowerFn func(ctx context.Context, borrowerID uint64) (int64, error)
	StatsFn           func(ctx context.Context, lenderID uint64) (domain.Stats, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByBorrower(ctx context.Context, borrowerID uint64) (int64, error) {
	if m.CountByBorrowerFn != nil {
		return m.CountByBorrowerFn(ctx, borrowerID)
	}
	return 0, context.Canceled
}

func (m *Repo) Stats(ctx context.Context, lenderID uint64) (domain.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx, lenderID)
	}
	return domain.Stats{}, context.Canceled
}
