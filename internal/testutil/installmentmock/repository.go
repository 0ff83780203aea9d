package installmentmock

import (
	"context"
	"time"

	domain "loanbook-backend/internal/domain/installment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateBatchFn           func(ctx context.Context, items []*domain.Installment) error
	ListByLoanIDFn          func(ctx context.Context, loanID uint64) ([]domain.Installment, error)
	ListPendingDueBetweenFn func(ctx context.Context, from, to time.Time) ([]domain.Installment, error)
}

func (m *Repo) CreateBatch(ctx context.Context, items []*domain.Installment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, items)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Installment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListPendingDueBetween(ctx context.Context, from, to time.Time) ([]domain.Installment, error) {
	if m.ListPendingDueBetweenFn != nil {
		return m.ListPendingDueBetweenFn(ctx, from, to)
	}
	return nil, context.Canceled
}
