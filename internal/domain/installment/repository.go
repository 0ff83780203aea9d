package installment

import (
	"context"
	"time"
)

type Repository interface {
	// CreateBatch inserts the whole plan; callers run it inside the loan's transaction.
	CreateBatch(ctx context.Context, items []*Installment) error
	// ListByLoanID returns installments ordered by installment number.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Installment, error)
	// ListPendingDueBetween returns PENDING installments with from <= due_date < to.
	ListPendingDueBetween(ctx context.Context, from, to time.Time) ([]Installment, error)
}
