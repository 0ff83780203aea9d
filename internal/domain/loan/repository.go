package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	List(ctx context.Context, f ListFilter) ([]Loan, error)
	CountByBorrower(ctx context.Context, borrowerID uint64) (int64, error)
	// Stats aggregates over the lender's loans; active means APPROVED.
	Stats(ctx context.Context, lenderID uint64) (Stats, error)
}
