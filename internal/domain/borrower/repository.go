package borrower

import "context"

type Repository interface {
	Create(ctx context.Context, b *Borrower) error
	Save(ctx context.Context, b *Borrower) error
	GetByID(ctx context.Context, id uint64) (*Borrower, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Borrower, error)
	GetByEmail(ctx context.Context, email string) (*Borrower, error)
	List(ctx context.Context, f Filter) ([]Borrower, error)
	Delete(ctx context.Context, id uint64) error
}
