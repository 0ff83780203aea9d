package uow

import (
	"context"

	"loanbook-backend/internal/domain/borrower"
	"loanbook-backend/internal/domain/installment"
	"loanbook-backend/internal/domain/loan"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Loans        loan.Repository
	Installments installment.Repository
	Borrowers    borrower.Repository
}

type UnitOfWork interface {
	// plain tx; any error returned by fn rolls everything back
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the borrower row first, then pass it in
	WithinBorrowerTx(ctx context.Context, borrowerID uint64, fn func(r Repos, b *borrower.Borrower) error) error
}
