package uowmock

import (
	"context"
	"errors"

	"loanbook-backend/internal/domain/borrower"
	"loanbook-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinBorrowerTxFn func(ctx context.Context, borrowerID uint64, fn func(r uow.Repos, b *borrower.Borrower) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinBorrowerTx(fn func(context.Context, uint64, func(uow.Repos, *borrower.Borrower) error) error) *UoW {
	m.WithinBorrowerTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

// Passthrough returns a UoW that runs fn directly against repos, with no
// transaction. A borrower tx looks the borrower up through repos.Borrowers.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinBorrowerTxFn: func(ctx context.Context, id uint64, fn func(uow.Repos, *borrower.Borrower) error) error {
			b, err := repos.Borrowers.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, b)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinBorrowerTx(ctx context.Context, borrowerID uint64, fn func(r uow.Repos, b *borrower.Borrower) error) error {
	if m.WithinBorrowerTxFn != nil {
		return m.WithinBorrowerTxFn(ctx, borrowerID, fn)
	}
	return errUnimplemented
}
