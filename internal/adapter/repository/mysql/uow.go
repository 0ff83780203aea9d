package mysql

import (
	"context"

	"loanbook-backend/internal/domain/borrower"
	"loanbook-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:        &LoanRepository{db: tx},
		Installments: &InstallmentRepository{db: tx},
		Borrowers:    &BorrowerRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinBorrowerTx(ctx context.Context, borrowerID uint64, fn func(r uow.Repos, b *borrower.Borrower) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the borrower row up-front so a concurrent delete waits for us
		b, err := r.Borrowers.GetByIDForUpdate(ctx, borrowerID)
		if err != nil {
			return err
		}
		return fn(r, b)
	})
}
