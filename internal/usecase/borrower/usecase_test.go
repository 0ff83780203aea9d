package borrower

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"loanbook-backend/internal/domain/apperr"
	"loanbook-backend/internal/domain/auth"
	domain "loanbook-backend/internal/domain/borrower"
	"loanbook-backend/internal/domain/loan"
	"loanbook-backend/internal/domain/uow"
	"loanbook-backend/internal/testutil/borrowermock"
	"loanbook-backend/internal/testutil/loanmock"
	"loanbook-backend/internal/testutil/uowmock"
	"loanbook-backend/pkg/money"
)

var lender = auth.ForLender(9)

func newUsecase(borrowers *borrowermock.Repo, loans *loanmock.Repo) *Usecase {
	log, _ := test.NewNullLogger()
	tx := uowmock.Passthrough(uow.Repos{Borrowers: borrowers, Loans: loans})
	return NewUsecase(borrowers, loans, tx, log)
}

func notFound(context.Context, string) (*domain.Borrower, error) { return nil, gorm.ErrRecordNotFound }

func TestCreate_NormalizesAndPersists(t *testing.T) {
	var saved *domain.Borrower
	repo := &borrowermock.Repo{
		GetByEmailFn: notFound,
		CreateFn: func(_ context.Context, b *domain.Borrower) error {
			b.ID = 3
			saved = b
			return nil
		},
	}
	uc := newUsecase(repo, &loanmock.Repo{})

	out, err := uc.Create(context.Background(), lender, CreateInput{Name: "  Siti Aminah ", Email: " Siti@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), out.ID)
	assert.Equal(t, "Siti Aminah", saved.Name)
	assert.Equal(t, "siti@example.com", saved.Email)
}

func TestCreate_Errors(t *testing.T) {
	ctx := context.Background()

	uc := newUsecase(&borrowermock.Repo{}, &loanmock.Repo{})
	_, err := uc.Create(ctx, auth.Anonymous(), CreateInput{Name: "Siti", Email: "siti@example.com"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = uc.Create(ctx, lender, CreateInput{Name: "S", Email: "nope"})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Len(t, ae.Fields, 2, "name and email are both reported")

	taken := newUsecase(&borrowermock.Repo{
		GetByEmailFn: func(context.Context, string) (*domain.Borrower, error) {
			return &domain.Borrower{ID: 1}, nil
		},
	}, &loanmock.Repo{})
	_, err = taken.Create(ctx, lender, CreateInput{Name: "Siti", Email: "siti@example.com"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	raced := newUsecase(&borrowermock.Repo{
		GetByEmailFn: notFound,
		CreateFn:     func(context.Context, *domain.Borrower) error { return gorm.ErrDuplicatedKey },
	}, &loanmock.Repo{})
	_, err = raced.Create(ctx, lender, CreateInput{Name: "Siti", Email: "siti@example.com"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	broken := newUsecase(&borrowermock.Repo{
		GetByEmailFn: notFound,
		CreateFn:     func(context.Context, *domain.Borrower) error { return errors.New("db gone") },
	}, &loanmock.Repo{})
	_, err = broken.Create(ctx, lender, CreateInput{Name: "Siti", Email: "siti@example.com"})
	assert.ErrorIs(t, err, apperr.ErrInternal)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	current := func() *domain.Borrower { return &domain.Borrower{ID: 3, Name: "Siti", Email: "siti@example.com"} }

	saved := false
	repo := &borrowermock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*domain.Borrower, error) {
			if id != 3 {
				return nil, gorm.ErrRecordNotFound
			}
			return current(), nil
		},
		GetByEmailFn: func(_ context.Context, email string) (*domain.Borrower, error) {
			if email == "budi@example.com" {
				return &domain.Borrower{ID: 4}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		SaveFn: func(context.Context, *domain.Borrower) error { saved = true; return nil },
	}
	uc := newUsecase(repo, &loanmock.Repo{})

	out, err := uc.Update(ctx, lender, 3, UpdateInput{Name: "Siti A.", Email: "siti@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Siti A.", out.Name)
	assert.True(t, saved)

	_, err = uc.Update(ctx, lender, 3, UpdateInput{Name: "Siti", Email: "budi@example.com"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = uc.Update(ctx, lender, 404, UpdateInput{Name: "Siti", Email: "x@example.com"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = uc.Update(ctx, auth.Anonymous(), 3, UpdateInput{Name: "Siti", Email: "x@example.com"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestGet_OnlyCallersLoans(t *testing.T) {
	var filter loan.ListFilter
	loans := &loanmock.Repo{
		ListFn: func(_ context.Context, f loan.ListFilter) ([]loan.Loan, error) {
			filter = f
			return []loan.Loan{{ID: 1, Title: "Stock", Amount: money.MustParse("50.00"), Status: loan.StatusRequested}}, nil
		},
	}
	repo := &borrowermock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*domain.Borrower, error) {
			return &domain.Borrower{ID: id, Name: "Siti"}, nil
		},
	}
	uc := newUsecase(repo, loans)

	out, err := uc.Get(context.Background(), lender, 3)
	require.NoError(t, err)
	assert.Equal(t, loan.ListFilter{LenderID: 9, BorrowerID: 3}, filter)
	require.Len(t, out.Loans, 1)
	assert.Equal(t, "REQUESTED", out.Loans[0].Status)
}

func TestList(t *testing.T) {
	repo := &borrowermock.Repo{
		ListFn: func(_ context.Context, f domain.Filter) ([]domain.Borrower, error) {
			assert.Equal(t, "siti", f.NameContains)
			return []domain.Borrower{{ID: 1}, {ID: 2}}, nil
		},
	}
	uc := newUsecase(repo, &loanmock.Repo{})

	out, err := uc.List(context.Background(), lender, "  siti ")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	deleted := false
	repo := &borrowermock.Repo{
		GetByIDForUpdateFn: func(_ context.Context, id uint64) (*domain.Borrower, error) {
			if id == 404 {
				return nil, gorm.ErrRecordNotFound
			}
			return &domain.Borrower{ID: id}, nil
		},
		DeleteFn: func(context.Context, uint64) error { deleted = true; return nil },
	}
	loans := &loanmock.Repo{
		CountByBorrowerFn: func(_ context.Context, id uint64) (int64, error) {
			if id == 5 {
				return 2, nil
			}
			return 0, nil
		},
	}
	uc := newUsecase(repo, loans)

	err := uc.Delete(ctx, lender, 5)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.False(t, deleted, "borrower with loans must survive")

	assert.ErrorIs(t, uc.Delete(ctx, lender, 404), apperr.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, lender, 6))
	assert.True(t, deleted)

	assert.ErrorIs(t, uc.Delete(ctx, auth.Anonymous(), 6), apperr.ErrUnauthorized)

	loans.CountByBorrowerFn = func(context.Context, uint64) (int64, error) { return 0, errors.New("db gone") }
	assert.ErrorIs(t, uc.Delete(ctx, lender, 6), apperr.ErrInternal)
}
