package borrower

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loanbook-backend/internal/domain/apperr"
	"loanbook-backend/internal/domain/auth"
	domain "loanbook-backend/internal/domain/borrower"
	"loanbook-backend/internal/domain/loan"
	"loanbook-backend/internal/domain/uow"
	"loanbook-backend/internal/validation"
)

type Usecase struct {
	borrowers domain.Repository
	loans     loan.Repository
	uow       uow.UnitOfWork
	validator *validation.CustomValidator
	log       logrus.FieldLogger
}

func NewUsecase(borrowers domain.Repository, loans loan.Repository, tx uow.UnitOfWork, log logrus.FieldLogger) *Usecase {
	return &Usecase{borrowers: borrowers, loans: loans, uow: tx, validator: validation.New(), log: log}
}

func requireLender(p auth.Principal) (uint64, error) {
	id, ok := p.Lender()
	if !ok {
		return 0, apperr.Unauthorized("authentication required")
	}
	return id, nil
}

func normalize(in CreateInput) CreateInput {
	return CreateInput{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
	}
}

func (u *Usecase) validate(in CreateInput) error {
	if err := u.validator.Validate(in); err != nil {
		return apperr.Invalid("invalid input", validation.ToFieldErrors(err)...)
	}
	return nil
}

func toDTO(b *domain.Borrower) BorrowerDTO {
	return BorrowerDTO{ID: b.ID, Name: b.Name, Email: b.Email, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

func emailTaken(email string) error {
	return apperr.Conflict("a borrower with email %s already exists", email)
}

// ensureEmailFree returns Conflict when another borrower already uses email.
func (u *Usecase) ensureEmailFree(ctx context.Context, email string, self uint64) error {
	existing, err := u.borrowers.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return apperr.Internal(err)
	case existing.ID != self:
		return emailTaken(email)
	}
	return nil
}

func (u *Usecase) Create(ctx context.Context, p auth.Principal, in CreateInput) (*BorrowerDTO, error) {
	if _, err := requireLender(p); err != nil {
		return nil, err
	}
	in = normalize(in)
	if err := u.validate(in); err != nil {
		return nil, err
	}
	if err := u.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	b := &domain.Borrower{Name: in.Name, Email: in.Email}
	if err := u.borrowers.Create(ctx, b); err != nil {
		// unique index catches the race the pre-check cannot
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, emailTaken(in.Email)
		}
		return nil, apperr.Internal(err)
	}
	u.log.WithField("borrower_id", b.ID).Info("borrower created")
	dto := toDTO(b)
	return &dto, nil
}

func (u *Usecase) Update(ctx context.Context, p auth.Principal, id uint64, in UpdateInput) (*BorrowerDTO, error) {
	if _, err := requireLender(p); err != nil {
		return nil, err
	}
	in = normalize(in)
	if err := u.validate(in); err != nil {
		return nil, err
	}

	b, err := u.borrowers.GetByID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.NotFound("borrower %d not found", id)
	case err != nil:
		return nil, apperr.Internal(err)
	}
	if b.Email != in.Email {
		if err := u.ensureEmailFree(ctx, in.Email, b.ID); err != nil {
			return nil, err
		}
	}

	b.Name, b.Email = in.Name, in.Email
	if err := u.borrowers.Save(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, emailTaken(in.Email)
		}
		return nil, apperr.Internal(err)
	}
	dto := toDTO(b)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, p auth.Principal, id uint64) (*BorrowerDetail, error) {
	lenderID, err := requireLender(p)
	if err != nil {
		return nil, err
	}
	b, err := u.borrowers.GetByID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.NotFound("borrower %d not found", id)
	case err != nil:
		return nil, apperr.Internal(err)
	}

	loans, err := u.loans.List(ctx, loan.ListFilter{LenderID: lenderID, BorrowerID: b.ID})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := &BorrowerDetail{BorrowerDTO: toDTO(b), Loans: make([]LoanSummary, 0, len(loans))}
	for _, l := range loans {
		out.Loans = append(out.Loans, LoanSummary{
			ID:        l.ID,
			Title:     l.Title,
			Amount:    l.Amount,
			Duration:  l.Duration,
			Status:    string(l.Status),
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}

// List returns borrowers newest first, optionally filtered by name.
func (u *Usecase) List(ctx context.Context, p auth.Principal, name string) ([]BorrowerDTO, error) {
	if _, err := requireLender(p); err != nil {
		return nil, err
	}
	items, err := u.borrowers.List(ctx, domain.Filter{NameContains: strings.TrimSpace(name)})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := make([]BorrowerDTO, 0, len(items))
	for i := range items {
		out = append(out, toDTO(&items[i]))
	}
	return out, nil
}

// Delete refuses while any loan references the borrower. The row lock keeps a
// concurrent loan creation from slipping in between the check and the delete.
func (u *Usecase) Delete(ctx context.Context, p auth.Principal, id uint64) error {
	if _, err := requireLender(p); err != nil {
		return err
	}
	err := u.uow.WithinBorrowerTx(ctx, id, func(r uow.Repos, b *domain.Borrower) error {
		n, err := r.Loans.CountByBorrower(ctx, b.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("borrower %d has %d loan(s) and cannot be deleted", b.ID, n)
		}
		return r.Borrowers.Delete(ctx, b.ID)
	})
	var ae *apperr.Error
	switch {
	case err == nil:
		u.log.WithField("borrower_id", id).Info("borrower deleted")
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("borrower %d not found", id)
	case errors.As(err, &ae):
		return ae
	default:
		return apperr.Internal(err)
	}
}
