package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loanbook-backend/internal/domain/apperr"
	"loanbook-backend/internal/domain/auth"
	"loanbook-backend/internal/domain/borrower"
	"loanbook-backend/internal/domain/event"
	"loanbook-backend/internal/domain/installment"
	domain "loanbook-backend/internal/domain/loan"
	"loanbook-backend/internal/domain/uow"
	"loanbook-backend/internal/validation"
	"loanbook-backend/pkg/money"
)

// StatsCache is the read-through cache for per-lender aggregates. Get returns
// a generation; Set must drop the write if Invalidate ran after that Get.
type StatsCache interface {
	Get(ctx context.Context, lenderID uint64) (s domain.Stats, gen int64, ok bool, err error)
	Set(ctx context.Context, lenderID uint64, gen int64, s domain.Stats) error
	Invalidate(ctx context.Context, lenderID uint64) error
}

type Usecase struct {
	loans        domain.Repository
	installments installment.Repository
	uow          uow.UnitOfWork
	validator    *validation.CustomValidator
	cache        StatsCache
	events       event.Publisher
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewUsecase: repos serve reads, the UoW runs loan creation.
func NewUsecase(loans domain.Repository, installments installment.Repository, tx uow.UnitOfWork, log logrus.FieldLogger) *Usecase {
	return &Usecase{
		loans:        loans,
		installments: installments,
		uow:          tx,
		validator:    validation.New(),
		log:          log,
		now:          time.Now,
	}
}

func (u *Usecase) WithCache(c StatsCache) *Usecase {
	u.cache = c
	return u
}

func (u *Usecase) WithPublisher(p event.Publisher) *Usecase {
	u.events = p
	return u
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func requireLender(p auth.Principal) (uint64, error) {
	id, ok := p.Lender()
	if !ok {
		return 0, apperr.Unauthorized("authentication required")
	}
	return id, nil
}

// Create validates the request, then persists the loan and its whole
// installment plan in one transaction. Nothing is written on any failure.
func (u *Usecase) Create(ctx context.Context, p auth.Principal, in CreateLoanInput) (*LoanDetail, error) {
	lenderID, err := requireLender(p)
	if err != nil {
		return nil, err
	}
	if err := u.validator.Validate(in); err != nil {
		return nil, apperr.Invalid("invalid input", validation.ToFieldErrors(err)...)
	}
	amount, err := money.FromDecimal(in.Amount)
	if err != nil {
		return nil, apperr.Invalid("invalid input", apperr.FieldError{Field: "amount", Message: err.Error()})
	}
	rawBorrower, ok := in.BorrowerID.Int64()
	if !ok {
		return nil, apperr.Invalid("invalid input", apperr.FieldError{Field: "borrowerId", Message: "is out of range"})
	}
	borrowerID := uint64(rawBorrower)
	months, _ := in.Duration.Int64()
	duration := int(months)

	// the anchor is the loan's creation timestamp
	createdAt := u.now().UTC().Truncate(time.Second)
	plan, err := installment.Schedule(amount, duration, createdAt)
	if err != nil {
		return nil, scheduleError(err, duration)
	}

	var out *LoanDetail
	err = u.uow.WithinBorrowerTx(ctx, borrowerID, func(r uow.Repos, b *borrower.Borrower) error {
		l := &domain.Loan{
			LenderID:     lenderID,
			BorrowerID:   b.ID,
			Title:        strings.TrimSpace(in.Title),
			Description:  strings.TrimSpace(in.Description),
			Amount:       amount,
			InterestRate: in.InterestRate.Round(4),
			Duration:     duration,
			Status:       domain.StatusRequested,
			CreatedAt:    createdAt,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return fmt.Errorf("create loan: %w", err)
		}

		items := make([]*installment.Installment, 0, len(plan))
		for _, pl := range plan {
			items = append(items, &installment.Installment{
				LoanID:  l.ID,
				Number:  pl.Number,
				Amount:  pl.Amount,
				DueDate: pl.DueDate,
				Status:  installment.StatusPending,
			})
		}
		if err := r.Installments.CreateBatch(ctx, items); err != nil {
			return fmt.Errorf("create installments: %w", err)
		}

		l.Borrower = b
		out = &LoanDetail{Loan: toLoanDTO(l), Installments: make([]InstallmentDTO, 0, len(items))}
		for _, it := range items {
			out.Installments = append(out.Installments, toInstallmentDTO(it))
		}
		return nil
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.NotFound("borrower %d not found", borrowerID)
	case err != nil:
		u.log.WithError(err).WithField("borrower_id", borrowerID).Error("loan creation rolled back")
		return nil, apperr.Internal(err)
	}

	u.afterCreate(ctx, out)
	return out, nil
}

// afterCreate runs once the transaction is committed; failures are logged only.
func (u *Usecase) afterCreate(ctx context.Context, d *LoanDetail) {
	log := u.log.WithFields(logrus.Fields{"loan_id": d.Loan.ID, "lender_id": d.Loan.LenderID})
	if u.cache != nil {
		if err := u.cache.Invalidate(ctx, d.Loan.LenderID); err != nil {
			log.WithError(err).Warn("stats cache invalidation failed")
		}
	}
	if u.events != nil {
		ev := event.LoanCreated{
			LoanID:       d.Loan.ID,
			LenderID:     d.Loan.LenderID,
			BorrowerID:   d.Loan.BorrowerID,
			Amount:       d.Loan.Amount,
			Duration:     d.Loan.Duration,
			Installments: len(d.Installments),
			CreatedAt:    d.Loan.CreatedAt,
		}
		if err := u.events.Publish(ctx, event.RoutingLoanCreated, ev); err != nil {
			log.WithError(err).Warn("loan.created publish failed")
		}
	}
	log.WithField("installments", len(d.Installments)).Info("loan created")
}

func scheduleError(err error, months int) error {
	switch {
	case errors.Is(err, installment.ErrPrincipalTooSmall):
		return apperr.Invalid("invalid input", apperr.FieldError{
			Field:   "amount",
			Message: fmt.Sprintf("is too small to split into %d monthly installments", months),
		})
	case errors.Is(err, installment.ErrInvalidDuration):
		return apperr.Invalid("invalid input", apperr.FieldError{Field: "duration", Message: err.Error()})
	default:
		return apperr.Invalid("invalid input", apperr.FieldError{Field: "amount", Message: err.Error()})
	}
}

// Get returns the loan with its installments. Loans of other lenders are reported as not found.
func (u *Usecase) Get(ctx context.Context, p auth.Principal, id uint64) (*LoanDetail, error) {
	lenderID, err := requireLender(p)
	if err != nil {
		return nil, err
	}
	l, err := u.loans.GetByID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.NotFound("loan %d not found", id)
	case err != nil:
		return nil, apperr.Internal(err)
	case l.LenderID != lenderID:
		return nil, apperr.NotFound("loan %d not found", id)
	}

	items, err := u.installments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := &LoanDetail{Loan: toLoanDTO(l), Installments: make([]InstallmentDTO, 0, len(items))}
	for i := range items {
		out.Installments = append(out.Installments, toInstallmentDTO(&items[i]))
	}
	return out, nil
}

// List returns the lender's loans, newest first.
func (u *Usecase) List(ctx context.Context, p auth.Principal, in ListInput) ([]LoanDTO, error) {
	lenderID, err := requireLender(p)
	if err != nil {
		return nil, err
	}
	f := domain.ListFilter{LenderID: lenderID, NameContains: strings.TrimSpace(in.Name)}
	if s := strings.ToUpper(strings.TrimSpace(in.Status)); s != "" && s != "ALL" {
		f.Status = domain.Status(s)
		if !f.Status.Valid() {
			return nil, apperr.Invalid("invalid input", apperr.FieldError{Field: "status", Message: domain.ErrInvalidStatus.Error()})
		}
	}

	loans, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, toLoanDTO(&loans[i]))
	}
	return out, nil
}

// Stats serves the lender's portfolio aggregates, from cache when possible.
func (u *Usecase) Stats(ctx context.Context, p auth.Principal) (*StatsDTO, error) {
	lenderID, err := requireLender(p)
	if err != nil {
		return nil, err
	}
	log := u.log.WithField("lender_id", lenderID)

	var gen int64
	if u.cache != nil {
		s, g, ok, err := u.cache.Get(ctx, lenderID)
		if err != nil {
			log.WithError(err).Warn("stats cache read failed")
		}
		if ok {
			dto := toStatsDTO(s)
			return &dto, nil
		}
		gen = g
	}

	s, err := u.loans.Stats(ctx, lenderID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u.cache != nil {
		if err := u.cache.Set(ctx, lenderID, gen, s); err != nil {
			log.WithError(err).Warn("stats cache write failed")
		}
	}
	dto := toStatsDTO(s)
	return &dto, nil
}
