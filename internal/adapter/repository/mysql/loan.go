package mysql

import (
	"context"
	"strings"

	loanDomain "loanbook-backend/internal/domain/loan"
	"loanbook-backend/pkg/money"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit("Borrower").Create(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Preload("Borrower").Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.ListFilter) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Preload("Borrower").Select("loans.*")
	if f.LenderID != 0 {
		q = q.Where("loans.lender_id = ?", f.LenderID)
	}
	if f.BorrowerID != 0 {
		q = q.Where("loans.borrower_id = ?", f.BorrowerID)
	}
	if f.Status != "" {
		q = q.Where("loans.status = ?", f.Status)
	}
	if name := strings.TrimSpace(f.NameContains); name != "" {
		q = q.Joins("JOIN borrowers ON borrowers.id = loans.borrower_id").
			Where("LOWER(borrowers.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var out []loanDomain.Loan
	err := q.Order("loans.created_at DESC, loans.id DESC").Find(&out).Error
	return out, err
}

func (r *LoanRepository) CountByBorrower(ctx context.Context, borrowerID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Where("borrower_id = ?", borrowerID).Count(&n).Error
	return n, err
}

func (r *LoanRepository) Stats(ctx context.Context, lenderID uint64) (loanDomain.Stats, error) {
	var row struct {
		TotalLoans  int64
		ActiveLoans int64
		TotalAmount int64
	}
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Select(`COUNT(*) AS total_loans,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active_loans,
			COALESCE(SUM(amount_minor), 0) AS total_amount`, loanDomain.StatusApproved).
		Where("lender_id = ?", lenderID).
		Scan(&row).Error
	if err != nil {
		return loanDomain.Stats{}, err
	}
	return loanDomain.Stats{
		TotalLoans:  row.TotalLoans,
		ActiveLoans: row.ActiveLoans,
		TotalAmount: money.Minor(row.TotalAmount),
	}, nil
}
