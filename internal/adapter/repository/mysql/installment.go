package mysql

import (
	"context"
	"time"

	"loanbook-backend/internal/domain/installment"

	"gorm.io/gorm"
)

type InstallmentRepository struct{ db *gorm.DB }

func NewInstallmentRepository(db *gorm.DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) CreateBatch(ctx context.Context, items []*installment.Installment) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *InstallmentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]installment.Installment, error) {
	var out []installment.Installment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("installment_number ASC").
		Find(&out).Error
	return out, err
}

func (r *InstallmentRepository) ListPendingDueBetween(ctx context.Context, from, to time.Time) ([]installment.Installment, error) {
	var out []installment.Installment
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date >= ? AND due_date < ?", installment.StatusPending, from, to).
		Order("due_date ASC, id ASC").
		Find(&out).Error
	return out, err
}
