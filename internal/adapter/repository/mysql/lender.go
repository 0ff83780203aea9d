package mysql

import (
	"context"

	"loanbook-backend/internal/domain/lender"

	"gorm.io/gorm"
)

type LenderRepository struct{ db *gorm.DB }

func NewLenderRepository(db *gorm.DB) *LenderRepository { return &LenderRepository{db: db} }

func (r *LenderRepository) Create(ctx context.Context, l *lender.Lender) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LenderRepository) GetByID(ctx context.Context, id uint64) (*lender.Lender, error) {
	var out lender.Lender
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LenderRepository) GetByEmail(ctx context.Context, email string) (*lender.Lender, error) {
	var out lender.Lender
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	return &out, res.Error
}
