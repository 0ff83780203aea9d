package mysql

import (
	"context"
	"strings"

	"loanbook-backend/internal/domain/borrower"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) Create(ctx context.Context, b *borrower.Borrower) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BorrowerRepository) Save(ctx context.Context, b *borrower.Borrower) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BorrowerRepository) GetByID(ctx context.Context, id uint64) (*borrower.Borrower, error) {
	var out borrower.Borrower
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

// SELECT ... FOR UPDATE; dialects without row locks (sqlite) ignore the clause.
func (r *BorrowerRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*borrower.Borrower, error) {
	var out borrower.Borrower
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *BorrowerRepository) GetByEmail(ctx context.Context, email string) (*borrower.Borrower, error) {
	var out borrower.Borrower
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	return &out, res.Error
}

func (r *BorrowerRepository) List(ctx context.Context, f borrower.Filter) ([]borrower.Borrower, error) {
	q := r.db.WithContext(ctx).Model(&borrower.Borrower{})
	if name := strings.TrimSpace(f.NameContains); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	var out []borrower.Borrower
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *BorrowerRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&borrower.Borrower{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
