package lender

import "context"

type Repository interface {
	Create(ctx context.Context, l *Lender) error
	GetByID(ctx context.Context, id uint64) (*Lender, error)
	GetByEmail(ctx context.Context, email string) (*Lender, error)
}
