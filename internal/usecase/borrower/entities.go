package borrower

import (
	"time"

	"loanbook-backend/pkg/money"
)

type CreateInput struct {
	Name  string `json:"name" validate:"required,notblank,min=2,max=100"`
	Email string `json:"email" validate:"required,email,max=191"`
}

type UpdateInput = CreateInput

type BorrowerDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LoanSummary struct {
	ID        uint64      `json:"id"`
	Title     string      `json:"title"`
	Amount    money.Minor `json:"amount"`
	Duration  int         `json:"duration"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// BorrowerDetail lists only the loans the calling lender issued.
type BorrowerDetail struct {
	BorrowerDTO
	Loans []LoanSummary `json:"loans"`
}
