package loan

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"loanbook-backend/internal/validation"
	"loanbook-backend/pkg/money"
)

// CreateLoanInput is the loan creation request. Amount must have at most two
// fractional digits; InterestRate is an annual percentage. Duration and
// BorrowerID bind any JSON value so a string or fraction is a field error.
type CreateLoanInput struct {
	Title        string            `json:"title" validate:"required,notblank,max=200"`
	Description  string            `json:"description" validate:"required,notblank"`
	Amount       decimal.Decimal   `json:"amount" validate:"gt=0,dec2"`
	InterestRate decimal.Decimal   `json:"interestRate" validate:"gte=0,lte=1000"`
	Duration     validation.Number `json:"duration" validate:"jsonnumber,intlike,gt=0,lte=600"`
	BorrowerID   validation.Number `json:"borrowerId" validate:"jsonnumber,intlike,gt=0"`
}

// ListInput carries raw query values; Status "" or "all" means no status filter.
type ListInput struct {
	Name   string
	Status string
}

type BorrowerSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoanDTO struct {
	ID           uint64           `json:"id"`
	LenderID     uint64           `json:"lenderId"`
	BorrowerID   uint64           `json:"borrowerId"`
	Borrower     *BorrowerSummary `json:"borrower,omitempty"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Amount       money.Minor      `json:"amount"`
	InterestRate json.Number      `json:"interestRate"`
	Duration     int              `json:"duration"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

type InstallmentDTO struct {
	ID                uint64      `json:"id"`
	LoanID            uint64      `json:"loanId"`
	InstallmentNumber int         `json:"installmentNumber"`
	Amount            money.Minor `json:"amount"`
	DueDate           time.Time   `json:"dueDate"`
	Status            string      `json:"status"`
}

// LoanDetail is a loan together with its installment plan in installment order.
type LoanDetail struct {
	Loan         LoanDTO          `json:"loan"`
	Installments []InstallmentDTO `json:"installments"`
}

type StatsDTO struct {
	TotalLoans    int64       `json:"totalLoans"`
	ActiveLoans   int64       `json:"activeLoans"`
	TotalAmount   money.Minor `json:"totalAmount"`
	AverageAmount money.Minor `json:"averageAmount"`
}
