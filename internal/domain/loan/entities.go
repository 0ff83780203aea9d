package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"loanbook-backend/internal/domain/borrower"
	"loanbook-backend/pkg/money"
)

var ErrInvalidStatus = errors.New("unknown loan status")

type Status string

// REQUESTED -> APPROVED -> (PAID | DEFAULTED | CLOSED); REJECTED is terminal from REQUESTED.
// Only entry into REQUESTED is performed by this service.
const (
	StatusRequested Status = "REQUESTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusPaid      Status = "PAID"
	StatusDefaulted Status = "DEFAULTED"
	StatusClosed    Status = "CLOSED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusRequested, StatusApproved, StatusRejected, StatusPaid, StatusDefaulted, StatusClosed:
		return true
	}
	return false
}

// Loan amounts are held in minor units; InterestRate is an annual percentage
// (12.5 means 12.5% p.a.) and is stored but not applied to the schedule.
type Loan struct {
	ID           uint64          `gorm:"primaryKey;column:id"`
	LenderID     uint64          `gorm:"column:lender_id;not null;index:idx_loans_lender_created,priority:1"`
	BorrowerID   uint64          `gorm:"column:borrower_id;not null;index:idx_loans_borrower"`
	Title        string          `gorm:"size:200;not null"`
	Description  string          `gorm:"type:text;not null"`
	Amount       money.Minor     `gorm:"column:amount_minor;not null"`
	InterestRate decimal.Decimal `gorm:"column:interest_rate;type:decimal(9,4);not null"`
	Duration     int             `gorm:"column:duration_months;not null"`
	Status       Status          `gorm:"type:varchar(16);not null;default:'REQUESTED';index:idx_loans_status"`
	CreatedAt    time.Time       `gorm:"index:idx_loans_lender_created,priority:2"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`

	Borrower *borrower.Borrower `gorm:"foreignKey:BorrowerID;constraint:OnDelete:RESTRICT"`
}

func (Loan) TableName() string { return "loans" }

// ListFilter enumerates the supported list predicates. LenderID and BorrowerID
// scope the query; NameContains matches the borrower name case-insensitively.
type ListFilter struct {
	LenderID     uint64
	BorrowerID   uint64
	NameContains string
	Status       Status
}

type Stats struct {
	TotalLoans  int64
	ActiveLoans int64
	TotalAmount money.Minor
}
