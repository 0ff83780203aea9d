package installment

import (
	"time"

	"loanbook-backend/pkg/money"
)

type Status string

// Payment processing is out of scope; installments are created PENDING.
const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusMissed  Status = "MISSED"
)

type Installment struct {
	ID        uint64      `gorm:"primaryKey;column:id"`
	LoanID    uint64      `gorm:"column:loan_id;not null;uniqueIndex:ux_installments_loan_number,priority:1"`
	Number    int         `gorm:"column:installment_number;not null;uniqueIndex:ux_installments_loan_number,priority:2"`
	Amount    money.Minor `gorm:"column:amount_minor;not null"`
	DueDate   time.Time   `gorm:"column:due_date;not null;index:idx_installments_status_due,priority:2"`
	Status    Status      `gorm:"type:varchar(16);not null;default:'PENDING';index:idx_installments_status_due,priority:1"`
	CreatedAt time.Time   `gorm:"autoCreateTime"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime"`
}

func (Installment) TableName() string { return "installments" }
