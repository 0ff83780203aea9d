package event

import (
	"context"
	"time"

	"loanbook-backend/pkg/money"
)

const (
	RoutingLoanCreated    = "loan.created"
	RoutingInstallmentDue = "installment.due"
)

// Publisher delivers domain events; payloads are JSON encoded by the adapter.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type LoanCreated struct {
	LoanID       uint64      `json:"loanId"`
	LenderID     uint64      `json:"lenderId"`
	BorrowerID   uint64      `json:"borrowerId"`
	Amount       money.Minor `json:"amount"`
	Duration     int         `json:"duration"`
	Installments int         `json:"installments"`
	CreatedAt    time.Time   `json:"createdAt"`
}

type InstallmentDue struct {
	InstallmentID     uint64      `json:"installmentId"`
	LoanID            uint64      `json:"loanId"`
	InstallmentNumber int         `json:"installmentNumber"`
	Amount            money.Minor `json:"amount"`
	DueDate           time.Time   `json:"dueDate"`
}
