package loan

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"loanbook-backend/internal/domain/installment"
	domain "loanbook-backend/internal/domain/loan"
	"loanbook-backend/pkg/money"
)

func toLoanDTO(l *domain.Loan) LoanDTO {
	dto := LoanDTO{
		ID:           l.ID,
		LenderID:     l.LenderID,
		BorrowerID:   l.BorrowerID,
		Title:        l.Title,
		Description:  l.Description,
		Amount:       l.Amount,
		InterestRate: json.Number(l.InterestRate.String()),
		Duration:     l.Duration,
		Status:       string(l.Status),
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if b := l.Borrower; b != nil {
		dto.Borrower = &BorrowerSummary{ID: b.ID, Name: b.Name, Email: b.Email}
	}
	return dto
}

func toInstallmentDTO(it *installment.Installment) InstallmentDTO {
	return InstallmentDTO{
		ID:                it.ID,
		LoanID:            it.LoanID,
		InstallmentNumber: it.Number,
		Amount:            it.Amount,
		DueDate:           it.DueDate,
		Status:            string(it.Status),
	}
}

func toStatsDTO(s domain.Stats) StatsDTO {
	out := StatsDTO{TotalLoans: s.TotalLoans, ActiveLoans: s.ActiveLoans, TotalAmount: s.TotalAmount}
	if s.TotalLoans > 0 {
		avg := s.TotalAmount.Decimal().DivRound(decimal.NewFromInt(s.TotalLoans), 2)
		// an average of stored amounts always fits
		out.AverageAmount, _ = money.FromDecimal(avg)
	}
	return out
}
