package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"loanbook-backend/internal/domain/borrower"
	"loanbook-backend/internal/domain/installment"
	"loanbook-backend/internal/domain/lender"
	loanDomain "loanbook-backend/internal/domain/loan"
	"loanbook-backend/pkg/money"
)

// openTestDB creates an in-memory sqlite DB with the full schema.
// One connection only: every new :memory: connection is a separate database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&lender.Lender{}, &borrower.Borrower{}, &loanDomain.Loan{}, &installment.Installment{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedLender(t *testing.T, db *gorm.DB, email string) *lender.Lender {
	t.Helper()
	l := &lender.Lender{Name: "Lender " + email, Email: email, PasswordHash: "x"}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed lender: %v", err)
	}
	return l
}

func seedBorrower(t *testing.T, db *gorm.DB, name, email string) *borrower.Borrower {
	t.Helper()
	b := &borrower.Borrower{Name: name, Email: email}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed borrower: %v", err)
	}
	return b
}

func makeLoan(lenderID, borrowerID uint64, amount string, status loanDomain.Status) *loanDomain.Loan {
	return &loanDomain.Loan{
		LenderID:     lenderID,
		BorrowerID:   borrowerID,
		Title:        "Working capital",
		Description:  "stock for the shop",
		Amount:       money.MustParse(amount),
		InterestRate: decimal.RequireFromString("12.5"),
		Duration:     3,
		Status:       status,
	}
}

func seedLoan(t *testing.T, db *gorm.DB, l *loanDomain.Loan, createdAt time.Time) *loanDomain.Loan {
	t.Helper()
	l.CreatedAt = createdAt
	if err := db.Omit("Borrower").Create(l).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l
}
