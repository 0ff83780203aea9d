package installmentmock

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "loanbook-backend/internal/domain/installment"
)

func TestRepo_CreateBatch(t *testing.T) {
	ctx := context.Background()
	items := []*domain.Installment{{Number: 1}, {Number: 2}}

	wantErr := errors.New("boom")
	m := &Repo{
		CreateBatchFn: func(_ context.Context, got []*domain.Installment) error {
			if len(got) != 2 || got[0] != items[0] {
				t.Fatalf("items not forwarded")
			}
			return wantErr
		},
	}
	if err := m.CreateBatch(ctx, items); !errors.Is(err, wantErr) {
		t.Fatalf("CreateBatch: want %v, got %v", wantErr, err)
	}
	if err := (&Repo{}).CreateBatch(ctx, items); err != nil {
		t.Fatalf("CreateBatch default: want nil, got %v", err)
	}
}

func TestRepo_ListDefaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if _, err := m.ListByLoanID(ctx, 1); err != context.Canceled {
		t.Fatalf("ListByLoanID default: got %v", err)
	}
	if _, err := m.ListPendingDueBetween(ctx, time.Time{}, time.Time{}); err != context.Canceled {
		t.Fatalf("ListPendingDueBetween default: got %v", err)
	}

	m.ListByLoanIDFn = func(_ context.Context, loanID uint64) ([]domain.Installment, error) {
		return []domain.Installment{{LoanID: loanID, Number: 1}}, nil
	}
	got, err := m.ListByLoanID(ctx, 5)
	if err != nil || len(got) != 1 || got[0].LoanID != 5 {
		t.Fatalf("ListByLoanID = (%+v, %v)", got, err)
	}
}
