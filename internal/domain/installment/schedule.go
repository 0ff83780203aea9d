package installment

import (
	"errors"
	"time"

	"loanbook-backend/pkg/money"
)

var (
	ErrInvalidPrincipal  = errors.New("principal must be positive")
	ErrInvalidDuration   = errors.New("duration must be at least one month")
	ErrPrincipalTooSmall = errors.New("principal is smaller than one currency unit per month")
)

// Plan is one scheduled repayment before it is persisted.
type Plan struct {
	Number  int
	Amount  money.Minor
	DueDate time.Time
}

// Schedule splits principal into months installments. Installments 2..months
// carry principal/months truncated to whole currency units; installment 1
// absorbs the remainder so the plan always sums to principal exactly.
// Installment i falls due AddMonths(anchor, i).
func Schedule(principal money.Minor, months int, anchor time.Time) ([]Plan, error) {
	if principal <= 0 {
		return nil, ErrInvalidPrincipal
	}
	if months < 1 {
		return nil, ErrInvalidDuration
	}

	base := principal / money.Minor(months) / money.Unit * money.Unit
	if months > 1 && base == 0 {
		return nil, ErrPrincipalTooSmall
	}

	plans := make([]Plan, months)
	for i := 1; i <= months; i++ {
		amount := base
		if i == 1 {
			amount = principal - base*money.Minor(months-1)
		}
		plans[i-1] = Plan{Number: i, Amount: amount, DueDate: AddMonths(anchor, i)}
	}
	return plans, nil
}

// AddMonths moves t forward n calendar months. When t's day does not exist in
// the target month the date is clamped to that month's last day
// (Jan 31 + 1 month = Feb 28/29). Clock time and location are kept.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
