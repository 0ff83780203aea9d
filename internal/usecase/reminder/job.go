package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"loanbook-backend/internal/domain/event"
	"loanbook-backend/internal/domain/installment"
)

// Marks remembers which installments were already announced. Mark reports
// false when the installment was marked earlier and the mark has not expired.
type Marks interface {
	Mark(ctx context.Context, installmentID uint64, ttl time.Duration) (bool, error)
	Unmark(ctx context.Context, installmentID uint64) error
}

// Job announces pending installments that fall due within the window.
type Job struct {
	installments installment.Repository
	events       event.Publisher
	marks        Marks
	window       time.Duration
	log          logrus.FieldLogger
	now          func() time.Time
}

func NewJob(installments installment.Repository, events event.Publisher, window time.Duration, log logrus.FieldLogger) *Job {
	return &Job{installments: installments, events: events, window: window, log: log, now: time.Now}
}

// WithMarks makes each installment announced once per window instead of on
// every run that sees it.
func (j *Job) WithMarks(m Marks) *Job {
	j.marks = m
	return j
}

func (j *Job) WithClock(now func() time.Time) *Job {
	j.now = now
	return j
}

// Run publishes one installment.due event per installment due in [now, now+window).
// With marks set, installments announced by an earlier run are skipped; a mark
// that cannot be checked does not block the reminder. A failed publish does not
// stop the batch; the joined error is returned at the end.
func (j *Job) Run(ctx context.Context) error {
	from := j.now().UTC()
	to := from.Add(j.window)

	due, err := j.installments.ListPendingDueBetween(ctx, from, to)
	if err != nil {
		return err
	}

	var errs []error
	skipped := 0
	for _, it := range due {
		log := j.log.WithField("installment_id", it.ID)
		marked := false
		if j.marks != nil {
			first, err := j.marks.Mark(ctx, it.ID, it.DueDate.Sub(from)+time.Hour)
			switch {
			case err != nil:
				log.WithError(err).Warn("reminder mark failed")
			case !first:
				skipped++
				continue
			default:
				marked = true
			}
		}
		ev := event.InstallmentDue{
			InstallmentID:     it.ID,
			LoanID:            it.LoanID,
			InstallmentNumber: it.Number,
			Amount:            it.Amount,
			DueDate:           it.DueDate,
		}
		if err := j.events.Publish(ctx, event.RoutingInstallmentDue, ev); err != nil {
			log.WithError(err).Warn("installment.due publish failed")
			errs = append(errs, err)
			if marked {
				if err := j.marks.Unmark(ctx, it.ID); err != nil {
					log.WithError(err).Warn("reminder unmark failed")
				}
			}
		}
	}
	j.log.WithFields(logrus.Fields{"due": len(due), "skipped": skipped, "failed": len(errs)}).Info("installment reminders sent")
	return errors.Join(errs...)
}
