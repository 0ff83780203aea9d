package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs registered jobs on cron schedules; a panicking job is
// recovered and logged instead of killing the process.
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

func New(log *logrus.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(log)
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))
	return &Scheduler{cron: c, log: log}
}

// Register adds a job. ctx is handed to every run of fn.
func (s *Scheduler) Register(ctx context.Context, spec, name string, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := fn(ctx); err != nil {
			s.log.WithError(err).WithField("job", name).Error("scheduled job failed")
		}
	})
	if err != nil {
		s.log.WithError(err).WithField("job", name).Error("failed to schedule job")
		return err
	}
	s.log.WithFields(logrus.Fields{"job": name, "schedule": spec}).Info("scheduled job")
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context { return s.cron.Stop() }

func (s *Scheduler) Len() int { return len(s.cron.Entries()) }
