package report

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/vessel-console/internal/logging"
)

// Job produces the report of one posting period.
type Job func(ctx context.Context, month, year int) error

// Scheduler runs report jobs on cron expressions. Each run reports on the
// posting period before the one the run falls in.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
	now  func() time.Time
}

// NewScheduler returns a stopped scheduler whose jobs run with ctx.
func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		ctx:  ctx,
		now:  time.Now,
	}
}

// PreviousPeriod returns the month and year before t.
func PreviousPeriod(t time.Time) (month, year int) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	prev := first.AddDate(0, -1, 0)
	return int(prev.Month()), prev.Year()
}

// Add registers job under a standard five-field cron expression.
func (s *Scheduler) Add(spec string, job Job) (cron.EntryID, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return 0, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s.cron.AddFunc(spec, func() {
		s.run(job)
	})
}

func (s *Scheduler) run(job Job) {
	ctx, cid := logging.NewCycle(s.ctx)
	month, year := PreviousPeriod(s.now())
	logger := log.WithFields(log.Fields{logging.FieldCorrelationID: cid, "period": fmt.Sprintf("%d/%d", month, year)})

	logger.Info("scheduled report started")
	if err := job(ctx, month, year); err != nil {
		logger.WithError(err).Error("scheduled report failed")
		return
	}
	logger.Info("scheduled report finished")
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and returns a context done when running jobs end.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Next returns the next activation time of an entry.
func (s *Scheduler) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}
