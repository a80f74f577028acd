package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Runner runs background jobs on cron schedules. Specs include a seconds
// field.
type Runner struct {
	cron    *cron.Cron
	log     *logrus.Logger
	baseCtx context.Context
}

// New creates a runner whose jobs receive baseCtx; nil means
// context.Background().
func New(baseCtx context.Context, log *logrus.Logger) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{
		cron:    cron.New(cron.WithSeconds()),
		log:     log,
		baseCtx: baseCtx,
	}
}

// Add registers a named job. A failing job is logged and retried on its
// next tick.
func (r *Runner) Add(name, spec string, job func(context.Context) error) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		if err := job(r.baseCtx); err != nil {
			r.log.WithField("job", name).Errorf("Scheduled job failed: %v", err)
			return
		}
		r.log.WithField("job", name).Debug("Scheduled job done")
	})
}

func (r *Runner) Start() {
	r.log.Info("Scheduler started")
	r.cron.Start()
}

// Stop waits for running jobs to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info("Scheduler stopped")
}
