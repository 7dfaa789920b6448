package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
)

type JobFunc func(ctx context.Context)

type job struct {
	spec string
	fn   JobFunc
}

type Scheduler struct {
	s    *gocron.Scheduler
	ctx  context.Context
	jobs []job
}

func New(ctx context.Context, loc *time.Location) *Scheduler {
	return &Scheduler{s: gocron.NewScheduler(loc), ctx: ctx}
}

// Add registers a cron job; jobs start running once Start is called.
func (sch *Scheduler) Add(spec string, fn JobFunc) {
	sch.jobs = append(sch.jobs, job{spec: spec, fn: fn})
}

// Start runs the registered jobs until the context is canceled.
func (sch *Scheduler) Start() {
	for _, j := range sch.jobs {
		sch.s.Cron(j.spec).Do(func(fn JobFunc) {
			select {
			case <-sch.ctx.Done():
				return
			default:
				fn(sch.ctx)
			}
		}, j.fn)
	}
	sch.s.StartAsync()

	<-sch.ctx.Done()
	sch.s.Stop()
}
