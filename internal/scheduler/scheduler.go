package scheduler

import (
	"context"
	"fmt"
	"time"

	"anoa.com/kitaplik/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Job is a maintenance task run on a cron schedule.
type Job interface {
	Name() string
	// Schedule is a standard 5-field cron expression; empty means on-demand only.
	Schedule() string
	Run(ctx context.Context) error
}

// Scheduler owns the cron runner and the registered jobs.
type Scheduler struct {
	cron    *cron.Cron
	jobs    []Job
	timeout time.Duration
	log     *logger.Logger
}

func New(loc *time.Location, log *logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		jobs:    make([]Job, 0),
		timeout: 10 * time.Minute,
		log:     log.With("component", "scheduler"),
	}
}

// Register adds job and schedules it when it has a schedule.
func (s *Scheduler) Register(job Job) error {
	schedule := job.Schedule()
	if schedule != "" {
		if _, err := s.cron.AddFunc(schedule, func() { s.execute(context.Background(), job) }); err != nil {
			return fmt.Errorf("schedule %s: %w", job.Name(), err)
		}
		s.log.Info("job scheduled", "job", job.Name(), "cron", schedule)
	} else {
		s.log.Info("job registered on demand", "job", job.Name())
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *Scheduler) execute(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.Error("job failed", "job", job.Name(), "error", err)
		return err
	}
	s.log.Info("job completed", "job", job.Name(), "took", time.Since(start).String())
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop halts scheduling and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunByName runs a registered job immediately.
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name() == name {
			return s.execute(ctx, job)
		}
	}
	return fmt.Errorf("job %q not registered", name)
}

func (s *Scheduler) Registered() []string {
	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name()
	}
	return names
}
