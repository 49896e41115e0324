// Package scheduler runs the periodic expiry sweep on gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/licensehub/licensehub/internal/shared/biztime"
	"github.com/licensehub/licensehub/internal/shared/goroutine"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

const (
	expiryJobName = "subscription-expire"

	// maxSweepTimeout caps a single sweep regardless of the interval.
	maxSweepTimeout = 10 * time.Minute
)

// BatchJob is one unit of periodic work; Execute reports how many records it
// changed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager owns the single gocron scheduler of the process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	mu      sync.RWMutex
	running bool
}

// NewSchedulerManager builds a stopped scheduler in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(biztime.Location()))
	if err != nil {
		return nil, err
	}
	return &SchedulerManager{scheduler: s, logger: log}, nil
}

// RegisterExpiryJob schedules job every interval, first run on Start. A tick
// that fires while the previous sweep is still going is skipped.
func (m *SchedulerManager) RegisterExpiryJob(job BatchJob, interval time.Duration) error {
	timeout := min(interval, maxSweepTimeout)

	task := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		m.sweep(ctx, job)
	}

	if _, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("subscription", "expire"),
		gocron.WithName(expiryJobName),
	); err != nil {
		return err
	}

	m.logger.Infow("expiry sweep scheduled", "interval", interval.String(), "timeout", timeout.String())
	return nil
}

func (m *SchedulerManager) sweep(ctx context.Context, job BatchJob) {
	defer goroutine.Recover(m.logger, expiryJobName)

	began := time.Now()
	n, err := job.Execute(ctx)
	took := time.Since(began)

	switch {
	case err != nil:
		m.logger.Errorw("expiry sweep failed", "error", err, "expired", n, "duration", took)
	case n > 0:
		m.logger.Infow("expiry sweep finished", "expired", n, "duration", took)
	default:
		m.logger.Debugw("expiry sweep found nothing", "duration", took)
	}
}

// Start is idempotent.
func (m *SchedulerManager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.scheduler.Start()
	m.running = true
	m.logger.Infow("scheduler started", "jobs", len(m.scheduler.Jobs()))
}

// Stop waits for in-flight jobs. Stopping a stopped scheduler is a no-op.
func (m *SchedulerManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return nil
	}
	m.running = false

	if err := m.scheduler.Shutdown(); err != nil {
		m.logger.Errorw("scheduler shutdown failed", "error", err)
		return err
	}
	m.logger.Infow("scheduler stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// Jobs lists the registered jobs.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
