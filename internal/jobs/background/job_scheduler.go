package background

import (
	"context"
	"errors"
	"sync"
	"time"

	"sheetmart/internal/jobs"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Runner is the work the clock triggers.
type Runner interface {
	RunLowStockJob(ctx context.Context) (*jobs.JobReport, error)
	RunDashboardJob(ctx context.Context) (*jobs.JobReport, error)
	RunAll(ctx context.Context) ([]*jobs.JobReport, error)
}

// ClockConfig places the daily trigger window.
type ClockConfig struct {
	Interval      time.Duration
	TriggerHour   int
	WindowMinutes int
	Location      *time.Location
}

// Status is a point-in-time view of the clock.
type Status struct {
	Running       bool       `json:"running"`
	Interval      string     `json:"interval"`
	TriggerHour   int        `json:"trigger_hour"`
	WindowMinutes int        `json:"window_minutes"`
	Location      string     `json:"location"`
	Now           time.Time  `json:"now"`
	LastRunDate   string     `json:"last_run_date,omitempty"`
	LastRunAt     *time.Time `json:"last_run_at,omitempty"`
	NextWindow    time.Time  `json:"next_window"`
}

// SchedulerClock wakes up every Interval and runs all notification jobs once
// per calendar day inside the trigger window. The last run date lives in
// memory only: a restart inside the window can fire again and a missed
// window is not caught up.
type SchedulerClock struct {
	runner Runner
	cfg    ClockConfig
	clock  clockwork.Clock
	logger *zap.Logger

	mu          sync.Mutex
	scheduler   gocron.Scheduler
	lastRunDate string
	lastRunAt   *time.Time
}

func NewSchedulerClock(runner Runner, cfg ClockConfig, clock clockwork.Clock, logger *zap.Logger) *SchedulerClock {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.WindowMinutes <= 0 {
		cfg.WindowMinutes = 5
	}
	if cfg.Location == nil {
		cfg.Location = time.FixedZone("UTC+05:30", 5*3600+30*60)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SchedulerClock{runner: runner, cfg: cfg, clock: clock, logger: logger}
}

// Start begins the periodic wake-ups. Calling it on a running clock is a no-op.
func (s *SchedulerClock) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler != nil {
		s.logger.Info("scheduler already running")
		return nil
	}

	scheduler, err := gocron.NewScheduler(
		gocron.WithClock(s.clock),
		gocron.WithLocation(s.cfg.Location),
	)
	if err != nil {
		return err
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(s.tick),
		gocron.WithName("daily-notifications"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}
	scheduler.Start()
	s.scheduler = scheduler

	s.logger.Info("scheduler started",
		zap.Duration("interval", s.cfg.Interval),
		zap.Int("trigger_hour", s.cfg.TriggerHour),
		zap.String("location", s.cfg.Location.String()))
	return nil
}

// Stop halts future wake-ups. A run already in progress finishes.
func (s *SchedulerClock) Stop() error {
	s.mu.Lock()
	scheduler := s.scheduler
	s.scheduler = nil
	s.mu.Unlock()

	if scheduler == nil {
		return nil
	}
	err := scheduler.Shutdown()
	if errors.Is(err, gocron.ErrStopJobsTimedOut) {
		s.logger.Warn("scheduler stopped before jobs finished")
		return nil
	}
	s.logger.Info("scheduler stopped")
	return err
}

func (s *SchedulerClock) tick() {
	s.CheckAndRun(context.Background())
}

// CheckAndRun runs all jobs when now falls inside today's window and they
// have not run today yet. It reports whether a run happened.
func (s *SchedulerClock) CheckAndRun(ctx context.Context) bool {
	now := s.clock.Now().In(s.cfg.Location)
	if !s.inWindow(now) {
		return false
	}

	today := now.Format(time.DateOnly)
	s.mu.Lock()
	if s.lastRunDate == today {
		s.mu.Unlock()
		return false
	}
	// Claimed before running so an overlapping wake-up sees it.
	s.lastRunDate = today
	s.lastRunAt = &now
	s.mu.Unlock()

	s.logger.Info("daily notification window reached", zap.String("date", today))
	reports, err := s.runner.RunAll(ctx)
	if err != nil {
		s.logger.Error("scheduled notification run failed", zap.String("date", today), zap.Error(err))
	}
	for _, r := range reports {
		s.logger.Info("scheduled job report",
			zap.String("job", r.Job),
			zap.Int("sent", r.Sent),
			zap.Int("failed", r.Failed))
	}
	return true
}

func (s *SchedulerClock) inWindow(t time.Time) bool {
	return t.Hour() == s.cfg.TriggerHour && t.Minute() < s.cfg.WindowMinutes
}

// RunLowStockNow runs the low stock job outside the schedule.
func (s *SchedulerClock) RunLowStockNow(ctx context.Context) (*jobs.JobReport, error) {
	return s.runner.RunLowStockJob(ctx)
}

func (s *SchedulerClock) RunDashboardNow(ctx context.Context) (*jobs.JobReport, error) {
	return s.runner.RunDashboardJob(ctx)
}

func (s *SchedulerClock) RunAllNow(ctx context.Context) ([]*jobs.JobReport, error) {
	return s.runner.RunAll(ctx)
}

func (s *SchedulerClock) Status() Status {
	now := s.clock.Now().In(s.cfg.Location)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.TriggerHour, 0, 0, 0, s.cfg.Location)
	windowEnd := next.Add(time.Duration(s.cfg.WindowMinutes) * time.Minute)
	if !now.Before(windowEnd) || s.lastRunDate == now.Format(time.DateOnly) {
		next = next.AddDate(0, 0, 1)
	}

	return Status{
		Running:       s.scheduler != nil,
		Interval:      s.cfg.Interval.String(),
		TriggerHour:   s.cfg.TriggerHour,
		WindowMinutes: s.cfg.WindowMinutes,
		Location:      s.cfg.Location.String(),
		Now:           now,
		LastRunDate:   s.lastRunDate,
		LastRunAt:     s.lastRunAt,
		NextWindow:    next,
	}
}
