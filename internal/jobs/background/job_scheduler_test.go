package background

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sheetmart/internal/jobs"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

var ist = time.FixedZone("UTC+05:30", 5*3600+30*60)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) RunLowStockJob(ctx context.Context) (*jobs.JobReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobs.JobReport), args.Error(1)
}

func (m *MockRunner) RunDashboardJob(ctx context.Context) (*jobs.JobReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobs.JobReport), args.Error(1)
}

func (m *MockRunner) RunAll(ctx context.Context) ([]*jobs.JobReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobs.JobReport), args.Error(1)
}

type SchedulerClockTestSuite struct {
	suite.Suite
	runner *MockRunner
	clock  *clockwork.FakeClock
	sched  *SchedulerClock
	ctx    context.Context
}

func (suite *SchedulerClockTestSuite) SetupTest() {
	suite.runner = new(MockRunner)
	suite.clock = clockwork.NewFakeClockAt(time.Date(2026, 10, 15, 18, 0, 30, 0, ist))
	suite.sched = NewSchedulerClock(suite.runner, ClockConfig{
		Interval:      time.Minute,
		TriggerHour:   18,
		WindowMinutes: 5,
		Location:      ist,
	}, suite.clock, zap.NewNop())
	suite.ctx = context.Background()
}

func (suite *SchedulerClockTestSuite) TearDownTest() {
	suite.runner.AssertExpectations(suite.T())
}

func TestSchedulerClockTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerClockTestSuite))
}

func (suite *SchedulerClockTestSuite) TestTwoWakeUpsInWindowRunOnce() {
	suite.runner.On("RunAll", suite.ctx).Return([]*jobs.JobReport{{Job: jobs.JobLowStock}}, nil).Once()

	assert.True(suite.T(), suite.sched.CheckAndRun(suite.ctx))
	suite.clock.Advance(time.Minute)
	assert.False(suite.T(), suite.sched.CheckAndRun(suite.ctx))

	suite.runner.AssertNumberOfCalls(suite.T(), "RunAll", 1)
	assert.Equal(suite.T(), "2026-10-15", suite.sched.Status().LastRunDate)
}

func (suite *SchedulerClockTestSuite) TestOutsideWindowDoesNothing() {
	suite.clock.Advance(5 * time.Minute) // 18:05:30
	assert.False(suite.T(), suite.sched.CheckAndRun(suite.ctx))

	suite.clock.Advance(23 * time.Hour) // 17:05:30 next day
	assert.False(suite.T(), suite.sched.CheckAndRun(suite.ctx))
}

func (suite *SchedulerClockTestSuite) TestRunsAgainNextDay() {
	suite.runner.On("RunAll", suite.ctx).Return([]*jobs.JobReport{}, nil).Twice()

	assert.True(suite.T(), suite.sched.CheckAndRun(suite.ctx))
	suite.clock.Advance(24 * time.Hour)
	assert.True(suite.T(), suite.sched.CheckAndRun(suite.ctx))
}

func (suite *SchedulerClockTestSuite) TestWindowUsesFixedOffset() {
	// 12:31 UTC is 18:01 in UTC+05:30.
	suite.clock = clockwork.NewFakeClockAt(time.Date(2026, 10, 15, 12, 31, 0, 0, time.UTC))
	suite.sched = NewSchedulerClock(suite.runner, ClockConfig{TriggerHour: 18, Location: ist}, suite.clock, zap.NewNop())
	suite.runner.On("RunAll", suite.ctx).Return(nil, assert.AnError).Once()

	assert.True(suite.T(), suite.sched.CheckAndRun(suite.ctx))
	assert.Equal(suite.T(), "2026-10-15", suite.sched.Status().LastRunDate)
}

func (suite *SchedulerClockTestSuite) TestManualTriggersIgnoreWindow() {
	suite.clock.Advance(3 * time.Hour)
	suite.runner.On("RunLowStockJob", suite.ctx).Return(&jobs.JobReport{Job: jobs.JobLowStock, Sent: 2}, nil).Once()
	suite.runner.On("RunDashboardJob", suite.ctx).Return(&jobs.JobReport{Job: jobs.JobDashboard}, nil).Once()
	suite.runner.On("RunAll", suite.ctx).Return([]*jobs.JobReport{}, nil).Once()

	report, err := suite.sched.RunLowStockNow(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, report.Sent)
	_, err = suite.sched.RunDashboardNow(suite.ctx)
	require.NoError(suite.T(), err)
	_, err = suite.sched.RunAllNow(suite.ctx)
	require.NoError(suite.T(), err)

	assert.Empty(suite.T(), suite.sched.Status().LastRunDate)
}

func (suite *SchedulerClockTestSuite) TestStatusNextWindow() {
	status := suite.sched.Status()
	assert.False(suite.T(), status.Running)
	assert.Equal(suite.T(), time.Date(2026, 10, 15, 18, 0, 0, 0, ist), status.NextWindow)

	suite.runner.On("RunAll", suite.ctx).Return([]*jobs.JobReport{}, nil).Once()
	suite.sched.CheckAndRun(suite.ctx)
	assert.Equal(suite.T(), time.Date(2026, 10, 16, 18, 0, 0, 0, ist), suite.sched.Status().NextWindow)
}

type countingRunner struct {
	runs  atomic.Int32
	delay time.Duration
}

func (c *countingRunner) RunLowStockJob(context.Context) (*jobs.JobReport, error) {
	return &jobs.JobReport{}, nil
}

func (c *countingRunner) RunDashboardJob(context.Context) (*jobs.JobReport, error) {
	return &jobs.JobReport{}, nil
}

func (c *countingRunner) RunAll(context.Context) ([]*jobs.JobReport, error) {
	c.runs.Add(1)
	time.Sleep(c.delay)
	return nil, nil
}

func TestSchedulerClockStartStop(t *testing.T) {
	runner := &countingRunner{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 15, 18, 0, 0, 0, ist))
	sched := NewSchedulerClock(runner, ClockConfig{Interval: time.Second, TriggerHour: 18, WindowMinutes: 5, Location: ist}, clock, zap.NewNop())

	require.NoError(t, sched.Start())
	require.NoError(t, sched.Start())
	assert.True(t, sched.Status().Running)

	assert.Eventually(t, func() bool {
		clock.Advance(time.Second)
		return runner.runs.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, sched.Stop())
	require.NoError(t, sched.Stop())
	assert.False(t, sched.Status().Running)
	assert.Equal(t, int32(1), runner.runs.Load())
	assert.Equal(t, "2026-10-15", sched.Status().LastRunDate)
}

func TestCheckAndRunConcurrentWakeUpsRunOnce(t *testing.T) {
	runner := &countingRunner{delay: 50 * time.Millisecond}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 15, 18, 0, 30, 0, ist))
	sched := NewSchedulerClock(runner, ClockConfig{Interval: time.Minute, TriggerHour: 18, WindowMinutes: 5, Location: ist}, clock, zap.NewNop())

	var (
		wg  sync.WaitGroup
		ran atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sched.CheckAndRun(context.Background()) {
				ran.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), runner.runs.Load())
	assert.Equal(t, int32(1), ran.Load())
	assert.Equal(t, "2026-10-15", sched.Status().LastRunDate)
}
