package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"sheetmart/internal/jobs"
	"sheetmart/internal/jobs/background"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func schedulerResponse(t *testing.T, body []byte) (bool, string) {
	t.Helper()
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Success, resp.Message
}

func TestSchedulerTrigger(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		setup   func(m *MockScheduler)
		message string
	}{
		{
			name: "default action starts the clock",
			body: `{}`,
			setup: func(m *MockScheduler) {
				m.On("Start").Return(nil)
			},
			message: "scheduler started",
		},
		{
			name: "run low stock",
			body: `{"action":"run-low-stock"}`,
			setup: func(m *MockScheduler) {
				m.On("RunLowStockNow", mock.Anything).Return(&jobs.JobReport{Job: jobs.JobLowStock}, nil)
			},
			message: "low stock emails processed",
		},
		{
			name: "run dashboard",
			body: `{"action":"run-dashboard"}`,
			setup: func(m *MockScheduler) {
				m.On("RunDashboardNow", mock.Anything).Return(&jobs.JobReport{Job: jobs.JobDashboard}, nil)
			},
			message: "dashboard summaries processed",
		},
		{
			name: "run all",
			body: `{"action":"run-all"}`,
			setup: func(m *MockScheduler) {
				m.On("RunAllNow", mock.Anything).Return([]*jobs.JobReport{}, nil)
			},
			message: "all notification jobs processed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			scheduler := new(MockScheduler)
			tt.setup(scheduler)
			scheduler.On("Status").Return(background.Status{Running: true})

			c, rec := newContext(e, http.MethodPost, "/v1/scheduler", tt.body, "")
			require.NoError(t, NewSchedulerHandlers(scheduler, zap.NewNop()).Trigger(c))

			assert.Equal(t, http.StatusOK, rec.Code)
			success, message := schedulerResponse(t, rec.Body.Bytes())
			assert.True(t, success)
			assert.Equal(t, tt.message, message)
			scheduler.AssertExpectations(t)
		})
	}
}

func TestSchedulerTrigger_Failure(t *testing.T) {
	e := echo.New()
	scheduler := new(MockScheduler)
	scheduler.On("RunAllNow", mock.Anything).Return(nil, errors.New("low-stock: failed to list tenants: boom"))

	c, rec := newContext(e, http.MethodPost, "/v1/scheduler", `{"action":"run-all"}`, "")
	require.NoError(t, NewSchedulerHandlers(scheduler, zap.NewNop()).Trigger(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	success, message := schedulerResponse(t, rec.Body.Bytes())
	assert.False(t, success)
	assert.Contains(t, message, "failed to list tenants")
}

func TestSchedulerStatus(t *testing.T) {
	e := echo.New()
	scheduler := new(MockScheduler)
	scheduler.On("Status").Return(background.Status{Running: true, TriggerHour: 18, WindowMinutes: 5})

	c, rec := newContext(e, http.MethodGet, "/v1/scheduler", "", "")
	require.NoError(t, NewSchedulerHandlers(scheduler, zap.NewNop()).Status(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trigger_hour":18`)
	assert.Contains(t, rec.Body.String(), `"running":true`)
}
