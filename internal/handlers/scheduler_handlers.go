package handlers

import (
	"context"
	"net/http"

	"sheetmart/internal/jobs"
	"sheetmart/internal/jobs/background"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SchedulerControl is the part of the scheduler clock exposed over HTTP.
type SchedulerControl interface {
	Start() error
	Status() background.Status
	RunLowStockNow(ctx context.Context) (*jobs.JobReport, error)
	RunDashboardNow(ctx context.Context) (*jobs.JobReport, error)
	RunAllNow(ctx context.Context) ([]*jobs.JobReport, error)
}

const (
	actionRunLowStock  = "run-low-stock"
	actionRunDashboard = "run-dashboard"
	actionRunAll       = "run-all"
)

// SchedulerHandlers triggers notification jobs (admin only)
type SchedulerHandlers struct {
	scheduler SchedulerControl
	logger    *zap.Logger
}

func NewSchedulerHandlers(scheduler SchedulerControl, logger *zap.Logger) *SchedulerHandlers {
	return &SchedulerHandlers{scheduler: scheduler, logger: logger}
}

type schedulerRequest struct {
	Action string `json:"action" query:"action"`
}

// Trigger handles POST /v1/scheduler. Without a known action it starts the clock.
func (h *SchedulerHandlers) Trigger(c echo.Context) error {
	var req schedulerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	ctx := c.Request().Context()

	var err error
	message := "scheduler started"
	switch req.Action {
	case actionRunLowStock:
		_, err = h.scheduler.RunLowStockNow(ctx)
		message = "low stock emails processed"
	case actionRunDashboard:
		_, err = h.scheduler.RunDashboardNow(ctx)
		message = "dashboard summaries processed"
	case actionRunAll:
		_, err = h.scheduler.RunAllNow(ctx)
		message = "all notification jobs processed"
	default:
		err = h.scheduler.Start()
	}

	if err != nil {
		h.logger.Error("scheduler action failed", zap.String("action", req.Action), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
		"status":  h.scheduler.Status(),
	})
}

// Status handles GET /v1/scheduler
func (h *SchedulerHandlers) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.Status())
}
