package jobs

import (
	"context"
	"fmt"
	"time"

	"sheetmart/internal/models"
	"sheetmart/internal/repositories"
	"sheetmart/internal/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	JobLowStock  = "low-stock"
	JobDashboard = "dashboard-summary"
)

// JobReport summarizes one fan-out over the tenant directory.
type JobReport struct {
	Job      string        `json:"job"`
	RunID    uuid.UUID     `json:"run_id"`
	Eligible int           `json:"eligible"`
	Sent     int           `json:"sent"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// NotificationJobs sends one kind of email to every notifiable tenant, one
// tenant at a time. A failing tenant never stops the others.
type NotificationJobs struct {
	tenantRepo repositories.TenantRepository
	dispatcher services.NotificationService
	deliveries repositories.DeliveryRepository
	now        func() time.Time
	logger     *zap.Logger
}

func NewNotificationJobs(
	tenantRepo repositories.TenantRepository,
	dispatcher services.NotificationService,
	deliveries repositories.DeliveryRepository,
	now func() time.Time,
	logger *zap.Logger,
) *NotificationJobs {
	if now == nil {
		now = time.Now
	}
	if deliveries == nil {
		deliveries = repositories.NewNoopDeliveryRepo()
	}
	return &NotificationJobs{
		tenantRepo: tenantRepo,
		dispatcher: dispatcher,
		deliveries: deliveries,
		now:        now,
		logger:     logger,
	}
}

func (j *NotificationJobs) RunLowStockJob(ctx context.Context) (*JobReport, error) {
	return j.run(ctx, JobLowStock, models.NotificationLowStock, j.dispatcher.SendLowStockEmail)
}

func (j *NotificationJobs) RunDashboardJob(ctx context.Context) (*JobReport, error) {
	return j.run(ctx, JobDashboard, models.NotificationDashboard, j.dispatcher.SendDashboardSummary)
}

// RunAll runs both jobs concurrently. One job failing does not cancel the
// other; the first error is returned once both have finished.
func (j *NotificationJobs) RunAll(ctx context.Context) ([]*JobReport, error) {
	reports := make([]*JobReport, 2)

	var g errgroup.Group
	g.Go(func() error {
		report, err := j.RunLowStockJob(ctx)
		reports[0] = report
		return err
	})
	g.Go(func() error {
		report, err := j.RunDashboardJob(ctx)
		reports[1] = report
		return err
	})
	err := g.Wait()

	out := reports[:0]
	for _, r := range reports {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, err
}

type sendFunc func(ctx context.Context, tenant *models.Tenant) (bool, error)

func (j *NotificationJobs) run(ctx context.Context, job string, kind models.NotificationKind, send sendFunc) (*JobReport, error) {
	started := j.now()
	log := j.logger.With(zap.String("job", job))

	tenants, err := j.tenantRepo.List(ctx)
	if err != nil {
		log.Error("failed to list tenants", zap.Error(err))
		return nil, fmt.Errorf("%s: failed to list tenants: %w", job, err)
	}

	report := &JobReport{Job: job, RunID: uuid.New()}
	for _, tenant := range tenants {
		if !tenant.Notifiable() {
			continue
		}
		report.Eligible++

		sent, err := dispatch(ctx, tenant, send)
		status := models.DeliverySkipped
		switch {
		case err != nil:
			status = models.DeliveryFailed
			report.Failed++
			log.Error("notification failed", zap.String("tenant_id", tenant.ID), zap.Error(err))
		case sent:
			status = models.DeliverySent
			report.Sent++
		default:
			report.Skipped++
		}
		j.record(ctx, report.RunID, kind, tenant, status, err)
	}

	report.Duration = j.now().Sub(started)
	log.Info("notification job finished",
		zap.String("run_id", report.RunID.String()),
		zap.Int("eligible", report.Eligible),
		zap.Int("sent", report.Sent),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

func dispatch(ctx context.Context, tenant *models.Tenant, send sendFunc) (sent bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			sent, err = false, fmt.Errorf("panic while notifying tenant %s: %v", tenant.ID, r)
		}
	}()
	return send(ctx, tenant)
}

func (j *NotificationJobs) record(ctx context.Context, runID uuid.UUID, kind models.NotificationKind, tenant *models.Tenant, status models.DeliveryStatus, cause error) {
	d := &models.Delivery{
		ID:        uuid.New(),
		RunID:     runID,
		TenantID:  tenant.ID,
		Kind:      kind,
		Recipient: tenant.Email,
		Status:    status,
		CreatedAt: j.now(),
	}
	if cause != nil {
		msg := cause.Error()
		d.Error = &msg
	}
	if err := j.deliveries.Record(ctx, d); err != nil {
		j.logger.Warn("failed to record delivery", zap.String("tenant_id", tenant.ID), zap.Error(err))
	}
}
