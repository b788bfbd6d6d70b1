package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"sheetmart/internal/analytics"
	"sheetmart/internal/models"
	"sheetmart/internal/repositories"

	"go.uber.org/zap"
)

// NotificationService renders and sends one tenant's emails. Both methods
// report whether an email went out; having nothing to report is not an error.
type NotificationService interface {
	SendLowStockEmail(ctx context.Context, tenant *models.Tenant) (bool, error)
	SendDashboardSummary(ctx context.Context, tenant *models.Tenant) (bool, error)
}

// Sender is the envelope used for every notification.
type Sender struct {
	From    string
	ReplyTo string
}

type notificationService struct {
	inventoryRepo repositories.InventoryRepository
	analytics     *analytics.AnalyticsService
	transport     EmailTransport
	sender        Sender
	locale        *Locale
	now           func() time.Time
	logger        *zap.Logger
	templates     *template.Template
}

func NewNotificationService(
	inventoryRepo repositories.InventoryRepository,
	analyticsService *analytics.AnalyticsService,
	transport EmailTransport,
	sender Sender,
	locale *Locale,
	now func() time.Time,
	logger *zap.Logger,
) NotificationService {
	if now == nil {
		now = time.Now
	}
	s := &notificationService{
		inventoryRepo: inventoryRepo,
		analytics:     analyticsService,
		transport:     transport,
		sender:        sender,
		locale:        locale,
		now:           now,
		logger:        logger,
	}
	s.templates = template.Must(template.New("email").Funcs(template.FuncMap{
		"currency": locale.Currency,
		"number":   locale.Number,
		"signed": func(v int) string {
			if v > 0 {
				return fmt.Sprintf("+%d%%", v)
			}
			return fmt.Sprintf("%d%%", v)
		},
	}).Parse(emailTemplates))
	return s
}

type lowStockRow struct {
	Product  string
	Category string
	Unit     string
	Stock    float64
	Minimum  float64
	Reorder  float64
	Status   models.StockStatus
}

type lowStockData struct {
	TenantName string
	Date       string
	Items      []lowStockRow
}

type summaryData struct {
	TenantName string
	Date       string
	Metrics    *models.DashboardMetrics
	LowStock   []lowStockRow
}

func toRows(items []models.InventoryItem) []lowStockRow {
	rows := make([]lowStockRow, len(items))
	for i, item := range items {
		rows[i] = lowStockRow{
			Product:  item.Product,
			Category: item.Category,
			Unit:     item.Unit,
			Stock:    item.Stock,
			Minimum:  item.MinimumQuantity,
			Reorder:  item.ReorderQuantity,
			Status:   item.CurrentStatus(),
		}
	}
	return rows
}

func displayName(t *models.Tenant) string {
	if strings.TrimSpace(t.Name) != "" {
		return t.Name
	}
	return t.ID
}

func (s *notificationService) SendLowStockEmail(ctx context.Context, tenant *models.Tenant) (bool, error) {
	items, err := s.inventoryRepo.List(ctx, tenant.SheetID)
	if err != nil {
		return false, err
	}
	low := analytics.LowStockItems(items)
	if len(low) == 0 {
		s.logger.Debug("no low stock items", zap.String("tenant_id", tenant.ID))
		return false, nil
	}

	msg, err := s.renderLowStock(tenant, low)
	if err != nil {
		return false, err
	}
	if err := s.transport.Send(ctx, msg); err != nil {
		return false, err
	}
	s.logger.Info("low stock email sent", zap.String("tenant_id", tenant.ID), zap.Int("items", len(low)))
	return true, nil
}

func (s *notificationService) SendDashboardSummary(ctx context.Context, tenant *models.Tenant) (bool, error) {
	snap, err := s.analytics.Snapshot(ctx, tenant.SheetID)
	if err != nil {
		return false, err
	}
	if len(snap.Inventory) == 0 && len(snap.Purchases) == 0 && len(snap.Sales) == 0 {
		s.logger.Debug("empty tenant sheet, no summary", zap.String("tenant_id", tenant.ID))
		return false, nil
	}

	msg, err := s.renderSummary(tenant, snap)
	if err != nil {
		return false, err
	}
	if err := s.transport.Send(ctx, msg); err != nil {
		return false, err
	}
	s.logger.Info("dashboard summary sent", zap.String("tenant_id", tenant.ID))
	return true, nil
}

func (s *notificationService) envelope(tenant *models.Tenant, subject string) *models.EmailMessage {
	return &models.EmailMessage{
		From:    s.sender.From,
		To:      tenant.Email,
		ReplyTo: s.sender.ReplyTo,
		Subject: subject,
	}
}

func (s *notificationService) renderLowStock(tenant *models.Tenant, low []models.InventoryItem) (*models.EmailMessage, error) {
	data := lowStockData{
		TenantName: displayName(tenant),
		Date:       s.locale.Date(s.now()),
		Items:      toRows(low),
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "low_stock", data); err != nil {
		return nil, fmt.Errorf("failed to render low stock email: %w", err)
	}

	msg := s.envelope(tenant, fmt.Sprintf("Low stock alert: %d item(s) need attention - %s", len(low), data.TenantName))
	msg.HTML = buf.String()

	var text strings.Builder
	fmt.Fprintf(&text, "Low stock report for %s (%s)\n\n", data.TenantName, data.Date)
	for _, row := range data.Items {
		fmt.Fprintf(&text, "- %s: %s %s in stock, minimum %s (%s)\n",
			row.Product, s.locale.Number(row.Stock), row.Unit, s.locale.Number(row.Minimum), row.Status)
	}
	msg.Text = text.String()
	return msg, nil
}

func (s *notificationService) renderSummary(tenant *models.Tenant, snap *analytics.Snapshot) (*models.EmailMessage, error) {
	data := summaryData{
		TenantName: displayName(tenant),
		Date:       s.locale.Date(s.now()),
		Metrics:    snap.Metrics,
		LowStock:   toRows(analytics.LowStockItems(snap.Inventory)),
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "summary", data); err != nil {
		return nil, fmt.Errorf("failed to render summary email: %w", err)
	}

	msg := s.envelope(tenant, fmt.Sprintf("Daily summary for %s - %s", data.TenantName, data.Date))
	msg.HTML = buf.String()
	m := snap.Metrics
	msg.Text = fmt.Sprintf("Daily summary for %s (%s)\n\nToday: %d purchases, %d sales\nThis week: %d purchases, %d sales\nLow stock items: %d\nTotal stock value: %s\n",
		data.TenantName, data.Date, m.Today.Purchases, m.Today.Sales, m.ThisWeek.Purchases, m.ThisWeek.Sales,
		m.LowStockItems, s.locale.Currency(m.TotalStockValue))
	return msg, nil
}

const emailTemplates = `
{{define "low_stock_table"}}
<table style="width:100%;border-collapse:collapse;font-size:14px;">
  <tr style="background:#f3f4f6;text-align:left;">
    <th style="padding:8px;border:1px solid #e5e7eb;">Product</th>
    <th style="padding:8px;border:1px solid #e5e7eb;">Category</th>
    <th style="padding:8px;border:1px solid #e5e7eb;text-align:right;">Stock</th>
    <th style="padding:8px;border:1px solid #e5e7eb;text-align:right;">Minimum</th>
    <th style="padding:8px;border:1px solid #e5e7eb;text-align:right;">Reorder</th>
    <th style="padding:8px;border:1px solid #e5e7eb;">Status</th>
  </tr>
  {{range .}}
  <tr>
    <td style="padding:8px;border:1px solid #e5e7eb;">{{.Product}}</td>
    <td style="padding:8px;border:1px solid #e5e7eb;">{{.Category}}</td>
    <td style="padding:8px;border:1px solid #e5e7eb;text-align:right;">{{number .Stock}} {{.Unit}}</td>
    <td style="padding:8px;border:1px solid #e5e7eb;text-align:right;">{{number .Minimum}}</td>
    <td style="padding:8px;border:1px solid #e5e7eb;text-align:right;">{{number .Reorder}}</td>
    <td style="padding:8px;border:1px solid #e5e7eb;color:{{if eq .Status "negative"}}#b91c1c{{else}}#b45309{{end}};">{{.Status}}</td>
  </tr>
  {{end}}
</table>
{{end}}

{{define "low_stock"}}
<div style="font-family:Arial,Helvetica,sans-serif;max-width:680px;margin:0 auto;color:#111827;">
  <h2 style="color:#b45309;margin-bottom:4px;">Low stock alert</h2>
  <p style="margin-top:0;color:#6b7280;">{{.TenantName}} &middot; {{.Date}}</p>
  <p>The following {{len .Items}} item(s) are below their minimum quantity:</p>
  {{template "low_stock_table" .Items}}
  <p style="color:#6b7280;font-size:12px;margin-top:24px;">This is an automated message.</p>
</div>
{{end}}

{{define "summary"}}
<div style="font-family:Arial,Helvetica,sans-serif;max-width:680px;margin:0 auto;color:#111827;">
  <h2 style="margin-bottom:4px;">Daily summary</h2>
  <p style="margin-top:0;color:#6b7280;">{{.TenantName}} &middot; {{.Date}}</p>
  <table style="width:100%;border-collapse:collapse;font-size:14px;">
    <tr><td style="padding:6px;">Purchases today</td><td style="padding:6px;text-align:right;">{{.Metrics.Today.Purchases}} ({{signed .Metrics.TodayPurchasesChange}} vs yesterday)</td></tr>
    <tr><td style="padding:6px;">Sales today</td><td style="padding:6px;text-align:right;">{{.Metrics.Today.Sales}} ({{signed .Metrics.TodaySalesChange}} vs yesterday)</td></tr>
    <tr><td style="padding:6px;">Purchases this week</td><td style="padding:6px;text-align:right;">{{.Metrics.ThisWeek.Purchases}} ({{signed .Metrics.PurchasesChange}} vs last week)</td></tr>
    <tr><td style="padding:6px;">Sales this week</td><td style="padding:6px;text-align:right;">{{.Metrics.ThisWeek.Sales}} ({{signed .Metrics.SalesChange}} vs last week)</td></tr>
    <tr><td style="padding:6px;">Average purchases per day</td><td style="padding:6px;text-align:right;">{{.Metrics.AvgDailyPurchases}}</td></tr>
    <tr><td style="padding:6px;">Average sales per day</td><td style="padding:6px;text-align:right;">{{.Metrics.AvgDailySales}}</td></tr>
    <tr><td style="padding:6px;">Products</td><td style="padding:6px;text-align:right;">{{.Metrics.TotalProducts}} ({{.Metrics.NewProductsThisWeek}} new this week)</td></tr>
    <tr><td style="padding:6px;">Total stock value</td><td style="padding:6px;text-align:right;">{{currency .Metrics.TotalStockValue}}</td></tr>
    <tr><td style="padding:6px;">Low stock items</td><td style="padding:6px;text-align:right;">{{.Metrics.LowStockItems}}</td></tr>
    <tr><td style="padding:6px;">Excess stock items</td><td style="padding:6px;text-align:right;">{{.Metrics.ExcessStockItems}}</td></tr>
  </table>
  {{if .LowStock}}
  <h3 style="color:#b45309;">Items to reorder</h3>
  {{template "low_stock_table" .LowStock}}
  {{end}}
  <p style="color:#6b7280;font-size:12px;margin-top:24px;">This is an automated message.</p>
</div>
{{end}}
`
