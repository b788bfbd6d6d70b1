package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"sheetmart/internal/models"
	"sheetmart/internal/repositories"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const reportURLExpiry = 24 * time.Hour

// ArchivedReport points at a stored report.
type ArchivedReport struct {
	Bucket    string    `json:"bucket"`
	Object    string    `json:"object"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ReportService interface {
	InventoryPDF(ctx context.Context, sheetID, title string) ([]byte, error)
	ArchiveInventoryPDF(ctx context.Context, sheetID, tenantID, title string) (*ArchivedReport, error)
}

type reportService struct {
	inventoryRepo repositories.InventoryRepository
	storage       MinioService
	bucket        string
	locale        *Locale
	now           func() time.Time
	logger        *zap.Logger
}

// NewReportService builds the report generator. storage may be nil, in which
// case archiving returns ErrStorageNotConfigured.
func NewReportService(inventoryRepo repositories.InventoryRepository, storage MinioService, bucket string, locale *Locale, now func() time.Time, logger *zap.Logger) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{
		inventoryRepo: inventoryRepo,
		storage:       storage,
		bucket:        bucket,
		locale:        locale,
		now:           now,
		logger:        logger,
	}
}

func (s *reportService) InventoryPDF(ctx context.Context, sheetID, title string) ([]byte, error) {
	items, err := s.inventoryRepo.List(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	return s.renderInventory(items, title)
}

func (s *reportService) ArchiveInventoryPDF(ctx context.Context, sheetID, tenantID, title string) (*ArchivedReport, error) {
	if s.storage == nil {
		return nil, ErrStorageNotConfigured
	}
	pdfBytes, err := s.InventoryPDF(ctx, sheetID, title)
	if err != nil {
		return nil, err
	}

	if err := s.storage.EnsureBucketExists(ctx, s.bucket); err != nil {
		return nil, fmt.Errorf("failed to prepare bucket: %w", err)
	}

	owner := tenantID
	if owner == "" {
		owner = "default"
	}
	now := s.now()
	objectName := fmt.Sprintf("reports/%s/inventory-%s.pdf", owner, now.Format("20060102-150405"))
	if err := s.storage.Upload(ctx, s.bucket, objectName, "application/pdf", bytes.NewReader(pdfBytes), int64(len(pdfBytes))); err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, objectName, reportURLExpiry)
	if err != nil {
		// an archived report nobody can download is garbage
		if delErr := s.storage.Delete(ctx, s.bucket, objectName); delErr != nil {
			s.logger.Warn("failed to remove unsigned report", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to sign report url: %w", err)
	}
	s.logger.Info("inventory report archived", zap.String("tenant_id", tenantID), zap.String("object", objectName))

	return &ArchivedReport{Bucket: s.bucket, Object: objectName, URL: url, ExpiresAt: now.Add(reportURLExpiry)}, nil
}

func (s *reportService) renderInventory(items []models.InventoryItem, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	marginX := 15.0
	marginY := 15.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, tr(title+" - Inventory Report"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Generated: "+s.locale.DateTime(s.now()))
	pdf.Ln(10)

	headers := []string{"Sr", "Product", "Category", "Unit", "Min", "Max", "Reorder", "Stock", "Price (Rs.)", "Value (Rs.)", "Status"}
	colWidths := []float64{10, 55, 35, 15, 18, 18, 18, 20, 28, 30, 20}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	var total float64
	for _, item := range items {
		status := item.CurrentStatus()
		cells := []string{
			fmt.Sprintf("%d", item.SrNo),
			tr(item.Product),
			tr(item.Category),
			tr(item.Unit),
			s.locale.Number(item.MinimumQuantity),
			s.locale.Number(item.MaximumQuantity),
			s.locale.Number(item.ReorderQuantity),
			s.locale.Number(item.Stock),
			s.locale.Amount(item.PricePerUnit),
			s.locale.Amount(item.Value),
			string(status),
		}
		for i, cell := range cells {
			align := "R"
			if i >= 1 && i <= 3 || i == len(cells)-1 {
				align = "L"
			}
			if i == len(cells)-1 && (status == models.StockStatusLow || status == models.StockStatusNegative) {
				pdf.SetTextColor(220, 20, 60)
			}
			pdf.CellFormat(colWidths[i], 7, cell, "1", 0, align, false, 0, "")
			pdf.SetTextColor(33, 37, 41)
		}
		pdf.Ln(7)
		total += item.Value
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(207, 7, "Total stock value (Rs.):", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, s.locale.Amount(total), "", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.Cell(0, 5, fmt.Sprintf("%d product(s). This is a computer generated report.", len(items)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
