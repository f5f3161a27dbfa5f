package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
)

type PaymentReportRow struct {
	ReservationID     uint                     `json:"reservation_id"`
	Name              string                   `json:"name"`
	Date              string                   `json:"date"`
	Time              string                   `json:"time"`
	Guests            int                      `json:"guests"`
	ReservationStatus models.ReservationStatus `json:"reservation_status"`
	Amount            float64                  `json:"amount"`
	PaymentStatus     models.PaymentStatus     `json:"payment_status"`
}

type PaymentReport struct {
	GeneratedAt time.Time                        `json:"generated_at"`
	Rows        []PaymentReportRow               `json:"rows"`
	Totals      map[models.PaymentStatus]float64 `json:"totals"`
	Counts      map[models.PaymentStatus]int     `json:"counts"`
}

type Stats struct {
	Reservations map[string]int64 `json:"reservations"`
	Orders       map[string]int64 `json:"orders"`
	PaidRevenue  float64          `json:"paid_revenue"`
}

type ReportService struct {
	reservations ReservationStore
	orders       OrderStore
	settings     *SettingsService
	now          func() time.Time
}

func NewReportService(reservations ReservationStore, orders OrderStore, settings *SettingsService) *ReportService {
	return &ReportService{reservations: reservations, orders: orders, settings: settings, now: time.Now}
}

// PaymentReport lists every reservation's payment with totals per payment
// status. Reservations without a payment row are left out.
func (s *ReportService) PaymentReport(ctx context.Context) (*PaymentReport, error) {
	list, err := s.reservations.List(ctx, 0)
	if err != nil {
		return nil, storeErr("reservations", err)
	}

	report := &PaymentReport{
		GeneratedAt: s.now(),
		Rows:        make([]PaymentReportRow, 0, len(list)),
		Totals:      map[models.PaymentStatus]float64{},
		Counts:      map[models.PaymentStatus]int{},
	}
	for _, res := range list {
		if res.Payment == nil {
			continue
		}
		report.Rows = append(report.Rows, PaymentReportRow{
			ReservationID:     res.ID,
			Name:              res.Name,
			Date:              res.Date,
			Time:              res.Time,
			Guests:            res.Guests,
			ReservationStatus: res.Status,
			Amount:            res.Payment.Amount,
			PaymentStatus:     res.Payment.Status,
		})
		report.Totals[res.Payment.Status] = roundCents(report.Totals[res.Payment.Status] + res.Payment.Amount)
		report.Counts[res.Payment.Status]++
	}
	return report, nil
}

// PaymentReportPDF renders the payment report as an A4 document.
func (s *ReportService) PaymentReportPDF(ctx context.Context) ([]byte, error) {
	report, err := s.PaymentReport(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(settings.Name+" Payment Report", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, settings.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, settings.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Payment report generated "+report.GeneratedAt.Format("Jan 2, 2006 3:04 PM"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{15, 50, 28, 22, 15, 28, 27}
	headers := []string{"ID", "Name", "Date", "Time", "Guests", "Amount", "Payment"}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range report.Rows {
		cells := []string{
			fmt.Sprintf("%d", row.ReservationID),
			row.Name,
			displayDate(row.Date),
			row.Time,
			fmt.Sprintf("%d", row.Guests),
			utils.FormatAmount(row.Amount),
			string(row.PaymentStatus),
		}
		for i, c := range cells {
			align := "L"
			if i == 0 || i == 4 || i == 5 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	for _, st := range []models.PaymentStatus{models.PaymentPaid, models.PaymentPending, models.PaymentRefunded} {
		line := fmt.Sprintf("%s: %d payments, %s", st, report.Counts[st], utils.FormatAmount(report.Totals[st]))
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payment report: %w", err)
	}
	return buf.Bytes(), nil
}

// Stats counts reservations and orders by status and sums paid deposits.
func (s *ReportService) Stats(ctx context.Context) (*Stats, error) {
	resCounts, err := s.reservations.CountByStatus(ctx)
	if err != nil {
		return nil, storeErr("reservations", err)
	}
	orderCounts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, storeErr("orders", err)
	}
	totals, err := s.reservations.PaymentTotals(ctx)
	if err != nil {
		return nil, storeErr("payments", err)
	}

	stats := &Stats{
		Reservations: make(map[string]int64, len(resCounts)),
		Orders:       make(map[string]int64, len(orderCounts)),
		PaidRevenue:  roundCents(totals[models.PaymentPaid]),
	}
	for _, c := range resCounts {
		stats.Reservations[c.Status] = c.Total
	}
	for _, c := range orderCounts {
		stats.Orders[c.Status] = c.Total
	}
	return stats, nil
}
