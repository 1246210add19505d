package receipt

import "diligencias/internal/domain"

type ListResult struct {
	Receipts                []domain.Receipt     `json:"receipts"`
	CompletedWithoutReceipt []domain.Appointment `json:"completed_without_receipt"`
}

type SummaryQuery struct {
	Year  int `form:"year"`
	Month int `form:"month"`
}

// Summary totals receipts by the date of the visit they pay for.
type Summary struct {
	Year           int              `json:"year"`
	Month          int              `json:"month"`
	MonthTotal     float64          `json:"month_total"`
	YearTotal      float64          `json:"year_total"`
	MorningTotal   float64          `json:"morning_total"`
	AfternoonTotal float64          `json:"afternoon_total"`
	MonthCount     int              `json:"month_count"`
	Receipts       []domain.Receipt `json:"receipts"`
}
