package domain

type DayStatus string

const (
	DayAvailable   DayStatus = "available"
	DayPartial     DayStatus = "partial"
	DayBooked      DayStatus = "booked"
	DayWeekend     DayStatus = "weekend"
	DayHoliday     DayStatus = "holiday"
	DayUnavailable DayStatus = "unavailable"
	DayPast        DayStatus = "past"
)

// CalendarDay is the derived availability of one grid cell.
type CalendarDay struct {
	Date               string          `json:"date"`
	Day                int             `json:"day"`
	Weekday            int             `json:"weekday"`
	InMonth            bool            `json:"in_month"`
	IsToday            bool            `json:"is_today"`
	IsPast             bool            `json:"is_past"`
	IsWeekend          bool            `json:"is_weekend"`
	Holiday            *Holiday        `json:"holiday,omitempty"`
	Unavailability     *Unavailability `json:"unavailability,omitempty"`
	Appointments       []Appointment   `json:"appointments"`
	OccupiedSlots      []string        `json:"occupied_slots"`
	ElapsedSlots       []string        `json:"elapsed_slots"`
	AvailableSlots     []string        `json:"available_slots"`
	TotalSlots         int             `json:"total_slots"`
	AvailableCount     int             `json:"available_count"`
	MorningAvailable   int             `json:"morning_available"`
	AfternoonAvailable int             `json:"afternoon_available"`
	Status             DayStatus       `json:"status"`
}
