package booking

import (
	"time"

	"diligencias/internal/domain"
)

type CreateAppointmentRequest struct {
	RequesterName string `json:"requester_name" binding:"required,max=200"`
	Date          string `json:"date" binding:"required,isodate"`
	Slot          string `json:"slot" binding:"required"`
	CEP           string `json:"cep" binding:"required,cep"`
	Street        string `json:"street" binding:"required,max=255"`
	Number        string `json:"number" binding:"required,max=20"`
	Complement    string `json:"complement" binding:"max=120"`
	District      string `json:"district" binding:"required,max=120"`
	City          string `json:"city" binding:"required,max=120"`
	State         string `json:"state" binding:"required,uf"`
	Notes         string `json:"notes" binding:"max=2000"`
}

type CancelRequest struct {
	CancelledBy string `json:"cancelled_by" binding:"max=200"`
}

type CompleteRequest struct {
	AppointmentID string  `json:"appointment_id" binding:"required"`
	Amount        float64 `json:"amount"`
}

type ListQuery struct {
	Status string `form:"status"`
	From   string `form:"from"`
	To     string `form:"to"`
}

// AppointmentDetails adds the cancellation window to an appointment.
type AppointmentDetails struct {
	domain.Appointment
	CancellationDeadline time.Time `json:"cancellation_deadline"`
	CanCancel            bool      `json:"can_cancel"`
}

type CompletionResult struct {
	Appointment *domain.Appointment `json:"appointment"`
	Receipt     *domain.Receipt     `json:"receipt"`
}

type DriverAgenda struct {
	Today    []domain.Appointment `json:"today"`
	Upcoming []domain.Appointment `json:"upcoming"`
	Total    int                  `json:"total"`
}
