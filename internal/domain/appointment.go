package domain

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// DefaultCanceller is recorded when a cancellation names no actor.
const DefaultCanceller = "Sistema"

// Appointment is a courier visit booked on a weekday slot. Rows are never
// deleted; only the status moves forward.
type Appointment struct {
	ID            string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RequesterName string            `json:"requester_name" gorm:"type:varchar(200);not null"`
	Date          string            `json:"date" gorm:"type:varchar(10);not null;index"`
	Slot          string            `json:"slot" gorm:"type:varchar(5);not null"`
	CEP           string            `json:"cep" gorm:"column:cep;type:varchar(9);not null"`
	Street        string            `json:"street" gorm:"type:varchar(255);not null"`
	Number        string            `json:"number" gorm:"type:varchar(20);not null"`
	Complement    string            `json:"complement,omitempty" gorm:"type:varchar(120)"`
	District      string            `json:"district" gorm:"type:varchar(120);not null"`
	City          string            `json:"city" gorm:"type:varchar(120);not null"`
	State         string            `json:"state" gorm:"type:varchar(2);not null"`
	Notes         string            `json:"notes,omitempty" gorm:"type:text"`
	Status        AppointmentStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	CancelledAt   *time.Time        `json:"cancelled_at,omitempty"`
	CancelledBy   string            `json:"cancelled_by,omitempty" gorm:"type:varchar(200)"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
}

func (a *Appointment) IsScheduled() bool { return a.Status == AppointmentScheduled }

type AppointmentFilter struct {
	Status AppointmentStatus
	From   string
	To     string
}
