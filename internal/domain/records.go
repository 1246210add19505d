package domain

import "time"

// Unavailability blocks a whole day for the driver.
type Unavailability struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Date      string    `json:"date" gorm:"type:varchar(10);not null;uniqueIndex:idx_unavailabilities_date"`
	Reason    string    `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// Receipt records the amount charged for a completed visit. At most one per
// appointment.
type Receipt struct {
	ID            string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AppointmentID string       `json:"appointment_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_receipts_appointment"`
	Amount        float64      `json:"amount" gorm:"not null"`
	CreatedAt     time.Time    `json:"created_at"`
	Appointment   *Appointment `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
}

type AuditAction string

const (
	ActionAppointmentCreated   AuditAction = "appointment_created"
	ActionAppointmentCancelled AuditAction = "appointment_cancelled"
	ActionAppointmentCompleted AuditAction = "appointment_completed"
)

type AuditLog struct {
	ID            string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Action        AuditAction  `json:"action" gorm:"type:varchar(40);not null;index"`
	AppointmentID *string      `json:"appointment_id,omitempty" gorm:"type:varchar(36);index"`
	Actor         string       `json:"actor" gorm:"type:varchar(200)"`
	Details       string       `json:"details" gorm:"type:text"`
	CreatedAt     time.Time    `json:"created_at" gorm:"index"`
	Appointment   *Appointment `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
}

// PushToken is an Expo push token registered by the driver's app.
type PushToken struct {
	Token     string    `json:"token" gorm:"primaryKey;type:varchar(255)"`
	Platform  string    `json:"platform,omitempty" gorm:"type:varchar(20)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type HolidayType string

const (
	HolidayNational HolidayType = "national"
	HolidayState    HolidayType = "state"
)

// Holiday is read-only reference data, never persisted.
type Holiday struct {
	Date string      `json:"date"`
	Name string      `json:"name"`
	Type HolidayType `json:"type"`
}
