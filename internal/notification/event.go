package notification

import (
	"time"

	"diligencias/internal/domain"
)

// Event types, also used as asynq task types.
const (
	TypeAppointmentCreated    = "appointment:created"
	TypeAppointmentCancelled  = "appointment:cancelled"
	TypeAppointmentCompleted  = "appointment:completed"
	TypeUnavailabilityChanged = "unavailability:changed"
	TypeVisitReminder         = "appointment:reminder"
)

// Realtime message types as seen by subscribers.
const (
	RealtimeAppointmentCreated    = "appointment_created"
	RealtimeAppointmentCancelled  = "appointment_cancelled"
	RealtimeAppointmentCompleted  = "appointment_completed"
	RealtimeUnavailabilityChanged = "unavailability_changed"
)

type ReminderKind string

const (
	ReminderEveningBefore ReminderKind = "evening_before"
	ReminderNightBefore   ReminderKind = "night_before"
	ReminderMorningOf     ReminderKind = "morning_of"
)

// Event is the payload carried through the queue.
type Event struct {
	Type           string                 `json:"type"`
	Appointment    *domain.Appointment    `json:"appointment,omitempty"`
	Unavailability *domain.Unavailability `json:"unavailability,omitempty"`
	Removed        bool                   `json:"removed,omitempty"`
	Amount         float64                `json:"amount,omitempty"`
	Reminder       ReminderKind           `json:"reminder,omitempty"`
	OccurredAt     time.Time              `json:"occurred_at"`
}
