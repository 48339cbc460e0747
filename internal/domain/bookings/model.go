package bookings

import "time"

// Status de un servicio de cuidado (babysitting).
// @Enum SCHEDULED, IN_PROGRESS, COMPLETED, CANCELLED
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

const (
	MinDurationHours = 1
	MaxDurationHours = 24
)

// Booking no bloquea la disponibilidad de la mascota para adopción.
type Booking struct {
	ID     string
	UserID string
	PetID  string

	ServiceDate   time.Time
	DurationHours int
	Status        Status

	ServiceFeeCents     int64
	SpecialInstructions string
	CaretakerNotes      string
	CancelReason        string

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
