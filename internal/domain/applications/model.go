package applications

import "time"

// Status de una solicitud de adopción.
// @Enum PENDING, UNDER_REVIEW, APPROVED, REJECTED, WITHDRAWN, COMPLETED
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusWithdrawn   Status = "WITHDRAWN"
	StatusCompleted   Status = "COMPLETED"
)

// Active: estados no terminales. Un par (user, pet) tiene a lo sumo una activa.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusUnderReview
}

// Details es lo que el solicitante cuenta al postular.
type Details struct {
	Reason             string
	LivingSituation    string
	HasOtherPets       bool
	ExperienceWithPets string
}

type Application struct {
	ID     string
	UserID string
	PetID  string
	Status Status

	Details
	AdminNotes string

	SubmittedAt time.Time
	ReviewedAt  *time.Time
	UpdatedAt   time.Time
	Version     int64
}
