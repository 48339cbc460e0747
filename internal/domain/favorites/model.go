package favorites

import "time"

// Favorite es único por (UserID, PetID). Se crea y borra con Toggle.
type Favorite struct {
	ID                  string
	UserID              string
	PetID               string
	Notes               string
	NotificationEnabled bool
	CreatedAt           time.Time
}
