package shelters

import "time"

// Shelter es dueño (para display) de las mascotas que publica.
type Shelter struct {
	ID       string
	Name     string
	City     string
	Address  string
	Email    string
	Phone    string
	Capacity int
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
