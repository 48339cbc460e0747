package pets

import "time"

// Species define las especies habituales. Se acepta cualquier valor no vacío.
// @Enum dog, cat, rabbit, bird, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesRabbit Species = "rabbit"
	SpeciesBird   Species = "bird"
	SpeciesOther  Species = "other"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// AdoptionStatus es la disponibilidad de la mascota para adopción.
// @Enum AVAILABLE, PENDING, ADOPTED, ON_HOLD, NOT_AVAILABLE
type AdoptionStatus string

const (
	StatusAvailable    AdoptionStatus = "AVAILABLE"
	StatusPending      AdoptionStatus = "PENDING"
	StatusAdopted      AdoptionStatus = "ADOPTED"
	StatusOnHold       AdoptionStatus = "ON_HOLD"
	StatusNotAvailable AdoptionStatus = "NOT_AVAILABLE"
)

// Pet es el recurso adoptable. AdoptionStatus es la única fuente de verdad
// sobre si se puede adoptar ahora.
type Pet struct {
	ID        string
	ShelterID *string

	Name        string
	Species     Species
	Breed       string
	Sex         Sex
	AgeMonths   int
	Description string

	AdoptionFeeCents int64
	AdoptionStatus   AdoptionStatus

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pet) Available() bool { return p.AdoptionStatus == StatusAvailable }

// ListFilter: predicados simples, todos opcionales.
type ListFilter struct {
	ShelterID string
	Status    AdoptionStatus
	Species   Species
	Limit     int
	Offset    int
}
