package medicalrecords

import "time"

// RecordType clasifica la visita o el tratamiento.
// @Enum VACCINATION, CHECKUP, SURGERY, DENTAL, EMERGENCY, ILLNESS, INJURY, SPAY_NEUTER, MICROCHIP, MEDICATION, BEHAVIORAL, OTHER
type RecordType string

const (
	TypeVaccination RecordType = "VACCINATION"
	TypeCheckup     RecordType = "CHECKUP"
	TypeSurgery     RecordType = "SURGERY"
	TypeDental      RecordType = "DENTAL"
	TypeEmergency   RecordType = "EMERGENCY"
	TypeIllness     RecordType = "ILLNESS"
	TypeInjury      RecordType = "INJURY"
	TypeSpayNeuter  RecordType = "SPAY_NEUTER"
	TypeMicrochip   RecordType = "MICROCHIP"
	TypeMedication  RecordType = "MEDICATION"
	TypeBehavioral  RecordType = "BEHAVIORAL"
	TypeOther       RecordType = "OTHER"
)

var recordTypes = map[RecordType]bool{
	TypeVaccination: true, TypeCheckup: true, TypeSurgery: true, TypeDental: true,
	TypeEmergency: true, TypeIllness: true, TypeInjury: true, TypeSpayNeuter: true,
	TypeMicrochip: true, TypeMedication: true, TypeBehavioral: true, TypeOther: true,
}

func (t RecordType) Valid() bool { return recordTypes[t] }

// TreatmentStatus es el estado del tratamiento.
// @Enum SCHEDULED, IN_PROGRESS, COMPLETED, CANCELLED, FOLLOW_UP_NEEDED
type TreatmentStatus string

const (
	StatusScheduled      TreatmentStatus = "SCHEDULED"
	StatusInProgress     TreatmentStatus = "IN_PROGRESS"
	StatusCompleted      TreatmentStatus = "COMPLETED"
	StatusCancelled      TreatmentStatus = "CANCELLED"
	StatusFollowUpNeeded TreatmentStatus = "FOLLOW_UP_NEEDED"
)

const (
	MinDescriptionLen = 5
	MaxDescriptionLen = 1000
)

// Medication: lo recetado en la visita.
type Medication struct {
	Name   string
	Dosage string // texto libre: "2 ml cada 12h"
}

// Vitals medidos en la visita. nil = no medido.
type Vitals struct {
	WeightKg     *float64
	TemperatureC *float64
}

// Record es una entrada del historial médico de una mascota.
// Nunca se borra: Void la marca como anulada.
type Record struct {
	ID    string
	PetID string

	Type        RecordType
	RecordDate  time.Time
	Description string

	VeterinarianName string
	ClinicName       string

	Medication   Medication
	Vitals       Vitals
	FollowUpDate *time.Time
	CostCents    int64
	Notes        string

	Status TreatmentStatus
	Voided bool

	CreatedBy string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter: todos opcionales. Sin PetID lista todas las mascotas.
type ListFilter struct {
	PetID         string
	Types         []RecordType
	From          *time.Time // record_date >= From
	To            *time.Time // record_date <= To
	Veterinarian  string     // contiene, sin distinguir mayúsculas
	Query         string     // descripción / notas / medicación
	IncludeVoided bool
	Limit         int
}
