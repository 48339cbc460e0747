package pets

import "pet-adoption/internal/domain/workflow"

type Event string

const (
	EventHold    Event = "hold"
	EventReserve Event = "reserve"
	EventRelease Event = "release"
	EventDelist  Event = "delist"
	EventAdopt   Event = "adopt"
)

const Kind = "pet"

// Machine: ADOPTED solo se alcanza con EventAdopt (aprobación de solicitud) y es terminal.
var Machine = workflow.NewMachine(workflow.MachineConfig[AdoptionStatus, Event]{
	Kind:     Kind,
	Initial:  StatusAvailable,
	States:   []AdoptionStatus{StatusAvailable, StatusPending, StatusAdopted, StatusOnHold, StatusNotAvailable},
	Terminal: []AdoptionStatus{StatusAdopted},
	Rules: []workflow.Rule[AdoptionStatus, Event]{
		{From: []AdoptionStatus{StatusAvailable}, Event: EventHold, To: StatusOnHold},
		{From: []AdoptionStatus{StatusAvailable, StatusOnHold}, Event: EventReserve, To: StatusPending},
		{From: []AdoptionStatus{StatusOnHold, StatusPending, StatusNotAvailable}, Event: EventRelease, To: StatusAvailable},
		{From: []AdoptionStatus{StatusAvailable, StatusOnHold, StatusPending}, Event: EventDelist, To: StatusNotAvailable},
		{From: []AdoptionStatus{StatusAvailable}, Event: EventAdopt, To: StatusAdopted},
	},
})
