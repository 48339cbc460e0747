package bookings

import "pet-adoption/internal/domain/workflow"

type Event string

const (
	EventBook     Event = "book"
	EventStart    Event = "start"
	EventComplete Event = "complete"
	EventCancel   Event = "cancel"
)

const Kind = "booking"

var Machine = workflow.NewMachine(workflow.MachineConfig[Status, Event]{
	Kind:     Kind,
	Initial:  StatusScheduled,
	States:   []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled},
	Terminal: []Status{StatusCompleted, StatusCancelled},
	Rules: []workflow.Rule[Status, Event]{
		{From: []Status{StatusScheduled}, Event: EventStart, To: StatusInProgress},
		{From: []Status{StatusInProgress}, Event: EventComplete, To: StatusCompleted},
		{From: []Status{StatusScheduled, StatusInProgress}, Event: EventCancel, To: StatusCancelled},
	},
})
