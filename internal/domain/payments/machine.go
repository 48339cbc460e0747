package payments

import "pet-adoption/internal/domain/workflow"

type Event string

const (
	EventInitiate        Event = "initiate"
	EventComplete        Event = "complete"
	EventFail            Event = "fail"
	EventCancel          Event = "cancel"
	EventRefund          Event = "refund"
	EventPartialRefund   Event = "partial_refund"
	EventRefundRemainder Event = "refund_remainder"
)

const Kind = "payment"

// Machine: COMPLETED solo admite reembolsos. FAILED, CANCELLED y REFUNDED son finales.
var Machine = workflow.NewMachine(workflow.MachineConfig[Status, Event]{
	Kind:     Kind,
	Initial:  StatusPending,
	States:   []Status{StatusPending, StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded, StatusPartiallyRefunded},
	Terminal: []Status{StatusFailed, StatusCancelled, StatusRefunded},
	Rules: []workflow.Rule[Status, Event]{
		{From: []Status{StatusPending}, Event: EventComplete, To: StatusCompleted},
		{From: []Status{StatusPending}, Event: EventFail, To: StatusFailed},
		{From: []Status{StatusPending}, Event: EventCancel, To: StatusCancelled},
		{From: []Status{StatusCompleted}, Event: EventRefund, To: StatusRefunded},
		{From: []Status{StatusCompleted, StatusPartiallyRefunded}, Event: EventPartialRefund, To: StatusPartiallyRefunded},
		{From: []Status{StatusPartiallyRefunded}, Event: EventRefundRemainder, To: StatusRefunded},
	},
})

func isRefund(ev Event) bool {
	return ev == EventRefund || ev == EventPartialRefund || ev == EventRefundRemainder
}
