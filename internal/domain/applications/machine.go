package applications

import "pet-adoption/internal/domain/workflow"

type Event string

const (
	EventSubmit   Event = "submit"
	EventReview   Event = "review"
	EventApprove  Event = "approve"
	EventReject   Event = "reject"
	EventWithdraw Event = "withdraw"
	EventFinalize Event = "finalize"
)

const Kind = "application"

// Machine: APPROVED es terminal para updateStatus; solo Finalize lo cierra en COMPLETED.
var Machine = workflow.NewMachine(workflow.MachineConfig[Status, Event]{
	Kind:     Kind,
	Initial:  StatusPending,
	States:   []Status{StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusWithdrawn, StatusCompleted},
	Terminal: []Status{StatusApproved, StatusRejected, StatusWithdrawn, StatusCompleted},
	Rules: []workflow.Rule[Status, Event]{
		{From: []Status{StatusPending}, Event: EventReview, To: StatusUnderReview},
		{From: []Status{StatusPending, StatusUnderReview}, Event: EventApprove, To: StatusApproved},
		{From: []Status{StatusPending, StatusUnderReview}, Event: EventReject, To: StatusRejected},
		{From: []Status{StatusPending, StatusUnderReview}, Event: EventWithdraw, To: StatusWithdrawn},
		{From: []Status{StatusApproved}, Event: EventFinalize, To: StatusCompleted},
	},
})

// decisions marcan ReviewedAt.
var decisions = map[Event]bool{
	EventReview:  true,
	EventApprove: true,
	EventReject:  true,
}
