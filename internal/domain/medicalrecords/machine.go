package medicalrecords

import "pet-adoption/internal/domain/workflow"

type Event string

const (
	EventRecord       Event = "record"
	EventStart        Event = "start"
	EventComplete     Event = "complete"
	EventFlagFollowUp Event = "flag_follow_up"
	EventReschedule   Event = "reschedule"
	EventCancel       Event = "cancel"
	EventVoid         Event = "void"
)

const Kind = "medical_record"

// Machine del tratamiento. Un registro puede nacer SCHEDULED (cita futura)
// o COMPLETED (visita ya hecha); ver initialStatuses.
var Machine = workflow.NewMachine(workflow.MachineConfig[TreatmentStatus, Event]{
	Kind:     Kind,
	Initial:  StatusScheduled,
	States:   []TreatmentStatus{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusFollowUpNeeded},
	Terminal: []TreatmentStatus{StatusCancelled},
	Rules: []workflow.Rule[TreatmentStatus, Event]{
		{From: []TreatmentStatus{StatusScheduled}, Event: EventStart, To: StatusInProgress},
		{From: []TreatmentStatus{StatusScheduled, StatusInProgress, StatusFollowUpNeeded}, Event: EventComplete, To: StatusCompleted},
		{From: []TreatmentStatus{StatusInProgress, StatusCompleted}, Event: EventFlagFollowUp, To: StatusFollowUpNeeded},
		{From: []TreatmentStatus{StatusFollowUpNeeded}, Event: EventReschedule, To: StatusScheduled},
		{From: []TreatmentStatus{StatusScheduled, StatusInProgress}, Event: EventCancel, To: StatusCancelled},
	},
})

var initialStatuses = map[TreatmentStatus]bool{
	StatusScheduled: true,
	StatusCompleted: true,
}
