package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveRequested = "leave.requested"
	LeaveApproved  = "leave.approved"
	LeaveRejected  = "leave.rejected"
	LeaveCancelled = "leave.cancelled"
)

type LeaveLifecycleEvent struct {
	EventType         string    `json:"event_type"`
	RequestID         string    `json:"request_id,omitempty"`
	LeaveID           string    `json:"leave_id"`
	RequesterID       string    `json:"requester_id"`
	LeaveType         string    `json:"leave_type"`
	FromDate          string    `json:"from_date"`
	ToDate            string    `json:"to_date"`
	ChargeableDays    int       `json:"chargeable_days"`
	Status            string    `json:"status"`
	RequiredApprovals []string  `json:"required_approvals"`
	ActorID           string    `json:"actor_id,omitempty"`
	ActorRole         string    `json:"actor_role,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}
