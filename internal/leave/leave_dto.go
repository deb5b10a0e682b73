package leave

type CreateLeaveRequest struct {
	RequesterID string `json:"requesterId" binding:"required,uuid"`
	LeaveType   string `json:"leaveType" binding:"required,leavetype"`
	FromDate    string `json:"fromDate" binding:"required"`
	ToDate      string `json:"toDate" binding:"required"`
	Reason      string `json:"reason" binding:"max=1000"`
}

type ValidateLeaveRequest struct {
	FromDate string `json:"fromDate" binding:"required"`
	ToDate   string `json:"toDate" binding:"required"`
}

type ValidateLeaveResponse struct {
	ChargeableDays  int      `json:"chargeableDays"`
	ChargeableDates []string `json:"chargeableDates"`
}

type LeaveActionRequest struct {
	LeaveRequestID string `json:"leaveRequestId" binding:"required,uuid"`
	ActingRole     string `json:"actingRole" binding:"required,role"`
	Decision       string `json:"decision" binding:"required"`
}

type DecisionRequest struct {
	ActingRole string `json:"actingRole" binding:"required,role"`
}

type LeaveResponse struct {
	ID                string   `json:"id"`
	RequesterID       string   `json:"requesterId"`
	LeaveType         string   `json:"leaveType"`
	FromDate          string   `json:"fromDate"`
	ToDate            string   `json:"toDate"`
	Reason            string   `json:"reason"`
	ChargeableDays    int      `json:"chargeableDays"`
	RequiredApprovals []string `json:"requiredApprovals"`
	Status            string   `json:"status"`
	ApprovedBy        []string `json:"approvedBy"`
	WaitingFor        []string `json:"waitingFor"`
	DecidedBy         *string  `json:"decidedBy,omitempty"`
	DecidedAt         *string  `json:"decidedAt,omitempty"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

type StatsResponse struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalLeaves    int64 `json:"totalLeaves"`
	PendingLeaves  int64 `json:"pendingLeaves"`
	ApprovedLeaves int64 `json:"approvedLeaves"`
	RejectedLeaves int64 `json:"rejectedLeaves"`
}
