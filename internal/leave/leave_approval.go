package leave

import (
	"strings"
	"time"

	"go-leavedesk/internal/domain"
	leaveerrors "go-leavedesk/internal/leave/errors"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ParseDecision accepts approve/reject and their past-tense forms.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "approved":
		return DecisionApprove, nil
	case "reject", "rejected":
		return DecisionReject, nil
	default:
		return "", leaveerrors.ErrInvalidDecision
	}
}

// LeaveRequest is the state of one leave as seen by the approval rules.
type LeaveRequest struct {
	ID                string
	RequesterID       string
	LeaveType         domain.LeaveType
	FromDate          time.Time
	ToDate            time.Time
	Reason            string
	ChargeableDays    int
	RequiredApprovals []domain.Role
	Status            string
}

// NewApprovalPolicy returns the set of roles that must approve every new request.
func NewApprovalPolicy() []domain.Role {
	return []domain.Role{domain.RoleHR, domain.RoleManager}
}

func NewLeaveRequest(id, requesterID string, leaveType domain.LeaveType, r DateRange, reason string, result ValidationResult) LeaveRequest {
	return LeaveRequest{
		ID:                id,
		RequesterID:       requesterID,
		LeaveType:         leaveType,
		FromDate:          civil(r.From),
		ToDate:            civil(r.To),
		Reason:            reason,
		ChargeableDays:    result.ChargeableDays,
		RequiredApprovals: NewApprovalPolicy(),
		Status:            StatusPending,
	}
}

func IsFinal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// Apply records one role's decision. A rejection finalizes the request at
// once; an approval removes the role and finalizes when nobody is left.
// The input is not modified.
func Apply(req LeaveRequest, actingRole domain.Role, decision Decision) (LeaveRequest, error) {
	if IsFinal(req.Status) {
		return req, leaveerrors.ErrAlreadyFinal
	}
	if !containsRole(req.RequiredApprovals, actingRole) {
		return req, leaveerrors.ErrUnauthorizedRole
	}

	next := req
	switch decision {
	case DecisionReject:
		next.RequiredApprovals = []domain.Role{}
		next.Status = StatusRejected
	case DecisionApprove:
		remaining := make([]domain.Role, 0, len(req.RequiredApprovals))
		for _, r := range req.RequiredApprovals {
			if r != actingRole {
				remaining = append(remaining, r)
			}
		}
		next.RequiredApprovals = remaining
		if len(remaining) == 0 {
			next.Status = StatusApproved
		}
	default:
		return req, leaveerrors.ErrInvalidDecision
	}
	return next, nil
}

// ApprovedBy lists the policy roles that have already signed off. A
// rejection clears the outstanding set, so rejected requests report none.
func ApprovedBy(req LeaveRequest) []domain.Role {
	out := []domain.Role{}
	if req.Status == StatusRejected {
		return out
	}
	for _, r := range NewApprovalPolicy() {
		if !containsRole(req.RequiredApprovals, r) {
			out = append(out, r)
		}
	}
	return out
}

// WaitingFor lists the roles whose approval is still outstanding.
func WaitingFor(req LeaveRequest) []domain.Role {
	if req.Status != StatusPending {
		return []domain.Role{}
	}
	return copyRoles(req.RequiredApprovals)
}

func containsRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func copyRoles(roles []domain.Role) []domain.Role {
	out := make([]domain.Role, len(roles))
	copy(out, roles)
	return out
}
