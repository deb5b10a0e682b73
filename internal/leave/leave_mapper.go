package leave

import (
	"time"

	"go-leavedesk/internal/domain"
)

func mapToResponse(l Leave) LeaveResponse {
	lr := l.toDomain()
	resp := LeaveResponse{
		ID:                l.ID.String(),
		RequesterID:       l.RequesterID.String(),
		LeaveType:         l.LeaveType,
		FromDate:          FormatDate(l.FromDate),
		ToDate:            FormatDate(l.ToDate),
		Reason:            l.Reason,
		ChargeableDays:    l.ChargeableDays,
		RequiredApprovals: roleStrings(lr.RequiredApprovals),
		Status:            l.Status,
		ApprovedBy:        roleStrings(ApprovedBy(lr)),
		WaitingFor:        roleStrings(WaitingFor(lr)),
		CreatedAt:         l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         l.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, mapToResponse(l))
	}
	return out
}

func roleStrings(roles []domain.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return out
}
