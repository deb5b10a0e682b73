package leave

import (
	"time"

	"go-leavedesk/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Leave struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_requester_dates"`

	LeaveType      string    `gorm:"type:varchar(20);not null"`
	FromDate       time.Time `gorm:"type:date;not null;index:idx_leave_requests_requester_dates"`
	ToDate         time.Time `gorm:"type:date;not null;index:idx_leave_requests_requester_dates"`
	ChargeableDays int       `gorm:"type:int;not null"`
	Reason         string    `gorm:"type:text"`

	RequiredApprovals pq.StringArray `gorm:"type:text[];not null"`
	Status            string         `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_status"`
	DecidedBy         *uuid.UUID     `gorm:"type:uuid"`
	DecidedAt         *time.Time
	Version           int `gorm:"not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Leave) TableName() string {
	return "leave_requests"
}

func (l Leave) toDomain() LeaveRequest {
	roles := make([]domain.Role, 0, len(l.RequiredApprovals))
	for _, r := range l.RequiredApprovals {
		// Stored tags are written canonical, but older rows may carry other casing.
		if role, err := domain.ParseRole(r); err == nil {
			roles = append(roles, role)
		}
	}
	return LeaveRequest{
		ID:                l.ID.String(),
		RequesterID:       l.RequesterID.String(),
		LeaveType:         domain.LeaveType(l.LeaveType),
		FromDate:          civil(l.FromDate),
		ToDate:            civil(l.ToDate),
		Reason:            l.Reason,
		ChargeableDays:    l.ChargeableDays,
		RequiredApprovals: roles,
		Status:            l.Status,
	}
}

func toDomainList(leaves []Leave) []LeaveRequest {
	out := make([]LeaveRequest, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, l.toDomain())
	}
	return out
}

func roleTags(roles []domain.Role) pq.StringArray {
	out := make(pq.StringArray, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return out
}
