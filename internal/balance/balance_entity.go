package balance

import (
	"time"

	"github.com/google/uuid"
)

// Deduction records that a leave has already been charged against the
// requester's balance. leave_id is unique so a redelivered event cannot
// charge twice.
type Deduction struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveID   uuid.UUID `gorm:"column:leave_id;type:uuid;not null;uniqueIndex:uq_balance_deductions_leave"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	LeaveType string    `gorm:"column:leave_type;type:varchar(20);not null"`
	Days      int       `gorm:"column:days;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Deduction) TableName() string {
	return "balance_deductions"
}

type DeductRequest struct {
	LeaveID   string
	UserID    string
	LeaveType string
	Days      int
}
