package user

import "go-leavedesk/internal/leave"

type LeaveBalanceInput struct {
	Casual int `json:"casual" binding:"min=0"`
	Sick   int `json:"sick" binding:"min=0"`
	Earned int `json:"earned" binding:"min=0"`
}

type CreateUserRequest struct {
	Name         string            `json:"name" binding:"required,max=255"`
	Email        string            `json:"email" binding:"required,email"`
	Role         string            `json:"role" binding:"required,role"`
	ManagerID    *string           `json:"managerId" binding:"omitempty,uuid"`
	LeaveBalance LeaveBalanceInput `json:"leaveBalance"`
}

type AssignManagerRequest struct {
	ManagerID string `json:"managerId" binding:"required,uuid"`
}

type LeaveBalance struct {
	Casual    int    `json:"casual"`
	Sick      int    `json:"sick"`
	Earned    int    `json:"earned"`
	UpdatedAt string `json:"updatedAt"`
}

type UserResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	ManagerID    *string      `json:"managerId"`
	LeaveBalance LeaveBalance `json:"leaveBalance"`
	CreatedAt    string       `json:"createdAt"`
}

type UserDetailResponse struct {
	UserResponse
	Leaves []leave.LeaveResponse `json:"leaves"`
}

type TeamResponse struct {
	Manager     UserResponse          `json:"manager"`
	Members     []UserResponse        `json:"members"`
	MemberCount int                   `json:"memberCount"`
	TeamLeaves  []leave.LeaveResponse `json:"teamLeaves"`
}

type TeamSummary struct {
	Manager     UserResponse   `json:"manager"`
	Members     []UserResponse `json:"members"`
	MemberCount int            `json:"memberCount"`
}

type TeamsResponse struct {
	Teams      []TeamSummary  `json:"teams"`
	Unassigned []UserResponse `json:"unassigned"`
}
