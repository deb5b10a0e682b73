package domain

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

var roles = []Role{RoleEmployee, RoleManager, RoleHR, RoleAdmin}

// ParseRole normalizes casing and surrounding spaces, so "Admin", "ADMIN"
// and " admin " all map to RoleAdmin.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range roles {
		if r == known {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type LeaveType string

const (
	LeaveTypeCasual LeaveType = "casual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeEarned LeaveType = "earned"
)

var ErrUnknownLeaveType = errors.New("unknown leave type")

var leaveTypes = []LeaveType{LeaveTypeCasual, LeaveTypeSick, LeaveTypeEarned}

func ParseLeaveType(s string) (LeaveType, error) {
	t := LeaveType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range leaveTypes {
		if t == known {
			return t, nil
		}
	}
	return "", ErrUnknownLeaveType
}

func (t LeaveType) String() string {
	return string(t)
}

func LeaveTypes() []LeaveType {
	out := make([]LeaveType, len(leaveTypes))
	copy(out, leaveTypes)
	return out
}

// Principal is the authenticated caller, passed explicitly to services.
type Principal struct {
	UserID string
	Role   Role
}
