package rbac

import "go-leavedesk/internal/domain"

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// inherits lists role -> parent role. A role gets every permission of
// its parent.
var inherits = [][2]domain.Role{
	{domain.RoleManager, domain.RoleEmployee},
	{domain.RoleHR, domain.RoleManager},
}

var rolePermissions = map[domain.Role][]Permission{
	domain.RoleEmployee: {
		{"leave", "create"},
		{"leave", "read_own"},
		{"leave", "cancel"},
	},
	domain.RoleManager: {
		{"leave", "act"},
		{"leave", "read_queue"},
		{"team", "read"},
	},
	domain.RoleHR: {
		{"leave", "read_all"},
		{"leave", "stats"},
		{"user", "manage"},
		{"user", "read"},
	},
	// admin tidak ikut approval, jadi tidak mewarisi manager.
	domain.RoleAdmin: {
		{"leave", "read_all"},
		{"leave", "stats"},
		{"user", "manage"},
		{"user", "read"},
		{"team", "read"},
		{"leave", "create"},
		{"leave", "read_own"},
		{"leave", "cancel"},
	},
}
