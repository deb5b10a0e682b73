package user

import "time"

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		LeaveBalance: LeaveBalance{
			Casual:    u.CasualBalance,
			Sick:      u.SickBalance,
			Earned:    u.EarnedBalance,
			UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
		},
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, mapToResponse(u))
	}
	return out
}
