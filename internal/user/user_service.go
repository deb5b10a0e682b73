package user

import (
	"context"
	"errors"
	"strings"

	"go-leavedesk/internal/domain"
	"go-leavedesk/internal/leave"
	usererrors "go-leavedesk/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserDetailResponse, error)
	GetTeam(ctx context.Context, principal domain.Principal, managerID string) (TeamResponse, error)
	GetTeams(ctx context.Context) (TeamsResponse, error)
	AssignManager(ctx context.Context, userID string, req AssignManagerRequest) (UserResponse, error)
}

// LeaveReader is the slice of the leave service the user views need.
type LeaveReader interface {
	GetByRequesters(ctx context.Context, requesterIDs []string) ([]leave.LeaveResponse, error)
}

type service struct {
	repo   Repository
	leaves LeaveReader
	logger *zap.Logger
}

func NewService(repo Repository, leaves LeaveReader, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, leaves: leaves, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	u := &User{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Role:          role.String(),
		CasualBalance: req.LeaveBalance.Casual,
		SickBalance:   req.LeaveBalance.Sick,
		EarnedBalance: req.LeaveBalance.Earned,
	}

	if req.ManagerID != nil && *req.ManagerID != "" {
		if _, err := s.checkManager(ctx, u.ID.String(), *req.ManagerID); err != nil {
			return UserResponse{}, err
		}
		managerUUID := uuid.MustParse(*req.ManagerID)
		u.ManagerID = &managerUUID
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserDetailResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserDetailResponse{}, mapRepositoryError(err)
	}

	leaves, err := s.leaves.GetByRequesters(ctx, []string{id})
	if err != nil {
		s.logger.Error("get user leaves failed", zap.String("user_id", id), zap.Error(err))
		return UserDetailResponse{}, err
	}

	return UserDetailResponse{
		UserResponse: mapToResponse(*u),
		Leaves:       leaves,
	}, nil
}

// GetTeam returns a manager with their members and the members' leaves.
// A manager may only look at their own team; hr and admin may look at any.
func (s *service) GetTeam(ctx context.Context, principal domain.Principal, managerID string) (TeamResponse, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return TeamResponse{}, usererrors.ErrInvalidUserID
	}
	if principal.Role == domain.RoleManager && principal.UserID != managerID {
		return TeamResponse{}, usererrors.ErrTeamAccessDenied
	}

	manager, err := s.repo.FindByID(ctx, managerID)
	if err != nil {
		if errors.Is(mapRepositoryError(err), usererrors.ErrUserNotFound) {
			return TeamResponse{}, usererrors.ErrManagerNotFound
		}
		return TeamResponse{}, err
	}
	if manager.Role != domain.RoleManager.String() {
		return TeamResponse{}, usererrors.ErrNotAManager
	}

	members, err := s.repo.FindByManager(ctx, managerID)
	if err != nil {
		return TeamResponse{}, err
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID.String())
	}
	teamLeaves, err := s.leaves.GetByRequesters(ctx, ids)
	if err != nil {
		s.logger.Error("get team leaves failed", zap.String("manager_id", managerID), zap.Error(err))
		return TeamResponse{}, err
	}

	return TeamResponse{
		Manager:     mapToResponse(*manager),
		Members:     mapToListResponse(members),
		MemberCount: len(members),
		TeamLeaves:  teamLeaves,
	}, nil
}

// GetTeams groups every user under their manager. Non-managers without a
// manager end up in Unassigned.
func (s *service) GetTeams(ctx context.Context) (TeamsResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return TeamsResponse{}, err
	}

	managers := make([]User, 0)
	byManager := make(map[string][]User)
	unassigned := make([]User, 0)

	for _, u := range users {
		if u.Role == domain.RoleManager.String() {
			managers = append(managers, u)
		}
		if u.ManagerID != nil {
			key := u.ManagerID.String()
			byManager[key] = append(byManager[key], u)
			continue
		}
		if u.Role == domain.RoleEmployee.String() {
			unassigned = append(unassigned, u)
		}
	}

	teams := make([]TeamSummary, 0, len(managers))
	for _, m := range managers {
		members := byManager[m.ID.String()]
		teams = append(teams, TeamSummary{
			Manager:     mapToResponse(m),
			Members:     mapToListResponse(members),
			MemberCount: len(members),
		})
	}

	return TeamsResponse{
		Teams:      teams,
		Unassigned: mapToListResponse(unassigned),
	}, nil
}

func (s *service) AssignManager(ctx context.Context, userID string, req AssignManagerRequest) (UserResponse, error) {
	s.logger.Debug("assign manager requested",
		zap.String("user_id", userID),
		zap.String("manager_id", req.ManagerID),
	)

	if _, err := uuid.Parse(userID); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	if _, err := s.checkManager(ctx, userID, req.ManagerID); err != nil {
		return UserResponse{}, err
	}

	if err := s.repo.UpdateManager(ctx, userID, req.ManagerID); err != nil {
		s.logger.Error("assign manager persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("assign manager success",
		zap.String("user_id", userID),
		zap.String("manager_id", req.ManagerID),
	)
	return mapToResponse(*u), nil
}

func (s *service) checkManager(ctx context.Context, userID, managerID string) (*User, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	if strings.EqualFold(userID, managerID) {
		return nil, usererrors.ErrSelfManager
	}

	manager, err := s.repo.FindByID(ctx, managerID)
	if err != nil {
		if errors.Is(mapRepositoryError(err), usererrors.ErrUserNotFound) {
			return nil, usererrors.ErrManagerNotFound
		}
		return nil, err
	}
	if manager.Role != domain.RoleManager.String() {
		return nil, usererrors.ErrNotAManager
	}
	return manager, nil
}
