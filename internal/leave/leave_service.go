package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-leavedesk/internal/domain"
	"go-leavedesk/internal/events"
	leaveerrors "go-leavedesk/internal/leave/errors"
	"go-leavedesk/internal/messaging/kafka"
	"go-leavedesk/internal/metrics"
	"go-leavedesk/internal/shared/apperror"
	"go-leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const StatsCacheKey = "leaves:stats"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Validate(ctx context.Context, principal domain.Principal, req ValidateLeaveRequest) (ValidateLeaveResponse, error)
	Create(ctx context.Context, principal domain.Principal, req CreateLeaveRequest) (LeaveResponse, error)
	Act(ctx context.Context, principal domain.Principal, req LeaveActionRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, principal domain.Principal, id string) error
	GetByID(ctx context.Context, principal domain.Principal, id string) (LeaveResponse, error)
	GetMine(ctx context.Context, principal domain.Principal) ([]LeaveResponse, error)
	GetPending(ctx context.Context, principal domain.Principal) ([]LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByRequesters(ctx context.Context, requesterIDs []string) ([]LeaveResponse, error)
	GetStats(ctx context.Context) (StatsResponse, error)
}

// Settings carries the clock used to decide what "today" is.
type Settings struct {
	Location *time.Location
	Now      func() time.Time
	StatsTTL time.Duration
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	sf       *singleflight.Group
	loc      *time.Location
	now      func() time.Time
	statsTTL time.Duration
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	settings Settings,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	if settings.StatsTTL <= 0 {
		settings.StatsTTL = time.Minute
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		loc:      settings.Location,
		now:      settings.Now,
		statsTTL: settings.StatsTTL,
		logger:   l,
	}
}

func (s *service) today() time.Time {
	return DateOf(s.now(), s.loc)
}

func parseRange(fromDate, toDate string) (DateRange, error) {
	from, err := ParseDate(fromDate)
	if err != nil {
		return DateRange{}, err
	}
	to, err := ParseDate(toDate)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{From: from, To: to}, nil
}

func validationCode(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return apperror.CodeInternalError
}

// Validate is a dry run against the caller's own leaves; nothing is persisted.
func (s *service) Validate(ctx context.Context, principal domain.Principal, req ValidateLeaveRequest) (ValidateLeaveResponse, error) {
	candidate, err := parseRange(req.FromDate, req.ToDate)
	if err != nil {
		return ValidateLeaveResponse{}, err
	}

	existing, err := s.repo.FindBlockingByRequester(ctx, principal.UserID)
	if err != nil {
		s.logger.Error("validate leave load existing failed", zap.Error(err))
		return ValidateLeaveResponse{}, err
	}

	result, err := Validate(candidate, s.today(), toDomainList(existing))
	if err != nil {
		metrics.RecordValidationFailure(validationCode(err))
		return ValidateLeaveResponse{}, err
	}

	dates := make([]string, 0, len(result.ChargeableDates))
	for _, d := range result.ChargeableDates {
		dates = append(dates, FormatDate(d))
	}
	return ValidateLeaveResponse{
		ChargeableDays:  result.ChargeableDays,
		ChargeableDates: dates,
	}, nil
}

func (s *service) Create(ctx context.Context, principal domain.Principal, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("requester_id", req.RequesterID),
		zap.String("leave_type", req.LeaveType),
		zap.String("from_date", req.FromDate),
		zap.String("to_date", req.ToDate),
	)

	requesterUUID, err := uuid.Parse(req.RequesterID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidRequesterID
	}
	if req.RequesterID != principal.UserID {
		return LeaveResponse{}, leaveerrors.ErrRequesterMismatch
	}
	leaveType, err := domain.ParseLeaveType(req.LeaveType)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	candidate, err := parseRange(req.FromDate, req.ToDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.UserExists(ctx, req.RequesterID)
	if err != nil {
		s.logger.Error("create leave requester check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrRequesterNotFound
	}

	if err := qtx.LockRequester(ctx, req.RequesterID); err != nil {
		s.logger.Error("create leave requester lock failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	existing, err := qtx.FindBlockingByRequester(ctx, req.RequesterID)
	if err != nil {
		s.logger.Error("create leave load existing failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	result, err := Validate(candidate, s.today(), toDomainList(existing))
	if err != nil {
		s.logger.Warn("create leave validation failed",
			zap.String("request_id", rid),
			zap.String("requester_id", req.RequesterID),
			zap.Error(err),
		)
		metrics.RecordValidationFailure(validationCode(err))
		return LeaveResponse{}, err
	}

	lr := NewLeaveRequest(uuid.NewString(), req.RequesterID, leaveType, candidate, req.Reason, result)
	l := &Leave{
		ID:                uuid.MustParse(lr.ID),
		RequesterID:       requesterUUID,
		LeaveType:         lr.LeaveType.String(),
		FromDate:          lr.FromDate,
		ToDate:            lr.ToDate,
		ChargeableDays:    lr.ChargeableDays,
		Reason:            lr.Reason,
		RequiredApprovals: roleTags(lr.RequiredApprovals),
		Status:            lr.Status,
		Version:           1,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.LeaveRequested, *l, principal); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.invalidateStats(ctx)
	metrics.RecordLeaveCreated(l.LeaveType)
	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("requester_id", req.RequesterID),
		zap.Int("chargeable_days", l.ChargeableDays),
	)

	return mapToResponse(*l), nil
}

func (s *service) Act(ctx context.Context, principal domain.Principal, req LeaveActionRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("leave action requested",
		zap.String("request_id", rid),
		zap.String("leave_id", req.LeaveRequestID),
		zap.String("acting_role", req.ActingRole),
		zap.String("decision", req.Decision),
	)

	if _, err := uuid.Parse(req.LeaveRequestID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actingRole, err := domain.ParseRole(req.ActingRole)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidRole
	}
	if actingRole != principal.Role {
		return LeaveResponse{}, leaveerrors.ErrRoleMismatch
	}
	decision, err := ParseDecision(req.Decision)
	if err != nil {
		return LeaveResponse{}, err
	}
	actorUUID, err := uuid.Parse(principal.UserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave action begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, req.LeaveRequestID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.RequesterID == actorUUID {
		s.logger.Warn("leave action self approval blocked",
			zap.String("leave_id", req.LeaveRequestID),
			zap.String("actor_id", principal.UserID),
		)
		return LeaveResponse{}, leaveerrors.ErrSelfApproval
	}

	updated, err := Apply(l.toDomain(), actingRole, decision)
	if err != nil {
		s.logger.Warn("leave action rejected by state machine",
			zap.String("request_id", rid),
			zap.String("leave_id", req.LeaveRequestID),
			zap.String("acting_role", actingRole.String()),
			zap.String("status", l.Status),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	now := s.now().UTC()
	l.RequiredApprovals = roleTags(updated.RequiredApprovals)
	l.Status = updated.Status
	l.DecidedBy = &actorUUID
	l.DecidedAt = &now

	if err := qtx.UpdateDecision(ctx, l); err != nil {
		s.logger.Error("leave action persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	switch l.Status {
	case StatusApproved:
		err = s.enqueue(ctx, tx, events.LeaveApproved, *l, principal)
	case StatusRejected:
		err = s.enqueue(ctx, tx, events.LeaveRejected, *l, principal)
	}
	if err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("leave action commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.invalidateStats(ctx)
	metrics.RecordLeaveDecision(actingRole.String(), string(decision), l.Status)
	s.logger.Info("leave action success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("acting_role", actingRole.String()),
		zap.String("decision", string(decision)),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, principal domain.Principal, id string) error {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if l.RequesterID.String() != principal.UserID {
		return leaveerrors.ErrNotRequester
	}
	if l.Status != StatusPending {
		return leaveerrors.ErrNotCancellable
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("cancel leave delete failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := s.enqueue(ctx, tx, events.LeaveCancelled, *l, principal); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateStats(ctx)
	s.logger.Info("cancel leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
	)
	return nil
}

func (s *service) GetByID(ctx context.Context, principal domain.Principal, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if principal.Role == domain.RoleEmployee && l.RequesterID.String() != principal.UserID {
		return LeaveResponse{}, leaveerrors.ErrLeaveAccessDenied
	}
	return mapToResponse(*l), nil
}

func (s *service) GetMine(ctx context.Context, principal domain.Principal) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByRequester(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

// GetPending returns the caller's approval queue; own requests are left out.
func (s *service) GetPending(ctx context.Context, principal domain.Principal) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindPendingForRole(ctx, principal.Role.String(), principal.UserID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByRequesters(ctx context.Context, requesterIDs []string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByRequesters(ctx, requesterIDs)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetStats(ctx context.Context) (StatsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, StatsCacheKey).Result(); err == nil {
			var stats StatsResponse
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		}
	}

	v, err, _ := s.sf.Do(StatsCacheKey, func() (interface{}, error) {
		stats, err := s.loadStats(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(stats); err == nil {
				s.rdb.Set(ctx, StatsCacheKey, jsonData, s.statsTTL)
			}
		}
		return stats, nil
	})
	if err != nil {
		s.logger.Error("get leave stats failed", zap.Error(err))
		return StatsResponse{}, err
	}

	return v.(StatsResponse), nil
}

func (s *service) loadStats(ctx context.Context) (StatsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return StatsResponse{}, err
	}

	stats := StatsResponse{
		TotalUsers:     users,
		PendingLeaves:  counts[StatusPending],
		ApprovedLeaves: counts[StatusApproved],
		RejectedLeaves: counts[StatusRejected],
	}
	for _, n := range counts {
		stats.TotalLeaves += n
	}
	return stats, nil
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, StatsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate leave stats cache",
			zap.Error(err),
			zap.String("key", StatsCacheKey),
		)
	}
}

// enqueue writes a lifecycle event into the outbox inside tx.
func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, l Leave, actor domain.Principal) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)

	event := events.LeaveLifecycleEvent{
		EventType:         eventType,
		RequestID:         rid,
		LeaveID:           l.ID.String(),
		RequesterID:       l.RequesterID.String(),
		LeaveType:         l.LeaveType,
		FromDate:          FormatDate(l.FromDate),
		ToDate:            FormatDate(l.ToDate),
		ChargeableDays:    l.ChargeableDays,
		Status:            l.Status,
		RequiredApprovals: []string(l.RequiredApprovals),
		ActorID:           actor.UserID,
		ActorRole:         actor.Role.String(),
		OccurredAt:        s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}
