package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "go-leavedesk/internal/balance/errors"
	"go-leavedesk/internal/domain"
	"go-leavedesk/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Deduct(ctx context.Context, req DeductRequest) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Deduct charges an approved leave against the requester's balance once.
// A second call for the same leave returns ErrAlreadyDeducted.
func (s *service) Deduct(ctx context.Context, req DeductRequest) error {
	leaveID, err := uuid.Parse(req.LeaveID)
	if err != nil {
		return balanceerrors.ErrInvalidLeaveID
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return balanceerrors.ErrInvalidUserID
	}
	leaveType, err := domain.ParseLeaveType(req.LeaveType)
	if err != nil {
		return balanceerrors.ErrInvalidLeaveType
	}
	if req.Days <= 0 {
		return balanceerrors.ErrInvalidDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deduct balance begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.InsertDeduction(ctx, &Deduction{
		ID:        uuid.New(),
		LeaveID:   leaveID,
		UserID:    userID,
		LeaveType: leaveType.String(),
		Days:      req.Days,
	}); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, balanceerrors.ErrAlreadyDeducted) {
			metrics.RecordBalanceDeduction("duplicate")
		} else {
			metrics.RecordBalanceDeduction("failed")
		}
		return mapped
	}

	if err := qtx.Decrement(ctx, userID.String(), leaveType, req.Days); err != nil {
		metrics.RecordBalanceDeduction("failed")
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordBalanceDeduction("failed")
		s.logger.Error("deduct balance commit failed", zap.Error(err))
		return err
	}

	metrics.RecordBalanceDeduction("applied")
	s.logger.Info("leave balance deducted",
		zap.String("leave_id", req.LeaveID),
		zap.String("user_id", req.UserID),
		zap.String("leave_type", leaveType.String()),
		zap.Int("days", req.Days),
	)
	return nil
}
