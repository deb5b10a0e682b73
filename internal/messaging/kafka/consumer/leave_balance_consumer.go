package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-leavedesk/internal/balance"
	balanceerrors "go-leavedesk/internal/balance/errors"
	"go-leavedesk/internal/events"
	"go-leavedesk/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer loop uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func ConsumeLeaveBalance(
	ctx context.Context,
	reader MessageReader,
	balanceService balance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_balance")
	log.Info("leave balance consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave balance consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		if !HandleLeaveLifecycle(ctx, msg, balanceService, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
		}
	}
}

// HandleLeaveLifecycle applies one lifecycle message and reports whether
// it may be committed. Only transient failures leave it uncommitted.
func HandleLeaveLifecycle(
	ctx context.Context,
	msg kafkago.Message,
	balanceService balance.Service,
	log *zap.Logger,
) bool {
	var event events.LeaveLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave lifecycle event failed", zap.Error(err))
		return true
	}

	if event.EventType != events.LeaveApproved {
		log.Debug("leave lifecycle event ignored",
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
		)
		return true
	}

	err := balanceService.Deduct(ctx, balance.DeductRequest{
		LeaveID:   event.LeaveID,
		UserID:    event.RequesterID,
		LeaveType: event.LeaveType,
		Days:      event.ChargeableDays,
	})
	if err == nil {
		log.Info("leave balance deducted from leave.approved event",
			zap.String("leave_id", event.LeaveID),
			zap.String("requester_id", event.RequesterID),
			zap.Int("days", event.ChargeableDays),
		)
		return true
	}

	if errors.Is(err, balanceerrors.ErrAlreadyDeducted) {
		log.Warn("leave balance already deducted for event, skipping",
			zap.String("leave_id", event.LeaveID),
		)
		return true
	}

	// Event yang tidak valid tidak akan pernah berhasil, jadi tetap di-commit.
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		log.Error("leave balance event rejected",
			zap.String("leave_id", event.LeaveID),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
		return true
	}

	log.Error("deduct leave balance failed",
		zap.String("leave_id", event.LeaveID),
		zap.String("requester_id", event.RequesterID),
		zap.Error(err),
	)
	return false
}
