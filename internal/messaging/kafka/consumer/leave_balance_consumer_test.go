package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-leavedesk/internal/balance"
	balanceerrors "go-leavedesk/internal/balance/errors"
	mock_balance "go-leavedesk/internal/balance/mock"
	"go-leavedesk/internal/events"
	"go-leavedesk/internal/messaging/kafka/consumer"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func lifecycleMessage(t *testing.T, eventType string) (kafkago.Message, events.LeaveLifecycleEvent) {
	t.Helper()
	event := events.LeaveLifecycleEvent{
		EventType:      eventType,
		LeaveID:        uuid.NewString(),
		RequesterID:    uuid.NewString(),
		LeaveType:      "casual",
		ChargeableDays: 2,
		Status:         "approved",
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return kafkago.Message{Topic: events.LeaveLifecycleTopic, Value: payload}, event
}

func TestHandleLeaveLifecycle(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("success approved event deducts", func(t *testing.T) {
		svc := mock_balance.NewMockService(gomock.NewController(t))
		msg, event := lifecycleMessage(t, events.LeaveApproved)

		svc.EXPECT().Deduct(gomock.Any(), balance.DeductRequest{
			LeaveID:   event.LeaveID,
			UserID:    event.RequesterID,
			LeaveType: "casual",
			Days:      2,
		}).Return(nil)

		assert.True(t, consumer.HandleLeaveLifecycle(ctx, msg, svc, log))
	})

	t.Run("success other events are skipped", func(t *testing.T) {
		svc := mock_balance.NewMockService(gomock.NewController(t))
		msg, _ := lifecycleMessage(t, events.LeaveRequested)

		assert.True(t, consumer.HandleLeaveLifecycle(ctx, msg, svc, log))
	})

	t.Run("success duplicate is committed", func(t *testing.T) {
		svc := mock_balance.NewMockService(gomock.NewController(t))
		msg, _ := lifecycleMessage(t, events.LeaveApproved)
		svc.EXPECT().Deduct(gomock.Any(), gomock.Any()).Return(balanceerrors.ErrAlreadyDeducted)

		assert.True(t, consumer.HandleLeaveLifecycle(ctx, msg, svc, log))
	})

	t.Run("negative malformed payload is committed", func(t *testing.T) {
		svc := mock_balance.NewMockService(gomock.NewController(t))
		msg := kafkago.Message{Value: []byte("{not json")}

		assert.True(t, consumer.HandleLeaveLifecycle(ctx, msg, svc, log))
	})

	t.Run("negative transient failure is retried", func(t *testing.T) {
		svc := mock_balance.NewMockService(gomock.NewController(t))
		msg, _ := lifecycleMessage(t, events.LeaveApproved)
		svc.EXPECT().Deduct(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		assert.False(t, consumer.HandleLeaveLifecycle(ctx, msg, svc, log))
	})
}

type fakeReader struct {
	messages  []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func TestConsumeLeaveBalance(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := mock_balance.NewMockService(gomock.NewController(t))
	approved, _ := lifecycleMessage(t, events.LeaveApproved)
	failing, _ := lifecycleMessage(t, events.LeaveApproved)

	gomock.InOrder(
		svc.EXPECT().Deduct(gomock.Any(), gomock.Any()).Return(nil),
		svc.EXPECT().Deduct(gomock.Any(), gomock.Any()).Return(errors.New("db down")),
	)

	reader := &fakeReader{messages: []kafkago.Message{approved, failing}, cancel: cancel}
	consumer.ConsumeLeaveBalance(ctx, reader, svc, zap.NewNop())

	require.Len(t, reader.committed, 1)
	assert.Equal(t, approved.Value, reader.committed[0].Value)
}
