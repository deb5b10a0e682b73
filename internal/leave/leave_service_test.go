package leave_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-leavedesk/internal/domain"
	"go-leavedesk/internal/events"
	"go-leavedesk/internal/leave"
	leaveerrors "go-leavedesk/internal/leave/errors"
	"go-leavedesk/internal/messaging/kafka"
	kafkaMock "go-leavedesk/internal/messaging/kafka/mock"
	"go-leavedesk/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn                  func(tx *sql.Tx) leave.Repository
	lockRequesterFn           func(ctx context.Context, requesterID string) error
	userExistsFn              func(ctx context.Context, userID string) (bool, error)
	createFn                  func(ctx context.Context, l *leave.Leave) error
	findByIDFn                func(ctx context.Context, id string) (*leave.Leave, error)
	findByIDForUpdateFn       func(ctx context.Context, id string) (*leave.Leave, error)
	findBlockingByRequesterFn func(ctx context.Context, requesterID string) ([]leave.Leave, error)
	findByRequesterFn         func(ctx context.Context, requesterID string) ([]leave.Leave, error)
	findByRequestersFn        func(ctx context.Context, requesterIDs []string) ([]leave.Leave, error)
	findPendingForRoleFn      func(ctx context.Context, role, excludeRequesterID string) ([]leave.Leave, error)
	findAllFn                 func(ctx context.Context) ([]leave.Leave, error)
	updateDecisionFn          func(ctx context.Context, l *leave.Leave) error
	deleteFn                  func(ctx context.Context, id string) error
	countByStatusFn           func(ctx context.Context) (map[string]int64, error)
	countUsersFn              func(ctx context.Context) (int64, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) LockRequester(ctx context.Context, requesterID string) error {
	if f.lockRequesterFn != nil {
		return f.lockRequesterFn(ctx, requesterID)
	}
	return nil
}

func (f *fakeLeaveRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	if f.userExistsFn != nil {
		return f.userExistsFn(ctx, userID)
	}
	return true, nil
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindBlockingByRequester(ctx context.Context, requesterID string) ([]leave.Leave, error) {
	if f.findBlockingByRequesterFn != nil {
		return f.findBlockingByRequesterFn(ctx, requesterID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByRequester(ctx context.Context, requesterID string) ([]leave.Leave, error) {
	if f.findByRequesterFn != nil {
		return f.findByRequesterFn(ctx, requesterID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByRequesters(ctx context.Context, requesterIDs []string) ([]leave.Leave, error) {
	if f.findByRequestersFn != nil {
		return f.findByRequestersFn(ctx, requesterIDs)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindPendingForRole(ctx context.Context, role, excludeRequesterID string) ([]leave.Leave, error) {
	if f.findPendingForRoleFn != nil {
		return f.findPendingForRoleFn(ctx, role, excludeRequesterID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.Leave, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) UpdateDecision(ctx context.Context, l *leave.Leave) error {
	if f.updateDecisionFn != nil {
		return f.updateDecisionFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLeaveRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	if f.countByStatusFn != nil {
		return f.countByStatusFn(ctx)
	}
	return map[string]int64{}, nil
}

func (f *fakeLeaveRepository) CountUsers(ctx context.Context) (int64, error) {
	if f.countUsersFn != nil {
		return f.countUsersFn(ctx)
	}
	return 0, nil
}

type leaveServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	redismock redismock.ClientMock
	outbox    *kafkaMock.MockOutboxRepository
	service   leave.Service
	repo      *fakeLeaveRepository
}

// Monday 2026-03-02, 09:00 UTC.
var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	rdb, redisMock := redismock.NewClientMock()

	repo := &fakeLeaveRepository{}
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)
	svc := leave.NewService(db, repo, outboxRepo, rdb, leave.Settings{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
		StatsTTL: time.Minute,
	})

	return &leaveServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		redismock: redisMock,
		outbox:    outboxRepo,
		service:   svc,
		repo:      repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func pendingEntity(requesterID uuid.UUID, approvals ...string) *leave.Leave {
	if len(approvals) == 0 {
		approvals = []string{"hr", "manager"}
	}
	return &leave.Leave{
		ID:                uuid.New(),
		RequesterID:       requesterID,
		LeaveType:         "casual",
		FromDate:          time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		ToDate:            time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		ChargeableDays:    2,
		RequiredApprovals: pq.StringArray(approvals),
		Status:            leave.StatusPending,
		Version:           1,
	}
}

func TestLeaveService_Create(t *testing.T) {
	requesterID := uuid.New().String()
	principal := domain.Principal{UserID: requesterID, Role: domain.RoleEmployee}
	ctx := contextutil.WithRequestID(context.Background(), "req-123")

	validReq := leave.CreateLeaveRequest{
		RequesterID: requesterID,
		LeaveType:   "Casual",
		FromDate:    "2026-03-03",
		ToDate:      "2026-03-09",
		Reason:      "Family event",
	}

	t.Run("success persists pending leave and queues event", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		var locked string
		deps.repo.lockRequesterFn = func(ctx context.Context, id string) error {
			locked = id
			return nil
		}
		var created *leave.Leave
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = l
			return nil
		}

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, "req-123", e.RequestID)
				assert.Equal(t, events.LeaveRequested, e.EventType)
				assert.Equal(t, events.LeaveLifecycleTopic, e.Topic)

				var payload events.LeaveLifecycleEvent
				assert.NoError(t, json.Unmarshal(e.Payload, &payload))
				assert.Equal(t, 5, payload.ChargeableDays)
				assert.Equal(t, []string{"hr", "manager"}, payload.RequiredApprovals)
				return nil
			})
		deps.redismock.ExpectDel(leave.StatsCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, principal, validReq)

		assert.NoError(t, err)
		assert.Equal(t, requesterID, locked)
		require.NotNil(t, created)
		assert.Equal(t, "casual", created.LeaveType)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 5, resp.ChargeableDays)
		assert.Equal(t, []string{"hr", "manager"}, resp.RequiredApprovals)
		assert.Equal(t, []string{"hr", "manager"}, resp.WaitingFor)
		assert.Empty(t, resp.ApprovedBy)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("negative requester mismatch", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		other := domain.Principal{UserID: uuid.New().String(), Role: domain.RoleEmployee}
		_, err := deps.service.Create(ctx, other, validReq)
		assert.ErrorIs(t, err, leaveerrors.ErrRequesterMismatch)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := validReq
		req.LeaveType = "vacation"
		_, err := deps.service.Create(ctx, principal, req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
	})

	t.Run("negative requester does not exist", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.userExistsFn = func(ctx context.Context, id string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, principal, validReq)
		assert.ErrorIs(t, err, leaveerrors.ErrRequesterNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative past date", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		req := validReq
		req.FromDate = "2026-03-01"
		_, err := deps.service.Create(ctx, principal, req)
		assert.ErrorIs(t, err, leaveerrors.ErrPastDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative conflict with pending leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.findBlockingByRequesterFn = func(ctx context.Context, id string) ([]leave.Leave, error) {
			return []leave.Leave{*pendingEntity(uuid.MustParse(requesterID))}, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			t.Fatal("create must not be called on conflict")
			return nil
		}

		_, err := deps.service.Create(ctx, principal, validReq)
		assert.ErrorIs(t, err, leaveerrors.ErrDateConflict)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative persist failure rolls back", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			return errors.New("db down")
		}

		_, err := deps.service.Create(ctx, principal, validReq)
		assert.EqualError(t, err, "db down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Act(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	hr := domain.Principal{UserID: uuid.New().String(), Role: domain.RoleHR}
	manager := domain.Principal{UserID: uuid.New().String(), Role: domain.RoleManager}

	t.Run("success hr approval keeps leave pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		l := pendingEntity(requesterID)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			assert.Equal(t, l.ID.String(), id)
			return l, nil
		}
		var saved leave.Leave
		deps.repo.updateDecisionFn = func(ctx context.Context, updated *leave.Leave) error {
			saved = *updated
			return nil
		}
		deps.redismock.ExpectDel(leave.StatsCacheKey).SetVal(1)

		resp, err := deps.service.Act(ctx, hr, leave.LeaveActionRequest{
			LeaveRequestID: l.ID.String(),
			ActingRole:     "HR",
			Decision:       "approve",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, []string{"hr"}, resp.ApprovedBy)
		assert.Equal(t, []string{"manager"}, resp.WaitingFor)
		assert.Equal(t, pq.StringArray{"manager"}, saved.RequiredApprovals)
		require.NotNil(t, saved.DecidedBy)
		assert.Equal(t, hr.UserID, saved.DecidedBy.String())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success last approval emits approved event", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		l := pendingEntity(requesterID, "manager")
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.LeaveApproved, e.EventType)
				assert.Equal(t, l.ID.String(), e.AggregateID)
				return nil
			})
		deps.redismock.ExpectDel(leave.StatsCacheKey).SetVal(1)

		resp, err := deps.service.Act(ctx, manager, leave.LeaveActionRequest{
			LeaveRequestID: l.ID.String(),
			ActingRole:     "manager",
			Decision:       "approve",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Empty(t, resp.RequiredApprovals)
		assert.Empty(t, resp.WaitingFor)
		assert.ElementsMatch(t, []string{"hr", "manager"}, resp.ApprovedBy)
	})

	t.Run("success rejection emits rejected event", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		l := pendingEntity(requesterID)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.LeaveRejected, e.EventType)
				return nil
			})
		deps.redismock.ExpectDel(leave.StatsCacheKey).SetVal(1)

		resp, err := deps.service.Act(ctx, manager, leave.LeaveActionRequest{
			LeaveRequestID: l.ID.String(),
			ActingRole:     "manager",
			Decision:       "reject",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.Empty(t, resp.RequiredApprovals)
	})

	t.Run("negative acting role does not match principal", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Act(ctx, manager, leave.LeaveActionRequest{
			LeaveRequestID: uuid.NewString(),
			ActingRole:     "hr",
			Decision:       "approve",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrRoleMismatch)
	})

	t.Run("negative admin is not a required approver", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		l := pendingEntity(requesterID)
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		admin := domain.Principal{UserID: uuid.New().String(), Role: domain.RoleAdmin}
		_, err := deps.service.Act(ctx, admin, leave.LeaveActionRequest{
			LeaveRequestID: l.ID.String(),
			ActingRole:     "Admin",
			Decision:       "approve",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrUnauthorizedRole)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative self approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		l := pendingEntity(uuid.MustParse(manager.UserID))
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		_, err := deps.service.Act(ctx, manager, leave.LeaveActionRequest{
			LeaveRequestID: l.ID.String(),
			ActingRole:     "manager",
			Decision:       "approve",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrSelfApproval)
	})

	t.Run("negative already final", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		l := pendingEntity(requesterID)
		l.Status = leave.StatusRejected
		l.RequiredApprovals = pq.StringArray{}
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		deps.repo.updateDecisionFn = func(ctx context.Context, l *leave.Leave) error {
			t.Fatal("update must not be called for a final leave")
			return nil
		}

		_, err := deps.service.Act(ctx, hr, leave.LeaveActionRequest{
			LeaveRequestID: l.ID.String(),
			ActingRole:     "hr",
			Decision:       "approve",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyFinal)
	})

	t.Run("negative approved leave is final", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		l := pendingEntity(requesterID)
		l.Status = leave.StatusApproved
		l.RequiredApprovals = pq.StringArray{}
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		deps.repo.updateDecisionFn = func(ctx context.Context, l *leave.Leave) error {
			t.Fatal("update must not be called for a final leave")
			return nil
		}

		_, err := deps.service.Act(ctx, hr, leave.LeaveActionRequest{
			LeaveRequestID: l.ID.String(),
			ActingRole:     "hr",
			Decision:       "reject",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyFinal)
		assert.Equal(t, leave.StatusApproved, l.Status)
		assert.Empty(t, l.RequiredApprovals)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative leave not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Act(ctx, hr, leave.LeaveActionRequest{
			LeaveRequestID: uuid.NewString(),
			ActingRole:     "hr",
			Decision:       "approve",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("negative unknown decision", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Act(ctx, hr, leave.LeaveActionRequest{
			LeaveRequestID: uuid.NewString(),
			ActingRole:     "hr",
			Decision:       "defer",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDecision)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	requester := domain.Principal{UserID: uuid.New().String(), Role: domain.RoleEmployee}

	t.Run("success cancels pending leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		l := pendingEntity(uuid.MustParse(requester.UserID))
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		deleted := ""
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = id
			return nil
		}
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(leave.StatsCacheKey).SetVal(1)

		err := deps.service.Cancel(ctx, requester, l.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, l.ID.String(), deleted)
	})

	t.Run("negative not the requester", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		l := pendingEntity(uuid.New())
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		err := deps.service.Cancel(ctx, requester, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotRequester)
	})

	t.Run("negative approved leave cannot be cancelled", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		l := pendingEntity(uuid.MustParse(requester.UserID))
		l.Status = leave.StatusApproved
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		err := deps.service.Cancel(ctx, requester, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotCancellable)
	})
}

func TestLeaveService_Validate(t *testing.T) {
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.New().String(), Role: domain.RoleEmployee}

	t.Run("success returns chargeable dates", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		resp, err := deps.service.Validate(ctx, principal, leave.ValidateLeaveRequest{
			FromDate: "2026-03-06",
			ToDate:   "2026-03-09",
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, resp.ChargeableDays)
		assert.Equal(t, []string{"2026-03-06", "2026-03-09"}, resp.ChargeableDates)
	})

	t.Run("negative weekend only", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Validate(ctx, principal, leave.ValidateLeaveRequest{
			FromDate: "2026-03-07",
			ToDate:   "2026-03-08",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrAllWeekend)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("negative employee cannot read others", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingEntity(uuid.New())
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		employee := domain.Principal{UserID: uuid.New().String(), Role: domain.RoleEmployee}
		_, err := deps.service.GetByID(ctx, employee, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveAccessDenied)
	})

	t.Run("success manager reads any leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingEntity(uuid.New(), "manager")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		manager := domain.Principal{UserID: uuid.New().String(), Role: domain.RoleManager}
		resp, err := deps.service.GetByID(ctx, manager, l.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, []string{"hr"}, resp.ApprovedBy)
		assert.Equal(t, []string{"manager"}, resp.WaitingFor)
	})
}

func TestLeaveService_GetPending(t *testing.T) {
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	hr := domain.Principal{UserID: uuid.New().String(), Role: domain.RoleHR}
	deps.repo.findPendingForRoleFn = func(ctx context.Context, role, exclude string) ([]leave.Leave, error) {
		assert.Equal(t, "hr", role)
		assert.Equal(t, hr.UserID, exclude)
		return []leave.Leave{*pendingEntity(uuid.New())}, nil
	}

	resp, err := deps.service.GetPending(context.Background(), hr)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestLeaveService_GetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("success cache hit skips database", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		cached, _ := json.Marshal(leave.StatsResponse{TotalLeaves: 7, PendingLeaves: 2})
		deps.redismock.ExpectGet(leave.StatsCacheKey).SetVal(string(cached))
		deps.repo.countByStatusFn = func(ctx context.Context) (map[string]int64, error) {
			t.Fatal("database must not be hit on cache hit")
			return nil, nil
		}

		resp, err := deps.service.GetStats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), resp.TotalLeaves)
	})

	t.Run("success cache miss loads and stores", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.countByStatusFn = func(ctx context.Context) (map[string]int64, error) {
			return map[string]int64{"pending": 2, "approved": 3, "rejected": 1}, nil
		}
		deps.repo.countUsersFn = func(ctx context.Context) (int64, error) {
			return 4, nil
		}

		want := leave.StatsResponse{
			TotalUsers:     4,
			TotalLeaves:    6,
			PendingLeaves:  2,
			ApprovedLeaves: 3,
			RejectedLeaves: 1,
		}
		payload, _ := json.Marshal(want)

		deps.redismock.ExpectGet(leave.StatsCacheKey).RedisNil()
		deps.redismock.ExpectSet(leave.StatsCacheKey, payload, time.Minute).SetVal("OK")

		resp, err := deps.service.GetStats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, want, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("negative database error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(leave.StatsCacheKey).RedisNil()
		deps.repo.countByStatusFn = func(ctx context.Context) (map[string]int64, error) {
			return nil, errors.New("db down")
		}

		_, err := deps.service.GetStats(ctx)
		assert.Error(t, err)
	})
}
