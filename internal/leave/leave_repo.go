package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockRequester(ctx context.Context, requesterID string) error
	UserExists(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Leave, error)
	FindBlockingByRequester(ctx context.Context, requesterID string) ([]Leave, error)
	FindByRequester(ctx context.Context, requesterID string) ([]Leave, error)
	FindByRequesters(ctx context.Context, requesterIDs []string) ([]Leave, error)
	FindPendingForRole(ctx context.Context, role, excludeRequesterID string) ([]Leave, error)
	FindAll(ctx context.Context) ([]Leave, error)
	UpdateDecision(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountUsers(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn runs statements on the bound transaction when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

// LockRequester serializes leave creation per requester until the
// surrounding transaction ends.
func (r *repository) LockRequester(ctx context.Context, requesterID string) error {
	return r.conn(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", requesterID).Error
}

func (r *repository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("users").
		Where("id = ?", userID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindBlockingByRequester(ctx context.Context, requesterID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("requester_id = ?", requesterID).
		Where("status <> ?", StatusRejected).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByRequester(ctx context.Context, requesterID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("requester_id = ?", requesterID).
		Order("from_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByRequesters(ctx context.Context, requesterIDs []string) ([]Leave, error) {
	var leaves []Leave
	if len(requesterIDs) == 0 {
		return leaves, nil
	}
	err := r.conn(ctx).
		Where("requester_id IN ?", requesterIDs).
		Order("from_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindPendingForRole(ctx context.Context, role, excludeRequesterID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("status = ?", StatusPending).
		Where("? = ANY(required_approvals)", role).
		Where("requester_id <> ?", excludeRequesterID).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

// UpdateDecision writes the approval state guarded by the row version.
func (r *repository) UpdateDecision(ctx context.Context, l *Leave) error {
	now := time.Now().UTC()
	res := r.conn(ctx).
		Model(&Leave{}).
		Where("id = ? AND version = ?", l.ID, l.Version).
		Updates(map[string]any{
			"required_approvals": l.RequiredApprovals,
			"status":             l.Status,
			"decided_by":         l.DecidedBy,
			"decided_at":         l.DecidedAt,
			"version":            l.Version + 1,
			"updated_at":         now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStaleVersion
	}
	l.Version++
	l.UpdatedAt = now
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Leave{}, "id = ?", id).Error
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.conn(ctx).
		Model(&Leave{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("users").
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}
