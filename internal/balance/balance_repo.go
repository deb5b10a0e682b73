package balance

import (
	"context"
	"database/sql"

	"go-leavedesk/internal/domain"

	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	InsertDeduction(ctx context.Context, d *Deduction) error
	Decrement(ctx context.Context, userID string, leaveType domain.LeaveType, days int) error
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) InsertDeduction(ctx context.Context, d *Deduction) error {
	return r.conn(ctx).Create(d).Error
}

// Decrement lowers the balance column for the leave type, never below zero.
func (r *repository) Decrement(ctx context.Context, userID string, leaveType domain.LeaveType, days int) error {
	col := balanceColumn(leaveType)

	res := r.conn(ctx).
		Table("users").
		Where("id = ? AND deleted_at IS NULL", userID).
		Updates(map[string]any{
			col:          gorm.Expr("GREATEST("+col+" - ?, 0)", days),
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func balanceColumn(t domain.LeaveType) string {
	switch t {
	case domain.LeaveTypeSick:
		return "sick_balance"
	case domain.LeaveTypeEarned:
		return "earned_balance"
	default:
		return "casual_balance"
	}
}
