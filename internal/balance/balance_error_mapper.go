package balance

import (
	"errors"

	balanceerrors "go-leavedesk/internal/balance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return balanceerrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_balance_deductions_leave":
			return balanceerrors.ErrAlreadyDeducted
		case pgErr.Code == "23503":
			return balanceerrors.ErrUserNotFound
		}
	}

	return err
}
