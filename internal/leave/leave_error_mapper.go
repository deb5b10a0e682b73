package leave

import (
	"errors"

	leaveerrors "go-leavedesk/internal/leave/errors"
	"go-leavedesk/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var errStaleVersion = errors.New("leave version changed")

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	if errors.Is(err, errStaleVersion) {
		return leaveerrors.ErrStaleLeave
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		// serialization_failure, lock_not_available
		case "40001", "55P03":
			return apperror.ErrConcurrentUpdate
		case "23503":
			return leaveerrors.ErrRequesterNotFound
		}
	}

	return err
}
