package user

import (
	"errors"

	usererrors "go-leavedesk/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_users_email":
			return usererrors.ErrUserAlreadyExists
		case pgErr.Code == "23503":
			return usererrors.ErrManagerNotFound
		}
	}

	return err
}
