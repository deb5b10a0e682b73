package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("init postgres migrate driver: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, "postgres", driver)
}

// Run applies (up) or reverts (down) every embedded migration. Having
// nothing to do is not an error.
func Run(db *sql.DB, direction string, logger *zap.Logger) error {
	if err := validateDirection(direction); err != nil {
		return err
	}

	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	if direction == DirectionUp {
		err = m.Up()
	} else {
		err = m.Down()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migrations already up to date", zap.String("direction", direction))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return verr
	}
	logger.Info("migrations applied",
		zap.String("direction", direction),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

func validateDirection(direction string) error {
	switch direction {
	case DirectionUp, DirectionDown:
		return nil
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
}
