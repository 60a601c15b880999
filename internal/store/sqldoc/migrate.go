package sqldoc

import (
	"database/sql"
	"embed"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrateUp applies the embedded migrations on a dedicated connection pool,
// which the migrator closes when it is done.
func migrateUp(driver, dsn string) error {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return errors.Wrapf(err, "opening %s for migrations", driver)
	}

	var target database.Driver
	switch driver {
	case DriverPostgres:
		target, err = postgres.WithInstance(db, &postgres.Config{})
	case DriverSQLite:
		target, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		err = errors.Newf("unsupported driver %q", driver)
	}
	if err != nil {
		_ = db.Close()
		return errors.Wrap(err, "create migration driver")
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		_ = db.Close()
		return errors.Wrap(err, "load embedded migrations")
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, target)
	if err != nil {
		_ = db.Close()
		return errors.Wrap(err, "create migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			slog.Warn("Close migration source", "error", srcErr)
		}
		if dbErr != nil {
			slog.Warn("Close migration db", "error", dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}

	version, _, err := m.Version()
	if err == nil {
		slog.Debug("Document schema ready", "driver", driver, "version", version)
	}
	return nil
}
