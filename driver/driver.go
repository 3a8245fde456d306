package driver

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"school-directory/config"
	"school-directory/utils"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations
var migrations embed.FS

// ConnectDB opens the schools store and checks that it answers.
func ConnectDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.DBDriver)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "ping %s", cfg.DBDriver)
	}
	utils.Log.WithField("driver", cfg.DBDriver).Info("Connected to database")
	return db, nil
}

// Migrate brings the schema up to date using the SQL files embedded for the
// given driver. It leaves db open.
func Migrate(db *sql.DB, driverName string) error {
	src, err := iofs.New(migrations, "migrations/"+driverName)
	if err != nil {
		return errors.Wrapf(err, "no migrations for driver %q", driverName)
	}

	var target database.Driver
	switch driverName {
	case "mysql":
		target, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case "sqlite3":
		target, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		return errors.Errorf("unsupported driver %q", driverName)
	}
	if err != nil {
		return errors.Wrap(err, "migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, target)
	if err != nil {
		return errors.Wrap(err, "migrate")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "migrate up")
	}
	version, dirty, _ := m.Version()
	utils.Log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Schema migrated")
	return nil
}
