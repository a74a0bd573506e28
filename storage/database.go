package storage

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"carrental-server/models"

	"github.com/glebarez/sqlite"
	"github.com/kataras/golog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// Open connects to the database named by dsn. DSNs starting with "sqlite:"
// use the embedded SQLite driver; everything else is handed to postgres.
// When tls is set, postgres connections without an explicit sslmode get
// sslmode=require.
func Open(dsn string, tls bool) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(gologWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		db, err := gorm.Open(sqlite.Open(path), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %q: %w", path, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// one connection: in-memory databases are per connection and
		// sqlite serializes writers anyway
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	db, err := gorm.Open(postgres.Open(withSSLMode(dsn, tls)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)
	return db, nil
}

type gologWriter struct{}

func (gologWriter) Printf(format string, args ...interface{}) {
	golog.Warnf(format, args...)
}

func withSSLMode(dsn string, tls bool) string {
	mode := "disable"
	if tls {
		mode = "require"
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		if q.Get("sslmode") == "" {
			q.Set("sslmode", mode)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}

	// key=value form
	if strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	return strings.TrimSpace(dsn + " sslmode=" + mode)
}

func performMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Reservation{},
	)
}

func InitializeDB(dsn string, tls bool) (*gorm.DB, error) {
	db, err := Open(dsn, tls)
	if err != nil {
		return nil, err
	}
	if err := performMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	golog.Info("database connected and migrated")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		golog.Warnf("closing database: %v", err)
	}
}
