package database

import (
	"fmt"
	stdlog "log"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rpupo63/portfolio-api/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Connect opens the store selected by DB_TYPE. postgres and supa connect over
// pgx, sqlite opens a local file with foreign keys enforced.
func Connect(cfg config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger: logger.New(
			stdlog.New(log.Logger, "", 0),
			logger.Config{
				SlowThreshold:             10 * time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBType {
	case "postgres", "supa":
		log.Info().Str("dbType", cfg.DBType).Str("host", cfg.DBHost).Msg("connecting to postgres")
		db, err = gorm.Open(postgresDialector(cfg.PostgresDSN()), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.DBReplicaDSN != "" {
			err = db.Use(dbresolver.Register(dbresolver.Config{
				Replicas: []gorm.Dialector{postgresDialector(cfg.DBReplicaDSN)},
				Policy:   dbresolver.RandomPolicy{},
			}))
			if err != nil {
				return nil, fmt.Errorf("register read replica: %w", err)
			}
			log.Info().Msg("read replica registered")
		}
	case "sqlite":
		log.Info().Str("path", cfg.SQLitePath).Msg("opening sqlite database")
		db, err = gorm.Open(sqlite.Open(sqliteDSN(cfg.SQLitePath)), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}
	return db, nil
}

func postgresDialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

func sqliteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
