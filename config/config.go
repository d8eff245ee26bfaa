package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every setting the service reads from the environment.
type Config struct {
	Port            string        `env:"PORT,default=8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=180s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=180s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT,default=180s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=30s"`
	AcceptedOrigins string        `env:"ACCEPTED_ORIGINS,default=*"`

	DBType                 string `env:"DB_TYPE,default=postgres"`
	DBHost                 string `env:"DB_HOST,default=localhost"`
	DBUser                 string `env:"DB_USER,default=postgres"`
	DBPassword             string `env:"DB_PASSWORD"`
	DBPasswordSSMParameter string `env:"DB_PASSWORD_SSM_PARAMETER"`
	DBName                 string `env:"DB_NAME,default=portfolio"`
	DBPort                 string `env:"DB_PORT,default=5432"`
	DBSSLMode              string `env:"DB_SSLMODE,default=require"`
	DBReplicaDSN           string `env:"DB_REPLICA_DSN"`
	SQLitePath             string `env:"SQLITE_PATH,default=portfolio.db"`

	EndpointsFile string `env:"ENDPOINTS_FILE,default=docs/endpoints.json"`
	SeedFile      string `env:"SEED_FILE,default=database/seed/data.json"`

	ResetDatabase        bool `env:"RESET_DATABASE,default=false"`
	GenerateModels       bool `env:"GENERATE_MODELS,default=false"`
	GenerateColumnReport bool `env:"GENERATE_COLUMN_REPORT,default=false"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
}

// Load reads an optional .env file and decodes the environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded, using process environment")
	}

	var c Config
	if err := envdecode.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	return c, nil
}

// Origins splits ACCEPTED_ORIGINS on commas, dropping empty entries.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AcceptedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// PostgresDSN builds the connection string for the postgres and supa DB types.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}
