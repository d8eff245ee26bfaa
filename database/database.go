package database

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Database struct {
	db                *gorm.DB
	projectRepo       *ProjectRepo
	projectDetailRepo *ProjectDetailRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                db,
		projectRepo:       NewProjectRepo(db),
		projectDetailRepo: NewProjectDetailRepo(db),
	}
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectDetailRepo() *ProjectDetailRepo {
	return d.projectDetailRepo
}

func (d Database) DB() *gorm.DB {
	return d.db
}

func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Seed is the content of the seed file: one array per table.
type Seed struct {
	Projects []models.Project       `json:"Project"`
	Details  []models.ProjectDetail `json:"Project_Details"`
	Images   []models.Image         `json:"Images"`
}

func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return seed, nil
}

// Reset drops the three tables, recreates them and inserts the seed rows in one transaction.
func (d Database) Reset(ctx context.Context, seed Seed) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Migrator().DropTable(&models.Image{}, &models.ProjectDetail{}, &models.Project{}); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
		if err := tx.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}

		if len(seed.Projects) > 0 {
			if err := tx.Create(&seed.Projects).Error; err != nil {
				return fmt.Errorf("seed projects: %w", err)
			}
		}
		if len(seed.Details) > 0 {
			if err := tx.Create(&seed.Details).Error; err != nil {
				return fmt.Errorf("seed project details: %w", err)
			}
		}
		if len(seed.Images) > 0 {
			if err := tx.Create(&seed.Images).Error; err != nil {
				return fmt.Errorf("seed images: %w", err)
			}
		}

		// Seed rows carry explicit ids, so postgres sequences have to catch up.
		if tx.Dialector.Name() == "postgres" {
			for _, seq := range [][2]string{{"project", "project_id"}, {"images", "image_id"}} {
				stmt := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%[1]s', '%[2]s'), COALESCE(MAX(%[2]s), 1)) FROM %[1]s", seq[0], seq[1])
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("advance %s sequence: %w", seq[0], err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return errs.NewTransactionFailedError("database reset", err)
	}

	log.Info().
		Int("projects", len(seed.Projects)).
		Int("details", len(seed.Details)).
		Int("images", len(seed.Images)).
		Msg("database reset from seed")
	return nil
}
