package models

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Column Mismatch Report Usage:

Set GENERATE_COLUMN_REPORT=true and start the service. For each of project,
project_details and images the report lists columns that exist in the database
but have no field in the Go model.

Set GENERATE_MODELS=true to migrate the schema and write typed query code to
./generated before the report runs.
*/

// All lists the persisted models in dependency order.
func All() []any {
	return []any{&Project{}, &ProjectDetail{}, &Image{}}
}

func modelMappings() map[string]any {
	return map[string]any{
		Project{}.TableName():       Project{},
		ProjectDetail{}.TableName(): ProjectDetail{},
		Image{}.TableName():         Image{},
	}
}

func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	db = db.Session(&gorm.Session{
		Logger:                 db.Logger.LogMode(logger.Info),
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Project{}, ProjectDetail{}, Image{})

	log.Info().Msg("migrating models")
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}

	if _, err := GenerateColumnMismatchReport(db); err != nil {
		return err
	}

	g.Execute()
	log.Info().Str("outPath", outPath).Msg("model generation complete")
	return nil
}

// GenerateColumnMismatchReport logs, per table, the database columns the Go
// model does not declare and returns them keyed by table name.
func GenerateColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)
	tables := make([]string, 0, len(modelMappings()))
	for table := range modelMappings() {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	total := 0
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			log.Warn().Str("table", table).Msg("table does not exist yet")
			continue
		}

		columns, err := getTableColumns(db, table)
		if err != nil {
			return nil, err
		}

		mismatches := findColumnMismatches(columns, getModelFields(modelMappings()[table]))
		report[table] = mismatches
		total += len(mismatches)

		if len(mismatches) > 0 {
			log.Warn().Str("table", table).Strs("columns", mismatches).Msg("columns not accounted for in model")
		} else {
			log.Info().Str("table", table).Msg("all columns are accounted for in the model")
		}
	}

	log.Info().Int("total", total).Msg("column mismatch report complete")
	return report, nil
}

func getTableColumns(db *gorm.DB, table string) ([]string, error) {
	types, err := db.Migrator().ColumnTypes(table)
	if err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", table, err)
	}
	columns := make([]string, 0, len(types))
	for _, ct := range types {
		columns = append(columns, ct.Name())
	}
	return columns, nil
}

// getModelFields reads the gorm column names off a model struct.
func getModelFields(model any) []string {
	var fields []string
	t := reflect.TypeOf(model)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if column := extractColumnNameFromGormTag(field.Tag.Get("gorm")); column != "" {
			fields = append(fields, column)
		}
	}
	return fields
}

func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
