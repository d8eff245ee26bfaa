package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"github.com/rpupo63/portfolio-api/query"
	"gorm.io/gorm"
)

const (
	msgProjectNotFoundAtID = "Error, Project not found at that ID"
	msgProjectNotInDB      = "Error, project with that ID is not in the database"
)

const joinedColumns = `project.project_id, project.title, project.finished, project.program,
	project.complexity, project.project_link, project_details.detail_id,
	project_details.description, images.image_id, images.image_title, images.image_url`

// Every (detail, image) pair of one project. Details without images drop out of the inner join.
const selectProjectByID = `SELECT ` + joinedColumns + `
	FROM project
	INNER JOIN project_details ON project.project_id = project_details.project_id
	INNER JOIN images ON project_details.project_id = images.project_id
		AND project_details.detail_id = images.detail_id
	WHERE project.project_id = ?
	ORDER BY project_details.detail_id, images.image_id`

// Like selectProjectByID but keeps image-less details, used to echo a fresh insert.
const selectProjectByTitle = `SELECT ` + joinedColumns + `
	FROM project
	INNER JOIN project_details ON project.project_id = project_details.project_id
	LEFT JOIN images ON project_details.project_id = images.project_id
		AND project_details.detail_id = images.detail_id
	WHERE project.title = ?
	ORDER BY project_details.detail_id, images.image_id`

var (
	projectColumns = []string{"title", "finished", "program", "complexity", "project_link"}
	detailColumns  = []string{"project_id", "detail_id", "description"}
	imageColumns   = []string{"project_id", "detail_id", "image_title", "image_url"}
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns the projects matching filter, in the order it asks for.
func (r *ProjectRepo) FindAll(ctx context.Context, filter query.Filter) ([]models.Project, error) {
	tail, err := query.Build(filter)
	if err != nil {
		return nil, err
	}

	stmt := "SELECT * FROM project"
	if !tail.IsEmpty() {
		stmt += " " + tail.SQL
	}

	projects := []models.Project{}
	if err := r.db.WithContext(ctx).Raw(stmt, tail.Args...).Scan(&projects).Error; err != nil {
		return nil, errs.NewDatabaseError("fetch", "projects", err)
	}
	return projects, nil
}

// FindByID returns one row per (detail, image) pair of the project.
func (r *ProjectRepo) FindByID(ctx context.Context, id int64) ([]models.ProjectRow, error) {
	rows := []models.ProjectRow{}
	if err := r.db.WithContext(ctx).Raw(selectProjectByID, id).Scan(&rows).Error; err != nil {
		return nil, errs.NewDatabaseError("fetch", "project", err)
	}
	if len(rows) == 0 {
		return nil, errs.NewNotFoundError(msgProjectNotFoundAtID)
	}
	return rows, nil
}

// Create inserts the project, its details and its images in one transaction
// and returns the joined rows of the new project.
func (r *ProjectRepo) Create(ctx context.Context, p models.NewProject) ([]models.ProjectRow, error) {
	rows := []models.ProjectRow{}

	err := r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		stmt, args := insertStatement("project", projectColumns, [][]any{
			{p.Title, p.Finished, p.Program, p.Complexity, p.ProjectLink},
		})
		if err := tx.Exec(stmt, args...).Error; err != nil {
			return err
		}

		var projectID int64
		if err := tx.Raw("SELECT project_id FROM project WHERE title = ?", p.Title).Row().Scan(&projectID); err != nil {
			return fmt.Errorf("read generated project id: %w", err)
		}

		details := make([][]any, len(p.Details))
		for i, d := range p.Details {
			details[i] = []any{projectID, d.DetailID, d.Description}
		}
		stmt, args = insertStatement("project_details", detailColumns, details)
		if err := tx.Exec(stmt, args...).Error; err != nil {
			return err
		}

		if len(p.Images) > 0 {
			images := make([][]any, len(p.Images))
			for i, img := range p.Images {
				images[i] = []any{projectID, img.DetailID, img.ImageTitle, img.ImageURL}
			}
			stmt, args = insertStatement("images", imageColumns, images)
			if err := tx.Exec(stmt, args...).Error; err != nil {
				return err
			}
		}

		return tx.Raw(selectProjectByTitle, p.Title).Scan(&rows).Error
	})
	if err != nil {
		return nil, errs.NewDatabaseError("create", "project", err)
	}
	return rows, nil
}

// Update assigns the fields present in patch and returns the updated project.
func (r *ProjectRepo) Update(ctx context.Context, id int64, patch models.ProjectPatch) (*models.Project, error) {
	columns, values := patch.Assignments()
	if len(columns) == 0 {
		return nil, errs.NewBadRequestError("Error, Please specify at least one attribute to update")
	}

	var project models.Project
	err := r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Project{}).Where("project_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewNotFoundError(msgProjectNotInDB)
		}

		args := append(values, id)
		if err := tx.Exec(updateStatement("project", columns, "project_id = ?"), args...).Error; err != nil {
			return err
		}

		return tx.Raw("SELECT * FROM project WHERE project_id = ?", id).Scan(&project).Error
	})
	if err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}
	return &project, nil
}
