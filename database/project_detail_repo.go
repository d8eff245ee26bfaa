package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"gorm.io/gorm"
)

const msgDetailNotInDB = "Error, detail with that ProjectID and DetailID is not in the database"

type ProjectDetailRepo struct {
	db *gorm.DB
}

func NewProjectDetailRepo(db *gorm.DB) *ProjectDetailRepo {
	return &ProjectDetailRepo{db}
}

// Replace overwrites the detail's description and, when the patch carries an
// image list, swaps the detail's whole image set for it.
func (r *ProjectDetailRepo) Replace(ctx context.Context, projectID, detailID int64, patch models.DetailPatch) error {
	err := r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.ProjectDetail{}).
			Where("project_id = ? AND detail_id = ?", projectID, detailID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return errs.NewNotFoundError(msgDetailNotInDB)
		}

		err = tx.Exec(
			updateStatement("project_details", []string{"description"}, "project_id = ? AND detail_id = ?"),
			patch.Description, projectID, detailID,
		).Error
		if err != nil {
			return err
		}

		if !patch.ReplaceImages {
			return nil
		}

		if err := tx.Exec("DELETE FROM images WHERE project_id = ? AND detail_id = ?", projectID, detailID).Error; err != nil {
			return err
		}
		for _, img := range patch.Images {
			stmt, args := insertStatement("images", imageColumns, [][]any{
				{projectID, detailID, img.ImageTitle, img.ImageURL},
			})
			if err := tx.Exec(stmt, args...).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.NewDatabaseError("update", "project detail", err)
	}
	return nil
}

// FindByKey returns the detail and its images ordered by image id.
func (r *ProjectDetailRepo) FindByKey(ctx context.Context, projectID, detailID int64) (*models.DetailWithImages, error) {
	var detail models.ProjectDetail
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_id")
		}).
		Where("project_id = ? AND detail_id = ?", projectID, detailID).
		First(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundError(msgDetailNotInDB)
	}
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "project detail", err)
	}

	images := detail.Images
	if images == nil {
		images = []models.Image{}
	}
	return &models.DetailWithImages{
		ProjectID:   detail.ProjectID,
		DetailID:    detail.DetailID,
		Description: detail.Description,
		Images:      images,
	}, nil
}
