package validation

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
)

const (
	msgDetailIDNotInteger     = "Error, ProjectDetailID must be an integer"
	msgDetailNeedsDescription = "Error, Project Detail must include a description"
)

var descriptionPolicy = bluemonday.UGCPolicy()

// SanitizeDescription strips scripts, styles and event handlers from
// description HTML while keeping basic formatting.
func SanitizeDescription(description string) string {
	return descriptionPolicy.Sanitize(description)
}

// DetailKey checks the two path identifiers of a project detail.
func DetailKey(projectID, detailID string) (int64, int64, error) {
	pid, err := ProjectKey(projectID)
	if err != nil {
		return 0, 0, err
	}
	did, err := ParseIdentifier(detailID, msgDetailIDNotInteger)
	if err != nil {
		return 0, 0, err
	}
	return pid, did, nil
}

// DetailPatch validates PATCH /api/projectDetail/{projectID}/{projectDetailID}.
// Image entries use the names Title and URL, which map to Image_Title and Image_URL.
func DetailPatch(projectID, detailID string, r Record) (int64, int64, models.DetailPatch, error) {
	pid, did, err := DetailKey(projectID, detailID)
	if err != nil {
		return 0, 0, models.DetailPatch{}, err
	}

	if !r.present("Description") {
		return 0, 0, models.DetailPatch{}, errs.NewMissingRequiredFieldError(msgDetailNeedsDescription)
	}
	description, err := stringField(r, "Description", maxDescriptionLen)
	if err != nil {
		return 0, 0, models.DetailPatch{}, err
	}

	patch := models.DetailPatch{Description: SanitizeDescription(description)}
	if !r.present("Images") {
		return pid, did, patch, nil
	}

	images, err := recordList(r, "Images")
	if err != nil {
		return 0, 0, models.DetailPatch{}, err
	}
	patch.ReplaceImages = true
	for _, img := range images {
		if !RequireAllOf(img, "Title", "URL") {
			return 0, 0, models.DetailPatch{}, errs.NewInvalidFieldError("Images", "entries need a 'Title' and a 'URL'")
		}
		title, err := stringField(img, "Title", maxTitleLen)
		if err != nil {
			return 0, 0, models.DetailPatch{}, err
		}
		url, err := stringField(img, "URL", maxImageURLLen)
		if err != nil {
			return 0, 0, models.DetailPatch{}, err
		}
		patch.Images = append(patch.Images, models.ImageReplacement{ImageTitle: title, ImageURL: url})
	}

	return pid, did, patch, nil
}
