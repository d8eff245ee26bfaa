package validation

import (
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
)

const (
	msgCreateMissing        = "Error, does not have required properties, new projects need at least: 'Title', 'Complexity' and a 'project_details' array"
	msgCreateNoDetails      = "Error, need at least one project_details object to add to this project"
	msgCreateDetailMissing  = "Error, project details does not have required properties on all details, project_details need at least: 'ProjectID','DetailID','Description'"
	msgCreateImageMissing   = "Error, images included that do not have required properties, images needs at least: 'ProjectID', 'DetailID', 'Image_Title', 'Image_URL'"
	msgProjectIDNotInteger  = "Error, ProjectID must be an integer"
	msgPatchNothingToUpdate = "Error, Please specify at least one attribute to update"
)

const (
	maxTitleLen       = 100
	maxProgramLen     = 100
	maxLinkLen        = 255
	maxDescriptionLen = 2400
	maxImageURLLen    = 255
)

var patchableProjectFields = []string{"Title", "Finished", "Program", "Complexity", "ProjectLink"}

// ProjectCreate validates a POST /api/projects body. ProjectIDs carried by
// details and images are ignored; the generated id replaces them.
func ProjectCreate(r Record) (models.NewProject, error) {
	if !RequireAllOf(r, "Title", "Complexity", "project_details") {
		return models.NewProject{}, errs.NewMissingRequiredFieldError(msgCreateMissing)
	}

	details, err := recordList(r, "project_details")
	if err != nil {
		return models.NewProject{}, err
	}
	if len(details) == 0 {
		return models.NewProject{}, errs.NewMissingRequiredFieldError(msgCreateNoDetails)
	}
	for _, d := range details {
		if !RequireAllOf(d, "ProjectID", "DetailID", "Description") {
			return models.NewProject{}, errs.NewMissingRequiredFieldError(msgCreateDetailMissing)
		}
	}

	var images []Record
	if r.present("Images") {
		if images, err = recordList(r, "Images"); err != nil {
			return models.NewProject{}, err
		}
		for _, img := range images {
			if !RequireAllOf(img, "ProjectID", "DetailID", "Image_Title", "Image_URL") {
				return models.NewProject{}, errs.NewMissingRequiredFieldError(msgCreateImageMissing)
			}
		}
	}

	var p models.NewProject
	if p.Title, err = stringField(r, "Title", maxTitleLen); err != nil {
		return models.NewProject{}, err
	}
	if p.Complexity, err = integerField(r, "Complexity"); err != nil {
		return models.NewProject{}, err
	}
	if p.Finished, err = optionalDate(r, "Finished"); err != nil {
		return models.NewProject{}, err
	}
	if p.Program, err = optionalString(r, "Program", maxProgramLen); err != nil {
		return models.NewProject{}, err
	}
	if p.ProjectLink, err = optionalString(r, "ProjectLink", maxLinkLen); err != nil {
		return models.NewProject{}, err
	}

	for _, d := range details {
		detail := models.NewProjectDetail{}
		if detail.DetailID, err = integerField(d, "DetailID"); err != nil {
			return models.NewProject{}, err
		}
		description, err := stringField(d, "Description", maxDescriptionLen)
		if err != nil {
			return models.NewProject{}, err
		}
		detail.Description = SanitizeDescription(description)
		p.Details = append(p.Details, detail)
	}

	for _, img := range images {
		image := models.NewImage{}
		if image.DetailID, err = integerField(img, "DetailID"); err != nil {
			return models.NewProject{}, err
		}
		if image.ImageTitle, err = stringField(img, "Image_Title", maxTitleLen); err != nil {
			return models.NewProject{}, err
		}
		if image.ImageURL, err = stringField(img, "Image_URL", maxImageURLLen); err != nil {
			return models.NewProject{}, err
		}
		p.Images = append(p.Images, image)
	}

	return p, nil
}

// ProjectKey checks the projectID path parameter of the write endpoints.
func ProjectKey(projectID string) (int64, error) {
	return ParseIdentifier(projectID, msgProjectIDNotInteger)
}

// ProjectPatch validates PATCH /api/projects/{projectID}. A present null clears
// an optional column; Title and Complexity cannot be cleared.
func ProjectPatch(projectID string, r Record) (int64, models.ProjectPatch, error) {
	id, err := ProjectKey(projectID)
	if err != nil {
		return 0, models.ProjectPatch{}, err
	}
	if !RequireAnyOf(r, patchableProjectFields...) {
		return 0, models.ProjectPatch{}, errs.NewMissingRequiredFieldError(msgPatchNothingToUpdate)
	}

	var patch models.ProjectPatch
	if _, ok := r["Title"]; ok {
		title, err := stringField(r, "Title", maxTitleLen)
		if err != nil {
			return 0, models.ProjectPatch{}, err
		}
		patch.Title = &models.PatchValue{Value: title}
	}
	if _, ok := r["Complexity"]; ok {
		complexity, err := integerField(r, "Complexity")
		if err != nil {
			return 0, models.ProjectPatch{}, err
		}
		patch.Complexity = &models.PatchValue{Value: complexity}
	}
	if _, ok := r["Finished"]; ok {
		finished, err := optionalDate(r, "Finished")
		if err != nil {
			return 0, models.ProjectPatch{}, err
		}
		patch.Finished = &models.PatchValue{}
		if finished != nil {
			patch.Finished.Value = *finished
		}
	}
	if _, ok := r["Program"]; ok {
		if patch.Program, err = nullableString(r, "Program", maxProgramLen); err != nil {
			return 0, models.ProjectPatch{}, err
		}
	}
	if _, ok := r["ProjectLink"]; ok {
		if patch.ProjectLink, err = nullableString(r, "ProjectLink", maxLinkLen); err != nil {
			return 0, models.ProjectPatch{}, err
		}
	}

	return id, patch, nil
}

func nullableString(r Record, name string, maxLen int) (*models.PatchValue, error) {
	s, err := optionalString(r, name, maxLen)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &models.PatchValue{}, nil
	}
	return &models.PatchValue{Value: *s}, nil
}
