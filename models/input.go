package models

// NewProject is a validated creation payload.
type NewProject struct {
	Title       string
	Finished    *Date
	Program     *string
	Complexity  int64
	ProjectLink *string
	Details     []NewProjectDetail
	Images      []NewImage
}

type NewProjectDetail struct {
	ProjectID   int64
	DetailID    int64
	Description string
}

type NewImage struct {
	ProjectID  int64
	DetailID   int64
	ImageTitle string
	ImageURL   string
}

// PatchValue marks a field present in a partial update. A nil Value clears the column.
type PatchValue struct {
	Value any
}

// ProjectPatch holds the scalar Project fields present in a PATCH body.
type ProjectPatch struct {
	Title       *PatchValue
	Finished    *PatchValue
	Program     *PatchValue
	Complexity  *PatchValue
	ProjectLink *PatchValue
}

// Assignments lists the present fields as column names and values in a fixed order.
func (p ProjectPatch) Assignments() ([]string, []any) {
	var (
		columns []string
		values  []any
	)
	add := func(column string, v *PatchValue) {
		if v == nil {
			return
		}
		columns = append(columns, column)
		values = append(values, v.Value)
	}
	add("title", p.Title)
	add("finished", p.Finished)
	add("program", p.Program)
	add("complexity", p.Complexity)
	add("project_link", p.ProjectLink)
	return columns, values
}

// ImageReplacement is one entry of a detail patch's Images list.
type ImageReplacement struct {
	ImageTitle string
	ImageURL   string
}

// DetailPatch replaces a detail's description and, when ReplaceImages is set,
// its whole image set.
type DetailPatch struct {
	Description   string
	ReplaceImages bool
	Images        []ImageReplacement
}
