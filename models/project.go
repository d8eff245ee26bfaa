package models

// Project is a portfolio entry. Details and Images are only used to declare
// the foreign keys for migrations; reads go through raw SQL.
type Project struct {
	ProjectID   int64           `json:"ProjectID" gorm:"column:project_id;primaryKey;autoIncrement"`
	Title       string          `json:"Title" gorm:"column:title;type:varchar(100);not null;unique"`
	Finished    *Date           `json:"Finished" gorm:"column:finished;type:date"`
	Program     *string         `json:"Program" gorm:"column:program;type:varchar(100)"`
	Complexity  int64           `json:"Complexity" gorm:"column:complexity;not null"`
	ProjectLink *string         `json:"ProjectLink" gorm:"column:project_link;type:varchar(255)"`
	Details     []ProjectDetail `json:"-" gorm:"foreignKey:ProjectID;references:ProjectID"`
}

func (Project) TableName() string {
	return "project"
}

// ProjectDetail is one numbered section of a project's write-up.
type ProjectDetail struct {
	ProjectID   int64   `json:"ProjectID" gorm:"column:project_id;primaryKey;autoIncrement:false"`
	DetailID    int64   `json:"DetailID" gorm:"column:detail_id;primaryKey;autoIncrement:false"`
	Description string  `json:"Description" gorm:"column:description;type:varchar(2400);not null"`
	Images      []Image `json:"-" gorm:"foreignKey:ProjectID,DetailID;references:ProjectID,DetailID"`
}

func (ProjectDetail) TableName() string {
	return "project_details"
}

type Image struct {
	ImageID    int64  `json:"ImageID" gorm:"column:image_id;primaryKey;autoIncrement"`
	ProjectID  int64  `json:"ProjectID" gorm:"column:project_id;not null"`
	DetailID   int64  `json:"DetailID" gorm:"column:detail_id;not null"`
	ImageTitle string `json:"Image_Title" gorm:"column:image_title;type:varchar(100);not null"`
	ImageURL   string `json:"Image_URL" gorm:"column:image_url;type:varchar(255);not null;unique"`
}

func (Image) TableName() string {
	return "images"
}

// ProjectRow is one row of the flat project ⋈ detail ⋈ image projection.
// Image columns are nil when the row came from an outer join with no image.
type ProjectRow struct {
	ProjectID   int64   `json:"ProjectID" gorm:"column:project_id"`
	Title       string  `json:"Title" gorm:"column:title"`
	Finished    *Date   `json:"Finished" gorm:"column:finished"`
	Program     *string `json:"Program" gorm:"column:program"`
	Complexity  int64   `json:"Complexity" gorm:"column:complexity"`
	ProjectLink *string `json:"ProjectLink" gorm:"column:project_link"`
	DetailID    int64   `json:"DetailID" gorm:"column:detail_id"`
	Description string  `json:"Description" gorm:"column:description"`
	ImageID     *int64  `json:"ImageID" gorm:"column:image_id"`
	ImageTitle  *string `json:"Image_Title" gorm:"column:image_title"`
	ImageURL    *string `json:"Image_URL" gorm:"column:image_url"`
}

// DetailWithImages is a single detail and its current image set.
type DetailWithImages struct {
	ProjectID   int64   `json:"ProjectID"`
	DetailID    int64   `json:"DetailID"`
	Description string  `json:"Description"`
	Images      []Image `json:"Images"`
}
