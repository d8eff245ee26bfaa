package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rpupo63/portfolio-api/config"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"github.com/rpupo63/portfolio-api/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// newTestDatabase opens a seeded SQLite database in a temp directory.
func newTestDatabase(t *testing.T) Database {
	t.Helper()

	db, err := Connect(config.Config{DBType: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)

	d := New(db)
	t.Cleanup(func() { _ = d.Close() })

	seed, err := LoadSeed(filepath.Join("seed", "data.json"))
	require.NoError(t, err)
	require.NoError(t, d.Reset(context.Background(), seed))
	return d
}

type DatabaseSuite struct {
	suite.Suite
	ctx context.Context
	db  Database
}

func TestDatabaseSuite(t *testing.T) {
	suite.Run(t, new(DatabaseSuite))
}

func (s *DatabaseSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newTestDatabase(s.T())
}

func strPtr(s string) *string { return &s }

func (s *DatabaseSuite) projectCount() int64 {
	var n int64
	s.Require().NoError(s.db.DB().Model(&models.Project{}).Count(&n).Error)
	return n
}

func (s *DatabaseSuite) TestPing() {
	s.NoError(s.db.Ping(s.ctx))
}

func (s *DatabaseSuite) TestFindAllUnfiltered() {
	projects, err := s.db.ProjectRepo().FindAll(s.ctx, query.Filter{})
	s.Require().NoError(err)
	s.Len(projects, 5)
}

func (s *DatabaseSuite) TestFindAllByProgram() {
	projects, err := s.db.ProjectRepo().FindAll(s.ctx, query.Filter{ShowOnly: "Program", ShowOnlyAttribute: "Java"})
	s.Require().NoError(err)
	s.Require().Len(projects, 2)
	for _, p := range projects {
		s.Require().NotNil(p.Program)
		s.Equal("Java", *p.Program)
	}
}

func (s *DatabaseSuite) TestFindAllByYear() {
	projects, err := s.db.ProjectRepo().FindAll(s.ctx, query.Filter{ShowOnly: "Year", ShowOnlyAttribute: "2022"})
	s.Require().NoError(err)

	titles := make([]string, 0, len(projects))
	for _, p := range projects {
		titles = append(titles, p.Title)
	}
	s.ElementsMatch([]string{"Portfolio Website", "Pathfinding Visualiser"}, titles)
}

func (s *DatabaseSuite) TestFindAllByComplexity() {
	projects, err := s.db.ProjectRepo().FindAll(s.ctx, query.Filter{ShowOnly: "Complexity", ShowOnlyAttribute: "4"})
	s.Require().NoError(err)
	s.Require().Len(projects, 1)
	s.Equal("Inventory Manager", projects[0].Title)
}

func (s *DatabaseSuite) TestFindAllSortedDescending() {
	projects, err := s.db.ProjectRepo().FindAll(s.ctx, query.Filter{SortBy: "Complexity", OrderBy: "DESC"})
	s.Require().NoError(err)
	s.Require().Len(projects, 5)
	for i := 1; i < len(projects); i++ {
		s.GreaterOrEqual(projects[i-1].Complexity, projects[i].Complexity)
	}
	s.Equal(int64(5), projects[0].Complexity)
}

func (s *DatabaseSuite) TestFindAllRejectsInjection() {
	_, err := s.db.ProjectRepo().FindAll(s.ctx, query.Filter{SortBy: "Select"})
	s.True(errs.IsSQLInjectionError(err))
}

func (s *DatabaseSuite) TestFindByIDFansOutDetailsAndImages() {
	rows, err := s.db.ProjectRepo().FindByID(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	s.Equal(int64(1), rows[0].DetailID)
	s.Equal(int64(1), rows[1].DetailID)
	s.Equal(int64(2), rows[2].DetailID)
	for _, row := range rows {
		s.Equal("Portfolio Website", row.Title)
		s.Require().NotNil(row.ImageURL)
	}
	s.Equal("2023-06-01", rows[0].Finished.String())
}

func (s *DatabaseSuite) TestFindByIDDropsDetailsWithoutImages() {
	rows, err := s.db.ProjectRepo().FindByID(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(rows, 3)
	for _, row := range rows {
		s.Equal(int64(1), row.DetailID)
	}
}

func (s *DatabaseSuite) TestFindByIDWithoutAnyImagesIsNotFound() {
	_, err := s.db.ProjectRepo().FindByID(s.ctx, 5)
	s.Require().Error(err)
	s.True(errs.IsNotFound(err))
	s.Equal("Error, Project not found at that ID", err.Error())

	_, err = s.db.ProjectRepo().FindByID(s.ctx, 999)
	s.True(errs.IsNotFound(err))
}

func (s *DatabaseSuite) TestCreate() {
	input := models.NewProject{
		Title:      "Chess Engine",
		Program:    strPtr("Go"),
		Complexity: 5,
		Details: []models.NewProjectDetail{
			{DetailID: 1, Description: "Alpha-beta search"},
			{DetailID: 2, Description: "Opening book"},
		},
		Images: []models.NewImage{
			{DetailID: 1, ImageTitle: "Board", ImageURL: "https://images.example.com/chess/board.png"},
			{DetailID: 1, ImageTitle: "Tree", ImageURL: "https://images.example.com/chess/tree.png"},
		},
	}

	rows, err := s.db.ProjectRepo().Create(s.ctx, input)
	s.Require().NoError(err)

	// Two images on detail 1 plus image-less detail 2.
	s.Require().Len(rows, 3)
	id := rows[0].ProjectID
	s.Equal(int64(6), id)
	s.Nil(rows[2].ImageID)
	s.Equal(int64(2), rows[2].DetailID)

	fetched, err := s.db.ProjectRepo().FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Len(fetched, 2)
	s.Equal("Chess Engine", fetched[0].Title)
}

func (s *DatabaseSuite) TestCreateWithoutImagesIsNotFoundByID() {
	rows, err := s.db.ProjectRepo().Create(s.ctx, models.NewProject{
		Title:      "Minimal",
		Complexity: 1,
		Details:    []models.NewProjectDetail{{DetailID: 1, Description: "d"}},
	})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)

	_, err = s.db.ProjectRepo().FindByID(s.ctx, rows[0].ProjectID)
	s.True(errs.IsNotFound(err))
}

func (s *DatabaseSuite) TestCreateDuplicateTitleConflicts() {
	_, err := s.db.ProjectRepo().Create(s.ctx, models.NewProject{
		Title:      "Weather CLI",
		Complexity: 1,
		Details:    []models.NewProjectDetail{{DetailID: 1, Description: "d"}},
	})
	s.True(errs.IsConflict(err))
	s.True(errs.IsUniqueConstraintViolationError(err))
	s.Equal(int64(5), s.projectCount())
}

func (s *DatabaseSuite) TestCreateRollsBackOnDuplicateImageURL() {
	_, err := s.db.ProjectRepo().Create(s.ctx, models.NewProject{
		Title:      "Rollback",
		Complexity: 1,
		Details:    []models.NewProjectDetail{{DetailID: 1, Description: "d"}},
		Images: []models.NewImage{
			{DetailID: 1, ImageTitle: "Copy", ImageURL: "https://images.example.com/weather/forecast.png"},
		},
	})
	s.Require().Error(err)
	s.True(errs.IsConflict(err))

	s.Equal(int64(5), s.projectCount())
	var details int64
	s.Require().NoError(s.db.DB().Model(&models.ProjectDetail{}).Where("project_id > ?", 5).Count(&details).Error)
	s.Zero(details)
}

func (s *DatabaseSuite) TestUpdate() {
	project, err := s.db.ProjectRepo().Update(s.ctx, 2, models.ProjectPatch{
		Title:       &models.PatchValue{Value: "Inventory Manager v2"},
		ProjectLink: &models.PatchValue{Value: nil},
	})
	s.Require().NoError(err)

	s.Equal(int64(2), project.ProjectID)
	s.Equal("Inventory Manager v2", project.Title)
	s.Nil(project.ProjectLink)
	s.Require().NotNil(project.Program)
	s.Equal("Java", *project.Program)
	s.Equal(int64(4), project.Complexity)
}

func (s *DatabaseSuite) TestUpdateFinishedDate() {
	d, err := models.ParseDate("2019-05-04")
	s.Require().NoError(err)

	project, err := s.db.ProjectRepo().Update(s.ctx, 5, models.ProjectPatch{Finished: &models.PatchValue{Value: d}})
	s.Require().NoError(err)
	s.Require().NotNil(project.Finished)
	s.Equal("2019-05-04", project.Finished.String())
}

func (s *DatabaseSuite) TestUpdateMissingProject() {
	_, err := s.db.ProjectRepo().Update(s.ctx, 99999, models.ProjectPatch{Complexity: &models.PatchValue{Value: int64(2)}})
	s.Require().Error(err)
	s.True(errs.IsNotFound(err))
	s.Equal("Error, project with that ID is not in the database", err.Error())
}

func (s *DatabaseSuite) TestUpdateDuplicateTitleConflicts() {
	_, err := s.db.ProjectRepo().Update(s.ctx, 1, models.ProjectPatch{Title: &models.PatchValue{Value: "Weather CLI"}})
	s.True(errs.IsConflict(err))
	s.True(errs.IsUniqueConstraintViolationError(err))
}

func (s *DatabaseSuite) TestReplaceImages() {
	repo := s.db.ProjectDetailRepo()
	err := repo.Replace(s.ctx, 1, 1, models.DetailPatch{
		Description:   "x",
		ReplaceImages: true,
		Images: []models.ImageReplacement{
			{ImageTitle: "a", ImageURL: "u1"},
			{ImageTitle: "b", ImageURL: "u2"},
		},
	})
	s.Require().NoError(err)

	detail, err := repo.FindByKey(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Equal("x", detail.Description)

	urls := make([]string, 0, len(detail.Images))
	for _, img := range detail.Images {
		urls = append(urls, img.ImageURL)
	}
	s.Equal([]string{"u1", "u2"}, urls)

	other, err := repo.FindByKey(s.ctx, 1, 2)
	s.Require().NoError(err)
	s.Require().Len(other.Images, 1)
	s.Equal("https://images.example.com/portfolio/grid.png", other.Images[0].ImageURL)
}

func (s *DatabaseSuite) TestReplaceDescriptionOnlyKeepsImages() {
	repo := s.db.ProjectDetailRepo()
	s.Require().NoError(repo.Replace(s.ctx, 3, 1, models.DetailPatch{Description: "Updated"}))

	detail, err := repo.FindByKey(s.ctx, 3, 1)
	s.Require().NoError(err)
	s.Equal("Updated", detail.Description)
	s.Len(detail.Images, 3)
}

func (s *DatabaseSuite) TestReplaceWithEmptyListClearsImages() {
	repo := s.db.ProjectDetailRepo()
	s.Require().NoError(repo.Replace(s.ctx, 2, 1, models.DetailPatch{Description: "d", ReplaceImages: true}))

	detail, err := repo.FindByKey(s.ctx, 2, 1)
	s.Require().NoError(err)
	s.NotNil(detail.Images)
	s.Empty(detail.Images)
}

func (s *DatabaseSuite) TestReplaceMissingDetail() {
	err := s.db.ProjectDetailRepo().Replace(s.ctx, 1, 9, models.DetailPatch{Description: "x"})
	s.Require().Error(err)
	s.True(errs.IsNotFound(err))
	s.Equal("Error, detail with that ProjectID and DetailID is not in the database", err.Error())

	_, err = s.db.ProjectDetailRepo().FindByKey(s.ctx, 1, 9)
	s.True(errs.IsNotFound(err))
}

func (s *DatabaseSuite) TestReplaceRollsBackOnDuplicateURL() {
	repo := s.db.ProjectDetailRepo()
	err := repo.Replace(s.ctx, 1, 1, models.DetailPatch{
		Description:   "changed",
		ReplaceImages: true,
		Images: []models.ImageReplacement{
			{ImageTitle: "a", ImageURL: "dup"},
			{ImageTitle: "b", ImageURL: "dup"},
		},
	})
	s.True(errs.IsConflict(err))

	detail, err := repo.FindByKey(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.NotEqual("changed", detail.Description)
	s.Len(detail.Images, 2)
}

func TestInsertStatement(t *testing.T) {
	stmt, args := insertStatement("images", []string{"project_id", "image_url"}, [][]any{{1, "a"}, {1, "b"}})
	assert.Equal(t, "INSERT INTO images (project_id, image_url) VALUES (?, ?), (?, ?)", stmt)
	assert.Equal(t, []any{1, "a", 1, "b"}, args)
}

func TestUpdateStatement(t *testing.T) {
	assert.Equal(t,
		"UPDATE project SET title = ?, program = ? WHERE project_id = ?",
		updateStatement("project", []string{"title", "program"}, "project_id = ?"),
	)
}

func TestLoadSeed(t *testing.T) {
	seed, err := LoadSeed(filepath.Join("seed", "data.json"))
	require.NoError(t, err)
	assert.Len(t, seed.Projects, 5)
	assert.Len(t, seed.Details, 7)
	assert.Len(t, seed.Images, 8)
	assert.Nil(t, seed.Projects[4].Finished)

	_, err = LoadSeed(filepath.Join("seed", "missing.json"))
	assert.Error(t, err)
}

func TestConnectRejectsUnknownType(t *testing.T) {
	_, err := Connect(config.Config{DBType: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_TYPE")
}
