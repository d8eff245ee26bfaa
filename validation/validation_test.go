package validation

import (
	"testing"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, body string) Record {
	t.Helper()
	r, err := DecodeRecord([]byte(body))
	require.NoError(t, err)
	return r
}

func requireMessage(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*errs.ApiErr)
	require.True(t, ok, "expected *errs.ApiErr, got %T", err)
	assert.Equal(t, status, apiErr.StatusCode)
	assert.Equal(t, message, apiErr.Message())
}

func TestValidateIntegerIdentifier(t *testing.T) {
	valid := map[string]int64{"1": 1, "0": 0, "-7": -7, "0042": 42}
	for in, want := range valid {
		got, err := ValidateIntegerIdentifier(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"abc", "1.5", "", " 1", "1 ", "+1", "1e3", "-", "9223372036854775808"} {
		_, err := ValidateIntegerIdentifier(in)
		assert.ErrorIs(t, err, ErrNotInteger, in)
	}
}

func TestParseIdentifier(t *testing.T) {
	_, err := ParseIdentifier("abc", "Error, projectID must be an integer number")
	requireMessage(t, err, 400, "Error, projectID must be an integer number")

	id, err := ParseIdentifier("12", "unused")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}

func TestWriteKeys(t *testing.T) {
	id, err := ProjectKey("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = ProjectKey("7a")
	requireMessage(t, err, 400, "Error, ProjectID must be an integer")

	pid, did, err := DetailKey("3", "4")
	require.NoError(t, err)
	assert.Equal(t, int64(3), pid)
	assert.Equal(t, int64(4), did)

	_, _, err = DetailKey("x", "y")
	requireMessage(t, err, 400, "Error, ProjectID must be an integer")

	_, _, err = DetailKey("3", "y")
	requireMessage(t, err, 400, "Error, ProjectDetailID must be an integer")
}

func TestDecodeRecord(t *testing.T) {
	r, err := DecodeRecord(nil)
	require.NoError(t, err)
	assert.Empty(t, r)

	_, err = DecodeRecord([]byte(`[1,2]`))
	assert.True(t, errs.IsMalformedPayloadError(err))

	_, err = DecodeRecord([]byte(`{"Title":`))
	assert.True(t, errs.IsBadRequest(err))
}

func TestRequireAllOfAndAnyOf(t *testing.T) {
	r := record(t, `{"Title":null,"Complexity":""}`)

	assert.True(t, RequireAllOf(r, "Title", "Complexity"))
	assert.False(t, RequireAllOf(r, "Title", "project_details"))
	assert.True(t, RequireAllOf(r))

	assert.True(t, RequireAnyOf(r, "Program", "Title"))
	assert.False(t, RequireAnyOf(r, "Program", "Finished"))
	assert.False(t, RequireAnyOf(r))
}

func TestProjectCreateRules(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "empty body",
			body:    `{}`,
			message: "Error, does not have required properties, new projects need at least: 'Title', 'Complexity' and a 'project_details' array",
		},
		{
			name:    "no details",
			body:    `{"Title":"t","Complexity":1,"project_details":[]}`,
			message: "Error, need at least one project_details object to add to this project",
		},
		{
			name:    "detail without description",
			body:    `{"Title":"t","Complexity":1,"project_details":[{"ProjectID":1,"DetailID":1}]}`,
			message: "Error, project details does not have required properties on all details, project_details need at least: 'ProjectID','DetailID','Description'",
		},
		{
			name:    "image without url",
			body:    `{"Title":"t","Complexity":1,"project_details":[{"ProjectID":1,"DetailID":1,"Description":"d"}],"Images":[{"ProjectID":1,"DetailID":1,"Image_Title":"i"}]}`,
			message: "Error, images included that do not have required properties, images needs at least: 'ProjectID', 'DetailID', 'Image_Title', 'Image_URL'",
		},
		{
			name:    "presence is checked before emptiness of details",
			body:    `{"Title":"t","project_details":[]}`,
			message: "Error, does not have required properties, new projects need at least: 'Title', 'Complexity' and a 'project_details' array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProjectCreate(record(t, tt.body))
			requireMessage(t, err, 400, tt.message)
		})
	}
}

func TestProjectCreateTypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		body  string
	}{
		{"string complexity", "Complexity", `{"Title":"t","Complexity":"high","project_details":[{"ProjectID":1,"DetailID":1,"Description":"d"}]}`},
		{"null title", "Title", `{"Title":null,"Complexity":1,"project_details":[{"ProjectID":1,"DetailID":1,"Description":"d"}]}`},
		{"word date", "Finished", `{"Title":"t","Complexity":1,"Finished":"June","project_details":[{"ProjectID":1,"DetailID":1,"Description":"d"}]}`},
		{"date with trailing text", "Finished", `{"Title":"t","Complexity":1,"Finished":"2020-01-31-not-a-date","project_details":[{"ProjectID":1,"DetailID":1,"Description":"d"}]}`},
		{"fractional detail id", "DetailID", `{"Title":"t","Complexity":1,"project_details":[{"ProjectID":1,"DetailID":1.5,"Description":"d"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProjectCreate(record(t, tt.body))
			require.Error(t, err)
			assert.True(t, errs.IsInvalidFieldError(err))
			assert.Equal(t, tt.field, err.(*errs.ApiErr).Field)
		})
	}
}

func TestProjectCreateValid(t *testing.T) {
	body := `{
		"Title": "Chess Engine",
		"Finished": "2024-02-10",
		"Program": "Go",
		"Complexity": 5,
		"project_details": [
			{"ProjectID": 999, "DetailID": 1, "Description": "<p>Search</p><script>alert(1)</script>"},
			{"ProjectID": 999, "DetailID": 2, "Description": "Evaluation"}
		],
		"Images": [
			{"ProjectID": 999, "DetailID": 1, "Image_Title": "Board", "Image_URL": "https://img.example/board.png"}
		]
	}`

	p, err := ProjectCreate(record(t, body))
	require.NoError(t, err)

	assert.Equal(t, "Chess Engine", p.Title)
	assert.Equal(t, int64(5), p.Complexity)
	require.NotNil(t, p.Finished)
	assert.Equal(t, "2024-02-10", p.Finished.String())
	require.NotNil(t, p.Program)
	assert.Equal(t, "Go", *p.Program)
	assert.Nil(t, p.ProjectLink)

	require.Len(t, p.Details, 2)
	assert.Equal(t, "<p>Search</p>", p.Details[0].Description)
	assert.Equal(t, int64(2), p.Details[1].DetailID)
	assert.Zero(t, p.Details[0].ProjectID)

	require.Len(t, p.Images, 1)
	assert.Equal(t, models.NewImage{DetailID: 1, ImageTitle: "Board", ImageURL: "https://img.example/board.png"}, p.Images[0])
}

func TestProjectCreateNullImagesIsAbsent(t *testing.T) {
	p, err := ProjectCreate(record(t, `{"Title":"t","Complexity":1,"project_details":[{"ProjectID":1,"DetailID":1,"Description":"d"}],"Images":null}`))
	require.NoError(t, err)
	assert.Empty(t, p.Images)
}

func TestProjectPatch(t *testing.T) {
	t.Run("bad id", func(t *testing.T) {
		_, _, err := ProjectPatch("one", record(t, `{"Title":"x"}`))
		requireMessage(t, err, 400, "Error, ProjectID must be an integer")
	})

	t.Run("nothing to update", func(t *testing.T) {
		_, _, err := ProjectPatch("1", record(t, `{"Colour":"red"}`))
		requireMessage(t, err, 400, "Error, Please specify at least one attribute to update")
	})

	t.Run("id is checked first", func(t *testing.T) {
		_, _, err := ProjectPatch("1.5", record(t, `{}`))
		requireMessage(t, err, 400, "Error, ProjectID must be an integer")
	})

	t.Run("null clears optional columns", func(t *testing.T) {
		id, patch, err := ProjectPatch("3", record(t, `{"ProjectLink":null,"Finished":null,"Complexity":2}`))
		require.NoError(t, err)
		assert.Equal(t, int64(3), id)

		columns, values := patch.Assignments()
		assert.Equal(t, []string{"finished", "complexity", "project_link"}, columns)
		assert.Equal(t, []any{nil, int64(2), nil}, values)
	})

	t.Run("title cannot be null", func(t *testing.T) {
		_, _, err := ProjectPatch("3", record(t, `{"Title":null}`))
		assert.True(t, errs.IsInvalidFieldError(err))
	})

	t.Run("date value", func(t *testing.T) {
		_, patch, err := ProjectPatch("3", record(t, `{"Finished":"2020-01-31"}`))
		require.NoError(t, err)
		d, ok := patch.Finished.Value.(models.Date)
		require.True(t, ok)
		assert.Equal(t, "2020-01-31", d.String())
	})
}

func TestDetailPatch(t *testing.T) {
	t.Run("bad project id", func(t *testing.T) {
		_, _, _, err := DetailPatch("x", "1", record(t, `{"Description":"d"}`))
		requireMessage(t, err, 400, "Error, ProjectID must be an integer")
	})

	t.Run("bad detail id", func(t *testing.T) {
		_, _, _, err := DetailPatch("1", "x", record(t, `{"Description":"d"}`))
		requireMessage(t, err, 400, "Error, ProjectDetailID must be an integer")
	})

	for name, body := range map[string]string{
		"missing description": `{"Images":[]}`,
		"null description":    `{"Description":null}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := DetailPatch("1", "1", record(t, body))
			requireMessage(t, err, 400, "Error, Project Detail must include a description")
		})
	}

	t.Run("empty description is accepted", func(t *testing.T) {
		_, _, patch, err := DetailPatch("1", "1", record(t, `{"Description":""}`))
		require.NoError(t, err)
		assert.Equal(t, "", patch.Description)
	})

	t.Run("description only keeps images", func(t *testing.T) {
		pid, did, patch, err := DetailPatch("1", "2", record(t, `{"Description":"x"}`))
		require.NoError(t, err)
		assert.Equal(t, int64(1), pid)
		assert.Equal(t, int64(2), did)
		assert.False(t, patch.ReplaceImages)
	})

	t.Run("images are renamed", func(t *testing.T) {
		_, _, patch, err := DetailPatch("1", "1", record(t, `{"Description":"x","Images":[{"Title":"a","URL":"u1"},{"Title":"b","URL":"u2"}]}`))
		require.NoError(t, err)
		assert.True(t, patch.ReplaceImages)
		assert.Equal(t, []models.ImageReplacement{
			{ImageTitle: "a", ImageURL: "u1"},
			{ImageTitle: "b", ImageURL: "u2"},
		}, patch.Images)
	})

	t.Run("empty list clears images", func(t *testing.T) {
		_, _, patch, err := DetailPatch("1", "1", record(t, `{"Description":"x","Images":[]}`))
		require.NoError(t, err)
		assert.True(t, patch.ReplaceImages)
		assert.Empty(t, patch.Images)
	})

	t.Run("image entry uses entity names", func(t *testing.T) {
		_, _, _, err := DetailPatch("1", "1", record(t, `{"Description":"x","Images":[{"Image_Title":"a","Image_URL":"u1"}]}`))
		assert.True(t, errs.IsInvalidFieldError(err))
	})
}

func TestSanitizeDescription(t *testing.T) {
	assert.Equal(t, `<b>bold</b>`, SanitizeDescription(`<b onclick="x()">bold</b>`))
	assert.Equal(t, ``, SanitizeDescription(`<script>alert(1)</script>`))
}
